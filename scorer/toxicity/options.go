//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

package toxicity

import "trpc.group/trpc-go/trpc-scorer-go/scorer/window"

// Options holds the configuration for the toxicity scorer.
type Options struct {
	categoryThreshold float64
	totalThreshold    float64
	windowOptions     []window.Option
}

// Option configures the toxicity scorer.
type Option func(*Options)

func newOptions(opt ...Option) *Options {
	opts := &Options{
		categoryThreshold: defaultCategoryThreshold,
		totalThreshold:    defaultTotalThreshold,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithCategoryThreshold sets the per-category score at which output is flagged.
func WithCategoryThreshold(threshold float64) Option {
	return func(o *Options) {
		o.categoryThreshold = threshold
	}
}

// WithTotalThreshold sets the summed score at which output is flagged.
func WithTotalThreshold(threshold float64) Option {
	return func(o *Options) {
		o.totalThreshold = threshold
	}
}

// WithWindowOptions forwards options to the underlying rolling-window
// predictor, such as window.WithMaxTokens and window.WithOverlap.
func WithWindowOptions(opts ...window.Option) Option {
	return func(o *Options) {
		o.windowOptions = append(o.windowOptions, opts...)
	}
}
