//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

package window

// Options holds the configuration for a rolling-window predictor.
type Options struct {
	maxTokens   int
	overlap     int
	aggregation string
}

// Option configures a rolling-window predictor.
type Option func(*Options)

func newOptions(opt ...Option) *Options {
	opts := &Options{
		maxTokens:   defaultMaxTokens,
		overlap:     defaultOverlap,
		aggregation: AggregationMax,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithMaxTokens sets the maximum number of tokens per window.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.maxTokens = n
	}
}

// WithOverlap sets the number of tokens consecutive windows share.
// It must be smaller than the window capacity.
func WithOverlap(n int) Option {
	return func(o *Options) {
		o.overlap = n
	}
}

// WithAggregation sets the method used to combine per-window predictions,
// one of AggregationMax or AggregationAverage.
func WithAggregation(method string) Option {
	return func(o *Options) {
		o.aggregation = method
	}
}
