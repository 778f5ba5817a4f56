//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

// Package bias implements a rolling-window bias scorer backed by a
// multi-label classifier supplied by the caller.
package bias

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-scorer-go/scorer"
	"trpc.group/trpc-go/trpc-scorer-go/scorer/window"
)

// ScorerName is the registry name of the bias scorer.
const ScorerName = "bias"

// Categories are the bias categories, in classifier output order.
var Categories = []string{
	"gender_bias",
	"racial_bias",
}

const defaultThreshold = 0.5

// Scorer flags output when any aggregated category score reaches the
// configured threshold.
type Scorer struct {
	predictor *window.Predictor
	threshold float64
}

// Options holds the configuration for the bias scorer.
type Options struct {
	threshold     float64
	windowOptions []window.Option
}

// Option configures the bias scorer.
type Option func(*Options)

// WithThreshold sets the per-category score at which output is flagged.
func WithThreshold(threshold float64) Option {
	return func(o *Options) {
		o.threshold = threshold
	}
}

// WithWindowOptions forwards options to the underlying rolling-window
// predictor.
func WithWindowOptions(opts ...window.Option) Option {
	return func(o *Options) {
		o.windowOptions = append(o.windowOptions, opts...)
	}
}

// New creates a bias scorer around the supplied tokenizer and chunk
// predictor. The chunk predictor must return one score per entry of
// Categories.
func New(tokenizer window.Tokenizer, chunk window.ChunkPredictor, opt ...Option) (*Scorer, error) {
	opts := &Options{threshold: defaultThreshold}
	for _, o := range opt {
		o(opts)
	}
	if opts.threshold <= 0 || opts.threshold > 1 {
		return nil, errors.New("bias: threshold must be in (0, 1]")
	}
	predictor, err := window.New(tokenizer, chunk, opts.windowOptions...)
	if err != nil {
		return nil, fmt.Errorf("bias: create window predictor: %w", err)
	}
	return &Scorer{predictor: predictor, threshold: opts.threshold}, nil
}

// Name implements scorer.Scorer.
func (s *Scorer) Name() string {
	return ScorerName
}

// Score implements scorer.Scorer. Extras holds the aggregated score and the
// flag decision per bias category.
func (s *Scorer) Score(ctx context.Context, output string) (*scorer.Result, error) {
	scores, err := s.predictor.Predict(ctx, output)
	if err != nil {
		return nil, err
	}
	if len(scores) != len(Categories) {
		return nil, fmt.Errorf("bias: predictor returned %d scores, want %d", len(scores), len(Categories))
	}
	extras := make(map[string]any, len(Categories))
	flagged := false
	for i, category := range Categories {
		extras[category] = scores[i]
		if scores[i] >= s.threshold {
			flagged = true
		}
	}
	return &scorer.Result{Flagged: flagged, Extras: extras}, nil
}
