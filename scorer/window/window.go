//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

// Package window implements rolling-window prediction for inputs that exceed
// a model's context limit.
//
// The input text is tokenized and split into overlapping fixed-size windows.
// Each window is scored by a chunk predictor and the per-window score vectors
// are combined into one vector per category using the configured aggregation
// method. Inputs that fit in a single window are passed through to the
// predictor directly.
package window

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-scorer-go/log"
	"trpc.group/trpc-go/trpc-scorer-go/tokenizer"
)

// Aggregation methods for combining per-window predictions.
const (
	AggregationMax     = "max"
	AggregationAverage = "average"
)

const (
	defaultMaxTokens = 512
	defaultOverlap   = 50
)

// Configuration errors reported by New.
var (
	// ErrInvalidMaxTokens indicates a non-positive window capacity.
	ErrInvalidMaxTokens = errors.New("window: max tokens must be positive")
	// ErrInvalidOverlap indicates a negative overlap or one at least as
	// large as the window capacity, which would make the stride
	// non-positive and the windowing loop unable to progress.
	ErrInvalidOverlap = errors.New("window: overlap must be non-negative and less than max tokens")
	// ErrUnsupportedAggregation indicates an unknown aggregation method.
	ErrUnsupportedAggregation = errors.New("window: unsupported aggregation method")
)

// Tokenizer is the tokenizer contract consumed by the windowed predictor,
// defined in the root tokenizer package.
type Tokenizer = tokenizer.Tokenizer

// ChunkPredictor scores one window of tokens.
// The window length never exceeds the configured max tokens, and the
// returned score vector must have the same fixed number of categories on
// every call within one predictor's lifetime.
type ChunkPredictor interface {
	PredictChunk(ctx context.Context, ids []int) ([]float64, error)
}

// Predictor splits over-length token sequences into overlapping windows,
// scores each window with a chunk predictor and aggregates the results.
//
// Each Predict call owns its own token sequence and window list; Predictor
// holds no mutable state and is safe for concurrent use as long as the
// supplied tokenizer and chunk predictor are.
type Predictor struct {
	tokenizer   Tokenizer
	predictor   ChunkPredictor
	maxTokens   int
	overlap     int
	aggregation string
}

// New creates a rolling-window predictor around the supplied tokenizer and
// chunk predictor. Configuration is validated up front: a predictor with an
// unsupported aggregation method or an overlap that does not leave a
// positive stride is never constructed.
func New(tokenizer Tokenizer, predictor ChunkPredictor, opt ...Option) (*Predictor, error) {
	if tokenizer == nil {
		return nil, errors.New("window: tokenizer is nil")
	}
	if predictor == nil {
		return nil, errors.New("window: chunk predictor is nil")
	}
	opts := newOptions(opt...)
	if opts.maxTokens <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxTokens, opts.maxTokens)
	}
	if opts.overlap < 0 || opts.overlap >= opts.maxTokens {
		return nil, fmt.Errorf("%w: overlap %d, max tokens %d", ErrInvalidOverlap, opts.overlap, opts.maxTokens)
	}
	switch opts.aggregation {
	case AggregationMax, AggregationAverage:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAggregation, opts.aggregation)
	}
	return &Predictor{
		tokenizer:   tokenizer,
		predictor:   predictor,
		maxTokens:   opts.maxTokens,
		overlap:     opts.overlap,
		aggregation: opts.aggregation,
	}, nil
}

// Predict tokenizes text and returns one aggregated score per category.
//
// Inputs of at most max tokens are scored with a single predictor call and
// the result is returned as-is. Longer inputs are scored window by window in
// order; predictor errors propagate unchanged and abort the call. The
// context is only checked between windows, a single window prediction is an
// atomic unit of work.
func (p *Predictor) Predict(ctx context.Context, text string) ([]float64, error) {
	ids, err := p.tokenizer.Tokenize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("window: tokenize input: %w", err)
	}
	total := len(ids)
	if total <= p.maxTokens {
		return p.predictor.PredictChunk(ctx, ids)
	}

	stride := p.maxTokens - p.overlap
	var all [][]float64
	for offset := 0; offset < total-p.overlap; offset += stride {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := offset + p.maxTokens
		if end > total {
			// The final window is clipped to the input boundary; it may
			// overlap its predecessor by more than the configured overlap.
			end = total
		}
		pred, err := p.predictor.PredictChunk(ctx, ids[offset:end])
		if err != nil {
			return nil, err
		}
		all = append(all, pred)
	}
	log.Debugf("window: predicted %d tokens in %d windows (max %d, overlap %d)",
		total, len(all), p.maxTokens, p.overlap)
	return Aggregate(p.aggregation, all)
}

// Aggregate combines per-window predictions into one score per category.
// All predictions must have the same category count; the category count of
// the first prediction is authoritative. An empty prediction list yields an
// empty result.
func Aggregate(method string, predictions [][]float64) ([]float64, error) {
	if len(predictions) == 0 {
		return []float64{}, nil
	}
	numCategories := len(predictions[0])
	aggregated := make([]float64, 0, numCategories)
	for i := 0; i < numCategories; i++ {
		switch method {
		case AggregationMax:
			maxScore := predictions[0][i]
			for _, pred := range predictions[1:] {
				if pred[i] > maxScore {
					maxScore = pred[i]
				}
			}
			aggregated = append(aggregated, maxScore)
		case AggregationAverage:
			sum := 0.0
			for _, pred := range predictions {
				sum += pred[i]
			}
			aggregated = append(aggregated, sum/float64(len(predictions)))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedAggregation, method)
		}
	}
	return aggregated, nil
}
