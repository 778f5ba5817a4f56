//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

package toxicity

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trpc.group/trpc-go/trpc-scorer-go/scorer/window"
)

// wordTokenizer assigns one token per whitespace-separated word.
type wordTokenizer struct{}

func (wordTokenizer) Tokenize(_ context.Context, text string) ([]int, error) {
	words := strings.Fields(text)
	ids := make([]int, len(words))
	for i := range ids {
		ids[i] = i
	}
	return ids, nil
}

// constPredictor returns the same scores for every window.
type constPredictor struct {
	scores []float64
	calls  int
}

func (p *constPredictor) PredictChunk(_ context.Context, _ []int) ([]float64, error) {
	p.calls++
	return p.scores, nil
}

func TestToxicityScorerBelowThresholds(t *testing.T) {
	pred := &constPredictor{scores: []float64{0.1, 0.2, 0.0, 0.3, 0.1}}
	s, err := New(wordTokenizer{}, pred)
	require.NoError(t, err)

	result, err := s.Score(context.Background(), "some harmless text")
	require.NoError(t, err)
	assert.False(t, result.Flagged)
	for _, category := range Categories {
		assert.Contains(t, result.Extras, category)
	}
}

func TestToxicityScorerCategoryThreshold(t *testing.T) {
	pred := &constPredictor{scores: []float64{0.0, 0.0, 0.0, 0.0, 2.5}}
	s, err := New(wordTokenizer{}, pred)
	require.NoError(t, err)

	result, err := s.Score(context.Background(), "violent text")
	require.NoError(t, err)
	assert.True(t, result.Flagged)
	assert.Equal(t, 2.5, result.Extras["Violence"])
}

func TestToxicityScorerTotalThreshold(t *testing.T) {
	// No single category crosses the category threshold, but the sum does.
	pred := &constPredictor{scores: []float64{1.1, 1.1, 1.1, 1.1, 1.1}}
	s, err := New(wordTokenizer{}, pred)
	require.NoError(t, err)

	result, err := s.Score(context.Background(), "broadly toxic text")
	require.NoError(t, err)
	assert.True(t, result.Flagged)
}

func TestToxicityScorerCustomThresholds(t *testing.T) {
	pred := &constPredictor{scores: []float64{0.6, 0.0, 0.0, 0.0, 0.0}}
	s, err := New(wordTokenizer{}, pred,
		WithCategoryThreshold(0.5), WithTotalThreshold(10))
	require.NoError(t, err)

	result, err := s.Score(context.Background(), "text")
	require.NoError(t, err)
	assert.True(t, result.Flagged)
}

func TestToxicityScorerLargeInput(t *testing.T) {
	pred := &constPredictor{scores: []float64{0.1, 0.1, 0.1, 0.1, 0.1}}
	s, err := New(wordTokenizer{}, pred,
		WithWindowOptions(window.WithMaxTokens(100), window.WithOverlap(10)))
	require.NoError(t, err)

	large := strings.Repeat("word ", 5000)
	result, err := s.Score(context.Background(), large)
	require.NoError(t, err)
	assert.False(t, result.Flagged)
	// 5000 tokens exceed the 100-token window, so the predictor runs once
	// per window.
	assert.Greater(t, pred.calls, 1)
	for _, category := range Categories {
		assert.Contains(t, result.Extras, category)
	}
}

func TestToxicityScorerEmptyInput(t *testing.T) {
	pred := &constPredictor{scores: []float64{0, 0, 0, 0, 0}}
	s, err := New(wordTokenizer{}, pred)
	require.NoError(t, err)

	result, err := s.Score(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, result.Flagged)
	assert.Equal(t, 1, pred.calls)
}

func TestToxicityScorerCategoryMismatch(t *testing.T) {
	pred := &constPredictor{scores: []float64{0.1, 0.2}}
	s, err := New(wordTokenizer{}, pred)
	require.NoError(t, err)

	_, err = s.Score(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 5")
}

func TestToxicityScorerInvalidThresholds(t *testing.T) {
	pred := &constPredictor{scores: []float64{0, 0, 0, 0, 0}}

	_, err := New(wordTokenizer{}, pred, WithCategoryThreshold(0))
	require.Error(t, err)
	_, err = New(wordTokenizer{}, pred, WithTotalThreshold(-1))
	require.Error(t, err)
}
