//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

package batch

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-scorer-go/scorer"
)

// flagTallScorer flags any output longer than 10 characters and counts
// concurrent calls.
type flagTallScorer struct {
	calls atomic.Int64
}

func (s *flagTallScorer) Name() string { return "flag-tall" }

func (s *flagTallScorer) Score(_ context.Context, output string) (*scorer.Result, error) {
	s.calls.Add(1)
	return &scorer.Result{Flagged: len(output) > 10}, nil
}

// failEmptyScorer errors on empty output.
type failEmptyScorer struct{}

func (failEmptyScorer) Name() string { return "fail-empty" }

func (failEmptyScorer) Score(_ context.Context, output string) (*scorer.Result, error) {
	if output == "" {
		return nil, errors.New("empty output")
	}
	return &scorer.Result{Flagged: false}, nil
}

func TestRunPreservesInputOrder(t *testing.T) {
	s := &flagTallScorer{}
	r, err := New(s, WithConcurrency(8))
	require.NoError(t, err)

	outputs := []string{
		"short",
		strings.Repeat("long output ", 5),
		"tiny",
		strings.Repeat("another long one ", 3),
	}
	result, err := r.Run(context.Background(), outputs)
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)
	require.Len(t, result.Items, len(outputs))

	for i, item := range result.Items {
		assert.Equal(t, i, item.Index)
		assert.Equal(t, outputs[i], item.Output)
		require.NoError(t, item.Err)
		require.NotNil(t, item.Result)
	}
	assert.False(t, result.Items[0].Result.Flagged)
	assert.True(t, result.Items[1].Result.Flagged)
	assert.False(t, result.Items[2].Result.Flagged)
	assert.True(t, result.Items[3].Result.Flagged)
	assert.Equal(t, int64(len(outputs)), s.calls.Load())
}

func TestRunManyOutputs(t *testing.T) {
	s := &flagTallScorer{}
	r, err := New(s, WithConcurrency(4))
	require.NoError(t, err)

	outputs := make([]string, 100)
	for i := range outputs {
		outputs[i] = strings.Repeat("x", i)
	}
	result, err := r.Run(context.Background(), outputs)
	require.NoError(t, err)
	require.Len(t, result.Items, 100)
	for i, item := range result.Items {
		require.NoError(t, item.Err)
		assert.Equal(t, i > 10, item.Result.Flagged, "item %d", i)
	}
}

func TestRunPartialFailures(t *testing.T) {
	r, err := New(failEmptyScorer{})
	require.NoError(t, err)

	result, err := r.Run(context.Background(), []string{"ok", "", "also ok"})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)

	assert.NoError(t, result.Items[0].Err)
	assert.Error(t, result.Items[1].Err)
	assert.Nil(t, result.Items[1].Result)
	assert.NoError(t, result.Items[2].Err)
}

func TestRunEmptyBatch(t *testing.T) {
	r, err := New(&flagTallScorer{})
	require.NoError(t, err)

	result, err := r.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.Items)
}

func TestRunDistinctRunIDs(t *testing.T) {
	r, err := New(&flagTallScorer{})
	require.NoError(t, err)

	first, err := r.Run(context.Background(), []string{"a"})
	require.NoError(t, err)
	second, err := r.Run(context.Background(), []string{"b"})
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestNewInvalidConfiguration(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New(&flagTallScorer{}, WithConcurrency(0))
	require.Error(t, err)
}
