//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

package scorer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedScorer struct {
	name string
}

func (s *namedScorer) Name() string { return s.name }

func (s *namedScorer) Score(_ context.Context, _ string) (*Result, error) {
	return &Result{}, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	s := &namedScorer{name: "toxicity"}
	require.NoError(t, r.Register(s))

	got, err := r.Get("toxicity")
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestRegistryDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&namedScorer{name: "bias"}))
	err := r.Register(&namedScorer{name: "bias"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistryGetMissing(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("unknown")
	require.Error(t, err)
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&namedScorer{name: "toxicity"}))
	require.NoError(t, r.Register(&namedScorer{name: "bias"}))
	require.NoError(t, r.Register(&namedScorer{name: "coherence"}))

	assert.Equal(t, []string{"bias", "coherence", "toxicity"}, r.List())
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&namedScorer{name: "coherence"}))
	require.NoError(t, r.Unregister("coherence"))
	require.Error(t, r.Unregister("coherence"))
	assert.Empty(t, r.List())
}

func TestRegistryInvalidRegistration(t *testing.T) {
	r := NewRegistry()
	require.Error(t, r.Register(nil))
	require.Error(t, r.Register(&namedScorer{name: ""}))
}
