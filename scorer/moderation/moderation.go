//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

// Package moderation implements a scorer backed by the OpenAI moderation
// endpoint. Unlike the local rolling-window scorers, it delegates windowing
// and category policy entirely to the remote model.
package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"

	"trpc.group/trpc-go/trpc-scorer-go/scorer"
)

// ScorerName is the registry name of the OpenAI moderation scorer.
const ScorerName = "openai_moderation"

const defaultModel = openai.ModerationModel("text-moderation-latest")

const apiKeyEnv = "OPENAI_API_KEY"

// Scorer checks model output against the OpenAI moderation endpoint.
type Scorer struct {
	client openai.Client
	model  openai.ModerationModel
}

// New creates an OpenAI moderation scorer. The API key defaults to the
// OPENAI_API_KEY environment variable if not set explicitly.
func New(opt ...Option) *Scorer {
	opts := newOptions(opt...)

	if opts.apiKey == "" {
		if val, ok := os.LookupEnv(apiKeyEnv); ok {
			opts.apiKey = val
		}
	}

	var clientOpts []openaiopt.RequestOption
	if opts.apiKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(opts.apiKey))
	}
	if opts.baseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(opts.baseURL))
	}
	clientOpts = append(clientOpts, opts.openaiOptions...)

	return &Scorer{
		client: openai.NewClient(clientOpts...),
		model:  opts.model,
	}
}

// Name implements scorer.Scorer.
func (s *Scorer) Name() string {
	return ScorerName
}

// Score implements scorer.Scorer. Extras carries the moderation categories
// the endpoint marked true for the output.
func (s *Scorer) Score(ctx context.Context, output string) (*scorer.Result, error) {
	resp, err := s.client.Moderations.New(ctx, openai.ModerationNewParams{
		Input: openai.ModerationNewParamsInputUnion{
			OfString: openai.String(output),
		},
		Model: s.model,
	})
	if err != nil {
		return nil, fmt.Errorf("moderation: call endpoint: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, errors.New("moderation: endpoint returned no results")
	}
	result := resp.Results[0]

	var all map[string]bool
	if err := json.Unmarshal([]byte(result.Categories.RawJSON()), &all); err != nil {
		return nil, fmt.Errorf("moderation: decode categories: %w", err)
	}
	categories := make(map[string]any)
	for category, hit := range all {
		if hit {
			categories[category] = true
		}
	}
	return &scorer.Result{
		Flagged: result.Flagged,
		Extras:  map[string]any{"categories": categories},
	}, nil
}
