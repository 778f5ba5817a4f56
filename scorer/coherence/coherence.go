//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

// Package coherence implements a scorer that checks whether model output is
// coherent with respect to the prompt that produced it.
//
// The classification itself is performed by an injected text-pair classifier;
// the scorer only prepares the prompt (optionally folding in chat history or
// retrieval context) and maps the predicted label onto a flag decision.
package coherence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-scorer-go/scorer"
)

// ScorerName is the registry name of the coherence scorer.
const ScorerName = "coherence"

// Coherence labels in increasing order of coherence.
const (
	LabelCompletelyIncoherent = "Completely Incoherent"
	LabelMostlyIncoherent     = "Mostly Incoherent"
	LabelALittleIncoherent    = "A Little Incoherent"
	LabelMostlyCoherent       = "Mostly Coherent"
	LabelPerfectlyCoherent    = "Perfectly Coherent"
)

var labelIDs = map[string]int{
	LabelCompletelyIncoherent: 0,
	LabelMostlyIncoherent:     1,
	LabelALittleIncoherent:    2,
	LabelMostlyCoherent:       3,
	LabelPerfectlyCoherent:    4,
}

// Classification is a single text-pair classifier prediction.
type Classification struct {
	Label string
	Score float64
}

// Classifier scores how well a response pairs with a prompt. It must return
// one of the coherence labels defined in this package.
type Classifier interface {
	ClassifyPair(ctx context.Context, text, textPair string) (*Classification, error)
}

// Turn is one entry of a chat history.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// RoleUser marks a chat history turn authored by the user; any other role is
// treated as the assistant.
const RoleUser = "user"

// Scorer checks model output coherence using an injected classifier.
type Scorer struct {
	classifier Classifier
}

// New creates a coherence scorer around the supplied classifier.
func New(classifier Classifier) (*Scorer, error) {
	if classifier == nil {
		return nil, errors.New("coherence: classifier is nil")
	}
	return &Scorer{classifier: classifier}, nil
}

// Name implements scorer.Scorer.
func (s *Scorer) Name() string {
	return ScorerName
}

// Score implements scorer.Scorer for bare output with no prompt.
func (s *Scorer) Score(ctx context.Context, output string) (*scorer.Result, error) {
	return s.ScoreMessages(ctx, "", output)
}

// ScorePrompt scores a prompt/response pair, optionally folding chat history
// or retrieval context into the prompt. Context, when supplied, takes
// precedence over chat history.
func (s *Scorer) ScorePrompt(ctx context.Context, input, output string, opt ...ScoreOption) (*scorer.Result, error) {
	opts := &scoreOptions{}
	for _, o := range opt {
		o(opts)
	}
	prompt := input
	if len(opts.chatHistory) > 0 {
		prompt = formatChatHistory(opts.chatHistory) + input
	}
	if opts.context != "" {
		prompt = input + "\n\n" + opts.context
	}
	return s.ScoreMessages(ctx, prompt, output)
}

// ScoreMessages scores a fully prepared prompt/response pair.
func (s *Scorer) ScoreMessages(ctx context.Context, prompt, output string) (*scorer.Result, error) {
	classification, err := s.classifier.ClassifyPair(ctx, prompt, output)
	if err != nil {
		return nil, fmt.Errorf("coherence: classify pair: %w", err)
	}
	id, ok := labelIDs[classification.Label]
	if !ok {
		return nil, fmt.Errorf("coherence: classifier returned unknown label %q", classification.Label)
	}
	flagged := strings.Contains(strings.ToLower(classification.Label), "incoherent")
	return &scorer.Result{
		Flagged: flagged,
		Extras: map[string]any{
			"coherence_label": classification.Label,
			"coherence_id":    id,
			"coherence_score": classification.Score,
		},
	}, nil
}

// ScoreOption configures a single ScorePrompt call.
type ScoreOption func(*scoreOptions)

type scoreOptions struct {
	chatHistory []Turn
	context     string
}

// WithChatHistory prepends formatted chat history to the prompt.
func WithChatHistory(history []Turn) ScoreOption {
	return func(o *scoreOptions) {
		o.chatHistory = history
	}
}

// WithContext appends retrieval context to the prompt.
func WithContext(context string) ScoreOption {
	return func(o *scoreOptions) {
		o.context = context
	}
}

// formatChatHistory renders chat history with the turn separators the
// coherence classifier was trained on.
func formatChatHistory(history []Turn) string {
	var b strings.Builder
	for _, turn := range history {
		if turn.Role == RoleUser {
			b.WriteString(turn.Text + "\n<extra_id_1>Assistant\n")
		} else {
			b.WriteString(turn.Text + "\n<extra_id_1>User\n")
		}
	}
	return b.String()
}
