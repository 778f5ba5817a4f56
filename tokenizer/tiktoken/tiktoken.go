//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

// Package tiktoken provides a tiktoken-go based tokenizer implementation
// that is compatible with the root tokenizer.Tokenizer interface.
package tiktoken

import (
	"context"
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// Tokenizer implements the root tokenizer.Tokenizer interface using a
// tiktoken codec.
type Tokenizer struct {
	encoding tokenizer.Codec
}

// New creates a tiktoken-based tokenizer for the given OpenAI model name
// (e.g. "gpt-4o"). If the model is not supported, it falls back to
// cl100k_base for broad compatibility.
func New(modelName string) (*Tokenizer, error) {
	enc, err := tokenizer.ForModel(tokenizer.Model(modelName))
	if err != nil {
		enc, err = tokenizer.Get(tokenizer.Cl100kBase)
		if err != nil {
			return nil, fmt.Errorf("failed to get fallback tokenizer: %w", err)
		}
	}
	return &Tokenizer{encoding: enc}, nil
}

// Tokenize encodes text into token ids using tiktoken-go.
func (t *Tokenizer) Tokenize(_ context.Context, text string) ([]int, error) {
	if text == "" {
		return []int{}, nil
	}
	toks, _, err := t.encoding.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("encode text failed: %w", err)
	}
	ids := make([]int, len(toks))
	for i, tok := range toks {
		ids[i] = int(tok)
	}
	return ids, nil
}
