//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

// Package tokenizer defines the tokenizer contract used by local scorers.
// Concrete implementations live in subpackages.
package tokenizer

import "context"

// Tokenizer converts raw text into a sequence of token ids.
//
// Tokenize must be deterministic and accept any string; the empty string
// yields an empty sequence.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]int, error)
}
