//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

// Package scorer defines the scorer contract shared by all scoring backends.
//
// A scorer inspects a piece of model output and reports whether it should be
// flagged, together with backend-specific detail in Extras. Concrete scorers
// live in subpackages (toxicity, bias, coherence, moderation); long inputs
// are handled by the rolling-window core in the window subpackage.
package scorer

import "context"

// Result is the outcome of scoring one piece of model output.
type Result struct {
	// Flagged reports whether the scorer considers the output problematic.
	Flagged bool `json:"flagged"`
	// Extras carries scorer-specific detail, such as per-category scores
	// or the predicted label.
	Extras map[string]any `json:"extras,omitempty"`
}

// Scorer scores a single piece of model output.
//
// Implementations must be safe for concurrent use: the batch runner invokes
// Score from multiple goroutines.
type Scorer interface {
	// Name returns the scorer name used for registration and telemetry.
	Name() string
	// Score evaluates the given model output.
	Score(ctx context.Context, output string) (*Result, error)
}
