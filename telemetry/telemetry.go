//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry provides OpenTelemetry instrumentation for scorer calls.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-scorer-go/scorer"
)

// telemetry attributes constants.
var (
	ResourceServiceNamespace = "trpc-go-scorer"
	ResourceServiceName      = "telemetry"
	ResourceServiceVersion   = "v0.1.0"

	KeyGenAIOperationName = "gen_ai.operation.name"
	KeyScorerName         = "trpc.go.scorer.name"
	KeyScorerFlagged      = "trpc.go.scorer.flagged"
	KeyScorerBatchRunID   = "trpc.go.scorer.batch.run_id"
	KeyScorerBatchSize    = "trpc.go.scorer.batch.size"

	// Operation values.
	OperationScore = "score"
	OperationBatch = "score_batch"
)

const instrumentationName = "trpc.group/trpc-go/trpc-scorer-go/telemetry"

// Tracer returns the tracer used for scorer spans, resolved against the
// globally registered tracer provider.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

type tracedScorer struct {
	inner scorer.Scorer
}

// TraceScorer wraps a scorer so that every Score call runs in its own span
// carrying the scorer name and flag decision. Errors are recorded on the
// span and propagated unchanged.
func TraceScorer(inner scorer.Scorer) scorer.Scorer {
	return &tracedScorer{inner: inner}
}

// Name implements scorer.Scorer.
func (t *tracedScorer) Name() string {
	return t.inner.Name()
}

// Score implements scorer.Scorer.
func (t *tracedScorer) Score(ctx context.Context, output string) (*scorer.Result, error) {
	ctx, span := Tracer().Start(ctx, OperationScore+" "+t.inner.Name(),
		trace.WithAttributes(
			attribute.String(KeyGenAIOperationName, OperationScore),
			attribute.String(KeyScorerName, t.inner.Name()),
		),
	)
	defer span.End()

	result, err := t.inner.Score(ctx, output)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Bool(KeyScorerFlagged, result.Flagged))
	return result, nil
}
