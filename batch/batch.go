//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

// Package batch scores many outputs concurrently with a single scorer.
//
// Concurrency applies across inputs only: each individual Score call, and in
// particular the rolling-window algorithm inside it, stays sequential.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-scorer-go/log"
	"trpc.group/trpc-go/trpc-scorer-go/scorer"
	"trpc.group/trpc-go/trpc-scorer-go/telemetry"
)

const defaultConcurrency = 4

// Item is the scoring outcome for one input, at the same index the input
// had in the batch.
type Item struct {
	Index  int
	Output string
	Result *scorer.Result
	Err    error
}

// Result is the outcome of one batch run.
type Result struct {
	// RunID uniquely identifies the batch run, for correlation in traces
	// and logs.
	RunID string
	// Items holds one entry per input, in input order.
	Items []Item
}

// Options holds the configuration for the batch runner.
type Options struct {
	concurrency int
}

// Option configures the batch runner.
type Option func(*Options)

// WithConcurrency sets the number of outputs scored in parallel.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.concurrency = n
	}
}

// Runner scores batches of outputs with a fixed scorer.
type Runner struct {
	scorer      scorer.Scorer
	concurrency int
}

// New creates a batch runner around the supplied scorer.
func New(s scorer.Scorer, opt ...Option) (*Runner, error) {
	if s == nil {
		return nil, errors.New("batch: scorer is nil")
	}
	opts := &Options{concurrency: defaultConcurrency}
	for _, o := range opt {
		o(opts)
	}
	if opts.concurrency <= 0 {
		return nil, errors.New("batch: concurrency must be greater than 0")
	}
	return &Runner{scorer: s, concurrency: opts.concurrency}, nil
}

type scoreItemParam struct {
	idx    int
	ctx    context.Context
	output string
	scorer scorer.Scorer
	items  []Item
	wg     *sync.WaitGroup
}

func (p *scoreItemParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.output = ""
	p.scorer = nil
	p.items = nil
	p.wg = nil
}

var scoreItemParamPool = &sync.Pool{
	New: func() any { return new(scoreItemParam) },
}

func newScorePool(size int) (*ants.PoolWithFunc, error) {
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*scoreItemParam)
		if !ok {
			panic("batch score pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			scoreItemParamPool.Put(param)
		}()
		result, err := param.scorer.Score(param.ctx, param.output)
		param.items[param.idx] = Item{
			Index:  param.idx,
			Output: param.output,
			Result: result,
			Err:    err,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create batch score pool: %w", err)
	}
	return pool, nil
}

// Run scores every output and returns per-item results in input order.
// Individual scorer failures are recorded on the affected item and do not
// abort the rest of the batch.
func (r *Runner) Run(ctx context.Context, outputs []string) (*Result, error) {
	runID := uuid.NewString()
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.OperationBatch+" "+r.scorer.Name(),
		trace.WithAttributes(
			attribute.String(telemetry.KeyGenAIOperationName, telemetry.OperationBatch),
			attribute.String(telemetry.KeyScorerName, r.scorer.Name()),
			attribute.String(telemetry.KeyScorerBatchRunID, runID),
			attribute.Int(telemetry.KeyScorerBatchSize, len(outputs)),
		),
	)
	defer span.End()

	result := &Result{RunID: runID, Items: make([]Item, len(outputs))}
	if len(outputs) == 0 {
		return result, nil
	}

	size := r.concurrency
	if size > len(outputs) {
		size = len(outputs)
	}
	pool, err := newScorePool(size)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, output := range outputs {
		param := scoreItemParamPool.Get().(*scoreItemParam)
		param.idx = i
		param.ctx = ctx
		param.output = output
		param.scorer = r.scorer
		param.items = result.Items
		param.wg = &wg
		wg.Add(1)
		if err := pool.Invoke(param); err != nil {
			wg.Done()
			param.reset()
			scoreItemParamPool.Put(param)
			result.Items[i] = Item{Index: i, Output: output, Err: fmt.Errorf("batch: invoke score pool: %w", err)}
		}
	}
	wg.Wait()

	log.Debugf("batch: run %s scored %d outputs with scorer %q", runID, len(outputs), r.scorer.Name())
	return result, nil
}
