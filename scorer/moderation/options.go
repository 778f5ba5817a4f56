//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

package moderation

import (
	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
)

// Options holds the configuration for the moderation scorer.
type Options struct {
	model         openai.ModerationModel
	apiKey        string
	baseURL       string
	openaiOptions []openaiopt.RequestOption
}

// Option configures the moderation scorer.
type Option func(*Options)

func newOptions(opt ...Option) *Options {
	opts := &Options{
		model: defaultModel,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithModel sets the moderation model to use.
func WithModel(model openai.ModerationModel) Option {
	return func(o *Options) {
		o.model = model
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(o *Options) {
		o.apiKey = key
	}
}

// WithBaseURL sets a non-default endpoint base URL.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.baseURL = url
	}
}

// WithOpenAIOptions appends extra openai-go request options, applied after
// the ones derived from the other fields.
func WithOpenAIOptions(opts ...openaiopt.RequestOption) Option {
	return func(o *Options) {
		o.openaiOptions = append(o.openaiOptions, opts...)
	}
}
