// Copyright 2025 The ai-job-assistant Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server.
	EmbeddingHost string

	// ReasonerHost is the base URL for the reasoning service API used by
	// the grounding pass.
	ReasonerHost string

	// EmbeddingModel is the model identifier for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// ReasonerModel is the model identifier for grounding requests.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	ReasonerModel string

	// Token authenticates against the services. Local OpenAI-compatible
	// servers accept any value; default is "none".
	Token string

	// Temperature for reasoning requests. Grounding wants near-greedy
	// decoding; default is 0.12.
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets both embedding and reasoner hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.ReasonerHost = host
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithReasonerHost sets the reasoning service host URL.
func WithReasonerHost(host string) ConfigOption {
	return func(c *Config) {
		c.ReasonerHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithReasonerModel sets the reasoning model identifier.
func WithReasonerModel(model string) ConfigOption {
	return func(c *Config) {
		c.ReasonerModel = model
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// DefaultConfig returns a Config with defaults for local OpenAI-compatible
// services. Both services point at the same host by default.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:  defaultHost,
		ReasonerHost:   defaultHost,
		EmbeddingModel: "embeddinggemma",
		ReasonerModel:  "qwen2.5:3b",
		Token:          "none",
		Temperature:    0.12,
	}
}

// NewConfig creates a Config with defaults and applies the given options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize brings the configuration into canonical form: hosts get the
// /v1 suffix most OpenAI-compatible APIs require, an empty token becomes
// "none", and a non-positive temperature falls back to the default.
func (c *Config) Normalize() {
	c.EmbeddingHost = normalizeHost(c.EmbeddingHost)
	c.ReasonerHost = normalizeHost(c.ReasonerHost)
	if c.Token == "" {
		c.Token = "none"
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.12
	}
}

func normalizeHost(host string) string {
	if host == "" || strings.HasSuffix(host, "/v1") {
		return host
	}
	return strings.TrimSuffix(host, "/") + "/v1"
}

// Validate checks that the configuration is complete. It normalizes the
// configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.ReasonerHost == "" {
		return errors.New("ai config: ReasonerHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.ReasonerModel == "" {
		return errors.New("ai config: ReasonerModel is required")
	}
	return nil
}
