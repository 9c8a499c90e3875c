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

package openai

import (
	"context"
	"log/slog"

	"github.com/A-makarim/ai-job-assistant/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Reasoner implements ai.Reasoner using OpenAI-compatible chat APIs.
// It issues exactly one completion per Generate call; parsing and retry
// policy belong to the grounding layer, which treats every failure here
// as a cue to fail open.
type Reasoner struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

// newReasoner is the internal constructor returning the concrete type,
// used by Provider to manage the instance.
func newReasoner(config *ai.Config) (*Reasoner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ReasonerHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ReasonerModel),
	)
	if err != nil {
		return nil, err
	}

	return &Reasoner{
		client:      client,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-reasoner"),
	}, nil
}

// NewReasoner creates a reasoner from the provided configuration.
//
// Returns ai.Reasoner interface to enforce abstraction.
func NewReasoner(config *ai.Config) (ai.Reasoner, error) {
	return newReasoner(config)
}

// Generate sends the prompt as a single human message and returns the raw
// completion text.
func (r *Reasoner) Generate(ctx context.Context, prompt string) (string, error) {
	r.logger.Debug("generating completion", "promptLength", len(prompt))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(r.temperature))
	if err != nil {
		r.logger.Error("failed to generate completion", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		r.logger.Debug("no choices returned from model")
		return "", nil
	}

	return response.Choices[0].Content, nil
}
