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

// Package ground asks an external reasoning service which retrieved
// snippets are actually relevant to the target role, and turns its answer
// into validated, citable evidence.
//
// The whole package fails open: a network fault, an unparseable response
// or an empty selection all produce an empty Result with Grounded=false,
// and the caller keeps the reranker's own selection. No error ever
// reaches the caller and nothing is retried.
package ground

import (
	"context"
	"log/slog"
	"strings"

	"github.com/A-makarim/ai-job-assistant/ai"
	"github.com/A-makarim/ai-job-assistant/core"
)

// Caps on what one grounding call carries and returns.
const (
	// MaxEvidenceItems bounds the evidence list regardless of how much the
	// service returns.
	MaxEvidenceItems = 16

	// maxPromptKeywords bounds the keyword block in the prompt.
	maxPromptKeywords = 26
)

// Lane prefixes for reference ids. The prefix is how a cited id
// disambiguates which pool it came from.
const (
	FactRefPrefix    = "fact"
	CompanyRefPrefix = "company"
)

// Result is the outcome of one grounding call. FactRefs and CompanyRefs
// are always populated so callers can resolve ids and format evidence
// even when the service contributed nothing.
type Result struct {
	SelectedFactIds    []string
	SelectedCompanyIds []string
	EvidenceItems      []core.EvidenceItem
	FactRefs           []core.Reference
	CompanyRefs        []core.Reference

	// Grounded reports whether the reasoning service produced a usable
	// selection. False means the caller should keep the reranker's picks.
	Grounded bool
}

// Grounder runs the grounding pass against a reasoning service.
type Grounder struct {
	reasoner ai.Reasoner
	logger   *slog.Logger
}

// Option configures a Grounder.
type Option func(*Grounder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Grounder) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// NewGrounder creates a grounder around the given reasoning service.
func NewGrounder(reasoner ai.Reasoner, opts ...Option) (*Grounder, error) {
	if reasoner == nil {
		return nil, ErrReasonerRequired
	}

	g := &Grounder{
		reasoner: reasoner,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// groundingResponse mirrors the structured object the service is asked to
// return.
type groundingResponse struct {
	SelectedFactIds    []string `json:"selected_fact_ids"`
	SelectedCompanyIds []string `json:"selected_company_ids"`
	Evidence           []struct {
		SourceId    string `json:"source_id"`
		Claim       string `json:"claim"`
		WhyRelevant string `json:"why_relevant"`
	} `json:"evidence"`
}

// Ground offers both snippet pools to the reasoning service as id-tagged
// references and collects the ids and evidence claims it judges relevant
// to the role context. Cited ids must exist in the offered universe and
// carry the right lane prefix; anything else is discarded. The call is
// single-attempt and never returns an error: on any failure the Result
// carries the references but no selection, with Grounded false.
func (g *Grounder) Ground(ctx context.Context, factPool, companyPool []core.Snippet, roleKeywords []string, taskContext string) Result {
	result := Result{
		FactRefs:    BuildReferences(factPool, FactRefPrefix, RefMaxChars),
		CompanyRefs: BuildReferences(companyPool, CompanyRefPrefix, RefMaxChars),
	}

	prompt := buildGroundingPrompt(result.FactRefs, result.CompanyRefs, roleKeywords, taskContext)

	raw, err := g.reasoner.Generate(ctx, prompt)
	if err != nil {
		g.logger.Warn("grounding request failed, continuing without evidence", "err", err)
		return result
	}

	var parsed groundingResponse
	if !ExtractJSON(raw, &parsed) {
		g.logger.Warn("grounding response not parseable, continuing without evidence",
			"responseLength", len(raw))
		return result
	}

	universe := make(map[string]bool, len(result.FactRefs)+len(result.CompanyRefs))
	for _, ref := range result.FactRefs {
		universe[ref.RefId] = true
	}
	for _, ref := range result.CompanyRefs {
		universe[ref.RefId] = true
	}

	factIds := filterIds(parsed.SelectedFactIds, FactRefPrefix, universe)
	companyIds := filterIds(parsed.SelectedCompanyIds, CompanyRefPrefix, universe)

	for _, row := range parsed.Evidence {
		sourceId := strings.TrimSpace(row.SourceId)
		claim := collapseSpaces(row.Claim)
		if sourceId == "" || claim == "" || !universe[sourceId] {
			continue
		}

		switch {
		case strings.HasPrefix(sourceId, FactRefPrefix+"_"):
			factIds = append(factIds, sourceId)
		case strings.HasPrefix(sourceId, CompanyRefPrefix+"_"):
			companyIds = append(companyIds, sourceId)
		default:
			continue
		}

		result.EvidenceItems = append(result.EvidenceItems, core.EvidenceItem{
			SourceId:    sourceId,
			Claim:       claim,
			WhyRelevant: collapseSpaces(row.WhyRelevant),
		})
	}

	if len(result.EvidenceItems) > MaxEvidenceItems {
		result.EvidenceItems = result.EvidenceItems[:MaxEvidenceItems]
	}
	result.SelectedFactIds = uniqueIds(factIds)
	result.SelectedCompanyIds = uniqueIds(companyIds)
	result.Grounded = len(result.SelectedFactIds) > 0 ||
		len(result.SelectedCompanyIds) > 0 ||
		len(result.EvidenceItems) > 0

	g.logger.Debug("grounding pass complete",
		"factIds", len(result.SelectedFactIds),
		"companyIds", len(result.SelectedCompanyIds),
		"evidence", len(result.EvidenceItems),
		"grounded", result.Grounded)

	return result
}

func buildGroundingPrompt(factRefs, companyRefs []core.Reference, roleKeywords []string, taskContext string) string {
	keywordBlock := "[No explicit role keywords extracted]"
	if len(roleKeywords) > 0 {
		keywords := roleKeywords
		if len(keywords) > maxPromptKeywords {
			keywords = keywords[:maxPromptKeywords]
		}
		keywordBlock = strings.Join(keywords, ", ")
	}
	if strings.TrimSpace(taskContext) == "" {
		taskContext = "[No role context provided]"
	}

	return strings.Join([]string{
		"You are a strict relevance extractor for job applications.",
		"ROLE CONTEXT:",
		taskContext,
		"ROLE KEYWORDS:",
		keywordBlock,
		"FACT REFERENCES:",
		FormatReferences(factRefs),
		"COMPANY REFERENCES:",
		FormatReferences(companyRefs),
		"INSTRUCTIONS:",
		"Select only references that are directly relevant to the role context and keywords.",
		"Prefer software engineering relevance over unrelated domains.",
		"Return strict JSON only with this schema:",
		"{",
		"  \"selected_fact_ids\": [\"fact_1\"],",
		"  \"selected_company_ids\": [\"company_1\"],",
		"  \"evidence\": [",
		"    {\"source_id\": \"fact_1\", \"claim\": \"short grounded claim\", \"why_relevant\": \"short reason\"}",
		"  ]",
		"}",
		"Use only source_id values that exist in provided references.",
		"If nothing is relevant, return empty arrays.",
	}, "\n")
}

// filterIds keeps ids that carry the expected lane prefix and exist in
// the offered universe.
func filterIds(ids []string, prefix string, universe map[string]bool) []string {
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || !strings.HasPrefix(id, prefix+"_") || !universe[id] {
			continue
		}
		kept = append(kept, id)
	}
	return kept
}

func uniqueIds(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRunsRe.ReplaceAllString(s, " "))
}
