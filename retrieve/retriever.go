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

package retrieve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/A-makarim/ai-job-assistant/ai"
	"github.com/A-makarim/ai-job-assistant/bank"
	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/A-makarim/ai-job-assistant/ground"
	"github.com/A-makarim/ai-job-assistant/rerank"
	"github.com/A-makarim/ai-job-assistant/storage"
	"github.com/panjf2000/ants/v2"
)

// Pool sizing for the retrieval pipeline. The fact lane is searched
// wide and narrowed by the reranker; the company pool stays oversized
// so the grounding pass has real choices.
const (
	factCandidateTopK = 40
	minResumeTopK     = 8
	minCompanyPool    = 16
)

// Status reports the deepest degradation a retrieval call took.
// Ordered from best to worst outcome.
type Status int

const (
	// StatusGrounded means the grounding pass selected the evidence.
	StatusGrounded Status = iota

	// StatusLexicalFallback means grounding was unavailable or returned
	// nothing usable; the hybrid reranker's own selection was kept.
	StatusLexicalFallback

	// StatusLocalVectors means the external query embedding failed, so
	// the whole call searched with locally hashed vectors.
	StatusLocalVectors
)

func (s Status) String() string {
	switch s {
	case StatusGrounded:
		return "grounded"
	case StatusLexicalFallback:
		return "lexical-fallback"
	case StatusLocalVectors:
		return "local-vectors"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Query carries everything known about one retrieval request. Only
// Question is required; the other fields sharpen lane queries and role
// keyword extraction when present.
type Query struct {
	// Question is the task or question to retrieve evidence for.
	Question string

	// PageContext is visible text around the question (role description,
	// form labels).
	PageContext string

	// PageURL is the page address, used for company lane queries and
	// keyword extraction.
	PageURL string

	// ExistingText is a draft already written, used to sharpen the fact
	// lane query.
	ExistingText string

	// JobPageText is the full job posting text when available.
	JobPageText string
}

// Result is the outcome of one retrieval call.
type Result struct {
	FactSnippets    []core.Snippet
	CompanySnippets []core.Snippet
	VoiceSnippets   []core.Snippet
	ProfileSnippets []core.Snippet

	// RoleKeywords are the extracted keywords the rerank and grounding
	// stages worked with.
	RoleKeywords []string

	// EvidenceBlock is the formatted grounded evidence, or the
	// no-evidence sentinel when grounding contributed nothing.
	EvidenceBlock string

	Status Status

	// Grounded reports whether FactSnippets and CompanySnippets came
	// from the grounding selection rather than the reranker's own.
	Grounded bool
}

// Retriever runs generation-time retrieval over persisted lane indexes.
type Retriever struct {
	repository storage.IndexRepository
	embedder   ai.Embedder
	grounder   *ground.Grounder
	pool       *ants.Pool
	limits     Limits
	logger     *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithProvider wires the external services from an ai.Provider: its
// embedder for query vectors and its reasoner for the grounding pass.
func WithProvider(provider ai.Provider) Option {
	return func(r *Retriever) error {
		if provider == nil {
			return nil
		}
		r.embedder = provider.Embedder()
		if reasoner := provider.Reasoner(); reasoner != nil {
			grounder, err := ground.NewGrounder(reasoner)
			if err != nil {
				return err
			}
			r.grounder = grounder
		}
		return nil
	}
}

// WithEmbedder sets the external embedding service for query vectors.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(r *Retriever) error {
		r.embedder = embedder
		return nil
	}
}

// WithGrounder sets the grounding pass. Without one, retrieval always
// keeps the reranker's selection.
func WithGrounder(grounder *ground.Grounder) Option {
	return func(r *Retriever) error {
		r.grounder = grounder
		return nil
	}
}

// WithLimits sets the per-lane snippet caps.
func WithLimits(limits Limits) Option {
	return func(r *Retriever) error {
		r.limits = limits.normalized()
		return nil
	}
}

// NewRetriever creates a retriever over the given repository.
func NewRetriever(repository storage.IndexRepository, opts ...Option) (*Retriever, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	// One worker per concurrent lane query embedding.
	pool, err := ants.NewPool(3)
	if err != nil {
		return nil, err
	}

	r := &Retriever{
		repository: repository,
		pool:       pool,
		limits:     DefaultLimits(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}
	return r, nil
}

// Retrieve runs one retrieval call.
func (r *Retriever) Retrieve(ctx context.Context, query Query) (*Result, error) {
	return r.RetrieveWithMonitor(ctx, query, nil)
}

// RetrieveWithMonitor runs one retrieval call with monitoring. The
// monitor receives callbacks at each stage of the pipeline.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, query Query, monitor RetrievalMonitor) (*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	factIndex, err := r.loadRequired(ctx, core.LaneFacts)
	if err != nil {
		return nil, err
	}
	voiceIndex, err := r.loadRequired(ctx, core.LaneVoice)
	if err != nil {
		return nil, err
	}
	resumeIndex := r.loadOptional(ctx, core.LaneResume)
	profileIndex := r.loadOptional(ctx, core.LaneProfile)
	companyIndex := r.loadOptional(ctx, core.LaneCompany)

	factQuery := joinNonEmpty(query.Question, query.PageContext, query.ExistingText)
	voiceQuery := joinNonEmpty(query.Question, query.PageContext)
	companyQuery := joinNonEmpty(query.Question, query.PageContext, query.PageURL)
	roleKeywords := rerank.ExtractRoleKeywords(query.PageContext, query.PageURL, query.JobPageText)

	// External query vectors only make sense when the indexes were built
	// with external embeddings; otherwise local hashing is the one true
	// vector space, not a degradation.
	externalApplicable := r.embedder != nil && factIndex.EmbeddingModel != ""
	external := externalApplicable
	var vectors queryVectors
	if external {
		vectors, external = r.embedQueries(ctx, factQuery, voiceQuery, companyQuery, companyIndex != nil)
		if !external {
			r.logger.Warn("query embedding degraded to local vectors")
		}
	}
	monitor.AfterQueryEmbedding(external)

	factCandidates := searchLane(*factIndex, vectors.fact, factQuery, factCandidateTopK, external)
	monitor.AfterLaneSearch(core.LaneFacts, factCandidates)

	voiceSnippets := searchLane(*voiceIndex, vectors.voice, voiceQuery, r.limits.Voice, external)
	monitor.AfterLaneSearch(core.LaneVoice, voiceSnippets)

	var companyPool []core.Snippet
	if companyIndex != nil {
		companyPool = searchLane(*companyIndex, vectors.company, companyQuery,
			max(r.limits.Company*3, minCompanyPool), external)
		monitor.AfterLaneSearch(core.LaneCompany, companyPool)
	}

	if resumeIndex != nil {
		resumeSnippets := searchLane(*resumeIndex, vectors.fact, factQuery,
			max(r.limits.Resume, minResumeTopK), external)
		monitor.AfterLaneSearch(core.LaneResume, resumeSnippets)
		factCandidates = append(factCandidates, resumeSnippets...)
	}

	var profileSnippets []core.Snippet
	if profileIndex != nil {
		profileSnippets = searchLane(*profileIndex, vectors.fact, factQuery, r.limits.Profile, external)
		monitor.AfterLaneSearch(core.LaneProfile, profileSnippets)
	}

	factPool := rerank.Rerank(factCandidates, roleKeywords, rerank.DefaultLimit)
	monitor.AfterRerank(factPool)

	result := &Result{
		FactSnippets:    head(factPool, r.limits.Facts),
		CompanySnippets: head(companyPool, r.limits.Company),
		VoiceSnippets:   voiceSnippets,
		ProfileSnippets: profileSnippets,
		RoleKeywords:    roleKeywords,
		EvidenceBlock:   ground.NoEvidenceSentinel,
		Status:          StatusLexicalFallback,
	}

	if r.grounder != nil {
		taskContext := joinNonEmpty(query.PageContext, query.JobPageText)
		grounding := r.grounder.Ground(ctx, factPool, companyPool, roleKeywords, taskContext)
		monitor.AfterGrounding(grounding.Grounded, len(grounding.EvidenceItems))

		if grounding.Grounded {
			result.FactSnippets = ground.ChooseByReferenceIDs(grounding.FactRefs, grounding.SelectedFactIds, r.limits.Facts)
			result.CompanySnippets = ground.ChooseByReferenceIDs(grounding.CompanyRefs, grounding.SelectedCompanyIds, r.limits.Company)
			result.EvidenceBlock = ground.FormatEvidence(grounding.EvidenceItems, grounding.FactRefs, grounding.CompanyRefs)
			result.Grounded = true
			result.Status = StatusGrounded
		}
	}

	if externalApplicable && !external {
		result.Status = StatusLocalVectors
	}

	r.logger.Debug("retrieval complete",
		"status", result.Status.String(),
		"facts", len(result.FactSnippets),
		"company", len(result.CompanySnippets),
		"voice", len(result.VoiceSnippets),
		"keywords", len(result.RoleKeywords))

	monitor.Finish(result)
	return result, nil
}

// Release releases the embedding worker pool.
// The retriever should not be used after calling Release.
func (r *Retriever) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

func (r *Retriever) loadRequired(ctx context.Context, lane core.Lane) (*core.Index, error) {
	index, err := r.repository.LoadIndex(ctx, lane)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: lane %q has no index", ErrMissingLaneIndexes, lane)
		}
		return nil, fmt.Errorf("loading lane %q: %w", lane, err)
	}
	return index, nil
}

func (r *Retriever) loadOptional(ctx context.Context, lane core.Lane) *core.Index {
	index, err := r.repository.LoadIndex(ctx, lane)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("skipping unreadable lane index", "lane", lane, "err", err)
		}
		return nil
	}
	return index
}

type queryVectors struct {
	fact    []float32
	voice   []float32
	company []float32
}

// embedQueries issues the per-lane query embeddings concurrently and
// joins them. If any needed embedding fails, the whole batch is
// discarded so the call degrades uniformly to local hashing instead of
// mixing vector spaces.
func (r *Retriever) embedQueries(ctx context.Context, factQuery, voiceQuery, companyQuery string, needCompany bool) (queryVectors, bool) {
	type task struct {
		text   string
		target *[]float32
	}

	var vectors queryVectors
	tasks := []task{
		{factQuery, &vectors.fact},
		{voiceQuery, &vectors.voice},
	}
	if needCompany {
		tasks = append(tasks, task{companyQuery, &vectors.company})
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed bool
	)
	for _, tk := range tasks {
		wg.Add(1)
		submitErr := r.pool.Submit(func() {
			defer wg.Done()
			vector, err := r.embedder.EmbedQuery(ctx, tk.text)
			if err != nil || len(vector) == 0 {
				r.logger.Warn("query embedding failed", "err", err)
				mu.Lock()
				failed = true
				mu.Unlock()
				return
			}
			*tk.target = vector
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			failed = true
			mu.Unlock()
		}
	}
	wg.Wait()

	if failed {
		return queryVectors{}, false
	}
	return vectors, true
}

// searchLane searches one index with the external query vector when the
// call runs externally, or embeds the query text locally otherwise.
func searchLane(index core.Index, vector []float32, queryText string, topK int, external bool) []core.Snippet {
	if external {
		return bank.SearchVector(index, vector, topK, bank.DefaultMinScore)
	}
	return bank.Search(index, queryText, topK, bank.DefaultMinScore)
}

func head(snippets []core.Snippet, limit int) []core.Snippet {
	if len(snippets) > limit {
		return snippets[:limit]
	}
	return snippets
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n")
}
