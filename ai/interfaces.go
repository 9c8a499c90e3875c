package ai

import "context"

// Embedder generates dense vector embeddings from text via an external
// service. Implementations must be thread-safe for concurrent use.
//
// Documents and queries use distinct task types on services that
// distinguish them; vectors from the two methods live in the same space
// and are directly comparable.
type Embedder interface {
	// EmbedDocuments embeds a batch of document texts. The returned slice
	// is order-aligned with texts, one vector per input, all the same
	// length. Any shape mismatch is an error.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a single query string.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Model identifies the embedding model, recorded on indexes whose
	// vectors it produced so searches never mix vector spaces.
	Model() string
}

// Reasoner answers a free-text prompt with a free-text response. The
// grounding pass sends one prompt per call and parses the structured
// object out of the reply itself; implementations should not retry.
type Reasoner interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Embedder returns the embedding service. Safe for concurrent use.
	Embedder() Embedder

	// Reasoner returns the reasoning service. Safe for concurrent use.
	Reasoner() Reasoner

	// Close releases resources held by the provider and its services.
	Close() error
}
