package mock

import (
	"context"
	"hash/fnv"
)

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
type MockEmbedder struct {
	// EmbedDocumentsFunc is called by EmbedDocuments if set.
	// If nil, uses default deterministic behavior.
	EmbedDocumentsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQueryFunc is called by EmbedQuery if set.
	// If nil, uses default deterministic behavior.
	EmbedQueryFunc func(ctx context.Context, text string) ([]float32, error)

	// ModelName is returned by Model. Defaults to "mock-embedder".
	ModelName string

	// Dimension is the width of default deterministic vectors.
	// Defaults to 384.
	Dimension int

	callCount int
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: returns the concrete type so tests can inject behavior and assert calls.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{ModelName: "mock-embedder", Dimension: 384}
}

// EmbedDocuments generates deterministic embeddings, one per input text.
func (m *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedDocumentsFunc != nil {
		return m.EmbedDocumentsFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = deterministicVector(text, m.dimension())
	}
	return vectors, nil
}

// EmbedQuery generates a deterministic embedding based on the text hash.
func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedQueryFunc != nil {
		return m.EmbedQueryFunc(ctx, text)
	}
	return deterministicVector(text, m.dimension()), nil
}

// Model returns the configured model name.
func (m *MockEmbedder) Model() string {
	if m.ModelName == "" {
		return "mock-embedder"
	}
	return m.ModelName
}

// CallCount returns the number of times any embedding method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedDocumentsFunc = nil
	m.EmbedQueryFunc = nil
}

func (m *MockEmbedder) dimension() int {
	if m.Dimension <= 0 {
		return 384
	}
	return m.Dimension
}

// deterministicVector creates a unit-length embedding from a text hash so
// the same text always produces the same vector.
func deterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%2000)/1000.0 - 1.0
	}

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		inv := float32(1.0 / sumSquares)
		for i := range vector {
			vector[i] *= inv
		}
	}

	return vector
}
