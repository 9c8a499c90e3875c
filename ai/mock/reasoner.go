package mock

import "context"

// MockReasoner is a test double for ai.Reasoner.
// It allows custom behavior injection via function fields.
type MockReasoner struct {
	// GenerateFunc is called by Generate if set.
	// If nil, Response is returned.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	// Response is the canned reply returned when GenerateFunc is nil.
	// Defaults to an empty-selection JSON object.
	Response string

	callCount  int
	lastPrompt string
}

// NewMockReasoner creates a mock reasoner that returns an empty-selection
// structured response by default.
// Note: returns the concrete type so tests can inject behavior and assert calls.
func NewMockReasoner() *MockReasoner {
	return &MockReasoner{
		Response: `{"selected_fact_ids": [], "selected_company_ids": [], "evidence": []}`,
	}
}

// Generate records the prompt and returns the injected or canned response.
func (m *MockReasoner) Generate(ctx context.Context, prompt string) (string, error) {
	m.callCount++
	m.lastPrompt = prompt

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return m.Response, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockReasoner) CallCount() int {
	return m.callCount
}

// LastPrompt returns the most recent prompt passed to Generate.
func (m *MockReasoner) LastPrompt() string {
	return m.lastPrompt
}

// Reset clears the call count, recorded prompt and injected behavior.
func (m *MockReasoner) Reset() {
	m.callCount = 0
	m.lastPrompt = ""
	m.GenerateFunc = nil
}
