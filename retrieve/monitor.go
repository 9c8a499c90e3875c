package retrieve

import (
	"github.com/A-makarim/ai-job-assistant/core"
)

// RetrievalMonitor provides hooks to observe a retrieval call.
// Implement this interface to track intermediate steps and results.
type RetrievalMonitor interface {
	Start(query Query)
	AfterQueryEmbedding(external bool)
	AfterLaneSearch(lane core.Lane, snippets []core.Snippet)
	AfterRerank(factPool []core.Snippet)
	AfterGrounding(grounded bool, evidenceCount int)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Query)                                 {}
func (n *noopMonitor) AfterQueryEmbedding(_ bool)                    {}
func (n *noopMonitor) AfterLaneSearch(_ core.Lane, _ []core.Snippet) {}
func (n *noopMonitor) AfterRerank(_ []core.Snippet)                  {}
func (n *noopMonitor) AfterGrounding(_ bool, _ int)                  {}
func (n *noopMonitor) Finish(_ *Result)                              {}
