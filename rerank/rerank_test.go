package rerank

import (
	"strings"
	"testing"

	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoleText(t *testing.T) {
	assert.Equal(t, "senior cpp and csharp developer", NormalizeRoleText("Senior C++ and C# Developer!"))
	assert.Equal(t, "dotnet platform", NormalizeRoleText(".NET platform"))
	assert.Equal(t, "", NormalizeRoleText("  !!! "))
}

func TestExtractRoleKeywords(t *testing.T) {
	t.Run("repeated tokens selected", func(t *testing.T) {
		text := "payments payments ledger ledger settlement"
		keywords := ExtractRoleKeywords(text)
		assert.Contains(t, keywords, "payments")
		assert.Contains(t, keywords, "ledger")
		assert.NotContains(t, keywords, "settlement")
	})

	t.Run("priority keywords survive single occurrence", func(t *testing.T) {
		keywords := ExtractRoleKeywords("we want a kubernetes wizard")
		assert.Contains(t, keywords, "kubernetes")
		assert.NotContains(t, keywords, "wizard")
	})

	t.Run("stopwords and short tokens dropped", func(t *testing.T) {
		keywords := ExtractRoleKeywords("the job role team company is is go go")
		assert.NotContains(t, keywords, "the")
		assert.NotContains(t, keywords, "job")
		assert.NotContains(t, keywords, "is")
		// "go" is priority but shorter than the three-char token floor.
		assert.NotContains(t, keywords, "go")
	})

	t.Run("frequency ranking", func(t *testing.T) {
		text := strings.Repeat("terraform ", 5) + strings.Repeat("ansible ", 3) + "chef chef"
		keywords := ExtractRoleKeywords(text)
		require.Len(t, keywords, 3)
		assert.Equal(t, []string{"terraform", "ansible", "chef"}, keywords)
	})

	t.Run("fallback to top tokens when filter selects nothing", func(t *testing.T) {
		keywords := ExtractRoleKeywords("quantitative research analyst covering commodities")
		assert.NotEmpty(t, keywords)
		assert.Contains(t, keywords, "quantitative")
	})

	t.Run("cap at 24", func(t *testing.T) {
		var b strings.Builder
		for _, w := range []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
			"golf", "hotel", "india", "juliett", "kilo", "lima", "mike", "november",
			"oscar", "papa", "quebec", "romeo", "sierra", "tango", "uniform", "victor",
			"whiskey", "xray", "yankee", "zulu"} {
			b.WriteString(w + " " + w + " ")
		}
		keywords := ExtractRoleKeywords(b.String())
		assert.Len(t, keywords, 24)
	})

	t.Run("empty context", func(t *testing.T) {
		assert.Empty(t, ExtractRoleKeywords(""))
	})
}

func TestCountKeywordHits(t *testing.T) {
	keywords := []string{"kubernetes", "go", "distributed"}
	assert.Equal(t, 2, CountKeywordHits("Distributed Kubernetes operators", keywords))
	assert.Equal(t, 0, CountKeywordHits("watercolor classes", []string{"kubernetes"}))
	assert.Equal(t, 0, CountKeywordHits("anything", nil))
}

func TestRerank_BlendedScoring(t *testing.T) {
	// Candidate A: two keyword hits at semantic 0.5 beats candidate B with
	// zero hits at semantic 0.9 once the lexical bonus and zero-hit
	// penalty land: 0.72*0.5 + 0.48*(2/3) = 0.68 vs 0.72*0.9 - 0.16 = 0.488.
	keywords := []string{"kubernetes", "go", "distributed"}
	candidates := []core.Snippet{
		{Id: "b", Text: "Award-winning sourdough baking instructor.", Score: 0.9},
		{Id: "a", Text: "Operated distributed kubernetes clusters.", Score: 0.5},
	}

	result := Rerank(candidates, keywords, 2)
	require.Len(t, result, 2)
	assert.Equal(t, "a", result[0].Id)
	assert.Equal(t, "b", result[1].Id)
}

func TestRerank_LexicalGate(t *testing.T) {
	keywords := []string{"kubernetes"}

	t.Run("enough hit-positive candidates excludes zero-hit ones", func(t *testing.T) {
		candidates := []core.Snippet{
			{Id: "h1", Text: "kubernetes operators", Score: 0.2},
			{Id: "h2", Text: "kubernetes upgrades", Score: 0.1},
			{Id: "h3", Text: "kubernetes networking", Score: 0.05},
			{Id: "z", Text: "pottery and glazing", Score: 0.99},
		}
		result := Rerank(candidates, keywords, 3)
		require.Len(t, result, 3)
		for _, s := range result {
			assert.Contains(t, s.Text, "kubernetes")
		}
	})

	t.Run("sparse coverage falls back to blended ranking", func(t *testing.T) {
		candidates := []core.Snippet{
			{Id: "h1", Text: "kubernetes operators", Score: 0.2},
			{Id: "z1", Text: "pottery and glazing", Score: 0.9},
			{Id: "z2", Text: "sourdough baking", Score: 0.8},
		}
		result := Rerank(candidates, keywords, 3)
		require.Len(t, result, 3)
		// One hit-positive candidate is below the min(3, limit) gate, so
		// zero-hit candidates stay eligible.
		ids := []string{result[0].Id, result[1].Id, result[2].Id}
		assert.Contains(t, ids, "z1")
		assert.Contains(t, ids, "z2")
	})
}

func TestRerank_EmptyKeywordsPreservesPoolOrder(t *testing.T) {
	candidates := []core.Snippet{
		{Id: "1", Score: 0.1},
		{Id: "2", Score: 0.9},
		{Id: "3", Score: 0.5},
	}
	result := Rerank(candidates, nil, 2)
	require.Len(t, result, 2)
	assert.Equal(t, "1", result[0].Id)
	assert.Equal(t, "2", result[1].Id)
}

func TestRerank_Limit(t *testing.T) {
	candidates := []core.Snippet{
		{Id: "1", Text: "kubernetes", Score: 0.4},
		{Id: "2", Text: "kubernetes", Score: 0.3},
	}

	t.Run("returns min of limit and pool size", func(t *testing.T) {
		assert.Len(t, Rerank(candidates, []string{"kubernetes"}, 5), 2)
		assert.Len(t, Rerank(candidates, []string{"kubernetes"}, 1), 1)
	})

	t.Run("non-positive limit uses default", func(t *testing.T) {
		assert.Len(t, Rerank(candidates, []string{"kubernetes"}, 0), 2)
	})

	t.Run("empty pool", func(t *testing.T) {
		assert.Empty(t, Rerank(nil, []string{"kubernetes"}, 4))
	})
}
