package embedding

import (
	"math"
	"regexp"
	"strings"
)

// stopwords are dropped before hashing; they carry no retrieval signal.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true,
	"will": true, "with": true, "i": true, "you": true, "your": true,
	"my": true, "we": true, "our": true, "they": true, "their": true,
	"or": true, "if": true, "this": true, "those": true, "these": true,
	"into": true, "about": true, "than": true, "then": true,
}

// singleCharTechTokens survive the single-character filter because they
// name real languages.
var singleCharTechTokens = map[string]bool{"c": true, "r": true}

// techTermFolds rewrite multi-token technical terms into single
// alphanumeric tokens before punctuation is stripped, so "node.js" and
// "nodejs" hash to the same bucket.
var techTermFolds = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\bc\+\+`), " cpp "},
	{regexp.MustCompile(`\bc#`), " csharp "},
	{regexp.MustCompile(`\bf#`), " fsharp "},
	{regexp.MustCompile(`\.net\b`), " dotnet "},
	{regexp.MustCompile(`\bnode\.js\b`), " nodejs "},
	{regexp.MustCompile(`\bnext\.js\b`), " nextjs "},
	{regexp.MustCompile(`\breact\.js\b`), " reactjs "},
	{regexp.MustCompile(`\bvue\.js\b`), " vuejs "},
	{regexp.MustCompile(`\bexpress\.js\b`), " expressjs "},
	{regexp.MustCompile(`\bnuxt\.js\b`), " nuxtjs "},
}

var (
	markdownHeaderRe = regexp.MustCompile(`(?m)^\s*#{1,6}\s*`)
	bulletRe         = regexp.MustCompile(`(?m)^\s*[-*•]\s+`)
	dashRe           = regexp.MustCompile(`[–—]`)
	nonSemanticRe    = regexp.MustCompile(`[^a-z0-9+#.\s']`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
	tokenEdgeRe      = regexp.MustCompile(`^[^a-z0-9]+|[^a-z0-9]+$`)
)

// normalizeTechTerms lowercases text and folds known technical terms.
func normalizeTechTerms(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(text, "\r", "")))
	for _, fold := range techTermFolds {
		lowered = fold.pattern.ReplaceAllString(lowered, fold.replacement)
	}
	return lowered
}

// normalizeForSemantic prepares text for tokenization: markdown structure
// and punctuation become whitespace, runs collapse to single spaces.
func normalizeForSemantic(text string) string {
	cleaned := normalizeTechTerms(text)
	cleaned = markdownHeaderRe.ReplaceAllString(cleaned, " ")
	cleaned = bulletRe.ReplaceAllString(cleaned, " ")
	cleaned = dashRe.ReplaceAllString(cleaned, " ")
	cleaned = nonSemanticRe.ReplaceAllString(cleaned, " ")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Tokenize splits normalized text into hashable tokens: stopwords are
// dropped, and single-character tokens survive only when whitelisted.
func Tokenize(text string) []string {
	cleaned := normalizeForSemantic(text)
	if cleaned == "" {
		return nil
	}

	parts := strings.Split(cleaned, " ")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := tokenEdgeRe.ReplaceAllString(part, "")
		if token == "" || stopwords[token] {
			continue
		}
		if len(token) == 1 && !singleCharTechTokens[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// Hash seeds for the two independent projections.
const (
	primarySeed   = 17
	secondarySeed = 97
)

// hashToken computes a seeded FNV-1a 32-bit hash of a token.
func hashToken(token string, seed uint32) uint32 {
	hash := uint32(2166136261) ^ seed
	for i := 0; i < len(token); i++ {
		hash ^= uint32(token[i])
		hash *= 16777619
	}
	return hash
}

// Semantic embeds text with a deterministic two-hash signed projection:
// each token lands in a primary bucket at full weight and a secondary
// bucket at 0.45x, each with its own sign bit. Weight grows with token
// length as 1+ln(1+len). The scheme approximates a sparse embedding while
// bounding collision variance, and is bit-identical across calls for a
// given text and dimension.
func Semantic(text string, dimension int) []float32 {
	if dimension <= 0 {
		return nil
	}
	vector := make([]float32, dimension)

	for _, token := range Tokenize(text) {
		weight := float32(1 + math.Log(1+float64(len(token))))

		baseHash := hashToken(token, primarySeed)
		vector[baseHash%uint32(dimension)] += sign(baseHash) * weight

		altHash := hashToken(token, secondarySeed)
		vector[altHash%uint32(dimension)] += sign(altHash) * weight * 0.45
	}

	return vector
}

// sign derives the projection sign from the second-lowest hash bit.
func sign(hash uint32) float32 {
	if (hash>>1)&1 == 0 {
		return 1
	}
	return -1
}
