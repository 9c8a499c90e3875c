// Package embedding turns chunks and queries into fixed-width numeric
// vectors without calling out to any service. Vectors are produced by
// deterministic feature hashing, optionally augmented with stylometric
// features for voice content. Externally computed vectors can replace
// these wholesale via the bank package's vector swap.
package embedding

import "github.com/A-makarim/ai-job-assistant/core"

// DefaultDimension is the width of locally hashed vectors.
const DefaultDimension = 256

// styleWeight is how strongly the stylometric overlay dominates the
// semantic component for voice content. Voice matching prioritizes
// phrasing pattern over topic.
const styleWeight = 3.2

// Embed produces the vector for text under the given bank type. Facts
// content gets the semantic hashing vector alone; voice content gets
// semantic plus the weighted style overlay. A non-positive dimension
// falls back to DefaultDimension. The result is fully deterministic.
func Embed(text string, bankType core.BankType, dimension int) []float32 {
	if dimension <= 0 {
		dimension = DefaultDimension
	}

	semantic := Semantic(text, dimension)
	if bankType != core.BankTypeVoice {
		return semantic
	}

	style := Style(text, dimension)
	for i := range semantic {
		semantic[i] += style[i] * styleWeight
	}
	return semantic
}
