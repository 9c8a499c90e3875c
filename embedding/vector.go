package embedding

import "math"

// Dot calculates the dot product of two vectors.
// When lengths differ, only the shared prefix contributes.
func Dot(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the Euclidean length of a vector.
func Norm(v []float32) float32 {
	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	return float32(math.Sqrt(sum))
}

// Cosine computes cosine similarity using precomputed norms.
// It is defined as 0 when either vector is empty or has zero norm.
func Cosine(a, b []float32, normA, normB float32) float32 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if normA == 0 {
		normA = Norm(a)
	}
	if normB == 0 {
		normB = Norm(b)
	}
	denom := normA * normB
	if denom == 0 {
		return 0
	}
	return Dot(a, b) / denom
}

// CosineSimilarity computes cosine similarity, deriving both norms.
func CosineSimilarity(a, b []float32) float32 {
	return Cosine(a, b, Norm(a), Norm(b))
}

// Normalize returns a unit-length copy of v.
// A zero vector normalizes to a zero vector of the same length.
func Normalize(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	magnitude := Norm(v)
	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}

	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}
