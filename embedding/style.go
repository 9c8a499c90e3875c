package embedding

import (
	"regexp"
	"strings"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	firstPersonRe   = regexp.MustCompile(`(?i)\b(i|me|my|mine|we|our|ours)\b`)
	contractionRe   = regexp.MustCompile(`(?i)\b\w+'(m|re|ve|ll|d|s|t)\b`)
)

// longSentenceWords is the word count above which a sentence counts as long.
const longSentenceWords = 25

// Style embeds the writing style of text as stylometric ratios placed in
// the leading dimensions of an otherwise-zero vector: sentence length,
// word length, punctuation rates, first-person and contraction rates,
// uppercase and newline rates, type/token ratio and long-sentence rate.
// Each feature is scaled by a fixed divisor so the ratios stay comparable.
func Style(text string, dimension int) []float32 {
	if dimension <= 0 {
		return nil
	}
	vector := make([]float32, dimension)

	source := strings.TrimSpace(strings.ReplaceAll(text, "\r", ""))
	if source == "" {
		return vector
	}

	words := strings.Fields(source)
	sentences := splitSentences(source)

	wordCount := float64(max(len(words), 1))
	sentenceCount := float64(max(len(sentences), 1))
	chars := float64(max(len(source), 1))

	var totalWordLen int
	unique := make(map[string]bool, len(words))
	for _, w := range words {
		totalWordLen += len(w)
		unique[strings.ToLower(w)] = true
	}

	var longSentences int
	for _, s := range sentences {
		if len(strings.Fields(s)) > longSentenceWords {
			longSentences++
		}
	}

	features := []float64{
		float64(len(words)) / sentenceCount / 30,                           // avg words per sentence
		float64(totalWordLen) / wordCount / 10,                             // avg word length
		float64(strings.Count(source, "?")) / sentenceCount,                // question rate
		float64(strings.Count(source, "!")) / sentenceCount,                // exclamation rate
		float64(strings.Count(source, ",")) / sentenceCount,                // comma rate
		float64(strings.Count(source, ";")) / sentenceCount,                // semicolon rate
		float64(len(firstPersonRe.FindAllString(source, -1))) / wordCount * 2,
		float64(len(contractionRe.FindAllString(source, -1))) / wordCount * 2,
		float64(countUppercase(source)) / chars * 4,
		float64(len(unique)) / wordCount, // type/token ratio
		float64(strings.Count(source, "\n")) / chars * 8,
		float64(longSentences) / sentenceCount,
	}

	for i := 0; i < len(features) && i < dimension; i++ {
		vector[i] = float32(features[i])
	}

	return vector
}

// splitSentences breaks text on terminal punctuation, dropping empties.
func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

func countUppercase(text string) int {
	var count int
	for i := 0; i < len(text); i++ {
		if text[i] >= 'A' && text[i] <= 'Z' {
			count++
		}
	}
	return count
}
