// Package chunk splits raw source text into bounded, boundary-aware
// overlapping windows suitable for embedding and indexing.
package chunk

import "strings"

// Default chunking parameters, tuned for resume/notes-sized documents.
const (
	DefaultMaxChars     = 700
	DefaultOverlapChars = 140
	DefaultMinChars     = 80

	// MinWindow and MaxWindow bound the window size; out-of-range values
	// are clamped, never rejected.
	MinWindow = 250
	MaxWindow = 2000

	// boundaryFloor is the minimum offset into the lookback region at which
	// a sentence boundary is accepted. Boundaries earlier than this would
	// produce degenerate micro-chunks.
	boundaryFloor = 20
)

// Options configures the splitter. The zero value selects all defaults.
type Options struct {
	// MaxChars is the window size. Clamped to [MinWindow, MaxWindow].
	MaxChars int

	// OverlapChars is how far consecutive windows overlap.
	// Clamped to [0, MaxChars/2].
	OverlapChars int

	// MinChars is the minimum length a slice must have to be emitted.
	MinChars int
}

// normalized returns a copy of the options with defaults applied and all
// values clamped into their documented ranges.
func (o Options) normalized() Options {
	if o.MaxChars == 0 {
		o.MaxChars = DefaultMaxChars
	}
	if o.OverlapChars == 0 {
		o.OverlapChars = DefaultOverlapChars
	}
	if o.MinChars == 0 {
		o.MinChars = DefaultMinChars
	}

	o.MaxChars = clamp(o.MaxChars, MinWindow, MaxWindow)
	o.OverlapChars = clamp(o.OverlapChars, 0, o.MaxChars/2)

	return o
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// normalizeText strips carriage returns and surrounding whitespace.
func normalizeText(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\r", ""))
}

// Split slides a window of MaxChars across the text. When the window does
// not reach the end of the text, the last 40% of the window is searched for
// the rightmost sentence or paragraph boundary, which is accepted only if
// it lies at least boundaryFloor characters into that region. Slices
// shorter than MinChars are skipped. The cursor always advances by at
// least one character, so the scan terminates even when the overlap is as
// large as the window progress.
//
// Empty input yields an empty slice. If no slice qualifies but the input
// is non-empty, the whole trimmed input is emitted as a single fallback
// chunk.
func Split(text string, opts Options) []string {
	normalized := normalizeText(text)
	if normalized == "" {
		return nil
	}

	opts = opts.normalized()

	var chunks []string
	cursor := 0

	for cursor < len(normalized) {
		tentativeEnd := cursor + opts.MaxChars
		if tentativeEnd > len(normalized) {
			tentativeEnd = len(normalized)
		}

		if tentativeEnd < len(normalized) {
			lookbackStart := cursor + (opts.MaxChars*6)/10
			boundary := rightmostBoundary(normalized[lookbackStart:tentativeEnd])
			if boundary > boundaryFloor {
				tentativeEnd = lookbackStart + boundary + 1
			}
		}

		slice := strings.TrimSpace(normalized[cursor:tentativeEnd])
		if len(slice) >= opts.MinChars {
			chunks = append(chunks, slice)
		}

		if tentativeEnd >= len(normalized) {
			break
		}

		next := tentativeEnd - opts.OverlapChars
		if next > cursor {
			cursor = next
		} else {
			cursor++
		}
	}

	if len(chunks) == 0 {
		return []string{normalized}
	}

	return chunks
}

// rightmostBoundary finds the rightmost sentence or paragraph boundary in
// the lookback region, or -1 when none exists.
func rightmostBoundary(lookback string) int {
	boundary := strings.LastIndex(lookback, ". ")
	for _, marker := range []string{"? ", "! ", "\n"} {
		if idx := strings.LastIndex(lookback, marker); idx > boundary {
			boundary = idx
		}
	}
	return boundary
}
