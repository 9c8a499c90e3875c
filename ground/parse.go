// Copyright 2025 The ai-job-assistant Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ground

import (
	"encoding/json"
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)```")

// candidateExtractors produce JSON candidates from a raw model response,
// in priority order: the whole response, the contents of any code-fenced
// blocks, then the span between the first '{' and the last '}'. The first
// candidate that unmarshals wins.
var candidateExtractors = []func(string) []string{
	wholeResponse,
	fencedBlocks,
	braceSpan,
}

func wholeResponse(raw string) []string {
	return []string{raw}
}

func fencedBlocks(raw string) []string {
	matches := codeFenceRe.FindAllStringSubmatch(raw, -1)
	candidates := make([]string, 0, len(matches))
	for _, match := range matches {
		if fenced := strings.TrimSpace(match[1]); fenced != "" {
			candidates = append(candidates, fenced)
		}
	}
	return candidates
}

func braceSpan(raw string) []string {
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first < 0 || last <= first {
		return nil
	}
	return []string{raw[first : last+1]}
}

// ExtractJSON pulls a JSON object out of a free-text model response and
// unmarshals it into v. Each candidate runs through repairJSON before the
// unmarshal attempt. Returns false when no candidate parses.
func ExtractJSON(raw string, v any) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	for _, extract := range candidateExtractors {
		for _, candidate := range extract(raw) {
			if err := json.Unmarshal([]byte(repairJSON(candidate)), v); err == nil {
				return true
			}
		}
	}
	return false
}

// repairJSON attempts to fix common JSON formatting issues from model
// responses. It specifically handles missing opening quotes before keys,
// e.g. `, claim":` becomes `, "claim":`.
func repairJSON(s string) string {
	result := []rune(s)
	fixed := make([]rune, 0, len(result)+16)

	i := 0
	for i < len(result) {
		ch := result[i]

		// After { or , look for unquoted keys.
		if ch == '{' || ch == ',' {
			fixed = append(fixed, ch)
			i++

			for i < len(result) && (result[i] == ' ' || result[i] == '\n' || result[i] == '\t') {
				fixed = append(fixed, result[i])
				i++
			}

			if i < len(result) && result[i] != '"' && isLetter(result[i]) {
				keyStart := i
				for i < len(result) && (isLetter(result[i]) || result[i] == '_' || result[i] == ' ') {
					i++
				}
				keyEnd := i

				// A bare word followed by ": means the opening quote is missing.
				if i+1 < len(result) && result[i] == '"' && result[i+1] == ':' {
					fixed = append(fixed, '"')
					for j := keyStart; j < keyEnd; j++ {
						if result[j] != ' ' || (j > keyStart && j < keyEnd-1) {
							fixed = append(fixed, result[j])
						}
					}
					continue
				}

				// Not an unquoted key, copy what we skipped.
				for j := keyStart; j < i; j++ {
					fixed = append(fixed, result[j])
				}
			}
		} else {
			fixed = append(fixed, ch)
			i++
		}
	}

	return string(fixed)
}

// isLetter reports whether the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
