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
	"fmt"
	"regexp"
	"strings"

	"github.com/A-makarim/ai-job-assistant/core"
)

// DefaultCompressChars is the budget CompressText uses when given a
// non-positive limit.
const DefaultCompressChars = 360

// Sentinels rendered into prompts and evidence blocks in place of missing
// content.
const (
	NoReferencesSentinel      = "[No references found]"
	NoEvidenceSentinel        = "[No structured evidence extracted]"
	sourceUnavailableSentinel = "[Source text unavailable]"
)

var (
	spaceRunsRe = regexp.MustCompile(`\s+`)
	sentenceRe  = regexp.MustCompile(`[^.!?]+[.!?]?`)
)

// CompressText shortens text to roughly maxChars by accumulating whole
// sentences until the next one would overflow. When not even the first
// sentence fits, it hard-truncates with an ellipsis instead. Whitespace is
// collapsed first so the budget measures content.
func CompressText(text string, maxChars int) string {
	cleaned := strings.TrimSpace(spaceRunsRe.ReplaceAllString(text, " "))
	if cleaned == "" {
		return cleaned
	}
	if maxChars <= 0 {
		maxChars = DefaultCompressChars
	}
	if len(cleaned) <= maxChars {
		return cleaned
	}

	sentences := sentenceRe.FindAllString(cleaned, -1)
	if len(sentences) == 0 {
		sentences = []string{cleaned}
	}

	var selected string
	for _, sentence := range sentences {
		candidate := strings.TrimSpace(selected + " " + sentence)
		if len(candidate) > maxChars {
			break
		}
		selected = candidate
	}

	if selected == "" {
		cut := maxChars - 3
		if cut < 120 {
			cut = 120
		}
		selected = strings.TrimSpace(cleaned[:min(cut, len(cleaned))]) + "..."
	}
	return selected
}

// RefMaxChars is the display budget for reference texts offered to the
// reasoning service.
const RefMaxChars = 220

// BuildReferences assigns each snippet a stable per-call id of the form
// prefix_1, prefix_2, … and a compressed display text. The ids are what
// the reasoning service cites; they are never persisted.
func BuildReferences(snippets []core.Snippet, prefix string, maxChars int) []core.Reference {
	if maxChars <= 0 {
		maxChars = RefMaxChars
	}
	refs := make([]core.Reference, len(snippets))
	for i, snippet := range snippets {
		refs[i] = core.Reference{
			RefId:   fmt.Sprintf("%s_%d", prefix, i+1),
			Text:    CompressText(snippet.Text, maxChars),
			Snippet: snippet,
		}
	}
	return refs
}

// FormatReferences renders references for inclusion in a prompt, one
// "[id] text" block per reference.
func FormatReferences(refs []core.Reference) string {
	if len(refs) == 0 {
		return NoReferencesSentinel
	}
	lines := make([]string, len(refs))
	for i, ref := range refs {
		lines[i] = "[" + ref.RefId + "] " + ref.Text
	}
	return strings.Join(lines, "\n\n")
}

// ChooseByReferenceIDs resolves requested reference ids back to their
// snippets, preserving request order and dropping duplicates and unknown
// ids. When nothing resolves it falls back to the first fallbackLimit
// references in original pool order; a negative fallbackLimit means all
// of them.
func ChooseByReferenceIDs(refs []core.Reference, requestedIds []string, fallbackLimit int) []core.Snippet {
	byId := make(map[string]*core.Reference, len(refs))
	for i := range refs {
		byId[refs[i].RefId] = &refs[i]
	}

	seen := make(map[string]bool, len(requestedIds))
	picked := make([]core.Snippet, 0, len(requestedIds))
	for _, id := range requestedIds {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if ref, ok := byId[id]; ok {
			picked = append(picked, ref.Snippet)
		}
	}
	if len(picked) > 0 {
		return picked
	}

	if fallbackLimit < 0 || fallbackLimit > len(refs) {
		fallbackLimit = len(refs)
	}
	fallback := make([]core.Snippet, 0, fallbackLimit)
	for _, ref := range refs[:fallbackLimit] {
		fallback = append(fallback, ref.Snippet)
	}
	return fallback
}

// FormatEvidence renders the grounded evidence set as one line per item:
//
//	[id] claim | Why relevant: reason | Source: text
//
// The reason segment is omitted when empty, and a missing source resolves
// to an explicit placeholder. An empty evidence set renders as the
// no-evidence sentinel so downstream prompts stay well-formed.
func FormatEvidence(items []core.EvidenceItem, factRefs, companyRefs []core.Reference) string {
	if len(items) == 0 {
		return NoEvidenceSentinel
	}

	sources := make(map[string]string, len(factRefs)+len(companyRefs))
	for _, ref := range factRefs {
		sources[ref.RefId] = ref.Text
	}
	for _, ref := range companyRefs {
		sources[ref.RefId] = ref.Text
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		sourceText, ok := sources[item.SourceId]
		if !ok {
			sourceText = sourceUnavailableSentinel
		}
		line := "[" + item.SourceId + "] " + item.Claim
		if item.WhyRelevant != "" {
			line += " | Why relevant: " + item.WhyRelevant
		}
		line += " | Source: " + sourceText
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n\n")
}
