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

// Package rerank reorders similarity-search candidates by blending their
// semantic score with literal keyword coverage of the target role, so
// snippets that actually mention the role's technologies beat snippets
// that merely live nearby in vector space.
package rerank

import (
	"regexp"
	"sort"
	"strings"
)

// roleStopwords are dropped during keyword extraction: function words plus
// job-posting boilerplate that appears in every listing and carries no
// discriminating signal.
var roleStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"that": true, "this": true, "your": true, "their": true, "into": true,
	"about": true, "have": true, "will": true, "would": true, "should": true,
	"could": true, "our": true, "you": true, "are": true, "job": true,
	"role": true, "team": true, "company": true, "intern": true,
	"internship": true, "position": true, "page": true, "summer": true,
	"application": true, "hiring": true, "candidate": true, "using": true,
	"build": true, "built": true, "work": true, "working": true,
	"skills": true, "experience": true, "requirements": true,
	"responsibilities": true, "qualifications": true, "what": true,
	"who": true, "where": true, "when": true, "why": true,
}

// priorityKeywords are kept even at a single occurrence; they name
// technologies and disciplines that identify a role regardless of how
// often the posting repeats them.
var priorityKeywords = map[string]bool{
	"software": true, "engineering": true, "engineer": true, "backend": true,
	"frontend": true, "fullstack": true, "distributed": true, "systems": true,
	"reliability": true, "infrastructure": true, "networking": true,
	"security": true, "zero": true, "trust": true, "ddos": true,
	"performance": true, "latency": true, "scalability": true, "api": true,
	"apis": true, "microservices": true, "cloud": true, "edge": true,
	"workers": true, "developer": true, "platform": true, "javascript": true,
	"typescript": true, "python": true, "java": true, "go": true,
	"rust": true, "kubernetes": true, "docker": true, "linux": true,
	"databases": true, "postgres": true, "sql": true, "nosql": true,
}

// Keyword extraction caps: at most maxKeywords survive the frequency
// filter; when nothing survives, the top fallbackKeywords by frequency are
// used instead.
const (
	maxKeywords      = 24
	fallbackKeywords = 16
	minKeywordLength = 3
)

var (
	cppFoldRe       = regexp.MustCompile(`\bc\+\+`)
	csharpFoldRe    = regexp.MustCompile(`\bc#`)
	dotnetFoldRe    = regexp.MustCompile(`\.net\b`)
	nonAlnumRoleRe  = regexp.MustCompile(`[^a-z0-9\s]`)
	roleSpaceRunsRe = regexp.MustCompile(`\s+`)
)

// NormalizeRoleText lowercases text, folds the technical terms whose
// punctuation would otherwise be stripped, and collapses everything
// non-alphanumeric to single spaces. Keyword extraction and hit counting
// both run over this form so they agree on token boundaries.
func NormalizeRoleText(text string) string {
	lowered := strings.ToLower(text)
	lowered = cppFoldRe.ReplaceAllString(lowered, " cpp ")
	lowered = csharpFoldRe.ReplaceAllString(lowered, " csharp ")
	lowered = dotnetFoldRe.ReplaceAllString(lowered, " dotnet ")
	lowered = nonAlnumRoleRe.ReplaceAllString(lowered, " ")
	lowered = roleSpaceRunsRe.ReplaceAllString(lowered, " ")
	return strings.TrimSpace(lowered)
}

// ExtractRoleKeywords mines role context (posting text, page title, url)
// for the keywords that characterize the role. Tokens shorter than three
// characters and stopwords are ignored; the rest are ranked by frequency.
// A token is selected when it occurs at least twice or is a priority
// keyword, capped at 24. If the filter selects nothing, the top 16 by
// frequency are returned so downstream reranking always has something to
// work with.
func ExtractRoleKeywords(parts ...string) []string {
	source := strings.Join(parts, " ")
	normalized := NormalizeRoleText(source)
	if normalized == "" {
		return nil
	}

	counts := make(map[string]int)
	order := make([]string, 0, 64)
	for _, token := range strings.Split(normalized, " ") {
		if len(token) < minKeywordLength || roleStopwords[token] {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	// Rank by frequency, first occurrence breaking ties.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	selected := make([]string, 0, maxKeywords)
	for _, keyword := range order {
		if counts[keyword] >= 2 || priorityKeywords[keyword] {
			selected = append(selected, keyword)
		}
		if len(selected) >= maxKeywords {
			break
		}
	}

	if len(selected) == 0 {
		if len(order) > fallbackKeywords {
			order = order[:fallbackKeywords]
		}
		return order
	}
	return selected
}

// CountKeywordHits counts how many keywords occur as literal substrings of
// the normalized text. Each keyword counts at most once.
func CountKeywordHits(text string, keywords []string) int {
	normalized := NormalizeRoleText(text)
	var hits int
	for _, keyword := range keywords {
		if strings.Contains(normalized, keyword) {
			hits++
		}
	}
	return hits
}
