package search

import (
	"unicode"

	"github.com/lexiserve/lexiserve/internal/store"
)

// equalFold is a cheap case-insensitive rune comparison: identical runes
// match at once, anything else is compared after unicode.ToLower.
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	return unicode.ToLower(a) == unicode.ToLower(b)
}

// FuzzySubsequenceSearch implements SPEC_FULL §4.2's Fuzzy-subsequence
// primitive. A candidate passes if query's runes occur in order (not
// necessarily contiguous) inside the candidate's text; its raw score is
// the greedy-match span (last matched rune index minus first). Scores are
// normalized by min-max inversion across every passing candidate after
// the full scan.
func FuzzySubsequenceSearch(s *store.Store, query string) []Match {
	queryRunes := []rune(query)
	qLen := len(queryRunes)
	if qLen == 0 {
		return nil
	}

	type pending struct {
		entry store.EntryView
		span  int
	}
	var spans []pending
	minSpan, maxSpan := -1, -1

	for _, e := range s.GetAll() {
		candRunes := []rune(e.Text)
		if len(candRunes) < qLen {
			continue
		}
		// No length-ratio pre-filter here: a short query can legitimately
		// subsequence-match deep into a long candidate (SPEC_FULL §8 S2,
		// e.g. "g4" against "openai/gpt-4o-2024-08-06"), so ratio alone
		// can't tell a real match from noise. containsAllRunes is the
		// cheap reject before paying for the full scan below.
		if !containsAllRunes(candRunes, queryRunes) {
			continue
		}
		first, last, ok := greedySubsequenceSpan(queryRunes, candRunes)
		if !ok {
			continue
		}
		span := last - first
		spans = append(spans, pending{entry: e, span: span})
		if minSpan == -1 || span < minSpan {
			minSpan = span
		}
		if maxSpan == -1 || span > maxSpan {
			maxSpan = span
		}
	}

	out := make([]Match, 0, len(spans))
	for _, p := range spans {
		var norm float64
		if maxSpan == minSpan {
			norm = 1
		} else {
			norm = 1 - float64(p.span-minSpan)/float64(maxSpan-minSpan)
		}
		if norm < 0 {
			norm = 0
		}
		if norm > 1 {
			norm = 1
		}
		out = append(out, Match{
			Handle:     p.entry.Handle,
			Text:       p.entry.Text,
			Frequency:  p.entry.Frequency,
			AgeDays:    p.entry.AgeDays,
			Raw:        float64(p.span),
			Normalized: norm,
		})
	}
	return out
}

func containsAllRunes(cand, query []rune) bool {
	set := make(map[rune]bool, len(cand))
	for _, r := range cand {
		set[unicode.ToLower(r)] = true
	}
	for _, r := range query {
		if !set[unicode.ToLower(r)] {
			return false
		}
	}
	return true
}

// greedySubsequenceSpan performs the same left-to-right scan as the
// teacher's runFuzzyMatch, but records only the first and last matched
// positions instead of accumulating a bonus score.
func greedySubsequenceSpan(pattern, candidate []rune) (first, last int, ok bool) {
	patternIndex := 0
	first, last = -1, -1
	for i, c := range candidate {
		if patternIndex >= len(pattern) {
			break
		}
		if equalFold(c, pattern[patternIndex]) {
			if first == -1 {
				first = i
			}
			last = i
			patternIndex++
		}
	}
	if patternIndex < len(pattern) {
		return 0, 0, false
	}
	return first, last, true
}
