package search

import (
	"strings"

	"github.com/lexiserve/lexiserve/internal/store"
)

// PrefixSearch implements SPEC_FULL §4.2's Prefix primitive: binary-search
// (or trie-accelerated) walk over the sorted index, scoring an exact-case
// match 1.0 and a case-folded-only match 0.8.
func PrefixSearch(s *store.Store, query string, useTrie bool) []Match {
	if query == "" {
		return nil
	}
	lowerQuery := strings.ToLower(query)

	seen := make(map[store.Handle]bool)
	var out []Match

	collect := func(candidates []store.EntryView) {
		for _, e := range candidates {
			if seen[e.Handle] {
				continue
			}
			var raw float64
			if strings.HasPrefix(e.Text, query) {
				raw = 1.0
			} else if strings.HasPrefix(strings.ToLower(e.Text), lowerQuery) {
				raw = 0.8
			} else {
				continue
			}
			seen[e.Handle] = true
			out = append(out, Match{
				Handle:     e.Handle,
				Text:       e.Text,
				Frequency:  e.Frequency,
				AgeDays:    e.AgeDays,
				Raw:        raw,
				Normalized: raw,
			})
		}
	}

	// The accelerated path (binary search or trie mirror) finds every
	// exact-case match in O(k + matches). Case-folded-only matches (an
	// entry whose casing differs from the query, e.g. "Hello" vs. query
	// "hel") can sort anywhere relative to `query` in the byte-ordered
	// index, so catching them requires a full scan; `seen` keeps that
	// scan from double-scoring what the fast path already found.
	collect(s.PrefixMatches(query, useTrie))
	collect(allEntries(s))
	return out
}

func allEntries(s *store.Store) []store.EntryView {
	return s.GetAll()
}

// IsTruePrefixMatch reports whether query is a case-sensitive prefix of
// text, used by the engine's short-circuit test (SPEC_FULL §4.4 step 2).
func IsTruePrefixMatch(text, query string) bool {
	return strings.HasPrefix(text, query)
}
