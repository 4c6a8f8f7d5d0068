// Package engine implements best_completions, the progressive, short-
// circuiting completion executor described in SPEC_FULL §4.4, wrapped by
// an LRU result cache that is purged wholesale on any Store mutation.
package engine

import (
	"fmt"
	"sync"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lexiserve/lexiserve/internal/rank"
	"github.com/lexiserve/lexiserve/internal/search"
	"github.com/lexiserve/lexiserve/internal/store"
)

// DefaultLimit is used when a caller supplies limit <= 0.
const DefaultLimit = 15

// DefaultCacheSize is the default result-cache entry count.
const DefaultCacheSize = 512

// earlyTerminationThreshold is the normalized score a candidate from any
// primitive run so far must clear to count toward `limit` when
// best_completions decides whether to run JARO_WINKLER and SUBSTRING.
const earlyTerminationThreshold = 0.7

// Result is one ranked completion.
type Result struct {
	Handle    store.Handle
	Text      string
	Frequency uint16
	AgeDays   int32
	Score     float64
}

type cacheKey struct {
	query string
	limit int
}

// Engine runs best_completions against a Store, caching results.
type Engine struct {
	store *store.Store
	cache *lru.Cache[cacheKey, []Result]

	mu                     sync.Mutex
	hits, misses           uint64
}

// New builds an Engine over s with a result cache of cacheSize entries.
func New(s *store.Store, cacheSize int) *Engine {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	c, _ := lru.New[cacheKey, []Result](cacheSize)
	return &Engine{store: s, cache: c}
}

// InvalidateCache purges the entire result cache. Called by collaborators
// after any Store mutation (insert, remove, clear, load) per SPEC_FULL §4.4.
func (e *Engine) InvalidateCache() {
	e.cache.Purge()
}

// Stats reports cache hit/miss counters for the wire protocol's `stats`
// command (SPEC_FULL §6).
func (e *Engine) Stats() (hits, misses uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hits, e.misses
}

// BestCompletions implements SPEC_FULL §4.4's best_completions operation.
func (e *Engine) BestCompletions(query string, limit int) []Result {
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := cacheKey{query: query, limit: limit}
	if cached, ok := e.cache.Get(key); ok {
		e.mu.Lock()
		e.hits++
		e.mu.Unlock()
		return cached
	}
	e.mu.Lock()
	e.misses++
	e.mu.Unlock()

	result := e.compute(query, limit)
	e.cache.Add(key, result)
	return result
}

func (e *Engine) compute(query string, limit int) []Result {
	queryRuneLen := utf8.RuneCountInString(query)
	category := search.CategoryFor(queryRuneLen)

	byAlgorithm := make(map[search.Algorithm][]search.Match, 4)

	prefixMatches := search.PrefixSearch(e.store, query, true)
	byAlgorithm[search.Prefix] = prefixMatches

	if shortCircuits(prefixMatches, query, limit) {
		return toResults(prefixMatches[:limit])
	}

	fuzzy := search.FuzzySubsequenceSearch(e.store, query)
	byAlgorithm[search.FuzzySubseq] = fuzzy

	if countAbove(byAlgorithm, limit) < limit {
		jw := search.JaroWinklerSearch(e.store, query)
		byAlgorithm[search.JaroWinkler] = jw
	}

	if countAbove(byAlgorithm, limit) < limit && queryRuneLen >= 3 {
		sub := search.SubstringSearch(e.store, query)
		byAlgorithm[search.Substring] = sub
	}

	candidates := rank.Collect(byAlgorithm)
	maxLen := e.store.MaxEntryLengthRunes()
	ranked := rank.Fuse(candidates, queryRuneLen, maxLen, category, limit)

	out := make([]Result, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, Result{
			Handle:    c.Handle,
			Text:      c.Text,
			Frequency: c.Frequency,
			AgeDays:   c.AgeDays,
			Score:     c.SFinal,
		})
	}
	return out
}

// shortCircuits reports whether step 2's high-quality prefix short-circuit
// applies: at least `limit` prefix hits, and at least half of them are
// true case-sensitive prefixes of query.
func shortCircuits(matches []search.Match, query string, limit int) bool {
	if len(matches) < limit {
		return false
	}
	truePrefixCount := 0
	for _, m := range matches {
		if search.IsTruePrefixMatch(m.Text, query) {
			truePrefixCount++
		}
	}
	return truePrefixCount*2 >= len(matches)
}

// countAbove counts the union of handles across every collected algorithm
// whose normalized score clears earlyTerminationThreshold, used to decide
// whether the progressive executor needs to invoke another primitive.
func countAbove(byAlgorithm map[search.Algorithm][]search.Match, limit int) int {
	seen := make(map[store.Handle]bool)
	for _, matches := range byAlgorithm {
		for _, m := range matches {
			if m.Normalized >= earlyTerminationThreshold {
				seen[m.Handle] = true
			}
		}
	}
	return len(seen)
}

func toResults(matches []search.Match) []Result {
	out := make([]Result, 0, len(matches))
	for _, m := range matches {
		out = append(out, Result{
			Handle:    m.Handle,
			Text:      m.Text,
			Frequency: m.Frequency,
			AgeDays:   m.AgeDays,
			Score:     m.Raw,
		})
	}
	return out
}

// FormatStats renders the `stats` wire command's body (SPEC_FULL §6).
func (e *Engine) FormatStats() string {
	hits, misses := e.Stats()
	return fmt.Sprintf("entries %d\ncapacity %d\ncache_hits %d\ncache_misses %d",
		e.store.Len(), e.store.Capacity(), hits, misses)
}
