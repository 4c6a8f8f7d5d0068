// Package bench implements SPEC_FULL §4.10's benchmarking subcommand:
// drives the engine with randomly sampled words, reporting latency
// percentiles and throughput for a single run.
package bench

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lexiserve/lexiserve/internal/engine"
	"github.com/lexiserve/lexiserve/internal/store"
)

// fallbackWords seeds a run when the Store is empty, so benchmark still
// produces a meaningful report against a freshly started server.
var fallbackWords = []string{
	"hello", "help", "helicopter", "world", "wonder", "wander",
	"golang", "gopher", "goroutine", "channel", "context", "concurrency",
}

// Report summarizes one benchmark run.
type Report struct {
	RunID       string
	Queries     int
	P50         time.Duration
	P95         time.Duration
	P99         time.Duration
	Throughput  float64 // queries per second
}

// Run samples count queries from the Store's current corpus (or the
// built-in fallback list if empty), of varying query-length categories,
// and reports latency percentiles.
func Run(s *store.Store, e *engine.Engine, count int) Report {
	words := sampleWords(s, count)
	durations := make([]time.Duration, 0, len(words))

	start := time.Now()
	for _, w := range words {
		queryStart := time.Now()
		e.BestCompletions(queryPrefix(w), engine.DefaultLimit)
		durations = append(durations, time.Since(queryStart))
	}
	elapsed := time.Since(start)

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	return Report{
		RunID:      uuid.New().String(),
		Queries:    len(durations),
		P50:        percentile(durations, 0.50),
		P95:        percentile(durations, 0.95),
		P99:        percentile(durations, 0.99),
		Throughput: float64(len(durations)) / elapsed.Seconds(),
	}
}

// queryPrefix derives a realistic partial-typing query from a sampled
// word, varying length so a run exercises every query-length category.
func queryPrefix(word string) string {
	runes := []rune(word)
	n := 1 + rand.Intn(len(runes))
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n])
}

func sampleWords(s *store.Store, count int) []string {
	pool := fallbackWords
	if s != nil && !s.IsEmpty() {
		entries := s.GetAll()
		pool = make([]string, len(entries))
		for i, e := range entries {
			pool[i] = e.Text
		}
	}
	out := make([]string, count)
	for i := range out {
		out[i] = pool[rand.Intn(len(pool))]
	}
	return out
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
