// Package rank implements SPEC_FULL §4.3's Scoring & Fusion stage: turning
// the raw, per-algorithm Match sets produced by internal/search into a
// single ordered, deduplicated candidate list.
package rank

import (
	"math"

	"github.com/lexiserve/lexiserve/internal/search"
	"github.com/lexiserve/lexiserve/internal/store"
)

// weights maps query-length category to each algorithm's fusion weight.
// Rows sum to 1.0.
var weights = map[search.QueryLengthCategory]map[search.Algorithm]float64{
	search.VeryShort: {
		search.Prefix:      0.45,
		search.FuzzySubseq: 0.35,
		search.JaroWinkler: 0.15,
		search.Substring:   0.05,
	},
	search.Short: {
		search.Prefix:      0.40,
		search.FuzzySubseq: 0.30,
		search.JaroWinkler: 0.20,
		search.Substring:   0.10,
	},
	search.Medium: {
		search.Prefix:      0.35,
		search.FuzzySubseq: 0.25,
		search.JaroWinkler: 0.25,
		search.Substring:   0.15,
	},
	search.Long: {
		search.Prefix:      0.25,
		search.FuzzySubseq: 0.20,
		search.JaroWinkler: 0.35,
		search.Substring:   0.20,
	},
}

// WeightsFor returns the weight table for a query-length category.
func WeightsFor(cat search.QueryLengthCategory) map[search.Algorithm]float64 {
	return weights[cat]
}

// Candidate accumulates one entry's verdicts across every primitive that
// matched it.
type Candidate struct {
	Handle     store.Handle
	Text       string
	Frequency  uint16
	AgeDays    int32
	AltScores  map[search.Algorithm]float64
	SFinal     float64
}

// Collect merges per-algorithm Match slices into a handle-keyed candidate
// map, retaining the max normalized score per algorithm for each handle.
func Collect(byAlgorithm map[search.Algorithm][]search.Match) map[store.Handle]*Candidate {
	out := make(map[store.Handle]*Candidate)
	for alg, matches := range byAlgorithm {
		for _, m := range matches {
			c, ok := out[m.Handle]
			if !ok {
				c = &Candidate{
					Handle:    m.Handle,
					Text:      m.Text,
					Frequency: m.Frequency,
					AgeDays:   m.AgeDays,
					AltScores: make(map[search.Algorithm]float64, 4),
				}
				out[m.Handle] = c
			}
			if existing, ok := c.AltScores[alg]; !ok || m.Normalized > existing {
				c.AltScores[alg] = m.Normalized
			}
		}
	}
	return out
}

// AlgScore computes S_alg = Σ_A w_A(category) · s_A, treating a missing
// per-algorithm score as 0.
func AlgScore(altScores map[search.Algorithm]float64, cat search.QueryLengthCategory) float64 {
	w := weights[cat]
	var total float64
	for alg, weight := range w {
		total += weight * altScores[alg]
	}
	return total
}

// MetadataAdjustment computes the f · a · ℓ product from SPEC_FULL §4.3.
// textLen and queryLen are codepoint counts; maxEntryLen is the Store-wide
// maximum entry length (codepoints) at query time.
func MetadataAdjustment(frequency uint16, ageDays int32, textLen, queryLen, maxEntryLen int) float64 {
	f := 1 + 0.1*math.Log(float64(frequency)+1)

	ageFraction := float64(ageDays) / 365
	if ageFraction < 0 {
		ageFraction = 0
	}
	if ageFraction > 1 {
		ageFraction = 1
	}
	a := 1 + 0.05*(1-ageFraction)

	l := 1.0
	if textLen > 3*queryLen && maxEntryLen > 0 {
		l = 1 - 0.1*float64(textLen-queryLen)/float64(maxEntryLen)
	}

	return f * a * l
}

// clampScore bounds S_final to [0, 2] per SPEC_FULL §4.3.
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 2 {
		return 2
	}
	return v
}
