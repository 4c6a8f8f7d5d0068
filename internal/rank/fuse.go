package rank

import (
	"sort"

	"github.com/lexiserve/lexiserve/internal/search"
	"github.com/lexiserve/lexiserve/internal/store"
)

// Fuse scores and orders candidates per SPEC_FULL §4.3: computes S_final
// for every candidate, sorts by S_final descending with ties broken by
// higher frequency, then smaller age (newer), then lexicographic text,
// and truncates to limit.
func Fuse(candidates map[store.Handle]*Candidate, queryRuneLen, maxEntryLen int, cat search.QueryLengthCategory, limit int) []*Candidate {
	out := make([]*Candidate, 0, len(candidates))
	for _, c := range candidates {
		algScore := AlgScore(c.AltScores, cat)
		adj := MetadataAdjustment(c.Frequency, c.AgeDays, runeLen(c.Text), queryRuneLen, maxEntryLen)
		c.SFinal = clampScore(algScore * adj)
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SFinal != b.SFinal {
			return a.SFinal > b.SFinal
		}
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		if a.AgeDays != b.AgeDays {
			return a.AgeDays < b.AgeDays
		}
		return a.Text < b.Text
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}
