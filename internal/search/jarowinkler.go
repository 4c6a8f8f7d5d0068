package search

import (
	"github.com/antzucaro/matchr"

	"github.com/lexiserve/lexiserve/internal/store"
)

// jaroWinklerThreshold is the minimum similarity a candidate must clear to
// be considered a match at all, per SPEC_FULL §4.2.
const jaroWinklerThreshold = 0.7

// longQueryRunes is the rune length past which matchr's longTolerance
// adjustment kicks in.
const longQueryRunes = 10

// JaroWinklerSearch implements SPEC_FULL §4.2's Jaro-Winkler primitive,
// scoring every entry against query and discarding anything below
// jaroWinklerThreshold.
func JaroWinklerSearch(s *store.Store, query string) []Match {
	return JaroWinklerSearchThreshold(s, query, jaroWinklerThreshold)
}

// JaroWinklerSearchThreshold is the threshold-parameterized form used by
// the wire protocol's `similar` command (SPEC_FULL §6), which accepts an
// explicit similarity floor from the client instead of the engine's fixed
// 0.7.
func JaroWinklerSearchThreshold(s *store.Store, query string, threshold float64) []Match {
	if query == "" {
		return nil
	}
	longTolerance := len([]rune(query)) > longQueryRunes

	entries := s.GetAll()
	out := make([]Match, 0, len(entries))
	for _, e := range entries {
		sim := matchr.JaroWinkler(query, e.Text, longTolerance)
		if sim < threshold {
			continue
		}
		out = append(out, Match{
			Handle:     e.Handle,
			Text:       e.Text,
			Frequency:  e.Frequency,
			AgeDays:    e.AgeDays,
			Raw:        sim,
			Normalized: sim,
		})
	}
	return out
}
