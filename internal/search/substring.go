package search

import (
	"strings"

	"github.com/lexiserve/lexiserve/internal/store"
)

// SubstringSearch implements SPEC_FULL §4.2's Substring primitive: a
// linear scan finding the first byte position of query in each entry,
// scoring earlier occurrences higher.
func SubstringSearch(s *store.Store, query string) []Match {
	if query == "" {
		return nil
	}
	entries := s.GetAll()
	out := make([]Match, 0, len(entries))
	for _, e := range entries {
		p := strings.Index(e.Text, query)
		if p < 0 {
			continue
		}
		norm := 1 - float64(p)/float64(len(e.Text))
		if norm < 0 {
			norm = 0
		}
		if norm > 1 {
			norm = 1
		}
		out = append(out, Match{
			Handle:     e.Handle,
			Text:       e.Text,
			Frequency:  e.Frequency,
			AgeDays:    e.AgeDays,
			Raw:        float64(p),
			Normalized: norm,
		})
	}
	return out
}
