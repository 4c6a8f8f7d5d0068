// Package search implements the four completion-engine primitives:
// prefix, substring, fuzzy-subsequence, and Jaro-Winkler. Each takes a
// query string and the Store's current snapshot and returns an unordered
// set of Matches with a raw and normalized per-algorithm score.
package search

import "github.com/lexiserve/lexiserve/internal/store"

// Algorithm tags the primitive that produced a Match.
type Algorithm int

const (
	Prefix Algorithm = iota
	FuzzySubseq
	JaroWinkler
	Substring
)

func (a Algorithm) String() string {
	switch a {
	case Prefix:
		return "PREFIX"
	case FuzzySubseq:
		return "FUZZY_SUBSEQ"
	case JaroWinkler:
		return "JARO_WINKLER"
	case Substring:
		return "SUBSTRING"
	default:
		return "UNKNOWN"
	}
}

// Match is a single primitive's verdict on one entry.
type Match struct {
	Handle     store.Handle
	Text       string
	Frequency  uint16
	AgeDays    int32
	Raw        float64
	Normalized float64
}

// QueryLengthCategory buckets a query by codepoint count, per SPEC_FULL §3.
type QueryLengthCategory int

const (
	VeryShort QueryLengthCategory = iota
	Short
	Medium
	Long
)

// CategoryFor classifies a query by its rune count.
func CategoryFor(runeLen int) QueryLengthCategory {
	switch {
	case runeLen <= 2:
		return VeryShort
	case runeLen <= 4:
		return Short
	case runeLen <= 6:
		return Medium
	default:
		return Long
	}
}
