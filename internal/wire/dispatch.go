package wire

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lexiserve/lexiserve/internal/config"
	"github.com/lexiserve/lexiserve/internal/engine"
	"github.com/lexiserve/lexiserve/internal/search"
	"github.com/lexiserve/lexiserve/internal/store"
)

// Dispatcher routes one connection's parsed requests to the Store/Engine
// it serves, per the command table in SPEC_FULL §6. Callers are expected
// to serialize access across connections (internal/server holds the
// mutex); Dispatcher itself does no locking.
//
// Cfg is optional: when set, query-length bounds and best-completions'
// MaxLimit are enforced from the live config; when nil, no extra bounds
// beyond the protocol's own field-count checks are applied.
type Dispatcher struct {
	Store  *store.Store
	Engine *engine.Engine
	Cfg    *config.Watcher
}

// withinQueryBounds reports whether query's codepoint length respects the
// live config's MinQueryLen/MaxQueryLen, per SPEC_FULL's validation-errors
// surface as an empty result rather than a protocol error.
func (d *Dispatcher) withinQueryBounds(query string) bool {
	if d.Cfg == nil {
		return true
	}
	n := utf8.RuneCountInString(query)
	bounds := d.Cfg.Current().Server
	return n >= bounds.MinQueryLen && n <= bounds.MaxQueryLen
}

func (d *Dispatcher) clampLimit(limit int) int {
	if d.Cfg == nil {
		return limit
	}
	if max := d.Cfg.Current().Server.MaxLimit; max > 0 && limit > max {
		return max
	}
	return limit
}

// Dispatch runs one command against the Dispatcher's Store/Engine and
// returns the response body (without the trailing EOT, which the caller
// appends via WriteResponse).
func (d *Dispatcher) Dispatch(command string, fields []string) string {
	switch command {
	case "insert":
		return d.handleInsert(fields)
	case "prefix":
		return d.handlePrefix(fields)
	case "substring":
		return d.handleSubstring(fields)
	case "similar":
		return d.handleSimilar(fields)
	case "fuzzy-subsequence":
		return d.handleFuzzySubsequence(fields)
	case "best-completions":
		return d.handleBestCompletions(fields)
	case "stats":
		return d.Engine.FormatStats()
	case "ping":
		return "PONG"
	default:
		return ErrorLine(fmt.Sprintf("unknown command %q", command))
	}
}

func todayDays() int32 {
	return int32(time.Now().Unix() / 86400)
}

func (d *Dispatcher) handleInsert(fields []string) string {
	if len(fields) != 1 {
		return ParamCountError(len(fields))
	}
	words := strings.Fields(fields[0])
	today := todayDays()
	accepted, total := d.Store.InsertMany(words, today, today)
	if accepted > 0 {
		d.Engine.InvalidateCache()
	}
	return fmt.Sprintf("OK\nInserted %d of %d words", accepted, total)
}

func (d *Dispatcher) handlePrefix(fields []string) string {
	if len(fields) != 1 {
		return ParamCountError(len(fields))
	}
	if !d.withinQueryBounds(fields[0]) {
		return ""
	}
	return formatMatches(search.PrefixSearch(d.Store, fields[0], true))
}

func (d *Dispatcher) handleSubstring(fields []string) string {
	if len(fields) != 1 {
		return ParamCountError(len(fields))
	}
	if !d.withinQueryBounds(fields[0]) {
		return ""
	}
	return formatMatches(search.SubstringSearch(d.Store, fields[0]))
}

func (d *Dispatcher) handleSimilar(fields []string) string {
	if len(fields) != 2 {
		return ParamCountError(len(fields))
	}
	threshold, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return ErrorLine("invalid threshold")
	}
	if !d.withinQueryBounds(fields[0]) {
		return ""
	}
	return formatMatches(search.JaroWinklerSearchThreshold(d.Store, fields[0], threshold))
}

func (d *Dispatcher) handleFuzzySubsequence(fields []string) string {
	if len(fields) != 1 {
		return ParamCountError(len(fields))
	}
	if !d.withinQueryBounds(fields[0]) {
		return ""
	}
	return formatMatches(search.FuzzySubsequenceSearch(d.Store, fields[0]))
}

func (d *Dispatcher) handleBestCompletions(fields []string) string {
	if len(fields) != 1 && len(fields) != 2 {
		return ParamCountError(len(fields))
	}
	if !d.withinQueryBounds(fields[0]) {
		return ""
	}
	limit := engine.DefaultLimit
	if len(fields) == 2 {
		parsed, err := strconv.Atoi(fields[1])
		if err != nil {
			return ErrorLine("invalid limit")
		}
		limit = parsed
	}
	limit = d.clampLimit(limit)
	return formatResults(d.Engine.BestCompletions(fields[0], limit))
}

func formatMatches(matches []search.Match) string {
	if len(matches) == 0 {
		return ""
	}
	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = fmt.Sprintf("%s %.4f", m.Text, m.Normalized)
	}
	return strings.Join(lines, "\n")
}

func formatResults(results []engine.Result) string {
	if len(results) == 0 {
		return ""
	}
	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = fmt.Sprintf("%s %.4f", r.Text, r.Score)
	}
	return strings.Join(lines, "\n")
}
