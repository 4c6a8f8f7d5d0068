// Package corpus owns the plain-text corpus format of SPEC_FULL §6 (the
// authoritative format) plus an optional msgpack snapshot that accelerates
// reload without ever becoming the source of truth.
package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lexiserve/lexiserve/internal/store"
)

// Record is one line of the plain-text corpus format, also the shape
// snapshotted to msgpack.
type Record struct {
	Text      string `msgpack:"text"`
	Frequency uint16 `msgpack:"frequency"`
	AgeDays   int32  `msgpack:"age_days"`
}

// Load clears s and repopulates it from path, preferring a sibling
// ".snap" msgpack snapshot when it is present, newer than path, and
// decodes cleanly (SPEC_FULL §4.6). Any snapshot failure falls back
// transparently to the textual parse.
func Load(s *store.Store, path string, todayDays int32) error {
	if records, ok := tryLoadSnapshot(path); ok {
		s.Clear()
		applyRecords(s, records, todayDays)
		return nil
	}
	return loadText(s, path, todayDays)
}

func loadText(s *store.Store, path string, todayDays int32) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	s.Clear()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		rec, ok := parseLine(scanner.Text(), todayDays)
		if !ok {
			continue
		}
		if _, _, err := s.Insert(rec.Text, rec.Frequency, rec.AgeDays, todayDays); err != nil {
			log.Warnf("corpus: insert %q failed: %v", rec.Text, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan corpus: %w", err)
	}
	return nil
}

// parseLine parses "<text> [<frequency> [<age_days>]]" per SPEC_FULL §6.
// Malformed numeric fields fall back to their defaults rather than
// rejecting the line; an empty or whitespace-only line is skipped.
func parseLine(line string, todayDays int32) (Record, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Record{}, false
	}
	rec := Record{Text: fields[0], Frequency: 1, AgeDays: todayDays}
	if len(fields) >= 2 {
		if v, err := strconv.ParseUint(fields[1], 10, 16); err == nil {
			rec.Frequency = uint16(v)
		}
	}
	if len(fields) >= 3 {
		if v, err := strconv.ParseUint(fields[2], 10, 32); err == nil {
			rec.AgeDays = int32(v)
		}
	}
	return rec, true
}

func applyRecords(s *store.Store, records []Record, todayDays int32) {
	for _, rec := range records {
		if _, _, err := s.Insert(rec.Text, rec.Frequency, rec.AgeDays, todayDays); err != nil {
			log.Warnf("corpus: snapshot insert %q failed: %v", rec.Text, err)
		}
	}
}

// Save writes every entry in s to path as plain text, one record per
// line, then writes a sibling ".snap" msgpack snapshot as a reload
// accelerator (SPEC_FULL §4.6). Snapshot failures are logged, never
// returned: the text file is always the durable write.
func Save(s *store.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create corpus: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	entries := s.GetAll()
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s %d %d\n", e.Text, e.Frequency, e.AgeDays); err != nil {
			return fmt.Errorf("write corpus line: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush corpus: %w", err)
	}

	if err := saveSnapshot(snapshotPath(path), entries); err != nil {
		log.Warnf("corpus: snapshot write failed, continuing with text-only save: %v", err)
	}
	return nil
}

func snapshotPath(path string) string {
	return path + ".snap"
}
