package corpus

import (
	"bytes"
	"os"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lexiserve/lexiserve/internal/store"
)

// tryLoadSnapshot reads and decodes the ".snap" sibling of path, reporting
// ok=false on any missing file, stale snapshot, or decode error so the
// caller falls back to the textual parse.
func tryLoadSnapshot(path string) ([]Record, bool) {
	snapPath := snapshotPath(path)

	snapInfo, err := os.Stat(snapPath)
	if err != nil {
		return nil, false
	}
	textInfo, err := os.Stat(path)
	if err == nil && !snapInfo.ModTime().After(textInfo.ModTime()) {
		return nil, false
	}

	data, err := os.ReadFile(snapPath)
	if err != nil {
		return nil, false
	}

	var records []Record
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&records); err != nil {
		log.Warnf("corpus: snapshot %s failed to decode, falling back to text: %v", snapPath, err)
		return nil, false
	}
	return records, true
}

// saveSnapshot encodes entries to msgpack and writes them atomically,
// mirroring the teacher's encode-to-buffer-then-write pattern.
func saveSnapshot(snapPath string, entries []store.EntryView) error {
	records := make([]Record, len(entries))
	for i, e := range entries {
		records[i] = Record{Text: e.Text, Frequency: e.Frequency, AgeDays: e.AgeDays}
	}

	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(records); err != nil {
		return err
	}

	tmpPath := snapPath + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, snapPath)
}
