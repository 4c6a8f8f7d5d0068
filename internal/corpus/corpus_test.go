package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lexiserve/lexiserve/internal/store"
)

func TestParseLineDefaults(t *testing.T) {
	rec, ok := parseLine("hello", 100)
	if !ok {
		t.Fatal("expected line to parse")
	}
	if rec.Text != "hello" || rec.Frequency != 1 || rec.AgeDays != 100 {
		t.Fatalf("unexpected defaults: %+v", rec)
	}
}

func TestParseLineFullFields(t *testing.T) {
	rec, ok := parseLine("hello 42 7", 100)
	if !ok {
		t.Fatal("expected line to parse")
	}
	if rec.Frequency != 42 || rec.AgeDays != 7 {
		t.Fatalf("unexpected fields: %+v", rec)
	}
}

func TestParseLineBadNumericFallsBackToDefault(t *testing.T) {
	rec, ok := parseLine("hello notanumber", 100)
	if !ok {
		t.Fatal("expected line to parse despite bad numeric field")
	}
	if rec.Frequency != 1 {
		t.Fatalf("expected default frequency on parse failure, got %d", rec.Frequency)
	}
}

func TestParseLineEmptySkipped(t *testing.T) {
	if _, ok := parseLine("   ", 100); ok {
		t.Fatal("expected blank line to be skipped")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")

	s := store.New(store.MinCapacity)
	s.Insert("hello", 5, 10, 100)
	s.Insert("world", 7, 20, 100)

	if err := Save(s, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := store.New(store.MinCapacity)
	if err := Load(loaded, path, 100); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 entries after round-trip, got %d", loaded.Len())
	}
}

func TestSaveWritesSnapshotSibling(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")

	s := store.New(store.MinCapacity)
	s.Insert("hello", 1, 1, 1)
	if err := Save(s, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(snapshotPath(path)); err != nil {
		t.Fatalf("expected snapshot sibling to exist: %v", err)
	}
}

func TestLoadFallsBackWhenSnapshotMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(path, []byte("hello 3 4\nworld 2 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := store.New(store.MinCapacity)
	if err := Load(s, path, 100); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 entries from text-only load, got %d", s.Len())
	}
}

func TestLoadClearsExistingEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(path, []byte("hello 1 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := store.New(store.MinCapacity)
	s.Insert("preexisting", 1, 1, 1)
	if err := Load(s, path, 100); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected load to clear preexisting entries, got len %d", s.Len())
	}
	all := s.GetAll()
	if all[0].Text != "hello" {
		t.Fatalf("expected only %q after load, got %q", "hello", all[0].Text)
	}
}
