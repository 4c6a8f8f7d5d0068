package bench

import (
	"testing"

	"github.com/lexiserve/lexiserve/internal/engine"
	"github.com/lexiserve/lexiserve/internal/store"
)

func TestRunReportsQueriesAndRunID(t *testing.T) {
	s := store.New(store.MinCapacity)
	s.Insert("hello", 1, 1, 1)
	s.Insert("help", 1, 1, 1)
	e := engine.New(s, engine.DefaultCacheSize)

	report := Run(s, e, 20)
	if report.Queries != 20 {
		t.Fatalf("expected 20 queries, got %d", report.Queries)
	}
	if report.RunID == "" {
		t.Fatal("expected a non-empty run ID")
	}
	if report.P50 > report.P99 {
		t.Fatalf("expected p50 <= p99, got p50=%v p99=%v", report.P50, report.P99)
	}
}

func TestRunFallsBackToBuiltInWordsWhenStoreEmpty(t *testing.T) {
	s := store.New(store.MinCapacity)
	e := engine.New(s, engine.DefaultCacheSize)
	report := Run(s, e, 5)
	if report.Queries != 5 {
		t.Fatalf("expected 5 queries even on empty store, got %d", report.Queries)
	}
}
