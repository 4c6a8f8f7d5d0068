package tui

import (
	"testing"

	"github.com/lexiserve/lexiserve/internal/engine"
	"github.com/lexiserve/lexiserve/internal/store"
)

func TestEmbeddedClientBestCompletions(t *testing.T) {
	s := store.New(store.MinCapacity)
	s.Insert("hello", 1, 1, 1)
	s.Insert("help", 1, 1, 1)
	e := engine.New(s, engine.DefaultCacheSize)
	client := &EmbeddedClient{Engine: e}

	results, err := client.BestCompletions("hel", DefaultLimit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one completion")
	}
}

func TestCompletionItemAccessors(t *testing.T) {
	item := completionItem("hello")
	if item.Title() != "hello" || item.FilterValue() != "hello" {
		t.Fatalf("unexpected item accessors: %+v", item)
	}
}
