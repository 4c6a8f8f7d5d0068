package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lexiserve/lexiserve/internal/config"
	"github.com/lexiserve/lexiserve/internal/corpus"
	"github.com/lexiserve/lexiserve/internal/engine"
	"github.com/lexiserve/lexiserve/internal/store"
)

// runtime bundles the Store/Engine/Watcher trio that every subcommand
// touching the completion core needs.
type runtime struct {
	Store   *store.Store
	Engine  *engine.Engine
	Watcher *config.Watcher
}

// buildRuntime loads config, opens the corpus data file (if present),
// and wires a fresh Store/Engine pair.
func buildRuntime(cfgPath, corpusPath string) (*runtime, error) {
	cfg, err := config.InitConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	s := store.New(cfg.Store.InitialCapacity)
	today := int32(time.Now().Unix() / 86400)
	if err := corpus.Load(s, corpusPath, today); err != nil {
		log.Warnf("no existing corpus at %s, starting empty: %v", corpusPath, err)
	}

	e := engine.New(s, cfg.Server.ResultCacheSize)

	watcher, err := config.NewWatcher(cfgPath, cfg)
	if err != nil {
		log.Warnf("config hot-reload disabled: %v", err)
		watcher = nil
	}

	return &runtime{Store: s, Engine: e, Watcher: watcher}, nil
}
