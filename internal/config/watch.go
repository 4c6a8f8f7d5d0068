package config

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher holds the live Config and keeps it current by watching its
// backing TOML file for writes. A failed reload logs and keeps the
// previous config, mirroring the teacher's periodic-reload fallback.
type Watcher struct {
	path string

	mu  sync.RWMutex
	cfg *Config

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher starts watching configPath for changes, beginning with cfg
// as the current value.
func NewWatcher(configPath string, cfg *Config) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(configPath); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    configPath,
		cfg:     cfg,
		watcher: fw,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("config watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	newCfg, err := LoadConfig(w.path)
	if err != nil {
		log.Warnf("Failed to reload config, keeping current: %v", err)
		return
	}
	w.mu.Lock()
	w.cfg = newCfg
	w.mu.Unlock()
	log.Debugf("Config reloaded from: %s", w.path)
}

// Current returns the most recently loaded Config.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cfg
}

// Close stops watching and releases the underlying fsnotify handle.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
