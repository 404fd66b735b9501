package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var ErrNoConfigurations = errors.New("no configurations loaded")

type libraryEntry struct {
	path string
	cfg  Configuration
}

// ConfigLibrary is the set of configurations for the active airframe,
// read from <dir>/<airframe>/*.json and sorted by name, plus the selection
// cursor the cockpit increment/decrement controls move. The cursor wraps.
type ConfigLibrary struct {
	dir string

	mu       sync.Mutex
	airframe Airframe
	entries  []libraryEntry
	index    int
}

func NewConfigLibrary(dir string) *ConfigLibrary {
	return &ConfigLibrary{dir: dir, index: -1}
}

func (l *ConfigLibrary) airframeDir(airframe Airframe) string {
	return filepath.Join(l.dir, strings.ToLower(string(airframe)))
}

// Load replaces the library with the configurations for airframe. Files
// that fail to parse, or that belong to another airframe, are skipped. The
// current selection is kept when a configuration of the same name is still
// present.
func (l *ConfigLibrary) Load(airframe Airframe) error {
	dir := l.airframeDir(airframe)
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}

	var entries []libraryEntry
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			slog.Warn("skipping configuration", "path", p, "error", err)
			continue
		}
		cfg, err := ParseConfiguration(data)
		if err != nil {
			slog.Warn("skipping configuration", "path", p, "error", err)
			continue
		}
		if cfg.Header().Airframe != airframe {
			slog.Warn("skipping configuration for other airframe", "path", p, "airframe", cfg.Header().Airframe)
			continue
		}
		entries = append(entries, libraryEntry{path: p, cfg: cfg})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].cfg.Header().Name < entries[j].cfg.Header().Name
	})

	l.mu.Lock()
	defer l.mu.Unlock()

	selected := ""
	if l.airframe == airframe && l.index >= 0 {
		selected = l.entries[l.index].cfg.Header().Name
	}
	l.airframe = airframe
	l.entries = entries
	l.index = -1
	if len(entries) > 0 {
		l.index = 0
	}
	for i, e := range entries {
		if e.cfg.Header().Name == selected {
			l.index = i
			break
		}
	}

	slog.Info("configurations loaded", "airframe", airframe, "count", len(entries), "dir", dir)
	return nil
}

func (l *ConfigLibrary) Airframe() Airframe {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.airframe
}

func (l *ConfigLibrary) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, len(l.entries))
	for i, e := range l.entries {
		names[i] = e.cfg.Header().Name
	}
	return names
}

func (l *ConfigLibrary) Select(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.cfg.Header().Name == name {
			l.index = i
			return nil
		}
	}
	return fmt.Errorf("no %s configuration named %q", l.airframe, name)
}

func (l *ConfigLibrary) Current() (Configuration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index < 0 {
		return nil, false
	}
	return l.entries[l.index].cfg, true
}

func (l *ConfigLibrary) Next() (Configuration, bool) {
	return l.step(1)
}

func (l *ConfigLibrary) Previous() (Configuration, bool) {
	return l.step(-1)
}

func (l *ConfigLibrary) step(delta int) (Configuration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.entries)
	if n == 0 {
		return nil, false
	}
	l.index = ((l.index+delta)%n + n) % n
	return l.entries[l.index].cfg, true
}
