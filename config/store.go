package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/lixenwraith/metronome/constant"
)

// Change identifies one changed configuration key.
type Change struct {
	Group string
	Key   string
}

// Listener receives change notifications. Called outside the store lock.
type Listener func(Change)

// Store is a viper-backed configuration source.
// Layers, lowest first: defaults, YAML file, METRONOME_* environment, Set.
// Every refresh diffs the new snapshot against the previous one and notifies
// one Change per differing key.
type Store struct {
	mu        sync.RWMutex
	v         *viper.Viper
	path      string
	current   Config
	listeners []Listener
	log       *slog.Logger
	watch     bool

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewStore creates a store reading path; an empty path uses defaults and environment only.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	v := viper.New()
	defaults := Defaults()
	for _, key := range Keys() {
		v.SetDefault(key, defaults.Value(key))
	}
	v.SetEnvPrefix(constant.ConfigEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	}

	return &Store{
		v:       v,
		path:    path,
		current: defaults,
		log:     logger.With("component", "config"),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Current implements Provider.
func (s *Store) Current() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers l for every subsequent change.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Load reads the file (a missing file is not an error) and refreshes the snapshot.
func (s *Store) Load() ([]string, error) {
	s.mu.Lock()
	if err := s.read(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	changed, listeners := s.refreshLocked()
	s.mu.Unlock()

	s.notify(changed, listeners)
	return changed, nil
}

// Set overrides key at the highest priority and notifies if the value changed.
func (s *Store) Set(key string, value any) []string {
	s.mu.Lock()
	s.v.Set(key, value)
	changed, listeners := s.refreshLocked()
	s.mu.Unlock()

	s.notify(changed, listeners)
	return changed
}

// read loads the config file into viper; caller holds mu
func (s *Store) read() error {
	if s.path == "" {
		return nil
	}
	if err := s.v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Info("config file not found, using defaults", "path", s.path)
			return nil
		}
		return fmt.Errorf("reading config %s: %w", s.path, err)
	}
	return nil
}

// refreshLocked rebuilds the snapshot; caller holds mu
func (s *Store) refreshLocked() ([]string, []Listener) {
	var raw Config
	if err := s.v.Unmarshal(&raw); err != nil {
		s.log.Warn("config unmarshal failed, keeping previous values", "error", err)
		return nil, nil
	}

	next := raw.Normalize()
	if clamped := Diff(raw, next); len(clamped) > 0 {
		s.log.Warn("config values out of range were clamped", "keys", clamped)
	}

	changed := Diff(s.current, next)
	s.current = next
	return changed, s.listeners
}

func (s *Store) notify(changed []string, listeners []Listener) {
	for _, key := range changed {
		s.log.Debug("config changed", "key", key)
		for _, l := range listeners {
			l(Change{Group: constant.ConfigGroup, Key: key})
		}
	}
}

// Watch re-reads the file whenever it is written, created or renamed into place.
// The directory is watched so editors that replace the file are handled.
func (s *Store) Watch() error {
	if s.path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	file := filepath.Clean(s.path)
	if err := w.Add(filepath.Dir(file)); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(file), err)
	}

	s.watcher = w
	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.watchLoop(w, file, s.done)
	return nil
}

func (s *Store) watchLoop(w *fsnotify.Watcher, file string, done chan struct{}) {
	defer s.wg.Done()
	for {
		select {
		case <-done:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != file || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, err := s.Load(); err != nil {
				s.log.Warn("config reload failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.log.Warn("config watcher error", "error", err)
		}
	}
}

// Close stops watching; safe to call multiple times.
func (s *Store) Close() error {
	s.mu.Lock()
	w, done := s.watcher, s.done
	s.watcher, s.done = nil, nil
	s.mu.Unlock()

	if w == nil {
		return nil
	}
	close(done)
	err := w.Close()
	s.wg.Wait()
	return err
}
