package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// Logger defines the logging interface used by the Store.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Failure records a component that could not be cached.
type Failure struct {
	Component string
	Path      string
	Err       error
}

// Store is the raw data cache, keyed by component name.
type Store struct {
	mu       sync.RWMutex
	entries  map[string]string
	logger   Logger
	readFile func(string) ([]byte, error)
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		entries:  make(map[string]string),
		logger:   noopLogger{},
		readFile: os.ReadFile,
	}
}

// SetLogger sets the logger for the store.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// Get returns the normalized text cached for a component.
func (s *Store) Get(component string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.entries[component]
	return raw, ok
}

// IsEmpty reports whether the store holds no entries.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Names returns the cached component names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FillIfEmpty reads every source (component → file path) into the store,
// but only if the store is empty.
//
// Returns:
//   - filled: true if this call performed the fill
//   - failures: components that could not be read or parsed (nil when not filled)
func (s *Store) FillIfEmpty(sources map[string]string) (filled bool, failures []Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > 0 {
		s.logger.Debug("cache already filled, skipping", "entries", len(s.entries))
		return false, nil
	}
	return true, s.fillLocked(sources)
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]string)
	s.logger.Info("cache cleared")
}

// Reload atomically replaces the contents of the store with sources.
func (s *Store) Reload(sources map[string]string) []Failure {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]string, len(sources))
	return s.fillLocked(sources)
}

// fillLocked reads sources in name order. Caller must hold s.mu.
func (s *Store) fillLocked(sources map[string]string) []Failure {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var failures []Failure
	for _, name := range names {
		path := sources[name]

		text, err := s.load(path)
		if err != nil {
			failures = append(failures, Failure{Component: name, Path: path, Err: err})
			s.logger.Error("caching component data failed", "component", name, "path", path, "error", err)
			continue
		}
		s.entries[name] = text
	}

	s.logger.Info("cache filled", "entries", len(s.entries), "failed", len(failures))
	return failures
}

func (s *Store) load(path string) (string, error) {
	data, err := s.readFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	text, err := normalize(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	return text, nil
}

// normalize re-encodes one JSON document compactly with object keys
// sorted. Numbers keep their source digits and a repeated key keeps its
// last value.
func normalize(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return "", errors.New("trailing data after JSON document")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
