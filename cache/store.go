package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/zainokta/spectrum/errs"
	"github.com/zainokta/spectrum/logger"
)

// Stats summarizes a Store's activity, surfaced by `spectrum cache
// stats`.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// Store is the documentation cache: a directory of CBOR-encoded Entry
// records (see Entry) plus an in-memory dependency graph used to
// cascade invalidation when a watched source file changes.
//
// A zero-value Store is unusable; construct with NewStore.
type Store struct {
	dir    string
	log    logger.Logger
	mu     sync.Mutex
	memory map[string]Entry
	// dependents maps a dependency path to the cache keys that
	// directly depend on it, letting InvalidateFile cascade without
	// scanning every entry.
	dependents map[string]map[string]struct{}
	stats      Stats
}

// NewStore creates a Store persisting to dir. dir is created on first
// write if it does not already exist.
func NewStore(dir string, log logger.Logger) *Store {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Store{
		dir:        dir,
		log:        log,
		memory:     make(map[string]Entry),
		dependents: make(map[string]map[string]struct{}),
	}
}

// Remember returns the cached value for key if every dependency's
// content hash still matches what was recorded, decoding payload into
// dst via JSON. Otherwise it calls compute, stores the result keyed by
// the current hash of every dependency path, and returns it.
//
// compute's result is JSON-encoded for storage, so it must be a type
// that round-trips through encoding/json (every analyzer/schema result
// in this module is a plain struct or map).
func Remember[T any](s *Store, key string, dependencyPaths []string, compute func() (T, error)) (T, error) {
	var zero T

	deps, err := hashDependencies(dependencyPaths)
	if err != nil {
		return zero, errs.NewCacheError(key, "failed to hash dependencies", err)
	}

	if entry, ok := s.lookup(key); ok && depsMatch(entry.Dependencies, deps) {
		var value T
		if err := json.Unmarshal(entry.Payload, &value); err == nil {
			s.recordHit()
			return value, nil
		}
		s.log.Warn("cache payload decode failed, recomputing", "key", key)
	}

	s.recordMiss()

	value, err := compute()
	if err != nil {
		return zero, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return zero, errs.NewCacheError(key, "failed to encode payload for cache", err)
	}

	entry := Entry{Version: FormatVersion, Key: key, Dependencies: deps, Payload: payload}
	s.store(key, entry)

	return value, nil
}

func (s *Store) lookup(key string) (Entry, bool) {
	s.mu.Lock()
	if entry, ok := s.memory[key]; ok {
		s.mu.Unlock()
		return entry, true
	}
	s.mu.Unlock()

	entry, err := s.readFromDisk(key)
	if err != nil {
		return Entry{}, false
	}

	s.mu.Lock()
	s.memory[key] = entry
	s.indexDependents(key, entry.Dependencies)
	s.mu.Unlock()

	return entry, true
}

func (s *Store) store(key string, entry Entry) {
	s.mu.Lock()
	s.memory[key] = entry
	s.indexDependents(key, entry.Dependencies)
	s.mu.Unlock()

	if err := s.writeToDisk(key, entry); err != nil {
		s.log.Warn("failed to persist cache entry", "key", key, "error", err)
	}
}

// indexDependents must be called with s.mu held.
func (s *Store) indexDependents(key string, deps []Dependency) {
	for _, dep := range deps {
		set, ok := s.dependents[dep.Path]
		if !ok {
			set = make(map[string]struct{})
			s.dependents[dep.Path] = set
		}
		set[key] = struct{}{}
	}
}

// Invalidate removes a single key from the cache (memory and disk).
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.memory, key)
	s.mu.Unlock()
	_ = os.Remove(s.diskPath(key))
}

// InvalidateFile invalidates every cache entry that transitively
// depends on path: entries that named it as a direct dependency, plus
// (since an invalidated entry's own key can itself be a dependency of
// another entry, when analyzers compose) anything depending on those,
// recursively.
func (s *Store) InvalidateFile(path string) []string {
	s.mu.Lock()
	toInvalidate := s.transitiveDependents(path)
	for key := range toInvalidate {
		delete(s.memory, key)
		delete(s.dependents[path], key)
	}
	s.mu.Unlock()

	invalidated := make([]string, 0, len(toInvalidate))
	for key := range toInvalidate {
		invalidated = append(invalidated, key)
		_ = os.Remove(s.diskPath(key))
	}
	return invalidated
}

// transitiveDependents must be called with s.mu held.
func (s *Store) transitiveDependents(root string) map[string]struct{} {
	visited := make(map[string]struct{})
	queue := []string{root}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for key := range s.dependents[node] {
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}
			queue = append(queue, key) // a key can itself be a dependency path of another key
		}
	}

	return visited
}

// Clear empties the in-memory cache and removes every on-disk record.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.memory = make(map[string]Entry)
	s.dependents = make(map[string]map[string]struct{})
	s.stats = Stats{}
	s.mu.Unlock()

	if s.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errs.NewCacheError("*", "failed to list cache directory", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".cache" {
			_ = os.Remove(filepath.Join(s.dir, e.Name()))
		}
	}
	return nil
}

// Stats returns a snapshot of hit/miss counters and the number of
// entries currently held in memory.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := s.stats
	stats.Entries = len(s.memory)
	return stats
}

func (s *Store) recordHit()  { s.mu.Lock(); s.stats.Hits++; s.mu.Unlock() }
func (s *Store) recordMiss() { s.mu.Lock(); s.stats.Misses++; s.mu.Unlock() }

func (s *Store) diskPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, fmt.Sprintf("%x.cache", sum))
}

func (s *Store) readFromDisk(key string) (Entry, error) {
	if s.dir == "" {
		return Entry{}, os.ErrNotExist
	}
	raw, err := os.ReadFile(s.diskPath(key))
	if err != nil {
		return Entry{}, err
	}
	var entry Entry
	if err := cbor.Unmarshal(raw, &entry); err != nil {
		return Entry{}, err
	}
	if entry.Version != FormatVersion {
		return Entry{}, os.ErrNotExist
	}
	return entry, nil
}

func (s *Store) writeToDisk(key string, entry Entry) error {
	if s.dir == "" {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	raw, err := cbor.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(s.diskPath(key), raw, 0o644)
}

func depsMatch(recorded, current []Dependency) bool {
	if len(recorded) != len(current) {
		return false
	}
	for i, dep := range recorded {
		if dep.Path != current[i].Path || dep.Hash != current[i].Hash {
			return false
		}
	}
	return true
}

func hashDependencies(paths []string) ([]Dependency, error) {
	deps := make([]Dependency, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		deps = append(deps, Dependency{
			Path:    path,
			Hash:    sha256.Sum256(content),
			ModTime: info.ModTime().UnixNano(),
		})
	}
	return deps, nil
}
