/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package methodarea implements the process-wide, shared set of loaded
// classes keyed by canonical name. A single RWMutex-guarded map publishes
// atomically under a single writer lock — readers see either absent or
// fully-parsed, never a partial entry — and golang.org/x/sync/singleflight
// collapses concurrent loads of the same class name into one underlying
// load, so two contexts resolving the same entry converge on the same
// result instead of racing to load it twice.
package methodarea

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"jvmcore/class"
)

// Store is the method area: one per VM instance, kept as an explicit type
// rather than package-level state so tests don't share global state.
type Store struct {
	mu      sync.RWMutex
	classes map[string]*class.ClassEntry
	group   singleflight.Group
}

// New returns an empty method-area store.
func New() *Store {
	return &Store{classes: make(map[string]*class.ClassEntry)}
}

// Lookup returns the entry for a canonical class name, or nil if absent.
// This is the read side of the single-writer-lock contract.
func (s *Store) Lookup(name string) *class.ClassEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classes[name]
}

// Insert registers a newly parsed class under its canonical name. Insert
// does not check for an existing entry; callers that need cycle-safety
// should use LoadOnce instead.
func (s *Store) Insert(name string, entry *class.ClassEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[name] = entry
}

// Count reports how many classes are currently registered.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.classes)
}

// LoadOnce returns the existing entry for name if one is already present in
// state >= class.LOADING — the cycle-safety rule that lets a super/interface
// reference back to a class still being loaded resolve to the in-progress
// entry instead of recursing forever. Otherwise it calls load exactly once
// even if many goroutines request the same name concurrently, inserts the
// result, and returns it to every caller via a double-checked lookup.
func (s *Store) LoadOnce(name string, load func() (*class.ClassEntry, error)) (*class.ClassEntry, error) {
	if existing := s.Lookup(name); existing != nil && existing.State.AtLeast(class.LOADING) {
		return existing, nil
	}

	v, err, _ := s.group.Do(name, func() (interface{}, error) {
		if existing := s.Lookup(name); existing != nil && existing.State.AtLeast(class.LOADING) {
			return existing, nil
		}
		entry, err := load()
		if err != nil {
			return nil, err
		}
		s.Insert(name, entry)
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*class.ClassEntry), nil
}

// All returns a snapshot slice of every registered class, meant for
// diagnostics rather than hot paths.
func (s *Store) All() []*class.ClassEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*class.ClassEntry, 0, len(s.classes))
	for _, c := range s.classes {
		out = append(out, c)
	}
	return out
}
