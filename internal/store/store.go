// Package store implements in-memory entity caches with a filtered view that
// is recomputed on every write. One Store instance exists per domain and per
// session; front ends read the view, never the authoritative list.
package store

import (
	"slices"
	"sync"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// Observer is notified after every recomputation of a store's view.
type Observer interface {
	Recomputed(store string, total, visible int)
}

// Option configures a Store.
type Option func(*options)

type options struct {
	name     string
	observer Observer
}

// WithName sets the name reported to the observer.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithObserver registers an observer for view recomputations.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// Store holds the authoritative entity list of one domain together with its
// filters, the derived view, a weak selection and the process flags.
//
// The view is always exactly the entities matching the filters, in list
// order. Every write recomputes it before releasing the lock. Readers get
// copies of the slices.
type Store[T types.Entity[T], F types.Filter[T]] struct {
	mu sync.RWMutex

	name     string
	observer Observer

	entities []T
	view     []T
	filters  F
	selected string // entity ID; empty when nothing is selected
	loading  bool
	err      error
}

// New creates an empty store with zero-value filters.
func New[T types.Entity[T], F types.Filter[T]](opts ...Option) *Store[T, F] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T, F]{name: o.name, observer: o.observer}
}

// Name returns the store name given at construction.
func (s *Store[T, F]) Name() string { return s.name }

// SetEntities replaces the entity list wholesale, typically after a fetch.
// A selection whose entity is no longer present is cleared.
func (s *Store[T, F]) SetEntities(list []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities = slices.Clone(list)
	if s.selected != "" && s.indexLocked(s.selected) < 0 {
		s.selected = ""
	}
	s.recomputeLocked()
}

// SetFilters replaces the filters wholesale. Callers that want to change a
// single predicate read Filters, modify the copy and set it back.
func (s *Store[T, F]) SetFilters(f F) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = f
	s.recomputeLocked()
}

// Add appends e to the entity list. The caller guarantees that e's ID is not
// already present.
func (s *Store[T, F]) Add(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities = append(slices.Clip(s.entities), e)
	s.recomputeLocked()
}

// Update replaces the entity with the given ID by patch applied to it. The
// entity keeps its ID whatever the patch returns. Reports false, leaving the
// store untouched, if the ID is absent.
func (s *Store[T, F]) Update(id string, patch types.Patch[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	next := slices.Clone(s.entities)
	next[i] = keepID(id, patch.Apply(next[i]))
	s.entities = next
	s.recomputeLocked()
	return true
}

// UpdateMany applies patch to every entity whose ID is in ids and returns the
// number updated. Unknown IDs are skipped. The view is recomputed once.
func (s *Store[T, F]) UpdateMany(ids []string, patch types.Patch[T]) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	next := slices.Clone(s.entities)
	n := 0
	for i, e := range next {
		id := e.EntityID()
		if _, ok := want[id]; !ok {
			continue
		}
		next[i] = keepID(id, patch.Apply(e))
		n++
	}
	if n == 0 {
		return 0
	}
	s.entities = next
	s.recomputeLocked()
	return n
}

// ReplaceMany swaps in each value for the held entity with the same ID and
// returns the number replaced. Values whose ID is absent are skipped. The
// view is recomputed once.
func (s *Store[T, F]) ReplaceMany(values []T) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]T, len(values))
	for _, v := range values {
		byID[v.EntityID()] = v
	}

	next := slices.Clone(s.entities)
	n := 0
	for i, e := range next {
		v, ok := byID[e.EntityID()]
		if !ok {
			continue
		}
		next[i] = v
		n++
	}
	if n == 0 {
		return 0
	}
	s.entities = next
	s.recomputeLocked()
	return n
}

// Delete removes the entity with the given ID and clears the selection if it
// pointed at that entity. Reports false if the ID is absent.
func (s *Store[T, F]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.entities = slices.Delete(slices.Clone(s.entities), i, i+1)
	if s.selected == id {
		s.selected = ""
	}
	s.recomputeLocked()
	return true
}

// SetSelected records e as the current selection. The store keeps only the
// ID and resolves it against the entity list on read.
func (s *Store[T, F]) SetSelected(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = e.EntityID()
}

// ClearSelected drops the current selection.
func (s *Store[T, F]) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

// SetLoading sets the in-flight flag.
func (s *Store[T, F]) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// SetError records the outcome of the last external operation; nil clears it.
func (s *Store[T, F]) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Entities returns a copy of the authoritative list.
func (s *Store[T, F]) Entities() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entities)
}

// View returns a copy of the filtered list.
func (s *Store[T, F]) View() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.view)
}

// Filters returns the current filters.
func (s *Store[T, F]) Filters() F {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// Get returns the entity with the given ID from the authoritative list.
func (s *Store[T, F]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	i := s.indexLocked(id)
	if i < 0 {
		return zero, false
	}
	return s.entities[i], true
}

// Selected returns the selected entity, or false when nothing is selected or
// the selected ID is not in the list.
func (s *Store[T, F]) Selected() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	if s.selected == "" {
		return zero, false
	}
	i := s.indexLocked(s.selected)
	if i < 0 {
		return zero, false
	}
	return s.entities[i], true
}

// Loading reports whether an external operation is in flight.
func (s *Store[T, F]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error recorded by the last failed external operation.
func (s *Store[T, F]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Len returns the number of entities in the authoritative list.
func (s *Store[T, F]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Snapshot is a consistent copy of a store's state.
type Snapshot[T any, F any] struct {
	Entities []T
	View     []T
	Filters  F
	Selected *T
	Loading  bool
	Err      error
}

// Snapshot returns all state read under a single lock.
func (s *Store[T, F]) Snapshot() Snapshot[T, F] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot[T, F]{
		Entities: slices.Clone(s.entities),
		View:     slices.Clone(s.view),
		Filters:  s.filters,
		Loading:  s.loading,
		Err:      s.err,
	}
	if i := s.indexLocked(s.selected); s.selected != "" && i >= 0 {
		sel := s.entities[i]
		snap.Selected = &sel
	}
	return snap
}

// recomputeLocked rebuilds the view from entities and filters. Callers hold
// the write lock.
func (s *Store[T, F]) recomputeLocked() {
	s.view = types.Select(s.filters, s.entities)
	if s.observer != nil {
		s.observer.Recomputed(s.name, len(s.entities), len(s.view))
	}
}

func (s *Store[T, F]) indexLocked(id string) int {
	return slices.IndexFunc(s.entities, func(e T) bool { return e.EntityID() == id })
}

// keepID restamps e with id if a patch changed its identity.
func keepID[T types.Entity[T]](id string, e T) T {
	if e.EntityID() == id {
		return e
	}
	createdAt, updatedAt := e.Timestamps()
	return e.WithStamp(id, createdAt, updatedAt)
}
