package inmemorystore

import (
	"context"
	"sync"

	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
	"github.com/specialistvlad/axiomgrid/internal/unitstore"
)

// Store implements unitstore.Store. Status, artifact and error maps use
// sync.Map; the index keeps insertion order and is guarded by a mutex.
type Store struct {
	states    sync.Map // Key: unitid.ID, Value: unit.Status
	artifacts sync.Map // Key: unitid.ID, Value: unitstore.Artifact
	errors    sync.Map // Key: unitid.ID, Value: error

	mu         sync.RWMutex
	index      map[unitid.ID]unitstore.IndexEntry
	indexOrder []unitid.ID
}

// New creates an empty store.
func New() *Store {
	return &Store{index: make(map[unitid.ID]unitstore.IndexEntry)}
}

var _ unitstore.Store = (*Store)(nil)

func (s *Store) SetStatus(ctx context.Context, id unitid.ID, status unit.Status) error {
	s.states.Store(id, status)
	return nil
}

func (s *Store) GetStatus(ctx context.Context, id unitid.ID) (unit.Status, error) {
	status, ok := s.states.Load(id)
	if !ok {
		return unit.StatusPending, nil
	}
	return status.(unit.Status), nil
}

func (s *Store) SetArtifact(ctx context.Context, id unitid.ID, artifact unitstore.Artifact) error {
	s.artifacts.Store(id, artifact)
	return nil
}

func (s *Store) GetArtifact(ctx context.Context, id unitid.ID) (unitstore.Artifact, bool, error) {
	a, ok := s.artifacts.Load(id)
	if !ok {
		return unitstore.Artifact{}, false, nil
	}
	return a.(unitstore.Artifact), true, nil
}

func (s *Store) SetError(ctx context.Context, id unitid.ID, unitErr error) error {
	s.errors.Store(id, unitErr)
	return nil
}

func (s *Store) GetError(ctx context.Context, id unitid.ID) (error, error) {
	err, ok := s.errors.Load(id)
	if !ok {
		return nil, nil // Not failed.
	}
	return err.(error), nil
}

func (s *Store) Index(ctx context.Context, entry unitstore.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[entry.ID]; !exists {
		s.indexOrder = append(s.indexOrder, entry.ID)
	}
	entry.DependsOn = append([]unitid.ID(nil), entry.DependsOn...)
	s.index[entry.ID] = entry
	return nil
}

func (s *Store) Indexed(ctx context.Context, id unitid.ID) (unitstore.IndexEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.index[id]
	return e, ok, nil
}

func (s *Store) IndexedIDs(ctx context.Context) ([]unitid.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]unitid.ID(nil), s.indexOrder...), nil
}
