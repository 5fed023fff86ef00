// Package inmemory provides a map-backed Store for dev mode and tests.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/swcatalog/location-server/internal/catalog"
	"github.com/swcatalog/location-server/internal/store"
)

// memoryStore keeps location records in a mutex-guarded map. Records are
// copied on the way in and out so callers can't mutate stored state.
type memoryStore struct {
	mu        sync.RWMutex
	locations map[string]catalog.Location
}

// New returns an empty in-memory store.
func New() store.Store {
	return &memoryStore{
		locations: make(map[string]catalog.Location),
	}
}

var _ store.Store = (*memoryStore)(nil)
var _ store.Pinger = (*memoryStore)(nil)

func (s *memoryStore) CreateLocation(_ context.Context, spec catalog.LocationSpec) (*catalog.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, loc := range s.locations {
		if loc.Type == spec.Type && loc.Target == spec.Target {
			return nil, fmt.Errorf("%w: %s", store.ErrLocationAlreadyExists, spec)
		}
	}

	loc := catalog.Location{
		ID:     uuid.NewString(),
		Type:   spec.Type,
		Target: spec.Target,
	}
	s.locations[loc.ID] = loc

	out := loc
	return &out, nil
}

func (s *memoryStore) ListLocations(_ context.Context) ([]*catalog.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*catalog.Location, 0, len(s.locations))
	for _, loc := range s.locations {
		l := loc
		out = append(out, &l)
	}
	// Map iteration order is random; keep listings stable.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Target < out[j].Target
	})
	return out, nil
}

func (s *memoryStore) GetLocation(_ context.Context, id string) (*catalog.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.locations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrLocationNotFound, id)
	}
	out := loc
	return &out, nil
}

func (s *memoryStore) DeleteLocation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locations[id]; !ok {
		return fmt.Errorf("%w: %s", store.ErrLocationNotFound, id)
	}
	delete(s.locations, id)
	return nil
}

func (*memoryStore) Ping(_ context.Context) error {
	return nil
}
