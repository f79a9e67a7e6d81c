package state

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps itineraries in process memory. Useful for demos and
// environments without a Redis or Postgres backend.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]TripItinerary
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]TripItinerary)}
}

func (s *MemoryStore) Load(ctx context.Context, tripID string) (*TripItinerary, error) {
	if strings.TrimSpace(tripID) == "" {
		return nil, ErrInvalidTripID
	}

	s.mu.RLock()
	it, ok := s.items[tripID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrStateNotFound
	}

	out := it
	return &out, nil
}

func (s *MemoryStore) Save(ctx context.Context, it *TripItinerary) error {
	if it == nil {
		return ErrNilItinerary
	}
	if strings.TrimSpace(it.ID) == "" {
		return ErrInvalidTripID
	}

	s.mu.Lock()
	s.items[it.ID] = *it
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, tripID string) error {
	if strings.TrimSpace(tripID) == "" {
		return ErrInvalidTripID
	}

	s.mu.Lock()
	delete(s.items, tripID)
	s.mu.Unlock()
	return nil
}
