package memory

import (
	"context"
	"sync"
)

// FallbackStore is the dependency-free similarity backend: records kept in
// insertion order, queries returning up to k of them with no ranking. It is
// the degraded mode the System substitutes when an indexed backend cannot
// be constructed, and the default when no index is requested.
type FallbackStore struct {
	mu      sync.Mutex
	order   []string
	records map[string][]byte // id -> canonical JSON
}

// NewFallbackStore creates an empty fallback store.
func NewFallbackStore() *FallbackStore {
	return &FallbackStore{records: make(map[string][]byte)}
}

// Add persists the record under its content-derived id. Storing identical
// content twice keeps one copy under the shared id; insertion order is
// keyed to the first sighting.
func (s *FallbackStore) Add(ctx context.Context, rec Record) (string, error) {
	data, err := rec.CanonicalJSON()
	if err != nil {
		return "", err
	}
	id, err := rec.ID()
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[id]; !exists {
		s.order = append(s.order, id)
	}
	s.records[id] = data
	return id, nil
}

// Query returns up to k records in insertion order. The query text is
// ignored: without embeddings there is no ranking to offer.
func (s *FallbackStore) Query(ctx context.Context, text string, k int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n := k
	if n > len(s.order) {
		n = len(s.order)
	}
	out := make([]Record, 0, n)
	for _, id := range s.order[:n] {
		rec, err := DecodeRecord(s.records[id])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Teardown drops all records. The store starts empty and stays usable.
func (s *FallbackStore) Teardown(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.records = make(map[string][]byte)
	return nil
}

// Kind identifies the backend variant.
func (s *FallbackStore) Kind() string {
	return "fallback"
}

// Len returns the number of stored records.
func (s *FallbackStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
