package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps all records in process memory. Used in tests and for
// local development without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

func (s *MemoryStore) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.Key] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, kind Kind, key string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok || rec.Kind != kind {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) List(_ context.Context, kind Kind) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []Record
	for _, rec := range s.records {
		if rec.Kind == kind {
			recs = append(recs, rec)
		}
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt != recs[j].CreatedAt {
			return recs[i].CreatedAt < recs[j].CreatedAt
		}
		return recs[i].Key < recs[j].Key
	})

	return recs, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
