package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"kpiawards/internal/model"
	"kpiawards/internal/service/query"
)

// MemoryStore in-memory award records and reference sequences.
// Serves the --memory mode and the tests; semantics follow the MongoDB store.
type MemoryStore struct {
	records    []model.AwardRecord
	references map[model.ReferenceKind][]model.ReferenceEntry
	failure    error
	mu         sync.RWMutex
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		references: make(map[model.ReferenceKind][]model.ReferenceEntry),
	}
}

// SetReferences replaces one reference sequence
func (s *MemoryStore) SetReferences(kind model.ReferenceKind, entries []model.ReferenceEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := append([]model.ReferenceEntry(nil), entries...)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].ID < cp[j].ID })
	s.references[kind] = cp
}

// SetReferenceNames builds a dense sequence with ids starting at 1
func (s *MemoryStore) SetReferenceNames(kind model.ReferenceKind, names ...string) {
	entries := make([]model.ReferenceEntry, len(names))
	for i, n := range names {
		entries[i] = model.ReferenceEntry{ID: i + 1, Name: n}
	}
	s.SetReferences(kind, entries)
}

// SetFailure makes every following operation fail with err; nil restores normal behaviour
func (s *MemoryStore) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *MemoryStore) failedLocked() error {
	if s.failure == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", model.ErrStorage, s.failure)
}

// Find returns the records matching the filter, all of them for an empty filter
func (s *MemoryStore) Find(_ context.Context, filter model.Filter) ([]model.AwardRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.failedLocked(); err != nil {
		return nil, err
	}

	result := make([]model.AwardRecord, 0, len(s.records))
	for _, r := range s.records {
		if query.Matches(filter, r) {
			result = append(result, r)
		}
	}
	return result, nil
}

// InsertOne appends a record unless a duplicate award exists
func (s *MemoryStore) InsertOne(_ context.Context, rec model.AwardRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failedLocked(); err != nil {
		return err
	}

	for _, r := range s.records {
		if query.IsDuplicate(r, rec) {
			return model.ErrDuplicateAward
		}
	}
	s.records = append(s.records, rec)
	return nil
}

// ReplaceAll drops every record and stores the given list
func (s *MemoryStore) ReplaceAll(_ context.Context, recs []model.AwardRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failedLocked(); err != nil {
		return err
	}
	s.records = append([]model.AwardRecord(nil), recs...)
	return nil
}

// Count number of stored records
func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.failedLocked(); err != nil {
		return 0, err
	}
	return int64(len(s.records)), nil
}

// List returns a reference sequence ordered by id
func (s *MemoryStore) List(_ context.Context, kind model.ReferenceKind) ([]model.ReferenceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.failedLocked(); err != nil {
		return nil, err
	}
	return append([]model.ReferenceEntry(nil), s.references[kind]...), nil
}

// Next returns the name of the entry following name in the same sequence
func (s *MemoryStore) Next(_ context.Context, kind model.ReferenceKind, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.failedLocked(); err != nil {
		return "", false, err
	}

	entries := s.references[kind]
	id, ok := 0, false
	for _, e := range entries {
		if e.Name == name {
			id, ok = e.ID, true
			break
		}
	}
	if !ok {
		return "", false, nil
	}
	for _, e := range entries {
		if e.ID == id+1 {
			return e.Name, true, nil
		}
	}
	return "", false, nil
}

// Exists reports membership; a failing store reports false
func (s *MemoryStore) Exists(_ context.Context, kind model.ReferenceKind, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failure != nil {
		return false
	}
	for _, e := range s.references[kind] {
		if e.Name == name {
			return true
		}
	}
	return false
}
