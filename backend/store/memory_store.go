package store

import (
	"fmt"
	"sync"

	"project/backend/models"
)

// MemoryStore is the local-ephemeral ProgressStore backend. It stands in
// for browser local storage when no database is configured and backs
// tests. Snapshots survive for the process lifetime only.
type MemoryStore struct {
	mu    sync.Mutex
	snaps map[string]models.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]models.Snapshot)}
}

func (s *MemoryStore) Load(userID uint, courseCode string) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[key(userID, courseCode)]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (s *MemoryStore) Save(userID uint, courseCode string, snap models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(userID, courseCode)
	if existing, ok := s.snaps[k]; ok && existing.SavedAt.After(snap.SavedAt) {
		return nil
	}
	s.snaps[k] = snap
	return nil
}

func (s *MemoryStore) Reset(userID uint, courseCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, key(userID, courseCode))
	return nil
}

func key(userID uint, courseCode string) string {
	return fmt.Sprintf("%d/%s", userID, courseCode)
}
