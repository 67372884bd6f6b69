package repository

import (
	"context"
	"sync"

	"github.com/okian/paceline/internal/domain/model"
)

// SnapshotStore implements Store with a mutex-guarded pointer. Readers take
// a consistent snapshot value and proceed lock-free afterwards; the lock
// exists only for the reload path.
type SnapshotStore struct {
	mu   sync.RWMutex
	snap *model.Snapshot
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Current returns the active snapshot.
func (s *SnapshotStore) Current(_ context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrNoSnapshot
	}
	return s.snap, nil
}

// Swap replaces the active snapshot.
func (s *SnapshotStore) Swap(_ context.Context, snap *model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}
