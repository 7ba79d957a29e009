package loader

import (
	"context"
	"sync"
	"sync/atomic"
)

// Store keeps the most recent snapshot for concurrent readers. Reloads are
// serialized so only one fetch is outstanding at a time.
type Store struct {
	loader  *Loader
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex
}

// NewStore returns an empty store backed by l.
func NewStore(l *Loader) *Store {
	return &Store{loader: l}
}

// Current returns the latest snapshot or nil before the first load.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Reload runs a load cycle and publishes its snapshot.
func (s *Store) Reload(ctx context.Context) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.loader.Load(ctx)
	s.current.Store(snap)
	return snap
}
