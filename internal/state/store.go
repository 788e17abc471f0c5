package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/quayside/internal/containers"
)

// Snapshot represents the latest fetch outcome available to the UI.
type Snapshot struct {
	Records     []containers.Record
	Loading     bool
	Generation  uint64 // bumped each time a load attempt finishes
	StartedAt   time.Time
	LastUpdated time.Time
	LastError   error
}

// Loaded reports whether at least one load attempt has finished.
func (s Snapshot) Loaded() bool {
	return s.Generation > 0
}

// Failed reports whether the most recent load attempt failed.
func (s Snapshot) Failed() bool {
	return s.LastError != nil
}

// Store hands fetch results from the loader goroutine to the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin marks a load attempt as in flight. Previously loaded records stay
// visible until the attempt finishes.
func (s *Store) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loading = true
	s.snapshot.StartedAt = time.Now()
}

// Finish records the outcome of a load attempt. A failed attempt clears the
// records: the UI shows an empty list rather than partial or stale data.
func (s *Store) Finish(records []containers.Record, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loading = false
	s.snapshot.Generation++
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.Records = nil
		s.snapshot.LastError = err
		return
	}
	s.snapshot.Records = cloneRecords(records)
	s.snapshot.LastError = nil
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Records = cloneRecords(s.snapshot.Records)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneRecords(items []containers.Record) []containers.Record {
	if len(items) == 0 {
		return nil
	}
	dup := make([]containers.Record, len(items))
	copy(dup, items)
	return dup
}
