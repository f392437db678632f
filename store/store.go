// Package store holds the shared in-memory scan state: the latest snapshot,
// the scan timestamps and a bounded history of scan summaries. It is the only
// mutable state shared between the background scanner and the HTTP layer.
package store

import (
	"sync"
	"time"

	"nse-screener/models"
)

// DefaultMaxHistory is the default cap on retained scan summaries.
const DefaultMaxHistory = 100

// Store is the thread-safe holder of scan results. One lock guards the
// snapshot, the timestamps and the history together, so a reader always
// observes the pre- or post-state of a write, never a mix.
type Store struct {
	mu         sync.RWMutex
	interval   time.Duration
	maxHistory int

	snapshot     models.Snapshot
	lastScanTime time.Time
	nextScanTime time.Time
	history      []models.ScanSummary
}

// New creates a Store. The interval is used to derive the next scan time on
// every Store call. A non-positive maxHistory falls back to DefaultMaxHistory.
func New(interval time.Duration, maxHistory int) *Store {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Store{
		interval:   interval,
		maxHistory: maxHistory,
	}
}

// Store atomically replaces the current snapshot and updates both scan
// timestamps. The previous snapshot is discarded wholesale.
func (s *Store) Store(snapshot models.Snapshot, scanTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot.Copy()
	s.lastScanTime = scanTime
	s.nextScanTime = scanTime.Add(s.interval)
}

// Latest returns a copy of the current snapshot. The second return value is
// false until the first successful scan has been stored.
func (s *Store) Latest() (models.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, false
	}
	return s.snapshot.Copy(), true
}

// AppendHistory appends a scan summary, evicting the oldest entries once the
// cap is exceeded.
func (s *Store) AppendHistory(summary models.ScanSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, summary)
	if len(s.history) > s.maxHistory {
		excess := len(s.history) - s.maxHistory
		copy(s.history, s.history[excess:])
		s.history = s.history[:s.maxHistory]
	}
}

// History returns a copy of the scan summaries in insertion order, oldest
// first.
func (s *Store) History() []models.ScanSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ScanSummary, len(s.history))
	copy(out, s.history)
	return out
}

// LastScanTime returns the time of the last stored scan, or nil if no scan
// has completed yet.
func (s *Store) LastScanTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastScanTime.IsZero() {
		return nil
	}
	t := s.lastScanTime
	return &t
}

// NextScanTime returns the expected time of the next timer scan, or nil if no
// scan has completed yet.
func (s *Store) NextScanTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.nextScanTime.IsZero() {
		return nil
	}
	t := s.nextScanTime
	return &t
}

// Clear resets the store to its initial empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.lastScanTime = time.Time{}
	s.nextScanTime = time.Time{}
	s.history = nil
}

// Interval returns the configured scan interval.
func (s *Store) Interval() time.Duration {
	return s.interval
}

// MaxHistory returns the history cap.
func (s *Store) MaxHistory() int {
	return s.maxHistory
}
