package analyzer

import "sync/atomic"

// Store holds the most recently published analysis result. Publication is
// atomic: a reader observes either the previous complete result or the new
// complete one, never a partial state. An analysis cancelled in flight
// simply never publishes.
type Store struct {
	cur atomic.Pointer[Result]
}

// Publish replaces the current result.
func (s *Store) Publish(r *Result) {
	s.cur.Store(r)
}

// Latest returns the current result, or nil before the first publication.
func (s *Store) Latest() *Result {
	return s.cur.Load()
}
