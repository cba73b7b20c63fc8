package resolver

import "sync/atomic"

// Snapshot holds the last successful build for concurrent readers. Builds
// never mutate a published Result; a new build replaces it wholesale.
type Snapshot struct {
	current atomic.Pointer[Result]
}

// Load returns the published result, or nil before the first build.
func (s *Snapshot) Load() *Result {
	return s.current.Load()
}

// Publish replaces the current result and returns the one it replaced.
func (s *Snapshot) Publish(r *Result) *Result {
	return s.current.Swap(r)
}
