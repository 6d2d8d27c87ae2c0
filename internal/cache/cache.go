// Package cache provides a session-scoped in-memory result store. It bridges
// the gap between a pipeline run finishing and its database write being
// confirmed, and accumulates paginated sourcing results per job.
//
// The store is passed by reference to the components that need it rather
// than living as package-level state, so lifecycle and test isolation stay
// explicit. Last write wins per key; there is no eviction and no TTL, so the
// store lives as long as the process.
package cache

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jmtong/talentpipe/internal/types"
)

// Store is a mutex-guarded per-job result cache.
type Store struct {
	mu       sync.RWMutex
	outputs  map[uuid.UUID]*types.AgentOutput
	searches map[uuid.UUID][]types.SearchResult
}

// New creates an empty store.
func New() *Store {
	return &Store{
		outputs:  make(map[uuid.UUID]*types.AgentOutput),
		searches: make(map[uuid.UUID][]types.SearchResult),
	}
}

// SetOutput stores the pipeline output for a job, replacing any previous one.
func (s *Store) SetOutput(jobID uuid.UUID, output *types.AgentOutput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs[jobID] = output
}

// GetOutput returns the cached pipeline output for a job, or nil.
func (s *Store) GetOutput(jobID uuid.UUID) *types.AgentOutput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outputs[jobID]
}

// SetSearchResults replaces the accumulated search results for a job.
func (s *Store) SetSearchResults(jobID uuid.UUID, results []types.SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches[jobID] = append([]types.SearchResult(nil), results...)
}

// AddToSearchResults appends a page of search results for a job, so callers
// can accumulate "load more" pages without re-fetching earlier ones.
func (s *Store) AddToSearchResults(jobID uuid.UUID, page []types.SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches[jobID] = append(s.searches[jobID], page...)
}

// GetSearchResults returns a copy of the accumulated search results for a job.
func (s *Store) GetSearchResults(jobID uuid.UUID) []types.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := s.searches[jobID]
	if results == nil {
		return nil
	}
	return append([]types.SearchResult(nil), results...)
}

// Clear drops everything in the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs = make(map[uuid.UUID]*types.AgentOutput)
	s.searches = make(map[uuid.UUID][]types.SearchResult)
}
