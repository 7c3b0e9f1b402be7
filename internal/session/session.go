// internal/session/session.go
package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"forkfinder/internal/forksort"
	"forkfinder/internal/model"
)

// Fetcher produces the result set for a repository.
type Fetcher interface {
	Fetch(ctx context.Context, repository string) ([]model.ForkRecord, error)
}

// Session owns the state of one user session and drives fetch cycles.
//
// Submit does not lock out concurrent cycles: overlapping calls each run to
// completion and whichever finishes last determines the results.
type Session struct {
	mu      sync.Mutex
	state   State
	fetcher Fetcher
	logger  *slog.Logger
}

// New creates an idle session.
func New(fetcher Fetcher, logger *slog.Logger) *Session {
	return &Session{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Submit runs one fetch cycle for repository and returns the resulting state.
func (s *Session) Submit(ctx context.Context, repository string) State {
	s.update(func(st State) State { return st.StartFetch(repository) })
	s.run(ctx, repository)
	return s.Snapshot()
}

func (s *Session) run(ctx context.Context, repository string) {
	defer s.update(State.Finish)

	records, err := s.fetcher.Fetch(ctx, repository)
	if err != nil {
		s.logger.Info("Fetch cycle failed", "repository", repository, "error", err)
		s.update(func(st State) State { return st.ApplyError(err) })
		return
	}
	s.update(func(st State) State { return st.ApplySuccess(records) })
}

// Sort toggles the sort on key and returns the resulting state.
func (s *Session) Sort(key forksort.Key) State {
	s.update(func(st State) State { return st.ApplySort(key) })
	return s.Snapshot()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Results = slices.Clone(st.Results)
	return st
}

func (s *Session) update(fn func(State) State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
}
