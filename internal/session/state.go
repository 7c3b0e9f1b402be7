// internal/session/state.go
package session

import (
	"forkfinder/internal/forksort"
	"forkfinder/internal/model"
)

// Phase is the position of a session in the fetch cycle.
type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "error"
	default:
		return "idle"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is everything a presentation layer needs to render a session.
// Transitions are pure: each returns an updated copy.
type State struct {
	Repository   string             `json:"repository"`
	Results      []model.ForkRecord `json:"results"`
	Loading      bool               `json:"isLoading"`
	ErrorMessage string             `json:"errorMessage"`
	Sort         forksort.State     `json:"sort"`
	Phase        Phase              `json:"phase"`
}

// StartFetch enters Loading. The previous error is cleared; previous results
// stay visible until a new result set replaces them.
func (s State) StartFetch(repository string) State {
	s.Repository = repository
	s.Loading = true
	s.ErrorMessage = ""
	s.Phase = Loading
	return s
}

// ApplySuccess replaces the result set. The records are kept in API order;
// the sort state is left as it was.
func (s State) ApplySuccess(records []model.ForkRecord) State {
	s.Results = records
	s.Phase = Success
	return s
}

// ApplyError records the failure message and leaves results untouched.
func (s State) ApplyError(err error) State {
	s.ErrorMessage = err.Error()
	s.Phase = Failed
	return s
}

// Finish ends a fetch cycle, whatever its outcome.
func (s State) Finish() State {
	s.Loading = false
	return s
}

// ApplySort toggles the sort on key and reorders the current results.
func (s State) ApplySort(key forksort.Key) State {
	s.Sort = s.Sort.Toggle(key)
	s.Results = forksort.Apply(s.Results, s.Sort)
	return s
}
