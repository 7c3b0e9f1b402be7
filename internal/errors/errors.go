// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyResult is returned when the forks listing succeeds but contains no entries.
var ErrEmptyResult = errors.New("No forks found for this repository.")

// ResetTimeLayout is the layout used to print a rate-limit reset time.
const ResetTimeLayout = "15:04:05 MST on Jan 2"

// ErrNotFound is returned when the repository does not exist or is not visible.
type ErrNotFound struct{}

func (e *ErrNotFound) Error() string {
	return "Repository not found. Please check the repository name and ensure it's public."
}

// ErrRateLimited is returned when the API quota is exhausted. Reset is already
// converted to the display location.
type ErrRateLimited struct {
	Reset time.Time
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("API rate limit exceeded. Limit resets at %s.", e.Reset.Format(ResetTimeLayout))
}

// ErrMoved is returned when the repository answered with 301 Moved Permanently.
type ErrMoved struct{}

func (e *ErrMoved) Error() string {
	return "Repository has been moved permanently."
}

// ErrUnauthenticated is returned on 401 responses.
type ErrUnauthenticated struct{}

func (e *ErrUnauthenticated) Error() string {
	return "Authentication error. Please check your credentials."
}

// ErrHTTP covers every other non-2xx status of the forks listing.
type ErrHTTP struct {
	StatusCode int
	Status     string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("API error: %d %s", e.StatusCode, e.Status)
}

// ErrDetailFetch wraps a failure while loading the metadata of one fork.
// Its message is the message of the underlying error.
type ErrDetailFetch struct {
	URL string
	Err error
}

func (e *ErrDetailFetch) Error() string {
	return e.Err.Error()
}

func (e *ErrDetailFetch) Unwrap() error {
	return e.Err
}
