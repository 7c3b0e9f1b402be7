// internal/finder/finder.go
package finder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	custom_errors "forkfinder/internal/errors"
	"forkfinder/internal/github"
	"forkfinder/internal/join"
	"forkfinder/internal/model"
)

// Source is the subset of the GitHub API the finder talks to.
type Source interface {
	ListForks(ctx context.Context, repository string) ([]model.ForkSummary, error)
	GetFork(ctx context.Context, detailURL string) (*model.ForkRecord, error)
	RateLimitReset(ctx context.Context) (time.Time, error)
}

// Finder runs the fetch, classify and enrich pipeline for one repository.
type Finder struct {
	source   Source
	logger   *slog.Logger
	location *time.Location
}

// NewFinder creates a new Finder. Rate-limit reset times are reported in loc;
// a nil loc means time.Local.
func NewFinder(source Source, logger *slog.Logger, loc *time.Location) *Finder {
	if loc == nil {
		loc = time.Local
	}
	return &Finder{
		source:   source,
		logger:   logger,
		location: loc,
	}
}

// Fetch lists the forks of repository and enriches each of them. A listing
// with no forks yields custom_errors.ErrEmptyResult.
func (f *Finder) Fetch(ctx context.Context, repository string) ([]model.ForkRecord, error) {
	logger := f.logger.With("cycle_id", uuid.NewString(), "repository", repository)
	logger.Info("Fetching forks")

	summaries, err := f.source.ListForks(ctx, repository)
	if err != nil {
		classified := f.Classify(ctx, err)
		logger.Warn("Listing forks failed", "error", err, "message", classified.Error())
		return nil, classified
	}

	if len(summaries) == 0 {
		logger.Info("No forks found")
		return nil, custom_errors.ErrEmptyResult
	}

	logger.Info("Found forks, fetching details", "count", len(summaries))
	records, err := f.enrich(ctx, logger, summaries)
	if err != nil {
		logger.Warn("Fetching fork details failed", "error", err)
		return nil, err
	}

	logger.Info("Fetch cycle finished", "count", len(records))
	return records, nil
}

// Classify maps a failed listing to a user-facing error. A 403 triggers a
// lookup of the quota reset time; if that lookup fails its error is returned
// instead of the rate-limit error. Errors without an HTTP status are returned
// unchanged.
func (f *Finder) Classify(ctx context.Context, err error) error {
	var statusErr *github.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	switch statusErr.StatusCode {
	case http.StatusNotFound:
		return &custom_errors.ErrNotFound{}
	case http.StatusForbidden:
		reset, lookupErr := f.source.RateLimitReset(ctx)
		if lookupErr != nil {
			return lookupErr
		}
		return &custom_errors.ErrRateLimited{Reset: reset.In(f.location)}
	case http.StatusMovedPermanently:
		return &custom_errors.ErrMoved{}
	case http.StatusUnauthorized:
		return &custom_errors.ErrUnauthenticated{}
	default:
		return &custom_errors.ErrHTTP{StatusCode: statusErr.StatusCode, Status: statusErr.Status}
	}
}

// Enrich fetches the metadata of every fork concurrently. It fails as a whole
// if any single detail request fails.
func (f *Finder) Enrich(ctx context.Context, summaries []model.ForkSummary) ([]model.ForkRecord, error) {
	return f.enrich(ctx, f.logger, summaries)
}

func (f *Finder) enrich(ctx context.Context, logger *slog.Logger, summaries []model.ForkSummary) ([]model.ForkRecord, error) {
	ops := make([]join.Op[model.ForkRecord], len(summaries))
	for i, s := range summaries {
		ops[i] = func(ctx context.Context) (model.ForkRecord, error) {
			logger.Debug("Fetching fork details", "fork", s.FullName)
			details, err := f.source.GetFork(ctx, s.URL)
			if err != nil {
				return model.ForkRecord{}, &custom_errors.ErrDetailFetch{URL: s.URL, Err: err}
			}
			record := *details
			record.Name = s.FullName
			record.URL = s.HTMLURL
			return record, nil
		}
	}

	return join.All(ctx, ops...)
}
