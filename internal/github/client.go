// internal/github/client.go
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"forkfinder/internal/model"
)

// forksPerPage is the single page size requested from the forks listing.
const forksPerPage = 100

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string // status text without the code, e.g. "Not Found"
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github API returned %d %s: %v", e.StatusCode, e.Status, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance.
// An empty token yields an unauthenticated client. An empty baseURL targets
// the public GitHub API.
func NewClient(token, baseURL string, logger *slog.Logger) (*Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	gh := github.NewClient(httpClient)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
		}
		gh.BaseURL = u
	}

	return &Client{
		gh:     gh,
		logger: logger,
	}, nil
}

// ListForks fetches the first page of forks of repository ("owner/name"),
// sorted by stargazers. The identifier is not validated.
func (c *Client) ListForks(ctx context.Context, repository string) ([]model.ForkSummary, error) {
	owner, name, _ := strings.Cut(repository, "/")
	opts := &github.RepositoryListForksOptions{
		Sort: "stargazers",
		ListOptions: github.ListOptions{
			PerPage: forksPerPage,
		},
	}

	c.logger.Debug("Fetching forks", "repository", repository)
	forks, resp, err := c.gh.Repositories.ListForks(ctx, owner, name, opts)
	if err != nil {
		return nil, withStatus(resp, err)
	}

	summaries := make([]model.ForkSummary, 0, len(forks))
	for _, f := range forks {
		summaries = append(summaries, model.ForkSummary{
			FullName: f.GetFullName(),
			HTMLURL:  f.GetHTMLURL(),
			URL:      f.GetURL(),
		})
	}
	return summaries, nil
}

// GetFork fetches the full metadata of a fork from its API URL.
func (c *Client) GetFork(ctx context.Context, detailURL string) (*model.ForkRecord, error) {
	req, err := c.gh.NewRequest(http.MethodGet, detailURL, nil)
	if err != nil {
		return nil, err
	}

	repo := new(github.Repository)
	resp, err := c.gh.Do(ctx, req, repo)
	if err != nil {
		return nil, withStatus(resp, err)
	}
	return toForkRecord(repo), nil
}

// rateLimitResponse is the subset of the rate_limit payload we read.
type rateLimitResponse struct {
	Rate github.Rate `json:"rate"`
}

// RateLimitReset looks up when the current API quota resets.
func (c *Client) RateLimitReset(ctx context.Context) (time.Time, error) {
	req, err := c.gh.NewRequest(http.MethodGet, "rate_limit", nil)
	if err != nil {
		return time.Time{}, err
	}

	// Sent on the underlying HTTP client: the quota is known to be exhausted
	// here and go-github's Do would refuse the request without sending it.
	resp, err := c.gh.Client().Do(req.WithContext(ctx))
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()

	if err := github.CheckResponse(resp); err != nil {
		return time.Time{}, withStatus(&github.Response{Response: resp}, err)
	}

	var body rateLimitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode rate limit response: %w", err)
	}
	return body.Rate.Reset.Time, nil
}

// withStatus attaches the HTTP status of resp to err when a response was received.
func withStatus(resp *github.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return err
	}
	code := resp.StatusCode
	if code >= 200 && code <= 299 {
		return err
	}
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(code)+" ")
	if text == "" {
		text = http.StatusText(code)
	}
	return &StatusError{StatusCode: code, Status: text, Err: err}
}

// toForkRecord translates a github.Repository object to our internal model.ForkRecord.
func toForkRecord(r *github.Repository) *model.ForkRecord {
	return &model.ForkRecord{
		Name:        r.GetFullName(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		LastUpdated: r.GetUpdatedAt().Time,
		URL:         r.GetHTMLURL(),
		Description: r.Description,
		OpenIssues:  r.GetOpenIssuesCount(),
		Watchers:    r.GetWatchersCount(),
		CreatedAt:   r.GetCreatedAt().Time,
		Size:        r.GetSize(),
		Language:    r.Language,
	}
}
