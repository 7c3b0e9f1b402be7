// cmd/forkfinder/find_test.go
package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rateLimitReset = time.Date(2030, 5, 6, 14, 30, 0, 0, time.UTC)

// fakeGitHub serves the three endpoints the pipeline uses.
func fakeGitHub(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/Hello-World/forks", func(w http.ResponseWriter, r *http.Request) {
		base := "http://" + r.Host
		fmt.Fprintf(w, `[
			{"full_name": "a/r", "html_url": "https://github.com/a/r", "url": "%[1]s/repos/a/r"},
			{"full_name": "b/r", "html_url": "https://github.com/b/r", "url": "%[1]s/repos/b/r"},
			{"full_name": "c/r", "html_url": "https://github.com/c/r", "url": "%[1]s/repos/c/r"}
		]`, base)
	})
	for name, stars := range map[string]int{"a": 5, "b": 1, "c": 9} {
		mux.HandleFunc("/repos/"+name+"/r", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"full_name": "%s/r", "stargazers_count": %d, "forks_count": 1,
				"updated_at": "2024-03-01T12:00:00Z", "created_at": "2023-01-01T12:00:00Z",
				"description": "fork of %s", "language": "Go", "size": 12}`, name, stars, name)
		})
	}
	mux.HandleFunc("/repos/octocat/missing/forks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, `{"message": "Not Found"}`)
	})
	mux.HandleFunc("/repos/octocat/lonely/forks", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `[]`)
	})
	mux.HandleFunc("/repos/octocat/limited/forks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprintln(w, `{"message": "API rate limit exceeded"}`)
	})
	mux.HandleFunc("/rate_limit", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"rate": {"limit": 60, "remaining": 0, "reset": %d}}`, rateLimitReset.Unix())
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func runFind(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	server := fakeGitHub(t)

	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("GITHUB_API_URL", server.URL)
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("TIME_ZONE", "UTC")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"find"}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// rowNames returns the first column of every table row.
func rowNames(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.HasSuffix(fields[0], "/r") {
			names = append(names, fields[0])
		}
	}
	return names
}

func TestFind(t *testing.T) {
	t.Run("prints forks in API order", func(t *testing.T) {
		out, _, err := runFind(t, "octocat/Hello-World")

		require.NoError(t, err)
		assert.Equal(t, []string{"a/r", "b/r", "c/r"}, rowNames(out))
		assert.Contains(t, out, "fork of a")
		assert.Contains(t, out, "2024-03-01")
		assert.Contains(t, out, "3 forks")
	})

	t.Run("applies sort toggles in order", func(t *testing.T) {
		out, _, err := runFind(t, "octocat/Hello-World", "--sort", "stars")
		require.NoError(t, err)
		assert.Equal(t, []string{"b/r", "a/r", "c/r"}, rowNames(out))

		out, _, err = runFind(t, "octocat/Hello-World", "--sort", "stars", "--sort", "stars")
		require.NoError(t, err)
		assert.Equal(t, []string{"c/r", "a/r", "b/r"}, rowNames(out))
		assert.Contains(t, out, "Sorted by stars (descending)")
	})

	t.Run("reports a missing repository", func(t *testing.T) {
		out, errOut, err := runFind(t, "octocat/missing")

		assert.ErrorIs(t, err, errFetchFailed)
		assert.Contains(t, errOut, "Repository not found. Please check the repository name and ensure it's public.")
		assert.Empty(t, rowNames(out))
	})

	t.Run("reports an empty fork list", func(t *testing.T) {
		_, errOut, err := runFind(t, "octocat/lonely")

		assert.ErrorIs(t, err, errFetchFailed)
		assert.Contains(t, errOut, "No forks found for this repository.")
	})

	t.Run("reports the rate-limit reset time", func(t *testing.T) {
		_, errOut, err := runFind(t, "octocat/limited")

		assert.ErrorIs(t, err, errFetchFailed)
		assert.Contains(t, errOut, "API rate limit exceeded. Limit resets at 14:30:00 UTC on May 6.")
	})

	t.Run("rejects an unknown sort key before fetching", func(t *testing.T) {
		_, _, err := runFind(t, "octocat/Hello-World", "--sort", "popularity")

		assert.ErrorContains(t, err, "unknown sort key")
	})
}
