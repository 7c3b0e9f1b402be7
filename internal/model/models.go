// internal/model/models.go
package model

import "time"

// ForkSummary is one entry of a repository's forks listing.
type ForkSummary struct {
	FullName string
	HTMLURL  string
	// URL is the API URL that returns the fork's full metadata.
	URL string
}

// ForkRecord represents the enriched metadata of a single fork.
// Name is unique within a result set.
type ForkRecord struct {
	Name        string    `json:"name"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	LastUpdated time.Time `json:"lastUpdated"`
	URL         string    `json:"url"`
	Description *string   `json:"description"`
	OpenIssues  int       `json:"openIssues"`
	Watchers    int       `json:"watchers"`
	CreatedAt   time.Time `json:"createdAt"`
	Size        int       `json:"size"` // kilobytes
	Language    *string   `json:"language"`
}
