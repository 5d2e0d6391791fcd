package github

import "time"

// Issue is a raw issue record from the search API.
//
// Search responses carry the owning repository only as the RepositoryURL
// string (".../repos/{owner}/{repo}"), never as a nested repository object.
// Code that expects a nested object silently drops every result, so the
// URL field is modeled as-is and parsed downstream.
type Issue struct {
	Title         string    `json:"title"`
	HTMLURL       string    `json:"html_url"`
	UpdatedAt     time.Time `json:"updated_at"`
	RepositoryURL string    `json:"repository_url"`
}

// SearchPage is one page of issue-search results.
type SearchPage struct {
	TotalCount        int       `json:"total_count"`
	IncompleteResults bool      `json:"incomplete_results"`
	Items             []Issue   `json:"items"`
	RateLimit         RateLimit `json:"-"`
}

// RateLimit holds the rate-limit state reported by the response headers.
type RateLimit struct {
	// Remaining is the number of requests left in the current window.
	// -1 when the header was absent.
	Remaining int

	// ResetAt is when the window resets. Zero when the header was absent.
	ResetAt time.Time
}

// repoResponse is the subset of GET /repos/{owner}/{repo} used for enrichment.
type repoResponse struct {
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Archived    bool   `json:"archived"`
}
