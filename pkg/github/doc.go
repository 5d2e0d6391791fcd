// Package github provides a client for the GitHub issue-search API.
//
// The client targets exactly two endpoints: GET /search/issues, which feeds
// the aggregation engine, and GET /repos/{owner}/{repo}, used to enrich
// results with repository descriptions. It is not a general GitHub client.
//
// Rate-limit headers are read from every response and surfaced to callers;
// 403/429 responses become [errors.RateLimitedError] values so the UI can
// tell the user when the window resets. Transient 5xx responses are retried
// with backoff, everything else fails fast.
package github
