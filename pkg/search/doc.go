// Package search implements the issue-search engine: building provider
// queries, fetching result pages under a request budget, normalizing raw
// records, aggregating issues per repository, and paging the aggregate set.
//
// # Pipeline
//
// A search run flows through:
//
//	BuildQuery → Client.SearchIssues (page loop) → ParseRepoRef → Aggregator → SortByCount/Page
//
// The engine fetches pages sequentially to respect GitHub's shared search
// rate limit, and stops at the provider's 1000-result ceiling regardless of
// the true match count. Per-record failures are skipped and counted;
// per-page failures end pagination but the aggregates built so far are
// still returned, flagged as partial.
package search
