package search

import "sort"

// SortByCount orders aggregates descending by issue count, in place.
// The sort is stable, so repositories with equal counts keep their
// first-seen order and the display stays deterministic across runs.
func SortByCount(repos []*RepoAggregate) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].IssueCount > repos[j].IssueCount
	})
}

// Page returns the pageNum-th fixed-size window over repos (1-based) and
// the total page count. An out-of-range pageNum clamps to the nearest
// valid page instead of failing, so callers can blindly step prev/next.
// An empty collection yields an empty page and zero total pages.
func Page(repos []*RepoAggregate, pageNum, size int) (items []*RepoAggregate, totalPages int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if len(repos) == 0 {
		return nil, 0
	}

	totalPages = (len(repos) + size - 1) / size
	if pageNum < 1 {
		pageNum = 1
	}
	if pageNum > totalPages {
		pageNum = totalPages
	}

	start := (pageNum - 1) * size
	end := min(start+size, len(repos))
	return repos[start:end], totalPages
}
