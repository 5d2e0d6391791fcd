package search

import (
	"time"

	"github.com/quantumpixelator/firstissue/pkg/github"
)

// RepoAggregate is the per-repository rollup of all matching issues seen
// during one search run. It is created on the first issue for a repository
// and mutated by every subsequent one; it lives for the duration of the run.
type RepoAggregate struct {
	Key RepoKey `json:"-"`

	// FullName is "owner/name" in first-seen casing.
	FullName string `json:"full_name"`

	// HTMLURL is the repository's web URL.
	HTMLURL string `json:"html_url"`

	// IssueCount is the number of matching issues seen for this repository.
	IssueCount int `json:"issue_count"`

	// UpdatedAt is the most recent update timestamp across those issues.
	UpdatedAt time.Time `json:"updated_at"`

	// SampleIssueURL links the first issue seen for this repository.
	SampleIssueURL string `json:"sample_issue_url"`

	// SampleIssueTitle is the title of that issue.
	SampleIssueTitle string `json:"sample_issue_title"`

	// Description is filled by enrichment when a token is available.
	Description string `json:"description,omitempty"`
}

// Aggregator folds a stream of issues into per-repository aggregates,
// preserving first-seen order. It is not goroutine-safe; a search run owns
// its aggregator exclusively until it publishes the result.
type Aggregator struct {
	byKey   map[string]*RepoAggregate
	order   []*RepoAggregate
	skipped int
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{byKey: make(map[string]*RepoAggregate)}
}

// Add folds one raw issue into the aggregates. Records whose repository
// reference cannot be parsed are counted as skipped and reported back;
// they never abort the run.
func (a *Aggregator) Add(issue github.Issue) error {
	key, err := ParseRepoRef(issue.RepositoryURL)
	if err != nil {
		a.skipped++
		return err
	}

	folded := key.fold()
	agg, ok := a.byKey[folded]
	if !ok {
		agg = &RepoAggregate{
			Key:              key,
			FullName:         key.String(),
			HTMLURL:          key.HTMLURL(),
			SampleIssueURL:   issue.HTMLURL,
			SampleIssueTitle: issue.Title,
		}
		a.byKey[folded] = agg
		a.order = append(a.order, agg)
	}

	agg.IssueCount++
	if issue.UpdatedAt.After(agg.UpdatedAt) {
		agg.UpdatedAt = issue.UpdatedAt
	}
	return nil
}

// Repos returns the aggregates in first-seen order.
func (a *Aggregator) Repos() []*RepoAggregate {
	return a.order
}

// Len returns the number of distinct repositories seen.
func (a *Aggregator) Len() int { return len(a.order) }

// Skipped returns how many malformed records were dropped.
func (a *Aggregator) Skipped() int { return a.skipped }
