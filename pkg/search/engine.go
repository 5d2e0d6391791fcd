package search

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/quantumpixelator/firstissue/pkg/errors"
	"github.com/quantumpixelator/firstissue/pkg/github"
	"github.com/quantumpixelator/firstissue/pkg/observability"
)

const (
	// ResultCeiling is the provider's hard cap on queryable search results.
	// Queries matching more issues than this simply cannot page past it.
	ResultCeiling = 1000

	// defaultMaxPages keeps the request budget at the ceiling:
	// 10 pages of 100 items.
	defaultMaxPages = 10

	// pagePause spaces out sequential page requests to be gentle on the
	// shared search rate limit.
	pagePause = 200 * time.Millisecond

	// defaultEnrichLimit caps description lookups per run. Enrichment
	// costs one core-API request per repository, so it only runs with a
	// token and stops after this many lookups.
	defaultEnrichLimit = 60
)

// Result is the outcome of one search run.
type Result struct {
	// Repos are the aggregated repositories, sorted by issue count
	// descending (ties in first-seen order).
	Repos []*RepoAggregate

	// Query is the provider query string the run used.
	Query string

	// TotalCount is the provider-reported total match count, which may
	// exceed what is reachable under the result ceiling.
	TotalCount int

	// Pages is how many pages were actually fetched.
	Pages int

	// Skipped counts malformed records dropped during normalization.
	Skipped int

	// Partial is true when pagination stopped on an error; Repos then
	// holds everything aggregated up to that point.
	Partial bool

	// CeilingHit is true when more matches exist than the provider allows
	// paging through. The result set is still valid, just not complete.
	CeilingHit bool

	// Err is the error that ended pagination early, if any. Typically a
	// *errors.RateLimitedError or *errors.FetchError.
	Err error

	// RateLimit is the rate-limit state from the last response seen.
	RateLimit github.RateLimit
}

// Engine runs searches against a GitHub client. The zero value is not
// usable; construct with NewEngine.
type Engine struct {
	client *github.Client
	logger *log.Logger

	// MaxPages bounds the request budget per run.
	MaxPages int

	// PerPage is the page size requested from the provider, at most
	// github.MaxPerPage.
	PerPage int

	// EnrichLimit caps description lookups per run. Zero disables
	// enrichment.
	EnrichLimit int
}

// NewEngine creates an engine with the default request budget.
func NewEngine(client *github.Client, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		client:      client,
		logger:      logger,
		MaxPages:    defaultMaxPages,
		PerPage:     github.MaxPerPage,
		EnrichLimit: defaultEnrichLimit,
	}
}

// Search runs the full fetch → normalize → aggregate pipeline and returns
// the sorted result set.
//
// Pages are fetched sequentially until the budget, the ceiling, or the end
// of the results. A transport error or rate limit mid-run does not discard
// work: the aggregates built so far come back with Partial set and the
// error in Result.Err. Search returns a non-nil error only when the very
// first page fails and there is nothing to show.
func (e *Engine) Search(ctx context.Context, f Filters) (*Result, error) {
	query := BuildQuery(f)
	start := time.Now()
	observability.Search().OnRunStart(ctx, query)

	result := &Result{Query: query}
	agg := NewAggregator()

	e.fetchPages(ctx, query, agg, result)

	result.Repos = agg.Repos()
	result.Skipped = agg.Skipped()
	SortByCount(result.Repos)

	observability.Search().OnRunComplete(ctx, query, len(result.Repos), time.Since(start), result.Err)

	if result.Err != nil && result.Pages == 0 {
		return nil, result.Err
	}

	e.logger.Info("search complete",
		"repos", len(result.Repos),
		"pages", result.Pages,
		"total_count", result.TotalCount,
		"skipped", result.Skipped,
		"partial", result.Partial,
		"duration", time.Since(start).Round(time.Millisecond))

	e.enrich(ctx, result.Repos)
	return result, nil
}

// fetchPages drives the sequential page loop, folding every record into agg
// and recording progress in result.
func (e *Engine) fetchPages(ctx context.Context, query string, agg *Aggregator, result *Result) {
	perPage := e.PerPage
	if perPage <= 0 || perPage > github.MaxPerPage {
		perPage = github.MaxPerPage
	}
	maxPages := e.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	if budget := ResultCeiling / perPage; maxPages > budget {
		maxPages = budget
	}

	for page := 1; page <= maxPages; page++ {
		if page > 1 {
			select {
			case <-ctx.Done():
				result.Partial = true
				result.Err = ctx.Err()
				return
			case <-time.After(pagePause):
			}
		}

		sp, err := e.client.SearchIssues(ctx, query, page, perPage)
		if err != nil {
			// Keep what we have; the caller decides what a partial
			// result is worth.
			result.Partial = true
			result.Err = err
			e.logger.Warn("pagination stopped", "page", page, "err", err)
			return
		}

		result.Pages = page
		result.TotalCount = sp.TotalCount
		result.RateLimit = sp.RateLimit
		observability.Search().OnPageFetched(ctx, page, len(sp.Items), sp.TotalCount)

		for _, issue := range sp.Items {
			if err := agg.Add(issue); err != nil {
				observability.Search().OnRecordSkipped(ctx, apperrors.UserMessage(err))
				e.logger.Debug("skipping malformed record", "issue", issue.HTMLURL, "err", err)
			}
		}

		e.logger.Debug("fetched page",
			"page", page,
			"items", len(sp.Items),
			"repos", agg.Len(),
			"rate_remaining", sp.RateLimit.Remaining)

		if len(sp.Items) < perPage {
			return // last page
		}
		if page*perPage >= min(sp.TotalCount, ResultCeiling) {
			result.CeilingHit = sp.TotalCount > ResultCeiling
			return
		}
	}

	result.CeilingHit = result.TotalCount > maxPages*perPage
}

// enrich fills repository descriptions for the top aggregates, best-effort.
// Runs only with a token: unauthenticated core-API quota is too small to
// spend one request per repository.
func (e *Engine) enrich(ctx context.Context, repos []*RepoAggregate) {
	if e.EnrichLimit <= 0 || !e.client.Authenticated() {
		return
	}

	limit := min(e.EnrichLimit, len(repos))
	for _, repo := range repos[:limit] {
		if ctx.Err() != nil {
			return
		}
		desc, err := e.client.RepoDescription(ctx, repo.Key.Owner, repo.Key.Name)
		if err != nil {
			e.logger.Debug("description lookup failed", "repo", repo.FullName, "err", err)
			continue
		}
		repo.Description = desc
	}
}
