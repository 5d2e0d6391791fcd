package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/quantumpixelator/firstissue/pkg/cache"
	apperrors "github.com/quantumpixelator/firstissue/pkg/errors"
	"github.com/quantumpixelator/firstissue/pkg/httputil"
	"github.com/quantumpixelator/firstissue/pkg/observability"
)

const (
	// MaxPerPage is the search API page-size ceiling.
	MaxPerPage = 100

	httpTimeout = 30 * time.Second

	// descTTL is how long repository descriptions stay cached.
	descTTL = 24 * time.Hour

	// maxErrorBody caps how much of an error response body is kept.
	maxErrorBody = 512
)

// Client provides access to the GitHub issue-search API.
// It handles authentication headers, rate-limit metadata, retries on 5xx
// responses, and caching of repository descriptions.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	headers map[string]string

	// BaseURL is the API root, overridable for tests.
	BaseURL string
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty token for unauthenticated requests (lower rate limits).
// Pass nil for c to disable description caching.
func NewClient(token string, c cache.Cache) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}

	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   c,
		BaseURL: "https://api.github.com",
		headers: headers,
	}
}

// Authenticated reports whether the client sends a token.
func (c *Client) Authenticated() bool {
	_, ok := c.headers["Authorization"]
	return ok
}

// SearchIssues fetches one page of issue-search results for query.
// perPage is clamped to [MaxPerPage]. Results are sorted by update time,
// newest first, matching the recency-window semantics of the query.
//
// A 403 or 429 response returns a *errors.RateLimitedError carrying the
// reset time; the call is never retried automatically. Other non-2xx
// responses return a *errors.FetchError with the status and body. 5xx
// responses are retried with backoff before giving up.
func (c *Client) SearchIssues(ctx context.Context, query string, page, perPage int) (*SearchPage, error) {
	if perPage <= 0 || perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page < 1 {
		page = 1
	}

	u := fmt.Sprintf("%s/search/issues?q=%s&sort=updated&order=desc&per_page=%d&page=%d",
		c.BaseURL, url.QueryEscape(query), perPage, page)

	var result SearchPage
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.getJSON(ctx, u, &result, &result.RateLimit)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RepoDescription fetches the description of a repository, serving from
// cache when possible. Enrichment is best-effort: callers treat any error
// as "no description".
func (c *Client) RepoDescription(ctx context.Context, owner, name string) (string, error) {
	key := "repo-desc:" + strings.ToLower(owner+"/"+name)

	if data, hit, _ := c.cache.Get(ctx, key); hit {
		observability.CacheEvents().OnCacheHit(ctx, "repo-desc")
		return string(data), nil
	}
	observability.CacheEvents().OnCacheMiss(ctx, "repo-desc")

	var repo repoResponse
	u := fmt.Sprintf("%s/repos/%s/%s", c.BaseURL, owner, name)
	if err := c.getJSON(ctx, u, &repo, nil); err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, []byte(repo.Description), descTTL); err == nil {
		observability.CacheEvents().OnCacheSet(ctx, "repo-desc", len(repo.Description))
	}
	return repo.Description, nil
}

// getJSON performs a GET request and decodes the JSON response into v.
// When rl is non-nil it is filled from the rate-limit response headers.
func (c *Client) getJSON(ctx context.Context, rawURL string, v any, rl *RateLimit) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
		return &httputil.RetryableError{Err: apperrors.Wrap(apperrors.ErrCodeNetwork, err, "GET %s", path)}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	limit := parseRateLimit(resp.Header)
	if rl != nil {
		*rl = limit
	}

	if err := checkStatus(resp, limit); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// checkStatus maps a non-2xx response to the error taxonomy.
// The caller still owns resp.Body.
func checkStatus(resp *http.Response, limit RateLimit) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusForbidden || code == http.StatusTooManyRequests:
		return &apperrors.RateLimitedError{ResetAt: limit.ResetAt, Remaining: max(limit.Remaining, 0)}
	case code >= 500:
		return &httputil.RetryableError{
			Err: apperrors.New(apperrors.ErrCodeNetwork, "provider returned status %d", code),
		}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &apperrors.FetchError{Status: code, Body: strings.TrimSpace(string(body))}
	}
}

// parseRateLimit reads X-RateLimit-Remaining and X-RateLimit-Reset.
// Remaining is -1 and ResetAt zero when a header is absent or malformed.
func parseRateLimit(h http.Header) RateLimit {
	rl := RateLimit{Remaining: -1}
	if s := h.Get("X-RateLimit-Remaining"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			rl.Remaining = n
		}
	}
	if s := h.Get("X-RateLimit-Reset"); s != "" {
		if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
			rl.ResetAt = time.Unix(sec, 0).UTC()
		}
	}
	return rl
}
