package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	apperrors "github.com/quantumpixelator/firstissue/pkg/errors"
	"github.com/quantumpixelator/firstissue/pkg/github"
)

// searchItem mirrors the wire shape of one issue record.
type searchItem struct {
	Title         string `json:"title"`
	HTMLURL       string `json:"html_url"`
	UpdatedAt     string `json:"updated_at"`
	RepositoryURL string `json:"repository_url,omitempty"`
}

func item(repo string) searchItem {
	return searchItem{
		Title:         "Fix something in " + repo,
		HTMLURL:       "https://github.com/" + repo + "/issues/1",
		UpdatedAt:     time.Now().UTC().Format(time.RFC3339),
		RepositoryURL: "https://api.github.com/repos/" + repo,
	}
}

func writePage(w http.ResponseWriter, totalCount int, items []searchItem) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Remaining", "9")
	json.NewEncoder(w).Encode(map[string]any{
		"total_count": totalCount,
		"items":       items,
	})
}

// newTestEngine wires an engine to srv with a small page size so tests
// don't need hundreds of fixture records.
func newTestEngine(t *testing.T, srv *httptest.Server, token string) *Engine {
	t.Helper()
	client := github.NewClient(token, nil)
	client.BaseURL = srv.URL

	e := NewEngine(client, nil)
	e.PerPage = 2
	e.EnrichLimit = 0
	return e
}

func TestEngine_AggregatesAcrossPages(t *testing.T) {
	// octocat/Hello-World appears on both pages; it must fold into one
	// aggregate with count 2.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/issues" {
			http.NotFound(w, r)
			return
		}
		switch r.URL.Query().Get("page") {
		case "1":
			writePage(w, 3, []searchItem{item("octocat/Hello-World"), item("foo/bar")})
		case "2":
			writePage(w, 3, []searchItem{item("octocat/Hello-World")})
		default:
			writePage(w, 3, nil)
		}
	}))
	defer srv.Close()

	e := newTestEngine(t, srv, "")
	result, err := e.Search(context.Background(), Filters{Labels: []string{"good first issue"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if result.Partial {
		t.Error("clean run should not be partial")
	}
	if result.Pages != 2 {
		t.Errorf("want 2 pages fetched, got %d", result.Pages)
	}
	if len(result.Repos) != 2 {
		t.Fatalf("want 2 repos, got %d", len(result.Repos))
	}
	// Sorted by count descending.
	if result.Repos[0].FullName != "octocat/Hello-World" || result.Repos[0].IssueCount != 2 {
		t.Errorf("top repo: got %s count %d", result.Repos[0].FullName, result.Repos[0].IssueCount)
	}
	if result.Repos[1].FullName != "foo/bar" || result.Repos[1].IssueCount != 1 {
		t.Errorf("second repo: got %s count %d", result.Repos[1].FullName, result.Repos[1].IssueCount)
	}
}

func TestEngine_RateLimitMidPagination(t *testing.T) {
	// A 403 on page 2 must preserve the aggregates from page 1 and mark
	// the result partial with the reset time attached.
	reset := time.Now().Add(30 * time.Minute).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			writePage(w, 500, []searchItem{item("a/a"), item("b/b")})
			return
		}
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	e := newTestEngine(t, srv, "")
	result, err := e.Search(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("partial results should not surface as a Search error: %v", err)
	}

	if !result.Partial {
		t.Error("result should be flagged partial")
	}
	if len(result.Repos) != 2 {
		t.Errorf("aggregates from page 1 should survive, got %d repos", len(result.Repos))
	}

	var rl *apperrors.RateLimitedError
	if !errors.As(result.Err, &rl) {
		t.Fatalf("want RateLimitedError in Result.Err, got %v", result.Err)
	}
	if rl.ResetAt.Unix() != reset {
		t.Errorf("reset time: want %d, got %d", reset, rl.ResetAt.Unix())
	}
}

func TestEngine_FirstPageFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	e := newTestEngine(t, srv, "")
	result, err := e.Search(context.Background(), Filters{})
	if err == nil {
		t.Fatal("a failed first page should return an error")
	}
	if result != nil {
		t.Errorf("no result expected when nothing was fetched, got %+v", result)
	}
	if !apperrors.IsRateLimited(err) {
		t.Errorf("want rate-limit error, got %v", err)
	}
}

func TestEngine_BudgetAndCeiling(t *testing.T) {
	var pagesServed int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		writePage(w, 5000, []searchItem{item("a/a"), item("b/b")})
	}))
	defer srv.Close()

	e := newTestEngine(t, srv, "")
	e.MaxPages = 2

	result, err := e.Search(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if pagesServed != 2 {
		t.Errorf("budget of 2 pages, server saw %d requests", pagesServed)
	}
	if !result.CeilingHit {
		t.Error("5000 matches under a 2-page budget should report the ceiling")
	}
	if result.Partial {
		t.Error("hitting the budget is not a partial result")
	}
}

func TestEngine_SkipsMalformedRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		broken := searchItem{Title: "no repo ref", HTMLURL: "https://github.com/x"}
		writePage(w, 2, []searchItem{broken, item("good/repo")})
	}))
	defer srv.Close()

	e := newTestEngine(t, srv, "")
	result, err := e.Search(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if result.Skipped != 1 {
		t.Errorf("want 1 skipped record, got %d", result.Skipped)
	}
	if len(result.Repos) != 1 || result.Repos[0].FullName != "good/repo" {
		t.Errorf("valid record should aggregate, got %+v", result.Repos)
	}
}

func TestEngine_EnrichesWithToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/issues":
			writePage(w, 1, []searchItem{item("oppia/oppia")})
		case "/repos/oppia/oppia":
			fmt.Fprint(w, `{"description": "A free online learning platform"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	e := newTestEngine(t, srv, "ghp_test")
	e.EnrichLimit = 10

	result, err := e.Search(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := result.Repos[0].Description; got != "A free online learning platform" {
		t.Errorf("description not enriched: %q", got)
	}
}

func TestEngine_NoEnrichmentWithoutToken(t *testing.T) {
	var repoCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search/issues" {
			writePage(w, 1, []searchItem{item("oppia/oppia")})
			return
		}
		repoCalls++
		fmt.Fprint(w, `{"description": "x"}`)
	}))
	defer srv.Close()

	e := newTestEngine(t, srv, "")
	e.EnrichLimit = 10

	if _, err := e.Search(context.Background(), Filters{}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if repoCalls != 0 {
		t.Errorf("unauthenticated runs must not spend requests on enrichment, saw %d", repoCalls)
	}
}
