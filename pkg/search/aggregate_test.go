package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/quantumpixelator/firstissue/pkg/github"
)

func issueFor(repoURL string, updated time.Time) github.Issue {
	return github.Issue{
		Title:         "Fix the thing",
		HTMLURL:       "https://github.com/example/issue/1",
		UpdatedAt:     updated,
		RepositoryURL: repoURL,
	}
}

func TestAggregator_CaseFolding(t *testing.T) {
	// Two records differing only by letter case must aggregate to one entry.
	agg := NewAggregator()
	now := time.Now()

	_ = agg.Add(issueFor("https://api.github.com/repos/OctoCat/Hello-World", now))
	_ = agg.Add(issueFor("https://api.github.com/repos/octocat/hello-world", now))

	repos := agg.Repos()
	if len(repos) != 1 {
		t.Fatalf("want 1 aggregate, got %d", len(repos))
	}
	if repos[0].IssueCount != 2 {
		t.Errorf("want count 2, got %d", repos[0].IssueCount)
	}
	// Display keeps first-seen casing.
	if repos[0].FullName != "OctoCat/Hello-World" {
		t.Errorf("display name should keep first-seen casing, got %q", repos[0].FullName)
	}
}

func TestAggregator_CountAndLatest(t *testing.T) {
	agg := NewAggregator()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	latest := base.Add(72 * time.Hour)

	const n = 5
	stamps := []time.Time{base, latest, base.Add(time.Hour), base, base.Add(2 * time.Hour)}
	for i := 0; i < n; i++ {
		issue := issueFor("https://api.github.com/repos/oppia/oppia", stamps[i])
		issue.HTMLURL = fmt.Sprintf("https://github.com/oppia/oppia/issues/%d", i+1)
		if err := agg.Add(issue); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	repos := agg.Repos()
	if len(repos) != 1 {
		t.Fatalf("want 1 aggregate, got %d", len(repos))
	}
	got := repos[0]
	if got.IssueCount != n {
		t.Errorf("want count %d, got %d", n, got.IssueCount)
	}
	if !got.UpdatedAt.Equal(latest) {
		t.Errorf("want latest update %v, got %v", latest, got.UpdatedAt)
	}
	// Sample issue is the first seen, not the latest.
	if got.SampleIssueURL != "https://github.com/oppia/oppia/issues/1" {
		t.Errorf("sample issue should be first seen, got %q", got.SampleIssueURL)
	}
}

func TestAggregator_FirstSeenOrder(t *testing.T) {
	agg := NewAggregator()
	now := time.Now()

	for _, repo := range []string{"b/b", "a/a", "c/c", "a/a"} {
		_ = agg.Add(issueFor("https://api.github.com/repos/"+repo, now))
	}

	repos := agg.Repos()
	want := []string{"b/b", "a/a", "c/c"}
	if len(repos) != len(want) {
		t.Fatalf("want %d aggregates, got %d", len(want), len(repos))
	}
	for i, name := range want {
		if repos[i].FullName != name {
			t.Errorf("position %d: want %s, got %s", i, name, repos[i].FullName)
		}
	}
}

func TestAggregator_SkipsMalformed(t *testing.T) {
	agg := NewAggregator()
	now := time.Now()

	if err := agg.Add(issueFor("", now)); err == nil {
		t.Fatal("malformed record should return an error")
	}
	_ = agg.Add(issueFor("https://api.github.com/repos/a/a", now))
	if err := agg.Add(issueFor("nowhere", now)); err == nil {
		t.Fatal("malformed record should return an error")
	}

	if agg.Skipped() != 2 {
		t.Errorf("want 2 skipped, got %d", agg.Skipped())
	}
	if agg.Len() != 1 {
		t.Errorf("valid records should still aggregate, got %d", agg.Len())
	}
}
