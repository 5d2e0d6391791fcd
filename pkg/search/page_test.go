package search

import "testing"

func makeRepos(counts ...int) []*RepoAggregate {
	repos := make([]*RepoAggregate, len(counts))
	for i, c := range counts {
		repos[i] = &RepoAggregate{
			FullName:   string(rune('a'+i)) + "/repo",
			IssueCount: c,
		}
	}
	return repos
}

func TestSortByCount_StableTies(t *testing.T) {
	repos := makeRepos(3, 7, 3, 9, 3)
	SortByCount(repos)

	wantOrder := []string{"d/repo", "b/repo", "a/repo", "c/repo", "e/repo"}
	for i, want := range wantOrder {
		if repos[i].FullName != want {
			t.Errorf("position %d: want %s (count %d), got %s (count %d)",
				i, want, repos[i].IssueCount, repos[i].FullName, repos[i].IssueCount)
		}
	}
}

func TestPage(t *testing.T) {
	repos := makeRepos(1, 2, 3, 4, 5, 6, 7)

	tests := []struct {
		name       string
		pageNum    int
		size       int
		wantLen    int
		wantTotal  int
		wantFirst  string
	}{
		{"first page", 1, 3, 3, 3, "a/repo"},
		{"middle page", 2, 3, 3, 3, "d/repo"},
		{"last partial page", 3, 3, 1, 3, "g/repo"},
		{"beyond last clamps to last", 99, 3, 1, 3, "g/repo"},
		{"zero clamps to first", 0, 3, 3, 3, "a/repo"},
		{"negative clamps to first", -2, 3, 3, 3, "a/repo"},
		{"size larger than set", 1, 50, 7, 1, "a/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total := Page(repos, tt.pageNum, tt.size)
			if total != tt.wantTotal {
				t.Errorf("totalPages: want %d, got %d", tt.wantTotal, total)
			}
			if len(items) != tt.wantLen {
				t.Fatalf("items: want %d, got %d", tt.wantLen, len(items))
			}
			if items[0].FullName != tt.wantFirst {
				t.Errorf("first item: want %s, got %s", tt.wantFirst, items[0].FullName)
			}
		})
	}
}

func TestPage_Empty(t *testing.T) {
	items, total := Page(nil, 1, 25)
	if len(items) != 0 || total != 0 {
		t.Errorf("empty set: want 0 items and 0 pages, got %d/%d", len(items), total)
	}
}

func TestPage_DefaultSize(t *testing.T) {
	repos := makeRepos(make([]int, DefaultPageSize+1)...)
	_, total := Page(repos, 1, 0)
	if total != 2 {
		t.Errorf("size 0 should fall back to DefaultPageSize, got %d pages", total)
	}
}
