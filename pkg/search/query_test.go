package search

import (
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestBuildQuery_EmptyFilters(t *testing.T) {
	q := buildQuery(Filters{}, fixedNow)

	if q == "" {
		t.Fatal("empty filters should still produce a query")
	}
	if !strings.Contains(q, "is:issue") || !strings.Contains(q, "is:open") {
		t.Errorf("query missing state clauses: %q", q)
	}
	// 90 days before 2025-06-15
	if !strings.Contains(q, "updated:>2025-03-17") {
		t.Errorf("query missing recency clause: %q", q)
	}
	if strings.Contains(q, "label:") {
		t.Errorf("empty filters should not emit a label clause: %q", q)
	}
	if strings.Contains(q, "language:") {
		t.Errorf("empty filters should not emit a language clause: %q", q)
	}
}

func TestBuildQuery_Example(t *testing.T) {
	q := buildQuery(Filters{
		Languages: []string{"Python"},
		Labels:    []string{"good first issue"},
		Days:      90,
	}, fixedNow)

	for _, want := range []string{
		"is:issue",
		"is:open",
		`label:"good first issue"`,
		"updated:>2025-03-17",
		"language:Python",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q missing %q", q, want)
		}
	}
}

func TestBuildQuery_SingleLabelOnly(t *testing.T) {
	// Multiple configured labels must never become a label OR: GitHub
	// returns zero results for those queries.
	tests := []struct {
		name   string
		labels []string
	}{
		{"one label", []string{"beginner"}},
		{"several labels", []string{"good first issue", "good-first-issue", "beginner"}},
		{"custom label", []string{"E-easy"}},
		{"blank entries", []string{"  ", "help wanted", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildQuery(Filters{Labels: tt.labels}, fixedNow)
			if got := strings.Count(q, "label:"); got != 1 {
				t.Errorf("want exactly one label clause, got %d in %q", got, q)
			}
			if strings.Contains(q, " OR label:") {
				t.Errorf("label OR must stay disabled by default: %q", q)
			}
		})
	}
}

func TestBuildQuery_LabelORBehindFlag(t *testing.T) {
	q := buildQuery(Filters{
		Labels:       []string{"good first issue", "beginner"},
		AllowLabelOR: true,
	}, fixedNow)

	want := `(label:"good first issue" OR label:"beginner")`
	if !strings.Contains(q, want) {
		t.Errorf("query %q missing OR group %q", q, want)
	}
}

func TestBuildQuery_Languages(t *testing.T) {
	tests := []struct {
		name      string
		languages []string
		want      string
		absent    string
	}{
		{"none", nil, "", "language:"},
		{"one", []string{"Go"}, "language:Go", "("},
		{"several", []string{"Go", "Rust"}, "(language:Go OR language:Rust)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildQuery(Filters{Languages: tt.languages}, fixedNow)
			if tt.want != "" && !strings.Contains(q, tt.want) {
				t.Errorf("query %q missing %q", q, tt.want)
			}
			if tt.absent != "" && strings.Contains(q, tt.absent) {
				t.Errorf("query %q should not contain %q", q, tt.absent)
			}
		})
	}
}

func TestBuildQuery_Terms(t *testing.T) {
	q := buildQuery(Filters{Terms: "  documentation typo  "}, fixedNow)
	if !strings.Contains(q, "documentation typo") {
		t.Errorf("terms not appended: %q", q)
	}
	if strings.Contains(q, "  documentation") {
		t.Errorf("terms should be trimmed: %q", q)
	}
}

func TestEffectiveDays(t *testing.T) {
	if got := (Filters{}).EffectiveDays(); got != DefaultDays {
		t.Errorf("zero days should default to %d, got %d", DefaultDays, got)
	}
	if got := (Filters{Days: -5}).EffectiveDays(); got != DefaultDays {
		t.Errorf("negative days should default to %d, got %d", DefaultDays, got)
	}
	if got := (Filters{Days: 30}).EffectiveDays(); got != 30 {
		t.Errorf("explicit days should win, got %d", got)
	}
}
