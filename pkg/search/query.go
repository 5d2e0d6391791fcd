package search

import (
	"fmt"
	"strings"
	"time"
)

// BuildQuery turns filters into a GitHub issue-search query string.
//
// The query always scopes to open issues and the recency window, so even
// entirely empty filters produce a valid query. Language filters combine
// with OR; the label filter is always a single label (see [Filters.Labels]).
func BuildQuery(f Filters) string {
	return buildQuery(f, time.Now().UTC())
}

func buildQuery(f Filters, now time.Time) string {
	since := now.AddDate(0, 0, -f.EffectiveDays()).Format("2006-01-02")

	parts := []string{"is:issue", "is:open"}
	if clause := labelClause(f); clause != "" {
		parts = append(parts, clause)
	}
	parts = append(parts, "updated:>"+since)

	if terms := strings.TrimSpace(f.Terms); terms != "" {
		parts = append(parts, terms)
	}
	if clause := languageClause(f.Languages); clause != "" {
		parts = append(parts, clause)
	}

	return strings.Join(parts, " ")
}

// labelClause renders the label filter. Exactly one label:"..." term is
// emitted unless AllowLabelOR is set.
func labelClause(f Filters) string {
	labels := make([]string, 0, len(f.Labels))
	for _, l := range f.Labels {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	if len(labels) == 0 {
		return ""
	}

	if f.AllowLabelOR && len(labels) > 1 {
		quoted := make([]string, len(labels))
		for i, l := range labels {
			quoted[i] = fmt.Sprintf("label:%q", l)
		}
		return "(" + strings.Join(quoted, " OR ") + ")"
	}

	return fmt.Sprintf("label:%q", labels[0])
}

// languageClause renders the language filter: nothing for an empty set,
// a bare term for one language, a parenthesized OR group for several.
func languageClause(languages []string) string {
	langs := make([]string, 0, len(languages))
	for _, l := range languages {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, "language:"+l)
		}
	}

	switch len(langs) {
	case 0:
		return ""
	case 1:
		return langs[0]
	default:
		return "(" + strings.Join(langs, " OR ") + ")"
	}
}
