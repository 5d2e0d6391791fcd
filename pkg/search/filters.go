package search

// Default search parameters, matching what the CLI offers out of the box.
const (
	// DefaultDays is the default recency window.
	DefaultDays = 90

	// DefaultPageSize is the number of repositories shown per display page.
	DefaultPageSize = 25
)

// TopLanguages are the languages offered as quick filters, roughly ordered
// by GitHub repository count.
var TopLanguages = []string{
	"JavaScript", "Python", "Java", "TypeScript", "C#", "PHP", "C++", "Shell", "Go",
	"Ruby", "C", "Kotlin", "Rust", "Scala", "Swift", "Objective-C", "PowerShell", "Dart", "Lua",
}

// Filters describes one search: which languages, which label, optional
// free-text terms, and how recently an issue must have been updated.
type Filters struct {
	// Languages restricts results to repositories in any of these
	// languages. Empty means any language.
	Languages []string

	// Labels are candidate issue labels. Only the first is sent to the
	// provider unless AllowLabelOR is set: a query ORing three labels
	// returns zero results from GitHub even when each label alone matches
	// thousands, so the multi-label path is disabled by default.
	Labels []string

	// Terms are free-text search terms, appended to the query verbatim.
	Terms string

	// Days is the recency window; issues updated earlier are excluded.
	// Non-positive values fall back to DefaultDays.
	Days int

	// AllowLabelOR re-enables the multi-label OR query. Keep off until the
	// provider-side defect is fixed.
	AllowLabelOR bool
}

// EffectiveDays returns the recency window with the default applied.
func (f Filters) EffectiveDays() int {
	if f.Days <= 0 {
		return DefaultDays
	}
	return f.Days
}
