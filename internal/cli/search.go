package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/quantumpixelator/firstissue/pkg/errors"
	"github.com/quantumpixelator/firstissue/pkg/search"
)

// searchFlags holds the flag values for the search command.
type searchFlags struct {
	languages []string
	tag       string
	terms     string
	days      int
	token     string
	pageSize  int
	noCache   bool
	jsonOut   bool
	plain     bool
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search GitHub for beginner-friendly issues",
		Long: `Search GitHub for open beginner-friendly issues and aggregate them into
a ranked list of repositories.

Results open in an interactive browser by default. Use --plain for
scriptable output or --json for machine-readable output.

Examples:
  firstissue search --lang Python
  firstissue search --lang Go --lang Rust --days 30
  firstissue search --tag "help wanted" --terms "documentation" --plain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.languages, "lang", "l", nil, "language filter (repeatable)")
	_ = cmd.RegisterFlagCompletionFunc("lang", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return search.TopLanguages, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().StringVarP(&flags.tag, "tag", "t", "", "issue label to search for (default: first configured label)")
	_ = cmd.RegisterFlagCompletionFunc("tag", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return c.Config.Labels, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().StringVar(&flags.terms, "terms", "", "free-text search terms")
	cmd.Flags().IntVarP(&flags.days, "days", "d", 0, "only issues updated in the last N days (default from config)")
	cmd.Flags().StringVar(&flags.token, "token", "", "GitHub API token (default: config file, then $GITHUB_TOKEN)")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", search.DefaultPageSize, "repositories per display page")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "print the first page instead of the interactive browser")

	return cmd
}

func (c *CLI) runSearch(cmd *cobra.Command, flags searchFlags) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	filters := c.buildFilters(flags)

	engine := c.newEngine(ctx, flags.token, flags.noCache)

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Searching GitHub issues...")
	spinner.Start()

	task := engine.Start(ctx, filters, nil)
	result, err := task.Wait()
	if err != nil {
		spinner.StopWithError("Search failed")
		return c.reportSearchError(err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Found %d repositories", len(result.Repos)))

	c.reportRunNotes(result)

	if flags.jsonOut {
		return printResultJSON(result)
	}

	if len(result.Repos) == 0 {
		printInfo("No repositories matched. Try a longer --days window or fewer filters.")
		return nil
	}

	if flags.plain {
		printResultPage(result, 1, flags.pageSize)
		return nil
	}

	m := newResultsModel(result, flags.pageSize)
	_, err = tea.NewProgram(m).Run()
	return err
}

// buildFilters maps flags and config onto engine filters.
func (c *CLI) buildFilters(flags searchFlags) search.Filters {
	labels := c.Config.Labels
	if flags.tag != "" {
		labels = []string{flags.tag}
	}

	languages := flags.languages
	if len(languages) == 0 {
		languages = c.Config.Languages
	}

	days := flags.days
	if days <= 0 {
		days = c.Config.Days
	}

	return search.Filters{
		Languages: languages,
		Labels:    labels,
		Terms:     flags.terms,
		Days:      days,
	}
}

// reportSearchError translates engine errors into actionable messages.
func (c *CLI) reportSearchError(err error) error {
	var rl *apperrors.RateLimitedError
	if errors.As(err, &rl) {
		printError("GitHub rate limit exceeded")
		if !rl.ResetAt.IsZero() {
			printDetail("Resets at %s (in %s)", rl.ResetAt.Local().Format(time.Kitchen),
				time.Until(rl.ResetAt).Round(time.Second))
		}
		printDetail("Add a token with 'firstissue config set-token' for a higher limit")
		return err
	}

	var fe *apperrors.FetchError
	if errors.As(err, &fe) {
		printError("GitHub returned status %d", fe.Status)
		if fe.Body != "" {
			printDetail("%s", fe.Body)
		}
		return err
	}

	printError("%s", apperrors.UserMessage(err))
	return err
}

// reportRunNotes surfaces partial results, the result ceiling, and skipped
// records. A partial set is still worth showing; the user just needs to
// know it is incomplete.
func (c *CLI) reportRunNotes(result *search.Result) {
	if result.Partial {
		printWarning("Results are partial: pagination stopped early")
		var rl *apperrors.RateLimitedError
		if errors.As(result.Err, &rl) {
			if !rl.ResetAt.IsZero() {
				printDetail("Rate limit resets at %s", rl.ResetAt.Local().Format(time.Kitchen))
			}
			printDetail("Add a token with 'firstissue config set-token' for a higher limit")
		} else if result.Err != nil {
			printDetail("%s", apperrors.UserMessage(result.Err))
		}
	}
	if result.CeilingHit {
		printDetail("GitHub caps search results at %d; %d issues matched in total",
			search.ResultCeiling, result.TotalCount)
	}
	if result.Skipped > 0 {
		c.Logger.Debug("skipped malformed records", "count", result.Skipped)
	}
}

// printResultPage renders one page of aggregates as plain text.
func printResultPage(result *search.Result, pageNum, pageSize int) {
	items, totalPages := search.Page(result.Repos, pageNum, pageSize)

	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Repositories with open beginner issues (page %d/%d)", pageNum, totalPages)))
	printNewline()

	for _, repo := range items {
		fmt.Printf("%s  %s\n",
			StyleNumber.Render(fmt.Sprintf("%3d", repo.IssueCount)),
			StyleValue.Render(repo.FullName))
		if repo.Description != "" {
			printDetail("%s", repo.Description)
		}
		printDetail("updated %s · %s", repo.UpdatedAt.Format("2006-01-02"), repo.SampleIssueURL)
	}

	printNewline()
	printDetail("%d repositories · %d issues matched", len(result.Repos), result.TotalCount)
}

// printResultJSON writes the aggregates and run metadata to stdout.
func printResultJSON(result *search.Result) error {
	out := struct {
		Query      string                  `json:"query"`
		TotalCount int                     `json:"total_count"`
		Partial    bool                    `json:"partial"`
		CeilingHit bool                    `json:"ceiling_hit"`
		Skipped    int                     `json:"skipped_records"`
		Repos      []*search.RepoAggregate `json:"repositories"`
	}{
		Query:      result.Query,
		TotalCount: result.TotalCount,
		Partial:    result.Partial,
		CeilingHit: result.CeilingHit,
		Skipped:    result.Skipped,
		Repos:      result.Repos,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
