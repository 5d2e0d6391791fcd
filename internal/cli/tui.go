package cli

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/quantumpixelator/firstissue/pkg/search"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// resultsModel is the bubbletea model for browsing aggregated repositories,
// one fixed-size page at a time.
type resultsModel struct {
	result   *search.Result
	pageSize int

	pageNum    int // 1-based
	totalPages int
	cursor     int // index within the current page

	status string
}

// newResultsModel creates a results browser over a completed search run.
func newResultsModel(result *search.Result, pageSize int) resultsModel {
	if pageSize <= 0 {
		pageSize = search.DefaultPageSize
	}
	_, totalPages := search.Page(result.Repos, 1, pageSize)
	return resultsModel{
		result:     result,
		pageSize:   pageSize,
		pageNum:    1,
		totalPages: totalPages,
	}
}

// page returns the items of the current page.
func (m resultsModel) page() []*search.RepoAggregate {
	items, _ := search.Page(m.result.Repos, m.pageNum, m.pageSize)
	return items
}

func (m resultsModel) Init() tea.Cmd {
	return nil
}

func (m resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.page())-1 {
				m.cursor++
			}
		case "left", "h", "p":
			if m.pageNum > 1 {
				m.pageNum--
				m.cursor = 0
			}
		case "right", "l", "n":
			if m.pageNum < m.totalPages {
				m.pageNum++
				m.cursor = 0
			}
		case "enter":
			if repo := m.selected(); repo != nil {
				m.status = m.open(repo.HTMLURL)
			}
		case "o":
			if repo := m.selected(); repo != nil && repo.SampleIssueURL != "" {
				m.status = m.open(repo.SampleIssueURL)
			}
		}
	}
	return m, nil
}

func (m resultsModel) selected() *search.RepoAggregate {
	items := m.page()
	if m.cursor < 0 || m.cursor >= len(items) {
		return nil
	}
	return items[m.cursor]
}

func (m resultsModel) open(rawURL string) string {
	if err := openBrowser(rawURL); err != nil {
		return "open manually: " + rawURL
	}
	return "opened " + rawURL
}

func (m resultsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Beginner-Friendly Repositories"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ page  ⏎ open repo  o open issue  q quit"))
	b.WriteString("\n\n")

	items := m.page()
	rows := make([][]string, 0, len(items))
	for i, repo := range items {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			repo.FullName,
			fmt.Sprintf("%d", repo.IssueCount),
			formatRelativeTime(repo.UpdatedAt),
			truncate(repo.Description, 40),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Repository", "Issues", "Updated", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.cursor {
				if col == 2 {
					return listSelectedStyle
				}
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 3 || col == 4 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	footer := fmt.Sprintf("  page %d/%d · %d repositories", m.pageNum, m.totalPages, len(m.result.Repos))
	if m.result.Partial {
		footer += " · " + StyleWarning.Render("partial")
	}
	b.WriteString(listDimStyle.Render(footer))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  " + m.status))
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}

	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// openBrowser opens rawURL in the system browser.
func openBrowser(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("URL scheme must be http or https, got %q", parsed.Scheme)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
