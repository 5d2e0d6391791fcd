package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantumpixelator/firstissue/pkg/config"
)

// configCommand creates the config command with subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and update stored settings",
		Long: `Manage the firstissue configuration file.

Settings live in ~/.config/firstissue/config.toml: the issue labels offered
as search tags, the GitHub token, and default search filters.`,
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configSetLabelsCommand())
	cmd.AddCommand(c.configSetTokenCommand())

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			printKeyValue("Labels", strings.Join(c.Config.Labels, ", "))
			printKeyValue("Days", fmt.Sprintf("%d", c.Config.Days))
			if len(c.Config.Languages) > 0 {
				printKeyValue("Languages", strings.Join(c.Config.Languages, ", "))
			}
			printKeyValue("Token", maskToken(config.ResolveToken("", c.Config)))
			printKeyValue("Cache", c.Config.Cache.Backend)
			if c.configPath != "" {
				printDetail("File: %s", c.configPath)
			}
			return nil
		},
	}
}

// configSetLabelsCommand creates the "config set-labels" subcommand.
func (c *CLI) configSetLabelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-labels <label> [label...]",
		Short: "Replace the stored issue labels",
		Long: `Replace the issue labels offered as search tags.

The first label is the default tag for searches. Only one label is ever
sent to GitHub per query; the rest are alternatives selectable with --tag.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Config.Labels = args
			if err := c.saveConfig(); err != nil {
				return err
			}
			printSuccess("Saved %d labels", len(args))
			printDetail("Default tag: %q", args[0])
			return nil
		},
	}
}

// configSetTokenCommand creates the "config set-token" subcommand.
func (c *CLI) configSetTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-token <token>",
		Short: "Store a GitHub API token",
		Long: `Store a GitHub API token for higher rate limits and description
enrichment. Pass an empty string to clear it; searches then fall back to
$GITHUB_TOKEN or run unauthenticated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Config.Token = strings.TrimSpace(args[0])
			if err := c.saveConfig(); err != nil {
				return err
			}
			if c.Config.Token == "" {
				printSuccess("Token cleared")
			} else {
				printSuccess("Token saved")
			}
			return nil
		},
	}
}

func (c *CLI) saveConfig() error {
	if c.configPath == "" {
		path, err := config.Path()
		if err != nil {
			return fmt.Errorf("locate config file: %w", err)
		}
		c.configPath = path
	}
	return config.Save(c.configPath, c.Config)
}

// maskToken hides all but the last four characters of a token.
func maskToken(token string) string {
	switch {
	case token == "":
		return "(not set)"
	case len(token) <= 4:
		return "****"
	default:
		return "****" + token[len(token)-4:]
	}
}
