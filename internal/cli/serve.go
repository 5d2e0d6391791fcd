package cli

import (
	"github.com/spf13/cobra"

	"github.com/quantumpixelator/firstissue/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		token   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search engine as a local JSON API",
		Long: `Run a local HTTP server exposing the search engine.

Endpoints:
  GET /api/search?langs=Go,Rust&tag=good+first+issue&days=90&page=1
  GET /healthz

The server shares one GitHub rate limit across all requests; configure a
redis cache backend when running more than one instance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			engine := c.newEngine(ctx, token, noCache)

			printInfo("Serving on http://%s", addr)
			printDetail("Press Ctrl+C to stop")

			return server.New(engine, loggerFromContext(ctx)).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8370", "listen address")
	cmd.Flags().StringVar(&token, "token", "", "GitHub API token (default: config file, then $GITHUB_TOKEN)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache")

	return cmd
}
