package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgbudget/pkg/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		backends backendFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the optimizer over HTTP",
		Long: `Serve the optimizer over HTTP.

Routes:
  GET  /healthz
  POST /v1/optimize       SVG body or {"svg": "...", "budget_kb": 10}
  POST /v1/generate       {"scene": {...}} or {} for the demo scene
  GET  /v1/reports        recorded runs
  GET  /v1/reports/{id}

Cache and history backends come from the config file; a Redis cache and a
MongoDB history let several instances share results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd.Flags().Changed("addr"), addr, backends)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	backends.register(cmd.Flags())

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addrSet bool, addr string, backends backendFlags) error {
	cfg := c.settings().ServerConfig()
	if addrSet || cfg.Addr == "" {
		cfg.Addr = addr
	}

	runner, err := c.newRunner(ctx, backends)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	printInfo("Serving on %s", StyleHighlight.Render(cfg.Addr))
	if err := api.New(runner, loggerFromContext(ctx), cfg).ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
