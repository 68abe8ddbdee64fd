package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqmap/pkg/observability"
	"github.com/matzehuels/seqmap/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		maxBody int64
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render pipeline over HTTP",
		Long: `Serve the layout and render pipeline over HTTP.

Routes:
  GET  /healthz        liveness and build info
  POST /v1/layout      document -> layout JSON
  POST /v1/render      document -> SVG, PNG or layout JSON
  POST /v1/edit        document + edits -> edited document
  POST /v1/notation    convert span notation

Request options are layered over the [linear], [circular] and [colors]
sections of the config file. The cache backend comes from [cache].`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache, maxBody, timeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: [server] addr or :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBody, "maximum request body in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, maxBody int64, timeout time.Duration) error {
	opts, err := c.baseOptions()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if c.Verbose() {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}

	srv := server.New(runner, c.Logger,
		server.WithDefaults(opts),
		server.WithMaxBody(maxBody),
		server.WithTimeout(timeout),
	)
	printInfo("Listening on %s", StyleValue.Render(addr))
	return srv.ListenAndServe(ctx, addr)
}
