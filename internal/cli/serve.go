package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clustergraph/pkg/buildinfo"
	"github.com/matzehuels/clustergraph/pkg/config"
	"github.com/matzehuels/clustergraph/pkg/observability"
	"github.com/matzehuels/clustergraph/pkg/pipeline"
	"github.com/matzehuels/clustergraph/pkg/server"
)

type serveFlags struct {
	addr    string
	backend string
}

// serveCommand creates the serve command that exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

POST a topology to /v1/layout, /v1/flow or /v1/render/svg. The server stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = f.addr
			}
			if cmd.Flags().Changed("cache") {
				cfg.Cache.Backend = f.backend
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&f.backend, "cache", "", "cache backend: none, memory, file, redis, mongo")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	runner, err := c.newRunner(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := c.newServer(runner, cfg)
	printInfo(c.Out, "Listening on %s", cfg.Server.Addr)
	printKeyValue(c.Out, "engine", runner.Engine)
	printKeyValue(c.Out, "cache", cfg.Cache.Backend)
	return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout.Duration, cfg.Server.WriteTimeout.Duration)
}

func (c *CLI) newServer(runner *pipeline.Runner, cfg config.Config) *server.Server {
	srv := server.New(runner, c.Logger)
	srv.Hooks = observability.NewLogHooks(c.Logger)
	srv.MaxBodyBytes = cfg.Server.MaxBodyBytes
	srv.Version = buildinfo.Version
	return srv
}
