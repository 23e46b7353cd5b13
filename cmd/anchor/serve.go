package main

import (
	"fmt"

	"anchor-hq/anchor/pkg/cli"
	"anchor-hq/anchor/pkg/config"
	"anchor-hq/anchor/pkg/server"
	"anchor-hq/anchor/pkg/telemetry"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		listen string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the post-processing HTTP service",
		Long: `Start the HTTP service that post-processes assistant replies.

Endpoints:
  POST /v1/postprocess  rewrite one reply
  GET  /health          liveness
  GET  /ready           readiness (runs the guardrail self-check)
  GET  /version         build information
  GET  /metrics         Prometheus metrics (when enabled)

The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
  anchor serve
  anchor serve --config anchor.yaml --listen 0.0.0.0:8080
  anchor serve --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				a.cfg.Server.ListenAddress = listen
				if err := config.Validate(a.cfg); err != nil {
					return cli.NewConfigError("server.listen_address", err.Error())
				}
			}

			p, err := a.pipeline()
			if err != nil {
				return err
			}
			if err := p.SelfCheck(); err != nil {
				return cli.NewConfigError("guardrail", err.Error())
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "configuration valid, would listen on %s\n", a.cfg.Server.ListenAddress)
				return nil
			}

			tel, err := telemetry.New(a.cfg.Telemetry, telemetry.BuildInfo{
				Version:   Version,
				Commit:    GitCommit,
				BuildTime: BuildDate,
			}, cmd.ErrOrStderr())
			if err != nil {
				return cli.NewConfigError("telemetry", err.Error())
			}

			ctx, stop := cli.SetupSignalHandler(cmd.Context())
			defer stop()

			srv := server.New(a.cfg, p, tel)
			if err := srv.Start(ctx); err != nil {
				return cli.NewCommandError("serve", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "override server.listen_address")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate configuration and lexicon, then exit")
	return cmd
}
