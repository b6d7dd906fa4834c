package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hyper/pkg/live"
	"github.com/vango-dev/hyper/pkg/render"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		metrics string
		tracing bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live counter demo",
		Long: `Serve the live counter demo.

Each browser tab gets its own model; clicks travel over a websocket
and the server pushes the re-rendered markup back.

Examples:
  hyper serve
  hyper serve --port=8080 --host=0.0.0.0
  hyper serve --metrics=-`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Serve.Port = port
			}
			if host != "" {
				cfg.Serve.Host = host
			}
			if metrics != "" {
				cfg.Serve.Metrics = metrics
			}
			if cmd.Flags().Changed("tracing") {
				cfg.Serve.Tracing = tracing
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := cfg.Logger()
			slog.SetDefault(logger)

			srv := live.New(live.Counter(), &live.Config{
				Render:      render.Config{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent},
				MetricsPath: cfg.Serve.Metrics,
				Tracing:     cfg.Serve.Tracing,
				Logger:      logger,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd.ErrOrStderr(), "Serving on http://%s", cfg.Address())
			return srv.ListenAndServe(ctx, cfg.Address())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from hyper.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from hyper.json)")
	cmd.Flags().StringVar(&metrics, "metrics", "", `Metrics path, "-" to disable`)
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Trace frames with OpenTelemetry")

	return cmd
}
