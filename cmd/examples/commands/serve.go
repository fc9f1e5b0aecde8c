package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thesyncim/uicontracts/cmd/examples/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the example pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.Bool("metrics", true, "expose /metrics")
	bindFlag(v, "server.addr", flags.Lookup("addr"))
	bindFlag(v, "metrics.enabled", flags.Lookup("metrics"))
	return cmd
}

func serve(ctx context.Context) error {
	logger := slog.Default()

	srv, err := server.NewServer(server.Config{
		Addr:           cfg.Server.Addr,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MetricsEnabled: cfg.Metrics.Enabled,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	addr, err := srv.Start()
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	logger.Info("examples ready", "url", "http://"+addr+"/")

	<-ctx.Done()
	logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
