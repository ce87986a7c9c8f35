package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/wordcalc/pkg/api"
	"github.com/hazyhaar/wordcalc/pkg/chassis"
)

const shutdownTimeout = 10 * time.Second

func (c *cli) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API (and MCP over QUIC when quic.enabled)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if addr != "" {
				a.cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			router := api.NewRouter(a.calc, api.RouterConfig{
				Logger:  a.logger,
				Metrics: promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}),
			})
			if a.cfg.QUIC.Enabled {
				return serveChassis(ctx, a, router)
			}
			return serveHTTP(ctx, a, router)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func serveHTTP(ctx context.Context, a *app, handler http.Handler) error {
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("wordcalc listening", "addr", a.cfg.Addr, "locale", a.calc.Locale())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func serveChassis(ctx context.Context, a *app, handler http.Handler) error {
	srv, err := chassis.New(chassis.Config{
		Addr:      a.cfg.Addr,
		CertFile:  a.cfg.QUIC.CertFile,
		KeyFile:   a.cfg.QUIC.KeyFile,
		Handler:   handler,
		MCPServer: api.NewMCPServer(a.calc, version, a.logger),
		Logger:    a.logger,
	})
	if err != nil {
		return err
	}

	runErr := srv.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(runErr, srv.Stop(shutdownCtx))
}
