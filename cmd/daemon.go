package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/daily-activity-cli/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const metricsShutdownTimeout = 5 * time.Second

func newDaemonCmd(app *app) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run reminder checks on a schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("metrics-addr") {
				metricsAddr = app.cfg.MetricsAddr
			}
			return runDaemon(cmd, app, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (empty disables)")
	return cmd
}

func runDaemon(cmd *cobra.Command, app *app, metricsAddr string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := app.openSession(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer sess.Close()

	scheduler, err := app.newScheduler()
	if err != nil {
		return err
	}

	logger := observability.Component(app.logger, "daemon")
	group, groupCtx := errgroup.WithContext(ctx)

	if err := scheduler.Start(groupCtx, func(tickCtx context.Context) {
		sess.engine.OnScheduledTick(tickCtx)
	}); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	group.Go(func() error {
		<-scheduler.Done()
		return nil
	})

	group.Go(func() error {
		return sess.classifier.Run(groupCtx)
	})

	group.Go(func() error {
		tiers, cancel := sess.classifier.Subscribe()
		defer cancel()
		for {
			select {
			case <-groupCtx.Done():
				return nil
			case tier, ok := <-tiers:
				if !ok {
					return nil
				}
				logger.Info("engagement tier", "tier", tier)
			}
		}
	})

	if metricsAddr != "" {
		listener, err := net.Listen("tcp", metricsAddr)
		if err != nil {
			stop()
			_ = group.Wait()
			return fmt.Errorf("listen for metrics: %w", err)
		}
		serveMetrics(groupCtx, group, listener, app)
		logger.Info("serving metrics", "addr", listener.Addr().String())
	}

	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "daemon started (schedule %q)\n", scheduler.Spec()); err != nil {
		stop()
		_ = group.Wait()
		return err
	}

	err = group.Wait()
	logger.Info("daemon stopped")
	return err
}

func serveMetrics(ctx context.Context, group *errgroup.Group, listener net.Listener, app *app) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	group.Go(func() error {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve metrics: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
}
