package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/substratumservices/horizon-client/internal/client"
	"github.com/substratumservices/horizon-client/internal/config"
	"github.com/substratumservices/horizon-client/internal/logger"
	"github.com/substratumservices/horizon-client/internal/metrics"
	"github.com/substratumservices/horizon-client/internal/tui"
	"github.com/substratumservices/horizon-client/internal/validators"
	"github.com/substratumservices/horizon-client/internal/watch"
)

func newWatchCmd(cfg *config.Config, newClient func() *client.Client) *cobra.Command {
	var (
		metricsAddr string
		interval    time.Duration
		baseReserve string
		plain       bool
	)

	cmd := &cobra.Command{
		Use:   "watch <account-id>",
		Short: "Poll an account and show changes as they happen",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			input := accountInput{AccountID: args[0]}
			if err := validators.Struct(validators.NewValidator(), input); err != nil {
				logger.Fatal("%v", err)
			}

			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}
			if cmd.Flags().Changed("interval") {
				cfg.PollInterval = interval
			}
			if cmd.Flags().Changed("base-reserve") {
				reserve, err := decimal.NewFromString(baseReserve)
				if err != nil {
					logger.Fatal("Invalid base reserve %q: %v", baseReserve, err)
				}
				cfg.BaseReserve = reserve
			}
			if err := cfg.Validate(); err != nil {
				logger.Fatal("%v", err)
			}

			if !plain {
				if err := logger.InitFileOnly(); err != nil {
					logger.Fatal("Failed to initialize file logging: %v", err)
				}
				defer logger.Close()
			}

			c := newClient()
			watcher, err := watch.NewWatcher(c, input.AccountID, cfg.PollInterval, c.Metrics())
			if err != nil {
				logger.Fatal("%v", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if cfg.MetricsAddr != "" {
				server := startMetricsServer(cfg.MetricsAddr, c.Metrics())
				defer shutdownMetricsServer(server)
			}

			if plain {
				if err := runPlain(ctx, watcher); err != nil {
					logger.Fatal("%v", err)
				}
				return
			}

			monitor := tui.NewAccountMonitor(watcher, input.AccountID, cfg.PollInterval, cfg.BaseReserve)
			if cfg.MetricsAddr != "" {
				go monitor.AddLog(fmt.Sprintf("📈 Metrics on http://%s/metrics", cfg.MetricsAddr))
			}
			if err := monitor.Run(ctx); err != nil {
				logger.Fatal("%v", err)
			}
		},
	}

	cmd.Flags().StringVarP(&metricsAddr, "metrics-addr", "m", "", "Serve Prometheus metrics on this address, e.g. localhost:9090")
	cmd.Flags().DurationVarP(&interval, "interval", "n", cfg.PollInterval, "Poll interval")
	cmd.Flags().StringVarP(&baseReserve, "base-reserve", "", cfg.BaseReserve.String(), "Network base reserve used for the minimum balance")
	cmd.Flags().BoolVarP(&plain, "plain", "", false, "Log snapshots instead of starting the terminal UI")
	return cmd
}

// runPlain logs every snapshot until the watcher stops
func runPlain(ctx context.Context, watcher *watch.Watcher) error {
	snapshots, err := watcher.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()

	for snapshot := range snapshots {
		if snapshot.Err != nil {
			continue
		}
		account := snapshot.Account
		native := "0"
		if balance, ok := account.NativeBalance(); ok {
			native = balance.Balance()
		}
		logger.Info("%s sequence=%d native=%s balances=%d changed=%t",
			snapshot.AccountID, account.Sequence(), native, len(account.Balances()), snapshot.SequenceChanged)
	}
	return nil
}

func startMetricsServer(addr string, ms metrics.MetricsService) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(ms.GetRegistry(), promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Serving metrics on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed: %v", err)
		}
	}()
	return server
}

func shutdownMetricsServer(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Failed to stop metrics server: %v", err)
	}
}
