package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/substratumservices/horizon-client/internal/client"
	"github.com/substratumservices/horizon-client/internal/config"
	"github.com/substratumservices/horizon-client/internal/logger"
	"github.com/substratumservices/horizon-client/internal/utils"
)

func main() {
	envFiles, envErr := utils.LoadEnvironment()
	logger.Init()
	if envErr != nil {
		logger.Fatal("%v", envErr)
	}
	for _, path := range envFiles {
		logger.Info("Loaded environment from %s", path)
	}

	cfg := config.NewConfig()
	cfg.LoadFromEnvironment()

	var (
		horizonURL string
		clientName string
		timeout    time.Duration
		rateLimit  float64
		rateBurst  int
	)

	rootCmd := &cobra.Command{
		Use:   "horizon",
		Short: "A CLI for querying a Horizon server",
		Long:  `horizon fetches accounts, account data and assets from a Horizon server and prints them as JSON.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			flags := cmd.Flags()
			if flags.Changed("horizon-url") {
				cfg.HorizonURL = horizonURL
			}
			if flags.Changed("client-name") {
				cfg.ClientName = clientName
			}
			if flags.Changed("timeout") {
				cfg.RequestTimeout = timeout
			}
			if flags.Changed("rate-limit") {
				cfg.RateLimit = rateLimit
			}
			if flags.Changed("rate-burst") {
				cfg.RateBurst = rateBurst
			}
			if err := cfg.Validate(); err != nil {
				logger.Fatal("%v", err)
			}
			logger.Debug("Using Horizon at %s", cfg.HorizonURL)
		},
	}

	// Add flags
	rootCmd.PersistentFlags().StringVarP(&horizonURL, "horizon-url", "u", cfg.HorizonURL, "Horizon base URL (env HORIZON_URL)")
	rootCmd.PersistentFlags().StringVarP(&clientName, "client-name", "", cfg.ClientName, "Value of the X-Client-Name header")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", cfg.RequestTimeout, "Per request timeout")
	rootCmd.PersistentFlags().Float64VarP(&rateLimit, "rate-limit", "", cfg.RateLimit, "Requests per second, 0 disables the limiter")
	rootCmd.PersistentFlags().IntVarP(&rateBurst, "rate-burst", "", cfg.RateBurst, "Rate limiter burst size")

	newClient := func() *client.Client {
		return client.NewClient(cfg)
	}

	// Add subcommands
	rootCmd.AddCommand(newAccountCmd(newClient))
	rootCmd.AddCommand(newDataCmd(newClient))
	rootCmd.AddCommand(newAssetsCmd(cfg, newClient))
	rootCmd.AddCommand(newPingCmd(newClient))
	rootCmd.AddCommand(newWatchCmd(cfg, newClient))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute the root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Fatal("Failed to execute command: %v", err)
	}
}
