package utils

import (
	"context"
	"time"

	"github.com/substratumservices/horizon-client/internal/logger"
)

// WaitForReady calls ping until it succeeds, maxAttempts is reached or ctx is done
func WaitForReady(ctx context.Context, ping func(context.Context) error, maxAttempts int, delay time.Duration) bool {
	logger.Info("Checking Horizon readiness...")

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		logger.Debug("Checking Horizon readiness (attempt %d/%d)...", attempt, maxAttempts)

		err := ping(ctx)
		if err == nil {
			logger.Info("Horizon is ready!")
			return true
		}
		logger.Debug("Horizon not ready: %v", err)

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			logger.Error("Stopped waiting for Horizon: %v", ctx.Err())
			return false
		case <-time.After(delay):
		}
	}

	logger.Error("Horizon failed to become ready after %d attempts", maxAttempts)
	return false
}
