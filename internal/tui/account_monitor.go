package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/substratumservices/horizon-client/internal/logger"
	"github.com/substratumservices/horizon-client/internal/watch"
)

type AccountMonitor struct {
	watcher *watch.Watcher
	program *tea.Program
}

func NewAccountMonitor(watcher *watch.Watcher, accountID string, pollInterval time.Duration, baseReserve decimal.Decimal) *AccountMonitor {
	model := NewModel(accountID, pollInterval, baseReserve)
	return &AccountMonitor{
		watcher: watcher,
		program: tea.NewProgram(model, tea.WithAltScreen()),
	}
}

func (am *AccountMonitor) AddLog(message string) {
	if am.program != nil {
		am.program.Send(LogMessage{
			Message: message,
		})
	}
}

func (am *AccountMonitor) forward(snapshots <-chan watch.Snapshot) {
	for snapshot := range snapshots {
		am.program.Send(SnapshotMsg{Snapshot: snapshot})
	}
	am.program.Send(WatchStopped{})
}

// Run starts polling and blocks until the user quits or ctx is done
func (am *AccountMonitor) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	snapshots, err := am.watcher.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer am.watcher.Stop()

	go am.forward(snapshots)
	go func() {
		<-ctx.Done()
		am.program.Quit()
	}()

	logger.Info("Account monitor started")
	if _, err := am.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
