// Package watch polls an account on a fixed interval and delivers each result
// as a Snapshot.
package watch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/substratumservices/horizon-client/internal/logger"
	"github.com/substratumservices/horizon-client/internal/metrics"
	"github.com/substratumservices/horizon-client/internal/resources"
)

var (
	// ErrAlreadyRunning is returned by Start while a previous poll loop is active
	ErrAlreadyRunning = errors.New("watcher already running")
	// ErrInvalidInterval is returned by NewWatcher for a non-positive interval
	ErrInvalidInterval = errors.New("poll interval must be positive")
)

// Fetcher loads an account by id. *client.Client satisfies it.
type Fetcher interface {
	AccountDetails(ctx context.Context, id string) (resources.Account, error)
}

// Snapshot is the outcome of one poll. Err is set when the fetch failed, in
// which case Account is the zero value.
type Snapshot struct {
	AccountID       string
	Account         resources.Account
	FetchedAt       time.Time
	Err             error
	SequenceChanged bool
}

// Watcher polls one account through a Fetcher and reports whether its
// sequence number moved since the previous successful poll. It can be
// stopped and started again; only one poll loop runs at a time.
type Watcher struct {
	fetcher   Fetcher
	accountID string
	interval  time.Duration
	metrics   metrics.MetricsService

	mu            sync.RWMutex
	stopPolling   chan struct{}
	pollingActive bool
	lastSequence  uint64
	hasSequence   bool
}

// NewWatcher creates a stopped watcher for accountID that polls every interval
func NewWatcher(fetcher Fetcher, accountID string, interval time.Duration, ms metrics.MetricsService) (*Watcher, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidInterval, interval)
	}
	return &Watcher{
		fetcher:     fetcher,
		accountID:   accountID,
		interval:    interval,
		metrics:     ms,
		stopPolling: make(chan struct{}),
	}, nil
}

// Start polls once immediately and then every interval. The returned channel
// is closed when ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) (<-chan Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pollingActive {
		return nil, ErrAlreadyRunning
	}
	w.pollingActive = true
	// Recreate stopPolling channel if it was closed by a previous Stop
	w.stopPolling = make(chan struct{})

	snapshots := make(chan Snapshot, 1)
	go w.poll(ctx, w.stopPolling, snapshots)

	logger.Debug("Started watching account %s every %v", w.accountID, w.interval)
	return snapshots, nil
}

func (w *Watcher) poll(ctx context.Context, stop <-chan struct{}, snapshots chan<- Snapshot) {
	defer close(snapshots)
	defer func() {
		w.mu.Lock()
		// a later Start may already own the flag
		if w.stopPolling == stop {
			w.pollingActive = false
		}
		w.mu.Unlock()
	}()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		snapshot := w.fetch(ctx)
		select {
		case snapshots <- snapshot:
		case <-stop:
			return
		case <-ctx.Done():
			return
		}

		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Watcher) fetch(ctx context.Context) Snapshot {
	account, err := w.fetcher.AccountDetails(ctx, w.accountID)
	snapshot := Snapshot{AccountID: w.accountID, FetchedAt: time.Now()}

	if err != nil {
		logger.Error("Failed to fetch account %s: %v", w.accountID, err)
		w.metrics.IncWatchPolls(w.accountID, false)
		snapshot.Err = err
		return snapshot
	}
	w.metrics.IncWatchPolls(w.accountID, true)
	w.metrics.SetAccountSequence(w.accountID, float64(account.Sequence()))

	w.mu.Lock()
	snapshot.SequenceChanged = w.hasSequence && w.lastSequence != account.Sequence()
	w.lastSequence = account.Sequence()
	w.hasSequence = true
	w.mu.Unlock()

	if snapshot.SequenceChanged {
		logger.Info("Account %s sequence advanced to %d", w.accountID, account.Sequence())
	}

	snapshot.Account = account
	return snapshot
}

// Stop ends the poll loop. Calling it more than once is safe.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pollingActive {
		close(w.stopPolling)
		w.pollingActive = false
	}
}

// Running reports whether the poll loop is active
func (w *Watcher) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pollingActive
}
