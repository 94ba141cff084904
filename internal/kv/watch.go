package kv

import (
	"context"
	"log/slog"
	"time"
)

// Watcher polls the store's data version and invokes a callback when another
// process has written to it. The signal is best-effort: rapid consecutive
// writes coalesce into one notification, and no ordering between writers is
// implied beyond last-writer-wins at the store level.
type Watcher struct {
	store    *Store
	interval time.Duration
	onChange func()
}

// DefaultWatchInterval is how often the watcher checks for outside writes.
const DefaultWatchInterval = 2 * time.Second

// NewWatcher creates a watcher that calls onChange after detecting a commit
// from another connection.
func NewWatcher(store *Store, interval time.Duration, onChange func()) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &Watcher{store: store, interval: interval, onChange: onChange}
}

// Run polls until ctx is cancelled. Poll errors are logged and retried on the
// next tick rather than stopping the watcher.
func (w *Watcher) Run(ctx context.Context) {
	last, err := w.store.DataVersion(ctx)
	if err != nil {
		slog.Warn("watcher: initial data version read failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			version, err := w.store.DataVersion(ctx)
			if err != nil {
				slog.Warn("watcher: data version read failed", "error", err)
				continue
			}
			if version != last {
				last = version
				w.onChange()
			}
		}
	}
}
