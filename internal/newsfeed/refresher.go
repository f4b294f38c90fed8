package newsfeed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"threat_feeds/internal/metrics"
)

// Store holds the current snapshot behind a read lock. Readers get the
// snapshot as-is and must treat it as immutable.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current snapshot; ok is false until the first
// successful load.
func (s *Store) Snapshot() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.snap != nil
}

// Replace swaps in a new snapshot and updates the snapshot gauges.
func (s *Store) Replace(snap *Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	metrics.NewsSnapshotItems.Set(float64(len(snap.Items)))
	metrics.MarkNewsSnapshot(snap.FetchedAt)
}

// Refresher polls the live feed on an interval and swaps the store snapshot.
// A failed refresh keeps the previous snapshot; there is no retry loop
// beyond the next tick.
type Refresher struct {
	loader   *Loader
	store    *Store
	interval time.Duration
	logger   *slog.Logger
}

func NewRefresher(loader *Loader, store *Store, interval time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{
		loader:   loader,
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

func (r *Refresher) Start(ctx context.Context) error {
	r.logger.Info("news refresher started", "interval", r.interval)

	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("news refresher stopped")
			return ctx.Err()
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	loadCtx, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	snap, err := r.loader.Load(loadCtx)
	if err != nil {
		r.logger.Error("refresh failed", "error", err)
		return
	}
	// A teardown may have raced the load; a late result must not be applied.
	if ctx.Err() != nil {
		return
	}
	r.store.Replace(snap)
}
