package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"threat_feeds/internal/domain"
	"threat_feeds/internal/metrics"
)

// VictimIngest runs one batch ingestion of the ransomware-victim feed. Each
// run replaces the previous payload wholesale; a fetch failure aborts before
// anything is written, so the prior artifact survives.
type VictimIngest struct {
	source VictimSource
	store  VictimStore
	logger *slog.Logger
	now    func() time.Time
}

func NewVictimIngest(source VictimSource, store VictimStore, logger *slog.Logger) *VictimIngest {
	return &VictimIngest{
		source: source,
		store:  store,
		logger: logger.With("source", source.Name()),
		now:    time.Now,
	}
}

func (s *VictimIngest) Run(ctx context.Context) (*domain.IngestStats, error) {
	startTime := s.now()
	s.logger.Info("starting ingestion")

	items, err := s.source.Fetch(ctx)
	if err != nil {
		metrics.IngestFailures.WithLabelValues(s.source.Name()).Inc()
		return nil, fmt.Errorf("fetch victims: %w", err)
	}

	payload := &domain.VictimPayload{
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
		Count:     len(items),
		Items:     items,
	}

	if err := s.store.Write(payload); err != nil {
		metrics.IngestFailures.WithLabelValues(s.source.Name()).Inc()
		return nil, fmt.Errorf("write victims: %w", err)
	}

	stats := &domain.IngestStats{
		Source:   s.source.Name(),
		Fetched:  len(items),
		Written:  len(items),
		Duration: s.now().Sub(startTime),
	}

	metrics.IngestItems.WithLabelValues(s.source.Name()).Add(float64(stats.Written))

	s.logger.Info("ingestion completed",
		"fetched", stats.Fetched,
		"written", stats.Written,
		"duration", stats.Duration,
	)

	return stats, nil
}

// ActorIngest runs one batch normalization of a threat-actor source. The
// per-actor files, index and search projection are regenerated from a single
// source snapshot per run; sources are never mixed within one run.
type ActorIngest struct {
	source ActorSource
	store  ActorStore
	logger *slog.Logger
	now    func() time.Time
}

func NewActorIngest(source ActorSource, store ActorStore, logger *slog.Logger) *ActorIngest {
	return &ActorIngest{
		source: source,
		store:  store,
		logger: logger.With("source", source.Name()),
		now:    time.Now,
	}
}

func (s *ActorIngest) Run(ctx context.Context) (*domain.IngestStats, error) {
	startTime := s.now()
	s.logger.Info("starting ingestion")

	actors, err := s.source.Fetch(ctx)
	if err != nil {
		metrics.IngestFailures.WithLabelValues(s.source.Name()).Inc()
		return nil, fmt.Errorf("fetch actors: %w", err)
	}

	if err := s.store.WriteSet(actors); err != nil {
		metrics.IngestFailures.WithLabelValues(s.source.Name()).Inc()
		return nil, fmt.Errorf("write actor set: %w", err)
	}

	stats := &domain.IngestStats{
		Source:   s.source.Name(),
		Fetched:  len(actors),
		Written:  len(actors),
		Duration: s.now().Sub(startTime),
	}

	metrics.IngestItems.WithLabelValues(s.source.Name()).Add(float64(stats.Written))

	s.logger.Info("ingestion completed",
		"fetched", stats.Fetched,
		"written", stats.Written,
		"duration", stats.Duration,
	)

	return stats, nil
}
