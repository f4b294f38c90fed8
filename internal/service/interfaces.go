package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"threat_feeds/internal/domain"
)

type VictimSource interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.VictimRecord, error)
}

type ActorSource interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.ThreatActor, error)
}

type VictimStore interface {
	Write(payload *domain.VictimPayload) error
}

type ActorStore interface {
	WriteSet(actors []domain.ThreatActor) error
}
