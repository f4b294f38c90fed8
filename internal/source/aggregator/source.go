// Package aggregator normalizes a local threat-actor aggregator export into
// canonical actor records.
package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/lo"

	"threat_feeds/internal/domain"
	"threat_feeds/internal/identity"
)

const SourceName = "ta-aggregator"

// Source implements service.ActorSource over the aggregator export file.
type Source struct {
	path   string
	logger *slog.Logger
}

func New(path string, logger *slog.Logger) *Source {
	return &Source{
		path:   path,
		logger: logger.With("source", SourceName),
	}
}

func (s *Source) Name() string {
	return SourceName
}

// exportFile is the aggregator bundle envelope.
type exportFile struct {
	Actors []exportActor `json:"actors"`
}

type exportActor struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Aliases            []string    `json:"aliases"`
	References         []reference `json:"references"`
	Sectors            []string    `json:"sectors"`
	Country            string      `json:"country"`
	FirstSeen          string      `json:"first_seen"`
	LastSeen           string      `json:"last_seen"`
	TTPMappings        []ttp       `json:"ttp_mappings"`
	Sources            []any       `json:"sources"`
	DescriptionSources any         `json:"description_sources"`
	ExternalIDs        any         `json:"external_ids"`
	EntityType         string      `json:"entity_type"`
	Diamond            *diamond    `json:"diamond"`
}

type reference struct {
	URL string `json:"url"`
}

type ttp struct {
	Technique string `json:"technique"`
}

type diamond struct {
	Victim struct {
		Sectors   []string `json:"sectors"`
		Geography []string `json:"geography"`
	} `json:"victim"`
}

// Fetch reads and normalizes the export. A missing file is fatal for the run
// and the error names the expected path.
func (s *Source) Fetch(ctx context.Context) ([]domain.ThreatActor, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("missing aggregator export %s: %w", s.path, err)
		}
		return nil, fmt.Errorf("read aggregator export: %w", err)
	}

	var export exportFile
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parse aggregator export: %w", err)
	}

	s.logger.Debug("loaded export", "actors", len(export.Actors))
	return Normalize(export.Actors), nil
}

// Normalize converts export entries into canonical actors. An explicit
// "ta:<rest>" id becomes the slug verbatim; otherwise the slug is derived
// from the name with per-run de-collision.
func Normalize(entries []exportActor) []domain.ThreatActor {
	slugger := identity.NewSlugger()
	actors := make([]domain.ThreatActor, 0, len(entries))

	for i, e := range entries {
		slug := slugger.Slug(e.ID, e.Name)
		name := e.Name
		if name == "" {
			name = slug
		}

		actor := domain.ThreatActor{
			Slug:        slug,
			Name:        name,
			Description: e.Description,
			Aliases:     identity.SanitizeAliases(e.Aliases),
			Refs:        referenceURLs(e.References),
			Country:     e.Country,
			Countries:   countries(e),
			Sectors:     sectors(e),
			FirstSeen:   e.FirstSeen,
			LastSeen:    e.LastSeen,
			Related:     []string{},
			RawMeta:     rawMeta(e),
			Order:       i,
		}

		actors = append(actors, actor)
	}

	return actors
}

func referenceURLs(refs []reference) []string {
	urls := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	return lo.Uniq(urls)
}

// sectors prefers the explicit top-level field over the nested victimology
// field.
func sectors(e exportActor) []string {
	if len(e.Sectors) > 0 {
		return e.Sectors
	}
	if e.Diamond != nil && len(e.Diamond.Victim.Sectors) > 0 {
		return e.Diamond.Victim.Sectors
	}
	return nil
}

func countries(e exportActor) []string {
	if e.Country != "" {
		return []string{e.Country}
	}
	if e.Diamond != nil && len(e.Diamond.Victim.Geography) > 0 {
		return e.Diamond.Victim.Geography
	}
	return nil
}

func rawMeta(e exportActor) map[string]any {
	techniques := make([]string, 0, len(e.TTPMappings))
	for _, t := range e.TTPMappings {
		if t.Technique != "" {
			techniques = append(techniques, t.Technique)
		}
	}

	entityType := e.EntityType
	if entityType == "" {
		entityType = "unknown"
	}

	sources := e.Sources
	if sources == nil {
		sources = []any{}
	}

	return map[string]any{
		"sources":             sources,
		"description_sources": e.DescriptionSources,
		"external_ids":        e.ExternalIDs,
		"entity_type":         entityType,
		"ttp_mappings":        lo.Uniq(techniques),
	}
}
