// Package misp normalizes the MISP Galaxy threat-actor cluster export into
// canonical actor records.
package misp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"threat_feeds/internal/domain"
	"threat_feeds/internal/identity"
)

const SourceName = "misp-galaxy"

// Config holds MISP source configuration.
type Config struct {
	URL            string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source implements service.ActorSource over a MISP Galaxy cluster document.
type Source struct {
	httpClient     *http.Client
	url            string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:            cfg.URL,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", SourceName),
	}
}

func (s *Source) Name() string {
	return SourceName
}

// clusterFile is the MISP Galaxy cluster envelope.
type clusterFile struct {
	Name    string         `json:"name"`
	Version int            `json:"version"`
	Values  []clusterEntry `json:"values"`
}

type clusterEntry struct {
	Value       string         `json:"value"`
	Description string         `json:"description"`
	UUID        string         `json:"uuid"`
	Meta        map[string]any `json:"meta"`
}

// Fetch retrieves the cluster document and normalizes every entry.
func (s *Source) Fetch(ctx context.Context) ([]domain.ThreatActor, error) {
	var cluster clusterFile
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		cluster, err = s.doRequest(ctx)
		if err == nil {
			break
		}

		if attempt == s.maxAttempts {
			return nil, fmt.Errorf("after %d attempts: %w", s.maxAttempts, err)
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	s.logger.Debug("fetched cluster",
		"galaxy", cluster.Name,
		"version", cluster.Version,
		"entries", len(cluster.Values),
	)

	return Normalize(cluster.Values), nil
}

func (s *Source) doRequest(ctx context.Context) (clusterFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return clusterFile{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ThreatFeeds/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return clusterFile{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return clusterFile{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var cluster clusterFile
	if err := json.NewDecoder(resp.Body).Decode(&cluster); err != nil {
		return clusterFile{}, fmt.Errorf("decode cluster: %w", err)
	}

	return cluster, nil
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

// consumedMetaKeys are the meta-bag fields mapped onto canonical record
// fields; everything else is carried opaquely in rawMeta.
var consumedMetaKeys = map[string]struct{}{
	"synonyms": {}, "refs": {}, "country": {}, "region": {},
	"motivation": {}, "sophistication": {}, "mitre-attack": {},
	"cfr-target-category": {},
	"first-seen":          {}, "first_seen": {},
	"last-seen": {}, "last_seen": {},
}

// Normalize converts cluster entries into canonical actors. Slugs are
// derived from the display name with per-run de-collision; Order records the
// entry's position in the source array.
func Normalize(entries []clusterEntry) []domain.ThreatActor {
	slugger := identity.NewSlugger()
	actors := make([]domain.ThreatActor, 0, len(entries))

	for i, e := range entries {
		slug := slugger.Slug("", e.Value)
		name := e.Value
		if name == "" {
			name = slug
		}

		countries := metaList(e.Meta, "country")

		actor := domain.ThreatActor{
			Slug:           slug,
			Name:           name,
			UUID:           e.UUID,
			Description:    e.Description,
			Aliases:        identity.SanitizeAliases(metaList(e.Meta, "synonyms")),
			Refs:           lo.Uniq(metaList(e.Meta, "refs")),
			Country:        first(countries),
			Countries:      countries,
			Region:         metaFirst(e.Meta, "region"),
			Motivation:     metaFirst(e.Meta, "motivation"),
			Sophistication: metaFirst(e.Meta, "sophistication"),
			MitreAttack:    metaFirst(e.Meta, "mitre-attack"),
			Sectors:        metaList(e.Meta, "cfr-target-category"),
			FirstSeen:      metaFirst(e.Meta, "first-seen", "first_seen"),
			LastSeen:       metaFirst(e.Meta, "last-seen", "last_seen"),
			Related:        []string{},
			RawMeta:        leftoverMeta(e.Meta),
			Order:          i,
		}

		actors = append(actors, actor)
	}

	return actors
}

// metaList coerces a meta field to a string list: a scalar becomes a
// singleton, an array is taken as-is with non-string elements dropped. The
// first present key wins.
func metaList(meta map[string]any, keys ...string) []string {
	for _, key := range keys {
		v, ok := meta[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return []string{t}
			}
		case []any:
			var out []string
			for _, el := range t {
				if s, ok := el.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

// metaFirst coerces a meta field to its single canonical value, picking [0]
// of array-wrapped shapes.
func metaFirst(meta map[string]any, keys ...string) string {
	return first(metaList(meta, keys...))
}

func first(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

func leftoverMeta(meta map[string]any) map[string]any {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]any)
	for k, v := range meta {
		if _, consumed := consumedMetaKeys[k]; !consumed {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
