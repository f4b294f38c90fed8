package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/samber/lo"

	"threat_feeds/internal/domain"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// SearchDescriptionLimit caps the description carried in search-data.json.
const SearchDescriptionLimit = 400

// ActorStore owns the threat-actors artifacts under the data root: one file
// per actor plus the index and search projections.
type ActorStore struct {
	dir string
}

func NewActorStore(dir string) *ActorStore {
	return &ActorStore{dir: dir}
}

func (s *ActorStore) outDir() string {
	return filepath.Join(s.dir, "threat-actors")
}

func (s *ActorStore) actorsDir() string {
	return filepath.Join(s.outDir(), "actors")
}

// WriteSet persists a fully materialized actor set. Per-actor files are
// written first; the index and search projection are derived from the same
// in-memory set so the three artifacts stay mutually consistent.
func (s *ActorStore) WriteSet(actors []domain.ThreatActor) error {
	if err := os.MkdirAll(s.actorsDir(), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for i := range actors {
		a := &actors[i]
		if !slugPattern.MatchString(a.Slug) {
			return fmt.Errorf("refusing to write actor with slug %q", a.Slug)
		}
		if err := writeJSON(filepath.Join(s.actorsDir(), a.Slug+".json"), a); err != nil {
			return err
		}
	}

	sorted := make([]domain.ThreatActor, len(actors))
	copy(sorted, actors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Slug < sorted[j].Slug
	})

	if err := writeJSON(filepath.Join(s.outDir(), "index.json"), sorted); err != nil {
		return err
	}

	search := lo.Map(sorted, func(a domain.ThreatActor, _ int) domain.SearchItem {
		return domain.SearchItem{
			ID:          a.Slug,
			Name:        a.Name,
			Aliases:     a.Aliases,
			Country:     a.Country,
			LastSeen:    a.LastSeen,
			Description: truncate(a.Description, SearchDescriptionLimit),
		}
	})

	return writeJSON(filepath.Join(s.outDir(), "search-data.json"), search)
}

func (s *ActorStore) ReadIndex() ([]domain.ThreatActor, error) {
	data, err := os.ReadFile(filepath.Join(s.outDir(), "index.json"))
	if err != nil {
		return nil, fmt.Errorf("read actor index: %w", err)
	}
	var actors []domain.ThreatActor
	if err := json.Unmarshal(data, &actors); err != nil {
		return nil, fmt.Errorf("parse actor index: %w", err)
	}
	return actors, nil
}

// ReadActor loads a single per-actor artifact. Slugs that do not look like
// slugs are rejected before touching the filesystem.
func (s *ActorStore) ReadActor(slug string) (*domain.ThreatActor, error) {
	if !slugPattern.MatchString(slug) {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(filepath.Join(s.actorsDir(), slug+".json"))
	if err != nil {
		return nil, err
	}
	var actor domain.ThreatActor
	if err := json.Unmarshal(data, &actor); err != nil {
		return nil, fmt.Errorf("parse actor %s: %w", slug, err)
	}
	return &actor, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
