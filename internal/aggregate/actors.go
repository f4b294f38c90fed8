// Package aggregate implements the read-side query operations over the
// normalized collections: filtering, sorting, grouping and search. All
// functions are pure over an in-memory snapshot and are recomputed in full
// whenever the snapshot or the query changes.
package aggregate

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"threat_feeds/internal/domain"
)

// SortKey selects an actor ordering.
type SortKey string

const (
	SortNameAsc  SortKey = "name_asc"
	SortNameDesc SortKey = "name_desc"
	SortRecent   SortKey = "recent"
)

// LatestActorCount is the size of the home-page "latest actors" widget.
const LatestActorCount = 8

// ActorFilter combines conjunctively: every non-empty field must match.
type ActorFilter struct {
	Country string
	Sector  string
	Query   string
}

// FilterActors returns the actors matching the filter. The free-text query
// matches on name, any alias, or description, case-insensitively.
func FilterActors(actors []domain.ThreatActor, f ActorFilter) []domain.ThreatActor {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	return lo.Filter(actors, func(a domain.ThreatActor, _ int) bool {
		if f.Country != "" && a.Country != f.Country {
			return false
		}
		if f.Sector != "" && !slices.Contains(a.Sectors, f.Sector) {
			return false
		}
		if q == "" {
			return true
		}
		if strings.Contains(strings.ToLower(a.Name), q) {
			return true
		}
		for _, alias := range a.Aliases {
			if strings.Contains(strings.ToLower(alias), q) {
				return true
			}
		}
		return strings.Contains(strings.ToLower(a.Description), q)
	})
}

// SortActors returns a sorted copy; the input is never mutated.
func SortActors(actors []domain.ThreatActor, key SortKey) []domain.ThreatActor {
	sorted := make([]domain.ThreatActor, len(actors))
	copy(sorted, actors)

	switch key {
	case SortNameDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[j].Name < sorted[i].Name
		})
	case SortRecent:
		sort.SliceStable(sorted, func(i, j int) bool {
			return moreRecent(sorted[i], sorted[j])
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
	}

	return sorted
}

// LatestActors applies the recency ordering to the full unfiltered set and
// returns the top n.
func LatestActors(actors []domain.ThreatActor, n int) []domain.ThreatActor {
	sorted := SortActors(actors, SortRecent)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// moreRecent is the recency comparator: a timestamped actor sorts before an
// untimestamped one; between timestamps, later wins; between untimestamped
// actors, higher source order wins.
func moreRecent(a, b domain.ThreatActor) bool {
	at, aok := seenTime(a.LastSeen)
	bt, bok := seenTime(b.LastSeen)
	switch {
	case aok && bok:
		return at.After(bt)
	case aok:
		return true
	case bok:
		return false
	default:
		return a.Order > b.Order
	}
}

var seenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// seenTime parses the loosely ISO-shaped first_seen/last_seen strings the
// upstream taxonomies use.
func seenTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range seenLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Countries lists the distinct filterable countries in first-seen order.
func Countries(actors []domain.ThreatActor) []string {
	return lo.Uniq(lo.FilterMap(actors, func(a domain.ThreatActor, _ int) (string, bool) {
		return a.Country, a.Country != ""
	}))
}

// Sectors lists the distinct sectors across all actors, sorted.
func Sectors(actors []domain.ThreatActor) []string {
	all := lo.Uniq(lo.Flatten(lo.Map(actors, func(a domain.ThreatActor, _ int) []string {
		return a.Sectors
	})))
	sort.Strings(all)
	return all
}
