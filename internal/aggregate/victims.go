package aggregate

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"threat_feeds/internal/domain"
)

// FilterVictims returns victims whose group matches exactly
// (case-insensitive), capped at max when max is positive. An empty group
// matches everything.
func FilterVictims(items []domain.VictimRecord, group string, max int) []domain.VictimRecord {
	filtered := items
	if group != "" {
		want := strings.ToLower(group)
		filtered = lo.Filter(items, func(i domain.VictimRecord, _ int) bool {
			return strings.ToLower(i.Group) == want
		})
	}
	if max > 0 && len(filtered) > max {
		filtered = filtered[:max]
	}
	return filtered
}

// Groups lists the distinct ransomware groups present, sorted.
func Groups(items []domain.VictimRecord) []string {
	groups := lo.Uniq(lo.FilterMap(items, func(i domain.VictimRecord, _ int) (string, bool) {
		return i.Group, i.Group != ""
	}))
	sort.Strings(groups)
	return groups
}
