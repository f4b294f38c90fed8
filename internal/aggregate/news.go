package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"threat_feeds/internal/domain"
)

// Channel is a named category preset for the live news view.
type Channel string

const (
	ChannelAll         Channel = "all"
	ChannelEmerging    Channel = "emerging"
	ChannelSecurity    Channel = "security"
	ChannelThreatIntel Channel = "threatintel"
	ChannelVulns       Channel = "vulns"
)

// Volume caps how much of the channel-filtered stream is shown.
type Volume string

const (
	VolumeLastDay  Volume = "last_day"
	VolumeLast20   Volume = "last_20"
	VolumeLast50   Volume = "last_50"
	VolumeFirehose Volume = "firehose"
)

// NewsFilter is one immutable query over the news snapshot. EmergingKeywords
// is supplied by configuration; Now anchors the last_day window and defaults
// to the wall clock.
type NewsFilter struct {
	Channel          Channel
	Volume           Volume
	Query            string
	EmergingKeywords []string
	Now              time.Time
}

// FilterNews applies channel preset, then volume, then free-text search over
// a date-sorted copy of the snapshot.
func FilterNews(items []domain.NewsItem, f NewsFilter) []domain.NewsItem {
	arr := SortNews(items)

	if f.Channel != "" && f.Channel != ChannelAll {
		arr = lo.Filter(arr, func(i domain.NewsItem, _ int) bool {
			return matchesChannel(i, f.Channel, f.EmergingKeywords)
		})
	}

	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	switch f.Volume {
	case VolumeLastDay:
		since := now.Add(-24 * time.Hour)
		arr = lo.Filter(arr, func(i domain.NewsItem, _ int) bool {
			return !i.PubDate.Before(since)
		})
	case VolumeLast20:
		arr = capItems(arr, 20)
	case VolumeLast50:
		arr = capItems(arr, 50)
	}
	// firehose or empty volume: no cap

	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q != "" {
		terms := strings.Fields(q)
		arr = lo.Filter(arr, func(i domain.NewsItem, _ int) bool {
			return matchesAllTerms(i, terms)
		})
	}

	return arr
}

func matchesChannel(i domain.NewsItem, channel Channel, keywords []string) bool {
	cats := lo.Map(i.Categories, func(c string, _ int) string {
		return strings.ToLower(c)
	})
	switch channel {
	case ChannelSecurity:
		return lo.Contains(cats, "security")
	case ChannelThreatIntel:
		return lo.Contains(cats, "threatintel")
	case ChannelVulns:
		return lo.Contains(cats, "vulns") || lo.Contains(cats, "vulnerability")
	case ChannelEmerging:
		if lo.Contains(cats, "emerging") {
			return true
		}
		title := strings.ToLower(i.Title)
		for _, kw := range keywords {
			if strings.Contains(title, kw) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// matchesAllTerms requires every term to be a substring of the joined
// lowercased title, source and categories: AND across terms, OR across
// fields within a term.
func matchesAllTerms(i domain.NewsItem, terms []string) bool {
	fields := append([]string{
		strings.ToLower(i.Title),
		strings.ToLower(i.Source),
	}, lo.Map(i.Categories, func(c string, _ int) string {
		return strings.ToLower(c)
	})...)
	hay := strings.Join(fields, " ")

	for _, term := range terms {
		if !strings.Contains(hay, term) {
			return false
		}
	}
	return true
}

func capItems(items []domain.NewsItem, n int) []domain.NewsItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// SortNews returns a copy sorted newest first.
func SortNews(items []domain.NewsItem) []domain.NewsItem {
	sorted := make([]domain.NewsItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PubDate.After(sorted[j].PubDate)
	})
	return sorted
}

// dayLayout is the calendar-day bucket key format.
const dayLayout = "Jan 02, 2006"

// DayGroup is one calendar day of news items.
type DayGroup struct {
	Day   string            `json:"day"`
	Items []domain.NewsItem `json:"items"`
}

// GroupByDay buckets items by calendar day. Groups are ordered by the parsed
// bucket date descending; within a group the incoming order is preserved.
func GroupByDay(items []domain.NewsItem) []DayGroup {
	byDay := make(map[string][]domain.NewsItem)
	var order []string
	for _, it := range items {
		key := it.PubDate.Format(dayLayout)
		if _, seen := byDay[key]; !seen {
			order = append(order, key)
		}
		byDay[key] = append(byDay[key], it)
	}

	sort.SliceStable(order, func(i, j int) bool {
		ti, _ := time.Parse(dayLayout, order[i])
		tj, _ := time.Parse(dayLayout, order[j])
		return ti.After(tj)
	})

	groups := make([]DayGroup, 0, len(order))
	for _, day := range order {
		groups = append(groups, DayGroup{Day: day, Items: byDay[day]})
	}
	return groups
}
