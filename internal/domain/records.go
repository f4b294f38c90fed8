package domain

import "time"

// FeedItem is the raw shape of one RSS <item> after tag extraction.
// Nothing at this layer is deduplicated or validated.
type FeedItem struct {
	Title       string
	Link        string
	Description string
	PubDate     string
	Category    string
	GUID        string
}

// VictimRecord is one ransomware-victim entry derived from a feed item.
// Group and Victim are both set or both empty: they come from a single
// atomic title-pattern match.
type VictimRecord struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Summary  string `json:"summary"`
	PubDate  string `json:"pubDate"`
	Category string `json:"category"`
	GUID     string `json:"guid"`
	Group    string `json:"group"`
	Victim   string `json:"victim"`
	Country  string `json:"country"`
}

// VictimPayload is the on-disk envelope for ransomware/rss.json.
// The whole payload is replaced on every ingestion run.
type VictimPayload struct {
	UpdatedAt string         `json:"updatedAt"`
	Count     int            `json:"count"`
	Items     []VictimRecord `json:"items"`
}

// ThreatActor is the canonical actor record all source formats converge to.
// Slug is the primary key and is unique within one normalization run.
type ThreatActor struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	UUID        string   `json:"uuid,omitempty"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
	Refs        []string `json:"refs"`
	// Country is the best single value, Countries the fuller list. When only
	// one is known both are derived from it.
	Country        string         `json:"country,omitempty"`
	Countries      []string       `json:"countries,omitempty"`
	Region         string         `json:"region,omitempty"`
	Motivation     string         `json:"motivation,omitempty"`
	Sophistication string         `json:"sophistication,omitempty"`
	MitreAttack    string         `json:"mitre_attack,omitempty"`
	Sectors        []string       `json:"sectors,omitempty"`
	FirstSeen      string         `json:"first_seen,omitempty"`
	LastSeen       string         `json:"last_seen,omitempty"`
	Related        []string       `json:"related"`
	// RawMeta carries source-specific provenance. The aggregation engine
	// never interprets it.
	RawMeta map[string]any `json:"rawMeta,omitempty"`
	// Order reflects the entry's position in the source snapshot. It is the
	// recency tie-break when LastSeen is absent; higher means more recent.
	Order int `json:"order"`
}

// SearchItem is the read-optimized projection written to search-data.json.
type SearchItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	Country     string   `json:"country,omitempty"`
	LastSeen    string   `json:"last_seen,omitempty"`
	Description string   `json:"description"`
}

// NewsItem is one entry of the live news snapshot.
type NewsItem struct {
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	PubDate    time.Time `json:"pubDate"`
	Categories []string  `json:"categories"`
	Source     string    `json:"source,omitempty"`
}
