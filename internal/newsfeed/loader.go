// Package newsfeed maintains the live news snapshot the aggregation API
// reads from: the external RSS feed plus the upstream build timestamp.
package newsfeed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"threat_feeds/internal/domain"
)

// Snapshot is one immutable fetch result. Queries never mutate it; a refresh
// replaces it wholesale.
type Snapshot struct {
	Items     []domain.NewsItem
	BuildTime time.Time // zero when the upstream endpoint is absent
	FetchedAt time.Time
}

// Config holds loader configuration.
type Config struct {
	FeedURL      string
	BuildTimeURL string
	Timeout      time.Duration
}

// Loader fetches and parses the live feed.
type Loader struct {
	httpClient   *http.Client
	parser       *gofeed.Parser
	feedURL      string
	buildTimeURL string
	logger       *slog.Logger
}

func NewLoader(cfg Config, logger *slog.Logger) *Loader {
	client := &http.Client{Timeout: cfg.Timeout}
	parser := gofeed.NewParser()
	parser.Client = client
	return &Loader{
		httpClient:   client,
		parser:       parser,
		feedURL:      cfg.FeedURL,
		buildTimeURL: cfg.BuildTimeURL,
		logger:       logger.With("source", "newsfeed"),
	}
}

// Load fetches the feed and returns a fresh snapshot, newest items first.
// The build timestamp is best-effort: its absence never fails the load.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	feed, err := l.parser.ParseURLWithContext(l.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse live feed: %w", err)
	}

	now := time.Now()
	items := make([]domain.NewsItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		pubDate := now
		if it.PublishedParsed != nil {
			pubDate = *it.PublishedParsed
		}
		items = append(items, domain.NewsItem{
			Title:      strings.TrimSpace(it.Title),
			Link:       strings.TrimSpace(it.Link),
			PubDate:    pubDate,
			Categories: it.Categories,
			Source:     shortSource(hostOf(it.Link)),
		})
	}

	snap := &Snapshot{
		Items:     items,
		BuildTime: l.fetchBuildTime(ctx),
		FetchedAt: now,
	}

	l.logger.Debug("loaded live feed", "items", len(items))
	return snap, nil
}

func (l *Loader) fetchBuildTime(ctx context.Context) time.Time {
	if l.buildTimeURL == "" {
		return time.Time{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.buildTimeURL, nil)
	if err != nil {
		return time.Time{}
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		l.logger.Debug("build time fetch failed", "error", err)
		return time.Time{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return time.Time{}
	}
	secs, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}

func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// shortSource reduces a host to its registrable-ish tail, enough for a
// per-item source label.
func shortSource(host string) string {
	if host == "" {
		return ""
	}
	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return host
	}
	return strings.Join(parts[len(parts)-2:], ".")
}
