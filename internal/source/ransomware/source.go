// Package ransomware fetches the ransomware-victim RSS feed and normalizes
// its items into victim records.
package ransomware

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"threat_feeds/internal/domain"
	"threat_feeds/internal/feedxml"
)

const SourceName = "ransomware-rss"

var (
	// victimSeparator is the upstream title convention
	// "<group> has just published a new victim : <victim>".
	victimSeparator = regexp.MustCompile(`(?i)\s+has\s+just\s+published\s+a\s+new\s+victim\s*:\s*`)
	leadingNoise    = regexp.MustCompile(`^[^A-Za-z0-9]+\s*`)
	alpha2          = regexp.MustCompile(`^[A-Za-z]{2}$`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// Config holds ransomware source configuration.
type Config struct {
	URL            string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source implements service.VictimSource over the public RSS endpoint.
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

// Fetch retrieves the feed and returns victim records in source order. Any
// transport failure or non-2xx response is an error; the caller treats it as
// fatal for the run.
func (s *Source) Fetch(ctx context.Context) ([]domain.VictimRecord, error) {
	doc, err := s.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}

	items := Parse(doc)
	s.logger.Debug("parsed feed", "items", len(items))
	return items, nil
}

func (s *Source) fetchFeed(ctx context.Context) (string, error) {
	var doc string
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		doc, err = s.doRequest(ctx)
		if err == nil {
			return doc, nil
		}

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	return "", fmt.Errorf("after %d attempts: %w", s.maxAttempts, err)
}

func (s *Source) doRequest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")
	req.Header.Set("User-Agent", "ThreatFeeds/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	return string(body), nil
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

// Parse extracts victim records from a raw RSS document, preserving source
// order. Malformed items degrade to records with empty fields rather than
// being dropped.
func Parse(doc string) []domain.VictimRecord {
	blocks := feedxml.Items(doc)
	items := make([]domain.VictimRecord, 0, len(blocks))

	for _, block := range blocks {
		title := feedxml.TagValue(block, "title")
		category := feedxml.TagValue(block, "category")
		group, victim := SplitVictimTitle(title)

		items = append(items, domain.VictimRecord{
			Title:    title,
			Link:     feedxml.TagValue(block, "link"),
			Summary:  collapseWhitespace(feedxml.TagValue(block, "description")),
			PubDate:  feedxml.TagValue(block, "pubdate"),
			Category: category,
			GUID:     feedxml.TagValue(block, "guid"),
			Group:    group,
			Victim:   victim,
			Country:  deriveCountry(category),
		})
	}

	return items
}

// SplitVictimTitle decomposes a feed title on the victim-announcement phrase.
// The match is atomic: both values are set on an exact two-part split and
// both are empty otherwise.
func SplitVictimTitle(title string) (group, victim string) {
	clean := strings.TrimSpace(leadingNoise.ReplaceAllString(title, ""))
	parts := victimSeparator.Split(clean, -1)
	if len(parts) != 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// deriveCountry treats a category of exactly two alphabetic characters as an
// ISO-3166 alpha-2 code.
func deriveCountry(category string) string {
	if !alpha2.MatchString(category) {
		return ""
	}
	return strings.ToUpper(category)
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
