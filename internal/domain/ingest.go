package domain

import "time"

// IngestStats holds statistics about one ingestion run.
type IngestStats struct {
	Source   string
	Fetched  int
	Written  int
	Duration time.Duration
}
