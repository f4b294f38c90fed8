// Package jsonfile persists normalized collections as static JSON artifacts
// and reads them back for the serving side.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"threat_feeds/internal/domain"
)

// VictimStore owns the ransomware/rss.json artifact under the data root.
type VictimStore struct {
	dir string
}

func NewVictimStore(dir string) *VictimStore {
	return &VictimStore{dir: dir}
}

func (s *VictimStore) path() string {
	return filepath.Join(s.dir, "ransomware", "rss.json")
}

// Write replaces the payload wholesale. The write goes through a temp file
// and rename so a failed run leaves the previous artifact untouched.
func (s *VictimStore) Write(payload *domain.VictimPayload) error {
	if err := os.MkdirAll(filepath.Dir(s.path()), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return writeJSON(s.path(), payload)
}

func (s *VictimStore) Read() (*domain.VictimPayload, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil, fmt.Errorf("read victims payload: %w", err)
	}
	var payload domain.VictimPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse victims payload: %w", err)
	}
	return &payload, nil
}

// writeJSON marshals v as two-space indented JSON with a trailing newline
// and renames it into place atomically.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
