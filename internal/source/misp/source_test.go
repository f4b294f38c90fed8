package misp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCluster = `{
  "name": "Threat Actor",
  "version": 42,
  "values": [
    {
      "value": "Fancy Bear",
      "uuid": "aaaa-bbbb",
      "description": "Russian state-sponsored group",
      "meta": {
        "synonyms": ["APT28", "Sofacy", "http://evil.com", "<script>"],
        "refs": ["https://ref.example/one", "https://ref.example/one", "https://ref.example/two"],
        "country": "RU",
        "motivation": ["Espionage"],
        "sophistication": "Advanced",
        "mitre-attack": ["G0007"],
        "cfr-target-category": ["Government", "Military"],
        "first-seen": "2004-01-01",
        "last_seen": "2024-06-01",
        "attribution-confidence": "50"
      }
    },
    {
      "value": "Fancy Bear",
      "uuid": "cccc-dddd",
      "meta": {
        "country": ["CN", "KP"],
        "region": ["Eastern Asia"]
      }
    },
    {
      "value": "Plain Actor",
      "uuid": "eeee-ffff"
    }
  ]
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func parseEntries(t *testing.T) []clusterEntry {
	t.Helper()
	var cluster clusterFile
	require.NoError(t, json.Unmarshal([]byte(sampleCluster), &cluster))
	return cluster.Values
}

func TestNormalize(t *testing.T) {
	actors := Normalize(parseEntries(t))
	require.Len(t, actors, 3)

	fancy := actors[0]
	assert.Equal(t, "fancy-bear", fancy.Slug)
	assert.Equal(t, "Fancy Bear", fancy.Name)
	assert.Equal(t, "aaaa-bbbb", fancy.UUID)
	assert.Equal(t, []string{"APT28", "Sofacy"}, fancy.Aliases, "junk synonyms are rejected")
	assert.Equal(t, []string{"https://ref.example/one", "https://ref.example/two"}, fancy.Refs)
	assert.Equal(t, "RU", fancy.Country, "scalar country is accepted")
	assert.Equal(t, []string{"RU"}, fancy.Countries)
	assert.Equal(t, "Espionage", fancy.Motivation, "array-wrapped scalar picks [0]")
	assert.Equal(t, "Advanced", fancy.Sophistication)
	assert.Equal(t, "G0007", fancy.MitreAttack)
	assert.Equal(t, []string{"Government", "Military"}, fancy.Sectors)
	assert.Equal(t, "2004-01-01", fancy.FirstSeen, "hyphenated key accepted")
	assert.Equal(t, "2024-06-01", fancy.LastSeen, "underscored key accepted")
	assert.Equal(t, 0, fancy.Order)
	assert.Equal(t, "50", fancy.RawMeta["attribution-confidence"], "unconsumed meta kept opaquely")

	dup := actors[1]
	assert.Equal(t, "fancy-bear-1", dup.Slug, "same display name de-collides")
	assert.Equal(t, "CN", dup.Country, "list country picks [0]")
	assert.Equal(t, []string{"CN", "KP"}, dup.Countries)
	assert.Equal(t, "Eastern Asia", dup.Region)
	assert.Equal(t, 1, dup.Order)

	plain := actors[2]
	assert.Equal(t, "plain-actor", plain.Slug)
	assert.Empty(t, plain.Country)
	assert.Nil(t, plain.RawMeta)
	assert.NotNil(t, plain.Aliases)
	assert.NotNil(t, plain.Refs)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCluster))
	}))
	defer srv.Close()

	s := New(Config{URL: srv.URL, Timeout: time.Second, MaxAttempts: 1}, testLogger())

	actors, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, actors, 3)
}

func TestFetch_MalformedJSONFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"values": [`))
	}))
	defer srv.Close()

	s := New(Config{URL: srv.URL, Timeout: time.Second, MaxAttempts: 1}, testLogger())

	_, err := s.Fetch(context.Background())
	assert.Error(t, err, "whole-document parse failure is fatal, no partial acceptance")
}
