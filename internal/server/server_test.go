package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threat_feeds/internal/config"
	"threat_feeds/internal/domain"
	"threat_feeds/internal/newsfeed"
	"threat_feeds/internal/storage/jsonfile"
)

func newTestServer(t *testing.T, withNews bool) *Server {
	t.Helper()
	dir := t.TempDir()

	actors := jsonfile.NewActorStore(dir)
	require.NoError(t, actors.WriteSet([]domain.ThreatActor{
		{
			Slug: "fancy-bear", Name: "Fancy Bear", Country: "RU",
			Sectors: []string{"Government"}, LastSeen: "2026-05-01",
			Aliases: []string{"APT28"}, Refs: []string{}, Related: []string{},
		},
		{
			Slug: "lazarus-group", Name: "Lazarus Group", Country: "KP",
			Sectors: []string{"Finance"}, Order: 3,
			Aliases: []string{}, Refs: []string{}, Related: []string{},
		},
	}))

	victims := jsonfile.NewVictimStore(dir)
	require.NoError(t, victims.Write(&domain.VictimPayload{
		UpdatedAt: "2026-08-28T12:00:00Z",
		Count:     2,
		Items: []domain.VictimRecord{
			{Title: "LockBit has just published a new victim: Acme Corp", Group: "LockBit", Victim: "Acme Corp"},
			{Title: "Cl0p has just published a new victim: Globex", Group: "Cl0p", Victim: "Globex"},
		},
	}))

	news := newsfeed.NewStore()
	if withNews {
		news.Replace(&newsfeed.Snapshot{
			Items: []domain.NewsItem{
				{Title: "Critical exploit in the wild", PubDate: time.Now().Add(-time.Hour), Categories: []string{"Security"}},
				{Title: "Quiet week in review", PubDate: time.Now().Add(-2 * time.Hour), Categories: []string{"ThreatIntel"}},
			},
			BuildTime: time.Unix(1767225600, 0),
			FetchedAt: time.Now(),
		})
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(dir, actors, victims, news, config.NewsConfig{
		EmergingKeywords: config.DefaultEmergingKeywords,
	}, logger)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestArtifactRoutes(t *testing.T) {
	h := newTestServer(t, true).Router()

	for _, path := range []string{
		"/ransomware/rss.json",
		"/threat-actors/index.json",
		"/threat-actors/search-data.json",
		"/threat-actors/actors/fancy-bear.json",
	} {
		rec := get(t, h, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"), path)
		assert.True(t, json.Valid(rec.Body.Bytes()), path)
	}
}

func TestActorFile_UnknownSlug(t *testing.T) {
	h := newTestServer(t, true).Router()

	rec := get(t, h, "/threat-actors/actors/no-such-actor.json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuildTime(t *testing.T) {
	h := newTestServer(t, true).Router()

	rec := get(t, h, "/threat-news-live/build_time.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "1767225600", string(body))
}

func TestActorsAPI(t *testing.T) {
	h := newTestServer(t, true).Router()

	rec := get(t, h, "/api/actors?country=RU")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp actorsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "fancy-bear", resp.Actors[0].Slug)
	assert.ElementsMatch(t, []string{"RU", "KP"}, resp.Countries)
	assert.Equal(t, []string{"Finance", "Government"}, resp.Sectors)
}

func TestActorsAPI_DefaultSortIsRecent(t *testing.T) {
	h := newTestServer(t, true).Router()

	rec := get(t, h, "/api/actors")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp actorsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "fancy-bear", resp.Actors[0].Slug, "timestamped actor sorts first")
}

func TestLatestActorsAPI(t *testing.T) {
	h := newTestServer(t, true).Router()

	rec := get(t, h, "/api/actors/latest")
	require.Equal(t, http.StatusOK, rec.Code)

	var actors []domain.ThreatActor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &actors))
	assert.Len(t, actors, 2)
}

func TestNewsAPI(t *testing.T) {
	h := newTestServer(t, true).Router()

	rec := get(t, h, "/api/news?channel=security&q=exploit")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp newsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "Critical exploit in the wild", resp.Days[0].Items[0].Title)
}

func TestNewsAPI_NoSnapshot(t *testing.T) {
	h := newTestServer(t, false).Router()

	rec := get(t, h, "/api/news")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = get(t, h, "/threat-news-live/build_time.txt")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestVictimsAPI(t *testing.T) {
	h := newTestServer(t, true).Router()

	rec := get(t, h, "/api/victims?group=lockbit&max=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp victimsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Acme Corp", resp.Items[0].Victim)
	assert.Equal(t, []string{"Cl0p", "LockBit"}, resp.Groups)
}

func TestVictimsAPI_InvalidMax(t *testing.T) {
	h := newTestServer(t, true).Router()

	rec := get(t, h, "/api/victims?max=lots")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, true).Router()

	get(t, h, "/api/actors")
	rec := get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "threat_feeds_http_requests_total")
}
