package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"threat_feeds/internal/config"
	"threat_feeds/internal/metrics"
	"threat_feeds/internal/newsfeed"
	"threat_feeds/internal/storage/jsonfile"
)

// Server exposes the ingested artifacts and the aggregation API over HTTP.
type Server struct {
	dataDir string
	actors  *jsonfile.ActorStore
	victims *jsonfile.VictimStore
	news    *newsfeed.Store
	cfg     config.NewsConfig
	logger  *slog.Logger
}

func New(
	dataDir string,
	actors *jsonfile.ActorStore,
	victims *jsonfile.VictimStore,
	news *newsfeed.Store,
	cfg config.NewsConfig,
	logger *slog.Logger,
) *Server {
	return &Server{
		dataDir: dataDir,
		actors:  actors,
		victims: victims,
		news:    news,
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/ransomware/rss.json", s.artifact("ransomware", "rss.json"))
	r.Get("/threat-actors/index.json", s.artifact("threat-actors", "index.json"))
	r.Get("/threat-actors/search-data.json", s.artifact("threat-actors", "search-data.json"))
	r.Get("/threat-actors/actors/{slug}.json", s.handleActorFile)
	r.Get("/threat-news-live/build_time.txt", s.handleBuildTime)

	r.Route("/api", func(r chi.Router) {
		r.Get("/actors", s.handleActors)
		r.Get("/actors/latest", s.handleLatestActors)
		r.Get("/news", s.handleNews)
		r.Get("/victims", s.handleVictims)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// observe wraps every request with structured logging and a request counter.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()

		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// artifact serves a generated JSON file as-is. Clients must revalidate on
// every request because the ingest jobs rewrite these files in place.
func (s *Server) artifact(parts ...string) http.HandlerFunc {
	path := filepath.Join(append([]string{s.dataDir}, parts...)...)
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveJSONFile(w, path)
	}
}

func (s *Server) handleActorFile(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if _, err := s.actors.ReadActor(slug); err != nil {
		http.Error(w, "unknown actor", http.StatusNotFound)
		return
	}
	s.serveJSONFile(w, filepath.Join(s.dataDir, "threat-actors", "actors", slug+".json"))
}

func (s *Server) serveJSONFile(w http.ResponseWriter, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		s.logger.Error("read artifact", slog.String("path", path), slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

func (s *Server) handleBuildTime(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.news.Snapshot()
	if !ok || snap.BuildTime.IsZero() {
		http.Error(w, "feed unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(strconv.FormatInt(snap.BuildTime.Unix(), 10)))
}
