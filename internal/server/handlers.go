package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"threat_feeds/internal/aggregate"
	"threat_feeds/internal/domain"
)

type actorsResponse struct {
	Count     int                  `json:"count"`
	Actors    []domain.ThreatActor `json:"actors"`
	Countries []string             `json:"countries"`
	Sectors   []string             `json:"sectors"`
}

type newsResponse struct {
	UpdatedAt time.Time            `json:"updatedAt"`
	Count     int                  `json:"count"`
	Days      []aggregate.DayGroup `json:"days"`
}

type victimsResponse struct {
	UpdatedAt string                `json:"updatedAt"`
	Count     int                   `json:"count"`
	Groups    []string              `json:"groups"`
	Items     []domain.VictimRecord `json:"items"`
}

func (s *Server) handleActors(w http.ResponseWriter, r *http.Request) {
	index, err := s.actors.ReadIndex()
	if err != nil {
		s.logger.Error("read actor index", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	filtered := aggregate.FilterActors(index, aggregate.ActorFilter{
		Country: q.Get("country"),
		Sector:  q.Get("sector"),
		Query:   q.Get("q"),
	})

	sortKey := aggregate.SortKey(q.Get("sort"))
	if sortKey == "" {
		sortKey = aggregate.SortRecent
	}
	sorted := aggregate.SortActors(filtered, sortKey)

	s.writeJSON(w, actorsResponse{
		Count:     len(sorted),
		Actors:    sorted,
		Countries: aggregate.Countries(index),
		Sectors:   aggregate.Sectors(index),
	})
}

func (s *Server) handleLatestActors(w http.ResponseWriter, r *http.Request) {
	index, err := s.actors.ReadIndex()
	if err != nil {
		s.logger.Error("read actor index", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, aggregate.LatestActors(index, aggregate.LatestActorCount))
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.news.Snapshot()
	if !ok {
		http.Error(w, "feed unavailable", http.StatusServiceUnavailable)
		return
	}

	q := r.URL.Query()
	items := aggregate.FilterNews(snap.Items, aggregate.NewsFilter{
		Channel:          aggregate.Channel(q.Get("channel")),
		Volume:           aggregate.Volume(q.Get("filter")),
		Query:            q.Get("q"),
		EmergingKeywords: s.cfg.EmergingKeywords,
		Now:              time.Now(),
	})

	s.writeJSON(w, newsResponse{
		UpdatedAt: snap.FetchedAt,
		Count:     len(items),
		Days:      aggregate.GroupByDay(items),
	})
}

func (s *Server) handleVictims(w http.ResponseWriter, r *http.Request) {
	payload, err := s.victims.Read()
	if err != nil {
		s.logger.Error("read victims", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	max := 0
	if raw := q.Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid max", http.StatusBadRequest)
			return
		}
		max = n
	}

	items := aggregate.FilterVictims(payload.Items, q.Get("group"), max)

	s.writeJSON(w, victimsResponse{
		UpdatedAt: payload.UpdatedAt,
		Count:     len(items),
		Groups:    aggregate.Groups(payload.Items),
		Items:     items,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", slog.Any("error", err))
	}
}
