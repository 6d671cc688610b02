package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/analytics"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/render"
	"github.com/mauv0809/crease/internal/roster"
	"github.com/mauv0809/crease/internal/scoring"
	"github.com/mauv0809/crease/internal/store"
)

// maxCommandBytes bounds command and match request bodies.
const maxCommandBytes = 64 << 10

// matchView is a snapshot plus its derived phase.
type matchView struct {
	*scoring.State
	Phase scoring.Phase `json:"phase"`
}

func viewOf(s *scoring.State) matchView {
	return matchView{State: s, Phase: s.Phase()}
}

// analyticsView bundles the derived views of one match.
type analyticsView struct {
	Summary   analytics.Summary   `json:"summary"`
	Scorecard analytics.Scorecard `json:"scorecard"`
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		if s.Counters == nil || r.URL.Query().Get("counters") != "true" {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "OK!")
			return
		}
		counters, err := s.Counters.GetAll()
		if err != nil {
			log.Error("Failed to read counters", "error", err)
			http.Error(w, "Failed to read counters", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "OK", "counters": counters})
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req match.CreateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxCommandBytes)).Decode(&req); err != nil {
			log.Warn("Invalid create match request", "error", err)
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body", Reason: "invalid_input"})
			return
		}
		m, err := s.Matches.Create(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		log.Info("Created match", "match_id", m.ID, "team_a", m.TeamA.ID, "team_b", m.TeamB.ID)
		writeJSON(w, http.StatusCreated, viewOf(m))
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Matches.List(r.Context(), r.URL.Query().Get("tournament"))
		if err != nil {
			writeError(w, err)
			return
		}
		views := make([]matchView, 0, len(matches))
		for _, m := range matches {
			views = append(views, viewOf(m))
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := s.Matches.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(m))
	}
}

// CommandHandler decodes a command envelope and applies it to the match.
func (s *Server) CommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxCommandBytes))
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received command", "match_id", r.PathValue("id"), "body", string(body))
		cmd, err := match.DecodeCommand(body)
		if err != nil {
			s.Metrics.IncCommandsRejected("unknown", match.Reason(err))
			writeError(w, err)
			return
		}
		m, events, err := s.Matches.Apply(r.Context(), r.PathValue("id"), cmd, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		if events == nil {
			events = []scoring.Event{}
		}
		writeJSON(w, http.StatusOK, commandResponse{Match: viewOf(m), Events: events})
	}
}

func (s *Server) AnalyticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := s.Matches.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, analyticsView{
			Summary:   analytics.Summarize(m),
			Scorecard: analytics.BuildScorecard(m),
		})
	}
}

// ScorecardHandler serves the scorecard as JSON, or as a text table with ?format=text.
func (s *Server) ScorecardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := s.Matches.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		sc := analytics.BuildScorecard(m)
		if r.URL.Query().Get("format") != "text" {
			writeJSON(w, http.StatusOK, sc)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := render.WriteScorecard(w, sc); err != nil {
			log.Error("Failed to write scorecard", "match_id", m.ID, "error", err)
		}
	}
}

func (s *Server) ChartsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := s.Matches.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render.WriteCharts(w, analytics.Summarize(m)); err != nil {
			log.Error("Failed to render charts", "match_id", m.ID, "error", err)
		}
	}
}

func (s *Server) TableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := s.Matches.Table(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, table)
	}
}

func (s *Server) PerformersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		perf, err := s.Matches.Performers(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, perf)
	}
}

func (s *Server) PlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		stats, ok, err := s.Matches.Career(r.Context(), name)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no figures for %s", name), Reason: "not_found"})
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// statusOf maps the error taxonomy onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, scoring.ErrInvalidInput), errors.Is(err, scoring.ErrRosterInconsistency):
		return http.StatusBadRequest
	case errors.Is(err, scoring.ErrIllegalOperation), errors.Is(err, store.ErrVersionConflict), errors.Is(err, store.ErrExists):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound), errors.Is(err, roster.ErrTeamNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error", Reason: match.Reason(err)})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Reason: match.Reason(err)})
}
