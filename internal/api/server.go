// Package api provides the HTTP server for the FlexBreak engine.
// It exposes the progress record, activity recording, achievements,
// challenges, and boost control as a local JSON API.
package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crisnc100/flexbreak/internal/app/progress"
	"github.com/crisnc100/flexbreak/internal/domain"
	"github.com/crisnc100/flexbreak/internal/health"
)

// Server is the FlexBreak HTTP API server.
type Server struct {
	svc            *progress.Service
	checker        *health.Checker
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(svc *progress.Service) *Server {
	return &Server{svc: svc}
}

// SetHealthChecker attaches the daemon's health checker so /health can
// report per-check detail.
func (s *Server) SetHealthChecker(c *health.Checker) { s.checker = c }

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/progress", s.handleProgress)
		r.Post("/activity", s.handleActivity)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/challenges", s.handleChallenges)
		r.Get("/history", s.handleHistory)
		r.Get("/boost", s.handleBoostStatus)
		r.Post("/boost/activate", s.handleBoostActivate)
		r.Post("/boost/deactivate", s.handleBoostDeactivate)
		r.Post("/reset", s.handleReset)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.checker == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
		return
	}

	status := "ok"
	code := http.StatusOK
	if !s.checker.IsHealthy() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": s.checker.Statuses(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "FlexBreak is running"})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	level := domain.LevelForXP(rec.TotalXP)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_xp":      rec.TotalXP,
		"level":         level.Level,
		"title":         level.Title,
		"xp_to_next":    domain.XPToNextLevel(rec.TotalXP),
		"level_pct":     domain.LevelProgressPct(rec.TotalXP),
		"statistics":    rec.Statistics,
		"boost":         rec.Boost,
		"welcome_bonus": rec.HasReceivedWelcomeBonus,
	})
}

// activityRequest is the POST /api/activity body.
type activityRequest struct {
	Area            string `json:"area"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Area == "" {
		writeError(w, http.StatusBadRequest, "area is required")
		return
	}

	summary, err := s.svc.RecordActivity(domain.Activity{
		Area:            domain.Area(req.Area),
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	list := make([]domain.AchievementState, 0, len(rec.Achievements))
	for _, st := range rec.Achievements {
		list = append(list, st)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	completed := 0
	for _, st := range list {
		if st.Completed {
			completed++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": list,
		"completed":    completed,
		"total":        len(list),
	})
}

func (s *Server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	list := make([]domain.ChallengeState, 0, len(rec.Challenges))
	for _, ch := range rec.Challenges {
		list = append(list, ch)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	writeJSON(w, http.StatusOK, map[string]interface{}{"challenges": list})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"xp_history": rec.XPHistory})
}

// boostRequest is the POST /api/boost/activate body.
type boostRequest struct {
	DurationHours int     `json:"duration_hours"`
	Multiplier    float64 `json:"multiplier"`
}

func (s *Server) handleBoostStatus(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec.Boost)
}

func (s *Server) handleBoostActivate(w http.ResponseWriter, r *http.Request) {
	var req boostRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body uses defaults
	}

	ok, state, err := s.svc.ActivateBoost(req.DurationHours, req.Multiplier)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activated": ok,
		"boost":     state,
	})
}

func (s *Server) handleBoostDeactivate(w http.ResponseWriter, r *http.Request) {
	state, err := s.svc.DeactivateBoost()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"boost": state})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Reset()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reset":    true,
		"total_xp": rec.TotalXP,
		"level":    rec.Level,
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
