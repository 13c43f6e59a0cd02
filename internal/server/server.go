// Package server exposes cached contribution data over HTTP as
// read-only JSON views.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vanschouwen/streakline/internal/contrib"
	"github.com/vanschouwen/streakline/internal/fetcher"
	"github.com/vanschouwen/streakline/internal/source"
)

const requestTimeout = 30 * time.Second

type Server struct {
	fetcher *fetcher.Fetcher
	logger  *slog.Logger
}

func New(f *fetcher.Fetcher, logger *slog.Logger) *Server {
	return &Server{fetcher: f, logger: logger}
}

// Router wires up the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/users/{username}/contributions", s.handleContributions).Methods(http.MethodGet)
	api.HandleFunc("/users/{username}/streaks", s.handleStreaks).Methods(http.MethodGet)
	return r
}

// requestID tags every request so log lines can be correlated.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type dayView struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level string `json:"level"`
}

type contributionsView struct {
	Username           string    `json:"username"`
	TotalContributions int       `json:"total_contributions"`
	FetchedAt          time.Time `json:"fetched_at"`
	Days               []dayView `json:"days"`
	Stale              bool      `json:"stale,omitempty"`
	Error              string    `json:"error,omitempty"`
}

type streaksView struct {
	Username           string    `json:"username"`
	CurrentStreak      int       `json:"current_streak"`
	LongestStreak      int       `json:"longest_streak"`
	TotalContributions int       `json:"total_contributions"`
	FetchedAt          time.Time `json:"fetched_at"`
	Stale              bool      `json:"stale,omitempty"`
	Error              string    `json:"error,omitempty"`
}

func (s *Server) fetch(r *http.Request) (*contrib.Snapshot, error) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	username := mux.Vars(r)["username"]
	force := r.URL.Query().Get("force") == "1"
	return s.fetcher.Fetch(ctx, username, force)
}

func (s *Server) handleContributions(w http.ResponseWriter, r *http.Request) {
	snap, err := s.fetch(r)
	if snap == nil {
		s.writeError(w, r, err)
		return
	}

	max := snap.MaxCount()
	view := contributionsView{
		Username:           snap.Username,
		TotalContributions: snap.TotalContributions,
		FetchedAt:          snap.FetchedAt,
		Days:               make([]dayView, 0, len(snap.Days)),
	}
	for _, week := range snap.Weeks() {
		for _, d := range week {
			view.Days = append(view.Days, dayView{
				Date:  d.Date.Format("2006-01-02"),
				Count: d.Count,
				Level: contrib.RelativeLevel(d.Count, max).String(),
			})
		}
	}
	if err != nil {
		view.Stale = true
		view.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	snap, err := s.fetch(r)
	if snap == nil {
		s.writeError(w, r, err)
		return
	}

	view := streaksView{
		Username:           snap.Username,
		CurrentStreak:      snap.CurrentStreak(time.Now()),
		LongestStreak:      snap.LongestStreak(),
		TotalContributions: snap.TotalContributions,
		FetchedAt:          snap.FetchedAt,
	}
	if err != nil {
		view.Stale = true
		view.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, fetcher.ErrInvalidUsername):
		status = http.StatusBadRequest
	case errors.Is(err, fetcher.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, fetcher.ErrRateLimited):
		status = http.StatusTooManyRequests
	}

	var netErr *source.NetworkError
	if errors.As(err, &netErr) {
		status = http.StatusBadGateway
	}

	s.logger.Error("request failed",
		"path", r.URL.Path,
		"status", status,
		"request_id", w.Header().Get("X-Request-Id"),
		"error", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
