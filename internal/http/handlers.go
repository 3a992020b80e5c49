package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/perkola/ty-fighter/internal/stats"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

type guestRequest struct {
	GuestID string `json:"guestId"`
}

// GuestHandler bootstraps an anonymous user. The client supplies its own
// opaque guest id; repeated calls return the same row.
func (s *Server) GuestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req guestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GuestID == "" {
			http.Error(w, "guestId is required", http.StatusBadRequest)
			return
		}

		user, err := s.Identity.GetOrCreate(r.Context(), req.GuestID)
		if err != nil {
			log.Error("Failed to bootstrap guest", "guestId", req.GuestID, "error", err)
			http.Error(w, "Failed to bootstrap guest", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func (s *Server) ThemeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guestID := r.PathValue("guestId")

		var req themeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Theme == "" {
			http.Error(w, "theme is required", http.StatusBadRequest)
			return
		}

		if err := s.Identity.UpdateTheme(r.Context(), guestID, req.Theme); err != nil {
			log.Warn("Failed to update theme", "guestId", guestID, "error", err)
			http.Error(w, "Guest not found", http.StatusNotFound)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
	}
}

// MatchHistoryHandler returns the player's recent matches, most recent first.
func (s *Server) MatchHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guestID := r.PathValue("guestId")

		matches, err := s.Stats.PlayerMatches(r.Context(), guestID)
		if err != nil {
			log.Error("Failed to fetch match history", "guestId", guestID, "error", err)
			http.Error(w, "Failed to fetch match history", http.StatusInternalServerError)
			return
		}
		if matches == nil {
			matches = []stats.MatchSummary{}
		}
		respondJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guestID := r.PathValue("guestId")

		agg, err := s.Stats.PlayerAggregate(r.Context(), guestID)
		if err != nil {
			log.Error("Failed to fetch player stats", "guestId", guestID, "error", err)
			http.Error(w, "Failed to fetch player stats", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, agg)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
