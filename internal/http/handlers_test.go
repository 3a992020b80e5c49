package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkola/ty-fighter/internal/config"
	"github.com/perkola/ty-fighter/internal/database"
	"github.com/perkola/ty-fighter/internal/game"
	"github.com/perkola/ty-fighter/internal/identity"
	"github.com/perkola/ty-fighter/internal/metrics"
	"github.com/perkola/ty-fighter/internal/stats"
	"github.com/perkola/ty-fighter/internal/texts"
	"github.com/perkola/ty-fighter/internal/ws"
)

func setupServer(t *testing.T) (*Server, *sql.DB) {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)

	m := metrics.NewMock()
	statsStore := stats.New(db)
	orchestrator := game.NewOrchestrator(game.NewStore(), texts.New(db), statsStore, m)
	hub := ws.NewHub(orchestrator, m, "*")

	cfg := config.Config{Port: "8080", AllowedOrigin: "*"}
	server := NewServer(identity.New(db), statsStore, m, http.NotFoundHandler(), hub, cfg)
	return server, db
}

func TestHealthCheckHandler(t *testing.T) {
	server, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestGuestHandler(t *testing.T) {
	server, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users/guest", strings.NewReader(`{"guestId":"g1"}`))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var user identity.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "g1", user.GuestID)
	assert.NotEmpty(t, user.DisplayName)
	assert.Equal(t, identity.DefaultTheme, user.Theme)

	// Bootstrapping again returns the same identity.
	req = httptest.NewRequest(http.MethodPost, "/api/users/guest", strings.NewReader(`{"guestId":"g1"}`))
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var again identity.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &again))
	assert.Equal(t, user.DisplayName, again.DisplayName)
}

func TestGuestHandlerRequiresID(t *testing.T) {
	server, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users/guest", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestThemeHandler(t *testing.T) {
	server, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users/guest", strings.NewReader(`{"guestId":"g1"}`))
	server.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPut, "/api/users/g1/theme", strings.NewReader(`{"theme":"catppuccin"}`))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodPut, "/api/users/nobody/theme", strings.NewReader(`{"theme":"catppuccin"}`))
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMatchHistoryHandler(t *testing.T) {
	server, db := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/g1/matches", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	// With one recorded round the history shows up.
	for _, id := range []string{"g1", "g2"} {
		_, err := db.Exec("INSERT INTO anonymous_users (guest_id, display_name) VALUES (?, ?)", id, id)
		require.NoError(t, err)
	}
	require.NoError(t, server.Stats.RecordMatch(req.Context(), stats.MatchRecord{
		Player1GuestID: "g1", Player2GuestID: "g2", WinnerGuestID: "g1",
		Player1: stats.SideResult{WPM: 72},
		Player2: stats.SideResult{WPM: 65},
	}))

	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users/g1/matches", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var matches []stats.MatchSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "WIN", matches[0].Result)
}

func TestPlayerStatsHandler(t *testing.T) {
	server, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/g1/stats", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var agg stats.Aggregate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &agg))
	assert.Equal(t, "g1", agg.GuestID)
	assert.Zero(t, agg.GamesPlayed)
}

func TestPreflightGetsCORSHeaders(t *testing.T) {
	server, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/users/guest", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
