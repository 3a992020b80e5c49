package http

import (
	"net/http"

	"github.com/perkola/ty-fighter/internal/config"
	"github.com/perkola/ty-fighter/internal/identity"
	"github.com/perkola/ty-fighter/internal/metrics"
	"github.com/perkola/ty-fighter/internal/stats"
	"github.com/perkola/ty-fighter/internal/ws"
)

func NewServer(identityStore identity.Store, statsStore stats.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, hub *ws.Hub, cfg config.Config) *Server {
	server := &Server{
		Identity:       identityStore,
		Stats:          statsStore,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Hub:            hub,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.HandleFunc("/ws", s.Hub.ServeWS)
	s.Router.Handle("POST /api/users/guest", Chain(s.GuestHandler(), paramsMiddleware, corsMiddleware(s.Cfg.AllowedOrigin)))
	s.Router.Handle("PUT /api/users/{guestId}/theme", Chain(s.ThemeHandler(), paramsMiddleware, corsMiddleware(s.Cfg.AllowedOrigin)))
	s.Router.Handle("GET /api/users/{guestId}/matches", Chain(s.MatchHistoryHandler(), paramsMiddleware, corsMiddleware(s.Cfg.AllowedOrigin)))
	s.Router.Handle("GET /api/users/{guestId}/stats", Chain(s.PlayerStatsHandler(), paramsMiddleware, corsMiddleware(s.Cfg.AllowedOrigin)))
	// Browser preflight requests arrive without a matching method pattern.
	s.Router.Handle("OPTIONS /api/", corsMiddleware(s.Cfg.AllowedOrigin)(http.NotFoundHandler()))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
