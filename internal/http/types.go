package http

import (
	"net/http"

	"github.com/perkola/ty-fighter/internal/config"
	"github.com/perkola/ty-fighter/internal/identity"
	"github.com/perkola/ty-fighter/internal/metrics"
	"github.com/perkola/ty-fighter/internal/stats"
	"github.com/perkola/ty-fighter/internal/ws"
)

type Server struct {
	Identity       identity.Store
	Stats          stats.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Hub            *ws.Hub
	Cfg            config.Config
	Router         *http.ServeMux
}
