package httpapi

import (
	"net/http"

	"github.com/riskibarqy/segment-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/segment-leaderboard/internal/platform/metrics"
)

func NewRouter(
	handler *Handler,
	m *metrics.Metrics,
	logger *logging.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	routes := routeRegistrar{mux: mux, metrics: m}
	registerSystemRoutes(routes, handler, m)
	registerPageRoutes(routes, handler)
	registerAPIRoutes(routes, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}
