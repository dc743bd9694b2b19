package httpapi

import (
	"net/http"

	"github.com/riskibarqy/segment-leaderboard/internal/platform/metrics"
)

type routeRegistrar struct {
	mux     *http.ServeMux
	metrics *metrics.Metrics
}

func (r routeRegistrar) handle(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, instrumentRoute(r.metrics, pattern, h))
}

func registerSystemRoutes(routes routeRegistrar, handler *Handler, m *metrics.Metrics) {
	routes.mux.HandleFunc("GET /healthz", handler.Healthz)
	if m != nil {
		routes.mux.Handle("GET /metrics", m.Handler())
	}
}

func registerPageRoutes(routes routeRegistrar, handler *Handler) {
	routes.handle("GET /{$}", handler.Welcome)
	routes.handle("GET /times", handler.TimesForm)
	routes.handle("GET /times/{groupID}/{segmentID}", handler.Times)
}

func registerAPIRoutes(routes routeRegistrar, handler *Handler) {
	routes.handle("GET /v1/groups", handler.ListGroups)
	routes.handle("GET /v1/groups/{groupID}", handler.GetGroup)
	routes.handle("GET /v1/groups/{groupID}/segments/{segmentID}/leaderboard", handler.GetLeaderboard)
}
