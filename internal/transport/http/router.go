// Package httptransport is the thin HTTP layer over the domain service.
// Handlers parse and delegate; business rules live in internal/gym.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gymdesk/internal/gym"
	"gymdesk/internal/platform/metrics"
	"gymdesk/internal/platform/middleware"
)

// NewRouter wires the public endpoint surface. Everything except the
// health check sits behind bearer-token authentication; role checks
// happen in the service, not here.
func NewRouter(
	svc *gym.Service,
	validator middleware.TokenValidator,
	logger *slog.Logger,
	m *metrics.Metrics,
	requestTimeout time.Duration,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.Authenticate(validator, logger))

		NewMembersHandler(svc, logger).Register(r)
		NewAttendanceHandler(svc, logger).Register(r)
		NewPaymentsHandler(svc, logger).Register(r)
		NewIdentityHandler(svc, logger).Register(r)
	})

	return r
}
