package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/digits/internal/digits/store"
	"github.com/aussiebroadwan/digits/pkg/digitsdk"
	"github.com/aussiebroadwan/digits/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning status, uptime and version. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	digitsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, digitsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database and, when configured, the redis session store.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	digitsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	digitsdk.HealthResponse	"service not ready"
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store, sessions Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &digitsdk.HealthChecks{Database: "ok", Sessions: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if sessions != nil {
			if err := sessions.Ping(r.Context()); err != nil {
				checks.Sessions = "error: " + err.Error()
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		httpx.WriteJSON(w, code, digitsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
