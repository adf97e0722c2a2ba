package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/stocktake/internal/inventory/store"
	"github.com/aussiebroadwan/stocktake/pkg/httpx"
	"github.com/aussiebroadwan/stocktake/pkg/inventorysdk"
	"github.com/aussiebroadwan/stocktake/pkg/jwtx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database, the session signing key and, when configured, the event broker.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	inventorysdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	inventorysdk.HealthResponse	"a dependency is not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
	events HealthChecker,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &inventorysdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		degrade := func() {
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			degrade()
		}

		if keys == nil || !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			degrade()
		}

		if events != nil {
			checks.Events = "ok"
			if err := events.HealthCheck(r.Context()); err != nil {
				checks.Events = "error: " + err.Error()
				degrade()
			}
		}

		httpx.WriteJSON(w, statusCode, inventorysdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
