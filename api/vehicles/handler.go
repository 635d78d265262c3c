// Package vehicles exposes fleet status data collected from past predictions.
package vehicles

import (
	"net/http"

	"github.com/fleetsense/evmaint/api/respond"
	"github.com/fleetsense/evmaint/core/fleetstatus"
)

// NewStatusHandler returns an HTTP handler serving GET /vehicles/status.
func NewStatusHandler(store fleetstatus.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		f := fleetstatus.Filter{
			FleetID: r.URL.Query().Get("fleet_id"),
			Urgency: r.URL.Query().Get("urgency"),
		}
		respond.JSON(w, http.StatusOK, store.List(f))
	})
}
