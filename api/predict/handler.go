// Package predict exposes the maintenance prediction endpoint.
package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fleetsense/evmaint/api/respond"
	"github.com/fleetsense/evmaint/core/logger"
	"github.com/fleetsense/evmaint/core/model"
	"github.com/fleetsense/evmaint/core/prediction"
)

const detailNotLoaded = "Model not loaded. Server may be starting up."

// NewHandler returns an HTTP handler serving POST /predict. The evaluator is
// resolved per request so traffic arriving before startup finishes observes
// the not-loaded state.
func NewHandler(src prediction.Source, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		ev := src.Evaluator()
		if ev == nil {
			respond.Error(w, http.StatusServiceUnavailable, detailNotLoaded)
			return
		}
		var rec model.TelemetryRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			respond.Error(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if err := rec.Validate(); err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Infof("processing prediction for %s", rec.VehicleID)
		res, err := ev.Evaluate(rec, "http")
		if err != nil {
			var inputErr *prediction.InputError
			if errors.As(err, &inputErr) {
				log.Warnf("prediction rejected for %s: %v", rec.VehicleID, err)
				respond.Error(w, http.StatusBadRequest, inputErr.Reason)
				return
			}
			log.Errorf("prediction error for %s: %v", rec.VehicleID, err)
			respond.Error(w, http.StatusInternalServerError, fmt.Sprintf("Prediction failed: %v", err))
			return
		}
		log.Infof("prediction successful for %s", rec.VehicleID)
		respond.JSON(w, http.StatusOK, res)
	})
}
