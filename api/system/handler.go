// Package system exposes the service info endpoints.
package system

import (
	"net/http"
	"time"

	"github.com/fleetsense/evmaint/api/respond"
	"github.com/fleetsense/evmaint/core/prediction"
)

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status       string `json:"status"`
	ModelVersion string `json:"model_version"`
	Timestamp    string `json:"timestamp"`
}

// NewRootHandler serves the static welcome payload.
func NewRootHandler(version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]any{
			"message": "EV Predictive Maintenance",
			"version": version,
			"status":  "running",
			"endpoints": map[string]string{
				"health":     "GET /health",
				"predict":    "POST /predict",
				"model_info": "GET /model/info",
				"fleet":      "GET /vehicles/status",
			},
		})
	})
}

// NewHealthHandler reports liveness. It always succeeds while the process is
// running, regardless of predictor state.
func NewHealthHandler(version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, HealthResponse{
			Status:       "healthy",
			ModelVersion: version,
			Timestamp:    time.Now().Format(time.RFC3339Nano),
		})
	})
}

// NewModelInfoHandler reports the loaded model metadata and the fixed decision
// thresholds. It fails with 503 until the models are loaded.
func NewModelInfoHandler(src prediction.Source, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ev := src.Evaluator()
		if ev == nil {
			respond.Error(w, http.StatusServiceUnavailable, "Models not loaded")
			return
		}
		pred := ev.Predictor()
		respond.JSON(w, http.StatusOK, map[string]any{
			"model_version": version,
			"features":      pred.FeatureColumns(),
			"models":        pred.ModelNames(),
			"thresholds":    prediction.Thresholds(),
		})
	})
}
