// Package api assembles the HTTP surface of the service.
package api

import (
	"net/http"

	"github.com/fleetsense/evmaint/api/predict"
	"github.com/fleetsense/evmaint/api/system"
	"github.com/fleetsense/evmaint/api/vehicles"
	"github.com/fleetsense/evmaint/core/fleetstatus"
	"github.com/fleetsense/evmaint/core/logger"
	"github.com/fleetsense/evmaint/core/prediction"
)

// Deps carries everything the handlers need. Handlers receive their
// dependencies explicitly; no package-level state is involved.
type Deps struct {
	Version    string
	CORSOrigin string
	Source     prediction.Source
	Store      fleetstatus.Store
	Log        logger.Logger
}

// NewRouter builds the API handler tree with CORS and request tagging applied.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", system.NewRootHandler(d.Version))
	mux.Handle("GET /health", system.NewHealthHandler(d.Version))
	mux.Handle("GET /model/info", system.NewModelInfoHandler(d.Source, d.Version))
	mux.Handle("POST /predict", predict.NewHandler(d.Source, d.Log))
	mux.Handle("GET /vehicles/status", vehicles.NewStatusHandler(d.Store))

	var h http.Handler = mux
	h = RequestID(d.Log)(h)
	h = CORS(d.CORSOrigin)(h)
	return h
}
