// Package respond contains small helpers shared by the API handlers.
package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON error envelope returned by every failing endpoint.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a structured error body with a human-readable detail string.
func Error(w http.ResponseWriter, code int, detail string) {
	JSON(w, code, ErrorBody{Detail: detail})
}
