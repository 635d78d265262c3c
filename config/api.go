package config

import "fmt"

// APIConfig defines the HTTP listener settings.
type APIConfig struct {
	// Addr is the listen address of the API server.
	Addr string `json:"addr"`
	// CORSOrigin is the single origin allowed to make cross-origin requests.
	// Leave empty to disable CORS headers.
	CORSOrigin string `json:"cors_origin"`
	// ShutdownTimeoutSeconds bounds the graceful shutdown on exit.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ShutdownTimeoutSeconds == 0 {
		c.ShutdownTimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c APIConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("shutdown_timeout_seconds must not be negative")
	}
	return nil
}
