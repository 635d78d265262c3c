// Package metrics defines the sink interface prediction outcomes are recorded
// to. Concrete exporters live in infra/metrics.
package metrics

import "time"

// PredictionSample captures one prediction outcome for export.
type PredictionSample struct {
	VehicleID   string
	Status      string // success, input_error or error
	Urgency     string
	SOH         float64
	ThermalRisk float64
	Latency     time.Duration
	Source      string // http or mqtt
	At          time.Time
}

// MetricsSink records prediction events and fleet gauges.
type MetricsSink interface {
	RecordPrediction(s PredictionSample) error
	RecordFleetSize(size int) error
}

// NopSink discards all samples.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionSample) error { return nil }
func (NopSink) RecordFleetSize(int) error               { return nil }

// Config selects and configures the enabled sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}
