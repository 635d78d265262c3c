package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/fleetsense/evmaint/core/metrics"
)

// PromSink records prediction events in Prometheus metrics.
type PromSink struct {
	predictions *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	soh         *prometheus.GaugeVec
	thermal     *prometheus.GaugeVec
	fleet       prometheus.Gauge
}

// NewPromSink registers prediction metrics on the default Prometheus
// registerer. The Prometheus server is started separately.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_total",
		Help: "Total number of prediction requests by outcome",
	}, []string{"status", "urgency", "source"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prediction_latency_seconds",
		Help:    "Model inference latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"status", "source"})
	soh := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_battery_soh",
		Help: "Last predicted state of health per vehicle",
	}, []string{"vehicle_id"})
	thermal := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_thermal_risk",
		Help: "Last predicted thermal risk per vehicle",
	}, []string{"vehicle_id"})
	fleet := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_vehicles_total",
		Help: "Number of vehicles with a recorded prediction",
	})

	if err := reg.Register(predictions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			predictions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(soh); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			soh = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(thermal); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			thermal = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(fleet); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fleet = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{predictions: predictions, latency: latency, soh: soh, thermal: thermal, fleet: fleet}, nil
}

// RecordPrediction increments the outcome counter and observes latency. SOH
// and thermal gauges are only set for successful predictions.
func (s *PromSink) RecordPrediction(p coremetrics.PredictionSample) error {
	s.predictions.WithLabelValues(p.Status, p.Urgency, p.Source).Inc()
	s.latency.WithLabelValues(p.Status, p.Source).Observe(p.Latency.Seconds())
	if p.Status == "success" {
		s.soh.WithLabelValues(p.VehicleID).Set(p.SOH)
		s.thermal.WithLabelValues(p.VehicleID).Set(p.ThermalRisk)
	}
	return nil
}

// RecordFleetSize sets the fleet gauge.
func (s *PromSink) RecordFleetSize(size int) error {
	s.fleet.Set(float64(size))
	return nil
}
