package prediction

import (
	"errors"
	"time"

	"github.com/fleetsense/evmaint/core/fleetstatus"
	"github.com/fleetsense/evmaint/core/logger"
	"github.com/fleetsense/evmaint/core/metrics"
	"github.com/fleetsense/evmaint/core/model"
	"github.com/fleetsense/evmaint/internal/eventbus"
)

// Alert is emitted on the bus whenever a prediction flags urgent maintenance.
type Alert struct {
	VehicleID string  `json:"vehicle_id"`
	FleetID   string  `json:"fleet_id,omitempty"`
	Result    *Result `json:"result"`
}

// Evaluator runs predictions and fans the outcome out to the status store, the
// metric sinks and the alert bus. Both the HTTP handler and the MQTT ingestor
// share one instance.
type Evaluator struct {
	pred   Predictor
	store  fleetstatus.Store
	sink   metrics.MetricsSink
	alerts *eventbus.Bus[Alert]
	log    logger.Logger
}

// NewEvaluator wires an evaluator. Store, sink, alerts and log may be nil for
// callers that only need bare inference.
func NewEvaluator(pred Predictor, store fleetstatus.Store, sink metrics.MetricsSink, alerts *eventbus.Bus[Alert], log logger.Logger) *Evaluator {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Evaluator{pred: pred, store: store, sink: sink, alerts: alerts, log: log}
}

// Predictor returns the wrapped predictor.
func (e *Evaluator) Predictor() Predictor { return e.pred }

// Evaluate validates nothing: callers are expected to have run
// TelemetryRecord.Validate. It forwards the record to the predictor,
// records the outcome and publishes an alert for urgent results.
func (e *Evaluator) Evaluate(rec model.TelemetryRecord, source string) (*Result, error) {
	start := time.Now()
	res, err := e.pred.Predict(rec)
	sample := metrics.PredictionSample{
		VehicleID: rec.VehicleID,
		Latency:   time.Since(start),
		Source:    source,
		At:        start,
	}
	if err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			sample.Status = "input_error"
		} else {
			sample.Status = "error"
		}
		e.record(sample)
		return nil, err
	}
	sample.Status = res.Status
	sample.Urgency = res.MaintenanceUrgency
	sample.SOH = res.SOH
	sample.ThermalRisk = res.ThermalRisk
	e.record(sample)

	if e.store != nil {
		e.store.Set(fleetstatus.VehicleStatus{
			VehicleID:          rec.VehicleID,
			FleetID:            rec.FleetID,
			SOH:                res.SOH,
			SOHStatus:          res.SOHStatus,
			RULCycles:          res.RULCycles,
			ThermalRisk:        res.ThermalRisk,
			ThermalStatus:      res.ThermalStatus,
			MaintenanceUrgency: res.MaintenanceUrgency,
			Source:             source,
			LastSeen:           start,
		})
		if err := e.sink.RecordFleetSize(e.store.Len()); err != nil && e.log != nil {
			e.log.Warnf("record fleet size: %v", err)
		}
	}
	if e.alerts != nil && res.MaintenanceUrgency == UrgencyUrgent {
		e.alerts.Publish(Alert{VehicleID: rec.VehicleID, FleetID: rec.FleetID, Result: res})
	}
	return res, nil
}

func (e *Evaluator) record(s metrics.PredictionSample) {
	if err := e.sink.RecordPrediction(s); err != nil && e.log != nil {
		e.log.Warnf("record prediction sample: %v", err)
	}
}
