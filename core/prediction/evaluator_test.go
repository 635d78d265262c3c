package prediction

import (
	"errors"
	"testing"
	"time"

	"github.com/fleetsense/evmaint/core/fleetstatus"
	coremetrics "github.com/fleetsense/evmaint/core/metrics"
	"github.com/fleetsense/evmaint/core/model"
	"github.com/fleetsense/evmaint/internal/eventbus"
)

type captureSink struct {
	samples []coremetrics.PredictionSample
	fleet   int
}

func (c *captureSink) RecordPrediction(s coremetrics.PredictionSample) error {
	c.samples = append(c.samples, s)
	return nil
}

func (c *captureSink) RecordFleetSize(n int) error {
	c.fleet = n
	return nil
}

func record() model.TelemetryRecord {
	return model.TelemetryRecord{VehicleID: "EV-1", FleetID: "f1", BatteryVoltage: 400, SoC: 0.8}
}

func TestEvaluateSuccessUpdatesStoreAndSink(t *testing.T) {
	store := fleetstatus.NewMemoryStore()
	sink := &captureSink{}
	ev := NewEvaluator(MockPredictor{}, store, sink, nil, nil)
	res, err := ev.Evaluate(record(), "http")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Status != "success" {
		t.Fatalf("status %s", res.Status)
	}
	if len(sink.samples) != 1 || sink.samples[0].Status != "success" {
		t.Fatalf("sample not recorded: %#v", sink.samples)
	}
	if sink.fleet != 1 {
		t.Fatalf("fleet size %d", sink.fleet)
	}
	out := store.List(fleetstatus.Filter{})
	if len(out) != 1 || out[0].VehicleID != "EV-1" || out[0].Source != "http" {
		t.Fatalf("store not updated: %#v", out)
	}
}

func TestEvaluateInputErrorClassified(t *testing.T) {
	sink := &captureSink{}
	ev := NewEvaluator(MockPredictor{Err: &InputError{Reason: "bad feature"}}, nil, sink, nil, nil)
	_, err := ev.Evaluate(record(), "http")
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if sink.samples[0].Status != "input_error" {
		t.Fatalf("sample status %s", sink.samples[0].Status)
	}
}

func TestEvaluateUnexpectedErrorClassified(t *testing.T) {
	sink := &captureSink{}
	ev := NewEvaluator(MockPredictor{Err: errors.New("boom")}, nil, sink, nil, nil)
	if _, err := ev.Evaluate(record(), "mqtt"); err == nil {
		t.Fatal("expected error")
	}
	if sink.samples[0].Status != "error" {
		t.Fatalf("sample status %s", sink.samples[0].Status)
	}
}

func TestEvaluatePublishesUrgentAlert(t *testing.T) {
	bus := eventbus.New[Alert]()
	sub := bus.Subscribe()
	urgent := &Result{
		Status:             "success",
		VehicleID:          "EV-1",
		SOH:                0.5,
		SOHStatus:          SOHStatusCritical,
		MaintenanceUrgency: UrgencyUrgent,
	}
	ev := NewEvaluator(MockPredictor{Result: urgent}, nil, nil, bus, nil)
	if _, err := ev.Evaluate(record(), "mqtt"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	select {
	case a := <-sub:
		if a.VehicleID != "EV-1" || a.Result.MaintenanceUrgency != UrgencyUrgent {
			t.Fatalf("bad alert %#v", a)
		}
	case <-time.After(time.Second):
		t.Fatal("no alert published")
	}
}

func TestEvaluateRoutineDoesNotAlert(t *testing.T) {
	bus := eventbus.New[Alert]()
	sub := bus.Subscribe()
	ev := NewEvaluator(MockPredictor{}, nil, nil, bus, nil)
	if _, err := ev.Evaluate(record(), "http"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	select {
	case a := <-sub:
		t.Fatalf("unexpected alert %#v", a)
	default:
	}
}
