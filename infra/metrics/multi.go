package metrics

import (
	"errors"

	coremetrics "github.com/fleetsense/evmaint/core/metrics"
)

// MultiSink fans samples out to several sinks. Errors are joined so one
// failing sink does not hide the others.
type MultiSink struct {
	sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a sink writing to all given sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordPrediction(p coremetrics.PredictionSample) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordPrediction(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordFleetSize(size int) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordFleetSize(size); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
