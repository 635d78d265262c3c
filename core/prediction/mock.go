package prediction

import "github.com/fleetsense/evmaint/core/model"

// MockPredictor returns canned results for tests.
type MockPredictor struct {
	Result  *Result
	Err     error
	Columns []string
	Names   ModelNames
}

// Predict returns the configured result or error. When no result is set, a
// healthy success result for the record's vehicle is produced.
func (m MockPredictor) Predict(rec model.TelemetryRecord) (*Result, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &Result{
		Status:             "success",
		VehicleID:          rec.VehicleID,
		SOH:                0.95,
		SOHStatus:          SOHStatusHealthy,
		RULCycles:          800,
		ThermalRisk:        0.1,
		ThermalStatus:      ThermalStatusNormal,
		MaintenanceUrgency: UrgencyRoutine,
		Recommendations:    []string{"No action required"},
	}, nil
}

// FeatureColumns returns the configured columns.
func (m MockPredictor) FeatureColumns() []string { return m.Columns }

// ModelNames returns the configured model names.
func (m MockPredictor) ModelNames() ModelNames { return m.Names }
