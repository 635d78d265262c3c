package prediction

import "github.com/fleetsense/evmaint/core/model"

// ModelNames reports the type names of the underlying model objects.
type ModelNames struct {
	SOH     string `json:"soh_predictor"`
	Thermal string `json:"thermal_predictor"`
}

// Predictor is the loaded maintenance model. Implementations must be safe for
// concurrent use: the service constructs a single instance at startup and every
// request reads it without locking.
type Predictor interface {
	// Predict runs inference on a validated telemetry record. A non-nil
	// *InputError indicates the predictor rejected the input; any other error
	// is unexpected.
	Predict(rec model.TelemetryRecord) (*Result, error)

	// FeatureColumns returns the ordered feature names the models were
	// trained on.
	FeatureColumns() []string

	// ModelNames returns the reportable names of the SOH and thermal models.
	ModelNames() ModelNames
}

// Source exposes the current evaluator, or nil while the models are not yet
// loaded. Handlers observe either absence or the same fully-loaded instance.
type Source interface {
	Evaluator() *Evaluator
}

// InputError reports that the predictor rejected its input.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }
