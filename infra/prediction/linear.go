// Package prediction loads pre-trained linear maintenance models from disk and
// serves inference for them.
package prediction

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/fleetsense/evmaint/core/model"
	coreprediction "github.com/fleetsense/evmaint/core/prediction"
)

// Config locates the trained model artifacts.
type Config struct {
	// ArtifactPath is the JSON file exported by the training pipeline.
	ArtifactPath string `json:"artifact_path"`
	// Version is the model version string reported by the API.
	Version string `json:"version"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ArtifactPath == "" {
		c.ArtifactPath = "models/ev_maintenance.json"
	}
	if c.Version == "" {
		c.Version = "1.0.0"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.ArtifactPath == "" {
		return fmt.Errorf("artifact_path is required")
	}
	return nil
}

type modelSpec struct {
	Name         string             `json:"name"`
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
}

type artifact struct {
	FeatureColumns  []string  `json:"feature_columns"`
	SOHModel        modelSpec `json:"soh_model"`
	ThermalModel    modelSpec `json:"thermal_model"`
	SOHLossPerCycle float64   `json:"soh_loss_per_cycle"`
}

// LinearPredictor serves the SOH and thermal risk models. It is immutable
// after Load and safe for concurrent use.
type LinearPredictor struct {
	columns      []string
	names        coreprediction.ModelNames
	sohWeights   *mat.VecDense
	sohIntercept float64
	thWeights    *mat.VecDense
	thIntercept  float64
	lossPerCycle float64
}

// Load reads the model artifacts and builds a predictor. Any inconsistency in
// the artifact file is a startup failure.
func Load(cfg Config) (*LinearPredictor, error) {
	raw, err := os.ReadFile(cfg.ArtifactPath)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var art artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if len(art.FeatureColumns) == 0 {
		return nil, fmt.Errorf("model artifact has no feature columns")
	}
	if art.SOHLossPerCycle <= 0 {
		return nil, fmt.Errorf("soh_loss_per_cycle must be positive, got %v", art.SOHLossPerCycle)
	}
	sohW, err := weights(art.SOHModel, art.FeatureColumns)
	if err != nil {
		return nil, fmt.Errorf("soh model: %w", err)
	}
	thW, err := weights(art.ThermalModel, art.FeatureColumns)
	if err != nil {
		return nil, fmt.Errorf("thermal model: %w", err)
	}
	return &LinearPredictor{
		columns:      art.FeatureColumns,
		names:        coreprediction.ModelNames{SOH: art.SOHModel.Name, Thermal: art.ThermalModel.Name},
		sohWeights:   sohW,
		sohIntercept: art.SOHModel.Intercept,
		thWeights:    thW,
		thIntercept:  art.ThermalModel.Intercept,
		lossPerCycle: art.SOHLossPerCycle,
	}, nil
}

func weights(m modelSpec, columns []string) (*mat.VecDense, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("model name is missing")
	}
	w := make([]float64, len(columns))
	for i, col := range columns {
		v, ok := m.Coefficients[col]
		if !ok {
			return nil, fmt.Errorf("coefficient for feature %q is missing", col)
		}
		w[i] = v
	}
	return mat.NewVecDense(len(w), w), nil
}

// FeatureColumns returns the ordered training feature names.
func (p *LinearPredictor) FeatureColumns() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

// ModelNames returns the artifact model names.
func (p *LinearPredictor) ModelNames() coreprediction.ModelNames { return p.names }

// Predict computes the SOH and thermal risk estimates for the record and
// classifies them against the fixed thresholds.
func (p *LinearPredictor) Predict(rec model.TelemetryRecord) (*coreprediction.Result, error) {
	feats := rec.Features()
	vals := make([]float64, len(p.columns))
	for i, col := range p.columns {
		v, ok := feats[col]
		if !ok {
			return nil, &coreprediction.InputError{Reason: fmt.Sprintf("missing feature %q", col)}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &coreprediction.InputError{Reason: fmt.Sprintf("feature %q is not finite", col)}
		}
		vals[i] = v
	}
	x := mat.NewVecDense(len(vals), vals)

	soh := clamp01(mat.Dot(p.sohWeights, x) + p.sohIntercept)
	thermal := clamp01(mat.Dot(p.thWeights, x) + p.thIntercept)
	rul := (soh - coreprediction.SOHCritical) / p.lossPerCycle
	if rul < 0 {
		rul = 0
	}
	rul = math.Round(rul)

	return &coreprediction.Result{
		Status:             "success",
		VehicleID:          rec.VehicleID,
		SOH:                soh,
		SOHStatus:          coreprediction.ClassifySOH(soh),
		RULCycles:          rul,
		ThermalRisk:        thermal,
		ThermalStatus:      coreprediction.ClassifyThermal(thermal),
		MaintenanceUrgency: coreprediction.ClassifyUrgency(soh, rul, thermal),
		Recommendations:    coreprediction.Recommendations(soh, rul, thermal),
		PredictedAt:        time.Now().UTC(),
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
