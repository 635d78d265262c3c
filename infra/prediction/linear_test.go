package prediction

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	coreprediction "github.com/fleetsense/evmaint/core/prediction"
	"github.com/fleetsense/evmaint/core/model"
)

func loadTestPredictor(t *testing.T) *LinearPredictor {
	t.Helper()
	p, err := Load(Config{ArtifactPath: "testdata/model.json", Version: "1.0.0"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return p
}

func healthyRecord() model.TelemetryRecord {
	return model.TelemetryRecord{
		VehicleID:       "EV-100",
		BatteryVoltage:  398,
		BatteryCurrent:  -10,
		BatteryTempC:    28,
		AmbientTempC:    20,
		SoC:             0.85,
		ChargeCycles:    150,
		OdometerKm:      30000,
		ChargingPowerKW: 7.2,
		VehicleAgeYears: 1.5,
	}
}

func TestLoadExposesArtifactMetadata(t *testing.T) {
	p := loadTestPredictor(t)
	cols := p.FeatureColumns()
	if len(cols) != 9 || cols[0] != "Battery_Voltage_V" || cols[8] != "Vehicle_Age_Years" {
		t.Fatalf("feature columns wrong: %v", cols)
	}
	names := p.ModelNames()
	if names.SOH != "RidgeRegression" || names.Thermal != "GradientBoostingRegressor" {
		t.Fatalf("model names wrong: %+v", names)
	}
}

func TestPredictHealthyVehicle(t *testing.T) {
	p := loadTestPredictor(t)
	res, err := p.Predict(healthyRecord())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Status != "success" || res.VehicleID != "EV-100" {
		t.Fatalf("bad result header: %+v", res)
	}
	if res.SOH < coreprediction.SOHWarning {
		t.Fatalf("expected healthy SOH, got %v", res.SOH)
	}
	if res.SOHStatus != coreprediction.SOHStatusHealthy {
		t.Fatalf("soh status %s", res.SOHStatus)
	}
	if res.ThermalStatus != coreprediction.ThermalStatusNormal {
		t.Fatalf("thermal status %s (risk %v)", res.ThermalStatus, res.ThermalRisk)
	}
	if res.MaintenanceUrgency != coreprediction.UrgencyRoutine {
		t.Fatalf("urgency %s", res.MaintenanceUrgency)
	}
	if res.PredictedAt.IsZero() {
		t.Fatal("missing timestamp")
	}
}

func TestPredictDegradedVehicle(t *testing.T) {
	p := loadTestPredictor(t)
	rec := healthyRecord()
	rec.ChargeCycles = 900
	rec.VehicleAgeYears = 8
	rec.BatteryTempC = 82
	res, err := p.Predict(rec)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.SOHStatus == coreprediction.SOHStatusHealthy {
		t.Fatalf("expected degraded SOH, got %v (%s)", res.SOH, res.SOHStatus)
	}
	if res.ThermalStatus != coreprediction.ThermalStatusDanger {
		t.Fatalf("expected thermal danger, risk %v", res.ThermalRisk)
	}
	if res.MaintenanceUrgency != coreprediction.UrgencyUrgent {
		t.Fatalf("urgency %s", res.MaintenanceUrgency)
	}
	if len(res.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}
}

func TestPredictOutputsClamped(t *testing.T) {
	p := loadTestPredictor(t)
	rec := healthyRecord()
	rec.ChargeCycles = 0
	rec.VehicleAgeYears = 0
	rec.BatteryTempC = 0
	res, err := p.Predict(rec)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.SOH > 1 || res.SOH < 0 || res.ThermalRisk > 1 || res.ThermalRisk < 0 {
		t.Fatalf("outputs not clamped: soh=%v thermal=%v", res.SOH, res.ThermalRisk)
	}
}

func TestLoadFailsFast(t *testing.T) {
	if _, err := Load(Config{ArtifactPath: "testdata/nope.json"}); err == nil {
		t.Fatal("expected error for missing artifact")
	}

	// Artifact with a column the models carry no coefficient for.
	dir := t.TempDir()
	bad := map[string]any{
		"feature_columns": []string{"SOC", "Unknown_Column"},
		"soh_model": map[string]any{
			"name":         "RidgeRegression",
			"intercept":    1.0,
			"coefficients": map[string]float64{"SOC": 0.1},
		},
		"thermal_model": map[string]any{
			"name":         "RidgeRegression",
			"intercept":    0.0,
			"coefficients": map[string]float64{"SOC": 0.1},
		},
		"soh_loss_per_cycle": 0.001,
	}
	raw, err := json.Marshal(bad)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(Config{ArtifactPath: path}); err == nil {
		t.Fatal("expected error for missing coefficient")
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if cfg.ArtifactPath == "" || cfg.Version == "" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if err := (Config{}).Validate(); err == nil {
		t.Fatal("empty artifact path must be rejected")
	}
}
