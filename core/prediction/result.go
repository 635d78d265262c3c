package prediction

import "time"

// Decision thresholds applied to model outputs. These are fixed alongside the
// trained models and reported by the model info endpoint.
const (
	SOHCritical   = 0.60
	SOHWarning    = 0.80
	RULUrgent     = 100
	ThermalDanger = 0.70
)

// SOH classification labels.
const (
	SOHStatusHealthy  = "healthy"
	SOHStatusWarning  = "warning"
	SOHStatusCritical = "critical"
)

// Thermal classification labels.
const (
	ThermalStatusNormal = "normal"
	ThermalStatusDanger = "danger"
)

// Maintenance urgency labels.
const (
	UrgencyRoutine = "routine"
	UrgencySoon    = "soon"
	UrgencyUrgent  = "urgent"
)

// Result is a single prediction outcome, returned verbatim as the response
// body of a successful prediction request.
type Result struct {
	Status             string    `json:"status"`
	VehicleID          string    `json:"vehicle_id"`
	SOH                float64   `json:"soh"`
	SOHStatus          string    `json:"soh_status"`
	RULCycles          float64   `json:"rul_cycles"`
	ThermalRisk        float64   `json:"thermal_risk"`
	ThermalStatus      string    `json:"thermal_status"`
	MaintenanceUrgency string    `json:"maintenance_urgency"`
	Recommendations    []string  `json:"recommendations"`
	PredictedAt        time.Time `json:"predicted_at"`
}

// Thresholds returns the decision threshold table exposed by the model info
// endpoint.
func Thresholds() map[string]float64 {
	return map[string]float64{
		"soh_critical":   SOHCritical,
		"soh_warning":    SOHWarning,
		"rul_urgent":     RULUrgent,
		"thermal_danger": ThermalDanger,
	}
}

// ClassifySOH maps a state-of-health estimate to its status label.
func ClassifySOH(soh float64) string {
	switch {
	case soh < SOHCritical:
		return SOHStatusCritical
	case soh < SOHWarning:
		return SOHStatusWarning
	default:
		return SOHStatusHealthy
	}
}

// ClassifyThermal maps a thermal risk score to its status label.
func ClassifyThermal(risk float64) string {
	if risk >= ThermalDanger {
		return ThermalStatusDanger
	}
	return ThermalStatusNormal
}

// ClassifyUrgency derives the maintenance urgency from the classified outputs.
func ClassifyUrgency(soh, rul, thermalRisk float64) string {
	if soh < SOHCritical || rul < RULUrgent || thermalRisk >= ThermalDanger {
		return UrgencyUrgent
	}
	if soh < SOHWarning {
		return UrgencySoon
	}
	return UrgencyRoutine
}

// Recommendations returns operator guidance for the classified outputs.
func Recommendations(soh, rul, thermalRisk float64) []string {
	var recs []string
	if soh < SOHCritical {
		recs = append(recs, "Battery SOH critical: schedule battery replacement")
	} else if soh < SOHWarning {
		recs = append(recs, "Battery SOH degraded: plan a battery inspection")
	}
	if rul < RULUrgent {
		recs = append(recs, "Remaining useful life below urgent threshold: book service")
	}
	if thermalRisk >= ThermalDanger {
		recs = append(recs, "Thermal risk elevated: check cooling system and reduce fast charging")
	}
	if len(recs) == 0 {
		recs = append(recs, "No action required")
	}
	return recs
}
