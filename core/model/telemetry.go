package model

import "fmt"

// TelemetryRecord describes one vehicle's telemetry snapshot as submitted by
// the fleet. Field names on the wire follow the fleet telemetry schema, which
// keeps column naming from the training dataset.
type TelemetryRecord struct {
	VehicleID       string  `json:"Vehicle_ID"`
	FleetID         string  `json:"Fleet_ID,omitempty"`
	BatteryVoltage  float64 `json:"Battery_Voltage_V"`
	BatteryCurrent  float64 `json:"Battery_Current_A"`
	BatteryTempC    float64 `json:"Battery_Temperature_C"`
	AmbientTempC    float64 `json:"Ambient_Temperature_C"`
	SoC             float64 `json:"SOC"`
	ChargeCycles    float64 `json:"Charge_Cycles"`
	OdometerKm      float64 `json:"Odometer_km"`
	ChargingPowerKW float64 `json:"Charging_Power_kW"`
	VehicleAgeYears float64 `json:"Vehicle_Age_Years"`
}

// Validate checks the record against the telemetry schema before it is handed
// to a predictor. Records are immutable once received.
func (r TelemetryRecord) Validate() error {
	if r.VehicleID == "" {
		return fmt.Errorf("Vehicle_ID is required")
	}
	if r.SoC < 0 || r.SoC > 1 {
		return fmt.Errorf("SOC must be within [0,1], got %v", r.SoC)
	}
	if r.BatteryVoltage <= 0 {
		return fmt.Errorf("Battery_Voltage_V must be positive, got %v", r.BatteryVoltage)
	}
	if r.BatteryTempC < -40 || r.BatteryTempC > 120 {
		return fmt.Errorf("Battery_Temperature_C out of range: %v", r.BatteryTempC)
	}
	if r.ChargeCycles < 0 {
		return fmt.Errorf("Charge_Cycles must not be negative, got %v", r.ChargeCycles)
	}
	if r.OdometerKm < 0 {
		return fmt.Errorf("Odometer_km must not be negative, got %v", r.OdometerKm)
	}
	if r.VehicleAgeYears < 0 {
		return fmt.Errorf("Vehicle_Age_Years must not be negative, got %v", r.VehicleAgeYears)
	}
	return nil
}

// Features returns the record's numeric features keyed by telemetry column
// name. The vehicle and fleet identifiers are not features.
func (r TelemetryRecord) Features() map[string]float64 {
	return map[string]float64{
		"Battery_Voltage_V":     r.BatteryVoltage,
		"Battery_Current_A":     r.BatteryCurrent,
		"Battery_Temperature_C": r.BatteryTempC,
		"Ambient_Temperature_C": r.AmbientTempC,
		"SOC":                   r.SoC,
		"Charge_Cycles":         r.ChargeCycles,
		"Odometer_km":           r.OdometerKm,
		"Charging_Power_kW":     r.ChargingPowerKW,
		"Vehicle_Age_Years":     r.VehicleAgeYears,
	}
}
