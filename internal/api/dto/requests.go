// Package dto defines the request and response bodies of the HTTP API
package dto

// TestAlertParameters carries the measured values for a synthetic
// reading. Pointers distinguish omitted parameters from zero values.
type TestAlertParameters struct {
	PH              *float64 `json:"ph,omitempty" validate:"omitempty,gte=0,lte=14"`
	Turbidity       *float64 `json:"turbidity,omitempty" validate:"omitempty,gte=0"`
	TDS             *float64 `json:"tds,omitempty" validate:"omitempty,gte=0"`
	EColi           *float64 `json:"ecoli,omitempty" validate:"omitempty,gte=0"`
	Temperature     *float64 `json:"temperature,omitempty"`
	FlowRate        *float64 `json:"flow_rate,omitempty" validate:"omitempty,gte=0"`
	DissolvedOxygen *float64 `json:"dissolved_oxygen,omitempty" validate:"omitempty,gte=0"`
}

// TestAlertRequest injects a synthetic reading through the evaluation
// and notification pipeline
type TestAlertRequest struct {
	SensorID       string              `json:"sensor_id" validate:"required"`
	Parameters     TestAlertParameters `json:"parameters"`
	BatteryLevel   *float64            `json:"battery_level,omitempty" validate:"omitempty,gte=0,lte=100"`
	SignalStrength *float64            `json:"signal_strength,omitempty" validate:"omitempty,gte=0,lte=100"`
	Status         string              `json:"status,omitempty" validate:"omitempty,oneof=online offline"`
}

// AcknowledgeRequest marks an alert as seen by an operator
type AcknowledgeRequest struct {
	AcknowledgedBy string `json:"acknowledged_by" validate:"required"`
}
