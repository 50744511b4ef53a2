package client

import (
	"context"
	"net/http"
)

// SimulationService controls the monitoring loop
type SimulationService struct {
	client *Client
}

// Start begins the monitoring loop
func (s *SimulationService) Start(ctx context.Context) (*SimulationStatus, error) {
	var status SimulationStatus
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/simulation/start", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Stop halts the monitoring loop
func (s *SimulationService) Stop(ctx context.Context) (*SimulationStatus, error) {
	var status SimulationStatus
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/simulation/stop", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Status returns the current loop state and sensor fleet
func (s *SimulationService) Status(ctx context.Context) (*SimulationStatus, error) {
	var status SimulationStatus
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/simulation/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// TestAlertRequest injects a synthetic reading. Omitted parameters
// default to mid-range normal values.
type TestAlertRequest struct {
	SensorID   string `json:"sensor_id"`
	Parameters struct {
		PH              *float64 `json:"ph,omitempty"`
		Turbidity       *float64 `json:"turbidity,omitempty"`
		TDS             *float64 `json:"tds,omitempty"`
		EColi           *float64 `json:"ecoli,omitempty"`
		Temperature     *float64 `json:"temperature,omitempty"`
		FlowRate        *float64 `json:"flow_rate,omitempty"`
		DissolvedOxygen *float64 `json:"dissolved_oxygen,omitempty"`
	} `json:"parameters"`
	BatteryLevel   *float64 `json:"battery_level,omitempty"`
	SignalStrength *float64 `json:"signal_strength,omitempty"`
	Status         string   `json:"status,omitempty"`
}

// TestAlertResult is the outcome of a synthetic alert injection
type TestAlertResult struct {
	Alert      Alert `json:"alert"`
	Dispatched bool  `json:"dispatched"`
	Recipients int   `json:"recipients"`
}

// TestAlert injects a synthetic reading through the alert pipeline
func (s *SimulationService) TestAlert(ctx context.Context, req TestAlertRequest) (*TestAlertResult, error) {
	var result TestAlertResult
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/simulation/test-alert", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
