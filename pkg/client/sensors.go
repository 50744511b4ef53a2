package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SensorService handles sensor and reading queries
type SensorService struct {
	client *Client
}

// List retrieves the sensor fleet
func (s *SensorService) List(ctx context.Context) ([]Sensor, error) {
	var sensors []Sensor
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/sensors", nil, &sensors); err != nil {
		return nil, err
	}
	return sensors, nil
}

// Get retrieves a single sensor by ID
func (s *SensorService) Get(ctx context.Context, id string) (*Sensor, error) {
	var sensor Sensor
	path := fmt.Sprintf("/api/v1/sensors/%s", url.PathEscape(id))
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &sensor); err != nil {
		return nil, err
	}
	return &sensor, nil
}

// Readings retrieves recent readings, optionally scoped to one sensor
func (s *SensorService) Readings(ctx context.Context, sensorID string, limit int) ([]Reading, error) {
	query := url.Values{}
	if sensorID != "" {
		query.Set("sensor_id", sensorID)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/v1/readings"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var readings []Reading
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}
