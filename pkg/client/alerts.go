package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// AlertService handles alert queries and acknowledgement
type AlertService struct {
	client *Client
}

// AlertListOptions contains options for listing alerts
type AlertListOptions struct {
	Severity string
	SensorID string
	Limit    int
}

// List retrieves recent alerts
func (s *AlertService) List(ctx context.Context, opts *AlertListOptions) ([]Alert, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Severity != "" {
			query.Set("severity", opts.Severity)
		}
		if opts.SensorID != "" {
			query.Set("sensor_id", opts.SensorID)
		}
		if opts.Limit > 0 {
			query.Set("limit", strconv.Itoa(opts.Limit))
		}
	}

	path := "/api/v1/alerts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var alerts []Alert
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// Acknowledge marks an alert as acknowledged
func (s *AlertService) Acknowledge(ctx context.Context, id, who string) (*Alert, error) {
	path := fmt.Sprintf("/api/v1/alerts/%s/ack", url.PathEscape(id))
	body := map[string]string{"acknowledged_by": who}

	var alert Alert
	if err := s.client.doRequest(ctx, http.MethodPut, path, body, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}
