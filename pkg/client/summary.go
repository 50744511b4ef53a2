package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// SummaryService handles daily digest operations
type SummaryService struct {
	client *Client
}

// SummaryReport is the digest preview returned by Get
type SummaryReport struct {
	Stats  SummaryStats `json:"stats"`
	Alerts []Alert      `json:"alerts"`
}

// SummaryWindowOptions optionally bounds the digest window. Zero
// fields fall back to the server's default 24 hour window.
type SummaryWindowOptions struct {
	Start time.Time
	End   time.Time
}

func summaryPath(base string, opts *SummaryWindowOptions) string {
	query := url.Values{}
	if opts != nil {
		if !opts.Start.IsZero() {
			query.Set("start", opts.Start.Format(time.RFC3339))
		}
		if !opts.End.IsZero() {
			query.Set("end", opts.End.Format(time.RFC3339))
		}
	}
	if len(query) > 0 {
		base += "?" + query.Encode()
	}
	return base
}

// Get returns digest statistics for the window without sending any email
func (s *SummaryService) Get(ctx context.Context, opts *SummaryWindowOptions) (*SummaryReport, error) {
	var report SummaryReport
	if err := s.client.doRequest(ctx, http.MethodGet, summaryPath("/api/v1/summary", opts), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Send triggers the digest email for the window
func (s *SummaryService) Send(ctx context.Context, opts *SummaryWindowOptions) (*SummaryStats, error) {
	var stats SummaryStats
	if err := s.client.doRequest(ctx, http.MethodPost, summaryPath("/api/v1/summary/send", opts), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
