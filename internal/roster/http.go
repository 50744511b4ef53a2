package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
)

// HTTPRepository fetches the roster from a district records service
type HTTPRepository struct {
	baseURL string
	client  *http.Client
}

func NewHTTPRepository(baseURL string, timeout time.Duration) *HTTPRepository {
	return &HTTPRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type listResponse struct {
	Success bool                 `json:"success"`
	Data    []*official.Official `json:"data"`
}

// List retrieves officials matching the filter from the remote service
func (r *HTTPRepository) List(ctx context.Context, filter official.Filter) ([]*official.Official, error) {
	endpoint := r.baseURL + "/api/v1/officials"

	q := url.Values{}
	if filter.District != "" {
		q.Set("district", filter.District)
	}
	if filter.Tag != "" {
		q.Set("tag", filter.Tag)
	}
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create roster request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roster request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster service returned status %d", resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode roster response: %w", err)
	}
	return body.Data, nil
}
