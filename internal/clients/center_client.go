package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CenterClient fetches display names from the center service. Callers treat
// failures as cosmetic: listings fall back to raw ids.
type CenterClient struct {
	baseURL string
	hc      *http.Client
}

func NewCenterClient(baseURL string) *CenterClient {
	return &CenterClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 5 * time.Second},
	}
}

type centerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Courts []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"courts"`
}

func (c *CenterClient) DisplayNames(ctx context.Context, centerID string) (string, map[string]string, error) {
	url := fmt.Sprintf("%s/v1/centers/%s", c.baseURL, centerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("center service: %s", res.Status)
	}

	var body centerResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", nil, fmt.Errorf("decode center %s: %w", centerID, err)
	}
	courts := make(map[string]string, len(body.Courts))
	for _, ct := range body.Courts {
		courts[ct.ID] = ct.Name
	}
	return body.Name, courts, nil
}
