// Package inference talks to the remote chest X-ray analysis backend.
package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client posts standardized frames to the inference endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client for the given inference base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Result is the analysis backend's response for a single frame.
type Result struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`

	// Heatmap is an optional base64 PNG localization map at frame size.
	Heatmap string `json:"heatmap,omitempty"`
}

// HeatmapPNG decodes the result's heatmap payload, if present.
func (r *Result) HeatmapPNG() ([]byte, error) {
	if r.Heatmap == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(r.Heatmap)
	if err != nil {
		return nil, fmt.Errorf("failed to decode heatmap payload: %w", err)
	}
	return data, nil
}

// Analyze submits a standardized PNG frame for analysis.
func (c *Client) Analyze(ctx context.Context, framePNG []byte) (*Result, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"image": base64.StdEncoding.EncodeToString(framePNG),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := c.BaseURL + "/v1/analyze"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &result, nil
}
