// Package fetch resolves remote image sources into in-memory byte buffers.
package fetch

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxImageBytes caps how much of a remote body is read into memory.
const maxImageBytes = 50 * 1024 * 1024

// Fetcher retrieves image bytes from remote URLs and data URLs.
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch resolves a source URL to its raw bytes. Data URLs are decoded in
// place without any network round trip; everything else is fetched over
// HTTP(S) into memory.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "data:") {
		return decodeDataURL(rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", maxImageBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image URL returned an empty body")
	}

	return data, nil
}

func decodeDataURL(rawURL string) ([]byte, error) {
	comma := strings.IndexByte(rawURL, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URL: no payload separator")
	}
	meta, payload := rawURL[len("data:"):comma], rawURL[comma+1:]

	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode data URL payload: %w", err)
		}
		return data, nil
	}

	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape data URL payload: %w", err)
	}
	return []byte(decoded), nil
}
