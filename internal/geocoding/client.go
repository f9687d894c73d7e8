package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrNotFound means the address did not resolve to any location.
	ErrNotFound = errors.New("location not found")
	// ErrDenied means the geocoding request was rejected by the provider.
	ErrDenied = errors.New("geocoding request denied")
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type ClientOptions struct {
	Timeout time.Duration
}

func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout: 7 * time.Second,
	}
}

func NewClient(baseURL, apiKey string, options ...ClientOptions) *Client {
	opts := DefaultClientOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// Geocode resolves an address or place name to coordinates. The first result
// wins when the provider returns several.
func (c *Client) Geocode(ctx context.Context, address string) (*Location, error) {
	reqURL, err := url.Parse(c.baseURL + "/geocode/json")
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("address", address)
	query.Set("key", c.apiKey)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var geocodeResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geocodeResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	switch geocodeResp.Status {
	case StatusOK:
	case StatusZeroResults:
		return nil, ErrNotFound
	case StatusRequestDenied:
		return nil, ErrDenied
	default:
		return nil, fmt.Errorf("geocoding failed with status %q", geocodeResp.Status)
	}

	if len(geocodeResp.Results) == 0 {
		return nil, ErrNotFound
	}

	first := geocodeResp.Results[0]
	return &Location{
		Lat:              first.Geometry.Location.Lat,
		Lng:              first.Geometry.Location.Lng,
		FormattedAddress: first.FormattedAddress,
	}, nil
}
