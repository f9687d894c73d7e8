package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrUnknownStatus means the provider answered with a status outside the
// documented set.
var ErrUnknownStatus = errors.New("unrecognized provider status")

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

// NearbySearch queries the provider for restaurants around the given
// coordinates. The response status is returned as-is; branching on it is the
// caller's concern.
func (c *Client) NearbySearch(ctx context.Context, lat, lng float64, radiusMeters int) (*SearchResponse, error) {
	reqURL, err := url.Parse(c.baseURL + "/place/nearbysearch/json")
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("location", formatLatLng(lat, lng))
	query.Set("radius", strconv.Itoa(radiusMeters))
	query.Set("type", "restaurant")
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

	var searchResponse SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !searchResponse.Status.IsValid() {
		return nil, fmt.Errorf("%w %q", ErrUnknownStatus, searchResponse.Status)
	}

	return &searchResponse, nil
}

// PhotoURL builds a directly renderable URL for a raw photo reference token.
func (c *Client) PhotoURL(reference string, maxWidth int) string {
	query := url.Values{}
	query.Set("maxwidth", strconv.Itoa(maxWidth))
	query.Set("photo_reference", reference)
	query.Set("key", c.apiKey)
	return c.baseURL + "/place/photo?" + query.Encode()
}

func formatLatLng(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
