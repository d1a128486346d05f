package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"bus-track/internal/config"
	"bus-track/internal/journey-service/core/domain/model"
	"bus-track/internal/journey-service/core/ports/driven"
)

// Client talks to a Nominatim-shaped reverse geocoding endpoint. Strictly
// best-effort: callers apply their own timeout per call and substitute a
// placeholder on any error.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ driven.IGeocoder = (*Client)(nil)

func NewClient(cfg *config.Geocoderconfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

func (c *Client) ReverseGeocode(ctx context.Context, coord model.Coordinate) (string, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', 6, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build reverse geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("reverse geocode status %d: %s", resp.StatusCode, string(body))
	}

	var parsed reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}
	return parsed.DisplayName, nil
}
