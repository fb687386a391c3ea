// internal/noaa/tide_client.go

// Package noaa talks to the NOAA CO-OPS tide APIs.
package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Station describes a tide-monitoring station as returned by the NOAA
// metadata API.
type Station struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// Prediction is a single high/low tide event. Values are kept as the API
// returns them; callers format, never re-sort.
type Prediction struct {
	Time   string `json:"t"`
	Height string `json:"v"`
	Type   string `json:"type"` // "H" or "L"
}

// Client fetches station metadata and tide predictions from NOAA.
type Client struct {
	PredictionsURL string
	MetadataURL    string
	HTTPClient     *http.Client
}

// NewClient initializes a Client against the given NOAA endpoints.
func NewClient(predictionsURL, metadataURL string) *Client {
	return &Client{
		PredictionsURL: predictionsURL,
		MetadataURL:    metadataURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type stationMetadataResponse struct {
	Stations []Station `json:"stations"`
}

// GetStationMetadata resolves a station ID to its metadata record.
func (c *Client) GetStationMetadata(ctx context.Context, stationID string) (*Station, error) {
	requestURL := fmt.Sprintf("%s/stations/%s.json", c.MetadataURL, stationID)

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create station metadata request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch station metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("station metadata API returned status %d", resp.StatusCode)
	}

	var metadata stationMetadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode station metadata: %w", err)
	}

	if len(metadata.Stations) == 0 {
		return nil, fmt.Errorf("no station record for %s", stationID)
	}

	return &metadata.Stations[0], nil
}

type predictionsResponse struct {
	Predictions []Prediction `json:"predictions"`
}

// GetTidePredictions retrieves high/low tide predictions for a date range.
func (c *Client) GetTidePredictions(ctx context.Context, stationID string, startDate, endDate time.Time) ([]Prediction, error) {
	params := url.Values{}
	params.Add("station", stationID)
	params.Add("begin_date", startDate.Format("20060102"))
	params.Add("end_date", endDate.Format("20060102"))
	params.Add("product", "predictions")
	params.Add("datum", "MLLW")        // Mean Lower Low Water
	params.Add("units", "english")     // Feet
	params.Add("time_zone", "lst_ldt") // Local standard/daylight time
	params.Add("interval", "hilo")     // High and low tides only
	params.Add("format", "json")

	requestURL := fmt.Sprintf("%s?%s", c.PredictionsURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create predictions request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tide predictions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("predictions API returned status %d", resp.StatusCode)
	}

	var predictions predictionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&predictions); err != nil {
		return nil, fmt.Errorf("failed to decode predictions: %w", err)
	}

	if predictions.Predictions == nil {
		return nil, fmt.Errorf("predictions missing from response for station %s", stationID)
	}

	return predictions.Predictions, nil
}
