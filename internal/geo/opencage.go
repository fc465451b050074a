package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/i474232898/arca/internal/resilient"
)

const openCageURL = "https://api.opencagedata.com/geocode/v1/json"

// ErrNoResults is returned when the provider knows nothing about a coordinate.
var ErrNoResults = errors.New("no geocoding results")

// OpenCageClient implements Geocoder using the OpenCage Geocoding API.
type OpenCageClient struct {
	apiKey   string
	baseURL  string
	language string
	client   *resilient.Client
}

// NewOpenCageClient creates the client. An empty baseURL selects the public API.
func NewOpenCageClient(httpClient *http.Client, apiKey, baseURL string, opts ...resilient.Option) *OpenCageClient {
	if baseURL == "" {
		baseURL = openCageURL
	}
	return &OpenCageClient{
		apiKey:   apiKey,
		baseURL:  baseURL,
		language: "en",
		client:   resilient.New("opencage", httpClient, opts...),
	}
}

func (c *OpenCageClient) Name() string {
	return c.client.Name()
}

// ReverseGeocode converts coordinates to a Region. Components the provider
// omits are left empty; Resolve fills them with placeholders.
func (c *OpenCageClient) ReverseGeocode(ctx context.Context, lat, lon float64) (Region, error) {
	if c.apiKey == "" {
		return Region{}, fmt.Errorf("opencage api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		params := url.Values{
			"key":            {c.apiKey},
			"q":              {fmt.Sprintf("%f,%f", lat, lon)},
			"language":       {c.language},
			"limit":          {"1"},
			"no_annotations": {"1"},
		}
		return http.NewRequest(http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	}

	resp, err := c.client.Do(ctx, buildRequest)
	if err != nil {
		return Region{}, fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	var body openCageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Region{}, fmt.Errorf("decode response: %w", err)
	}
	if len(body.Results) == 0 {
		return Region{}, ErrNoResults
	}

	comp := body.Results[0].Components
	return Region{
		Street:       comp.Road,
		Neighborhood: firstNonEmpty(comp.Neighbourhood, comp.Suburb),
		City:         firstNonEmpty(comp.City, comp.Town, comp.Village),
		State:        comp.State,
		Country:      comp.Country,
	}, nil
}

// OpenCage API response types.

type openCageResponse struct {
	Results []openCageResult `json:"results"`
}

type openCageResult struct {
	Components struct {
		Road          string `json:"road"`
		Neighbourhood string `json:"neighbourhood"`
		Suburb        string `json:"suburb"`
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
		State         string `json:"state"`
		Country       string `json:"country"`
	} `json:"components"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
