package location

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "winemap/1.0"
)

// Candidate is one search hit, in the order the service ranked it.
type Candidate struct {
	Name        string
	DisplayName string
	Latitude    float64
	Longitude   float64
	Type        string
	Country     string
}

// NominatimResponse is shaped for the /search API response.
type NominatimResponse []struct {
	PlaceID     int64   `json:"place_id"`
	Licence     string  `json:"licence"`
	OsmType     string  `json:"osm_type"`
	OsmID       int64   `json:"osm_id"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Class       string  `json:"class"`
	Type        string  `json:"type"`
	PlaceRank   int     `json:"place_rank"`
	Importance  float64 `json:"importance"`
	AddressType string  `json:"addresstype"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Address     struct {
		Region      string `json:"region"`
		State       string `json:"state"`
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Client talks to a Nominatim instance.
type Client struct {
	http *resty.Client
}

// NewClient returns a Client for baseURL. Empty arguments fall back to the
// public instance and the default User-Agent. Nominatim rejects requests
// without a User-Agent.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// Search runs a free-text query. An empty result is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	var results NominatimResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":              query,
			"format":         "json",
			"addressdetails": "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("nominatim search %q: %w", query, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("nominatim search %q: unexpected status: %s", query, resp.Status())
	}

	out := make([]Candidate, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("nominatim search %q: bad lat %q: %w", query, r.Lat, err)
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("nominatim search %q: bad lon %q: %w", query, r.Lon, err)
		}
		out = append(out, Candidate{
			Name:        r.Name,
			DisplayName: r.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
			Type:        r.Type,
			Country:     r.Address.Country,
		})
	}
	return out, nil
}
