// Package geocode resolves free-text search input into named waypoint
// candidates through the forward-geocoding provider.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const requestTimeout = 10 * time.Second

// Place is a geocoding result: a label plus a [lng,lat] position.
type Place struct {
	Name string  `json:"name"`
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

type upstreamResponse struct {
	Features []struct {
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Forward resolves query into candidate places, best match first. Features
// without a name come back labelled "untitled".
func (c *Client) Forward(ctx context.Context, query string) ([]Place, error) {
	reqURL := fmt.Sprintf("%s/forward?q=%s&access_token=%s",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: %s", redactToken(err.Error(), c.token))
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: %s", redactToken(err.Error(), c.token))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("geocode: reading upstream body failed")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocode: upstream status %d: %s",
			resp.StatusCode, strings.TrimSpace(redactToken(string(body), c.token)))
	}

	var parsed upstreamResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("geocode: malformed upstream body")
	}

	places := make([]Place, 0, len(parsed.Features))
	for _, f := range parsed.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		name := f.Properties.Name
		if name == "" {
			name = "untitled"
		}
		places = append(places, Place{
			Name: name,
			Lng:  f.Geometry.Coordinates[0],
			Lat:  f.Geometry.Coordinates[1],
		})
	}
	return places, nil
}

func redactToken(s, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "[redacted]")
}
