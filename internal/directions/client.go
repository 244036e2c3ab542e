package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	requestTimeout = 10 * time.Second
	cacheTTL       = 5 * time.Minute
)

// Profiles accepted by the directions provider.
var Profiles = map[string]bool{
	"walking": true,
	"cycling": true,
	"driving": true,
}

// RouteError reports a failed directions lookup. The upstream status and
// message are preserved for diagnostics; the access token never is.
type RouteError struct {
	Status  int
	Message string
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("directions: upstream status %d: %s", e.Status, e.Message)
}

// Route is the best alternative returned by the provider.
type Route struct {
	Geometry  [][2]float64 `json:"geometry"`
	DistanceM float64      `json:"distance_m"`
	DurationS float64      `json:"duration_s"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	cache   *redis.Client
}

// NewClient builds a directions client. cache may be nil, in which case
// responses are not cached.
func NewClient(baseURL, token string, cache *redis.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
		cache:   cache,
	}
}

// upstream response, trimmed to the fields the app reads
type upstreamResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// GetRoute requests a route connecting coords in order under the given
// profile and returns the first alternative. Callers guarantee len(coords) >= 2.
func (c *Client) GetRoute(ctx context.Context, coords [][2]float64, profile string) (Route, error) {
	if !Profiles[profile] {
		return Route{}, &RouteError{Status: http.StatusBadRequest, Message: "unknown profile " + profile}
	}

	path := FormatCoords(coords)
	body, err := c.fetch(ctx, profile, path)
	if err != nil {
		return Route{}, err
	}

	var parsed upstreamResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Route{}, &RouteError{Status: http.StatusBadGateway, Message: "malformed upstream body"}
	}
	if len(parsed.Routes) == 0 {
		msg := parsed.Message
		if msg == "" {
			msg = "no route found"
		}
		return Route{}, &RouteError{Status: http.StatusBadGateway, Message: msg}
	}

	best := parsed.Routes[0]
	return Route{
		Geometry:  best.Geometry.Coordinates,
		DistanceM: best.Distance,
		DurationS: best.Duration,
	}, nil
}

// fetch returns the raw upstream body for profile+path, consulting the
// redis cache first.
func (c *Client) fetch(ctx context.Context, profile, path string) ([]byte, error) {
	key := cacheKey(profile, path)
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key).Bytes(); err == nil {
			return cached, nil
		}
	}

	// path holds only digits, '-', '.', ',' and ';' so it needs no escaping
	reqURL := fmt.Sprintf("%s/%s/%s?geometries=geojson&steps=true&alternatives=false&access_token=%s",
		c.baseURL, profile, path, url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &RouteError{Status: http.StatusInternalServerError, Message: redactToken(err.Error(), c.token)}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RouteError{Status: http.StatusBadGateway, Message: redactToken(err.Error(), c.token)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RouteError{Status: http.StatusBadGateway, Message: "reading upstream body failed"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("directions upstream returned %d for profile %s", resp.StatusCode, profile)
		return nil, &RouteError{Status: resp.StatusCode, Message: strings.TrimSpace(redactToken(string(body), c.token))}
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, cacheTTL).Err(); err != nil {
			log.Printf("directions cache set error: %v", err)
		}
	}
	return body, nil
}

// FormatCoords renders coords as the provider's semicolon-separated
// "lng,lat" path segment.
func FormatCoords(coords [][2]float64) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = fmt.Sprintf("%g,%g", c[0], c[1])
	}
	return strings.Join(parts, ";")
}

func cacheKey(profile, path string) string {
	return "directions:" + profile + ":" + path
}

func redactToken(s, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "[redacted]")
}

// IsRouteError reports whether err is a directions lookup failure.
func IsRouteError(err error) bool {
	var re *RouteError
	return errors.As(err, &re)
}
