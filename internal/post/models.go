package post

import (
	"time"

	"github.com/jyleerahman/fav-nycday-app/internal/session"
)

// Post is a saved journal entry. Posts are append-only: there is no edit or
// delete path. Waypoints, when present, are the traversal-ordered snapshot
// taken from the authoring session; RouteGeometry is the encoded polyline
// derived from that same sequence, and may be empty when derivation failed
// before the save.
type Post struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	RouteGeometry string             `json:"route_geometry,omitempty"`
	Waypoints     []session.Waypoint `json:"waypoints"`
	WeatherTags   []string           `json:"weather_tags"`
	MoodTags      []string           `json:"mood_tags"`
	CreatedBy     string             `json:"created_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Draft is what the composition view hands to the repository. The store
// assigns id and created_at.
type Draft struct {
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	RouteGeometry string             `json:"route_geometry"`
	Waypoints     []session.Waypoint `json:"waypoints"`
	WeatherTags   []string           `json:"weather_tags"`
	MoodTags      []string           `json:"mood_tags"`
	CreatedBy     string             `json:"created_by"`
}

// Closed tag vocabularies. Unknown values are rejected at the handler
// boundary; the repository itself stays permissive.
var WeatherTags = map[string]bool{
	"sunny":  true,
	"cloudy": true,
	"rainy":  true,
	"snowy":  true,
	"windy":  true,
	"foggy":  true,
}

var MoodTags = map[string]bool{
	"happy":       true,
	"calm":        true,
	"nostalgic":   true,
	"adventurous": true,
	"tired":       true,
	"romantic":    true,
}

func validTags(tags []string, vocab map[string]bool) bool {
	for _, tag := range tags {
		if !vocab[tag] {
			return false
		}
	}
	return true
}
