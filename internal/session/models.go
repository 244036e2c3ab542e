package session

// Waypoint is one stop in the route being authored. Ordering inside a
// session defines traversal order; a waypoint is immutable once added.
type Waypoint struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
}

// Candidate is the upstream-adapter input for a new waypoint.
type Candidate struct {
	Name string  `json:"name"`
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
}

// Snapshot is the read-only view of an authoring session.
type Snapshot struct {
	ID           string     `json:"id"`
	Profile      string     `json:"profile"`
	Waypoints    []Waypoint `json:"waypoints"`
	EncodedRoute string     `json:"encoded_route,omitempty"`
	DistanceKm   float64    `json:"distance_km,omitempty"`
	RouteError   string     `json:"route_error,omitempty"`
}

// Draft is the handoff from an authoring session into post composition.
type Draft struct {
	Waypoints    []Waypoint `json:"waypoints"`
	EncodedRoute string     `json:"encoded_route"`
}
