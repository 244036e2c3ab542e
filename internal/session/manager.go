package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jyleerahman/fav-nycday-app/internal/directions"
	"github.com/jyleerahman/fav-nycday-app/internal/routecodec"
	"github.com/jyleerahman/fav-nycday-app/internal/shared/geo"

	"github.com/google/uuid"
)

const (
	DefaultProfile = "walking"

	deriveTimeout = 15 * time.Second
	sweepInterval = time.Minute
)

// Deriver obtains a route geometry for an ordered coordinate sequence.
// *directions.Client satisfies it.
type Deriver interface {
	GetRoute(ctx context.Context, coords [][2]float64, profile string) (directions.Route, error)
}

// Broadcaster pushes a payload to everyone watching a session.
// *stream.Hub satisfies it.
type Broadcaster interface {
	Broadcast(sessionID string, payload []byte)
}

type state struct {
	profile      string
	waypoints    []Waypoint
	encodedRoute string
	distanceKm   float64
	routeErr     string
	seq          uint64
	touched      time.Time
}

// Manager owns every in-progress authoring session: the ordered waypoint
// sequence, the derived route, and the expiry bookkeeping. Each mutation
// bumps the session's sequence number; a derivation result is applied only
// while its sequence is still the newest, so a slow response for an older
// waypoint set can never overwrite a newer route.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*state

	deriver   Deriver
	broadcast Broadcaster
	ttl       time.Duration
	now       func() time.Time
}

func NewManager(deriver Deriver, broadcast Broadcaster, ttl time.Duration) *Manager {
	m := &Manager{
		sessions:  map[string]*state{},
		deriver:   deriver,
		broadcast: broadcast,
		ttl:       ttl,
		now:       time.Now,
	}
	if ttl > 0 {
		go m.sweep()
	}
	return m
}

// Create opens a fresh session and returns its id.
func (m *Manager) Create() string {
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = &state{profile: DefaultProfile, touched: m.now()}
	m.mu.Unlock()
	return id
}

// Add appends a waypoint to the session sequence and re-derives the route.
func (m *Manager) Add(ctx context.Context, sessionID string, candidate Candidate) (Waypoint, Snapshot) {
	wp := Waypoint{
		ID:   uuid.NewString(),
		Name: candidate.Name,
		Lng:  candidate.Lng,
		Lat:  candidate.Lat,
	}

	m.mu.Lock()
	st := m.ensureLocked(sessionID)
	st.waypoints = append(st.waypoints, wp)
	seq, coords, profile := m.bumpLocked(st)
	m.mu.Unlock()

	m.derive(ctx, sessionID, seq, coords, profile)
	return wp, m.SnapshotOf(sessionID)
}

// Remove deletes the waypoint with the given id; absent ids are a no-op,
// but the route is re-derived either way.
func (m *Manager) Remove(ctx context.Context, sessionID, waypointID string) Snapshot {
	m.mu.Lock()
	st := m.ensureLocked(sessionID)
	for i, wp := range st.waypoints {
		if wp.ID == waypointID {
			st.waypoints = append(st.waypoints[:i], st.waypoints[i+1:]...)
			break
		}
	}
	seq, coords, profile := m.bumpLocked(st)
	m.mu.Unlock()

	m.derive(ctx, sessionID, seq, coords, profile)
	return m.SnapshotOf(sessionID)
}

// Clear empties the session's waypoint sequence and drops the derived route.
func (m *Manager) Clear(sessionID string) Snapshot {
	m.mu.Lock()
	st := m.ensureLocked(sessionID)
	st.waypoints = nil
	m.bumpLocked(st)
	m.mu.Unlock()

	m.publish(sessionID)
	return m.SnapshotOf(sessionID)
}

// SetProfile switches the travel profile and re-derives the route under it.
func (m *Manager) SetProfile(ctx context.Context, sessionID, profile string) (Snapshot, bool) {
	if !directions.Profiles[profile] {
		return Snapshot{}, false
	}

	m.mu.Lock()
	st := m.ensureLocked(sessionID)
	st.profile = profile
	seq, coords, _ := m.bumpLocked(st)
	m.mu.Unlock()

	m.derive(ctx, sessionID, seq, coords, profile)
	return m.SnapshotOf(sessionID), true
}

// List returns a copy of the session's waypoint sequence in order.
func (m *Manager) List(sessionID string) []Waypoint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]Waypoint, len(st.waypoints))
	copy(out, st.waypoints)
	return out
}

// SnapshotOf returns the current view of a session. Unknown sessions come
// back empty with the default profile.
func (m *Manager) SnapshotOf(sessionID string) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.sessions[sessionID]
	if !ok {
		return Snapshot{ID: sessionID, Profile: DefaultProfile}
	}
	waypoints := make([]Waypoint, len(st.waypoints))
	copy(waypoints, st.waypoints)
	return Snapshot{
		ID:           sessionID,
		Profile:      st.profile,
		Waypoints:    waypoints,
		EncodedRoute: st.encodedRoute,
		DistanceKm:   st.distanceKm,
		RouteError:   st.routeErr,
	}
}

// Handoff snapshots the session for post composition without ending it.
func (m *Manager) Handoff(sessionID string) (Draft, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.sessions[sessionID]
	if !ok {
		return Draft{}, false
	}
	waypoints := make([]Waypoint, len(st.waypoints))
	copy(waypoints, st.waypoints)
	return Draft{Waypoints: waypoints, EncodedRoute: st.encodedRoute}, true
}

// End discards a session after its post has been saved or it was abandoned.
func (m *Manager) End(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// ensureLocked returns the session state, creating it lazily. Callers hold mu.
func (m *Manager) ensureLocked(sessionID string) *state {
	st, ok := m.sessions[sessionID]
	if !ok {
		st = &state{profile: DefaultProfile}
		m.sessions[sessionID] = st
	}
	return st
}

// bumpLocked advances the sequence number, invalidates the derived route
// when the sequence dropped below two waypoints, and returns what the next
// derivation needs. Callers hold mu.
func (m *Manager) bumpLocked(st *state) (uint64, [][2]float64, string) {
	st.seq++
	st.touched = m.now()
	st.routeErr = ""

	if len(st.waypoints) < 2 {
		st.encodedRoute = ""
		st.distanceKm = 0
		return st.seq, nil, st.profile
	}

	coords := make([][2]float64, len(st.waypoints))
	for i, wp := range st.waypoints {
		coords[i] = [2]float64{wp.Lng, wp.Lat}
	}
	return st.seq, coords, st.profile
}

// derive requests a fresh route when the sequence has at least two members
// and applies the result if no newer mutation happened meanwhile.
func (m *Manager) derive(ctx context.Context, sessionID string, seq uint64, coords [][2]float64, profile string) {
	if len(coords) < 2 {
		m.publish(sessionID)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, deriveTimeout)
	defer cancel()

	route, err := m.deriver.GetRoute(ctx, coords, profile)

	m.mu.Lock()
	st, ok := m.sessions[sessionID]
	if !ok || st.seq != seq {
		// a newer mutation owns the route now; this result is stale
		m.mu.Unlock()
		return
	}
	if err != nil {
		st.encodedRoute = ""
		st.distanceKm = 0
		st.routeErr = err.Error()
		m.mu.Unlock()
		return
	}
	st.encodedRoute = routecodec.Encode(route.Geometry)
	if route.DistanceM > 0 {
		st.distanceKm = route.DistanceM / 1000
	} else {
		st.distanceKm = geo.PathLengthKm(route.Geometry)
	}
	st.routeErr = ""
	m.mu.Unlock()

	m.publish(sessionID)
}

// publish pushes the latest snapshot to stream watchers so the map overlay
// follows mutations without polling.
func (m *Manager) publish(sessionID string) {
	if m.broadcast == nil {
		return
	}
	payload, err := json.Marshal(m.SnapshotOf(sessionID))
	if err != nil {
		return
	}
	m.broadcast.Broadcast(sessionID, payload)
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		m.sweepOnce()
	}
}

func (m *Manager) sweepOnce() {
	cutoff := m.now().Add(-m.ttl)
	m.mu.Lock()
	for id, st := range m.sessions {
		if st.touched.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
}
