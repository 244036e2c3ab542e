package post

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jyleerahman/fav-nycday-app/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

type fakeRouteSource struct {
	drafts map[string]session.Draft
	ended  []string
}

func (f *fakeRouteSource) Handoff(sessionID string) (session.Draft, bool) {
	d, ok := f.drafts[sessionID]
	return d, ok
}

func (f *fakeRouteSource) End(sessionID string) {
	f.ended = append(f.ended, sessionID)
}

func newPostApp(t *testing.T, mock pgxmock.PgxPoolIface, routes RouteSource) *fiber.App {
	t.Helper()
	app := fiber.New()
	RegisterRoutes(app.Group("/posts"), NewRepository(mock), routes)
	return app
}

func TestCreatePostFromSession(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs(pgxmock.AnyArg(), "Sunny Williamsburg day", "content", "encoded-route",
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "jy").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	routes := &fakeRouteSource{drafts: map[string]session.Draft{
		"sess-1": {
			Waypoints: []session.Waypoint{
				{ID: "w1", Name: "Domino Park", Lng: -73.9667, Lat: 40.7143},
				{ID: "w2", Name: "Canal St", Lng: -74.0004, Lat: 40.7185},
			},
			EncodedRoute: "encoded-route",
		},
	}}
	app := newPostApp(t, mock, routes)

	body, _ := json.Marshal(createRequest{
		SessionID:   "sess-1",
		Title:       "Sunny Williamsburg day",
		Content:     "content",
		WeatherTags: []string{"sunny"},
		MoodTags:    []string{"happy"},
		CreatedBy:   "jy",
	})
	req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v %d", err, resp.StatusCode)
	}

	var saved Post
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.RouteGeometry != "encoded-route" || len(saved.Waypoints) != 2 {
		t.Fatalf("expected session snapshot on post: %+v", saved)
	}
	if len(routes.ended) != 1 || routes.ended[0] != "sess-1" {
		t.Fatalf("expected session ended after save")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreatePostUnknownSession(t *testing.T) {
	app := newPostApp(t, nil, &fakeRouteSource{drafts: map[string]session.Draft{}})

	body, _ := json.Marshal(createRequest{SessionID: "missing", Title: "t"})
	req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCreatePostUnknownTag(t *testing.T) {
	app := newPostApp(t, nil, &fakeRouteSource{})

	body, _ := json.Marshal(createRequest{Title: "t", WeatherTags: []string{"hailstorm"}})
	req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown weather tag, got %d", resp.StatusCode)
	}

	body, _ = json.Marshal(createRequest{Title: "t", MoodTags: []string{"bored"}})
	req = httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown mood tag, got %d", resp.StatusCode)
	}
}

func TestCreatePostSaveFailureKeepsSession(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO posts`).WillReturnError(errStore)

	routes := &fakeRouteSource{drafts: map[string]session.Draft{
		"sess-1": {EncodedRoute: "abc"},
	}}
	app := newPostApp(t, mock, routes)

	body, _ := json.Marshal(createRequest{SessionID: "sess-1", Title: "t"})
	req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if len(routes.ended) != 0 {
		t.Fatalf("session must survive a failed save")
	}
}

func TestListPostsHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, title, content`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "route_geometry", "waypoints", "weather_tags", "mood_tags", "created_by", "created_at"}).
			AddRow("post-1", "A", "first", "", []byte(`[]`), []byte(`[]`), []byte(`[]`), "", time.Now()))

	app := newPostApp(t, mock, &fakeRouteSource{})
	req := httptest.NewRequest(http.MethodGet, "/posts/", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	var posts []Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "post-1" {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}
