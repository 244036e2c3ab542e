package server

import (
	"net/http/httptest"
	"testing"

	"github.com/jyleerahman/fav-nycday-app/internal/config"
)

func newTestServer() *Server {
	return NewServer(config.Config{
		ServerPort:        ":0",
		DirectionsBaseURL: "http://localhost:1",
		GeocodeBaseURL:    "http://localhost:1",
		StaticMapStyle:    "mapbox/streets-v12",
	}, nil, nil)
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestSessionRoutesMounted(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("POST", "/sessions/", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201 status, got %d", resp.StatusCode)
	}
}

func TestMapRouteRequiresEncodedRoute(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("GET", "/api/map", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 without route param, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/map?route=_p~iF~ps%7CU_ulLnnqC", nil)
	resp, err = s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 with route param, got %d", resp.StatusCode)
	}
}
