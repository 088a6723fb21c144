package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func robotsServer(t *testing.T, robots string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, robots)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><title>Page</title></html>`)
	})
	return httptest.NewServer(mux)
}

func TestFetchRobotsDenied(t *testing.T) {
	srv := robotsServer(t, "User-agent: *\nDisallow: /private/\n")
	defer srv.Close()

	cfg := testConfig()
	cfg.RespectRobots = true
	f := New(cfg)

	_, err := f.Fetch(context.Background(), srv.URL+"/private/page")

	var fe *Error
	if !errors.As(err, &fe) || fe.Kind != KindRobotsDenied {
		t.Fatalf("expected robots_denied error, got %v", err)
	}
}

func TestFetchRobotsAllowed(t *testing.T) {
	srv := robotsServer(t, "User-agent: *\nDisallow: /private/\n")
	defer srv.Close()

	cfg := testConfig()
	cfg.RespectRobots = true
	f := New(cfg)

	if _, err := f.Fetch(context.Background(), srv.URL+"/public"); err != nil {
		t.Fatalf("expected public path allowed, got %v", err)
	}
}

func TestFetchRobotsMissingFailsOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><title>Page</title></html>`)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.RespectRobots = true
	f := New(cfg)

	if _, err := f.Fetch(context.Background(), srv.URL+"/anything"); err != nil {
		t.Fatalf("expected missing robots.txt to fail open, got %v", err)
	}
}

func TestFetchRobotsIgnoredWhenDisabled(t *testing.T) {
	srv := robotsServer(t, "User-agent: *\nDisallow: /\n")
	defer srv.Close()

	f := New(testConfig())
	if _, err := f.Fetch(context.Background(), srv.URL+"/private/page"); err != nil {
		t.Fatalf("expected robots ignored when disabled, got %v", err)
	}
}
