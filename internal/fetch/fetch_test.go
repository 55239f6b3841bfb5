package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tengjizhang/trs/internal/config"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(config.Config{
		HTTPTimeout: 2 * time.Second,
		UserAgent:   "trs-test/1.0",
	})
}

func TestFetch_ReturnsBodyAndSendsHeaders(t *testing.T) {
	const body = `<rss version="2.0"><channel><title>t</title></channel></rss>`
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	data, err := newTestFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(data) != body {
		t.Fatalf("body = %q", data)
	}
	if gotUA != "trs-test/1.0" {
		t.Fatalf("user agent = %q", gotUA)
	}
	if !strings.Contains(gotAccept, "application/rss+xml") {
		t.Fatalf("accept = %q", gotAccept)
	}
}

func TestFetch_NonSuccessStatusIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher().Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if !strings.Contains(err.Error(), "http 404") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestFetch_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	f := NewFetcher(config.Config{HTTPTimeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := f.Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("fetch did not honor timeout")
	}
}

func TestFetch_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := newTestFetcher().Fetch(context.Background(), url); !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestFetch_OversizedBodyIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := 64
		if r.URL.Path == "/big" {
			n = 65
		}
		_, _ = w.Write([]byte(strings.Repeat("x", n)))
	}))
	defer srv.Close()

	f := newTestFetcher()
	f.maxBody = 64

	data, err := f.Fetch(context.Background(), srv.URL+"/fits")
	if err != nil {
		t.Fatalf("fetch at the cap: %v", err)
	}
	if len(data) != 64 {
		t.Fatalf("body length = %d, want 64", len(data))
	}

	_, err = f.Fetch(context.Background(), srv.URL+"/big")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if !strings.Contains(err.Error(), "exceeds 64 bytes") {
		t.Fatalf("expected size in error, got %v", err)
	}
}
