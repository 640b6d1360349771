package eodhd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/ratiolens/internal/interfaces"
)

func TestGetEOD_ParsesAndPrefersAdjustedClose(t *testing.T) {
	mockResp := `[
		{"date":"2024-01-02","close":100.0,"adjusted_close":98.5},
		{"date":"2024-01-03","close":101.0,"adjusted_close":0},
		{"date":"bad-date","close":50.0,"adjusted_close":50.0}
	]`

	var capturedPath, capturedQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mockResp))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	points, err := client.GetEOD(context.Background(), "BHP.AU")
	if err != nil {
		t.Fatalf("GetEOD failed: %v", err)
	}

	if capturedPath != "/eod/BHP.AU" {
		t.Errorf("expected path /eod/BHP.AU, got %s", capturedPath)
	}
	if !strings.Contains(capturedQuery, "order=a") {
		t.Errorf("expected ascending order in query, got %s", capturedQuery)
	}
	if !strings.Contains(capturedQuery, "api_token=test-key") {
		t.Errorf("expected api token in query, got %s", capturedQuery)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 points (bad date dropped), got %d", len(points))
	}
	if points[0].Close != 98.5 {
		t.Errorf("expected adjusted close 98.5, got %.2f", points[0].Close)
	}
	// Zero adjusted close falls back to raw close.
	if points[1].Close != 101.0 {
		t.Errorf("expected close 101.0, got %.2f", points[1].Close)
	}
}

func TestGetEOD_DateRange(t *testing.T) {
	var capturedQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	from := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := client.GetEOD(context.Background(), "BHP.AU", interfaces.WithDateRange(from, to))
	if err != nil {
		t.Fatalf("GetEOD failed: %v", err)
	}
	if !strings.Contains(capturedQuery, "from=2019-01-01") || !strings.Contains(capturedQuery, "to=2024-01-01") {
		t.Errorf("expected date range in query, got %s", capturedQuery)
	}
}

func TestGetEOD_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Symbol not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.GetEOD(context.Background(), "NOPE")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if !apiErr.IsNotFound() {
		t.Errorf("expected IsNotFound, got status %d", apiErr.StatusCode)
	}
}

func TestGetDividends_SkipsInvalidRows(t *testing.T) {
	mockResp := `[
		{"date":"2023-03-01","value":0.50},
		{"date":"2023-09-01","value":"0.60"},
		{"date":"2023-12-01","value":0},
		{"date":"2024-01-01","value":"N/A"},
		{"date":"bad","value":1.0}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mockResp))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	dividends, err := client.GetDividends(context.Background(), "BHP.AU", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetDividends failed: %v", err)
	}

	if len(dividends) != 2 {
		t.Fatalf("expected 2 dividends, got %d", len(dividends))
	}
	if dividends[0].Amount != 0.50 {
		t.Errorf("expected 0.50, got %.2f", dividends[0].Amount)
	}
	// Numeric strings parse.
	if dividends[1].Amount != 0.60 {
		t.Errorf("expected 0.60, got %.2f", dividends[1].Amount)
	}
}
