package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nvoss/lighthald/internal/events"
	"github.com/nvoss/lighthald/internal/hal"
	"github.com/nvoss/lighthald/internal/logging"
)

func TestParseFlashMode(t *testing.T) {
	tests := []struct {
		input   string
		want    hal.FlashMode
		wantErr bool
	}{
		{"", hal.FlashNone, false},
		{"none", hal.FlashNone, false},
		{"timed", hal.FlashTimed, false},
		{"hardware", hal.FlashHardware, false},
		{"strobe", hal.FlashNone, true},
	}

	for _, tt := range tests {
		got, err := parseFlashMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFlashMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFlashMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func newTestServer() *Server {
	logger := logging.GetLogger("hal")
	controller := hal.New(hal.NopSink{Logger: logger}, logger)
	return NewServer(&Options{
		Controller: controller,
		EventBus:   events.New(),
	})
}

func TestApplyLightEndpoint(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.mux)
	defer ts.Close()

	body := `{"color": 16711680, "flash": "timed", "flash_on_ms": 500, "flash_off_ms": 500}`
	resp, err := http.Post(ts.URL+"/api/lights/notifications", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
}

func TestApplyUnknownLight(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.mux)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/lights/disco", "application/json", strings.NewReader(`{"color": 1}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestApplyInvalidFlashMode(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.mux)
	defer ts.Close()

	body := `{"color": 1, "flash": "strobe"}`
	resp, err := http.Post(ts.URL+"/api/lights/backlight", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest &&
		resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 400 or 422", resp.StatusCode)
	}
}

func TestListLightsEndpoint(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.mux)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/lights")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestHealthEndpointNoAuth(t *testing.T) {
	server := NewServer(&Options{
		AuthUsername: "admin",
		AuthPassword: "secret",
		Controller:   hal.New(hal.NopSink{}, logging.GetLogger("hal")),
		EventBus:     events.New(),
	})
	ts := httptest.NewServer(server.mux)
	defer ts.Close()

	// Health carries no security requirement, so auth must be skipped
	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Health status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// Protected endpoints reject missing credentials
	resp2, err := http.Get(ts.URL + "/api/lights")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Errorf("Unauthenticated list status = %d, want %d", resp2.StatusCode, http.StatusUnauthorized)
	}
}

func TestBasicAuthAccepted(t *testing.T) {
	server := NewServer(&Options{
		AuthUsername: "admin",
		AuthPassword: "secret",
		Controller:   hal.New(hal.NopSink{}, logging.GetLogger("hal")),
		EventBus:     events.New(),
	})
	ts := httptest.NewServer(server.mux)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/lights", nil)
	req.SetBasicAuth("admin", "secret")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Authenticated list status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
