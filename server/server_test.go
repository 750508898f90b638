package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/onnwee/mute-sentinel/monitor"
	"github.com/onnwee/mute-sentinel/telemetry"
)

type stubPlatform struct{}

func (stubPlatform) FindVoiceMember(string) (monitor.Member, bool) { return monitor.Member{}, false }
func (stubPlatform) Disconnect(context.Context, string, string) error {
	return nil
}

func newTestMonitor(t *testing.T) *monitor.Monitor {
	t.Helper()
	telemetry.Init()
	settings, err := monitor.NewSettings(30*time.Minute, time.Second)
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	return monitor.New(monitor.NewTracker(), settings, stubPlatform{})
}

func TestHealthEndpoints(t *testing.T) {
	srv := httptest.NewServer(NewMux(newTestMonitor(t)))
	defer srv.Close()

	for _, path := range []string{"/health", "/healthz"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
		if string(body) != "ok" {
			t.Errorf("GET %s body = %q, want ok", path, body)
		}
		if resp.Header.Get("X-Correlation-ID") == "" {
			t.Errorf("GET %s missing X-Correlation-ID header", path)
		}
	}
}

func TestStatusEndpoint(t *testing.T) {
	mon := newTestMonitor(t)
	mon.Tracker().MarkMuted("user-1", time.Now().Add(-10*time.Minute))

	srv := httptest.NewServer(NewMux(mon))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out["status"] != "ok" {
		t.Errorf("status field = %v, want ok", out["status"])
	}
	if got := out["tracked_muted"].(float64); got != 1 {
		t.Errorf("tracked_muted = %v, want 1", got)
	}
	if got := out["mute_timeout_minutes"].(float64); got != 30 {
		t.Errorf("mute_timeout_minutes = %v, want 30", got)
	}
	if got := out["check_interval_seconds"].(float64); got != 1 {
		t.Errorf("check_interval_seconds = %v, want 1", got)
	}
}

func TestStatusRejectsNonGet(t *testing.T) {
	srv := httptest.NewServer(NewMux(newTestMonitor(t)))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/status", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := httptest.NewServer(NewMux(newTestMonitor(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "mute_reconcile_passes_total") {
		t.Error("metrics output missing mute_reconcile_passes_total")
	}
}
