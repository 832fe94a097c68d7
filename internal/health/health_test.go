package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func performCheck(t *testing.T, handler *Handler) (int, Response) {
	t.Helper()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler.ServeHTTP(recorder, request)

	var resp Response
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return recorder.Code, resp
}

func TestHandler_NoCheckers(t *testing.T) {
	handler := NewHandler("v1.2.3")

	code, resp := performCheck(t, handler)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("expected healthy status, got %s", resp.Status)
	}
	if resp.Version != "v1.2.3" {
		t.Errorf("expected version v1.2.3, got %s", resp.Version)
	}
}

func TestHandler_AllHealthy(t *testing.T) {
	handler := NewHandler("dev")
	handler.RegisterChecker("postgres", PingChecker{
		Name: "postgres",
		Ping: func() error { return nil },
	})

	code, resp := performCheck(t, handler)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	check, ok := resp.Checks["postgres"]
	if !ok {
		t.Fatal("postgres check missing from response")
	}
	if check.Status != StatusHealthy {
		t.Errorf("expected healthy postgres check, got %s", check.Status)
	}
}

func TestHandler_UnhealthyComponent(t *testing.T) {
	handler := NewHandler("dev")
	handler.RegisterChecker("postgres", PingChecker{
		Name: "postgres",
		Ping: func() error { return nil },
	})
	handler.RegisterChecker("broken", PingChecker{
		Name: "broken",
		Ping: func() error { return errors.New("connection refused") },
	})

	code, resp := performCheck(t, handler)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if resp.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy overall status, got %s", resp.Status)
	}
	if resp.Checks["broken"].Message != "connection refused" {
		t.Errorf("expected failure message, got %q", resp.Checks["broken"].Message)
	}
	if resp.Checks["postgres"].Status != StatusHealthy {
		t.Errorf("healthy component should stay healthy in aggregate response")
	}
}
