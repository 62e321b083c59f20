package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bebifresh/bebifresh-backend/pkg/config"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error {
	return s.err
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}
	handler := HealthLive(cfg)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-BebiFresh-Env"); got != "dev" {
		t.Fatalf("expected env header dev got %s", got)
	}
}

func TestHealthReadySuccess(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}
	handler := HealthReady(cfg, nil, stubPinger{}, stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestHealthReadyDatabaseDown(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}
	handler := HealthReady(cfg, nil, stubPinger{err: errors.New("connection refused")}, stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestHealthReadyRedisDown(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}
	handler := HealthReady(cfg, nil, stubPinger{}, stubPinger{err: errors.New("pool exhausted")})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
