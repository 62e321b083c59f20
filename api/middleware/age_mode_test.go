package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bebifresh/bebifresh-backend/pkg/enums"
)

func TestAgeModeFromHeader(t *testing.T) {
	var got enums.AgeMode
	handler := AgeMode()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = AgeModeFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Age-Mode", "ninos")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != enums.AgeModeNinos {
		t.Fatalf("expected ninos got %s", got)
	}
}

func TestAgeModeIgnoresQueryParam(t *testing.T) {
	var got enums.AgeMode
	handler := AgeMode()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = AgeModeFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/?age_mode=jovenes", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != enums.AgeModeAdultos {
		t.Fatalf("expected adultos got %s", got)
	}
}

func TestAgeModeDefaultsToAdults(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "absent", header: ""},
		{name: "unrecognized", header: "bebes"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got enums.AgeMode
			handler := AgeMode()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = AgeModeFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("X-Age-Mode", tc.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != enums.AgeModeAdultos {
				t.Fatalf("expected adultos got %s", got)
			}
		})
	}
}
