package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/bebifresh/bebifresh-backend/internal/auth"
	pkgauth "github.com/bebifresh/bebifresh-backend/pkg/auth"
	"github.com/bebifresh/bebifresh-backend/pkg/config"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
)

type stubAuthService struct {
	session *authsvc.SessionView
	pair    *authsvc.TokenPair
	err     error

	loggedOut []string
}

func (s *stubAuthService) Login(ctx context.Context, input authsvc.LoginInput) (*authsvc.SessionView, error) {
	return s.session, s.err
}

func (s *stubAuthService) Refresh(ctx context.Context, input authsvc.RefreshInput) (*authsvc.TokenPair, error) {
	return s.pair, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOut = append(s.loggedOut, accessID)
	return s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	session := &authsvc.SessionView{
		Tokens: authsvc.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900},
		UserID: uuid.New(),
		Email:  "clerk@bebifresh.mx",
		Role:   enums.MemberRoleClerk,
	}
	handler := AuthLogin(&stubAuthService{session: session}, nil)

	body := []byte(`{"email":"clerk@bebifresh.mx","password":"hunter2hunter2"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data authsvc.SessionView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Tokens.AccessToken != "access" {
		t.Fatalf("unexpected access token: %s", envelope.Data.Tokens.AccessToken)
	}
	if envelope.Data.Email != session.Email {
		t.Fatalf("unexpected email: %s", envelope.Data.Email)
	}
}

func TestAuthLoginMissingFields(t *testing.T) {
	handler := AuthLogin(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	handler := AuthLogin(&stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}, nil)

	body := []byte(`{"email":"clerk@bebifresh.mx","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRefreshSuccess(t *testing.T) {
	pair := &authsvc.TokenPair{AccessToken: "next-access", RefreshToken: "next-refresh", ExpiresIn: 900}
	handler := AuthRefresh(&stubAuthService{pair: pair}, nil)

	body := []byte(`{"access_token":"stale","refresh_token":"current"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data authsvc.TokenPair `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RefreshToken != "next-refresh" {
		t.Fatalf("unexpected refresh token: %s", envelope.Data.RefreshToken)
	}
}

func TestAuthLogoutRevokesSessionFromToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "logout-test-secret",
		Issuer:            "bebifresh",
		ExpirationMinutes: 15,
	}
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.MemberRoleClerk,
		JTI:    "session-jti",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	svc := &stubAuthService{}
	handler := AuthLogout(svc, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "session-jti" {
		t.Fatalf("expected logout for session-jti got %v", svc.loggedOut)
	}
}

func TestAuthLogoutMissingBearer(t *testing.T) {
	cfg := config.JWTConfig{Secret: "logout-test-secret", Issuer: "bebifresh", ExpirationMinutes: 15}
	handler := AuthLogout(&stubAuthService{}, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
