package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/bebifresh/bebifresh-backend/api/middleware"
	usersvc "github.com/bebifresh/bebifresh-backend/internal/users"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

type stubUserService struct {
	view *usersvc.View
	list *usersvc.ListView
	err  error

	lastActorRole enums.MemberRole
	lastCreate    usersvc.CreateInput
}

func (s *stubUserService) Create(ctx context.Context, actorRole enums.MemberRole, input usersvc.CreateInput) (*usersvc.View, error) {
	s.lastActorRole = actorRole
	s.lastCreate = input
	return s.view, s.err
}

func (s *stubUserService) Update(ctx context.Context, actorRole enums.MemberRole, userID uuid.UUID, input usersvc.UpdateInput) (*usersvc.View, error) {
	s.lastActorRole = actorRole
	return s.view, s.err
}

func (s *stubUserService) Get(ctx context.Context, userID uuid.UUID) (*usersvc.View, error) {
	return s.view, s.err
}

func (s *stubUserService) List(ctx context.Context, params pagination.Params, search string) (*usersvc.ListView, error) {
	return s.list, s.err
}

func TestCreateUserSuccess(t *testing.T) {
	svc := &stubUserService{view: &usersvc.View{ID: uuid.New(), Email: "clerk@bebifresh.mx", Role: enums.MemberRoleClerk}}
	handler := CreateUser(svc, nil)

	body := []byte(`{"email":"clerk@bebifresh.mx","password":"valid-pass-123","first_name":"Ana","last_name":"Reyes","role":"clerk"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithRole(req.Context(), string(enums.MemberRoleAdmin)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastActorRole != enums.MemberRoleAdmin {
		t.Fatalf("expected admin actor got %s", svc.lastActorRole)
	}
	if svc.lastCreate.Role != enums.MemberRoleClerk {
		t.Fatalf("expected clerk role got %s", svc.lastCreate.Role)
	}
}

func TestCreateUserBadRole(t *testing.T) {
	handler := CreateUser(&stubUserService{}, nil)

	body := []byte(`{"email":"clerk@bebifresh.mx","password":"valid-pass-123","first_name":"Ana","last_name":"Reyes","role":"superuser"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateUserForbiddenForNonAdmin(t *testing.T) {
	svc := &stubUserService{err: pkgerrors.New(pkgerrors.CodeForbidden, "only admins can manage users")}
	handler := CreateUser(svc, nil)

	body := []byte(`{"email":"clerk@bebifresh.mx","password":"valid-pass-123","first_name":"Ana","last_name":"Reyes","role":"clerk"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithRole(req.Context(), string(enums.MemberRoleClerk)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
	if svc.lastActorRole != enums.MemberRoleClerk {
		t.Fatalf("expected clerk actor got %s", svc.lastActorRole)
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc := &stubUserService{err: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}
	handler := GetUser(svc, nil)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users/"+userID.String(), nil)
	req = withRouteParams(req, map[string]string{"userId": userID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
