package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	suppliersvc "github.com/bebifresh/bebifresh-backend/internal/suppliers"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

type stubSupplierService struct {
	view *suppliersvc.View
	list *suppliersvc.ListView
	err  error

	deleted []uuid.UUID
}

func (s *stubSupplierService) Create(ctx context.Context, input suppliersvc.CreateInput) (*suppliersvc.View, error) {
	return s.view, s.err
}

func (s *stubSupplierService) Update(ctx context.Context, supplierID uuid.UUID, input suppliersvc.UpdateInput) (*suppliersvc.View, error) {
	return s.view, s.err
}

func (s *stubSupplierService) Get(ctx context.Context, supplierID uuid.UUID) (*suppliersvc.View, error) {
	return s.view, s.err
}

func (s *stubSupplierService) List(ctx context.Context, params pagination.Params, search string) (*suppliersvc.ListView, error) {
	return s.list, s.err
}

func (s *stubSupplierService) Delete(ctx context.Context, supplierID uuid.UUID) error {
	s.deleted = append(s.deleted, supplierID)
	return s.err
}

func (s *stubSupplierService) SupplierExists(ctx context.Context, supplierID uuid.UUID) (bool, error) {
	return s.view != nil, s.err
}

func TestCreateSupplierSuccess(t *testing.T) {
	svc := &stubSupplierService{view: &suppliersvc.View{ID: uuid.New(), TaxID: "BFS840101AAA", Name: "Lacteos del Valle"}}
	handler := CreateSupplier(svc, nil)

	body := []byte(`{"tax_id":"BFS840101AAA","name":"Lacteos del Valle"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suppliers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data suppliersvc.View `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TaxID != "BFS840101AAA" {
		t.Fatalf("unexpected tax id: %s", envelope.Data.TaxID)
	}
}

func TestCreateSupplierMissingFields(t *testing.T) {
	handler := CreateSupplier(&stubSupplierService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/suppliers", bytes.NewReader([]byte(`{"name":"Sin RFC"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestDeleteSupplierWithOrdersRefused(t *testing.T) {
	svc := &stubSupplierService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "supplier has purchase orders")}
	handler := DeleteSupplier(svc, nil)

	supplierID := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/suppliers/"+supplierID.String(), nil)
	req = withRouteParams(req, map[string]string{"supplierId": supplierID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestDeleteSupplierSuccess(t *testing.T) {
	svc := &stubSupplierService{}
	handler := DeleteSupplier(svc, nil)

	supplierID := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/suppliers/"+supplierID.String(), nil)
	req = withRouteParams(req, map[string]string{"supplierId": supplierID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != supplierID {
		t.Fatalf("expected delete of %s got %v", supplierID, svc.deleted)
	}
}
