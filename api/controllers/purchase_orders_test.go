package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bebifresh/bebifresh-backend/api/middleware"
	posvc "github.com/bebifresh/bebifresh-backend/internal/purchaseorders"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

type stubOrderService struct {
	draft *posvc.DraftView
	order *posvc.OrderView
	list  *posvc.OrderListView
	err   error

	lastOwnerID uuid.UUID
	lastOrderID *uuid.UUID
	lastAdd     posvc.AddLineInput
	lastSubmit  posvc.SubmitInput
}

func (s *stubOrderService) OpenDraft(ctx context.Context, ownerID uuid.UUID, orderID *uuid.UUID) (*posvc.DraftView, error) {
	s.lastOwnerID = ownerID
	s.lastOrderID = orderID
	return s.draft, s.err
}

func (s *stubOrderService) ViewDraft(ctx context.Context, draftID, ownerID uuid.UUID) (*posvc.DraftView, error) {
	return s.draft, s.err
}

func (s *stubOrderService) AddLine(ctx context.Context, draftID, ownerID uuid.UUID, input posvc.AddLineInput) (*posvc.DraftView, error) {
	s.lastAdd = input
	return s.draft, s.err
}

func (s *stubOrderService) EditLine(ctx context.Context, draftID, ownerID, itemID uuid.UUID) (*posvc.DraftView, error) {
	return s.draft, s.err
}

func (s *stubOrderService) RemoveLine(ctx context.Context, draftID, ownerID, itemID uuid.UUID) (*posvc.DraftView, error) {
	return s.draft, s.err
}

func (s *stubOrderService) DiscardDraft(ctx context.Context, draftID, ownerID uuid.UUID) error {
	return s.err
}

func (s *stubOrderService) Submit(ctx context.Context, input posvc.SubmitInput) (*posvc.OrderView, error) {
	s.lastSubmit = input
	return s.order, s.err
}

func (s *stubOrderService) Get(ctx context.Context, orderID uuid.UUID) (*posvc.OrderView, error) {
	return s.order, s.err
}

func (s *stubOrderService) List(ctx context.Context, params pagination.Params, filter posvc.ListFilter) (*posvc.OrderListView, error) {
	return s.list, s.err
}

func (s *stubOrderService) Receive(ctx context.Context, orderID uuid.UUID) (*posvc.OrderView, error) {
	return s.order, s.err
}

func (s *stubOrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*posvc.OrderView, error) {
	return s.order, s.err
}

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func TestOpenDraftSuccess(t *testing.T) {
	ownerID := uuid.New()
	draft := &posvc.DraftView{ID: uuid.New(), Lines: []posvc.DraftLineView{}, Total: decimal.Zero}
	svc := &stubOrderService{draft: draft}
	handler := OpenDraft(svc, nil)

	req := authedRequest(http.MethodPost, "/api/v1/purchase-orders/drafts", nil, ownerID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastOwnerID != ownerID {
		t.Fatalf("expected owner %s got %s", ownerID, svc.lastOwnerID)
	}
	if svc.lastOrderID != nil {
		t.Fatalf("expected no order id got %s", svc.lastOrderID)
	}
}

func TestOpenDraftForExistingOrder(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrderService{draft: &posvc.DraftView{ID: uuid.New(), OrderID: &orderID}}
	handler := OpenDraft(svc, nil)

	req := authedRequest(http.MethodPost, "/api/v1/purchase-orders/drafts?order_id="+orderID.String(), nil, uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastOrderID == nil || *svc.lastOrderID != orderID {
		t.Fatalf("expected order id %s got %v", orderID, svc.lastOrderID)
	}
}

func TestOpenDraftBadOrderID(t *testing.T) {
	handler := OpenDraft(&stubOrderService{}, nil)

	req := authedRequest(http.MethodPost, "/api/v1/purchase-orders/drafts?order_id=nope", nil, uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOpenDraftMissingUserContext(t *testing.T) {
	handler := OpenDraft(&stubOrderService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/purchase-orders/drafts", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestViewDraftNotFound(t *testing.T) {
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeNotFound, "draft not found")}
	handler := ViewDraft(svc, nil)

	draftID := uuid.New()
	req := authedRequest(http.MethodGet, "/api/v1/purchase-orders/drafts/"+draftID.String(), nil, uuid.New())
	req = withRouteParams(req, map[string]string{"draftId": draftID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAddDraftLineSuccess(t *testing.T) {
	itemID := uuid.New()
	draftID := uuid.New()
	draft := &posvc.DraftView{
		ID: draftID,
		Lines: []posvc.DraftLineView{{
			ItemID:    itemID,
			Quantity:  3,
			UnitPrice: decimal.RequireFromString("12.50"),
			Subtotal:  decimal.RequireFromString("37.50"),
		}},
		Total: decimal.RequireFromString("37.50"),
	}
	svc := &stubOrderService{draft: draft}
	handler := AddDraftLine(svc, nil)

	body := []byte(`{"item_id":"` + itemID.String() + `","quantity":3,"unit_price":"12.50"}`)
	req := authedRequest(http.MethodPost, "/api/v1/purchase-orders/drafts/"+draftID.String()+"/lines", body, uuid.New())
	req = withRouteParams(req, map[string]string{"draftId": draftID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastAdd.ItemID != itemID || svc.lastAdd.Quantity != 3 {
		t.Fatalf("unexpected add input: %+v", svc.lastAdd)
	}
	if svc.lastAdd.UnitPrice == nil || !svc.lastAdd.UnitPrice.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("unexpected unit price: %v", svc.lastAdd.UnitPrice)
	}

	var envelope struct {
		Data posvc.DraftView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Total.Equal(decimal.RequireFromString("37.50")) {
		t.Fatalf("unexpected total: %s", envelope.Data.Total)
	}
}

func TestAddDraftLineRejectsZeroQuantity(t *testing.T) {
	handler := AddDraftLine(&stubOrderService{}, nil)

	draftID := uuid.New()
	body := []byte(`{"item_id":"` + uuid.NewString() + `","quantity":0}`)
	req := authedRequest(http.MethodPost, "/api/v1/purchase-orders/drafts/"+draftID.String()+"/lines", body, uuid.New())
	req = withRouteParams(req, map[string]string{"draftId": draftID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSubmitDraftSuccess(t *testing.T) {
	supplierID := uuid.New()
	draftID := uuid.New()
	order := &posvc.OrderView{ID: uuid.New(), SupplierID: supplierID, Total: decimal.RequireFromString("99.00")}
	svc := &stubOrderService{order: order}
	handler := SubmitDraft(svc, nil)

	body := []byte(`{"supplier_id":"` + supplierID.String() + `","ordered_at":"2026-08-30T12:00:00Z"}`)
	req := authedRequest(http.MethodPost, "/api/v1/purchase-orders/drafts/"+draftID.String()+"/submit", body, uuid.New())
	req = withRouteParams(req, map[string]string{"draftId": draftID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastSubmit.DraftID != draftID || svc.lastSubmit.SupplierID != supplierID {
		t.Fatalf("unexpected submit input: %+v", svc.lastSubmit)
	}
}

func TestSubmitDraftPassesStatus(t *testing.T) {
	svc := &stubOrderService{order: &posvc.OrderView{ID: uuid.New()}}
	handler := SubmitDraft(svc, nil)

	draftID := uuid.New()
	body := []byte(`{"supplier_id":"` + uuid.NewString() + `","ordered_at":"2026-08-30T12:00:00Z","status":"pending"}`)
	req := authedRequest(http.MethodPost, "/api/v1/purchase-orders/drafts/"+draftID.String()+"/submit", body, uuid.New())
	req = withRouteParams(req, map[string]string{"draftId": draftID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastSubmit.Status == nil || *svc.lastSubmit.Status != enums.PurchaseOrderStatusPending {
		t.Fatalf("expected pending status got %v", svc.lastSubmit.Status)
	}
}

func TestSubmitDraftRejectsUnknownStatus(t *testing.T) {
	handler := SubmitDraft(&stubOrderService{}, nil)

	draftID := uuid.New()
	body := []byte(`{"supplier_id":"` + uuid.NewString() + `","ordered_at":"2026-08-30T12:00:00Z","status":"shipped"}`)
	req := authedRequest(http.MethodPost, "/api/v1/purchase-orders/drafts/"+draftID.String()+"/submit", body, uuid.New())
	req = withRouteParams(req, map[string]string{"draftId": draftID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSubmitDraftEmptyLinesRefused(t *testing.T) {
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "draft has no lines")}
	handler := SubmitDraft(svc, nil)

	draftID := uuid.New()
	body := []byte(`{"supplier_id":"` + uuid.NewString() + `","ordered_at":"2026-08-30T12:00:00Z"}`)
	req := authedRequest(http.MethodPost, "/api/v1/purchase-orders/drafts/"+draftID.String()+"/submit", body, uuid.New())
	req = withRouteParams(req, map[string]string{"draftId": draftID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestSubmitDraftInFlight(t *testing.T) {
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeInFlight, "submission already in flight")}
	handler := SubmitDraft(svc, nil)

	draftID := uuid.New()
	body := []byte(`{"supplier_id":"` + uuid.NewString() + `","ordered_at":"2026-08-30T12:00:00Z"}`)
	req := authedRequest(http.MethodPost, "/api/v1/purchase-orders/drafts/"+draftID.String()+"/submit", body, uuid.New())
	req = withRouteParams(req, map[string]string{"draftId": draftID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestListOrdersRejectsBadStatus(t *testing.T) {
	handler := ListOrders(&stubOrderService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders?status=unknown", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
