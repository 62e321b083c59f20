package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bebifresh/bebifresh-backend/api/middleware"
	"github.com/bebifresh/bebifresh-backend/api/responses"
	"github.com/bebifresh/bebifresh-backend/api/validators"
	posvc "github.com/bebifresh/bebifresh-backend/internal/purchaseorders"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/logger"
)

// OpenDraft handles POST /api/v1/purchase-orders/drafts. With ?order_id= the
// draft opens pre-populated from the persisted order for the edit flow.
func OpenDraft(svc posvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var orderID *uuid.UUID
		if raw := strings.TrimSpace(r.URL.Query().Get("order_id")); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").
					WithDetails(map[string]string{"order_id": "must be a uuid"}))
				return
			}
			orderID = &parsed
		}

		view, err := svc.OpenDraft(r.Context(), ownerID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// ViewDraft handles GET /api/v1/purchase-orders/drafts/{draftId}.
func ViewDraft(svc posvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draftID, err := pathUUID(r, "draftId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.ViewDraft(r.Context(), draftID, ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type addLineRequest struct {
	ItemID    string  `json:"item_id" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice *string `json:"unit_price,omitempty"`
}

// AddDraftLine handles POST /api/v1/purchase-orders/drafts/{draftId}/lines.
// Adding an item already on the draft replaces that line in place.
func AddDraftLine(svc posvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draftID, err := pathUUID(r, "draftId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := uuid.Parse(payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").
				WithDetails(map[string]string{"item_id": "must be a uuid"}))
			return
		}

		input := posvc.AddLineInput{ItemID: itemID, Quantity: payload.Quantity}
		if payload.UnitPrice != nil {
			price, err := parseMoney(*payload.UnitPrice, "unit_price")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.UnitPrice = &price
		}

		view, err := svc.AddLine(r.Context(), draftID, ownerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// EditDraftLine handles POST /api/v1/purchase-orders/drafts/{draftId}/lines/{itemId}/edit.
// The line's values load into the editor inputs and the line leaves the
// draft until re-added.
func EditDraftLine(svc posvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draftID, err := pathUUID(r, "draftId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.EditLine(r.Context(), draftID, ownerID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// RemoveDraftLine handles DELETE /api/v1/purchase-orders/drafts/{draftId}/lines/{itemId}.
func RemoveDraftLine(svc posvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draftID, err := pathUUID(r, "draftId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.RemoveLine(r.Context(), draftID, ownerID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// DiscardDraft handles DELETE /api/v1/purchase-orders/drafts/{draftId}.
func DiscardDraft(svc posvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draftID, err := pathUUID(r, "draftId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DiscardDraft(r.Context(), draftID, ownerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "draft_discarded"})
	}
}

type submitDraftRequest struct {
	SupplierID string    `json:"supplier_id" validate:"required,uuid"`
	OrderedAt  time.Time `json:"ordered_at" validate:"required"`
	Status     string    `json:"status,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
}

// SubmitDraft handles POST /api/v1/purchase-orders/drafts/{draftId}/submit.
// The draft's lines and the order fields go out as one payload; concurrent
// submits of the same draft are refused while one is in flight.
func SubmitDraft(svc posvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draftID, err := pathUUID(r, "draftId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload submitDraftRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplierID, err := uuid.Parse(payload.SupplierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").
				WithDetails(map[string]string{"supplier_id": "must be a uuid"}))
			return
		}

		input := posvc.SubmitInput{
			DraftID:    draftID,
			OwnerID:    ownerID,
			SupplierID: supplierID,
			OrderedAt:  payload.OrderedAt,
			Notes:      payload.Notes,
			AgeMode:    middleware.AgeModeFromContext(r.Context()),
		}
		if raw := strings.TrimSpace(payload.Status); raw != "" {
			status, err := enums.ParsePurchaseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status").
					WithDetails(map[string]string{"status": "must be pending, received or cancelled"}))
				return
			}
			input.Status = &status
		}

		view, err := svc.Submit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// ListOrders handles GET /api/v1/purchase-orders.
func ListOrders(svc posvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filter posvc.ListFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParsePurchaseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			filter.Status = &status
		}
		if from, err := queryTime(r, "date_from"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if from != nil {
			filter.DateFrom = from
		}
		if to, err := queryTime(r, "date_to"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if to != nil {
			filter.DateTo = to
		}

		view, err := svc.List(r.Context(), params, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// GetOrder handles GET /api/v1/purchase-orders/{orderId}.
func GetOrder(svc posvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ReceiveOrder handles POST /api/v1/purchase-orders/{orderId}/receive.
func ReceiveOrder(svc posvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Receive(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CancelOrder handles POST /api/v1/purchase-orders/{orderId}/cancel.
func CancelOrder(svc posvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Cancel(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", raw)
	}
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date").
			WithDetails(map[string]string{key: "must be RFC3339 or YYYY-MM-DD"})
	}
	return &parsed, nil
}
