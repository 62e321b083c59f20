package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bebifresh/bebifresh-backend/api/middleware"
	"github.com/bebifresh/bebifresh-backend/api/responses"
	"github.com/bebifresh/bebifresh-backend/api/validators"
	"github.com/bebifresh/bebifresh-backend/internal/catalog"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/logger"
)

// ListProducts handles GET /api/v1/products.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.ListFilter{
			Search:     validators.SanitizeString(r.URL.Query().Get("search"), 120),
			ActiveOnly: strings.EqualFold(r.URL.Query().Get("active"), "true"),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			filter.Category = &category
		}

		view, err := svc.List(r.Context(), params, filter, middleware.AgeModeFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// GetProduct handles GET /api/v1/products/{productId}.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), productID, middleware.AgeModeFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type createProductRequest struct {
	SKU         string  `json:"sku" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category" validate:"required"`
	CopyKey     string  `json:"copy_key,omitempty"`
	UnitCost    string  `json:"unit_cost" validate:"required"`
	UnitPrice   string  `json:"unit_price" validate:"required"`
}

func (req createProductRequest) toInput() (catalog.CreateProductInput, error) {
	category, err := enums.ParseProductCategory(strings.TrimSpace(req.Category))
	if err != nil {
		return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	unitCost, err := parseMoney(req.UnitCost, "unit_cost")
	if err != nil {
		return catalog.CreateProductInput{}, err
	}
	unitPrice, err := parseMoney(req.UnitPrice, "unit_price")
	if err != nil {
		return catalog.CreateProductInput{}, err
	}
	return catalog.CreateProductInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		CopyKey:     req.CopyKey,
		UnitCost:    unitCost,
		UnitPrice:   unitPrice,
	}, nil
}

// CreateProduct handles POST /api/v1/products.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

type updateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	CopyKey     *string `json:"copy_key,omitempty"`
	UnitCost    *string `json:"unit_cost,omitempty"`
	UnitPrice   *string `json:"unit_price,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (req updateProductRequest) toInput() (catalog.UpdateProductInput, error) {
	input := catalog.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		CopyKey:     req.CopyKey,
		IsActive:    req.IsActive,
	}
	if req.Category != nil {
		category, err := enums.ParseProductCategory(strings.TrimSpace(*req.Category))
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	if req.UnitCost != nil {
		unitCost, err := parseMoney(*req.UnitCost, "unit_cost")
		if err != nil {
			return catalog.UpdateProductInput{}, err
		}
		input.UnitCost = &unitCost
	}
	if req.UnitPrice != nil {
		unitPrice, err := parseMoney(*req.UnitPrice, "unit_price")
		if err != nil {
			return catalog.UpdateProductInput{}, err
		}
		input.UnitPrice = &unitPrice
	}
	return input, nil
}

// UpdateProduct handles PATCH /api/v1/products/{productId}.
func UpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Update(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type addBatchRequest struct {
	Qty int     `json:"qty" validate:"required,gt=0"`
	Lot *string `json:"lot,omitempty"`
}

// AddProductBatch handles POST /api/v1/products/{productId}/batches.
func AddProductBatch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addBatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AddStock(r.Context(), productID, payload.Qty, payload.Lot); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "stock_added"})
	}
}

type createPromotionRequest struct {
	Name            string    `json:"name" validate:"required"`
	DiscountPercent string    `json:"discount_percent" validate:"required"`
	StartsAt        time.Time `json:"starts_at" validate:"required"`
	EndsAt          time.Time `json:"ends_at" validate:"required"`
}

// CreateProductPromotion handles POST /api/v1/products/{productId}/promotions.
func CreateProductPromotion(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createPromotionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		discount, err := parseMoney(payload.DiscountPercent, "discount_percent")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.CreatePromotionInput{
			ProductID:       productID,
			Name:            payload.Name,
			DiscountPercent: discount,
			StartsAt:        payload.StartsAt,
			EndsAt:          payload.EndsAt,
		}
		if err := svc.CreatePromotion(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "promotion_created"})
	}
}

// DeletePromotion handles DELETE /api/v1/promotions/{promotionId}.
func DeletePromotion(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promoID, err := pathUUID(r, "promotionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePromotion(r.Context(), promoID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "promotion_deleted"})
	}
}

func parseMoney(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "invalid amount").
			WithDetails(map[string]string{field: "must be a decimal number"})
	}
	return value, nil
}
