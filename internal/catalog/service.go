package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/pkg/db"
	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

var productSortable = []string{"name", "sku", "unit_price", "created_at", "category"}

// Service exposes catalog reads for the storefront and writes for admins.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductView, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductView, error)
	Get(ctx context.Context, productID uuid.UUID, mode enums.AgeMode) (*ProductView, error)
	List(ctx context.Context, params pagination.Params, filter ListFilter, mode enums.AgeMode) (*ProductListView, error)
	AddStock(ctx context.Context, productID uuid.UUID, qty int, lot *string) error
	CreatePromotion(ctx context.Context, input CreatePromotionInput) error
	DeletePromotion(ctx context.Context, promoID uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductView, error) {
	if details := validateCreate(input); len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	product := &models.Product{
		SKU:         strings.TrimSpace(input.SKU),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    input.Category,
		CopyKey:     input.CopyKey,
		UnitCost:    input.UnitCost,
		UnitPrice:   input.UnitPrice,
		IsActive:    true,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists").
				WithDetails(map[string]string{"sku": "already in use"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	view := productView(created, s.now(), "")
	return &view, nil
}

func (s *service) Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductView, error) {
	updates := map[string]any{}
	details := map[string]string{}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			details["name"] = "is required"
		} else {
			updates["name"] = strings.TrimSpace(*input.Name)
		}
	}
	if input.Description != nil {
		updates["description"] = input.Description
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			details["category"] = "is invalid"
		} else {
			updates["category"] = *input.Category
		}
	}
	if input.CopyKey != nil {
		updates["copy_key"] = *input.CopyKey
	}
	if input.UnitCost != nil {
		if input.UnitCost.IsNegative() {
			details["unit_cost"] = "must not be negative"
		} else {
			updates["unit_cost"] = *input.UnitCost
		}
	}
	if input.UnitPrice != nil {
		if !input.UnitPrice.IsPositive() {
			details["unit_price"] = "must be greater than zero"
		} else {
			updates["unit_price"] = *input.UnitPrice
		}
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateProduct(ctx, productID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
		}
	}
	return s.Get(ctx, productID, enums.AgeModeAdultos)
}

func (s *service) Get(ctx context.Context, productID uuid.UUID, mode enums.AgeMode) (*ProductView, error) {
	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	view := productView(product, s.now(), Tagline(product.CopyKey, mode))
	return &view, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filter ListFilter, mode enums.AgeMode) (*ProductListView, error) {
	params = pagination.Normalize(params, productSortable, "name")
	products, total, err := s.repo.ListProducts(ctx, params, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	at := s.now()
	view := &ProductListView{
		Products: make([]ProductView, 0, len(products)),
		Meta:     pagination.MetaFor(params, total),
	}
	for i := range products {
		p := &products[i]
		view.Products = append(view.Products, productView(p, at, Tagline(p.CopyKey, mode)))
	}
	return view, nil
}

func (s *service) AddStock(ctx context.Context, productID uuid.UUID, qty int, lot *string) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"qty": "must be greater than zero"})
	}
	if _, err := s.repo.FindActiveProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.AddBatch(ctx, nil, productID, qty, lot); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append stock batch")
	}
	return nil
}

func (s *service) CreatePromotion(ctx context.Context, input CreatePromotionInput) error {
	details := map[string]string{}
	if input.ProductID == uuid.Nil {
		details["product_id"] = "is required"
	}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "is required"
	}
	if !input.DiscountPercent.IsPositive() || input.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		details["discount_percent"] = "must be between 0 and 100"
	}
	if !input.EndsAt.After(input.StartsAt) {
		details["ends_at"] = "must be after starts_at"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	if _, err := s.repo.FindActiveProduct(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	promo := &models.Promotion{
		ProductID:       input.ProductID,
		Name:            strings.TrimSpace(input.Name),
		DiscountPercent: input.DiscountPercent,
		StartsAt:        input.StartsAt,
		EndsAt:          input.EndsAt,
		IsActive:        true,
	}
	if _, err := s.repo.CreatePromotion(ctx, promo); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create promotion")
	}
	return nil
}

func (s *service) DeletePromotion(ctx context.Context, promoID uuid.UUID) error {
	if err := s.repo.DeletePromotion(ctx, promoID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete promotion")
	}
	return nil
}

func validateCreate(input CreateProductInput) map[string]string {
	details := map[string]string{}
	if strings.TrimSpace(input.SKU) == "" {
		details["sku"] = "is required"
	}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "is required"
	}
	if !input.Category.IsValid() {
		details["category"] = "is invalid"
	}
	if input.UnitCost.IsNegative() {
		details["unit_cost"] = "must not be negative"
	}
	if !input.UnitPrice.IsPositive() {
		details["unit_price"] = "must be greater than zero"
	}
	return details
}
