package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/internal/catalog"
	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
)

type productLoader interface {
	FindActiveProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
}

// Service exposes the per-user storefront cart.
type Service interface {
	Upsert(ctx context.Context, userID uuid.UUID, input UpsertInput) (*View, error)
	List(ctx context.Context, userID uuid.UUID) (*View, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo     Repository
	products productLoader
	now      func() time.Time
}

// NewService builds a cart service.
func NewService(repo Repository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products, now: time.Now}, nil
}

func (s *service) Upsert(ctx context.Context, userID uuid.UUID, input UpsertInput) (*View, error) {
	details := map[string]string{}
	if input.ProductID == uuid.Nil {
		details["product_id"] = "is required"
	}
	if input.Quantity < 1 {
		details["quantity"] = "must be a positive whole number"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	if _, err := s.products.FindActiveProduct(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"product_id": "unknown or inactive product"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert cart item")
	}
	return s.List(ctx, userID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) (*View, error) {
	items, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}

	at := s.now()
	view := &View{Lines: make([]LineView, 0, len(items)), Total: decimal.Zero}
	for i := range items {
		item := &items[i]
		if item.Product == nil {
			continue
		}
		price := catalog.EffectivePrice(item.Product, at)
		lineTotal := price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		view.Lines = append(view.Lines, LineView{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			SKU:         item.Product.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   price,
			LineTotal:   lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}
	return view, nil
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) (*View, error) {
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return s.List(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
