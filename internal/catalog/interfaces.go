package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

// Repository defines persistence operations for catalog tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	FindProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	FindActiveProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, updates map[string]any) error
	ListProducts(ctx context.Context, params pagination.Params, filter ListFilter) ([]models.Product, int64, error)
	AddBatch(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int, lot *string) error
	CreatePromotion(ctx context.Context, promo *models.Promotion) (*models.Promotion, error)
	DeletePromotion(ctx context.Context, promoID uuid.UUID) error
}
