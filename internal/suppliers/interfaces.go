package suppliers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

// Repository defines persistence operations for suppliers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	Find(ctx context.Context, supplierID uuid.UUID) (*models.Supplier, error)
	Exists(ctx context.Context, supplierID uuid.UUID) (bool, error)
	Update(ctx context.Context, supplierID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, supplierID uuid.UUID) error
	List(ctx context.Context, params pagination.Params, search string) ([]models.Supplier, int64, error)
	CountOrders(ctx context.Context, supplierID uuid.UUID) (int64, error)
}
