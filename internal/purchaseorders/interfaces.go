package purchaseorders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

// Repository defines persistence operations for purchase-order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.PurchaseOrder) (*models.PurchaseOrder, error)
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.PurchaseOrder, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	ReplaceLines(ctx context.Context, orderID uuid.UUID, lines []models.PurchaseOrderLine) error
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.PurchaseOrderStatus, updates map[string]any) error
	ListOrders(ctx context.Context, params pagination.Params, filter ListFilter) ([]models.PurchaseOrder, int64, error)
}
