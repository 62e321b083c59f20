package dashboard

import (
	"context"
	"time"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// StatusSpend is the purchase-order spend grouped by status.
type StatusSpend struct {
	Status enums.PurchaseOrderStatus
	Total  decimal.Decimal
}

// ReceivedOrder is the slice of an order the monthly series needs.
type ReceivedOrder struct {
	ReceivedAt time.Time
	Total      decimal.Decimal
}

// Repository defines the aggregate reads behind the summary.
type Repository interface {
	ProductCount(ctx context.Context) (int64, error)
	SupplierCount(ctx context.Context) (int64, error)
	UserCount(ctx context.Context) (int64, error)
	LowStockProducts(ctx context.Context, threshold, limit int) ([]models.Product, error)
	SpendByStatus(ctx context.Context) ([]StatusSpend, error)
	ReceivedOrdersSince(ctx context.Context, cutoff time.Time) ([]ReceivedOrder, error)
}
