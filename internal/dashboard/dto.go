package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bebifresh/bebifresh-backend/pkg/enums"
)

// LowStockItem is one product at or below the restock threshold.
type LowStockItem struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku"`
	StockTotal int       `json:"stock_total"`
}

// MonthSpend is one point of the received-spend series, keyed YYYY-MM.
type MonthSpend struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// Summary is the cached back-office overview.
type Summary struct {
	Headline        string                                        `json:"headline"`
	ProductCount    int64                                         `json:"product_count"`
	SupplierCount   int64                                         `json:"supplier_count"`
	UserCount       int64                                         `json:"user_count"`
	LowStock        []LowStockItem                                `json:"low_stock"`
	SpendByStatus   map[enums.PurchaseOrderStatus]decimal.Decimal `json:"spend_by_status"`
	MonthlyReceived []MonthSpend                                  `json:"monthly_received"`
	GeneratedAt     time.Time                                     `json:"generated_at"`
}
