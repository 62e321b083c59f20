package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bebifresh/bebifresh-backend/pkg/enums"
)

// PurchaseOrder is a persisted supplier order. Lines are replaced wholesale
// on update; Total is the sum of line subtotals at submission time.
type PurchaseOrder struct {
	ID         uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SupplierID uuid.UUID                 `gorm:"column:supplier_id;type:uuid;not null;index"`
	Supplier   *Supplier                 `gorm:"foreignKey:SupplierID"`
	OrderedAt  time.Time                 `gorm:"column:ordered_at;not null"`
	Status     enums.PurchaseOrderStatus `gorm:"column:status;not null;default:'pending'"`
	Notes      *string                   `gorm:"column:notes"`
	Total      decimal.Decimal           `gorm:"column:total;type:numeric(12,2);not null"`
	Lines      []PurchaseOrderLine       `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	ReceivedAt *time.Time                `gorm:"column:received_at"`
	CreatedAt  time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
