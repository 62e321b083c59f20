package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bebifresh/bebifresh-backend/pkg/enums"
)

// Product represents a catalog item. UnitCost is the default acquisition
// price pre-filled into purchase-order lines; UnitPrice is the storefront
// sale price before promotions.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU         string                `gorm:"column:sku;not null;uniqueIndex"`
	Name        string                `gorm:"column:name;not null"`
	Description *string               `gorm:"column:description"`
	Category    enums.ProductCategory `gorm:"column:category;not null"`
	CopyKey     string                `gorm:"column:copy_key;not null;default:''"`
	UnitCost    decimal.Decimal       `gorm:"column:unit_cost;type:numeric(12,2);not null"`
	UnitPrice   decimal.Decimal       `gorm:"column:unit_price;type:numeric(12,2);not null"`
	IsActive    bool                  `gorm:"column:is_active;not null;default:true"`
	Batches     []ProductBatch        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Promotions  []Promotion           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`

	// StockTotal is computed by list/detail queries as the sum of batch
	// quantities; it is never written.
	StockTotal int `gorm:"->;-:migration" json:"stock_total"`
}
