package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductBatch is one received lot of stock; stock_total aggregates these.
type ProductBatch struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index"`
	Lot       *string    `gorm:"column:lot"`
	Qty       int        `gorm:"column:qty;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
