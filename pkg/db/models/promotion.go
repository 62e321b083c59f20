package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promotion is a percent discount on one product over a date window.
type Promotion struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	Name            string          `gorm:"column:name;not null"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2);not null"`
	StartsAt        time.Time       `gorm:"column:starts_at;not null"`
	EndsAt          time.Time       `gorm:"column:ends_at;not null"`
	IsActive        bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// AppliesAt reports whether the promotion is live at the given instant.
func (p Promotion) AppliesAt(at time.Time) bool {
	if !p.IsActive {
		return false
	}
	return !at.Before(p.StartsAt) && !at.After(p.EndsAt)
}
