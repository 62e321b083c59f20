package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a purchasing party referenced by purchase orders.
type Supplier struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TaxID       string    `gorm:"column:tax_id;not null;uniqueIndex"`
	Name        string    `gorm:"column:name;not null"`
	ContactName *string   `gorm:"column:contact_name"`
	Email       *string   `gorm:"column:email"`
	Phone       *string   `gorm:"column:phone"`
	Address     *string   `gorm:"column:address"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
