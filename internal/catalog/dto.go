package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

// ListFilter narrows the product listing.
type ListFilter struct {
	Search     string
	Category   *enums.ProductCategory
	ActiveOnly bool
}

// CreateProductInput carries an admin product creation.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description *string
	Category    enums.ProductCategory
	CopyKey     string
	UnitCost    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// UpdateProductInput carries a partial product update; nil fields are left
// untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *enums.ProductCategory
	CopyKey     *string
	UnitCost    *decimal.Decimal
	UnitPrice   *decimal.Decimal
	IsActive    *bool
}

// CreatePromotionInput carries an admin promotion creation.
type CreatePromotionInput struct {
	ProductID       uuid.UUID
	Name            string
	DiscountPercent decimal.Decimal
	StartsAt        time.Time
	EndsAt          time.Time
}

// ProductView is the rendered catalog product.
type ProductView struct {
	ID             uuid.UUID             `json:"id"`
	SKU            string                `json:"sku"`
	Name           string                `json:"name"`
	Description    *string               `json:"description,omitempty"`
	Category       enums.ProductCategory `json:"category"`
	Tagline        string                `json:"tagline,omitempty"`
	UnitCost       decimal.Decimal       `json:"unit_cost"`
	UnitPrice      decimal.Decimal       `json:"unit_price"`
	EffectivePrice decimal.Decimal       `json:"effective_price"`
	StockTotal     int                   `json:"stock_total"`
	IsActive       bool                  `json:"is_active"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ProductListView pairs a page of products with pagination metadata.
type ProductListView struct {
	Products []ProductView   `json:"products"`
	Meta     pagination.Meta `json:"meta"`
}

func productView(product *models.Product, at time.Time, tagline string) ProductView {
	return ProductView{
		ID:             product.ID,
		SKU:            product.SKU,
		Name:           product.Name,
		Description:    product.Description,
		Category:       product.Category,
		Tagline:        tagline,
		UnitCost:       product.UnitCost,
		UnitPrice:      product.UnitPrice,
		EffectivePrice: EffectivePrice(product, at),
		StockTotal:     product.StockTotal,
		IsActive:       product.IsActive,
		CreatedAt:      product.CreatedAt,
	}
}
