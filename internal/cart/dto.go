package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpsertInput sets the quantity for one product in the user's cart.
type UpsertInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// LineView is one cart entry priced against the live catalog.
type LineView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// View is the rendered cart with its running total.
type View struct {
	Lines []LineView      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}
