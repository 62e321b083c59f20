package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
)

var oneHundred = decimal.NewFromInt(100)

// EffectivePrice returns the display price at the given instant: the unit
// price with the steepest live promotion applied, rounded to 2 decimal
// places half-up. No live promotion means the plain unit price.
func EffectivePrice(product *models.Product, at time.Time) decimal.Decimal {
	best := decimal.Zero
	for _, promo := range product.Promotions {
		if !promo.AppliesAt(at) {
			continue
		}
		if promo.DiscountPercent.GreaterThan(best) {
			best = promo.DiscountPercent
		}
	}
	if best.IsZero() {
		return product.UnitPrice.Round(2)
	}
	factor := oneHundred.Sub(best).Div(oneHundred)
	return product.UnitPrice.Mul(factor).Round(2)
}
