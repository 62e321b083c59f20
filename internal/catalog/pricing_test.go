package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEffectivePriceWithoutPromotion(t *testing.T) {
	product := &models.Product{UnitPrice: dec("19.99")}
	got := EffectivePrice(product, time.Now())
	require.True(t, got.Equal(dec("19.99")))
}

func TestEffectivePriceAppliesLivePromotion(t *testing.T) {
	now := time.Now()
	product := &models.Product{
		UnitPrice: dec("10.00"),
		Promotions: []models.Promotion{
			{DiscountPercent: dec("25"), StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), IsActive: true},
		},
	}
	got := EffectivePrice(product, now)
	require.True(t, got.Equal(dec("7.50")), "got %s", got)
}

func TestEffectivePricePicksSteepestDiscount(t *testing.T) {
	now := time.Now()
	product := &models.Product{
		UnitPrice: dec("10.00"),
		Promotions: []models.Promotion{
			{DiscountPercent: dec("10"), StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), IsActive: true},
			{DiscountPercent: dec("30"), StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), IsActive: true},
		},
	}
	got := EffectivePrice(product, now)
	require.True(t, got.Equal(dec("7.00")), "got %s", got)
}

func TestEffectivePriceIgnoresExpiredAndInactive(t *testing.T) {
	now := time.Now()
	product := &models.Product{
		UnitPrice: dec("10.00"),
		Promotions: []models.Promotion{
			{DiscountPercent: dec("50"), StartsAt: now.Add(-2 * time.Hour), EndsAt: now.Add(-time.Hour), IsActive: true},
			{DiscountPercent: dec("40"), StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), IsActive: false},
		},
	}
	got := EffectivePrice(product, now)
	require.True(t, got.Equal(dec("10.00")))
}

func TestEffectivePriceRoundsToTwoPlaces(t *testing.T) {
	now := time.Now()
	product := &models.Product{
		UnitPrice: dec("9.99"),
		Promotions: []models.Promotion{
			{DiscountPercent: dec("33"), StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), IsActive: true},
		},
	}
	// 9.99 * 0.67 = 6.6933 -> 6.69
	got := EffectivePrice(product, now)
	require.True(t, got.Equal(dec("6.69")), "got %s", got)
}

func TestTaglineFallsBackToAdultRegister(t *testing.T) {
	require.Equal(t, "Cuidado e higiene con ingredientes suaves.", Tagline("copy.higiene", enums.AgeModeJovenes))
	require.Equal(t, "¡Burbujas y cosquillas a la hora del baño!", Tagline("copy.higiene", enums.AgeModeNinos))
	require.Equal(t, "", Tagline("", enums.AgeModeAdultos))
	require.Equal(t, "", Tagline("copy.desconocido", enums.AgeModeAdultos))
}
