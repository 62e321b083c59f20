package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type cartKey struct {
	user    uuid.UUID
	product uuid.UUID
}

type stubCartRepo struct {
	items    map[cartKey]*models.CartItem
	products map[uuid.UUID]*models.Product
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{
		items:    map[cartKey]*models.CartItem{},
		products: map[uuid.UUID]*models.Product{},
	}
}

func (s *stubCartRepo) addProduct(name string, price decimal.Decimal) *models.Product {
	product := &models.Product{
		ID:        uuid.New(),
		Name:      name,
		SKU:       "SKU-" + name,
		Category:  enums.ProductCategoryAlimentacion,
		UnitPrice: price,
		IsActive:  true,
	}
	s.products[product.ID] = product
	return product
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCartRepo) Upsert(ctx context.Context, item *models.CartItem) error {
	key := cartKey{user: item.UserID, product: item.ProductID}
	if existing, ok := s.items[key]; ok {
		existing.Quantity = item.Quantity
		return nil
	}
	s.items[key] = item
	return nil
}

func (s *stubCartRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var out []models.CartItem
	for key, item := range s.items {
		if key.user != userID {
			continue
		}
		row := *item
		row.Product = s.products[item.ProductID]
		out = append(out, row)
	}
	return out, nil
}

func (s *stubCartRepo) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	delete(s.items, cartKey{user: userID, product: productID})
	return nil
}

func (s *stubCartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	for key := range s.items {
		if key.user == userID {
			delete(s.items, key)
		}
	}
	return nil
}

func (s *stubCartRepo) FindActiveProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, ok := s.products[productID]
	if !ok || !product.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func newCartService(t *testing.T, repo *stubCartRepo) Service {
	t.Helper()
	svc, err := NewService(repo, repo)
	require.NoError(t, err)
	return svc
}

func TestUpsertValidatesInput(t *testing.T) {
	repo := newStubCartRepo()
	svc := newCartService(t, repo)

	_, err := svc.Upsert(context.Background(), uuid.New(), UpsertInput{Quantity: 0})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	require.Contains(t, details, "product_id")
	require.Contains(t, details, "quantity")
	require.Empty(t, repo.items)
}

func TestUpsertRejectsUnknownProduct(t *testing.T) {
	repo := newStubCartRepo()
	svc := newCartService(t, repo)

	_, err := svc.Upsert(context.Background(), uuid.New(), UpsertInput{ProductID: uuid.New(), Quantity: 2})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	require.Equal(t, "unknown or inactive product", details["product_id"])
	require.Empty(t, repo.items)
}

func TestUpsertReplacesQuantity(t *testing.T) {
	repo := newStubCartRepo()
	svc := newCartService(t, repo)

	user := uuid.New()
	product := repo.addProduct("Papilla", dec("4.00"))

	view, err := svc.Upsert(context.Background(), user, UpsertInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	require.Equal(t, 2, view.Lines[0].Quantity)

	view, err = svc.Upsert(context.Background(), user, UpsertInput{ProductID: product.ID, Quantity: 5})
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	require.Equal(t, 5, view.Lines[0].Quantity)
	require.True(t, dec("20.00").Equal(view.Total))
}

func TestListPricesLinesWithLivePromotion(t *testing.T) {
	repo := newStubCartRepo()
	svc := newCartService(t, repo)

	user := uuid.New()
	plain := repo.addProduct("Papilla", dec("4.00"))
	promoted := repo.addProduct("Pañales", dec("10.00"))
	now := time.Now()
	promoted.Promotions = []models.Promotion{{
		ProductID:       promoted.ID,
		Name:            "Rebaja",
		DiscountPercent: dec("25"),
		StartsAt:        now.Add(-time.Hour),
		EndsAt:          now.Add(time.Hour),
		IsActive:        true,
	}}

	_, err := svc.Upsert(context.Background(), user, UpsertInput{ProductID: plain.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), user, UpsertInput{ProductID: promoted.ID, Quantity: 3})
	require.NoError(t, err)

	view, err := svc.List(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)

	byName := map[string]LineView{}
	for _, line := range view.Lines {
		byName[line.ProductName] = line
	}
	require.True(t, dec("8.00").Equal(byName["Papilla"].LineTotal))
	require.True(t, dec("7.50").Equal(byName["Pañales"].UnitPrice))
	require.True(t, dec("22.50").Equal(byName["Pañales"].LineTotal))
	require.True(t, dec("30.50").Equal(view.Total))
}

func TestRemoveAndClear(t *testing.T) {
	repo := newStubCartRepo()
	svc := newCartService(t, repo)

	user := uuid.New()
	first := repo.addProduct("Papilla", dec("4.00"))
	second := repo.addProduct("Pañales", dec("10.00"))

	_, err := svc.Upsert(context.Background(), user, UpsertInput{ProductID: first.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), user, UpsertInput{ProductID: second.ID, Quantity: 1})
	require.NoError(t, err)

	view, err := svc.Remove(context.Background(), user, first.ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)

	require.NoError(t, svc.Clear(context.Background(), user))
	view, err = svc.List(context.Background(), user)
	require.NoError(t, err)
	require.Empty(t, view.Lines)
	require.True(t, view.Total.IsZero())
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	repo := newStubCartRepo()
	svc := newCartService(t, repo)

	product := repo.addProduct("Papilla", dec("4.00"))
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Upsert(context.Background(), alice, UpsertInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	view, err := svc.List(context.Background(), bob)
	require.NoError(t, err)
	require.Empty(t, view.Lines)
}
