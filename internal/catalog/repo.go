package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

const stockTotalSelect = "products.*, COALESCE((SELECT SUM(pb.qty) FROM product_batches pb WHERE pb.product_id = products.id), 0) AS stock_total"

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) FindProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Select(stockTotalSelect).
		Preload("Batches").
		Preload("Promotions").
		Where("products.id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindActiveProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", productID, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) UpdateProduct(ctx context.Context, productID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(updates).Error
}

func (r *repository) ListProducts(ctx context.Context, params pagination.Params, filter ListFilter) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.
		Select(stockTotalSelect).
		Preload("Promotions").
		Order(params.OrderClause()).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *repository) AddBatch(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int, lot *string) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	batch := models.ProductBatch{ProductID: productID, Qty: qty, Lot: lot}
	return db.WithContext(ctx).Create(&batch).Error
}

func (r *repository) CreatePromotion(ctx context.Context, promo *models.Promotion) (*models.Promotion, error) {
	if err := r.db.WithContext(ctx).Create(promo).Error; err != nil {
		return nil, err
	}
	return promo, nil
}

func (r *repository) DeletePromotion(ctx context.Context, promoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", promoID).
		Delete(&models.Promotion{}).Error
}
