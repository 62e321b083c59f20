package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a dashboard repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ProductCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *repository) SupplierCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Supplier{}).
		Count(&count).Error
	return count, err
}

func (r *repository) UserCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *repository) LowStockProducts(ctx context.Context, threshold, limit int) ([]models.Product, error) {
	stockExpr := "COALESCE((SELECT SUM(pb.qty) FROM product_batches pb WHERE pb.product_id = products.id), 0)"
	var products []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("products.*, "+stockExpr+" AS stock_total").
		Where("is_active = ?", true).
		Where(stockExpr+" <= ?", threshold).
		Order("stock_total ASC, name ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) SpendByStatus(ctx context.Context) ([]StatusSpend, error) {
	var rows []StatusSpend
	err := r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Select("status, COALESCE(SUM(total), 0) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ReceivedOrdersSince(ctx context.Context, cutoff time.Time) ([]ReceivedOrder, error) {
	var rows []ReceivedOrder
	err := r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Select("received_at, total").
		Where("received_at IS NOT NULL AND received_at >= ?", cutoff).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
