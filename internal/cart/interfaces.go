package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
)

// Repository defines persistence operations for cart items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, item *models.CartItem) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}
