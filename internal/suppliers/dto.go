package suppliers

import (
	"time"

	"github.com/google/uuid"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

// CreateInput carries an admin supplier creation.
type CreateInput struct {
	TaxID       string
	Name        string
	ContactName *string
	Email       *string
	Phone       *string
	Address     *string
}

// UpdateInput carries a partial supplier update; nil fields are left
// untouched.
type UpdateInput struct {
	Name        *string
	ContactName *string
	Email       *string
	Phone       *string
	Address     *string
}

// View is the rendered supplier.
type View struct {
	ID          uuid.UUID `json:"id"`
	TaxID       string    `json:"tax_id"`
	Name        string    `json:"name"`
	ContactName *string   `json:"contact_name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Address     *string   `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListView pairs a page of suppliers with pagination metadata.
type ListView struct {
	Suppliers []View          `json:"suppliers"`
	Meta      pagination.Meta `json:"meta"`
}

func supplierView(supplier *models.Supplier) View {
	return View{
		ID:          supplier.ID,
		TaxID:       supplier.TaxID,
		Name:        supplier.Name,
		ContactName: supplier.ContactName,
		Email:       supplier.Email,
		Phone:       supplier.Phone,
		Address:     supplier.Address,
		CreatedAt:   supplier.CreatedAt,
	}
}
