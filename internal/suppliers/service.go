package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/pkg/db"
	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

var supplierSortable = []string{"name", "tax_id", "created_at"}

// Service exposes supplier management for purchasing admins.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*View, error)
	Update(ctx context.Context, supplierID uuid.UUID, input UpdateInput) (*View, error)
	Get(ctx context.Context, supplierID uuid.UUID) (*View, error)
	List(ctx context.Context, params pagination.Params, search string) (*ListView, error)
	Delete(ctx context.Context, supplierID uuid.UUID) error
	SupplierExists(ctx context.Context, supplierID uuid.UUID) (bool, error)
}

type service struct {
	repo Repository
}

// NewService builds a supplier service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*View, error) {
	details := map[string]string{}
	if strings.TrimSpace(input.TaxID) == "" {
		details["tax_id"] = "is required"
	}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "is required"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	supplier := &models.Supplier{
		TaxID:       strings.TrimSpace(input.TaxID),
		Name:        strings.TrimSpace(input.Name),
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
	}
	created, err := s.repo.Create(ctx, supplier)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "tax id already registered").
				WithDetails(map[string]string{"tax_id": "already in use"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supplier")
	}

	view := supplierView(created)
	return &view, nil
}

func (s *service) Update(ctx context.Context, supplierID uuid.UUID, input UpdateInput) (*View, error) {
	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"name": "is required"})
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.ContactName != nil {
		updates["contact_name"] = input.ContactName
	}
	if input.Email != nil {
		updates["email"] = input.Email
	}
	if input.Phone != nil {
		updates["phone"] = input.Phone
	}
	if input.Address != nil {
		updates["address"] = input.Address
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, supplierID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update supplier")
		}
	}
	return s.Get(ctx, supplierID)
}

func (s *service) Get(ctx context.Context, supplierID uuid.UUID) (*View, error) {
	supplier, err := s.repo.Find(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}
	view := supplierView(supplier)
	return &view, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, search string) (*ListView, error) {
	params = pagination.Normalize(params, supplierSortable, "name")
	rows, total, err := s.repo.List(ctx, params, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suppliers")
	}

	view := &ListView{
		Suppliers: make([]View, 0, len(rows)),
		Meta:      pagination.MetaFor(params, total),
	}
	for i := range rows {
		view.Suppliers = append(view.Suppliers, supplierView(&rows[i]))
	}
	return view, nil
}

func (s *service) Delete(ctx context.Context, supplierID uuid.UUID) error {
	if _, err := s.Get(ctx, supplierID); err != nil {
		return err
	}
	referenced, err := s.repo.CountOrders(ctx, supplierID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count supplier orders")
	}
	if referenced > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "supplier has purchase orders")
	}
	if err := s.repo.Delete(ctx, supplierID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete supplier")
	}
	return nil
}

// SupplierExists reports whether the supplier is registered. Purchase order
// submission checks this before persisting.
func (s *service) SupplierExists(ctx context.Context, supplierID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, supplierID)
}
