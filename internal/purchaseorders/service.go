package purchaseorders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bebifresh/bebifresh-backend/pkg/config"
	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/i18n"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
	"github.com/bebifresh/bebifresh-backend/pkg/redis"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindActiveProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
}

type supplierChecker interface {
	SupplierExists(ctx context.Context, supplierID uuid.UUID) (bool, error)
}

// StockReceiver appends received stock when an order's receive transition
// lands.
type StockReceiver interface {
	AddBatch(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int, lot *string) error
}

var orderSortable = []string{"ordered_at", "created_at", "total", "status"}

// Service drives the order editing sessions and the persisted order
// lifecycle.
type Service interface {
	OpenDraft(ctx context.Context, ownerID uuid.UUID, orderID *uuid.UUID) (*DraftView, error)
	ViewDraft(ctx context.Context, draftID, ownerID uuid.UUID) (*DraftView, error)
	AddLine(ctx context.Context, draftID, ownerID uuid.UUID, input AddLineInput) (*DraftView, error)
	EditLine(ctx context.Context, draftID, ownerID, itemID uuid.UUID) (*DraftView, error)
	RemoveLine(ctx context.Context, draftID, ownerID, itemID uuid.UUID) (*DraftView, error)
	DiscardDraft(ctx context.Context, draftID, ownerID uuid.UUID) error
	Submit(ctx context.Context, input SubmitInput) (*OrderView, error)
	Get(ctx context.Context, orderID uuid.UUID) (*OrderView, error)
	List(ctx context.Context, params pagination.Params, filter ListFilter) (*OrderListView, error)
	Receive(ctx context.Context, orderID uuid.UUID) (*OrderView, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (*OrderView, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	sessions  *SessionRegistry
	locker    redis.SubmitLocker
	products  productLoader
	suppliers supplierChecker
	stock     StockReceiver
	cfg       config.DraftsConfig
}

// NewService builds the purchase-order service with the required collaborators.
func NewService(repo Repository, tx txRunner, sessions *SessionRegistry, locker redis.SubmitLocker, products productLoader, suppliers supplierChecker, stock StockReceiver, cfg config.DraftsConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchase-order repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("draft session registry required")
	}
	if locker == nil {
		return nil, fmt.Errorf("submit locker required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if suppliers == nil {
		return nil, fmt.Errorf("supplier checker required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock receiver required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		sessions:  sessions,
		locker:    locker,
		products:  products,
		suppliers: suppliers,
		stock:     stock,
		cfg:       cfg,
	}, nil
}

// OpenDraft starts an editing session. When orderID is set the persisted
// order's lines are copied verbatim into the fresh store, subtotals
// recomputed from quantity and unit price.
func (s *service) OpenDraft(ctx context.Context, ownerID uuid.UUID, orderID *uuid.UUID) (*DraftView, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	draft := s.sessions.Create(ownerID)

	if orderID != nil {
		order, err := s.repo.FindOrder(ctx, *orderID)
		if err != nil {
			s.sessions.Discard(draft.ID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status != enums.PurchaseOrderStatusPending {
			s.sessions.Discard(draft.ID)
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can be edited")
		}

		target := order.ID
		draft.OrderID = &target
		if err := draft.With(func(store *DraftStore, _ *Editor) error {
			for _, line := range order.Lines {
				if err := store.UpsertLine(line.ProductID, line.Quantity, line.UnitPrice); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			s.sessions.Discard(draft.ID)
			return nil, err
		}
	}

	return s.viewOf(draft)
}

func (s *service) ViewDraft(ctx context.Context, draftID, ownerID uuid.UUID) (*DraftView, error) {
	draft, err := s.sessions.Get(draftID, ownerID)
	if err != nil {
		return nil, err
	}
	return s.viewOf(draft)
}

// AddLine runs the editor's add/update action: select the product (unit
// price pre-filled from its unit cost unless the input overrides it), stage
// quantity, then validate and upsert.
func (s *service) AddLine(ctx context.Context, draftID, ownerID uuid.UUID, input AddLineInput) (*DraftView, error) {
	draft, err := s.sessions.Get(draftID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line input invalid").
			WithDetails(map[string]string{"item_id": "select a product first"})
	}

	product, err := s.products.FindActiveProduct(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line input invalid").
				WithDetails(map[string]string{"item_id": "unknown or inactive product"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := draft.With(func(store *DraftStore, editor *Editor) error {
		if s.cfg.MaxLinesPerDraft > 0 && store.Len() >= s.cfg.MaxLinesPerDraft {
			if _, exists := store.Line(input.ItemID); !exists {
				return pkgerrors.New(pkgerrors.CodeValidation, "line input invalid").
					WithDetails(map[string]string{"item_id": "draft line limit reached"})
			}
		}
		if err := editor.SelectItem(product.ID, product.UnitCost); err != nil {
			return err
		}
		editor.SetQuantity(input.Quantity)
		if input.UnitPrice != nil {
			editor.SetUnitPrice(*input.UnitPrice)
		}
		return editor.Add()
	}); err != nil {
		return nil, err
	}

	return s.viewOf(draft)
}

// EditLine loads an existing line into the editor inputs and removes it from
// the store until the operator re-adds it.
func (s *service) EditLine(ctx context.Context, draftID, ownerID, itemID uuid.UUID) (*DraftView, error) {
	draft, err := s.sessions.Get(draftID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := draft.With(func(_ *DraftStore, editor *Editor) error {
		return editor.EditLine(itemID)
	}); err != nil {
		return nil, err
	}
	return s.viewOf(draft)
}

func (s *service) RemoveLine(ctx context.Context, draftID, ownerID, itemID uuid.UUID) (*DraftView, error) {
	draft, err := s.sessions.Get(draftID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := draft.With(func(_ *DraftStore, editor *Editor) error {
		editor.Remove(itemID)
		return nil
	}); err != nil {
		return nil, err
	}
	return s.viewOf(draft)
}

func (s *service) DiscardDraft(ctx context.Context, draftID, ownerID uuid.UUID) error {
	if _, err := s.sessions.Get(draftID, ownerID); err != nil {
		return err
	}
	s.sessions.Discard(draftID)
	return nil
}

// Submit persists the draft as one atomic payload: the order-level fields
// plus the complete line list. At most one submission per draft may be in
// flight; concurrent submits are refused until the prior one settles. A
// failed submission leaves the draft untouched and re-opens the guard;
// success consumes the draft.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*OrderView, error) {
	draft, err := s.sessions.Get(input.DraftID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if details := validateSubmitFields(input); len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	var lines []DraftLine
	if err := draft.With(func(store *DraftStore, _ *Editor) error {
		if store.Len() == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, i18n.Select(orderCopy, copyEmptyLines, input.AgeMode)).
				WithDetails(map[string]string{"lines": "at least one line required"})
		}
		for line := range store.Lines() {
			lines = append(lines, line)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	acquired, err := s.locker.AcquireSubmitLock(ctx, draft.ID.String(), s.cfg.SubmitLockTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire submit lock")
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeInFlight, i18n.Select(orderCopy, copyInFlight, input.AgeMode))
	}

	view, err := s.persist(ctx, draft, input, lines)
	if err != nil {
		// terminal failure: re-open the guard so the operator can retry
		_ = s.locker.ReleaseSubmitLock(ctx, draft.ID.String())
		return nil, err
	}

	s.sessions.Discard(draft.ID)
	_ = s.locker.ReleaseSubmitLock(ctx, draft.ID.String())
	return view, nil
}

func (s *service) persist(ctx context.Context, draft *Draft, input SubmitInput, lines []DraftLine) (*OrderView, error) {
	var persisted *models.PurchaseOrder

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		exists, err := s.suppliers.SupplierExists(ctx, input.SupplierID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check supplier")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"supplier_id": "unknown supplier"})
		}

		total := decimal.Zero
		orderLines := make([]models.PurchaseOrderLine, 0, len(lines))
		for i, line := range lines {
			subtotal := line.Subtotal()
			total = total.Add(subtotal)
			orderLines = append(orderLines, models.PurchaseOrderLine{
				ProductID: line.ItemID,
				Position:  i,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Subtotal:  subtotal,
			})
		}

		if draft.OrderID != nil {
			order, err := repo.FindOrder(ctx, *draft.OrderID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
			}
			if order.Status != enums.PurchaseOrderStatusPending {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can be updated")
			}

			updates := map[string]any{
				"supplier_id": input.SupplierID,
				"ordered_at":  input.OrderedAt,
				"notes":       input.Notes,
				"total":       total,
			}
			if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
			}
			for i := range orderLines {
				orderLines[i].PurchaseOrderID = order.ID
			}
			if err := repo.ReplaceLines(ctx, order.ID, orderLines); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace lines")
			}
			persisted, err = repo.FindOrder(ctx, order.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
			}
			return nil
		}

		order := &models.PurchaseOrder{
			SupplierID: input.SupplierID,
			OrderedAt:  input.OrderedAt,
			Status:     enums.PurchaseOrderStatusPending,
			Notes:      input.Notes,
			Total:      total,
			Lines:      orderLines,
		}
		persisted, err = repo.CreateOrder(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := orderView(persisted)
	return &view, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*OrderView, error) {
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	view := orderView(order)
	return &view, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filter ListFilter) (*OrderListView, error) {
	params = pagination.Normalize(params, orderSortable, "ordered_at")
	orders, total, err := s.repo.ListOrders(ctx, params, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	view := &OrderListView{
		Orders: make([]OrderView, 0, len(orders)),
		Meta:   pagination.MetaFor(params, total),
	}
	for i := range orders {
		view.Orders = append(view.Orders, orderView(&orders[i]))
	}
	return view, nil
}

// Receive marks a pending order received and appends the ordered quantities
// as stock batches.
func (s *service) Receive(ctx context.Context, orderID uuid.UUID) (*OrderView, error) {
	var received *models.PurchaseOrder

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status != enums.PurchaseOrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can be received")
		}

		now := time.Now().UTC()
		if err := repo.UpdateStatus(ctx, order.ID, enums.PurchaseOrderStatusReceived, map[string]any{"received_at": now}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update status")
		}

		lot := fmt.Sprintf("po-%s", order.ID)
		for _, line := range order.Lines {
			if err := s.stock.AddBatch(ctx, tx, line.ProductID, line.Quantity, &lot); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append stock batch")
			}
		}

		received, err = repo.FindOrder(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := orderView(received)
	return &view, nil
}

// Cancel is allowed only from pending.
func (s *service) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderView, error) {
	var cancelled *models.PurchaseOrder

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status != enums.PurchaseOrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can be cancelled")
		}

		if err := repo.UpdateStatus(ctx, order.ID, enums.PurchaseOrderStatusCancelled, nil); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update status")
		}

		cancelled, err = repo.FindOrder(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := orderView(cancelled)
	return &view, nil
}

func (s *service) viewOf(draft *Draft) (*DraftView, error) {
	var view DraftView
	if err := draft.With(func(store *DraftStore, editor *Editor) error {
		view = draftView(draft, store, editor)
		return nil
	}); err != nil {
		return nil, err
	}
	return &view, nil
}

func validateSubmitFields(input SubmitInput) map[string]string {
	details := map[string]string{}
	if input.SupplierID == uuid.Nil {
		details["supplier_id"] = "is required"
	}
	if input.OrderedAt.IsZero() {
		details["ordered_at"] = "is required"
	}
	if input.Status != nil && *input.Status != enums.PurchaseOrderStatusPending {
		details["status"] = "orders submit as pending; use the receive and cancel endpoints"
	}
	return details
}
