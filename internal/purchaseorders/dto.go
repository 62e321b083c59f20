package purchaseorders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bebifresh/bebifresh-backend/pkg/db/models"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

// AddLineInput carries one add/update action from the line editor. A nil
// unit price keeps the pre-filled catalog unit cost.
type AddLineInput struct {
	ItemID    uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

// SubmitInput carries the order-level fields submitted with the draft's
// lines as one atomic payload.
type SubmitInput struct {
	DraftID    uuid.UUID
	OwnerID    uuid.UUID
	SupplierID uuid.UUID
	OrderedAt  time.Time
	Status     *enums.PurchaseOrderStatus
	Notes      *string
	AgeMode    enums.AgeMode
}

// ListFilter narrows the persisted order listing.
type ListFilter struct {
	Status   *enums.PurchaseOrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// DraftLineView is the rendered form of one draft line.
type DraftLineView struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// EditorInputsView is the rendered input row.
type EditorInputsView struct {
	SelectedItemID *uuid.UUID      `json:"selected_item_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// DraftView is the rendered editing session.
type DraftView struct {
	ID      uuid.UUID        `json:"id"`
	OrderID *uuid.UUID       `json:"order_id,omitempty"`
	Lines   []DraftLineView  `json:"lines"`
	Total   decimal.Decimal  `json:"total"`
	Inputs  EditorInputsView `json:"inputs"`
}

// OrderLineView is one persisted line.
type OrderLineView struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Position  int             `json:"position"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderView is the rendered persisted order.
type OrderView struct {
	ID         uuid.UUID                 `json:"id"`
	SupplierID uuid.UUID                 `json:"supplier_id"`
	OrderedAt  time.Time                 `json:"ordered_at"`
	Status     enums.PurchaseOrderStatus `json:"status"`
	Notes      *string                   `json:"notes,omitempty"`
	Total      decimal.Decimal           `json:"total"`
	Lines      []OrderLineView           `json:"lines"`
	ReceivedAt *time.Time                `json:"received_at,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// OrderListView pairs a page of orders with its pagination metadata.
type OrderListView struct {
	Orders []OrderView     `json:"orders"`
	Meta   pagination.Meta `json:"meta"`
}

func draftView(d *Draft, store *DraftStore, editor *Editor) DraftView {
	view := DraftView{
		ID:      d.ID,
		OrderID: d.OrderID,
		Lines:   make([]DraftLineView, 0, store.Len()),
		Total:   store.Total(),
	}
	for line := range store.Lines() {
		view.Lines = append(view.Lines, DraftLineView{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
		})
	}
	inputs := editor.Inputs()
	view.Inputs = EditorInputsView{
		Quantity:  inputs.Quantity,
		UnitPrice: inputs.UnitPrice,
	}
	if inputs.SelectedItemID != uuid.Nil {
		selected := inputs.SelectedItemID
		view.Inputs.SelectedItemID = &selected
	}
	return view
}

func orderView(order *models.PurchaseOrder) OrderView {
	view := OrderView{
		ID:         order.ID,
		SupplierID: order.SupplierID,
		OrderedAt:  order.OrderedAt,
		Status:     order.Status,
		Notes:      order.Notes,
		Total:      order.Total,
		Lines:      make([]OrderLineView, 0, len(order.Lines)),
		ReceivedAt: order.ReceivedAt,
		CreatedAt:  order.CreatedAt,
	}
	for _, line := range order.Lines {
		view.Lines = append(view.Lines, OrderLineView{
			ID:        line.ID,
			ProductID: line.ProductID,
			Position:  line.Position,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}
	return view
}
