package purchaseorders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
)

// EditorInputs mirrors the input row of the line editor: the selected
// catalog item plus the quantity and unit price fields.
type EditorInputs struct {
	SelectedItemID uuid.UUID
	Quantity       int
	UnitPrice      decimal.Decimal
}

// Editor mediates operator input into valid DraftStore calls. Invalid input
// is rejected with a field-keyed message, never silently coerced; the policy
// is the same for the create and edit flows.
type Editor struct {
	store  *DraftStore
	inputs EditorInputs
}

// NewEditor binds an editor to a draft store with reset inputs.
func NewEditor(store *DraftStore) *Editor {
	e := &Editor{store: store}
	e.resetInputs()
	return e
}

// Inputs returns the current input row.
func (e *Editor) Inputs() EditorInputs {
	return e.inputs
}

// SelectItem picks a catalog item and pre-fills the unit price with its unit
// cost. The operator may override the price before adding.
func (e *Editor) SelectItem(itemID uuid.UUID, unitCost decimal.Decimal) error {
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item selection required").
			WithDetails(map[string]string{"item_id": "is required"})
	}
	e.inputs.SelectedItemID = itemID
	e.inputs.UnitPrice = unitCost
	return nil
}

// SetQuantity stages the quantity field without validating it; validation
// happens on Add.
func (e *Editor) SetQuantity(quantity int) {
	e.inputs.Quantity = quantity
}

// SetUnitPrice stages the unit price field, overriding any pre-fill.
func (e *Editor) SetUnitPrice(price decimal.Decimal) {
	e.inputs.UnitPrice = price
}

// Add validates the staged inputs and upserts them into the store. On
// success the input row resets to no selection, quantity 1, price zero.
func (e *Editor) Add() error {
	details := map[string]string{}
	if e.inputs.SelectedItemID == uuid.Nil {
		details["item_id"] = "select a product first"
	}
	if e.inputs.Quantity < 1 {
		details["quantity"] = "must be a positive whole number"
	}
	if !e.inputs.UnitPrice.IsPositive() {
		details["unit_price"] = "must be greater than zero"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "line input invalid").WithDetails(details)
	}

	if err := e.store.UpsertLine(e.inputs.SelectedItemID, e.inputs.Quantity, e.inputs.UnitPrice); err != nil {
		return err
	}
	e.resetInputs()
	return nil
}

// EditLine loads an existing line's values into the input row and removes
// the line from the store. The line is absent from the total until the
// operator re-adds it.
func (e *Editor) EditLine(itemID uuid.UUID) error {
	line, ok := e.store.Line(itemID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "line not found")
	}
	e.inputs = EditorInputs{
		SelectedItemID: line.ItemID,
		Quantity:       line.Quantity,
		UnitPrice:      line.UnitPrice,
	}
	e.store.RemoveLine(itemID)
	return nil
}

// Remove deletes the line without touching the input row.
func (e *Editor) Remove(itemID uuid.UUID) {
	e.store.RemoveLine(itemID)
}

func (e *Editor) resetInputs() {
	e.inputs = EditorInputs{Quantity: 1, UnitPrice: decimal.Zero}
}
