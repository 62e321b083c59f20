package purchaseorders

import (
	"iter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
)

// DraftLine is one product entry of an in-progress purchase order. Subtotal
// is always derived from quantity and unit price, never stored.
type DraftLine struct {
	ItemID    uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity times unit price.
func (l DraftLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// DraftStore holds the ordered line collection for one editing session.
// Lines keep insertion order; replacing a line keeps its original position.
// Not safe for concurrent use; callers serialize through the draft session.
type DraftStore struct {
	lines []DraftLine
	index map[uuid.UUID]int
}

// NewDraftStore returns an empty store.
func NewDraftStore() *DraftStore {
	return &DraftStore{index: make(map[uuid.UUID]int)}
}

// UpsertLine adds a line for the product or replaces the existing one in
// place. Quantity must be at least 1 and unit price non-negative.
func (s *DraftStore) UpsertLine(itemID uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit price must not be negative")
	}

	line := DraftLine{ItemID: itemID, Quantity: quantity, UnitPrice: unitPrice}
	if pos, ok := s.index[itemID]; ok {
		s.lines[pos] = line
		return nil
	}
	s.index[itemID] = len(s.lines)
	s.lines = append(s.lines, line)
	return nil
}

// RemoveLine deletes the product's line. Removing an absent line is a no-op.
func (s *DraftStore) RemoveLine(itemID uuid.UUID) {
	pos, ok := s.index[itemID]
	if !ok {
		return
	}
	s.lines = append(s.lines[:pos], s.lines[pos+1:]...)
	delete(s.index, itemID)
	for i := pos; i < len(s.lines); i++ {
		s.index[s.lines[i].ItemID] = i
	}
}

// Line returns the stored line for the product, if present.
func (s *DraftStore) Line(itemID uuid.UUID) (DraftLine, bool) {
	pos, ok := s.index[itemID]
	if !ok {
		return DraftLine{}, false
	}
	return s.lines[pos], true
}

// Len reports the number of lines.
func (s *DraftStore) Len() int {
	return len(s.lines)
}

// Total sums the line subtotals. An empty store totals zero.
func (s *DraftStore) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Lines yields the lines in insertion order. The sequence is restartable and
// reflects the store's state at iteration time.
func (s *DraftStore) Lines() iter.Seq[DraftLine] {
	return func(yield func(DraftLine) bool) {
		for _, line := range s.lines {
			if !yield(line) {
				return
			}
		}
	}
}
