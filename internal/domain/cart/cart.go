package cart

import (
	"github.com/ebookstore/backend/internal/domain/shared"
	"github.com/ebookstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is one (book, quantity) selection in a cart. Title, Author and
// UnitPrice are snapshots taken when the book was first added, used for
// display only; checkout recomputes totals from current catalog prices.
type Entry struct {
	BookID    uuid.UUID       `json:"book_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns the snapshot price multiplied by quantity
func (e Entry) LineTotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Cart holds the selections of one browsing session. Entries preserve
// insertion order; ItemCount tracks the number of distinct entries and is
// kept consistent with len(Entries) by every mutation.
type Cart struct {
	Entries   []Entry `json:"entries"`
	ItemCount int     `json:"item_count"`
}

// New returns an empty cart
func New() *Cart {
	return &Cart{Entries: make([]Entry, 0)}
}

// AddItem adds a selection to the cart. If an entry for the book already
// exists its quantity is increased; otherwise a new entry is appended with
// the given snapshot.
func (c *Cart) AddItem(bookID uuid.UUID, title, author string, unitPrice valueobject.Money, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for i := range c.Entries {
		if c.Entries[i].BookID == bookID {
			c.Entries[i].Quantity += quantity
			return nil
		}
	}

	c.Entries = append(c.Entries, Entry{
		BookID:    bookID,
		Title:     title,
		Author:    author,
		UnitPrice: unitPrice.Amount(),
		Quantity:  quantity,
	})
	c.ItemCount++

	return nil
}

// SetQuantity replaces the quantity of an existing entry; no-op if absent
func (c *Cart) SetQuantity(bookID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for i := range c.Entries {
		if c.Entries[i].BookID == bookID {
			c.Entries[i].Quantity = quantity
			return nil
		}
	}

	return nil
}

// RemoveItem deletes the entry for the book if present; no-op otherwise
func (c *Cart) RemoveItem(bookID uuid.UUID) {
	for i := range c.Entries {
		if c.Entries[i].BookID == bookID {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			c.ItemCount--
			return
		}
	}
}

// Items returns the entries in insertion order
func (c *Cart) Items() []Entry {
	return c.Entries
}

// IsEmpty reports whether the cart has no entries
func (c *Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

// Total returns the sum of snapshot line totals, for display
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Entries {
		total = total.Add(e.LineTotal())
	}
	return total
}

// Clear empties the cart; called after successful checkout
func (c *Cart) Clear() {
	c.Entries = c.Entries[:0]
	c.ItemCount = 0
}
