package cart

import "github.com/ebookstore/backend/internal/domain/cart"

// EntryResponse represents one cart entry in API responses
type EntryResponse struct {
	BookID    string  `json:"book_id"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// Response represents a cart in API responses
type Response struct {
	Entries   []EntryResponse `json:"entries"`
	ItemCount int             `json:"item_count"`
	Total     float64         `json:"total"`
}

// ToResponse maps a domain cart to its response representation
func ToResponse(c *cart.Cart) Response {
	entries := make([]EntryResponse, 0, len(c.Entries))
	for _, e := range c.Entries {
		entries = append(entries, EntryResponse{
			BookID:    e.BookID.String(),
			Title:     e.Title,
			Author:    e.Author,
			UnitPrice: e.UnitPrice.InexactFloat64(),
			Quantity:  e.Quantity,
			LineTotal: e.LineTotal().InexactFloat64(),
		})
	}
	return Response{
		Entries:   entries,
		ItemCount: c.ItemCount,
		Total:     c.Total().InexactFloat64(),
	}
}
