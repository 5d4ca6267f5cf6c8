package order

import (
	"time"

	"github.com/ebookstore/backend/internal/domain/identity"
	"github.com/ebookstore/backend/internal/domain/order"
)

// LineResponse represents one order line item in API responses
type LineResponse struct {
	BookID    string  `json:"book_id"`
	BookTitle string  `json:"book_title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Response represents an order in API responses
type Response struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	OrderDate   time.Time      `json:"order_date"`
	TotalAmount float64        `json:"total_amount"`
	Status      string         `json:"status"`
	Lines       []LineResponse `json:"lines"`
}

// Summary is the read projection joining an order with its customer,
// used for the order-details view and delivered-orders reports
type Summary struct {
	ID              string         `json:"id"`
	OrderDate       time.Time      `json:"order_date"`
	TotalAmount     float64        `json:"total_amount"`
	Status          string         `json:"status"`
	CustomerName    string         `json:"customer_name"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerAddress string         `json:"customer_address"`
	Lines           []LineResponse `json:"lines"`
}

// ToResponse maps a domain order to its response representation
func ToResponse(o *order.Order) Response {
	return Response{
		ID:          o.ID.String(),
		UserID:      o.UserID.String(),
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount.InexactFloat64(),
		Status:      o.Status.String(),
		Lines:       toLineResponses(o),
	}
}

// ToSummary maps an order and its customer to the read projection
func ToSummary(o *order.Order, u *identity.User) Summary {
	s := Summary{
		ID:          o.ID.String(),
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount.InexactFloat64(),
		Status:      o.Status.String(),
		Lines:       toLineResponses(o),
	}
	if u != nil {
		s.CustomerName = u.FullName()
		s.CustomerEmail = u.Email
		s.CustomerAddress = u.Address
	}
	return s
}

func toLineResponses(o *order.Order) []LineResponse {
	lines := make([]LineResponse, 0, len(o.Details))
	for i := range o.Details {
		d := &o.Details[i]
		lines = append(lines, LineResponse{
			BookID:    d.BookID.String(),
			BookTitle: d.BookTitle,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice.InexactFloat64(),
			LineTotal: d.ExtendedPrice().InexactFloat64(),
		})
	}
	return lines
}
