package order

import (
	"fmt"
	"time"

	"github.com/ebookstore/backend/internal/domain/shared"
	"github.com/ebookstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the status of an order
type Status string

const (
	StatusPending   Status = "Pending"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCanceled  Status = "Canceled"
)

// IsValid checks if the status is a defined Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Canceled orders re-enter the main flow only through Pending (reorder);
// Delivered is terminal.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusShipped || target == StatusCanceled
	case StatusShipped:
		return target == StatusDelivered
	case StatusCanceled:
		return target == StatusPending
	case StatusDelivered:
		return false
	}
	return false
}

// Detail is one line item of an order. Title and UnitPrice are captured at
// order time so historical orders stay accurate when catalog prices change.
type Detail struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	BookID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BookTitle string          `gorm:"type:varchar(200);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (Detail) TableName() string {
	return "order_details"
}

// ExtendedPrice returns unit price multiplied by quantity
func (d *Detail) ExtendedPrice() decimal.Decimal {
	return d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// Order is the aggregate root of the order workflow. It exclusively owns its
// Detail collection; TotalAmount is fixed at placement and never recomputed
// on cancel or reorder.
type Order struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderDate   time.Time       `gorm:"not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status      Status          `gorm:"type:varchar(20);not null;index"`
	Details     []Detail        `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an empty Pending order for a user
func NewOrder(userID uuid.UUID) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		OrderDate:         time.Now(),
		TotalAmount:       decimal.Zero,
		Status:            StatusPending,
		Details:           make([]Detail, 0),
	}, nil
}

// AddLine captures a line item at the current unit price and accumulates the
// order total. Only legal before the order is persisted (Pending, no status
// transitions yet).
func (o *Order) AddLine(bookID uuid.UUID, bookTitle string, quantity int, unitPrice valueobject.Money) error {
	if bookID == uuid.Nil {
		return shared.NewDomainError("INVALID_BOOK", "Book ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	detail := Detail{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		BookID:     bookID,
		BookTitle:  bookTitle,
		Quantity:   quantity,
		UnitPrice:  unitPrice.Amount().Round(2),
	}
	o.Details = append(o.Details, detail)
	o.TotalAmount = o.TotalAmount.Add(detail.ExtendedPrice())
	o.UpdatedAt = time.Now()

	return nil
}

// Ship marks the order as shipped
func (o *Order) Ship() error {
	return o.transition(StatusShipped)
}

// Deliver marks the order as delivered
func (o *Order) Deliver() error {
	return o.transition(StatusDelivered)
}

// Cancel marks the order as canceled. The caller is responsible for
// restoring stock for every line item inside the same transaction.
func (o *Order) Cancel() error {
	return o.transition(StatusCanceled)
}

// Reorder moves a canceled order back to Pending with a refreshed order
// date. The caller is responsible for re-consuming stock inside the same
// transaction, after validating every line item.
func (o *Order) Reorder() error {
	if err := o.transition(StatusPending); err != nil {
		return err
	}
	o.OrderDate = time.Now()
	return nil
}

// OverrideStatus sets the status directly without checking transition
// legality and without any stock side effects. Administrative use only.
func (o *Order) OverrideStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", status))
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

func (o *Order) transition(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// IsPending returns true if the order is pending
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}

// IsCanceled returns true if the order is canceled
func (o *Order) IsCanceled() bool {
	return o.Status == StatusCanceled
}

// IsDelivered returns true if the order is delivered
func (o *Order) IsDelivered() bool {
	return o.Status == StatusDelivered
}

// TotalAmountMoney returns the total as a Money value object
func (o *Order) TotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// LineCount returns the number of line items
func (o *Order) LineCount() int {
	return len(o.Details)
}
