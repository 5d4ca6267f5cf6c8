package order

import (
	"context"
	"time"

	"github.com/ebookstore/backend/internal/domain/catalog"
	"github.com/ebookstore/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines persistence operations for orders
type Repository interface {
	// FindByID loads an order with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByUser returns a user's orders, Pending first, newest first within
	// each group, line items included
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	// FindAll returns all orders, newest first, line items included
	FindAll(ctx context.Context) ([]Order, error)
	// FindRecent returns the most recent orders, line items included
	FindRecent(ctx context.Context, limit int) ([]Order, error)
	// FindDeliveredBetween returns Delivered orders whose order date falls
	// within the optional inclusive bounds; a nil bound is unconstrained
	FindDeliveredBetween(ctx context.Context, from, to *time.Time) ([]Order, error)
	Create(ctx context.Context, order *Order) error
	Save(ctx context.Context, order *Order) error
	CountByStatus(ctx context.Context, status Status) (int64, error)
	// SumDeliveredSince sums TotalAmount over Delivered orders dated at or
	// after the given instant
	SumDeliveredSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
}

// TxRepos exposes the repositories participating in one order-workflow
// transaction. Every repository returned operates on the same underlying
// transaction handle.
type TxRepos interface {
	Orders() Repository
	Books() catalog.BookRepository
	Users() identity.UserRepository
}

// TransactionManager runs a function inside a single storage transaction,
// rolling back every mutation when the function returns an error.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
