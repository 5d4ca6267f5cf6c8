package catalog

import (
	"context"

	"github.com/ebookstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BookRepository defines persistence operations for books.
//
// DecrementStock is the single enforcement point for the non-negative-stock
// invariant: implementations must reject the whole decrement when the
// requested quantity exceeds the quantity on hand (no partial decrement).
type BookRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Book, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Book, error)
	CountActive(ctx context.Context) (int64, error)
	Save(ctx context.Context, book *Book) error
	Deactivate(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically subtracts qty from the book's stock, failing
	// with shared.ErrInsufficientStock when stock would go negative and
	// shared.ErrNotFound when the book does not exist.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error

	// IncrementStock atomically adds qty back to the book's stock.
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

// FeedbackRepository defines persistence operations for book feedback
type FeedbackRepository interface {
	Save(ctx context.Context, feedback *Feedback) error
	FindByBook(ctx context.Context, bookID uuid.UUID) ([]Feedback, error)
}
