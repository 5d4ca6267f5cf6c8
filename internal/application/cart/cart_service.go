package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ebookstore/backend/internal/domain/cart"
	"github.com/ebookstore/backend/internal/domain/catalog"
	"github.com/ebookstore/backend/internal/domain/shared"
)

// Service manages session-scoped shopping carts. Carts live in a session
// store, not the database; durable effects only happen at checkout through
// the order workflow.
type Service struct {
	store  cart.Store
	books  catalog.BookRepository
	logger *zap.Logger
}

// NewService creates a cart service
func NewService(store cart.Store, books catalog.BookRepository, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		books:  books,
		logger: logger,
	}
}

// Get returns the session's cart, empty if none exists yet
func (s *Service) Get(ctx context.Context, sessionID string) (*Response, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(c)
	return &resp, nil
}

// AddItem adds a book to the session's cart, snapshotting title, author and
// price for display. Adding a book that does not exist or is inactive
// leaves the cart unchanged.
func (s *Service) AddItem(ctx context.Context, sessionID string, bookID uuid.UUID, quantity int) (*Response, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Debug("add to cart ignored, unknown book",
				zap.String("session_id", sessionID),
				zap.String("book_id", bookID.String()))
			resp := ToResponse(c)
			return &resp, nil
		}
		return nil, err
	}
	if !book.IsActive {
		s.logger.Debug("add to cart ignored, inactive book",
			zap.String("session_id", sessionID),
			zap.String("book_id", bookID.String()))
		resp := ToResponse(c)
		return &resp, nil
	}

	if err := c.AddItem(book.ID, book.Title, book.Author, book.PriceMoney(), quantity); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, sessionID, c); err != nil {
		return nil, err
	}

	resp := ToResponse(c)
	return &resp, nil
}

// SetQuantity replaces the quantity of an entry already in the cart; a
// book not in the cart is left alone.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, bookID uuid.UUID, quantity int) (*Response, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.SetQuantity(bookID, quantity); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, sessionID, c); err != nil {
		return nil, err
	}
	resp := ToResponse(c)
	return &resp, nil
}

// RemoveItem deletes the entry for the book from the cart if present
func (s *Service) RemoveItem(ctx context.Context, sessionID string, bookID uuid.UUID) (*Response, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.RemoveItem(bookID)
	if err := s.store.Put(ctx, sessionID, c); err != nil {
		return nil, err
	}
	resp := ToResponse(c)
	return &resp, nil
}

// Entries returns the raw cart entries for checkout
func (s *Service) Entries(ctx context.Context, sessionID string) ([]cart.Entry, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return c.Items(), nil
}

// Clear drops the session's cart, typically after a successful checkout
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Remove(ctx, sessionID)
}
