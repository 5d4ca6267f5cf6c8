package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ebookstore/backend/internal/domain/cart"
	"github.com/ebookstore/backend/internal/domain/catalog"
	"github.com/ebookstore/backend/internal/domain/identity"
	"github.com/ebookstore/backend/internal/domain/order"
	"github.com/ebookstore/backend/internal/domain/shared"
)

// Service orchestrates the order workflow: placement, cancellation, reorder
// and administrative status changes. Every stock-affecting operation runs
// inside one storage transaction so an order and its inventory effects
// commit or roll back together.
type Service struct {
	tm     order.TransactionManager
	orders order.Repository
	users  identity.UserRepository
	logger *zap.Logger
}

// NewService creates an order workflow service
func NewService(tm order.TransactionManager, orders order.Repository, users identity.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		tm:     tm,
		orders: orders,
		users:  users,
		logger: logger,
	}
}

type placementLine struct {
	book *catalog.Book
	qty  int
}

// Place turns the cart entries into a Pending order for the user. Every
// line is validated against the current catalog before any stock moves;
// unit prices are re-read from the catalog, not taken from the cart
// snapshots. Stock decrements use the storage-level guarded update, so a
// concurrent purchase that drains a book between validation and decrement
// still rolls the whole order back.
func (s *Service) Place(ctx context.Context, userID uuid.UUID, entries []cart.Entry) (*Response, error) {
	if len(entries) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot place an order with an empty cart")
	}

	var placed *order.Order
	err := s.tm.WithinTx(ctx, func(r order.TxRepos) error {
		user, err := r.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if !user.IsActive {
			return shared.NewDomainError("USER_INACTIVE", "User account is deactivated")
		}

		lines := make([]placementLine, 0, len(entries))
		for _, entry := range entries {
			book, err := r.Books().FindByID(ctx, entry.BookID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("NOT_FOUND",
						fmt.Sprintf("Book '%s' is no longer available", entry.Title))
				}
				return err
			}
			if !book.IsActive {
				return shared.NewDomainError("NOT_FOUND",
					fmt.Sprintf("Book '%s' is no longer available", book.Title))
			}
			if book.QuantityInStock < entry.Quantity {
				return shared.NewStockError(book.ID.String(), book.Title, book.QuantityInStock)
			}
			lines = append(lines, placementLine{book: book, qty: entry.Quantity})
		}

		ord, err := order.NewOrder(userID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := r.Books().DecrementStock(ctx, line.book.ID, line.qty); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					return shared.NewStockError(line.book.ID.String(), line.book.Title, line.book.QuantityInStock)
				}
				return err
			}
			if err := ord.AddLine(line.book.ID, line.book.Title, line.qty, line.book.PriceMoney()); err != nil {
				return err
			}
		}

		if err := r.Orders().Create(ctx, ord); err != nil {
			return err
		}
		placed = ord
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("lines", placed.LineCount()),
		zap.String("total", placed.TotalAmount.StringFixed(2)))

	resp := ToResponse(placed)
	return &resp, nil
}

// Cancel moves a Pending order to Canceled and restores the stock of every
// line item, all inside one transaction.
func (s *Service) Cancel(ctx context.Context, orderID uuid.UUID) (*Response, error) {
	var canceled *order.Order
	err := s.tm.WithinTx(ctx, func(r order.TxRepos) error {
		ord, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := ord.Cancel(); err != nil {
			return err
		}
		for i := range ord.Details {
			d := &ord.Details[i]
			if err := r.Books().IncrementStock(ctx, d.BookID, d.Quantity); err != nil {
				return err
			}
		}
		if err := r.Orders().Save(ctx, ord); err != nil {
			return err
		}
		canceled = ord
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order canceled",
		zap.String("order_id", orderID.String()),
		zap.Int("lines_restored", canceled.LineCount()))

	resp := ToResponse(canceled)
	return &resp, nil
}

// Reorder re-activates a Canceled order: every original line is validated
// against current stock before any decrement happens, then stock is
// consumed again and the order returns to Pending with a refreshed order
// date. The original total and unit prices are kept as placed.
func (s *Service) Reorder(ctx context.Context, orderID uuid.UUID) (*Response, error) {
	var reordered *order.Order
	err := s.tm.WithinTx(ctx, func(r order.TxRepos) error {
		ord, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !ord.IsCanceled() {
			return shared.NewDomainError("INVALID_STATE", "Only canceled orders can be reordered")
		}

		for i := range ord.Details {
			d := &ord.Details[i]
			book, err := r.Books().FindByID(ctx, d.BookID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewStockError(d.BookID.String(), d.BookTitle, 0)
				}
				return err
			}
			if !book.IsActive {
				return shared.NewStockError(book.ID.String(), book.Title, 0)
			}
			if book.QuantityInStock < d.Quantity {
				return shared.NewStockError(book.ID.String(), book.Title, book.QuantityInStock)
			}
		}

		for i := range ord.Details {
			d := &ord.Details[i]
			if err := r.Books().DecrementStock(ctx, d.BookID, d.Quantity); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					return shared.NewStockError(d.BookID.String(), d.BookTitle, 0)
				}
				return err
			}
		}

		if err := ord.Reorder(); err != nil {
			return err
		}
		if err := r.Orders().Save(ctx, ord); err != nil {
			return err
		}
		reordered = ord
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order reordered",
		zap.String("order_id", orderID.String()),
		zap.Int("lines", reordered.LineCount()))

	resp := ToResponse(reordered)
	return &resp, nil
}

// ChangeStatus overwrites an order's status without transition checks and
// without touching stock. Administrative operation; the caller is trusted.
func (s *Service) ChangeStatus(ctx context.Context, orderID uuid.UUID, status order.Status) (*Response, error) {
	ord, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := ord.OverrideStatus(status); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, ord); err != nil {
		return nil, err
	}

	s.logger.Info("order status overridden",
		zap.String("order_id", orderID.String()),
		zap.String("status", status.String()))

	resp := ToResponse(ord)
	return &resp, nil
}

// GetDetails returns the order joined with its customer
func (s *Service) GetDetails(ctx context.Context, orderID uuid.UUID) (*Summary, error) {
	ord, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, ord.UserID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	summary := ToSummary(ord, user)
	return &summary, nil
}

// ListByUser returns the user's orders, Pending first, newest first within
// each status group.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Response, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(orders), nil
}

// ListAll returns every order joined with its customer, newest first
func (s *Service) ListAll(ctx context.Context) ([]Summary, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toSummaries(ctx, orders)
}

func toResponses(orders []order.Order) []Response {
	out := make([]Response, 0, len(orders))
	for i := range orders {
		out = append(out, ToResponse(&orders[i]))
	}
	return out
}

func (s *Service) toSummaries(ctx context.Context, orders []order.Order) ([]Summary, error) {
	users := make(map[uuid.UUID]*identity.User)
	out := make([]Summary, 0, len(orders))
	for i := range orders {
		ord := &orders[i]
		user, ok := users[ord.UserID]
		if !ok {
			var err error
			user, err = s.users.FindByID(ctx, ord.UserID)
			if err != nil {
				if !errors.Is(err, shared.ErrNotFound) {
					return nil, err
				}
				user = nil
			}
			users[ord.UserID] = user
		}
		out = append(out, ToSummary(ord, user))
	}
	return out, nil
}
