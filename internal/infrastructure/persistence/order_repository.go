package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ebookstore/backend/internal/domain/order"
	"github.com/ebookstore/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its line items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var ord order.Order
	if err := r.db.WithContext(ctx).
		Preload("Details").
		First(&ord, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ord, nil
}

// FindByUser returns a user's orders with Pending orders first, newest
// first within each group
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("user_id = ?", userID).
		Order("CASE WHEN status = 'Pending' THEN 0 ELSE 1 END, order_date DESC").
		Find(&orders).Error
	return orders, err
}

// FindAll returns all orders, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).
		Preload("Details").
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

// FindRecent returns the most recent orders
func (r *GormOrderRepository) FindRecent(ctx context.Context, limit int) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).
		Preload("Details").
		Order("order_date DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// FindDeliveredBetween returns Delivered orders within the optional
// inclusive date bounds, newest first
func (r *GormOrderRepository) FindDeliveredBetween(ctx context.Context, from, to *time.Time) ([]order.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Details").
		Where("status = ?", order.StatusDelivered)
	if from != nil {
		query = query.Where("order_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("order_date <= ?", *to)
	}

	var orders []order.Order
	err := query.Order("order_date DESC").Find(&orders).Error
	return orders, err
}

// Create persists a new order together with its line items
func (r *GormOrderRepository) Create(ctx context.Context, ord *order.Order) error {
	return r.db.WithContext(ctx).Create(ord).Error
}

// Save persists changes to an existing order
func (r *GormOrderRepository) Save(ctx context.Context, ord *order.Order) error {
	return r.db.WithContext(ctx).Save(ord).Error
}

// CountByStatus counts orders in the given status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&order.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// SumDeliveredSince sums totals over Delivered orders dated at or after
// the given instant
func (r *GormOrderRepository) SumDeliveredSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&order.Order{}).
		Select("SUM(total_amount)").
		Where("status = ? AND order_date >= ?", order.StatusDelivered, since).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
