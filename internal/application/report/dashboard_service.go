package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ebookstore/backend/internal/domain/catalog"
	"github.com/ebookstore/backend/internal/domain/identity"
	"github.com/ebookstore/backend/internal/domain/order"
	appOrder "github.com/ebookstore/backend/internal/application/order"
)

// DashboardSummary aggregates store activity for the admin landing page.
// Revenue figures count Delivered orders only.
type DashboardSummary struct {
	TotalBooks      int64                    `json:"total_books"`
	TotalCustomers  int64                    `json:"total_customers"`
	PendingOrders   int64                    `json:"pending_orders"`
	DeliveredOrders int64                    `json:"delivered_orders"`
	RevenueToday    float64                  `json:"revenue_today"`
	RevenueThisWeek float64                  `json:"revenue_this_week"`
	RevenueMonth    float64                  `json:"revenue_this_month"`
	RevenueYear     float64                  `json:"revenue_this_year"`
	RecentOrders    []appOrder.Summary       `json:"recent_orders"`
	RecentCustomers []RecentCustomerResponse `json:"recent_customers"`
}

// RecentCustomerResponse is a customer row on the dashboard
type RecentCustomerResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	RegistrationDate time.Time `json:"registration_date"`
}

// DashboardService computes the admin dashboard and delivered-order
// reports. The clock is injected so revenue windows are testable.
type DashboardService struct {
	orders order.Repository
	users  identity.UserRepository
	books  catalog.BookRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewDashboardService creates a dashboard service using the wall clock
func NewDashboardService(orders order.Repository, users identity.UserRepository, books catalog.BookRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		orders: orders,
		users:  users,
		books:  books,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock replaces the service's clock. Test hook.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

const recentLimit = 5

// Summary computes the dashboard aggregates. Revenue windows are anchored
// at local midnight: today, the Sunday starting the current week, the
// first of the month and the first of the year.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	summary := &DashboardSummary{}

	var err error
	if summary.TotalBooks, err = s.books.CountActive(ctx); err != nil {
		return nil, err
	}
	if summary.TotalCustomers, err = s.users.CountActiveCustomers(ctx); err != nil {
		return nil, err
	}
	if summary.PendingOrders, err = s.orders.CountByStatus(ctx, order.StatusPending); err != nil {
		return nil, err
	}
	if summary.DeliveredOrders, err = s.orders.CountByStatus(ctx, order.StatusDelivered); err != nil {
		return nil, err
	}

	for _, window := range []struct {
		since time.Time
		dest  *float64
	}{
		{today, &summary.RevenueToday},
		{weekStart, &summary.RevenueThisWeek},
		{monthStart, &summary.RevenueMonth},
		{yearStart, &summary.RevenueYear},
	} {
		total, err := s.orders.SumDeliveredSince(ctx, window.since)
		if err != nil {
			return nil, err
		}
		*window.dest = total.InexactFloat64()
	}

	recent, err := s.orders.FindRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	summary.RecentOrders = make([]appOrder.Summary, 0, len(recent))
	for i := range recent {
		user, err := s.users.FindByID(ctx, recent[i].UserID)
		if err != nil {
			user = nil
		}
		summary.RecentOrders = append(summary.RecentOrders, appOrder.ToSummary(&recent[i], user))
	}

	customers, err := s.users.FindRecentActiveCustomers(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	summary.RecentCustomers = make([]RecentCustomerResponse, 0, len(customers))
	for i := range customers {
		u := &customers[i]
		summary.RecentCustomers = append(summary.RecentCustomers, RecentCustomerResponse{
			ID:               u.ID.String(),
			Name:             u.FullName(),
			Email:            u.Email,
			RegistrationDate: u.RegistrationDate,
		})
	}

	return summary, nil
}

// DeliveredOrders returns Delivered orders within the optional inclusive
// date bounds, joined with their customers, for the delivered-orders
// report.
func (s *DashboardService) DeliveredOrders(ctx context.Context, from, to *time.Time) ([]appOrder.Summary, error) {
	orders, err := s.orders.FindDeliveredBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]appOrder.Summary, 0, len(orders))
	for i := range orders {
		user, err := s.users.FindByID(ctx, orders[i].UserID)
		if err != nil {
			user = nil
		}
		out = append(out, appOrder.ToSummary(&orders[i], user))
	}
	return out, nil
}
