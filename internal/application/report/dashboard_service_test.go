package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ebookstore/backend/internal/domain/catalog"
	"github.com/ebookstore/backend/internal/domain/identity"
	"github.com/ebookstore/backend/internal/domain/order"
	"github.com/ebookstore/backend/internal/domain/shared"
	"github.com/ebookstore/backend/internal/domain/shared/valueobject"
	"github.com/ebookstore/backend/internal/infrastructure/persistence"
)

// Wednesday afternoon; the week window starts Sunday June 9
var testClock = time.Date(2024, time.June, 12, 15, 30, 0, 0, time.UTC)

func setupDashboardTest(t *testing.T) (*DashboardService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&identity.User{}, &catalog.Book{}, &order.Order{}, &order.Detail{}))

	svc := NewDashboardService(
		persistence.NewGormOrderRepository(db),
		persistence.NewGormUserRepository(db),
		persistence.NewGormBookRepository(db),
		zap.NewNop(),
	).WithClock(func() time.Time { return testClock })
	return svc, db
}

func seedCustomer(t *testing.T, db *gorm.DB, email string) *identity.User {
	user, err := identity.NewUser("Grace", "Hopper", email, "hash")
	require.NoError(t, err)
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, status order.Status, orderDate time.Time, total string) *order.Order {
	amount, err := decimal.NewFromString(total)
	require.NoError(t, err)
	ord := &order.Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		OrderDate:         orderDate,
		TotalAmount:       amount,
		Status:            status,
	}
	require.NoError(t, db.Create(ord).Error)
	return ord
}

func seedCatalogBook(t *testing.T, db *gorm.DB, title string) *catalog.Book {
	book, err := catalog.NewBook(title, "Some Author", "Fiction", valueobject.NewMoneyUSDFromFloat(12), 4, testClock)
	require.NoError(t, err)
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("counts books, customers and orders by status", func(t *testing.T) {
		svc, db := setupDashboardTest(t)
		user := seedCustomer(t, db, "grace@example.com")
		seedCatalogBook(t, db, "Counted")
		seedOrder(t, db, user.ID, order.StatusPending, testClock, "10.00")
		seedOrder(t, db, user.ID, order.StatusDelivered, testClock, "20.00")
		seedOrder(t, db, user.ID, order.StatusCanceled, testClock, "30.00")

		summary, err := svc.Summary(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(1), summary.TotalBooks)
		assert.Equal(t, int64(1), summary.TotalCustomers)
		assert.Equal(t, int64(1), summary.PendingOrders)
		assert.Equal(t, int64(1), summary.DeliveredOrders)
	})

	t.Run("revenue windows anchor at midnight, Sunday, month and year start", func(t *testing.T) {
		svc, db := setupDashboardTest(t)
		user := seedCustomer(t, db, "grace@example.com")

		// Delivered today (counts in all four windows)
		seedOrder(t, db, user.ID, order.StatusDelivered, testClock.Add(-2*time.Hour), "10.00")
		// Delivered Monday this week (week, month, year)
		seedOrder(t, db, user.ID, order.StatusDelivered, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), "20.00")
		// Delivered June 1st, before the week window (month, year)
		seedOrder(t, db, user.ID, order.StatusDelivered, time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC), "40.00")
		// Delivered in January (year only)
		seedOrder(t, db, user.ID, order.StatusDelivered, time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC), "80.00")
		// Last year, outside every window
		seedOrder(t, db, user.ID, order.StatusDelivered, time.Date(2023, time.December, 30, 12, 0, 0, 0, time.UTC), "160.00")

		summary, err := svc.Summary(ctx)
		require.NoError(t, err)

		assert.InDelta(t, 10.00, summary.RevenueToday, 0.001)
		assert.InDelta(t, 30.00, summary.RevenueThisWeek, 0.001)
		assert.InDelta(t, 70.00, summary.RevenueMonth, 0.001)
		assert.InDelta(t, 150.00, summary.RevenueYear, 0.001)
	})

	t.Run("only delivered orders count toward revenue", func(t *testing.T) {
		svc, db := setupDashboardTest(t)
		user := seedCustomer(t, db, "grace@example.com")

		seedOrder(t, db, user.ID, order.StatusPending, testClock, "100.00")
		seedOrder(t, db, user.ID, order.StatusShipped, testClock, "100.00")
		seedOrder(t, db, user.ID, order.StatusCanceled, testClock, "100.00")
		seedOrder(t, db, user.ID, order.StatusDelivered, testClock, "25.00")

		summary, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 25.00, summary.RevenueToday, 0.001)
	})

	t.Run("recent orders and customers are capped at five", func(t *testing.T) {
		svc, db := setupDashboardTest(t)
		user := seedCustomer(t, db, "grace@example.com")
		for i := 0; i < 7; i++ {
			seedOrder(t, db, user.ID, order.StatusPending, testClock.Add(-time.Duration(i)*time.Hour), "5.00")
		}

		summary, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Len(t, summary.RecentOrders, 5)
		require.Len(t, summary.RecentCustomers, 1)
		assert.Equal(t, "Grace Hopper", summary.RecentCustomers[0].Name)
	})
}

func TestDashboardService_DeliveredOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("returns delivered orders within the date bounds", func(t *testing.T) {
		svc, db := setupDashboardTest(t)
		user := seedCustomer(t, db, "grace@example.com")

		inside := seedOrder(t, db, user.ID, order.StatusDelivered, time.Date(2024, time.June, 5, 10, 0, 0, 0, time.UTC), "10.00")
		seedOrder(t, db, user.ID, order.StatusDelivered, time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC), "20.00")
		seedOrder(t, db, user.ID, order.StatusPending, time.Date(2024, time.June, 5, 10, 0, 0, 0, time.UTC), "30.00")

		from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
		out, err := svc.DeliveredOrders(ctx, &from, &to)
		require.NoError(t, err)

		require.Len(t, out, 1)
		assert.Equal(t, inside.ID.String(), out[0].ID)
		assert.Equal(t, "Grace Hopper", out[0].CustomerName)
	})

	t.Run("nil bounds return all delivered orders", func(t *testing.T) {
		svc, db := setupDashboardTest(t)
		user := seedCustomer(t, db, "grace@example.com")
		seedOrder(t, db, user.ID, order.StatusDelivered, testClock, "10.00")
		seedOrder(t, db, user.ID, order.StatusDelivered, testClock.AddDate(-1, 0, 0), "20.00")

		out, err := svc.DeliveredOrders(ctx, nil, nil)
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})
}
