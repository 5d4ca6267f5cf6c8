package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ebookstore/backend/internal/domain/catalog"
	"github.com/ebookstore/backend/internal/domain/shared/valueobject"
	"github.com/ebookstore/backend/internal/infrastructure/persistence"
	"github.com/ebookstore/backend/internal/infrastructure/session"
)

func setupCartServiceTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Book{}))

	store := session.NewMemoryStore(30 * time.Minute)
	svc := NewService(store, persistence.NewGormBookRepository(db), zap.NewNop())
	return svc, db
}

func seedBook(t *testing.T, db *gorm.DB, title string, price string, stock int) *catalog.Book {
	money, err := valueobject.NewMoneyFromString(price, valueobject.USD)
	require.NoError(t, err)
	book, err := catalog.NewBook(title, "Some Author", "Fiction", money, stock, time.Now())
	require.NoError(t, err)
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a book with a price snapshot", func(t *testing.T) {
		svc, db := setupCartServiceTest(t)
		book := seedBook(t, db, "The Pragmatic Programmer", "42.00", 5)

		resp, err := svc.AddItem(ctx, "sess-1", book.ID, 2)
		require.NoError(t, err)

		require.Len(t, resp.Entries, 1)
		assert.Equal(t, "The Pragmatic Programmer", resp.Entries[0].Title)
		assert.Equal(t, 2, resp.Entries[0].Quantity)
		assert.InDelta(t, 42.00, resp.Entries[0].UnitPrice, 0.001)
		assert.Equal(t, 1, resp.ItemCount)
		assert.InDelta(t, 84.00, resp.Total, 0.001)
	})

	t.Run("accumulates quantity for repeated adds of the same book", func(t *testing.T) {
		svc, db := setupCartServiceTest(t)
		book := seedBook(t, db, "Accumulate", "10.00", 5)

		_, err := svc.AddItem(ctx, "sess-1", book.ID, 1)
		require.NoError(t, err)
		resp, err := svc.AddItem(ctx, "sess-1", book.ID, 2)
		require.NoError(t, err)

		require.Len(t, resp.Entries, 1)
		assert.Equal(t, 3, resp.Entries[0].Quantity)
		assert.Equal(t, 1, resp.ItemCount)
	})

	t.Run("unknown book leaves the cart unchanged", func(t *testing.T) {
		svc, _ := setupCartServiceTest(t)

		resp, err := svc.AddItem(ctx, "sess-1", uuid.New(), 1)
		require.NoError(t, err)
		assert.Empty(t, resp.Entries)
		assert.Zero(t, resp.ItemCount)
	})

	t.Run("inactive book leaves the cart unchanged", func(t *testing.T) {
		svc, db := setupCartServiceTest(t)
		book := seedBook(t, db, "Retired", "10.00", 5)
		require.NoError(t, db.Model(&catalog.Book{}).Where("id = ?", book.ID).Update("is_active", false).Error)

		resp, err := svc.AddItem(ctx, "sess-1", book.ID, 1)
		require.NoError(t, err)
		assert.Empty(t, resp.Entries)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc, db := setupCartServiceTest(t)
		book := seedBook(t, db, "Zero", "10.00", 5)

		_, err := svc.AddItem(ctx, "sess-1", book.ID, 0)
		require.Error(t, err)
	})

	t.Run("carts are isolated per session", func(t *testing.T) {
		svc, db := setupCartServiceTest(t)
		book := seedBook(t, db, "Mine Only", "10.00", 5)

		_, err := svc.AddItem(ctx, "sess-a", book.ID, 1)
		require.NoError(t, err)

		other, err := svc.Get(ctx, "sess-b")
		require.NoError(t, err)
		assert.Empty(t, other.Entries)
	})
}

func TestService_MutateAndClear(t *testing.T) {
	ctx := context.Background()

	t.Run("SetQuantity replaces the entry quantity", func(t *testing.T) {
		svc, db := setupCartServiceTest(t)
		book := seedBook(t, db, "Adjustable", "10.00", 5)

		_, err := svc.AddItem(ctx, "sess-1", book.ID, 1)
		require.NoError(t, err)

		resp, err := svc.SetQuantity(ctx, "sess-1", book.ID, 4)
		require.NoError(t, err)
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, 4, resp.Entries[0].Quantity)
	})

	t.Run("SetQuantity for a book not in the cart is a no-op", func(t *testing.T) {
		svc, db := setupCartServiceTest(t)
		book := seedBook(t, db, "Present", "10.00", 5)

		_, err := svc.AddItem(ctx, "sess-1", book.ID, 1)
		require.NoError(t, err)

		resp, err := svc.SetQuantity(ctx, "sess-1", uuid.New(), 9)
		require.NoError(t, err)
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, 1, resp.Entries[0].Quantity)
	})

	t.Run("RemoveItem drops the entry", func(t *testing.T) {
		svc, db := setupCartServiceTest(t)
		keep := seedBook(t, db, "Keep", "10.00", 5)
		drop := seedBook(t, db, "Drop", "10.00", 5)

		_, err := svc.AddItem(ctx, "sess-1", keep.ID, 1)
		require.NoError(t, err)
		_, err = svc.AddItem(ctx, "sess-1", drop.ID, 1)
		require.NoError(t, err)

		resp, err := svc.RemoveItem(ctx, "sess-1", drop.ID)
		require.NoError(t, err)
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, "Keep", resp.Entries[0].Title)
		assert.Equal(t, 1, resp.ItemCount)
	})

	t.Run("Clear empties the session cart", func(t *testing.T) {
		svc, db := setupCartServiceTest(t)
		book := seedBook(t, db, "Gone After Checkout", "10.00", 5)

		_, err := svc.AddItem(ctx, "sess-1", book.ID, 2)
		require.NoError(t, err)

		require.NoError(t, svc.Clear(ctx, "sess-1"))

		resp, err := svc.Get(ctx, "sess-1")
		require.NoError(t, err)
		assert.Empty(t, resp.Entries)
	})

	t.Run("Entries returns raw entries for checkout", func(t *testing.T) {
		svc, db := setupCartServiceTest(t)
		book := seedBook(t, db, "Raw", "10.00", 5)

		_, err := svc.AddItem(ctx, "sess-1", book.ID, 3)
		require.NoError(t, err)

		entries, err := svc.Entries(ctx, "sess-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, book.ID, entries[0].BookID)
		assert.Equal(t, 3, entries[0].Quantity)
	})
}
