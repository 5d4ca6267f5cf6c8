package catalog_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogapp "github.com/ebookstore/backend/internal/application/catalog"
	domaincatalog "github.com/ebookstore/backend/internal/domain/catalog"
	"github.com/ebookstore/backend/internal/domain/shared"
	"github.com/ebookstore/backend/internal/infrastructure/persistence"
	"github.com/ebookstore/backend/internal/infrastructure/storage"
)

func setupBookServiceTest(t *testing.T) (*catalogapp.BookService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domaincatalog.Book{}, &domaincatalog.Feedback{}))

	svc := catalogapp.NewBookService(
		persistence.NewGormBookRepository(db),
		persistence.NewGormFeedbackRepository(db),
		storage.NewStubObjectStorage(),
		zap.NewNop(),
	)
	return svc, db
}

func createCatalogBook(t *testing.T, svc *catalogapp.BookService, title string) *catalogapp.BookResponse {
	resp, err := svc.Create(context.Background(), catalogapp.CreateBookRequest{
		Title:           title,
		Author:          "Some Author",
		Category:        "Fiction",
		Price:           "24.99",
		QuantityInStock: 10,
		PublicationDate: time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return resp
}

func TestBookService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active book", func(t *testing.T) {
		svc, _ := setupBookServiceTest(t)

		resp := createCatalogBook(t, svc, "New Arrival")
		assert.Equal(t, "New Arrival", resp.Title)
		assert.InDelta(t, 24.99, resp.Price, 0.001)
		assert.True(t, resp.InStock)
	})

	t.Run("rejects a malformed price", func(t *testing.T) {
		svc, _ := setupBookServiceTest(t)

		_, err := svc.Create(ctx, catalogapp.CreateBookRequest{
			Title:           "Bad Price",
			Author:          "A",
			Category:        "C",
			Price:           "twenty bucks",
			QuantityInStock: 1,
			PublicationDate: time.Now(),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	})
}

func TestBookService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("update replaces fields, price and stock", func(t *testing.T) {
		svc, _ := setupBookServiceTest(t)
		created := createCatalogBook(t, svc, "Before")

		resp, err := svc.Update(ctx, uuid.MustParse(created.ID), catalogapp.UpdateBookRequest{
			Title:           "After",
			Author:          "New Author",
			Category:        "Nonfiction",
			Price:           "9.50",
			QuantityInStock: 0,
			PublicationDate: time.Date(2021, time.June, 2, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, "After", resp.Title)
		assert.InDelta(t, 9.50, resp.Price, 0.001)
		assert.False(t, resp.InStock)
	})

	t.Run("delete hides the book from listings but keeps the row", func(t *testing.T) {
		svc, db := setupBookServiceTest(t)
		created := createCatalogBook(t, svc, "Ephemeral")
		id := uuid.MustParse(created.ID)

		require.NoError(t, svc.Delete(ctx, id))

		page, err := svc.List(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, page.Items)

		var stored domaincatalog.Book
		require.NoError(t, db.First(&stored, "id = ?", id).Error)
		assert.False(t, stored.IsActive)
	})

	t.Run("delete of a missing book is not found", func(t *testing.T) {
		svc, _ := setupBookServiceTest(t)
		assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}

func TestBookService_List(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupBookServiceTest(t)
	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		createCatalogBook(t, svc, title)
	}

	page, err := svc.List(ctx, shared.Filter{Page: 1, PageSize: 2, OrderBy: "title", OrderDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alpha", page.Items[0].Title)
}

func TestBookService_Feedback(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches reviews to the book detail", func(t *testing.T) {
		svc, _ := setupBookServiceTest(t)
		created := createCatalogBook(t, svc, "Reviewed")
		bookID := uuid.MustParse(created.ID)

		_, err := svc.AddFeedback(ctx, bookID, uuid.New(), catalogapp.FeedbackRequest{Rating: 5, Comment: "Loved it"})
		require.NoError(t, err)
		_, err = svc.AddFeedback(ctx, bookID, uuid.New(), catalogapp.FeedbackRequest{Rating: 2, Comment: "Not for me"})
		require.NoError(t, err)

		detail, err := svc.Get(ctx, bookID)
		require.NoError(t, err)
		assert.Len(t, detail.Feedbacks, 2)
	})

	t.Run("rating bounds are enforced", func(t *testing.T) {
		svc, _ := setupBookServiceTest(t)
		created := createCatalogBook(t, svc, "Strict")

		_, err := svc.AddFeedback(ctx, uuid.MustParse(created.ID), uuid.New(), catalogapp.FeedbackRequest{Rating: 6})
		require.Error(t, err)
	})

	t.Run("deactivated book rejects new feedback", func(t *testing.T) {
		svc, _ := setupBookServiceTest(t)
		created := createCatalogBook(t, svc, "Closed")
		id := uuid.MustParse(created.ID)
		require.NoError(t, svc.Delete(ctx, id))

		_, err := svc.AddFeedback(ctx, id, uuid.New(), catalogapp.FeedbackRequest{Rating: 4})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBookService_UploadCover(t *testing.T) {
	ctx := context.Background()
	svc, db := setupBookServiceTest(t)
	created := createCatalogBook(t, svc, "Covered")
	id := uuid.MustParse(created.ID)

	_, err := svc.UploadCover(ctx, id, "image/png", strings.NewReader("fake png bytes"))
	require.NoError(t, err)

	var stored domaincatalog.Book
	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, "covers/"+id.String(), stored.CoverImageKey)
}
