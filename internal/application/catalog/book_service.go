package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ebookstore/backend/internal/domain/catalog"
	"github.com/ebookstore/backend/internal/domain/shared"
	"github.com/ebookstore/backend/internal/domain/shared/valueobject"
)

// BookService manages the book catalog: browsing, administration, cover
// images and customer feedback. Stock is only replaced wholesale here;
// order-driven stock movement goes through the repository's guarded
// increments in the order workflow.
type BookService struct {
	books     catalog.BookRepository
	feedbacks catalog.FeedbackRepository
	storage   ObjectStorage
	logger    *zap.Logger
}

// NewBookService creates a book catalog service
func NewBookService(books catalog.BookRepository, feedbacks catalog.FeedbackRepository, storage ObjectStorage, logger *zap.Logger) *BookService {
	return &BookService{
		books:     books,
		feedbacks: feedbacks,
		storage:   storage,
		logger:    logger,
	}
}

// List returns active books matching the filter, paginated
func (s *BookService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[BookResponse], error) {
	books, err := s.books.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.books.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]BookResponse, 0, len(books))
	for i := range books {
		items = append(items, ToBookResponse(&books[i], s.coverURL(ctx, &books[i])))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Get returns one book with its reviews
func (s *BookService) Get(ctx context.Context, id uuid.UUID) (*BookDetailResponse, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	feedbacks, err := s.feedbacks.FindByBook(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews := make([]FeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		reviews = append(reviews, ToFeedbackResponse(&feedbacks[i]))
	}

	return &BookDetailResponse{
		BookResponse: ToBookResponse(book, s.coverURL(ctx, book)),
		Feedbacks:    reviews,
	}, nil
}

// Create adds a book to the catalog
func (s *BookService) Create(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	price, err := valueobject.NewMoneyFromString(req.Price, valueobject.USD)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be a decimal number")
	}

	book, err := catalog.NewBook(req.Title, req.Author, req.Category, price, req.QuantityInStock, req.PublicationDate)
	if err != nil {
		return nil, err
	}
	if err := s.books.Save(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book created",
		zap.String("book_id", book.ID.String()),
		zap.String("title", book.Title))

	resp := ToBookResponse(book, "")
	return &resp, nil
}

// Update replaces a book's descriptive fields, price and stock level
func (s *BookService) Update(ctx context.Context, id uuid.UUID, req UpdateBookRequest) (*BookResponse, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	price, err := valueobject.NewMoneyFromString(req.Price, valueobject.USD)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be a decimal number")
	}

	if err := book.Update(req.Title, req.Author, req.Category, req.PublicationDate); err != nil {
		return nil, err
	}
	if err := book.SetPrice(price); err != nil {
		return nil, err
	}
	if err := book.SetStock(req.QuantityInStock); err != nil {
		return nil, err
	}
	if err := s.books.Save(ctx, book); err != nil {
		return nil, err
	}

	resp := ToBookResponse(book, s.coverURL(ctx, book))
	return &resp, nil
}

// Delete soft-deletes a book so historical order lines keep resolving
func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.books.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("book deactivated", zap.String("book_id", id.String()))
	return nil
}

// UploadCover stores a cover image and records its key on the book
func (s *BookService) UploadCover(ctx context.Context, id uuid.UUID, contentType string, body io.Reader) (*BookResponse, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("covers/%s", book.ID)
	storedKey, err := s.storage.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, err
	}

	book.SetCoverImage(storedKey)
	if err := s.books.Save(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book cover uploaded",
		zap.String("book_id", book.ID.String()),
		zap.String("key", storedKey))

	resp := ToBookResponse(book, s.coverURL(ctx, book))
	return &resp, nil
}

// AddFeedback attaches a customer review to a book
func (s *BookService) AddFeedback(ctx context.Context, bookID, userID uuid.UUID, req FeedbackRequest) (*FeedbackResponse, error) {
	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.IsActive {
		return nil, shared.ErrNotFound
	}

	feedback, err := catalog.NewFeedback(book.ID, userID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.feedbacks.Save(ctx, feedback); err != nil {
		return nil, err
	}

	resp := ToFeedbackResponse(feedback)
	return &resp, nil
}

func (s *BookService) coverURL(ctx context.Context, book *catalog.Book) string {
	if book.CoverImageKey == "" || s.storage == nil {
		return ""
	}
	url, err := s.storage.PresignedURL(ctx, book.CoverImageKey)
	if err != nil {
		s.logger.Warn("presign cover url failed",
			zap.String("book_id", book.ID.String()),
			zap.Error(err))
		return ""
	}
	return url
}
