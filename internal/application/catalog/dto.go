package catalog

import (
	"time"

	"github.com/ebookstore/backend/internal/domain/catalog"
)

// CreateBookRequest carries the fields needed to add a book to the catalog
type CreateBookRequest struct {
	Title           string    `json:"title" binding:"required,max=200"`
	Author          string    `json:"author" binding:"required,max=200"`
	Category        string    `json:"category" binding:"required,max=100"`
	Price           string    `json:"price" binding:"required"`
	QuantityInStock int       `json:"quantity_in_stock" binding:"min=0"`
	PublicationDate time.Time `json:"publication_date" binding:"required"`
}

// UpdateBookRequest carries the editable fields of a book
type UpdateBookRequest struct {
	Title           string    `json:"title" binding:"required,max=200"`
	Author          string    `json:"author" binding:"required,max=200"`
	Category        string    `json:"category" binding:"required,max=100"`
	Price           string    `json:"price" binding:"required"`
	QuantityInStock int       `json:"quantity_in_stock" binding:"min=0"`
	PublicationDate time.Time `json:"publication_date" binding:"required"`
}

// FeedbackRequest carries a customer review
type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// BookResponse represents a book in API responses
type BookResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	QuantityInStock int       `json:"quantity_in_stock"`
	PublicationDate time.Time `json:"publication_date"`
	CoverImageURL   string    `json:"cover_image_url,omitempty"`
	InStock         bool      `json:"in_stock"`
}

// FeedbackResponse represents a review in API responses
type FeedbackResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// BookDetailResponse is a book with its reviews
type BookDetailResponse struct {
	BookResponse
	Feedbacks []FeedbackResponse `json:"feedbacks"`
}

// ToBookResponse maps a domain book to its response representation.
// coverURL is resolved by the caller since it depends on object storage.
func ToBookResponse(b *catalog.Book, coverURL string) BookResponse {
	return BookResponse{
		ID:              b.ID.String(),
		Title:           b.Title,
		Author:          b.Author,
		Category:        b.Category,
		Price:           b.Price.InexactFloat64(),
		QuantityInStock: b.QuantityInStock,
		PublicationDate: b.PublicationDate,
		CoverImageURL:   coverURL,
		InStock:         b.QuantityInStock > 0,
	}
}

// ToFeedbackResponse maps a domain feedback to its response representation
func ToFeedbackResponse(f *catalog.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID.String(),
		UserID:    f.UserID.String(),
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}
