package catalog

import (
	"time"

	"github.com/ebookstore/backend/internal/domain/shared"
	"github.com/ebookstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Book represents a book in the store catalog.
// It is the aggregate root for catalog operations; its stock quantity is
// mutated only through the order workflow or catalog management.
type Book struct {
	shared.BaseAggregateRoot
	Title           string          `gorm:"type:varchar(200);not null"`
	Author          string          `gorm:"type:varchar(200);not null"`
	Category        string          `gorm:"type:varchar(100);not null;index"`
	Price           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	QuantityInStock int             `gorm:"not null;default:0"`
	PublicationDate time.Time       `gorm:"not null"`
	CoverImageKey   string          `gorm:"type:varchar(255)"` // object storage reference
	IsActive        bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Book) TableName() string {
	return "books"
}

// NewBook creates a new active book in the catalog
func NewBook(title, author, category string, price valueobject.Money, quantityInStock int, publicationDate time.Time) (*Book, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if author == "" {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author cannot be empty")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if price.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantityInStock < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	return &Book{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Author:            author,
		Category:          category,
		Price:             price.Amount().Round(2),
		QuantityInStock:   quantityInStock,
		PublicationDate:   publicationDate,
		IsActive:          true,
	}, nil
}

// Update updates the book's descriptive fields
func (b *Book) Update(title, author, category string, publicationDate time.Time) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if author == "" {
		return shared.NewDomainError("INVALID_AUTHOR", "Author cannot be empty")
	}
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}

	b.Title = title
	b.Author = author
	b.Category = category
	b.PublicationDate = publicationDate
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// SetPrice updates the selling price
func (b *Book) SetPrice(price valueobject.Money) error {
	if price.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	b.Price = price.Amount().Round(2)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// SetStock replaces the stock quantity (catalog management only; the order
// workflow adjusts stock through the repository's guarded increments)
func (b *Book) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	b.QuantityInStock = quantity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// SetCoverImage records the object storage key of the uploaded cover
func (b *Book) SetCoverImage(key string) {
	b.CoverImageKey = key
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// HasStock reports whether the requested quantity can be covered
func (b *Book) HasStock(quantity int) bool {
	return quantity > 0 && b.QuantityInStock >= quantity
}

// PriceMoney returns the price as a Money value object
func (b *Book) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(b.Price)
}

// Deactivate soft-deletes the book so historical orders keep resolving
func (b *Book) Deactivate() {
	b.IsActive = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Activate restores a soft-deleted book
func (b *Book) Activate() {
	b.IsActive = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
