package shared

import "fmt"

// DomainError is a business-rule violation with a stable machine code.
// The HTTP layer maps codes to statuses; Message is safe to show users.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError builds a DomainError with the given code and message
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

var (
	// ErrNotFound covers both missing and soft-deleted resources
	ErrNotFound = NewDomainError("NOT_FOUND", "Resource not found")
	// ErrInsufficientStock is the generic form; prefer StockError when
	// the failing book is known.
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
)

// StockError names the book whose stock could not cover the requested
// quantity and how many items remain.
type StockError struct {
	BookID    string
	BookTitle string
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Insufficient stock for '%s'. Only %d items left.", e.BookTitle, e.Available)
}

// Code matches ErrInsufficientStock so HTTP mapping treats both alike
func (e *StockError) Code() string {
	return "INSUFFICIENT_STOCK"
}

// NewStockError builds a StockError for the given book
func NewStockError(bookID, bookTitle string, available int) *StockError {
	return &StockError{BookID: bookID, BookTitle: bookTitle, Available: available}
}
