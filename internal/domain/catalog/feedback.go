package catalog

import (
	"github.com/ebookstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Feedback is a customer review attached to a book
type Feedback struct {
	shared.BaseEntity
	BookID  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating  int       `gorm:"not null"`
	Comment string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Feedback) TableName() string {
	return "feedbacks"
}

// NewFeedback creates a new feedback entry
func NewFeedback(bookID, userID uuid.UUID, rating int, comment string) (*Feedback, error) {
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOOK", "Book ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if len(comment) > 2000 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 2000 characters")
	}

	return &Feedback{
		BaseEntity: shared.NewBaseEntity(),
		BookID:     bookID,
		UserID:     userID,
		Rating:     rating,
		Comment:    comment,
	}, nil
}
