package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ebookstore/backend/internal/domain/catalog"
)

// GormFeedbackRepository implements catalog.FeedbackRepository using GORM
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewGormFeedbackRepository creates a new GormFeedbackRepository
func NewGormFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// Save persists a feedback entry
func (r *GormFeedbackRepository) Save(ctx context.Context, feedback *catalog.Feedback) error {
	return r.db.WithContext(ctx).Save(feedback).Error
}

// FindByBook returns all feedback for a book, newest first
func (r *GormFeedbackRepository) FindByBook(ctx context.Context, bookID uuid.UUID) ([]catalog.Feedback, error) {
	var feedbacks []catalog.Feedback
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}
