package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindRecentActiveCustomers(ctx context.Context, limit int) ([]User, error)
	CountActiveCustomers(ctx context.Context) (int64, error)
	FindActiveCustomers(ctx context.Context) ([]User, error)
	Save(ctx context.Context, user *User) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
