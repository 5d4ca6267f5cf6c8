package identity

import (
	"time"

	"github.com/ebookstore/backend/internal/domain/identity"
)

// RegisterRequest carries a new account registration
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateContactRequest carries profile contact updates
type UpdateContactRequest struct {
	PhoneNumber string `json:"phone_number" binding:"max=30"`
	Address     string `json:"address" binding:"max=500"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	Address          string    `json:"address,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
}

// LoginResponse is a successful authentication result
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse maps a domain user to its response representation
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:               u.ID.String(),
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		Role:             string(u.Role),
		PhoneNumber:      u.PhoneNumber,
		Address:          u.Address,
		RegistrationDate: u.RegistrationDate,
	}
}
