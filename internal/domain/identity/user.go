package identity

import (
	"strings"
	"time"

	"github.com/ebookstore/backend/internal/domain/shared"
)

// Role represents the role assigned to a user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// IsValid checks if the role is a defined Role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// User represents a registered account, customer or staff.
// PasswordHash is produced by the auth layer's hasher; the domain never sees
// plaintext credentials.
type User struct {
	shared.BaseAggregateRoot
	FirstName        string    `gorm:"type:varchar(100);not null"`
	LastName         string    `gorm:"type:varchar(100);not null"`
	Email            string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	Role             Role      `gorm:"type:varchar(20);not null;default:'customer'"`
	PhoneNumber      string    `gorm:"type:varchar(30)"`
	Address          string    `gorm:"type:varchar(500)"`
	IsActive         bool      `gorm:"not null;default:true;index"`
	RegistrationDate time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active customer account
func NewUser(firstName, lastName, email, passwordHash string) (*User, error) {
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First and last name are required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
		Email:             email,
		PasswordHash:      passwordHash,
		Role:              RoleCustomer,
		IsActive:          true,
		RegistrationDate:  time.Now(),
	}, nil
}

// FullName returns the display name used on orders and reports
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UpdateContact updates phone number and address
func (u *User) UpdateContact(phoneNumber, address string) {
	u.PhoneNumber = phoneNumber
	u.Address = address
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Promote assigns a new role
func (u *User) Promote(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the account
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}
