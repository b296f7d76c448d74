package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleMarketer = "marketer"
	RoleCustomer = "customer"
)

var ErrProfileNotFound = errors.New("profile not found")

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// NewCustomerProfile provisions an account for a buyer who checked out
// without one. Login itself is passwordless, handled upstream.
func NewCustomerProfile(email, fullName string) *Profile {
	return &Profile{
		ID:        uuid.New().String(),
		Email:     email,
		FullName:  fullName,
		Role:      RoleCustomer,
		CreatedAt: time.Now(),
	}
}

type ProfileRepositoryInterface interface {
	Create(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	Delete(ctx context.Context, id string) error
}
