package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	CheckoutSessionPending  = "pending"
	CheckoutSessionSuccess  = "success"
	CheckoutSessionCanceled = "canceled"
)

var ErrCheckoutSessionNotFound = errors.New("checkout session not found")

// CheckoutSession ties a redirect round-trip to the payment/order pair it
// created. The confirm callback resolves the pair through it, and its
// status makes retried callbacks idempotent.
type CheckoutSession struct {
	ID        string    `json:"id"`
	PaymentID string    `json:"payment_id"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCheckoutSession(paymentID, orderID string) *CheckoutSession {
	return &CheckoutSession{
		ID:        uuid.New().String(),
		PaymentID: paymentID,
		OrderID:   orderID,
		Status:    CheckoutSessionPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (s *CheckoutSession) IsTerminal() bool {
	return s.Status != CheckoutSessionPending
}

type CheckoutSessionRepositoryInterface interface {
	Create(ctx context.Context, s *CheckoutSession) error
	FindByID(ctx context.Context, id string) (*CheckoutSession, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
