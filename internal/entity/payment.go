package entity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	PaymentMethodBank   = "bank"
	PaymentMethodBkash  = "bkash"
	PaymentMethodNagad  = "nagad"
	PaymentMethodRocket = "rocket"
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
)

var ErrPaymentNotFound = errors.New("payment not found")

// Payment is a money-in record. Amount is in whole BDT.
type Payment struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	UserID    string    `json:"user_id"`
	Service   string    `json:"service,omitempty"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPayment(userID string, amount int64, method, service, reference string) (*Payment, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if !IsValidPaymentMethod(method) {
		return nil, fmt.Errorf("unsupported payment method %q", method)
	}

	return &Payment{
		ID:        uuid.New().String(),
		Amount:    amount,
		Method:    method,
		Status:    PaymentStatusPending,
		UserID:    userID,
		Service:   service,
		Reference: reference,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodBank, PaymentMethodBkash, PaymentMethodNagad,
		PaymentMethodRocket, PaymentMethodCash, PaymentMethodCard:
		return true
	}
	return false
}

// CanTransitionPayment reports whether a payment may move from one status
// to another. Only pending→paid and pending→failed exist; paid and failed
// are terminal.
func CanTransitionPayment(from, to string) bool {
	if from != PaymentStatusPending {
		return false
	}
	return to == PaymentStatusPaid || to == PaymentStatusFailed
}

type PaymentRepositoryInterface interface {
	Create(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id string) (*Payment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*Payment, error)
}
