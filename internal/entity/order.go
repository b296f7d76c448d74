package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCanceled   = "canceled"
)

var ErrOrderNotFound = errors.New("order not found")

type Order struct {
	ID          string    `json:"id"`
	PackageName string    `json:"package_name"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewOrder(userID, packageName string, amount int64) (*Order, error) {
	if packageName == "" {
		return nil, errors.New("package_name is required")
	}
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	return &Order{
		ID:          uuid.New().String(),
		PackageName: packageName,
		Amount:      amount,
		Status:      OrderStatusProcessing,
		UserID:      userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// CanTransitionOrder mirrors CanTransitionPayment for orders:
// processing→completed or processing→canceled, both terminal.
func CanTransitionOrder(from, to string) bool {
	if from != OrderStatusProcessing {
		return false
	}
	return to == OrderStatusCompleted || to == OrderStatusCanceled
}

type OrderRepositoryInterface interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*Order, error)
}
