package entity

import (
	"context"
	"errors"
	"time"
)

var ErrServiceNotFound = errors.New("service not found")

// Service is a catalog entry (course, IT service or marketing service).
// A nil Price means "custom quote": the item cannot go through self-serve
// checkout and must be routed to the proposal flow instead.
type Service struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Price     *int64    `json:"price"`
	Discount  int64     `json:"discount"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// IsCustomQuote reports whether the item has no self-serve price.
func (s *Service) IsCustomQuote() bool {
	return s.Price == nil
}

// EffectivePrice is what the buyer actually pays: price minus discount
// when a discount is set, the plain price otherwise. Callers must check
// IsCustomQuote first.
func (s *Service) EffectivePrice() int64 {
	if s.Price == nil {
		return 0
	}
	if s.Discount > 0 {
		return *s.Price - s.Discount
	}
	return *s.Price
}

type ServiceRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, category string) ([]*Service, error)
}
