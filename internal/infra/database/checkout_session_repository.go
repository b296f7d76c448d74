package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

type CheckoutSessionRepository struct {
	DB *sql.DB
}

func NewCheckoutSessionRepository(db *sql.DB) *CheckoutSessionRepository {
	return &CheckoutSessionRepository{DB: db}
}

func (r *CheckoutSessionRepository) Create(ctx context.Context, s *entity.CheckoutSession) error {
	query := `
		INSERT INTO checkout_sessions (id, payment_id, order_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		s.ID,
		s.PaymentID,
		s.OrderID,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *CheckoutSessionRepository) FindByID(ctx context.Context, id string) (*entity.CheckoutSession, error) {
	query := `
		SELECT id, payment_id, order_id, status, created_at, updated_at
		FROM checkout_sessions WHERE id = $1
	`

	var s entity.CheckoutSession
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.PaymentID,
		&s.OrderID,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrCheckoutSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *CheckoutSessionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE checkout_sessions SET status = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrCheckoutSessionNotFound
	}
	return nil
}

func (r *CheckoutSessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM checkout_sessions WHERE id = $1`, id)
	return err
}
