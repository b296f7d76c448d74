package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, amount, method, status, user_id, service, reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.Amount,
		p.Method,
		p.Status,
		p.UserID,
		nullString(p.Service),
		nullString(p.Reference),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*entity.Payment, error) {
	query := `
		SELECT id, amount, method, status, user_id, service, reference, created_at, updated_at
		FROM payments WHERE id = $1
	`

	var p entity.Payment
	var service, reference sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.UserID,
		&service,
		&reference,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrPaymentNotFound
		}
		return nil, err
	}

	p.Service = service.String
	p.Reference = reference.String
	return &p, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Payment, error) {
	query := `
		SELECT id, amount, method, status, user_id, service, reference, created_at, updated_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var service, reference sql.NullString
		if err := rows.Scan(
			&p.ID, &p.Amount, &p.Method, &p.Status, &p.UserID,
			&service, &reference, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.Service = service.String
		p.Reference = reference.String
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}
