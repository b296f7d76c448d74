package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

type ServiceRepository struct {
	DB *sql.DB
}

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*entity.Service, error) {
	query := `
		SELECT id, title, category, price, discount, currency, created_at
		FROM services WHERE id = $1
	`

	svc, err := scanService(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (r *ServiceRepository) List(ctx context.Context, category string) ([]*entity.Service, error) {
	query := `
		SELECT id, title, category, price, discount, currency, created_at
		FROM services
		WHERE ($1 = '' OR category = $1)
		ORDER BY title
	`
	rows, err := r.DB.QueryContext(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func scanService(row rowScanner) (*entity.Service, error) {
	var svc entity.Service
	var price sql.NullInt64
	var discount sql.NullInt64
	var currency sql.NullString

	err := row.Scan(
		&svc.ID,
		&svc.Title,
		&svc.Category,
		&price,
		&discount,
		&currency,
		&svc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// NULL price is the custom-quote sentinel; keep it nil.
	if price.Valid {
		svc.Price = &price.Int64
	}
	svc.Discount = discount.Int64
	svc.Currency = currency.String
	if svc.Currency == "" {
		svc.Currency = "BDT"
	}
	return &svc, nil
}
