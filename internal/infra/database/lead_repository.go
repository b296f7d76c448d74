package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = "id, name, email, phone, status, source, owner_id, created_by, created_at, updated_at"

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, status, source, owner_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		nullString(lead.Name),
		nullString(lead.Email),
		lead.Phone,
		lead.Status,
		lead.Source,
		lead.OwnerID,
		lead.CreatedBy,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1`, leadColumns)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context, scope entity.LeadScope, dr entity.DateRange, limit int) ([]*entity.Lead, error) {
	where, args := leadFilter(scope, dr)
	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT %s FROM leads %s
		ORDER BY created_at DESC
		LIMIT $%d
	`, leadColumns, where, len(args))

	return r.queryLeads(ctx, query, args)
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Count(ctx context.Context, scope entity.LeadScope, dr entity.DateRange) (int, error) {
	where, args := leadFilter(scope, dr)
	query := `SELECT COUNT(*) FROM leads ` + where

	var count int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *LeadRepository) CountByStatusIn(ctx context.Context, scope entity.LeadScope, dr entity.DateRange, statuses ...string) (int, error) {
	where, args := leadFilter(scope, dr)
	args = append(args, pq.Array(statuses))
	query := fmt.Sprintf(`SELECT COUNT(*) FROM leads %s AND status = ANY($%d)`, where, len(args))

	var count int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *LeadRepository) DailyStatusCounts(ctx context.Context, scope entity.LeadScope, dr entity.DateRange) ([]entity.DailyStatusCount, error) {
	where, args := leadFilter(scope, dr)
	query := fmt.Sprintf(`
		SELECT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day, status, COUNT(*)
		FROM leads %s
		GROUP BY 1, 2
		ORDER BY 1
	`, where)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []entity.DailyStatusCount
	for rows.Next() {
		var c entity.DailyStatusCount
		if err := rows.Scan(&c.Day, &c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *LeadRepository) FetchForGrouping(ctx context.Context, scope entity.LeadScope, dr entity.DateRange, limit int) ([]*entity.Lead, error) {
	return r.List(ctx, scope, dr, limit)
}

// leadFilter builds the shared WHERE clause: one scoping dimension at
// most (owner or creator) plus the inclusive date bounds.
func leadFilter(scope entity.LeadScope, dr entity.DateRange) (string, []any) {
	conditions := []string{"TRUE"}
	var args []any

	if scope.OwnerID != "" {
		args = append(args, scope.OwnerID)
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)))
	} else if scope.CreatorID != "" {
		args = append(args, scope.CreatorID)
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", len(args)))
	}

	if dr.From != nil {
		args = append(args, *dr.From)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if dr.To != nil {
		args = append(args, *dr.To)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var name, email sql.NullString

	err := row.Scan(
		&lead.ID,
		&name,
		&email,
		&lead.Phone,
		&lead.Status,
		&lead.Source,
		&lead.OwnerID,
		&lead.CreatedBy,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Name = name.String
	lead.Email = email.String
	return &lead, nil
}

func (r *LeadRepository) queryLeads(ctx context.Context, query string, args []any) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
