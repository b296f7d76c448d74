package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

var ErrEmailAlreadyExists = errors.New("a profile with this email already exists")

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, email, full_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.Email,
		nullString(p.FullName),
		p.Role,
		p.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailAlreadyExists
		}
		log.Printf("profile insert failed: %v", err)
		return err
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	return r.findBy(ctx, "id", id)
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return r.findBy(ctx, "email", email)
}

func (r *ProfileRepository) findBy(ctx context.Context, column, value string) (*entity.Profile, error) {
	query := `
		SELECT id, email, full_name, role, created_at
		FROM profiles WHERE ` + column + ` = $1
	`

	var p entity.Profile
	var fullName sql.NullString
	err := r.DB.QueryRowContext(ctx, query, value).Scan(
		&p.ID,
		&p.Email,
		&fullName,
		&p.Role,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrProfileNotFound
		}
		return nil, err
	}

	p.FullName = fullName.String
	return &p, nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	return err
}
