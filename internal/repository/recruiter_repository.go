package repository

import (
	"context"
	"fmt"

	"screenhub/internal/database"
	"screenhub/internal/domain/recruiter"

	"github.com/google/uuid"
)

type PostgresRecruiterRepository struct {
	db database.DB
}

func NewPostgresRecruiterRepository(db database.DB) *PostgresRecruiterRepository {
	return &PostgresRecruiterRepository{db: db}
}

func (r *PostgresRecruiterRepository) Create(ctx context.Context, rec recruiter.Recruiter) (recruiter.Recruiter, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO recruiters (id, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, password_hash, created_at`,
		rec.ID, rec.Email, rec.PasswordHash,
	)
	out, err := scanRecruiter(row)
	if err != nil {
		if isUniqueViolation(err) {
			return recruiter.Recruiter{}, fmt.Errorf("%w: email %s", ErrDuplicate, rec.Email)
		}
		return recruiter.Recruiter{}, err
	}
	return out, nil
}

func (r *PostgresRecruiterRepository) GetByEmail(ctx context.Context, email string) (recruiter.Recruiter, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM recruiters WHERE email = $1`,
		email,
	)
	return scanRecruiter(row)
}

func (r *PostgresRecruiterRepository) GetByID(ctx context.Context, id uuid.UUID) (recruiter.Recruiter, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM recruiters WHERE id = $1`,
		id,
	)
	return scanRecruiter(row)
}

func scanRecruiter(row database.Row) (recruiter.Recruiter, error) {
	var rec recruiter.Recruiter
	if err := row.Scan(&rec.ID, &rec.Email, &rec.PasswordHash, &rec.CreatedAt); err != nil {
		if isNoRows(err) {
			return recruiter.Recruiter{}, recruiter.ErrNotFound
		}
		return recruiter.Recruiter{}, err
	}
	return rec, nil
}
