package repository

import (
	"context"
	"fmt"

	"screenhub/internal/database"
	"screenhub/internal/domain/screening"

	"github.com/google/uuid"
)

type CandidateRepository interface {
	Create(ctx context.Context, c screening.Candidate) (screening.Candidate, error)
	GetByID(ctx context.Context, id uuid.UUID) (screening.Candidate, error)
	List(ctx context.Context) ([]screening.Candidate, error)
	Update(ctx context.Context, c screening.Candidate) (screening.Candidate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `id, full_name, email, phone, location, created_at`

func (r *PostgresCandidateRepository) Create(ctx context.Context, c screening.Candidate) (screening.Candidate, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO candidates (id, full_name, email, phone, location)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+candidateColumns,
		c.ID, c.FullName, c.Email, c.Phone, c.Location,
	)
	out, err := scanCandidate(row)
	if err != nil {
		if isUniqueViolation(err) {
			return screening.Candidate{}, fmt.Errorf("%w: candidate email %s", ErrDuplicate, c.Email)
		}
		return screening.Candidate{}, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (screening.Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id,
	)
	return scanCandidate(row)
}

func (r *PostgresCandidateRepository) List(ctx context.Context) ([]screening.Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]screening.Candidate, 0)
	for rows.Next() {
		var c screening.Candidate
		if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.Location, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) Update(ctx context.Context, c screening.Candidate) (screening.Candidate, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE candidates
		 SET full_name = $2, email = $3, phone = $4, location = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+candidateColumns,
		c.ID, c.FullName, c.Email, c.Phone, c.Location,
	)
	out, err := scanCandidate(row)
	if err != nil {
		if isUniqueViolation(err) {
			return screening.Candidate{}, fmt.Errorf("%w: candidate email %s", ErrDuplicate, c.Email)
		}
		return screening.Candidate{}, err
	}
	return out, nil
}

// Delete removes the candidate and, through cascades, their applications,
// sessions and responses.
func (r *PostgresCandidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func scanCandidate(row database.Row) (screening.Candidate, error) {
	var c screening.Candidate
	if err := row.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.Location, &c.CreatedAt); err != nil {
		if isNoRows(err) {
			return screening.Candidate{}, ErrCandidateNotFound
		}
		return screening.Candidate{}, err
	}
	return c, nil
}
