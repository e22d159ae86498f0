package repository

import (
	"context"

	"screenhub/internal/database"
	"screenhub/internal/domain/screening"

	"github.com/google/uuid"
)

type JobRepository interface {
	CreateTx(ctx context.Context, tx database.Tx, j screening.Job) (screening.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (screening.Job, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, limit, offset int) ([]screening.Job, error)
	Update(ctx context.Context, j screening.Job) (screening.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) CreateTx(ctx context.Context, tx database.Tx, j screening.Job) (screening.Job, error) {
	row := tx.QueryRow(ctx,
		`INSERT INTO jobs (id, company_id, title, description, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, company_id, title, description, status, created_at, updated_at`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Status,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (screening.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, company_id, title, description, status, created_at, updated_at
		 FROM jobs WHERE id = $1`,
		id,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, limit, offset int) ([]screening.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, company_id, title, description, status, created_at, updated_at
		 FROM jobs
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]screening.Job, 0)
	for rows.Next() {
		var j screening.Job
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, j screening.Job) (screening.Job, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE jobs SET title = $2, description = $3, status = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING id, company_id, title, description, status, created_at, updated_at`,
		j.ID, j.Title, j.Description, j.Status,
	)
	return scanJob(row)
}

// Delete removes the job; question sets, questions, applications, sessions
// and responses go with it through the schema's cascades.
func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func scanJob(row database.Row) (screening.Job, error) {
	var j screening.Job
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if isNoRows(err) {
			return screening.Job{}, ErrJobNotFound
		}
		return screening.Job{}, err
	}
	return j, nil
}
