package repository

import (
	"context"
	"fmt"

	"screenhub/internal/database"
	"screenhub/internal/domain/screening"

	"github.com/google/uuid"
)

// SourcedApplication pairs an application with the candidate identity the
// invitation fan-out needs.
type SourcedApplication struct {
	Application    screening.Application
	CandidateName  string
	CandidateEmail string
}

type ApplicationRepository interface {
	Create(ctx context.Context, a screening.Application) (screening.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (screening.Application, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]screening.Application, error)
	ListSourcedByJob(ctx context.Context, jobID uuid.UUID) ([]SourcedApplication, error)
	UpdateStatusTx(ctx context.Context, tx database.Tx, id uuid.UUID, status screening.ApplicationStatus) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, candidate_id, status, applied_at`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a screening.Application) (screening.Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, job_id, candidate_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+applicationColumns,
		a.ID, a.JobID, a.CandidateID, a.Status,
	)
	out, err := scanApplication(row)
	if err != nil {
		if isUniqueViolation(err) {
			return screening.Application{}, fmt.Errorf("%w: candidate already applied to job", ErrDuplicate)
		}
		return screening.Application{}, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (screening.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id,
	)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]screening.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE job_id = $1
		 ORDER BY applied_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]screening.Application, 0)
	for rows.Next() {
		var a screening.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListSourcedByJob(ctx context.Context, jobID uuid.UUID) ([]SourcedApplication, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.applied_at,
		        c.full_name, c.email
		 FROM applications a
		 JOIN candidates c ON c.id = a.candidate_id
		 WHERE a.job_id = $1 AND a.status = $2
		 ORDER BY a.applied_at ASC`,
		jobID, screening.ApplicationSourced,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SourcedApplication, 0)
	for rows.Next() {
		var sa SourcedApplication
		if err := rows.Scan(
			&sa.Application.ID, &sa.Application.JobID, &sa.Application.CandidateID,
			&sa.Application.Status, &sa.Application.AppliedAt,
			&sa.CandidateName, &sa.CandidateEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) UpdateStatusTx(ctx context.Context, tx database.Tx, id uuid.UUID, status screening.ApplicationStatus) error {
	n, err := tx.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func scanApplication(row database.Row) (screening.Application, error) {
	var a screening.Application
	if err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.AppliedAt); err != nil {
		if isNoRows(err) {
			return screening.Application{}, ErrApplicationNotFound
		}
		return screening.Application{}, err
	}
	return a, nil
}
