package repository

import (
	"context"
	"fmt"
	"time"

	"screenhub/internal/database"

	"github.com/google/uuid"
)

type Company struct {
	ID          uuid.UUID
	Name        string
	Industry    string
	Description string
	Website     string
	CreatedAt   time.Time
}

type CompanyRepository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	List(ctx context.Context) ([]Company, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c Company) (Company, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO companies (id, name, industry, description, website)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, industry, description, website, created_at`,
		c.ID, c.Name, c.Industry, c.Description, c.Website,
	)
	out, err := scanCompany(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Company{}, fmt.Errorf("%w: company name %q", ErrDuplicate, c.Name)
		}
		return Company{}, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (Company, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, industry, description, website, created_at FROM companies WHERE id = $1`,
		id,
	)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) List(ctx context.Context) ([]Company, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, industry, description, website, created_at
		 FROM companies ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Company, 0)
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.Description, &c.Website, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCompany(row database.Row) (Company, error) {
	var c Company
	if err := row.Scan(&c.ID, &c.Name, &c.Industry, &c.Description, &c.Website, &c.CreatedAt); err != nil {
		if isNoRows(err) {
			return Company{}, ErrCompanyNotFound
		}
		return Company{}, err
	}
	return c, nil
}
