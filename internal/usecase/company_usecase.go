package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"screenhub/internal/repository"

	"github.com/google/uuid"
)

type CreateCompanyInput struct {
	Name        string
	Industry    string
	Description string
	Website     string
}

type CompanyUsecase interface {
	Create(ctx context.Context, in CreateCompanyInput) (repository.Company, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Company, error)
	List(ctx context.Context) ([]repository.Company, error)
}

type Companies struct {
	companies repository.CompanyRepository
}

func NewCompanyUsecase(companies repository.CompanyRepository) *Companies {
	return &Companies{companies: companies}
}

func (u *Companies) Create(ctx context.Context, in CreateCompanyInput) (repository.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repository.Company{}, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}

	created, err := u.companies.Create(ctx, repository.Company{
		ID:          uuid.New(),
		Name:        name,
		Industry:    strings.TrimSpace(in.Industry),
		Description: strings.TrimSpace(in.Description),
		Website:     strings.TrimSpace(in.Website),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return repository.Company{}, fmt.Errorf("%w: company %q already exists", ErrConflict, name)
		}
		return repository.Company{}, fmt.Errorf("%w: create company: %v", ErrInternal, err)
	}
	return created, nil
}

func (u *Companies) Get(ctx context.Context, id uuid.UUID) (repository.Company, error) {
	c, err := u.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return repository.Company{}, ErrNotFound
		}
		return repository.Company{}, fmt.Errorf("%w: get company: %v", ErrInternal, err)
	}
	return c, nil
}

func (u *Companies) List(ctx context.Context) ([]repository.Company, error) {
	out, err := u.companies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list companies: %v", ErrInternal, err)
	}
	return out, nil
}
