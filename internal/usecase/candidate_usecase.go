package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"screenhub/internal/domain/screening"
	"screenhub/internal/repository"

	"github.com/google/uuid"
)

type CreateCandidateInput struct {
	FullName string
	Email    string
	Phone    string
	Location string
}

type UpdateCandidateInput struct {
	FullName string
	Email    string
	Phone    string
	Location string
}

type CandidateUsecase interface {
	Create(ctx context.Context, in CreateCandidateInput) (screening.Candidate, error)
	Get(ctx context.Context, id uuid.UUID) (screening.Candidate, error)
	List(ctx context.Context) ([]screening.Candidate, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateCandidateInput) (screening.Candidate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Candidates struct {
	candidates repository.CandidateRepository
}

func NewCandidateUsecase(candidates repository.CandidateRepository) *Candidates {
	return &Candidates{candidates: candidates}
}

func (u *Candidates) Create(ctx context.Context, in CreateCandidateInput) (screening.Candidate, error) {
	name := strings.TrimSpace(in.FullName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return screening.Candidate{}, fmt.Errorf("%w: candidate name is required", ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return screening.Candidate{}, fmt.Errorf("%w: valid candidate email is required", ErrInvalidInput)
	}

	created, err := u.candidates.Create(ctx, screening.Candidate{
		ID:       uuid.New(),
		FullName: name,
		Email:    email,
		Phone:    strings.TrimSpace(in.Phone),
		Location: strings.TrimSpace(in.Location),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return screening.Candidate{}, fmt.Errorf("%w: candidate with email %s already exists", ErrConflict, email)
		}
		return screening.Candidate{}, fmt.Errorf("%w: create candidate: %v", ErrInternal, err)
	}
	return created, nil
}

func (u *Candidates) Get(ctx context.Context, id uuid.UUID) (screening.Candidate, error) {
	c, err := u.candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return screening.Candidate{}, ErrNotFound
		}
		return screening.Candidate{}, fmt.Errorf("%w: get candidate: %v", ErrInternal, err)
	}
	return c, nil
}

func (u *Candidates) List(ctx context.Context) ([]screening.Candidate, error) {
	out, err := u.candidates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list candidates: %v", ErrInternal, err)
	}
	return out, nil
}

func (u *Candidates) Update(ctx context.Context, id uuid.UUID, in UpdateCandidateInput) (screening.Candidate, error) {
	c, err := u.Get(ctx, id)
	if err != nil {
		return screening.Candidate{}, err
	}

	if name := strings.TrimSpace(in.FullName); name != "" {
		c.FullName = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		if !strings.Contains(email, "@") {
			return screening.Candidate{}, fmt.Errorf("%w: invalid candidate email", ErrInvalidInput)
		}
		c.Email = email
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		c.Phone = phone
	}
	if location := strings.TrimSpace(in.Location); location != "" {
		c.Location = location
	}

	updated, err := u.candidates.Update(ctx, c)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCandidateNotFound):
			return screening.Candidate{}, ErrNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return screening.Candidate{}, fmt.Errorf("%w: candidate with email %s already exists", ErrConflict, c.Email)
		}
		return screening.Candidate{}, fmt.Errorf("%w: update candidate: %v", ErrInternal, err)
	}
	return updated, nil
}

func (u *Candidates) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.candidates.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: delete candidate: %v", ErrInternal, err)
	}
	return nil
}
