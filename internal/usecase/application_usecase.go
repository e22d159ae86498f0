package usecase

import (
	"context"
	"errors"
	"fmt"

	"screenhub/internal/domain/screening"
	"screenhub/internal/repository"

	"github.com/google/uuid"
)

type ApplicationUsecase interface {
	Create(ctx context.Context, jobID, candidateID uuid.UUID) (screening.Application, error)
	Get(ctx context.Context, id uuid.UUID) (screening.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]screening.Application, error)
}

type Applications struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	candidates   repository.CandidateRepository
}

func NewApplicationUsecase(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	candidates repository.CandidateRepository,
) *Applications {
	return &Applications{applications: applications, jobs: jobs, candidates: candidates}
}

// Create registers a candidate against a job in the SOURCED state, the entry
// point of the screening pipeline.
func (u *Applications) Create(ctx context.Context, jobID, candidateID uuid.UUID) (screening.Application, error) {
	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return screening.Application{}, fmt.Errorf("%w: check job: %v", ErrInternal, err)
	}
	if !exists {
		return screening.Application{}, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
	}

	if _, err := u.candidates.GetByID(ctx, candidateID); err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return screening.Application{}, fmt.Errorf("%w: candidate %s", ErrNotFound, candidateID)
		}
		return screening.Application{}, fmt.Errorf("%w: check candidate: %v", ErrInternal, err)
	}

	created, err := u.applications.Create(ctx, screening.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      screening.ApplicationSourced,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return screening.Application{}, fmt.Errorf("%w: candidate already applied to this job", ErrConflict)
		}
		return screening.Application{}, fmt.Errorf("%w: create application: %v", ErrInternal, err)
	}
	return created, nil
}

func (u *Applications) Get(ctx context.Context, id uuid.UUID) (screening.Application, error) {
	a, err := u.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return screening.Application{}, ErrNotFound
		}
		return screening.Application{}, fmt.Errorf("%w: get application: %v", ErrInternal, err)
	}
	return a, nil
}

func (u *Applications) ListByJob(ctx context.Context, jobID uuid.UUID) ([]screening.Application, error) {
	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: check job: %v", ErrInternal, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
	}

	out, err := u.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: list applications: %v", ErrInternal, err)
	}
	return out, nil
}
