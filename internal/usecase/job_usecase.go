package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"screenhub/internal/database"
	"screenhub/internal/domain/screening"
	"screenhub/internal/infrastructure/llm"
	"screenhub/internal/repository"

	"github.com/google/uuid"
)

type CreateJobInput struct {
	CompanyID   *uuid.UUID
	Title       string
	Description string
}

type UpdateJobInput struct {
	Title       string
	Description string
	Status      string
}

// CreatedJob is a new job together with the prescreening set seeded for it.
type CreatedJob struct {
	Job             screening.Job
	PrescreeningSet screening.QuestionSet
}

type JobUsecase interface {
	Create(ctx context.Context, in CreateJobInput) (CreatedJob, error)
	Get(ctx context.Context, id uuid.UUID) (screening.Job, error)
	GetWithSets(ctx context.Context, id uuid.UUID) (screening.Job, []screening.QuestionSet, error)
	List(ctx context.Context, limit, offset int) ([]screening.Job, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateJobInput) (screening.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateQuestions(ctx context.Context, jobID uuid.UUID) ([]screening.Question, error)
}

type Jobs struct {
	db        database.DB
	jobs      repository.JobRepository
	questions repository.QuestionRepository
	companies repository.CompanyRepository
	generator llm.QuestionGenerator
	logger    *log.Logger
}

func NewJobUsecase(
	db database.DB,
	jobs repository.JobRepository,
	questions repository.QuestionRepository,
	companies repository.CompanyRepository,
	generator llm.QuestionGenerator,
	logger *log.Logger,
) *Jobs {
	return &Jobs{db: db, jobs: jobs, questions: questions, companies: companies, generator: generator, logger: logger}
}

// Create inserts the job and seeds its prescreening question set in one
// transaction, so a job never exists without the set invitations depend on.
func (u *Jobs) Create(ctx context.Context, in CreateJobInput) (CreatedJob, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return CreatedJob{}, fmt.Errorf("%w: job title is required", ErrInvalidInput)
	}

	if in.CompanyID != nil {
		if _, err := u.companies.GetByID(ctx, *in.CompanyID); err != nil {
			if errors.Is(err, repository.ErrCompanyNotFound) {
				return CreatedJob{}, fmt.Errorf("%w: company %s", ErrNotFound, in.CompanyID)
			}
			return CreatedJob{}, fmt.Errorf("%w: check company: %v", ErrInternal, err)
		}
	}

	var out CreatedJob
	err := database.WithinTx(ctx, u.db, func(tx database.Tx) error {
		job, err := u.jobs.CreateTx(ctx, tx, screening.Job{
			ID:          uuid.New(),
			CompanyID:   in.CompanyID,
			Title:       title,
			Description: strings.TrimSpace(in.Description),
			Status:      screening.JobOpen,
		})
		if err != nil {
			return err
		}

		set, err := u.questions.CreateSetTx(ctx, tx, screening.QuestionSet{
			ID:    uuid.New(),
			JobID: job.ID,
			Name:  "Prescreening",
			Role:  screening.RolePrescreening,
		})
		if err != nil {
			return err
		}

		for i, preset := range screening.DefaultPrescreeningQuestions() {
			q, err := u.questions.CreateQuestionTx(ctx, tx, screening.Question{
				ID:              uuid.New(),
				SetID:           set.ID,
				Text:            preset.Text,
				Kind:            preset.Kind,
				OptionsEncoding: screening.EncodeOptions(preset.Options),
				Mandatory:       true,
				Order:           i,
			})
			if err != nil {
				return err
			}
			set.Questions = append(set.Questions, q)
		}

		out = CreatedJob{Job: job, PrescreeningSet: set}
		return nil
	})
	if err != nil {
		return CreatedJob{}, fmt.Errorf("%w: create job: %v", ErrInternal, err)
	}

	if u.logger != nil {
		u.logger.Printf("[Job] created job=%s with prescreening set=%s", out.Job.ID, out.PrescreeningSet.ID)
	}
	return out, nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (screening.Job, error) {
	job, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return screening.Job{}, ErrNotFound
		}
		return screening.Job{}, fmt.Errorf("%w: get job: %v", ErrInternal, err)
	}
	return job, nil
}

// GetWithSets returns the job together with its question sets and their
// ordered questions.
func (u *Jobs) GetWithSets(ctx context.Context, id uuid.UUID) (screening.Job, []screening.QuestionSet, error) {
	job, err := u.Get(ctx, id)
	if err != nil {
		return screening.Job{}, nil, err
	}

	sets, err := u.questions.ListSetsByJob(ctx, id)
	if err != nil {
		return screening.Job{}, nil, fmt.Errorf("%w: list question sets: %v", ErrInternal, err)
	}
	return job, sets, nil
}

func (u *Jobs) List(ctx context.Context, limit, offset int) ([]screening.Job, error) {
	out, err := u.jobs.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list jobs: %v", ErrInternal, err)
	}
	return out, nil
}

func (u *Jobs) Update(ctx context.Context, id uuid.UUID, in UpdateJobInput) (screening.Job, error) {
	job, err := u.Get(ctx, id)
	if err != nil {
		return screening.Job{}, err
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		job.Title = title
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		job.Description = desc
	}
	if status := strings.TrimSpace(in.Status); status != "" {
		switch screening.JobStatus(strings.ToUpper(status)) {
		case screening.JobDraft, screening.JobOpen, screening.JobClosed, screening.JobFilled:
			job.Status = screening.JobStatus(strings.ToUpper(status))
		default:
			return screening.Job{}, fmt.Errorf("%w: unknown job status %q", ErrInvalidInput, in.Status)
		}
	}

	updated, err := u.jobs.Update(ctx, job)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return screening.Job{}, ErrNotFound
		}
		return screening.Job{}, fmt.Errorf("%w: update job: %v", ErrInternal, err)
	}
	return updated, nil
}

func (u *Jobs) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: delete job: %v", ErrInternal, err)
	}
	return nil
}

// GenerateQuestions asks the model for text questions based on the job
// description and appends them to the job's prescreening set. Generated
// questions are free-text, so they never affect the pass/fail outcome.
func (u *Jobs) GenerateQuestions(ctx context.Context, jobID uuid.UUID) ([]screening.Question, error) {
	if u.generator == nil {
		return nil, ErrServiceUnavailable
	}

	job, err := u.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(job.Description) == "" {
		return nil, fmt.Errorf("%w: job has no description to generate from", ErrInvalidInput)
	}

	set, err := u.questions.GetSetByJobAndRole(ctx, jobID, screening.RolePrescreening)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionSetNotFound) {
			return nil, fmt.Errorf("%w: job %s has no prescreening set", ErrNotFound, jobID)
		}
		return nil, fmt.Errorf("%w: get prescreening set: %v", ErrInternal, err)
	}

	texts, err := u.generator.GenerateQuestions(ctx, job.Description)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrUnavailable):
			return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		case errors.Is(err, llm.ErrUnusableOutput):
			return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		default:
			return nil, fmt.Errorf("%w: generate questions: %v", ErrInternal, err)
		}
	}

	ord, err := u.questions.NextOrder(ctx, set.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: next order: %v", ErrInternal, err)
	}

	created := make([]screening.Question, 0, len(texts))
	for i, text := range texts {
		q, err := u.questions.CreateQuestion(ctx, screening.Question{
			ID:        uuid.New(),
			SetID:     set.ID,
			Text:      text,
			Kind:      screening.KindText,
			Mandatory: false,
			Order:     ord + i,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: store generated question: %v", ErrInternal, err)
		}
		created = append(created, q)
	}

	if u.logger != nil {
		u.logger.Printf("[Job] generated %d questions for job=%s set=%s", len(created), jobID, set.ID)
	}
	return created, nil
}
