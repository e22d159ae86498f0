package usecase

import (
	"context"
	"errors"
	"log"
	"testing"

	"screenhub/internal/database"
	"screenhub/internal/domain/screening"
	"screenhub/internal/infrastructure/llm"
	"screenhub/internal/repository"

	"github.com/google/uuid"
)

type stubCompanyRepo struct {
	companies map[uuid.UUID]repository.Company
}

func (s stubCompanyRepo) Create(_ context.Context, c repository.Company) (repository.Company, error) {
	return c, nil
}

func (s stubCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return repository.Company{}, repository.ErrCompanyNotFound
	}
	return c, nil
}

func (s stubCompanyRepo) List(context.Context) ([]repository.Company, error) { return nil, nil }

type mockGenerator struct {
	texts []string
	err   error
}

func (m mockGenerator) GenerateQuestions(context.Context, string) ([]string, error) {
	return m.texts, m.err
}

type memJobRepoT struct {
	jobs map[uuid.UUID]screening.Job
}

func memJobRepo() *memJobRepoT {
	return &memJobRepoT{jobs: map[uuid.UUID]screening.Job{}}
}

func (r *memJobRepoT) CreateTx(_ context.Context, _ database.Tx, j screening.Job) (screening.Job, error) {
	r.jobs[j.ID] = j
	return j, nil
}

func (r *memJobRepoT) GetByID(_ context.Context, id uuid.UUID) (screening.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return screening.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (r *memJobRepoT) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.jobs[id]
	return ok, nil
}

func (r *memJobRepoT) List(context.Context, int, int) ([]screening.Job, error) { return nil, nil }

func (r *memJobRepoT) Update(_ context.Context, j screening.Job) (screening.Job, error) {
	if _, ok := r.jobs[j.ID]; !ok {
		return screening.Job{}, repository.ErrJobNotFound
	}
	r.jobs[j.ID] = j
	return j, nil
}

func (r *memJobRepoT) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.jobs[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func TestJobCreateSeedsPrescreeningSet(t *testing.T) {
	quests := newMockQuestionRepo()
	uc := NewJobUsecase(stubDB{}, memJobRepo(), quests, stubCompanyRepo{}, nil, log.New(discardWriter{}, "", 0))

	created, err := uc.Create(context.Background(), CreateJobInput{Title: "Backend Engineer", Description: "Go services"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Job.Status != screening.JobOpen {
		t.Fatalf("expected OPEN, got %s", created.Job.Status)
	}
	if created.PrescreeningSet.Role != screening.RolePrescreening {
		t.Fatalf("expected PRESCREENING role, got %s", created.PrescreeningSet.Role)
	}
	if len(created.PrescreeningSet.Questions) != 5 {
		t.Fatalf("expected 5 seeded questions, got %d", len(created.PrescreeningSet.Questions))
	}
	for _, q := range created.PrescreeningSet.Questions {
		if !q.IsGating() {
			t.Fatalf("expected seeded question %q to be gating", q.Text)
		}
		if !q.Mandatory {
			t.Fatalf("expected seeded question %q to be mandatory", q.Text)
		}
	}
}

func TestJobCreateRequiresTitle(t *testing.T) {
	uc := NewJobUsecase(stubDB{}, memJobRepo(), newMockQuestionRepo(), stubCompanyRepo{}, nil, nil)
	if _, err := uc.Create(context.Background(), CreateJobInput{Title: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestJobCreateUnknownCompany(t *testing.T) {
	uc := NewJobUsecase(stubDB{}, memJobRepo(), newMockQuestionRepo(), stubCompanyRepo{}, nil, nil)
	companyID := uuid.New()
	_, err := uc.Create(context.Background(), CreateJobInput{Title: "Engineer", CompanyID: &companyID})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateQuestionsAppendsTextQuestions(t *testing.T) {
	quests := newMockQuestionRepo()
	jobs := memJobRepo()
	jobID := uuid.New()
	jobs.jobs[jobID] = screening.Job{ID: jobID, Title: "Engineer", Description: "Go services"}

	setID := uuid.New()
	quests.addSet(screening.QuestionSet{
		ID:    setID,
		JobID: jobID,
		Role:  screening.RolePrescreening,
		Questions: []screening.Question{
			{ID: uuid.New(), SetID: setID, Kind: screening.KindSingleChoice, OptionsEncoding: "Yes,No"},
		},
	})

	gen := mockGenerator{texts: []string{"What is your Go experience?", "Describe a production incident."}}
	uc := NewJobUsecase(stubDB{}, jobs, quests, stubCompanyRepo{}, gen, log.New(discardWriter{}, "", 0))

	created, err := uc.GenerateQuestions(context.Background(), jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(created))
	}
	for i, q := range created {
		if q.Kind != screening.KindText {
			t.Fatalf("expected TEXT question, got %s", q.Kind)
		}
		if q.Mandatory {
			t.Fatalf("expected generated question to be optional")
		}
		if q.Order != 1+i {
			t.Fatalf("expected order %d, got %d", 1+i, q.Order)
		}
	}
}

func TestGenerateQuestionsMapsGeneratorErrors(t *testing.T) {
	jobs := memJobRepo()
	jobID := uuid.New()
	jobs.jobs[jobID] = screening.Job{ID: jobID, Title: "Engineer", Description: "Go services"}

	quests := newMockQuestionRepo()
	setID := uuid.New()
	quests.addSet(screening.QuestionSet{ID: setID, JobID: jobID, Role: screening.RolePrescreening})

	cases := []struct {
		genErr error
		want   error
	}{
		{llm.ErrUnavailable, ErrServiceUnavailable},
		{llm.ErrUnusableOutput, ErrGenerationFailed},
	}
	for _, tc := range cases {
		uc := NewJobUsecase(stubDB{}, jobs, quests, stubCompanyRepo{}, mockGenerator{err: tc.genErr}, nil)
		if _, err := uc.GenerateQuestions(context.Background(), jobID); !errors.Is(err, tc.want) {
			t.Fatalf("generator err %v: expected %v, got %v", tc.genErr, tc.want, err)
		}
	}
}

func TestGenerateQuestionsWithoutGenerator(t *testing.T) {
	uc := NewJobUsecase(stubDB{}, memJobRepo(), newMockQuestionRepo(), stubCompanyRepo{}, nil, nil)
	if _, err := uc.GenerateQuestions(context.Background(), uuid.New()); !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}
