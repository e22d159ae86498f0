package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"screenhub/internal/database"
	"screenhub/internal/domain/screening"
	"screenhub/internal/repository"

	"github.com/google/uuid"
)

type CreateQuestionSetInput struct {
	JobID uuid.UUID
	Name  string
	Role  string
}

type AddQuestionInput struct {
	Text      string
	Kind      string
	Options   []string
	Mandatory bool
}

type UpdateQuestionInput struct {
	Text      string
	Options   []string
	Mandatory *bool
}

type QuestionUsecase interface {
	CreateSet(ctx context.Context, in CreateQuestionSetInput) (screening.QuestionSet, error)
	GetSet(ctx context.Context, id uuid.UUID) (screening.QuestionSet, error)
	AddQuestion(ctx context.Context, setID uuid.UUID, in AddQuestionInput) (screening.Question, error)
	UpdateQuestion(ctx context.Context, id uuid.UUID, in UpdateQuestionInput) (screening.Question, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, setID uuid.UUID, orderedIDs []uuid.UUID) error
	Presets(ctx context.Context) []screening.PresetQuestion
}

type Questions struct {
	db        database.DB
	jobs      repository.JobRepository
	questions repository.QuestionRepository
}

func NewQuestionUsecase(db database.DB, jobs repository.JobRepository, questions repository.QuestionRepository) *Questions {
	return &Questions{db: db, jobs: jobs, questions: questions}
}

func (u *Questions) CreateSet(ctx context.Context, in CreateQuestionSetInput) (screening.QuestionSet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return screening.QuestionSet{}, fmt.Errorf("%w: set name is required", ErrInvalidInput)
	}

	role := screening.RoleGeneral
	if r := strings.TrimSpace(in.Role); r != "" {
		switch screening.QuestionSetRole(strings.ToUpper(r)) {
		case screening.RolePrescreening:
			role = screening.RolePrescreening
		case screening.RoleGeneral:
			role = screening.RoleGeneral
		default:
			return screening.QuestionSet{}, fmt.Errorf("%w: unknown set role %q", ErrInvalidInput, in.Role)
		}
	}

	exists, err := u.jobs.ExistsByID(ctx, in.JobID)
	if err != nil {
		return screening.QuestionSet{}, fmt.Errorf("%w: check job: %v", ErrInternal, err)
	}
	if !exists {
		return screening.QuestionSet{}, fmt.Errorf("%w: job %s", ErrNotFound, in.JobID)
	}

	var set screening.QuestionSet
	err = database.WithinTx(ctx, u.db, func(tx database.Tx) error {
		set, err = u.questions.CreateSetTx(ctx, tx, screening.QuestionSet{
			ID:    uuid.New(),
			JobID: in.JobID,
			Name:  name,
			Role:  role,
		})
		return err
	})
	if err != nil {
		return screening.QuestionSet{}, fmt.Errorf("%w: create question set: %v", ErrInternal, err)
	}
	return set, nil
}

func (u *Questions) GetSet(ctx context.Context, id uuid.UUID) (screening.QuestionSet, error) {
	set, err := u.questions.GetSetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionSetNotFound) {
			return screening.QuestionSet{}, ErrNotFound
		}
		return screening.QuestionSet{}, fmt.Errorf("%w: get question set: %v", ErrInternal, err)
	}
	return set, nil
}

func (u *Questions) AddQuestion(ctx context.Context, setID uuid.UUID, in AddQuestionInput) (screening.Question, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return screening.Question{}, fmt.Errorf("%w: question text is required", ErrInvalidInput)
	}
	kind, ok := screening.ParseQuestionKind(in.Kind)
	if !ok {
		return screening.Question{}, fmt.Errorf("%w: unknown question type %q", ErrInvalidInput, in.Kind)
	}
	if err := screening.ValidateDefinition(kind, in.Options); err != nil {
		return screening.Question{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exists, err := u.questions.ExistsSetByID(ctx, setID)
	if err != nil {
		return screening.Question{}, fmt.Errorf("%w: check question set: %v", ErrInternal, err)
	}
	if !exists {
		return screening.Question{}, fmt.Errorf("%w: question set %s", ErrNotFound, setID)
	}

	ord, err := u.questions.NextOrder(ctx, setID)
	if err != nil {
		return screening.Question{}, fmt.Errorf("%w: next order: %v", ErrInternal, err)
	}

	q, err := u.questions.CreateQuestion(ctx, screening.Question{
		ID:              uuid.New(),
		SetID:           setID,
		Text:            text,
		Kind:            kind,
		OptionsEncoding: screening.EncodeOptions(in.Options),
		Mandatory:       in.Mandatory,
		Order:           ord,
	})
	if err != nil {
		return screening.Question{}, fmt.Errorf("%w: create question: %v", ErrInternal, err)
	}
	return q, nil
}

func (u *Questions) UpdateQuestion(ctx context.Context, id uuid.UUID, in UpdateQuestionInput) (screening.Question, error) {
	q, err := u.questions.GetQuestionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return screening.Question{}, ErrNotFound
		}
		return screening.Question{}, fmt.Errorf("%w: get question: %v", ErrInternal, err)
	}

	if text := strings.TrimSpace(in.Text); text != "" {
		q.Text = text
	}
	if in.Options != nil {
		if err := screening.ValidateDefinition(q.Kind, in.Options); err != nil {
			return screening.Question{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		q.OptionsEncoding = screening.EncodeOptions(in.Options)
	}
	if in.Mandatory != nil {
		q.Mandatory = *in.Mandatory
	}

	updated, err := u.questions.UpdateQuestion(ctx, q)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return screening.Question{}, ErrNotFound
		}
		return screening.Question{}, fmt.Errorf("%w: update question: %v", ErrInternal, err)
	}
	return updated, nil
}

func (u *Questions) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	if err := u.questions.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: delete question: %v", ErrInternal, err)
	}
	return nil
}

func (u *Questions) Reorder(ctx context.Context, setID uuid.UUID, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return fmt.Errorf("%w: ordered question ids are required", ErrInvalidInput)
	}

	exists, err := u.questions.ExistsSetByID(ctx, setID)
	if err != nil {
		return fmt.Errorf("%w: check question set: %v", ErrInternal, err)
	}
	if !exists {
		return fmt.Errorf("%w: question set %s", ErrNotFound, setID)
	}

	if err := u.questions.Reorder(ctx, setID, orderedIDs); err != nil {
		return fmt.Errorf("%w: reorder questions: %v", ErrInternal, err)
	}
	return nil
}

func (u *Questions) Presets(_ context.Context) []screening.PresetQuestion {
	return screening.DefaultPrescreeningQuestions()
}
