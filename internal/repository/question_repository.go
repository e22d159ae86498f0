package repository

import (
	"context"

	"screenhub/internal/database"
	"screenhub/internal/domain/screening"

	"github.com/google/uuid"
)

type QuestionRepository interface {
	CreateSetTx(ctx context.Context, tx database.Tx, set screening.QuestionSet) (screening.QuestionSet, error)
	GetSetByID(ctx context.Context, id uuid.UUID) (screening.QuestionSet, error)
	GetSetByJobAndRole(ctx context.Context, jobID uuid.UUID, role screening.QuestionSetRole) (screening.QuestionSet, error)
	ListSetsByJob(ctx context.Context, jobID uuid.UUID) ([]screening.QuestionSet, error)
	ExistsSetByID(ctx context.Context, id uuid.UUID) (bool, error)

	CreateQuestion(ctx context.Context, q screening.Question) (screening.Question, error)
	CreateQuestionTx(ctx context.Context, tx database.Tx, q screening.Question) (screening.Question, error)
	GetQuestionByID(ctx context.Context, id uuid.UUID) (screening.Question, error)
	ListQuestionsBySet(ctx context.Context, setID uuid.UUID) ([]screening.Question, error)
	UpdateQuestion(ctx context.Context, q screening.Question) (screening.Question, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, setID uuid.UUID, orderedIDs []uuid.UUID) error

	NextOrder(ctx context.Context, setID uuid.UUID) (int, error)
}

type PostgresQuestionRepository struct {
	db database.DB
}

func NewPostgresQuestionRepository(db database.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

func (r *PostgresQuestionRepository) CreateSetTx(ctx context.Context, tx database.Tx, set screening.QuestionSet) (screening.QuestionSet, error) {
	row := tx.QueryRow(ctx,
		`INSERT INTO question_sets (id, job_id, name, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, job_id, name, role, created_at`,
		set.ID, set.JobID, set.Name, set.Role,
	)
	var out screening.QuestionSet
	if err := row.Scan(&out.ID, &out.JobID, &out.Name, &out.Role, &out.CreatedAt); err != nil {
		return screening.QuestionSet{}, err
	}
	return out, nil
}

func (r *PostgresQuestionRepository) GetSetByID(ctx context.Context, id uuid.UUID) (screening.QuestionSet, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, job_id, name, role, created_at FROM question_sets WHERE id = $1`,
		id,
	)
	var set screening.QuestionSet
	if err := row.Scan(&set.ID, &set.JobID, &set.Name, &set.Role, &set.CreatedAt); err != nil {
		if isNoRows(err) {
			return screening.QuestionSet{}, ErrQuestionSetNotFound
		}
		return screening.QuestionSet{}, err
	}

	questions, err := r.ListQuestionsBySet(ctx, set.ID)
	if err != nil {
		return screening.QuestionSet{}, err
	}
	set.Questions = questions
	return set, nil
}

func (r *PostgresQuestionRepository) GetSetByJobAndRole(ctx context.Context, jobID uuid.UUID, role screening.QuestionSetRole) (screening.QuestionSet, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, job_id, name, role, created_at
		 FROM question_sets
		 WHERE job_id = $1 AND role = $2
		 ORDER BY created_at ASC
		 LIMIT 1`,
		jobID, role,
	)
	var set screening.QuestionSet
	if err := row.Scan(&set.ID, &set.JobID, &set.Name, &set.Role, &set.CreatedAt); err != nil {
		if isNoRows(err) {
			return screening.QuestionSet{}, ErrQuestionSetNotFound
		}
		return screening.QuestionSet{}, err
	}
	return set, nil
}

func (r *PostgresQuestionRepository) ListSetsByJob(ctx context.Context, jobID uuid.UUID) ([]screening.QuestionSet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, name, role, created_at
		 FROM question_sets
		 WHERE job_id = $1
		 ORDER BY created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}

	sets := make([]screening.QuestionSet, 0)
	for rows.Next() {
		var set screening.QuestionSet
		if err := rows.Scan(&set.ID, &set.JobID, &set.Name, &set.Role, &set.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range sets {
		questions, err := r.ListQuestionsBySet(ctx, sets[i].ID)
		if err != nil {
			return nil, err
		}
		sets[i].Questions = questions
	}
	return sets, nil
}

func (r *PostgresQuestionRepository) ExistsSetByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM question_sets WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

const questionColumns = `id, set_id, question_text, question_type, options, is_mandatory, ord, created_at`

func (r *PostgresQuestionRepository) CreateQuestion(ctx context.Context, q screening.Question) (screening.Question, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO questions (id, set_id, question_text, question_type, options, is_mandatory, ord)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+questionColumns,
		q.ID, q.SetID, q.Text, q.Kind, q.OptionsEncoding, q.Mandatory, q.Order,
	)
	return scanQuestion(row)
}

func (r *PostgresQuestionRepository) CreateQuestionTx(ctx context.Context, tx database.Tx, q screening.Question) (screening.Question, error) {
	row := tx.QueryRow(ctx,
		`INSERT INTO questions (id, set_id, question_text, question_type, options, is_mandatory, ord)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+questionColumns,
		q.ID, q.SetID, q.Text, q.Kind, q.OptionsEncoding, q.Mandatory, q.Order,
	)
	return scanQuestion(row)
}

func (r *PostgresQuestionRepository) GetQuestionByID(ctx context.Context, id uuid.UUID) (screening.Question, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`,
		id,
	)
	return scanQuestion(row)
}

func (r *PostgresQuestionRepository) ListQuestionsBySet(ctx context.Context, setID uuid.UUID) ([]screening.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions
		 WHERE set_id = $1
		 ORDER BY ord ASC, created_at ASC`,
		setID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]screening.Question, 0)
	for rows.Next() {
		var q screening.Question
		if err := rows.Scan(&q.ID, &q.SetID, &q.Text, &q.Kind, &q.OptionsEncoding, &q.Mandatory, &q.Order, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresQuestionRepository) UpdateQuestion(ctx context.Context, q screening.Question) (screening.Question, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE questions
		 SET question_text = $2, options = $3, is_mandatory = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+questionColumns,
		q.ID, q.Text, q.OptionsEncoding, q.Mandatory,
	)
	return scanQuestion(row)
}

func (r *PostgresQuestionRepository) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// Reorder rewrites the ord column from the given id order. Ids not in the
// set are ignored, matching the permissive original behavior.
func (r *PostgresQuestionRepository) Reorder(ctx context.Context, setID uuid.UUID, orderedIDs []uuid.UUID) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		for idx, id := range orderedIDs {
			if _, err := tx.Exec(ctx,
				`UPDATE questions SET ord = $3, updated_at = now() WHERE id = $1 AND set_id = $2`,
				id, setID, idx,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresQuestionRepository) NextOrder(ctx context.Context, setID uuid.UUID) (int, error) {
	var next int
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(ord), -1) + 1 FROM questions WHERE set_id = $1`,
		setID,
	)
	if err := row.Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

func scanQuestion(row database.Row) (screening.Question, error) {
	var q screening.Question
	if err := row.Scan(&q.ID, &q.SetID, &q.Text, &q.Kind, &q.OptionsEncoding, &q.Mandatory, &q.Order, &q.CreatedAt); err != nil {
		if isNoRows(err) {
			return screening.Question{}, ErrQuestionNotFound
		}
		return screening.Question{}, err
	}
	return q, nil
}
