package repository

import (
	"context"

	"screenhub/internal/database"
	"screenhub/internal/domain/screening"

	"github.com/google/uuid"
)

// SessionWithCandidate is a session row joined with the candidate behind
// its application, for the per-job report.
type SessionWithCandidate struct {
	Session        screening.Session
	CandidateID    uuid.UUID
	CandidateName  string
	CandidateEmail string
}

// AnsweredQuestion is a response joined with its question definition.
type AnsweredQuestion struct {
	Response     screening.Response
	QuestionText string
	QuestionKind screening.QuestionKind
}

// SessionDetail is a session joined with its application, candidate and job,
// for the recruiter-facing result view.
type SessionDetail struct {
	Session           screening.Session
	ApplicationStatus screening.ApplicationStatus
	CandidateID       uuid.UUID
	CandidateName     string
	CandidateEmail    string
	JobID             uuid.UUID
	JobTitle          string
}

type SessionRepository interface {
	Create(ctx context.Context, s screening.Session) (screening.Session, error)
	CreateTx(ctx context.Context, tx database.Tx, s screening.Session) (screening.Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (screening.Session, error)
	GetDetail(ctx context.Context, id uuid.UUID) (SessionDetail, error)
	GetForUpdateTx(ctx context.Context, tx database.Tx, id uuid.UUID) (screening.Session, error)
	MarkInProgress(ctx context.Context, id uuid.UUID) error
	CompleteTx(ctx context.Context, tx database.Tx, id uuid.UUID, result screening.SessionResult) error

	UpsertResponseTx(ctx context.Context, tx database.Tx, resp screening.Response) (screening.Response, error)
	ListResponses(ctx context.Context, sessionID uuid.UUID) ([]screening.Response, error)
	ListResponsesTx(ctx context.Context, tx database.Tx, sessionID uuid.UUID) ([]screening.Response, error)
	ListAnswered(ctx context.Context, sessionID uuid.UUID) ([]AnsweredQuestion, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]SessionWithCandidate, error)
}

type PostgresSessionRepository struct {
	db database.DB
}

func NewPostgresSessionRepository(db database.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

const sessionColumns = `id, application_id, set_id, status, result, started_at, completed_at, created_at`

func (r *PostgresSessionRepository) Create(ctx context.Context, s screening.Session) (screening.Session, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO screening_sessions (id, application_id, set_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+sessionColumns,
		s.ID, s.ApplicationID, s.SetID, s.Status,
	)
	return scanSession(row)
}

func (r *PostgresSessionRepository) CreateTx(ctx context.Context, tx database.Tx, s screening.Session) (screening.Session, error) {
	row := tx.QueryRow(ctx,
		`INSERT INTO screening_sessions (id, application_id, set_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+sessionColumns,
		s.ID, s.ApplicationID, s.SetID, s.Status,
	)
	return scanSession(row)
}

func (r *PostgresSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (screening.Session, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM screening_sessions WHERE id = $1`, id,
	)
	return scanSession(row)
}

func (r *PostgresSessionRepository) GetDetail(ctx context.Context, id uuid.UUID) (SessionDetail, error) {
	row := r.db.QueryRow(ctx,
		`SELECT s.id, s.application_id, s.set_id, s.status, s.result, s.started_at, s.completed_at, s.created_at,
		        a.status, c.id, c.full_name, c.email, j.id, j.title
		 FROM screening_sessions s
		 JOIN applications a ON a.id = s.application_id
		 JOIN candidates c ON c.id = a.candidate_id
		 JOIN jobs j ON j.id = a.job_id
		 WHERE s.id = $1`,
		id,
	)

	var d SessionDetail
	if err := row.Scan(
		&d.Session.ID, &d.Session.ApplicationID, &d.Session.SetID,
		&d.Session.Status, &d.Session.Result, &d.Session.StartedAt,
		&d.Session.CompletedAt, &d.Session.CreatedAt,
		&d.ApplicationStatus, &d.CandidateID, &d.CandidateName, &d.CandidateEmail,
		&d.JobID, &d.JobTitle,
	); err != nil {
		if isNoRows(err) {
			return SessionDetail{}, ErrSessionNotFound
		}
		return SessionDetail{}, err
	}
	return d, nil
}

// GetForUpdateTx takes a row lock so a concurrent submission and completion
// on the same session serialize instead of interleaving.
func (r *PostgresSessionRepository) GetForUpdateTx(ctx context.Context, tx database.Tx, id uuid.UUID) (screening.Session, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM screening_sessions WHERE id = $1 FOR UPDATE`, id,
	)
	return scanSession(row)
}

// MarkInProgress performs the PENDING -> IN_PROGRESS transition. The status
// guard in the WHERE clause makes it exactly-once: repeat fetches and
// completed sessions match zero rows and nothing changes.
func (r *PostgresSessionRepository) MarkInProgress(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE screening_sessions
		 SET status = $2, started_at = now(), updated_at = now()
		 WHERE id = $1 AND status = $3`,
		id, screening.SessionInProgress, screening.SessionPending,
	)
	return err
}

func (r *PostgresSessionRepository) CompleteTx(ctx context.Context, tx database.Tx, id uuid.UUID, result screening.SessionResult) error {
	n, err := tx.Exec(ctx,
		`UPDATE screening_sessions
		 SET status = $2, result = $3, completed_at = now(), updated_at = now()
		 WHERE id = $1`,
		id, screening.SessionCompleted, result,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

const responseColumns = `id, session_id, question_id, answer, created_at, updated_at`

// UpsertResponseTx keys response identity on (session, question): a second
// submission for the same question replaces the first instead of adding a
// row.
func (r *PostgresSessionRepository) UpsertResponseTx(ctx context.Context, tx database.Tx, resp screening.Response) (screening.Response, error) {
	row := tx.QueryRow(ctx,
		`INSERT INTO responses (id, session_id, question_id, answer)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (session_id, question_id)
		 DO UPDATE SET answer = EXCLUDED.answer, updated_at = now()
		 RETURNING `+responseColumns,
		resp.ID, resp.SessionID, resp.QuestionID, resp.Answer,
	)
	var out screening.Response
	if err := row.Scan(&out.ID, &out.SessionID, &out.QuestionID, &out.Answer, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return screening.Response{}, err
	}
	return out, nil
}

func (r *PostgresSessionRepository) ListResponses(ctx context.Context, sessionID uuid.UUID) ([]screening.Response, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+responseColumns+`
		 FROM responses WHERE session_id = $1
		 ORDER BY created_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	return collectResponses(rows)
}

func (r *PostgresSessionRepository) ListResponsesTx(ctx context.Context, tx database.Tx, sessionID uuid.UUID) ([]screening.Response, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+responseColumns+`
		 FROM responses WHERE session_id = $1
		 ORDER BY created_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	return collectResponses(rows)
}

func (r *PostgresSessionRepository) ListAnswered(ctx context.Context, sessionID uuid.UUID) ([]AnsweredQuestion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.session_id, r.question_id, r.answer, r.created_at, r.updated_at,
		        q.question_text, q.question_type
		 FROM responses r
		 JOIN questions q ON q.id = r.question_id
		 WHERE r.session_id = $1
		 ORDER BY q.ord ASC, q.created_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AnsweredQuestion, 0)
	for rows.Next() {
		var aq AnsweredQuestion
		if err := rows.Scan(
			&aq.Response.ID, &aq.Response.SessionID, &aq.Response.QuestionID,
			&aq.Response.Answer, &aq.Response.CreatedAt, &aq.Response.UpdatedAt,
			&aq.QuestionText, &aq.QuestionKind,
		); err != nil {
			return nil, err
		}
		out = append(out, aq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSessionRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]SessionWithCandidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.application_id, s.set_id, s.status, s.result, s.started_at, s.completed_at, s.created_at,
		        c.id, c.full_name, c.email
		 FROM screening_sessions s
		 JOIN applications a ON a.id = s.application_id
		 JOIN candidates c ON c.id = a.candidate_id
		 WHERE a.job_id = $1
		 ORDER BY s.created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SessionWithCandidate, 0)
	for rows.Next() {
		var sc SessionWithCandidate
		if err := rows.Scan(
			&sc.Session.ID, &sc.Session.ApplicationID, &sc.Session.SetID,
			&sc.Session.Status, &sc.Session.Result, &sc.Session.StartedAt,
			&sc.Session.CompletedAt, &sc.Session.CreatedAt,
			&sc.CandidateID, &sc.CandidateName, &sc.CandidateEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func collectResponses(rows database.Rows) ([]screening.Response, error) {
	defer rows.Close()

	out := make([]screening.Response, 0)
	for rows.Next() {
		var resp screening.Response
		if err := rows.Scan(&resp.ID, &resp.SessionID, &resp.QuestionID, &resp.Answer, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSession(row database.Row) (screening.Session, error) {
	var s screening.Session
	if err := row.Scan(&s.ID, &s.ApplicationID, &s.SetID, &s.Status, &s.Result, &s.StartedAt, &s.CompletedAt, &s.CreatedAt); err != nil {
		if isNoRows(err) {
			return screening.Session{}, ErrSessionNotFound
		}
		return screening.Session{}, err
	}
	return s, nil
}
