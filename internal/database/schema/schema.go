package schema

import (
	"context"
	"fmt"

	"screenhub/internal/database"
)

// statements hold the full schema, ordered parent-first. Every child table
// declares ON DELETE CASCADE so removing a job, candidate or application
// takes its question sets, sessions and responses with it and leaves no
// orphan rows.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS recruiters (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		industry TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY,
		company_id UUID REFERENCES companies(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'DRAFT',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS question_sets (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'GENERAL',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS questions (
		id UUID PRIMARY KEY,
		set_id UUID NOT NULL REFERENCES question_sets(id) ON DELETE CASCADE,
		question_text TEXT NOT NULL,
		question_type TEXT NOT NULL,
		options TEXT NOT NULL DEFAULT '',
		is_mandatory BOOLEAN NOT NULL DEFAULT TRUE,
		ord INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS candidates (
		id UUID PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		candidate_id UUID NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		status TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (job_id, candidate_id)
	)`,

	`CREATE TABLE IF NOT EXISTS screening_sessions (
		id UUID PRIMARY KEY,
		application_id UUID NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
		set_id UUID NOT NULL REFERENCES question_sets(id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'PENDING',
		result TEXT,
		started_at TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS responses (
		id UUID PRIMARY KEY,
		session_id UUID NOT NULL REFERENCES screening_sessions(id) ON DELETE CASCADE,
		question_id UUID NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		answer TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (session_id, question_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_question_sets_job_id ON question_sets (job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_set_id_ord ON questions (set_id, ord)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications (job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_application_id ON screening_sessions (application_id)`,
	`CREATE INDEX IF NOT EXISTS idx_responses_session_id ON responses (session_id)`,
}

// Ensure creates missing tables and indexes. Statements are idempotent so
// this runs on every startup.
func Ensure(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
