package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrQuestionSetNotFound = errors.New("question set not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrDuplicate           = errors.New("duplicate record")
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
