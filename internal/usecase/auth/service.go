package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"screenhub/internal/domain/recruiter"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	recruiters recruiter.Repository
}

func NewService(recruiters recruiter.Repository) *Service {
	return &Service{recruiters: recruiters}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (recruiter.Recruiter, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return recruiter.Recruiter{}, ErrInvalidInput
	}
	if len(strings.TrimSpace(in.Password)) < 8 {
		return recruiter.Recruiter{}, ErrInvalidInput
	}

	if _, err := s.recruiters.GetByEmail(ctx, email); err == nil {
		return recruiter.Recruiter{}, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, recruiter.ErrNotFound) {
		return recruiter.Recruiter{}, ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return recruiter.Recruiter{}, ErrInternal
	}

	created, err := s.recruiters.Create(ctx, recruiter.Recruiter{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		// Lost a race with another registration for the same email.
		if _, getErr := s.recruiters.GetByEmail(ctx, email); getErr == nil {
			return recruiter.Recruiter{}, ErrEmailAlreadyRegistered
		}
		return recruiter.Recruiter{}, ErrInternal
	}

	return sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (recruiter.Recruiter, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return recruiter.Recruiter{}, ErrInvalidCredentials
	}

	rec, err := s.recruiters.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, recruiter.ErrNotFound) {
			return recruiter.Recruiter{}, ErrInvalidCredentials
		}
		return recruiter.Recruiter{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(in.Password)); err != nil {
		return recruiter.Recruiter{}, ErrInvalidCredentials
	}

	return sanitize(rec), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitize(r recruiter.Recruiter) recruiter.Recruiter {
	r.PasswordHash = ""
	return r
}
