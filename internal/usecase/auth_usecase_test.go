package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"screenhub/internal/domain/recruiter"
	"screenhub/internal/pkg/jwt"
	ucauth "screenhub/internal/usecase/auth"

	"github.com/google/uuid"
)

type memRecruiterRepo struct {
	byEmail map[string]recruiter.Recruiter
	byID    map[uuid.UUID]recruiter.Recruiter
}

func newMemRecruiterRepo() *memRecruiterRepo {
	return &memRecruiterRepo{
		byEmail: map[string]recruiter.Recruiter{},
		byID:    map[uuid.UUID]recruiter.Recruiter{},
	}
}

func (m *memRecruiterRepo) Create(_ context.Context, rec recruiter.Recruiter) (recruiter.Recruiter, error) {
	if _, ok := m.byEmail[rec.Email]; ok {
		return recruiter.Recruiter{}, errors.New("duplicate email")
	}
	rec.CreatedAt = time.Now()
	m.byEmail[rec.Email] = rec
	m.byID[rec.ID] = rec
	return rec, nil
}

func (m *memRecruiterRepo) GetByEmail(_ context.Context, email string) (recruiter.Recruiter, error) {
	rec, ok := m.byEmail[email]
	if !ok {
		return recruiter.Recruiter{}, recruiter.ErrNotFound
	}
	return rec, nil
}

func (m *memRecruiterRepo) GetByID(_ context.Context, id uuid.UUID) (recruiter.Recruiter, error) {
	rec, ok := m.byID[id]
	if !ok {
		return recruiter.Recruiter{}, recruiter.ErrNotFound
	}
	return rec, nil
}

func newAuthForTest() (*Auth, *memRecruiterRepo) {
	repo := newMemRecruiterRepo()
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthUsecase(repo, jwtSvc), repo
}

func TestAuthRegisterAndLogin(t *testing.T) {
	uc, _ := newAuthForTest()

	rec, access, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email:    " Recruiter@Example.com ",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.Email != "recruiter@example.com" {
		t.Fatalf("expected normalized email, got %q", rec.Email)
	}
	if rec.PasswordHash != "" {
		t.Fatalf("expected password hash to be stripped")
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected tokens to be issued")
	}

	if _, _, _, err := uc.Login(context.Background(), ucauth.LoginInput{
		Email:    "recruiter@example.com",
		Password: "supersecret",
	}); err != nil {
		t.Fatalf("unexpected login err: %v", err)
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	uc, _ := newAuthForTest()
	in := ucauth.RegisterInput{Email: "dup@example.com", Password: "supersecret"}

	if _, _, _, err := uc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, _, _, err := uc.Register(context.Background(), in); !errors.Is(err, ucauth.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	uc, _ := newAuthForTest()
	if _, _, _, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "r@example.com", Password: "supersecret",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, _, _, err := uc.Login(context.Background(), ucauth.LoginInput{Email: "r@example.com", Password: "wrong"})
	if !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthRegisterRejectsWeakInput(t *testing.T) {
	uc, _ := newAuthForTest()

	if _, _, _, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "not-an-email", Password: "supersecret",
	}); !errors.Is(err, ucauth.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
	if _, _, _, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "ok@example.com", Password: "short",
	}); !errors.Is(err, ucauth.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestAuthRefreshRoundTrip(t *testing.T) {
	uc, _ := newAuthForTest()

	_, _, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "r@example.com", Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	access, newRefresh, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("unexpected refresh err: %v", err)
	}
	if access == "" || newRefresh == "" {
		t.Fatalf("expected fresh token pair")
	}
}

func TestAuthRefreshRejectsAccessToken(t *testing.T) {
	uc, _ := newAuthForTest()

	_, access, _, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "r@example.com", Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestAuthRefreshEmptyToken(t *testing.T) {
	uc, _ := newAuthForTest()
	if _, _, err := uc.Refresh(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
