package recruiter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("recruiter not found")

// Recruiter is an employer-side account. The whole employer surface sits
// behind recruiter auth; candidates never hold accounts.
type Recruiter struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Repository interface {
	Create(ctx context.Context, r Recruiter) (Recruiter, error)
	GetByEmail(ctx context.Context, email string) (Recruiter, error)
	GetByID(ctx context.Context, id uuid.UUID) (Recruiter, error)
}
