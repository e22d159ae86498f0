package screening

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID          uuid.UUID
	CompanyID   *uuid.UUID
	Title       string
	Description string
	Status      JobStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type QuestionSet struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	Name      string
	Role      QuestionSetRole
	Questions []Question
	CreatedAt time.Time
}

type Candidate struct {
	ID        uuid.UUID
	FullName  string
	Email     string
	Phone     string
	Location  string
	CreatedAt time.Time
}

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	CandidateID uuid.UUID
	Status      ApplicationStatus
	AppliedAt   time.Time
}

// Session is one candidate's attempt at answering a question set for one
// application. Its UUID doubles as the magic-link token: possession of the
// id is the only access control on the candidate surface.
type Session struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	SetID         uuid.UUID
	Status        SessionStatus
	Result        *SessionResult
	StartedAt     *time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time
}

type Response struct {
	ID         uuid.UUID
	SessionID  uuid.UUID
	QuestionID uuid.UUID
	Answer     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
