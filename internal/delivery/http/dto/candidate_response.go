package dto

import (
	"time"

	"screenhub/internal/domain/screening"

	"github.com/google/uuid"
)

type CandidateResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

func FromCandidate(c screening.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:        c.ID,
		FullName:  c.FullName,
		Email:     c.Email,
		Phone:     c.Phone,
		Location:  c.Location,
		CreatedAt: c.CreatedAt,
	}
}

func FromCandidates(candidates []screening.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, FromCandidate(c))
	}
	return out
}

func FromApplication(a screening.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		CandidateID: a.CandidateID,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
	}
}

func FromApplications(apps []screening.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, FromApplication(a))
	}
	return out
}
