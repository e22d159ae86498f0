package dto

import (
	"time"

	"screenhub/internal/domain/screening"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   *uuid.UUID `json:"company_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromJob(j screening.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		CompanyID:   j.CompanyID,
		Title:       j.Title,
		Description: j.Description,
		Status:      string(j.Status),
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func FromJobs(jobs []screening.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}
