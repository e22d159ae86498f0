package dto

import (
	"time"

	"screenhub/internal/repository"

	"github.com/google/uuid"
)

type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromCompany(c repository.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Industry:    c.Industry,
		Description: c.Description,
		Website:     c.Website,
		CreatedAt:   c.CreatedAt,
	}
}

func FromCompanies(companies []repository.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, FromCompany(c))
	}
	return out
}
