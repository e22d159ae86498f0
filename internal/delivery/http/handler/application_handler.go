package handler

import (
	"screenhub/internal/delivery/http/dto"
	"screenhub/internal/delivery/http/middleware"
	"screenhub/internal/pkg/response"
	"screenhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type createApplicationRequest struct {
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
}

func (h *ApplicationHandler) Create(c fiber.Ctx) error {
	var req createApplicationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.JobID == uuid.Nil || req.CandidateID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "job_id and candidate_id are required", nil, nil)
	}

	created, err := h.uc.Create(c.Context(), req.JobID, req.CandidateID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromApplication(created))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	app, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(app))
}

// ListByJob answers GET /jobs/:id/applications; it lives here so the
// application surface stays in one handler.
func (h *ApplicationHandler) ListByJob(c fiber.Ctx) error {
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	apps, err := h.uc.ListByJob(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplications(apps))
}
