package handler

import (
	"screenhub/internal/delivery/http/dto"
	"screenhub/internal/delivery/http/middleware"
	"screenhub/internal/pkg/response"
	"screenhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ScreeningHandler covers the recruiter-facing session surface. The
// candidate-facing magic-link routes live on TakeTestHandler.
type ScreeningHandler struct {
	screening usecase.ScreeningUsecase
	results   usecase.ResultsUsecase
}

type createSessionRequest struct {
	ApplicationID uuid.UUID `json:"application_id"`
	SetID         uuid.UUID `json:"set_id"`
}

func NewScreeningHandler(screening usecase.ScreeningUsecase, results usecase.ResultsUsecase) *ScreeningHandler {
	return &ScreeningHandler{screening: screening, results: results}
}

func (h *ScreeningHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.CreateSession)
	r.Get("/:id/result", h.SessionResult)
}

func (h *ScreeningHandler) CreateSession(c fiber.Ctx) error {
	var req createSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.ApplicationID == uuid.Nil || req.SetID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "application_id and set_id are required", nil, nil)
	}

	s, err := h.screening.CreateSession(c.Context(), req.ApplicationID, req.SetID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromSession(s))
}

func (h *ScreeningHandler) SessionResult(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	view, err := h.results.SessionResult(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, view)
}
