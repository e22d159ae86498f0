package handler

import (
	"screenhub/internal/delivery/http/dto"
	"screenhub/internal/delivery/http/middleware"
	"screenhub/internal/pkg/response"
	"screenhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type QuestionHandler struct {
	uc usecase.QuestionUsecase
}

type createQuestionSetRequest struct {
	JobID uuid.UUID `json:"job_id"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

type addQuestionRequest struct {
	Text      string   `json:"question_text"`
	Kind      string   `json:"question_type"`
	Options   []string `json:"options"`
	Mandatory bool     `json:"is_mandatory"`
}

type updateQuestionRequest struct {
	Text      string   `json:"question_text"`
	Options   []string `json:"options"`
	Mandatory *bool    `json:"is_mandatory"`
}

type reorderRequest struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids"`
}

func NewQuestionHandler(uc usecase.QuestionUsecase) *QuestionHandler {
	return &QuestionHandler{uc: uc}
}

func (h *QuestionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/sets", h.CreateSet)
	r.Get("/sets/:id", h.GetSet)
	r.Post("/sets/:id/questions", h.AddQuestion)
	r.Put("/sets/:id/reorder", h.Reorder)
	r.Patch("/:id", h.UpdateQuestion)
	r.Delete("/:id", h.DeleteQuestion)
	r.Get("/presets", h.Presets)
}

func (h *QuestionHandler) CreateSet(c fiber.Ctx) error {
	var req createQuestionSetRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.JobID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "job_id is required", nil, nil)
	}

	set, err := h.uc.CreateSet(c.Context(), usecase.CreateQuestionSetInput{
		JobID: req.JobID,
		Name:  req.Name,
		Role:  req.Role,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromQuestionSet(set))
}

func (h *QuestionHandler) GetSet(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	set, err := h.uc.GetSet(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromQuestionSet(set))
}

func (h *QuestionHandler) AddQuestion(c fiber.Ctx) error {
	setID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req addQuestionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	q, err := h.uc.AddQuestion(c.Context(), setID, usecase.AddQuestionInput{
		Text:      req.Text,
		Kind:      req.Kind,
		Options:   req.Options,
		Mandatory: req.Mandatory,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromQuestion(q))
}

func (h *QuestionHandler) UpdateQuestion(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateQuestionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	q, err := h.uc.UpdateQuestion(c.Context(), id, usecase.UpdateQuestionInput{
		Text:      req.Text,
		Options:   req.Options,
		Mandatory: req.Mandatory,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromQuestion(q))
}

func (h *QuestionHandler) DeleteQuestion(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteQuestion(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *QuestionHandler) Reorder(c fiber.Ctx) error {
	setID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req reorderRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Reorder(c.Context(), setID, req.OrderedIDs); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *QuestionHandler) Presets(c fiber.Ctx) error {
	presets := h.uc.Presets(c.Context())
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromPresets(presets))
}
