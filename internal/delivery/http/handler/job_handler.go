package handler

import (
	"screenhub/internal/delivery/http/dto"
	"screenhub/internal/delivery/http/middleware"
	"screenhub/internal/pkg/response"
	"screenhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	jobs      usecase.JobUsecase
	screening usecase.ScreeningUsecase
	results   usecase.ResultsUsecase
}

type createJobRequest struct {
	CompanyID   *uuid.UUID `json:"company_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

type updateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func NewJobHandler(jobs usecase.JobUsecase, screening usecase.ScreeningUsecase, results usecase.ResultsUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, screening: screening, results: results}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Post("/:id/generate-questions", h.GenerateQuestions)
	r.Post("/:id/invite", h.Invite)
	r.Get("/:id/report", h.Report)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.jobs.Create(c.Context(), usecase.CreateJobInput{
		CompanyID:   req.CompanyID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	data := map[string]any{
		"job":              dto.FromJob(created.Job),
		"prescreening_set": dto.FromQuestionSet(created.PrescreeningSet),
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, data)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	job, sets, err := h.jobs.GetWithSets(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}

	data := map[string]any{
		"job":           dto.FromJob(job),
		"question_sets": dto.FromQuestionSets(sets),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	jobs, err := h.jobs.List(c.Context(), limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJobs(jobs))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.jobs.Update(c.Context(), id, usecase.UpdateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJob(updated))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.jobs.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *JobHandler) GenerateQuestions(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	questions, err := h.jobs.GenerateQuestions(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromQuestions(questions))
}

func (h *JobHandler) Invite(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	summary, err := h.screening.InviteSourced(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromInviteSummary(summary))
}

func (h *JobHandler) Report(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	report, err := h.results.JobReport(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}
