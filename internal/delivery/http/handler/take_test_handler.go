package handler

import (
	"screenhub/internal/delivery/http/dto"
	"screenhub/internal/delivery/http/middleware"
	"screenhub/internal/domain/screening"
	"screenhub/internal/pkg/response"
	"screenhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// TakeTestHandler is the candidate surface. No auth middleware applies;
// knowing the session id is the access control.
type TakeTestHandler struct {
	uc usecase.ScreeningUsecase
}

type submitResponseRequest struct {
	QuestionID uuid.UUID `json:"question_id"`
	AnswerText *string   `json:"answer_text"`
	Selections []string  `json:"selections"`
}

func NewTakeTestHandler(uc usecase.ScreeningUsecase) *TakeTestHandler {
	return &TakeTestHandler{uc: uc}
}

func (h *TakeTestHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:sessionID", h.Fetch)
	r.Post("/:sessionID/responses", h.SubmitResponse)
	r.Post("/:sessionID/complete", h.Complete)
}

func (h *TakeTestHandler) Fetch(c fiber.Ctx) error {
	sessionID, err := parseUUIDParam(c, "sessionID")
	if err != nil {
		return err
	}

	view, err := h.uc.FetchForCandidate(c.Context(), sessionID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCandidateView(view))
}

func (h *TakeTestHandler) SubmitResponse(c fiber.Ctx) error {
	sessionID, err := parseUUIDParam(c, "sessionID")
	if err != nil {
		return err
	}

	var req submitResponseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.QuestionID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "question_id is required", nil, nil)
	}

	answer, appErr := answerFromRequest(req)
	if appErr != nil {
		return appErr
	}

	resp, err := h.uc.SubmitResponse(c.Context(), sessionID, req.QuestionID, answer)
	if err != nil {
		return mapUsecaseError(err)
	}

	data := dto.ResponseItem{
		QuestionID: resp.QuestionID,
		Answer:     resp.Answer,
		UpdatedAt:  resp.UpdatedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *TakeTestHandler) Complete(c fiber.Ctx) error {
	sessionID, err := parseUUIDParam(c, "sessionID")
	if err != nil {
		return err
	}

	result, err := h.uc.Complete(c.Context(), sessionID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompletion(result))
}

// answerFromRequest picks the answer variant from the request shape: a text
// body or a selection list, never both.
func answerFromRequest(req submitResponseRequest) (screening.Answer, *middleware.AppError) {
	hasText := req.AnswerText != nil
	hasSelections := len(req.Selections) > 0

	switch {
	case hasText && hasSelections:
		return screening.Answer{}, middleware.NewAppError(
			fiber.StatusBadRequest, "Provide either answer_text or selections, not both", nil, nil)
	case hasText:
		return screening.NewTextAnswer(*req.AnswerText), nil
	case hasSelections:
		return screening.NewChoiceAnswer(req.Selections), nil
	default:
		return screening.Answer{}, middleware.NewAppError(
			fiber.StatusBadRequest, "Provide answer_text or selections", nil, nil)
	}
}
