package dto

import (
	"time"

	"screenhub/internal/domain/screening"

	"github.com/google/uuid"
)

type QuestionResponse struct {
	ID        uuid.UUID `json:"id"`
	SetID     uuid.UUID `json:"set_id"`
	Text      string    `json:"question_text"`
	Kind      string    `json:"question_type"`
	Options   []string  `json:"options"`
	Mandatory bool      `json:"is_mandatory"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

type QuestionSetResponse struct {
	ID        uuid.UUID          `json:"id"`
	JobID     uuid.UUID          `json:"job_id"`
	Name      string             `json:"name"`
	Role      string             `json:"role"`
	Questions []QuestionResponse `json:"questions"`
	CreatedAt time.Time          `json:"created_at"`
}

type PresetQuestionResponse struct {
	Text    string   `json:"question_text"`
	Kind    string   `json:"question_type"`
	Options []string `json:"options"`
}

func FromQuestion(q screening.Question) QuestionResponse {
	opts := q.Options()
	if opts == nil {
		opts = []string{}
	}
	return QuestionResponse{
		ID:        q.ID,
		SetID:     q.SetID,
		Text:      q.Text,
		Kind:      string(q.Kind),
		Options:   opts,
		Mandatory: q.Mandatory,
		Order:     q.Order,
		CreatedAt: q.CreatedAt,
	}
}

func FromQuestions(questions []screening.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, FromQuestion(q))
	}
	return out
}

func FromQuestionSet(set screening.QuestionSet) QuestionSetResponse {
	return QuestionSetResponse{
		ID:        set.ID,
		JobID:     set.JobID,
		Name:      set.Name,
		Role:      string(set.Role),
		Questions: FromQuestions(set.Questions),
		CreatedAt: set.CreatedAt,
	}
}

func FromQuestionSets(sets []screening.QuestionSet) []QuestionSetResponse {
	out := make([]QuestionSetResponse, 0, len(sets))
	for _, set := range sets {
		out = append(out, FromQuestionSet(set))
	}
	return out
}

func FromPresets(presets []screening.PresetQuestion) []PresetQuestionResponse {
	out := make([]PresetQuestionResponse, 0, len(presets))
	for _, p := range presets {
		out = append(out, PresetQuestionResponse{
			Text:    p.Text,
			Kind:    string(p.Kind),
			Options: p.Options,
		})
	}
	return out
}
