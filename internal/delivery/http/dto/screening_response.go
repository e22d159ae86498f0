package dto

import (
	"time"

	"screenhub/internal/domain/screening"
	"screenhub/internal/usecase"

	"github.com/google/uuid"
)

type SessionResponse struct {
	ID            uuid.UUID  `json:"id"`
	ApplicationID uuid.UUID  `json:"application_id"`
	SetID         uuid.UUID  `json:"set_id"`
	Status        string     `json:"status"`
	Result        *string    `json:"result"`
	StartedAt     *time.Time `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ResponseItem struct {
	QuestionID uuid.UUID `json:"question_id"`
	Answer     string    `json:"answer"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CandidateViewResponse is the payload behind a magic link: the session, the
// questions to answer and any answers already stored.
type CandidateViewResponse struct {
	Session       SessionResponse    `json:"session"`
	JobTitle      string             `json:"job_title"`
	CandidateName string             `json:"candidate_name"`
	SetName       string             `json:"set_name"`
	Questions     []QuestionResponse `json:"questions"`
	Responses     []ResponseItem     `json:"responses"`
}

type InviteOutcomeResponse struct {
	ApplicationID  uuid.UUID `json:"application_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	SessionID      uuid.UUID `json:"session_id"`
	TestLink       string    `json:"test_link"`
	EmailSent      bool      `json:"email_sent"`
	Error          string    `json:"error,omitempty"`
}

type InviteSummaryResponse struct {
	JobID    uuid.UUID               `json:"job_id"`
	SetID    uuid.UUID               `json:"set_id"`
	Invited  int                     `json:"invited"`
	Sent     int                     `json:"sent"`
	Failed   int                     `json:"failed"`
	Outcomes []InviteOutcomeResponse `json:"outcomes"`
}

type CompletionResponse struct {
	Session           SessionResponse `json:"session"`
	Result            string          `json:"result"`
	ApplicationStatus string          `json:"application_status"`
	AlreadyCompleted  bool            `json:"already_completed"`
}

func FromSession(s screening.Session) SessionResponse {
	var result *string
	if s.Result != nil {
		r := string(*s.Result)
		result = &r
	}
	return SessionResponse{
		ID:            s.ID,
		ApplicationID: s.ApplicationID,
		SetID:         s.SetID,
		Status:        string(s.Status),
		Result:        result,
		StartedAt:     s.StartedAt,
		CompletedAt:   s.CompletedAt,
		CreatedAt:     s.CreatedAt,
	}
}

func FromCandidateView(v usecase.CandidateView) CandidateViewResponse {
	responses := make([]ResponseItem, 0, len(v.Responses))
	for _, r := range v.Responses {
		responses = append(responses, ResponseItem{
			QuestionID: r.QuestionID,
			Answer:     r.Answer,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return CandidateViewResponse{
		Session:       FromSession(v.Session),
		JobTitle:      v.JobTitle,
		CandidateName: v.CandidateName,
		SetName:       v.Set.Name,
		Questions:     FromQuestions(v.Set.Questions),
		Responses:     responses,
	}
}

func FromInviteSummary(s usecase.InviteSummary) InviteSummaryResponse {
	outcomes := make([]InviteOutcomeResponse, 0, len(s.Outcomes))
	for _, o := range s.Outcomes {
		outcomes = append(outcomes, InviteOutcomeResponse{
			ApplicationID:  o.ApplicationID,
			CandidateName:  o.CandidateName,
			CandidateEmail: o.CandidateEmail,
			SessionID:      o.SessionID,
			TestLink:       o.TestLink,
			EmailSent:      o.EmailSent,
			Error:          o.Error,
		})
	}
	return InviteSummaryResponse{
		JobID:    s.JobID,
		SetID:    s.SetID,
		Invited:  s.Invited,
		Sent:     s.Sent,
		Failed:   s.Failed,
		Outcomes: outcomes,
	}
}

func FromCompletion(r usecase.CompletionResult) CompletionResponse {
	return CompletionResponse{
		Session:           FromSession(r.Session),
		Result:            string(r.Outcome.Result),
		ApplicationStatus: string(r.Outcome.ApplicationStatus),
		AlreadyCompleted:  r.AlreadyCompleted,
	}
}
