package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"screenhub/internal/domain/screening"
	"screenhub/internal/repository"

	"github.com/google/uuid"
)

// AnsweredItem is one question with the answer the candidate stored for it.
// Choice answers additionally carry the selected option tokens split out.
type AnsweredItem struct {
	QuestionID   uuid.UUID              `json:"question_id"`
	QuestionText string                 `json:"question_text"`
	QuestionKind screening.QuestionKind `json:"question_type"`
	Answer       string                 `json:"answer"`
	Selections   []string               `json:"selections,omitempty"`
}

// SessionResultView is the recruiter-facing readout of one session, joined
// with the application, candidate and job behind it.
type SessionResultView struct {
	SessionID         uuid.UUID                   `json:"session_id"`
	Status            screening.SessionStatus     `json:"status"`
	Result            *screening.SessionResult    `json:"result"`
	StartedAt         *time.Time                  `json:"started_at"`
	CompletedAt       *time.Time                  `json:"completed_at"`
	ApplicationID     uuid.UUID                   `json:"application_id"`
	ApplicationStatus screening.ApplicationStatus `json:"application_status"`
	CandidateID       uuid.UUID                   `json:"candidate_id"`
	CandidateName     string                      `json:"candidate_name"`
	CandidateEmail    string                      `json:"candidate_email"`
	JobID             uuid.UUID                   `json:"job_id"`
	JobTitle          string                      `json:"job_title"`
	Answers           []AnsweredItem              `json:"answers"`
}

type CandidateReport struct {
	CandidateID    uuid.UUID        `json:"candidate_id"`
	CandidateName  string           `json:"candidate_name"`
	CandidateEmail string           `json:"candidate_email"`
	Sessions       []SessionSummary `json:"sessions"`
}

type SessionSummary struct {
	SessionID   uuid.UUID                `json:"session_id"`
	Status      screening.SessionStatus  `json:"status"`
	Result      *screening.SessionResult `json:"result"`
	CompletedAt *time.Time               `json:"completed_at"`
	Answers     []AnsweredItem           `json:"answers"`
}

type JobReport struct {
	JobID      uuid.UUID         `json:"job_id"`
	Candidates []CandidateReport `json:"candidates"`
}

type ResultsUsecase interface {
	SessionResult(ctx context.Context, sessionID uuid.UUID) (SessionResultView, error)
	JobReport(ctx context.Context, jobID uuid.UUID) (JobReport, error)
}

type Results struct {
	sessions repository.SessionRepository
	jobs     repository.JobRepository
	cache    ResultCache
	cacheTTL time.Duration
	logger   *log.Logger
}

func NewResultsUsecase(
	sessions repository.SessionRepository,
	jobs repository.JobRepository,
	cache ResultCache,
	cacheTTL time.Duration,
	logger *log.Logger,
) *Results {
	return &Results{sessions: sessions, jobs: jobs, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// SessionResult assembles one session's readout. Views are cached briefly;
// submissions and completion invalidate the entry so recruiters never read a
// stale verdict.
func (u *Results) SessionResult(ctx context.Context, sessionID uuid.UUID) (SessionResultView, error) {
	key := sessionResultCacheKey(sessionID.String())

	if u.cache != nil {
		var cached SessionResultView
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	d, err := u.sessions.GetDetail(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return SessionResultView{}, ErrNotFound
		}
		return SessionResultView{}, fmt.Errorf("%w: get session: %v", ErrInternal, err)
	}

	answered, err := u.sessions.ListAnswered(ctx, sessionID)
	if err != nil {
		return SessionResultView{}, fmt.Errorf("%w: list answers: %v", ErrInternal, err)
	}

	view := SessionResultView{
		SessionID:         d.Session.ID,
		Status:            d.Session.Status,
		Result:            d.Session.Result,
		StartedAt:         d.Session.StartedAt,
		CompletedAt:       d.Session.CompletedAt,
		ApplicationID:     d.Session.ApplicationID,
		ApplicationStatus: d.ApplicationStatus,
		CandidateID:       d.CandidateID,
		CandidateName:     d.CandidateName,
		CandidateEmail:    d.CandidateEmail,
		JobID:             d.JobID,
		JobTitle:          d.JobTitle,
		Answers:           answeredItems(answered),
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, view, u.cacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("[Results] cache set failed session=%s err=%v", sessionID, err)
		}
	}
	return view, nil
}

// JobReport lists every session for a job grouped by candidate.
func (u *Results) JobReport(ctx context.Context, jobID uuid.UUID) (JobReport, error) {
	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return JobReport{}, fmt.Errorf("%w: check job: %v", ErrInternal, err)
	}
	if !exists {
		return JobReport{}, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
	}

	sessions, err := u.sessions.ListByJob(ctx, jobID)
	if err != nil {
		return JobReport{}, fmt.Errorf("%w: list sessions: %v", ErrInternal, err)
	}

	report := JobReport{JobID: jobID, Candidates: make([]CandidateReport, 0)}
	index := map[uuid.UUID]int{}
	for _, sc := range sessions {
		i, ok := index[sc.CandidateID]
		if !ok {
			i = len(report.Candidates)
			index[sc.CandidateID] = i
			report.Candidates = append(report.Candidates, CandidateReport{
				CandidateID:    sc.CandidateID,
				CandidateName:  sc.CandidateName,
				CandidateEmail: sc.CandidateEmail,
				Sessions:       make([]SessionSummary, 0, 1),
			})
		}
		answered, err := u.sessions.ListAnswered(ctx, sc.Session.ID)
		if err != nil {
			return JobReport{}, fmt.Errorf("%w: list answers: %v", ErrInternal, err)
		}
		report.Candidates[i].Sessions = append(report.Candidates[i].Sessions, SessionSummary{
			SessionID:   sc.Session.ID,
			Status:      sc.Session.Status,
			Result:      sc.Session.Result,
			CompletedAt: sc.Session.CompletedAt,
			Answers:     answeredItems(answered),
		})
	}
	return report, nil
}

func answeredItems(answered []repository.AnsweredQuestion) []AnsweredItem {
	out := make([]AnsweredItem, 0, len(answered))
	for _, aq := range answered {
		item := AnsweredItem{
			QuestionID:   aq.Response.QuestionID,
			QuestionText: aq.QuestionText,
			QuestionKind: aq.QuestionKind,
			Answer:       aq.Response.Answer,
		}
		if aq.QuestionKind != screening.KindText {
			item.Selections = screening.ParseOptions(aq.Response.Answer)
		}
		out = append(out, item)
	}
	return out
}
