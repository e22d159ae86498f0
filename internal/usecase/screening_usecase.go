package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"screenhub/internal/config"
	"screenhub/internal/database"
	"screenhub/internal/domain/screening"
	"screenhub/internal/infrastructure/mailer"
	"screenhub/internal/repository"

	"github.com/google/uuid"
)

// CandidateView is what the magic link resolves to: the session, the job it
// screens for, its question set and any answers already given.
type CandidateView struct {
	Session       screening.Session
	JobTitle      string
	CandidateName string
	Set           screening.QuestionSet
	Responses     []screening.Response
}

// CompletionResult reports the outcome of completing a session. Repeat
// completions return the stored outcome with AlreadyCompleted set.
type CompletionResult struct {
	Session          screening.Session
	Outcome          screening.Outcome
	AlreadyCompleted bool
}

// InviteOutcome is the per-candidate result of a batch invitation.
type InviteOutcome struct {
	ApplicationID  uuid.UUID
	CandidateName  string
	CandidateEmail string
	SessionID      uuid.UUID
	TestLink       string
	EmailSent      bool
	Error          string
}

type InviteSummary struct {
	JobID    uuid.UUID
	SetID    uuid.UUID
	Invited  int
	Sent     int
	Failed   int
	Outcomes []InviteOutcome
}

type ScreeningUsecase interface {
	CreateSession(ctx context.Context, applicationID, setID uuid.UUID) (screening.Session, error)
	FetchForCandidate(ctx context.Context, sessionID uuid.UUID) (CandidateView, error)
	SubmitResponse(ctx context.Context, sessionID, questionID uuid.UUID, answer screening.Answer) (screening.Response, error)
	Complete(ctx context.Context, sessionID uuid.UUID) (CompletionResult, error)
	InviteSourced(ctx context.Context, jobID uuid.UUID) (InviteSummary, error)
}

type Screenings struct {
	db           database.DB
	sessions     repository.SessionRepository
	applications repository.ApplicationRepository
	questions    repository.QuestionRepository
	notifier     mailer.Notifier
	cache        ResultCache
	cfg          config.ScreeningConfig
	logger       *log.Logger
}

func NewScreeningUsecase(
	db database.DB,
	sessions repository.SessionRepository,
	applications repository.ApplicationRepository,
	questions repository.QuestionRepository,
	notifier mailer.Notifier,
	cache ResultCache,
	cfg config.ScreeningConfig,
	logger *log.Logger,
) *Screenings {
	return &Screenings{
		db:           db,
		sessions:     sessions,
		applications: applications,
		questions:    questions,
		notifier:     notifier,
		cache:        cache,
		cfg:          cfg,
		logger:       logger,
	}
}

// CreateSession opens a PENDING session for one application and question
// set. The set must belong to the same job as the application.
func (u *Screenings) CreateSession(ctx context.Context, applicationID, setID uuid.UUID) (screening.Session, error) {
	app, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return screening.Session{}, fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
		}
		return screening.Session{}, fmt.Errorf("%w: get application: %v", ErrInternal, err)
	}

	set, err := u.questions.GetSetByID(ctx, setID)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionSetNotFound) {
			return screening.Session{}, fmt.Errorf("%w: question set %s", ErrNotFound, setID)
		}
		return screening.Session{}, fmt.Errorf("%w: get question set: %v", ErrInternal, err)
	}
	if set.JobID != app.JobID {
		return screening.Session{}, fmt.Errorf("%w: question set belongs to another job", ErrInvalidInput)
	}

	s, err := u.sessions.Create(ctx, screening.Session{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		SetID:         setID,
		Status:        screening.SessionPending,
	})
	if err != nil {
		return screening.Session{}, fmt.Errorf("%w: create session: %v", ErrInternal, err)
	}
	return s, nil
}

// FetchForCandidate resolves a magic link. The first fetch of a PENDING
// session moves it to IN_PROGRESS; later fetches and completed sessions are
// returned as-is so the candidate can review what they answered.
func (u *Screenings) FetchForCandidate(ctx context.Context, sessionID uuid.UUID) (CandidateView, error) {
	d, err := u.sessions.GetDetail(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return CandidateView{}, ErrNotFound
		}
		return CandidateView{}, fmt.Errorf("%w: get session: %v", ErrInternal, err)
	}

	s := d.Session
	if s.Status == screening.SessionPending {
		if err := u.sessions.MarkInProgress(ctx, sessionID); err != nil {
			return CandidateView{}, fmt.Errorf("%w: start session: %v", ErrInternal, err)
		}
		s, err = u.getSession(ctx, sessionID)
		if err != nil {
			return CandidateView{}, err
		}
	}

	set, err := u.questions.GetSetByID(ctx, s.SetID)
	if err != nil {
		// A session whose set is gone is served as not found, never partially.
		if errors.Is(err, repository.ErrQuestionSetNotFound) {
			return CandidateView{}, ErrNotFound
		}
		return CandidateView{}, fmt.Errorf("%w: get question set: %v", ErrInternal, err)
	}

	responses, err := u.sessions.ListResponses(ctx, sessionID)
	if err != nil {
		return CandidateView{}, fmt.Errorf("%w: list responses: %v", ErrInternal, err)
	}

	return CandidateView{
		Session:       s,
		JobTitle:      d.JobTitle,
		CandidateName: d.CandidateName,
		Set:           set,
		Responses:     responses,
	}, nil
}

// SubmitResponse validates and stores one answer. Resubmitting the same
// question replaces the earlier answer. Submissions against a completed
// session are rejected; the row lock serializes a submission racing a
// completion.
func (u *Screenings) SubmitResponse(ctx context.Context, sessionID, questionID uuid.UUID, answer screening.Answer) (screening.Response, error) {
	s, err := u.getSession(ctx, sessionID)
	if err != nil {
		return screening.Response{}, err
	}
	if s.Status == screening.SessionCompleted {
		return screening.Response{}, ErrSessionCompleted
	}
	if s.Status == screening.SessionPending {
		// Answering without fetching first still starts the session.
		if err := u.sessions.MarkInProgress(ctx, sessionID); err != nil {
			return screening.Response{}, fmt.Errorf("%w: start session: %v", ErrInternal, err)
		}
	}

	q, err := u.questions.GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return screening.Response{}, fmt.Errorf("%w: question %s", ErrNotFound, questionID)
		}
		return screening.Response{}, fmt.Errorf("%w: get question: %v", ErrInternal, err)
	}
	if q.SetID != s.SetID {
		return screening.Response{}, fmt.Errorf("%w: question does not belong to this session", ErrInvalidInput)
	}

	stored, err := q.ValidateAnswer(answer)
	if err != nil {
		return screening.Response{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var resp screening.Response
	err = database.WithinTx(ctx, u.db, func(tx database.Tx) error {
		locked, err := u.sessions.GetForUpdateTx(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if locked.Status == screening.SessionCompleted {
			return ErrSessionCompleted
		}

		resp, err = u.sessions.UpsertResponseTx(ctx, tx, screening.Response{
			ID:         uuid.New(),
			SessionID:  sessionID,
			QuestionID: questionID,
			Answer:     stored,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrSessionCompleted) {
			return screening.Response{}, ErrSessionCompleted
		}
		return screening.Response{}, fmt.Errorf("%w: store response: %v", ErrInternal, err)
	}

	u.invalidateResult(ctx, sessionID)
	return resp, nil
}

// Complete evaluates the session and finalizes it together with its
// application's status in one transaction. Completing an already completed
// session is a no-op that reports the stored outcome.
func (u *Screenings) Complete(ctx context.Context, sessionID uuid.UUID) (CompletionResult, error) {
	var out CompletionResult
	err := database.WithinTx(ctx, u.db, func(tx database.Tx) error {
		s, err := u.sessions.GetForUpdateTx(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		if s.Status == screening.SessionCompleted {
			out = CompletionResult{Session: s, Outcome: storedOutcome(s), AlreadyCompleted: true}
			return nil
		}

		questions, err := u.questions.ListQuestionsBySet(ctx, s.SetID)
		if err != nil {
			return err
		}
		responses, err := u.sessions.ListResponsesTx(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		outcome := screening.Evaluate(questions, responses)

		if err := u.sessions.CompleteTx(ctx, tx, sessionID, outcome.Result); err != nil {
			return err
		}
		if err := u.applications.UpdateStatusTx(ctx, tx, s.ApplicationID, outcome.ApplicationStatus); err != nil {
			return err
		}

		s.Status = screening.SessionCompleted
		s.Result = &outcome.Result
		out = CompletionResult{Session: s, Outcome: outcome}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return CompletionResult{}, ErrNotFound
		}
		return CompletionResult{}, fmt.Errorf("%w: complete session: %v", ErrInternal, err)
	}

	if !out.AlreadyCompleted {
		u.invalidateResult(ctx, sessionID)
		if u.logger != nil {
			u.logger.Printf("[Screening] session=%s completed result=%s", sessionID, out.Outcome.Result)
		}
	}
	return out, nil
}

// InviteSourced creates a session for every SOURCED application of the job's
// prescreening set and mails each candidate their link. Sessions commit in
// one transaction before any mail goes out, so a delivery failure never
// loses a session; failed sends are reported per candidate.
func (u *Screenings) InviteSourced(ctx context.Context, jobID uuid.UUID) (InviteSummary, error) {
	set, err := u.questions.GetSetByJobAndRole(ctx, jobID, screening.RolePrescreening)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionSetNotFound) {
			return InviteSummary{}, fmt.Errorf("%w: job %s has no prescreening set", ErrNotFound, jobID)
		}
		return InviteSummary{}, fmt.Errorf("%w: get prescreening set: %v", ErrInternal, err)
	}

	sourced, err := u.applications.ListSourcedByJob(ctx, jobID)
	if err != nil {
		return InviteSummary{}, fmt.Errorf("%w: list sourced applications: %v", ErrInternal, err)
	}

	summary := InviteSummary{JobID: jobID, SetID: set.ID, Outcomes: make([]InviteOutcome, len(sourced))}
	if len(sourced) == 0 {
		return summary, nil
	}

	err = database.WithinTx(ctx, u.db, func(tx database.Tx) error {
		for i, sa := range sourced {
			s, err := u.sessions.CreateTx(ctx, tx, screening.Session{
				ID:            uuid.New(),
				ApplicationID: sa.Application.ID,
				SetID:         set.ID,
				Status:        screening.SessionPending,
			})
			if err != nil {
				return err
			}
			summary.Outcomes[i] = InviteOutcome{
				ApplicationID:  sa.Application.ID,
				CandidateName:  sa.CandidateName,
				CandidateEmail: sa.CandidateEmail,
				SessionID:      s.ID,
				TestLink:       u.testLink(s.ID),
			}
		}
		return nil
	})
	if err != nil {
		return InviteSummary{}, fmt.Errorf("%w: create sessions: %v", ErrInternal, err)
	}
	summary.Invited = len(summary.Outcomes)

	u.sendInvitations(ctx, summary.Outcomes)

	for _, o := range summary.Outcomes {
		if o.EmailSent {
			summary.Sent++
		} else {
			summary.Failed++
		}
	}

	if u.logger != nil {
		u.logger.Printf("[Screening] invited job=%s sessions=%d sent=%d failed=%d",
			jobID, summary.Invited, summary.Sent, summary.Failed)
	}
	return summary, nil
}

// sendInvitations fans sends out over a bounded worker pool; each send gets
// its own timeout so one slow SMTP conversation cannot stall the batch.
func (u *Screenings) sendInvitations(ctx context.Context, outcomes []InviteOutcome) {
	workers := u.cfg.InviteWorkers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(outcomes) {
		workers = len(outcomes)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i].EmailSent, outcomes[i].Error = u.sendOne(ctx, outcomes[i])
			}
		}()
	}
	for i := range outcomes {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func (u *Screenings) sendOne(ctx context.Context, o InviteOutcome) (bool, string) {
	if u.notifier == nil {
		return false, mailer.ErrNotConfigured.Error()
	}

	sendCtx := ctx
	if u.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, u.cfg.SendTimeout)
		defer cancel()
	}

	if err := u.notifier.SendInvitation(sendCtx, o.CandidateEmail, o.CandidateName, o.TestLink); err != nil {
		return false, err.Error()
	}
	return true, ""
}

func (u *Screenings) testLink(sessionID uuid.UUID) string {
	return fmt.Sprintf("%s/take-test/%s", u.cfg.BaseURL, sessionID)
}

func (u *Screenings) getSession(ctx context.Context, sessionID uuid.UUID) (screening.Session, error) {
	s, err := u.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return screening.Session{}, ErrNotFound
		}
		return screening.Session{}, fmt.Errorf("%w: get session: %v", ErrInternal, err)
	}
	return s, nil
}

func (u *Screenings) invalidateResult(ctx context.Context, sessionID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, sessionResultCacheKey(sessionID.String())); err != nil && u.logger != nil {
		u.logger.Printf("[Screening] result cache invalidation failed session=%s err=%v", sessionID, err)
	}
}

func storedOutcome(s screening.Session) screening.Outcome {
	o := screening.Outcome{Result: screening.ResultOnHold, ApplicationStatus: screening.ApplicationSourced}
	if s.Result == nil {
		return o
	}
	o.Result = *s.Result
	switch *s.Result {
	case screening.ResultSelected:
		o.ApplicationStatus = screening.ApplicationScreeningPassed
	case screening.ResultRejected:
		o.ApplicationStatus = screening.ApplicationScreeningFailed
	}
	return o
}
