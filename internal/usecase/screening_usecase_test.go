package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	"screenhub/internal/config"
	"screenhub/internal/database"
	"screenhub/internal/domain/screening"
	"screenhub/internal/repository"

	"github.com/google/uuid"
)

type stubTx struct{}

func (stubTx) Exec(context.Context, string, ...any) (int64, error)          { return 0, nil }
func (stubTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (stubTx) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (stubTx) Commit(context.Context) error                                 { return nil }
func (stubTx) Rollback(context.Context) error                               { return nil }

type stubDB struct{}

func (stubDB) Ping(context.Context) error                                   { return nil }
func (stubDB) Close() error                                                 { return nil }
func (stubDB) Exec(context.Context, string, ...any) (int64, error)          { return 0, nil }
func (stubDB) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (stubDB) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (stubDB) Begin(context.Context) (database.Tx, error)                   { return stubTx{}, nil }
func (stubDB) SQLDB() *sql.DB                                               { return nil }

type mockSessionRepo struct {
	sessions  map[uuid.UUID]screening.Session
	responses map[uuid.UUID][]screening.Response
	byJob     []repository.SessionWithCandidate
	answered  []repository.AnsweredQuestion
	detail    repository.SessionDetail

	markCalls     int
	completeCalls int
	created       []screening.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{
		sessions:  map[uuid.UUID]screening.Session{},
		responses: map[uuid.UUID][]screening.Response{},
	}
}

func (m *mockSessionRepo) Create(_ context.Context, s screening.Session) (screening.Session, error) {
	s.CreatedAt = time.Now()
	m.sessions[s.ID] = s
	m.created = append(m.created, s)
	return s, nil
}

func (m *mockSessionRepo) CreateTx(ctx context.Context, _ database.Tx, s screening.Session) (screening.Session, error) {
	return m.Create(ctx, s)
}

func (m *mockSessionRepo) GetByID(_ context.Context, id uuid.UUID) (screening.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return screening.Session{}, repository.ErrSessionNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) GetForUpdateTx(ctx context.Context, _ database.Tx, id uuid.UUID) (screening.Session, error) {
	return m.GetByID(ctx, id)
}

func (m *mockSessionRepo) GetDetail(_ context.Context, id uuid.UUID) (repository.SessionDetail, error) {
	s, ok := m.sessions[id]
	if !ok {
		return repository.SessionDetail{}, repository.ErrSessionNotFound
	}
	d := m.detail
	d.Session = s
	return d, nil
}

func (m *mockSessionRepo) MarkInProgress(_ context.Context, id uuid.UUID) error {
	m.markCalls++
	s, ok := m.sessions[id]
	if !ok || s.Status != screening.SessionPending {
		return nil
	}
	now := time.Now()
	s.Status = screening.SessionInProgress
	s.StartedAt = &now
	m.sessions[id] = s
	return nil
}

func (m *mockSessionRepo) CompleteTx(_ context.Context, _ database.Tx, id uuid.UUID, result screening.SessionResult) error {
	m.completeCalls++
	s, ok := m.sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	now := time.Now()
	s.Status = screening.SessionCompleted
	s.Result = &result
	s.CompletedAt = &now
	m.sessions[id] = s
	return nil
}

func (m *mockSessionRepo) UpsertResponseTx(_ context.Context, _ database.Tx, resp screening.Response) (screening.Response, error) {
	resp.UpdatedAt = time.Now()
	list := m.responses[resp.SessionID]
	for i, existing := range list {
		if existing.QuestionID == resp.QuestionID {
			resp.ID = existing.ID
			resp.CreatedAt = existing.CreatedAt
			list[i] = resp
			return resp, nil
		}
	}
	resp.CreatedAt = resp.UpdatedAt
	m.responses[resp.SessionID] = append(list, resp)
	return resp, nil
}

func (m *mockSessionRepo) ListResponses(_ context.Context, sessionID uuid.UUID) ([]screening.Response, error) {
	return m.responses[sessionID], nil
}

func (m *mockSessionRepo) ListResponsesTx(ctx context.Context, _ database.Tx, sessionID uuid.UUID) ([]screening.Response, error) {
	return m.ListResponses(ctx, sessionID)
}

func (m *mockSessionRepo) ListAnswered(context.Context, uuid.UUID) ([]repository.AnsweredQuestion, error) {
	return m.answered, nil
}

func (m *mockSessionRepo) ListByJob(context.Context, uuid.UUID) ([]repository.SessionWithCandidate, error) {
	return m.byJob, nil
}

type mockApplicationRepo struct {
	apps    map[uuid.UUID]screening.Application
	sourced []repository.SourcedApplication

	statusUpdates map[uuid.UUID]screening.ApplicationStatus
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{
		apps:          map[uuid.UUID]screening.Application{},
		statusUpdates: map[uuid.UUID]screening.ApplicationStatus{},
	}
}

func (m *mockApplicationRepo) Create(_ context.Context, a screening.Application) (screening.Application, error) {
	m.apps[a.ID] = a
	return a, nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (screening.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return screening.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (m *mockApplicationRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.apps[id]
	return ok, nil
}

func (m *mockApplicationRepo) ListByJob(context.Context, uuid.UUID) ([]screening.Application, error) {
	return nil, nil
}

func (m *mockApplicationRepo) ListSourcedByJob(context.Context, uuid.UUID) ([]repository.SourcedApplication, error) {
	return m.sourced, nil
}

func (m *mockApplicationRepo) UpdateStatusTx(_ context.Context, _ database.Tx, id uuid.UUID, status screening.ApplicationStatus) error {
	if _, ok := m.apps[id]; !ok {
		return repository.ErrApplicationNotFound
	}
	m.statusUpdates[id] = status
	a := m.apps[id]
	a.Status = status
	m.apps[id] = a
	return nil
}

type mockQuestionRepo struct {
	sets      map[uuid.UUID]screening.QuestionSet
	questions map[uuid.UUID]screening.Question
}

func newMockQuestionRepo() *mockQuestionRepo {
	return &mockQuestionRepo{
		sets:      map[uuid.UUID]screening.QuestionSet{},
		questions: map[uuid.UUID]screening.Question{},
	}
}

func (m *mockQuestionRepo) addSet(set screening.QuestionSet) {
	m.sets[set.ID] = set
	for _, q := range set.Questions {
		m.questions[q.ID] = q
	}
}

func (m *mockQuestionRepo) CreateSetTx(_ context.Context, _ database.Tx, set screening.QuestionSet) (screening.QuestionSet, error) {
	m.sets[set.ID] = set
	return set, nil
}

func (m *mockQuestionRepo) GetSetByID(_ context.Context, id uuid.UUID) (screening.QuestionSet, error) {
	set, ok := m.sets[id]
	if !ok {
		return screening.QuestionSet{}, repository.ErrQuestionSetNotFound
	}
	return set, nil
}

func (m *mockQuestionRepo) GetSetByJobAndRole(_ context.Context, jobID uuid.UUID, role screening.QuestionSetRole) (screening.QuestionSet, error) {
	for _, set := range m.sets {
		if set.JobID == jobID && set.Role == role {
			return set, nil
		}
	}
	return screening.QuestionSet{}, repository.ErrQuestionSetNotFound
}

func (m *mockQuestionRepo) ListSetsByJob(_ context.Context, jobID uuid.UUID) ([]screening.QuestionSet, error) {
	out := make([]screening.QuestionSet, 0)
	for _, set := range m.sets {
		if set.JobID == jobID {
			out = append(out, set)
		}
	}
	return out, nil
}

func (m *mockQuestionRepo) ExistsSetByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.sets[id]
	return ok, nil
}

func (m *mockQuestionRepo) CreateQuestion(_ context.Context, q screening.Question) (screening.Question, error) {
	m.questions[q.ID] = q
	return q, nil
}

func (m *mockQuestionRepo) CreateQuestionTx(ctx context.Context, _ database.Tx, q screening.Question) (screening.Question, error) {
	return m.CreateQuestion(ctx, q)
}

func (m *mockQuestionRepo) GetQuestionByID(_ context.Context, id uuid.UUID) (screening.Question, error) {
	q, ok := m.questions[id]
	if !ok {
		return screening.Question{}, repository.ErrQuestionNotFound
	}
	return q, nil
}

func (m *mockQuestionRepo) ListQuestionsBySet(_ context.Context, setID uuid.UUID) ([]screening.Question, error) {
	set, ok := m.sets[setID]
	if !ok {
		return nil, nil
	}
	return set.Questions, nil
}

func (m *mockQuestionRepo) UpdateQuestion(_ context.Context, q screening.Question) (screening.Question, error) {
	if _, ok := m.questions[q.ID]; !ok {
		return screening.Question{}, repository.ErrQuestionNotFound
	}
	m.questions[q.ID] = q
	return q, nil
}

func (m *mockQuestionRepo) DeleteQuestion(_ context.Context, id uuid.UUID) error {
	if _, ok := m.questions[id]; !ok {
		return repository.ErrQuestionNotFound
	}
	delete(m.questions, id)
	return nil
}

func (m *mockQuestionRepo) Reorder(context.Context, uuid.UUID, []uuid.UUID) error { return nil }

func (m *mockQuestionRepo) NextOrder(_ context.Context, setID uuid.UUID) (int, error) {
	set := m.sets[setID]
	return len(set.Questions), nil
}

type mockNotifier struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (m *mockNotifier) SendInvitation(_ context.Context, recipientEmail, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[recipientEmail] {
		return fmt.Errorf("smtp refused %s", recipientEmail)
	}
	m.sent = append(m.sent, recipientEmail)
	return nil
}

type mockCache struct {
	mu      sync.Mutex
	store   map[string][]byte
	deletes []string
	sets    []string
}

func newMockCache() *mockCache {
	return &mockCache{store: map[string][]byte{}}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.store[key]
	return ok, nil
}

func (m *mockCache) SetJSON(_ context.Context, key string, _ any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = []byte("x")
	m.sets = append(m.sets, key)
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	m.deletes = append(m.deletes, key)
	return nil
}

type screeningFixture struct {
	uc       *Screenings
	sessions *mockSessionRepo
	apps     *mockApplicationRepo
	quests   *mockQuestionRepo
	notifier *mockNotifier
	cache    *mockCache

	jobID uuid.UUID
	appID uuid.UUID
	set   screening.QuestionSet
}

func newScreeningFixture() *screeningFixture {
	sessions := newMockSessionRepo()
	apps := newMockApplicationRepo()
	quests := newMockQuestionRepo()
	notifier := &mockNotifier{failFor: map[string]bool{}}
	cacheMock := newMockCache()

	jobID := uuid.New()
	appID := uuid.New()
	apps.apps[appID] = screening.Application{
		ID: appID, JobID: jobID, CandidateID: uuid.New(), Status: screening.ApplicationSourced,
	}

	setID := uuid.New()
	set := screening.QuestionSet{
		ID:    setID,
		JobID: jobID,
		Name:  "Prescreening",
		Role:  screening.RolePrescreening,
		Questions: []screening.Question{
			{ID: uuid.New(), SetID: setID, Text: "Authorized to work?", Kind: screening.KindSingleChoice, OptionsEncoding: "Yes,No", Mandatory: true},
			{ID: uuid.New(), SetID: setID, Text: "Can start in 30 days?", Kind: screening.KindSingleChoice, OptionsEncoding: "Yes,No", Mandatory: true},
			{ID: uuid.New(), SetID: setID, Text: "Tell us about yourself", Kind: screening.KindText},
		},
	}
	quests.addSet(set)

	cfg := config.ScreeningConfig{
		BaseURL:       "http://app.local",
		InviteWorkers: 4,
		SendTimeout:   time.Second,
	}

	uc := NewScreeningUsecase(
		stubDB{}, sessions, apps, quests, notifier, cacheMock, cfg,
		log.New(discardWriter{}, "", 0),
	)

	return &screeningFixture{
		uc: uc, sessions: sessions, apps: apps, quests: quests,
		notifier: notifier, cache: cacheMock,
		jobID: jobID, appID: appID, set: set,
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestCreateSessionSetMustMatchJob(t *testing.T) {
	f := newScreeningFixture()

	otherSet := screening.QuestionSet{ID: uuid.New(), JobID: uuid.New(), Role: screening.RoleGeneral}
	f.quests.addSet(otherSet)

	_, err := f.uc.CreateSession(context.Background(), f.appID, otherSet.ID)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateSessionStartsPending(t *testing.T) {
	f := newScreeningFixture()

	s, err := f.uc.CreateSession(context.Background(), f.appID, f.set.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Status != screening.SessionPending {
		t.Fatalf("expected PENDING, got %s", s.Status)
	}
}

func TestFetchForCandidateStartsSessionOnce(t *testing.T) {
	f := newScreeningFixture()
	s, _ := f.uc.CreateSession(context.Background(), f.appID, f.set.ID)

	view, err := f.uc.FetchForCandidate(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if view.Session.Status != screening.SessionInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", view.Session.Status)
	}
	if view.Session.StartedAt == nil {
		t.Fatalf("expected started_at to be set")
	}
	if len(view.Set.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(view.Set.Questions))
	}

	if _, err := f.uc.FetchForCandidate(context.Background(), s.ID); err != nil {
		t.Fatalf("unexpected err on refetch: %v", err)
	}
	if f.sessions.markCalls != 1 {
		t.Fatalf("expected 1 MarkInProgress call, got %d", f.sessions.markCalls)
	}
}

func TestFetchForCandidateUnknownSession(t *testing.T) {
	f := newScreeningFixture()
	if _, err := f.uc.FetchForCandidate(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitResponseStoresCanonicalAnswer(t *testing.T) {
	f := newScreeningFixture()
	s, _ := f.uc.CreateSession(context.Background(), f.appID, f.set.ID)
	gating := f.set.Questions[0]

	resp, err := f.uc.SubmitResponse(context.Background(), s.ID, gating.ID, screening.NewChoiceAnswer([]string{"yes"}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Answer != "Yes" {
		t.Fatalf("expected canonical answer, got %q", resp.Answer)
	}
	if got := f.sessions.sessions[s.ID].Status; got != screening.SessionInProgress {
		t.Fatalf("expected submission to start the session, got %s", got)
	}
}

func TestSubmitResponseReplacesEarlierAnswer(t *testing.T) {
	f := newScreeningFixture()
	s, _ := f.uc.CreateSession(context.Background(), f.appID, f.set.ID)
	gating := f.set.Questions[0]

	if _, err := f.uc.SubmitResponse(context.Background(), s.ID, gating.ID, screening.NewChoiceAnswer([]string{"No"})); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := f.uc.SubmitResponse(context.Background(), s.ID, gating.ID, screening.NewChoiceAnswer([]string{"Yes"})); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	responses := f.sessions.responses[s.ID]
	if len(responses) != 1 {
		t.Fatalf("expected 1 stored response, got %d", len(responses))
	}
	if responses[0].Answer != "Yes" {
		t.Fatalf("expected replacement answer, got %q", responses[0].Answer)
	}
}

func TestSubmitResponseInvalidAnswer(t *testing.T) {
	f := newScreeningFixture()
	s, _ := f.uc.CreateSession(context.Background(), f.appID, f.set.ID)
	gating := f.set.Questions[0]

	_, err := f.uc.SubmitResponse(context.Background(), s.ID, gating.ID, screening.NewChoiceAnswer([]string{"Maybe"}))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitResponseForeignQuestionRejected(t *testing.T) {
	f := newScreeningFixture()
	s, _ := f.uc.CreateSession(context.Background(), f.appID, f.set.ID)

	foreign := screening.Question{ID: uuid.New(), SetID: uuid.New(), Kind: screening.KindText}
	f.quests.questions[foreign.ID] = foreign

	_, err := f.uc.SubmitResponse(context.Background(), s.ID, foreign.ID, screening.NewTextAnswer("hello"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitResponseAfterCompletionRejected(t *testing.T) {
	f := newScreeningFixture()
	s, _ := f.uc.CreateSession(context.Background(), f.appID, f.set.ID)

	if _, err := f.uc.Complete(context.Background(), s.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	gating := f.set.Questions[0]
	_, err := f.uc.SubmitResponse(context.Background(), s.ID, gating.ID, screening.NewChoiceAnswer([]string{"Yes"}))
	if !errors.Is(err, ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted, got %v", err)
	}
}

func TestCompleteAllYesPasses(t *testing.T) {
	f := newScreeningFixture()
	s, _ := f.uc.CreateSession(context.Background(), f.appID, f.set.ID)

	for _, q := range f.set.Questions[:2] {
		if _, err := f.uc.SubmitResponse(context.Background(), s.ID, q.ID, screening.NewChoiceAnswer([]string{"Yes"})); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	result, err := f.uc.Complete(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.Outcome.Result != screening.ResultSelected {
		t.Fatalf("expected SELECTED, got %s", result.Outcome.Result)
	}
	if got := f.apps.statusUpdates[f.appID]; got != screening.ApplicationScreeningPassed {
		t.Fatalf("expected SCREENING_PASSED, got %s", got)
	}
	if result.Session.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}
}

func TestCompleteSingleNoFails(t *testing.T) {
	f := newScreeningFixture()
	s, _ := f.uc.CreateSession(context.Background(), f.appID, f.set.ID)

	gating := f.set.Questions[:2]
	if _, err := f.uc.SubmitResponse(context.Background(), s.ID, gating[0].ID, screening.NewChoiceAnswer([]string{"Yes"})); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := f.uc.SubmitResponse(context.Background(), s.ID, gating[1].ID, screening.NewChoiceAnswer([]string{"No"})); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	result, err := f.uc.Complete(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.Outcome.Result != screening.ResultRejected {
		t.Fatalf("expected REJECTED, got %s", result.Outcome.Result)
	}
	if got := f.apps.statusUpdates[f.appID]; got != screening.ApplicationScreeningFailed {
		t.Fatalf("expected SCREENING_FAILED, got %s", got)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	f := newScreeningFixture()
	s, _ := f.uc.CreateSession(context.Background(), f.appID, f.set.ID)

	first, err := f.uc.Complete(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := f.uc.Complete(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("unexpected err on repeat: %v", err)
	}
	if !second.AlreadyCompleted {
		t.Fatalf("expected AlreadyCompleted on repeat")
	}
	if second.Outcome.Result != first.Outcome.Result {
		t.Fatalf("expected stable outcome, got %s then %s", first.Outcome.Result, second.Outcome.Result)
	}
	if f.sessions.completeCalls != 1 {
		t.Fatalf("expected 1 CompleteTx call, got %d", f.sessions.completeCalls)
	}
}

func TestCompleteUnknownSession(t *testing.T) {
	f := newScreeningFixture()
	if _, err := f.uc.Complete(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInviteSourcedSendsToEveryCandidate(t *testing.T) {
	f := newScreeningFixture()

	for i := 0; i < 3; i++ {
		appID := uuid.New()
		f.apps.apps[appID] = screening.Application{ID: appID, JobID: f.jobID, Status: screening.ApplicationSourced}
		f.apps.sourced = append(f.apps.sourced, repository.SourcedApplication{
			Application:    f.apps.apps[appID],
			CandidateName:  fmt.Sprintf("Candidate %d", i),
			CandidateEmail: fmt.Sprintf("c%d@example.com", i),
		})
	}

	summary, err := f.uc.InviteSourced(context.Background(), f.jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Invited != 3 || summary.Sent != 3 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(f.sessions.created) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(f.sessions.created))
	}
	for _, o := range summary.Outcomes {
		want := fmt.Sprintf("http://app.local/take-test/%s", o.SessionID)
		if o.TestLink != want {
			t.Fatalf("unexpected link %q, want %q", o.TestLink, want)
		}
	}
}

func TestInviteSourcedReportsPartialFailure(t *testing.T) {
	f := newScreeningFixture()
	f.notifier.failFor["broken@example.com"] = true

	emails := []string{"ok@example.com", "broken@example.com"}
	for _, email := range emails {
		appID := uuid.New()
		f.apps.apps[appID] = screening.Application{ID: appID, JobID: f.jobID, Status: screening.ApplicationSourced}
		f.apps.sourced = append(f.apps.sourced, repository.SourcedApplication{
			Application:    f.apps.apps[appID],
			CandidateEmail: email,
		})
	}

	summary, err := f.uc.InviteSourced(context.Background(), f.jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Invited != 2 || summary.Sent != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	// Sessions exist regardless of delivery.
	if len(f.sessions.created) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(f.sessions.created))
	}
	for _, o := range summary.Outcomes {
		if o.CandidateEmail == "broken@example.com" {
			if o.EmailSent || o.Error == "" {
				t.Fatalf("expected recorded failure, got %+v", o)
			}
		}
	}
}

func TestInviteSourcedWithoutPrescreeningSet(t *testing.T) {
	f := newScreeningFixture()
	if _, err := f.uc.InviteSourced(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInviteSourcedNoCandidates(t *testing.T) {
	f := newScreeningFixture()
	summary, err := f.uc.InviteSourced(context.Background(), f.jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Invited != 0 || summary.Sent != 0 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestCompletionInvalidatesResultCache(t *testing.T) {
	f := newScreeningFixture()
	s, _ := f.uc.CreateSession(context.Background(), f.appID, f.set.ID)

	key := sessionResultCacheKey(s.ID.String())
	_ = f.cache.SetJSON(context.Background(), key, "stale", time.Minute)

	if _, err := f.uc.Complete(context.Background(), s.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	f.cache.mu.Lock()
	defer f.cache.mu.Unlock()
	if _, ok := f.cache.store[key]; ok {
		t.Fatalf("expected cache entry to be invalidated")
	}
}
