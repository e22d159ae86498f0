package screening

// SessionStatus is the screening-session lifecycle state. Transitions are
// forward-only: PENDING -> IN_PROGRESS -> COMPLETED.
type SessionStatus string

const (
	SessionPending    SessionStatus = "PENDING"
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionCompleted  SessionStatus = "COMPLETED"
)

type SessionResult string

const (
	ResultSelected SessionResult = "SELECTED"
	ResultRejected SessionResult = "REJECTED"
	ResultOnHold   SessionResult = "ON_HOLD"
)

type ApplicationStatus string

const (
	ApplicationSourced         ApplicationStatus = "SOURCED"
	ApplicationScreeningPassed ApplicationStatus = "SCREENING_PASSED"
	ApplicationScreeningFailed ApplicationStatus = "SCREENING_FAILED"
	ApplicationRanked          ApplicationStatus = "RANKED"
	ApplicationRejected        ApplicationStatus = "REJECTED"
)

type JobStatus string

const (
	JobDraft  JobStatus = "DRAFT"
	JobOpen   JobStatus = "OPEN"
	JobClosed JobStatus = "CLOSED"
	JobFilled JobStatus = "FILLED"
)

// QuestionSetRole identifies what a set is for. The set created alongside a
// job carries RolePrescreening and is the one batch invitations dispatch.
type QuestionSetRole string

const (
	RolePrescreening QuestionSetRole = "PRESCREENING"
	RoleGeneral      QuestionSetRole = "GENERAL"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionPending, SessionInProgress, SessionCompleted:
		return true
	}
	return false
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationSourced, ApplicationScreeningPassed, ApplicationScreeningFailed,
		ApplicationRanked, ApplicationRejected:
		return true
	}
	return false
}
