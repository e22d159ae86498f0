package screening

import (
	"strings"

	"github.com/google/uuid"
)

// Outcome is the pass/fail decision derived from a session's responses.
type Outcome struct {
	Result            SessionResult
	ApplicationStatus ApplicationStatus
}

// Evaluate scores a session. Only gating questions count: each one must have
// a response whose answer equals "yes" case-insensitively, otherwise the
// session fails. Free-text and multi-select answers are informational.
// A set with zero gating questions trivially passes.
func Evaluate(questions []Question, responses []Response) Outcome {
	byQuestion := make(map[uuid.UUID]Response, len(responses))
	for _, r := range responses {
		byQuestion[r.QuestionID] = r
	}

	for _, q := range questions {
		if !q.IsGating() {
			continue
		}
		resp, ok := byQuestion[q.ID]
		if !ok {
			return Outcome{Result: ResultRejected, ApplicationStatus: ApplicationScreeningFailed}
		}
		if !strings.EqualFold(strings.TrimSpace(resp.Answer), "yes") {
			return Outcome{Result: ResultRejected, ApplicationStatus: ApplicationScreeningFailed}
		}
	}

	return Outcome{Result: ResultSelected, ApplicationStatus: ApplicationScreeningPassed}
}
