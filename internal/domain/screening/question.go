package screening

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type QuestionKind string

const (
	KindText           QuestionKind = "TEXT"
	KindSingleChoice   QuestionKind = "SINGLE_CHOICE"
	KindMultipleChoice QuestionKind = "MULTIPLE_CHOICE"
)

// ErrInvalidAnswer marks every answer-validation failure so callers can map
// the whole family to one error category.
var ErrInvalidAnswer = errors.New("invalid answer")

type Question struct {
	ID              uuid.UUID
	SetID           uuid.UUID
	Text            string
	Kind            QuestionKind
	OptionsEncoding string
	Mandatory       bool
	Order           int
	CreatedAt       time.Time
}

func ParseQuestionKind(s string) (QuestionKind, bool) {
	switch QuestionKind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindText:
		return KindText, true
	case KindSingleChoice:
		return KindSingleChoice, true
	case KindMultipleChoice:
		return KindMultipleChoice, true
	}
	return "", false
}

func (k QuestionKind) IsChoice() bool {
	return k == KindSingleChoice || k == KindMultipleChoice
}

// ParseOptions splits an options encoding into its canonical ordered tokens.
// Each token is both the option's identifier and its display label. A
// malformed or empty encoding yields an empty list, never an error: a choice
// question with no parsable options simply has no valid options until the
// encoding is corrected.
func ParseOptions(encoding string) []string {
	if strings.TrimSpace(encoding) == "" {
		return nil
	}
	parts := strings.Split(encoding, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// EncodeOptions is the inverse of ParseOptions.
func EncodeOptions(options []string) string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		out = append(out, o)
	}
	return strings.Join(out, ",")
}

func (q Question) Options() []string {
	return ParseOptions(q.OptionsEncoding)
}

// IsGating reports whether the question decides pass/fail at completion: a
// single-choice question whose option set is exactly {"Yes","No"}. The token
// match is case-sensitive.
func (q Question) IsGating() bool {
	if q.Kind != KindSingleChoice {
		return false
	}
	opts := q.Options()
	if len(opts) != 2 {
		return false
	}
	seenYes, seenNo := false, false
	for _, o := range opts {
		switch o {
		case "Yes":
			seenYes = true
		case "No":
			seenNo = true
		}
	}
	return seenYes && seenNo
}

// ValidateAnswer checks an answer against the question definition and
// returns the canonical stored form: trimmed text for TEXT questions, the
// selected option tokens (in the question's stored casing) joined by commas
// for choice questions.
func (q Question) ValidateAnswer(a Answer) (string, error) {
	if q.Kind == KindText {
		if a.Kind != AnswerText {
			return "", fmt.Errorf("%w: question expects a text answer", ErrInvalidAnswer)
		}
		text := strings.TrimSpace(a.Text)
		if text == "" {
			return "", fmt.Errorf("%w: empty text answer", ErrInvalidAnswer)
		}
		return text, nil
	}

	if a.Kind != AnswerChoice {
		return "", fmt.Errorf("%w: question expects option selections", ErrInvalidAnswer)
	}
	if len(a.Selections) == 0 {
		return "", fmt.Errorf("%w: no options selected", ErrInvalidAnswer)
	}

	opts := q.Options()
	if len(opts) == 0 {
		return "", fmt.Errorf("%w: question has no valid options", ErrInvalidAnswer)
	}

	canonical := make([]string, 0, len(a.Selections))
	seen := map[string]bool{}
	for _, sel := range a.Selections {
		sel = strings.TrimSpace(sel)
		matched := ""
		for _, o := range opts {
			if strings.EqualFold(sel, o) {
				matched = o
				break
			}
		}
		if matched == "" {
			return "", fmt.Errorf("%w: option %q is not among the question's options", ErrInvalidAnswer, sel)
		}
		if seen[matched] {
			continue
		}
		seen[matched] = true
		canonical = append(canonical, matched)
	}

	if q.Kind == KindSingleChoice && len(canonical) != 1 {
		return "", fmt.Errorf("%w: single-choice question takes exactly one option", ErrInvalidAnswer)
	}

	return strings.Join(canonical, ","), nil
}

// ValidateDefinition enforces the kind/options invariant on a question being
// created or updated: choice kinds need at least two options, TEXT takes
// none.
func ValidateDefinition(kind QuestionKind, options []string) error {
	switch {
	case kind == KindText && len(options) > 0:
		return fmt.Errorf("%w: text questions take no options", ErrInvalidAnswer)
	case kind.IsChoice() && len(options) < 2:
		return fmt.Errorf("%w: choice questions need at least two options", ErrInvalidAnswer)
	}
	return nil
}
