package screening

// AnswerKind tags the answer variant. The original single text column served
// both free text and encoded option choices by convention; the tag makes the
// distinction explicit at the validation boundary.
type AnswerKind int

const (
	AnswerText AnswerKind = iota
	AnswerChoice
)

type Answer struct {
	Kind       AnswerKind
	Text       string
	Selections []string
}

func NewTextAnswer(text string) Answer {
	return Answer{Kind: AnswerText, Text: text}
}

func NewChoiceAnswer(selections []string) Answer {
	return Answer{Kind: AnswerChoice, Selections: selections}
}
