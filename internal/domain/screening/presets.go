package screening

// PresetQuestion is a reusable screening question definition.
type PresetQuestion struct {
	Text    string
	Kind    QuestionKind
	Options []string
}

// DefaultPrescreeningQuestions are seeded into the prescreening set created
// with every job. All five are Yes/No gating questions; a candidate passes
// by answering yes to each.
func DefaultPrescreeningQuestions() []PresetQuestion {
	return []PresetQuestion{
		{Text: "Are you legally authorized to work in this country?", Kind: KindSingleChoice, Options: []string{"Yes", "No"}},
		{Text: "Are you able to work without visa sponsorship?", Kind: KindSingleChoice, Options: []string{"Yes", "No"}},
		{Text: "Do you meet the minimum experience requirement for this role?", Kind: KindSingleChoice, Options: []string{"Yes", "No"}},
		{Text: "Are you able to start within 30 days?", Kind: KindSingleChoice, Options: []string{"Yes", "No"}},
		{Text: "Are you willing to work from the listed location?", Kind: KindSingleChoice, Options: []string{"Yes", "No"}},
	}
}
