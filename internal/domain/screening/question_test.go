package screening

import (
	"errors"
	"testing"
)

func TestParseOptions(t *testing.T) {
	opts := ParseOptions(" Yes , No ,,")
	if len(opts) != 2 || opts[0] != "Yes" || opts[1] != "No" {
		t.Fatalf("unexpected options: %v", opts)
	}
	if got := ParseOptions("   "); got != nil {
		t.Fatalf("expected nil for blank encoding, got %v", got)
	}
}

func TestEncodeOptionsRoundTrip(t *testing.T) {
	enc := EncodeOptions([]string{" Yes ", "", "No"})
	if enc != "Yes,No" {
		t.Fatalf("unexpected encoding %q", enc)
	}
	opts := ParseOptions(enc)
	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %v", opts)
	}
}

func TestParseQuestionKind(t *testing.T) {
	if k, ok := ParseQuestionKind(" single_choice "); !ok || k != KindSingleChoice {
		t.Fatalf("expected SINGLE_CHOICE, got %q ok=%v", k, ok)
	}
	if _, ok := ParseQuestionKind("essay"); ok {
		t.Fatalf("expected unknown kind to fail")
	}
}

func TestIsGating(t *testing.T) {
	cases := []struct {
		name string
		q    Question
		want bool
	}{
		{"yes/no single choice", Question{Kind: KindSingleChoice, OptionsEncoding: "Yes,No"}, true},
		{"reversed order", Question{Kind: KindSingleChoice, OptionsEncoding: "No,Yes"}, true},
		{"lowercase tokens", Question{Kind: KindSingleChoice, OptionsEncoding: "yes,no"}, false},
		{"extra option", Question{Kind: KindSingleChoice, OptionsEncoding: "Yes,No,Maybe"}, false},
		{"multiple choice", Question{Kind: KindMultipleChoice, OptionsEncoding: "Yes,No"}, false},
		{"text", Question{Kind: KindText}, false},
	}
	for _, tc := range cases {
		if got := tc.q.IsGating(); got != tc.want {
			t.Errorf("%s: IsGating=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestValidateAnswerText(t *testing.T) {
	q := Question{Kind: KindText}

	stored, err := q.ValidateAnswer(NewTextAnswer("  some answer  "))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stored != "some answer" {
		t.Fatalf("expected trimmed answer, got %q", stored)
	}

	if _, err := q.ValidateAnswer(NewTextAnswer("   ")); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for blank text, got %v", err)
	}
	if _, err := q.ValidateAnswer(NewChoiceAnswer([]string{"Yes"})); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for wrong variant, got %v", err)
	}
}

func TestValidateAnswerSingleChoice(t *testing.T) {
	q := Question{Kind: KindSingleChoice, OptionsEncoding: "Yes,No"}

	stored, err := q.ValidateAnswer(NewChoiceAnswer([]string{"yes"}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stored != "Yes" {
		t.Fatalf("expected canonical casing, got %q", stored)
	}

	if _, err := q.ValidateAnswer(NewChoiceAnswer([]string{"Maybe"})); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for unknown option, got %v", err)
	}
	if _, err := q.ValidateAnswer(NewChoiceAnswer([]string{"Yes", "No"})); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for two selections, got %v", err)
	}
	if _, err := q.ValidateAnswer(NewChoiceAnswer(nil)); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for empty selection, got %v", err)
	}
	if _, err := q.ValidateAnswer(NewTextAnswer("Yes")); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for wrong variant, got %v", err)
	}
}

func TestValidateAnswerMultipleChoice(t *testing.T) {
	q := Question{Kind: KindMultipleChoice, OptionsEncoding: "Go,Python,Rust"}

	stored, err := q.ValidateAnswer(NewChoiceAnswer([]string{"go", "RUST", "go"}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stored != "Go,Rust" {
		t.Fatalf("expected deduped canonical selections, got %q", stored)
	}
}

func TestValidateAnswerChoiceWithoutOptions(t *testing.T) {
	q := Question{Kind: KindSingleChoice, OptionsEncoding: ""}
	if _, err := q.ValidateAnswer(NewChoiceAnswer([]string{"Yes"})); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for option-less question, got %v", err)
	}
}

func TestValidateDefinition(t *testing.T) {
	if err := ValidateDefinition(KindText, nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := ValidateDefinition(KindText, []string{"Yes"}); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected error for text question with options, got %v", err)
	}
	if err := ValidateDefinition(KindSingleChoice, []string{"Yes"}); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected error for single option, got %v", err)
	}
	if err := ValidateDefinition(KindMultipleChoice, []string{"A", "B"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
