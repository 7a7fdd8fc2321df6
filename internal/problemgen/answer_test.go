package problemgen

import (
	"errors"
	"math"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   Answer
		want string
	}{
		{"integer", Int(42), "42"},
		{"negative integer", Int(-15), "-15"},
		{"decimal", Decimal(3.5), "3.5"},
		{"decimal rounds", Decimal(2.346), "2.35"},
		{"decimal integral", Decimal(4.0), "4"},
		{"decimal trailing zero", Decimal(2.50), "2.5"},
		{"decimal negative zero", Decimal(-0.001), "0"},
		{"fraction reduced", Frac(6, 8), "3/4"},
		{"fraction negative reduced", Frac(-6, 8), "-3/4"},
		{"fraction sign moves to numerator", Frac(3, -4), "-3/4"},
		{"fraction both negative", Frac(-3, -4), "3/4"},
		{"fraction whole", Frac(10, 5), "2"},
		{"fraction zero", Frac(0, 7), "0"},
		{"text", Text("even"), "even"},
		{"empty text", Text(""), ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.in.Canonical()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCanonical_Idempotent(t *testing.T) {
	answers := []Answer{Int(-7), Decimal(1.25), Frac(-12, 18), Text("odd")}
	for _, a := range answers {
		first, err := a.Canonical()
		if err != nil {
			t.Fatalf("canonical %v: %v", a, err)
		}
		second, err := normalizeOrText(first, a.Type)
		if err != nil {
			t.Fatalf("re-canonical %q: %v", first, err)
		}
		if first != second {
			t.Errorf("canonical not idempotent: %q then %q", first, second)
		}
	}
}

// normalizeOrText re-parses a canonical string the way a reader would.
func normalizeOrText(s string, typ AnswerType) (string, error) {
	if typ == AnswerTypeText {
		return Text(s).Canonical()
	}
	return normalizeNumber(s)
}

func TestCanonical_Errors(t *testing.T) {
	if _, err := Frac(1, 0).Canonical(); !errors.Is(err, ErrZeroDenominator) {
		t.Errorf("zero denominator: got %v, want ErrZeroDenominator", err)
	}
	if _, err := Decimal(math.NaN()).Canonical(); err == nil {
		t.Error("NaN should not canonicalize")
	}
	if _, err := Decimal(math.Inf(1)).Canonical(); err == nil {
		t.Error("+Inf should not canonicalize")
	}
	if _, err := (Answer{Type: "matrix"}).Canonical(); err == nil {
		t.Error("unknown type should not canonicalize")
	}
}

func TestAnswerFloat64(t *testing.T) {
	if v, ok := Frac(1, 4).Float64(); !ok || v != 0.25 {
		t.Errorf("Frac(1,4).Float64() = %v, %v", v, ok)
	}
	if _, ok := Text("x").Float64(); ok {
		t.Error("text answer should not be numeric")
	}
	if _, ok := Frac(1, 0).Float64(); ok {
		t.Error("zero denominator should not be numeric")
	}
}

func choiceQuestion() *GeneratedQuestion {
	return &GeneratedQuestion{
		QuestionType: QuestionMultipleChoice,
		Options: []Option{
			{ID: 1, Label: "A", Text: "12"},
			{ID: 2, Label: "B", Text: "1/2"},
			{ID: 3, Label: "C", Text: "3.5"},
			{ID: 4, Label: "D", Text: "None of these"},
		},
		CorrectAnswer: "B",
	}
}

func TestCheckAnswer_MultipleChoice(t *testing.T) {
	q := choiceQuestion()

	tests := []struct {
		input string
		want  bool
	}{
		{"B", true},
		{"b", true},
		{" B ", true},
		{"2", true},
		{"1/2", true},
		{"2/4", true},
		{"A", false},
		{"1", false},
		{"12", false},
		{"", false},
		{"abc", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(tc.input, q)
		if got != tc.want {
			t.Errorf("CheckAnswer(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_ShortAnswer(t *testing.T) {
	q := &GeneratedQuestion{
		QuestionType:  QuestionShortAnswer,
		Options:       []Option{{ID: 1, Label: "A", Text: "42"}},
		CorrectAnswer: "A",
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"42", true},
		{" 42 ", true},
		{"042", true},
		{"42.0", true},
		{"A", false},
		{"1", false},
		{"43", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(tc.input, q)
		if got != tc.want {
			t.Errorf("CheckAnswer(%q, short answer 42) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_Text(t *testing.T) {
	q := &GeneratedQuestion{
		QuestionType: QuestionMultipleChoice,
		Options: []Option{
			{ID: 1, Label: "A", Text: "odd"},
			{ID: 2, Label: "B", Text: "even"},
		},
		CorrectAnswer: "B",
	}
	if !CheckAnswer("EVEN", q) {
		t.Error("text match should be case-insensitive")
	}
	if CheckAnswer("odd", q) {
		t.Error("wrong text should not match")
	}
}

func TestCheckAnswer_NoCorrectOption(t *testing.T) {
	q := choiceQuestion()
	q.CorrectAnswer = "Z"
	if CheckAnswer("B", q) {
		t.Error("question without a correct option should never match")
	}
}
