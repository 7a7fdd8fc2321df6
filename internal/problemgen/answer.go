package problemgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/mathgen/internal/mathx"
)

// ErrZeroDenominator is returned when a fraction answer has a zero denominator.
var ErrZeroDenominator = mathx.ErrZeroDenominator

// AnswerType identifies which variant of Answer is populated.
type AnswerType string

const (
	AnswerTypeInteger  AnswerType = "integer"  // e.g. 623, -15
	AnswerTypeDecimal  AnswerType = "decimal"  // e.g. 3.75, 0.5
	AnswerTypeFraction AnswerType = "fraction" // e.g. 3/4, -7/2
	AnswerTypeText     AnswerType = "text"     // e.g. "even", "No solution"
)

// Answer is a tagged value: exactly one of Integer, Decimal, Fraction or Text
// is meaningful, selected by Type. Build answers with Int, Decimal, Frac or Text.
type Answer struct {
	Type     AnswerType
	Integer  int
	Decimal  float64
	Fraction mathx.Fraction
	Text     string
}

// Int returns an integer answer.
func Int(n int) Answer { return Answer{Type: AnswerTypeInteger, Integer: n} }

// Decimal returns a decimal answer.
func Decimal(f float64) Answer { return Answer{Type: AnswerTypeDecimal, Decimal: f} }

// Frac returns the fraction answer n/d. It is not reduced until canonicalized.
func Frac(n, d int) Answer {
	return Answer{Type: AnswerTypeFraction, Fraction: mathx.Fraction{Num: n, Den: d}}
}

// Text returns a free-text answer.
func Text(s string) Answer { return Answer{Type: AnswerTypeText, Text: s} }

// Canonical returns the single display string for a, used both as the option
// text and for equality checks.
//
// Rules:
// - integer: decimal digits, sign preserved
// - decimal: rounded to 2 places, integral values have no fractional part
// - fraction: reduced, sign on the numerator, "n" when the denominator is 1
// - text: unchanged, including ""
func (a Answer) Canonical() (string, error) {
	switch a.Type {
	case AnswerTypeInteger:
		return strconv.Itoa(a.Integer), nil
	case AnswerTypeDecimal:
		if math.IsNaN(a.Decimal) || math.IsInf(a.Decimal, 0) {
			return "", fmt.Errorf("non-finite decimal answer %v", a.Decimal)
		}
		return formatDecimal(a.Decimal), nil
	case AnswerTypeFraction:
		f, err := a.Fraction.Normalize()
		if err != nil {
			return "", err
		}
		return f.String(), nil
	case AnswerTypeText:
		return a.Text, nil
	default:
		return "", fmt.Errorf("unknown answer type %q", a.Type)
	}
}

// Float64 returns the numeric value of a. ok is false for text answers and
// for fractions with a zero denominator.
func (a Answer) Float64() (v float64, ok bool) {
	switch a.Type {
	case AnswerTypeInteger:
		return float64(a.Integer), true
	case AnswerTypeDecimal:
		if math.IsNaN(a.Decimal) || math.IsInf(a.Decimal, 0) {
			return 0, false
		}
		return a.Decimal, true
	case AnswerTypeFraction:
		if a.Fraction.Den == 0 {
			return 0, false
		}
		return a.Fraction.Float64(), true
	default:
		return 0, false
	}
}

// formatDecimal rounds f to two places and drops a zero fractional part.
func formatDecimal(f float64) string {
	r := math.Round(f*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// CheckAnswer compares the learner's response against a generated question.
// Returns true if the response selects or states the correct option.
//
// Normalization rules:
// - Whitespace is trimmed
// - Labels are case-insensitive ("b" matches "B")
// - Option ids are accepted ("2" selects the option with id 2)
// - Option text is compared case-insensitively
// - For numeric text: "007" matches "7", "3.50" matches "3.5", "2/4" matches "1/2"
func CheckAnswer(response string, q *GeneratedQuestion) bool {
	response = strings.TrimSpace(response)
	if response == "" {
		return false
	}
	correct, ok := q.CorrectOption()
	if !ok {
		return false
	}

	// Short answers are typed, so labels and ids mean nothing.
	if q.QuestionType != QuestionShortAnswer {
		for _, o := range q.Options {
			if strings.EqualFold(response, o.Label) {
				return o.Label == correct.Label
			}
		}
		if id, err := strconv.Atoi(response); err == nil && id >= 1 && id <= len(q.Options) {
			return id == correct.ID
		}
	}

	// Text match.
	if strings.EqualFold(response, strings.TrimSpace(correct.Text)) {
		return true
	}
	return numericEqual(response, correct.Text)
}

// numericEqual compares two numeric strings after normalization.
func numericEqual(a, b string) bool {
	na, err := normalizeNumber(a)
	if err != nil {
		return false
	}
	nb, err := normalizeNumber(b)
	if err != nil {
		return false
	}
	return na == nb
}

// normalizeNumber parses an integer, decimal or fraction string into its
// canonical form.
func normalizeNumber(s string) (string, error) {
	s = strings.TrimSpace(s)

	if strings.Contains(s, "/") {
		num, den, err := parseFraction(s)
		if err != nil {
			return "", err
		}
		return Frac(num, den).Canonical()
	}

	if n, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(n), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("invalid number: %w", err)
	}
	return Decimal(f).Canonical()
}

// parseFraction parses "a/b" into numerator and denominator.
func parseFraction(s string) (int, int, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return num, den, nil
}
