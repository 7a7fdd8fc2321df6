package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/mathgen/internal/mathx"
)

// MathCheckValidator independently recomputes simple binary arithmetic found
// in the question content and compares it with the correct option. Content
// without a recognizable expression passes through silently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *GeneratedQuestion) *ValidationError {
	correct, ok := q.CorrectOption()
	if !ok {
		return nil
	}
	computed, err := computeAnswer(q.Content, inferAnswerType(correct.Text))
	if err != nil {
		return nil
	}
	if !numericEqual(computed, correct.Text) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but correct option is %q", computed, correct.Text),
		}
	}
	return nil
}

// Patterns for arithmetic expressions inside question content. Only
// expressions followed by "=" are checked, so "3 + 4 = ?" is verified but
// "Ann has 3 apples + ..." prose is not.
var (
	// Fraction arithmetic: "a/b + c/d =", "a/b × c/d =", "a/b ÷ c/d ="
	fractionArithRe = regexp.MustCompile(`(-?\d+)\s*/\s*(\d+)\s*([+\-*×÷])\s*(-?\d+)\s*/\s*(\d+)\s*=`)

	// Integer/decimal arithmetic with +, -, *, ×: "12 × 4 ="
	intArithRe = regexp.MustCompile(`(?:^|[^\d/.])(-?\d+(?:\.\d+)?)\s*([+\-*×])\s*(-?\d+(?:\.\d+)?)\s*=`)

	// Division needs spaces around the operator to tell it apart from a fraction.
	intDivRe = regexp.MustCompile(`(?:^|[^\d/.])(-?\d+(?:\.\d+)?)\s+[/÷]\s+(-?\d+(?:\.\d+)?)\s*=`)
)

// inferAnswerType guesses the numeric representation of a canonical string.
func inferAnswerType(text string) AnswerType {
	switch {
	case strings.Contains(text, "/"):
		return AnswerTypeFraction
	case strings.Contains(text, "."):
		return AnswerTypeDecimal
	default:
		if _, err := strconv.Atoi(text); err == nil {
			return AnswerTypeInteger
		}
		return AnswerTypeText
	}
}

// computeAnswer extracts and evaluates the first checked expression.
func computeAnswer(content string, answerType AnswerType) (string, error) {
	if answerType == AnswerTypeText {
		return "", fmt.Errorf("not computable")
	}
	if m := fractionArithRe.FindStringSubmatch(content); m != nil {
		return computeFractionOp(m[1], m[2], normalizeOp(m[3]), m[4], m[5])
	}
	if m := intArithRe.FindStringSubmatch(content); m != nil {
		return computeNumberOp(m[1], normalizeOp(m[2]), m[3], answerType)
	}
	if m := intDivRe.FindStringSubmatch(content); m != nil {
		return computeNumberOp(m[1], "/", m[2], answerType)
	}
	return "", fmt.Errorf("not computable")
}

func computeFractionOp(aN, aD, op, bN, bD string) (string, error) {
	a, err := parseFractionParts(aN, aD)
	if err != nil {
		return "", err
	}
	b, err := parseFractionParts(bN, bD)
	if err != nil {
		return "", err
	}

	var r mathx.Fraction
	switch op {
	case "+":
		r, err = mathx.Add(a, b)
	case "-":
		r, err = mathx.Sub(a, b)
	case "*":
		r, err = mathx.Mul(a, b)
	case "/":
		r, err = mathx.Div(a, b)
	default:
		return "", fmt.Errorf("unsupported operator: %s", op)
	}
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func parseFractionParts(n, d string) (mathx.Fraction, error) {
	num, err := strconv.Atoi(n)
	if err != nil {
		return mathx.Fraction{}, err
	}
	den, err := strconv.Atoi(d)
	if err != nil {
		return mathx.Fraction{}, err
	}
	return mathx.NewFraction(num, den)
}

// computeNumberOp evaluates a binary operation on two number strings.
// Integer operands stay exact; integer division renders as a reduced fraction
// or a rounded decimal depending on answerType.
func computeNumberOp(aStr, op, bStr string, answerType AnswerType) (string, error) {
	ai, aErr := strconv.Atoi(aStr)
	bi, bErr := strconv.Atoi(bStr)
	if aErr == nil && bErr == nil {
		switch op {
		case "+":
			return strconv.Itoa(ai + bi), nil
		case "-":
			return strconv.Itoa(ai - bi), nil
		case "*":
			return strconv.Itoa(ai * bi), nil
		case "/":
			f, err := mathx.NewFraction(ai, bi)
			if err != nil {
				return "", err
			}
			if f.IsInteger() || answerType == AnswerTypeFraction {
				return f.String(), nil
			}
			return formatDecimal(f.Float64()), nil
		}
		return "", fmt.Errorf("unsupported operator: %s", op)
	}

	a, err := strconv.ParseFloat(aStr, 64)
	if err != nil {
		return "", err
	}
	b, err := strconv.ParseFloat(bStr, 64)
	if err != nil {
		return "", err
	}

	var result float64
	switch op {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return "", fmt.Errorf("division by zero")
		}
		result = a / b
	default:
		return "", fmt.Errorf("unsupported operator: %s", op)
	}
	return formatDecimal(result), nil
}

// normalizeOp normalizes multiplication and division symbols.
func normalizeOp(op string) string {
	switch op {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}
