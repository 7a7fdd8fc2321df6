package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/mathgen/internal/mathx"
	pg "github.com/abhisek/mathgen/internal/problemgen"
)

// variadic marks a kind that accepts any number of arguments above its minimum.
const variadic = -1

type arity struct{ min, max int }

func (a arity) validate(n int) error {
	switch {
	case a.max == variadic && n < a.min:
		return fmt.Errorf("takes at least %d argument(s), got %d", a.min, n)
	case a.max != variadic && (n < a.min || n > a.max):
		if a.min == a.max {
			return fmt.Errorf("takes %d argument(s), got %d", a.min, n)
		}
		return fmt.Errorf("takes %d to %d arguments, got %d", a.min, a.max, n)
	}
	return nil
}

// answerKind computes an answer from operand values.
type answerKind struct {
	arity
	eval func(v []int) pg.Answer
}

var answerKinds = map[string]answerKind{
	"sum":        {arity{2, variadic}, func(v []int) pg.Answer { return pg.Int(total(v)) }},
	"difference": {arity{2, 2}, func(v []int) pg.Answer { return pg.Int(v[0] - v[1]) }},
	"product": {arity{2, variadic}, func(v []int) pg.Answer {
		p := 1
		for _, n := range v {
			p *= n
		}
		return pg.Int(p)
	}},
	"quotient": {arity{2, 2}, func(v []int) pg.Answer { return pg.Decimal(float64(v[0]) / float64(v[1])) }},
	"int_quotient": {arity{2, 2}, func(v []int) pg.Answer {
		if v[1] == 0 {
			return pg.Frac(v[0], 0)
		}
		return pg.Int(v[0] / v[1])
	}},
	"remainder": {arity{2, 2}, func(v []int) pg.Answer {
		if v[1] == 0 {
			return pg.Frac(v[0], 0)
		}
		return pg.Int(v[0] % v[1])
	}},
	"fraction":            {arity{2, 2}, func(v []int) pg.Answer { return pg.Frac(v[0], v[1]) }},
	"fraction_sum":        {arity{4, 4}, func(v []int) pg.Answer { return pg.Frac(v[0]*v[3]+v[2]*v[1], v[1]*v[3]) }},
	"fraction_difference": {arity{4, 4}, func(v []int) pg.Answer { return pg.Frac(v[0]*v[3]-v[2]*v[1], v[1]*v[3]) }},
	"fraction_product":    {arity{4, 4}, func(v []int) pg.Answer { return pg.Frac(v[0]*v[2], v[1]*v[3]) }},
	"fraction_quotient":   {arity{4, 4}, func(v []int) pg.Answer { return pg.Frac(v[0]*v[3], v[1]*v[2]) }},
	// ax + b = c
	"linear_solution": {arity{3, 3}, func(v []int) pg.Answer { return pg.Frac(v[2]-v[1], v[0]) }},
	"square":          {arity{1, 1}, func(v []int) pg.Answer { return pg.Int(v[0] * v[0]) }},
	"power":           {arity{2, 2}, func(v []int) pg.Answer { return power(v[0], v[1]) }},
	"percent_of":      {arity{2, 2}, func(v []int) pg.Answer { return pg.Decimal(float64(v[0]*v[1]) / 100) }},
	"rectangle_area":  {arity{2, 2}, func(v []int) pg.Answer { return pg.Int(v[0] * v[1]) }},
	"rectangle_perimeter": {arity{2, 2}, func(v []int) pg.Answer {
		return pg.Int(2 * (v[0] + v[1]))
	}},
	"triangle_area": {arity{2, 2}, func(v []int) pg.Answer { return pg.Decimal(float64(v[0]*v[1]) / 2) }},
	"circle_area":   {arity{1, 1}, func(v []int) pg.Answer { return pg.Decimal(math.Pi * float64(v[0]*v[0])) }},
	"average": {arity{1, variadic}, func(v []int) pg.Answer {
		return pg.Decimal(float64(total(v)) / float64(len(v)))
	}},
	"parity": {arity{1, 1}, func(v []int) pg.Answer {
		if v[0]%2 == 0 {
			return pg.Text("even")
		}
		return pg.Text("odd")
	}},
	"compare": {arity{2, 2}, func(v []int) pg.Answer {
		switch {
		case v[0] < v[1]:
			return pg.Text("<")
		case v[0] > v[1]:
			return pg.Text(">")
		default:
			return pg.Text("=")
		}
	}},
	"value": {arity{1, 1}, func(v []int) pg.Answer { return pg.Int(v[0]) }},
}

// mistakeKinds model common wrong procedures. They are valid only as
// distractors.
var mistakeKinds = map[string]answerKind{
	// a/b + c/d computed as (a+c)/(b+d)
	"add_across": {arity{4, 4}, func(v []int) pg.Answer { return pg.Frac(v[0]+v[2], v[1]+v[3]) }},
	// a/b × c/d computed as (a×d)/(b×c)
	"flip_product": {arity{4, 4}, func(v []int) pg.Answer { return pg.Frac(v[0]*v[3], v[1]*v[2]) }},
	// ax + b = c solved as (c+b)/a
	"sign_slip": {arity{3, 3}, func(v []int) pg.Answer { return pg.Frac(v[2]+v[1], v[0]) }},
}

var errNotNumeric = errors.New("answer is not numeric")

// modifierKind derives a distractor from the correct answer.
type modifierKind struct {
	arity
	apply func(a pg.Answer, v []int) (pg.Answer, error)
}

var modifierKinds = map[string]modifierKind{
	"shift":          {arity{1, 1}, func(a pg.Answer, v []int) (pg.Answer, error) { return shift(a, v[0]) }},
	"scale":          {arity{1, 1}, func(a pg.Answer, v []int) (pg.Answer, error) { return scale(a, v[0]) }},
	"negate":         {arity{0, 0}, func(a pg.Answer, _ []int) (pg.Answer, error) { return scale(a, -1) }},
	"reciprocal":     {arity{0, 0}, func(a pg.Answer, _ []int) (pg.Answer, error) { return reciprocal(a) }},
	"reverse_digits": {arity{0, 0}, func(a pg.Answer, _ []int) (pg.Answer, error) { return reverseDigits(a) }},
}

// constraintKind accepts or rejects operand values.
type constraintKind struct {
	arity
	check func(v []int) bool
}

var constraintKinds = map[string]constraintKind{
	"distinct": {arity{2, variadic}, func(v []int) bool {
		seen := make(map[int]bool, len(v))
		for _, n := range v {
			if seen[n] {
				return false
			}
			seen[n] = true
		}
		return true
	}},
	"less":        {arity{2, 2}, func(v []int) bool { return v[0] < v[1] }},
	"divides":     {arity{2, 2}, func(v []int) bool { return v[0] != 0 && v[1]%v[0] == 0 }},
	"not_divides": {arity{2, 2}, func(v []int) bool { return v[0] != 0 && v[1]%v[0] != 0 }},
	"coprime":     {arity{2, 2}, func(v []int) bool { return mathx.GCD(v[0], v[1]) == 1 }},
	"nonzero": {arity{1, variadic}, func(v []int) bool {
		for _, n := range v {
			if n == 0 {
				return false
			}
		}
		return true
	}},
}

// contentKind renders question text from operand values.
type contentKind struct {
	arity
	render func(v []int) string
}

var contentKinds = map[string]contentKind{
	// ax + b = c
	"linear_equation": {arity{3, 3}, func(v []int) string {
		return "Solve for x: " + linearSide(v[0], v[1]) + " = " + strconv.Itoa(v[2])
	}},
	// ax + b = a·root + b
	"linear_equation_root": {arity{3, 3}, func(v []int) string {
		return "Solve for x: " + linearSide(v[0], v[2]) + " = " + strconv.Itoa(v[0]*v[1]+v[2])
	}},
	"signed_sum": {arity{2, variadic}, func(v []int) string {
		var b strings.Builder
		b.WriteString("Evaluate: ")
		b.WriteString(strconv.Itoa(v[0]))
		for _, n := range v[1:] {
			b.WriteString(" ")
			b.WriteString(mathx.Signed(n))
		}
		return b.String()
	}},
}

func linearSide(a, b int) string {
	if b == 0 {
		return mathx.Coefficient(a, "x")
	}
	return mathx.Coefficient(a, "x") + " " + mathx.Signed(b)
}

func total(v []int) int {
	s := 0
	for _, n := range v {
		s += n
	}
	return s
}

func power(base, exp int) pg.Answer {
	if exp < 0 {
		d := 1
		for range -exp {
			d *= base
		}
		return pg.Frac(1, d)
	}
	p := 1
	for range exp {
		p *= base
	}
	return pg.Int(p)
}

func shift(a pg.Answer, k int) (pg.Answer, error) {
	switch a.Type {
	case pg.AnswerTypeInteger:
		return pg.Int(a.Integer + k), nil
	case pg.AnswerTypeDecimal:
		return pg.Decimal(a.Decimal + float64(k)), nil
	case pg.AnswerTypeFraction:
		return pg.Frac(a.Fraction.Num+k*a.Fraction.Den, a.Fraction.Den), nil
	default:
		return pg.Answer{}, errNotNumeric
	}
}

func scale(a pg.Answer, k int) (pg.Answer, error) {
	switch a.Type {
	case pg.AnswerTypeInteger:
		return pg.Int(a.Integer * k), nil
	case pg.AnswerTypeDecimal:
		return pg.Decimal(a.Decimal * float64(k)), nil
	case pg.AnswerTypeFraction:
		return pg.Frac(a.Fraction.Num*k, a.Fraction.Den), nil
	default:
		return pg.Answer{}, errNotNumeric
	}
}

func reciprocal(a pg.Answer) (pg.Answer, error) {
	switch a.Type {
	case pg.AnswerTypeInteger:
		return pg.Frac(1, a.Integer), nil
	case pg.AnswerTypeDecimal:
		if a.Decimal == 0 {
			return pg.Answer{}, errors.New("reciprocal of zero")
		}
		return pg.Decimal(1 / a.Decimal), nil
	case pg.AnswerTypeFraction:
		return pg.Frac(a.Fraction.Den, a.Fraction.Num), nil
	default:
		return pg.Answer{}, errNotNumeric
	}
}

func reverseDigits(a pg.Answer) (pg.Answer, error) {
	if a.Type != pg.AnswerTypeInteger {
		return pg.Answer{}, errors.New("reverse_digits needs an integer answer")
	}
	n, sign := mathx.Abs(a.Integer), 1
	if a.Integer < 0 {
		sign = -1
	}
	r := 0
	for n > 0 {
		r = r*10 + n%10
		n /= 10
	}
	return pg.Int(sign * r), nil
}
