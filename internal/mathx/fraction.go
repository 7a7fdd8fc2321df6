package mathx

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrZeroDenominator is returned when a fraction would have a zero denominator.
var ErrZeroDenominator = errors.New("zero denominator")

// Fraction is an exact rational number. The zero value is 0/0 and is not
// valid; build fractions with NewFraction or normalize before use.
type Fraction struct {
	Num int
	Den int
}

// NewFraction returns the normalized fraction n/d.
func NewFraction(n, d int) (Fraction, error) {
	return Fraction{Num: n, Den: d}.Normalize()
}

// Int returns n as the fraction n/1.
func Int(n int) Fraction {
	return Fraction{Num: n, Den: 1}
}

// Normalize reduces f to lowest terms with the sign carried on the numerator.
// A zero numerator normalizes to 0/1.
func (f Fraction) Normalize() (Fraction, error) {
	if f.Den == 0 {
		return Fraction{}, ErrZeroDenominator
	}
	if f.Num == 0 {
		return Fraction{Num: 0, Den: 1}, nil
	}
	n, d := f.Num, f.Den
	if d < 0 {
		n, d = -n, -d
	}
	g := GCD(n, d)
	return Fraction{Num: n / g, Den: d / g}, nil
}

// IsInteger reports whether f reduces to a whole number.
func (f Fraction) IsInteger() bool {
	return f.Den != 0 && f.Num%f.Den == 0
}

// Float64 returns the decimal value of f. A zero denominator yields NaN or ±Inf.
func (f Fraction) Float64() float64 {
	return float64(f.Num) / float64(f.Den)
}

// String renders f as "n/d", or "n" when the denominator is 1.
func (f Fraction) String() string {
	if f.Den == 1 {
		return strconv.Itoa(f.Num)
	}
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// Add returns a + b.
func Add(a, b Fraction) (Fraction, error) {
	return Fraction{Num: a.Num*b.Den + b.Num*a.Den, Den: a.Den * b.Den}.Normalize()
}

// Sub returns a - b.
func Sub(a, b Fraction) (Fraction, error) {
	return Fraction{Num: a.Num*b.Den - b.Num*a.Den, Den: a.Den * b.Den}.Normalize()
}

// Mul returns a * b.
func Mul(a, b Fraction) (Fraction, error) {
	return Fraction{Num: a.Num * b.Num, Den: a.Den * b.Den}.Normalize()
}

// Div returns a / b. Dividing by a zero fraction returns ErrZeroDenominator.
func Div(a, b Fraction) (Fraction, error) {
	return Fraction{Num: a.Num * b.Den, Den: a.Den * b.Num}.Normalize()
}
