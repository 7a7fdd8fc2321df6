// Package mathx holds the exact integer and rational helpers used by question
// templates and answer canonicalization.
package mathx

import "strconv"

// GCD returns the greatest common divisor of |a| and |b|. GCD(0, 0) is 0.
func GCD(a, b int) int {
	a, b = Abs(a), Abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of |a| and |b|. LCM(0, x) is 0.
func LCM(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return Abs(a/GCD(a, b)) * Abs(b)
}

// Abs returns the absolute value of n.
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Signed renders n as an operator and magnitude for use inside an
// expression: Signed(3) is "+ 3", Signed(-3) is "- 3".
func Signed(n int) string {
	if n < 0 {
		return "- " + strconv.Itoa(-n)
	}
	return "+ " + strconv.Itoa(n)
}

// Coefficient renders n as the leading coefficient of variable, dropping a
// unit coefficient: "x", "-x", "3x", "-3x". A zero coefficient renders "0".
func Coefficient(n int, variable string) string {
	switch n {
	case 0:
		return "0"
	case 1:
		return variable
	case -1:
		return "-" + variable
	default:
		return strconv.Itoa(n) + variable
	}
}
