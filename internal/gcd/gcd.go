// Package gcd implements the Euclidean reference oracle that solver-backed
// candidates are verified against.
package gcd

import (
	"errors"
	"fmt"
)

// ErrNonPositive reports an input outside the positive-integer domain.
// gcd over zero or negative integers is undefined under this contract.
var ErrNonPositive = errors.New("gcd: inputs must be positive")

// GCD returns the greatest common divisor of a and b.
//
// It is the trusted oracle: iterative Euclidean algorithm, pure and
// deterministic. Both inputs must be >= 1; otherwise ErrNonPositive is
// returned (wrapped with the offending pair).
func GCD(a, b int64) (int64, error) {
	if a <= 0 || b <= 0 {
		return 0, fmt.Errorf("%w: got (%d, %d)", ErrNonPositive, a, b)
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a, nil
}

// ExtGCD returns Bézout coefficients x, y and d = GCD(a, b) such that
//
//	a*x + b*y == d
//
// The same positive-domain contract as GCD applies; out-of-domain inputs
// yield d == 0 and zero coefficients rather than an error, since ExtGCD is
// only reached through callers that validate first.
func ExtGCD(a, b int64) (x, y, d int64) {
	if a <= 0 || b <= 0 {
		return 0, 0, 0
	}
	// per Knuth TAOCP Vol 1 (3e), Algorithm E
	x0, x1 := int64(1), int64(0)
	y0, y1 := int64(0), int64(1)
	for b != 0 {
		q := a / b
		a, b = b, a-q*b
		x0, x1 = x1, x0-q*x1
		y0, y1 = y1, y0-q*y1
	}
	return x0, y0, a
}
