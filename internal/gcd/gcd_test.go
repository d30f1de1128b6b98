package gcd_test

import (
	"errors"
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"milpgcd/internal/gcd"
)

type gcdCase struct {
	A, B, D int64
}

var gcdCases = []gcdCase{
	{1, 1, 1},
	{2, 2, 2},
	{13, 19, 1},
	{9, 27, 9},
	{48, 18, 6},
	{18, 48, 6},
	{7, 360, 1},
	{24, 120, 24},
	{36, 120, 12},
	{360, 92821, 1},
	{123456789, 987654321, 9},
}

var symCases []gcdCase

func init() {
	symCases = append(symCases, gcdCases...)
	for _, c := range gcdCases {
		if c.A == c.B {
			continue
		}
		symCases = append(symCases, gcdCase{c.B, c.A, c.D})
	}
}

func TestGCD(t *testing.T) {
	for _, c := range symCases {
		t.Run(fmt.Sprintf("GCD(%d,%d)", c.A, c.B), func(t *testing.T) {
			d, err := gcd.GCD(c.A, c.B)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d != c.D {
				t.Errorf("GCD(%d, %d) == %d, want %d", c.A, c.B, d, c.D)
			}
		})
	}
}

func TestGCD_NonPositiveInputs(t *testing.T) {
	pairs := [][2]int64{{0, 1}, {1, 0}, {0, 0}, {-3, 9}, {9, -3}, {-1, -1}}
	for _, p := range pairs {
		_, err := gcd.GCD(p[0], p[1])
		if !errors.Is(err, gcd.ErrNonPositive) {
			t.Errorf("GCD(%d, %d): got err %v, want ErrNonPositive", p[0], p[1], err)
		}
	}
}

func TestExtGCD(t *testing.T) {
	for _, c := range symCases {
		x, y, d := gcd.ExtGCD(c.A, c.B)
		if d != c.D {
			t.Errorf("ExtGCD(%d, %d): d == %d, want %d", c.A, c.B, d, c.D)
		}
		if x*c.A+y*c.B != d {
			t.Errorf("ExtGCD(%d, %d): %d*%d + %d*%d == %d, want %d",
				c.A, c.B, x, c.A, y, c.B, x*c.A+y*c.B, d)
		}
	}
}

func TestExtGCD_OutOfDomain(t *testing.T) {
	x, y, d := gcd.ExtGCD(0, 5)
	if x != 0 || y != 0 || d != 0 {
		t.Errorf("ExtGCD(0, 5) == (%d, %d, %d), want zeros", x, y, d)
	}
}

func TestGCD_DividesBothAndMaximal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int64Range(1, 100).Draw(t, "a")
		b := rapid.Int64Range(1, 100).Draw(t, "b")
		d, err := gcd.GCD(a, b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a%d != 0 || b%d != 0 {
			t.Fatalf("GCD(%d, %d) == %d does not divide both", a, b, d)
		}
		for k := d + 1; k <= a && k <= b; k++ {
			if a%k == 0 && b%k == 0 {
				t.Fatalf("GCD(%d, %d) == %d is not maximal: %d divides both", a, b, d, k)
			}
		}
	})
}

func TestGCD_Commutative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int64Range(1, 100).Draw(t, "a")
		b := rapid.Int64Range(1, 100).Draw(t, "b")
		ab, err := gcd.GCD(a, b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ba, err := gcd.GCD(b, a)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ab != ba {
			t.Fatalf("GCD(%d, %d) == %d but GCD(%d, %d) == %d", a, b, ab, b, a, ba)
		}
	})
}

func TestGCD_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int64Range(1, 100).Draw(t, "a")
		b := rapid.Int64Range(1, 100).Draw(t, "b")
		d1, _ := gcd.GCD(a, b)
		d2, _ := gcd.GCD(a, b)
		if d1 != d2 {
			t.Fatalf("GCD(%d, %d) not deterministic: %d vs %d", a, b, d1, d2)
		}
	})
}

func TestGCD_Boundaries(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int64Range(1, 1000).Draw(t, "a")
		d, err := gcd.GCD(a, 1)
		if err != nil || d != 1 {
			t.Fatalf("GCD(%d, 1) == (%d, %v), want (1, nil)", a, d, err)
		}
		d, err = gcd.GCD(a, a)
		if err != nil || d != a {
			t.Fatalf("GCD(%d, %d) == (%d, %v), want (%d, nil)", a, a, d, err, a)
		}
	})
}
