// Package solver drives external MILP solver binaries over model and
// solution files, and adapts them as verification candidates.
package solver

import (
	"bytes"
	"fmt"
)

// FormatLP renders the Bézout gcd model for (a, b) in CPLEX LP format,
// the dialect both glpsol (--lp) and HiGHS accept.
//
// Variable order matches the in-process formulation: u = p - q, v = r - s,
// all four nonnegative integers. Output is deterministic byte-for-byte so
// exported models can be diffed and hashed.
func FormatLP(a, b int64) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "\\ gcd(%d, %d) as a MILP: minimize %d u + %d v subject to %d u + %d v >= 1\n", a, b, a, b, a, b)
	buf.WriteString("Minimize\n")
	fmt.Fprintf(&buf, " obj: %d p - %d q + %d r - %d s\n", a, a, b, b)
	buf.WriteString("Subject To\n")
	fmt.Fprintf(&buf, " bezout: %d p - %d q + %d r - %d s >= 1\n", a, a, b, b)
	buf.WriteString("Bounds\n")
	fmt.Fprintf(&buf, " 0 <= p <= %d\n", b)
	fmt.Fprintf(&buf, " 0 <= q <= %d\n", b)
	fmt.Fprintf(&buf, " 0 <= r <= %d\n", a)
	fmt.Fprintf(&buf, " 0 <= s <= %d\n", a)
	buf.WriteString("General\n")
	buf.WriteString(" p q r s\n")
	buf.WriteString("End\n")
	return buf.Bytes()
}
