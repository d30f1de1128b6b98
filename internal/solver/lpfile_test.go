package solver

import (
	"strings"
	"testing"
)

func TestFormatLP_Deterministic(t *testing.T) {
	one := FormatLP(48, 18)
	two := FormatLP(48, 18)
	if string(one) != string(two) {
		t.Fatal("model bytes are not deterministic")
	}
}

func TestFormatLP_Structure(t *testing.T) {
	s := string(FormatLP(48, 18))

	for _, want := range []string{
		"Minimize\n",
		" obj: 48 p - 48 q + 18 r - 18 s\n",
		"Subject To\n",
		" bezout: 48 p - 48 q + 18 r - 18 s >= 1\n",
		"Bounds\n",
		" 0 <= p <= 18\n",
		" 0 <= q <= 18\n",
		" 0 <= r <= 48\n",
		" 0 <= s <= 48\n",
		"General\n",
		" p q r s\n",
		"End\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("model missing %q:\n%s", want, s)
		}
	}
}
