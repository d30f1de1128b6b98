// Package trace records differential verification campaigns as canonical,
// hashable event streams.
package trace

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// VerificationTrace is the canonical record of a differential verification
// campaign: which pairs were checked against which backend, and how each
// check ended.
//
// Determinism constraints:
//   - No timestamps, durations, pointers, or runtime-dependent values.
//   - Events carry logical outcomes only; solver wall-clock noise stays out.
//   - Byte-for-byte stability of the canonical encoding is required, since
//     the trace hash identifies a campaign.
//
// Consumers should treat a trace as immutable once Canonicalize has run.
// The trace is observational only and must never affect verification
// behavior.
type VerificationTrace struct {
	Backend string
	Events  []CheckEvent
}

// CheckEventKind is the stable discriminator for CheckEvent.
// The string values are part of the trace's canonical bytes; do not rename.
type CheckEventKind string

const (
	EventCheckPassed          CheckEventKind = "CheckPassed"
	EventCheckMismatch        CheckEventKind = "CheckMismatch"
	EventCheckCandidateFailed CheckEventKind = "CheckCandidateFailed"
)

// CheckEvent is the logical outcome of one differential check.
//
// Oracle is always the reference value. Candidate is only meaningful for
// CheckPassed and CheckMismatch; for CheckCandidateFailed the candidate
// produced no definite value and Candidate stays zero. Status carries the
// candidate-supplied metadata (solver status text, objective); absent
// entries are simply omitted, never encoded as placeholders.
type CheckEvent struct {
	Kind      CheckEventKind
	A         int64
	B         int64
	Oracle    int64
	Candidate int64
	Status    map[string]string
}

// Validate checks basic invariants and returns a descriptive error.
func (t *VerificationTrace) Validate() error {
	if t == nil {
		return errors.New("trace is nil")
	}
	if t.Backend == "" {
		return errors.New("backend is required")
	}
	for i := range t.Events {
		e := t.Events[i]
		switch e.Kind {
		case EventCheckPassed, EventCheckMismatch, EventCheckCandidateFailed:
		case "":
			return fmt.Errorf("events[%d].kind is required", i)
		default:
			return fmt.Errorf("events[%d].kind %q is unknown", i, e.Kind)
		}
		if e.A < 1 || e.B < 1 {
			return fmt.Errorf("events[%d] pair (%d, %d) outside positive domain", i, e.A, e.B)
		}
	}
	return nil
}

// Canonicalize sorts the trace into its canonical form.
//
// Ordering is a total order over events independent of execution timing:
// (a, b, kindOrder). Duplicate pairs can appear when a campaign re-checks a
// shrunk pair; kind order keeps those stable too.
func (t *VerificationTrace) Canonicalize() {
	if t == nil {
		return
	}
	sort.SliceStable(t.Events, func(i, j int) bool {
		a := t.Events[i]
		b := t.Events[j]
		if a.A != b.A {
			return a.A < b.A
		}
		if a.B != b.B {
			return a.B < b.B
		}
		return kindOrder(a.Kind) < kindOrder(b.Kind)
	})
}

func kindOrder(k CheckEventKind) int {
	switch k {
	case EventCheckPassed:
		return 10
	case EventCheckMismatch:
		return 20
	case EventCheckCandidateFailed:
		return 30
	default:
		return 1000
	}
}

// CanonicalJSON returns the canonical JSON encoding of the trace.
// It canonicalizes a copy to avoid mutating the caller's slice.
func (t VerificationTrace) CanonicalJSON() ([]byte, error) {
	copyTrace := VerificationTrace{Backend: t.Backend}
	copyTrace.Events = make([]CheckEvent, len(t.Events))
	copy(copyTrace.Events, t.Events)
	copyTrace.Canonicalize()
	if err := copyTrace.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(&copyTrace)
}

// Hash returns the deterministic campaign hash: sha256 over the canonical
// JSON bytes, hex-encoded. Hashing the canonical form (not insertion
// order) keeps it stable across architectures and re-runs.
func (t VerificationTrace) Hash() (string, error) {
	b, err := t.CanonicalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// MarshalJSON fixes field order so the canonical bytes never depend on
// encoder internals.
func (t VerificationTrace) MarshalJSON() ([]byte, error) {
	if t.Backend == "" {
		return nil, errors.New("backend is required")
	}
	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString("\"backend\":")
	bb, _ := json.Marshal(t.Backend)
	buf.Write(bb)
	buf.WriteByte(',')

	buf.WriteString("\"events\":[")
	for i := range t.Events {
		if i > 0 {
			buf.WriteByte(',')
		}
		eb, err := json.Marshal(t.Events[i])
		if err != nil {
			return nil, err
		}
		buf.Write(eb)
	}
	buf.WriteByte(']')

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON fixes field ordering and omission rules for one event.
// Status keys are emitted sorted; an empty Status is omitted entirely.
func (e CheckEvent) MarshalJSON() ([]byte, error) {
	if e.Kind == "" {
		return nil, errors.New("kind is required")
	}

	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString("\"kind\":")
	kb, _ := json.Marshal(string(e.Kind))
	buf.Write(kb)

	fmt.Fprintf(&buf, ",\"a\":%d,\"b\":%d,\"oracle\":%d", e.A, e.B, e.Oracle)

	if e.Kind != EventCheckCandidateFailed {
		fmt.Fprintf(&buf, ",\"candidate\":%d", e.Candidate)
	}

	if len(e.Status) > 0 {
		keys := make([]string, 0, len(e.Status))
		for k := range e.Status {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteString(",\"status\":{")
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			nb, _ := json.Marshal(k)
			buf.Write(nb)
			buf.WriteByte(':')
			vb, _ := json.Marshal(e.Status[k])
			buf.Write(vb)
		}
		buf.WriteByte('}')
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
