package solver

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// SolutionInfo is the metadata extracted from a glpsol plain-text solution
// file. Fields the solver did not print stay at their zero values; callers
// must treat Status and Objective as optional.
type SolutionInfo struct {
	// Status is the solver's termination line, e.g. "INTEGER OPTIMAL".
	Status string

	// Objective is the reported objective value; valid only when
	// HasObjective is true.
	Objective    float64
	HasObjective bool
}

// ParseSolution extracts the Status and Objective headers from a glpsol
// solution file, e.g.
//
//	Status:     INTEGER OPTIMAL
//	Objective:  obj = 6 (MINimum)
//
// Unknown lines are ignored, so the parser tolerates the row/column tables
// that follow the headers. Parsing never fails on missing fields: absence
// is represented, not raised.
func ParseSolution(text []byte) SolutionInfo {
	var info SolutionInfo

	sc := bufio.NewScanner(bytes.NewReader(text))
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "Status:"):
			info.Status = strings.TrimSpace(strings.TrimPrefix(line, "Status:"))
		case strings.HasPrefix(line, "Objective:"):
			if v, ok := parseObjective(line); ok {
				info.Objective = v
				info.HasObjective = true
			}
		}
	}
	return info
}

// parseObjective pulls the numeric value out of a line like
// "Objective:  obj = 6 (MINimum)".
func parseObjective(line string) (float64, bool) {
	_, rhs, found := strings.Cut(line, "=")
	if !found {
		return 0, false
	}
	if i := strings.IndexByte(rhs, '('); i >= 0 {
		rhs = rhs[:i]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rhs), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// StatusMap converts the parsed info into candidate status metadata.
// Absent fields are omitted from the map entirely; the verification layer
// substitutes its placeholder when formatting.
func (s SolutionInfo) StatusMap(solverName string) map[string]string {
	m := map[string]string{"solver": solverName}
	if s.Status != "" {
		m["status"] = s.Status
	}
	if s.HasObjective {
		m["objective"] = fmt.Sprintf("%g", s.Objective)
	}
	return m
}
