package solver

import "testing"

const sampleSolution = `Problem:
Rows:       1
Columns:    4 (4 integer, 0 binary)
Non-zeros:  4
Status:     INTEGER OPTIMAL
Objective:  obj = 6 (MINimum)

   No.   Row name        Activity     Lower bound   Upper bound
------ ------------    ------------- ------------- -------------
     1 bezout                      6             1

   No. Column name       Activity     Lower bound   Upper bound
------ ------------    ------------- ------------- -------------
     1 p            *              1             0            18
     2 q            *              0             0            18
     3 r            *              0             0            48
     4 s            *              2             0            48
`

func TestParseSolution_HeadersExtracted(t *testing.T) {
	info := ParseSolution([]byte(sampleSolution))
	if info.Status != "INTEGER OPTIMAL" {
		t.Errorf("Status == %q", info.Status)
	}
	if !info.HasObjective || info.Objective != 6 {
		t.Errorf("Objective == (%v, %v), want (6, true)", info.Objective, info.HasObjective)
	}
}

func TestParseSolution_MissingFieldsStayAbsent(t *testing.T) {
	info := ParseSolution([]byte("Rows: 1\nColumns: 4\n"))
	if info.Status != "" {
		t.Errorf("Status == %q, want empty", info.Status)
	}
	if info.HasObjective {
		t.Error("HasObjective true for input without objective line")
	}

	m := info.StatusMap("glpsol")
	if _, ok := m["status"]; ok {
		t.Error("absent status must be omitted from the map, not defaulted")
	}
	if _, ok := m["objective"]; ok {
		t.Error("absent objective must be omitted from the map")
	}
	if m["solver"] != "glpsol" {
		t.Errorf("solver == %q", m["solver"])
	}
}

func TestParseSolution_UndefinedStatus(t *testing.T) {
	info := ParseSolution([]byte("Status:     INTEGER UNDEFINED\n"))
	if info.Status != "INTEGER UNDEFINED" {
		t.Errorf("Status == %q", info.Status)
	}
}

func TestStatusMap_FullInfo(t *testing.T) {
	info := SolutionInfo{Status: "INTEGER OPTIMAL", Objective: 9, HasObjective: true}
	m := info.StatusMap("glpsol")
	if m["status"] != "INTEGER OPTIMAL" || m["objective"] != "9" || m["solver"] != "glpsol" {
		t.Errorf("unexpected map: %v", m)
	}
}
