package symbols

import (
	"fmt"
	"strconv"
	"strings"
)

// Mismatch describes one field divergence between an expected and an actual
// record at the same position. Index -1 marks a table-length divergence.
type Mismatch struct {
	Index    int    `json:"index"`
	Field    string `json:"field"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

func (m Mismatch) String() string {
	if m.Index < 0 {
		return fmt.Sprintf("table length: expected %s records, got %s", m.Expected, m.Actual)
	}
	return fmt.Sprintf("record %d, %s: expected %q, got %q", m.Index, m.Field, m.Expected, m.Actual)
}

// DiffResult collects every mismatch found in one comparison. A data
// mismatch is an expected kind of test failure, never an error.
type DiffResult struct {
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// OK reports whether the tables matched exactly.
func (d *DiffResult) OK() bool {
	return len(d.Mismatches) == 0
}

func (d *DiffResult) String() string {
	if d.OK() {
		return "ok"
	}
	var sb strings.Builder
	for i, m := range d.Mismatches {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}

// Compare checks the actual table against the expected one: equal length,
// then pairwise equality of kind, name, parent, and signature in order.
// All mismatches are accumulated before returning; comparison is positional,
// so duplicate names are matched by index, not by name.
func Compare(expected, actual *Table) *DiffResult {
	result := &DiffResult{}

	exp := expected.Records()
	act := actual.Records()

	if len(exp) != len(act) {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Index:    -1,
			Field:    "length",
			Expected: strconv.Itoa(len(exp)),
			Actual:   strconv.Itoa(len(act)),
		})
	}

	n := len(exp)
	if len(act) < n {
		n = len(act)
	}

	for i := 0; i < n; i++ {
		compareRecord(result, i, exp[i], act[i])
	}

	return result
}

func compareRecord(result *DiffResult, idx int, expected, actual Record) {
	if expected.Kind != actual.Kind {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Index: idx, Field: "kind",
			Expected: string(expected.Kind), Actual: string(actual.Kind),
		})
	}
	if expected.Name != actual.Name {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Index: idx, Field: "name",
			Expected: expected.Name, Actual: actual.Name,
		})
	}
	if expected.Parent != actual.Parent {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Index: idx, Field: "parent",
			Expected: expected.Parent, Actual: actual.Parent,
		})
	}
	if expected.Signature != actual.Signature {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Index: idx, Field: "signature",
			Expected: expected.Signature, Actual: actual.Signature,
		})
	}
}
