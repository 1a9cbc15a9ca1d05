package symbols

import (
	"fmt"

	"github.com/dominikbraun/graph"
)

// Kind classifies a symbol record. The set is closed so comparison and
// reporting can match exhaustively on it.
type Kind string

const (
	KindStruct      Kind = "struct"
	KindEnum        Kind = "enum"
	KindEnumVariant Kind = "enum_variant"
	KindTrait       Kind = "trait"
	KindTraitMethod Kind = "trait_method"
	KindImplMethod  Kind = "impl_method"
	KindFunction    Kind = "function"

	// Kinds used by the non-Rust extractors.
	KindClass     Kind = "class"
	KindMethod    Kind = "method"
	KindInterface Kind = "interface"
	KindModule    Kind = "module"
	KindUnion     Kind = "union"
	KindTypeAlias Kind = "type_alias"
)

// containerKinds are the kinds that may enclose other records.
var containerKinds = map[Kind]bool{
	KindStruct:    true,
	KindEnum:      true,
	KindTrait:     true,
	KindClass:     true,
	KindInterface: true,
	KindModule:    true,
	KindUnion:     true,
}

// IsContainer reports whether records of this kind may parent other records.
func (k Kind) IsContainer() bool {
	return containerKinds[k]
}

// Record is one declared symbol. Records are immutable once appended to a
// Table; Parent names the enclosing container record ("" for top-level).
type Record struct {
	Kind      Kind   `json:"kind"`
	Name      string `json:"name"`
	Parent    string `json:"parent,omitempty"`
	Signature string `json:"signature,omitempty"`
	StartLine int    `json:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
}

// Table is an ordered sequence of symbol records for one file. Insertion
// order is source declaration order; that order is what golden comparison
// checks against.
type Table struct {
	FilePath string
	Language string

	records []Record
	byName  map[string]int
}

// NewTable creates an empty symbol table for the given file.
func NewTable(filePath, language string) *Table {
	return &Table{
		FilePath: filePath,
		Language: language,
		byName:   make(map[string]int),
	}
}

// Append adds a record to the end of the table. A name declared twice keeps
// both records in the sequence; Lookup resolves to the later one.
func (t *Table) Append(r Record) {
	t.records = append(t.records, r)
	t.byName[r.Name] = len(t.records) - 1
}

// Records returns the ordered record sequence.
func (t *Table) Records() []Record {
	return t.records
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// Lookup returns the latest record declared with the given name.
func (t *Table) Lookup(name string) (Record, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return Record{}, false
	}
	return t.records[idx], true
}

// Validate checks the parent invariants: every non-empty Parent must name a
// container record that appears earlier in the table, and the resulting
// parent links must form an acyclic graph.
func (t *Table) Validate() error {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	for i, r := range t.records {
		id := recordID(r, i)
		if err := g.AddVertex(id); err != nil {
			return fmt.Errorf("record %d (%s): %w", i, r.Name, err)
		}

		if r.Parent == "" {
			continue
		}

		parentIdx := -1
		for j := i - 1; j >= 0; j-- {
			if t.records[j].Name == r.Parent && t.records[j].Kind.IsContainer() {
				parentIdx = j
				break
			}
		}
		if parentIdx < 0 {
			return fmt.Errorf("record %d (%s %s): parent %q does not appear earlier in the table",
				i, r.Kind, r.Name, r.Parent)
		}

		if err := g.AddEdge(id, recordID(t.records[parentIdx], parentIdx)); err != nil {
			return fmt.Errorf("record %d (%s %s): parent link rejected: %w", i, r.Kind, r.Name, err)
		}
	}

	return nil
}

func recordID(r Record, idx int) string {
	return fmt.Sprintf("%d:%s", idx, r.Name)
}
