package parsers

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcekite/symgold/internal/symbols"
)

// Test Plan for RustParser:
// - The golden fixture extracts exactly 9 records in source order
// - Impl methods are parent-linked to the impl target type
// - Enum variants are parent-linked to their enum
// - Trait methods (both required and defaulted) are parent-linked
// - Extraction matches the checked-in golden file
// - Duplicate function names keep both records, lookup resolves to the later
// - Extraction is deterministic across runs
// - Kind counts match the top-level keyword counts
// - Braces inside string literals do not affect block depth
// - Impl methods for types declared elsewhere stay top-level
// - An unterminated block fails with ParseError
// - An unterminated string fails with LexError
// - Parent references always point backward (table validates)

const goldenFixture = "../../testdata/rust/golden_rust.rs"

// Test: the sample fixture extracts exactly 9 records in source order
func TestRustParser_GoldenFixture(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source, err := os.ReadFile(goldenFixture)
	require.NoError(t, err)

	table, err := NewRustParser().Parse(ctx, goldenFixture, source)
	require.NoError(t, err)
	require.NotNil(t, table)
	require.Equal(t, 9, table.Len())

	expected := []struct {
		kind   symbols.Kind
		name   string
		parent string
	}{
		{symbols.KindStruct, "Foo", ""},
		{symbols.KindImplMethod, "new", "Foo"},
		{symbols.KindImplMethod, "bar", "Foo"},
		{symbols.KindEnum, "MyEnum", ""},
		{symbols.KindEnumVariant, "A", "MyEnum"},
		{symbols.KindEnumVariant, "B", "MyEnum"},
		{symbols.KindTrait, "MyTrait", ""},
		{symbols.KindTraitMethod, "do_it", "MyTrait"},
		{symbols.KindFunction, "free_function", ""},
	}

	records := table.Records()
	for i, want := range expected {
		assert.Equal(t, want.kind, records[i].Kind, "record %d kind", i)
		assert.Equal(t, want.name, records[i].Name, "record %d name", i)
		assert.Equal(t, want.parent, records[i].Parent, "record %d parent", i)
	}

	require.NoError(t, table.Validate())
}

// Test: extraction matches the checked-in golden file
func TestRustParser_MatchesGolden(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source, err := os.ReadFile(goldenFixture)
	require.NoError(t, err)

	table, err := NewRustParser().Parse(ctx, goldenFixture, source)
	require.NoError(t, err)

	expected, err := symbols.ReadGolden(goldenFixture + ".symbols")
	require.NoError(t, err)

	result := symbols.Compare(expected, table)
	assert.True(t, result.OK(), "diff: %s", result)
}

// Test: declaration headers become signatures, bodies are not parsed
func TestRustParser_Signatures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source, err := os.ReadFile(goldenFixture)
	require.NoError(t, err)

	table, err := NewRustParser().Parse(ctx, goldenFixture, source)
	require.NoError(t, err)

	records := table.Records()
	assert.Equal(t, "pub struct Foo", records[0].Signature)
	assert.Equal(t, "pub fn new() -> Self", records[1].Signature)
	assert.Equal(t, "pub fn bar(&self)", records[2].Signature)
	assert.Equal(t, "pub enum MyEnum", records[3].Signature)
	assert.Equal(t, "A", records[4].Signature)
	assert.Equal(t, "fn do_it(&self)", records[7].Signature)
	assert.Equal(t, "fn free_function()", records[8].Signature)
}

// Test: line numbers track the source
func TestRustParser_LineNumbers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source, err := os.ReadFile(goldenFixture)
	require.NoError(t, err)

	table, err := NewRustParser().Parse(ctx, goldenFixture, source)
	require.NoError(t, err)

	records := table.Records()
	assert.Equal(t, 2, records[0].StartLine)
	assert.Equal(t, 5, records[1].StartLine)
	assert.Equal(t, 7, records[1].EndLine)
	assert.Equal(t, 11, records[3].StartLine)
	assert.Equal(t, 14, records[3].EndLine)
	assert.Equal(t, 20, records[8].StartLine)
}

// Test: duplicate declarations keep both records; lookup is latest-wins
func TestRustParser_DuplicatePreserved(t *testing.T) {
	t.Parallel()

	src := []byte(`fn dup() {}
fn other() {}
fn dup() {}
`)

	table, err := NewRustParser().Parse(context.Background(), "dup.rs", src)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	assert.Equal(t, "dup", table.Records()[0].Name)
	assert.Equal(t, "dup", table.Records()[2].Name)

	rec, ok := table.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, 3, rec.StartLine)
}

// Test: trait methods with default bodies are still trait methods
func TestRustParser_TraitDefaultMethod(t *testing.T) {
	t.Parallel()

	src := []byte(`trait Greeter {
    fn name(&self) -> String;
    fn greet(&self) -> String {
        format!("hello {}", self.name())
    }
}
`)

	table, err := NewRustParser().Parse(context.Background(), "trait.rs", src)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	records := table.Records()
	assert.Equal(t, symbols.KindTrait, records[0].Kind)
	assert.Equal(t, symbols.KindTraitMethod, records[1].Kind)
	assert.Equal(t, "name", records[1].Name)
	assert.Equal(t, symbols.KindTraitMethod, records[2].Kind)
	assert.Equal(t, "greet", records[2].Name)
	assert.Equal(t, "Greeter", records[2].Parent)
}

// Test: functions nested in bodies are not symbols; only declaration
// headers count
func TestRustParser_TopLevelKindCounts(t *testing.T) {
	t.Parallel()

	src := []byte(`struct A {}
struct B {}
enum E { X }
trait T {}
fn one() {}
fn two() {}
`)

	table, err := NewRustParser().Parse(context.Background(), "counts.rs", src)
	require.NoError(t, err)

	counts := map[symbols.Kind]int{}
	for _, rec := range table.Records() {
		counts[rec.Kind]++
	}
	assert.Equal(t, 2, counts[symbols.KindStruct])
	assert.Equal(t, 1, counts[symbols.KindEnum])
	assert.Equal(t, 1, counts[symbols.KindTrait])
	assert.Equal(t, 2, counts[symbols.KindFunction])
}

// Test: re-running extraction on identical input yields identical records
func TestRustParser_Deterministic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source, err := os.ReadFile(goldenFixture)
	require.NoError(t, err)

	first, err := NewRustParser().Parse(ctx, goldenFixture, source)
	require.NoError(t, err)
	second, err := NewRustParser().Parse(ctx, goldenFixture, source)
	require.NoError(t, err)

	assert.Equal(t, first.Records(), second.Records())
}

// Test: braces inside string literals do not count toward block depth
func TestRustParser_BraceInStringLiteral(t *testing.T) {
	t.Parallel()

	src := []byte(`fn ok() {
    let open = "{";
    let close = "}";
}
`)

	table, err := NewRustParser().Parse(context.Background(), "braces.rs", src)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "ok", table.Records()[0].Name)
}

// Test: methods of an impl whose target type is not declared in the file
// are recorded without a parent and the table still validates
func TestRustParser_ImplForExternalType(t *testing.T) {
	t.Parallel()

	src := []byte(`impl External {
    fn helper(&self) {}
}
`)

	table, err := NewRustParser().Parse(context.Background(), "ext.rs", src)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	rec := table.Records()[0]
	assert.Equal(t, symbols.KindImplMethod, rec.Kind)
	assert.Equal(t, "helper", rec.Name)
	assert.Equal(t, "", rec.Parent)

	require.NoError(t, table.Validate())
}

// Test: a block whose brace depth never returns to zero is a ParseError
func TestRustParser_UnterminatedBlock(t *testing.T) {
	t.Parallel()

	src := []byte(`struct Ok {}

fn broken() {
    let x = 1;
`)

	_, err := NewRustParser().Parse(context.Background(), "broken.rs", src)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "want ParseError, got %T: %v", err, err)
	assert.Equal(t, "broken.rs", parseErr.Path)
}

// Test: an unterminated string literal is a LexError
func TestRustParser_UnterminatedString(t *testing.T) {
	t.Parallel()

	src := []byte(`const GREETING: &str = "hello`)

	_, err := NewRustParser().Parse(context.Background(), "lex.rs", src)
	require.Error(t, err)

	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr), "want LexError, got %T: %v", err, err)
	assert.Equal(t, "lex.rs", lexErr.Path)
}
