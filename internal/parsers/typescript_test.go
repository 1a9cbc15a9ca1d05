package parsers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcekite/symgold/internal/symbols"
)

// Test Plan for TypeScriptParser:
// - Classes, interfaces, enums, type aliases, and functions are extracted
// - Interface method signatures are parent-linked to the interface
// - Enum members become variant records
// - An unterminated block fails with ParseError

// Test: one record per declaration kind, in source order
func TestTypeScriptParser_Declarations(t *testing.T) {
	t.Parallel()

	src := []byte(`class Point {
  move(dx: number, dy: number): void {}
}

interface Shape {
  area(): number;
}

enum Color {
  Red,
  Green = 2,
}

type Pair = [number, number];

function distance(a: Point, b: Point): number {
  return 0;
}
`)

	table, err := NewTypeScriptParser().Parse(context.Background(), "shapes.ts", src)
	require.NoError(t, err)
	require.Equal(t, 9, table.Len())

	records := table.Records()
	assert.Equal(t, symbols.KindClass, records[0].Kind)
	assert.Equal(t, "Point", records[0].Name)
	assert.Equal(t, symbols.KindMethod, records[1].Kind)
	assert.Equal(t, "move", records[1].Name)
	assert.Equal(t, "Point", records[1].Parent)
	assert.Equal(t, symbols.KindInterface, records[2].Kind)
	assert.Equal(t, "Shape", records[2].Name)
	assert.Equal(t, symbols.KindMethod, records[3].Kind)
	assert.Equal(t, "area", records[3].Name)
	assert.Equal(t, "Shape", records[3].Parent)
	assert.Equal(t, "area(): number", records[3].Signature)
	assert.Equal(t, symbols.KindEnum, records[4].Kind)
	assert.Equal(t, "Color", records[4].Name)
	assert.Equal(t, symbols.KindEnumVariant, records[5].Kind)
	assert.Equal(t, "Red", records[5].Name)
	assert.Equal(t, symbols.KindEnumVariant, records[6].Kind)
	assert.Equal(t, "Green", records[6].Name)
	assert.Equal(t, "Color", records[6].Parent)
	assert.Equal(t, symbols.KindTypeAlias, records[7].Kind)
	assert.Equal(t, "Pair", records[7].Name)
	assert.Equal(t, symbols.KindFunction, records[8].Kind)
	assert.Equal(t, "distance", records[8].Name)

	require.NoError(t, table.Validate())
}

// Test: an unterminated block fails with ParseError
func TestTypeScriptParser_UnterminatedBlock(t *testing.T) {
	t.Parallel()

	src := []byte(`function broken() {
  const x = 1;
`)

	_, err := NewTypeScriptParser().Parse(context.Background(), "broken.ts", src)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "want ParseError, got %T: %v", err, err)
}
