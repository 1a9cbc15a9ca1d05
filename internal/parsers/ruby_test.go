package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcekite/symgold/internal/symbols"
)

// Test Plan for RubyParser:
// - Classes and modules carry their instance and singleton methods
// - Top-level methods are recorded as functions
// - Methods inside containers are not double counted at top level

// Test: class methods and a top-level function
func TestRubyParser_ClassAndTopLevel(t *testing.T) {
	t.Parallel()

	src := []byte(`class Greeter
  def initialize(name)
    @name = name
  end

  def greet
    "hello #{@name}"
  end

  def self.default
    new("world")
  end
end

def main
  Greeter.default.greet
end
`)

	table, err := NewRubyParser().Parse(context.Background(), "greeter.rb", src)
	require.NoError(t, err)
	require.Equal(t, 5, table.Len())

	records := table.Records()
	assert.Equal(t, symbols.KindClass, records[0].Kind)
	assert.Equal(t, "Greeter", records[0].Name)
	assert.Equal(t, symbols.KindMethod, records[1].Kind)
	assert.Equal(t, "initialize", records[1].Name)
	assert.Equal(t, "Greeter", records[1].Parent)
	assert.Equal(t, "greet", records[2].Name)
	assert.Equal(t, "default", records[3].Name)
	assert.Equal(t, "Greeter", records[3].Parent)
	assert.Equal(t, symbols.KindFunction, records[4].Kind)
	assert.Equal(t, "main", records[4].Name)
	assert.Equal(t, "", records[4].Parent)

	require.NoError(t, table.Validate())
}

// Test: modules are containers like classes
func TestRubyParser_Module(t *testing.T) {
	t.Parallel()

	src := []byte(`module Util
  def self.clamp(v, lo, hi)
    [[v, lo].max, hi].min
  end
end
`)

	table, err := NewRubyParser().Parse(context.Background(), "util.rb", src)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	records := table.Records()
	assert.Equal(t, symbols.KindModule, records[0].Kind)
	assert.Equal(t, "Util", records[0].Name)
	assert.Equal(t, symbols.KindMethod, records[1].Kind)
	assert.Equal(t, "clamp", records[1].Name)
	assert.Equal(t, "Util", records[1].Parent)
}
