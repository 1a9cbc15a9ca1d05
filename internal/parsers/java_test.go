package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcekite/symgold/internal/symbols"
)

// Test Plan for JavaParser:
// - Classes carry their methods and constructors
// - Interfaces carry their method declarations
// - Enums carry constants and methods declared after the constants

// Test: class with constructor and method
func TestJavaParser_Class(t *testing.T) {
	t.Parallel()

	src := []byte(`public class Account {
    private long balance;

    public Account(long balance) {
        this.balance = balance;
    }

    public long getBalance() {
        return balance;
    }
}
`)

	table, err := NewJavaParser().Parse(context.Background(), "Account.java", src)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	records := table.Records()
	assert.Equal(t, symbols.KindClass, records[0].Kind)
	assert.Equal(t, "Account", records[0].Name)
	assert.Equal(t, symbols.KindMethod, records[1].Kind)
	assert.Equal(t, "Account", records[1].Name)
	assert.Equal(t, "Account", records[1].Parent)
	assert.Equal(t, "getBalance", records[2].Name)
	assert.Equal(t, "Account", records[2].Parent)
}

// Test: interface methods and enum constants
func TestJavaParser_InterfaceAndEnum(t *testing.T) {
	t.Parallel()

	src := []byte(`interface Closer {
    void close();
}

enum Status {
    OPEN,
    CLOSED;

    boolean isOpen() {
        return this == OPEN;
    }
}
`)

	table, err := NewJavaParser().Parse(context.Background(), "Status.java", src)
	require.NoError(t, err)
	require.Equal(t, 6, table.Len())

	records := table.Records()
	assert.Equal(t, symbols.KindInterface, records[0].Kind)
	assert.Equal(t, "Closer", records[0].Name)
	assert.Equal(t, "close", records[1].Name)
	assert.Equal(t, symbols.KindEnum, records[2].Kind)
	assert.Equal(t, "Status", records[2].Name)
	assert.Equal(t, symbols.KindEnumVariant, records[3].Kind)
	assert.Equal(t, "OPEN", records[3].Name)
	assert.Equal(t, "CLOSED", records[4].Name)
	assert.Equal(t, symbols.KindMethod, records[5].Kind)
	assert.Equal(t, "isOpen", records[5].Name)
	assert.Equal(t, "Status", records[5].Parent)

	require.NoError(t, table.Validate())
}
