package parsers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sourcekite/symgold/internal/symbols"
)

// Parser extracts an ordered symbol table from source text. Extraction is a
// pure in-memory transformation; implementations hold no per-file state and
// are safe for concurrent use across files.
type Parser interface {
	// Language returns the language name (e.g. "rust").
	Language() string

	// Parse extracts symbol records from source in declaration order.
	Parse(ctx context.Context, filePath string, source []byte) (*symbols.Table, error)
}

// extensions maps file extensions to parser constructors.
var extensions = map[string]func() Parser{
	".rs":   func() Parser { return NewRustParser() },
	".py":   func() Parser { return NewPythonParser() },
	".ts":   func() Parser { return NewTypeScriptParser() },
	".tsx":  func() Parser { return NewTypeScriptParser() },
	".c":    func() Parser { return NewCParser() },
	".h":    func() Parser { return NewCParser() },
	".java": func() Parser { return NewJavaParser() },
	".php":  func() Parser { return NewPHPParser() },
	".rb":   func() Parser { return NewRubyParser() },
}

// ForPath returns a parser for the file's extension.
func ForPath(path string) (Parser, bool) {
	newParser, ok := extensions[filepath.Ext(path)]
	if !ok {
		return nil, false
	}
	return newParser(), true
}

// SupportedExtensions returns the extensions with a registered parser,
// sorted for stable output.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ParseFile reads a source file and extracts its symbol table.
func ParseFile(ctx context.Context, path string) (*symbols.Table, error) {
	parser, ok := ForPath(path)
	if !ok {
		return nil, fmt.Errorf("no parser registered for %s", filepath.Ext(path))
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parser.Parse(ctx, path, source)
}
