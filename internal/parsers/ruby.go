package parsers

import (
	"context"

	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"

	"github.com/sourcekite/symgold/internal/symbols"
)

// rubyParser extracts classes, modules, and methods from Ruby files.
type rubyParser struct {
	*treeSitterParser
}

// NewRubyParser creates a new Ruby parser.
func NewRubyParser() *rubyParser {
	lang := sitter.NewLanguage(ruby.Language())
	return &rubyParser{
		treeSitterParser: newTreeSitterParser(lang, "ruby"),
	}
}

// Parse extracts symbol records from Ruby source in declaration order.
func (p *rubyParser) Parse(ctx context.Context, filePath string, source []byte) (*symbols.Table, error) {
	tree, err := p.newTree(source, filePath)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if err := p.checkSyntax(rootNode, source, filePath); err != nil {
		return nil, err
	}

	table := symbols.NewTable(filePath, p.lang)
	walkTree(rootNode, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "class":
			p.extractContainer(n, source, table, symbols.KindClass)
			return false
		case "module":
			p.extractContainer(n, source, table, symbols.KindModule)
			return false
		case "method":
			// Containers stop descent, so any method seen here is
			// top-level.
			table.Append(symbols.Record{
				Kind:      symbols.KindFunction,
				Name:      nodeName(n, source),
				Signature: headerText(n, source),
				StartLine: startLine(n),
				EndLine:   endLine(n),
			})
			return false
		}
		return true
	})
	return table, nil
}

// extractContainer emits a class or module record plus its instance and
// singleton methods.
func (p *rubyParser) extractContainer(node *sitter.Node, source []byte, table *symbols.Table, kind symbols.Kind) {
	name := nodeName(node, source)
	if name == "" {
		return
	}

	table.Append(symbols.Record{
		Kind:      kind,
		Name:      name,
		Signature: headerText(node, source),
		StartLine: startLine(node),
		EndLine:   endLine(node),
	})

	// Class bodies are body_statement nodes without a named field in some
	// grammar versions; scan direct children for both shapes.
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == "body_statement" {
			p.extractMethods(child, source, table, name)
		}
		if child.Kind() == "method" || child.Kind() == "singleton_method" {
			p.extractMethod(child, source, table, name)
		}
	}
}

func (p *rubyParser) extractMethods(body *sitter.Node, source []byte, table *symbols.Table, parent string) {
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child.Kind() == "method" || child.Kind() == "singleton_method" {
			p.extractMethod(child, source, table, parent)
		}
	}
}

func (p *rubyParser) extractMethod(node *sitter.Node, source []byte, table *symbols.Table, parent string) {
	name := nodeName(node, source)
	if name == "" {
		return
	}
	table.Append(symbols.Record{
		Kind:      symbols.KindMethod,
		Name:      name,
		Parent:    parent,
		Signature: headerText(node, source),
		StartLine: startLine(node),
		EndLine:   endLine(node),
	})
}
