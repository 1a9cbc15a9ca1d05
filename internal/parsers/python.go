package parsers

import (
	"context"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/sourcekite/symgold/internal/symbols"
)

// pythonParser extracts classes, methods, and module-level functions.
type pythonParser struct {
	*treeSitterParser
}

// NewPythonParser creates a new Python parser.
func NewPythonParser() *pythonParser {
	lang := sitter.NewLanguage(python.Language())
	return &pythonParser{
		treeSitterParser: newTreeSitterParser(lang, "python"),
	}
}

// Parse extracts symbol records from Python source in declaration order.
func (p *pythonParser) Parse(ctx context.Context, filePath string, source []byte) (*symbols.Table, error) {
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
		case "class_definition":
			p.extractClass(n, source, table)
			return false
		case "function_definition":
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

// extractClass emits the class record and its directly nested methods.
// Decorated methods appear wrapped in decorated_definition nodes.
func (p *pythonParser) extractClass(node *sitter.Node, source []byte, table *symbols.Table) {
	name := nodeName(node, source)
	if name == "" {
		return
	}

	table.Append(symbols.Record{
		Kind:      symbols.KindClass,
		Name:      name,
		Signature: headerText(node, source),
		StartLine: startLine(node),
		EndLine:   endLine(node),
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child.Kind() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				child = def
			}
		}
		if child.Kind() != "function_definition" {
			continue
		}
		methodName := nodeName(child, source)
		if methodName == "" {
			continue
		}
		table.Append(symbols.Record{
			Kind:      symbols.KindMethod,
			Name:      methodName,
			Parent:    name,
			Signature: headerText(child, source),
			StartLine: startLine(child),
			EndLine:   endLine(child),
		})
	}
}
