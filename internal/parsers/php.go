package parsers

import (
	"context"

	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"github.com/sourcekite/symgold/internal/symbols"
)

// phpParser extracts classes, interfaces, traits, and free functions.
type phpParser struct {
	*treeSitterParser
}

// NewPHPParser creates a new PHP parser.
func NewPHPParser() *phpParser {
	lang := sitter.NewLanguage(php.LanguagePHP())
	return &phpParser{
		treeSitterParser: newTreeSitterParser(lang, "php"),
	}
}

// Parse extracts symbol records from PHP source in declaration order.
func (p *phpParser) Parse(ctx context.Context, filePath string, source []byte) (*symbols.Table, error) {
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
		case "class_declaration":
			p.extractContainer(n, source, table, symbols.KindClass, symbols.KindMethod)
			return false
		case "interface_declaration":
			p.extractContainer(n, source, table, symbols.KindInterface, symbols.KindMethod)
			return false
		case "trait_declaration":
			p.extractContainer(n, source, table, symbols.KindTrait, symbols.KindTraitMethod)
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

// extractContainer emits a class, interface, or trait record plus its
// method declarations.
func (p *phpParser) extractContainer(node *sitter.Node, source []byte, table *symbols.Table, kind, methodKind symbols.Kind) {
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

	body := node.ChildByFieldName("body")
	for _, method := range childrenOfKind(body, "method_declaration") {
		methodName := nodeName(method, source)
		if methodName == "" {
			continue
		}
		table.Append(symbols.Record{
			Kind:      methodKind,
			Name:      methodName,
			Parent:    name,
			Signature: headerText(method, source),
			StartLine: startLine(method),
			EndLine:   endLine(method),
		})
	}
}
