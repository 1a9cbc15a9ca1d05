package parsers

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/sourcekite/symgold/internal/symbols"
)

// javaParser extracts classes, interfaces, and enums with their members.
type javaParser struct {
	*treeSitterParser
}

// NewJavaParser creates a new Java parser.
func NewJavaParser() *javaParser {
	lang := sitter.NewLanguage(java.Language())
	return &javaParser{
		treeSitterParser: newTreeSitterParser(lang, "java"),
	}
}

// Parse extracts symbol records from Java source in declaration order.
func (p *javaParser) Parse(ctx context.Context, filePath string, source []byte) (*symbols.Table, error) {
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
			p.extractContainer(n, source, table, symbols.KindClass)
			return false
		case "interface_declaration":
			p.extractContainer(n, source, table, symbols.KindInterface)
			return false
		case "enum_declaration":
			p.extractEnum(n, source, table)
			return false
		}
		return true
	})
	return table, nil
}

// extractContainer emits a class or interface record plus its methods and
// constructors.
func (p *javaParser) extractContainer(node *sitter.Node, source []byte, table *symbols.Table, kind symbols.Kind) {
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
	if body == nil {
		return
	}

	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child.Kind() != "method_declaration" && child.Kind() != "constructor_declaration" {
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

// extractEnum emits the enum record, its constants, and its methods.
func (p *javaParser) extractEnum(node *sitter.Node, source []byte, table *symbols.Table) {
	name := nodeName(node, source)
	if name == "" {
		return
	}

	table.Append(symbols.Record{
		Kind:      symbols.KindEnum,
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
		switch child.Kind() {
		case "enum_constant":
			constName := nodeName(child, source)
			if constName == "" {
				continue
			}
			table.Append(symbols.Record{
				Kind:      symbols.KindEnumVariant,
				Name:      constName,
				Parent:    name,
				Signature: strings.TrimSpace(extractNodeText(child, source)),
				StartLine: startLine(child),
				EndLine:   endLine(child),
			})
		case "enum_body_declarations":
			for _, method := range childrenOfKind(child, "method_declaration") {
				methodName := nodeName(method, source)
				if methodName == "" {
					continue
				}
				table.Append(symbols.Record{
					Kind:      symbols.KindMethod,
					Name:      methodName,
					Parent:    name,
					Signature: headerText(method, source),
					StartLine: startLine(method),
					EndLine:   endLine(method),
				})
			}
		}
	}
}
