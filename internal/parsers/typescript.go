package parsers

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/sourcekite/symgold/internal/symbols"
)

// typeScriptParser extracts classes, interfaces, enums, type aliases, and
// functions from TypeScript files.
type typeScriptParser struct {
	*treeSitterParser
}

// NewTypeScriptParser creates a new TypeScript parser.
func NewTypeScriptParser() *typeScriptParser {
	lang := sitter.NewLanguage(typescript.LanguageTypescript())
	return &typeScriptParser{
		treeSitterParser: newTreeSitterParser(lang, "typescript"),
	}
}

// Parse extracts symbol records from TypeScript source in declaration order.
func (p *typeScriptParser) Parse(ctx context.Context, filePath string, source []byte) (*symbols.Table, error) {
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
			p.extractClass(n, source, table)
			return false
		case "interface_declaration":
			p.extractInterface(n, source, table)
			return false
		case "enum_declaration":
			p.extractEnum(n, source, table)
			return false
		case "type_alias_declaration":
			table.Append(symbols.Record{
				Kind:      symbols.KindTypeAlias,
				Name:      nodeName(n, source),
				Signature: strings.TrimSuffix(strings.TrimSpace(headerText(n, source)), ";"),
				StartLine: startLine(n),
				EndLine:   endLine(n),
			})
			return false
		case "function_declaration":
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

// extractClass emits the class record and its method definitions.
func (p *typeScriptParser) extractClass(node *sitter.Node, source []byte, table *symbols.Table) {
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
	for _, method := range childrenOfKind(body, "method_definition") {
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

// extractInterface emits the interface record and its method signatures.
func (p *typeScriptParser) extractInterface(node *sitter.Node, source []byte, table *symbols.Table) {
	name := nodeName(node, source)
	if name == "" {
		return
	}

	table.Append(symbols.Record{
		Kind:      symbols.KindInterface,
		Name:      name,
		Signature: headerText(node, source),
		StartLine: startLine(node),
		EndLine:   endLine(node),
	})

	body := node.ChildByFieldName("body")
	for _, sig := range childrenOfKind(body, "method_signature") {
		methodName := nodeName(sig, source)
		if methodName == "" {
			continue
		}
		table.Append(symbols.Record{
			Kind:      symbols.KindMethod,
			Name:      methodName,
			Parent:    name,
			Signature: strings.TrimSuffix(strings.TrimSpace(extractNodeText(sig, source)), ";"),
			StartLine: startLine(sig),
			EndLine:   endLine(sig),
		})
	}
}

// extractEnum emits the enum record and one record per member.
func (p *typeScriptParser) extractEnum(node *sitter.Node, source []byte, table *symbols.Table) {
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
		var memberName string
		switch child.Kind() {
		case "enum_assignment":
			memberName = nodeName(child, source)
		case "property_identifier":
			memberName = extractNodeText(child, source)
		default:
			continue
		}
		if memberName == "" {
			continue
		}
		table.Append(symbols.Record{
			Kind:      symbols.KindEnumVariant,
			Name:      memberName,
			Parent:    name,
			Signature: strings.TrimSpace(extractNodeText(child, source)),
			StartLine: startLine(child),
			EndLine:   endLine(child),
		})
	}
}
