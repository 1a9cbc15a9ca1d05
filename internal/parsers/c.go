package parsers

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"github.com/sourcekite/symgold/internal/symbols"
)

// cParser extracts structs, unions, enums with enumerators, typedefs, and
// function definitions from C files.
type cParser struct {
	*treeSitterParser
}

// NewCParser creates a new C parser.
func NewCParser() *cParser {
	lang := sitter.NewLanguage(c.Language())
	return &cParser{
		treeSitterParser: newTreeSitterParser(lang, "c"),
	}
}

// Parse extracts symbol records from C source in declaration order.
func (p *cParser) Parse(ctx context.Context, filePath string, source []byte) (*symbols.Table, error) {
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
		case "struct_specifier":
			p.extractTagged(n, source, table, symbols.KindStruct)
		case "union_specifier":
			p.extractTagged(n, source, table, symbols.KindUnion)
		case "enum_specifier":
			p.extractEnum(n, source, table)
		case "type_definition":
			p.extractTypedef(n, source, table)
		case "function_definition":
			p.extractFunction(n, source, table)
			return false
		}
		return true
	})
	return table, nil
}

// extractTagged emits a record for a struct or union definition. Bare
// references like `struct foo x;` have no body and are skipped.
func (p *cParser) extractTagged(node *sitter.Node, source []byte, table *symbols.Table, kind symbols.Kind) {
	if node.ChildByFieldName("body") == nil {
		return
	}
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
}

// extractEnum emits the enum record and one record per enumerator.
func (p *cParser) extractEnum(node *sitter.Node, source []byte, table *symbols.Table) {
	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
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

	for _, enumerator := range childrenOfKind(body, "enumerator") {
		enumName := nodeName(enumerator, source)
		if enumName == "" {
			continue
		}
		table.Append(symbols.Record{
			Kind:      symbols.KindEnumVariant,
			Name:      enumName,
			Parent:    name,
			Signature: strings.TrimSpace(extractNodeText(enumerator, source)),
			StartLine: startLine(enumerator),
			EndLine:   endLine(enumerator),
		})
	}
}

// extractTypedef emits a record for a type_definition.
func (p *cParser) extractTypedef(node *sitter.Node, source []byte, table *symbols.Table) {
	declarator := node.ChildByFieldName("declarator")
	name := declaratorName(declarator, source)
	if name == "" {
		return
	}

	table.Append(symbols.Record{
		Kind:      symbols.KindTypeAlias,
		Name:      name,
		Signature: headerText(node, source),
		StartLine: startLine(node),
		EndLine:   endLine(node),
	})
}

// extractFunction emits a record for a function definition, digging the name
// out of the declarator chain.
func (p *cParser) extractFunction(node *sitter.Node, source []byte, table *symbols.Table) {
	name := declaratorName(node.ChildByFieldName("declarator"), source)
	if name == "" {
		return
	}

	table.Append(symbols.Record{
		Kind:      symbols.KindFunction,
		Name:      name,
		Signature: headerText(node, source),
		StartLine: startLine(node),
		EndLine:   endLine(node),
	})
}

// declaratorName unwraps pointer/function declarators down to the
// identifier.
func declaratorName(node *sitter.Node, source []byte) string {
	for node != nil {
		switch node.Kind() {
		case "identifier", "type_identifier":
			return extractNodeText(node, source)
		case "function_declarator", "pointer_declarator", "array_declarator", "parenthesized_declarator", "init_declarator":
			node = node.ChildByFieldName("declarator")
		default:
			return ""
		}
	}
	return ""
}
