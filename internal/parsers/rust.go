package parsers

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/sourcekite/symgold/internal/symbols"
)

// rustParser extracts declaration headers from Rust files: structs, enums
// with their variants, traits with their method signatures, impl blocks with
// their methods, and free functions.
type rustParser struct {
	*treeSitterParser
}

// NewRustParser creates a new Rust parser.
func NewRustParser() *rustParser {
	lang := sitter.NewLanguage(rust.Language())
	return &rustParser{
		treeSitterParser: newTreeSitterParser(lang, "rust"),
	}
}

// Parse extracts symbol records from Rust source in declaration order.
func (p *rustParser) Parse(ctx context.Context, filePath string, source []byte) (*symbols.Table, error) {
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
	p.extractItems(rootNode, source, table)
	return table, nil
}

// extractItems walks the tree and emits one record per declaration header.
// Bodies are only descended into for nested declarations; impl, trait, and
// enum members are emitted here so the container handles its own children.
func (p *rustParser) extractItems(node *sitter.Node, source []byte, table *symbols.Table) {
	walkTree(node, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "struct_item":
			p.extractStruct(n, source, table)
		case "enum_item":
			p.extractEnum(n, source, table)
			return false
		case "trait_item":
			p.extractTrait(n, source, table)
			return false
		case "impl_item":
			p.extractImpl(n, source, table)
			return false
		case "function_item":
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
}

// extractStruct emits the struct record. Fields are not symbols.
func (p *rustParser) extractStruct(node *sitter.Node, source []byte, table *symbols.Table) {
	name := nodeName(node, source)
	if name == "" {
		return
	}

	table.Append(symbols.Record{
		Kind:      symbols.KindStruct,
		Name:      name,
		Signature: headerText(node, source),
		StartLine: startLine(node),
		EndLine:   endLine(node),
	})
}

// extractEnum emits the enum record followed by one record per variant,
// parent-linked to the enum.
func (p *rustParser) extractEnum(node *sitter.Node, source []byte, table *symbols.Table) {
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
	for _, variant := range childrenOfKind(body, "enum_variant") {
		variantName := nodeName(variant, source)
		if variantName == "" {
			continue
		}
		table.Append(symbols.Record{
			Kind:      symbols.KindEnumVariant,
			Name:      variantName,
			Parent:    name,
			Signature: strings.TrimSpace(extractNodeText(variant, source)),
			StartLine: startLine(variant),
			EndLine:   endLine(variant),
		})
	}
}

// extractTrait emits the trait record followed by its method signatures.
func (p *rustParser) extractTrait(node *sitter.Node, source []byte, table *symbols.Table) {
	name := nodeName(node, source)
	if name == "" {
		return
	}

	table.Append(symbols.Record{
		Kind:      symbols.KindTrait,
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
		// Required methods are function_signature_item; methods with a
		// default body are function_item.
		if child.Kind() != "function_signature_item" && child.Kind() != "function_item" {
			continue
		}
		methodName := nodeName(child, source)
		if methodName == "" {
			continue
		}
		table.Append(symbols.Record{
			Kind:      symbols.KindTraitMethod,
			Name:      methodName,
			Parent:    name,
			Signature: headerText(child, source),
			StartLine: startLine(child),
			EndLine:   endLine(child),
		})
	}
}

// extractImpl emits one record per method in the impl block, parent-linked
// to the impl target type. The impl block itself is not a symbol.
func (p *rustParser) extractImpl(node *sitter.Node, source []byte, table *symbols.Table) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return
	}
	typeName := extractNodeText(typeNode, source)

	// An impl target declared elsewhere (another file, a foreign type) has
	// no earlier container record; its methods stay top-level.
	parent := typeName
	if rec, ok := table.Lookup(typeName); !ok || !rec.Kind.IsContainer() {
		parent = ""
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	for _, method := range childrenOfKind(body, "function_item") {
		methodName := nodeName(method, source)
		if methodName == "" {
			continue
		}
		table.Append(symbols.Record{
			Kind:      symbols.KindImplMethod,
			Name:      methodName,
			Parent:    parent,
			Signature: headerText(method, source),
			StartLine: startLine(method),
			EndLine:   endLine(method),
		})
	}
}
