package parsers

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// treeSitterParser provides the parsing functionality shared by all language
// extractors.
type treeSitterParser struct {
	language *sitter.Language
	lang     string
}

// newTreeSitterParser creates a new tree-sitter parser for the given language.
func newTreeSitterParser(language *sitter.Language, lang string) *treeSitterParser {
	return &treeSitterParser{
		language: language,
		lang:     lang,
	}
}

// Language returns the language name this parser handles.
func (p *treeSitterParser) Language() string {
	return p.lang
}

// newTree parses source into a tree. The caller owns the returned tree and
// must Close it.
func (p *treeSitterParser) newTree(source []byte, filePath string) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Path: filePath, Line: 1, Msg: "failed to parse " + p.lang + " source"}
	}
	return tree, nil
}

// checkSyntax classifies syntax problems in a parsed tree. Unterminated
// strings and comments surface as LexError; everything else, including a
// brace depth that never returns to zero, surfaces as ParseError.
func (p *treeSitterParser) checkSyntax(root *sitter.Node, source []byte, filePath string) error {
	var lexErr, parseErr error

	if root.HasError() {
		walkTree(root, func(n *sitter.Node) bool {
			if lexErr != nil {
				return false
			}
			if n.IsMissing() {
				line := int(n.StartPosition().Row) + 1
				// A missing closing quote is a lexical problem; a missing
				// brace or semicolon is a structural one.
				if isQuoteKind(n.Kind()) {
					lexErr = &LexError{Path: filePath, Line: line, Msg: "unterminated string literal"}
				} else if parseErr == nil {
					parseErr = &ParseError{
						Path: filePath,
						Line: line,
						Msg:  fmt.Sprintf("unterminated block: missing %q", n.Kind()),
					}
				}
				return true
			}
			if n.IsError() {
				line := int(n.StartPosition().Row) + 1
				text := extractNodeText(n, source)
				switch {
				case looksLikeUnterminatedString(text), startsWithQuoteToken(n):
					lexErr = &LexError{Path: filePath, Line: line, Msg: "unterminated string literal"}
				case looksLikeUnterminatedComment(text):
					lexErr = &LexError{Path: filePath, Line: line, Msg: "unterminated block comment"}
				default:
					if parseErr == nil {
						parseErr = &ParseError{Path: filePath, Line: line, Msg: "malformed declaration"}
					}
				}
			}
			return true
		})
	}

	if lexErr != nil {
		return lexErr
	}
	if parseErr != nil {
		return parseErr
	}

	// Brace matching over the token stream. Recovery can paper over a
	// missing closer without leaving an ERROR node, so the depth check runs
	// even for trees that report no error.
	if line, unbalanced := unmatchedOpenLine(NewTokenizer(root, source)); unbalanced {
		return &ParseError{Path: filePath, Line: line, Msg: "unterminated block: brace depth never returns to zero"}
	}

	return nil
}

func looksLikeUnterminatedString(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] != '"' && trimmed[0] != '\'' && trimmed[0] != '`' {
		return false
	}
	quote := trimmed[0]
	return len(trimmed) == 1 || trimmed[len(trimmed)-1] != quote
}

func looksLikeUnterminatedComment(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "/*") && !strings.HasSuffix(trimmed, "*/")
}

func isQuoteKind(kind string) bool {
	switch kind {
	case "\"", "'", "`":
		return true
	}
	// Python and Ruby name their closing quote nodes string_end.
	return strings.HasSuffix(kind, "string_end")
}

// startsWithQuoteToken reports whether an ERROR node's recovery region
// begins at a string opener, which marks the real failure as lexical.
func startsWithQuoteToken(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.StartByte() == child.EndByte() {
			continue
		}
		return isQuoteKind(child.Kind()) || strings.Contains(child.Kind(), "string")
	}
	return false
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// nodeName returns the text of the node's "name" field, or "".
func nodeName(node *sitter.Node, source []byte) string {
	return extractNodeText(node.ChildByFieldName("name"), source)
}

// headerText returns the raw declaration text of a node: everything up to
// the start of its body, or its first line when the grammar exposes no body
// field. Trailing punctuation that belongs to the body delimiter is trimmed.
func headerText(node *sitter.Node, source []byte) string {
	if body := node.ChildByFieldName("body"); body != nil && body.StartByte() > node.StartByte() {
		header := string(source[node.StartByte():body.StartByte()])
		return strings.TrimRight(strings.TrimSpace(header), " \t:")
	}

	text := extractNodeText(node, source)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimRight(strings.TrimSpace(text), " \t;:")
}

// startLine and endLine convert tree-sitter positions to 1-indexed lines.
func startLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

func endLine(node *sitter.Node) int {
	return int(node.EndPosition().Row) + 1
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for
// each node. Returning false from the visitor stops descent into that node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// childrenOfKind returns all direct children with the given kind.
func childrenOfKind(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}
