package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// TokenKind classifies lexical tokens produced by the Tokenizer.
type TokenKind int

const (
	TokenKeyword TokenKind = iota
	TokenIdentifier
	TokenPunct
	TokenBraceOpen
	TokenBraceClose
	TokenLiteral
	TokenComment
)

// Token is one lexical token with its source line and the brace depth at
// which it appears.
type Token struct {
	Kind  TokenKind
	Text  string
	Line  int
	Depth int
}

// Tokenizer walks the leaves of a parse tree in source order and yields them
// as a finite token stream. A tokenizer is consumed by iteration and cannot
// be restarted mid-stream; create a new one from the same tree to re-read.
type Tokenizer struct {
	source []byte
	stack  []*sitter.Node
	depth  int
}

// NewTokenizer creates a token stream over the given tree.
func NewTokenizer(root *sitter.Node, source []byte) *Tokenizer {
	t := &Tokenizer{source: source}
	if root != nil {
		t.stack = []*sitter.Node{root}
	}
	return t
}

// Next returns the next token, or ok=false when the stream is exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	for len(t.stack) > 0 {
		node := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]

		count := int(node.ChildCount())
		if count > 0 {
			for i := count - 1; i >= 0; i-- {
				t.stack = append(t.stack, node.Child(uint(i)))
			}
			continue
		}

		// Zero-width leaves are tree-sitter recovery artifacts, not tokens.
		if node.IsMissing() || node.StartByte() == node.EndByte() {
			continue
		}

		return t.tokenFor(node), true
	}
	return Token{}, false
}

func (t *Tokenizer) tokenFor(node *sitter.Node) Token {
	text := string(t.source[node.StartByte():node.EndByte()])
	tok := Token{
		Text: text,
		Line: int(node.StartPosition().Row) + 1,
	}

	// Braces are matched by node kind, not text: a string_content leaf
	// whose text happens to be "{" is a literal, not a block opener.
	switch {
	case node.Kind() == "{":
		t.depth++
		tok.Kind = TokenBraceOpen
	case node.Kind() == "}":
		tok.Kind = TokenBraceClose
		t.depth--
	case isCommentKind(node.Kind()):
		tok.Kind = TokenComment
	case isLiteralKind(node.Kind()):
		tok.Kind = TokenLiteral
	case isIdentifierKind(node.Kind()):
		tok.Kind = TokenIdentifier
	case node.Kind() == text && isWordToken(text):
		tok.Kind = TokenKeyword
	default:
		tok.Kind = TokenPunct
	}

	tok.Depth = t.depth
	return tok
}

// Depth returns the running brace depth after the last token returned.
func (t *Tokenizer) Depth() int {
	return t.depth
}

// unmatchedOpenLine drains the token stream and returns the line of the
// innermost brace left open, with ok=true when the depth never returns to
// zero.
func unmatchedOpenLine(tok *Tokenizer) (int, bool) {
	var openLines []int
	for {
		t, ok := tok.Next()
		if !ok {
			break
		}
		switch t.Kind {
		case TokenBraceOpen:
			openLines = append(openLines, t.Line)
		case TokenBraceClose:
			if len(openLines) > 0 {
				openLines = openLines[:len(openLines)-1]
			}
		}
	}
	if tok.Depth() == 0 {
		return 0, false
	}
	line := 0
	if len(openLines) > 0 {
		line = openLines[len(openLines)-1]
	}
	return line, true
}

func isIdentifierKind(kind string) bool {
	switch kind {
	case "identifier", "type_identifier", "field_identifier", "property_identifier", "constant":
		return true
	}
	return false
}

func isCommentKind(kind string) bool {
	switch kind {
	case "comment", "line_comment", "block_comment":
		return true
	}
	return false
}

func isLiteralKind(kind string) bool {
	switch kind {
	case "string_literal", "string_content", "string_fragment", "raw_string_literal",
		"integer_literal", "float_literal", "integer", "float", "number",
		"char_literal", "boolean_literal", "true", "false":
		return true
	}
	return false
}

func isWordToken(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && r != '_' {
			return false
		}
	}
	return true
}
