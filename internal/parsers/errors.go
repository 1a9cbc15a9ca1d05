package parsers

import "fmt"

// LexError reports a malformed token stream, e.g. an unterminated string or
// block comment. It is fatal for the file being extracted.
type LexError struct {
	Path string
	Line int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s:%d: lex error: %s", e.Path, e.Line, e.Msg)
}

// ParseError reports an unterminated or malformed declaration block, e.g. a
// brace depth that never returns to zero. It is fatal for the file being
// extracted.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: parse error: %s", e.Path, e.Line, e.Msg)
}
