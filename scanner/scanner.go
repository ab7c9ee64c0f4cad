/*
Package scanner defines an interface for scanners to be used with the parser
of package syntax.

The default implementation is an adapter for lexmachine, a DFA-based lexer
library. Token categories are application-defined; package syntax declares
the categories of the Tailor script language.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/
package scanner

import (
	"fmt"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing"
	"github.com/tailorlang/tailor"
)

// tracer traces with key 'tailor.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("tailor.scanner")
}

// EOF is identical to text/scanner.EOF.
// Generic token types are replicated here for practical reasons.
const (
	EOF     = scanner.EOF
	Ident   = scanner.Ident
	Int     = scanner.Int
	String  = scanner.String
	Comment = scanner.Comment
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() tailor.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the lexmachine
// adapter.
type DefaultToken struct {
	kind   tailor.TokType
	lexeme string
	Val    interface{}
	span   tailor.Span
}

func MakeDefaultToken(typ tailor.TokType, lexeme string, span tailor.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() tailor.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() tailor.Span {
	return t.span
}

// Lexeme is a helper function to receive a string from a token.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
