// File: token.go
// Title: Kaleidoscope Token Definitions
// Description: Defines the token kinds produced by the lexer. A token is
//              either one of the fixed kinds or a single literal character
//              such as an operator, a parenthesis, a comma or a semicolon.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial token definitions

package lexer

import (
	"fmt"
	"strconv"
)

// Kind represents the kind of a lexical token
type Kind int

const (
	KindEOF Kind = iota
	KindDef
	KindExtern
	KindIdentifier
	KindNumber
	KindChar // any other single character
)

// Keywords recognised by the lexer
const (
	KeywordDef    = "def"
	KeywordExtern = "extern"
)

// String returns a string representation of the token kind
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindDef:
		return "DEF"
	case KindExtern:
		return "EXTERN"
	case KindIdentifier:
		return "IDENTIFIER"
	case KindNumber:
		return "NUMBER"
	case KindChar:
		return "CHAR"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token with position information
type Token struct {
	Kind  Kind
	Char  rune    // set for KindChar
	Text  string  // identifier text, keyword or raw number text
	Value float64 // set for KindNumber
	Line  int     // 1-based
	Col   int     // 1-based
}

// Is reports whether the token is the literal character ch
func (t Token) Is(ch rune) bool {
	return t.Kind == KindChar && t.Char == ch
}

// Describe returns the token as it would be quoted in a diagnostic
func (t Token) Describe() string {
	switch t.Kind {
	case KindEOF:
		return "end of input"
	case KindChar:
		return strconv.QuoteRune(t.Char)
	case KindNumber:
		return t.Text
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Kind {
	case KindEOF:
		return "EOF"
	case KindDef, KindExtern:
		return t.Kind.String()
	case KindIdentifier:
		return fmt.Sprintf("IDENTIFIER(%s)", t.Text)
	case KindNumber:
		return fmt.Sprintf("NUMBER(%s)", strconv.FormatFloat(t.Value, 'g', -1, 64))
	default:
		return fmt.Sprintf("CHAR(%c)", t.Char)
	}
}

// lookupIdent classifies identifier-shaped text
func lookupIdent(ident string) Kind {
	switch ident {
	case KeywordDef:
		return KindDef
	case KeywordExtern:
		return KindExtern
	default:
		return KindIdentifier
	}
}
