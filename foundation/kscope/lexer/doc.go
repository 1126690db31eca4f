// File: doc.go
// Title: Kaleidoscope Lexer Package Documentation
// Description: Package documentation for the lexer and token buffer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

/*
Package lexer turns Kaleidoscope source text into tokens.

Tokens are either one of the fixed kinds (end of input, the def and extern
keywords, identifiers, numbers) or a single literal character. Whitespace
is skipped, '#' starts a comment that runs to the end of the line, and a
number with more than one decimal point is a fatal lexical error carrying
mdwerror.CodeLexical. After a fatal error the lexer keeps returning it.

Buffer gives the parser one token of lookahead:

	buf := lexer.NewBuffer(lexer.NewString("def id(x) x"))
	tok, err := buf.Advance()
*/
package lexer
