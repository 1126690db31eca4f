// File: doc.go
// Title: Kaleidoscope Parser Package Documentation
// Description: Package documentation for the parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

/*
Package parser implements the Kaleidoscope grammar:

	primary    ::= Identifier ['(' [expression (',' expression)*] ')']
	             | Number
	             | '(' expression ')'
	expression ::= primary (binop primary)*
	prototype  ::= Identifier '(' Identifier* ')'
	definition ::= 'def' prototype expression
	external   ::= 'extern' prototype
	toplevel   ::= expression

Binary operators are parsed by precedence climbing using the table held
by the registry. Operators of equal precedence associate to the left.

A parse function that fails returns a nil result and a *mdwerror.Error.
Syntax errors carry mdwerror.CodeSyntax and have already been reported to
the Sink when they are returned; callers must not report them again.
Lexical errors carry mdwerror.CodeLexical, are never reported by the
parser and leave the lexer unusable.

The parser never consumes tokens beyond the construct it parsed, so the
caller decides how to recover. The session driver skips one token.
*/
package parser
