// File: doc.go
// Title: Error Package Documentation
// Description: Package documentation for the structured error type.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

/*
Package error provides the structured error type shared by the lexer, the
parser, the session driver and the configuration loader.

Errors carry a Code, a Severity derived from that code and a details map
with source positions:

	err := mdwerror.New("expected ')'").
		WithCode(mdwerror.CodeSyntax).
		WithDetail("line", 3).
		WithOperation("parser.parseParenExpr")

	if mdwerror.HasCode(err, mdwerror.CodeLexical) {
		// the session cannot continue
	}

HasCode and GetCode walk wrapped chains, so errors stay classifiable after
fmt.Errorf("...: %w", err).
*/
package error
