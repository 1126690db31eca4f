// File: doc.go
// Title: Kaleidoscope Front End Package Documentation
// Description: Package documentation for the session driver.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

/*
Package kscope is the entry point to the Kaleidoscope front end.

A Session reads one input, parses definitions, extern declarations and
top-level expressions, and hands each of them to a Handler:

	s, err := kscope.NewSession(os.Stdin, kscope.Options{})
	if err != nil {
		return err
	}
	stats, err := s.Run(ctx, kscope.HandlerFuncs{
		Definition: func(fn *ast.Function) error { return backend.Emit(fn) },
	})

Syntax errors are reported to the configured sink and the session skips
one token and carries on. A lexical error, such as a number with two
decimal points, ends the session: Run returns it with
mdwerror.CodeLexical.

The subpackages hold the pieces: lexer, ast, parser and registry.
*/
package kscope
