// File: doc.go
// Title: Kaleidoscope AST Package Documentation
// Description: Package documentation for the AST node model.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

/*
Package ast defines the syntax tree produced by the Kaleidoscope parser.

Expressions are a closed set of four node types: NumberExpr, VariableExpr,
BinaryExpr and CallExpr. Every node exclusively owns its children, so the
tree is always acyclic. A Prototype names a function and its parameters,
and a Function pairs a prototype with a body. A top-level expression is
wrapped in a parameterless Function named AnonymousName.

Consumers either type-switch over Expr or implement Visitor:

	switch e := expr.(type) {
	case *ast.NumberExpr:
	case *ast.VariableExpr:
	case *ast.BinaryExpr:
	case *ast.CallExpr:
	}

String renders a fully parenthesized form, for example "(1 + (2 * 3))",
and Tree renders an indented node-per-line form.
*/
package ast
