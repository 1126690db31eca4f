// File: nodes.go
// Title: Kaleidoscope AST Node Definitions
// Description: Defines the expression nodes, prototypes and functions
//              produced by the parser. Expressions form a closed set:
//              only the node types in this file implement Expr.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
)

// AnonymousName is the name given to the function that wraps a top-level
// expression. It contains characters the lexer never accepts in an
// identifier, so it cannot collide with a user-defined function.
const AnonymousName = "__anon_expr"

// Node represents the base interface for all AST nodes
type Node interface {
	// String returns a source-like representation of the node
	String() string

	// Position returns the position of the node's first token
	Position() Position
}

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based
	Column int // 1-based
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Expr is the closed sum of expression nodes
type Expr interface {
	Node

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	exprNode() // marker method
}

// NumberExpr is a numeric literal
type NumberExpr struct {
	Value float64
	Pos   Position
}

// VariableExpr is a reference to a named variable
type VariableExpr struct {
	Name string
	Pos  Position
}

// BinaryExpr applies a binary operator to two operands
type BinaryExpr struct {
	Op  rune
	LHS Expr
	RHS Expr
	Pos Position // position of the left operand
}

// CallExpr is a function call
type CallExpr struct {
	Callee string
	Args   []Expr
	Pos    Position
}

// Prototype is a function signature: a name and its parameter names in
// declaration order
type Prototype struct {
	Name   string
	Params []string
	Pos    Position
}

// Function is a prototype together with its body expression
type Function struct {
	Proto *Prototype
	Body  Expr
}

// NumberExpr

func (n *NumberExpr) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *NumberExpr) Position() Position { return n.Pos }

func (n *NumberExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitNumber(n)
}

func (n *NumberExpr) exprNode() {}

// VariableExpr

func (v *VariableExpr) String() string { return v.Name }

func (v *VariableExpr) Position() Position { return v.Pos }

func (v *VariableExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitVariable(v)
}

func (v *VariableExpr) exprNode() {}

// BinaryExpr

// String fully parenthesizes the expression so that grouping is explicit
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %c %s)", exprString(b.LHS), b.Op, exprString(b.RHS))
}

func (b *BinaryExpr) Position() Position { return b.Pos }

func (b *BinaryExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitBinary(b)
}

func (b *BinaryExpr) exprNode() {}

// CallExpr

func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = exprString(arg)
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}

func (c *CallExpr) Position() Position { return c.Pos }

func (c *CallExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitCall(c)
}

func (c *CallExpr) exprNode() {}

// Prototype

// String returns the prototype as it is written in source: name(a b)
func (p *Prototype) String() string {
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(p.Params, " "))
}

func (p *Prototype) Position() Position { return p.Pos }

// Arity returns the number of parameters
func (p *Prototype) Arity() int {
	return len(p.Params)
}

// IsAnonymous reports whether the prototype wraps a top-level expression
func (p *Prototype) IsAnonymous() bool {
	return p.Name == AnonymousName
}

// DuplicateParam returns the first parameter name that occurs twice
func (p *Prototype) DuplicateParam() (string, bool) {
	seen := make(map[string]struct{}, len(p.Params))
	for _, param := range p.Params {
		if _, ok := seen[param]; ok {
			return param, true
		}
		seen[param] = struct{}{}
	}
	return "", false
}

// Validate checks that the prototype has a name and unique parameters
func (p *Prototype) Validate() error {
	if p.Name == "" {
		return mdwerror.New("prototype has no name").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("ast.Prototype.Validate")
	}
	if dup, ok := p.DuplicateParam(); ok {
		return mdwerror.Newf("duplicate parameter name %q in %s", dup, p.Name).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("ast.Prototype.Validate").
			WithDetail("param", dup)
	}
	return nil
}

// Function

// NewAnonymous wraps a top-level expression in a parameterless function
func NewAnonymous(body Expr) *Function {
	var pos Position
	if body != nil {
		pos = body.Position()
	}
	return &Function{
		Proto: &Prototype{Name: AnonymousName, Pos: pos},
		Body:  body,
	}
}

// String returns "def name(a b) body"; an anonymous function is shown as
// its body only
func (f *Function) String() string {
	if f.Proto == nil {
		return exprString(f.Body)
	}
	if f.Proto.IsAnonymous() {
		return exprString(f.Body)
	}
	return fmt.Sprintf("def %s %s", f.Proto, exprString(f.Body))
}

func (f *Function) Position() Position {
	if f.Proto == nil {
		return Position{}
	}
	return f.Proto.Pos
}

// Validate checks the prototype and that a body is present
func (f *Function) Validate() error {
	if f.Proto == nil {
		return mdwerror.New("function has no prototype").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("ast.Function.Validate")
	}
	if err := f.Proto.Validate(); err != nil {
		return err
	}
	if f.Body == nil {
		return mdwerror.Newf("function %s has no body", f.Proto.Name).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("ast.Function.Validate")
	}
	return nil
}

func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}
