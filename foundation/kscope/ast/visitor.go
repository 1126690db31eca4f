// File: visitor.go
// Title: Kaleidoscope AST Visitor and Traversal
// Description: Implements the visitor pattern over expression nodes, a
//              depth-first Inspect helper and an indented tree printer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial visitor implementation

package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Visitor interface for traversing expression nodes
type Visitor interface {
	VisitNumber(expr *NumberExpr) interface{}
	VisitVariable(expr *VariableExpr) interface{}
	VisitBinary(expr *BinaryExpr) interface{}
	VisitCall(expr *CallExpr) interface{}
}

// BaseVisitor returns nil for every node and does not descend. Embed it in
// concrete visitors to only override needed methods, and use Walk to reach
// nested nodes.
type BaseVisitor struct{}

func (bv *BaseVisitor) VisitNumber(expr *NumberExpr) interface{} {
	return nil
}

func (bv *BaseVisitor) VisitVariable(expr *VariableExpr) interface{} {
	return nil
}

func (bv *BaseVisitor) VisitBinary(expr *BinaryExpr) interface{} {
	return nil
}

func (bv *BaseVisitor) VisitCall(expr *CallExpr) interface{} {
	return nil
}

// Walk calls v for expr and every node below it, depth-first in source
// order
func Walk(v Visitor, expr Expr) {
	Inspect(expr, func(e Expr) bool {
		e.Accept(v)
		return true
	})
}

// Inspect traverses expr depth-first in source order, calling fn for each
// node. Children are skipped when fn returns false.
func Inspect(expr Expr, fn func(Expr) bool) {
	if expr == nil || !fn(expr) {
		return
	}

	switch e := expr.(type) {
	case *NumberExpr, *VariableExpr:
	case *BinaryExpr:
		Inspect(e.LHS, fn)
		Inspect(e.RHS, fn)
	case *CallExpr:
		for _, arg := range e.Args {
			Inspect(arg, fn)
		}
	default:
		panic(fmt.Sprintf("ast: unexpected expression type %T", expr))
	}
}

// calleeCollector records the callee of every call node
type calleeCollector struct {
	BaseVisitor
	names map[string]struct{}
}

func (c *calleeCollector) VisitCall(expr *CallExpr) interface{} {
	c.names[expr.Callee] = struct{}{}
	return nil
}

// Callees returns the distinct names of all functions called in expr,
// sorted
func Callees(expr Expr) []string {
	collector := &calleeCollector{names: make(map[string]struct{})}
	Walk(collector, expr)

	names := make([]string, 0, len(collector.names))
	for name := range collector.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variables returns the distinct variable names referenced in expr, sorted
func Variables(expr Expr) []string {
	set := make(map[string]struct{})
	Inspect(expr, func(e Expr) bool {
		if v, ok := e.(*VariableExpr); ok {
			set[v.Name] = struct{}{}
		}
		return true
	})

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TreeVisitor renders an expression as an indented tree, one node per line
type TreeVisitor struct {
	buffer strings.Builder
	indent int
}

// NewTreeVisitor creates a new tree visitor
func NewTreeVisitor() *TreeVisitor {
	return &TreeVisitor{}
}

// String returns the built tree
func (tv *TreeVisitor) String() string {
	return tv.buffer.String()
}

// Reset clears the internal buffer
func (tv *TreeVisitor) Reset() {
	tv.buffer.Reset()
	tv.indent = 0
}

func (tv *TreeVisitor) line(format string, args ...interface{}) {
	tv.buffer.WriteString(strings.Repeat("  ", tv.indent))
	tv.buffer.WriteString(fmt.Sprintf(format, args...))
	tv.buffer.WriteByte('\n')
}

func (tv *TreeVisitor) VisitNumber(expr *NumberExpr) interface{} {
	tv.line("Number %s", expr)
	return nil
}

func (tv *TreeVisitor) VisitVariable(expr *VariableExpr) interface{} {
	tv.line("Variable %s", expr.Name)
	return nil
}

func (tv *TreeVisitor) VisitBinary(expr *BinaryExpr) interface{} {
	tv.line("Binary '%c'", expr.Op)
	tv.indent++
	expr.LHS.Accept(tv)
	expr.RHS.Accept(tv)
	tv.indent--
	return nil
}

func (tv *TreeVisitor) VisitCall(expr *CallExpr) interface{} {
	tv.line("Call %s/%d", expr.Callee, len(expr.Args))
	tv.indent++
	for _, arg := range expr.Args {
		arg.Accept(tv)
	}
	tv.indent--
	return nil
}

// Tree returns the indented tree form of expr
func Tree(expr Expr) string {
	tv := NewTreeVisitor()
	if expr != nil {
		expr.Accept(tv)
	}
	return tv.String()
}

// FunctionTree returns the tree form of a function: its prototype line
// followed by the indented body
func FunctionTree(fn *Function) string {
	tv := NewTreeVisitor()
	if fn.Proto.IsAnonymous() {
		tv.line("TopLevel")
	} else {
		tv.line("Function %s", fn.Proto)
	}
	tv.indent++
	if fn.Body != nil {
		fn.Body.Accept(tv)
	}
	return tv.String()
}
