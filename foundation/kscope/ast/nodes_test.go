// File: nodes_test.go
// Title: Kaleidoscope AST Unit Tests
// Description: Tests node string forms, prototype validation, traversal
//              helpers and the tree printer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

package ast

import (
	"reflect"
	"strings"
	"testing"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
)

func num(v float64) *NumberExpr { return &NumberExpr{Value: v} }

func variable(name string) *VariableExpr { return &VariableExpr{Name: name} }

func bin(op rune, lhs, rhs Expr) *BinaryExpr { return &BinaryExpr{Op: op, LHS: lhs, RHS: rhs} }

func TestExpr_String(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"number", num(1.5), "1.5"},
		{"integral number", num(3), "3"},
		{"variable", variable("x"), "x"},
		{"nested binary", bin('+', num(1), bin('*', num(2), num(3))), "(1 + (2 * 3))"},
		{"call without args", &CallExpr{Callee: "foo"}, "foo()"},
		{"call with args", &CallExpr{Callee: "foo", Args: []Expr{num(1), bin('+', num(2), num(3))}}, "foo(1, (2 + 3))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrototype(t *testing.T) {
	proto := &Prototype{Name: "sin", Params: []string{"x"}, Pos: Position{Line: 1, Column: 8}}

	if proto.String() != "sin(x)" {
		t.Errorf("Unexpected String() %q", proto.String())
	}
	if proto.Arity() != 1 {
		t.Errorf("Expected arity 1, got %d", proto.Arity())
	}
	if proto.IsAnonymous() {
		t.Error("sin must not be anonymous")
	}
	if proto.Position().String() != "1:8" {
		t.Errorf("Unexpected position %s", proto.Position())
	}
}

func TestPrototype_Validate(t *testing.T) {
	tests := []struct {
		name    string
		proto   *Prototype
		wantErr bool
	}{
		{"valid", &Prototype{Name: "f", Params: []string{"a", "b"}}, false},
		{"no params", &Prototype{Name: "f"}, false},
		{"missing name", &Prototype{Params: []string{"a"}}, true},
		{"duplicate param", &Prototype{Name: "f", Params: []string{"a", "b", "a"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.proto.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
				t.Errorf("Expected CodeInvalidInput, got %s", mdwerror.GetCode(err))
			}
		})
	}
}

func TestFunction(t *testing.T) {
	fn := &Function{
		Proto: &Prototype{Name: "add", Params: []string{"a", "b"}},
		Body:  bin('+', variable("a"), variable("b")),
	}
	if fn.String() != "def add(a b) (a + b)" {
		t.Errorf("Unexpected String() %q", fn.String())
	}
	if err := fn.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if err := (&Function{Proto: &Prototype{Name: "f"}}).Validate(); err == nil {
		t.Error("Expected error for missing body")
	}
}

func TestNewAnonymous(t *testing.T) {
	body := &NumberExpr{Value: 4, Pos: Position{Line: 2, Column: 3}}
	fn := NewAnonymous(body)

	if !fn.Proto.IsAnonymous() || fn.Proto.Name != AnonymousName {
		t.Errorf("Expected anonymous prototype, got %s", fn.Proto.Name)
	}
	if fn.Proto.Arity() != 0 {
		t.Errorf("Expected no params, got %v", fn.Proto.Params)
	}
	if fn.Position() != body.Pos {
		t.Errorf("Expected position %s, got %s", body.Pos, fn.Position())
	}
	if fn.String() != "4" {
		t.Errorf("Expected body-only String(), got %q", fn.String())
	}
}

func TestInspect_SourceOrder(t *testing.T) {
	expr := &CallExpr{Callee: "f", Args: []Expr{bin('-', variable("a"), num(1)), variable("b")}}

	var visited []string
	Inspect(expr, func(e Expr) bool {
		visited = append(visited, e.String())
		return true
	})

	want := []string{"f((a - 1), b)", "(a - 1)", "a", "1", "b"}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("Inspect order = %v, want %v", visited, want)
	}
}

func TestInspect_Prune(t *testing.T) {
	expr := bin('+', &CallExpr{Callee: "g", Args: []Expr{variable("x")}}, variable("y"))

	count := 0
	Inspect(expr, func(e Expr) bool {
		count++
		_, isCall := e.(*CallExpr)
		return !isCall
	})
	if count != 3 {
		t.Errorf("Expected 3 visited nodes with pruning, got %d", count)
	}
}

func TestCalleesAndVariables(t *testing.T) {
	expr := bin('+',
		&CallExpr{Callee: "fib", Args: []Expr{bin('-', variable("n"), num(1))}},
		&CallExpr{Callee: "fib", Args: []Expr{&CallExpr{Callee: "abs", Args: []Expr{variable("m")}}}},
	)

	if got := Callees(expr); !reflect.DeepEqual(got, []string{"abs", "fib"}) {
		t.Errorf("Callees() = %v", got)
	}
	if got := Variables(expr); !reflect.DeepEqual(got, []string{"m", "n"}) {
		t.Errorf("Variables() = %v", got)
	}
	if got := Callees(num(1)); len(got) != 0 {
		t.Errorf("Expected no callees, got %v", got)
	}
}

func TestTree(t *testing.T) {
	expr := bin('+', num(1), &CallExpr{Callee: "foo", Args: []Expr{variable("x")}})

	want := strings.Join([]string{
		"Binary '+'",
		"  Number 1",
		"  Call foo/1",
		"    Variable x",
		"",
	}, "\n")
	if got := Tree(expr); got != want {
		t.Errorf("Tree() =\n%s\nwant\n%s", got, want)
	}
}

func TestFunctionTree(t *testing.T) {
	fn := &Function{Proto: &Prototype{Name: "id", Params: []string{"x"}}, Body: variable("x")}
	if got := FunctionTree(fn); got != "Function id(x)\n  Variable x\n" {
		t.Errorf("Unexpected tree %q", got)
	}

	anon := NewAnonymous(num(2))
	if got := FunctionTree(anon); got != "TopLevel\n  Number 2\n" {
		t.Errorf("Unexpected tree %q", got)
	}
}

type numberCounter struct {
	BaseVisitor
	count int
}

func (nc *numberCounter) VisitNumber(expr *NumberExpr) interface{} {
	nc.count++
	return nil
}

func TestBaseVisitor_Embedding(t *testing.T) {
	nc := &numberCounter{}
	num(1).Accept(nc)
	num(2).Accept(nc)
	if nc.count != 2 {
		t.Errorf("Expected 2 numbers, got %d", nc.count)
	}

	// BaseVisitor alone does not descend
	bin('+', num(1), &CallExpr{Callee: "f", Args: []Expr{variable("x")}}).Accept(&BaseVisitor{})
}

func TestWalk_ReachesNestedNodes(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want int
	}{
		{"single number", num(4), 1},
		{"number inside call inside binary", bin('+', num(1), &CallExpr{Callee: "f", Args: []Expr{num(2)}}), 2},
		{"deep left spine", bin('-', bin('-', num(8), num(4)), num(2)), 3},
		{"no numbers", &CallExpr{Callee: "g", Args: []Expr{variable("x")}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nc := &numberCounter{}
			Walk(nc, tt.expr)
			if nc.count != tt.want {
				t.Errorf("Expected %d numbers in %s, got %d", tt.want, tt.expr, nc.count)
			}
		})
	}
}
