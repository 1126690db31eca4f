// File: parser_test.go
// Title: Kaleidoscope Parser Unit Tests
// Description: Tests expression precedence and associativity, calls,
//              prototypes, definitions, externs, diagnostics and the
//              propagation of lexical errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

package parser

import (
	"strings"
	"testing"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	mdwlog "github.com/msto63/kaleido/foundation/core/log"
	mdwast "github.com/msto63/kaleido/foundation/kscope/ast"
	"github.com/msto63/kaleido/foundation/kscope/lexer"
	mdwregistry "github.com/msto63/kaleido/foundation/kscope/registry"
)

func newTestParser(t *testing.T, input string, prec map[rune]int) (*Parser, *Collector) {
	t.Helper()

	logger := mdwlog.Discard()
	reg, err := mdwregistry.New(mdwregistry.Options{Logger: logger, Precedence: prec})
	if err != nil {
		t.Fatalf("registry.New failed: %v", err)
	}

	sink := NewCollector()
	buf := lexer.NewBuffer(lexer.New(strings.NewReader(input), lexer.Options{Logger: logger}))
	p, err := New(buf, Options{Logger: logger, Registry: reg, Sink: sink})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := p.Advance(); err != nil {
		t.Fatalf("Priming advance failed: %v", err)
	}
	return p, sink
}

func TestParser_ParseExpression(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"number", "4", "4"},
		{"variable", "x", "x"},
		{"multiplication binds tighter", "1 + 2 * 3", "(1 + (2 * 3))"},
		{"multiplication first", "1 * 2 + 3", "((1 * 2) + 3)"},
		{"subtraction is left associative", "8 - 4 - 2", "((8 - 4) - 2)"},
		{"division is left associative", "8 / 4 / 2", "((8 / 4) / 2)"},
		{"mixed equal precedence", "a + b - c", "((a + b) - c)"},
		{"parentheses group", "(1 + 2) * 3", "((1 + 2) * 3)"},
		{"redundant parentheses", "((x))", "x"},
		{"comparison binds loosest", "a < b + c * d", "(a < (b + (c * d)))"},
		{"climb and return", "a + b * c - d", "((a + (b * c)) - d)"},
		{"call with expression args", "foo(1, 2+3)", "foo(1, (2 + 3))"},
		{"call without args", "foo()", "foo()"},
		{"nested calls", "f(g(x), h())", "f(g(x), h())"},
		{"call in binary", "fib(n-1) + fib(n-2)", "(fib((n - 1)) + fib((n - 2)))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, sink := newTestParser(t, tt.input, nil)

			expr, err := p.ParseExpression()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := expr.String(); got != tt.want {
				t.Errorf("Parsed %q as %s, want %s", tt.input, got, tt.want)
			}
			if sink.Len() != 0 {
				t.Errorf("Expected no diagnostics, got %v", sink.Errors())
			}
			if p.Current().Kind != lexer.KindEOF {
				t.Errorf("Expected all input consumed, current %s", p.Current())
			}
		})
	}
}

func TestParser_ExpressionStopsAtNonOperator(t *testing.T) {
	p, _ := newTestParser(t, "a + b; c", nil)

	expr, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if expr.String() != "(a + b)" {
		t.Errorf("Unexpected expression %s", expr)
	}
	if !p.Current().Is(';') {
		t.Errorf("Expected to stop at ';', got %s", p.Current())
	}
}

func TestParser_UnknownOperatorEndsExpression(t *testing.T) {
	p, sink := newTestParser(t, "a > b", nil)

	expr, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if expr.String() != "a" || !p.Current().Is('>') {
		t.Errorf("Expected a and current '>', got %s and %s", expr, p.Current())
	}
	if sink.Len() != 0 {
		t.Errorf("Expected no diagnostics, got %d", sink.Len())
	}
}

func TestParser_CustomPrecedence(t *testing.T) {
	p, _ := newTestParser(t, "a + b % c", map[rune]int{'%': 50})
	expr, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if expr.String() != "(a + (b % c))" {
		t.Errorf("Unexpected expression %s", expr)
	}

	p, _ = newTestParser(t, "a * b + c", map[rune]int{'+': 60})
	expr, err = p.ParseExpression()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if expr.String() != "(a * (b + c))" {
		t.Errorf("Expected overridden '+' to bind tighter, got %s", expr)
	}
}

func TestParser_NodeTypesAndPositions(t *testing.T) {
	p, _ := newTestParser(t, "x + foo(2)", nil)

	expr, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	bin, ok := expr.(*mdwast.BinaryExpr)
	if !ok || bin.Op != '+' {
		t.Fatalf("Expected BinaryExpr '+', got %T", expr)
	}
	if _, ok := bin.LHS.(*mdwast.VariableExpr); !ok {
		t.Errorf("Expected VariableExpr on the left, got %T", bin.LHS)
	}
	call, ok := bin.RHS.(*mdwast.CallExpr)
	if !ok || call.Callee != "foo" || len(call.Args) != 1 {
		t.Fatalf("Expected call foo/1, got %v", bin.RHS)
	}
	if n, ok := call.Args[0].(*mdwast.NumberExpr); !ok || n.Value != 2 {
		t.Errorf("Expected NumberExpr 2, got %v", call.Args[0])
	}

	if bin.Position() != (mdwast.Position{Line: 1, Column: 1}) {
		t.Errorf("Expected binary at 1:1, got %s", bin.Position())
	}
	if call.Position() != (mdwast.Position{Line: 1, Column: 5}) {
		t.Errorf("Expected call at 1:5, got %s", call.Position())
	}
}

func TestParser_ParseExtern(t *testing.T) {
	p, sink := newTestParser(t, "extern sin(x)", nil)

	proto, err := p.ParseExtern()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if proto.Name != "sin" || len(proto.Params) != 1 || proto.Params[0] != "x" {
		t.Errorf("Unexpected prototype %s", proto)
	}
	if sink.Len() != 0 {
		t.Errorf("Unexpected diagnostics %v", sink.Errors())
	}

	reg := p.Registry()
	if !reg.Seen("sin") {
		t.Error("Expected sin in the registry")
	}
	entry, _ := reg.Entry("sin")
	if entry.Kind != mdwregistry.KindExtern {
		t.Errorf("Expected extern kind, got %s", entry.Kind)
	}
}

func TestParser_ParseDefinition(t *testing.T) {
	p, _ := newTestParser(t, "def fib(n a) fib(n-1) + a", nil)

	fn, err := p.ParseDefinition()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fn.Proto.Name != "fib" || fn.Proto.Arity() != 2 {
		t.Errorf("Unexpected prototype %s", fn.Proto)
	}
	if fn.Body.String() != "(fib((n - 1)) + a)" {
		t.Errorf("Unexpected body %s", fn.Body)
	}
	if fn.Proto.Position() != (mdwast.Position{Line: 1, Column: 5}) {
		t.Errorf("Expected prototype at 1:5, got %s", fn.Proto.Position())
	}

	entry, ok := p.Registry().Entry("fib")
	if !ok || entry.Kind != mdwregistry.KindDef {
		t.Errorf("Expected fib registered as def, got %+v", entry)
	}
}

func TestParser_ParseDefinitionNoParams(t *testing.T) {
	p, _ := newTestParser(t, "def one() 1", nil)

	fn, err := p.ParseDefinition()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fn.Proto.Arity() != 0 || fn.String() != "def one() 1" {
		t.Errorf("Unexpected function %s", fn)
	}
}

func TestParser_ParseTopLevelExpr(t *testing.T) {
	p, _ := newTestParser(t, "1 + 2", nil)

	fn, err := p.ParseTopLevelExpr()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !fn.Proto.IsAnonymous() || fn.Proto.Arity() != 0 {
		t.Errorf("Expected anonymous wrapper, got %s", fn.Proto)
	}
	if fn.Body.String() != "(1 + 2)" {
		t.Errorf("Unexpected body %s", fn.Body)
	}
	if p.Registry().Seen(mdwast.AnonymousName) {
		t.Error("Top-level expressions must not be registered")
	}
}

func TestParser_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parse   func(p *Parser) error
		wantMsg string
		wantTok string
	}{
		{
			name:    "unclosed parenthesis",
			input:   "(1 + 2",
			parse:   parseExpr,
			wantMsg: MsgExpectedCloseParen,
			wantTok: "end of input",
		},
		{
			name:    "bad argument separator",
			input:   "foo(1 2)",
			parse:   parseExpr,
			wantMsg: MsgExpectedArgList,
			wantTok: "2",
		},
		{
			name:    "unknown token",
			input:   ")",
			parse:   parseExpr,
			wantMsg: MsgUnknownToken,
			wantTok: "')'",
		},
		{
			name:    "operator without right operand",
			input:   "1 +",
			parse:   parseExpr,
			wantMsg: MsgUnknownToken,
			wantTok: "end of input",
		},
		{
			name:    "missing function name",
			input:   "def (x) x",
			parse:   parseDef,
			wantMsg: MsgExpectedFuncName,
			wantTok: "'('",
		},
		{
			name:    "keyword as function name",
			input:   "extern def(x)",
			parse:   parseExtern,
			wantMsg: MsgExpectedFuncName,
			wantTok: `"def"`,
		},
		{
			name:    "missing open paren",
			input:   "extern sin x",
			parse:   parseExtern,
			wantMsg: MsgExpectedProtoOpen,
			wantTok: `"x"`,
		},
		{
			name:    "unterminated prototype",
			input:   "def f( x",
			parse:   parseDef,
			wantMsg: MsgExpectedProtoClose,
			wantTok: "end of input",
		},
		{
			name:    "comma in prototype",
			input:   "def f(a, b) a",
			parse:   parseDef,
			wantMsg: MsgExpectedProtoClose,
			wantTok: "','",
		},
		{
			name:    "duplicate parameter",
			input:   "def f(a b a) a",
			parse:   parseDef,
			wantMsg: MsgDuplicateParam,
			wantTok: "')'",
		},
		{
			name:    "definition without body",
			input:   "def f(a)",
			parse:   parseDef,
			wantMsg: MsgUnknownToken,
			wantTok: "end of input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, sink := newTestParser(t, tt.input, nil)

			err := tt.parse(p)
			if err == nil {
				t.Fatal("Expected a syntax error")
			}
			if !mdwerror.HasCode(err, mdwerror.CodeSyntax) {
				t.Errorf("Expected CodeSyntax, got %s", mdwerror.GetCode(err))
			}
			if mdwerror.IsFatal(err) {
				t.Error("Syntax errors must not be fatal")
			}

			reported := sink.Errors()
			if len(reported) != 1 {
				t.Fatalf("Expected exactly one diagnostic, got %d", len(reported))
			}
			if reported[0] != err {
				t.Error("Returned error must be the reported one")
			}
			if reported[0].Message() != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, reported[0].Message())
			}
			if tok, _ := reported[0].Detail("token"); tok != tt.wantTok {
				t.Errorf("Expected token %s, got %v", tt.wantTok, tok)
			}
		})
	}
}

func TestParser_DuplicateParamDetail(t *testing.T) {
	p, _ := newTestParser(t, "extern g(x y x)", nil)

	_, err := p.ParseExtern()
	mdwErr, ok := mdwerror.As(err)
	if !ok {
		t.Fatalf("Expected a structured error, got %v", err)
	}
	if param, _ := mdwErr.Detail("param"); param != "x" {
		t.Errorf("Expected param detail x, got %v", param)
	}
	if expected, _ := mdwErr.Detail("expected"); expected != "unique parameter names" {
		t.Errorf("Expected the standard details to remain, got %v", expected)
	}
}

func TestParser_FailedDefinitionIsNotRegistered(t *testing.T) {
	p, _ := newTestParser(t, "def f(x) (x", nil)

	if _, err := p.ParseDefinition(); err == nil {
		t.Fatal("Expected error")
	}
	if p.Registry().Seen("f") {
		t.Error("A failed definition must not be registered")
	}
}

func TestParser_LexicalErrorPropagates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		parse func(p *Parser) error
	}{
		{"in expression", "1 + 2.3.4", parseExpr},
		{"in call arguments", "foo(1, 1..)", parseExpr},
		{"in definition body", "def f(x) x * 0.1.2", parseDef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, sink := newTestParser(t, tt.input, nil)

			err := tt.parse(p)
			if !mdwerror.HasCode(err, mdwerror.CodeLexical) {
				t.Fatalf("Expected CodeLexical, got %v", err)
			}
			if !mdwerror.IsFatal(err) {
				t.Error("Expected a fatal error")
			}
			if sink.Len() != 0 {
				t.Errorf("Lexical errors must not be reported as syntax errors, got %d", sink.Len())
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	if _, err := New(nil, Options{}); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Expected CodeInvalidInput for nil buffer, got %v", err)
	}

	p, err := New(lexer.NewBuffer(lexer.NewString("1")), Options{Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.Registry() == nil {
		t.Fatal("Expected a default registry")
	}
	if prec, ok := p.Registry().Precedence('*'); !ok || prec != 40 {
		t.Errorf("Expected default precedence table, got %d %v", prec, ok)
	}
}

func TestDescribe(t *testing.T) {
	p, sink := newTestParser(t, "\n  (1", nil)
	if _, err := p.ParseExpression(); err == nil {
		t.Fatal("Expected error")
	}

	got := Describe(sink.Errors()[0])
	if got != "2:5: expected ')' (got end of input)" {
		t.Errorf("Describe() = %q", got)
	}

	plain := mdwerror.New("boom")
	if Describe(plain) != "boom" {
		t.Errorf("Describe() without position = %q", Describe(plain))
	}
}

func TestSinkFunc(t *testing.T) {
	var got []string
	sink := SinkFunc(func(err *mdwerror.Error) { got = append(got, err.Message()) })

	logger := mdwlog.Discard()
	buf := lexer.NewBuffer(lexer.NewString(")"))
	p, err := New(buf, Options{Logger: logger, Sink: sink})
	if err != nil {
		t.Fatal(err)
	}
	_, _ = p.Advance()
	_, _ = p.ParseExpression()

	if len(got) != 1 || got[0] != MsgUnknownToken {
		t.Errorf("Unexpected reports %v", got)
	}
}

func parseExpr(p *Parser) error {
	_, err := p.ParseExpression()
	return err
}

func parseDef(p *Parser) error {
	_, err := p.ParseDefinition()
	return err
}

func parseExtern(p *Parser) error {
	_, err := p.ParseExtern()
	return err
}
