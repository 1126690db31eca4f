// File: parser.go
// Title: Kaleidoscope Recursive Descent Parser
// Description: Converts the token stream into AST units. Binary operators
//              are parsed by precedence climbing driven by the registry's
//              precedence table. Every syntax error is reported exactly
//              once to the configured sink and then returned.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial parser implementation

package parser

import (
	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	mdwlog "github.com/msto63/kaleido/foundation/core/log"
	mdwast "github.com/msto63/kaleido/foundation/kscope/ast"
	"github.com/msto63/kaleido/foundation/kscope/lexer"
	mdwregistry "github.com/msto63/kaleido/foundation/kscope/registry"
)

// Diagnostic messages
const (
	MsgExpectedCloseParen = "expected ')'"
	MsgExpectedArgList    = "expected ')' or ',' in argument list"
	MsgUnknownToken       = "unknown token when expecting an expression"
	MsgExpectedFuncName   = "expected function name in prototype"
	MsgExpectedProtoOpen  = "expected '(' in prototype"
	MsgExpectedProtoClose = "expected ')' in prototype"
	MsgDuplicateParam     = "duplicate parameter name"
)

// Options configures parser behavior
type Options struct {
	Logger   *mdwlog.Logger
	Registry *mdwregistry.Registry // a fresh default registry when nil
	Sink     Sink                  // a LogSink over Logger when nil
}

// Parser implements recursive descent parsing for Kaleidoscope. It reads
// tokens only through the buffer and never looks further ahead than the
// current token.
type Parser struct {
	buf      *lexer.Buffer
	registry *mdwregistry.Registry
	sink     Sink
	logger   *mdwlog.Logger
}

// New creates a parser over buf. The buffer is not advanced; callers
// prime it with Advance before the first parse call.
func New(buf *lexer.Buffer, opts Options) (*Parser, error) {
	if buf == nil {
		return nil, mdwerror.New("token buffer cannot be nil").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("parser.New")
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Registry == nil {
		reg, err := mdwregistry.New(mdwregistry.Options{Logger: opts.Logger})
		if err != nil {
			return nil, err
		}
		opts.Registry = reg
	}
	if opts.Sink == nil {
		opts.Sink = NewLogSink(opts.Logger)
	}

	return &Parser{
		buf:      buf,
		registry: opts.Registry,
		sink:     opts.Sink,
		logger:   opts.Logger.WithField("component", "kscope-parser"),
	}, nil
}

// Registry returns the registry the parser consults and updates
func (p *Parser) Registry() *mdwregistry.Registry {
	return p.registry
}

// Current returns the current token
func (p *Parser) Current() lexer.Token {
	return p.buf.Current()
}

// Advance moves to the next token. The only error it returns is a fatal
// lexer error.
func (p *Parser) Advance() (lexer.Token, error) {
	return p.buf.Advance()
}

// ParseExpression parses
//
//	expression ::= primary (binop primary)*
func (p *Parser) ParseExpression() (mdwast.Expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(0, lhs)
}

// ParsePrototype parses
//
//	prototype ::= Identifier '(' Identifier* ')'
//
// with the current token on the function name.
func (p *Parser) ParsePrototype() (*mdwast.Prototype, error) {
	nameTok := p.Current()
	if nameTok.Kind != lexer.KindIdentifier {
		return nil, p.syntaxError(MsgExpectedFuncName, "identifier")
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	if !p.Current().Is('(') {
		return nil, p.syntaxError(MsgExpectedProtoOpen, "'('")
	}

	var params []string
	for {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.Current().Kind != lexer.KindIdentifier {
			break
		}
		params = append(params, p.Current().Text)
	}

	if !p.Current().Is(')') {
		return nil, p.syntaxError(MsgExpectedProtoClose, "')'")
	}

	proto := &mdwast.Prototype{
		Name:   nameTok.Text,
		Params: params,
		Pos:    position(nameTok),
	}
	if dup, ok := proto.DuplicateParam(); ok {
		return nil, p.syntaxError(MsgDuplicateParam, "unique parameter names", map[string]interface{}{"param": dup})
	}

	// eat ')'
	if err := p.advance(); err != nil {
		return nil, err
	}

	return proto, nil
}

// ParseDefinition parses
//
//	definition ::= 'def' prototype expression
//
// and registers the prototype as a definition.
func (p *Parser) ParseDefinition() (*mdwast.Function, error) {
	// eat 'def'
	if err := p.advance(); err != nil {
		return nil, err
	}

	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if p.registry.IsRedefinition(proto.Name) {
		p.logger.Warn("Function redefined", mdwlog.Fields{
			"name": proto.Name,
			"line": proto.Pos.Line,
		})
	}
	if err := p.registry.Register(proto, mdwregistry.KindDef); err != nil {
		return nil, err
	}

	fn := &mdwast.Function{Proto: proto, Body: body}
	p.logger.Debug("Parsed definition", mdwlog.Fields{"name": proto.Name, "arity": proto.Arity()})
	return fn, nil
}

// ParseExtern parses
//
//	external ::= 'extern' prototype
//
// and registers the prototype as an external declaration.
func (p *Parser) ParseExtern() (*mdwast.Prototype, error) {
	// eat 'extern'
	if err := p.advance(); err != nil {
		return nil, err
	}

	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}

	if err := p.registry.Register(proto, mdwregistry.KindExtern); err != nil {
		return nil, err
	}

	p.logger.Debug("Parsed extern", mdwlog.Fields{"name": proto.Name, "arity": proto.Arity()})
	return proto, nil
}

// ParseTopLevelExpr parses an expression and wraps it in an anonymous,
// parameterless function
func (p *Parser) ParseTopLevelExpr() (*mdwast.Function, error) {
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return mdwast.NewAnonymous(body), nil
}

// parsePrimary parses
//
//	primary ::= identifierexpr | numberexpr | parenexpr
func (p *Parser) parsePrimary() (mdwast.Expr, error) {
	tok := p.Current()

	switch {
	case tok.Kind == lexer.KindIdentifier:
		return p.parseIdentifierExpr()
	case tok.Kind == lexer.KindNumber:
		return p.parseNumberExpr()
	case tok.Is('('):
		return p.parseParenExpr()
	default:
		return nil, p.syntaxError(MsgUnknownToken, "expression")
	}
}

// parseNumberExpr parses a numeric literal
func (p *Parser) parseNumberExpr() (mdwast.Expr, error) {
	tok := p.Current()
	expr := &mdwast.NumberExpr{Value: tok.Value, Pos: position(tok)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseParenExpr parses '(' expression ')'. Parentheses only group; they
// produce no node of their own.
func (p *Parser) parseParenExpr() (mdwast.Expr, error) {
	// eat '('
	if err := p.advance(); err != nil {
		return nil, err
	}

	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if !p.Current().Is(')') {
		return nil, p.syntaxError(MsgExpectedCloseParen, "')'")
	}

	// eat ')'
	if err := p.advance(); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseIdentifierExpr parses
//
//	identifierexpr ::= Identifier | Identifier '(' [expression (',' expression)*] ')'
func (p *Parser) parseIdentifierExpr() (mdwast.Expr, error) {
	tok := p.Current()

	if err := p.advance(); err != nil {
		return nil, err
	}

	if !p.Current().Is('(') {
		return &mdwast.VariableExpr{Name: tok.Text, Pos: position(tok)}, nil
	}

	// eat '('
	if err := p.advance(); err != nil {
		return nil, err
	}

	var args []mdwast.Expr
	if !p.Current().Is(')') {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.Current().Is(')') {
				break
			}
			if !p.Current().Is(',') {
				return nil, p.syntaxError(MsgExpectedArgList, "')' or ','")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	// eat ')'
	if err := p.advance(); err != nil {
		return nil, err
	}

	return &mdwast.CallExpr{Callee: tok.Text, Args: args, Pos: position(tok)}, nil
}

// parseBinOpRHS parses a sequence of (binop primary) pairs whose operators
// bind at least as tightly as exprPrec. An operator is folded into lhs
// unless the next operator binds strictly tighter, which makes equal
// precedence left-associative.
func (p *Parser) parseBinOpRHS(exprPrec int, lhs mdwast.Expr) (mdwast.Expr, error) {
	for {
		tokPrec := p.tokenPrecedence()
		if tokPrec < exprPrec {
			return lhs, nil
		}

		op := p.Current().Char
		if err := p.advance(); err != nil {
			return nil, err
		}

		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		if nextPrec := p.tokenPrecedence(); tokPrec < nextPrec {
			rhs, err = p.parseBinOpRHS(tokPrec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &mdwast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs, Pos: lhs.Position()}
	}
}

// tokenPrecedence returns the precedence of the current token, or -1 when
// it is not a binary operator
func (p *Parser) tokenPrecedence() int {
	tok := p.Current()
	if tok.Kind != lexer.KindChar {
		return -1
	}
	prec, ok := p.registry.Precedence(tok.Char)
	if !ok {
		return -1
	}
	return prec
}

func (p *Parser) advance() error {
	_, err := p.buf.Advance()
	return err
}

// syntaxError builds a syntax error at the current token, reports it to
// the sink and returns it. Extra details are given as key/value pairs.
func (p *Parser) syntaxError(message, expected string, extra ...map[string]interface{}) *mdwerror.Error {
	tok := p.Current()

	err := mdwerror.New(message).
		WithCode(mdwerror.CodeSyntax).
		WithOperation("parser.Parse").
		WithDetail("line", tok.Line).
		WithDetail("column", tok.Col).
		WithDetail("token", tok.Describe()).
		WithDetail("expected", expected)
	for _, details := range extra {
		err = err.WithDetails(details)
	}

	p.sink.Report(err)
	return err
}

func position(tok lexer.Token) mdwast.Position {
	return mdwast.Position{Line: tok.Line, Column: tok.Col}
}
