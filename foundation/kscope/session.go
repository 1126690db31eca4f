// File: session.go
// Title: Kaleidoscope Parsing Session
// Description: Drives the lexer and parser over one input, dispatching each
//              top-level construct to a Handler. A syntax error skips one
//              token and parsing continues; a lexical error ends the
//              session.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial session driver

package kscope

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	mdwlog "github.com/msto63/kaleido/foundation/core/log"
	"github.com/msto63/kaleido/foundation/kscope/lexer"
	"github.com/msto63/kaleido/foundation/kscope/parser"
	mdwregistry "github.com/msto63/kaleido/foundation/kscope/registry"
)

// Options configures a session
type Options struct {
	Logger *mdwlog.Logger

	// Registry is shared with the caller when set. Otherwise the session
	// creates its own from Precedence.
	Registry   *mdwregistry.Registry
	Precedence map[rune]int

	// Sink receives syntax errors. Defaults to logging them.
	Sink parser.Sink

	// Prompt is called whenever the session is ready for the next
	// top-level construct
	Prompt func()

	// MaxInputBytes rejects larger inputs with a fatal error; zero means
	// unlimited
	MaxInputBytes int64
}

// Stats counts what a session has processed
type Stats struct {
	Definitions   int
	Externs       int
	TopLevel      int
	SyntaxErrors  int
	HandlerErrors int
}

// Units returns the number of successfully parsed units
func (s Stats) Units() int {
	return s.Definitions + s.Externs + s.TopLevel
}

// Session owns the lexer, token buffer, parser and registry for a single
// input. It is not safe for concurrent use.
type Session struct {
	id       string
	parser   *parser.Parser
	registry *mdwregistry.Registry
	logger   *mdwlog.Logger
	prompt   func()
	stats    Stats
}

// NewSession creates a session reading from r
func NewSession(r io.Reader, opts Options) (*Session, error) {
	if r == nil {
		return nil, mdwerror.New("input reader cannot be nil").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("kscope.NewSession")
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	id := uuid.NewString()
	logger := opts.Logger.WithField("session", id)

	reg := opts.Registry
	if reg == nil {
		var err error
		reg, err = mdwregistry.New(mdwregistry.Options{Logger: logger, Precedence: opts.Precedence})
		if err != nil {
			return nil, err
		}
	}

	if opts.MaxInputBytes > 0 {
		r = newLimitedReader(r, opts.MaxInputBytes)
	}

	lex := lexer.New(r, lexer.Options{Logger: logger})
	p, err := parser.New(lexer.NewBuffer(lex), parser.Options{
		Logger:   logger,
		Registry: reg,
		Sink:     opts.Sink,
	})
	if err != nil {
		return nil, err
	}

	prompt := opts.Prompt
	if prompt == nil {
		prompt = func() {}
	}

	return &Session{
		id:       id,
		parser:   p,
		registry: reg,
		logger:   logger.WithField("component", "kscope-session"),
		prompt:   prompt,
	}, nil
}

// ID returns the session's unique id, attached to every log entry
func (s *Session) ID() string {
	return s.id
}

// Registry returns the registry used by the session
func (s *Session) Registry() *mdwregistry.Registry {
	return s.registry
}

// Stats returns the counters accumulated so far
func (s *Session) Stats() Stats {
	return s.stats
}

// Run parses
//
//	top ::= definition | external | expression | ';'
//
// until end of input. It returns nil at end of input and a non-nil error
// only for a fatal lexical or read error or when ctx is done. Cancellation
// is observed between top-level constructs.
func (s *Session) Run(ctx context.Context, h Handler) (Stats, error) {
	timer := s.logger.StartTimer("session run")
	defer timer.Stop()

	s.prompt()
	if _, err := s.parser.Advance(); err != nil {
		return s.stats, s.fatal(err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return s.stats, mdwerror.Wrap(err, "session cancelled").
				WithCode(mdwerror.CodeInternal).
				WithOperation("kscope.Session.Run")
		}

		tok := s.parser.Current()

		var err error
		switch {
		case tok.Kind == lexer.KindEOF:
			s.logger.Debug("Session finished", mdwlog.Fields{
				"definitions":   s.stats.Definitions,
				"externs":       s.stats.Externs,
				"toplevel":      s.stats.TopLevel,
				"syntaxErrors":  s.stats.SyntaxErrors,
				"handlerErrors": s.stats.HandlerErrors,
			})
			return s.stats, nil

		case tok.Is(';'):
			_, err = s.parser.Advance()

		case tok.Kind == lexer.KindDef:
			err = s.handleDefinition(h)

		case tok.Kind == lexer.KindExtern:
			err = s.handleExtern(h)

		default:
			err = s.handleTopLevel(h)
		}

		if err != nil {
			return s.stats, s.fatal(err)
		}
		if s.parser.Current().Kind != lexer.KindEOF {
			s.prompt()
		}
	}
}

func (s *Session) handleDefinition(h Handler) error {
	fn, err := s.parser.ParseDefinition()
	if err != nil {
		return s.skipAfterSyntaxError(err)
	}

	s.stats.Definitions++
	s.dispatch(UnitDefinition, fn.Proto.Name, h.HandleDefinition(fn))
	return nil
}

func (s *Session) handleExtern(h Handler) error {
	proto, err := s.parser.ParseExtern()
	if err != nil {
		return s.skipAfterSyntaxError(err)
	}

	s.stats.Externs++
	s.dispatch(UnitExtern, proto.Name, h.HandleExtern(proto))
	return nil
}

func (s *Session) handleTopLevel(h Handler) error {
	fn, err := s.parser.ParseTopLevelExpr()
	if err != nil {
		return s.skipAfterSyntaxError(err)
	}

	s.stats.TopLevel++
	s.dispatch(UnitTopLevel, fn.Proto.Name, h.HandleTopLevel(fn))
	return nil
}

// skipAfterSyntaxError absorbs a syntax error by skipping one token. The
// error has already been reported by the parser. Any other error is
// returned.
func (s *Session) skipAfterSyntaxError(err error) error {
	if !mdwerror.HasCode(err, mdwerror.CodeSyntax) {
		return err
	}

	s.stats.SyntaxErrors++
	_, advErr := s.parser.Advance()
	return advErr
}

func (s *Session) dispatch(kind UnitKind, name string, err error) {
	if err == nil {
		s.logger.Trace("Unit handled", mdwlog.Fields{"unit": kind.String(), "name": name})
		return
	}

	s.stats.HandlerErrors++
	s.logger.WithFields(mdwlog.Fields{"unit": kind.String(), "name": name}).LogError(err)
}

// fatal hands err back to the caller, which owns reporting it
func (s *Session) fatal(err error) error {
	s.logger.Debug("Session stopped", mdwlog.Fields{"error_code": mdwerror.GetCode(err).String()})
	return err
}

// ParseString parses src with a fresh session and returns every unit in
// source order. Syntax errors go to opts.Sink and are counted in Stats.
func ParseString(src string, opts Options) ([]Unit, Stats, error) {
	return Parse(context.Background(), strings.NewReader(src), opts)
}

// Parse is like ParseString for an arbitrary reader
func Parse(ctx context.Context, r io.Reader, opts Options) ([]Unit, Stats, error) {
	s, err := NewSession(r, opts)
	if err != nil {
		return nil, Stats{}, err
	}

	collector := &Collector{}
	stats, err := s.Run(ctx, collector)
	return collector.Units, stats, err
}
