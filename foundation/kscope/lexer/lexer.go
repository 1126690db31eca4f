// File: lexer.go
// Title: Kaleidoscope Lexical Analyzer
// Description: Converts a character stream into a lazy sequence of tokens.
//              Keeps exactly one character of pushback between calls and
//              treats a number with more than one decimal point as fatal.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial lexer implementation

package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	mdwlog "github.com/msto63/kaleido/foundation/core/log"
)

const (
	eof           rune = -1
	commentMarker rune = '#'
)

// Options configures lexer behavior
type Options struct {
	Logger *mdwlog.Logger
}

// Lexer performs lexical analysis of Kaleidoscope input. It is forward
// only: tokens cannot be pushed back into the character stream.
type Lexer struct {
	reader   *bufio.Reader
	lastChar rune // read but not yet consumed
	line     int  // position of lastChar
	col      int
	readErr  error // non-EOF read failure, surfaced on the next token
	err      error // sticky fatal error
	logger   *mdwlog.Logger
}

// New creates a new lexer reading from r
func New(r io.Reader, opts Options) *Lexer {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &Lexer{
		reader:   br,
		lastChar: ' ',
		line:     1,
		col:      0,
		logger:   opts.Logger.WithField("component", "kscope-lexer"),
	}
}

// NewString creates a lexer over an in-memory source
func NewString(input string) *Lexer {
	return New(strings.NewReader(input), Options{})
}

// Next returns the next token. Once a fatal error has been returned every
// later call returns the same error.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{Kind: KindEOF, Line: l.line, Col: l.col}, l.err
	}

	for {
		for l.lastChar != eof && unicode.IsSpace(l.lastChar) {
			l.readChar()
		}

		if l.lastChar == eof && l.readErr != nil {
			return l.fail(mdwerror.Wrap(l.readErr, "reading source").
				WithCode(mdwerror.CodeIO).
				WithOperation("lexer.Next"))
		}

		line, col := l.line, l.col

		switch {
		case isLetter(l.lastChar):
			text := l.readIdentifier()
			return l.emit(Token{Kind: lookupIdent(text), Text: text, Line: line, Col: col}), nil

		case isDigit(l.lastChar) || l.lastChar == '.':
			return l.readNumber(line, col)

		case l.lastChar == commentMarker:
			l.skipComment()
			continue

		case l.lastChar == eof:
			return Token{Kind: KindEOF, Line: line, Col: col + 1}, nil

		default:
			ch := l.lastChar
			l.readChar()
			return l.emit(Token{Kind: KindChar, Char: ch, Text: string(ch), Line: line, Col: col}), nil
		}
	}
}

// Tokenize returns all tokens up to and including EOF
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, tok)
		if tok.Kind == KindEOF {
			return tokens, nil
		}
	}
}

// readChar reads the next character into lastChar and advances position
func (l *Lexer) readChar() {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.readErr = err
		}
		l.lastChar = eof
		return
	}

	if l.lastChar == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.lastChar = r
}

// readIdentifier reads a maximal run of letters and digits
func (l *Lexer) readIdentifier() string {
	var sb strings.Builder
	for isLetter(l.lastChar) || isDigit(l.lastChar) {
		sb.WriteRune(l.lastChar)
		l.readChar()
	}
	return sb.String()
}

// readNumber reads a maximal run of digits and decimal points. A second
// decimal point is fatal; no attempt is made to guess the intended number.
func (l *Lexer) readNumber(line, col int) (Token, error) {
	var sb strings.Builder
	dots := 0
	for isDigit(l.lastChar) || l.lastChar == '.' {
		if l.lastChar == '.' {
			dots++
		}
		sb.WriteRune(l.lastChar)
		l.readChar()
	}
	text := sb.String()

	if dots > 1 {
		return l.fail(mdwerror.New(fmt.Sprintf("number syntax error: too many decimal points in %q", text)).
			WithCode(mdwerror.CodeLexical).
			WithOperation("lexer.readNumber").
			WithDetail("line", line).
			WithDetail("column", col).
			WithDetail("text", text))
	}

	return l.emit(Token{Kind: KindNumber, Text: text, Value: parseNumber(text), Line: line, Col: col}), nil
}

// skipComment discards characters through the end of the line
func (l *Lexer) skipComment() {
	for l.lastChar != eof && l.lastChar != '\n' && l.lastChar != '\r' {
		l.readChar()
	}
}

func (l *Lexer) emit(tok Token) Token {
	l.logger.Trace("token", mdwlog.Fields{"token": tok.String(), "line": tok.Line, "column": tok.Col})
	return tok
}

func (l *Lexer) fail(err *mdwerror.Error) (Token, error) {
	l.err = err
	return Token{Kind: KindEOF, Line: l.line, Col: l.col}, err
}

// parseNumber parses text made of digits and at most one decimal point.
// A lone "." is 0 and out-of-range values saturate to infinity.
func parseNumber(text string) float64 {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}

func isLetter(ch rune) bool {
	return ch != eof && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
