// File: buffer.go
// Title: Kaleidoscope Token Buffer
// Description: Single-token lookahead cursor over the lexer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

package lexer

// TokenSource is anything that yields tokens one at a time
type TokenSource interface {
	Next() (Token, error)
}

// Buffer holds the current token. It never reads ahead on its own; the
// lexer is called exactly once per Advance.
type Buffer struct {
	source  TokenSource
	current Token
}

// NewBuffer creates a buffer over source. Current is EOF until the first
// Advance.
func NewBuffer(source TokenSource) *Buffer {
	return &Buffer{source: source}
}

// Current returns the current token
func (b *Buffer) Current() Token {
	return b.current
}

// Advance reads the next token, stores it as current and returns it. On a
// fatal lexer error the current token becomes EOF.
func (b *Buffer) Advance() (Token, error) {
	tok, err := b.source.Next()
	b.current = tok
	return tok, err
}
