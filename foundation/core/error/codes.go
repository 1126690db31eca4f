// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the Kaleidoscope front end.
//              Codes separate fatal lexical corruption from recoverable syntax
//              errors and from problems observed later by a backend.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial code set for lexer, parser and configuration

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeIO           Code = "IO"

	// Front end
	CodeLexical  Code = "LEXICAL"  // malformed token, never recovered
	CodeSyntax   Code = "SYNTAX"   // recoverable at the next top-level construct
	CodeSemantic Code = "SEMANTIC" // arity, unknown callee, unknown variable

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeInvalidInput, CodeIO,
		CodeLexical, CodeSyntax, CodeSemantic,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical, CodeSyntax:
		return "parse"
	case CodeSemantic:
		return "semantic"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeIO:
		return "io"
	default:
		return "generic"
	}
}

// IsRecoverable reports whether a session can continue after an error with
// this code. Lexical and I/O failures end the session.
func (c Code) IsRecoverable() bool {
	switch c {
	case CodeLexical, CodeIO:
		return false
	default:
		return true
	}
}
