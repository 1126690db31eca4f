// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that diagnostics can be
//              routed to the matching log level and fatal conditions can be
//              told apart from recoverable ones.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a recoverable user mistake (a syntax error)
	SeverityLow Severity = iota

	// SeverityMedium indicates an error the caller must look at
	SeverityMedium

	// SeverityHigh indicates a failed environment such as a broken config
	SeverityHigh

	// SeverityCritical indicates the current session cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// IsFatal returns true if the severity ends the current session
func (s Severity) IsFatal() bool {
	return s >= SeverityCritical
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeLexical, CodeIO:
		return SeverityCritical
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeInternal:
		return SeverityHigh
	case CodeSyntax, CodeSemantic, CodeInvalidInput:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
