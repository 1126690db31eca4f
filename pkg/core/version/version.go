// ============================================================================
// Kaleido - Kaleidoscope language front end
// ============================================================================
//
// Package:     version
// Description: Central version management for the front end and its tools
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all components
const (
	// Platform version
	Platform = "0.1.0"

	// Component versions
	Lexer    = "0.1.0"
	Parser   = "0.1.0"
	Registry = "0.1.0"
	CLI      = "0.1.0"
)

// Build information, set with -ldflags at build time
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "registry":
		return Registry
	case "cli":
		return CLI
	default:
		return Platform
	}
}

// Info returns a one-line description of the build
func Info() string {
	return fmt.Sprintf("kaleido %s (commit %s, built %s, %s %s/%s)",
		Platform, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
