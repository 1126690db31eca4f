// File: doc.go
// Title: Logging Package Documentation
// Description: Package documentation for the structured logger.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

/*
Package log provides the structured logger used by every component.

Components derive a tagged logger once and pass Fields per message:

	logger := mdwlog.GetDefault().WithField("component", "kscope-parser")
	logger.Debug("parsed definition", mdwlog.Fields{"name": "fib", "params": 1})

LogError picks the level from the severity of a structured error, so a
syntax error is logged as a warning and a malformed number as fatal. The
logger never exits the process; that decision stays with the caller.
*/
package log
