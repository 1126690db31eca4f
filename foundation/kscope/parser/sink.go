// File: sink.go
// Title: Parser Diagnostic Sinks
// Description: Defines where syntax errors are reported. A LogSink writes
//              them through the structured logger; a Collector keeps them
//              for later inspection.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

package parser

import (
	"fmt"
	"sync"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	mdwlog "github.com/msto63/kaleido/foundation/core/log"
)

// Sink receives each syntax error exactly once
type Sink interface {
	Report(err *mdwerror.Error)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(err *mdwerror.Error)

// Report calls f(err)
func (f SinkFunc) Report(err *mdwerror.Error) {
	f(err)
}

// LogSink reports syntax errors through a logger
type LogSink struct {
	logger *mdwlog.Logger
}

// NewLogSink creates a sink that logs to logger
func NewLogSink(logger *mdwlog.Logger) *LogSink {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &LogSink{logger: logger.WithField("component", "kscope-parser")}
}

// Report logs err at a level derived from its severity
func (s *LogSink) Report(err *mdwerror.Error) {
	s.logger.LogError(err)
}

// Collector keeps every reported error in order
type Collector struct {
	mutex  sync.Mutex
	errors []*mdwerror.Error
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends err
func (c *Collector) Report(err *mdwerror.Error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errors = append(c.errors, err)
}

// Errors returns a copy of the collected errors
func (c *Collector) Errors() []*mdwerror.Error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	result := make([]*mdwerror.Error, len(c.errors))
	copy(result, c.errors)
	return result
}

// Len returns the number of collected errors
func (c *Collector) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.errors)
}

// Reset discards all collected errors
func (c *Collector) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errors = nil
}

// Describe formats a syntax or lexical error as "line:column: message",
// followed by the offending token when known
func Describe(err *mdwerror.Error) string {
	line, hasLine := err.Detail("line")
	col, _ := err.Detail("column")

	msg := err.Error()
	if hasLine {
		msg = fmt.Sprintf("%v:%v: %s", line, col, msg)
	}
	if tok, ok := err.Detail("token"); ok {
		msg = fmt.Sprintf("%s (got %v)", msg, tok)
	}
	return msg
}
