// File: handler.go
// Title: Kaleidoscope Unit Handlers
// Description: Defines the hook through which parsed units are handed to
//              a backend, plus a collecting handler used by ParseString.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

package kscope

import (
	mdwast "github.com/msto63/kaleido/foundation/kscope/ast"
)

// Handler consumes parsed units. A returned error is logged and counted;
// it never stops the session.
type Handler interface {
	HandleDefinition(fn *mdwast.Function) error
	HandleExtern(proto *mdwast.Prototype) error
	HandleTopLevel(fn *mdwast.Function) error
}

// HandlerFuncs adapts plain functions to Handler. Nil functions are no-ops.
type HandlerFuncs struct {
	Definition func(fn *mdwast.Function) error
	Extern     func(proto *mdwast.Prototype) error
	TopLevel   func(fn *mdwast.Function) error
}

func (h HandlerFuncs) HandleDefinition(fn *mdwast.Function) error {
	if h.Definition == nil {
		return nil
	}
	return h.Definition(fn)
}

func (h HandlerFuncs) HandleExtern(proto *mdwast.Prototype) error {
	if h.Extern == nil {
		return nil
	}
	return h.Extern(proto)
}

func (h HandlerFuncs) HandleTopLevel(fn *mdwast.Function) error {
	if h.TopLevel == nil {
		return nil
	}
	return h.TopLevel(fn)
}

// UnitKind identifies the kind of a top-level construct
type UnitKind int

const (
	UnitDefinition UnitKind = iota
	UnitExtern
	UnitTopLevel
)

// String returns a string representation of the unit kind
func (k UnitKind) String() string {
	switch k {
	case UnitDefinition:
		return "definition"
	case UnitExtern:
		return "extern"
	case UnitTopLevel:
		return "toplevel"
	default:
		return "unknown"
	}
}

// Unit is one parsed top-level construct. Function is set for definitions
// and top-level expressions, Prototype for every kind.
type Unit struct {
	Kind      UnitKind
	Function  *mdwast.Function
	Prototype *mdwast.Prototype
}

// Collector is a Handler that keeps every unit in source order
type Collector struct {
	Units []Unit
}

func (c *Collector) HandleDefinition(fn *mdwast.Function) error {
	c.Units = append(c.Units, Unit{Kind: UnitDefinition, Function: fn, Prototype: fn.Proto})
	return nil
}

func (c *Collector) HandleExtern(proto *mdwast.Prototype) error {
	c.Units = append(c.Units, Unit{Kind: UnitExtern, Prototype: proto})
	return nil
}

func (c *Collector) HandleTopLevel(fn *mdwast.Function) error {
	c.Units = append(c.Units, Unit{Kind: UnitTopLevel, Function: fn, Prototype: fn.Proto})
	return nil
}
