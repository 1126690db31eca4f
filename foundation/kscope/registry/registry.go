// File: registry.go
// Title: Kaleidoscope Declaration Registry
// Description: Holds the binary operator precedence table and every
//              prototype seen through extern or def. The precedence table
//              is fixed at construction; prototypes accumulate over the
//              lifetime of a session.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial registry implementation

package registry

import (
	"sort"
	"sync"
	"unicode"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	mdwlog "github.com/msto63/kaleido/foundation/core/log"
	mdwast "github.com/msto63/kaleido/foundation/kscope/ast"
)

// Kind tells how a prototype entered the registry
type Kind int

const (
	KindExtern Kind = iota
	KindDef
)

// String returns a string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindExtern:
		return "extern"
	case KindDef:
		return "def"
	default:
		return "unknown"
	}
}

// Entry is a registered prototype
type Entry struct {
	Proto *mdwast.Prototype
	Kind  Kind
}

// Options configures the registry
type Options struct {
	Logger *mdwlog.Logger

	// Precedence adds operators to, or overrides, the default table
	Precedence map[rune]int
}

// DefaultPrecedence returns the built-in binary operator table. Higher
// binds tighter.
func DefaultPrecedence() map[rune]int {
	return map[rune]int{
		'<': 10,
		'+': 20,
		'-': 20,
		'*': 40,
		'/': 40,
	}
}

// Registry is safe for concurrent use
type Registry struct {
	precedence map[rune]int
	entries    map[string]Entry
	logger     *mdwlog.Logger
	mutex      sync.RWMutex
}

// New creates a registry with the default precedence table extended by
// opts.Precedence
func New(opts Options) (*Registry, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	precedence := DefaultPrecedence()
	for op, prec := range opts.Precedence {
		if err := ValidateOperator(op, prec); err != nil {
			return nil, err
		}
		precedence[op] = prec
	}

	r := &Registry{
		precedence: precedence,
		entries:    make(map[string]Entry),
		logger:     opts.Logger.WithField("component", "kscope-registry"),
	}

	r.logger.Debug("Registry initialized", mdwlog.Fields{
		"operatorCount": len(precedence),
	})

	return r, nil
}

// MustNew is like New but panics on an invalid precedence table
func MustNew(opts Options) *Registry {
	r, err := New(opts)
	if err != nil {
		panic(err)
	}
	return r
}

// ValidateOperator checks that op can be lexed as a single character
// token without clashing with the grammar, and that prec is positive
func ValidateOperator(op rune, prec int) error {
	if prec <= 0 {
		return mdwerror.Newf("precedence for %q must be positive, got %d", op, prec).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("registry.ValidateOperator").
			WithDetail("operator", string(op))
	}

	switch {
	case unicode.IsLetter(op), unicode.IsDigit(op), unicode.IsSpace(op),
		op == '(', op == ')', op == ',', op == ';', op == '.', op == '#':
		return mdwerror.Newf("%q cannot be used as a binary operator", op).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("registry.ValidateOperator").
			WithDetail("operator", string(op))
	}

	return nil
}

// Precedence returns the precedence of op, or false when op is not a
// binary operator
func (r *Registry) Precedence(op rune) (int, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	prec, ok := r.precedence[op]
	return prec, ok
}

// Operators returns a copy of the precedence table
func (r *Registry) Operators() map[rune]int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make(map[rune]int, len(r.precedence))
	for op, prec := range r.precedence {
		result[op] = prec
	}
	return result
}

// Register records proto under its name. Once a name has been defined
// with def it stays a definition even if a later extern repeats it.
func (r *Registry) Register(proto *mdwast.Prototype, kind Kind) error {
	if proto == nil {
		return mdwerror.New("prototype cannot be nil").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("registry.Register")
	}
	if err := proto.Validate(); err != nil {
		return mdwerror.Wrap(err, "register prototype").WithOperation("registry.Register")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	prev, exists := r.entries[proto.Name]
	if exists && prev.Kind == KindDef {
		kind = KindDef
	}
	r.entries[proto.Name] = Entry{Proto: proto, Kind: kind}

	r.logger.Debug("Prototype registered", mdwlog.Fields{
		"name":     proto.Name,
		"kind":     kind.String(),
		"arity":    proto.Arity(),
		"replaced": exists,
	})

	return nil
}

// IsRedefinition reports whether name was already registered by def.
// Declaring with extern first and defining later is not a redefinition.
func (r *Registry) IsRedefinition(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entry, ok := r.entries[name]
	return ok && entry.Kind == KindDef
}

// Seen reports whether a prototype named name has been registered
func (r *Registry) Seen(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, ok := r.entries[name]
	return ok
}

// Lookup returns the most recently registered prototype for name
func (r *Registry) Lookup(name string) (*mdwast.Prototype, bool) {
	entry, ok := r.Entry(name)
	return entry.Proto, ok
}

// Entry returns the registry entry for name
func (r *Registry) Entry(name string) (Entry, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entry, ok := r.entries[name]
	return entry, ok
}

// Names returns all registered names, sorted
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered prototypes
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.entries)
}
