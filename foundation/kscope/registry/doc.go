// File: doc.go
// Title: Kaleidoscope Registry Package Documentation
// Description: Package documentation for the declaration registry.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

/*
Package registry keeps the state the parser shares across top-level
constructs: which characters are binary operators and how tightly they
bind, and which prototypes have been declared or defined.

The default operator table is

	<  10
	+  20
	-  20
	*  40
	/  40

and can be extended only when the registry is created:

	reg, err := registry.New(registry.Options{
		Precedence: map[rune]int{'%': 40},
	})

Registering a def over an earlier def is allowed; IsRedefinition lets a
backend report it.
*/
package registry
