package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	"github.com/msto63/kaleido/foundation/kscope"
	mdwast "github.com/msto63/kaleido/foundation/kscope/ast"
)

// Format selects how parsed units are written
type Format string

const (
	FormatText Format = "text"
	FormatTree Format = "tree"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists all supported formats
var Formats = []Format{FormatText, FormatTree, FormatJSON, FormatYAML}

// ParseFormat converts a flag value to a Format
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", mdwerror.Newf("unknown output format %q", s).
		WithCode(mdwerror.CodeInvalidInput).
		WithDetail("format", s)
}

// Document is the structured form of a parse run
type Document struct {
	Units       []Unit       `json:"units" yaml:"units"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Stats       Stats        `json:"stats" yaml:"stats"`

	source []kscope.Unit
}

// Unit is one top-level construct
type Unit struct {
	Kind   string   `json:"kind" yaml:"kind"`
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Params []string `json:"params,omitempty" yaml:"params,omitempty"`
	Body   *Node    `json:"body,omitempty" yaml:"body,omitempty"`
	Calls  []string `json:"calls,omitempty" yaml:"calls,omitempty"`
	Line   int      `json:"line" yaml:"line"`
	Column int      `json:"column" yaml:"column"`
}

// Node is an expression node
type Node struct {
	Kind   string   `json:"kind" yaml:"kind"`
	Value  *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Op     string   `json:"op,omitempty" yaml:"op,omitempty"`
	LHS    *Node    `json:"lhs,omitempty" yaml:"lhs,omitempty"`
	RHS    *Node    `json:"rhs,omitempty" yaml:"rhs,omitempty"`
	Args   []*Node  `json:"args,omitempty" yaml:"args,omitempty"`
	Line   int      `json:"line" yaml:"line"`
	Column int      `json:"column" yaml:"column"`
}

// Diagnostic is a reported syntax error or a fatal error
type Diagnostic struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
	Token   string `json:"token,omitempty" yaml:"token,omitempty"`
}

// Stats mirrors kscope.Stats
type Stats struct {
	Definitions   int `json:"definitions" yaml:"definitions"`
	Externs       int `json:"externs" yaml:"externs"`
	TopLevel      int `json:"toplevel" yaml:"toplevel"`
	SyntaxErrors  int `json:"syntax_errors" yaml:"syntax_errors"`
	HandlerErrors int `json:"handler_errors" yaml:"handler_errors"`
}

// NewDocument builds a document from a parse run. fatal may be nil.
func NewDocument(units []kscope.Unit, diags []*mdwerror.Error, stats kscope.Stats, fatal error) *Document {
	doc := &Document{
		Units:  make([]Unit, 0, len(units)),
		Stats:  Stats(stats),
		source: units,
	}

	for _, u := range units {
		doc.Units = append(doc.Units, convertUnit(u))
	}
	for _, d := range diags {
		doc.Diagnostics = append(doc.Diagnostics, convertDiagnostic(d))
	}
	if fatal != nil {
		if mdwErr, ok := mdwerror.As(fatal); ok {
			doc.Diagnostics = append(doc.Diagnostics, convertDiagnostic(mdwErr))
		} else {
			doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
				Code:    string(mdwerror.CodeUnknown),
				Message: fatal.Error(),
			})
		}
	}

	return doc
}

// Write writes the document in the given format. Text and tree formats
// include only the units; diagnostics go through the logger or the CLI.
func Write(w io.Writer, doc *Document, format Format) error {
	units := doc.source

	switch format {
	case FormatText:
		for _, u := range units {
			if _, err := fmt.Fprintln(w, UnitText(u)); err != nil {
				return err
			}
		}
		return nil

	case FormatTree:
		for _, u := range units {
			if _, err := io.WriteString(w, UnitTree(u)); err != nil {
				return err
			}
		}
		return nil

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()

	default:
		_, err := ParseFormat(string(format))
		return err
	}
}

// UnitText renders a unit on one line
func UnitText(u kscope.Unit) string {
	switch u.Kind {
	case kscope.UnitExtern:
		return "extern " + u.Prototype.String()
	case kscope.UnitDefinition:
		return u.Function.String()
	default:
		return "toplevel " + u.Function.Body.String()
	}
}

// UnitTree renders a unit as an indented tree
func UnitTree(u kscope.Unit) string {
	if u.Kind == kscope.UnitExtern {
		return fmt.Sprintf("Extern %s\n", u.Prototype)
	}
	return mdwast.FunctionTree(u.Function)
}

func convertUnit(u kscope.Unit) Unit {
	out := Unit{
		Kind:   u.Kind.String(),
		Line:   u.Prototype.Pos.Line,
		Column: u.Prototype.Pos.Column,
	}
	if !u.Prototype.IsAnonymous() {
		out.Name = u.Prototype.Name
		out.Params = u.Prototype.Params
	}
	if u.Function != nil {
		out.Body = convertExpr(u.Function.Body)
		out.Calls = mdwast.Callees(u.Function.Body)
	}
	return out
}

func convertExpr(expr mdwast.Expr) *Node {
	pos := expr.Position()
	node := &Node{Line: pos.Line, Column: pos.Column}

	switch e := expr.(type) {
	case *mdwast.NumberExpr:
		v := e.Value
		node.Kind = "number"
		node.Value = &v
	case *mdwast.VariableExpr:
		node.Kind = "variable"
		node.Name = e.Name
	case *mdwast.BinaryExpr:
		node.Kind = "binary"
		node.Op = string(e.Op)
		node.LHS = convertExpr(e.LHS)
		node.RHS = convertExpr(e.RHS)
	case *mdwast.CallExpr:
		node.Kind = "call"
		node.Name = e.Callee
		node.Args = make([]*Node, 0, len(e.Args))
		for _, arg := range e.Args {
			node.Args = append(node.Args, convertExpr(arg))
		}
	default:
		panic(fmt.Sprintf("render: unexpected expression type %T", expr))
	}

	return node
}

func convertDiagnostic(err *mdwerror.Error) Diagnostic {
	d := Diagnostic{
		Code:    string(err.Code()),
		Message: err.Error(),
	}
	if v, ok := err.Detail("line"); ok {
		d.Line, _ = v.(int)
	}
	if v, ok := err.Detail("column"); ok {
		d.Column, _ = v.(int)
	}
	if v, ok := err.Detail("token"); ok {
		d.Token, _ = v.(string)
	}
	return d
}
