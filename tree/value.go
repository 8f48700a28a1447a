package tree

import "strings"

// Value is one terminal reference to a schedulable unit: a dotted
// identifier path with an optional verbatim call-argument group, e.g.
// "setup", "ui.SpawnRoot" or "factory.Make(a, b)".
type Value struct {
	Expr string
	Span Span
}

// NewValue creates a value from a raw expression with no span information.
// The parser attaches spans; synthetic values built by tests do not need them.
func NewValue(expr string) *Value {
	return &Value{Expr: expr}
}

// Name returns the last path segment of the expression with any
// call-argument group stripped. It is the human-readable fragment used
// when deriving binding names from this value.
func (v *Value) Name() string {
	expr := v.Expr
	if i := strings.IndexByte(expr, '('); i >= 0 {
		expr = expr[:i]
	}
	if i := strings.LastIndexByte(expr, '.'); i >= 0 {
		expr = expr[i+1:]
	}
	return expr
}

// PathSegments returns the dotted path components of the expression,
// call-argument group stripped.
func (v *Value) PathSegments() []string {
	expr := v.Expr
	if i := strings.IndexByte(expr, '('); i >= 0 {
		expr = expr[:i]
	}
	return strings.Split(expr, ".")
}

// Equal reports whether two values reference the same expression text.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.Expr == other.Expr
}

func (v *Value) String() string {
	return v.Expr
}
