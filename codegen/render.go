// Package codegen compiles a parsed startup tree into generated Go
// source, either as a level-grouped plan literal or as a sequential
// runner function threading outputs to inputs.
package codegen

import "github.com/systree-xyz/go-systree/tree"

// Renderer produces the call expression emitted for one value. The
// wrapper the host scheduling API expects is a seam that has changed
// over time, so it is injected rather than fixed.
type Renderer func(v *tree.Value) string

// RenderSystem is the default renderer: it wraps the value's expression
// in a schedule.System conversion.
func RenderSystem(v *tree.Value) string {
	return "schedule.System(" + v.Expr + ")"
}
