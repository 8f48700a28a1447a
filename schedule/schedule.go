// Package schedule is the runtime consumer of generated startup code:
// level-grouped plans and sequential runner functions both execute
// against a World.
package schedule

import (
	"context"
	"sync"
)

// System is one schedulable unit of work in a level-grouped plan.
type System func(ctx context.Context, w *World) error

// OutputSystem is one unit of work in the sequential path: it receives
// its parent's output (nil at roots) and produces its own.
type OutputSystem func(w *World, input any) (any, error)

// Plan is an ordered sequence of levels. Each level runs strictly after
// the previous one; systems inside a level carry no mutual ordering.
type Plan [][]System

// World holds shared state systems read and write during startup.
type World struct {
	mu        sync.RWMutex
	resources map[string]any
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{resources: make(map[string]any)}
}

// Set stores a named resource.
func (w *World) Set(name string, value any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resources[name] = value
}

// Get retrieves a named resource.
func (w *World) Get(name string) (any, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	v, ok := w.resources[name]
	return v, ok
}

// RunSystem executes one output-producing system with the given input.
// Generated sequential runners call this once per statement.
func (w *World) RunSystem(sys OutputSystem, input any) (any, error) {
	return sys(w, input)
}

// Sink consumes values without using them. Generated runners pass it
// the bindings no child system reads, keeping the emitted source free
// of unused variables.
func Sink(vs ...any) {}
