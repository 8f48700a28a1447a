package codegen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/systree-xyz/go-systree/tree"
)

// Stmt is one emitted execution statement: run Value, feeding the
// parent statement's output binding as input, and bind the result.
// Parent is empty for root values. Binding names are unique within one
// generation even when two statements reference identical expressions.
type Stmt struct {
	Binding string
	Value   *tree.Value
	Parent  string
}

// Statements flattens a tree into one ordered statement sequence. The
// order is topological over the dependency forest: a value's statement
// precedes every statement of its descendants, and siblings keep source
// order. Binding randomness comes from rng so tests can fix the seed.
func Statements(t *tree.Tree, rng *rand.Rand) []Stmt {
	g := &stmtGen{rng: rng, seen: make(map[string]bool)}
	g.walkTree(t, "")
	return g.stmts
}

type stmtGen struct {
	rng   *rand.Rand
	seen  map[string]bool
	stmts []Stmt
}

func (g *stmtGen) walkTree(t *tree.Tree, parent string) {
	for _, b := range t.Branches() {
		g.walkBranch(b, parent)
	}
}

func (g *stmtGen) walkBranch(b *tree.Branch, parent string) {
	binding := g.bind(b.Value())
	g.stmts = append(g.stmts, Stmt{Binding: binding, Value: b.Value(), Parent: parent})

	switch b.Kind() {
	case tree.KindArm:
		g.walkBranch(b.Child(), binding)
	case tree.KindSubtree:
		g.walkTree(b.Subtree(), binding)
	}
}

// bind generates a fresh binding name: a random slug plus the value's
// path segments for traceability in generated source. Generated exactly
// once per statement; collisions retry the slug.
func (g *stmtGen) bind(v *tree.Value) string {
	suffix := strings.Join(v.PathSegments(), "_")
	for {
		name := "out_" + randSlug(g.rng, 6) + "_" + suffix
		if !g.seen[name] {
			g.seen[name] = true
			return name
		}
	}
}

const slugChars = "abcdefghijklmnopqrstuvwxyz0123456789"

func randSlug(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = slugChars[rng.Intn(len(slugChars))]
	}
	return string(b)
}

// RunnerOptions configures the generated runner source.
type RunnerOptions struct {
	PackageName string // defaults to "main"
	FuncName    string // defaults to "RunStartup"
}

func (o RunnerOptions) withDefaults() RunnerOptions {
	if o.PackageName == "" {
		o.PackageName = "main"
	}
	if o.FuncName == "" {
		o.FuncName = "RunStartup"
	}
	return o
}

// GenerateRunner generates Go source for a self-contained function that
// executes every value in dependency order on one schedule.World,
// feeding each parent's output into its children. Bindings no child
// consumes are passed to schedule.Sink so the emitted source compiles
// without unused variables.
func GenerateRunner(t *tree.Tree, opts RunnerOptions, rng *rand.Rand) (string, error) {
	opts = opts.withDefaults()
	stmts := Statements(t, rng)

	consumed := make(map[string]bool)
	for _, s := range stmts {
		if s.Parent != "" {
			consumed[s.Parent] = true
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("package %s\n\n", opts.PackageName))
	b.WriteString("import (\n")
	b.WriteString("\t\"github.com/systree-xyz/go-systree/schedule\"\n")
	b.WriteString(")\n\n")
	b.WriteString(fmt.Sprintf("// %s runs every system in dependency order on one world.\n", opts.FuncName))
	b.WriteString(fmt.Sprintf("func %s(w *schedule.World) error {\n", opts.FuncName))
	for _, s := range stmts {
		parent := s.Parent
		if parent == "" {
			parent = "nil"
		}
		b.WriteString(fmt.Sprintf("\t%s, err := w.RunSystem(%s, %s)\n", s.Binding, s.Value.Expr, parent))
		b.WriteString("\tif err != nil {\n")
		b.WriteString("\t\treturn err\n")
		b.WriteString("\t}\n")
	}
	var sunk []string
	for _, s := range stmts {
		if !consumed[s.Binding] {
			sunk = append(sunk, s.Binding)
		}
	}
	if len(sunk) > 0 {
		b.WriteString(fmt.Sprintf("\tschedule.Sink(%s)\n", strings.Join(sunk, ", ")))
	}
	b.WriteString("\treturn nil\n")
	b.WriteString("}\n")

	return b.String(), nil
}
