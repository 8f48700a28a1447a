package codegen

import (
	"fmt"
	"strings"

	"github.com/systree-xyz/go-systree/tree"
)

// Levels flattens a tree into ordered levels. Level i holds, in source
// order, every value reached after i steps from a root value of the
// given tree, counting both arm steps and subtree steps as one step
// each. Levels are relative to the given tree, so a nested subtree can
// be flattened on its own.
func Levels(t *tree.Tree) [][]*tree.Value {
	var levels [][]*tree.Value
	collectTree(t, 0, &levels)
	return levels
}

func collectTree(t *tree.Tree, depth int, levels *[][]*tree.Value) {
	for _, b := range t.Branches() {
		collectBranch(b, depth, levels)
	}
}

func collectBranch(b *tree.Branch, depth int, levels *[][]*tree.Value) {
	if depth == len(*levels) {
		*levels = append(*levels, nil)
	}
	(*levels)[depth] = append((*levels)[depth], b.Value())

	switch b.Kind() {
	case tree.KindArm:
		collectBranch(b.Child(), depth+1, levels)
	case tree.KindSubtree:
		collectTree(b.Subtree(), depth+1, levels)
	}
}

// PlanOptions configures the generated plan source.
type PlanOptions struct {
	PackageName string   // defaults to "main"
	FuncName    string   // defaults to "StartupPlan"
	Renderer    Renderer // defaults to RenderSystem
}

func (o PlanOptions) withDefaults() PlanOptions {
	if o.PackageName == "" {
		o.PackageName = "main"
	}
	if o.FuncName == "" {
		o.FuncName = "StartupPlan"
	}
	if o.Renderer == nil {
		o.Renderer = RenderSystem
	}
	return o
}

// GeneratePlan generates Go source for a function returning the tree's
// level-grouped schedule.Plan. Entries within a level carry no ordering
// guarantee at runtime; the literal preserves source order.
func GeneratePlan(t *tree.Tree, opts PlanOptions) (string, error) {
	opts = opts.withDefaults()
	levels := Levels(t)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("package %s\n\n", opts.PackageName))
	b.WriteString("import (\n")
	b.WriteString("\t\"github.com/systree-xyz/go-systree/schedule\"\n")
	b.WriteString(")\n\n")
	b.WriteString(fmt.Sprintf("// %s builds the level-grouped startup plan.\n", opts.FuncName))
	b.WriteString(fmt.Sprintf("func %s() schedule.Plan {\n", opts.FuncName))
	b.WriteString("\treturn schedule.Plan{\n")
	for _, level := range levels {
		b.WriteString("\t\t{\n")
		for _, v := range level {
			b.WriteString(fmt.Sprintf("\t\t\t%s,\n", opts.Renderer(v)))
		}
		b.WriteString("\t\t},\n")
	}
	b.WriteString("\t}\n")
	b.WriteString("}\n")

	return b.String(), nil
}
