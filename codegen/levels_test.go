package codegen

import (
	"strings"
	"testing"

	"github.com/systree-xyz/go-systree/tree"
	"github.com/systree-xyz/go-systree/tree/dsl"
)

func mustParse(t *testing.T, input string) *tree.Tree {
	t.Helper()
	tr, err := dsl.Parse(input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return tr
}

func levelNames(levels [][]*tree.Value) [][]string {
	out := make([][]string, len(levels))
	for i, level := range levels {
		out[i] = make([]string, len(level))
		for j, v := range level {
			out[i][j] = v.Expr
		}
	}
	return out
}

func TestLevels_MixedForest(t *testing.T) {
	tr := mustParse(t, "s1a, s1b => { s2a => s3a, s2b => { s3b, s3c => s4a => s5a } }")

	got := levelNames(Levels(tr))
	want := [][]string{
		{"s1a", "s1b"},
		{"s2a", "s2b"},
		{"s3a", "s3b", "s3c"},
		{"s4a"},
		{"s5a"},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d levels, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("level %d: expected %v, got %v", i, want[i], got[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("level %d entry %d: expected %q, got %q", i, j, want[i][j], got[i][j])
			}
		}
	}
}

func TestLevels_LeavesOnly(t *testing.T) {
	tr := mustParse(t, "a, b, c")
	levels := Levels(tr)
	if len(levels) != 1 {
		t.Fatalf("expected 1 level, got %d", len(levels))
	}
	if len(levels[0]) != 3 {
		t.Errorf("expected 3 entries, got %d", len(levels[0]))
	}
}

func TestLevels_LongChain(t *testing.T) {
	tr := mustParse(t, "a => b => c => d")
	levels := Levels(tr)
	if len(levels) != 4 {
		t.Fatalf("expected 4 levels, got %d", len(levels))
	}
	for i, level := range levels {
		if len(level) != 1 {
			t.Errorf("level %d: expected 1 entry, got %d", i, len(level))
		}
	}
}

func TestLevels_NestedSubtree(t *testing.T) {
	tr := mustParse(t, "a => { b, c => d }")

	sub := tr.Branches()[0].Subtree()
	if sub == nil {
		t.Fatal("expected subtree under a")
	}

	got := levelNames(Levels(sub))
	want := [][]string{
		{"b", "c"},
		{"d"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d levels, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("level %d: expected %v, got %v", i, want[i], got[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("level %d entry %d: expected %q, got %q", i, j, want[i][j], got[i][j])
			}
		}
	}
}

func TestLevels_SizesSumToValueCount(t *testing.T) {
	inputs := []string{
		"sys",
		"a, b => c,",
		"a => b => c => d",
		"s1a, s1b => { s2a => s3a, s2b => { s3b, s3c => s4a => s5a } }",
	}
	for _, input := range inputs {
		tr := mustParse(t, input)
		total := 0
		for _, level := range Levels(tr) {
			total += len(level)
		}
		if total != tr.CountValues() {
			t.Errorf("%q: level sizes sum to %d, tree has %d values", input, total, tr.CountValues())
		}
	}
}

func TestLevels_RootsHaveNoPredecessor(t *testing.T) {
	tr := mustParse(t, "a => x, b, c => { d }")
	levels := Levels(tr)
	got := levelNames(levels)[0]
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("level 0: expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("level 0 entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestGeneratePlan(t *testing.T) {
	tr := mustParse(t, "s1a, s1b => s2a")

	got, err := GeneratePlan(tr, PlanOptions{PackageName: "boot", FuncName: "BootPlan"})
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	want := `package boot

import (
	"github.com/systree-xyz/go-systree/schedule"
)

// BootPlan builds the level-grouped startup plan.
func BootPlan() schedule.Plan {
	return schedule.Plan{
		{
			schedule.System(s1a),
			schedule.System(s1b),
		},
		{
			schedule.System(s2a),
		},
	}
}
`
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestGeneratePlan_CustomRenderer(t *testing.T) {
	tr := mustParse(t, "sys")

	got, err := GeneratePlan(tr, PlanOptions{
		Renderer: func(v *tree.Value) string { return "wrap(" + v.Expr + ")" },
	})
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if want := "wrap(sys),"; !strings.Contains(got, want) {
		t.Errorf("expected output to contain %q:\n%s", want, got)
	}
}
