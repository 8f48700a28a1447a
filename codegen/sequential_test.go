package codegen

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"
)

func TestStatements_SingleValue(t *testing.T) {
	tr := mustParse(t, "sys")
	stmts := Statements(tr, rand.New(rand.NewSource(1)))

	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	if stmts[0].Parent != "" {
		t.Errorf("root statement should have no parent, got %q", stmts[0].Parent)
	}
	if stmts[0].Value.Expr != "sys" {
		t.Errorf("expected value sys, got %q", stmts[0].Value.Expr)
	}
}

func TestStatements_Chain(t *testing.T) {
	tr := mustParse(t, "sys1 => sys2 => sys3")
	stmts := Statements(tr, rand.New(rand.NewSource(1)))

	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	if stmts[0].Parent != "" {
		t.Errorf("sys1 should have no parent, got %q", stmts[0].Parent)
	}
	if stmts[1].Parent != stmts[0].Binding {
		t.Errorf("sys2 parent: expected %q, got %q", stmts[0].Binding, stmts[1].Parent)
	}
	if stmts[2].Parent != stmts[1].Binding {
		t.Errorf("sys3 parent: expected %q, got %q", stmts[1].Binding, stmts[2].Parent)
	}
}

func TestStatements_TopologicalOrder(t *testing.T) {
	tr := mustParse(t, "s1a, s1b => { s2a => s3a, s2b => { s3b, s3c => s4a => s5a } }")
	stmts := Statements(tr, rand.New(rand.NewSource(7)))

	if len(stmts) != tr.CountValues() {
		t.Fatalf("expected %d statements, got %d", tr.CountValues(), len(stmts))
	}

	defined := make(map[string]int)
	for i, s := range stmts {
		if s.Parent != "" {
			at, ok := defined[s.Parent]
			if !ok {
				t.Errorf("statement %d references undefined parent %q", i, s.Parent)
			} else if at >= i {
				t.Errorf("statement %d references parent defined at %d", i, at)
			}
		}
		defined[s.Binding] = i
	}
}

func TestStatements_SiblingsKeepSourceOrder(t *testing.T) {
	tr := mustParse(t, "a, b, c")
	stmts := Statements(tr, rand.New(rand.NewSource(1)))

	want := []string{"a", "b", "c"}
	for i, s := range stmts {
		if s.Value.Expr != want[i] {
			t.Errorf("statement %d: expected %q, got %q", i, want[i], s.Value.Expr)
		}
	}
}

func TestStatements_UniqueBindings(t *testing.T) {
	// same expression in several positions still gets distinct bindings
	tr := mustParse(t, "dup, dup => dup, dup => { dup, dup }")
	stmts := Statements(tr, rand.New(rand.NewSource(3)))

	seen := make(map[string]bool)
	for _, s := range stmts {
		if seen[s.Binding] {
			t.Errorf("duplicate binding %q", s.Binding)
		}
		seen[s.Binding] = true
	}
	if len(seen) != tr.CountValues() {
		t.Errorf("expected %d distinct bindings, got %d", tr.CountValues(), len(seen))
	}
}

func TestStatements_BindingShape(t *testing.T) {
	tr := mustParse(t, "ui.SpawnRoot")
	stmts := Statements(tr, rand.New(rand.NewSource(1)))

	pattern := regexp.MustCompile(`^out_[a-z0-9]{6}_ui_SpawnRoot$`)
	if !pattern.MatchString(stmts[0].Binding) {
		t.Errorf("binding %q does not match %v", stmts[0].Binding, pattern)
	}
}

func TestStatements_DeterministicWithSeed(t *testing.T) {
	tr := mustParse(t, "a => { b, c => d }")

	first := Statements(tr, rand.New(rand.NewSource(42)))
	second := Statements(tr, rand.New(rand.NewSource(42)))

	if len(first) != len(second) {
		t.Fatalf("statement counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Binding != second[i].Binding || first[i].Parent != second[i].Parent {
			t.Errorf("statement %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGenerateRunner(t *testing.T) {
	tr := mustParse(t, "sys1 => sys2")

	got, err := GenerateRunner(tr, RunnerOptions{PackageName: "boot", FuncName: "Boot"}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	if !strings.Contains(got, "package boot\n") {
		t.Errorf("missing package clause:\n%s", got)
	}
	if !strings.Contains(got, "func Boot(w *schedule.World) error {") {
		t.Errorf("missing function signature:\n%s", got)
	}
	root := regexp.MustCompile(`out_[a-z0-9]{6}_sys1, err := w\.RunSystem\(sys1, nil\)`)
	if !root.MatchString(got) {
		t.Errorf("missing root statement:\n%s", got)
	}
	child := regexp.MustCompile(`out_[a-z0-9]{6}_sys2, err := w\.RunSystem\(sys2, out_[a-z0-9]{6}_sys1\)`)
	if !child.MatchString(got) {
		t.Errorf("missing child statement:\n%s", got)
	}
	// sys2's output has no consumer and must be sunk
	sink := regexp.MustCompile(`schedule\.Sink\(out_[a-z0-9]{6}_sys2\)`)
	if !sink.MatchString(got) {
		t.Errorf("missing sink for unused binding:\n%s", got)
	}
	if !strings.Contains(got, "\treturn nil\n}") {
		t.Errorf("missing final return:\n%s", got)
	}
}

func TestGenerateRunner_DeterministicWithSeed(t *testing.T) {
	tr := mustParse(t, "a => { b, c => d }")

	first, err := GenerateRunner(tr, RunnerOptions{}, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	second, err := GenerateRunner(tr, RunnerOptions{}, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if first != second {
		t.Error("same seed should generate identical source")
	}
}
