package main

import (
	"math/rand"
	"strings"
	"testing"
)

func TestCompile_RequiresSingleInput(t *testing.T) {
	if err := compile([]string{"one.tree", "two.tree"}); err == nil {
		t.Fatal("expected error for multiple input files")
	}
	if err := compile([]string{}); err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestCompileOne_PlanForm(t *testing.T) {
	out, err := compileOne("a, b => c", "plan", "boot", "Boot", rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if !strings.Contains(out, "package boot\n") {
		t.Errorf("missing package clause:\n%s", out)
	}
	if !strings.Contains(out, "func Boot() schedule.Plan {") {
		t.Errorf("missing function signature:\n%s", out)
	}
}

func TestCompileOne_RunnerForm(t *testing.T) {
	out, err := compileOne("a => b", "runner", "boot", "Boot", rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if !strings.Contains(out, "func Boot(w *schedule.World) error {") {
		t.Errorf("missing function signature:\n%s", out)
	}
}

func TestCompileOne_ParseErrorPropagates(t *testing.T) {
	_, err := compileOne("a b", "plan", "main", "", rand.New(rand.NewSource(1)))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if err.Error() != "expected `,`" {
		t.Errorf("expected parser message, got %q", err.Error())
	}
}
