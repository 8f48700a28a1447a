package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/systree-xyz/go-systree/codegen"
	"github.com/systree-xyz/go-systree/tree/dsl"
)

func inspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: systree inspect <input file>

Parse a tree description and print its structure and level table.
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("exactly one input file required")
	}

	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read %s: %w", fs.Arg(0), err)
	}

	t, err := dsl.Parse(string(src))
	if err != nil {
		var perr *dsl.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%s: %s", perr.Span, perr)
		}
		return err
	}

	fmt.Println("Tree:")
	fmt.Print(t)
	fmt.Println()

	levels := codegen.Levels(t)
	fmt.Printf("Values: %d, Levels: %d\n", t.CountValues(), len(levels))
	for i, level := range levels {
		names := make([]string, len(level))
		for j, v := range level {
			names[j] = v.Expr
		}
		fmt.Printf("  level %d: %s\n", i, strings.Join(names, ", "))
	}
	return nil
}
