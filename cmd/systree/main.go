package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "compile":
		if err := compile(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "inspect":
		if err := inspect(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("systree version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`systree - startup tree compiler

Usage:
  systree <command> [options]

Commands:
  compile    Compile a tree description into Go source
  inspect    Parse a tree description and print its structure
  help       Show this help message
  version    Show version information

Examples:
  # Generate a level-grouped plan
  systree compile startup.tree --form plan --pkg boot --func StartupPlan --output plan.go

  # Generate a sequential runner with a fixed seed
  systree compile startup.tree --form runner --seed 42 --output runner.go

  # Show the parsed structure and level table
  systree inspect startup.tree

For command-specific help, run:
  systree <command> --help`)
}
