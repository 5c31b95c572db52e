// Command lox is a tree-walking interpreter for the Lox programming language.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/aldenridge/lox/interpreter"
	"github.com/aldenridge/lox/parser"
	"github.com/aldenridge/lox/resolver"
	"github.com/aldenridge/lox/scanner"
)

// nolint:revive
func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: lox [script]\n")
	fmt.Fprintf(flag.CommandLine.Output(), "\n")
	fmt.Fprintf(flag.CommandLine.Output(), "With no script, lox starts an interactive REPL.\n")
}

func main() {
	flag.Usage = usage
	flag.Parse()

	switch len(flag.Args()) {
	case 0:
		if err := runREPL(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case 1:
		if err := runFile(flag.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// run scans, parses, resolves and evaluates src against interp, stopping at the first stage that
// fails and returning that stage's error(s), if any.
func run(src string, interp *interpreter.Interpreter) error {
	tokens, err := scanner.Scan(src)
	if err != nil {
		return err
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		return err
	}
	if err := resolver.Resolve(stmts); err != nil {
		return err
	}
	return interp.Run(stmts)
}

// runFile reads the file at name and runs it once as a single source unit.
func runFile(name string) error {
	src, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	return run(string(src), interpreter.NewStd())
}

// runREPL reads lines from stdin, feeding each one through the pipeline as its own source unit
// while keeping a single Interpreter alive so that definitions persist across lines.
func runREPL() error {
	cfg := &readline.Config{
		Prompt: "> ",
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = path.Join(homeDir, ".lox_history")
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("starting REPL: %s", err)
	}
	defer rl.Close()

	color.New(color.FgCyan).Fprintln(os.Stderr, "Welcome to Lox!")

	interp := interpreter.NewStd()
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := run(line, interp); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
