// Command dmarsc is the Drewno Mars compiler driver: a thin, manual
// os.Args switch in the same spirit as cmd/funxy's main, since the
// compiler's flag surface is small and fixed (spec.md §6) and doesn't
// warrant a flag-parsing framework.
package main

import (
	"fmt"
	"os"

	"github.com/dmars-lang/dmarsc/internal/analyzer"
	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/codegen"
	"github.com/dmars-lang/dmarsc/internal/config"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/lexer"
	"github.com/dmars-lang/dmarsc/internal/parser"
	"github.com/dmars-lang/dmarsc/internal/tac"
	"github.com/dmars-lang/dmarsc/internal/types"
	"github.com/dmars-lang/dmarsc/internal/unparse"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dmarsc <input> [-t tokens] [-p unparse] [-n named-unparse] [-c] [-a tac] [-o asm] [-config dmarsc.yaml]")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements the whole driver and returns the process exit code,
// so tests can exercise it without an os.Exit.
func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}

	var inputPath string
	var tokensOut, unparseOut, namedUnparseOut, tacOut, asmOut string
	var runTypeCheckOnly bool
	var configPath string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-t":
			if i+1 >= len(args) {
				usage()
				return 1
			}
			tokensOut = args[i+1]
			i++
		case "-p":
			if i+1 >= len(args) {
				usage()
				return 1
			}
			unparseOut = args[i+1]
			i++
		case "-n":
			if i+1 >= len(args) {
				usage()
				return 1
			}
			namedUnparseOut = args[i+1]
			i++
		case "-c":
			runTypeCheckOnly = true
		case "-a":
			if i+1 >= len(args) {
				usage()
				return 1
			}
			tacOut = args[i+1]
			i++
		case "-o":
			if i+1 >= len(args) {
				usage()
				return 1
			}
			asmOut = args[i+1]
			i++
		case "-config":
			if i+1 >= len(args) {
				usage()
				return 1
			}
			configPath = args[i+1]
			i++
		default:
			if inputPath != "" {
				usage()
				return 1
			}
			inputPath = args[i]
		}
	}

	if inputPath == "" {
		usage()
		return 1
	}

	src, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %s\n", err)
		return 1
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %s\n", err)
			return 1
		}
	}

	if tokensOut != "" {
		if err := writeTokens(tokensOut, string(src)); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %s\n", err)
			return 1
		}
	}

	rep := diagnostics.NewReporter()
	prog := parser.ParseProgram(string(src), rep)
	if rep.HasErrors() {
		rep.Write(os.Stderr)
		return 1
	}

	if unparseOut != "" {
		// -p annotates IDs with their resolved type (spec.md §6), so it
		// resolves names internally before unparsing on a throwaway
		// reporter: -p's contract is pure syntax output, not diagnostics
		// (that is -n's job, a few lines down, on the real reporter).
		silent := diagnostics.NewReporter()
		analyzer.ResolveNames(prog, types.NewContext(), silent)
		if err := writeUnparse(unparseOut, prog); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %s\n", err)
			return 1
		}
		// ResolveNames attaches symbols onto the shared tree; later
		// stages need a clean resolution of their own, so re-parse.
		prog = parser.ParseProgram(string(src), rep)
	}

	needsAnalysis := namedUnparseOut != "" || runTypeCheckOnly || tacOut != "" || asmOut != ""
	if !needsAnalysis {
		return 0
	}

	ctx := types.NewContext()
	if ok := analyzer.ResolveNames(prog, ctx, rep); !ok {
		rep.Write(os.Stderr)
		return 1
	}

	if namedUnparseOut != "" {
		if err := writeUnparse(namedUnparseOut, prog); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %s\n", err)
			return 1
		}
	}

	if !runTypeCheckOnly && tacOut == "" && asmOut == "" {
		return 0
	}

	ok, nodeTypes := analyzer.CheckTypes(prog, ctx, rep)
	if !ok {
		rep.Write(os.Stderr)
		return 1
	}

	if runTypeCheckOnly && tacOut == "" && asmOut == "" {
		return 0
	}

	irProg := tac.Lower(prog, nodeTypes, ctx)

	if tacOut != "" {
		if err := writeTAC(tacOut, irProg); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %s\n", err)
			return 1
		}
	}

	if asmOut != "" {
		if err := writeAsm(asmOut, irProg, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %s\n", err)
			return 1
		}
	}

	return 0
}

func writeTokens(path, src string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, tok := range lexer.All(src) {
		fmt.Fprintln(f, tok.String())
	}
	return nil
}

func writeUnparse(path string, prog *ast.Program) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	unparse.Program(f, prog)
	return nil
}

func writeTAC(path string, irProg *tac.Program) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	tac.Dump(f, irProg)
	return nil
}

func writeAsm(path string, irProg *tac.Program, cfg *config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return codegen.Emit(f, irProg, cfg)
}
