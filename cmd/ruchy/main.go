// Command ruchy is the CLI entry point spec.md §6.1 describes at contract
// level: it accepts a source path or inline source text and maps pipeline
// outcomes to the exit codes the contract fixes. SPEC_FULL.md's ambient-
// stack expansion grows that bare contract into four cobra subcommands
// (run, transpile, wasm, ast) sharing the same lex/parse front door.
package main

import (
	"fmt"
	"os"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/evaluator"
	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/pipeline"
	"github.com/funvibe/funxy/internal/transpiler"
	"github.com/funvibe/funxy/internal/wasmgen"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Exit codes fixed by spec.md §6.1.
const (
	exitOK           = 0
	exitParseError   = 1
	exitSemanticErr  = 2
	exitRuntimeError = 3
	exitUsageError   = 64
)

var evalText string

var rootCmd = &cobra.Command{
	Use:   "ruchy",
	Short: "Ruchy language core: evaluate, transpile, or inspect a source file",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&evalText, "eval", "e", "", "use inline source text instead of reading a path")
	rootCmd.Version = config.Version
	rootCmd.AddCommand(runCmd, transpileCmd, wasmCmd, astCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [path]",
	Short: "evaluate a Ruchy program and print its result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, _ := loadOrExit(args)
		os.Exit(runEval(prog))
		return nil
	},
}

var transpileCmd = &cobra.Command{
	Use:   "transpile [path]",
	Short: "transpile a Ruchy program to Rust-flavored source (§4.7)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, _ := loadOrExit(args)
		fmt.Println(transpiler.Transpile(prog))
		os.Exit(exitOK)
		return nil
	},
}

var wasmCmd = &cobra.Command{
	Use:   "wasm [path]",
	Short: "emit a WebAssembly module manifest for a Ruchy program (§4.9)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, file := loadOrExit(args)
		fmt.Println(wasmManifest(file, prog))
		os.Exit(exitOK)
		return nil
	},
}

var astCmd = &cobra.Command{
	Use:   "ast [path]",
	Short: "parse a Ruchy program and print its statement count",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, _ := loadOrExit(args)
		fmt.Printf("%d top-level statement(s)\n", len(prog.Statements))
		os.Exit(exitOK)
		return nil
	},
}

// loadOrExit resolves the source (from --eval or a path argument), lexes
// and parses it, and exits with the §6.1 code on the first diagnostic
// instead of returning a zero value to its caller.
func loadOrExit(args []string) (*ast.Program, string) {
	source, file, err := resolveSource(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsageError)
	}
	prog, code := parseSource(file, source)
	if prog == nil {
		os.Exit(code)
	}
	return prog, file
}

// wasmManifest implements §4.9's dry-run-adjacent "describe the emitted
// module" surface: a YAML rendering of the Module shape (minus the raw
// bytecode, which is opaque binary) suitable for piping into other
// tooling, grounded on the teacher pack's yaml.v3 dependency.
func wasmManifest(name string, prog *ast.Program) string {
	m := wasmgen.Emit(config.TrimSourceExt(name), prog)
	doc := struct {
		Name           string            `yaml:"name"`
		Version        string            `yaml:"version"`
		Valid          bool              `yaml:"valid"`
		Exports        []wasmgen.Export  `yaml:"exports"`
		Imports        []wasmgen.Import  `yaml:"imports,omitempty"`
		Metadata       map[string]string `yaml:"metadata,omitempty"`
		CustomSections map[string]string `yaml:"custom_sections,omitempty"`
	}{
		Name:     m.Name,
		Version:  m.Version,
		Valid:    wasmgen.Validate(m.Bytecode),
		Exports:  m.Exports,
		Imports:  m.Imports,
		Metadata: m.Metadata,
	}
	if len(m.CustomSections) > 0 {
		doc.CustomSections = make(map[string]string, len(m.CustomSections))
		for k, v := range m.CustomSections {
			doc.CustomSections[k] = string(v)
		}
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Sprintf("# failed to render module manifest: %v", err)
	}
	return string(out)
}

func resolveSource(args []string) (source, file string, err error) {
	if evalText != "" {
		return evalText, "<eval>", nil
	}
	if len(args) == 1 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("ruchy: %w", readErr)
		}
		return string(data), args[0], nil
	}
	return "", "", fmt.Errorf("ruchy: requires a source path or --eval text")
}

// parseSource runs the lex/parse stages and reports the first diagnostic
// (spec.md §7 "lex/parse errors fatal, return first one").
func parseSource(file, source string) (*ast.Program, int) {
	toks, lexErrs := lexer.Tokenize(source)
	if len(lexErrs) > 0 {
		printDiagnostic(file, lexErrs[0])
		return nil, exitParseError
	}
	ctx := pipeline.NewContext(file, source)
	p := parser.New(toks, ctx)
	prog := p.ParseProgram()
	if len(ctx.Errors) > 0 {
		printDiagnostic(file, ctx.Errors[0])
		return nil, exitParseError
	}
	return prog, exitOK
}

func printDiagnostic(file string, d *diagnostics.DiagnosticError) {
	d.File = file
	msg := d.Error()
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(os.Stderr, msg)
}

// stdoutWriter adapts os.Stdout to evaluator.Writer.
type stdoutWriter struct{}

func (stdoutWriter) Write(s string) { fmt.Fprint(os.Stdout, s) }

// runEval implements spec.md §7's propagation policy: an uncaught
// runtime error terminates with its message and span; the diagnostic
// kind selects the exit code between semantic (type/name/exhaustiveness)
// and runtime failures.
func runEval(prog *ast.Program) int {
	ev := evaluator.New(stdoutWriter{})
	result := ev.Run(prog)
	switch v := result.(type) {
	case *evaluator.Error:
		fmt.Fprintln(os.Stderr, v.Inspect())
		return exitCodeForKind(v.Kind)
	case *evaluator.ThrowSignal:
		fmt.Fprintln(os.Stderr, "uncaught throw: "+evaluator.DisplayString(v.Value))
		return exitRuntimeError
	}
	return exitOK
}

func exitCodeForKind(kind string) int {
	switch kind {
	case "TypeError", "NameError", "ExhaustivenessError":
		return exitSemanticErr
	default:
		return exitRuntimeError
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsageError)
	}
}
