// Package diagnostics defines the error taxonomy shared by every pipeline
// stage (lexer, parser, analyzer, evaluator, transpiler). spec.md §7.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/funxy/internal/token"
)

// Code is a stable, user-facing diagnostic code, grouped by the kind
// taxonomy in spec.md §7: L=lex, P=parse, T=type, N=name, R=runtime,
// X=recursion limit, E=exhaustiveness.
type Code string

const (
	ErrL001 Code = "L001" // unterminated string
	ErrL002 Code = "L002" // invalid escape
	ErrL003 Code = "L003" // stray character
	ErrL004 Code = "L004" // malformed number literal

	ErrP001 Code = "P001" // unexpected token
	ErrP002 Code = "P002" // missing delimiter
	ErrP003 Code = "P003" // bad pattern
	ErrP004 Code = "P004" // invalid where-clause
	ErrP005 Code = "P005" // invalid attribute

	ErrT001 Code = "T001" // wrong value kind at a typed site
	ErrT002 Code = "T002" // cast failure

	ErrN001 Code = "N001" // undefined variable
	ErrN002 Code = "N002" // undefined struct impl method
	ErrN003 Code = "N003" // missing module function

	ErrR001 Code = "R001" // arity mismatch
	ErrR002 Code = "R002" // division by zero
	ErrR003 Code = "R003" // index out of range
	ErrR004 Code = "R004" // arithmetic overflow
	ErrR005 Code = "R005" // unterminated format spec
	ErrR006 Code = "R006" // unknown method on receiver

	ErrX001 Code = "X001" // recursion limit exceeded

	ErrE001 Code = "E001" // exhaustiveness: missing variants
)

// Kind returns the human-readable kind name used in the "<kind>: ..."
// rendering of Error(), per spec.md §7.
func (c Code) Kind() string {
	switch c[0] {
	case 'L':
		return "LexError"
	case 'P':
		return "ParseError"
	case 'T':
		return "TypeError"
	case 'N':
		return "NameError"
	case 'R':
		return "RuntimeError"
	case 'X':
		return "RecursionLimitExceeded"
	case 'E':
		return "ExhaustivenessError"
	default:
		return "Error"
	}
}

// DiagnosticError is the single error type produced by every pipeline
// stage. File is filled in by cmd/ruchy's printDiagnostic when the
// diagnostic is reported; internal/pipeline does not set it.
type DiagnosticError struct {
	Code    Code
	Token   token.Token
	Message string
	File    string
	// Expected is an optional hint describing what the parser expected
	// instead of Token (spec.md §4.2 parse contract).
	Expected string
	// Help is optional recovery guidance (spec.md §7, "help text and
	// recovery suggestions").
	Help string
	// Missing lists uncovered constructor/variant names for exhaustiveness
	// diagnostics (spec.md §4.3.3).
	Missing []string
}

// NewError constructs a DiagnosticError anchored at tok.
func NewError(code Code, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func (e *DiagnosticError) Error() string {
	msg := fmt.Sprintf("%s: %s at %s", e.Code.Kind(), e.Message, e.Token.Span)
	if e.Expected != "" {
		msg += fmt.Sprintf(" (expected %s)", e.Expected)
	}
	if len(e.Missing) > 0 {
		msg += fmt.Sprintf(" (missing: %v)", e.Missing)
	}
	if e.Help != "" {
		msg += "\nhelp: " + e.Help
	}
	return msg
}

// WithHelp attaches recovery-suggestion text and returns the receiver for
// chaining at call sites.
func (e *DiagnosticError) WithHelp(help string) *DiagnosticError {
	e.Help = help
	return e
}

// WithExpected attaches the "expected" hint used by ParseError sites.
func (e *DiagnosticError) WithExpected(expected string) *DiagnosticError {
	e.Expected = expected
	return e
}
