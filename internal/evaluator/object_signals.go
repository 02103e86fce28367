package evaluator

import (
	"fmt"

	"github.com/funvibe/funxy/internal/token"
)

// Error is a user-visible RuntimeError/TypeError/NameError/
// ExhaustivenessError value produced by the interpreter (spec.md §7).
// It is a plain Object (not a signal) so builtins can return it inline;
// propagation to the nearest try-catch happens via ThrowSignal.
type Error struct {
	Kind    string // "RuntimeError", "TypeError", "NameError", "ExhaustivenessError"
	Message string
	Tok     token.Token
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return e.Kind + ": " + e.Message }
func (e *Error) Hash() uint32     { return hashString(e.Kind + e.Message) }

func NewError(kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// ReturnSignal unwinds to the nearest enclosing function call (spec.md §3.6).
type ReturnSignal struct{ Value Object }

func (r *ReturnSignal) Type() ObjectType { return RETURN_SIGNAL_OBJ }
func (r *ReturnSignal) Inspect() string  { return "return " + r.Value.Inspect() }
func (r *ReturnSignal) Hash() uint32     { return hashString("return") }

// BreakSignal unwinds to the nearest enclosing loop, optionally by label.
type BreakSignal struct {
	Value Object
	Label string
}

func (b *BreakSignal) Type() ObjectType { return BREAK_SIGNAL_OBJ }
func (b *BreakSignal) Inspect() string  { return "break" }
func (b *BreakSignal) Hash() uint32     { return hashString("break:" + b.Label) }

// ContinueSignal unwinds to the top of the nearest enclosing loop,
// optionally by label.
type ContinueSignal struct{ Label string }

func (c *ContinueSignal) Type() ObjectType { return CONTINUE_SIGNAL_OBJ }
func (c *ContinueSignal) Inspect() string  { return "continue" }
func (c *ContinueSignal) Hash() uint32     { return hashString("continue:" + c.Label) }

// ThrowSignal unwinds to the nearest enclosing try-catch (spec.md §4.4.1
// "Try-catch", §7).
type ThrowSignal struct{ Value Object }

func (t *ThrowSignal) Type() ObjectType { return THROW_SIGNAL_OBJ }
func (t *ThrowSignal) Inspect() string  { return "throw " + t.Value.Inspect() }
func (t *ThrowSignal) Hash() uint32     { return hashString("throw") }
