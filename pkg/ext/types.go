// Package ext exposes the evaluator's Object model to host Go code that
// wants to register additional builtins into a Ruchy Evaluator (spec.md
// §4.6 describes the flat/namespace builtin surface; this package is the
// seam a host program uses to extend it without importing internal/evaluator
// directly).
package ext

import "github.com/funvibe/funxy/internal/evaluator"

type Object = evaluator.Object
type Builtin = evaluator.Builtin
type Evaluator = evaluator.Evaluator
type Error = evaluator.Error
type Tuple = evaluator.Tuple
type Array = evaluator.Array
type Nil = evaluator.Nil
type Integer = evaluator.Integer
type Float = evaluator.Float
type Bool = evaluator.Bool
type String = evaluator.String

// NewError constructs a RuntimeError-kinded Error, mirroring
// evaluator.NewError's formatting without requiring the host to name an
// error kind it otherwise has no reason to know about.
func NewError(format string, args ...interface{}) *Error {
	return evaluator.NewError("RuntimeError", format, args...)
}

// Register binds a builtin function into ev's global scope under name,
// letting host Go code extend the interpreter with new callables (e.g. a
// native bridge to a Go library) without forking internal/evaluator.
func Register(ev *Evaluator, name string, fn func(ev *Evaluator, args []Object) Object) {
	ev.GlobalEnv.Bind(name, &Builtin{Name: name, Fn: fn})
}

// ToRuchy lifts a small set of common Go values into their Object
// equivalents, for host code bridging native results back into a running
// interpreter (e.g. a builtin's return value).
func ToRuchy(val interface{}) Object {
	switch v := val.(type) {
	case Object:
		return v
	case nil:
		return evaluator.NIL
	case int:
		return &Integer{Value: int64(v)}
	case int64:
		return &Integer{Value: v}
	case float64:
		return &Float{Value: v}
	case bool:
		return evaluator.NativeBool(v)
	case string:
		return &String{Value: v}
	case error:
		return NewError("%s", v.Error())
	}
	return evaluator.NewError("RuntimeError", "cannot convert %T to a Ruchy value", val)
}
