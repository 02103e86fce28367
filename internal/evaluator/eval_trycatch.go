package evaluator

import (
	"strings"

	"github.com/funvibe/funxy/internal/ast"
)

// evalTry implements spec.md §4.4.1 "Try": a bare `try { body }`
// produces a Result-shaped EnumVariant rather than propagating.
func (ev *Evaluator) evalTry(n *ast.TryExpression, env *Environment) Object {
	result := ev.Eval(n.Body, NewEnclosedEnvironment(env))
	if th, ok := result.(*ThrowSignal); ok {
		return &EnumVariant{EnumName: "Result", VariantName: "Err", Payload: []Object{th.Value}}
	}
	if IsSignal(result) {
		return result
	}
	return &EnumVariant{EnumName: "Result", VariantName: "Ok", Payload: []Object{result}}
}

// evalTryCatch implements spec.md §4.4.1 "Try-catch": a ThrowSignal
// raised anywhere in Try is caught here and bound to CatchParam.
func (ev *Evaluator) evalTryCatch(n *ast.TryCatchExpression, env *Environment) Object {
	result := ev.Eval(n.Try, NewEnclosedEnvironment(env))
	th, ok := result.(*ThrowSignal)
	if !ok {
		return result
	}
	scope := NewEnclosedEnvironment(env)
	if n.CatchParam != nil {
		scope.Bind(n.CatchParam.Value, th.Value)
	}
	return ev.Eval(n.Catch, scope)
}

func (ev *Evaluator) evalMacro(n *ast.MacroInvocationExpression, env *Environment) Object {
	args, sig := ev.evalExprList(n.Arguments, env)
	if sig != nil {
		return sig
	}
	switch n.Name {
	case "println":
		out, errv := formatMacroArgs(args)
		if errv != nil {
			return errv
		}
		ev.writeLine(out + "\n")
		return NIL
	case "print":
		out, errv := formatMacroArgs(args)
		if errv != nil {
			return errv
		}
		ev.writeLine(out)
		return NIL
	case "format":
		// format! renders its value arguments debug-style (a String prints
		// quoted, see DebugString); the template argument stays raw.
		dbg := append([]Object{}, args...)
		for i := 1; i < len(dbg); i++ {
			if s, ok := dbg[i].(*String); ok {
				dbg[i] = &String{Value: DebugString(s)}
			}
		}
		out, errv := formatMacroArgs(dbg)
		if errv != nil {
			return errv
		}
		return &String{Value: out}
	case "vec":
		return &Array{Elements: args}
	case "assert":
		if len(args) == 0 || !Truthy(args[0]) {
			return &ThrowSignal{Value: &String{Value: "assertion failed"}}
		}
		return NIL
	case "assert_eq":
		if len(args) < 2 || !Equal(args[0], args[1]) {
			return &ThrowSignal{Value: &String{Value: "assertion failed: left != right"}}
		}
		return NIL
	}
	return NewError("NameError", "unknown macro %s!", n.Name)
}

func (ev *Evaluator) writeLine(s string) {
	if ev.Out != nil {
		ev.Out.Write(s)
	}
}

func joinDisplay(args []Object) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += " "
		}
		s += DisplayString(a)
	}
	return s
}

// formatMacroArgs implements println!/print!/format!'s argument handling
// (spec.md §4.6 "println!/print!/format! macros"): when the first
// argument is a String containing `{}` placeholders, the remaining
// arguments are substituted left to right via DisplayString (format!
// passes its String arguments in already quoted); a
// format string with more placeholders than supplied arguments is an
// error. With no placeholders in the first argument, or no arguments at
// all, every argument is rendered and space-joined instead.
func formatMacroArgs(args []Object) (string, Object) {
	if len(args) == 0 {
		return "", nil
	}
	tmpl, ok := args[0].(*String)
	if !ok || !strings.Contains(tmpl.Value, "{}") {
		return joinDisplay(args), nil
	}
	rest := args[1:]
	var b strings.Builder
	i := 0
	remaining := tmpl.Value
	for {
		idx := strings.Index(remaining, "{}")
		if idx < 0 {
			b.WriteString(remaining)
			break
		}
		b.WriteString(remaining[:idx])
		if i >= len(rest) {
			return "", NewError("RuntimeError", "format! missing argument for placeholder %d", i+1)
		}
		b.WriteString(DisplayString(rest[i]))
		i++
		remaining = remaining[idx+2:]
	}
	return b.String(), nil
}
