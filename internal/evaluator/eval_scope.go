package evaluator

import "github.com/funvibe/funxy/internal/ast"

// evalIdentifier resolves a name through the scope chain; failing that it
// lazily materializes the stdlib namespace object of that name, or a
// Class value for a declared class, and otherwise reports a NameError
// (spec.md §3.5, §4.6).
func (ev *Evaluator) evalIdentifier(n *ast.Identifier, env *Environment) Object {
	if v, ok := env.Get(n.Value); ok {
		return v
	}
	if ns := ev.namespaceObject(n.Value); ns != nil {
		return ns
	}
	if cd, ok := ev.Classes[n.Value]; ok {
		return NewClass(n.Value, ev.classMethodTable(cd))
	}
	return NewError("NameError", "undefined variable: %s", n.Value)
}

func (ev *Evaluator) evalBlock(n *ast.BlockExpression, env *Environment) Object {
	var result Object = NIL
	for _, expr := range n.Expressions {
		result = ev.Eval(expr, env)
		if IsSignal(result) {
			return result
		}
	}
	return result
}

func (ev *Evaluator) evalLet(n *ast.LetExpression, env *Environment) Object {
	val := ev.Eval(n.Value, env)
	if IsSignal(val) {
		return val
	}
	if n.Pattern != nil {
		bindings, ok := MatchPattern(n.Pattern, val)
		if !ok {
			if n.ElseBody != nil {
				return ev.Eval(n.ElseBody, env)
			}
			return NewError("RuntimeError", "let pattern did not match value %s", val.Inspect())
		}
		for k, v := range bindings {
			env.Bind(k, v)
		}
	} else if n.Name != nil {
		env.Bind(n.Name.Value, val)
	}
	if n.Body == nil {
		return NIL
	}
	return ev.Eval(n.Body, env)
}
