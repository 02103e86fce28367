package evaluator

import "github.com/funvibe/funxy/internal/ast"

// loopResult unwraps a BreakSignal addressed to this loop (empty or
// matching label) into its carried value, and reports whether a return/
// throw/break-to-outer-label signal should keep propagating.
func loopResult(sig Object, label string) (Object, bool, bool) {
	if b, ok := sig.(*BreakSignal); ok {
		if b.Label == "" || b.Label == label {
			return b.Value, true, false
		}
		return sig, true, true // propagate to an outer labeled loop
	}
	if c, ok := sig.(*ContinueSignal); ok {
		if c.Label == "" || c.Label == label {
			return nil, false, false
		}
		return sig, true, true
	}
	return nil, false, true // return/throw: always propagate
}

func (ev *Evaluator) evalWhile(n *ast.WhileExpression, env *Environment) Object {
	var result Object = NIL
	for {
		scope := NewEnclosedEnvironment(env)
		if n.WhileLetTarget != nil {
			val := ev.Eval(n.Condition, scope)
			if IsSignal(val) {
				return val
			}
			bindings, ok := MatchPattern(n.WhileLetTarget, val)
			if !ok {
				return result
			}
			for k, v := range bindings {
				scope.Bind(k, v)
			}
		} else {
			cond := ev.Eval(n.Condition, scope)
			if IsSignal(cond) {
				return cond
			}
			if !Truthy(cond) {
				return result
			}
		}
		body := ev.Eval(n.Body, scope)
		if IsSignal(body) {
			val, stop, propagate := loopResult(body, n.Label)
			if propagate {
				return body
			}
			if stop {
				return val
			}
			continue
		}
		result = body
	}
}

func (ev *Evaluator) evalLoop(n *ast.LoopExpression, env *Environment) Object {
	for {
		scope := NewEnclosedEnvironment(env)
		body := ev.Eval(n.Body, scope)
		if IsSignal(body) {
			val, stop, propagate := loopResult(body, n.Label)
			if propagate {
				return body
			}
			if stop {
				return val
			}
			continue
		}
	}
}

func (ev *Evaluator) evalFor(n *ast.ForExpression, env *Environment) Object {
	iterable := ev.Eval(n.Iterable, env)
	if IsSignal(iterable) {
		return iterable
	}
	items, sig := iterate(iterable)
	if sig != nil {
		return sig
	}
	var result Object = NIL
	for _, item := range items {
		scope := NewEnclosedEnvironment(env)
		bindings, ok := MatchPattern(n.Pattern, item)
		if !ok {
			return NewError("RuntimeError", "for-loop pattern did not match value %s", item.Inspect())
		}
		for k, v := range bindings {
			scope.Bind(k, v)
		}
		body := ev.Eval(n.Body, scope)
		if IsSignal(body) {
			val, stop, propagate := loopResult(body, n.Label)
			if propagate {
				return body
			}
			if stop {
				return val
			}
			continue
		}
		result = body
	}
	return result
}

// iterate yields the element sequence of an Array, Tuple, Range, or
// String (by Unicode scalar) (spec.md §4.4.1 "For").
func iterate(o Object) ([]Object, Object) {
	switch v := o.(type) {
	case *Array:
		return v.Elements, nil
	case *Tuple:
		return v.Elements, nil
	case *Range:
		return v.Values(), nil
	case *String:
		var out []Object
		for _, r := range v.Value {
			out = append(out, &String{Value: string(r)})
		}
		return out, nil
	case *Obj:
		var out []Object
		for k, val := range v.Pairs {
			out = append(out, &Tuple{Elements: []Object{&String{Value: k}, val}})
		}
		return out, nil
	default:
		return nil, NewError("TypeError", "%s is not iterable", o.Type())
	}
}
