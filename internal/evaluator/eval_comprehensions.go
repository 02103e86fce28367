package evaluator

import (
	"strings"

	"github.com/funvibe/funxy/internal/ast"
)

// comprehensionBind destructures one comprehension clause's canonical
// variable string against an iterated item (spec.md §4.2
// "Comprehensions", §4.4.1 "comprehensions desugar to for-loops"). ok is
// false when item does not match a constructor-form variable, meaning
// the item is skipped (filter-map semantics).
func comprehensionBind(variable string, item Object) (map[string]Object, bool) {
	variable = strings.TrimSpace(variable)
	if variable == "_" {
		return map[string]Object{}, true
	}
	open := strings.Index(variable, "(")
	if open < 0 {
		return map[string]Object{variable: item}, true
	}
	name := strings.TrimSpace(variable[:open])
	inner := strings.TrimSuffix(variable[open+1:], ")")
	fields := splitTop(inner)

	if name == "" {
		// tuple-pattern rendering: "(a, b)"
		tup, ok := item.(*Tuple)
		if !ok || len(tup.Elements) != len(fields) {
			return nil, false
		}
		out := make(map[string]Object, len(fields))
		for i, f := range fields {
			f = strings.TrimSpace(f)
			if f != "_" && f != "" {
				out[f] = tup.Elements[i]
			}
		}
		return out, true
	}

	ev, ok := item.(*EnumVariant)
	if !ok || ev.VariantName != name || len(ev.Payload) != len(fields) {
		return nil, false
	}
	out := make(map[string]Object, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f != "_" && f != "" {
			out[f] = ev.Payload[i]
		}
	}
	return out, true
}

func splitTop(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// runClauses evaluates clauses[idx:] left to right, invoking emit(scope)
// for every combination of bindings that satisfies every guard.
func (ev *Evaluator) runClauses(clauses []ast.ComprehensionClause, idx int, env *Environment, emit func(*Environment) Object) Object {
	if idx == len(clauses) {
		return emit(env)
	}
	clause := clauses[idx]
	iterable := ev.Eval(clause.Iterable, env)
	if IsSignal(iterable) {
		return iterable
	}
	items, sig := iterate(iterable)
	if sig != nil {
		return sig
	}
	for _, item := range items {
		bindings, ok := comprehensionBind(clause.Variable, item)
		if !ok {
			continue
		}
		scope := NewEnclosedEnvironment(env)
		for k, v := range bindings {
			scope.Bind(k, v)
		}
		if clause.Guard != nil {
			g := ev.Eval(clause.Guard, scope)
			if IsSignal(g) {
				return g
			}
			if !Truthy(g) {
				continue
			}
		}
		result := ev.runClauses(clauses, idx+1, scope, emit)
		if IsSignal(result) {
			return result
		}
	}
	return nil
}

func (ev *Evaluator) evalListComprehension(n *ast.ListComprehension, env *Environment) Object {
	var elems []Object
	sig := ev.runClauses(n.Clauses, 0, env, func(scope *Environment) Object {
		v := ev.Eval(n.Result, scope)
		if IsSignal(v) {
			return v
		}
		elems = append(elems, v)
		return nil
	})
	if sig != nil {
		return sig
	}
	return &Array{Elements: elems}
}

func (ev *Evaluator) evalSetComprehension(n *ast.SetComprehension, env *Environment) Object {
	o := NewObj()
	o.Tag = "Set"
	sig := ev.runClauses(n.Clauses, 0, env, func(scope *Environment) Object {
		v := ev.Eval(n.Result, scope)
		if IsSignal(v) {
			return v
		}
		o.Pairs[setKey(v)] = v
		return nil
	})
	if sig != nil {
		return sig
	}
	return o
}

func (ev *Evaluator) evalDictComprehension(n *ast.DictComprehension, env *Environment) Object {
	o := NewObj()
	sig := ev.runClauses(n.Clauses, 0, env, func(scope *Environment) Object {
		k := ev.Eval(n.Key, scope)
		if IsSignal(k) {
			return k
		}
		v := ev.Eval(n.Value, scope)
		if IsSignal(v) {
			return v
		}
		o.Pairs[DisplayString(k)] = v
		return nil
	})
	if sig != nil {
		return sig
	}
	return o
}
