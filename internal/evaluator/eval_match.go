package evaluator

import "github.com/funvibe/funxy/internal/ast"

// evalMatch implements spec.md §4.4.1 "Match": arms tried in order, each
// gets a fresh scope, guards evaluated after binding.
func (ev *Evaluator) evalMatch(n *ast.MatchExpression, env *Environment) Object {
	scrutinee := ev.Eval(n.Scrutinee, env)
	if IsSignal(scrutinee) {
		return scrutinee
	}
	if ev2, ok := scrutinee.(*EnumVariant); ok {
		if decl, ok := ev.Enums[ev2.EnumName]; ok {
			if errv := ev.checkExhaustive(n.Arms, decl); errv != nil {
				return errv
			}
		}
	}
	for _, arm := range n.Arms {
		bindings, ok := MatchPattern(arm.Pattern, scrutinee)
		if !ok {
			continue
		}
		scope := NewEnclosedEnvironment(env)
		for k, v := range bindings {
			scope.Bind(k, v)
		}
		if arm.Guard != nil {
			g := ev.Eval(arm.Guard, scope)
			if IsSignal(g) {
				return g
			}
			if !Truthy(g) {
				continue
			}
		}
		return ev.Eval(arm.Body, scope)
	}
	return NewError("RuntimeError", "no match arm matched value %s", scrutinee.Inspect())
}

// checkExhaustive implements spec.md §4.3.3 "Exhaustiveness" at the point
// a match scrutinizes a known enum: the arm patterns must either contain
// a catch-all or cover every declared variant name.
func (ev *Evaluator) checkExhaustive(arms []ast.MatchArm, decl *ast.EnumDeclaration) Object {
	pats := make([]ast.Pattern, len(arms))
	for i, a := range arms {
		pats[i] = a.Pattern
	}
	variants := make([]string, len(decl.Variants))
	for i, v := range decl.Variants {
		variants[i] = v.Name.Value
	}
	missing, ok := ExhaustivenessCheck(pats, variants)
	if ok {
		return nil
	}
	return NewError("ExhaustivenessError", "non-exhaustive match on %s: missing variants %v", decl.Name.Value, missing)
}
