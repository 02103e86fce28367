package analyzer

import "github.com/funvibe/funxy/internal/ast"

// Exhaustive implements spec.md §4.3.3 "Exhaustiveness": a match/receive
// is exhaustive iff some arm is a wildcard/identifier (or an or-pattern
// containing one), or the union of constructor-pattern names covers every
// variant declared by variants. Missing lists the uncovered names.
//
// The interpreter runs the same check at evaluation time against the
// scrutinee's live EnumDeclaration (see internal/evaluator's
// checkExhaustive); this copy is the one the transpiler and any future
// static-analysis pass consult without depending on the runtime.
func Exhaustive(arms []ast.Pattern, variants []string) (missing []string, ok bool) {
	covered := make(map[string]bool)
	for _, pat := range arms {
		if catchAll(pat) {
			return nil, true
		}
		if cp, isCons := pat.(*ast.ConstructorPattern); isCons {
			covered[cp.Name] = true
		}
		if op, isOr := pat.(*ast.OrPattern); isOr {
			for _, alt := range op.Alternatives {
				if catchAll(alt) {
					return nil, true
				}
				if cp, isCons := alt.(*ast.ConstructorPattern); isCons {
					covered[cp.Name] = true
				}
			}
		}
	}
	for _, v := range variants {
		if !covered[v] {
			missing = append(missing, v)
		}
	}
	return missing, len(missing) == 0
}

func catchAll(pat ast.Pattern) bool {
	switch pat.(type) {
	case *ast.WildcardPattern, *ast.IdentifierPattern:
		return true
	}
	return false
}
