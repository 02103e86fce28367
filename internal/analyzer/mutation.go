package analyzer

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
)

// IsMutated implements spec.md §4.3.2 "Mutation detection": true iff some
// subexpression of body assigns, compound-assigns, or pre/post inc/decs
// the identifier at that name, or calls a method listed in
// config.MutatingArrayMethods on it. The transpiler uses this to decide `mut`
// qualifiers on let bindings.
func IsMutated(name string, body ast.Expression) bool {
	found, _ := visit(body, func(e ast.Expression) (bool, bool) {
		switch v := e.(type) {
		case *ast.AssignExpression:
			if isIdent(v.Left, name) {
				return true, true
			}
		case *ast.CompoundAssignExpression:
			if isIdent(v.Left, name) {
				return true, true
			}
		case *ast.IncDecExpression:
			if isIdent(v.Target, name) {
				return true, true
			}
		case *ast.MethodCallExpression:
			if isIdent(v.Receiver, name) && config.MutatingArrayMethods[v.Method] {
				return true, true
			}
		}
		return false, false
	})
	return found
}
