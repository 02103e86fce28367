// Package analyzer implements the semantic helpers spec.md §4.3 describes:
// pure, read-only AST traversals the transpiler consults when a function
// parameter has no type annotation, plus the mutation-detection and
// function-name-heuristic helpers it also needs. None of this package
// mutates the AST or the interpreter's runtime state.
package analyzer

import "github.com/funvibe/funxy/internal/ast"

// visit is the generic depth-first traversal primitive spec.md §4.3.1
// describes: a predicate over an expression either short-circuits with a
// definite answer or asks the walk to keep descending.
func visit(n ast.Node, pred func(ast.Expression) (bool, bool)) (bool, bool) {
	expr, ok := n.(ast.Expression)
	if ok {
		if v, some := pred(expr); some {
			return v, true
		}
	}
	for _, child := range children(n) {
		if child == nil {
			continue
		}
		if v, some := visit(child, pred); some {
			return v, true
		}
	}
	return false, false
}

// children enumerates the direct expression/statement children of n that
// the usage analyses need to descend into. Declarations and types are
// deliberately excluded: parameter-usage analysis only ever runs over a
// single function body.
func children(n ast.Node) []ast.Node {
	switch v := n.(type) {
	case *ast.BlockExpression:
		out := make([]ast.Node, len(v.Expressions))
		for i, e := range v.Expressions {
			out[i] = e
		}
		return out
	case *ast.LetExpression:
		out := []ast.Node{v.Value}
		if v.ElseBody != nil {
			out = append(out, v.ElseBody)
		}
		if v.Body != nil {
			out = append(out, v.Body)
		}
		return out
	case *ast.AssignExpression:
		return []ast.Node{v.Left, v.Value}
	case *ast.CompoundAssignExpression:
		return []ast.Node{v.Left, v.Value}
	case *ast.IncDecExpression:
		return []ast.Node{v.Target}
	case *ast.PrefixExpression:
		return []ast.Node{v.Right}
	case *ast.InfixExpression:
		return []ast.Node{v.Left, v.Right}
	case *ast.TernaryExpression:
		return []ast.Node{v.Condition, v.Then, v.Else}
	case *ast.IfExpression:
		out := []ast.Node{v.Condition, v.Consequence}
		if v.Alternative != nil {
			out = append(out, v.Alternative)
		}
		return out
	case *ast.WhileExpression:
		return []ast.Node{v.Condition, v.Body}
	case *ast.LoopExpression:
		return []ast.Node{v.Body}
	case *ast.ForExpression:
		return []ast.Node{v.Iterable, v.Body}
	case *ast.BreakExpression:
		if v.Value != nil {
			return []ast.Node{v.Value}
		}
	case *ast.ReturnExpression:
		if v.Value != nil {
			return []ast.Node{v.Value}
		}
	case *ast.MatchExpression:
		out := []ast.Node{v.Scrutinee}
		for _, arm := range v.Arms {
			if arm.Guard != nil {
				out = append(out, arm.Guard)
			}
			out = append(out, arm.Body)
		}
		return out
	case *ast.LambdaExpression:
		return []ast.Node{v.Body}
	case *ast.FunctionExpression:
		return []ast.Node{v.Body}
	case *ast.CallExpression:
		out := []ast.Node{v.Function}
		for _, a := range v.Arguments {
			out = append(out, a)
		}
		for _, a := range v.NamedArgs {
			out = append(out, a.Value)
		}
		return out
	case *ast.MethodCallExpression:
		out := []ast.Node{v.Receiver}
		for _, a := range v.Arguments {
			out = append(out, a)
		}
		return out
	case *ast.FieldAccessExpression:
		return []ast.Node{v.Receiver}
	case *ast.IndexExpression:
		return []ast.Node{v.Receiver, v.Index}
	case *ast.RangeExpression:
		out := []ast.Node{}
		if v.Start != nil {
			out = append(out, v.Start)
		}
		if v.End != nil {
			out = append(out, v.End)
		}
		return out
	case *ast.SpreadExpression:
		return []ast.Node{v.Expression}
	case *ast.TryExpression:
		return []ast.Node{v.Body}
	case *ast.ThrowExpression:
		if v.Value != nil {
			return []ast.Node{v.Value}
		}
	case *ast.TryCatchExpression:
		return []ast.Node{v.Try, v.Catch}
	case *ast.AsyncBlockExpression:
		return []ast.Node{v.Body}
	case *ast.AwaitExpression:
		return []ast.Node{v.Value}
	case *ast.PipelineExpression:
		out := []ast.Node{v.Source}
		for _, s := range v.Stages {
			out = append(out, s)
		}
		return out
	case *ast.CastExpression:
		return []ast.Node{v.Value}
	case *ast.MacroInvocationExpression:
		out := make([]ast.Node, len(v.Arguments))
		for i, a := range v.Arguments {
			out[i] = a
		}
		return out
	case *ast.NullCoalesceExpression:
		return []ast.Node{v.Left, v.Right}
	case *ast.InterpolatedStringLiteral:
		var out []ast.Node
		for _, p := range v.Parts {
			if p.Expr != nil {
				out = append(out, p.Expr)
			}
		}
		return out
	case *ast.ListLiteral:
		out := make([]ast.Node, len(v.Elements))
		for i, e := range v.Elements {
			out[i] = e
		}
		return out
	case *ast.TupleLiteral:
		out := make([]ast.Node, len(v.Elements))
		for i, e := range v.Elements {
			out[i] = e
		}
		return out
	case *ast.SetLiteral:
		out := make([]ast.Node, len(v.Elements))
		for i, e := range v.Elements {
			out[i] = e
		}
		return out
	case *ast.ObjectLiteral:
		var out []ast.Node
		for _, f := range v.Fields {
			if f.Spread != nil {
				out = append(out, f.Spread)
				continue
			}
			out = append(out, f.Value)
		}
		return out
	}
	return nil
}

// isStringLiteralLike reports whether e is a plain (non-interpolated)
// string literal, the "string-literal operand" spec.md §4.3.1's
// string-concatenation predicate requires.
func isStringLiteralLike(e ast.Expression) bool {
	_, ok := e.(*ast.StringLiteral)
	return ok
}

// numericOperators excludes equality and boolean operators per spec.md
// §4.3.1's "used numerically" predicate.
var numericOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
	"<": true, ">": true, "<=": true, ">=": true,
}

func isIdent(e ast.Expression, name string) bool {
	id, ok := e.(*ast.Identifier)
	return ok && id.Value == name
}

// UsedAsArray implements spec.md §4.3.1 "used as array": indexed,
// iterated over in a for-loop, or the receiver of an Array method
// (map/filter/.../push/pop). Being passed as a call argument does not
// count here.
func UsedAsArray(name string, body ast.Expression) bool {
	found, _ := visit(body, func(e ast.Expression) (bool, bool) {
		switch v := e.(type) {
		case *ast.IndexExpression:
			if isIdent(v.Receiver, name) {
				return true, true
			}
		case *ast.ForExpression:
			if isIdent(v.Iterable, name) {
				return true, true
			}
		case *ast.MethodCallExpression:
			if isIdent(v.Receiver, name) {
				switch v.Method {
				case "map", "filter", "reduce", "find", "any", "all", "join",
					"concat", "slice", "zip", "enumerate", "flat_map", "sort", "reverse", "push", "pop":
					return true, true
				}
			}
		}
		return false, false
	})
	return found
}

// UsedWithLen implements spec.md §4.3.1 "used with len(...) or .len()".
func UsedWithLen(name string, body ast.Expression) bool {
	found, _ := visit(body, func(e ast.Expression) (bool, bool) {
		switch v := e.(type) {
		case *ast.CallExpression:
			if isIdent(v.Function, "len") && len(v.Arguments) == 1 && isIdent(v.Arguments[0], name) {
				return true, true
			}
		case *ast.MethodCallExpression:
			if v.Method == "len" && isIdent(v.Receiver, name) {
				return true, true
			}
		}
		return false, false
	})
	return found
}

// UsedAsIndex implements spec.md §4.3.1 "used as index into another array".
func UsedAsIndex(name string, body ast.Expression) bool {
	found, _ := visit(body, func(e ast.Expression) (bool, bool) {
		if ix, ok := e.(*ast.IndexExpression); ok && isIdent(ix.Index, name) {
			return true, true
		}
		return false, false
	})
	return found
}

// UsedAsBool implements spec.md §4.3.1 "used as bool": an if/while
// condition, or an operand of `!`, `&&`, `||`.
func UsedAsBool(name string, body ast.Expression) bool {
	found, _ := visit(body, func(e ast.Expression) (bool, bool) {
		switch v := e.(type) {
		case *ast.IfExpression:
			if isIdent(v.Condition, name) {
				return true, true
			}
		case *ast.WhileExpression:
			if isIdent(v.Condition, name) {
				return true, true
			}
		case *ast.TernaryExpression:
			if isIdent(v.Condition, name) {
				return true, true
			}
		case *ast.PrefixExpression:
			if v.Operator == "!" && isIdent(v.Right, name) {
				return true, true
			}
		case *ast.InfixExpression:
			if (v.Operator == "&&" || v.Operator == "||") && (isIdent(v.Left, name) || isIdent(v.Right, name)) {
				return true, true
			}
		}
		return false, false
	})
	return found
}

// UsedInStringConcat implements spec.md §4.3.1 "used in string
// concatenation (`+` with a string-literal operand on either side)".
func UsedInStringConcat(name string, body ast.Expression) bool {
	found, _ := visit(body, func(e ast.Expression) (bool, bool) {
		inf, ok := e.(*ast.InfixExpression)
		if !ok || inf.Operator != "+" {
			return false, false
		}
		left, right := inf.Left, inf.Right
		if isIdent(left, name) && isStringLiteralLike(right) {
			return true, true
		}
		if isIdent(right, name) && isStringLiteralLike(left) {
			return true, true
		}
		return false, false
	})
	return found
}

// UsedNumerically implements spec.md §4.3.1 "used numerically": operand
// of a strictly-numeric binary operator, excluding equality/boolean
// operators and the string-concat case handled by UsedInStringConcat.
func UsedNumerically(name string, body ast.Expression) bool {
	found, _ := visit(body, func(e ast.Expression) (bool, bool) {
		inf, ok := e.(*ast.InfixExpression)
		if !ok || !numericOperators[inf.Operator] {
			return false, false
		}
		if inf.Operator == "+" {
			if (isIdent(inf.Left, name) && isStringLiteralLike(inf.Right)) ||
				(isIdent(inf.Right, name) && isStringLiteralLike(inf.Left)) {
				return false, false
			}
		}
		if isIdent(inf.Left, name) || isIdent(inf.Right, name) {
			return true, true
		}
		return false, false
	})
	return found
}

// UsedAsFunction implements spec.md §4.3.1 "used as a function (appears
// in call position)".
func UsedAsFunction(name string, body ast.Expression) bool {
	found, _ := visit(body, func(e ast.Expression) (bool, bool) {
		if call, ok := e.(*ast.CallExpression); ok && isIdent(call.Function, name) {
			return true, true
		}
		return false, false
	})
	return found
}

// PassedAsArgument implements spec.md §4.3.1 "passed as an argument to
// another call".
func PassedAsArgument(name string, body ast.Expression) bool {
	found, _ := visit(body, func(e ast.Expression) (bool, bool) {
		switch v := e.(type) {
		case *ast.CallExpression:
			for _, a := range v.Arguments {
				if isIdent(a, name) {
					return true, true
				}
			}
		case *ast.MethodCallExpression:
			for _, a := range v.Arguments {
				if isIdent(a, name) {
					return true, true
				}
			}
		}
		return false, false
	})
	return found
}

// UsedWithNestedIndexing implements spec.md §4.3.1 "accessed with nested
// indexing (`a[i][j]`)".
func UsedWithNestedIndexing(name string, body ast.Expression) bool {
	found, _ := visit(body, func(e ast.Expression) (bool, bool) {
		outer, ok := e.(*ast.IndexExpression)
		if !ok {
			return false, false
		}
		inner, ok := outer.Receiver.(*ast.IndexExpression)
		if !ok {
			return false, false
		}
		if isIdent(inner.Receiver, name) {
			return true, true
		}
		return false, false
	})
	return found
}

// SynthesizeParamType implements spec.md §4.3.1's type-synthesis
// precedence table, first match wins.
func SynthesizeParamType(name string, body ast.Expression) string {
	switch {
	case UsedWithNestedIndexing(name, body):
		return "Vec<Vec<i32>>"
	case UsedAsArray(name, body):
		return "Vec<i32>"
	case UsedWithLen(name, body):
		return "Vec<i32>"
	case UsedAsIndex(name, body):
		return "usize"
	case UsedAsFunction(name, body):
		return "impl Fn(_) -> _"
	case UsedInStringConcat(name, body):
		return "&str"
	case UsedNumerically(name, body):
		return "i32"
	case UsedAsBool(name, body):
		return "bool"
	default:
		return ""
	}
}
