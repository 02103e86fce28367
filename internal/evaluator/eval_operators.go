package evaluator

import (
	"math"

	"github.com/funvibe/funxy/internal/ast"
)

// Truthy implements spec.md §4.4.2: Bool self; numeric zero false; Nil
// false; empty String/Array/Tuple/Object/Set false; else true.
func Truthy(o Object) bool {
	switch v := o.(type) {
	case *Nil:
		return false
	case *Bool:
		return v.Value
	case *Integer:
		return v.Value != 0
	case *Float:
		return v.Value != 0
	case *Byte:
		return v.Value != 0
	case *String:
		return v.Value != ""
	case *Array:
		return len(v.Elements) > 0
	case *Tuple:
		return len(v.Elements) > 0
	case *Obj:
		return len(v.Pairs) > 0
	default:
		return true
	}
}

// Equal implements spec.md §4.4.2 structural equality: NaN unequal to
// itself; Float/Integer cross-compare by numeric value.
func Equal(a, b Object) bool {
	af, aIsNum := asFloat(a)
	bf, bIsNum := asFloat(b)
	if aIsNum && bIsNum {
		if math.IsNaN(af) || math.IsNaN(bf) {
			return false
		}
		return af == bf
	}
	switch av := a.(type) {
	case *Bool:
		bv, ok := b.(*Bool)
		return ok && av.Value == bv.Value
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Atom:
		bv, ok := b.(*Atom)
		return ok && av.Name == bv.Name
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *EnumVariant:
		bv, ok := b.(*EnumVariant)
		if !ok || av.VariantName != bv.VariantName || len(av.Payload) != len(bv.Payload) {
			return false
		}
		for i := range av.Payload {
			if !Equal(av.Payload[i], bv.Payload[i]) {
				return false
			}
		}
		return true
	case *Struct:
		bv, ok := b.(*Struct)
		if !ok || av.Name != bv.Name || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for k, v := range av.Fields {
			bvv, ok := bv.Fields[k]
			if !ok || !Equal(v, bvv) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func asFloat(o Object) (float64, bool) {
	switch v := o.(type) {
	case *Integer:
		return float64(v.Value), true
	case *Float:
		return v.Value, true
	case *Byte:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func (ev *Evaluator) evalPrefix(n *ast.PrefixExpression, env *Environment) Object {
	right := ev.Eval(n.Right, env)
	if IsSignal(right) {
		return right
	}
	switch n.Operator {
	case "!":
		return NativeBool(!Truthy(right))
	case "-":
		switch v := right.(type) {
		case *Integer:
			return &Integer{Value: -v.Value}
		case *Float:
			return &Float{Value: -v.Value}
		}
		return NewError("TypeError", "unary - not supported on %s", right.Type())
	case "~":
		if v, ok := right.(*Integer); ok {
			return &Integer{Value: ^v.Value}
		}
		return NewError("TypeError", "unary ~ not supported on %s", right.Type())
	}
	return NewError("RuntimeError", "unknown prefix operator %s", n.Operator)
}

func (ev *Evaluator) evalIf(n *ast.IfExpression, env *Environment) Object {
	if n.IfLetTarget != nil {
		val := ev.Eval(n.Condition, env)
		if IsSignal(val) {
			return val
		}
		bindings, ok := MatchPattern(n.IfLetTarget, val)
		if ok {
			scope := NewEnclosedEnvironment(env)
			for k, v := range bindings {
				scope.Bind(k, v)
			}
			return ev.Eval(n.Consequence, scope)
		}
		if n.Alternative != nil {
			return ev.Eval(n.Alternative, env)
		}
		return NIL
	}
	cond := ev.Eval(n.Condition, env)
	if IsSignal(cond) {
		return cond
	}
	if Truthy(cond) {
		return ev.Eval(n.Consequence, NewEnclosedEnvironment(env))
	}
	if n.Alternative != nil {
		return ev.Eval(n.Alternative, env)
	}
	return NIL
}

func (ev *Evaluator) evalTernary(n *ast.TernaryExpression, env *Environment) Object {
	cond := ev.Eval(n.Condition, env)
	if IsSignal(cond) {
		return cond
	}
	if Truthy(cond) {
		return ev.Eval(n.Then, env)
	}
	return ev.Eval(n.Else, env)
}

func (ev *Evaluator) evalNullCoalesce(n *ast.NullCoalesceExpression, env *Environment) Object {
	left := ev.Eval(n.Left, env)
	if IsSignal(left) {
		return left
	}
	if _, isNil := left.(*Nil); isNil {
		return ev.Eval(n.Right, env)
	}
	return left
}

func (ev *Evaluator) evalCast(n *ast.CastExpression, env *Environment) Object {
	val := ev.Eval(n.Value, env)
	if IsSignal(val) {
		return val
	}
	target := n.TargetTy.String()
	switch target {
	case "Int", "i32", "i64", "usize":
		switch v := val.(type) {
		case *Integer:
			return v
		case *Float:
			return &Integer{Value: int64(v.Value)}
		case *Byte:
			return &Integer{Value: int64(v.Value)}
		}
	case "Float", "f32", "f64":
		switch v := val.(type) {
		case *Integer:
			return &Float{Value: float64(v.Value)}
		case *Float:
			return v
		case *Byte:
			return &Float{Value: float64(v.Value)}
		}
	case "Byte", "u8":
		switch v := val.(type) {
		case *Integer:
			return &Byte{Value: byte(v.Value)}
		case *Byte:
			return v
		}
	}
	return NewError("TypeError", "cannot cast %s as %s", val.Type(), target)
}

func (ev *Evaluator) evalRange(n *ast.RangeExpression, env *Environment) Object {
	start := ev.Eval(n.Start, env)
	if IsSignal(start) {
		return start
	}
	end := ev.Eval(n.End, env)
	if IsSignal(end) {
		return end
	}
	si, ok1 := start.(*Integer)
	ei, ok2 := end.(*Integer)
	if !ok1 || !ok2 {
		return NewError("TypeError", "range bounds must be Integer")
	}
	return &Range{Start: si.Value, End: ei.Value, Inclusive: n.Inclusive}
}

func (ev *Evaluator) evalIncDec(n *ast.IncDecExpression, env *Environment) Object {
	cur := ev.Eval(n.Target, env)
	if IsSignal(cur) {
		return cur
	}
	i, ok := cur.(*Integer)
	if !ok {
		return NewError("TypeError", "%s not supported on %s", n.Operator, cur.Type())
	}
	delta := int64(1)
	if n.Operator == "--" {
		delta = -1
	}
	next := &Integer{Value: i.Value + delta}
	if id, ok := n.Target.(*ast.Identifier); ok {
		env.Mutate(id.Value, next)
	}
	if n.Prefix {
		return next
	}
	return i
}

// placeholderIdent is the bare-`_` argument substituted by pipeline
// stages (spec.md §4.4.1 "Pipeline").
const placeholderIdent = "_"

func (ev *Evaluator) evalPipeline(n *ast.PipelineExpression, env *Environment) Object {
	cur := ev.Eval(n.Source, env)
	if IsSignal(cur) {
		return cur
	}
	for _, stage := range n.Stages {
		scope := NewEnclosedEnvironment(env)
		scope.Bind(placeholderIdent, cur)
		switch s := stage.(type) {
		case *ast.CallExpression:
			if containsPlaceholder(s.Arguments) {
				cur = ev.evalCall(s, scope)
			} else {
				callee := ev.Eval(s.Function, scope)
				if IsSignal(callee) {
					return callee
				}
				args, sig := ev.evalExprList(s.Arguments, scope)
				if sig != nil {
					return sig
				}
				args = append([]Object{cur}, args...)
				cur = ev.applyFunction(callee, args, s)
			}
		default:
			callee := ev.Eval(stage, scope)
			if IsSignal(callee) {
				return callee
			}
			cur = ev.applyFunction(callee, []Object{cur}, stage)
		}
		if IsSignal(cur) {
			return cur
		}
	}
	return cur
}

func containsPlaceholder(args []ast.Expression) bool {
	for _, a := range args {
		if id, ok := a.(*ast.Identifier); ok && id.Value == placeholderIdent {
			return true
		}
	}
	return false
}
