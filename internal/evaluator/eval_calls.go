package evaluator

import "github.com/funvibe/funxy/internal/ast"

func (ev *Evaluator) evalCall(n *ast.CallExpression, env *Environment) Object {
	callee := ev.Eval(n.Function, env)
	if IsSignal(callee) {
		return callee
	}
	args, sig := ev.evalExprList(n.Arguments, env)
	if sig != nil {
		return sig
	}
	return ev.applyFunctionNamed(callee, args, n.NamedArgs, env, n)
}

func (ev *Evaluator) applyFunction(callee Object, args []Object, node ast.Node) Object {
	return ev.applyFunctionNamed(callee, args, nil, nil, node)
}

func (ev *Evaluator) applyFunctionNamed(callee Object, args []Object, named []ast.NamedArg, callerEnv *Environment, node ast.Node) Object {
	switch fn := callee.(type) {
	case *Builtin:
		return fn.Fn(ev, args)
	case *Closure:
		scope, sig := ev.bindParams(fn, args, named, callerEnv)
		if sig != nil {
			return sig
		}
		ev.CallStack = append(ev.CallStack, CallFrame{Name: fn.Name, Node: node})
		result := ev.Eval(fn.Body, scope)
		ev.CallStack = ev.CallStack[:len(ev.CallStack)-1]
		if rv, ok := result.(*ReturnSignal); ok {
			return rv.Value
		}
		return result
	default:
		return NewError("TypeError", "%s is not callable", callee.Type())
	}
}

func (ev *Evaluator) bindParams(fn *Closure, args []Object, named []ast.NamedArg, callerEnv *Environment) (*Environment, Object) {
	scope := NewEnclosedEnvironment(fn.Env)
	if fn.Receiver != nil {
		// receiver binding is handled by the caller (evalMethodCall),
		// which passes it as args[0] ahead of the declared parameters.
		if len(args) == 0 {
			return nil, NewError("RuntimeError", "missing receiver for method %s", fn.Name)
		}
		scope.Bind(fn.Receiver.Name.Value, args[0])
		args = args[1:]
	}
	namedByName := make(map[string]ast.Expression, len(named))
	for _, na := range named {
		namedByName[na.Name] = na.Value
	}
	pos := 0
	for _, p := range fn.Parameters {
		if v, ok := namedByName[p.Name.Value]; ok {
			if callerEnv == nil {
				callerEnv = scope
			}
			val := ev.Eval(v, callerEnv)
			if IsSignal(val) {
				return nil, val
			}
			scope.Bind(p.Name.Value, val)
			continue
		}
		if pos < len(args) {
			scope.Bind(p.Name.Value, args[pos])
			pos++
			continue
		}
		if p.Default != nil {
			val := ev.Eval(p.Default, scope)
			if IsSignal(val) {
				return nil, val
			}
			scope.Bind(p.Name.Value, val)
			continue
		}
		return nil, NewError("RuntimeError", "missing argument for parameter %s", p.Name.Value)
	}
	return scope, nil
}

func (ev *Evaluator) evalFieldAccess(n *ast.FieldAccessExpression, env *Environment) Object {
	recv := ev.Eval(n.Receiver, env)
	if IsSignal(recv) {
		if n.Optional {
			if _, ok := recv.(*Nil); ok {
				return NIL
			}
		}
		return recv
	}
	if n.Optional {
		if _, ok := recv.(*Nil); ok {
			return NIL
		}
	}
	if tup, ok := recv.(*Tuple); ok {
		idx := tupleIndex(n.Field)
		if idx >= 0 && idx < len(tup.Elements) {
			return tup.Elements[idx]
		}
		return NewError("RuntimeError", "tuple index %s out of range", n.Field)
	}
	fields := fieldsOf(recv)
	if fields != nil {
		if v, ok := fields[n.Field]; ok {
			return v
		}
		// qualified StructName::method / ClassName::method lookup
		if s, ok := recv.(*Struct); ok {
			if m, ok := ev.Methods[s.Name+"::"+n.Field]; ok {
				return m
			}
		}
		if c, ok := recv.(*Class); ok {
			if m, ok := c.Methods[n.Field]; ok {
				return m
			}
		}
		return NewError("NameError", "no field or method %s on %s", n.Field, recv.Type())
	}
	return NewError("TypeError", "cannot access field %s on %s", n.Field, recv.Type())
}

func tupleIndex(field string) int {
	n := 0
	any := false
	for _, r := range field {
		if r < '0' || r > '9' {
			return -1
		}
		any = true
		n = n*10 + int(r-'0')
	}
	if !any {
		return -1
	}
	return n
}

func (ev *Evaluator) evalIndex(n *ast.IndexExpression, env *Environment) Object {
	recv := ev.Eval(n.Receiver, env)
	if IsSignal(recv) {
		return recv
	}
	idx := ev.Eval(n.Index, env)
	if IsSignal(idx) {
		return idx
	}
	return indexInto(recv, idx)
}

func indexInto(recv, idx Object) Object {
	switch v := recv.(type) {
	case *Array:
		i, ok := idx.(*Integer)
		if !ok {
			return NewError("TypeError", "array index must be Integer")
		}
		if i.Value < 0 || int(i.Value) >= len(v.Elements) {
			return NewError("RuntimeError", "index %d out of range", i.Value)
		}
		return v.Elements[i.Value]
	case *Tuple:
		i, ok := idx.(*Integer)
		if !ok || i.Value < 0 || int(i.Value) >= len(v.Elements) {
			return NewError("RuntimeError", "tuple index out of range")
		}
		return v.Elements[i.Value]
	case *String:
		i, ok := idx.(*Integer)
		runes := []rune(v.Value)
		if !ok || i.Value < 0 || int(i.Value) >= len(runes) {
			return NewError("RuntimeError", "string index out of range")
		}
		return &String{Value: string(runes[i.Value])}
	case *Obj:
		key := indexKeyString(idx)
		if val, ok := v.Pairs[key]; ok {
			return val
		}
		return NIL
	case *ObjectMut:
		key := indexKeyString(idx)
		if val, ok := v.Get(key); ok {
			return val
		}
		return NIL
	case *DataFrame:
		if s, ok := idx.(*String); ok {
			if col, ok := v.Columns[s.Value]; ok {
				return &Array{Elements: col}
			}
		}
		return NewError("RuntimeError", "unknown DataFrame column")
	default:
		return NewError("TypeError", "%s is not indexable", recv.Type())
	}
}

func indexKeyString(idx Object) string {
	if s, ok := idx.(*String); ok {
		return s.Value
	}
	return DisplayString(idx)
}

func (ev *Evaluator) evalAssign(n *ast.AssignExpression, env *Environment) Object {
	val := ev.Eval(n.Value, env)
	if IsSignal(val) {
		return val
	}
	if sig := ev.assignTo(n.Left, val, env); sig != nil {
		return sig
	}
	return val
}

// assignTo implements spec.md §4.4.1 "Assign": identifier mutate-up-
// stack; field mutate on ObjectMut/Class in place, rebind owning
// identifier for value-semantics Struct; index rebinds the owning
// identifier (structural rebind, per spec.md §9 open question).
func (ev *Evaluator) assignTo(target ast.Expression, val Object, env *Environment) Object {
	switch t := target.(type) {
	case *ast.Identifier:
		env.Mutate(t.Value, val)
		return nil
	case *ast.FieldAccessExpression:
		recv := ev.Eval(t.Receiver, env)
		if IsSignal(recv) {
			return recv
		}
		switch v := recv.(type) {
		case *ObjectMut:
			v.Set(t.Field, val)
			return nil
		case *Class:
			v.Set(t.Field, val)
			return nil
		case *Struct:
			updated := v.WithField(t.Field, val)
			return ev.rebindReceiver(t.Receiver, updated, env)
		}
		return NewError("TypeError", "cannot assign field %s on %s", t.Field, recv.Type())
	case *ast.IndexExpression:
		recv := ev.Eval(t.Receiver, env)
		if IsSignal(recv) {
			return recv
		}
		idx := ev.Eval(t.Index, env)
		if IsSignal(idx) {
			return idx
		}
		switch v := recv.(type) {
		case *Array:
			i, ok := idx.(*Integer)
			if !ok || i.Value < 0 || int(i.Value) >= len(v.Elements) {
				return NewError("RuntimeError", "index out of range")
			}
			next := make([]Object, len(v.Elements))
			copy(next, v.Elements)
			next[i.Value] = val
			return ev.rebindReceiver(t.Receiver, &Array{Elements: next}, env)
		case *ObjectMut:
			v.Set(indexKeyString(idx), val)
			return nil
		}
		return NewError("TypeError", "cannot assign index on %s", recv.Type())
	}
	return NewError("RuntimeError", "invalid assignment target")
}

func (ev *Evaluator) rebindReceiver(receiver ast.Expression, val Object, env *Environment) Object {
	if id, ok := receiver.(*ast.Identifier); ok {
		env.Mutate(id.Value, val)
		return nil
	}
	return ev.assignTo(receiver, val, env)
}

func (ev *Evaluator) evalCompoundAssign(n *ast.CompoundAssignExpression, env *Environment) Object {
	cur := ev.Eval(n.Left, env)
	if IsSignal(cur) {
		return cur
	}
	rhs := ev.Eval(n.Value, env)
	if IsSignal(rhs) {
		return rhs
	}
	next := applyCompoundOp(n.Operator, cur, rhs)
	if IsError(next) {
		return next
	}
	if sig := ev.assignTo(n.Left, next, env); sig != nil {
		return sig
	}
	return next
}

func applyCompoundOp(op string, left, right Object) Object {
	if ls, ok := left.(*String); ok && op == "+" {
		rs, ok := right.(*String)
		if !ok {
			return NewError("TypeError", "cannot add String and %s", right.Type())
		}
		return &String{Value: ls.Value + rs.Value}
	}
	lf, lIsNum := asFloat(left)
	rf, rIsNum := asFloat(right)
	if !lIsNum || !rIsNum {
		return NewError("TypeError", "operator %s= not supported between %s and %s", op, left.Type(), right.Type())
	}
	_, lIsFloat := left.(*Float)
	_, rIsFloat := right.(*Float)
	if !lIsFloat && !rIsFloat {
		if v, ok := evalIntInfix(op, left.(*Integer).Value, right.(*Integer).Value); ok {
			return v
		}
	}
	return evalFloatInfix(op, lf, rf)
}
