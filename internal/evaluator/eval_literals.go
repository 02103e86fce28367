package evaluator

import (
	"strings"

	"github.com/funvibe/funxy/internal/ast"
)

func (ev *Evaluator) evalInterpolatedString(n *ast.InterpolatedStringLiteral, env *Environment) Object {
	var b strings.Builder
	for _, part := range n.Parts {
		if part.Expr == nil {
			b.WriteString(part.Text)
			continue
		}
		v := ev.Eval(part.Expr, env)
		if IsSignal(v) {
			return v
		}
		b.WriteString(DisplayString(v))
	}
	return &String{Value: b.String()}
}

func (ev *Evaluator) evalExprList(exprs []ast.Expression, env *Environment) ([]Object, Object) {
	out := make([]Object, 0, len(exprs))
	for _, e := range exprs {
		if sp, ok := e.(*ast.SpreadExpression); ok {
			v := ev.Eval(sp.Expression, env)
			if IsSignal(v) {
				return nil, v
			}
			switch col := v.(type) {
			case *Array:
				out = append(out, col.Elements...)
			case *Tuple:
				out = append(out, col.Elements...)
			default:
				out = append(out, v)
			}
			continue
		}
		v := ev.Eval(e, env)
		if IsSignal(v) {
			return nil, v
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *Evaluator) evalListLiteral(n *ast.ListLiteral, env *Environment) Object {
	elems, sig := ev.evalExprList(n.Elements, env)
	if sig != nil {
		return sig
	}
	return &Array{Elements: elems}
}

func (ev *Evaluator) evalTupleLiteral(n *ast.TupleLiteral, env *Environment) Object {
	elems, sig := ev.evalExprList(n.Elements, env)
	if sig != nil {
		return sig
	}
	return &Tuple{Elements: elems}
}

func (ev *Evaluator) evalSetLiteral(n *ast.SetLiteral, env *Environment) Object {
	elems, sig := ev.evalExprList(n.Elements, env)
	if sig != nil {
		return sig
	}
	o := NewObj()
	o.Tag = "Set"
	for _, e := range elems {
		o.Pairs[setKey(e)] = e
	}
	return o
}

func setKey(o Object) string { return DebugString(o) }

func (ev *Evaluator) evalFieldsInto(fields []ast.ObjectField, env *Environment, into map[string]Object) Object {
	for _, f := range fields {
		if f.Spread != nil {
			base := ev.Eval(f.Spread, env)
			if IsSignal(base) {
				return base
			}
			for k, v := range fieldsOf(base) {
				into[k] = v
			}
			continue
		}
		key := fieldKeyString(f.Key)
		val := ev.Eval(f.Value, env)
		if IsSignal(val) {
			return val
		}
		into[key] = val
	}
	return nil
}

func fieldKeyString(key ast.Expression) string {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Value
	case *ast.StringLiteral:
		return k.Value
	case *ast.AtomLiteral:
		return k.Name
	default:
		return key.TokenLiteral()
	}
}

func fieldsOf(o Object) map[string]Object {
	switch v := o.(type) {
	case *Obj:
		return v.Pairs
	case *ObjectMut:
		return v.Snapshot()
	case *Struct:
		return v.Fields
	case *Class:
		c := make(map[string]Object)
		v.mu.RLock()
		for k, val := range v.Fields {
			c[k] = val
		}
		v.mu.RUnlock()
		return c
	default:
		return nil
	}
}

func (ev *Evaluator) evalObjectLiteral(n *ast.ObjectLiteral, env *Environment) Object {
	o := NewObj()
	if sig := ev.evalFieldsInto(n.Fields, env, o.Pairs); sig != nil {
		return sig
	}
	return o
}

// evalStructLiteral builds a Struct for a struct declaration or, when
// Name resolves to a Class, a Class instance (spec.md §3.4, §4.4.1
// "Struct/Class construction").
func (ev *Evaluator) evalStructLiteral(n *ast.StructLiteral, env *Environment) Object {
	fields := make(map[string]Object)
	if n.Base != nil {
		base := ev.Eval(n.Base, env)
		if IsSignal(base) {
			return base
		}
		for k, v := range fieldsOf(base) {
			fields[k] = v
		}
	}
	if sig := ev.evalFieldsInto(n.Fields, env, fields); sig != nil {
		return sig
	}
	name := n.Name.Value
	if cd, ok := ev.Classes[name]; ok {
		cls := NewClass(name, ev.classMethodTable(cd))
		for k, v := range fields {
			cls.Fields[k] = v
		}
		return cls
	}
	return &Struct{Name: name, Fields: fields}
}

func (ev *Evaluator) evalDataFrameLiteral(n *ast.DataFrameLiteral, env *Environment) Object {
	df := NewDataFrame()
	for _, col := range n.Columns {
		vals, sig := ev.evalExprList(col.Values, env)
		if sig != nil {
			return sig
		}
		df.ColumnOrder = append(df.ColumnOrder, col.Name)
		df.Columns[col.Name] = vals
	}
	return df
}

func (ev *Evaluator) evalFunctionExpression(n *ast.FunctionExpression, env *Environment) Object {
	cl := &Closure{Name: "", Parameters: n.Parameters, Body: n.Body, Env: env, IsAsync: n.IsAsync, Receiver: n.Receiver}
	if n.Name != nil {
		cl.Name = n.Name.Value
		env.Bind(n.Name.Value, cl)
	}
	return cl
}
