package evaluator

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
)

// namespaceObject lazily synthesizes a tagged placeholder for a
// registered stdlib namespace name on first lookup (spec.md §3.5,
// §4.5 "Namespace dispatch"). The real work happens in evalMethodCall,
// which rewrites `Namespace.method(...)` into a call of the
// `Namespace_method` builtin before this value is ever consulted.
func (ev *Evaluator) namespaceObject(name string) Object {
	for _, ns := range config.SynthesizedGlobals {
		if ns == name {
			if obj, ok := ev.Namespaces[name]; ok {
				return obj
			}
			o := NewObj()
			o.Tag = "Namespace:" + name
			ev.Namespaces[name] = o
			return o
		}
	}
	return nil
}

func isNamespaceName(name string) bool {
	for _, ns := range config.SynthesizedGlobals {
		if ns == name {
			return true
		}
	}
	return false
}

// evalMethodCall implements spec.md §4.5 "Method dispatch". Turbofish
// type arguments (TurbofishTypes) are not consulted: dispatch uses only
// the receiver's runtime type and the method name.
func (ev *Evaluator) evalMethodCall(n *ast.MethodCallExpression, env *Environment) Object {
	if id, ok := n.Receiver.(*ast.Identifier); ok {
		if _, bound := env.Get(id.Value); !bound && isNamespaceName(id.Value) {
			return ev.callNamespaceMethod(id.Value, n, env)
		}
	}

	recv := ev.Eval(n.Receiver, env)
	if IsSignal(recv) {
		if n.Optional {
			if _, isNil := recv.(*Nil); isNil {
				return NIL
			}
		}
		return recv
	}
	if n.Optional {
		if _, isNil := recv.(*Nil); isNil {
			return NIL
		}
	}
	args, sig := ev.evalExprList(n.Arguments, env)
	if sig != nil {
		return sig
	}

	switch v := recv.(type) {
	case *String:
		return stringMethod(v, n.Method, args)
	case *Integer:
		return integerMethod(v, n.Method, args)
	case *Float:
		return floatMethod(v, n.Method, args)
	case *Array:
		result := arrayMethod(ev, v, n.Method, args)
		if config.MutatingArrayMethods[n.Method] {
			ev.rebindIfIdentifier(n.Receiver, result, env)
		}
		return result
	case *Tuple:
		return tupleMethod(v, n.Method, args)
	case *Range:
		return arrayMethod(ev, &Array{Elements: v.Values()}, n.Method, args)
	case *DataFrame:
		return ev.dataFrameMethod(v, n.Method, n.Arguments, args, env)
	case *HtmlDocument:
		return htmlDocMethod(v, n.Method, args)
	case *HtmlElement:
		return htmlElementMethod(v, n.Method, args)
	case *EnumVariant:
		return ev.enumMethod(v, n.Method, args)
	case *Struct:
		return ev.structMethod(v, n.Method, args, n.Receiver, env)
	case *Class:
		return ev.classMethod(v, n.Method, args)
	case *ObjectMut:
		return ev.objectMutMethod(v, n.Method, args)
	case *Obj:
		return ev.objMethod(v, n.Method, args)
	}
	if n.Method == "to_string" {
		return &String{Value: DisplayString(recv)}
	}
	return NewError("RuntimeError", "unknown method %s on %s", n.Method, recv.Type())
}

func (ev *Evaluator) rebindIfIdentifier(receiver ast.Expression, val Object, env *Environment) {
	if id, ok := receiver.(*ast.Identifier); ok {
		if IsError(val) {
			return
		}
		env.Mutate(id.Value, val)
	}
}

func (ev *Evaluator) callNamespaceMethod(ns string, n *ast.MethodCallExpression, env *Environment) Object {
	args, sig := ev.evalExprList(n.Arguments, env)
	if sig != nil {
		return sig
	}
	return callBuiltinFunction(ev, ns+"_"+n.Method, args)
}

// --- String -----------------------------------------------------------

func stringMethod(s *String, method string, args []Object) Object {
	switch method {
	case "len":
		return &Integer{Value: int64(len([]rune(s.Value)))}
	case "upper", "to_upper":
		return &String{Value: strings.ToUpper(s.Value)}
	case "lower", "to_lower":
		return &String{Value: strings.ToLower(s.Value)}
	case "trim":
		return &String{Value: strings.TrimSpace(s.Value)}
	case "split":
		sep := argString(args, 0, " ")
		parts := strings.Split(s.Value, sep)
		elems := make([]Object, len(parts))
		for i, p := range parts {
			elems[i] = &String{Value: p}
		}
		return &Array{Elements: elems}
	case "contains":
		return NativeBool(strings.Contains(s.Value, argString(args, 0, "")))
	case "replace":
		return &String{Value: strings.ReplaceAll(s.Value, argString(args, 0, ""), argString(args, 1, ""))}
	case "starts_with":
		return NativeBool(strings.HasPrefix(s.Value, argString(args, 0, "")))
	case "ends_with":
		return NativeBool(strings.HasSuffix(s.Value, argString(args, 0, "")))
	case "chars":
		var elems []Object
		for _, r := range s.Value {
			elems = append(elems, &String{Value: string(r)})
		}
		return &Array{Elements: elems}
	case "bytes":
		var elems []Object
		for _, b := range []byte(s.Value) {
			elems = append(elems, &Byte{Value: b})
		}
		return &Array{Elements: elems}
	case "parse_int":
		i, err := strconv.ParseInt(strings.TrimSpace(s.Value), 10, 64)
		if err != nil {
			return &EnumVariant{EnumName: "Result", VariantName: "Err", Payload: []Object{&String{Value: err.Error()}}}
		}
		return &EnumVariant{EnumName: "Result", VariantName: "Ok", Payload: []Object{&Integer{Value: i}}}
	case "parse_float":
		f, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
		if err != nil {
			return &EnumVariant{EnumName: "Result", VariantName: "Err", Payload: []Object{&String{Value: err.Error()}}}
		}
		return &EnumVariant{EnumName: "Result", VariantName: "Ok", Payload: []Object{&Float{Value: f}}}
	case "to_string":
		return s
	case "repeat":
		n := 0
		if len(args) > 0 {
			if i, ok := args[0].(*Integer); ok {
				n = int(i.Value)
			}
		}
		return &String{Value: strings.Repeat(s.Value, n)}
	case "is_empty":
		return NativeBool(s.Value == "")
	}
	return NewError("RuntimeError", "unknown method %s on String", method)
}

func argString(args []Object, i int, def string) string {
	if i < len(args) {
		if s, ok := args[i].(*String); ok {
			return s.Value
		}
	}
	return def
}

// --- numerics -----------------------------------------------------------

func integerMethod(v *Integer, method string, args []Object) Object {
	switch method {
	case "abs":
		if v.Value < 0 {
			return &Integer{Value: -v.Value}
		}
		return v
	case "to_string":
		return &String{Value: v.Inspect()}
	case "pow":
		if len(args) > 0 {
			if e, ok := args[0].(*Integer); ok {
				r, _ := evalIntInfix("**", v.Value, e.Value)
				return r
			}
		}
	}
	if r, ok := evalIntInfix(method, v.Value, 0); ok && isBitOp(method) {
		return r
	}
	return NewError("RuntimeError", "unknown method %s on Integer", method)
}

func isBitOp(op string) bool {
	switch op {
	case "&", "|", "^", "<<", ">>":
		return true
	}
	return false
}

func floatMethod(v *Float, method string, args []Object) Object {
	switch method {
	case "abs":
		return &Float{Value: math.Abs(v.Value)}
	case "floor":
		return &Float{Value: math.Floor(v.Value)}
	case "ceil":
		return &Float{Value: math.Ceil(v.Value)}
	case "round":
		return &Float{Value: math.Round(v.Value)}
	case "sqrt":
		return &Float{Value: math.Sqrt(v.Value)}
	case "to_string":
		return &String{Value: v.Inspect()}
	}
	return NewError("RuntimeError", "unknown method %s on Float", method)
}

// --- Tuple -----------------------------------------------------------

func tupleMethod(t *Tuple, method string, args []Object) Object {
	switch method {
	case "len":
		return &Integer{Value: int64(len(t.Elements))}
	case "to_string":
		return &String{Value: t.Inspect()}
	}
	return NewError("RuntimeError", "unknown method %s on Tuple", method)
}

// --- Array -----------------------------------------------------------

func arrayMethod(ev *Evaluator, a *Array, method string, args []Object) Object {
	switch method {
	case "len":
		return &Integer{Value: int64(len(a.Elements))}
	case "first":
		if len(a.Elements) == 0 {
			return NIL
		}
		return a.Elements[0]
	case "last":
		if len(a.Elements) == 0 {
			return NIL
		}
		return a.Elements[len(a.Elements)-1]
	case "is_empty":
		return NativeBool(len(a.Elements) == 0)
	case "push":
		next := append(append([]Object{}, a.Elements...), args...)
		return &Array{Elements: next}
	case "pop":
		if len(a.Elements) == 0 {
			return a
		}
		return &Array{Elements: a.Elements[:len(a.Elements)-1]}
	case "sort":
		next := append([]Object{}, a.Elements...)
		sort.SliceStable(next, func(i, j int) bool { return lessThan(next[i], next[j]) })
		return &Array{Elements: next}
	case "reverse":
		next := make([]Object, len(a.Elements))
		for i, e := range a.Elements {
			next[len(a.Elements)-1-i] = e
		}
		return &Array{Elements: next}
	case "map":
		if len(args) == 0 {
			return a
		}
		out := make([]Object, len(a.Elements))
		for i, e := range a.Elements {
			out[i] = ev.applyFunction(args[0], []Object{e}, nil)
			if IsSignal(out[i]) {
				return out[i]
			}
		}
		return &Array{Elements: out}
	case "filter":
		if len(args) == 0 {
			return a
		}
		var out []Object
		for _, e := range a.Elements {
			keep := ev.applyFunction(args[0], []Object{e}, nil)
			if IsSignal(keep) {
				return keep
			}
			if Truthy(keep) {
				out = append(out, e)
			}
		}
		return &Array{Elements: out}
	case "reduce":
		if len(args) < 2 {
			return NewError("RuntimeError", "reduce requires an initial value and a function")
		}
		acc := args[0]
		for _, e := range a.Elements {
			acc = ev.applyFunction(args[1], []Object{acc, e}, nil)
			if IsSignal(acc) {
				return acc
			}
		}
		return acc
	case "find":
		if len(args) == 0 {
			return NIL
		}
		for _, e := range a.Elements {
			ok := ev.applyFunction(args[0], []Object{e}, nil)
			if IsSignal(ok) {
				return ok
			}
			if Truthy(ok) {
				return e
			}
		}
		return NIL
	case "any":
		for _, e := range a.Elements {
			ok := ev.applyFunction(args[0], []Object{e}, nil)
			if IsSignal(ok) {
				return ok
			}
			if Truthy(ok) {
				return TRUE
			}
		}
		return FALSE
	case "all":
		for _, e := range a.Elements {
			ok := ev.applyFunction(args[0], []Object{e}, nil)
			if IsSignal(ok) {
				return ok
			}
			if !Truthy(ok) {
				return FALSE
			}
		}
		return TRUE
	case "contains":
		if len(args) == 0 {
			return FALSE
		}
		for _, e := range a.Elements {
			if Equal(e, args[0]) {
				return TRUE
			}
		}
		return FALSE
	case "join":
		sep := argString(args, 0, "")
		parts := make([]string, len(a.Elements))
		for i, e := range a.Elements {
			parts[i] = DisplayString(e)
		}
		return &String{Value: strings.Join(parts, sep)}
	case "concat":
		next := append([]Object{}, a.Elements...)
		for _, arg := range args {
			if other, ok := arg.(*Array); ok {
				next = append(next, other.Elements...)
			}
		}
		return &Array{Elements: next}
	case "slice":
		lo, hi := 0, len(a.Elements)
		if len(args) > 0 {
			if i, ok := args[0].(*Integer); ok {
				lo = int(i.Value)
			}
		}
		if len(args) > 1 {
			if i, ok := args[1].(*Integer); ok {
				hi = int(i.Value)
			}
		}
		if lo < 0 {
			lo = 0
		}
		if hi > len(a.Elements) {
			hi = len(a.Elements)
		}
		if lo > hi {
			lo = hi
		}
		return &Array{Elements: append([]Object{}, a.Elements[lo:hi]...)}
	case "zip":
		if len(args) == 0 {
			return a
		}
		other, ok := args[0].(*Array)
		if !ok {
			return NewError("TypeError", "zip requires an Array")
		}
		n := len(a.Elements)
		if len(other.Elements) < n {
			n = len(other.Elements)
		}
		out := make([]Object, n)
		for i := 0; i < n; i++ {
			out[i] = &Tuple{Elements: []Object{a.Elements[i], other.Elements[i]}}
		}
		return &Array{Elements: out}
	case "enumerate":
		out := make([]Object, len(a.Elements))
		for i, e := range a.Elements {
			out[i] = &Tuple{Elements: []Object{&Integer{Value: int64(i)}, e}}
		}
		return &Array{Elements: out}
	case "flat_map":
		if len(args) == 0 {
			return a
		}
		var out []Object
		for _, e := range a.Elements {
			mapped := ev.applyFunction(args[0], []Object{e}, nil)
			if IsSignal(mapped) {
				return mapped
			}
			if arr, ok := mapped.(*Array); ok {
				out = append(out, arr.Elements...)
			} else {
				out = append(out, mapped)
			}
		}
		return &Array{Elements: out}
	case "to_string":
		return &String{Value: a.Inspect()}
	}
	return NewError("RuntimeError", "unknown method %s on Array", method)
}

func lessThan(a, b Object) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af < bf
		}
	}
	if as, ok := a.(*String); ok {
		if bs, ok := b.(*String); ok {
			return as.Value < bs.Value
		}
	}
	return false
}

// --- EnumVariant (Option/Result helper methods) -------------------------

func (ev *Evaluator) enumMethod(v *EnumVariant, method string, args []Object) Object {
	switch method {
	case "is_some":
		return NativeBool(v.VariantName == "Some")
	case "is_none":
		return NativeBool(v.VariantName == "None")
	case "is_ok":
		return NativeBool(v.VariantName == "Ok")
	case "is_err":
		return NativeBool(v.VariantName == "Err")
	case "unwrap":
		if len(v.Payload) > 0 {
			return v.Payload[0]
		}
		return &ThrowSignal{Value: &String{Value: "unwrap on " + v.VariantName}}
	case "unwrap_or":
		if len(v.Payload) > 0 {
			return v.Payload[0]
		}
		if len(args) > 0 {
			return args[0]
		}
		return NIL
	case "to_string":
		return &String{Value: v.Inspect()}
	}
	if m, ok := ev.Methods[v.EnumName+"::"+method]; ok {
		return ev.applyFunction(m, append([]Object{v}, args...), nil)
	}
	return NewError("RuntimeError", "unknown method %s on %s", method, v.EnumName)
}

// --- Struct/Class/Object -----------------------------------------------

func (ev *Evaluator) structMethod(s *Struct, method string, args []Object, receiverExpr ast.Expression, env *Environment) Object {
	m, ok := ev.Methods[s.Name+"::"+method]
	if !ok {
		if method == "to_string" {
			return &String{Value: s.Inspect()}
		}
		return NewError("NameError", "undefined struct impl method %s::%s", s.Name, method)
	}
	scope, sig := ev.bindParams(m, append([]Object{s}, args...), nil, env)
	if sig != nil {
		return sig
	}
	result := ev.Eval(m.Body, scope)
	if rv, ok := result.(*ReturnSignal); ok {
		result = rv.Value
	}
	if mutatingReceiver(m) {
		if self, ok := scope.Get(m.Receiver.Name.Value); ok {
			ev.rebindIfIdentifier(receiverExpr, self, env)
		}
	}
	return result
}

func mutatingReceiver(m *Closure) bool {
	if m.Receiver == nil {
		return false
	}
	rt, ok := m.Receiver.TypeAnnotation.(*ast.ReferenceType)
	return ok && rt.Mutable
}

func (ev *Evaluator) classMethod(c *Class, method string, args []Object) Object {
	m, ok := c.Methods[method]
	if !ok {
		if method == "to_string" {
			return &String{Value: c.Inspect()}
		}
		return NewError("NameError", "undefined class method %s::%s", c.Name, method)
	}
	return ev.applyFunction(m, append([]Object{c}, args...), nil)
}

func (ev *Evaluator) objectMutMethod(o *ObjectMut, method string, args []Object) Object {
	if o.Tag == "Actor" {
		switch method {
		case "send", "ask":
			// handled by dedicated SendExpression/AskExpression nodes;
			// reaching here means a dynamic `.send(...)` call was made.
			if len(args) == 0 {
				return NewError("RuntimeError", "%s requires a message argument", method)
			}
			result, matched := ev.dispatchReceive(o, args[0])
			if method == "send" {
				return NIL
			}
			if !matched {
				return NewError("RuntimeError", "no receive arm matched message")
			}
			return result
		}
	}
	if m, ok := ev.Methods[o.ActorType+"::"+method]; ok {
		return ev.applyFunction(m, append([]Object{o}, args...), nil)
	}
	if method == "to_string" {
		return &String{Value: o.Inspect()}
	}
	return NewError("NameError", "unknown method %s on %s", method, o.Type())
}

func (ev *Evaluator) objMethod(o *Obj, method string, args []Object) Object {
	if o.Tag == "Module" {
		if fn, ok := o.Pairs[method]; ok {
			return ev.applyFunction(fn, args, nil)
		}
	}
	switch method {
	case "len":
		return &Integer{Value: int64(len(o.Pairs))}
	case "to_string":
		return &String{Value: o.Inspect()}
	}
	return NewError("NameError", "unknown method %s on %s", method, o.Type())
}
