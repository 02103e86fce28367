package evaluator

import "github.com/funvibe/funxy/internal/ast"

// MatchPattern implements spec.md §4.4.3 "Pattern matcher". Guards are
// not part of matching; callers evaluate arm.Guard afterward against the
// bindings returned here.
func MatchPattern(pat ast.Pattern, val Object) (map[string]Object, bool) {
	bindings := make(map[string]Object)
	if matchInto(pat, val, bindings) {
		return bindings, true
	}
	return nil, false
}

func matchInto(pat ast.Pattern, val Object, bindings map[string]Object) bool {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true
	case *ast.IdentifierPattern:
		bindings[p.Name] = val
		return true
	case *ast.LiteralPattern:
		return matchLiteral(p.Value, val)
	case *ast.TuplePattern:
		tup, ok := val.(*Tuple)
		if !ok || len(tup.Elements) != len(p.Elements) {
			return false
		}
		for i, ep := range p.Elements {
			if !matchInto(ep, tup.Elements[i], bindings) {
				return false
			}
		}
		return true
	case *ast.ListPattern:
		arr, ok := val.(*Array)
		if !ok {
			return false
		}
		if p.Rest == nil {
			if len(arr.Elements) != len(p.Elements) {
				return false
			}
		} else if len(arr.Elements) < len(p.Elements) {
			return false
		}
		for i, ep := range p.Elements {
			if !matchInto(ep, arr.Elements[i], bindings) {
				return false
			}
		}
		if p.Rest != nil {
			rest := append([]Object{}, arr.Elements[len(p.Elements):]...)
			bindings[p.Rest.Name] = &Array{Elements: rest}
		}
		return true
	case *ast.ConstructorPattern:
		ev, ok := val.(*EnumVariant)
		if !ok || ev.VariantName != p.Name || len(ev.Payload) != len(p.Arguments) {
			return false
		}
		for i, ap := range p.Arguments {
			if !matchInto(ap, ev.Payload[i], bindings) {
				return false
			}
		}
		return true
	case *ast.StructPattern:
		fields := fieldsOf(val)
		if fields == nil {
			return false
		}
		if s, ok := val.(*Struct); ok && p.Name != "" && s.Name != p.Name {
			return false
		}
		for _, f := range p.Fields {
			fv, ok := fields[f.Name]
			if !ok {
				return false
			}
			if !matchInto(f.Pattern, fv, bindings) {
				return false
			}
		}
		return true
	case *ast.RangePattern:
		i, ok := val.(*Integer)
		if !ok {
			return false
		}
		lo := literalInt(p.Start)
		hi := literalInt(p.End)
		if p.Inclusive {
			return i.Value >= lo && i.Value <= hi
		}
		return i.Value >= lo && i.Value < hi
	case *ast.OrPattern:
		for _, alt := range p.Alternatives {
			attempt := make(map[string]Object)
			if matchInto(alt, val, attempt) {
				for k, v := range attempt {
					bindings[k] = v
				}
				return true
			}
		}
		return false
	}
	return false
}

func literalInt(e ast.Expression) int64 {
	if il, ok := e.(*ast.IntegerLiteral); ok {
		return il.Value
	}
	return 0
}

func matchLiteral(lit ast.Expression, val Object) bool {
	switch l := lit.(type) {
	case *ast.IntegerLiteral:
		i, ok := val.(*Integer)
		return ok && i.Value == l.Value
	case *ast.FloatLiteral:
		f, ok := val.(*Float)
		return ok && f.Value == l.Value
	case *ast.StringLiteral:
		s, ok := val.(*String)
		return ok && s.Value == l.Value
	case *ast.BooleanLiteral:
		b, ok := val.(*Bool)
		return ok && b.Value == l.Value
	case *ast.NilLiteral:
		_, ok := val.(*Nil)
		return ok
	case *ast.AtomLiteral:
		a, ok := val.(*Atom)
		return ok && a.Name == l.Name
	case *ast.CharLiteral:
		s, ok := val.(*String)
		return ok && s.Value == string(l.Value)
	}
	return false
}

// ExhaustivenessCheck implements spec.md §4.3.3: a match/receive is
// exhaustive iff some arm is a wildcard/identifier/or-pattern-containing-
// one, or the union of constructor-pattern names covers every variant
// declared by enumVariants. Missing lists the uncovered variant names.
func ExhaustivenessCheck(arms []ast.Pattern, enumVariants []string) (missing []string, exhaustive bool) {
	covered := make(map[string]bool)
	for _, pat := range arms {
		if catchAll(pat) {
			return nil, true
		}
		if cp, ok := pat.(*ast.ConstructorPattern); ok {
			covered[cp.Name] = true
		}
		if op, ok := pat.(*ast.OrPattern); ok {
			for _, alt := range op.Alternatives {
				if catchAll(alt) {
					return nil, true
				}
				if cp, ok := alt.(*ast.ConstructorPattern); ok {
					covered[cp.Name] = true
				}
			}
		}
	}
	for _, v := range enumVariants {
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
