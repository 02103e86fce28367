// Package transpiler implements spec.md §4.7: it consumes the AST and
// emits Rust-flavored target-language source. Type synthesis, mutation
// detection, and function-name classification are delegated to
// internal/analyzer; this package owns only the textual emission and the
// structural lowerings (try/catch, string-argument conversion) that are
// specific to the target syntax.
package transpiler

import (
	"fmt"
	"strings"

	"github.com/funvibe/funxy/internal/analyzer"
	"github.com/funvibe/funxy/internal/ast"
)

// reservedWords are target-language keywords that collide with
// identifiers legal in the source language (spec.md §4.7 "Reserved-
// keyword escaping").
var reservedWords = map[string]bool{
	"move": true, "type": true, "match": true, "impl": true, "trait": true,
	"fn": true, "let": true, "mut": true, "ref": true, "loop": true,
	"where": true, "dyn": true, "crate": true, "use": true, "pub": true,
	"async": true, "await": true, "yield": true, "box": true,
}

// stringArgWhitelist names callees known to accept an owned `String`;
// a bare string-literal argument to one of these is wrapped in
// `.to_string()` (spec.md §4.7 "String-argument conversion"). DataFrame's
// `col(...)` entry point is deliberately excluded: its string argument is
// a column name, not an owned value.
var stringArgWhitelist = map[string]bool{
	"push": true, "String_from": true, "println": true, "format": true,
	"print": true, "env_set_var": true, "fs_write": true,
}

// Transpiler holds the state of a single transpile run.
type Transpiler struct {
	b strings.Builder
}

// New constructs a Transpiler.
func New() *Transpiler { return &Transpiler{} }

// Transpile lowers a whole program to target source text.
func Transpile(prog *ast.Program) string {
	t := New()
	for i, s := range prog.Statements {
		if i > 0 {
			t.b.WriteString("\n")
		}
		t.statement(s)
	}
	return t.b.String()
}

func escape(name string) string {
	if reservedWords[name] {
		return "r#" + name
	}
	return name
}

func (t *Transpiler) statement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.FunctionExpression:
		t.function(n)
	case *ast.StructDeclaration:
		t.structDecl(n)
	case *ast.EnumDeclaration:
		t.enumDecl(n)
	case *ast.TraitDeclaration:
		t.traitDecl(n)
	case *ast.ImplDeclaration:
		t.implDecl(n)
	case *ast.ClassDeclaration:
		t.classDecl(n)
	case *ast.ExpressionStatement:
		t.expr(n.Expression)
		t.b.WriteString(";\n")
	default:
		if e, ok := s.(ast.Expression); ok {
			t.expr(e)
			t.b.WriteString(";\n")
		}
	}
}

// function implements spec.md §4.7's parameter/return-type synthesis and
// method-chain/lambda passthrough for a single function definition.
func (t *Transpiler) function(fn *ast.FunctionExpression) {
	name := ""
	if fn.Name != nil {
		name = fn.Name.Value
	}
	if fn.IsAsync {
		t.b.WriteString("async ")
	}
	t.b.WriteString("fn ")
	t.b.WriteString(escape(name))
	t.typeParams(fn.TypeParams)
	t.b.WriteString("(")
	if fn.Receiver != nil {
		t.b.WriteString(t.receiverParam(fn.Receiver))
		if len(fn.Parameters) > 0 {
			t.b.WriteString(", ")
		}
	}
	for i, p := range fn.Parameters {
		if i > 0 {
			t.b.WriteString(", ")
		}
		t.b.WriteString(t.param(p, fn.Body))
	}
	t.b.WriteString(")")
	if name != "main" {
		if rt := t.returnType(fn); rt != "" {
			t.b.WriteString(" -> " + rt)
		}
	}
	t.b.WriteString(" ")
	t.block(fn.Body)
	t.b.WriteString("\n")
}

func (t *Transpiler) receiverParam(p *ast.Param) string {
	if p.TypeAnnotation != nil {
		if rt, ok := p.TypeAnnotation.(*ast.ReferenceType); ok && rt.Mutable {
			return "&mut self"
		}
	}
	return "&self"
}

// param synthesizes a parameter's type annotation via analyzer.
// SynthesizeParamType when none was written explicitly (spec.md §4.3.1,
// §4.7 "Parameter type synthesis").
func (t *Transpiler) param(p ast.Param, body *ast.BlockExpression) string {
	name := escape(p.Name.Value)
	if p.TypeAnnotation != nil {
		return name + ": " + p.TypeAnnotation.String()
	}
	ty := analyzer.SynthesizeParamType(p.Name.Value, body)
	if ty == "" {
		return name
	}
	return name + ": " + ty
}

// returnType implements spec.md §4.7 "Return-type synthesis": inspects
// the body's last expression for an inferable kind.
func (t *Transpiler) returnType(fn *ast.FunctionExpression) string {
	if fn.ReturnType != nil {
		return fn.ReturnType.String()
	}
	if len(fn.Body.Expressions) == 0 {
		return ""
	}
	last := fn.Body.Expressions[len(fn.Body.Expressions)-1]
	return inferExprType(last)
}

// inferExprType implements the last-expression inspection spec.md §4.7
// describes: numeric via is_numeric_operator-style inspection, array via
// list/comprehension, bool via comparison, closure via lambda, string via
// literal/concat.
func inferExprType(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.IntegerLiteral:
		return "i32"
	case *ast.FloatLiteral:
		return "f64"
	case *ast.BooleanLiteral:
		return "bool"
	case *ast.StringLiteral:
		return "String"
	case *ast.InterpolatedStringLiteral:
		return "String"
	case *ast.ListLiteral:
		return "Vec<_>"
	case *ast.ListComprehension:
		return "Vec<_>"
	case *ast.LambdaExpression:
		return "impl Fn(_) -> _"
	case *ast.InfixExpression:
		switch v.Operator {
		case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
			return "bool"
		case "+":
			if isStringy(v.Left) || isStringy(v.Right) {
				return "String"
			}
			return "i32"
		case "-", "*", "/", "%", "**":
			return "i32"
		}
	case *ast.BlockExpression:
		if len(v.Expressions) > 0 {
			return inferExprType(v.Expressions[len(v.Expressions)-1])
		}
	}
	return ""
}

func isStringy(e ast.Expression) bool {
	switch e.(type) {
	case *ast.StringLiteral, *ast.InterpolatedStringLiteral:
		return true
	}
	return false
}

func (t *Transpiler) typeParams(ps []ast.TypeParam) {
	if len(ps) == 0 {
		return
	}
	t.b.WriteString("<")
	for i, p := range ps {
		if i > 0 {
			t.b.WriteString(", ")
		}
		t.b.WriteString(p.Name)
		for _, bnd := range p.Bounds {
			t.b.WriteString(": " + bnd)
		}
	}
	t.b.WriteString(">")
}

func (t *Transpiler) structDecl(sd *ast.StructDeclaration) {
	t.b.WriteString("struct " + sd.Name.Value)
	t.typeParams(sd.TypeParams)
	t.b.WriteString(" {\n")
	for _, f := range sd.Fields {
		ty := "_"
		if f.TypeAnnotation != nil {
			ty = f.TypeAnnotation.String()
		}
		t.b.WriteString("    " + escape(f.Name.Value) + ": " + ty + ",\n")
	}
	t.b.WriteString("}\n")
}

func (t *Transpiler) enumDecl(ed *ast.EnumDeclaration) {
	t.b.WriteString("enum " + ed.Name.Value)
	t.typeParams(ed.TypeParams)
	t.b.WriteString(" {\n")
	for _, v := range ed.Variants {
		t.b.WriteString("    " + v.Name.Value)
		if len(v.Fields) > 0 {
			t.b.WriteString("(")
			for i, f := range v.Fields {
				if i > 0 {
					t.b.WriteString(", ")
				}
				t.b.WriteString(f.String())
			}
			t.b.WriteString(")")
		}
		t.b.WriteString(",\n")
	}
	t.b.WriteString("}\n")
}

func (t *Transpiler) traitDecl(td *ast.TraitDeclaration) {
	t.b.WriteString("trait " + td.Name.Value + " {\n")
	for _, m := range td.Methods {
		t.b.WriteString("    fn " + escape(m.Name.Value) + "(")
		for i, p := range m.Parameters {
			if i > 0 {
				t.b.WriteString(", ")
			}
			ty := "_"
			if p.TypeAnnotation != nil {
				ty = p.TypeAnnotation.String()
			}
			t.b.WriteString(escape(p.Name.Value) + ": " + ty)
		}
		t.b.WriteString(")")
		if m.ReturnType != nil {
			t.b.WriteString(" -> " + m.ReturnType.String())
		}
		if m.Default != nil {
			t.b.WriteString(" ")
			t.block(m.Default)
		} else {
			t.b.WriteString(";")
		}
		t.b.WriteString("\n")
	}
	t.b.WriteString("}\n")
}

// implDecl implements spec.md §4.7 "Struct/enum/impl passthrough":
// method visibility and signatures map structurally.
func (t *Transpiler) implDecl(id *ast.ImplDeclaration) {
	if id.Trait != nil {
		t.b.WriteString("impl " + id.Trait.Value + " for " + id.TargetType.String() + " {\n")
	} else {
		t.b.WriteString("impl " + id.TargetType.String() + " {\n")
	}
	for _, m := range id.Methods {
		t.function(m)
	}
	t.b.WriteString("}\n")
}

func (t *Transpiler) classDecl(cd *ast.ClassDeclaration) {
	t.b.WriteString("struct " + cd.Name.Value + " {\n")
	for _, f := range cd.Fields {
		ty := "_"
		if f.TypeAnnotation != nil {
			ty = f.TypeAnnotation.String()
		}
		t.b.WriteString("    " + escape(f.Name.Value) + ": " + ty + ",\n")
	}
	t.b.WriteString("}\n\nimpl " + cd.Name.Value + " {\n")
	for _, m := range cd.Methods {
		t.function(m)
	}
	t.b.WriteString("}\n")
}

func (t *Transpiler) block(b *ast.BlockExpression) {
	t.b.WriteString("{\n")
	for i, e := range b.Expressions {
		t.expr(e)
		if i < len(b.Expressions)-1 {
			t.b.WriteString(";\n")
		} else {
			t.b.WriteString("\n")
		}
	}
	t.b.WriteString("}")
}

func (t *Transpiler) expr(e ast.Expression) {
	switch v := e.(type) {
	case nil:
		return
	case *ast.NilLiteral:
		t.b.WriteString("()")
	case *ast.BooleanLiteral:
		fmt.Fprintf(&t.b, "%v", v.Value)
	case *ast.IntegerLiteral:
		fmt.Fprintf(&t.b, "%d", v.Value)
	case *ast.FloatLiteral:
		fmt.Fprintf(&t.b, "%v", v.Value)
	case *ast.StringLiteral:
		fmt.Fprintf(&t.b, "%q", v.Value)
	case *ast.Identifier:
		t.b.WriteString(escape(v.Value))
	case *ast.LetExpression:
		t.letExpr(v)
	case *ast.AssignExpression:
		t.expr(v.Left)
		t.b.WriteString(" = ")
		t.expr(v.Value)
	case *ast.CompoundAssignExpression:
		t.expr(v.Left)
		t.b.WriteString(" " + v.Operator + "= ")
		t.expr(v.Value)
	case *ast.PrefixExpression:
		t.b.WriteString(v.Operator)
		t.expr(v.Right)
	case *ast.InfixExpression:
		t.infix(v)
	case *ast.TernaryExpression:
		t.b.WriteString("if ")
		t.expr(v.Condition)
		t.b.WriteString(" { ")
		t.expr(v.Then)
		t.b.WriteString(" } else { ")
		t.expr(v.Else)
		t.b.WriteString(" }")
	case *ast.IfExpression:
		t.b.WriteString("if ")
		t.expr(v.Condition)
		t.b.WriteString(" ")
		t.block(v.Consequence)
		if v.Alternative != nil {
			t.b.WriteString(" else ")
			switch alt := v.Alternative.(type) {
			case *ast.IfExpression:
				t.expr(alt)
			case *ast.BlockExpression:
				t.block(alt)
			}
		}
	case *ast.WhileExpression:
		t.b.WriteString("while ")
		t.expr(v.Condition)
		t.b.WriteString(" ")
		t.block(v.Body)
	case *ast.LoopExpression:
		t.b.WriteString("loop ")
		t.block(v.Body)
	case *ast.ForExpression:
		t.b.WriteString("for ")
		t.pattern(v.Pattern)
		t.b.WriteString(" in ")
		t.expr(v.Iterable)
		t.b.WriteString(" ")
		t.block(v.Body)
	case *ast.BreakExpression:
		t.b.WriteString("break")
		if v.Value != nil {
			t.b.WriteString(" ")
			t.expr(v.Value)
		}
	case *ast.ContinueExpression:
		t.b.WriteString("continue")
	case *ast.ReturnExpression:
		t.b.WriteString("return")
		if v.Value != nil {
			t.b.WriteString(" ")
			t.expr(v.Value)
		}
	case *ast.MatchExpression:
		t.matchExpr(v)
	case *ast.LambdaExpression:
		t.lambda(v)
	case *ast.FunctionExpression:
		t.function(v)
	case *ast.CallExpression:
		t.call(v)
	case *ast.MethodCallExpression:
		t.methodCall(v)
	case *ast.FieldAccessExpression:
		t.expr(v.Receiver)
		t.b.WriteString("." + v.Field)
	case *ast.IndexExpression:
		t.expr(v.Receiver)
		t.b.WriteString("[")
		t.expr(v.Index)
		t.b.WriteString("]")
	case *ast.RangeExpression:
		if v.Start != nil {
			t.expr(v.Start)
		}
		if v.Inclusive {
			t.b.WriteString("..=")
		} else {
			t.b.WriteString("..")
		}
		if v.End != nil {
			t.expr(v.End)
		}
	case *ast.TryExpression:
		t.b.WriteString("(|| -> Result<_, _> ")
		t.block(v.Body)
		t.b.WriteString(")()")
	case *ast.ThrowExpression:
		t.b.WriteString("return Err(")
		if v.Value != nil {
			t.expr(v.Value)
		}
		t.b.WriteString(")")
	case *ast.TryCatchExpression:
		t.tryCatch(v)
	case *ast.AsyncBlockExpression:
		t.b.WriteString("async ")
		t.block(v.Body)
	case *ast.AwaitExpression:
		t.expr(v.Value)
		t.b.WriteString(".await")
	case *ast.PipelineExpression:
		t.pipeline(v)
	case *ast.CastExpression:
		t.expr(v.Value)
		t.b.WriteString(" as " + v.TargetTy.String())
	case *ast.MacroInvocationExpression:
		t.macro(v)
	case *ast.NullCoalesceExpression:
		t.expr(v.Left)
		t.b.WriteString(".unwrap_or(")
		t.expr(v.Right)
		t.b.WriteString(")")
	case *ast.ListLiteral:
		t.b.WriteString("vec![")
		t.exprList(v.Elements)
		t.b.WriteString("]")
	case *ast.TupleLiteral:
		t.b.WriteString("(")
		t.exprList(v.Elements)
		t.b.WriteString(")")
	case *ast.StructLiteral:
		t.b.WriteString(v.Name.Value + " { ")
		for i, f := range v.Fields {
			if i > 0 {
				t.b.WriteString(", ")
			}
			if f.Key != nil {
				t.expr(f.Key)
				t.b.WriteString(": ")
				t.expr(f.Value)
			}
		}
		t.b.WriteString(" }")
	case *ast.BlockExpression:
		t.block(v)
	default:
		t.b.WriteString("/* unsupported */")
	}
}

func (t *Transpiler) exprList(es []ast.Expression) {
	for i, e := range es {
		if i > 0 {
			t.b.WriteString(", ")
		}
		t.expr(e)
	}
}

func (t *Transpiler) infix(v *ast.InfixExpression) {
	t.expr(v.Left)
	t.b.WriteString(" " + v.Operator + " ")
	t.expr(v.Right)
}

// letExpr implements spec.md §4.7 "Mutability": a binding the analyzer's
// IsMutated reports as assigned-to anywhere in its remaining body gets
// `mut`.
func (t *Transpiler) letExpr(le *ast.LetExpression) {
	t.b.WriteString("let ")
	mut := le.Mutable
	if le.Name != nil && le.Body != nil && analyzer.IsMutated(le.Name.Value, le.Body) {
		mut = true
	}
	if mut {
		t.b.WriteString("mut ")
	}
	if le.Pattern != nil {
		t.pattern(le.Pattern)
	} else {
		t.b.WriteString(escape(le.Name.Value))
	}
	if le.TypeAnnotation != nil {
		t.b.WriteString(": " + le.TypeAnnotation.String())
	}
	t.b.WriteString(" = ")
	t.expr(le.Value)
	if le.Body != nil {
		t.b.WriteString(";\n")
		t.expr(le.Body)
	}
}

func (t *Transpiler) pattern(p ast.Pattern) {
	switch v := p.(type) {
	case *ast.WildcardPattern:
		t.b.WriteString("_")
	case *ast.IdentifierPattern:
		t.b.WriteString(escape(v.Name))
	case *ast.TuplePattern:
		t.b.WriteString("(")
		for i, e := range v.Elements {
			if i > 0 {
				t.b.WriteString(", ")
			}
			t.pattern(e)
		}
		t.b.WriteString(")")
	case *ast.ListPattern:
		t.b.WriteString("[")
		for i, e := range v.Elements {
			if i > 0 {
				t.b.WriteString(", ")
			}
			t.pattern(e)
		}
		if v.Rest != nil {
			if len(v.Elements) > 0 {
				t.b.WriteString(", ")
			}
			t.b.WriteString(escape(v.Rest.Name) + " @ ..")
		}
		t.b.WriteString("]")
	case *ast.ConstructorPattern:
		t.b.WriteString(v.Name)
		if len(v.Arguments) > 0 {
			t.b.WriteString("(")
			for i, a := range v.Arguments {
				if i > 0 {
					t.b.WriteString(", ")
				}
				t.pattern(a)
			}
			t.b.WriteString(")")
		}
	case *ast.OrPattern:
		for i, alt := range v.Alternatives {
			if i > 0 {
				t.b.WriteString(" | ")
			}
			t.pattern(alt)
		}
	default:
		t.b.WriteString("_")
	}
}

func (t *Transpiler) matchExpr(m *ast.MatchExpression) {
	t.b.WriteString("match ")
	t.expr(m.Scrutinee)
	t.b.WriteString(" {\n")
	for _, arm := range m.Arms {
		t.pattern(arm.Pattern)
		if arm.Guard != nil {
			t.b.WriteString(" if ")
			t.expr(arm.Guard)
		}
		t.b.WriteString(" => ")
		t.expr(arm.Body)
		t.b.WriteString(",\n")
	}
	t.b.WriteString("}")
}

// lambda, closures, async, generics, where-clauses pass through
// structurally (spec.md §4.7).
func (t *Transpiler) lambda(l *ast.LambdaExpression) {
	t.b.WriteString("|")
	for i, p := range l.Parameters {
		if i > 0 {
			t.b.WriteString(", ")
		}
		t.b.WriteString(escape(p.Name.Value))
	}
	t.b.WriteString("| ")
	t.expr(l.Body)
}

// call implements the string-argument-conversion heuristic (spec.md
// §4.7) for free function calls.
func (t *Transpiler) call(c *ast.CallExpression) {
	name := ""
	if id, ok := c.Function.(*ast.Identifier); ok {
		name = id.Value
	}
	t.expr(c.Function)
	t.b.WriteString("(")
	for i, a := range c.Arguments {
		if i > 0 {
			t.b.WriteString(", ")
		}
		t.argWithConversion(name, a)
	}
	t.b.WriteString(")")
}

func (t *Transpiler) argWithConversion(calleeName string, a ast.Expression) {
	if sl, ok := a.(*ast.StringLiteral); ok && stringArgWhitelist[calleeName] {
		fmt.Fprintf(&t.b, "%q.to_string()", sl.Value)
		return
	}
	t.expr(a)
}

// dataframeMethods is the back-end bridge whitelist spec.md §4.7
// "DataFrame method calls" describes: method names routed through a
// dedicated back-end rather than emitted as ordinary method calls.
var dataframeMethods = map[string]string{
	"kahan_sum": "kahan_sum", "mean": "mean", "sum": "kahan_sum",
}

// methodCall implements spec.md §4.7 "Method chain passthrough" and the
// DataFrame back-end bridge.
func (t *Transpiler) methodCall(m *ast.MethodCallExpression) {
	if bridged, ok := dataframeMethods[m.Method]; ok {
		t.b.WriteString(bridged + "(&")
		t.expr(m.Receiver)
		t.b.WriteString(")")
		return
	}
	t.expr(m.Receiver)
	t.b.WriteString("." + escape(m.Method) + "(")
	for i, a := range m.Arguments {
		if i > 0 {
			t.b.WriteString(", ")
		}
		t.argWithConversion(m.Method, a)
	}
	t.b.WriteString(")")
}

// tryCatch implements spec.md §4.7 "Try/catch lowering": a match on a
// Result-typed expression.
func (t *Transpiler) tryCatch(tc *ast.TryCatchExpression) {
	t.b.WriteString("match (|| -> Result<_, _> ")
	t.block(tc.Try)
	t.b.WriteString(")() {\n    Ok(v) => v,\n    Err(")
	if tc.CatchParam != nil {
		t.b.WriteString(escape(tc.CatchParam.Value))
	} else {
		t.b.WriteString("_")
	}
	t.b.WriteString(") => ")
	t.block(tc.Catch)
	t.b.WriteString(",\n}")
}

func (t *Transpiler) pipeline(p *ast.PipelineExpression) {
	t.expr(p.Source)
	for _, stage := range p.Stages {
		t.b.WriteString(".pipe(")
		t.expr(stage)
		t.b.WriteString(")")
	}
}

func (t *Transpiler) macro(m *ast.MacroInvocationExpression) {
	t.b.WriteString(m.Name + "!(")
	for i, a := range m.Arguments {
		if i > 0 {
			t.b.WriteString(", ")
		}
		t.argWithConversion(m.Name, a)
	}
	t.b.WriteString(")")
}
