package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/pipeline"
)

// parseProgram lexes and parses src, failing the test if either stage
// reports a diagnostic.
func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, lexErrs := lexer.Tokenize(src)
	require.Empty(t, lexErrs, "unexpected lex errors")
	ctx := pipeline.NewContext("test.ruchy", src)
	ctx.TokenStream = toks
	p := parser.New(toks, ctx)
	prog := p.ParseProgram()
	require.Empty(t, ctx.Errors, "unexpected parse errors")
	require.NotNil(t, prog)
	return prog
}

func firstExpr(t *testing.T, prog *ast.Program) ast.Expression {
	t.Helper()
	require.NotEmpty(t, prog.Statements)
	es, ok := prog.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok, "expected ExpressionStatement, got %T", prog.Statements[0])
	return es.Expression
}

func TestParseLiterals(t *testing.T) {
	cases := []struct {
		name  string
		input string
		check func(t *testing.T, expr ast.Expression)
	}{
		{"integer", "42", func(t *testing.T, e ast.Expression) {
			lit := e.(*ast.IntegerLiteral)
			assert.Equal(t, int64(42), lit.Value)
		}},
		{"float", "3.14", func(t *testing.T, e ast.Expression) {
			lit := e.(*ast.FloatLiteral)
			assert.InDelta(t, 3.14, lit.Value, 1e-9)
		}},
		{"string", `"hello"`, func(t *testing.T, e ast.Expression) {
			lit := e.(*ast.StringLiteral)
			assert.Equal(t, "hello", lit.Value)
		}},
		{"boolean_true", "true", func(t *testing.T, e ast.Expression) {
			lit := e.(*ast.BooleanLiteral)
			assert.True(t, lit.Value)
		}},
		{"nil", "null", func(t *testing.T, e ast.Expression) {
			_, ok := e.(*ast.NilLiteral)
			assert.True(t, ok)
		}},
		{"atom", ":ready", func(t *testing.T, e ast.Expression) {
			lit := e.(*ast.AtomLiteral)
			assert.Equal(t, "ready", lit.Name)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prog := parseProgram(t, tc.input)
			tc.check(t, firstExpr(t, prog))
		})
	}
}

func TestParseObjectLiteralNotBlock(t *testing.T) {
	prog := parseProgram(t, `{x: 1, y: 2}`)
	obj, ok := firstExpr(t, prog).(*ast.ObjectLiteral)
	require.True(t, ok, "expected ObjectLiteral")
	require.Len(t, obj.Fields, 2)
	assert.Equal(t, "x", obj.Fields[0].Key.(*ast.Identifier).Value)
	assert.Equal(t, "y", obj.Fields[1].Key.(*ast.Identifier).Value)
}

func TestParseEmptyBraceIsObjectLiteral(t *testing.T) {
	prog := parseProgram(t, `{}`)
	_, ok := firstExpr(t, prog).(*ast.ObjectLiteral)
	assert.True(t, ok, "expected ObjectLiteral for empty braces")
}

func TestParseSetComprehension(t *testing.T) {
	prog := parseProgram(t, `{x for x in xs}`)
	sc, ok := firstExpr(t, prog).(*ast.SetComprehension)
	require.True(t, ok, "expected SetComprehension")
	require.Len(t, sc.Clauses, 1)
	assert.Equal(t, "x", sc.Clauses[0].Variable)
}

func TestParseDictComprehension(t *testing.T) {
	prog := parseProgram(t, `{k: v for k in keys}`)
	dc, ok := firstExpr(t, prog).(*ast.DictComprehension)
	require.True(t, ok, "expected DictComprehension")
	require.Len(t, dc.Clauses, 1)
	assert.Equal(t, "k", dc.Clauses[0].Variable)
}

func TestParseListComprehension(t *testing.T) {
	prog := parseProgram(t, `[x * 2 for x in xs if x > 0]`)
	lc, ok := firstExpr(t, prog).(*ast.ListComprehension)
	require.True(t, ok, "expected ListComprehension")
	require.Len(t, lc.Clauses, 1)
	assert.NotNil(t, lc.Clauses[0].Guard)
}

func TestParseNamedArgsBecomeStructLiteral(t *testing.T) {
	prog := parseProgram(t, `Point(x: 1, y: 2)`)
	sl, ok := firstExpr(t, prog).(*ast.StructLiteral)
	require.True(t, ok, "expected StructLiteral for all-named call")
	assert.Equal(t, "Point", sl.Name.Value)
	require.Len(t, sl.Fields, 2)
}

func TestParseMethodCallNamedArgsAggregate(t *testing.T) {
	prog := parseProgram(t, `list.insert(index: 0, value: 5)`)
	mc, ok := firstExpr(t, prog).(*ast.MethodCallExpression)
	require.True(t, ok, "expected MethodCallExpression")
	require.Len(t, mc.Arguments, 1)
	obj, ok := mc.Arguments[0].(*ast.ObjectLiteral)
	require.True(t, ok, "expected aggregated ObjectLiteral argument")
	require.Len(t, obj.Fields, 2)
}

func TestParseLetFoldsBlockBody(t *testing.T) {
	prog := parseProgram(t, `{ let x = 1; let y = 2; x + y }`)
	block, ok := firstExpr(t, prog).(*ast.BlockExpression)
	require.True(t, ok)
	require.Len(t, block.Expressions, 1)
	outer, ok := block.Expressions[0].(*ast.LetExpression)
	require.True(t, ok, "expected outer LetExpression")
	assert.Equal(t, "x", outer.Name.Value)
	inner, ok := outer.Body.(*ast.LetExpression)
	require.True(t, ok, "expected folded inner LetExpression")
	assert.Equal(t, "y", inner.Name.Value)
	_, ok = inner.Body.(*ast.InfixExpression)
	assert.True(t, ok, "expected trailing infix expression as innermost body")
}

func TestParseIfLet(t *testing.T) {
	prog := parseProgram(t, `if let Some(v) = maybe { v } else { 0 }`)
	ie, ok := firstExpr(t, prog).(*ast.IfExpression)
	require.True(t, ok)
	require.NotNil(t, ie.IfLetTarget)
	_, ok = ie.IfLetTarget.(*ast.ConstructorPattern)
	assert.True(t, ok)
}

func TestParseMatchExpression(t *testing.T) {
	prog := parseProgram(t, `match x { 0 => "zero", _ => "other" }`)
	me, ok := firstExpr(t, prog).(*ast.MatchExpression)
	require.True(t, ok)
	require.Len(t, me.Arms, 2)
}

func TestParseMacroInvocation(t *testing.T) {
	prog := parseProgram(t, `println!("hi")`)
	mi, ok := firstExpr(t, prog).(*ast.MacroInvocationExpression)
	require.True(t, ok)
	assert.Equal(t, "println", mi.Name)
	require.Len(t, mi.Arguments, 1)
}

func TestParseDataFrameKeyedColumns(t *testing.T) {
	prog := parseProgram(t, `df![name => ["a", "b"], age => [1, 2]]`)
	df, ok := firstExpr(t, prog).(*ast.DataFrameLiteral)
	require.True(t, ok)
	require.Len(t, df.Columns, 2)
	assert.Equal(t, "name", df.Columns[0].Name)
	assert.Equal(t, "age", df.Columns[1].Name)
}

func TestParseDataFrameRowBased(t *testing.T) {
	prog := parseProgram(t, `df![["name", "age"], ["a", 1], ["b", 2]]`)
	df, ok := firstExpr(t, prog).(*ast.DataFrameLiteral)
	require.True(t, ok)
	require.Len(t, df.Columns, 2)
	assert.Equal(t, "name", df.Columns[0].Name)
	require.Len(t, df.Columns[0].Values, 2)
}

func TestParsePipeline(t *testing.T) {
	prog := parseProgram(t, `xs |> filter(even) |> map(square)`)
	pe, ok := firstExpr(t, prog).(*ast.PipelineExpression)
	require.True(t, ok)
	require.Len(t, pe.Stages, 2)
}

func TestParseTurbofishMethodCall(t *testing.T) {
	prog := parseProgram(t, `xs.collect::<List>()`)
	mc, ok := firstExpr(t, prog).(*ast.MethodCallExpression)
	require.True(t, ok)
	assert.Equal(t, "collect", mc.Method)
	require.Len(t, mc.TurbofishTypes, 1)
}

func TestParseInterpolatedString(t *testing.T) {
	prog := parseProgram(t, `f"total: {a + b}"`)
	lit, ok := firstExpr(t, prog).(*ast.InterpolatedStringLiteral)
	require.True(t, ok)
	require.Len(t, lit.Parts, 2)
	assert.Equal(t, "total: ", lit.Parts[0].Text)
	_, ok = lit.Parts[1].Expr.(*ast.InfixExpression)
	assert.True(t, ok)
}

func TestParseStructDeclaration(t *testing.T) {
	prog := parseProgram(t, `struct Point { x: Int, y: Int }`)
	require.Len(t, prog.Statements, 1)
	sd, ok := prog.Statements[0].(*ast.StructDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Point", sd.Name.Value)
	require.Len(t, sd.Fields, 2)
}

func TestParseEnumDeclaration(t *testing.T) {
	prog := parseProgram(t, `enum Option { Some(Int), None }`)
	ed, ok := prog.Statements[0].(*ast.EnumDeclaration)
	require.True(t, ok)
	require.Len(t, ed.Variants, 2)
	assert.Equal(t, "Some", ed.Variants[0].Name.Value)
	require.Len(t, ed.Variants[0].Fields, 1)
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := parseProgram(t, `fun add(x: Int, y: Int) -> Int { x + y }`)
	fn, ok := prog.Statements[0].(*ast.FunctionExpression)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Value)
	require.Len(t, fn.Parameters, 2)
	require.NotNil(t, fn.ReturnType)
}

func TestParseLambdaPipeForm(t *testing.T) {
	prog := parseProgram(t, `|x, y| x + y`)
	le, ok := firstExpr(t, prog).(*ast.LambdaExpression)
	require.True(t, ok)
	require.Len(t, le.Parameters, 2)
}

func TestParseLambdaBackslashForm(t *testing.T) {
	prog := parseProgram(t, `\x -> x + 1`)
	le, ok := firstExpr(t, prog).(*ast.LambdaExpression)
	require.True(t, ok)
	require.Len(t, le.Parameters, 1)
}

func TestParseImportWithAlias(t *testing.T) {
	prog := parseProgram(t, `import "lib/json" as json`)
	require.NotNil(t, prog.Imports)
	require.Len(t, prog.Imports, 1)
	assert.Equal(t, "json", prog.Imports[0].Alias.Value)
	assert.Equal(t, "lib/json", prog.Imports[0].Path.Value)
}

func TestParsePackageDeclaration(t *testing.T) {
	prog := parseProgram(t, `package mathx (square, cube)`)
	require.NotNil(t, prog.Package)
	assert.Equal(t, "mathx", prog.Package.Name.Value)
	require.Len(t, prog.Package.Exports, 2)
}
