package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/funxy/internal/analyzer"
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/pipeline"
)

// fnBody parses src (a single top-level `fun` definition) and returns
// the first parameter's name and the function body.
func fnBody(t *testing.T, src string) (string, *ast.BlockExpression) {
	t.Helper()
	toks, lexErrs := lexer.Tokenize(src)
	require.Empty(t, lexErrs)
	ctx := pipeline.NewContext("test.ruchy", src)
	p := parser.New(toks, ctx)
	prog := p.ParseProgram()
	require.Empty(t, ctx.Errors)
	require.NotEmpty(t, prog.Statements)
	fn, ok := prog.Statements[0].(*ast.FunctionExpression)
	require.True(t, ok, "expected FunctionExpression, got %T", prog.Statements[0])
	require.NotEmpty(t, fn.Parameters)
	return fn.Parameters[0].Name.Value, fn.Body
}

func TestSynthesizeParamTypePrecedence(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"nested index", `fun f(a) { a[0][1] }`, "Vec<Vec<i32>>"},
		{"array use", `fun f(xs) { xs.push(1) }`, "Vec<i32>"},
		{"len use", `fun f(xs) { len(xs) }`, "Vec<i32>"},
		{"index use", `fun f(i) { xs[i] }`, "usize"},
		{"function use", `fun f(g) { g(1) }`, "impl Fn(_) -> _"},
		{"string concat", `fun f(name) { "Hello " + name }`, "&str"},
		{"numeric", `fun f(x) { x + 1 }`, "i32"},
		{"bool", `fun f(flag) { if flag { 1 } else { 2 } }`, "bool"},
		{"none", `fun f(x) { nil }`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			name, body := fnBody(t, tc.src)
			got := analyzer.SynthesizeParamType(name, body)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestIsMutated(t *testing.T) {
	name, body := fnBody(t, `fun f(x) { x = x + 1 }`)
	require.True(t, analyzer.IsMutated(name, body))

	name2, body2 := fnBody(t, `fun f(x) { x + 1 }`)
	require.False(t, analyzer.IsMutated(name2, body2))
}

func TestClassifyCallee(t *testing.T) {
	require.Equal(t, analyzer.CalleeNumeric, analyzer.ClassifyCallee("sqrt"))
	require.Equal(t, analyzer.CalleeVoid, analyzer.ClassifyCallee("println"))
	require.Equal(t, analyzer.CalleeUnknown, analyzer.ClassifyCallee("frobnicate"))
}

func TestExhaustive(t *testing.T) {
	missing, ok := analyzer.Exhaustive([]ast.Pattern{
		&ast.ConstructorPattern{Name: "Some"},
	}, []string{"Some", "None"})
	require.False(t, ok)
	require.Equal(t, []string{"None"}, missing)

	_, ok = analyzer.Exhaustive([]ast.Pattern{
		&ast.ConstructorPattern{Name: "Some"},
		&ast.WildcardPattern{},
	}, []string{"Some", "None"})
	require.True(t, ok)
}
