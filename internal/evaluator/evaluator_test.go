package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/funxy/internal/evaluator"
	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/pipeline"
)

// bufWriter collects println!/print! output for assertions.
type bufWriter struct{ buf []string }

func (w *bufWriter) Write(s string) { w.buf = append(w.buf, s) }

func run(t *testing.T, src string) evaluator.Object {
	t.Helper()
	toks, lexErrs := lexer.Tokenize(src)
	require.Empty(t, lexErrs)
	ctx := pipeline.NewContext("test.ruchy", src)
	p := parser.New(toks, ctx)
	prog := p.ParseProgram()
	require.Empty(t, ctx.Errors)
	ev := evaluator.New(&bufWriter{})
	return ev.Run(prog)
}

// TestLetBindingArithmetic encodes spec.md §8 scenario S1.
func TestLetBindingArithmetic(t *testing.T) {
	result := run(t, `let x = 5; let y = 3; x + y`)
	i, ok := result.(*evaluator.Integer)
	require.True(t, ok, "expected Integer, got %T (%s)", result, result.Inspect())
	require.EqualValues(t, 8, i.Value)
}

// TestRecursiveFactorial encodes spec.md §8 scenario S2.
func TestRecursiveFactorial(t *testing.T) {
	result := run(t, `fun fact(n) { if n <= 1 { 1 } else { n * fact(n - 1) } }; fact(5)`)
	i, ok := result.(*evaluator.Integer)
	require.True(t, ok, "expected Integer, got %T (%s)", result, result.Inspect())
	require.EqualValues(t, 120, i.Value)
}

// TestListComprehensionWithGuard encodes spec.md §8 scenario S3.
func TestListComprehensionWithGuard(t *testing.T) {
	result := run(t, `[x * x for x in 1..=4 if x % 2 == 0]`)
	arr, ok := result.(*evaluator.Array)
	require.True(t, ok, "expected Array, got %T (%s)", result, result.Inspect())
	require.Len(t, arr.Elements, 2)
	require.EqualValues(t, 4, arr.Elements[0].(*evaluator.Integer).Value)
	require.EqualValues(t, 16, arr.Elements[1].(*evaluator.Integer).Value)
}

// TestMutatingMethodRebinding encodes spec.md §8 scenario S4.
func TestMutatingMethodRebinding(t *testing.T) {
	result := run(t, `let xs = [1, 2]; xs.push(3); xs`)
	arr, ok := result.(*evaluator.Array)
	require.True(t, ok, "expected Array, got %T (%s)", result, result.Inspect())
	require.Len(t, arr.Elements, 3)
	require.EqualValues(t, 3, arr.Elements[2].(*evaluator.Integer).Value)
}

// TestTuplePatternWithGuard encodes spec.md §8 scenario S5.
func TestTuplePatternWithGuard(t *testing.T) {
	result := run(t, `match (1, 2) { (a, b) if a < b => a + b, _ => 0 }`)
	i, ok := result.(*evaluator.Integer)
	require.True(t, ok, "expected Integer, got %T (%s)", result, result.Inspect())
	require.EqualValues(t, 3, i.Value)
}

// TestThrowCatch encodes spec.md §8 scenario S6.
func TestThrowCatch(t *testing.T) {
	result := run(t, `try { throw "boom" } catch (e) { e }`)
	s, ok := result.(*evaluator.String)
	require.True(t, ok, "expected String, got %T (%s)", result, result.Inspect())
	require.Equal(t, "boom", s.Value)
}

// TestNonExhaustiveMatchReportsMissingVariants encodes spec.md §4.3.3.
func TestNonExhaustiveMatchReportsMissingVariants(t *testing.T) {
	result := run(t, `enum Opt { Some(x), None }; let v = None; match v { Some(x) => x }`)
	errObj, ok := result.(*evaluator.Error)
	require.True(t, ok, "expected Error, got %T (%s)", result, result.Inspect())
	require.Equal(t, "ExhaustivenessError", errObj.Kind)
}

// TestExhaustiveMatchWithWildcardSucceeds is the exhaustive counterpart
// to TestNonExhaustiveMatchReportsMissingVariants.
func TestExhaustiveMatchWithWildcardSucceeds(t *testing.T) {
	result := run(t, `enum Opt { Some(x), None }; let v = None; match v { Some(x) => x, _ => 0 }`)
	i, ok := result.(*evaluator.Integer)
	require.True(t, ok, "expected Integer, got %T (%s)", result, result.Inspect())
	require.EqualValues(t, 0, i.Value)
}

// TestYamlStringifyAndParseBuiltins calls the flat yaml_stringify and
// yaml_parse builtins directly; TestYamlNamespaceDispatch covers the
// Yaml.parse(...) route.
func TestYamlStringifyAndParseBuiltins(t *testing.T) {
	result := run(t, `yaml_stringify(42)`)
	s, ok := result.(*evaluator.String)
	require.True(t, ok, "expected String, got %T (%s)", result, result.Inspect())
	require.Contains(t, s.Value, "42")

	result = run(t, `match yaml_parse("7") { Ok(v) => v, Err(e) => 0 }`)
	i, ok := result.(*evaluator.Integer)
	require.True(t, ok, "expected Integer, got %T (%s)", result, result.Inspect())
	require.EqualValues(t, 7, i.Value)
}

// TestYamlNamespaceDispatch verifies Yaml.parse(...) resolves through
// namespace dispatch to the same yaml_parse builtin.
func TestYamlNamespaceDispatch(t *testing.T) {
	result := run(t, `match Yaml.parse("true") { Ok(v) => v, Err(e) => false }`)
	b, ok := result.(*evaluator.Bool)
	require.True(t, ok, "expected Bool, got %T (%s)", result, result.Inspect())
	require.True(t, b.Value)
}

// TestHumanBytesFormatsSize encodes the go-humanize-backed introspection
// builtin added alongside yaml (spec.md §4.6 Time/Introspection group).
func TestHumanBytesFormatsSize(t *testing.T) {
	result := run(t, `human_bytes(2048)`)
	s, ok := result.(*evaluator.String)
	require.True(t, ok, "expected String, got %T (%s)", result, result.Inspect())
	require.Equal(t, "2.0 kB", s.Value)
}

// TestHumanDurationFormatsRelativeTime checks human_duration returns a
// relative-time description, not asserting the exact rounding (which is
// wall-clock sensitive).
func TestHumanDurationFormatsRelativeTime(t *testing.T) {
	result := run(t, `human_duration(3600)`)
	s, ok := result.(*evaluator.String)
	require.True(t, ok, "expected String, got %T (%s)", result, result.Inspect())
	require.Contains(t, s.Value, "ago")
}
