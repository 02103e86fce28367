package transpiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/pipeline"
	"github.com/funvibe/funxy/internal/transpiler"
)

func transpile(t *testing.T, src string) string {
	t.Helper()
	toks, lexErrs := lexer.Tokenize(src)
	require.Empty(t, lexErrs)
	ctx := pipeline.NewContext("test.ruchy", src)
	p := parser.New(toks, ctx)
	prog := p.ParseProgram()
	require.Empty(t, ctx.Errors)
	return transpiler.Transpile(prog)
}

// TestTranspileAddFunction encodes spec.md §8 scenario S7: `fun
// add(x,y){x+y}` transpiles with both parameters synthesized as `i32`
// and an `i32` return type.
func TestTranspileAddFunction(t *testing.T) {
	out := transpile(t, `fun add(x, y) { x + y }`)
	require.Contains(t, out, "fn add(x: i32, y: i32) -> i32")
	require.Contains(t, out, "x + y")
}

// TestTranspileGreetFunction encodes spec.md §8 scenario S8: `fun
// greet(name){"Hello "+name}` synthesizes `name: &str` and a string
// return type.
func TestTranspileGreetFunction(t *testing.T) {
	out := transpile(t, `fun greet(name) { "Hello " + name }`)
	require.Contains(t, out, "fn greet(name: &str) -> String")
}

func TestTranspileMainHasNoReturnType(t *testing.T) {
	out := transpile(t, `fun main() { 1 }`)
	require.True(t, strings.HasPrefix(out, "fn main()"))
	require.False(t, strings.Contains(out, "main() -> "))
}

func TestTranspileMutableLetBinding(t *testing.T) {
	out := transpile(t, `fun f() { let x = 1; x = x + 1; x }`)
	require.Contains(t, out, "let mut x")
}

func TestTranspileStructPassthrough(t *testing.T) {
	out := transpile(t, `struct Point { x: Int, y: Int }`)
	require.Contains(t, out, "struct Point {")
	require.Contains(t, out, "x: Int")
}

func TestTranspileReservedKeywordEscaping(t *testing.T) {
	out := transpile(t, `fun f(move) { move }`)
	require.Contains(t, out, "r#move")
}
