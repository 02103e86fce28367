package wasmgen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/pipeline"
	"github.com/funvibe/funxy/internal/wasmgen"
)

func TestDryRunProducesValidHeader(t *testing.T) {
	m := wasmgen.DryRun("mymod")
	require.True(t, wasmgen.Validate(m.Bytecode))
	require.Equal(t, "mymod", m.Name)
}

func TestValidateRejectsShortOrBadMagic(t *testing.T) {
	require.False(t, wasmgen.Validate([]byte{0, 1, 2}))
	require.False(t, wasmgen.Validate([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	require.True(t, wasmgen.Validate([]byte{0x00, 0x61, 0x73, 0x6d, 0, 0, 0, 1}))
}

func TestEmitExportsFunctions(t *testing.T) {
	src := `fun add(x, y) { x + y }`
	toks, lexErrs := lexer.Tokenize(src)
	require.Empty(t, lexErrs)
	ctx := pipeline.NewContext("test.ruchy", src)
	p := parser.New(toks, ctx)
	prog := p.ParseProgram()
	require.Empty(t, ctx.Errors)

	m := wasmgen.Emit("mymod", prog)
	require.Len(t, m.Exports, 1)
	require.Equal(t, "add", m.Exports[0].Name)
	require.Len(t, m.Exports[0].Signature.Params, 2)
	require.Contains(t, m.CustomSections, "name")
	require.Contains(t, m.CustomSections, "producers")
}
