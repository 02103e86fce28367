package ext_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/funxy/internal/evaluator"
	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/pipeline"
	"github.com/funvibe/funxy/pkg/ext"
)

func TestRegisterExposesHostBuiltin(t *testing.T) {
	ev := evaluator.New(discardWriter{})
	ext.Register(ev, "host_double", func(ev *evaluator.Evaluator, args []ext.Object) ext.Object {
		i, ok := args[0].(*ext.Integer)
		if !ok {
			return ext.NewError("host_double expects an integer")
		}
		return ext.ToRuchy(int64(i.Value * 2))
	})

	src := `host_double(21)`
	toks, lexErrs := lexer.Tokenize(src)
	require.Empty(t, lexErrs)
	ctx := pipeline.NewContext("test.ruchy", src)
	p := parser.New(toks, ctx)
	prog := p.ParseProgram()
	require.Empty(t, ctx.Errors)

	result := ev.Run(prog)
	i, ok := result.(*evaluator.Integer)
	require.True(t, ok, "expected Integer, got %T (%s)", result, result.Inspect())
	require.EqualValues(t, 42, i.Value)
}

func TestToRuchyConvertsGoValues(t *testing.T) {
	require.IsType(t, &ext.Integer{}, ext.ToRuchy(5))
	require.IsType(t, &ext.Float{}, ext.ToRuchy(1.5))
	require.IsType(t, &ext.Bool{}, ext.ToRuchy(true))
	require.IsType(t, &ext.String{}, ext.ToRuchy("hi"))
	require.IsType(t, &ext.Nil{}, ext.ToRuchy(nil))
}

type discardWriter struct{}

func (discardWriter) Write(string) {}
