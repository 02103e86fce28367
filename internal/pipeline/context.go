package pipeline

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
)

// PipelineContext holds one source file's state and the diagnostics
// collected for it; the parser appends its errors to Errors. A Processor
// run by Pipeline.Run mutates and returns the same context, and Run
// continues past earlier errors so all diagnostics surface together.
type PipelineContext struct {
	FilePath string
	Source   string

	TokenStream []token.Token
	AstRoot     ast.Node

	// TypeMap is a per-file map keyed by AST node. No package reads or
	// writes it; the transpiler's parameter-type synthesis calls
	// analyzer.SynthesizeParamType directly.
	TypeMap map[ast.Node]interface{}

	Errors []*diagnostics.DiagnosticError
}

// NewContext builds the initial context for a single source file.
func NewContext(filePath, source string) *PipelineContext {
	return &PipelineContext{
		FilePath: filePath,
		Source:   source,
		TypeMap:  make(map[ast.Node]interface{}),
	}
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}
