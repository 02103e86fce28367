package evaluator

import (
	"context"
	"sync/atomic"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/dataflow"
)

// CallFrame records one entry of the interpreter's own call stack, used
// for recursion-depth diagnostics (spec.md §3.6, §7).
type CallFrame struct {
	Name string
	Node ast.Node
}

// Evaluator is the tree-walking interpreter for a single program run.
// depth is a thread-local-equivalent counter: each goroutine evaluating
// nested calls carries its own Evaluator via Clone, so the counter never
// needs cross-goroutine synchronization (spec.md §3.6).
type Evaluator struct {
	Context context.Context

	GlobalEnv *Environment

	// Structs/Enums/Classes/Actors hold declaration metadata
	// gathered by a first evaluation pass over top-level statements, so
	// forward references between declarations resolve (spec.md §4.4.1
	// "Declarations").
	Structs map[string]*ast.StructDeclaration
	Enums   map[string]*ast.EnumDeclaration
	Classes map[string]*ast.ClassDeclaration
	Actors  map[string]*ast.ActorDeclaration

	// Methods maps "TypeName::method" to its Closure, covering both
	// struct/enum `impl` blocks and class method bodies (spec.md §4.5
	// "Struct: qualified StructName::method lookup").
	Methods map[string]*Closure

	// Namespaces holds stdlib namespace objects synthesized on first
	// lookup (spec.md §3.5, §4.5 "Namespace dispatch").
	Namespaces map[string]Object

	CallStack []CallFrame
	depth     int64

	Out Writer

	// Dataflow records a read-only snapshot per DataFrame transform stage
	// (spec.md §4.8 "Debugger snapshot API"), polled by an external UI.
	Dataflow *dataflow.Pipeline
}

// Writer is the sink for println!/print! output; CLI wires it to stdout,
// tests wire it to a buffer.
type Writer interface {
	Write(s string)
}

const maxEvalDepth = int64(config.MaxRecursionDepth)

// New constructs an Evaluator with an empty global scope and declaration
// tables, and registers every builtin name (spec.md §4.6).
func New(out Writer) *Evaluator {
	ev := &Evaluator{
		Context:    context.Background(),
		GlobalEnv:  NewEnvironment(),
		Structs:    make(map[string]*ast.StructDeclaration),
		Enums:      make(map[string]*ast.EnumDeclaration),
		Classes:    make(map[string]*ast.ClassDeclaration),
		Actors:     make(map[string]*ast.ActorDeclaration),
		Methods:    make(map[string]*Closure),
		Namespaces: make(map[string]Object),
		Out:        out,
		Dataflow:   dataflow.NewPipeline(),
	}
	RegisterBuiltins(ev.GlobalEnv)
	return ev
}

// Clone returns a copy of ev with its own depth counter and call stack,
// sharing the same declaration tables and global scope, for use by a
// concurrently-evaluating goroutine. Actor send/ask run on the calling
// Evaluator and do not clone it.
func (ev *Evaluator) Clone() *Evaluator {
	clone := *ev
	clone.CallStack = nil
	atomic.StoreInt64(&clone.depth, 0)
	return &clone
}

// Run evaluates a full program: first registering every top-level
// declaration (so mutual forward references resolve), then evaluating
// statements in order (spec.md §4.4.1).
func (ev *Evaluator) Run(prog *ast.Program) Object {
	ev.registerDeclarations(prog.Statements)
	var result Object = NIL
	for _, stmt := range prog.Statements {
		if isDeclaration(stmt) {
			continue
		}
		result = ev.Eval(stmt, ev.GlobalEnv)
		if IsSignal(result) {
			return result
		}
	}
	return result
}

func isDeclaration(n ast.Node) bool {
	switch n.(type) {
	case *ast.StructDeclaration, *ast.EnumDeclaration, *ast.TraitDeclaration,
		*ast.ImplDeclaration, *ast.ClassDeclaration, *ast.ActorDeclaration:
		return true
	}
	return false
}

// Eval is the single entry point every recursive call goes through: it
// enforces the recursion-depth guard and restores it afterward so the
// counter exactly tracks live call-stack depth (spec.md §3.6, testable
// property "recursion-depth restoration").
func (ev *Evaluator) Eval(node ast.Node, env *Environment) Object {
	select {
	case <-ev.Context.Done():
		return NewError("RuntimeError", "evaluation cancelled")
	default:
	}

	d := atomic.AddInt64(&ev.depth, 1)
	defer atomic.AddInt64(&ev.depth, -1)
	if d > maxEvalDepth {
		return NewError("RecursionLimitExceeded", "recursion limit exceeded (current=%d, max=%d)", d, maxEvalDepth)
	}

	return ev.evalCore(node, env)
}

// evalCore dispatches on the concrete AST node type (spec.md §4.4,
// "Interpreter dispatch contract"). Each case delegates to a focused
// eval* helper defined alongside the feature area it belongs to.
func (ev *Evaluator) evalCore(node ast.Node, env *Environment) Object {
	switch n := node.(type) {

	// --- program / statements -------------------------------------------------
	case *ast.Program:
		return ev.Run(n)
	case *ast.ExpressionStatement:
		return ev.Eval(n.Expression, env)
	case *ast.ImportStatement, *ast.PackageDeclaration, *ast.DirectiveStatement:
		return NIL
	case *ast.StructDeclaration, *ast.EnumDeclaration, *ast.TraitDeclaration,
		*ast.ImplDeclaration, *ast.ClassDeclaration, *ast.ActorDeclaration:
		return NIL // registered up front by registerDeclarations

	// --- literals ---------------------------------------------------------
	case *ast.NilLiteral:
		return NIL
	case *ast.BooleanLiteral:
		return NativeBool(n.Value)
	case *ast.IntegerLiteral:
		return &Integer{Value: n.Value}
	case *ast.FloatLiteral:
		return &Float{Value: n.Value}
	case *ast.ByteLiteral:
		return &Byte{Value: n.Value}
	case *ast.CharLiteral:
		return &String{Value: string(n.Value)}
	case *ast.StringLiteral:
		return &String{Value: n.Value}
	case *ast.AtomLiteral:
		return &Atom{Name: n.Name}
	case *ast.InterpolatedStringLiteral:
		return ev.evalInterpolatedString(n, env)
	case *ast.ListLiteral:
		return ev.evalListLiteral(n, env)
	case *ast.TupleLiteral:
		return ev.evalTupleLiteral(n, env)
	case *ast.SetLiteral:
		return ev.evalSetLiteral(n, env)
	case *ast.ObjectLiteral:
		return ev.evalObjectLiteral(n, env)
	case *ast.StructLiteral:
		return ev.evalStructLiteral(n, env)
	case *ast.DataFrameLiteral:
		return ev.evalDataFrameLiteral(n, env)
	case *ast.ListComprehension:
		return ev.evalListComprehension(n, env)
	case *ast.SetComprehension:
		return ev.evalSetComprehension(n, env)
	case *ast.DictComprehension:
		return ev.evalDictComprehension(n, env)
	case *ast.LambdaExpression:
		return &Closure{Parameters: n.Parameters, Body: n.Body, Env: env}
	case *ast.FunctionExpression:
		return ev.evalFunctionExpression(n, env)

	// --- identifiers / blocks / let ---------------------------------------
	case *ast.Identifier:
		return ev.evalIdentifier(n, env)
	case *ast.BlockExpression:
		return ev.evalBlock(n, env)
	case *ast.LetExpression:
		return ev.evalLet(n, env)

	// --- operators ---------------------------------------------------------
	case *ast.PrefixExpression:
		return ev.evalPrefix(n, env)
	case *ast.InfixExpression:
		return ev.evalInfix(n, env)
	case *ast.TernaryExpression:
		return ev.evalTernary(n, env)
	case *ast.NullCoalesceExpression:
		return ev.evalNullCoalesce(n, env)
	case *ast.IncDecExpression:
		return ev.evalIncDec(n, env)
	case *ast.CastExpression:
		return ev.evalCast(n, env)
	case *ast.RangeExpression:
		return ev.evalRange(n, env)
	case *ast.PipelineExpression:
		return ev.evalPipeline(n, env)
	case *ast.SpreadExpression:
		return ev.Eval(n.Expression, env)

	// --- control flow -------------------------------------------------------
	case *ast.IfExpression:
		return ev.evalIf(n, env)
	case *ast.WhileExpression:
		return ev.evalWhile(n, env)
	case *ast.LoopExpression:
		return ev.evalLoop(n, env)
	case *ast.ForExpression:
		return ev.evalFor(n, env)
	case *ast.MatchExpression:
		return ev.evalMatch(n, env)
	case *ast.BreakExpression:
		var v Object = NIL
		if n.Value != nil {
			v = ev.Eval(n.Value, env)
			if IsSignal(v) {
				return v
			}
		}
		return &BreakSignal{Value: v, Label: n.Label}
	case *ast.ContinueExpression:
		return &ContinueSignal{Label: n.Label}
	case *ast.ReturnExpression:
		var v Object = NIL
		if n.Value != nil {
			v = ev.Eval(n.Value, env)
			if IsSignal(v) {
				return v
			}
		}
		return &ReturnSignal{Value: v}
	case *ast.ThrowExpression:
		v := ev.Eval(n.Value, env)
		if IsSignal(v) {
			return v
		}
		return &ThrowSignal{Value: v}
	case *ast.TryExpression:
		return ev.evalTry(n, env)
	case *ast.TryCatchExpression:
		return ev.evalTryCatch(n, env)
	case *ast.AsyncBlockExpression:
		return ev.evalBlock(n.Body, NewEnclosedEnvironment(env))
	case *ast.AwaitExpression:
		return ev.Eval(n.Value, env) // §5: await reduces to synchronous evaluation

	// --- calls / access -----------------------------------------------------
	case *ast.CallExpression:
		return ev.evalCall(n, env)
	case *ast.MethodCallExpression:
		return ev.evalMethodCall(n, env)
	case *ast.FieldAccessExpression:
		return ev.evalFieldAccess(n, env)
	case *ast.IndexExpression:
		return ev.evalIndex(n, env)
	case *ast.AssignExpression:
		return ev.evalAssign(n, env)
	case *ast.CompoundAssignExpression:
		return ev.evalCompoundAssign(n, env)
	case *ast.MacroInvocationExpression:
		return ev.evalMacro(n, env)

	// --- actors --------------------------------------------------------------
	case *ast.SpawnExpression:
		return ev.evalSpawn(n, env)
	case *ast.SendExpression:
		return ev.evalSend(n, env)
	case *ast.AskExpression:
		return ev.evalAsk(n, env)
	case *ast.ReceiveExpression:
		return NewError("RuntimeError", "receive used outside an actor handler")
	}

	return NewError("RuntimeError", "unsupported node %T", node)
}
