package ast

import "github.com/funvibe/funxy/internal/token"

// BlockExpression is an ordered sequence of expressions; its value is the
// last expression's value, or Nil if empty (spec.md §4.4.1 "Block").
type BlockExpression struct {
	Token       token.Token // '{'
	Expressions []Expression
}

func (b *BlockExpression) expressionNode()       {}
func (b *BlockExpression) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BlockExpression) GetToken() token.Token { return b.Token }

// LetExpression is `let name = value; body` (or let-mut / let-else). The
// parser folds a block's `let` statements into nested LetExpressions
// whose Body is the remaining suffix of the block (spec.md §4.2
// "Let statements inside blocks").
type LetExpression struct {
	Token          token.Token
	Name           *Identifier
	Pattern        Pattern // set instead of Name for destructuring lets
	Mutable        bool
	TypeAnnotation Type
	Value          Expression
	ElseBody       Expression // set for `let ... else { … }`; runs when Value fails to match Pattern
	Body           Expression // remaining suffix of the enclosing block, or `e` for `let x = v in e`; nil when neither applies
}

func (le *LetExpression) expressionNode()       {}
func (le *LetExpression) TokenLiteral() string  { return le.Token.Lexeme }
func (le *LetExpression) GetToken() token.Token { return le.Token }

// AssignExpression is `target = value`. Target is an Identifier,
// FieldAccessExpression, or IndexExpression (spec.md §4.4.1 "Assign").
type AssignExpression struct {
	Token token.Token
	Left  Expression
	Value Expression
}

func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }

// CompoundAssignExpression is `target += value` and friends.
type CompoundAssignExpression struct {
	Token    token.Token
	Left     Expression
	Operator string // "+", "-", "*", "/", "%", "**"
	Value    Expression
}

func (ca *CompoundAssignExpression) expressionNode()       {}
func (ca *CompoundAssignExpression) TokenLiteral() string  { return ca.Token.Lexeme }
func (ca *CompoundAssignExpression) GetToken() token.Token { return ca.Token }

// IncDecExpression is `++x`, `x++`, `--x`, or `x--`.
type IncDecExpression struct {
	Token    token.Token
	Operator string // "++" or "--"
	Target   Expression
	Prefix   bool
}

func (id *IncDecExpression) expressionNode()       {}
func (id *IncDecExpression) TokenLiteral() string  { return id.Token.Lexeme }
func (id *IncDecExpression) GetToken() token.Token { return id.Token }

// PrefixExpression is a unary prefix operator: `-x`, `!x`.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression is a binary operator expression.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// TernaryExpression is `cond ? then : else`.
type TernaryExpression struct {
	Token     token.Token
	Condition Expression
	Then      Expression
	Else      Expression
}

func (te *TernaryExpression) expressionNode()       {}
func (te *TernaryExpression) TokenLiteral() string  { return te.Token.Lexeme }
func (te *TernaryExpression) GetToken() token.Token { return te.Token }

// IfExpression is `if cond { then } else { else }`, with an optional
// chain of `else if`. IfLetTarget is non-nil for `if let pattern = value {…}`.
type IfExpression struct {
	Token       token.Token
	Condition   Expression
	IfLetTarget Pattern // non-nil for `if let`
	Consequence *BlockExpression
	Alternative Expression // *IfExpression or *BlockExpression, nil if absent
}

func (ie *IfExpression) expressionNode()       {}
func (ie *IfExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IfExpression) GetToken() token.Token { return ie.Token }

// WhileExpression is `while cond {…}`; WhileLetTarget is non-nil for
// `while let pattern = value {…}`.
type WhileExpression struct {
	Token          token.Token
	Condition      Expression
	WhileLetTarget Pattern
	Body           *BlockExpression
	Label          string
}

func (we *WhileExpression) expressionNode()       {}
func (we *WhileExpression) TokenLiteral() string  { return we.Token.Lexeme }
func (we *WhileExpression) GetToken() token.Token { return we.Token }

// LoopExpression is `loop {…}`, an unconditional loop whose value is the
// value carried by the `break` that exits it.
type LoopExpression struct {
	Token token.Token
	Body  *BlockExpression
	Label string
}

func (le *LoopExpression) expressionNode()       {}
func (le *LoopExpression) TokenLiteral() string  { return le.Token.Lexeme }
func (le *LoopExpression) GetToken() token.Token { return le.Token }

// ForExpression is `for pattern in iterable {…}`.
type ForExpression struct {
	Token    token.Token
	Pattern  Pattern
	Iterable Expression
	Body     *BlockExpression
	Label    string
}

func (fe *ForExpression) expressionNode()       {}
func (fe *ForExpression) TokenLiteral() string  { return fe.Token.Lexeme }
func (fe *ForExpression) GetToken() token.Token { return fe.Token }

// BreakExpression is `break`, `break value`, or `break 'label value`.
type BreakExpression struct {
	Token token.Token
	Label string
	Value Expression
}

func (be *BreakExpression) expressionNode()       {}
func (be *BreakExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BreakExpression) GetToken() token.Token { return be.Token }

// ContinueExpression is `continue` or `continue 'label`.
type ContinueExpression struct {
	Token token.Token
	Label string
}

func (ce *ContinueExpression) expressionNode()       {}
func (ce *ContinueExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *ContinueExpression) GetToken() token.Token { return ce.Token }

// ReturnExpression is `return` or `return value`.
type ReturnExpression struct {
	Token token.Token
	Value Expression
}

func (re *ReturnExpression) expressionNode()       {}
func (re *ReturnExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *ReturnExpression) GetToken() token.Token { return re.Token }

// MatchArm is one arm of a MatchExpression.
type MatchArm struct {
	Pattern Pattern
	Guard   Expression // optional
	Body    Expression
}

// MatchExpression evaluates Scrutinee and tries Arms in order.
type MatchExpression struct {
	Token     token.Token
	Scrutinee Expression
	Arms      []MatchArm
}

func (me *MatchExpression) expressionNode()       {}
func (me *MatchExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MatchExpression) GetToken() token.Token { return me.Token }

// Param is a function/lambda parameter: an optional type annotation and
// an optional default value (spec.md §4.2 "Function parameters").
type Param struct {
	Name           *Identifier
	TypeAnnotation Type
	Default        Expression
}

// TypeParam is a generic type parameter with bounds merged in from
// `where` clauses (spec.md §4.2 "Where clauses").
type TypeParam struct {
	Name   string
	Bounds []string
}

// LambdaExpression is `|x, y| body` or `\x, y -> body`.
type LambdaExpression struct {
	Token      token.Token
	Parameters []Param
	Body       Expression
}

func (le *LambdaExpression) expressionNode()       {}
func (le *LambdaExpression) TokenLiteral() string  { return le.Token.Lexeme }
func (le *LambdaExpression) GetToken() token.Token { return le.Token }

// FunctionExpression is a named or anonymous `fun` definition.
type FunctionExpression struct {
	Token       token.Token
	Name        *Identifier // nil for anonymous function expressions
	TypeParams  []TypeParam
	Parameters  []Param
	ReturnType  Type
	Body        *BlockExpression
	IsAsync     bool
	Attributes  []Attribute
	Receiver    *Param // non-nil for `impl`/extension methods: the receiver parameter
}

func (fe *FunctionExpression) expressionNode()       {}
func (fe *FunctionExpression) statementNode()        {}
func (fe *FunctionExpression) TokenLiteral() string  { return fe.Token.Lexeme }
func (fe *FunctionExpression) GetToken() token.Token { return fe.Token }

// NamedArg is an `identifier:`-prefixed call argument (spec.md §4.2
// "Named arguments").
type NamedArg struct {
	Name  string
	Value Expression
}

// CallExpression is `callee(args...)`.
type CallExpression struct {
	Token     token.Token
	Function  Expression
	Arguments []Expression
	NamedArgs []NamedArg
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// MethodCallExpression is `receiver.method::<T>(args)`. TurbofishTypes
// captures the `::<...>` type arguments the parser folds into the method
// name before dispatch strips them again (spec.md §4.2, §4.5).
type MethodCallExpression struct {
	Token          token.Token
	Receiver       Expression
	Method         string
	TurbofishTypes []Type
	Arguments      []Expression
	NamedArgs      []NamedArg
	Optional       bool // true for `?.method(...)`
}

func (mc *MethodCallExpression) expressionNode()       {}
func (mc *MethodCallExpression) TokenLiteral() string  { return mc.Token.Lexeme }
func (mc *MethodCallExpression) GetToken() token.Token { return mc.Token }

// FieldAccessExpression is `receiver.field` (also used for tuple index
// access `t.0`, where Field is the digit string).
type FieldAccessExpression struct {
	Token    token.Token
	Receiver Expression
	Field    string
	Optional bool // true for `receiver?.field`
}

func (fa *FieldAccessExpression) expressionNode()       {}
func (fa *FieldAccessExpression) TokenLiteral() string  { return fa.Token.Lexeme }
func (fa *FieldAccessExpression) GetToken() token.Token { return fa.Token }

// IndexExpression is `receiver[index]`.
type IndexExpression struct {
	Token    token.Token
	Receiver Expression
	Index    Expression
}

func (ix *IndexExpression) expressionNode()       {}
func (ix *IndexExpression) TokenLiteral() string  { return ix.Token.Lexeme }
func (ix *IndexExpression) GetToken() token.Token { return ix.Token }

// RangeExpression is `start..end` or `start..=end` (Inclusive).
type RangeExpression struct {
	Token     token.Token
	Start     Expression
	End       Expression
	Inclusive bool
}

func (re *RangeExpression) expressionNode()       {}
func (re *RangeExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *RangeExpression) GetToken() token.Token { return re.Token }

// SpreadExpression is `...expr`, meaningful only inside a list/object
// literal context (spec.md §4.4.1 "Spread").
type SpreadExpression struct {
	Token      token.Token
	Expression Expression
}

func (se *SpreadExpression) expressionNode()       {}
func (se *SpreadExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SpreadExpression) GetToken() token.Token { return se.Token }

// TryExpression is `try { body }`, producing a Result-shaped value.
type TryExpression struct {
	Token token.Token
	Body  *BlockExpression
}

func (te *TryExpression) expressionNode()       {}
func (te *TryExpression) TokenLiteral() string  { return te.Token.Lexeme }
func (te *TryExpression) GetToken() token.Token { return te.Token }

// ThrowExpression is `throw value`.
type ThrowExpression struct {
	Token token.Token
	Value Expression
}

func (th *ThrowExpression) expressionNode()       {}
func (th *ThrowExpression) TokenLiteral() string  { return th.Token.Lexeme }
func (th *ThrowExpression) GetToken() token.Token { return th.Token }

// TryCatchExpression is `try { Try } catch (e) { Catch }`.
type TryCatchExpression struct {
	Token        token.Token
	Try          *BlockExpression
	CatchParam   *Identifier
	Catch        *BlockExpression
}

func (tc *TryCatchExpression) expressionNode()       {}
func (tc *TryCatchExpression) TokenLiteral() string  { return tc.Token.Lexeme }
func (tc *TryCatchExpression) GetToken() token.Token { return tc.Token }

// AsyncBlockExpression is `async { body }`.
type AsyncBlockExpression struct {
	Token token.Token
	Body  *BlockExpression
}

func (ab *AsyncBlockExpression) expressionNode()       {}
func (ab *AsyncBlockExpression) TokenLiteral() string  { return ab.Token.Lexeme }
func (ab *AsyncBlockExpression) GetToken() token.Token { return ab.Token }

// AwaitExpression is `await expr`.
type AwaitExpression struct {
	Token token.Token
	Value Expression
}

func (aw *AwaitExpression) expressionNode()       {}
func (aw *AwaitExpression) TokenLiteral() string  { return aw.Token.Lexeme }
func (aw *AwaitExpression) GetToken() token.Token { return aw.Token }

// SpawnExpression is `spawn expr`, creating a new actor instance.
type SpawnExpression struct {
	Token token.Token
	Value Expression
}

func (sp *SpawnExpression) expressionNode()       {}
func (sp *SpawnExpression) TokenLiteral() string  { return sp.Token.Lexeme }
func (sp *SpawnExpression) GetToken() token.Token { return sp.Token }

// SendExpression is `actor.send(message)`, modeled as its own node so
// the interpreter can special-case the single-undefined-identifier
// message-constructor rewrite (spec.md §4.5 "Actor send/ask").
type SendExpression struct {
	Token   token.Token
	Actor   Expression
	Message Expression
}

func (se *SendExpression) expressionNode()       {}
func (se *SendExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SendExpression) GetToken() token.Token { return se.Token }

// AskExpression is `actor.ask(message)`, returning the handler's reply.
type AskExpression struct {
	Token   token.Token
	Actor   Expression
	Message Expression
}

func (ae *AskExpression) expressionNode()       {}
func (ae *AskExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AskExpression) GetToken() token.Token { return ae.Token }

// ReceiveArm is one `Pattern => body` arm of a ReceiveExpression.
type ReceiveArm struct {
	Pattern Pattern
	Guard   Expression
	Body    Expression
}

// ReceiveExpression is an actor's `receive { Pattern => body, ... }`
// message-handler block.
type ReceiveExpression struct {
	Token token.Token
	Arms  []ReceiveArm
}

func (re *ReceiveExpression) expressionNode()       {}
func (re *ReceiveExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *ReceiveExpression) GetToken() token.Token { return re.Token }

// PipelineExpression is `x |> f |> g`, evaluated left-to-right.
type PipelineExpression struct {
	Token  token.Token
	Source Expression
	Stages []Expression
}

func (pe *PipelineExpression) expressionNode()       {}
func (pe *PipelineExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PipelineExpression) GetToken() token.Token { return pe.Token }

// CastExpression is `expr as Type`.
type CastExpression struct {
	Token    token.Token
	Value    Expression
	TargetTy Type
}

func (ce *CastExpression) expressionNode()       {}
func (ce *CastExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CastExpression) GetToken() token.Token { return ce.Token }

// MacroInvocationExpression is `name!(args)`, e.g. `println!`, `vec!`,
// `format!`.
type MacroInvocationExpression struct {
	Token     token.Token
	Name      string
	Arguments []Expression
}

func (mi *MacroInvocationExpression) expressionNode()       {}
func (mi *MacroInvocationExpression) TokenLiteral() string  { return mi.Token.Lexeme }
func (mi *MacroInvocationExpression) GetToken() token.Token { return mi.Token }

// NullCoalesceExpression is `left ?? right`: evaluates Right only if Left
// is Nil (spec.md §5 "Ordering guarantees").
type NullCoalesceExpression struct {
	Token token.Token
	Left  Expression
	Right Expression
}

func (nc *NullCoalesceExpression) expressionNode()       {}
func (nc *NullCoalesceExpression) TokenLiteral() string  { return nc.Token.Lexeme }
func (nc *NullCoalesceExpression) GetToken() token.Token { return nc.Token }
