// Package ast defines the typed abstract syntax tree produced by the
// parser and consumed by the semantic analyzer, interpreter, and
// transpiler (spec.md §3.3).
package ast

import "github.com/funvibe/funxy/internal/token"

// TokenProvider is implemented by every AST node so error reporting can
// recover a span without a type switch over every node kind.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for every AST node: expressions, statements,
// patterns, and types all satisfy it.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a top-level or block-level Node.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node usable as a value-producing term. Every
// expression-oriented construct in spec.md §3.3 is an Expression; Ruchy
// has no separate statement grammar beyond the handful of declaration
// forms that only make sense at block scope (import, package,
// struct/enum/trait/impl/class/actor/function declarations).
type Expression interface {
	Node
	expressionNode()
}

// Attribute is a `#[name(key = value, ...)]` annotation. Attributes are
// parsed before the expression they annotate and attached only to node
// kinds that declare an Attributes field (spec.md §4.2 "Attributes").
type Attribute struct {
	Token token.Token // The '#[' token
	Name  string
	Args  []AttributeArg
}

// AttributeArg is either a bare positional argument or a `key = value`
// pair inside an attribute's argument list.
type AttributeArg struct {
	Key   string // empty for positional arguments
	Value Expression
}

// Program is the root node produced by Parse.
type Program struct {
	File       string
	Package    *PackageDeclaration
	Imports    []*ImportStatement
	Statements []Statement
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// PackageDeclaration names the module and its export list.
// package name (Exported1, Exported2)
type PackageDeclaration struct {
	Token   token.Token
	Name    *Identifier
	Exports []*ExportSpec
}

func (pd *PackageDeclaration) statementNode()        {}
func (pd *PackageDeclaration) TokenLiteral() string  { return pd.Token.Lexeme }
func (pd *PackageDeclaration) GetToken() token.Token { return pd.Token }

// ExportSpec is one entry of a package export list: either a local symbol
// or a module re-export (`module.(*)` or `module.(A, B)`).
type ExportSpec struct {
	Token       token.Token
	Symbol      *Identifier
	ModuleName  *Identifier
	Symbols     []*Identifier
	ReexportAll bool
}

// ImportStatement brings a module into scope, with an optional alias.
type ImportStatement struct {
	Token token.Token
	Path  *StringLiteral
	Alias *Identifier
}

func (is *ImportStatement) statementNode()        {}
func (is *ImportStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token { return is.Token }

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// DirectiveStatement is a compiler directive: `directive "name"`.
type DirectiveStatement struct {
	Token token.Token
	Name  string
}

func (ds *DirectiveStatement) statementNode()        {}
func (ds *DirectiveStatement) TokenLiteral() string  { return ds.Token.Lexeme }
func (ds *DirectiveStatement) GetToken() token.Token { return ds.Token }

// ExpressionStatement wraps an expression evaluated for effect at block
// scope, as a Statement, so Program.Statements can mix declarations and
// plain expressions.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }
