package ast

import "github.com/funvibe/funxy/internal/token"

// ComprehensionClause is one `for <var> in <iterable> [if <guard>]` clause
// of a comprehension. Multiple clauses bind left-to-right (spec.md §4.2
// "Comprehensions").
type ComprehensionClause struct {
	// Variable is the canonical string form of the comprehension variable
	// pattern: a simple identifier, a tuple pattern's rendering, or a
	// single-argument constructor form (Some(id), Ok(id), Err(id), None,
	// or a user-named constructor), per spec.md §4.2.
	Variable string
	Iterable Expression
	Guard    Expression // optional
}

// ListComprehension is `[expr for clause... ]`.
type ListComprehension struct {
	Token   token.Token
	Result  Expression
	Clauses []ComprehensionClause
}

func (lc *ListComprehension) expressionNode()       {}
func (lc *ListComprehension) TokenLiteral() string  { return lc.Token.Lexeme }
func (lc *ListComprehension) GetToken() token.Token { return lc.Token }

// SetComprehension is `{expr for clause...}`.
type SetComprehension struct {
	Token   token.Token
	Result  Expression
	Clauses []ComprehensionClause
}

func (sc *SetComprehension) expressionNode()       {}
func (sc *SetComprehension) TokenLiteral() string  { return sc.Token.Lexeme }
func (sc *SetComprehension) GetToken() token.Token { return sc.Token }

// DictComprehension is `{key: value for clause...}`.
type DictComprehension struct {
	Token   token.Token
	Key     Expression
	Value   Expression
	Clauses []ComprehensionClause
}

func (dc *DictComprehension) expressionNode()       {}
func (dc *DictComprehension) TokenLiteral() string  { return dc.Token.Lexeme }
func (dc *DictComprehension) GetToken() token.Token { return dc.Token }
