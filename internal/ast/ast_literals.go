package ast

import "github.com/funvibe/funxy/internal/token"

// NilLiteral is `null` or `()`.
type NilLiteral struct{ Token token.Token }

func (n *NilLiteral) expressionNode()       {}
func (n *NilLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NilLiteral) GetToken() token.Token { return n.Token }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

// IntegerLiteral is a 64-bit signed integer literal (decimal/hex/binary),
// with an optional type suffix (spec.md §4.1, §6.2).
type IntegerLiteral struct {
	Token  token.Token
	Value  int64
	Suffix string // e.g. "i32", "" if absent
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// FloatLiteral is a 64-bit IEEE float literal with an optional suffix.
type FloatLiteral struct {
	Token  token.Token
	Value  float64
	Suffix string
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

// ByteLiteral is a single 8-bit unsigned value, e.g. from a bytes literal
// element.
type ByteLiteral struct {
	Token token.Token
	Value byte
}

func (bl *ByteLiteral) expressionNode()       {}
func (bl *ByteLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *ByteLiteral) GetToken() token.Token { return bl.Token }

// CharLiteral is a single Unicode scalar value literal.
type CharLiteral struct {
	Token token.Token
	Value rune
}

func (cl *CharLiteral) expressionNode()       {}
func (cl *CharLiteral) TokenLiteral() string  { return cl.Token.Lexeme }
func (cl *CharLiteral) GetToken() token.Token { return cl.Token }

// StringLiteral is a plain `"…"` or raw `r"…"` string. Raw is true for the
// raw-string form, where escape sequences are not interpreted.
type StringLiteral struct {
	Token token.Token
	Value string
	Raw   bool
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// AtomLiteral is `:name`, an interned symbolic constant.
type AtomLiteral struct {
	Token token.Token
	Name  string
}

func (al *AtomLiteral) expressionNode()       {}
func (al *AtomLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *AtomLiteral) GetToken() token.Token { return al.Token }

// InterpolatedStringPart is one piece of an `f"…"` literal: either a
// literal text run or an embedded expression.
type InterpolatedStringPart struct {
	Text string     // non-empty only when Expr is nil
	Expr Expression // non-nil only when Text is empty
}

// InterpolatedStringLiteral is an `f"…{expr}…"` literal. The lexer
// produces one token whose Literal carries the raw source between quotes;
// the parser splits it into Parts.
type InterpolatedStringLiteral struct {
	Token token.Token
	Parts []InterpolatedStringPart
}

func (is *InterpolatedStringLiteral) expressionNode()       {}
func (is *InterpolatedStringLiteral) TokenLiteral() string  { return is.Token.Lexeme }
func (is *InterpolatedStringLiteral) GetToken() token.Token { return is.Token }

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()       {}
func (ll *ListLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// TupleLiteral is `(e1, e2, ...)`; `()` parses to a TupleLiteral with no
// elements.
type TupleLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()       {}
func (tl *TupleLiteral) TokenLiteral() string  { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token { return tl.Token }

// SetLiteral is `{e1, e2, ...}` parsed as a set rather than an object
// literal or block (spec.md §4.2 "Block vs object literal").
type SetLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (sl *SetLiteral) expressionNode()       {}
func (sl *SetLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *SetLiteral) GetToken() token.Token { return sl.Token }

// ObjectField is one entry of an ObjectLiteral: either `key: value` /
// `key => value`, or a `...spread` entry (Spread != nil).
type ObjectField struct {
	Key    Expression // Identifier, StringLiteral, AtomLiteral, or keyword-as-key
	Value  Expression
	Spread Expression // set instead of Key/Value for `...expr` entries
}

// ObjectLiteral is `{k: v, ...}`.
type ObjectLiteral struct {
	Token  token.Token
	Fields []ObjectField
}

func (ol *ObjectLiteral) expressionNode()       {}
func (ol *ObjectLiteral) TokenLiteral() string  { return ol.Token.Lexeme }
func (ol *ObjectLiteral) GetToken() token.Token { return ol.Token }

// StructLiteral is `Name{field: value, ...base}`.
type StructLiteral struct {
	Token  token.Token
	Name   *Identifier
	Fields []ObjectField
	Base   Expression // optional `...base` spread source
}

func (sl *StructLiteral) expressionNode()       {}
func (sl *StructLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StructLiteral) GetToken() token.Token { return sl.Token }

// DataFrameColumn is one named column of a DataFrame literal.
type DataFrameColumn struct {
	Name   string
	Values []Expression
}

// DataFrameLiteral is `df![ col => [values], ... ]`, normalized from
// either the keyed-column or legacy row-based syntax into column-oriented
// form (spec.md §4.2 "DataFrame literals").
type DataFrameLiteral struct {
	Token   token.Token
	Columns []DataFrameColumn
}

func (dl *DataFrameLiteral) expressionNode()       {}
func (dl *DataFrameLiteral) TokenLiteral() string  { return dl.Token.Lexeme }
func (dl *DataFrameLiteral) GetToken() token.Token { return dl.Token }
