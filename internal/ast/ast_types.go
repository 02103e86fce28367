package ast

import "github.com/funvibe/funxy/internal/token"

// Type is the base interface for type annotations (spec.md §3.3 "Type").
// Types are leaves: used only for annotations; inference fills in Unknown
// placeholders (see internal/analyzer).
type Type interface {
	Node
	typeNode()
	String() string
}

// NamedType is a bare type name, e.g. `Int`, `String`, or a type
// parameter reference. Bounds holds `where`-clause bounds merged in by
// the parser (spec.md §4.2 "Where clauses"); empty for ordinary names.
type NamedType struct {
	Token  token.Token
	Name   string
	Bounds []string
}

func (nt *NamedType) typeNode()            {}
func (nt *NamedType) TokenLiteral() string  { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token { return nt.Token }
func (nt *NamedType) String() string        { return nt.Name }

// TupleType is `(T1, T2, ...)`.
type TupleType struct {
	Token   token.Token
	Members []Type
}

func (tt *TupleType) typeNode()            {}
func (tt *TupleType) TokenLiteral() string  { return tt.Token.Lexeme }
func (tt *TupleType) GetToken() token.Token { return tt.Token }
func (tt *TupleType) String() string {
	s := "("
	for i, m := range tt.Members {
		if i > 0 {
			s += ", "
		}
		s += m.String()
	}
	return s + ")"
}

// FunctionType is `(T1, T2) -> R`.
type FunctionType struct {
	Token      token.Token
	Params     []Type
	ReturnType Type
}

func (ft *FunctionType) typeNode()            {}
func (ft *FunctionType) TokenLiteral() string  { return ft.Token.Lexeme }
func (ft *FunctionType) GetToken() token.Token { return ft.Token }
func (ft *FunctionType) String() string {
	s := "("
	for i, p := range ft.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	s += ") -> "
	if ft.ReturnType != nil {
		s += ft.ReturnType.String()
	}
	return s
}

// ReferenceType is `&T` or `&mut T`.
type ReferenceType struct {
	Token   token.Token
	Mutable bool
	Target  Type
}

func (rt *ReferenceType) typeNode()            {}
func (rt *ReferenceType) TokenLiteral() string  { return rt.Token.Lexeme }
func (rt *ReferenceType) GetToken() token.Token { return rt.Token }
func (rt *ReferenceType) String() string {
	if rt.Mutable {
		return "&mut " + rt.Target.String()
	}
	return "&" + rt.Target.String()
}

// GenericType is `Head<Arg1, Arg2>`, e.g. `Vec<Int>`, `Result<T, E>`.
type GenericType struct {
	Token token.Token
	Head  string
	Args  []Type
}

func (gt *GenericType) typeNode()            {}
func (gt *GenericType) TokenLiteral() string  { return gt.Token.Lexeme }
func (gt *GenericType) GetToken() token.Token { return gt.Token }
func (gt *GenericType) String() string {
	s := gt.Head + "<"
	for i, a := range gt.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ">"
}

// ArrayType is `[T; N]`, a fixed-size array of N elements of type T.
type ArrayType struct {
	Token  token.Token
	Elem   Type
	Length int
}

func (at *ArrayType) typeNode()            {}
func (at *ArrayType) TokenLiteral() string  { return at.Token.Lexeme }
func (at *ArrayType) GetToken() token.Token { return at.Token }
func (at *ArrayType) String() string        { return "[" + at.Elem.String() + "]" }

// SliceType is `[T]`, a dynamically-sized view over T.
type SliceType struct {
	Token token.Token
	Elem  Type
}

func (st *SliceType) typeNode()            {}
func (st *SliceType) TokenLiteral() string  { return st.Token.Lexeme }
func (st *SliceType) GetToken() token.Token { return st.Token }
func (st *SliceType) String() string        { return "&[" + st.Elem.String() + "]" }

// UnknownType is the inference placeholder filled in by the analyzer
// when no annotation is present (spec.md §3.3).
type UnknownType struct{ Token token.Token }

func (ut *UnknownType) typeNode()            {}
func (ut *UnknownType) TokenLiteral() string  { return ut.Token.Lexeme }
func (ut *UnknownType) GetToken() token.Token { return ut.Token }
func (ut *UnknownType) String() string        { return "_" }
