package ast

import "github.com/funvibe/funxy/internal/token"

// FieldDecl is one field of a struct/class definition.
type FieldDecl struct {
	Name           *Identifier
	TypeAnnotation Type
	Mutable        bool
}

// StructDeclaration is `struct Name { field: Type, ... }`.
type StructDeclaration struct {
	Token      token.Token
	Name       *Identifier
	TypeParams []TypeParam
	Fields     []FieldDecl
	Attributes []Attribute
}

func (sd *StructDeclaration) statementNode()        {}
func (sd *StructDeclaration) expressionNode()       {}
func (sd *StructDeclaration) TokenLiteral() string  { return sd.Token.Lexeme }
func (sd *StructDeclaration) GetToken() token.Token { return sd.Token }

// EnumVariantDecl is one constructor of an enum: `Name(Type, ...)`.
type EnumVariantDecl struct {
	Name   *Identifier
	Fields []Type // positional payload types, empty for a unit variant
}

// EnumDeclaration is `enum Name { Variant1, Variant2(Type), ... }`.
type EnumDeclaration struct {
	Token      token.Token
	Name       *Identifier
	TypeParams []TypeParam
	Variants   []EnumVariantDecl
	Attributes []Attribute
}

func (ed *EnumDeclaration) statementNode()        {}
func (ed *EnumDeclaration) expressionNode()       {}
func (ed *EnumDeclaration) TokenLiteral() string  { return ed.Token.Lexeme }
func (ed *EnumDeclaration) GetToken() token.Token { return ed.Token }

// TraitMethodSig is a method signature declared (and optionally given a
// default body) inside a trait.
type TraitMethodSig struct {
	Name       *Identifier
	Parameters []Param
	ReturnType Type
	Default    *BlockExpression // nil if the trait only declares the signature
}

// TraitDeclaration is `trait Name { fun method(...) -> T [ { default } ] }`.
type TraitDeclaration struct {
	Token      token.Token
	Name       *Identifier
	Methods    []TraitMethodSig
	Attributes []Attribute
}

func (td *TraitDeclaration) statementNode()        {}
func (td *TraitDeclaration) expressionNode()       {}
func (td *TraitDeclaration) TokenLiteral() string  { return td.Token.Lexeme }
func (td *TraitDeclaration) GetToken() token.Token { return td.Token }

// ImplDeclaration is `impl Trait for Type { fun method(...) {...} }` (or
// an inherent `impl Type { ... }` when Trait is nil).
type ImplDeclaration struct {
	Token      token.Token
	Trait      *Identifier // nil for an inherent impl block
	TargetType Type
	Methods    []*FunctionExpression
	Attributes []Attribute
}

func (id *ImplDeclaration) statementNode()        {}
func (id *ImplDeclaration) expressionNode()       {}
func (id *ImplDeclaration) TokenLiteral() string  { return id.Token.Lexeme }
func (id *ImplDeclaration) GetToken() token.Token { return id.Token }

// ClassDeclaration is `class Name { field: Type, ... ; fun method(...) {...} }`.
// Class instances have reference semantics (spec.md §3.4 "Class").
type ClassDeclaration struct {
	Token      token.Token
	Name       *Identifier
	TypeParams []TypeParam
	Fields     []FieldDecl
	Methods    []*FunctionExpression
	Attributes []Attribute
}

func (cd *ClassDeclaration) statementNode()        {}
func (cd *ClassDeclaration) expressionNode()       {}
func (cd *ClassDeclaration) TokenLiteral() string  { return cd.Token.Lexeme }
func (cd *ClassDeclaration) GetToken() token.Token { return cd.Token }

// ActorDeclaration is `actor Name { state: Type, ...; receive { ... } }`.
type ActorDeclaration struct {
	Token      token.Token
	Name       *Identifier
	Fields     []FieldDecl
	Methods    []*FunctionExpression
	Receive    *ReceiveExpression
	Attributes []Attribute
}

func (ad *ActorDeclaration) statementNode()        {}
func (ad *ActorDeclaration) expressionNode()       {}
func (ad *ActorDeclaration) TokenLiteral() string  { return ad.Token.Lexeme }
func (ad *ActorDeclaration) GetToken() token.Token { return ad.Token }

// ModuleDeclaration is `module Name { ... }`, a nested namespace block.
type ModuleDeclaration struct {
	Token      token.Token
	Name       *Identifier
	Statements []Statement
	Attributes []Attribute
}

func (md *ModuleDeclaration) statementNode()        {}
func (md *ModuleDeclaration) expressionNode()       {}
func (md *ModuleDeclaration) TokenLiteral() string  { return md.Token.Lexeme }
func (md *ModuleDeclaration) GetToken() token.Token { return md.Token }
