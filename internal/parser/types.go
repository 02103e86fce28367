package parser

import (
	"strconv"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/token"
)

// parseType parses a type annotation (spec.md §3.3 "Type"). Called with
// curToken on the first token of the type.
func (p *Parser) parseType() ast.Type {
	switch p.curToken.Type {
	case token.AMPERSAND:
		tok := p.curToken
		mutable := false
		if p.peekTokenIs(token.MUT) {
			p.nextToken()
			mutable = true
		}
		p.advance()
		if p.curTokenIs(token.LBRACKET) {
			p.advance()
			elem := p.parseType()
			p.expectPeek(token.RBRACKET)
			return &ast.SliceType{Token: tok, Elem: elem}
		}
		target := p.parseType()
		return &ast.ReferenceType{Token: tok, Mutable: mutable, Target: target}
	case token.LPAREN:
		tok := p.curToken
		p.advance()
		var members []ast.Type
		for !p.curTokenIs(token.RPAREN) {
			members = append(members, p.parseType())
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.advance()
			}
		}
		if p.peekTokenIs(token.ARROW) {
			p.nextToken()
			p.advance()
			ret := p.parseType()
			return &ast.FunctionType{Token: tok, Params: members, ReturnType: ret}
		}
		return &ast.TupleType{Token: tok, Members: members}
	case token.LBRACKET:
		tok := p.curToken
		p.advance()
		elem := p.parseType()
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
			p.advance()
			n, _ := strconv.Atoi(p.curToken.Lexeme)
			p.expectPeek(token.RBRACKET)
			return &ast.ArrayType{Token: tok, Elem: elem, Length: n}
		}
		p.expectPeek(token.RBRACKET)
		return &ast.SliceType{Token: tok, Elem: elem}
	case token.IDENT:
		tok := p.curToken
		name := tok.Lexeme
		if p.peekTokenIs(token.LT) {
			p.nextToken()
			p.advance()
			var args []ast.Type
			for !p.curTokenIs(token.GT) {
				args = append(args, p.parseType())
				if p.peekTokenIs(token.COMMA) {
					p.nextToken()
					p.advance()
				} else if p.peekTokenIs(token.GT) {
					p.nextToken()
				}
			}
			return &ast.GenericType{Token: tok, Head: name, Args: args}
		}
		return &ast.NamedType{Token: tok, Name: name}
	default:
		return &ast.UnknownType{Token: p.curToken}
	}
}

// mergeWhereBounds folds a `where T: Bound1 + Bound2, ...` clause into the
// matching TypeParam's Bounds list (spec.md §4.2 "Where clauses").
func mergeWhereBounds(params []ast.TypeParam, name string, bounds []string) []ast.TypeParam {
	for i := range params {
		if params[i].Name == name {
			params[i].Bounds = append(params[i].Bounds, bounds...)
			return params
		}
	}
	params = append(params, ast.TypeParam{Name: name, Bounds: bounds})
	return params
}

// parseWhereClause parses `where T: Bound + Bound2, U: Bound3` and merges
// the bounds into typeParams in place, returning the updated slice.
func (p *Parser) parseWhereClause(typeParams []ast.TypeParam) []ast.TypeParam {
	if !p.peekTokenIs(token.WHERE) {
		return typeParams
	}
	p.nextToken() // 'where'
	for {
		p.advance()
		if p.curToken.Type != token.IDENT {
			break
		}
		name := p.curToken.Lexeme
		if !p.expectPeek(token.COLON) {
			break
		}
		p.advance()
		var bounds []string
		bounds = append(bounds, p.curToken.Lexeme)
		for p.peekTokenIs(token.PLUS) {
			p.nextToken()
			p.advance()
			bounds = append(bounds, p.curToken.Lexeme)
		}
		typeParams = mergeWhereBounds(typeParams, name, bounds)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	return typeParams
}
