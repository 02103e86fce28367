package parser

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/token"
)

// parseParamList parses a `(name: Type = default, ...)` parameter list.
func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	p.advance()
	for !p.curTokenIs(token.RPAREN) {
		param := ast.Param{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.advance()
			param.TypeAnnotation = p.parseType()
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.advance()
			param.Default = p.parseExpression(ASSIGN)
		}
		params = append(params, param)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		break
	}
	p.expectCloser(token.RPAREN)
	return params
}

// parseTypeParamList parses `<T, U>` generic parameter lists at a function
// or declaration header.
func (p *Parser) parseTypeParamList() []ast.TypeParam {
	if !p.peekTokenIs(token.LT) {
		return nil
	}
	p.nextToken()
	var params []ast.TypeParam
	p.advance()
	for !p.curTokenIs(token.GT) {
		params = append(params, ast.TypeParam{Name: p.curToken.Lexeme})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
		} else {
			p.nextToken()
		}
	}
	return params
}

// parseFunctionExpression parses `fun name<T>(params) -> Ret where ... { body }`,
// or an anonymous `fun(params) { body }` function expression.
func (p *Parser) parseFunctionExpression() ast.Expression {
	tok := p.curToken
	fe := &ast.FunctionExpression{Token: tok}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		fe.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	}
	fe.TypeParams = p.parseTypeParamList()
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	fe.Parameters = p.parseParamList()
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.advance()
		fe.ReturnType = p.parseType()
	}
	fe.TypeParams = p.parseWhereClause(fe.TypeParams)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fe.Body = p.parseBlock()
	return fe
}

// parseLambdaPipe parses `|x, y| body` and `||` (empty-parameter pipe
// form is handled separately via parseEmptyParamLambda because the lexer
// emits `||` as a single OR token).
func (p *Parser) parseLambdaPipe() ast.Expression {
	tok := p.curToken
	le := &ast.LambdaExpression{Token: tok}
	p.advance()
	for !p.curTokenIs(token.PIPE) {
		param := ast.Param{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.advance()
			param.TypeAnnotation = p.parseType()
		}
		le.Parameters = append(le.Parameters, param)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
		} else {
			p.nextToken()
		}
	}
	p.advance()
	le.Body = p.parseExpression(LOWEST)
	return le
}

// parseEmptyParamLambda handles `|| body`, lexed as a single OR token
// (spec.md §4.2 "Function parameters": "`||` is the empty-parameter pipe
// form").
func (p *Parser) parseEmptyParamLambda() ast.Expression {
	tok := p.curToken
	p.advance()
	body := p.parseExpression(LOWEST)
	return &ast.LambdaExpression{Token: tok, Body: body}
}

// parseLambdaBackslash parses `\x, y -> body`.
func (p *Parser) parseLambdaBackslash() ast.Expression {
	tok := p.curToken
	le := &ast.LambdaExpression{Token: tok}
	p.nextToken()
	for !p.curTokenIs(token.ARROW) {
		le.Parameters = append(le.Parameters, ast.Param{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
		} else {
			p.nextToken()
		}
	}
	p.advance()
	le.Body = p.parseExpression(LOWEST)
	return le
}

// parseAttributedExpression parses one or more `#[name(args)]` attributes
// preceding an expression (spec.md §4.2 "Attributes"). If the following
// expression kind doesn't carry an Attributes field, the attributes are
// simply dropped, per spec.
func (p *Parser) parseAttributedExpression() ast.Expression {
	var attrs []ast.Attribute
	for p.curTokenIs(token.HASH_LBRACKET) {
		attrs = append(attrs, p.parseOneAttribute())
		p.advance()
	}
	expr := p.parseExpressionAtCur()
	attachAttributes(expr, attrs)
	return expr
}

func (p *Parser) parseOneAttribute() ast.Attribute {
	tok := p.curToken
	p.nextToken()
	name := p.curToken.Lexeme
	attr := ast.Attribute{Token: tok, Name: name}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		p.advance()
		for !p.curTokenIs(token.RPAREN) {
			if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
				key := p.curToken.Lexeme
				p.nextToken()
				p.advance()
				attr.Args = append(attr.Args, ast.AttributeArg{Key: key, Value: p.parseExpression(LOWEST)})
			} else {
				attr.Args = append(attr.Args, ast.AttributeArg{Value: p.parseExpression(LOWEST)})
			}
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.advance()
			} else {
				break
			}
		}
		p.expectPeek(token.RPAREN)
	}
	p.expectPeek(token.RBRACKET)
	return attr
}

// parseExpressionAtCur parses whatever expression/declaration begins at
// curToken, used after consuming a leading attribute list.
func (p *Parser) parseExpressionAtCur() ast.Expression {
	switch p.curToken.Type {
	case token.FUN:
		return p.parseFunctionExpression()
	case token.STRUCT:
		return p.parseStructDeclExpr()
	case token.ENUM:
		return p.parseEnumDeclExpr()
	case token.CLASS:
		return p.parseClassDeclExpr()
	case token.TRAIT:
		return p.parseTraitDeclExpr()
	case token.ACTOR:
		return p.parseActorDeclExpr()
	default:
		return p.parseExpression(LOWEST)
	}
}

// attachAttributes attaches attrs to expr when its concrete type declares
// an Attributes field, dropping them silently otherwise (spec.md §4.2).
func attachAttributes(expr ast.Expression, attrs []ast.Attribute) {
	switch e := expr.(type) {
	case *ast.FunctionExpression:
		e.Attributes = attrs
	case *ast.StructDeclaration:
		e.Attributes = attrs
	case *ast.EnumDeclaration:
		e.Attributes = attrs
	case *ast.TraitDeclaration:
		e.Attributes = attrs
	case *ast.ImplDeclaration:
		e.Attributes = attrs
	case *ast.ClassDeclaration:
		e.Attributes = attrs
	case *ast.ActorDeclaration:
		e.Attributes = attrs
	case *ast.ModuleDeclaration:
		e.Attributes = attrs
	}
}
