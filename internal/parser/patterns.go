package parser

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
)

// parsePattern parses a destructuring pattern (spec.md §3.3 "Pattern").
// Called with curToken on the pattern's first token.
func (p *Parser) parsePattern() ast.Pattern {
	pat := p.parsePrimaryPattern()
	if p.peekTokenIs(token.PIPE) {
		alts := []ast.Pattern{pat}
		for p.peekTokenIs(token.PIPE) {
			p.nextToken()
			p.advance()
			alts = append(alts, p.parsePrimaryPattern())
		}
		return &ast.OrPattern{Token: pat.GetToken(), Alternatives: alts}
	}
	if p.peekTokenIs(token.DOT_DOT) || p.peekTokenIs(token.DOT_DOT_EQ) {
		inclusive := p.peekToken.Type == token.DOT_DOT_EQ
		startExpr := patternToExpr(pat)
		p.nextToken()
		p.advance()
		end := p.parseExpression(RANGE)
		return &ast.RangePattern{Token: pat.GetToken(), Start: startExpr, End: end, Inclusive: inclusive}
	}
	return pat
}

func patternToExpr(pat ast.Pattern) ast.Expression {
	switch v := pat.(type) {
	case *ast.LiteralPattern:
		return v.Value
	default:
		return nil
	}
}

func (p *Parser) parsePrimaryPattern() ast.Pattern {
	tok := p.curToken
	switch tok.Type {
	case token.IDENT:
		if tok.Lexeme == "_" {
			return &ast.WildcardPattern{Token: tok}
		}
		if p.peekTokenIs(token.LPAREN) {
			return p.parseConstructorPattern()
		}
		if p.peekTokenIs(token.LBRACE) {
			return p.parseStructPattern()
		}
		return &ast.IdentifierPattern{Token: tok, Name: tok.Lexeme}
	case token.INT, token.FLOAT, token.STRING, token.ATOM, token.CHAR, token.TRUE, token.FALSE, token.NULL, token.MINUS:
		return &ast.LiteralPattern{Token: tok, Value: p.parseExpression(PREFIX)}
	case token.LPAREN:
		return p.parseTuplePattern()
	case token.LBRACKET:
		return p.parseListPattern()
	default:
		p.errorf(diagnostics.ErrP003, tok, "invalid pattern")
		return &ast.WildcardPattern{Token: tok}
	}
}

// expectCloser advances onto closer unless curToken already sits on it
// (the empty-list case, where the preceding advance() already landed
// there).
func (p *Parser) expectCloser(closer token.Type) {
	if p.curTokenIs(closer) {
		return
	}
	p.expectPeek(closer)
}

func (p *Parser) parseConstructorPattern() ast.Pattern {
	tok := p.curToken
	name := tok.Lexeme
	p.nextToken() // '('
	p.advance()
	var args []ast.Pattern
	for !p.curTokenIs(token.RPAREN) {
		args = append(args, p.parsePattern())
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		break
	}
	p.expectCloser(token.RPAREN)
	return &ast.ConstructorPattern{Token: tok, Name: name, Arguments: args}
}

func (p *Parser) parseStructPattern() ast.Pattern {
	tok := p.curToken
	name := tok.Lexeme
	p.nextToken() // '{'
	p.advance()
	sp := &ast.StructPattern{Token: tok, Name: name}
	for !p.curTokenIs(token.RBRACE) {
		fieldName := p.curToken.Lexeme
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.advance()
			sp.Fields = append(sp.Fields, ast.StructPatternField{Name: fieldName, Pattern: p.parsePattern()})
		} else {
			sp.Fields = append(sp.Fields, ast.StructPatternField{
				Name:    fieldName,
				Pattern: &ast.IdentifierPattern{Token: p.curToken, Name: fieldName},
			})
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		break
	}
	p.expectCloser(token.RBRACE)
	return sp
}

func (p *Parser) parseTuplePattern() ast.Pattern {
	tok := p.curToken
	p.advance()
	var elems []ast.Pattern
	for !p.curTokenIs(token.RPAREN) {
		elems = append(elems, p.parsePattern())
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		break
	}
	p.expectCloser(token.RPAREN)
	return &ast.TuplePattern{Token: tok, Elements: elems}
}

func (p *Parser) parseListPattern() ast.Pattern {
	tok := p.curToken
	p.advance()
	lp := &ast.ListPattern{Token: tok}
	for !p.curTokenIs(token.RBRACKET) {
		if p.curTokenIs(token.ELLIPSIS) {
			p.nextToken()
			lp.Rest = &ast.IdentifierPattern{Token: p.curToken, Name: p.curToken.Lexeme}
			p.nextToken()
			break
		}
		lp.Elements = append(lp.Elements, p.parsePattern())
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		break
	}
	p.expectCloser(token.RBRACKET)
	return lp
}
