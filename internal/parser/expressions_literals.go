package parser

import (
	"strconv"
	"strings"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/token"
)

// subLex tokenizes an embedded interpolation expression in isolation. Lex
// errors on the fragment are discarded here; a malformed embedded
// expression will simply fail to parse and is reported by parseExpression.
func subLex(src string) []token.Token {
	toks, _ := lexer.Tokenize(src)
	return toks
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.curToken
	parts := strings.SplitN(tok.Literal, "|", 2)
	v, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		p.errorf(diagnostics.ErrL004, tok, "malformed integer literal")
	}
	suffix := ""
	if len(parts) > 1 {
		suffix = parts[1]
	}
	return &ast.IntegerLiteral{Token: tok, Value: v, Suffix: suffix}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.curToken
	parts := strings.SplitN(tok.Literal, "|", 2)
	v, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		p.errorf(diagnostics.ErrL004, tok, "malformed float literal")
	}
	suffix := ""
	if len(parts) > 1 {
		suffix = parts[1]
	}
	return &ast.FloatLiteral{Token: tok, Value: v, Suffix: suffix}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseRawStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal, Raw: true}
}

func (p *Parser) parseCharLiteral() ast.Expression {
	r := []rune(p.curToken.Literal)
	var v rune
	if len(r) > 0 {
		v = r[0]
	}
	return &ast.CharLiteral{Token: p.curToken, Value: v}
}

func (p *Parser) parseAtomLiteral() ast.Expression {
	return &ast.AtomLiteral{Token: p.curToken, Name: p.curToken.Literal}
}

// parseInterpStringLiteral splits an f"..." token's raw content into
// literal-text and `{expr}` parts, re-lexing and re-parsing each embedded
// expression (spec.md §4.1 "string literals").
func (p *Parser) parseInterpStringLiteral() ast.Expression {
	tok := p.curToken
	content := tok.Literal
	lit := &ast.InterpolatedStringLiteral{Token: tok}

	var text strings.Builder
	i := 0
	for i < len(content) {
		ch := content[i]
		if ch == '\\' && i+1 < len(content) {
			text.WriteByte(unescape(content[i+1]))
			i += 2
			continue
		}
		if ch == '{' {
			if text.Len() > 0 {
				lit.Parts = append(lit.Parts, ast.InterpolatedStringPart{Text: text.String()})
				text.Reset()
			}
			depth := 1
			j := i + 1
			for j < len(content) && depth > 0 {
				if content[j] == '{' {
					depth++
				} else if content[j] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			exprSrc := content[i+1 : j]
			expr := p.parseSubExpression(exprSrc, tok)
			lit.Parts = append(lit.Parts, ast.InterpolatedStringPart{Expr: expr})
			i = j + 1
			continue
		}
		text.WriteByte(ch)
		i++
	}
	if text.Len() > 0 {
		lit.Parts = append(lit.Parts, ast.InterpolatedStringPart{Text: text.String()})
	}
	return lit
}

func unescape(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return b
	}
}

// parseSubExpression re-lexes and parses an embedded interpolation
// expression in isolation, reusing its own Parser instance over the same
// pipeline context so diagnostics aggregate correctly.
func (p *Parser) parseSubExpression(src string, anchor token.Token) ast.Expression {
	toks := subLex(src)
	sub := &Parser{ctx: p.ctx, tokens: toks}
	sub.prefixParseFns = p.prefixParseFns
	sub.infixParseFns = p.infixParseFns
	sub.nextToken()
	sub.nextToken()
	return sub.parseExpression(LOWEST)
}

// parseGroupedOrTuple disambiguates `(expr)` from `(e1, e2, ...)`.
func (p *Parser) parseGroupedOrTuple() ast.Expression {
	tok := p.curToken
	p.advance()
	if p.curTokenIs(token.RPAREN) {
		return &ast.TupleLiteral{Token: tok}
	}
	first := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.COMMA) {
		elems := []ast.Expression{first}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			if p.curTokenIs(token.RPAREN) {
				break
			}
			elems = append(elems, p.parseExpression(LOWEST))
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return &ast.TupleLiteral{Token: tok, Elements: elems}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return first
}

// parseBracketExpression disambiguates list literal vs list comprehension
// (spec.md §4.2 "Comprehensions": "A list literal becomes a list
// comprehension when the first element is followed by `for`.").
func (p *Parser) parseBracketExpression() ast.Expression {
	tok := p.curToken
	p.advance()
	if p.curTokenIs(token.RBRACKET) {
		return &ast.ListLiteral{Token: tok}
	}
	first := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.FOR) {
		clauses := p.parseComprehensionClauses()
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.ListComprehension{Token: tok, Result: first, Clauses: clauses}
	}
	elems := []ast.Expression{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.advance()
		if p.curTokenIs(token.RBRACKET) {
			break
		}
		elems = append(elems, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ListLiteral{Token: tok, Elements: elems}
}

// parseComprehensionClauses parses one or more `for <var> in <iterable>
// [if guard]` clauses in left-to-right order (spec.md §4.2).
func (p *Parser) parseComprehensionClauses() []ast.ComprehensionClause {
	var clauses []ast.ComprehensionClause
	for p.peekTokenIs(token.FOR) {
		p.nextToken() // on 'for'
		variable := p.parseComprehensionVariable()
		if !p.expectPeek(token.IN) {
			return clauses
		}
		p.advance()
		iterable := p.parseComprehensionIterable()
		clause := ast.ComprehensionClause{Variable: variable, Iterable: iterable}
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			p.advance()
			clause.Guard = p.parseComprehensionIterable()
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

// parseComprehensionVariable accepts the forms listed in spec.md §4.2
// "Comprehension variables" and returns their canonical string rendering.
func (p *Parser) parseComprehensionVariable() string {
	p.nextToken()
	switch p.curToken.Type {
	case token.LPAREN:
		var names []string
		p.nextToken()
		for !p.curTokenIs(token.RPAREN) {
			if p.curTokenIs(token.IDENT) {
				names = append(names, p.curToken.Lexeme)
			}
			p.nextToken()
			if p.curTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		return "(" + strings.Join(names, ", ") + ")"
	case token.IDENT:
		name := p.curToken.Lexeme
		switch name {
		case "Some", "Ok", "Err":
			if p.peekTokenIs(token.LPAREN) {
				p.nextToken()
				p.nextToken()
				inner := p.curToken.Lexeme
				p.nextToken() // ')'
				return name + "(" + inner + ")"
			}
		}
		return name
	case token.NULL:
		return "None"
	default:
		return p.curToken.Lexeme
	}
}

// parseComprehensionIterable parses an expression, stopping at `for`, `if`,
// or a closing bracket at the current nesting level (spec.md §4.2
// "Comprehension iterables").
func (p *Parser) parseComprehensionIterable() ast.Expression {
	return p.parseExpression(TERNARY)
}

// parseBraceExpression disambiguates block / object literal / set literal
// / set comprehension / dict comprehension (spec.md §4.2 "Block vs object
// literal", "Comprehensions").
func (p *Parser) parseBraceExpression() ast.Expression {
	tok := p.curToken

	if p.looksLikeObjectLiteral() {
		mark := p.mark()
		if obj := p.tryParseObjectLiteral(tok); obj != nil {
			return obj
		}
		p.restore(mark)
	}

	if p.peekTokenIs(token.RBRACE) {
		p.advance()
		return &ast.BlockExpression{Token: tok}
	}

	// Try set literal / comprehension: {expr, ...} or {expr for ...} or
	// {key: value for ...}.
	mark := p.mark()
	p.advance()
	first := p.parseExpression(LOWEST)
	if first != nil {
		if p.peekTokenIs(token.COLON) {
			p.nextToken() // ':'
			p.advance()
			value := p.parseExpression(LOWEST)
			if p.peekTokenIs(token.FOR) {
				clauses := p.parseComprehensionClauses()
				if p.expectPeek(token.RBRACE) {
					return &ast.DictComprehension{Token: tok, Key: first, Value: value, Clauses: clauses}
				}
			}
		} else if p.peekTokenIs(token.FOR) {
			clauses := p.parseComprehensionClauses()
			if p.expectPeek(token.RBRACE) {
				return &ast.SetComprehension{Token: tok, Result: first, Clauses: clauses}
			}
		} else if p.peekTokenIs(token.COMMA) || p.peekTokenIs(token.RBRACE) {
			elems := []ast.Expression{first}
			for p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.advance()
				if p.curTokenIs(token.RBRACE) {
					break
				}
				elems = append(elems, p.parseExpression(LOWEST))
			}
			if p.expectPeek(token.RBRACE) {
				return &ast.SetLiteral{Token: tok, Elements: elems}
			}
		}
	}
	p.restore(mark)

	// Fall back: parse as a block.
	return p.parseBlock()
}

// looksLikeObjectLiteral implements the lookahead rule from spec.md §4.2
// "Block vs object literal": empty braces, a leading spread, or a
// key-then-`:`/`=>` shape. A dict comprehension (`{k: v for ...}`) also
// matches here; tryParseObjectLiteral then fails at its `for` and the
// caller backtracks.
func (p *Parser) looksLikeObjectLiteral() bool {
	if p.peekTokenIs(token.RBRACE) {
		return true
	}
	if p.peekTokenIs(token.ELLIPSIS) {
		return true
	}
	first := p.peekToken
	isKeyish := first.Type == token.IDENT || first.Type == token.STRING ||
		first.Type == token.ATOM || token.IsKeyword(first.Type)
	if !isKeyish {
		return false
	}
	next := p.peekNonTrivia(1)
	return next.Type == token.COLON || next.Type == token.FAT_ARROW
}

// tryParseObjectLiteral attempts the object-literal interpretation at a
// backtracking checkpoint; returns nil (caller restores) on mismatch.
func (p *Parser) tryParseObjectLiteral(tok token.Token) ast.Expression {
	obj := &ast.ObjectLiteral{Token: tok}
	p.advance()
	if p.curTokenIs(token.RBRACE) {
		return obj // `{}` is an empty object literal
	}
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.ELLIPSIS) {
			p.advance()
			obj.Fields = append(obj.Fields, ast.ObjectField{Spread: p.parseExpression(LOWEST)})
		} else {
			key := p.parseObjectKey()
			if key == nil {
				return nil
			}
			if !p.peekTokenIs(token.COLON) && !p.peekTokenIs(token.FAT_ARROW) {
				return nil
			}
			p.nextToken()
			p.advance()
			value := p.parseExpression(LOWEST)
			obj.Fields = append(obj.Fields, ast.ObjectField{Key: key, Value: value})
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		break
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return obj
}

// parseObjectKey accepts identifiers, strings, atoms, and any reserved
// keyword spelled as a key (spec.md §4.2 "Keywords as keys").
func (p *Parser) parseObjectKey() ast.Expression {
	tok := p.curToken
	switch {
	case tok.Type == token.IDENT:
		return &ast.Identifier{Token: tok, Value: tok.Lexeme}
	case tok.Type == token.STRING:
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case tok.Type == token.ATOM:
		return &ast.AtomLiteral{Token: tok, Name: tok.Literal}
	case token.IsKeyword(tok.Type):
		return &ast.Identifier{Token: tok, Value: tok.Lexeme}
	}
	return nil
}

func (p *Parser) parseSpreadExpression() ast.Expression {
	tok := p.curToken
	p.advance()
	return &ast.SpreadExpression{Token: tok, Expression: p.parseExpression(PREFIX)}
}
