package parser

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
)

func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.curToken
	ie := &ast.IfExpression{Token: tok}
	p.nextToken()
	if p.curTokenIs(token.LET) {
		p.nextToken()
		ie.IfLetTarget = p.parsePattern()
		if !p.expectPeek(token.ASSIGN) {
			return nil
		}
		p.advance()
		ie.Condition = p.parseExpression(LOWEST)
	} else {
		ie.Condition = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	ie.Consequence = p.parseBlock()
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		if p.curTokenIs(token.IF) {
			ie.Alternative = p.parseIfExpression()
		} else if p.curTokenIs(token.LBRACE) {
			ie.Alternative = p.parseBlock()
		}
	}
	return ie
}

func (p *Parser) parseWhileExpression() ast.Expression {
	tok := p.curToken
	we := &ast.WhileExpression{Token: tok}
	p.nextToken()
	if p.curTokenIs(token.LET) {
		p.nextToken()
		we.WhileLetTarget = p.parsePattern()
		if !p.expectPeek(token.ASSIGN) {
			return nil
		}
		p.advance()
		we.Condition = p.parseExpression(LOWEST)
	} else {
		we.Condition = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	we.Body = p.parseBlock()
	return we
}

func (p *Parser) parseLoopExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	return &ast.LoopExpression{Token: tok, Body: p.parseBlock()}
}

func (p *Parser) parseForExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	pat := p.parsePattern()
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.advance()
	iterable := p.parseExpression(TERNARY)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return &ast.ForExpression{Token: tok, Pattern: pat, Iterable: iterable, Body: body}
}

func (p *Parser) parseBreakExpression() ast.Expression {
	tok := p.curToken
	be := &ast.BreakExpression{Token: tok}
	if p.peekTokenIs(token.ATOM) {
		p.nextToken()
		be.Label = p.curToken.Literal
	}
	if p.peekStartsExpression() {
		p.advance()
		be.Value = p.parseExpression(LOWEST)
	}
	return be
}

func (p *Parser) parseContinueExpression() ast.Expression {
	tok := p.curToken
	ce := &ast.ContinueExpression{Token: tok}
	if p.peekTokenIs(token.ATOM) {
		p.nextToken()
		ce.Label = p.curToken.Literal
	}
	return ce
}

func (p *Parser) parseReturnExpression() ast.Expression {
	tok := p.curToken
	re := &ast.ReturnExpression{Token: tok}
	if p.peekStartsExpression() {
		p.advance()
		re.Value = p.parseExpression(LOWEST)
	}
	return re
}

// peekStartsExpression reports whether the peek token can begin an
// expression, used to decide whether break/return/continue carry a value.
func (p *Parser) peekStartsExpression() bool {
	switch p.peekToken.Type {
	case token.NEWLINE, token.SEMICOLON, token.RBRACE, token.RBRACKET, token.RPAREN,
		token.COMMA, token.EOF:
		return false
	}
	return true
}

func (p *Parser) parseMatchExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	scrutinee := p.parseExpression(LOWEST)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	me := &ast.MatchExpression{Token: tok, Scrutinee: scrutinee}
	p.advance()
	for !p.curTokenIs(token.RBRACE) {
		arm := ast.MatchArm{Pattern: p.parsePattern()}
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			p.advance()
			arm.Guard = p.parseExpression(LOWEST)
		}
		if !p.expectPeek(token.FAT_ARROW) {
			return nil
		}
		p.advance()
		arm.Body = p.parseExpression(LOWEST)
		me.Arms = append(me.Arms, arm)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
		p.advance()
	}
	return me
}

func (p *Parser) parseTryExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	if p.peekTokenIs(token.CATCH) {
		p.nextToken()
		tc := &ast.TryCatchExpression{Token: tok, Try: body}
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		p.nextToken()
		tc.CatchParam = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		tc.Catch = p.parseBlock()
		return tc
	}
	return &ast.TryExpression{Token: tok, Body: body}
}

func (p *Parser) parseThrowExpression() ast.Expression {
	tok := p.curToken
	p.advance()
	return &ast.ThrowExpression{Token: tok, Value: p.parseExpression(LOWEST)}
}

func (p *Parser) parseAsyncBlock() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	return &ast.AsyncBlockExpression{Token: tok, Body: p.parseBlock()}
}

func (p *Parser) parseAwaitExpression() ast.Expression {
	tok := p.curToken
	p.advance()
	return &ast.AwaitExpression{Token: tok, Value: p.parseExpression(PREFIX)}
}

func (p *Parser) parseSpawnExpression() ast.Expression {
	tok := p.curToken
	p.advance()
	return &ast.SpawnExpression{Token: tok, Value: p.parseExpression(PREFIX)}
}

func (p *Parser) parseReceiveExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.advance()
	re := &ast.ReceiveExpression{Token: tok}
	for !p.curTokenIs(token.RBRACE) {
		arm := ast.ReceiveArm{Pattern: p.parsePattern()}
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			p.advance()
			arm.Guard = p.parseExpression(LOWEST)
		}
		if !p.expectPeek(token.FAT_ARROW) {
			return nil
		}
		p.advance()
		arm.Body = p.parseExpression(LOWEST)
		re.Arms = append(re.Arms, arm)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
		p.advance()
	}
	return re
}

// parseLetExpression handles a bare `let x = v in body` form reached
// through the Pratt prefix table (e.g. inside a parenthesized sub
// expression). Block-level `let` is instead folded by parseBlockBody via
// parseLetStatementForm.
func (p *Parser) parseLetExpression() ast.Expression {
	return p.parseLetCommon(false)
}

// parseLetStatementForm parses a block-scoped `let` and recursively folds
// the remaining block body into its Body (spec.md §4.2 "Let statements
// inside blocks").
func (p *Parser) parseLetStatementForm() ast.Expression {
	return p.parseLetCommon(true)
}

func (p *Parser) parseLetCommon(foldRemainingBlock bool) ast.Expression {
	tok := p.curToken // 'let'
	le := &ast.LetExpression{Token: tok}
	p.nextToken()
	if p.curTokenIs(token.MUT) {
		le.Mutable = true
		p.nextToken()
	}
	if p.curTokenIs(token.LBRACKET) || p.curTokenIs(token.LPAREN) {
		le.Pattern = p.parsePattern()
	} else {
		le.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	}
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.advance()
		le.TypeAnnotation = p.parseType()
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.advance()
	le.Value = p.parseExpression(LOWEST)

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		le.ElseBody = p.parseBlock()
	}

	if p.peekTokenIs(token.IN) {
		p.nextToken()
		p.advance()
		le.Body = p.parseExpression(LOWEST)
		return le
	}

	if foldRemainingBlock {
		p.consumeTrailingSemicolons()
		rest := p.parseBlockBody()
		if p.curTokenIs(token.EOF) {
			p.errorf(diagnostics.ErrP002, tok, "unterminated block starting here")
		}
		le.Body = exprsToBlockBody(tok, rest)
	}
	return le
}

// exprsToBlockBody wraps the remaining block expressions as the implicit
// body of a folded let-chain; a single trailing expression is returned
// unwrapped so `t.0`-style access on the last value still type-checks the
// same as an explicit block would.
func exprsToBlockBody(tok token.Token, exprs []ast.Expression) ast.Expression {
	if len(exprs) == 0 {
		return &ast.NilLiteral{Token: tok}
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return &ast.BlockExpression{Token: tok, Expressions: exprs}
}
