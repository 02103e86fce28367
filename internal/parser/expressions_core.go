package parser

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
)

// parseExpression is the Pratt-style precedence-climbing core. Every
// expression kind in spec.md §3.3 funnels through here.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.errorf(diagnostics.ErrP001, p.curToken, "expression nesting too deep")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(diagnostics.ErrP001, p.curToken, "no prefix parse function for %s", p.curToken.Type)
		return nil
	}
	left := prefix()

	for {
		p.skipPeekTrivia()
		if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.EOF) {
			break
		}
		if precedence >= p.peekPrecedence() {
			break
		}
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			break
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.BANG) && p.peekNonTrivia(1).Type == token.LPAREN {
		return p.parseMacroInvocation(tok)
	}
	return &ast.Identifier{Token: tok, Value: tok.Lexeme}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.Type == token.TRUE}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	op := tok.Lexeme
	p.advance()
	right := p.parseExpression(PREFIX)
	return &ast.PrefixExpression{Token: tok, Operator: op, Right: right}
}

func (p *Parser) parsePrefixIncDec() ast.Expression {
	tok := p.curToken
	p.advance()
	target := p.parseExpression(PREFIX)
	return &ast.IncDecExpression{Token: tok, Operator: tok.Lexeme, Target: target, Prefix: true}
}

func (p *Parser) parsePostfixIncDec(left ast.Expression) ast.Expression {
	return &ast.IncDecExpression{Token: p.curToken, Operator: p.curToken.Lexeme, Target: left, Prefix: false}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Lexeme
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	return &ast.InfixExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseNullCoalesce(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.advance()
	right := p.parseExpression(NULLCOALESCE)
	return &ast.NullCoalesceExpression{Token: tok, Left: left, Right: right}
}

func (p *Parser) parseTernaryExpression(cond ast.Expression) ast.Expression {
	tok := p.curToken
	p.advance()
	thenExpr := p.parseExpression(TERNARY)
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.advance()
	elseExpr := p.parseExpression(TERNARY)
	return &ast.TernaryExpression{Token: tok, Condition: cond, Then: thenExpr, Else: elseExpr}
}

func (p *Parser) parseRangeExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	inclusive := tok.Type == token.DOT_DOT_EQ
	p.advance()
	// A range's end is optional in some dialects; here we require it when
	// the next token can start an expression.
	var end ast.Expression
	if p.prefixParseFns[p.curToken.Type] != nil {
		end = p.parseExpression(RANGE)
	}
	return &ast.RangeExpression{Token: tok, Start: left, End: end, Inclusive: inclusive}
}

func (p *Parser) parseCastExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.advance()
	ty := p.parseType()
	return &ast.CastExpression{Token: tok, Value: left, TargetTy: ty}
}

func (p *Parser) parsePipelineExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	pe := &ast.PipelineExpression{Token: tok, Source: left}
	for {
		p.advance()
		stage := p.parseExpression(PIPELINE + 1)
		pe.Stages = append(pe.Stages, stage)
		if !p.peekTokenIs(token.PIPE_GT) {
			break
		}
		p.nextToken()
	}
	return pe
}

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.advance()
	value := p.parseExpression(ASSIGN - 1) // right-associative
	return &ast.AssignExpression{Token: tok, Left: left, Value: value}
}

func (p *Parser) parseCompoundAssignExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := compoundOp(tok.Type)
	p.advance()
	value := p.parseExpression(ASSIGN - 1)
	return &ast.CompoundAssignExpression{Token: tok, Left: left, Operator: op, Value: value}
}

func compoundOp(t token.Type) string {
	switch t {
	case token.PLUS_ASSIGN:
		return "+"
	case token.MINUS_ASSIGN:
		return "-"
	case token.STAR_ASSIGN:
		return "*"
	case token.SLASH_ASSIGN:
		return "/"
	case token.PERCENT_ASSIGN:
		return "%"
	case token.POWER_ASSIGN:
		return "**"
	}
	return ""
}

// parseBlock parses a `{ ... }` block. Leading/trailing comments at the
// boundary are skipped per spec.md §4.2. `let` statements are folded into
// nested LetExpressions whose Body is the remaining suffix, so the block's
// Expressions slice contains only the top chain entry points: ordinary
// ExpressionStatements and the head of any let-chain.
func (p *Parser) parseBlock() *ast.BlockExpression {
	tok := p.curToken // '{'
	block := &ast.BlockExpression{Token: tok}
	p.advance()
	block.Expressions = p.parseBlockBody()
	if p.curTokenIs(token.EOF) {
		p.errorf(diagnostics.ErrP002, tok, "unterminated block starting here")
	}
	return block
}

// parseBlockBody parses expressions up to the closing '}', handling the
// let-folding transformation: `let x = v; rest...` becomes one
// LetExpression whose Body is parseBlockBody() of the remaining tokens.
func (p *Parser) parseBlockBody() []ast.Expression {
	p.skipTrivia()
	if p.curTokenIs(token.RBRACE) || p.curTokenIs(token.EOF) {
		return nil
	}

	if p.curTokenIs(token.LET) {
		letExpr := p.parseLetStatementForm()
		return []ast.Expression{letExpr}
	}

	expr := p.parseExpression(LOWEST)
	p.consumeTrailingSemicolons()
	rest := p.parseBlockBody()
	if expr == nil {
		return rest
	}
	return append([]ast.Expression{expr}, rest...)
}

func (p *Parser) consumeTrailingSemicolons() {
	for p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.NEWLINE) || p.peekToken.IsComment() {
		p.nextToken()
	}
	p.nextToken()
}
