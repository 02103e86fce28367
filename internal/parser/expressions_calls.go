package parser

import (
	"strings"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/token"
)

// parseCallArguments parses a parenthesized argument list, splitting
// positional from `name: value` named arguments (spec.md §4.2
// "Named arguments").
func (p *Parser) parseCallArguments() ([]ast.Expression, []ast.NamedArg) {
	var args []ast.Expression
	var named []ast.NamedArg
	p.advance()
	for !p.curTokenIs(token.RPAREN) {
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.COLON) {
			name := p.curToken.Lexeme
			p.nextToken()
			p.advance()
			named = append(named, ast.NamedArg{Name: name, Value: p.parseExpression(LOWEST)})
		} else {
			args = append(args, p.parseExpression(LOWEST))
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		break
	}
	p.expectCloser(token.RPAREN)
	return args, named
}

// parseCallExpression is the infix handler for `callee(args)`. Per
// spec.md §4.2 "Named arguments": an all-named call on a bare identifier
// callee parses as a struct literal instead of a call.
func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	tok := p.curToken
	args, named := p.parseCallArguments()
	if len(args) == 0 && len(named) > 0 {
		if ident, ok := fn.(*ast.Identifier); ok {
			fields := make([]ast.ObjectField, len(named))
			for i, n := range named {
				fields[i] = ast.ObjectField{
					Key:   &ast.Identifier{Value: n.Name},
					Value: n.Value,
				}
			}
			return &ast.StructLiteral{Token: tok, Name: ident, Fields: fields}
		}
	}
	return &ast.CallExpression{Token: tok, Function: fn, Arguments: args, NamedArgs: named}
}

// parseFieldOrMethod is the infix handler for `.` and `?.`: disambiguates
// field access, tuple-index access, and method calls (with optional
// turbofish), per spec.md §4.2 "Method-call turbofish".
func (p *Parser) parseFieldOrMethod(receiver ast.Expression) ast.Expression {
	tok := p.curToken
	optional := tok.Type == token.QUESTION_DOT
	p.nextToken()

	var name string
	switch p.curToken.Type {
	case token.IDENT:
		name = p.curToken.Lexeme
	case token.INT:
		name = p.curToken.Lexeme // tuple index, e.g. t.0
	default:
		if token.IsKeyword(p.curToken.Type) {
			name = p.curToken.Lexeme
		}
	}

	if p.peekTokenIs(token.COLON_COLON) {
		p.nextToken() // '::'
		if p.expectPeek(token.LT) {
			var types []ast.Type
			p.advance()
			for !p.curTokenIs(token.GT) {
				types = append(types, p.parseType())
				if p.peekTokenIs(token.COMMA) {
					p.nextToken()
					p.advance()
				} else {
					p.nextToken()
				}
			}
			if p.peekTokenIs(token.LPAREN) {
				p.nextToken()
				args, named := p.parseCallArguments()
				return &ast.MethodCallExpression{
					Token: tok, Receiver: receiver, Method: name,
					TurbofishTypes: types, Arguments: aggregateNamed(args, named),
					Optional: optional,
				}
			}
		}
	}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		args, named := p.parseCallArguments()
		return &ast.MethodCallExpression{
			Token: tok, Receiver: receiver, Method: name,
			Arguments: aggregateNamed(args, named), Optional: optional,
		}
	}

	return &ast.FieldAccessExpression{Token: tok, Receiver: receiver, Field: name, Optional: optional}
}

// aggregateNamed folds a method call's named arguments into a single
// trailing object-literal positional argument, per spec.md §4.2 "Named
// arguments": unlike a bare-identifier call, a method call never becomes
// a struct literal, so its named arguments collapse to one `{...}` object
// appended after the positional arguments instead.
func aggregateNamed(args []ast.Expression, named []ast.NamedArg) []ast.Expression {
	if len(named) == 0 {
		return args
	}
	fields := make([]ast.ObjectField, len(named))
	for i, n := range named {
		fields[i] = ast.ObjectField{Key: &ast.Identifier{Value: n.Name}, Value: n.Value}
	}
	return append(args, &ast.ObjectLiteral{Fields: fields})
}

func (p *Parser) parseIndexExpression(receiver ast.Expression) ast.Expression {
	tok := p.curToken
	p.advance()
	idx := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.IndexExpression{Token: tok, Receiver: receiver, Index: idx}
}

// parseMacroInvocation parses `name!(args)` forms (println!, vec!,
// format!, df!). Called when an identifier is immediately followed by '!'.
func (p *Parser) parseMacroInvocation(name token.Token) ast.Expression {
	tok := name
	p.nextToken() // '!'
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args, _ := p.parseCallArguments()
	return &ast.MacroInvocationExpression{Token: tok, Name: strings.TrimSuffix(tok.Lexeme, "!"), Arguments: args}
}
