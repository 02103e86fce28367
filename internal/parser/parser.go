// Package parser builds the typed AST from a token stream via
// recursive-descent with Pratt-style precedence climbing for infix
// expressions (spec.md §4.2).
package parser

import (
	"fmt"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/pipeline"
	"github.com/funvibe/funxy/internal/token"
)

// Precedence levels, lowest to highest. Pipeline is kept lowest among
// binary operators per spec.md §9 ("implementers should treat pipeline as
// lowest-precedence among expression operators").
const (
	LOWEST int = iota
	PIPELINE
	ASSIGN
	TERNARY
	NULLCOALESCE
	OR
	AND
	EQUALS
	LESSGREATER
	BITOR
	BITXOR
	BITAND
	SHIFT
	RANGE
	SUM
	PRODUCT
	POWER
	CAST
	PREFIX
	CALL
	INDEX
)

var precedences = map[token.Type]int{
	token.PIPE_GT:        PIPELINE,
	token.ASSIGN:         ASSIGN,
	token.PLUS_ASSIGN:    ASSIGN,
	token.MINUS_ASSIGN:   ASSIGN,
	token.STAR_ASSIGN:    ASSIGN,
	token.SLASH_ASSIGN:   ASSIGN,
	token.PERCENT_ASSIGN: ASSIGN,
	token.POWER_ASSIGN:   ASSIGN,
	token.QUESTION:       TERNARY,
	token.NULL_COALESCE:  NULLCOALESCE,
	token.OR:             OR,
	token.AND:            AND,
	token.EQ:             EQUALS,
	token.NOT_EQ:         EQUALS,
	token.LT:             LESSGREATER,
	token.GT:             LESSGREATER,
	token.LTE:            LESSGREATER,
	token.GTE:            LESSGREATER,
	token.PIPE:           BITOR,
	token.CARET:          BITXOR,
	token.AMPERSAND:      BITAND,
	token.LSHIFT:         SHIFT,
	token.RSHIFT:         SHIFT,
	token.DOT_DOT:        RANGE,
	token.DOT_DOT_EQ:     RANGE,
	token.PLUS:           SUM,
	token.MINUS:          SUM,
	token.ASTERISK:       PRODUCT,
	token.SLASH:          PRODUCT,
	token.PERCENT:        PRODUCT,
	token.POWER:          POWER,
	token.AS:             CAST,
	token.INC:            INDEX,
	token.DEC:            INDEX,
	token.LPAREN:         CALL,
	token.DOT:            CALL,
	token.QUESTION_DOT:   CALL,
	token.LBRACKET:       INDEX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes a flat token slice (as produced by internal/lexer) and
// builds the AST. Comment tokens remain in the stream; skipTrivia and
// skipPeekTrivia step over them, along with newlines, at statement/block
// boundaries per spec.md §4.2 "Comment transparency".
type Parser struct {
	ctx    *pipeline.PipelineContext
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	depth int

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New constructs a Parser over a complete token stream (including the
// trailing EOF token produced by lexer.Tokenize).
func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{ctx: ctx, tokens: tokens}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.infixParseFns = make(map[token.Type]infixParseFn)
	p.registerPrefix()
	p.registerInfix()

	// Prime curToken/peekToken; ParseProgram skips any leading
	// comments/newlines.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix() {
	r := p.prefixParseFns
	r[token.IDENT] = p.parseIdentifier
	r[token.INT] = p.parseIntegerLiteral
	r[token.FLOAT] = p.parseFloatLiteral
	r[token.STRING] = p.parseStringLiteral
	r[token.RAW_STRING] = p.parseRawStringLiteral
	r[token.INTERP_STRING] = p.parseInterpStringLiteral
	r[token.ATOM] = p.parseAtomLiteral
	r[token.CHAR] = p.parseCharLiteral
	r[token.TRUE] = p.parseBooleanLiteral
	r[token.FALSE] = p.parseBooleanLiteral
	r[token.NULL] = p.parseNilLiteral
	r[token.BANG] = p.parsePrefixExpression
	r[token.MINUS] = p.parsePrefixExpression
	r[token.TILDE] = p.parsePrefixExpression
	r[token.INC] = p.parsePrefixIncDec
	r[token.DEC] = p.parsePrefixIncDec
	r[token.LPAREN] = p.parseGroupedOrTuple
	r[token.LBRACKET] = p.parseBracketExpression
	r[token.LBRACE] = p.parseBraceExpression
	r[token.IF] = p.parseIfExpression
	r[token.MATCH] = p.parseMatchExpression
	r[token.WHILE] = p.parseWhileExpression
	r[token.LOOP] = p.parseLoopExpression
	r[token.FOR] = p.parseForExpression
	r[token.BREAK] = p.parseBreakExpression
	r[token.CONTINUE] = p.parseContinueExpression
	r[token.RETURN] = p.parseReturnExpression
	r[token.FUN] = p.parseFunctionExpression
	r[token.PIPE] = p.parseLambdaPipe
	r[token.OR] = p.parseEmptyParamLambda
	r[token.BACKSLASH] = p.parseLambdaBackslash
	r[token.TRY] = p.parseTryExpression
	r[token.THROW] = p.parseThrowExpression
	r[token.ASYNC] = p.parseAsyncBlock
	r[token.AWAIT] = p.parseAwaitExpression
	r[token.SPAWN] = p.parseSpawnExpression
	r[token.RECEIVE] = p.parseReceiveExpression
	r[token.LET] = p.parseLetExpression
	r[token.DF] = p.parseDataFrameLiteral
	r[token.ELLIPSIS] = p.parseSpreadExpression
	r[token.HASH_LBRACKET] = p.parseAttributedExpression
	r[token.STRUCT] = p.parseStructDeclExpr
	r[token.ENUM] = p.parseEnumDeclExpr
	r[token.TRAIT] = p.parseTraitDeclExpr
	r[token.IMPL] = p.parseImplDeclExpr
	r[token.CLASS] = p.parseClassDeclExpr
	r[token.ACTOR] = p.parseActorDeclExpr
}

func (p *Parser) registerInfix() {
	r := p.infixParseFns
	for _, t := range []token.Type{token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
		token.PERCENT, token.POWER, token.EQ, token.NOT_EQ, token.LT, token.GT,
		token.LTE, token.GTE, token.AND, token.OR, token.AMPERSAND, token.PIPE,
		token.CARET, token.LSHIFT, token.RSHIFT} {
		r[t] = p.parseInfixExpression
	}
	r[token.NULL_COALESCE] = p.parseNullCoalesce
	r[token.DOT_DOT] = p.parseRangeExpression
	r[token.DOT_DOT_EQ] = p.parseRangeExpression
	r[token.ASSIGN] = p.parseAssignExpression
	for _, t := range []token.Type{token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.POWER_ASSIGN} {
		r[t] = p.parseCompoundAssignExpression
	}
	r[token.LPAREN] = p.parseCallExpression
	r[token.DOT] = p.parseFieldOrMethod
	r[token.QUESTION_DOT] = p.parseFieldOrMethod
	r[token.LBRACKET] = p.parseIndexExpression
	r[token.QUESTION] = p.parseTernaryExpression
	r[token.AS] = p.parseCastExpression
	r[token.PIPE_GT] = p.parsePipelineExpression
	r[token.INC] = p.parsePostfixIncDec
	r[token.DEC] = p.parsePostfixIncDec
}

// --- token stream -----------------------------------------------------

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

// advance moves forward, silently skipping comment and newline tokens.
// Called at statement/block boundaries per spec.md §4.2.
func (p *Parser) advance() {
	p.nextToken()
	p.skipTrivia()
}

// skipTrivia skips over comment and newline tokens at the current position.
func (p *Parser) skipTrivia() {
	for p.curToken.IsComment() || p.curToken.Type == token.NEWLINE {
		p.nextToken()
	}
}

// peekNonTrivia returns the n-th token (counting from 0) at or after
// peekToken that is not a comment or newline, without advancing; used
// before disambiguation lookahead.
func (p *Parser) peekNonTrivia(n int) token.Token {
	idx := p.pos - 1 // peekToken already consumed one slot
	skipped := 0
	for i := idx; i < len(p.tokens); i++ {
		t := p.tokens[i]
		if t.IsComment() || t.Type == token.NEWLINE {
			continue
		}
		if skipped == n {
			return t
		}
		skipped++
	}
	return token.Token{Type: token.EOF}
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}
func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) errorf(code diagnostics.Code, tok token.Token, format string, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, fmt.Sprintf(format, args...)))
}

func (p *Parser) expectPeek(t token.Type) bool {
	p.skipPeekTrivia()
	if p.peekTokenIs(t) {
		p.advance()
		return true
	}
	p.errorf(diagnostics.ErrP001, p.peekToken, "unexpected token %s", p.peekToken.Type)
	return false
}

// skipPeekTrivia consumes comment/newline tokens sitting between curToken
// and the next meaningful token, so expectPeek sees past them.
func (p *Parser) skipPeekTrivia() {
	for p.peekToken.IsComment() || p.peekToken.Type == token.NEWLINE {
		p.nextToken()
	}
}

// checkpoint/restore implement the bounded backtracking used to
// disambiguate block-vs-object-literal and set-vs-comprehension forms
// (spec.md §4.2 "Backtracking checkpoints").
type checkpoint struct {
	pos       int
	cur, peek token.Token
	errLen    int
}

func (p *Parser) mark() checkpoint {
	return checkpoint{pos: p.pos, cur: p.curToken, peek: p.peekToken, errLen: len(p.ctx.Errors)}
}

func (p *Parser) restore(c checkpoint) {
	p.pos = c.pos
	p.curToken = c.cur
	p.peekToken = c.peek
	if len(p.ctx.Errors) > c.errLen {
		p.ctx.Errors = p.ctx.Errors[:c.errLen]
	}
}

// --- entry point --------------------------------------------------------

// ParseProgram parses the whole token stream into a Program node: an
// optional package header, its imports, and the top-level statements
// (spec.md §4.2 "parse" operation).
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipTrivia()

	for !p.curTokenIs(token.EOF) {
		p.skipTrivia()
		if p.curTokenIs(token.EOF) {
			break
		}
		if decl := p.tryParsePackageOrImport(); decl != nil {
			switch d := decl.(type) {
			case *ast.PackageDeclaration:
				prog.Package = d
			case *ast.ImportStatement:
				prog.Imports = append(prog.Imports, d)
			}
			p.advanceStatementEnd()
			continue
		}

		stmt := p.parseTopLevelStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.advanceStatementEnd()
	}
	return prog
}

// advanceStatementEnd consumes a single trailing semicolon/newline
// separator, if present, and then skips trivia before the next statement.
func (p *Parser) advanceStatementEnd() {
	for p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.NEWLINE) ||
		p.peekToken.IsComment() {
		p.nextToken()
	}
	p.nextToken()
}

// parseTopLevelStatement parses one declaration or expression-statement at
// block/program scope.
func (p *Parser) parseTopLevelStatement() ast.Statement {
	switch p.curToken.Type {
	case token.STRUCT:
		return p.parseStructDeclaration()
	case token.ENUM:
		return p.parseEnumDeclaration()
	case token.TRAIT:
		return p.parseTraitDeclaration()
	case token.IMPL:
		return p.parseImplDeclaration()
	case token.CLASS:
		return p.parseClassDeclaration()
	case token.ACTOR:
		return p.parseActorDeclaration()
	case token.FUN:
		fn := p.parseFunctionExpression()
		if f, ok := fn.(*ast.FunctionExpression); ok {
			return f
		}
		return &ast.ExpressionStatement{Token: p.curToken, Expression: fn}
	case token.IDENT:
		if p.curToken.Lexeme == "module" && p.peekTokenIs(token.IDENT) {
			return p.parseModuleDeclaration()
		}
		if p.curToken.Lexeme == "directive" {
			return p.parseDirectiveStatement()
		}
	}
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		p.skipToRecoveryPoint()
		return nil
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) skipToRecoveryPoint() {
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.SEMICOLON) &&
		!p.curTokenIs(token.EOF) && !p.curTokenIs(token.RBRACE) {
		p.nextToken()
	}
}

const MaxRecursionDepth = config.MaxRecursionDepth
