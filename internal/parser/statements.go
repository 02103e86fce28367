package parser

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
)

// tryParsePackageOrImport recognizes the two file-header forms that may
// only appear before any other top-level statement: `package name (...)`
// and `import "path" [as alias]`. Neither "package" nor "import" is a
// reserved keyword, so both are recognized positionally by lexeme.
func (p *Parser) tryParsePackageOrImport() ast.Statement {
	if p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "import" {
		return p.parseImportStatement()
	}
	if p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "package" {
		return p.parsePackageDeclaration()
	}
	return nil
}

func (p *Parser) parsePackageDeclaration() ast.Statement {
	tok := p.curToken
	pd := &ast.PackageDeclaration{Token: tok}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	pd.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		p.advance()
		for !p.curTokenIs(token.RPAREN) {
			spec := p.parseExportSpec()
			pd.Exports = append(pd.Exports, spec)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.advance()
			} else {
				break
			}
		}
		p.expectPeek(token.RPAREN)
	}
	return pd
}

func (p *Parser) parseExportSpec() *ast.ExportSpec {
	tok := p.curToken
	name := p.curToken.Lexeme
	if p.peekTokenIs(token.DOT) {
		p.nextToken() // '.'
		modIdent := &ast.Identifier{Token: tok, Value: name}
		if !p.expectPeek(token.LPAREN) {
			return &ast.ExportSpec{Token: tok, ModuleName: modIdent}
		}
		p.nextToken()
		spec := &ast.ExportSpec{Token: tok, ModuleName: modIdent}
		if p.curTokenIs(token.ASTERISK) {
			spec.ReexportAll = true
			p.nextToken()
		} else {
			for !p.curTokenIs(token.RPAREN) {
				spec.Symbols = append(spec.Symbols, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
				if p.peekTokenIs(token.COMMA) {
					p.nextToken()
					p.nextToken()
				} else {
					p.nextToken()
				}
			}
		}
		return spec
	}
	return &ast.ExportSpec{Token: tok, Symbol: &ast.Identifier{Token: tok, Value: name}}
}

func (p *Parser) parseImportStatement() ast.Statement {
	tok := p.curToken
	is := &ast.ImportStatement{Token: tok}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	is.Path = &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		is.Alias = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	}
	return is
}

// parseDirectiveStatement parses `directive "name"`, a compiler pragma
// (spec.md §3.3 "DirectiveStatement").
func (p *Parser) parseDirectiveStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.STRING) {
		return nil
	}
	return &ast.DirectiveStatement{Token: tok, Name: p.curToken.Literal}
}

// parseModuleDeclaration parses `module Name { ... }`, a nested namespace
// block (spec.md §3.3 "ModuleDeclaration").
func (p *Parser) parseModuleDeclaration() ast.Statement {
	tok := p.curToken
	p.nextToken()
	md := &ast.ModuleDeclaration{Token: tok, Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.advance()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseTopLevelStatement()
		if stmt != nil {
			md.Statements = append(md.Statements, stmt)
		}
		p.advanceStatementEnd()
	}
	return md
}

func (p *Parser) parseFieldDeclList() []ast.FieldDecl {
	var fields []ast.FieldDecl
	p.advance()
	for !p.curTokenIs(token.RBRACE) {
		fd := ast.FieldDecl{}
		if p.curTokenIs(token.MUT) {
			fd.Mutable = true
			p.nextToken()
		}
		fd.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.advance()
			fd.TypeAnnotation = p.parseType()
		}
		fields = append(fields, fd)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		p.nextToken()
		p.skipTrivia()
	}
	return fields
}

// parseStructDeclaration parses `struct Name<T> { field: Type, ... }`.
func (p *Parser) parseStructDeclaration() *ast.StructDeclaration {
	tok := p.curToken
	sd := &ast.StructDeclaration{Token: tok}
	if !p.expectPeek(token.IDENT) {
		return sd
	}
	sd.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	sd.TypeParams = p.parseTypeParamList()
	if !p.expectPeek(token.LBRACE) {
		return sd
	}
	sd.Fields = p.parseFieldDeclList()
	return sd
}

func (p *Parser) parseStructDeclExpr() ast.Expression { return p.parseStructDeclaration() }

// parseEnumDeclaration parses `enum Name<T> { Variant, Variant2(Type), ... }`.
func (p *Parser) parseEnumDeclaration() *ast.EnumDeclaration {
	tok := p.curToken
	ed := &ast.EnumDeclaration{Token: tok}
	if !p.expectPeek(token.IDENT) {
		return ed
	}
	ed.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	ed.TypeParams = p.parseTypeParamList()
	if !p.expectPeek(token.LBRACE) {
		return ed
	}
	p.advance()
	for !p.curTokenIs(token.RBRACE) {
		variant := ast.EnumVariantDecl{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			p.advance()
			for !p.curTokenIs(token.RPAREN) {
				variant.Fields = append(variant.Fields, p.parseType())
				if p.peekTokenIs(token.COMMA) {
					p.nextToken()
					p.advance()
				} else {
					break
				}
			}
			p.expectPeek(token.RPAREN)
		}
		ed.Variants = append(ed.Variants, variant)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		p.nextToken()
		p.skipTrivia()
	}
	return ed
}

func (p *Parser) parseEnumDeclExpr() ast.Expression { return p.parseEnumDeclaration() }

// parseTraitDeclaration parses `trait Name { fun method(...) -> T [ { ... } ] ... }`.
func (p *Parser) parseTraitDeclaration() *ast.TraitDeclaration {
	tok := p.curToken
	td := &ast.TraitDeclaration{Token: tok}
	if !p.expectPeek(token.IDENT) {
		return td
	}
	td.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LBRACE) {
		return td
	}
	p.advance()
	for !p.curTokenIs(token.RBRACE) {
		if !p.curTokenIs(token.FUN) {
			p.errorf(diagnostics.ErrP004, p.curToken, "expected method signature in trait body")
			p.nextToken()
			continue
		}
		sig := ast.TraitMethodSig{}
		if !p.expectPeek(token.IDENT) {
			break
		}
		sig.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		if !p.expectPeek(token.LPAREN) {
			break
		}
		sig.Parameters = p.parseParamList()
		if p.peekTokenIs(token.ARROW) {
			p.nextToken()
			p.advance()
			sig.ReturnType = p.parseType()
		}
		if p.peekTokenIs(token.LBRACE) {
			p.nextToken()
			sig.Default = p.parseBlock()
		}
		td.Methods = append(td.Methods, sig)
		p.nextToken()
		p.skipTrivia()
	}
	return td
}

func (p *Parser) parseTraitDeclExpr() ast.Expression { return p.parseTraitDeclaration() }

// parseImplDeclaration parses `impl Trait for Type { ... }` or the
// inherent form `impl Type { ... }`.
func (p *Parser) parseImplDeclaration() *ast.ImplDeclaration {
	tok := p.curToken
	id := &ast.ImplDeclaration{Token: tok}
	if !p.expectPeek(token.IDENT) {
		return id
	}
	first := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if p.peekTokenIs(token.FOR) {
		p.nextToken()
		p.advance()
		id.Trait = first
		id.TargetType = p.parseType()
	} else {
		id.TargetType = &ast.NamedType{Token: first.Token, Name: first.Value}
	}
	if !p.expectPeek(token.LBRACE) {
		return id
	}
	p.advance()
	for !p.curTokenIs(token.RBRACE) {
		if !p.curTokenIs(token.FUN) {
			p.nextToken()
			continue
		}
		fn := p.parseFunctionExpression()
		if f, ok := fn.(*ast.FunctionExpression); ok {
			id.Methods = append(id.Methods, f)
		}
		p.nextToken()
		p.skipTrivia()
	}
	return id
}

func (p *Parser) parseImplDeclExpr() ast.Expression { return p.parseImplDeclaration() }

// parseClassDeclaration parses `class Name<T> { field: Type, ...; fun m(...) {...} }`.
// Classes carry reference semantics, unlike structs (spec.md §3.4 "Class").
func (p *Parser) parseClassDeclaration() *ast.ClassDeclaration {
	tok := p.curToken
	cd := &ast.ClassDeclaration{Token: tok}
	if !p.expectPeek(token.IDENT) {
		return cd
	}
	cd.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	cd.TypeParams = p.parseTypeParamList()
	if !p.expectPeek(token.LBRACE) {
		return cd
	}
	p.advance()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.FUN) {
			fn := p.parseFunctionExpression()
			if f, ok := fn.(*ast.FunctionExpression); ok {
				cd.Methods = append(cd.Methods, f)
			}
			p.nextToken()
			p.skipTrivia()
			continue
		}
		fd := ast.FieldDecl{}
		if p.curTokenIs(token.MUT) {
			fd.Mutable = true
			p.nextToken()
		}
		fd.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.advance()
			fd.TypeAnnotation = p.parseType()
		}
		cd.Fields = append(cd.Fields, fd)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
		p.nextToken()
		p.skipTrivia()
	}
	return cd
}

func (p *Parser) parseClassDeclExpr() ast.Expression { return p.parseClassDeclaration() }

// parseActorDeclaration parses `actor Name { state: Type, ...; receive { ... } }`.
func (p *Parser) parseActorDeclaration() *ast.ActorDeclaration {
	tok := p.curToken
	ad := &ast.ActorDeclaration{Token: tok}
	if !p.expectPeek(token.IDENT) {
		return ad
	}
	ad.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LBRACE) {
		return ad
	}
	p.advance()
	for !p.curTokenIs(token.RBRACE) {
		switch {
		case p.curTokenIs(token.FUN):
			fn := p.parseFunctionExpression()
			if f, ok := fn.(*ast.FunctionExpression); ok {
				ad.Methods = append(ad.Methods, f)
			}
			p.nextToken()
			p.skipTrivia()
		case p.curTokenIs(token.RECEIVE):
			re := p.parseReceiveExpression()
			if r, ok := re.(*ast.ReceiveExpression); ok {
				ad.Receive = r
			}
			p.nextToken()
			p.skipTrivia()
		default:
			fd := ast.FieldDecl{}
			if p.curTokenIs(token.MUT) {
				fd.Mutable = true
				p.nextToken()
			}
			fd.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
			if p.peekTokenIs(token.COLON) {
				p.nextToken()
				p.advance()
				fd.TypeAnnotation = p.parseType()
			}
			ad.Fields = append(ad.Fields, fd)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
			}
			p.nextToken()
			p.skipTrivia()
		}
	}
	return ad
}

func (p *Parser) parseActorDeclExpr() ast.Expression { return p.parseActorDeclaration() }
