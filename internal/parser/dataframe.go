package parser

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/token"
)

// parseDataFrameLiteral parses `df![...]` in either of its two surface
// forms and normalizes both into column-oriented ast.DataFrameLiteral
// (spec.md §4.2 "DataFrame literals"):
//
//   - keyed-column: df![name => ["a", "b"], age => [1, 2]]
//   - legacy row-based: df![["name", "age"], ["a", 1], ["b", 2]], the
//     first row holding column headers and the rest holding row values.
func (p *Parser) parseDataFrameLiteral() ast.Expression {
	tok := p.curToken // 'df'
	if !p.expectPeek(token.BANG) {
		return nil
	}
	if !p.expectPeek(token.LBRACKET) {
		return nil
	}
	dl := &ast.DataFrameLiteral{Token: tok}
	p.advance()
	if p.curTokenIs(token.RBRACKET) {
		return dl
	}

	if p.curTokenIs(token.LBRACKET) {
		return p.parseRowBasedDataFrame(dl)
	}
	return p.parseKeyedDataFrame(dl)
}

func (p *Parser) parseKeyedDataFrame(dl *ast.DataFrameLiteral) ast.Expression {
	for !p.curTokenIs(token.RBRACKET) {
		name := p.curToken.Lexeme
		if !p.expectPeek(token.FAT_ARROW) {
			return nil
		}
		p.nextToken()
		values := p.parseDataFrameValueList()
		dl.Columns = append(dl.Columns, ast.DataFrameColumn{Name: name, Values: values})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		break
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return dl
}

// parseDataFrameValueList parses curToken positioned on the opening '['
// of a column's value list.
func (p *Parser) parseDataFrameValueList() []ast.Expression {
	p.advance()
	var values []ast.Expression
	for !p.curTokenIs(token.RBRACKET) {
		values = append(values, p.parseExpression(LOWEST))
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		break
	}
	p.expectCloser(token.RBRACKET)
	return values
}

// parseRowBasedDataFrame parses the legacy `[[headers...], [row...], ...]`
// form and transposes it into column-oriented storage.
func (p *Parser) parseRowBasedDataFrame(dl *ast.DataFrameLiteral) ast.Expression {
	var rows [][]ast.Expression
	for !p.curTokenIs(token.RBRACKET) {
		if !p.curTokenIs(token.LBRACKET) {
			break
		}
		rows = append(rows, p.parseDataFrameValueList())
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.advance()
			continue
		}
		break
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	if len(rows) == 0 {
		return dl
	}
	headers := rows[0]
	cols := make([]ast.DataFrameColumn, len(headers))
	for i, h := range headers {
		name := h.TokenLiteral()
		if s, ok := h.(*ast.StringLiteral); ok {
			name = s.Value
		} else if id, ok := h.(*ast.Identifier); ok {
			name = id.Value
		}
		cols[i].Name = name
	}
	for _, row := range rows[1:] {
		for i := range cols {
			if i < len(row) {
				cols[i].Values = append(cols[i].Values, row[i])
			}
		}
	}
	dl.Columns = cols
	return dl
}
