package parser

import (
	"fmt"
	"strings"

	"github.com/beanfmt/beanfmt/ast"
)

// Helper parsing methods shared by the directive and transaction parsers.

// parseDate parses a DATE token into *ast.Date.
func (p *Parser) parseDate() (*ast.Date, error) {
	tok := p.expect(DATE, "expected date")
	if tok.Type == ILLEGAL {
		return nil, p.errorAtToken(tok, "expected date")
	}
	date, err := ast.NewDate(tok.String(p.source))
	if err != nil {
		return nil, p.errorAtToken(tok, "invalid date: %v", err)
	}
	return date, nil
}

// parseAccount parses an ACCOUNT token into ast.Account, interning the name.
func (p *Parser) parseAccount() (ast.Account, error) {
	tok := p.expect(ACCOUNT, "expected account")
	if tok.Type == ILLEGAL {
		actual := p.peek()
		return "", p.errorAtEndOfPrevious("expected account but got %s %q", actual.Type, actual.String(p.source))
	}
	account := ast.Account(p.internIdent(tok))
	if err := account.Validate(); err != nil {
		return "", p.errorAtToken(tok, "invalid account: %v", err)
	}
	return account, nil
}

// parseAmount parses NUMBER CURRENCY or (EXPRESSION) CURRENCY, preserving
// an expression's structure rather than evaluating it eagerly.
func (p *Parser) parseAmount() (*ast.Amount, error) {
	numExpr, err := p.parseNumberExpr()
	if err != nil {
		return nil, err
	}

	currTok := p.expect(IDENT, "expected currency")
	if currTok.Type == ILLEGAL {
		return nil, p.errorAtEndOfPrevious("expected currency")
	}
	currency := p.internCurrency(currTok)

	return &ast.Amount{Number: numExpr, Currency: currency}, nil
}

// parseCost parses a cost specification: { [*] [AMOUNT] [, DATE] [, LABEL] }
// or {{ AMOUNT [, DATE] [, LABEL] }}.
func (p *Parser) parseCost() (*ast.Cost, error) {
	isTotal := false
	if p.check(LDBRACE) {
		p.advance()
		isTotal = true
	} else {
		p.consume(LBRACE, "expected '{' or '{{'")
	}

	cost := &ast.Cost{IsTotal: isTotal}

	if p.match(ASTERISK) {
		if isTotal {
			return nil, p.error("merge cost {*} cannot use total cost syntax {{}}")
		}
		cost.IsMerge = true
		p.consume(RBRACE, "expected '}'")
		return cost, nil
	}

	closing := RBRACE
	if isTotal {
		closing = RDBRACE
	}

	if p.check(closing) {
		if isTotal {
			return nil, p.error("empty total cost {{}} is not allowed")
		}
		p.advance()
		return cost, nil
	}

	if p.check(NUMBER) || p.check(LPAREN) || p.check(MINUS) {
		amt, err := p.parseAmount()
		if err != nil {
			return nil, err
		}
		cost.Amount = amt
	} else if isTotal {
		return nil, p.error("total cost {{}} requires an amount")
	}

	if p.match(COMMA) {
		if p.check(DATE) {
			date, err := p.parseDate()
			if err != nil {
				return nil, err
			}
			cost.Date = date
			if p.match(COMMA) {
				if p.check(STRING) {
					label, err := p.parseString()
					if err != nil {
						return nil, err
					}
					cost.Label = label.Value
				}
			}
		} else if p.check(STRING) {
			label, err := p.parseString()
			if err != nil {
				return nil, err
			}
			cost.Label = label.Value
		}
	}

	if isTotal {
		p.consume(RDBRACE, "expected '}}'")
	} else {
		p.consume(RBRACE, "expected '}'")
	}

	return cost, nil
}

// parseString parses a STRING token and unquotes it into an ast.RawString.
func (p *Parser) parseString() (ast.RawString, error) {
	tok := p.expect(STRING, "expected string")
	if tok.Type == ILLEGAL {
		return ast.RawString{}, p.errorAtEndOfPrevious("expected string")
	}
	unquoted, err := p.unquoteString(tok.String(p.source))
	if err != nil {
		return ast.RawString{}, p.errorAtToken(tok, "invalid string literal: %v", err)
	}
	return ast.NewRawString(p.internString(unquoted)), nil
}

func (p *Parser) unquoteString(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s, &StringLiteralError{Message: "string must be enclosed in double quotes"}
	}
	inner := s[1 : len(s)-1]
	if strings.IndexByte(inner, '\\') < 0 {
		return inner, nil
	}
	return p.processEscapeSequences(inner)
}

func (p *Parser) processEscapeSequences(inner string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(inner))

	i := 0
	for i < len(inner) {
		if inner[i] == '\\' {
			if i+1 >= len(inner) {
				return "", &StringLiteralError{Message: "escape sequence at end of string"}
			}
			switch inner[i+1] {
			case '"':
				buf.WriteByte('"')
				i += 2
			case '\\':
				buf.WriteByte('\\')
				i += 2
			case 'n':
				buf.WriteByte('\n')
				i += 2
			case 't':
				buf.WriteByte('\t')
				i += 2
			case 'r':
				buf.WriteByte('\r')
				i += 2
			default:
				return "", &StringLiteralError{Message: fmt.Sprintf("invalid escape sequence '\\%c'", inner[i+1])}
			}
		} else {
			buf.WriteByte(inner[i])
			i++
		}
	}
	return buf.String(), nil
}

func (p *Parser) parseIdent() (string, error) {
	tok := p.expect(IDENT, "expected identifier")
	if tok.Type == ILLEGAL {
		return "", p.errorAtEndOfPrevious("expected identifier")
	}
	return tok.String(p.source), nil
}

func (p *Parser) parseTag() (ast.Tag, error) {
	tok := p.expect(TAG, "expected tag")
	if tok.Type == ILLEGAL {
		return "", p.errorAtEndOfPrevious("expected tag")
	}
	return ast.Tag(tok.String(p.source)[1:]), nil
}

func (p *Parser) parseLink() (ast.Link, error) {
	tok := p.expect(LINK, "expected link")
	if tok.Type == ILLEGAL {
		return "", p.errorAtEndOfPrevious("expected link")
	}
	return ast.Link(tok.String(p.source)[1:]), nil
}

// parseMetadataFromLine parses consecutive indented "key: value" metadata
// lines. ownerLine marks whether an entry sits on the owner's own line
// (Inline) versus on its own following line.
func (p *Parser) parseMetadataFromLine(ownerLine int) []*ast.MetaItem {
	var items []*ast.MetaItem

	for {
		keyTok := p.peek()
		isKey := (keyTok.Type == IDENT || p.isKeyword(keyTok.Type)) &&
			p.peekAhead(1).Type == COLON &&
			keyTok.Column+keyTok.Len() == p.peekAhead(1).Column
		if !isKey {
			break
		}

		p.advance() // key
		p.consume(COLON, "expected ':'")
		value := p.parseMetadataValue()
		inline := ownerLine > 0 && keyTok.Line == ownerLine

		var comment *ast.Comment
		if !p.isAtEnd() && p.peek().Type == COMMENT && p.peek().Line == keyTok.Line {
			comment = p.parseComment()
		}

		items = append(items, &ast.MetaItem{
			Pos:     tokenPosition(keyTok, p.filename),
			Key:     keyTok.String(p.source),
			Value:   value,
			Comment: comment,
			Inline:  inline,
		})

		for !p.isAtEnd() && p.peek().Type == NEWLINE {
			p.advance()
		}
	}

	return items
}

// parseMetadataValue parses one of the nine metadata value types.
func (p *Parser) parseMetadataValue() *ast.MetadataValue {
	tok := p.peek()

	switch tok.Type {
	case STRING:
		if str, err := p.parseString(); err == nil {
			return &ast.MetadataValue{StringValue: &str}
		}
	case DATE:
		if date, err := p.parseDate(); err == nil {
			return &ast.MetadataValue{Date: date}
		}
	case TAG:
		if tag, err := p.parseTag(); err == nil {
			return &ast.MetadataValue{Tag: &tag}
		}
	case LINK:
		if link, err := p.parseLink(); err == nil {
			return &ast.MetadataValue{Link: &link}
		}
	case ACCOUNT:
		if account, err := p.parseAccount(); err == nil {
			return &ast.MetadataValue{Account: &account}
		}
	case NUMBER, LPAREN, MINUS:
		if p.peekAhead(1).Type == IDENT && tok.Type == NUMBER {
			if amount, err := p.parseAmount(); err == nil {
				return &ast.MetadataValue{Amount: amount}
			}
		} else {
			if expr, err := p.parseNumberExpr(); err == nil {
				return &ast.MetadataValue{Number: expr}
			}
		}
	case IDENT:
		identStr := tok.String(p.source)
		switch identStr {
		case "TRUE":
			p.advance()
			v := true
			return &ast.MetadataValue{Boolean: &v}
		case "FALSE":
			p.advance()
			v := false
			return &ast.MetadataValue{Boolean: &v}
		}
		p.advance()
		return &ast.MetadataValue{Currency: &identStr}
	}

	value := p.parseRestOfLine()
	unquoted, err := p.unquoteString(value)
	if err != nil {
		raw := ast.NewRawString(value)
		return &ast.MetadataValue{StringValue: &raw}
	}
	raw := ast.NewRawString(unquoted)
	return &ast.MetadataValue{StringValue: &raw}
}

func (p *Parser) isKeyword(typ TokenType) bool {
	switch typ {
	case TXN, BALANCE, OPEN, CLOSE, COMMODITY, PAD, NOTE, DOCUMENT,
		PRICE, EVENT, CUSTOM, OPTION, INCLUDE, PLUGIN,
		PUSHTAG, POPTAG, PUSHMETA, POPMETA:
		return true
	default:
		return false
	}
}

func (p *Parser) parseRestOfLine() string {
	currentLine := p.peek().Line
	var parts []string
	for !p.isAtEnd() && p.peek().Line == currentLine {
		tok := p.advance()
		parts = append(parts, tok.String(p.source))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (p *Parser) skipLine() {
	line := p.peek().Line
	for !p.isAtEnd() && p.peek().Line == line {
		p.advance()
	}
}

// Token navigation.

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAhead(n int) Token {
	pos := p.pos + n
	if pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[pos]
}

func (p *Parser) previous() Token {
	if p.pos == 0 {
		return Token{Type: ILLEGAL}
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Type == typ
}

func (p *Parser) match(types ...TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) consume(typ TokenType, message string) Token {
	if p.check(typ) {
		return p.advance()
	}
	tok := p.peek()
	_ = p.errorAtToken(tok, "%s", message)
	return Token{Type: ILLEGAL, Start: tok.Start, End: tok.End, Line: tok.Line, Column: tok.Column}
}

func (p *Parser) expect(typ TokenType, message string) Token {
	return p.consume(typ, message)
}

// String interning.

func (p *Parser) internCurrency(tok Token) string {
	return p.interner.InternBytes(tok.Bytes(p.source))
}

func (p *Parser) internString(s string) string {
	return p.interner.Intern(s)
}

func (p *Parser) internIdent(tok Token) string {
	return p.interner.InternBytes(tok.Bytes(p.source))
}

// Error helpers.

func (p *Parser) errorAtToken(tok Token, format string, args ...any) error {
	pos := tokenPosition(tok, p.filename)
	sourceRange := p.calculateSourceRange(pos)
	return newErrorfWithSource(pos, sourceRange, format, args...)
}

func tokenPosition(tok Token, filename string) ast.Position {
	return ast.Position{Filename: filename, Offset: tok.Start, Line: tok.Line, Column: tok.Column}
}

func (p *Parser) tokenPositionFromPeek() ast.Position {
	return tokenPosition(p.peek(), p.filename)
}

func (p *Parser) positionAtEndOfPrevious() ast.Position {
	if p.pos == 0 {
		return p.tokenPositionFromPeek()
	}
	prev := p.previous()
	return ast.Position{Filename: p.filename, Offset: prev.End, Line: prev.Line, Column: prev.Column + (prev.End - prev.Start)}
}

func (p *Parser) errorAtEndOfPrevious(format string, args ...any) error {
	pos := p.positionAtEndOfPrevious()
	sourceRange := p.calculateSourceRange(pos)
	return newErrorfWithSource(pos, sourceRange, format, args...)
}

// calculateSourceRange captures a few lines of context around pos for error rendering.
func (p *Parser) calculateSourceRange(pos ast.Position) SourceRange {
	sourceStr := string(p.source)
	lines := strings.Split(sourceStr, "\n")

	startLine := pos.Line - 3
	endLine := pos.Line + 1
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	startOffset := 0
	for i := 0; i < startLine; i++ {
		startOffset += len(lines[i]) + 1
	}

	endOffset := startOffset
	for i := startLine; i <= endLine; i++ {
		if i < len(lines) {
			endOffset += len(lines[i])
			if i < endLine {
				endOffset++
			}
		}
	}
	if endOffset > len(p.source) {
		endOffset = len(p.source)
	}

	return SourceRange{StartOffset: startOffset, EndOffset: endOffset, Source: p.source[startOffset:endOffset]}
}
