package parser

import "github.com/beanfmt/beanfmt/ast"

// Directive parsers for every dated directive except transactions, which
// have their own file given the complexity of postings.

func (p *Parser) parseBalance(pos ast.Position, date *ast.Date) (*ast.Balance, error) {
	p.consume(BALANCE, "expected 'balance'")

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	amount, err := p.parseAmount()
	if err != nil {
		return nil, err
	}

	bal := &ast.Balance{Pos: pos, Date: date, Account: account, Amount: amount}
	if err := p.finishDirective(bal); err != nil {
		return nil, err
	}
	return bal, nil
}

func (p *Parser) parseOpen(pos ast.Position, date *ast.Date) (*ast.Open, error) {
	p.consume(OPEN, "expected 'open'")

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	open := &ast.Open{Pos: pos, Date: date, Account: account}

	if p.check(IDENT) {
		currency, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		open.ConstraintCurrencies = append(open.ConstraintCurrencies, currency)
		for p.match(COMMA) {
			currency, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			open.ConstraintCurrencies = append(open.ConstraintCurrencies, currency)
		}
	}

	if p.check(STRING) {
		method, err := p.parseString()
		if err != nil {
			return nil, err
		}
		open.BookingMethod = method.Value
	}

	if err := p.finishDirective(open); err != nil {
		return nil, err
	}
	return open, nil
}

func (p *Parser) parseClose(pos ast.Position, date *ast.Date) (*ast.Close, error) {
	p.consume(CLOSE, "expected 'close'")

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	c := &ast.Close{Pos: pos, Date: date, Account: account}
	if err := p.finishDirective(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseCommodity(pos ast.Position, date *ast.Date) (*ast.Commodity, error) {
	p.consume(COMMODITY, "expected 'commodity'")

	currency, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	c := &ast.Commodity{Pos: pos, Date: date, Currency: currency}
	if err := p.finishDirective(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parsePad(pos ast.Position, date *ast.Date) (*ast.Pad, error) {
	p.consume(PAD, "expected 'pad'")

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	accountPad, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	pad := &ast.Pad{Pos: pos, Date: date, Account: account, AccountPad: accountPad}
	if err := p.finishDirective(pad); err != nil {
		return nil, err
	}
	return pad, nil
}

func (p *Parser) parseNote(pos ast.Position, date *ast.Date) (*ast.Note, error) {
	p.consume(NOTE, "expected 'note'")

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	description, err := p.parseString()
	if err != nil {
		return nil, err
	}
	n := &ast.Note{Pos: pos, Date: date, Account: account, Description: description}
	if err := p.finishDirective(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseDocument(pos ast.Position, date *ast.Date) (*ast.Document, error) {
	p.consume(DOCUMENT, "expected 'document'")

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	path, err := p.parseString()
	if err != nil {
		return nil, err
	}
	d := &ast.Document{Pos: pos, Date: date, Account: account, PathToDocument: path}
	if err := p.finishDirective(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Parser) parsePrice(pos ast.Position, date *ast.Date) (*ast.Price, error) {
	p.consume(PRICE, "expected 'price'")

	commodity, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	amount, err := p.parseAmount()
	if err != nil {
		return nil, err
	}
	price := &ast.Price{Pos: pos, Date: date, Commodity: commodity, Amount: amount}
	if err := p.finishDirective(price); err != nil {
		return nil, err
	}
	return price, nil
}

func (p *Parser) parseEvent(pos ast.Position, date *ast.Date) (*ast.Event, error) {
	p.consume(EVENT, "expected 'event'")

	name, err := p.parseString()
	if err != nil {
		return nil, err
	}
	value, err := p.parseString()
	if err != nil {
		return nil, err
	}
	e := &ast.Event{Pos: pos, Date: date, Name: name, Value: value}
	if err := p.finishDirective(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) parseQuery(pos ast.Position, date *ast.Date) (*ast.Query, error) {
	p.advance() // the "query" identifier

	name, err := p.parseString()
	if err != nil {
		return nil, err
	}
	text, err := p.parseString()
	if err != nil {
		return nil, err
	}
	q := &ast.Query{Pos: pos, Date: date, QueryName: name, QueryText: text}
	if err := p.finishDirective(q); err != nil {
		return nil, err
	}
	return q, nil
}

// parseCustom parses: DATE custom STRING VALUE* where VALUE can be
// STRING | TRUE/FALSE | AMOUNT | NUMBER, terminated by metadata or EOL.
func (p *Parser) parseCustom(pos ast.Position, date *ast.Date) (*ast.Custom, error) {
	p.consume(CUSTOM, "expected 'custom'")

	customType, err := p.parseString()
	if err != nil {
		return nil, err
	}
	custom := &ast.Custom{Pos: pos, Date: date, Type: customType}

	startLine := p.peek().Line
	for !p.isAtEnd() && p.peek().Line == startLine {
		tok := p.peek()
		if tok.Type == IDENT && p.peekAhead(1).Type == COLON {
			break
		}

		var val *ast.CustomValue
		switch tok.Type {
		case STRING:
			s, err := p.parseString()
			if err != nil {
				return nil, err
			}
			val = &ast.CustomValue{String: &s.Value}

		case IDENT:
			ident := tok.String(p.source)
			switch ident {
			case "TRUE":
				p.advance()
				v := true
				val = &ast.CustomValue{Boolean: &v}
			case "FALSE":
				p.advance()
				v := false
				val = &ast.CustomValue{Boolean: &v}
			default:
				p.advance()
				val = &ast.CustomValue{String: &ident}
			}

		case NUMBER, LPAREN:
			expr, err := p.parseNumberExpr()
			if err != nil {
				return nil, err
			}
			if p.check(IDENT) && p.peek().Line == startLine {
				currTok := p.advance()
				val = &ast.CustomValue{Amount: &ast.Amount{Number: expr, Currency: p.internCurrency(currTok)}}
			} else {
				val = &ast.CustomValue{Number: expr}
			}

		case ACCOUNT:
			p.advance()
			acct := tok.String(p.source)
			val = &ast.CustomValue{String: &acct}
		}

		if val == nil {
			break
		}
		custom.Values = append(custom.Values, val)
	}

	if err := p.finishDirective(custom); err != nil {
		return nil, err
	}
	return custom, nil
}
