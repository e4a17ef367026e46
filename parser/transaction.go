package parser

import "github.com/beanfmt/beanfmt/ast"

// Transaction parsing is the most involved directive shape: a header line
// followed by zero or more indented postings, each of which may carry its
// own metadata.

// parseTransaction parses:
//
//	DATE [txn] FLAG [PAYEE] NARRATION [TAG|LINK]*
//	  POSTING*
func (p *Parser) parseTransaction(pos ast.Position, date *ast.Date) (*ast.Transaction, error) {
	txn := &ast.Transaction{Pos: pos, Date: date}

	if p.match(TXN) {
		switch {
		case p.match(ASTERISK):
			txn.Flag = "*"
		case p.match(EXCLAIM):
			txn.Flag = "!"
		default:
			return nil, p.error("expected flag (* or !) after 'txn'")
		}
	} else if p.match(ASTERISK) {
		txn.Flag = "*"
	} else if p.match(EXCLAIM) {
		txn.Flag = "!"
	} else if p.check(STRING) {
		txn.Flag = "P"
	} else {
		return nil, p.error("expected transaction flag (* or !) or 'txn'")
	}

	hasNarration := false
	if p.check(STRING) {
		first, err := p.parseString()
		if err != nil {
			return nil, err
		}
		if p.check(STRING) {
			second, err := p.parseString()
			if err != nil {
				return nil, err
			}
			txn.Payee = first
			txn.Narration = second
		} else {
			txn.Narration = first
		}
		hasNarration = true
	}
	if !hasNarration {
		return nil, p.error("expected transaction payee or narration string")
	}

	for p.check(TAG) || p.check(LINK) {
		if p.check(TAG) {
			tag, err := p.parseTag()
			if err != nil {
				return nil, err
			}
			txn.Tags = append(txn.Tags, tag)
		} else {
			link, err := p.parseLink()
			if err != nil {
				return nil, err
			}
			txn.Links = append(txn.Links, link)
		}
	}

	if !p.isAtEnd() && p.peek().Type == COMMENT && p.peek().Line == txn.Pos.Line {
		txn.SetComment(p.parseComment())
	}

	for !p.isAtEnd() && p.peek().Type == NEWLINE {
		p.advance()
	}

	if !p.isAtEnd() && p.peek().Line > txn.Pos.Line && p.peek().Column > 1 {
		for _, m := range p.parseMetadataFromLine(txn.Pos.Line) {
			txn.AddMetadata(m)
		}
	}

	postings, err := p.parsePostings(txn.Pos.Line)
	if err != nil {
		return nil, err
	}
	txn.Postings = postings

	return txn, nil
}

// parsePostings parses the indented posting lines following a transaction
// header, stopping at the first unindented or non-posting line.
func (p *Parser) parsePostings(headerLine int) ([]*ast.Posting, error) {
	var postings []*ast.Posting

	for !p.isAtEnd() {
		tok := p.peek()

		if tok.Line == headerLine && (tok.Type == ASTERISK || tok.Type == EXCLAIM || tok.Type == ACCOUNT) {
			return nil, p.errorAtToken(tok, "postings must start on a new line")
		}

		if tok.Type == NEWLINE {
			nextIdx := p.pos + 1
			if nextIdx < len(p.tokens) {
				next := p.tokens[nextIdx]
				if next.Column <= 1 || next.Type == EOF {
					break
				}
			}
			p.advance()
			continue
		}

		if tok.Column <= 1 {
			break
		}

		if tok.Type != ASTERISK && tok.Type != EXCLAIM && tok.Type != ACCOUNT {
			if tok.Type == COMMENT {
				p.advance()
				continue
			}
			break
		}

		posting, err := p.parsePosting()
		if err != nil {
			return nil, err
		}
		postings = append(postings, posting)
	}

	return postings, nil
}

// parsePosting parses a single posting: [FLAG] ACCOUNT [AMOUNT] [COST] [PRICE].
func (p *Parser) parsePosting() (*ast.Posting, error) {
	pos := p.tokenPositionFromPeek()
	postingLine := p.peek().Line

	posting := &ast.Posting{Pos: pos}

	if p.match(ASTERISK) {
		posting.Flag = "*"
	} else if p.match(EXCLAIM) {
		posting.Flag = "!"
	}

	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}
	posting.Account = account

	if p.check(NUMBER) || p.check(LPAREN) || p.check(MINUS) {
		amount, err := p.parseAmount()
		if err != nil {
			return nil, err
		}
		posting.Amount = amount
	}

	if p.check(LBRACE) || p.check(LDBRACE) {
		cost, err := p.parseCost()
		if err != nil {
			return nil, err
		}
		posting.Cost = cost
	}

	if p.match(ATAT) {
		posting.PriceTotal = true
		amount, err := p.parseAmount()
		if err != nil {
			return nil, err
		}
		posting.Price = amount
	} else if p.match(AT) {
		amount, err := p.parseAmount()
		if err != nil {
			return nil, err
		}
		posting.Price = amount
	}

	if !p.isAtEnd() && p.peek().Type == COMMENT && p.peek().Line == postingLine {
		posting.SetComment(p.parseComment())
	}

	for !p.isAtEnd() && p.peek().Type == NEWLINE {
		p.advance()
	}

	posting.Metadata = p.parseMetadataFromLine(postingLine)

	return posting, nil
}
