// Package parser turns Beancount source text into an ast.File.
//
// Lexing is a single zero-copy pass (see lexer.go) that produces a flat
// token stream; parsing is hand-written recursive descent over that stream,
// one function per directive shape. The parser never evaluates amounts or
// validates semantics (no balance checking, no account-existence checks) —
// it only builds the tree the format package then renders.
package parser

import (
	"context"
	"fmt"

	"github.com/beanfmt/beanfmt/ast"
)

// Parser holds the state of a single parse of one file's token stream.
type Parser struct {
	source   []byte
	filename string
	tokens   []Token
	pos      int
	interner *Interner
}

// ParseBytes parses source into an ast.File, attributing positions to filename.
func ParseBytes(ctx context.Context, filename string, source []byte) (*ast.File, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	lex := NewLexer(source, filename)
	tokens, err := lex.ScanAll()
	if err != nil {
		return nil, err
	}

	p := &Parser{
		source:   source,
		filename: filename,
		tokens:   tokens,
		interner: lex.Interner(),
	}
	return p.parseFile()
}

// ParseString is a convenience wrapper over ParseBytes for in-memory source.
func ParseString(ctx context.Context, filename, source string) (*ast.File, error) {
	return ParseBytes(ctx, filename, []byte(source))
}

func (p *Parser) parseFile() (*ast.File, error) {
	file := &ast.File{}
	blanksBefore := 0

	for !p.isAtEnd() {
		tok := p.peek()
		if tok.Type != NEWLINE {
			// A directive's parser consumes the blank lines that follow it,
			// so count every NEWLINE token directly before this item, not
			// only the ones this loop has seen.
			blanksBefore = 0
			for i := p.pos - 1; i >= 0 && p.tokens[i].Type == NEWLINE; i-- {
				blanksBefore++
			}
		}

		switch tok.Type {
		case NEWLINE:
			p.advance()
			blanksBefore++
			continue

		case COMMENT:
			comment := p.parseComment()
			comment.Type = ast.BlockCommentType
			file.Items = append(file.Items, &ast.Item{
				Pos:          comment.Pos,
				BlockComment: comment,
				BlanksBefore: blanksBefore,
			})
			blanksBefore = 0
			continue

		case OPTION, INCLUDE, PLUGIN, PUSHTAG, POPTAG, PUSHMETA, POPMETA:
			node, err := p.parseUndated()
			if err != nil {
				return nil, err
			}
			file.Items = append(file.Items, &ast.Item{
				Pos:          positionOf(node),
				Undated:      node,
				BlanksBefore: blanksBefore,
			})
			blanksBefore = 0
			continue

		case DATE:
			dir, err := p.parseDirective()
			if err != nil {
				return nil, err
			}
			file.Items = append(file.Items, &ast.Item{
				Pos:          dir.Position(),
				Directive:    dir,
				BlanksBefore: blanksBefore,
			})
			blanksBefore = 0
			continue

		default:
			return nil, p.errorAtToken(tok, "unexpected token %s at top level", tok.Type)
		}
	}

	return file, nil
}

// positionOf extracts a Position from one of the undated-clause node types.
func positionOf(n ast.Node) ast.Position {
	if p, ok := n.(ast.Positioned); ok {
		return p.Position()
	}
	return ast.Position{}
}

func (p *Parser) parseUndated() (ast.Node, error) {
	switch p.peek().Type {
	case OPTION:
		return p.parseOption()
	case INCLUDE:
		return p.parseInclude()
	case PLUGIN:
		return p.parsePlugin()
	case PUSHTAG:
		return p.parsePushtag()
	case POPTAG:
		return p.parsePoptag()
	case PUSHMETA:
		return p.parsePushmeta()
	case POPMETA:
		return p.parsePopmeta()
	default:
		return nil, p.error("expected undated clause")
	}
}

func (p *Parser) parseOption() (*ast.Option, error) {
	pos := p.tokenPositionFromPeek()
	p.advance() // option
	name, err := p.parseString()
	if err != nil {
		return nil, err
	}
	value, err := p.parseString()
	if err != nil {
		return nil, err
	}
	p.skipLine()
	return &ast.Option{Pos: pos, Name: name.Value, Value: value.Value}, nil
}

func (p *Parser) parseInclude() (*ast.Include, error) {
	pos := p.tokenPositionFromPeek()
	p.advance() // include
	filename, err := p.parseString()
	if err != nil {
		return nil, err
	}
	p.skipLine()
	return &ast.Include{Pos: pos, Filename: filename.Value}, nil
}

func (p *Parser) parsePlugin() (*ast.Plugin, error) {
	pos := p.tokenPositionFromPeek()
	p.advance() // plugin
	name, err := p.parseString()
	if err != nil {
		return nil, err
	}
	plugin := &ast.Plugin{Pos: pos, Name: name.Value}
	if p.check(STRING) {
		cfg, err := p.parseString()
		if err != nil {
			return nil, err
		}
		plugin.Config = cfg.Value
	}
	p.skipLine()
	return plugin, nil
}

func (p *Parser) parsePushtag() (*ast.Pushtag, error) {
	pos := p.tokenPositionFromPeek()
	p.advance() // pushtag
	tag, err := p.parseTag()
	if err != nil {
		return nil, err
	}
	p.skipLine()
	return &ast.Pushtag{Pos: pos, Tag: tag}, nil
}

func (p *Parser) parsePoptag() (*ast.Poptag, error) {
	pos := p.tokenPositionFromPeek()
	p.advance() // poptag
	tag, err := p.parseTag()
	if err != nil {
		return nil, err
	}
	p.skipLine()
	return &ast.Poptag{Pos: pos, Tag: tag}, nil
}

func (p *Parser) parsePushmeta() (*ast.Pushmeta, error) {
	pos := p.tokenPositionFromPeek()
	p.advance() // pushmeta
	keyTok := p.advance()
	p.consume(COLON, "expected ':' after pushmeta key")
	value := p.parseMetadataValue()
	text := ""
	if value != nil && value.StringValue != nil {
		text = value.StringValue.Value
	}
	p.skipLine()
	return &ast.Pushmeta{Pos: pos, Key: keyTok.String(p.source), Value: text}, nil
}

func (p *Parser) parsePopmeta() (*ast.Popmeta, error) {
	pos := p.tokenPositionFromPeek()
	p.advance() // popmeta
	keyTok := p.advance()
	if p.check(COLON) {
		p.advance()
	}
	p.skipLine()
	return &ast.Popmeta{Pos: pos, Key: keyTok.String(p.source)}, nil
}

// parseDirective parses one dated directive: DATE <keyword> ... possibly
// followed by an inline comment and indented metadata/postings.
func (p *Parser) parseDirective() (ast.Directive, error) {
	pos := p.tokenPositionFromPeek()
	date, err := p.parseDate()
	if err != nil {
		return nil, err
	}

	switch p.peek().Type {
	case BALANCE:
		return p.parseBalance(pos, date)
	case OPEN:
		return p.parseOpen(pos, date)
	case CLOSE:
		return p.parseClose(pos, date)
	case COMMODITY:
		return p.parseCommodity(pos, date)
	case PAD:
		return p.parsePad(pos, date)
	case NOTE:
		return p.parseNote(pos, date)
	case DOCUMENT:
		return p.parseDocument(pos, date)
	case PRICE:
		return p.parsePrice(pos, date)
	case EVENT:
		return p.parseEvent(pos, date)
	case CUSTOM:
		return p.parseCustom(pos, date)
	case IDENT:
		if p.peek().String(p.source) == "query" {
			return p.parseQuery(pos, date)
		}
		return p.parseTransaction(pos, date)
	case TXN, ASTERISK, EXCLAIM, STRING:
		return p.parseTransaction(pos, date)
	default:
		return nil, p.errorAtToken(p.peek(), "expected directive keyword, got %s", p.peek().Type)
	}
}

// finishDirective consumes an optional inline comment and any indented
// metadata trailing a non-transaction directive, then skips to the next
// line. dir must already have its own Date/Position set.
func (p *Parser) finishDirective(dir ast.Directive) error {
	ownerLine := dir.Position().Line
	if !p.isAtEnd() && p.peek().Type == COMMENT && p.peek().Line == ownerLine {
		dir.SetComment(p.parseComment())
	}
	for !p.isAtEnd() && p.peek().Type == NEWLINE {
		p.advance()
	}
	if !p.isAtEnd() && p.peek().Line > ownerLine && p.peek().Column > 1 {
		for _, m := range p.parseMetadataFromLine(ownerLine) {
			dir.AddMetadata(m)
		}
	}
	return nil
}

func (p *Parser) parseComment() *ast.Comment {
	tok := p.advance()
	text := tok.String(p.source)
	// Strip the leading ';' and exactly one following space, if present.
	text = text[1:]
	if len(text) > 0 && text[len(text)-1] == '\n' {
		text = text[:len(text)-1]
	}
	if len(text) > 0 && text[0] == ' ' {
		text = text[1:]
	}
	return &ast.Comment{Pos: tokenPosition(tok, p.filename), Body: text}
}

func (p *Parser) error(format string, args ...any) error {
	return fmt.Errorf("%w", p.errorAtToken(p.peek(), format, args...))
}
