package ast

// Option sets a configuration parameter that affects how the ledger is
// processed or displayed, e.g. its title or operating currency.
//
//	option "title" "Personal Ledger of John Doe"
type Option struct {
	Pos   Position
	Name  string
	Value string
}

func (o *Option) Position() Position { return o.Pos }
func (o *Option) Kind() Kind         { return KindOption }

func (o *Option) ChildrenFormatted() []Edge {
	return []Edge{
		{Child: NewToken(TokKeyword, "option")},
		{Child: NewToken(TokString, o.Name)},
		{Child: NewToken(TokString, o.Value)},
		{Child: NewToken(TokEol, "")},
	}
}

// Include imports directives from another file, relative to the file
// containing the directive.
//
//	include "accounts.beancount"
type Include struct {
	Pos      Position
	Filename string
}

func (i *Include) Position() Position { return i.Pos }
func (i *Include) Kind() Kind         { return KindInclude }

func (i *Include) ChildrenFormatted() []Edge {
	return []Edge{
		{Child: NewToken(TokKeyword, "include")},
		{Child: NewToken(TokString, i.Filename)},
		{Child: NewToken(TokEol, "")},
	}
}

// Plugin loads a processing plugin, with an optional configuration string.
//
//	plugin "beancount.plugins.auto_accounts"
type Plugin struct {
	Pos    Position
	Name   string
	Config string // empty when no configuration string was given
}

func (p *Plugin) Position() Position { return p.Pos }
func (p *Plugin) Kind() Kind         { return KindPlugin }

func (p *Plugin) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokKeyword, "plugin")},
		{Child: NewToken(TokString, p.Name)},
	}
	if p.Config != "" {
		edges = append(edges, Edge{Child: NewToken(TokString, p.Config)})
	}
	return append(edges, Edge{Child: NewToken(TokEol, "")})
}

// Pushtag pushes a tag onto the tag stack; every transaction up to the
// matching Poptag automatically receives it.
//
//	pushtag #trip-europe
type Pushtag struct {
	Pos Position
	Tag Tag
}

func (p *Pushtag) Position() Position { return p.Pos }
func (p *Pushtag) Kind() Kind         { return KindPushtag }

func (p *Pushtag) ChildrenFormatted() []Edge {
	return []Edge{
		{Child: NewToken(TokKeyword, "pushtag")},
		{Child: NewToken(TokTag, string(p.Tag))},
		{Child: NewToken(TokEol, "")},
	}
}

// Poptag removes a tag pushed by a matching Pushtag.
//
//	poptag #trip-europe
type Poptag struct {
	Pos Position
	Tag Tag
}

func (p *Poptag) Position() Position { return p.Pos }
func (p *Poptag) Kind() Kind         { return KindPoptag }

func (p *Poptag) ChildrenFormatted() []Edge {
	return []Edge{
		{Child: NewToken(TokKeyword, "poptag")},
		{Child: NewToken(TokTag, string(p.Tag))},
		{Child: NewToken(TokEol, "")},
	}
}

// Pushmeta pushes a metadata key/value pair that every following directive
// automatically receives, until a matching Popmeta.
//
//	pushmeta location: "New York, NY"
type Pushmeta struct {
	Pos   Position
	Key   string
	Value string
}

func (p *Pushmeta) Position() Position { return p.Pos }
func (p *Pushmeta) Kind() Kind         { return KindPushmeta }

func (p *Pushmeta) ChildrenFormatted() []Edge {
	return []Edge{
		{Child: NewToken(TokKeyword, "pushmeta")},
		{Child: NewToken(TokMetaKey, p.Key)},
		{Child: NewToken(TokString, p.Value)},
		{Child: NewToken(TokEol, "")},
	}
}

// Popmeta removes a metadata key pushed by a matching Pushmeta.
//
//	popmeta location:
type Popmeta struct {
	Pos Position
	Key string
}

func (p *Popmeta) Position() Position { return p.Pos }
func (p *Popmeta) Kind() Kind         { return KindPopmeta }

func (p *Popmeta) ChildrenFormatted() []Edge {
	return []Edge{
		{Child: NewToken(TokKeyword, "popmeta")},
		{Child: NewToken(TokMetaKey, p.Key)},
		{Child: NewToken(TokEol, "")},
	}
}
