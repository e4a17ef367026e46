package ast

// Directive is the interface implemented by every Beancount directive
// variant. It composes Node/TreeNode (for dispatch and generic recursion),
// Positioned (for error reporting and block partitioning), and the metadata
// / comment accessors every directive shares.
type Directive interface {
	Node
	TreeNode
	Positioned

	GetDate() *Date
	DirectiveName() string

	GetComment() *Comment
	SetComment(*Comment)

	GetMetadata() []*MetaItem
	AddMetadata(*MetaItem)
}

// withMetadata is embedded by every directive to implement the metadata
// half of the Directive interface.
type withMetadata struct {
	Metadata []*MetaItem
}

func (w *withMetadata) GetMetadata() []*MetaItem { return w.Metadata }
func (w *withMetadata) AddMetadata(m *MetaItem)   { w.Metadata = append(w.Metadata, m) }

// withComment is embedded by every directive to implement the trailing
// inline-comment half of the Directive interface.
type withComment struct {
	InlineComment *Comment
}

func (w *withComment) GetComment() *Comment  { return w.InlineComment }
func (w *withComment) SetComment(c *Comment) { w.InlineComment = c }

// metadataEdges returns the ordered, indented child edges for a directive's
// trailing metadata items — shared by every directive's ChildrenFormatted.
func metadataEdges(items []*MetaItem) []Edge {
	edges := make([]Edge, 0, len(items))
	for _, m := range items {
		edges = append(edges, Edge{Child: m, Indented: true})
	}
	return edges
}

// Commodity declares a commodity or currency that can be used in the
// ledger. Optional but useful for documenting expected currencies, and can
// carry metadata such as display precision.
//
//	2014-01-01 commodity USD
//	  name: "US Dollar"
type Commodity struct {
	Pos      Position
	Date     *Date
	Currency string

	withComment
	withMetadata
}

var _ Directive = (*Commodity)(nil)

func (c *Commodity) Position() Position  { return c.Pos }
func (c *Commodity) GetDate() *Date      { return c.Date }
func (c *Commodity) DirectiveName() string { return "commodity" }
func (c *Commodity) Kind() Kind          { return KindCommodity }

func (c *Commodity) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, c.Date.String())},
		{Child: NewToken(TokKeyword, "commodity")},
		{Child: NewToken(TokCurrency, c.Currency)},
		{Child: NewToken(TokEol, "")},
	}
	if c.InlineComment != nil {
		edges = append(edges, Edge{Child: c.InlineComment})
	}
	return append(edges, metadataEdges(c.Metadata)...)
}

// Open declares the opening of an account, optionally constraining which
// currencies it may hold and specifying a booking method for lots.
//
//	2014-05-01 open Assets:US:BofA:Checking USD
type Open struct {
	Pos                  Position
	Date                 *Date
	Account              Account
	ConstraintCurrencies []string
	BookingMethod        string

	withComment
	withMetadata
}

var _ Directive = (*Open)(nil)

func (o *Open) Position() Position    { return o.Pos }
func (o *Open) GetDate() *Date        { return o.Date }
func (o *Open) DirectiveName() string { return "open" }
func (o *Open) Kind() Kind            { return KindOpen }

func (o *Open) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, o.Date.String())},
		{Child: NewToken(TokKeyword, "open")},
		{Child: NewToken(TokAccount, string(o.Account))},
	}
	for _, cur := range o.ConstraintCurrencies {
		edges = append(edges, Edge{Child: NewToken(TokCurrency, cur)})
	}
	if o.BookingMethod != "" {
		edges = append(edges, Edge{Child: NewToken(TokString, o.BookingMethod)})
	}
	edges = append(edges, Edge{Child: NewToken(TokEol, "")})
	if o.InlineComment != nil {
		edges = append(edges, Edge{Child: o.InlineComment})
	}
	return append(edges, metadataEdges(o.Metadata)...)
}

// Close declares the closing of an account.
//
//	2015-09-23 close Assets:US:BofA:Checking
type Close struct {
	Pos     Position
	Date    *Date
	Account Account

	withComment
	withMetadata
}

var _ Directive = (*Close)(nil)

func (c *Close) Position() Position    { return c.Pos }
func (c *Close) GetDate() *Date        { return c.Date }
func (c *Close) DirectiveName() string { return "close" }
func (c *Close) Kind() Kind            { return KindClose }

func (c *Close) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, c.Date.String())},
		{Child: NewToken(TokKeyword, "close")},
		{Child: NewToken(TokAccount, string(c.Account))},
		{Child: NewToken(TokEol, "")},
	}
	if c.InlineComment != nil {
		edges = append(edges, Edge{Child: c.InlineComment})
	}
	return append(edges, metadataEdges(c.Metadata)...)
}

// Balance asserts that an account should have a specific balance at the
// start of a given date.
//
//	2014-08-09 balance Assets:US:BofA:Checking 562.00 USD
type Balance struct {
	Pos     Position
	Date    *Date
	Account Account
	Amount  *Amount

	withComment
	withMetadata
}

var _ Directive = (*Balance)(nil)

func (b *Balance) Position() Position    { return b.Pos }
func (b *Balance) GetDate() *Date        { return b.Date }
func (b *Balance) DirectiveName() string { return "balance" }
func (b *Balance) Kind() Kind            { return KindBalance }

func (b *Balance) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, b.Date.String())},
		{Child: NewToken(TokKeyword, "balance")},
		{Child: NewToken(TokAccount, string(b.Account))},
	}
	if b.Amount != nil {
		edges = append(edges, Edge{Child: b.Amount.Number}, Edge{Child: NewToken(TokCurrency, b.Amount.Currency)})
	}
	edges = append(edges, Edge{Child: NewToken(TokEol, "")})
	if b.InlineComment != nil {
		edges = append(edges, Edge{Child: b.InlineComment})
	}
	return append(edges, metadataEdges(b.Metadata)...)
}

// Pad automatically inserts a balancing transaction against AccountPad to
// bring Account to the balance asserted by the next Balance directive.
//
//	2014-01-01 pad Assets:US:BofA:Checking Equity:Opening-Balances
type Pad struct {
	Pos        Position
	Date       *Date
	Account    Account
	AccountPad Account

	withComment
	withMetadata
}

var _ Directive = (*Pad)(nil)

func (p *Pad) Position() Position    { return p.Pos }
func (p *Pad) GetDate() *Date        { return p.Date }
func (p *Pad) DirectiveName() string { return "pad" }
func (p *Pad) Kind() Kind            { return KindPad }

func (p *Pad) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, p.Date.String())},
		{Child: NewToken(TokKeyword, "pad")},
		{Child: NewToken(TokAccount, string(p.Account))},
		{Child: NewToken(TokAccount, string(p.AccountPad))},
		{Child: NewToken(TokEol, "")},
	}
	if p.InlineComment != nil {
		edges = append(edges, Edge{Child: p.InlineComment})
	}
	return append(edges, metadataEdges(p.Metadata)...)
}

// Note attaches a dated comment to an account.
//
//	2014-07-09 note Assets:US:BofA:Checking "Called bank about deposit"
type Note struct {
	Pos         Position
	Date        *Date
	Account     Account
	Description RawString

	withComment
	withMetadata
}

var _ Directive = (*Note)(nil)

func (n *Note) Position() Position    { return n.Pos }
func (n *Note) GetDate() *Date        { return n.Date }
func (n *Note) DirectiveName() string { return "note" }
func (n *Note) Kind() Kind            { return KindNote }

func (n *Note) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, n.Date.String())},
		{Child: NewToken(TokKeyword, "note")},
		{Child: NewToken(TokAccount, string(n.Account))},
		{Child: NewToken(TokString, n.Description.Value)},
		{Child: NewToken(TokEol, "")},
	}
	if n.InlineComment != nil {
		edges = append(edges, Edge{Child: n.InlineComment})
	}
	return append(edges, metadataEdges(n.Metadata)...)
}

// Document associates an external file with an account at a given date.
//
//	2014-07-09 document Assets:US:BofA:Checking "/statements/2014-07.pdf"
type Document struct {
	Pos            Position
	Date           *Date
	Account        Account
	PathToDocument RawString

	withComment
	withMetadata
}

var _ Directive = (*Document)(nil)

func (d *Document) Position() Position    { return d.Pos }
func (d *Document) GetDate() *Date        { return d.Date }
func (d *Document) DirectiveName() string { return "document" }
func (d *Document) Kind() Kind            { return KindDocument }

func (d *Document) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, d.Date.String())},
		{Child: NewToken(TokKeyword, "document")},
		{Child: NewToken(TokAccount, string(d.Account))},
		{Child: NewToken(TokString, d.PathToDocument.Value)},
		{Child: NewToken(TokEol, "")},
	}
	if d.InlineComment != nil {
		edges = append(edges, Edge{Child: d.InlineComment})
	}
	return append(edges, metadataEdges(d.Metadata)...)
}

// Price declares the price of a commodity in terms of another currency at a
// given date.
//
//	2014-07-09 price USD 1.08 CAD
type Price struct {
	Pos       Position
	Date      *Date
	Commodity string
	Amount    *Amount

	withComment
	withMetadata
}

var _ Directive = (*Price)(nil)

func (p *Price) Position() Position    { return p.Pos }
func (p *Price) GetDate() *Date        { return p.Date }
func (p *Price) DirectiveName() string { return "price" }
func (p *Price) Kind() Kind            { return KindPrice }

func (p *Price) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, p.Date.String())},
		{Child: NewToken(TokKeyword, "price")},
		{Child: NewToken(TokCurrency, p.Commodity)},
	}
	if p.Amount != nil {
		edges = append(edges, Edge{Child: p.Amount.Number}, Edge{Child: NewToken(TokCurrency, p.Amount.Currency)})
	}
	edges = append(edges, Edge{Child: NewToken(TokEol, "")})
	if p.InlineComment != nil {
		edges = append(edges, Edge{Child: p.InlineComment})
	}
	return append(edges, metadataEdges(p.Metadata)...)
}

// Event records a named event with a value at a given date.
//
//	2014-07-09 event "location" "New York, USA"
type Event struct {
	Pos   Position
	Date  *Date
	Name  RawString
	Value RawString

	withComment
	withMetadata
}

var _ Directive = (*Event)(nil)

func (e *Event) Position() Position    { return e.Pos }
func (e *Event) GetDate() *Date        { return e.Date }
func (e *Event) DirectiveName() string { return "event" }
func (e *Event) Kind() Kind            { return KindEvent }

func (e *Event) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, e.Date.String())},
		{Child: NewToken(TokKeyword, "event")},
		{Child: NewToken(TokString, e.Name.Value)},
		{Child: NewToken(TokString, e.Value.Value)},
		{Child: NewToken(TokEol, "")},
	}
	if e.InlineComment != nil {
		edges = append(edges, Edge{Child: e.InlineComment})
	}
	return append(edges, metadataEdges(e.Metadata)...)
}

// Query names a stored SQL-like query to run against the ledger.
//
//	2014-07-09 query "france-balances" "SELECT account, sum(position) ..."
type Query struct {
	Pos       Position
	Date      *Date
	QueryName RawString
	QueryText RawString

	withComment
	withMetadata
}

var _ Directive = (*Query)(nil)

func (q *Query) Position() Position    { return q.Pos }
func (q *Query) GetDate() *Date        { return q.Date }
func (q *Query) DirectiveName() string { return "query" }
func (q *Query) Kind() Kind            { return KindQuery }

func (q *Query) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, q.Date.String())},
		{Child: NewToken(TokKeyword, "query")},
		{Child: NewToken(TokString, q.QueryName.Value)},
		{Child: NewToken(TokString, q.QueryText.Value)},
		{Child: NewToken(TokEol, "")},
	}
	if q.InlineComment != nil {
		edges = append(edges, Edge{Child: q.InlineComment})
	}
	return append(edges, metadataEdges(q.Metadata)...)
}

// CustomValue is a single value in a Custom directive's payload: exactly
// one field is set.
type CustomValue struct {
	String  *string
	Boolean *bool
	Amount  *Amount
	Number  NumberExpr
}

// Custom is an escape hatch directive for plugin-defined data.
//
//	2014-07-09 custom "budget" "..." TRUE 45.30 USD
type Custom struct {
	Pos    Position
	Date   *Date
	Type   RawString
	Values []*CustomValue

	withComment
	withMetadata
}

var _ Directive = (*Custom)(nil)

func (c *Custom) Position() Position    { return c.Pos }
func (c *Custom) GetDate() *Date        { return c.Date }
func (c *Custom) DirectiveName() string { return "custom" }
func (c *Custom) Kind() Kind            { return KindCustom }

func (c *Custom) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, c.Date.String())},
		{Child: NewToken(TokKeyword, "custom")},
		{Child: NewToken(TokString, c.Type.Value)},
	}
	for _, v := range c.Values {
		switch {
		case v.String != nil:
			edges = append(edges, Edge{Child: NewToken(TokString, *v.String)})
		case v.Boolean != nil:
			text := "FALSE"
			if *v.Boolean {
				text = "TRUE"
			}
			edges = append(edges, Edge{Child: NewToken(TokKeyword, text)})
		case v.Amount != nil:
			edges = append(edges, Edge{Child: v.Amount.Number}, Edge{Child: NewToken(TokCurrency, v.Amount.Currency)})
		case v.Number != nil:
			edges = append(edges, Edge{Child: v.Number})
		}
	}
	edges = append(edges, Edge{Child: NewToken(TokEol, "")})
	if c.InlineComment != nil {
		edges = append(edges, Edge{Child: c.InlineComment})
	}
	return append(edges, metadataEdges(c.Metadata)...)
}
