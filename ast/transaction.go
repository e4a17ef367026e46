package ast

// Transaction records a financial transaction with a date, flag, optional
// payee, narration, and a list of postings. The flag indicates transaction
// status: '*' for cleared/complete transactions, '!' for pending/uncleared
// transactions, or 'P' for automatically generated padding transactions.
// Tags and links categorize and connect related transactions.
//
//	2014-05-05 * "Cafe Mogador" "Lamb tagine with wine" #dinner ^receipt-001
//	  Liabilities:CreditCard:CapitalOne         -37.45 USD
//	  Expenses:Food:Restaurant
type Transaction struct {
	Pos       Position
	Date      *Date
	Flag      string
	Payee     RawString // empty (IsEmpty) when the transaction has no payee
	Narration RawString
	Links     []Link
	Tags      []Tag

	withComment
	withMetadata

	Postings []*Posting
}

var _ Directive = (*Transaction)(nil)

func (t *Transaction) Position() Position    { return t.Pos }
func (t *Transaction) GetDate() *Date        { return t.Date }
func (t *Transaction) DirectiveName() string { return "transaction" }
func (t *Transaction) Kind() Kind            { return KindTransaction }

func (t *Transaction) ChildrenFormatted() []Edge {
	edges := []Edge{
		{Child: NewToken(TokDate, t.Date.String())},
		{Child: NewToken(TokFlag, t.Flag)},
	}
	if !t.Payee.IsEmpty() {
		edges = append(edges, Edge{Child: NewToken(TokString, t.Payee.Value)})
	}
	if !t.Narration.IsEmpty() || !t.Payee.IsEmpty() {
		edges = append(edges, Edge{Child: NewToken(TokString, t.Narration.Value)})
	}
	for _, tag := range t.Tags {
		edges = append(edges, Edge{Child: NewToken(TokTag, string(tag))})
	}
	for _, link := range t.Links {
		edges = append(edges, Edge{Child: NewToken(TokLink, string(link))})
	}
	edges = append(edges, Edge{Child: NewToken(TokEol, "")})
	if t.InlineComment != nil {
		edges = append(edges, Edge{Child: t.InlineComment})
	}
	edges = append(edges, metadataEdges(t.Metadata)...)
	for _, p := range t.Postings {
		edges = append(edges, Edge{Child: p, Indented: true})
	}
	return edges
}

// Posting represents a single leg of a transaction, specifying an account
// and an optional amount, cost, and price. One posting in a transaction may
// omit its amount, leaving it to be inferred so the transaction balances to
// zero. Cost specifications ({...} / {{...}}) track the acquisition cost of
// commodities for capital-gains accounting; price specifications (@ / @@)
// record a conversion rate without affecting the cost basis.
//
//	Assets:Investments:Brokerage    10 HOOL {518.73 USD}  ; Purchase with cost
//	Assets:Investments:Cash        200 EUR @ 1.35 USD     ; Currency conversion
//	Expenses:Groceries              45.60 USD
//	Assets:Checking
type Posting struct {
	Pos        Position
	Flag       string // optional posting-level flag, empty when absent
	Account    Account
	Amount     *Amount // nil when the amount is to be inferred
	Cost       *Cost
	PriceTotal bool // true when the price was introduced with "@@" (total) rather than "@" (per-unit)
	Price      *Amount

	withComment
	withMetadata
}

var _ TreeNode = (*Posting)(nil)
var _ Positioned = (*Posting)(nil)

func (p *Posting) Position() Position { return p.Pos }
func (p *Posting) Kind() Kind         { return KindPosting }

func (p *Posting) ChildrenFormatted() []Edge {
	edges := []Edge{{Child: NewToken(TokIndent, "")}}
	if p.Flag != "" {
		edges = append(edges, Edge{Child: NewToken(TokFlag, p.Flag)})
	}
	edges = append(edges, Edge{Child: NewToken(TokAccount, string(p.Account))})
	if p.Amount != nil {
		edges = append(edges, Edge{Child: p.Amount.Number}, Edge{Child: NewToken(TokCurrency, p.Amount.Currency)})
	}
	if p.Cost != nil {
		edges = append(edges, Edge{Child: p.Cost})
	}
	if p.Price != nil {
		marker := "@"
		if p.PriceTotal {
			marker = "@@"
		}
		edges = append(edges, Edge{Child: NewToken(TokOperator, marker)})
		edges = append(edges, Edge{Child: p.Price.Number}, Edge{Child: NewToken(TokCurrency, p.Price.Currency)})
	}
	edges = append(edges, Edge{Child: NewToken(TokEol, "")})
	if p.InlineComment != nil {
		edges = append(edges, Edge{Child: p.InlineComment})
	}
	for _, m := range p.Metadata {
		edges = append(edges, Edge{Child: m, Indented: !m.Inline})
	}
	return edges
}
