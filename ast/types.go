package ast

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Account represents a Beancount account name consisting of at least two
// colon-separated segments. The first segment (account type) must be one of
// the five account categories: Assets, Liabilities, Equity, Income, or
// Expenses. Subsequent segments must start with an uppercase letter or digit.
type Account string

// accountSegmentRegex validates account segments (after the first).
var accountSegmentRegex = regexp.MustCompile(`^[A-Z0-9][A-Za-z0-9-]*$`)

// Validate reports whether the account name is well-formed.
func (a Account) Validate() error {
	parts := strings.Split(string(a), ":")
	if len(parts) < 2 {
		return fmt.Errorf("account must have at least two segments: %s", a)
	}
	switch parts[0] {
	case "Assets", "Liabilities", "Equity", "Income", "Expenses":
	default:
		return fmt.Errorf("unexpected account type %q", parts[0])
	}
	for i := 1; i < len(parts); i++ {
		if !accountSegmentRegex.MatchString(parts[i]) {
			return fmt.Errorf("invalid account segment at position %d: %s", i, parts[i])
		}
	}
	return nil
}

// Date represents a calendar date in ISO 8601 form (YYYY-MM-DD). All
// directives except undated ones (options, includes, plugins, pushtag,
// pushmeta, ...) carry one.
type Date struct {
	time.Time
}

// NewDate parses "2006-01-02" into a Date.
func NewDate(s string) (*Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %s", s)
	}
	return &Date{Time: t}, nil
}

// IsZero reports whether the Date is nil or the zero time. Nil-safe so that
// callers can check d.IsZero() on a possibly-nil pointer.
func (d *Date) IsZero() bool {
	return d == nil || d.Time.IsZero()
}

func (d *Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// Link is a reference starting with '^' used to connect related transactions.
type Link string

// Tag is a hashtag starting with '#' used to categorize transactions.
type Tag string

// RawString is a string literal payload. Value is the unescaped semantic
// text; formatting re-quotes and re-escapes it rather than preserving the
// original source bytes.
type RawString struct {
	Value string
	set   bool
}

// NewRawString wraps a semantic string value.
func NewRawString(v string) RawString {
	return RawString{Value: v, set: true}
}

// IsEmpty reports whether this RawString was never set (as opposed to set
// to the empty string).
func (r RawString) IsEmpty() bool { return !r.set }

func (r RawString) String() string { return r.Value }

// Amount is a numeric value together with its currency or commodity code.
// Number is preserved as an expression tree so that arithmetic written in
// the source (e.g. "(10 + 20) USD") survives formatting unevaluated.
type Amount struct {
	Number   NumberExpr
	Currency string
}

// Value returns the flattened textual form of the amount's number. Used by
// callers that only care about width, not about preserving expression
// structure.
func (a *Amount) Value() string {
	if a == nil || a.Number == nil {
		return ""
	}
	return a.Number.Text()
}

// Cost is the cost-basis annotation on a posting: {...} for unit cost, or
// {{...}} for total cost. An empty cost {} selects any lot automatically; a
// merge cost {*} averages all lots together.
type Cost struct {
	IsTotal bool
	IsMerge bool
	Amount  *Amount
	Date    *Date
	Label   string
}

// IsEmpty reports whether this is an empty cost specification {}.
func (c *Cost) IsEmpty() bool {
	return c != nil && !c.IsMerge && c.Amount == nil && c.Date == nil && c.Label == ""
}

func (c *Cost) Kind() Kind { return KindCost }

func (c *Cost) ChildrenFormatted() []Edge {
	if c == nil {
		return nil
	}
	var edges []Edge
	if c.Amount != nil {
		edges = append(edges, Edge{Child: c.Amount.Number})
		edges = append(edges, Edge{Child: NewToken(TokCurrency, c.Amount.Currency)})
	}
	if c.Date != nil {
		edges = append(edges, Edge{Child: NewToken(TokDate, c.Date.String())})
	}
	if c.Label != "" {
		edges = append(edges, Edge{Child: NewToken(TokString, c.Label)})
	}
	return edges
}

// MetadataValue is a discriminated union over the nine value types a
// metadata entry can hold: exactly one field is non-nil.
type MetadataValue struct {
	StringValue *RawString
	Date        *Date
	Account     *Account
	Currency    *string
	Tag         *Tag
	Link        *Link
	Number      NumberExpr
	Amount      *Amount
	Boolean     *bool
}

// MetaItem is a key/value pair attached to a directive, transaction or
// posting. Inline marks a metadata entry written on the same line as its
// owning posting (two spaces then "key: value") rather than on its own
// indented line.
type MetaItem struct {
	Pos     Position
	Key     string
	Value   *MetadataValue
	Comment *Comment
	Inline  bool
}

func (m *MetaItem) Position() Position { return m.Pos }
func (m *MetaItem) Kind() Kind         { return KindMetaItem }

func (m *MetaItem) ChildrenFormatted() []Edge {
	edges := []Edge{{Child: NewToken(TokMetaKey, m.Key)}}
	if m.Value != nil {
		edges = append(edges, metadataValueEdges(m.Value)...)
	}
	if m.Comment != nil {
		edges = append(edges, Edge{Child: m.Comment})
	}
	return edges
}

func metadataValueEdges(v *MetadataValue) []Edge {
	switch {
	case v.StringValue != nil:
		return []Edge{{Child: NewToken(TokString, v.StringValue.Value)}}
	case v.Date != nil:
		return []Edge{{Child: NewToken(TokDate, v.Date.String())}}
	case v.Account != nil:
		return []Edge{{Child: NewToken(TokAccount, string(*v.Account))}}
	case v.Currency != nil:
		return []Edge{{Child: NewToken(TokCurrency, *v.Currency)}}
	case v.Tag != nil:
		return []Edge{{Child: NewToken(TokTag, string(*v.Tag))}}
	case v.Link != nil:
		return []Edge{{Child: NewToken(TokLink, string(*v.Link))}}
	case v.Number != nil:
		return []Edge{{Child: v.Number}}
	case v.Amount != nil:
		return []Edge{{Child: v.Amount.Number}, {Child: NewToken(TokCurrency, v.Amount.Currency)}}
	case v.Boolean != nil:
		text := "FALSE"
		if *v.Boolean {
			text = "TRUE"
		}
		return []Edge{{Child: NewToken(TokKeyword, text)}}
	default:
		return nil
	}
}
