package parser_test

import (
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/beanfmt/beanfmt/ast"
	"github.com/beanfmt/beanfmt/parser"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := parser.ParseString(context.Background(), "test.beancount", src)
	assert.NoError(t, err)
	return file
}

func TestParseOpen(t *testing.T) {
	file := mustParse(t, `2014-05-01 open Assets:US:BofA:Checking USD
`)
	assert.Equal(t, 1, len(file.Items))
	open, ok := file.Items[0].Directive.(*ast.Open)
	assert.True(t, ok)
	assert.Equal(t, ast.Account("Assets:US:BofA:Checking"), open.Account)
	assert.Equal(t, []string{"USD"}, open.ConstraintCurrencies)
}

func TestParseBalanceWithExpression(t *testing.T) {
	file := mustParse(t, `2014-08-09 balance Assets:US:BofA:Checking (500.00 + 62.00) USD
`)
	bal := file.Items[0].Directive.(*ast.Balance)
	assert.Equal(t, "USD", bal.Amount.Currency)
	assert.Equal(t, "(500.00 + 62.00)", bal.Amount.Number.Text())
	assert.Equal(t, "562", bal.Amount.Number.Decimal().String())
}

func TestParseTransactionWithPostings(t *testing.T) {
	file := mustParse(t, `2014-05-05 * "Cafe Mogador" "Lamb tagine with wine"
  Liabilities:CreditCard:CapitalOne         -37.45 USD
  Expenses:Food:Restaurant
`)
	txn := file.Items[0].Directive.(*ast.Transaction)
	assert.Equal(t, "*", txn.Flag)
	assert.Equal(t, "Cafe Mogador", txn.Payee.Value)
	assert.Equal(t, "Lamb tagine with wine", txn.Narration.Value)
	assert.Equal(t, 2, len(txn.Postings))
	assert.Equal(t, ast.Account("Liabilities:CreditCard:CapitalOne"), txn.Postings[0].Account)
	assert.Zero(t, txn.Postings[1].Amount)
}

func TestParsePostingWithCostAndPrice(t *testing.T) {
	file := mustParse(t, `2014-05-05 * "Buy stock"
  Assets:Investments:Brokerage    10 HOOL {518.73 USD} @ 520.00 USD
  Assets:Cash
`)
	txn := file.Items[0].Directive.(*ast.Transaction)
	p := txn.Postings[0]
	assert.Equal(t, "HOOL", p.Amount.Currency)
	assert.NotZero(t, p.Cost)
	assert.Equal(t, "518.73", p.Cost.Amount.Number.Text())
	assert.NotZero(t, p.Price)
	assert.False(t, p.PriceTotal)
}

func TestParseMetadataAndComment(t *testing.T) {
	file := mustParse(t, `2014-01-01 commodity USD  ; US Dollar
  name: "US Dollar"
  precision: 2
`)
	c := file.Items[0].Directive.(*ast.Commodity)
	assert.NotZero(t, c.InlineComment)
	assert.Equal(t, "US Dollar", c.InlineComment.Body)
	assert.Equal(t, 2, len(c.Metadata))
	assert.Equal(t, "name", c.Metadata[0].Key)
	assert.Equal(t, "US Dollar", c.Metadata[0].Value.StringValue.Value)
}

func TestParseUndatedClauses(t *testing.T) {
	file := mustParse(t, `option "title" "Test Ledger"
include "accounts.beancount"
pushtag #trip
poptag #trip
`)
	assert.Equal(t, 4, len(file.Items))
	_, ok := file.Items[0].Undated.(*ast.Option)
	assert.True(t, ok)
	_, ok = file.Items[1].Undated.(*ast.Include)
	assert.True(t, ok)
}

func TestParseBlockComment(t *testing.T) {
	file := mustParse(t, `; a standalone remark
2014-01-01 commodity USD
`)
	assert.NotZero(t, file.Items[0].BlockComment)
	assert.Equal(t, "a standalone remark", file.Items[0].BlockComment.Body)
}
