package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDateRoundTrip(t *testing.T) {
	d, err := NewDate("2021-03-04")
	assert.NoError(t, err)
	assert.Equal(t, "2021-03-04", d.String())
	assert.False(t, d.IsZero())
}

func TestDateInvalid(t *testing.T) {
	_, err := NewDate("not-a-date")
	assert.Error(t, err)
}

func TestNilDateIsZero(t *testing.T) {
	var d *Date
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())
}

func TestItemNodeSelectsPopulatedField(t *testing.T) {
	date, err := NewDate("2021-01-01")
	assert.NoError(t, err)

	directiveItem := &Item{Directive: &Open{Pos: Position{Line: 1}, Date: date, Account: "Assets:Foo"}}
	assert.Equal(t, KindOpen, directiveItem.Node().Kind())

	undatedItem := &Item{Undated: &Include{Pos: Position{Line: 2}, Filename: "foo.bean"}}
	assert.Equal(t, KindInclude, undatedItem.Node().Kind())

	commentItem := &Item{BlockComment: &Comment{Pos: Position{Line: 3}, Body: "hello", Type: BlockCommentType}}
	assert.Equal(t, KindBlockComment, commentItem.Node().Kind())

	assert.Zero(t, (&Item{}).Node())
}

func TestWithCommentAndMetadataPromotion(t *testing.T) {
	o := &Open{Account: "Assets:Foo"}

	assert.Zero(t, o.GetComment())
	c := &Comment{Body: "note", Type: InlineCommentType}
	o.SetComment(c)
	assert.Equal(t, c, o.GetComment())

	assert.Equal(t, 0, len(o.GetMetadata()))
	m := &MetaItem{Key: "category"}
	o.AddMetadata(m)
	assert.Equal(t, 1, len(o.GetMetadata()))
	assert.Equal(t, m, o.GetMetadata()[0])
}

func TestDirectiveKindsAreDistinct(t *testing.T) {
	date, _ := NewDate("2021-01-01")
	directives := []Directive{
		&Open{Date: date},
		&Close{Date: date},
		&Balance{Date: date},
		&Pad{Date: date},
		&Commodity{Date: date},
		&Transaction{Date: date, Flag: "*"},
	}

	seen := map[Kind]bool{}
	for _, d := range directives {
		assert.False(t, seen[d.Kind()], "duplicate Kind for %T", d)
		seen[d.Kind()] = true
		assert.Equal(t, date, d.GetDate())
	}
}
