package format

import (
	"strings"
	"time"

	"github.com/beanfmt/beanfmt/ast"
	"github.com/shopspring/decimal"
)

var (
	magnitude1e8  = decimal.New(1, 8)
	magnitude1e10 = decimal.New(1, 10)
	magnitude1e13 = decimal.New(1, 13)
	magnitude1e16 = decimal.New(1, 16)

	micro = decimal.New(1, 6)
	milli = decimal.New(1, 3)
)

// entryTime extracts the optional "time" metadata tie-breaker from an
// entry's metadata list, normalized to microseconds since the Unix epoch
// (a clock-time string is taken as UTC on the entry's date). Returns (0, false) when the entry carries no usable
// time: prudent sort treats that as "unconstrained", not as midnight.
func entryTime(date *ast.Date, metadata []*ast.MetaItem) (int64, bool) {
	for _, m := range metadata {
		if m.Key != "time" || m.Value == nil {
			continue
		}
		if m.Value.StringValue != nil {
			return timeFromClockString(date, m.Value.StringValue.Value)
		}
		if m.Value.Number != nil {
			return timeFromMagnitude(m.Value.Number.Decimal())
		}
	}
	return 0, false
}

// timeFromClockString parses "%H:%M:%S" or "%H:%M", combines it with
// date in UTC, and returns floor(seconds * 1_000_000).
func timeFromClockString(date *ast.Date, s string) (int64, bool) {
	if date == nil {
		return 0, false
	}
	layout := "15:04:05"
	if strings.Count(s, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, false
	}
	combined := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	return combined.Unix() * 1_000_000, true
}

// timeFromMagnitude treats a decimal as a Unix timestamp whose unit is
// inferred from its magnitude: seconds, milliseconds, or already
// microseconds. Anything outside those three bands is rejected. Compared
// and scaled as decimal.Decimal throughout: timestamps in the upper bands
// exceed float64's 2^53 exact-integer range, so a float64 round trip would
// silently corrupt the tie-breaker.
func timeFromMagnitude(d decimal.Decimal) (int64, bool) {
	switch {
	case d.GreaterThanOrEqual(magnitude1e8) && d.LessThan(magnitude1e10):
		return d.Mul(micro).IntPart(), true
	case d.GreaterThanOrEqual(magnitude1e10) && d.LessThan(magnitude1e13):
		return d.Mul(milli).IntPart(), true
	case d.GreaterThanOrEqual(magnitude1e13) && d.LessThan(magnitude1e16):
		return d.IntPart(), true
	default:
		return 0, false
	}
}
