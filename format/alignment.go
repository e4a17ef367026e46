package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column measures the display width of buf's current (last, still-open)
// line, the way a terminal or a fixed-width text file would count it.
// Using go-runewidth rather than len() keeps alignment correct for
// East-Asian wide characters that can legitimately appear in payees,
// narrations and comments.
func column(buf *strings.Builder) int {
	s := buf.String()
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return runewidth.StringWidth(s)
}

// padToColumn writes spaces to buf until its current line reaches target.
// Padding is only ever added, never removed: if the line has already passed
// target, padToColumn writes exactly one space and alignment for that line
// is simply lost, matching the "padding added, never removed" invariant.
func padToColumn(buf *strings.Builder, target int) {
	if target <= 0 {
		buf.WriteByte(' ')
		return
	}
	cur := column(buf)
	if cur >= target {
		buf.WriteByte(' ')
		return
	}
	buf.WriteString(strings.Repeat(" ", target-cur))
}

// padRight pads s with trailing spaces to at least width columns wide.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// padLeft pads s with leading spaces to at least width columns wide.
func padLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
