package termcore

import (
	"github.com/unilibs/uniwidth"
	"golang.org/x/text/width"
)

// runeWidth returns the display width: 2 for wide characters (CJK,
// fullwidth forms, emoji-presentation), 1 for normal, 0 for zero-width
// (combining marks, control chars). uniwidth does the bulk of the
// classification; any rune it reports as width 1 is also looked up in
// golang.org/x/text/width and counted as 2 if that table marks it
// East-Asian Wide or Fullwidth. Ambiguous-width runes (legacy
// box-drawing, accented Latin) stay at width 1.
func runeWidth(r rune) int {
	w := uniwidth.RuneWidth(r)
	if w != 1 {
		return w
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// isWideRune returns true if the rune occupies 2 columns.
func isWideRune(r rune) bool {
	return runeWidth(r) == 2
}

// StringWidth returns the total display width of a string (sum of rune widths).
func StringWidth(s string) int {
	total := 0
	for _, r := range s {
		total += runeWidth(r)
	}
	return total
}
