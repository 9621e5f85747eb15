package termcore

// CursorStyle is the shape the cursor renders as (DECSCUSR selects
// both the shape and Blink together; this module never animates Blink
// itself -- the renderer owns any blink timer).
type CursorStyle int

const (
	CursorStyleBlock CursorStyle = iota
	CursorStyleUnderline
	CursorStyleBar
)

// Cursor tracks position and render style, 0-based. Visible is driven
// strictly by DEC private mode 25 (show/hide); Blink is a style
// attribute selected by DECSCUSR, not a ticking animation state --
// the renderer owns the blink timer. PendingWrap is DECAWM's deferred
// wrap flag: set when a Print fills the last column, consulted and
// cleared by the next Print, and cleared by any other cursor motion.
type Cursor struct {
	Row         int
	Col         int
	Style       CursorStyle
	Visible     bool
	Blink       bool
	PendingWrap bool
}

// NewCursor returns a cursor at (0,0), block style, visible, blinking
// -- the DEC/xterm power-on default.
func NewCursor() Cursor {
	return Cursor{Style: CursorStyleBlock, Visible: true, Blink: true}
}

// Charset selects a character-set variant for one of the G0-G3 slots.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)

// CharsetIndex selects one of the four character-set slots.
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)

// SGRState is the current graphic-rendition state applied to newly
// written cells: foreground/background color, attribute bitset, and
// active hyperlink. Mutated by SGR (CSI ... m) sequences.
type SGRState struct {
	Fg                Color
	Bg                Color
	Attrs             Attrs
	UnderlineColor    Color
	HasUnderlineColor bool
	HyperlinkID       uint64
}

// NewSGRState returns the default graphic-rendition state: default
// colors, no attributes, no active hyperlink.
func NewSGRState() SGRState {
	return SGRState{Fg: DefaultFg, Bg: DefaultBg}
}

// cell returns a Cell carrying this SGR state and the given rune.
func (s SGRState) cell(r rune) Cell {
	return Cell{
		Char:              r,
		Fg:                s.Fg,
		Bg:                s.Bg,
		Attrs:             s.Attrs,
		UnderlineColor:    s.UnderlineColor,
		HasUnderlineColor: s.HasUnderlineColor,
		HyperlinkID:       s.HyperlinkID,
	}
}

// SavedCursor stores cursor position, current SGR state, active
// charset, origin-mode flag, and pending-wrap state, restored by
// DECRC (ESC 8 / CSI u).
type SavedCursor struct {
	Row          int
	Col          int
	SGR          SGRState
	OriginMode   bool
	CharsetIndex CharsetIndex
	Charsets     [4]Charset
	PendingWrap  bool
}
