package termcore

// ColorKind discriminates the tagged Color variant.
type ColorKind uint8

const (
	ColorDefaultForeground ColorKind = iota
	ColorDefaultBackground
	ColorAnsi
	ColorPalette256
	ColorTrueColor
)

// Color is a closed tagged variant: default fg/bg, one of the 16 ANSI
// indices, one of the 256-color palette indices, or a 24-bit RGB
// triple. Resolving a Color to a concrete RGB value against the active
// palette is the renderer's job; see ResolveColor for the reference
// table this module ships for that purpose.
type Color struct {
	Kind  ColorKind
	Index uint8 // valid for ColorAnsi (0-15) and ColorPalette256 (0-255)
	R, G, B uint8 // valid for ColorTrueColor
}

// DefaultFg and DefaultBg are the zero-value colors new cells start with.
var (
	DefaultFg = Color{Kind: ColorDefaultForeground}
	DefaultBg = Color{Kind: ColorDefaultBackground}
)

// Ansi returns the Color for standard/bright ANSI index n (0-15).
func Ansi(n uint8) Color { return Color{Kind: ColorAnsi, Index: n} }

// Palette256 returns the Color for 256-color palette index n.
func Palette256(n uint8) Color { return Color{Kind: ColorPalette256, Index: n} }

// TrueColor returns the Color for an exact 24-bit RGB triple.
func TrueColor(r, g, b uint8) Color { return Color{Kind: ColorTrueColor, R: r, G: g, B: b} }

// Attrs is a bitset of SGR text attributes.
type Attrs uint16

const (
	AttrBold Attrs = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrDoubleUnderline
	AttrCurlyUnderline
	AttrDottedUnderline
	AttrDashedUnderline
	AttrBlink
	AttrInverse
	AttrHidden
	AttrStrikethrough
)

// underlineAttrs is every attribute bit that represents some flavor of
// underline; at most one should be set at a time.
const underlineAttrs = AttrUnderline | AttrDoubleUnderline | AttrCurlyUnderline |
	AttrDottedUnderline | AttrDashedUnderline

// Hyperlink associates a cell with a clickable link (OSC 8).
type Hyperlink struct {
	ID  string
	URI string
}

// Cell is one screen position: a base Unicode scalar (combining marks
// are out of scope for v1 and are treated as standalone Prints),
// foreground/background color, attribute bitset, wide-character
// flags, and an optional hyperlink reference.
type Cell struct {
	Char                rune
	Fg                   Color
	Bg                   Color
	UnderlineColor       Color
	HasUnderlineColor    bool
	Attrs                Attrs
	IsWide               bool // occupies two columns
	IsWideContinuation   bool // right half of a wide cell; carries no glyph
	HyperlinkID          uint64
	Dirty                bool
}

// blankCell is the default cell value: a space with default colors, no
// attributes. Kept as a package value so NewCell/Reset never allocate.
var blankCell = Cell{Char: ' ', Fg: DefaultFg, Bg: DefaultBg}

// NewCell returns a cell initialized to the default state: a space
// with default colors and no attributes.
func NewCell() Cell {
	return blankCell
}

// Reset restores the cell to its default state (space, default colors,
// no attributes, no hyperlink) and marks it dirty.
func (c *Cell) Reset() {
	*c = blankCell
	c.Dirty = true
}

// HasAttr returns true if the given attribute bit is set.
func (c *Cell) HasAttr(a Attrs) bool { return c.Attrs&a != 0 }

// SetAttr enables the given attribute bit without affecting others.
func (c *Cell) SetAttr(a Attrs) { c.Attrs |= a }

// ClearAttr disables the given attribute bit without affecting others.
func (c *Cell) ClearAttr(a Attrs) { c.Attrs &^= a }

// HasHyperlink reports whether the cell carries a hyperlink reference.
func (c *Cell) HasHyperlink() bool { return c.HyperlinkID != 0 }
