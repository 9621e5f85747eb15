package termcore

import "fmt"

// SnapshotDetail selects how much detail Snapshot includes per line.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text split into same-style runs.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is a point-in-time capture of the active screen, suitable
// for JSON serialization to a renderer process.
type Snapshot struct {
	Size   SnapshotSize   `json:"size"`
	Cursor SnapshotCursor `json:"cursor"`
	Lines  []SnapshotLine `json:"lines"`
}

// SnapshotSize holds terminal dimensions.
type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SnapshotCursor holds cursor position and render style.
type SnapshotCursor struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Visible bool   `json:"visible"`
	Blink   bool   `json:"blink"`
	Style   string `json:"style"`
}

// SnapshotLine is a single captured row.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Wrapped  bool              `json:"wrapped,omitempty"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

// SnapshotSegment is a run of cells sharing one style.
type SnapshotSegment struct {
	Text      string        `json:"text"`
	Fg        string        `json:"fg,omitempty"`
	Bg        string        `json:"bg,omitempty"`
	Attrs     SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink *SnapshotLink `json:"hyperlink,omitempty"`
}

// SnapshotCell is one fully-detailed cell.
type SnapshotCell struct {
	Char       string        `json:"char"`
	Fg         string        `json:"fg"`
	Bg         string        `json:"bg"`
	Attrs      SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  *SnapshotLink `json:"hyperlink,omitempty"`
	Wide       bool          `json:"wide,omitempty"`
	WideSpacer bool          `json:"wide_spacer,omitempty"`
}

// SnapshotAttrs is the JSON-friendly expansion of Attrs.
type SnapshotAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Dim           bool `json:"dim,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Blink         bool `json:"blink,omitempty"`
	Inverse       bool `json:"inverse,omitempty"`
	Hidden        bool `json:"hidden,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
}

// SnapshotLink is a resolved hyperlink reference.
type SnapshotLink struct {
	ID  string `json:"id,omitempty"`
	URI string `json:"uri"`
}

// Snapshot captures the active screen at the requested detail level.
// detail == SnapshotDetailText only reads row text (cheap enough for
// frequent polling); Styled and Full additionally resolve per-cell
// colors against the current palette.
func (s *State) Snapshot(detail SnapshotDetail) *Snapshot {
	s.mu.RLock()
	rows, cols := s.rows, s.cols
	cur := s.cursor
	s.mu.RUnlock()

	snap := &Snapshot{
		Size: SnapshotSize{Rows: rows, Cols: cols},
		Cursor: SnapshotCursor{
			Row:     cur.Row,
			Col:     cur.Col,
			Visible: cur.Visible,
			Blink:   cur.Blink,
			Style:   cursorStyleToString(cur.Style),
		},
		Lines: make([]SnapshotLine, rows),
	}
	for row := 0; row < rows; row++ {
		snap.Lines[row] = s.snapshotLine(row, cols, detail)
	}
	return snap
}

func (s *State) snapshotLine(row, cols int, detail SnapshotDetail) SnapshotLine {
	s.mu.RLock()
	g := s.activeGrid()
	cells := make([]Cell, cols)
	for c := 0; c < cols; c++ {
		cells[c] = g.Get(row, c)
	}
	wrapped := g.IsWrapped(row)
	s.mu.RUnlock()

	line := SnapshotLine{Text: cellsToText(cells), Wrapped: wrapped}
	switch detail {
	case SnapshotDetailStyled:
		line.Segments = s.lineToSegments(cells)
	case SnapshotDetailFull:
		line.Cells = s.lineToCells(cells)
	}
	return line
}

func cellsToText(cells []Cell) string {
	out := make([]rune, 0, len(cells))
	for _, c := range cells {
		if c.IsWideContinuation {
			continue
		}
		ch := c.Char
		if ch == 0 {
			ch = ' '
		}
		out = append(out, ch)
	}
	return string(out)
}

func (s *State) lineToSegments(cells []Cell) []SnapshotSegment {
	var segments []SnapshotSegment
	var current *SnapshotSegment
	var chars []rune

	flush := func() {
		if current != nil && len(chars) > 0 {
			current.Text = string(chars)
			segments = append(segments, *current)
		}
	}

	for _, cell := range cells {
		if cell.IsWideContinuation {
			continue
		}
		fg := s.colorToHex(cell.Fg)
		bg := s.colorToHex(cell.Bg)
		attrs := attrsToSnapshot(cell.Attrs)
		link := s.cellHyperlink(cell)

		if current == nil || !segmentMatches(current, fg, bg, attrs, link) {
			flush()
			current = &SnapshotSegment{Fg: fg, Bg: bg, Attrs: attrs, Hyperlink: link}
			chars = nil
		}
		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}
		chars = append(chars, ch)
	}
	flush()
	return segments
}

func (s *State) lineToCells(cells []Cell) []SnapshotCell {
	out := make([]SnapshotCell, 0, len(cells))
	for _, cell := range cells {
		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}
		out = append(out, SnapshotCell{
			Char:       string(ch),
			Fg:         s.colorToHex(cell.Fg),
			Bg:         s.colorToHex(cell.Bg),
			Attrs:      attrsToSnapshot(cell.Attrs),
			Hyperlink:  s.cellHyperlink(cell),
			Wide:       cell.IsWide,
			WideSpacer: cell.IsWideContinuation,
		})
	}
	return out
}

func segmentMatches(seg *SnapshotSegment, fg, bg string, attrs SnapshotAttrs, link *SnapshotLink) bool {
	if seg.Fg != fg || seg.Bg != bg || seg.Attrs != attrs {
		return false
	}
	if seg.Hyperlink == nil && link == nil {
		return true
	}
	if seg.Hyperlink == nil || link == nil {
		return false
	}
	return *seg.Hyperlink == *link
}

func (s *State) colorToHex(c Color) string {
	rgb := s.ResolveCellColor(c, true)
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

func (s *State) cellHyperlink(cell Cell) *SnapshotLink {
	if !cell.HasHyperlink() {
		return nil
	}
	hl, ok := s.Hyperlink(cell.HyperlinkID)
	if !ok {
		return nil
	}
	return &SnapshotLink{ID: hl.ID, URI: hl.URI}
}

func attrsToSnapshot(a Attrs) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:          a&AttrBold != 0,
		Dim:           a&AttrDim != 0,
		Italic:        a&AttrItalic != 0,
		Underline:     a&underlineAttrs != 0,
		Blink:         a&AttrBlink != 0,
		Inverse:       a&AttrInverse != 0,
		Hidden:        a&AttrHidden != 0,
		Strikethrough: a&AttrStrikethrough != 0,
	}
}

func cursorStyleToString(style CursorStyle) string {
	switch style {
	case CursorStyleUnderline:
		return "underline"
	case CursorStyleBar:
		return "bar"
	default:
		return "block"
	}
}
