package termcore

import (
	"sync"

	"github.com/rs/zerolog"
)

const (
	// DefaultRows and DefaultCols are the power-on grid dimensions.
	DefaultRows = 24
	DefaultCols = 80
	// DefaultScrollbackLimit is the scrollback capacity when the
	// caller doesn't specify one via WithScrollbackLimit.
	DefaultScrollbackLimit = 10000
)

// State owns the primary and alternate Grid, cursor, saved cursor,
// modes, scroll region, tab stops, current SGR, scrollback, window
// title, shell-integration sidecar, and the needs_display flag. It is
// mutated by exactly one logical owner (an Emulator); every other
// access -- including a concurrent renderer -- goes through the
// embedded mutex, so State itself is safe for concurrent use.
type State struct {
	mu sync.RWMutex

	rows, cols int

	primary   *Grid
	alternate *Grid

	cursor      Cursor
	savedCursor *SavedCursor

	modes         Modes
	mouseMode     MouseReportingMode
	mouseEncoding MouseEncoding

	scrollTop, scrollBottom int

	tabStops []bool

	sgr SGRState

	charsets      [4]Charset
	activeCharset CharsetIndex

	scrollback ScrollbackProvider

	palette [256]RGB

	title      string
	titleStack []string

	bellCount uint64

	needsDisplay bool

	shellIntegration ShellIntegrationState

	hyperlinks      map[uint64]Hyperlink
	nextHyperlinkID uint64

	logger zerolog.Logger
}

// Option configures a State during construction.
type Option func(*State)

// WithSize sets the initial grid dimensions. Values <= 0 fall back to
// DefaultRows/DefaultCols.
func WithSize(rows, cols int) Option {
	return func(s *State) {
		if rows > 0 {
			s.rows = rows
		}
		if cols > 0 {
			s.cols = cols
		}
	}
}

// WithScrollbackLimit sets the maximum number of primary-screen rows
// retained in scrollback. 0 disables scrollback retention.
func WithScrollbackLimit(limit int) Option {
	return func(s *State) {
		s.scrollback = NewMemoryScrollback(limit)
	}
}

// WithScrollbackProvider installs a custom ScrollbackProvider (e.g.
// disk-backed) instead of the built-in MemoryScrollback.
func WithScrollbackProvider(p ScrollbackProvider) Option {
	return func(s *State) { s.scrollback = p }
}

// WithLogger injects a structured logger. Defaults to zerolog.Nop(),
// so State is silent unless a caller opts in.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *State) { s.logger = logger }
}

// NewState constructs a State at DefaultRows x DefaultCols with
// wraparound on, cursor visible and blinking, full-screen scroll
// region, tab stops every 8 columns, and a default scrollback of
// DefaultScrollbackLimit rows.
func NewState(opts ...Option) *State {
	s := &State{
		rows:   DefaultRows,
		cols:   DefaultCols,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scrollback == nil {
		s.scrollback = NewMemoryScrollback(DefaultScrollbackLimit)
	}

	s.primary = NewGrid(s.rows, s.cols)
	s.alternate = NewGrid(s.rows, s.cols)
	s.cursor = NewCursor()
	s.modes = ModeWraparound
	s.sgr = NewSGRState()
	s.scrollTop = 0
	s.scrollBottom = s.rows - 1
	s.tabStops = defaultTabStops(s.cols)
	s.palette = DefaultPalette
	s.hyperlinks = make(map[uint64]Hyperlink)
	s.nextHyperlinkID = 1
	return s
}

func defaultTabStops(cols int) []bool {
	stops := make([]bool, cols)
	for c := 0; c < cols; c += 8 {
		stops[c] = true
	}
	return stops
}

// activeGrid returns the alternate grid when alternate-screen mode is
// set, else the primary grid. Callers must hold mu.
func (s *State) activeGrid() *Grid {
	if s.modes.Has(ModeAlternateScreen) {
		return s.alternate
	}
	return s.primary
}

// --- Read accessors ---

// Rows returns the current grid height.
func (s *State) Rows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// Cols returns the current grid width.
func (s *State) Cols() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cols
}

// Cell returns the cell at (r,c) in the active grid.
func (s *State) Cell(r, c int) Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeGrid().Get(r, c)
}

// Cursor returns a copy of the current cursor.
func (s *State) Cursor() Cursor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// Modes returns the current mode bitmask.
func (s *State) Modes() Modes {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modes
}

// HasMode reports whether every bit in want is set.
func (s *State) HasMode(want Modes) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modes.Has(want)
}

// MouseReporting returns the active mouse-reporting mode and encoding.
func (s *State) MouseReporting() (MouseReportingMode, MouseEncoding) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mouseMode, s.mouseEncoding
}

// ScrollRegion returns the current (top, bottom) inclusive scroll
// region.
func (s *State) ScrollRegion() (top, bottom int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scrollTop, s.scrollBottom
}

// IsAlternateScreen reports whether the alternate buffer is active.
func (s *State) IsAlternateScreen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modes.Has(ModeAlternateScreen)
}

// NeedsDisplay reports whether a redraw-worthy mutation happened since
// the last call, and clears the flag (clear-on-observe).
func (s *State) NeedsDisplay() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.needsDisplay
	s.needsDisplay = false
	return v
}

// PeekNeedsDisplay reports the flag without clearing it.
func (s *State) PeekNeedsDisplay() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.needsDisplay
}

// BellCount returns the monotonic bell counter.
func (s *State) BellCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bellCount
}

// WindowTitle returns the current window title.
func (s *State) WindowTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

// ShellIntegration returns a copy of the shell-integration sidecar.
func (s *State) ShellIntegration() ShellIntegrationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shellIntegration
}

// ScrollbackLen returns the number of rows retained in scrollback.
func (s *State) ScrollbackLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scrollback.Len()
}

// ScrollbackLine returns scrollback row index (0 = oldest), or nil if
// out of range.
func (s *State) ScrollbackLine(index int) []Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scrollback.Line(index)
}

// Hyperlink resolves a cell's hyperlink id to its URI, if any.
func (s *State) Hyperlink(id uint64) (Hyperlink, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hyperlinks[id]
	return h, ok
}

// GetVisibleText concatenates the active grid's base characters,
// row by row, one '\n' per row, skipping wide-continuation cells.
func (s *State) GetVisibleText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g := s.activeGrid()
	var out []rune
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := g.Get(r, c)
			if cell.IsWideContinuation {
				continue
			}
			out = append(out, cell.Char)
		}
		out = append(out, '\n')
	}
	return string(out)
}

// --- Lifecycle mutators ---

// markDirty sets needs_display. Callers must hold mu (write-locked).
func (s *State) markDirty() { s.needsDisplay = true }

// Resize resizes both grids, clamps cursor and saved-cursor positions,
// resets the scroll region to the full grid, and rebuilds tab stops.
// Scrollback content is untouched.
func (s *State) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.primary.Resize(rows, cols)
	s.alternate.Resize(rows, cols)
	s.rows, s.cols = rows, cols
	s.cursor.Row = clamp(s.cursor.Row, 0, rows-1)
	s.cursor.Col = clamp(s.cursor.Col, 0, cols-1)
	s.cursor.PendingWrap = false
	if s.savedCursor != nil {
		s.savedCursor.Row = clamp(s.savedCursor.Row, 0, rows-1)
		s.savedCursor.Col = clamp(s.savedCursor.Col, 0, cols-1)
	}
	s.scrollTop = 0
	s.scrollBottom = rows - 1
	s.tabStops = defaultTabStops(cols)
	s.markDirty()
}

// ClearActive clears the active grid and moves the cursor to (0,0).
func (s *State) ClearActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeGrid().Clear(s.sgr.cell(' '))
	s.cursor.Row, s.cursor.Col = 0, 0
	s.cursor.PendingWrap = false
	s.markDirty()
}

// ClearScrollback empties scrollback.
func (s *State) ClearScrollback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollback.Clear()
}

// FullReset (RIS) clears both grids and scrollback, resets the cursor
// to (0,0) block/visible/blinking, resets all modes to their initial
// values (wraparound on, everything else off), resets the scroll
// region to the full grid, resets SGR to defaults, and rebuilds tab
// stops.
func (s *State) FullReset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.primary.Clear(NewCell())
	s.alternate.Clear(NewCell())
	s.scrollback.Clear()
	s.cursor = NewCursor()
	s.savedCursor = nil
	s.modes = ModeWraparound
	s.mouseMode = MouseReportingNone
	s.mouseEncoding = MouseEncodingX10
	s.scrollTop = 0
	s.scrollBottom = s.rows - 1
	s.sgr = NewSGRState()
	s.tabStops = defaultTabStops(s.cols)
	s.title = ""
	s.titleStack = nil
	s.charsets = [4]Charset{}
	s.activeCharset = CharsetIndexG0
	s.hyperlinks = make(map[uint64]Hyperlink)
	s.nextHyperlinkID = 1
	s.shellIntegration = ShellIntegrationState{}
	s.markDirty()
}

// MoveCursor clamps (r,c) to the active grid's bounds and moves the
// cursor there. When origin mode is on, (r,c) is interpreted relative
// to the scroll region and cannot escape it.
func (s *State) MoveCursor(r, c int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveCursorLocked(r, c)
}

func (s *State) moveCursorLocked(r, c int) {
	if s.modes.Has(ModeOrigin) {
		r += s.scrollTop
		r = clamp(r, s.scrollTop, s.scrollBottom)
	} else {
		r = clamp(r, 0, s.rows-1)
	}
	s.cursor.Row = r
	s.cursor.Col = clamp(c, 0, s.cols-1)
	s.cursor.PendingWrap = false
	s.markDirty()
}

// SaveCursor (DECSC) saves position, current SGR, active charset, and
// origin-mode flag.
func (s *State) SaveCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := SavedCursor{
		Row:          s.cursor.Row,
		Col:          s.cursor.Col,
		SGR:          s.sgr,
		OriginMode:   s.modes.Has(ModeOrigin),
		CharsetIndex: s.activeCharset,
		Charsets:     s.charsets,
		PendingWrap:  s.cursor.PendingWrap,
	}
	s.savedCursor = &saved
}

// RestoreCursor (DECRC) restores a prior SaveCursor; a no-op if there
// was none.
func (s *State) RestoreCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.savedCursor == nil {
		return
	}
	sc := *s.savedCursor
	s.cursor.Row = clamp(sc.Row, 0, s.rows-1)
	s.cursor.Col = clamp(sc.Col, 0, s.cols-1)
	s.cursor.PendingWrap = sc.PendingWrap
	s.sgr = sc.SGR
	s.activeCharset = sc.CharsetIndex
	s.charsets = sc.Charsets
	if sc.OriginMode {
		s.modes |= ModeOrigin
	} else {
		s.modes &^= ModeOrigin
	}
	s.markDirty()
}

// AppendScrollback pushes row to the scrollback tail (primary screen
// only -- the Emulator never calls this while the alternate screen is
// active).
func (s *State) AppendScrollback(row []Cell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollback.Push(row)
}

// --- Tab stops ---

// SetTab marks column c as a tab stop.
func (s *State) SetTab(c int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c >= 0 && c < len(s.tabStops) {
		s.tabStops[c] = true
	}
}

// ClearTab removes the tab stop at column c.
func (s *State) ClearTab(c int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c >= 0 && c < len(s.tabStops) {
		s.tabStops[c] = false
	}
}

// ClearAllTabs removes every tab stop.
func (s *State) ClearAllTabs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tabStops {
		s.tabStops[i] = false
	}
}

// NextTabAfter returns the smallest tab stop strictly greater than c,
// or cols-1 if none.
func (s *State) NextTabAfter(c int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := c + 1; i < len(s.tabStops); i++ {
		if s.tabStops[i] {
			return i
		}
	}
	return s.cols - 1
}

// PrevTabBefore returns the largest tab stop strictly less than c, or
// 0 if none.
func (s *State) PrevTabBefore(c int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := c - 1; i >= 0; i-- {
		if s.tabStops[i] {
			return i
		}
	}
	return 0
}

// --- Cursor motion ---

// CursorUp moves the cursor up n rows, stopping at the scroll
// region's top (or row 0 if the cursor started above the region).
func (s *State) CursorUp(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	floor := 0
	if s.cursor.Row >= s.scrollTop {
		floor = s.scrollTop
	}
	s.cursor.Row = clamp(s.cursor.Row-n, floor, s.rows-1)
	s.cursor.PendingWrap = false
	s.markDirty()
}

// CursorDown moves the cursor down n rows, stopping at the scroll
// region's bottom (or the last row if the cursor started below it).
func (s *State) CursorDown(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ceil := s.rows - 1
	if s.cursor.Row <= s.scrollBottom {
		ceil = s.scrollBottom
	}
	s.cursor.Row = clamp(s.cursor.Row+n, 0, ceil)
	s.cursor.PendingWrap = false
	s.markDirty()
}

// CursorForward moves the cursor right n columns, clamped to the last
// column.
func (s *State) CursorForward(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Col = clamp(s.cursor.Col+n, 0, s.cols-1)
	s.cursor.PendingWrap = false
	s.markDirty()
}

// CursorBack moves the cursor left n columns, clamped to column 0.
func (s *State) CursorBack(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Col = clamp(s.cursor.Col-n, 0, s.cols-1)
	s.cursor.PendingWrap = false
	s.markDirty()
}

// CursorNextLine moves the cursor down n rows and to column 0.
func (s *State) CursorNextLine(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ceil := s.rows - 1
	if s.cursor.Row <= s.scrollBottom {
		ceil = s.scrollBottom
	}
	s.cursor.Row = clamp(s.cursor.Row+n, 0, ceil)
	s.cursor.Col = 0
	s.cursor.PendingWrap = false
	s.markDirty()
}

// CursorPrevLine moves the cursor up n rows and to column 0.
func (s *State) CursorPrevLine(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	floor := 0
	if s.cursor.Row >= s.scrollTop {
		floor = s.scrollTop
	}
	s.cursor.Row = clamp(s.cursor.Row-n, floor, s.rows-1)
	s.cursor.Col = 0
	s.cursor.PendingWrap = false
	s.markDirty()
}

// SetCursorCol moves the cursor to column c (0-based), same row.
func (s *State) SetCursorCol(c int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Col = clamp(c, 0, s.cols-1)
	s.cursor.PendingWrap = false
	s.markDirty()
}

// SetCursorColPendingWrap moves the cursor to column c and marks the
// wrap as pending: the next Print wraps to the next row (when
// wraparound is enabled) before writing, rather than relying on a
// sentinel column value SetCursorCol's clamp can never produce.
func (s *State) SetCursorColPendingWrap(c int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Col = clamp(c, 0, s.cols-1)
	s.cursor.PendingWrap = true
	s.markDirty()
}

// SetCursorRow moves the cursor to row r (0-based, relative to the
// scroll region when origin mode is set), same column.
func (s *State) SetCursorRow(r int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveCursorLocked(r, s.cursor.Col)
}

// CarriageReturn moves the cursor to column 0.
func (s *State) CarriageReturn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Col = 0
	s.cursor.PendingWrap = false
	s.markDirty()
}

// Backspace moves the cursor left one column, stopping at column 0.
func (s *State) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor.Col > 0 {
		s.cursor.Col--
	}
	s.cursor.PendingWrap = false
	s.markDirty()
}

// Tab advances the cursor to the next tab stop after its current
// column, or the last column if there is none.
func (s *State) Tab() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.PendingWrap = false
	for i := s.cursor.Col + 1; i < len(s.tabStops); i++ {
		if s.tabStops[i] {
			s.cursor.Col = i
			s.markDirty()
			return
		}
	}
	s.cursor.Col = s.cols - 1
	s.markDirty()
}

// BackTab moves the cursor back to the previous tab stop before its
// current column, or column 0 if there is none.
func (s *State) BackTab() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.PendingWrap = false
	for i := s.cursor.Col - 1; i >= 0; i-- {
		if s.tabStops[i] {
			s.cursor.Col = i
			s.markDirty()
			return
		}
	}
	s.cursor.Col = 0
	s.markDirty()
}

// --- Scrolling, line feed ---

// scrollActiveUp shifts the active grid's scroll region up by one,
// pushing the discarded top row to scrollback when the primary screen
// is active and the region's top is row 0 (matching xterm: only rows
// actually leaving the top of an unscrolled primary screen become
// scrollback). Callers must hold mu.
func (s *State) scrollActiveUp() {
	g := s.activeGrid()
	if !s.modes.Has(ModeAlternateScreen) && s.scrollTop == 0 {
		row := make([]Cell, s.cols)
		for c := 0; c < s.cols; c++ {
			row[c] = g.Get(0, c)
		}
		s.scrollback.Push(row)
	}
	g.ScrollUp(s.scrollTop, s.scrollBottom, s.sgr.cell(' '))
}

// LineFeed (LF) moves the cursor down one row, scrolling the active
// grid's scroll region up when the cursor is already at its bottom.
func (s *State) LineFeed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor.Row == s.scrollBottom {
		s.scrollActiveUp()
	} else if s.cursor.Row < s.rows-1 {
		s.cursor.Row++
	}
	s.cursor.PendingWrap = false
	s.markDirty()
}

// ReverseLineFeed (RI) moves the cursor up one row, scrolling the
// active grid's scroll region down when the cursor is already at its
// top.
func (s *State) ReverseLineFeed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor.Row == s.scrollTop {
		s.activeGrid().ScrollDown(s.scrollTop, s.scrollBottom, s.sgr.cell(' '))
	} else if s.cursor.Row > 0 {
		s.cursor.Row--
	}
	s.cursor.PendingWrap = false
	s.markDirty()
}

// ScrollUp scrolls the active grid's scroll region up by n, pushing
// discarded rows to scrollback per the same rule as LineFeed.
func (s *State) ScrollUp(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.scrollActiveUp()
	}
	s.markDirty()
}

// ScrollDown scrolls the active grid's scroll region down by n.
func (s *State) ScrollDown(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.activeGrid().ScrollDown(s.scrollTop, s.scrollBottom, s.sgr.cell(' '))
	}
	s.markDirty()
}

// SetScrollRegion sets the scroll region to [top,bottom] (0-based,
// inclusive), clamped to the grid and moves the cursor to the
// region's home position per DECSTBM.
func (s *State) SetScrollRegion(top, bottom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	top = clamp(top, 0, s.rows-1)
	bottom = clamp(bottom, 0, s.rows-1)
	if top >= bottom {
		s.scrollTop, s.scrollBottom = 0, s.rows-1
	} else {
		s.scrollTop, s.scrollBottom = top, bottom
	}
	if s.modes.Has(ModeOrigin) {
		s.cursor.Row, s.cursor.Col = s.scrollTop, 0
	} else {
		s.cursor.Row, s.cursor.Col = 0, 0
	}
	s.cursor.PendingWrap = false
	s.markDirty()
}

// --- Writing, erasing, insert/delete ---

// WriteCell writes r with the current SGR state at (row,col) of the
// active grid. Callers (the Emulator's Print handling) own width
// classification, wrapping, and insert-mode shifting; WriteCell just
// stores one cell.
func (s *State) WriteCell(row, col int, r rune, wide, wideCont bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cell := s.sgr.cell(r)
	cell.IsWide = wide
	cell.IsWideContinuation = wideCont
	s.activeGrid().Set(row, col, cell)
	s.markDirty()
}

// InsertBlanksAtCursor shifts cells from the cursor's column right by
// n within the current row, filling the gap with the current SGR
// background (ICH).
func (s *State) InsertBlanksAtCursor(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeGrid().InsertBlanks(s.cursor.Row, s.cursor.Col, n, s.sgr.cell(' '))
	s.markDirty()
}

// DeleteCellsAtCursor shifts cells left from the cursor's column by n
// within the current row (DCH).
func (s *State) DeleteCellsAtCursor(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeGrid().DeleteCells(s.cursor.Row, s.cursor.Col, n, s.sgr.cell(' '))
	s.markDirty()
}

// EraseCharsAtCursor overwrites n cells starting at the cursor with
// blanks, without shifting anything (ECH).
func (s *State) EraseCharsAtCursor(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeGrid().ClearRowRange(s.cursor.Row, s.cursor.Col, s.cursor.Col+n, s.sgr.cell(' '))
	s.markDirty()
}

// EraseLineMode selects which part of a line EraseInLine clears.
type EraseLineMode int

const (
	EraseLineToEnd   EraseLineMode = iota // ESC [ 0 K
	EraseLineToStart                      // ESC [ 1 K
	EraseLineAll                          // ESC [ 2 K
)

// EraseInLine clears part or all of the cursor's row (EL).
func (s *State) EraseInLine(mode EraseLineMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.activeGrid()
	fill := s.sgr.cell(' ')
	switch mode {
	case EraseLineToEnd:
		g.ClearRowRange(s.cursor.Row, s.cursor.Col, s.cols, fill)
	case EraseLineToStart:
		g.ClearRowRange(s.cursor.Row, 0, s.cursor.Col+1, fill)
	case EraseLineAll:
		g.ClearRow(s.cursor.Row, fill)
	}
	s.markDirty()
}

// EraseDisplayMode selects which part of the screen EraseInDisplay
// clears.
type EraseDisplayMode int

const (
	EraseDisplayToEnd     EraseDisplayMode = iota // ESC [ 0 J
	EraseDisplayToStart                           // ESC [ 1 J
	EraseDisplayAll                               // ESC [ 2 J
	EraseDisplayScrollback                        // ESC [ 3 J
)

// EraseInDisplay clears part or all of the active grid (ED). Clearing
// scrollback (mode 3) only affects the primary screen's scrollback.
func (s *State) EraseInDisplay(mode EraseDisplayMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.activeGrid()
	fill := s.sgr.cell(' ')
	switch mode {
	case EraseDisplayToEnd:
		g.ClearRowRange(s.cursor.Row, s.cursor.Col, s.cols, fill)
		for r := s.cursor.Row + 1; r < s.rows; r++ {
			g.ClearRow(r, fill)
		}
	case EraseDisplayToStart:
		g.ClearRowRange(s.cursor.Row, 0, s.cursor.Col+1, fill)
		for r := 0; r < s.cursor.Row; r++ {
			g.ClearRow(r, fill)
		}
	case EraseDisplayAll:
		g.Clear(fill)
	case EraseDisplayScrollback:
		if !s.modes.Has(ModeAlternateScreen) {
			s.scrollback.Clear()
		}
	}
	s.markDirty()
}

// InsertLines shifts rows from the cursor's row down within the
// scroll region by n, discarding rows pushed past the region's
// bottom (IL). A no-op when the cursor is outside the scroll region.
func (s *State) InsertLines(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	g := s.activeGrid()
	fill := s.sgr.cell(' ')
	for i := 0; i < n; i++ {
		g.ScrollDown(s.cursor.Row, s.scrollBottom, fill)
	}
	s.markDirty()
}

// DeleteLines shifts rows from below the cursor's row up within the
// scroll region by n, filling vacated rows at the bottom (DL). A
// no-op when the cursor is outside the scroll region.
func (s *State) DeleteLines(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	g := s.activeGrid()
	fill := s.sgr.cell(' ')
	for i := 0; i < n; i++ {
		g.ScrollUp(s.cursor.Row, s.scrollBottom, fill)
	}
	s.markDirty()
}

// --- Modes, SGR, charset ---

// SetMode sets or clears the given mode bits.
func (s *State) SetMode(mode Modes, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.modes |= mode
	} else {
		s.modes &^= mode
	}
	s.markDirty()
}

// EnterAlternateScreen switches to the alternate buffer, saving the
// primary cursor and optionally clearing the alternate screen first
// (DEC private mode 1049 semantics; mode 47/1047 never clear).
func (s *State) EnterAlternateScreen(clear bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modes.Has(ModeAlternateScreen) {
		return
	}
	saved := SavedCursor{
		Row: s.cursor.Row, Col: s.cursor.Col, SGR: s.sgr,
		OriginMode: s.modes.Has(ModeOrigin), CharsetIndex: s.activeCharset, Charsets: s.charsets,
		PendingWrap: s.cursor.PendingWrap,
	}
	s.savedCursor = &saved
	s.modes |= ModeAlternateScreen
	if clear {
		s.alternate.Clear(NewCell())
	}
	s.cursor.Row, s.cursor.Col = 0, 0
	s.cursor.PendingWrap = false
	s.markDirty()
}

// ExitAlternateScreen switches back to the primary buffer and restores
// the cursor saved by EnterAlternateScreen.
func (s *State) ExitAlternateScreen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.modes.Has(ModeAlternateScreen) {
		return
	}
	s.modes &^= ModeAlternateScreen
	if s.savedCursor != nil {
		sc := *s.savedCursor
		s.cursor.Row = clamp(sc.Row, 0, s.rows-1)
		s.cursor.Col = clamp(sc.Col, 0, s.cols-1)
		s.cursor.PendingWrap = sc.PendingWrap
		s.sgr = sc.SGR
		s.activeCharset = sc.CharsetIndex
		s.charsets = sc.Charsets
		s.savedCursor = nil
	}
	s.markDirty()
}

// SetMouseReporting sets the active mouse-tracking mode and encoding.
func (s *State) SetMouseReporting(mode MouseReportingMode, encoding MouseEncoding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mouseMode = mode
	s.mouseEncoding = encoding
}

// SGR returns a copy of the current graphic-rendition state.
func (s *State) SGR() SGRState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sgr
}

// SetSGR replaces the current graphic-rendition state wholesale; the
// Emulator computes the new state left-to-right from SGR parameters
// and commits it here in one step.
func (s *State) SetSGR(sgr SGRState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sgr = sgr
}

// SetCharset assigns a charset to one of the G0-G3 slots.
func (s *State) SetCharset(index CharsetIndex, cs Charset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && int(index) < len(s.charsets) {
		s.charsets[index] = cs
	}
}

// InvokeCharset selects which of the G0-G3 slots is active.
func (s *State) InvokeCharset(index CharsetIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeCharset = index
}

// ActiveCharset returns the charset currently selected for printing.
func (s *State) ActiveCharset() Charset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.charsets[s.activeCharset]
}

// SetCursorStyle sets the cursor's render style and blink flag
// (DECSCUSR).
func (s *State) SetCursorStyle(style CursorStyle, blink bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Style = style
	s.cursor.Blink = blink
	s.markDirty()
}

// SetCursorVisible sets cursor visibility (DEC private mode 25).
func (s *State) SetCursorVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Visible = visible
	s.markDirty()
}

// --- Bell, title, palette, hyperlinks ---

// Bell increments the bell counter.
func (s *State) Bell() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bellCount++
}

// SetTitle sets the window title (OSC 0/2).
func (s *State) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

// PushTitle pushes the current title onto the title stack.
func (s *State) PushTitle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titleStack = append(s.titleStack, s.title)
}

// PopTitle restores the most recently pushed title; a no-op if the
// stack is empty.
func (s *State) PopTitle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.titleStack) == 0 {
		return
	}
	n := len(s.titleStack) - 1
	s.title = s.titleStack[n]
	s.titleStack = s.titleStack[:n]
}

// SetPaletteColor overrides palette index idx (OSC 4).
func (s *State) SetPaletteColor(idx uint8, rgb RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palette[idx] = rgb
}

// ResetPaletteColor restores palette index idx to DefaultPalette's
// value.
func (s *State) ResetPaletteColor(idx uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palette[idx] = DefaultPalette[idx]
}

// ResetPalette restores the entire palette to DefaultPalette.
func (s *State) ResetPalette() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palette = DefaultPalette
}

// ResolveCellColor resolves c against this State's (possibly
// OSC-4-overridden) palette rather than the package-level
// DefaultPalette.
func (s *State) ResolveCellColor(c Color, fg bool) RGB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch c.Kind {
	case ColorTrueColor:
		return RGB{c.R, c.G, c.B}
	case ColorAnsi, ColorPalette256:
		return s.palette[c.Index]
	case ColorDefaultForeground:
		return DefaultForegroundRGB
	case ColorDefaultBackground:
		return DefaultBackgroundRGB
	default:
		if fg {
			return DefaultForegroundRGB
		}
		return DefaultBackgroundRGB
	}
}

// RegisterHyperlink assigns a stable numeric id to (linkID, uri) for
// storage in Cell.HyperlinkID, reusing an existing id for the same
// (linkID, uri) pair when linkID is non-empty.
func (s *State) RegisterHyperlink(linkID, uri string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if linkID != "" {
		for id, h := range s.hyperlinks {
			if h.ID == linkID && h.URI == uri {
				return id
			}
		}
	}
	id := s.nextHyperlinkID
	s.nextHyperlinkID++
	s.hyperlinks[id] = Hyperlink{ID: linkID, URI: uri}
	return id
}
