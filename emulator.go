package termcore

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Emulator binds Parser events to State mutations: CSI/OSC/ESC handlers,
// SGR, mode set/reset, and wrap/scroll policy. It is the single logical
// owner of its State -- construct one Emulator per State and drive it from
// one goroutine (the "Emulator task" in the concurrency model); State's own
// locking makes concurrent reads from a renderer safe regardless.
type Emulator struct {
	state *State

	response   ResponseProvider
	bell       BellProvider
	title      TitleProvider
	clipboard  ClipboardProvider
	recording  RecordingProvider
	middleware *Middleware

	logger zerolog.Logger
}

// EmulatorOption configures an Emulator during construction.
type EmulatorOption func(*Emulator)

func WithResponseProvider(p ResponseProvider) EmulatorOption {
	return func(e *Emulator) { e.response = p }
}
func WithBellProvider(p BellProvider) EmulatorOption {
	return func(e *Emulator) { e.bell = p }
}
func WithTitleProvider(p TitleProvider) EmulatorOption {
	return func(e *Emulator) { e.title = p }
}
func WithClipboardProvider(p ClipboardProvider) EmulatorOption {
	return func(e *Emulator) { e.clipboard = p }
}
func WithRecordingProvider(p RecordingProvider) EmulatorOption {
	return func(e *Emulator) { e.recording = p }
}
func WithMiddleware(m *Middleware) EmulatorOption {
	return func(e *Emulator) { e.middleware = m }
}
func WithEmulatorLogger(logger zerolog.Logger) EmulatorOption {
	return func(e *Emulator) { e.logger = logger }
}

// NewEmulator returns an Emulator bound to state, with Noop providers unless
// overridden by options.
func NewEmulator(state *State, opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		state:     state,
		response:  NoopResponse{},
		bell:      NoopBell{},
		title:     NoopTitle{},
		clipboard: NoopClipboard{},
		recording: NoopRecording{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the bound State.
func (e *Emulator) State() *State { return e.state }

// Feed records data (if a RecordingProvider is set) and runs it through a
// Parser into this Emulator's Sink methods. Callers typically own one
// *Parser per Emulator and call p.Feed(data, emulator) directly instead;
// Feed is a convenience for callers that don't need direct parser access.
func (e *Emulator) Feed(p *Parser, data []byte) {
	e.recording.Record(data)
	p.Feed(data, e)
}

var _ Sink = (*Emulator)(nil)

// --- Sink: Print / Execute ---

// Print writes r at the cursor with the active SGR state, applying
// wide-character classification, wraparound, and insert-mode policy.
func (e *Emulator) Print(r rune) {
	if e.middleware != nil && e.middleware.Print != nil {
		e.middleware.Print(r, e.printInternal)
		return
	}
	e.printInternal(r)
}

func (e *Emulator) printInternal(r rune) {
	r = e.translateCharset(r)

	width := runeWidth(r)
	if width <= 0 {
		width = 1
	}

	cur := e.state.Cursor()
	cols := e.state.Cols()

	if cur.PendingWrap {
		e.wrapNow(cur.Row)
		cur = e.state.Cursor()
	}
	if width == 2 && cur.Col == cols-1 {
		if e.state.HasMode(ModeWraparound) {
			e.wrapNow(cur.Row)
			cur = e.state.Cursor()
		}
	}

	if e.state.HasMode(ModeInsert) {
		e.state.InsertBlanksAtCursor(width)
	}

	if width == 2 {
		e.state.WriteCell(cur.Row, cur.Col, r, true, false)
		e.state.WriteCell(cur.Row, cur.Col+1, ' ', false, true)
	} else {
		e.state.WriteCell(cur.Row, cur.Col, r, false, false)
	}

	newCol := cur.Col + width
	if newCol >= cols {
		// Filling the last column doesn't advance off the grid: defer
		// the wrap to the next Print (or clamp in place, with
		// wraparound off) instead of trying to let Col reach the
		// unreachable sentinel value cols.
		if e.state.HasMode(ModeWraparound) {
			e.state.SetCursorColPendingWrap(cols - 1)
		} else {
			e.state.SetCursorCol(cols - 1)
		}
	} else {
		e.state.SetCursorCol(newCol)
	}
}

// wrapNow marks row as soft-wrapped and advances to column 0 of the next
// row, scrolling if row is the scroll region's bottom.
func (e *Emulator) wrapNow(row int) {
	e.state.mu.Lock()
	g := e.state.activeGrid()
	g.SetWrapped(row, true)
	e.state.mu.Unlock()
	e.state.LineFeed()
	e.state.CarriageReturn()
}

func (e *Emulator) translateCharset(r rune) rune {
	if e.state.ActiveCharset() != CharsetLineDrawing {
		return r
	}
	if r >= 0x60 && r <= 0x7E {
		return lineDrawingTable[r-0x60]
	}
	return r
}

// lineDrawingTable maps ASCII 0x60-0x7E to the DEC Special Graphics glyphs
// selected by ESC ( 0.
var lineDrawingTable = [...]rune{
	'◆', '▒', '␉', '␌', '␍', '␊', '°', '±', '␤', '␋', '┘', '┐', '┌', '└', '┼',
	'⎺', '⎻', '─', '⎼', '⎽', '├', '┤', '┴', '┬', '│', '≤', '≥', 'π', '≠', '£', '·',
}

// Execute handles a C0 control byte.
func (e *Emulator) Execute(b byte) {
	switch b {
	case 0x07: // BEL
		e.runBell()
	case 0x08: // BS
		e.state.Backspace()
	case 0x09: // HT
		e.state.Tab()
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		e.state.LineFeed()
	case 0x0D: // CR
		e.state.CarriageReturn()
	case 0x0E: // SO
		e.state.InvokeCharset(CharsetIndexG1)
	case 0x0F: // SI
		e.state.InvokeCharset(CharsetIndexG0)
	}
}

// --- Sink: Esc ---

// Esc handles a bare ESC sequence.
func (e *Emulator) Esc(ev EscEvent) {
	if len(ev.Intermediates) > 0 {
		e.escWithIntermediate(ev)
		return
	}
	switch ev.Final {
	case '7':
		e.runSaveCursor()
	case '8':
		e.runRestoreCursor()
	case 'D':
		e.state.LineFeed()
	case 'E':
		e.state.CarriageReturn()
		e.state.LineFeed()
	case 'M':
		e.state.ReverseLineFeed()
	case 'c':
		e.runFullReset()
	}
}

func (e *Emulator) runBell() {
	if e.middleware != nil && e.middleware.Bell != nil {
		e.middleware.Bell(func() { e.state.Bell(); e.bell.Ring() })
		return
	}
	e.state.Bell()
	e.bell.Ring()
}

func (e *Emulator) runSaveCursor() {
	if e.middleware != nil && e.middleware.SaveCursor != nil {
		e.middleware.SaveCursor(e.state.SaveCursor)
		return
	}
	e.state.SaveCursor()
}

func (e *Emulator) runRestoreCursor() {
	if e.middleware != nil && e.middleware.RestoreCursor != nil {
		e.middleware.RestoreCursor(e.state.RestoreCursor)
		return
	}
	e.state.RestoreCursor()
}

func (e *Emulator) runFullReset() {
	if e.middleware != nil && e.middleware.FullReset != nil {
		e.middleware.FullReset(e.state.FullReset)
		return
	}
	e.state.FullReset()
}

func (e *Emulator) escWithIntermediate(ev EscEvent) {
	switch ev.Intermediates[0] {
	case '(':
		e.state.SetCharset(CharsetIndexG0, charsetFromFinal(ev.Final))
	case ')':
		e.state.SetCharset(CharsetIndexG1, charsetFromFinal(ev.Final))
	case '*':
		e.state.SetCharset(CharsetIndexG2, charsetFromFinal(ev.Final))
	case '+':
		e.state.SetCharset(CharsetIndexG3, charsetFromFinal(ev.Final))
	case '#':
		if ev.Final == '8' {
			e.decaln()
		}
	}
}

func charsetFromFinal(final byte) Charset {
	if final == '0' {
		return CharsetLineDrawing
	}
	return CharsetASCII
}

// decaln (DECALN, ESC # 8) fills the screen with 'E', used as an alignment
// test pattern.
func (e *Emulator) decaln() {
	rows, cols := e.state.Rows(), e.state.Cols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			e.state.WriteCell(r, c, 'E', false, false)
		}
	}
}

// --- Sink: CSI ---

func csiParam(params []int64, i int, def int64) int64 {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return params[i]
}

func csiParamN(params []int64, i int) int {
	n := csiParam(params, i, 1)
	if n <= 0 {
		n = 1
	}
	return int(n)
}

// CSI dispatches a complete CSI sequence by its final byte.
func (e *Emulator) CSI(ev CsiEvent) {
	if ev.Private != 0 {
		e.csiPrivate(ev)
		return
	}

	switch ev.Final {
	case '@':
		e.state.InsertBlanksAtCursor(csiParamN(ev.Params, 0))
	case 'A':
		e.runCursorUp(csiParamN(ev.Params, 0))
	case 'B':
		e.runCursorDown(csiParamN(ev.Params, 0))
	case 'C':
		e.runCursorForward(csiParamN(ev.Params, 0))
	case 'D':
		e.runCursorBack(csiParamN(ev.Params, 0))
	case 'E':
		e.state.CursorNextLine(csiParamN(ev.Params, 0))
	case 'F':
		e.state.CursorPrevLine(csiParamN(ev.Params, 0))
	case 'G', '`':
		e.state.SetCursorCol(int(csiParam(ev.Params, 0, 1)) - 1)
	case 'H', 'f':
		row := int(csiParam(ev.Params, 0, 1)) - 1
		col := int(csiParam(ev.Params, 1, 1)) - 1
		e.runMoveCursor(row, col)
	case 'I':
		for i, n := 0, csiParamN(ev.Params, 0); i < n; i++ {
			e.state.Tab()
		}
	case 'J':
		e.runEraseInDisplay(EraseDisplayMode(csiParam(ev.Params, 0, 0)))
	case 'K':
		e.runEraseInLine(EraseLineMode(csiParam(ev.Params, 0, 0)))
	case 'L':
		e.state.InsertLines(csiParamN(ev.Params, 0))
	case 'M':
		e.state.DeleteLines(csiParamN(ev.Params, 0))
	case 'P':
		e.state.DeleteCellsAtCursor(csiParamN(ev.Params, 0))
	case 'S':
		e.state.ScrollUp(csiParamN(ev.Params, 0))
	case 'T':
		e.state.ScrollDown(csiParamN(ev.Params, 0))
	case 'X':
		e.state.EraseCharsAtCursor(csiParamN(ev.Params, 0))
	case 'Z':
		for i, n := 0, csiParamN(ev.Params, 0); i < n; i++ {
			e.state.BackTab()
		}
	case 'd':
		e.state.SetCursorRow(int(csiParam(ev.Params, 0, 1)) - 1)
	case 'h':
		e.setMode(ev.Params, true)
	case 'l':
		e.setMode(ev.Params, false)
	case 'm':
		e.sgr(ev.Params)
	case 'n':
		e.deviceStatus(int(csiParam(ev.Params, 0, 0)))
	case 'c':
		e.identifyTerminal()
	case 'r':
		top := int(csiParam(ev.Params, 0, 1)) - 1
		bottom := int(csiParam(ev.Params, 1, int64(e.state.Rows()))) - 1
		e.state.SetScrollRegion(top, bottom)
	case 's':
		e.runSaveCursor()
	case 'u':
		e.runRestoreCursor()
	}
}

func (e *Emulator) runCursorUp(n int) {
	if e.middleware != nil && e.middleware.CursorUp != nil {
		e.middleware.CursorUp(n, e.state.CursorUp)
		return
	}
	e.state.CursorUp(n)
}

func (e *Emulator) runCursorDown(n int) {
	if e.middleware != nil && e.middleware.CursorDown != nil {
		e.middleware.CursorDown(n, e.state.CursorDown)
		return
	}
	e.state.CursorDown(n)
}

func (e *Emulator) runCursorForward(n int) {
	if e.middleware != nil && e.middleware.CursorForward != nil {
		e.middleware.CursorForward(n, e.state.CursorForward)
		return
	}
	e.state.CursorForward(n)
}

func (e *Emulator) runCursorBack(n int) {
	if e.middleware != nil && e.middleware.CursorBack != nil {
		e.middleware.CursorBack(n, e.state.CursorBack)
		return
	}
	e.state.CursorBack(n)
}

func (e *Emulator) runMoveCursor(row, col int) {
	if e.middleware != nil && e.middleware.MoveCursor != nil {
		e.middleware.MoveCursor(row, col, e.state.MoveCursor)
		return
	}
	e.state.MoveCursor(row, col)
}

func (e *Emulator) runEraseInDisplay(mode EraseDisplayMode) {
	if e.middleware != nil && e.middleware.EraseInDisplay != nil {
		e.middleware.EraseInDisplay(mode, e.state.EraseInDisplay)
		return
	}
	e.state.EraseInDisplay(mode)
}

func (e *Emulator) runEraseInLine(mode EraseLineMode) {
	if e.middleware != nil && e.middleware.EraseInLine != nil {
		e.middleware.EraseInLine(mode, e.state.EraseInLine)
		return
	}
	e.state.EraseInLine(mode)
}

// csiPrivate dispatches DEC-private CSI sequences (those with a '?', '<',
// '=', or '>' marker). Only '?' sequences carry defined semantics here.
func (e *Emulator) csiPrivate(ev CsiEvent) {
	if ev.Private != '?' {
		return
	}
	switch ev.Final {
	case 'h':
		e.setPrivateMode(ev.Params, true)
	case 'l':
		e.setPrivateMode(ev.Params, false)
	}
}

func (e *Emulator) deviceStatus(n int) {
	switch n {
	case 5:
		fmt.Fprint(e.response, "\x1b[0n")
	case 6:
		cur := e.state.Cursor()
		fmt.Fprintf(e.response, "\x1b[%d;%dR", cur.Row+1, cur.Col+1)
	}
}

func (e *Emulator) identifyTerminal() {
	fmt.Fprint(e.response, "\x1b[?1;2c")
}

// setMode handles standard (non-private) SM/RM. Only mode 4 (IRM) has
// defined semantics in this subset.
func (e *Emulator) setMode(params []int64, on bool) {
	for _, p := range params {
		if p == 4 {
			e.runSetMode(ModeInsert, on)
		}
	}
}

func (e *Emulator) runSetMode(mode Modes, on bool) {
	if e.middleware != nil && e.middleware.SetMode != nil {
		e.middleware.SetMode(mode, on, e.state.SetMode)
		return
	}
	e.state.SetMode(mode, on)
}

// setPrivateMode handles DEC private SM/RM (CSI ? ... h/l).
func (e *Emulator) setPrivateMode(params []int64, on bool) {
	for _, p := range params {
		switch p {
		case 1:
			e.runSetMode(ModeCursorKeys, on)
		case 6:
			e.runSetMode(ModeOrigin, on)
		case 7:
			e.runSetMode(ModeWraparound, on)
		case 25:
			e.state.SetCursorVisible(on)
		case 9:
			e.setMouse(MouseReportingX10, on)
		case 1000:
			e.setMouse(MouseReportingNormal, on)
		case 1002:
			e.setMouse(MouseReportingButtonEvent, on)
		case 1003:
			e.setMouse(MouseReportingAnyEvent, on)
		case 1006:
			e.setMouseEncoding(MouseEncodingSGR, on)
		case 1015:
			e.setMouseEncoding(MouseEncodingURXVT, on)
		case 1004:
			e.runSetMode(ModeFocusReporting, on)
		case 1049:
			if on {
				e.state.EnterAlternateScreen(true)
			} else {
				e.state.ExitAlternateScreen()
			}
		case 47, 1047:
			if on {
				e.state.EnterAlternateScreen(false)
			} else {
				e.state.ExitAlternateScreen()
			}
		case 2004:
			e.runSetMode(ModeBracketedPaste, on)
		}
	}
}

func (e *Emulator) setMouse(mode MouseReportingMode, on bool) {
	_, enc := e.state.MouseReporting()
	if on {
		e.state.SetMouseReporting(mode, enc)
	} else {
		e.state.SetMouseReporting(MouseReportingNone, enc)
	}
}

func (e *Emulator) setMouseEncoding(enc MouseEncoding, on bool) {
	mode, _ := e.state.MouseReporting()
	if on {
		e.state.SetMouseReporting(mode, enc)
	} else {
		e.state.SetMouseReporting(mode, MouseEncodingX10)
	}
}

// sgr applies a left-to-right single pass over CSI ... m parameters. An
// empty parameter list is equivalent to a single 0 (reset).
func (e *Emulator) sgr(params []int64) {
	if len(params) == 0 {
		params = []int64{0}
	}
	sgrState := e.state.SGR()

	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			sgrState = NewSGRState()
		case p == 1:
			sgrState.Attrs |= AttrBold
		case p == 2:
			sgrState.Attrs |= AttrDim
		case p == 3:
			sgrState.Attrs |= AttrItalic
		case p == 4:
			sgrState.Attrs = sgrState.Attrs&^underlineAttrs | AttrUnderline
		case p == 5 || p == 6:
			sgrState.Attrs |= AttrBlink
		case p == 7:
			sgrState.Attrs |= AttrInverse
		case p == 8:
			sgrState.Attrs |= AttrHidden
		case p == 9:
			sgrState.Attrs |= AttrStrikethrough
		case p == 21:
			sgrState.Attrs = sgrState.Attrs&^underlineAttrs | AttrDoubleUnderline
		case p == 22:
			sgrState.Attrs &^= AttrBold | AttrDim
		case p == 23:
			sgrState.Attrs &^= AttrItalic
		case p == 24:
			sgrState.Attrs &^= underlineAttrs
		case p == 25:
			sgrState.Attrs &^= AttrBlink
		case p == 27:
			sgrState.Attrs &^= AttrInverse
		case p == 28:
			sgrState.Attrs &^= AttrHidden
		case p == 29:
			sgrState.Attrs &^= AttrStrikethrough
		case p >= 30 && p <= 37:
			sgrState.Fg = Ansi(uint8(p - 30))
		case p == 38:
			i = e.sgrExtendedColor(params, i, &sgrState.Fg)
		case p == 39:
			sgrState.Fg = DefaultFg
		case p >= 40 && p <= 47:
			sgrState.Bg = Ansi(uint8(p - 40))
		case p == 48:
			i = e.sgrExtendedColor(params, i, &sgrState.Bg)
		case p == 49:
			sgrState.Bg = DefaultBg
		case p >= 90 && p <= 97:
			sgrState.Fg = Ansi(uint8(p-90) + 8)
		case p >= 100 && p <= 107:
			sgrState.Bg = Ansi(uint8(p-100) + 8)
		}
	}

	e.runSetSGR(sgrState)
}

func (e *Emulator) runSetSGR(sgrState SGRState) {
	if e.middleware != nil && e.middleware.SetSGR != nil {
		e.middleware.SetSGR(sgrState, e.state.SetSGR)
		return
	}
	e.state.SetSGR(sgrState)
}

// sgrExtendedColor parses "38;5;n" (256-color) or "38;2;r;g;b" (truecolor)
// starting at params[i] == 38, writing the result to *color. Returns the
// index of the last parameter consumed.
func (e *Emulator) sgrExtendedColor(params []int64, i int, color *Color) int {
	if i+1 >= len(params) {
		return i
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			*color = Palette256(uint8(params[i+2]))
			return i + 2
		}
	case 2:
		if i+4 < len(params) {
			*color = TrueColor(uint8(params[i+2]), uint8(params[i+3]), uint8(params[i+4]))
			return i + 4
		}
	}
	return i
}

// --- Sink: OSC ---

// OSC dispatches an OSC payload of the form "code;rest".
func (e *Emulator) OSC(ev OscEvent) {
	data := string(ev.Data)
	code, rest, _ := strings.Cut(data, ";")

	switch code {
	case "0", "2":
		e.runSetTitle(rest)
	case "1":
		// Icon name only; this module carries no icon-name field.
	case "4":
		e.oscSetColor(rest, false)
	case "104":
		e.oscResetColor(rest)
	case "7":
		e.runSetWorkingDirectory(rest)
	case "8":
		e.oscHyperlink(rest)
	case "10":
		e.oscSetNamedColor(rest, true)
	case "11":
		e.oscSetNamedColor(rest, false)
	case "52":
		e.oscClipboard(rest)
	case "133":
		e.oscShellIntegration(rest)
	case "1337":
		e.oscITerm(rest)
	case "22":
		e.state.PushTitle()
		e.title.PushTitle()
	case "23":
		e.state.PopTitle()
		e.title.PopTitle()
	}
}

func (e *Emulator) runSetTitle(title string) {
	if e.middleware != nil && e.middleware.SetTitle != nil {
		e.middleware.SetTitle(title, func(t string) { e.state.SetTitle(t); e.title.SetTitle(t) })
		return
	}
	e.state.SetTitle(title)
	e.title.SetTitle(title)
}

func (e *Emulator) runSetWorkingDirectory(uri string) {
	if e.middleware != nil && e.middleware.SetWorkingDirectory != nil {
		e.middleware.SetWorkingDirectory(uri, e.state.SetWorkingDirectory)
		return
	}
	e.state.SetWorkingDirectory(uri)
}

// oscSetColor handles "4;index;spec[;index;spec...]" (OSC 4).
func (e *Emulator) oscSetColor(rest string, _ bool) {
	parts := strings.Split(rest, ";")
	for i := 0; i+1 < len(parts); i += 2 {
		idx, err := strconv.Atoi(parts[i])
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		if rgb, ok := parseColorSpec(parts[i+1]); ok {
			e.state.SetPaletteColor(uint8(idx), rgb)
		}
	}
}

// oscResetColor handles "104[;index;index...]" (OSC 104): reset listed
// indices, or the whole palette if none given.
func (e *Emulator) oscResetColor(rest string) {
	if rest == "" {
		e.state.ResetPalette()
		return
	}
	for _, p := range strings.Split(rest, ";") {
		if idx, err := strconv.Atoi(p); err == nil && idx >= 0 && idx <= 255 {
			e.state.ResetPaletteColor(uint8(idx))
		}
	}
}

// oscSetNamedColor handles OSC 10 (foreground) / 11 (background) "spec".
// This module resolves these purely for observability (there is no
// separate foreground/background palette slot); it is a no-op beyond
// parsing validation since DefaultFg/DefaultBg are renderer-resolved.
func (e *Emulator) oscSetNamedColor(rest string, fg bool) {
	_, _ = parseColorSpec(rest)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// parseColorSpec parses an X11-style "rgb:RR/GG/BB" or "#RRGGBB" spec.
func parseColorSpec(spec string) (RGB, bool) {
	spec = strings.TrimPrefix(spec, "rgb:")
	spec = strings.TrimPrefix(spec, "#")
	parts := strings.Split(spec, "/")
	if len(parts) == 3 {
		r, err1 := strconv.ParseUint(parts[0][:minInt(2, len(parts[0]))], 16, 8)
		g, err2 := strconv.ParseUint(parts[1][:minInt(2, len(parts[1]))], 16, 8)
		b, err3 := strconv.ParseUint(parts[2][:minInt(2, len(parts[2]))], 16, 8)
		if err1 == nil && err2 == nil && err3 == nil {
			return RGB{uint8(r), uint8(g), uint8(b)}, true
		}
		return RGB{}, false
	}
	if len(spec) == 6 {
		v, err := strconv.ParseUint(spec, 16, 24)
		if err != nil {
			return RGB{}, false
		}
		return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
	}
	return RGB{}, false
}

// oscHyperlink handles "8;params;URI" (OSC 8). An empty URI closes the
// active hyperlink.
func (e *Emulator) oscHyperlink(rest string) {
	params, uri, _ := strings.Cut(rest, ";")
	e.runSetHyperlink(uri, params)
}

func (e *Emulator) runSetHyperlink(uri, params string) {
	apply := func(uri string) {
		if uri == "" {
			sgrState := e.state.SGR()
			sgrState.HyperlinkID = 0
			e.state.SetSGR(sgrState)
			return
		}
		id := ""
		for _, kv := range strings.Split(params, ":") {
			if strings.HasPrefix(kv, "id=") {
				id = kv[len("id="):]
			}
		}
		linkID := e.state.RegisterHyperlink(id, uri)
		sgrState := e.state.SGR()
		sgrState.HyperlinkID = linkID
		e.state.SetSGR(sgrState)
	}
	if e.middleware != nil && e.middleware.SetHyperlink != nil {
		e.middleware.SetHyperlink(uri, apply)
		return
	}
	apply(uri)
}

// oscClipboard handles "52;selection;data" (OSC 52): base64 payload "?"
// requests a read, reported back via e.response; anything else is a write.
func (e *Emulator) oscClipboard(rest string) {
	selStr, payload, ok := strings.Cut(rest, ";")
	if !ok || selStr == "" {
		return
	}
	sel := selStr[0]

	if payload == "?" {
		data := e.clipboard.Read(sel)
		encoded := base64.StdEncoding.EncodeToString([]byte(data))
		fmt.Fprintf(e.response, "\x1b]52;%c;%s\x07", sel, encoded)
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return
	}
	e.clipboard.Write(sel, decoded)
}

// oscShellIntegration handles "133;A|B|C|D[;exit]" (OSC 133).
func (e *Emulator) oscShellIntegration(rest string) {
	kind, tail, _ := strings.Cut(rest, ";")
	var mark ShellIntegrationMark
	switch kind {
	case "A":
		mark = MarkPromptStart
	case "B":
		mark = MarkCommandStart
	case "C":
		mark = MarkCommandExecuted
	case "D":
		mark = MarkCommandFinished
	default:
		return
	}
	exitCode := -1
	if mark == MarkCommandFinished && tail != "" {
		if n, err := strconv.Atoi(strings.SplitN(tail, ";", 2)[0]); err == nil {
			exitCode = n
		}
	}
	e.runShellIntegrationMark(mark, exitCode)
}

func (e *Emulator) runShellIntegrationMark(mark ShellIntegrationMark, exitCode int) {
	if e.middleware != nil && e.middleware.ShellIntegrationMark != nil {
		e.middleware.ShellIntegrationMark(mark, exitCode, e.state.ShellIntegrationMark)
		return
	}
	e.state.ShellIntegrationMark(mark, exitCode)
}

// oscITerm handles "1337;key=value" (OSC 1337); only SetUserVar is
// recognized.
func (e *Emulator) oscITerm(rest string) {
	kv, value, ok := strings.Cut(rest, "=")
	if !ok || kv != "SetUserVar" {
		return
	}
	name, encoded, ok := strings.Cut(value, "=")
	if !ok {
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return
	}
	e.runSetUserVar(name, string(decoded))
}

func (e *Emulator) runSetUserVar(name, value string) {
	if e.middleware != nil && e.middleware.SetUserVar != nil {
		e.middleware.SetUserVar(name, value, e.state.SetUserVar)
		return
	}
	e.state.SetUserVar(name, value)
}

// --- Sink: DCS ---

// DCS is a no-op in this subset: Sixel/Kitty graphics and other DCS-borne
// protocols are out of scope (see the package doc's Non-goals).
func (e *Emulator) DCS(ev DcsEvent) {}
