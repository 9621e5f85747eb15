package termcore

// Middleware intercepts Emulator dispatch calls, letting a caller observe or
// override behavior before the default State mutation runs. Each field wraps
// one operation: it receives the original arguments and a next function that
// invokes the default implementation; a middleware that never calls next
// suppresses the default behavior entirely.
type Middleware struct {
	Print func(r rune, next func(rune))
	Bell  func(next func())

	CursorUp      func(n int, next func(int))
	CursorDown    func(n int, next func(int))
	CursorForward func(n int, next func(int))
	CursorBack    func(n int, next func(int))
	MoveCursor    func(row, col int, next func(int, int))

	EraseInDisplay func(mode EraseDisplayMode, next func(EraseDisplayMode))
	EraseInLine    func(mode EraseLineMode, next func(EraseLineMode))

	SetMode   func(mode Modes, on bool, next func(Modes, bool))
	SetSGR    func(sgr SGRState, next func(SGRState))
	SetTitle  func(title string, next func(string))
	SetHyperlink func(uri string, next func(string))

	SaveCursor    func(next func())
	RestoreCursor func(next func())
	FullReset     func(next func())

	SetWorkingDirectory func(uri string, next func(string))
	ShellIntegrationMark func(mark ShellIntegrationMark, exitCode int, next func(ShellIntegrationMark, int))
	SetUserVar func(name, value string, next func(string, string))
}

// Merge copies non-nil fields from other into m, overwriting existing
// values. A nil other is a no-op.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}
	if other.Print != nil {
		m.Print = other.Print
	}
	if other.Bell != nil {
		m.Bell = other.Bell
	}
	if other.CursorUp != nil {
		m.CursorUp = other.CursorUp
	}
	if other.CursorDown != nil {
		m.CursorDown = other.CursorDown
	}
	if other.CursorForward != nil {
		m.CursorForward = other.CursorForward
	}
	if other.CursorBack != nil {
		m.CursorBack = other.CursorBack
	}
	if other.MoveCursor != nil {
		m.MoveCursor = other.MoveCursor
	}
	if other.EraseInDisplay != nil {
		m.EraseInDisplay = other.EraseInDisplay
	}
	if other.EraseInLine != nil {
		m.EraseInLine = other.EraseInLine
	}
	if other.SetMode != nil {
		m.SetMode = other.SetMode
	}
	if other.SetSGR != nil {
		m.SetSGR = other.SetSGR
	}
	if other.SetTitle != nil {
		m.SetTitle = other.SetTitle
	}
	if other.SetHyperlink != nil {
		m.SetHyperlink = other.SetHyperlink
	}
	if other.SaveCursor != nil {
		m.SaveCursor = other.SaveCursor
	}
	if other.RestoreCursor != nil {
		m.RestoreCursor = other.RestoreCursor
	}
	if other.FullReset != nil {
		m.FullReset = other.FullReset
	}
	if other.SetWorkingDirectory != nil {
		m.SetWorkingDirectory = other.SetWorkingDirectory
	}
	if other.ShellIntegrationMark != nil {
		m.ShellIntegrationMark = other.ShellIntegrationMark
	}
	if other.SetUserVar != nil {
		m.SetUserVar = other.SetUserVar
	}
}
