package termcore

// Modes is a bitmask of terminal behavior flags set/reset by CSI
// SM/RM (standard) and DEC private SM/RM (CSI ? ... h/l) sequences.
type Modes uint32

const (
	// ModeOrigin is DECOM: cursor motion is relative to the scroll
	// region and cannot escape it.
	ModeOrigin Modes = 1 << iota
	// ModeWraparound is DECAWM, on by default: writing past the
	// rightmost column continues on the next row.
	ModeWraparound
	// ModeInsert is IRM: printing shifts existing cells right instead
	// of overwriting them.
	ModeInsert
	// ModeCursorKeys is DECCKM: arrow/Home/End keys send application
	// (ESC O) sequences instead of normal (ESC [) ones.
	ModeCursorKeys
	// ModeApplicationKeypad is DECKPAM: the numeric keypad sends
	// application sequences.
	ModeApplicationKeypad
	// ModeBracketedPaste is xterm mode 2004: pasted text is wrapped in
	// ESC [200~ ... ESC [201~.
	ModeBracketedPaste
	// ModeFocusReporting is xterm mode 1004: focus in/out events are
	// reported as ESC [I / ESC [O.
	ModeFocusReporting
	// ModeAlternateScreen is DEC private mode 1049: the alternate
	// buffer is active, primary cursor/content preserved underneath.
	ModeAlternateScreen
)

// MouseReportingMode selects which mouse-tracking protocol, if any, is
// active. Only one is active at a time; setting one DEC private mode
// among {1000,1002,1003} clears the others, matching xterm.
type MouseReportingMode int

const (
	MouseReportingNone MouseReportingMode = iota
	MouseReportingX10                     // mode 9
	MouseReportingNormal                  // mode 1000: press/release
	MouseReportingButtonEvent             // mode 1002: + motion while a button is down
	MouseReportingAnyEvent                // mode 1003: + motion with no button down
)

// MouseEncoding selects the byte encoding used for whatever
// MouseReportingMode is active. SGR (1006) and URXVT (1015) are
// encoding variants layered on top of the reporting mode, per xterm.
type MouseEncoding int

const (
	MouseEncodingX10 MouseEncoding = iota // ESC [ M <b+32> <x+32> <y+32>
	MouseEncodingSGR                      // ESC [ < b ; x ; y M|m  (mode 1006)
	MouseEncodingURXVT                    // ESC [ b ; x ; y M      (mode 1015)
)

// Has reports whether every bit in want is set in m.
func (m Modes) Has(want Modes) bool { return m&want == want }
