package termcore

import "fmt"

// Key identifies one non-printable key the host has already decoded from a
// raw OS key event. Printable characters are sent by the caller directly
// (optionally through EncodeRune for the Alt/Option prefix), not through Key.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyTab
	KeyBackTab
	KeyReturn
	KeyEscape
	KeyBackspace
)

// Modifiers is a bitset of key modifiers held during a key event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

// modifierParam computes the xterm "1;<mod>" modifier parameter:
// 1 + shift(1) + alt(2) + ctrl(4). Returns 0 when no modifier is held,
// signaling the caller should omit the modifier parameter entirely.
func modifierParam(mods Modifiers) int {
	if mods == 0 {
		return 0
	}
	n := 1
	if mods&ModShift != 0 {
		n += 1
	}
	if mods&ModAlt != 0 {
		n += 2
	}
	if mods&ModCtrl != 0 {
		n += 4
	}
	return n
}

// csiFinal encodes a CSI sequence with final f, applying the "1;<mod>"
// modifier parameter when mods is non-zero, else the bare form.
func csiFinal(f byte, mods Modifiers) []byte {
	if m := modifierParam(mods); m != 0 {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", m, f))
	}
	return []byte{0x1b, '[', f}
}

// csiTilde encodes a CSI "n~" sequence (Page Up/Down, Insert/Delete,
// F5-F12), applying the ";<mod>" modifier parameter when mods is non-zero.
func csiTilde(n int, mods Modifiers) []byte {
	if m := modifierParam(mods); m != 0 {
		return []byte(fmt.Sprintf("\x1b[%d;%d~", n, m))
	}
	return []byte(fmt.Sprintf("\x1b[%d~", n))
}

// EncodeKey returns the bytes a key event should write to the PTY, given the
// modifiers held and the terminal's current modes (DECCKM for
// application-cursor-keys affects the arrow/Home/End family).
func EncodeKey(key Key, mods Modifiers, modes Modes) []byte {
	appCursor := modes.Has(ModeCursorKeys)

	switch key {
	case KeyUp:
		return arrowLike('A', mods, appCursor)
	case KeyDown:
		return arrowLike('B', mods, appCursor)
	case KeyRight:
		return arrowLike('C', mods, appCursor)
	case KeyLeft:
		return arrowLike('D', mods, appCursor)
	case KeyHome:
		return arrowLike('H', mods, appCursor)
	case KeyEnd:
		return arrowLike('F', mods, appCursor)
	case KeyPageUp:
		return csiTilde(5, mods)
	case KeyPageDown:
		return csiTilde(6, mods)
	case KeyInsert:
		return csiTilde(2, mods)
	case KeyDelete:
		return csiTilde(3, mods)
	case KeyF1:
		return []byte{0x1b, 'O', 'P'}
	case KeyF2:
		return []byte{0x1b, 'O', 'Q'}
	case KeyF3:
		return []byte{0x1b, 'O', 'R'}
	case KeyF4:
		return []byte{0x1b, 'O', 'S'}
	case KeyF5:
		return csiTilde(15, mods)
	case KeyF6:
		return csiTilde(17, mods)
	case KeyF7:
		return csiTilde(18, mods)
	case KeyF8:
		return csiTilde(19, mods)
	case KeyF9:
		return csiTilde(20, mods)
	case KeyF10:
		return csiTilde(21, mods)
	case KeyF11:
		return csiTilde(23, mods)
	case KeyF12:
		return csiTilde(24, mods)
	case KeyTab:
		return []byte{'\t'}
	case KeyBackTab:
		return []byte{0x1b, '[', 'Z'}
	case KeyReturn:
		return []byte{'\r'}
	case KeyEscape:
		return []byte{0x1b}
	case KeyBackspace:
		return []byte{0x7F}
	default:
		return nil
	}
}

// arrowLike encodes the arrow/Home/End family: ESC O <f> in application
// mode with no modifier, ESC [ <f> (or ESC [ 1;<mod> <f>) otherwise.
func arrowLike(f byte, mods Modifiers, appCursor bool) []byte {
	if appCursor && mods == 0 {
		return []byte{0x1b, 'O', f}
	}
	return csiFinal(f, mods)
}

// EncodeRune returns the bytes a printable-character key event should write:
// the UTF-8 encoding of r, prefixed with ESC when Alt/Option is held. Ctrl
// held with a letter A-Z (or one of @[\]^_?) sends the corresponding C0
// control byte instead, per xterm.
func EncodeRune(r rune, mods Modifiers) []byte {
	if mods&ModCtrl != 0 {
		if b, ok := ctrlByte(r); ok {
			out := []byte{b}
			if mods&ModAlt != 0 {
				out = append([]byte{0x1b}, out...)
			}
			return out
		}
	}
	out := []byte(string(r))
	if mods&ModAlt != 0 {
		out = append([]byte{0x1b}, out...)
	}
	return out
}

// ctrlByte maps a rune to its Control-key byte per the xterm table:
// A-Z -> 1-26, @[\]^_? -> 0x00,0x1B,0x1C,0x1D,0x1E,0x1F,0x7F.
func ctrlByte(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r-'a') + 1, true
	case r >= 'A' && r <= 'Z':
		return byte(r-'A') + 1, true
	case r == '@':
		return 0x00, true
	case r == '[':
		return 0x1B, true
	case r == '\\':
		return 0x1C, true
	case r == ']':
		return 0x1D, true
	case r == '^':
		return 0x1E, true
	case r == '_':
		return 0x1F, true
	case r == '?':
		return 0x7F, true
	default:
		return 0, false
	}
}

// EncodePaste wraps text in the bracketed-paste envelope (ESC [200~ ...
// ESC [201~) when mode 2004 is set, else returns text unchanged.
func EncodePaste(text string, modes Modes) []byte {
	if !modes.Has(ModeBracketedPaste) {
		return []byte(text)
	}
	out := make([]byte, 0, len(text)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, text...)
	out = append(out, "\x1b[201~"...)
	return out
}
