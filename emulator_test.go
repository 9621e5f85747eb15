package termcore

import "testing"

func TestEmulatorHelloWorldPrint(t *testing.T) {
	s := NewState(WithSize(5, 20))
	e := NewEmulator(s)
	p := NewParser()

	e.Feed(p, []byte("hello"))

	if got := s.Cell(0, 0).Char; got != 'h' {
		t.Fatalf("got %q at (0,0), want 'h'", got)
	}
	if got := s.Cell(0, 4).Char; got != 'o' {
		t.Fatalf("got %q at (0,4), want 'o'", got)
	}
	if cur := s.Cursor(); cur.Row != 0 || cur.Col != 5 {
		t.Fatalf("got cursor %+v, want row 0 col 5", cur)
	}
}

func TestEmulatorAutowrapsOrdinaryTextAtLineWidth(t *testing.T) {
	s := NewState(WithSize(5, 3))
	e := NewEmulator(s)
	p := NewParser()

	// 3-col row: "ABC" exactly fills row 0, leaving the cursor pending
	// wrap at (0,2); the next Print ('D') must wrap to row 1 rather
	// than overwrite 'C' in place.
	e.Feed(p, []byte("ABCD"))

	if got := s.Cell(0, 2).Char; got != 'C' {
		t.Fatalf("got %q at (0,2), want 'C' (unchanged by the wrap)", got)
	}
	if got := s.Cell(1, 0).Char; got != 'D' {
		t.Fatalf("got %q at (1,0), want 'D' to have wrapped onto the next row", got)
	}
	if cur := s.Cursor(); cur.Row != 1 || cur.Col != 1 {
		t.Fatalf("got cursor %+v, want row 1 col 1 after the wrap", cur)
	}
	if !s.activeGrid().IsWrapped(0) {
		t.Fatalf("want row 0 marked wrapped after filling its last column and continuing")
	}
}

func TestEmulatorNoAutowrapWhenWraparoundModeOff(t *testing.T) {
	s := NewState(WithSize(5, 3))
	e := NewEmulator(s)
	p := NewParser()

	e.Feed(p, []byte("\x1b[?7l")) // DECAWM off
	e.Feed(p, []byte("ABCD"))

	if got := s.Cell(0, 2).Char; got != 'D' {
		t.Fatalf("got %q at (0,2), want 'D' to overwrite 'C' in place with wraparound off", got)
	}
	if cur := s.Cursor(); cur.Row != 0 || cur.Col != 2 {
		t.Fatalf("got cursor %+v, want clamped at row 0 col 2 with wraparound off", cur)
	}
}

func TestEmulatorPendingWrapClearedByCursorMotion(t *testing.T) {
	s := NewState(WithSize(5, 3))
	e := NewEmulator(s)
	p := NewParser()

	e.Feed(p, []byte("ABC"))
	if cur := s.Cursor(); !cur.PendingWrap {
		t.Fatalf("got %+v, want PendingWrap after filling the last column", cur)
	}

	e.Feed(p, []byte("\x1b[1;1H")) // CUP clears pending wrap
	if cur := s.Cursor(); cur.PendingWrap {
		t.Fatalf("got %+v, want PendingWrap cleared by cursor motion", cur)
	}

	e.Feed(p, []byte("Z"))
	if got := s.Cell(0, 0).Char; got != 'Z' {
		t.Fatalf("got %q at (0,0), want 'Z' written in place, not wrapped", got)
	}
	if got := s.Cell(1, 0).Char; got != 0 && got != ' ' {
		t.Fatalf("got %q at (1,0), want blank (no wrap should have occurred)", got)
	}
}

func TestEmulatorSGRRedBold(t *testing.T) {
	s := NewState(WithSize(5, 20))
	e := NewEmulator(s)
	p := NewParser()

	e.Feed(p, []byte("\x1b[31;1mX"))

	cell := s.Cell(0, 0)
	if cell.Char != 'X' {
		t.Fatalf("got %q, want 'X'", cell.Char)
	}
	if cell.Fg != Ansi(1) {
		t.Fatalf("got fg %+v, want Ansi(1) (red)", cell.Fg)
	}
	if cell.Attrs&AttrBold == 0 {
		t.Fatalf("got attrs %+v, want AttrBold set", cell.Attrs)
	}
}

func TestEmulatorLineFeedAtBottomScrolls(t *testing.T) {
	s := NewState(WithSize(3, 10))
	e := NewEmulator(s)
	p := NewParser()

	e.Feed(p, []byte("one\r\n"))
	e.Feed(p, []byte("two\r\n"))
	e.Feed(p, []byte("three\r\n"))

	if s.ScrollbackLen() != 1 {
		t.Fatalf("got scrollback len %d, want 1", s.ScrollbackLen())
	}
	if got := s.Cell(0, 0).Char; got != 't' {
		t.Fatalf("got %q at top row, want 't' (from \"two\")", got)
	}
}

func TestEmulatorCursorPositionThenEraseInDisplay(t *testing.T) {
	s := NewState(WithSize(5, 10))
	e := NewEmulator(s)
	p := NewParser()

	e.Feed(p, []byte("abcdefghij"))
	e.Feed(p, []byte("\x1b[1;1H"))
	if cur := s.Cursor(); cur.Row != 0 || cur.Col != 0 {
		t.Fatalf("got cursor %+v after CUP 1;1, want (0,0)", cur)
	}

	e.Feed(p, []byte("\x1b[2J"))
	for c := 0; c < 10; c++ {
		if got := s.Cell(0, c).Char; got != ' ' && got != 0 {
			t.Fatalf("got %q at (0,%d) after EraseDisplayAll, want blank", got, c)
		}
	}
}

func TestEmulatorBracketedPasteEnvelope(t *testing.T) {
	s := NewState(WithSize(5, 20))
	e := NewEmulator(s)
	p := NewParser()

	e.Feed(p, []byte("\x1b[?2004h"))
	if !s.Modes().Has(ModeBracketedPaste) {
		t.Fatalf("want ModeBracketedPaste set after CSI ?2004h")
	}
	got := EncodePaste("paste me", s.Modes())
	want := []byte("\x1b[200~paste me\x1b[201~")
	if string(got) != string(want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	e.Feed(p, []byte("\x1b[?2004l"))
	if s.Modes().Has(ModeBracketedPaste) {
		t.Fatalf("want ModeBracketedPaste unset after CSI ?2004l")
	}
	got = EncodePaste("paste me", s.Modes())
	if string(got) != "paste me" {
		t.Fatalf("got %q, want unwrapped text once bracketed paste is off", got)
	}
}

func TestEmulatorCSISplitAcrossFeedsThroughFullPipeline(t *testing.T) {
	s := NewState(WithSize(5, 20))
	e := NewEmulator(s)
	p := NewParser()

	e.Feed(p, []byte("\x1b["))
	e.Feed(p, []byte("3"))
	e.Feed(p, []byte("1m"))
	e.Feed(p, []byte("Z"))

	cell := s.Cell(0, 0)
	if cell.Char != 'Z' {
		t.Fatalf("got %q, want 'Z'", cell.Char)
	}
	if cell.Fg != Ansi(1) {
		t.Fatalf("got fg %+v, want Ansi(1) (red) applied from the split CSI", cell.Fg)
	}
}
