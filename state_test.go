package termcore

import "testing"

func TestStateDefaultSize(t *testing.T) {
	s := NewState()
	if s.Rows() != DefaultRows || s.Cols() != DefaultCols {
		t.Fatalf("got %dx%d, want %dx%d", s.Rows(), s.Cols(), DefaultRows, DefaultCols)
	}
}

func TestStateWriteCellAdvancesNothingOnItsOwn(t *testing.T) {
	s := NewState(WithSize(5, 10))
	s.WriteCell(0, 0, 'A', false, false)
	cell := s.Cell(0, 0)
	if cell.Char != 'A' {
		t.Fatalf("got %q, want 'A'", cell.Char)
	}
}

func TestStateLineFeedAtBottomScrollsAndPushesScrollback(t *testing.T) {
	s := NewState(WithSize(3, 10))
	for r := 0; r < 3; r++ {
		s.WriteCell(r, 0, rune('A'+r), false, false)
		s.SetCursorCol(0)
	}
	s.MoveCursor(2, 0)
	if s.ScrollbackLen() != 0 {
		t.Fatalf("got scrollback len %d before scroll, want 0", s.ScrollbackLen())
	}
	s.LineFeed()
	if s.ScrollbackLen() != 1 {
		t.Fatalf("got scrollback len %d after scroll, want 1", s.ScrollbackLen())
	}
	top := s.Cell(0, 0)
	if top.Char != 'B' {
		t.Fatalf("got top row char %q after scroll, want 'B'", top.Char)
	}
}

func TestStateLineFeedDoesNotPushScrollbackWhenRegionStartsBelowRowZero(t *testing.T) {
	s := NewState(WithSize(5, 10))
	s.SetScrollRegion(2, 4)
	s.MoveCursor(4, 0)
	s.LineFeed()
	if s.ScrollbackLen() != 0 {
		t.Fatalf("got scrollback len %d, want 0 (scroll region doesn't start at row 0)", s.ScrollbackLen())
	}
}

func TestStateAlternateScreenDoesNotTouchScrollback(t *testing.T) {
	s := NewState(WithSize(3, 10))
	s.EnterAlternateScreen(true)
	s.MoveCursor(2, 0)
	s.LineFeed()
	s.LineFeed()
	if s.ScrollbackLen() != 0 {
		t.Fatalf("got scrollback len %d on alternate screen, want 0", s.ScrollbackLen())
	}
}

func TestStateEraseInDisplayAll(t *testing.T) {
	s := NewState(WithSize(3, 5))
	s.WriteCell(1, 1, 'X', false, false)
	s.EraseInDisplay(EraseDisplayAll)
	if c := s.Cell(1, 1); c.Char != ' ' && c.Char != 0 {
		t.Fatalf("got %q after EraseDisplayAll, want blank", c.Char)
	}
}

func TestStateSaveRestoreCursorRoundTrip(t *testing.T) {
	s := NewState(WithSize(5, 10))
	s.MoveCursor(2, 3)
	sgr := NewSGRState()
	sgr.Attrs |= AttrBold
	s.SetSGR(sgr)
	s.SaveCursor()

	s.MoveCursor(0, 0)
	s.SetSGR(NewSGRState())

	s.RestoreCursor()
	cur := s.Cursor()
	if cur.Row != 2 || cur.Col != 3 {
		t.Fatalf("got cursor %+v, want (2,3)", cur)
	}
	if s.SGR().Attrs&AttrBold == 0 {
		t.Fatalf("got SGR %+v, want AttrBold restored", s.SGR())
	}
}

func TestStateResizePreservesContentWithinNewBounds(t *testing.T) {
	s := NewState(WithSize(5, 10))
	s.WriteCell(0, 0, 'Z', false, false)
	s.Resize(3, 5)
	if s.Rows() != 3 || s.Cols() != 5 {
		t.Fatalf("got %dx%d, want 3x5", s.Rows(), s.Cols())
	}
	if c := s.Cell(0, 0); c.Char != 'Z' {
		t.Fatalf("got %q at (0,0) after resize, want 'Z'", c.Char)
	}
}

func TestStateHyperlinkRegistrationReusesIDForSameURI(t *testing.T) {
	s := NewState()
	id1 := s.RegisterHyperlink("link1", "https://example.com")
	id2 := s.RegisterHyperlink("link1", "https://example.com")
	if id1 != id2 {
		t.Fatalf("got ids %d and %d, want same id reused for identical link", id1, id2)
	}
	hl, ok := s.Hyperlink(id1)
	if !ok || hl.URI != "https://example.com" {
		t.Fatalf("got %+v, ok=%v, want URI https://example.com", hl, ok)
	}
}

func TestStateCursorVisibleDecoupledFromBlink(t *testing.T) {
	s := NewState()
	s.SetCursorVisible(false)
	cur := s.Cursor()
	if cur.Visible {
		t.Fatalf("got Visible=true after SetCursorVisible(false)")
	}
	if !cur.Blink {
		t.Fatalf("got Blink=false, want Blink to remain default true (independent of visibility)")
	}
}
