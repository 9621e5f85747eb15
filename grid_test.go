package termcore

import "testing"

func TestGridScrollUpThenScrollDownRoundTrip(t *testing.T) {
	g := NewGrid(4, 5)
	for r := 0; r < 4; r++ {
		g.Set(r, 0, Cell{Char: rune('A' + r)})
	}

	fillUp := Cell{Char: '-'}
	g.ScrollUp(0, 3, fillUp)
	want := []rune{'B', 'C', 'D', '-'}
	for r, w := range want {
		if got := g.Get(r, 0).Char; got != w {
			t.Fatalf("after ScrollUp, row %d got %q, want %q", r, got, w)
		}
	}

	fillDown := Cell{Char: '+'}
	g.ScrollDown(0, 3, fillDown)
	want = []rune{'+', 'B', 'C', 'D'}
	for r, w := range want {
		if got := g.Get(r, 0).Char; got != w {
			t.Fatalf("after ScrollDown, row %d got %q, want %q", r, got, w)
		}
	}
}

func TestGridScrollUpOutOfRangeRegionIsNoop(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(0, 0, Cell{Char: 'A'})
	g.ScrollUp(1, 0, Cell{Char: ' '}) // top > bottom
	if got := g.Get(0, 0).Char; got != 'A' {
		t.Fatalf("got %q, want unchanged 'A' for an invalid scroll region", got)
	}
}

func TestGridInsertBlanksClampsWhenNExceedsRemainingWidth(t *testing.T) {
	g := NewGrid(1, 5)
	for c, r := range "ABCDE" {
		g.Set(0, c, Cell{Char: r})
	}

	g.InsertBlanks(0, 3, 10, Cell{Char: '.'})

	want := "ABC.."
	for c, w := range want {
		if got := g.Get(0, c).Char; got != rune(w) {
			t.Fatalf("got %q at col %d, want %q", got, c, w)
		}
	}
}

func TestGridDeleteCellsClampsWhenNExceedsRemainingWidth(t *testing.T) {
	g := NewGrid(1, 5)
	for c, r := range "ABCDE" {
		g.Set(0, c, Cell{Char: r})
	}

	g.DeleteCells(0, 3, 10, Cell{Char: '.'})

	want := "ABC.."
	for c, w := range want {
		if got := g.Get(0, c).Char; got != rune(w) {
			t.Fatalf("got %q at col %d, want %q", got, c, w)
		}
	}
}

func TestGridExtractTextJoinsWrappedRowsWithoutNewline(t *testing.T) {
	g := NewGrid(3, 3)
	rows := []string{"ABC", "DEF", "GHI"}
	for r, s := range rows {
		for c, ch := range s {
			g.Set(r, c, Cell{Char: ch})
		}
	}
	g.SetWrapped(0, true)

	got := g.ExtractText(0, 0, 2, 2)
	want := "ABCDEF\nGHI"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGridExtractTextInsertsNewlineWhenNotWrapped(t *testing.T) {
	g := NewGrid(2, 3)
	rows := []string{"ABC", "DEF"}
	for r, s := range rows {
		for c, ch := range s {
			g.Set(r, c, Cell{Char: ch})
		}
	}

	got := g.ExtractText(0, 0, 1, 2)
	want := "ABC\nDEF"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGridExtractTextSkipsWideContinuationCell(t *testing.T) {
	g := NewGrid(1, 5)
	g.Set(0, 0, Cell{Char: 'x'})
	g.Set(0, 1, Cell{Char: 'y'})
	g.Set(0, 2, Cell{Char: '字', IsWide: true})
	g.Set(0, 3, Cell{IsWideContinuation: true})
	g.Set(0, 4, Cell{Char: 'z'})

	got := g.ExtractText(0, 0, 0, 4)
	want := "xy字z"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGridSameRowWideCellWritePairsWithContinuation(t *testing.T) {
	g := NewGrid(1, 5)
	g.Set(0, 2, Cell{Char: '字', IsWide: true})
	g.Set(0, 3, Cell{Char: ' ', IsWideContinuation: true})

	wide := g.Get(0, 2)
	cont := g.Get(0, 3)
	if !wide.IsWide || wide.Char != '字' {
		t.Fatalf("got %+v, want IsWide with char '字'", wide)
	}
	if !cont.IsWideContinuation {
		t.Fatalf("got %+v, want IsWideContinuation", cont)
	}
}

func TestGridReadsOutOfBoundsReturnBlankCell(t *testing.T) {
	g := NewGrid(2, 2)
	if got := g.Get(5, 5); got.Char != ' ' {
		t.Fatalf("got %+v, want a blank cell for out-of-range coordinates", got)
	}
}

func TestGridResizePreservesOverlapAndPadsNewArea(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(0, 0, Cell{Char: 'A'})
	g.Resize(3, 3)

	if got := g.Get(0, 0).Char; got != 'A' {
		t.Fatalf("got %q, want 'A' preserved after growing", got)
	}
	if got := g.Get(2, 2).Char; got != ' ' {
		t.Fatalf("got %q, want blank in newly added area", got)
	}
}
