package termcore

import (
	"reflect"
	"testing"
)

// recordingSink captures every Sink call in order for assertion.
type recordingSink struct {
	prints []rune
	execs  []byte
	csis   []CsiEvent
	oscs   []OscEvent
	dcss   []DcsEvent
	escs   []EscEvent
}

func (s *recordingSink) Print(r rune)      { s.prints = append(s.prints, r) }
func (s *recordingSink) Execute(b byte)    { s.execs = append(s.execs, b) }
func (s *recordingSink) CSI(ev CsiEvent)   { s.csis = append(s.csis, ev) }
func (s *recordingSink) OSC(ev OscEvent)   { s.oscs = append(s.oscs, ev) }
func (s *recordingSink) DCS(ev DcsEvent)   { s.dcss = append(s.dcss, ev) }
func (s *recordingSink) Esc(ev EscEvent)   { s.escs = append(s.escs, ev) }

var _ Sink = (*recordingSink)(nil)

func TestParserPrintablesGoToGround(t *testing.T) {
	p := NewParser()
	sink := &recordingSink{}
	p.Feed([]byte("hello"), sink)

	if string(sink.prints) != "hello" {
		t.Fatalf("got prints %q, want %q", string(sink.prints), "hello")
	}
}

func TestParserCSIFinal(t *testing.T) {
	p := NewParser()
	sink := &recordingSink{}
	p.Feed([]byte("\x1b[31m"), sink)

	if len(sink.csis) != 1 {
		t.Fatalf("got %d CSI events, want 1", len(sink.csis))
	}
	ev := sink.csis[0]
	if ev.Final != 'm' || !reflect.DeepEqual(ev.Params, []int64{31}) {
		t.Fatalf("got %+v, want final=m params=[31]", ev)
	}
}

func TestParserCSISplitAcrossChunks(t *testing.T) {
	p := NewParser()
	sink := &recordingSink{}
	p.Feed([]byte("\x1b["), sink)
	p.Feed([]byte("3"), sink)
	p.Feed([]byte("1m"), sink)
	p.Feed([]byte("Z"), sink)

	if len(sink.csis) != 1 {
		t.Fatalf("got %d CSI events, want 1", len(sink.csis))
	}
	if sink.csis[0].Final != 'm' || !reflect.DeepEqual(sink.csis[0].Params, []int64{31}) {
		t.Fatalf("got %+v, want final=m params=[31]", sink.csis[0])
	}
	if len(sink.prints) != 1 || sink.prints[0] != 'Z' {
		t.Fatalf("got prints %v, want ['Z']", sink.prints)
	}
}

func TestParserOSCTerminatedByBEL(t *testing.T) {
	p := NewParser()
	sink := &recordingSink{}
	p.Feed([]byte("\x1b]0;title\x07"), sink)

	if len(sink.oscs) != 1 || string(sink.oscs[0].Data) != "0;title" {
		t.Fatalf("got %+v, want one OSC with data %q", sink.oscs, "0;title")
	}
}

func TestParserOSCTerminatedBySTAcrossChunks(t *testing.T) {
	p := NewParser()
	sink := &recordingSink{}
	p.Feed([]byte("\x1b]0;title"), sink)
	p.Feed([]byte("\x1b"), sink)
	p.Feed([]byte("\\"), sink)

	if len(sink.oscs) != 1 || string(sink.oscs[0].Data) != "0;title" {
		t.Fatalf("got %+v, want one OSC with data %q", sink.oscs, "0;title")
	}
}

func TestParserOSCEscNotBackslashReentersGround(t *testing.T) {
	p := NewParser()
	sink := &recordingSink{}
	// ESC inside an OSC string followed by a non-'\' byte aborts the OSC
	// string (no terminator event) and the byte after ESC is parsed fresh.
	p.Feed([]byte("\x1b]0;title\x1bZ"), sink)

	if len(sink.oscs) != 0 {
		t.Fatalf("got %d OSC events, want 0 (string aborted, not terminated)", len(sink.oscs))
	}
	if len(sink.escs) != 1 || sink.escs[0].Final != 'Z' {
		t.Fatalf("got escs %+v, want one Esc with final 'Z'", sink.escs)
	}
}

func TestParserUTF8MultibyteReassembly(t *testing.T) {
	p := NewParser()
	sink := &recordingSink{}
	// "café" - é is 2 bytes (0xC3 0xA9), split across two feeds.
	p.Feed([]byte("caf\xc3"), sink)
	p.Feed([]byte("\xa9"), sink)

	if string(sink.prints) != "café" {
		t.Fatalf("got %q, want %q", string(sink.prints), "café")
	}
}

func TestParserUTF8InvalidContinuationResyncsToReplacementChar(t *testing.T) {
	p := NewParser()
	sink := &recordingSink{}
	// 0xC3 expects one continuation byte; 'x' is not one, so it resyncs to
	// U+FFFD and then parses 'x' as a fresh ASCII byte.
	p.Feed([]byte{0xC3, 'x'}, sink)

	want := []rune{0xFFFD, 'x'}
	if !reflect.DeepEqual(sink.prints, want) {
		t.Fatalf("got %v, want %v", sink.prints, want)
	}
}

func TestParserCANAbortsToGround(t *testing.T) {
	p := NewParser()
	sink := &recordingSink{}
	p.Feed([]byte("\x1b[31\x18m"), sink)

	if len(sink.csis) != 0 {
		t.Fatalf("got %d CSI events, want 0 (aborted by CAN)", len(sink.csis))
	}
	if len(sink.prints) != 1 || sink.prints[0] != 'm' {
		t.Fatalf("got prints %v, want ['m'] (byte after CAN parsed fresh)", sink.prints)
	}
}

func TestParserPrivateMarker(t *testing.T) {
	p := NewParser()
	sink := &recordingSink{}
	p.Feed([]byte("\x1b[?25h"), sink)

	if len(sink.csis) != 1 {
		t.Fatalf("got %d CSI events, want 1", len(sink.csis))
	}
	ev := sink.csis[0]
	if ev.Private != '?' || ev.Final != 'h' || !reflect.DeepEqual(ev.Params, []int64{25}) {
		t.Fatalf("got %+v, want private=? final=h params=[25]", ev)
	}
}

func TestParserDCSIgnoredButTerminates(t *testing.T) {
	p := NewParser()
	sink := &recordingSink{}
	p.Feed([]byte("\x1bPsome data\x1b\\A"), sink)

	if len(sink.dcss) != 1 {
		t.Fatalf("got %d DCS events, want 1", len(sink.dcss))
	}
	if len(sink.prints) != 1 || sink.prints[0] != 'A' {
		t.Fatalf("got prints %v, want ['A'] after DCS terminator", sink.prints)
	}
}
