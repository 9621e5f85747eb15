package termcore

// parserState is one state of the VT500-series escape-sequence parser.
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateOscString
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsIgnore
	stateSosPmApcString
	stateOscEsc       // OscString saw ESC; awaiting '\' to confirm ST
	stateDcsPtEsc     // DcsPassthrough saw ESC; awaiting '\' to confirm ST
	stateDcsIgnoreEsc // DcsIgnore saw ESC; awaiting '\' to confirm ST
	stateSosPmApcEsc  // SosPmApcString saw ESC; awaiting '\' to confirm ST
)

const (
	cCAN byte = 0x18
	cSUB byte = 0x1A
	cESC byte = 0x1B
	cBEL byte = 0x07
	cBS  byte = 0x08
)

// CsiEvent is a complete CSI sequence: ESC [ <private><params><intermediates><final>.
type CsiEvent struct {
	Private       byte // 0 if absent; one of '<', '=', '>', '?' otherwise
	Params        []int64
	Intermediates []byte
	Final         byte
}

// OscEvent is the raw payload between "ESC ]" and its terminator (BEL or ST).
type OscEvent struct {
	Data []byte
}

// DcsEvent is a complete DCS sequence, including the passthrough data up to
// its terminator (ST).
type DcsEvent struct {
	Private       byte
	Params        []int64
	Intermediates []byte
	Final         byte
	Data          []byte
}

// EscEvent is a bare ESC sequence not recognized as CSI/OSC/DCS/SOS/PM/APC.
type EscEvent struct {
	Intermediates []byte
	Final         byte
}

// Sink receives parser events in the order the input bytes imply. A Parser
// never calls back into itself re-entrantly from within a Sink method.
type Sink interface {
	Print(r rune)
	Execute(b byte)
	CSI(ev CsiEvent)
	OSC(ev OscEvent)
	DCS(ev DcsEvent)
	Esc(ev EscEvent)
}

const maxCsiParams = 32

// Parser is a byte-driven ANSI/VT escape-sequence state machine. Its entire
// state fits in the struct, so Feed tolerates sequences split across
// arbitrary call boundaries -- including mid-UTF-8-scalar and mid-escape.
type Parser struct {
	state parserState

	params        []int64
	paramStarted  bool
	intermediates []byte
	private       byte

	oscData []byte

	dcsPrivate       byte
	dcsParams        []int64
	dcsParamStarted  bool
	dcsIntermediates []byte
	dcsFinal         byte
	dcsData          []byte

	// UTF-8 reassembly state for Ground.
	utf8Need  int // remaining continuation bytes expected
	utf8Have  int
	utf8Rune  rune
	utf8Bytes [4]byte
}

// NewParser returns a Parser in its initial Ground state.
func NewParser() *Parser {
	return &Parser{}
}

// Reset returns the parser to its initial Ground state, discarding any
// partially accumulated sequence.
func (p *Parser) Reset() {
	*p = Parser{}
}

// Feed processes bytes in order, emitting events to sink as complete units
// are recognized. Bytes belonging to an incomplete sequence (CSI cut off
// mid-parameter, a UTF-8 scalar cut mid-continuation-byte, an unterminated
// OSC/DCS) are retained in the parser and completed by a later Feed call.
func (p *Parser) Feed(data []byte, sink Sink) {
	for _, b := range data {
		p.step(b, sink)
	}
}

func (p *Parser) step(b byte, sink Sink) {
	// C0 cancel/substitute abort any sequence in progress, from any state,
	// and re-enter Ground without consuming the following byte specially.
	if p.state != stateGround && (b == cCAN || b == cSUB) {
		p.toGround()
		return
	}

	switch p.state {
	case stateGround:
		p.stepGround(b, sink)
	case stateEscape:
		p.stepEscape(b, sink)
	case stateEscapeIntermediate:
		p.stepEscapeIntermediate(b, sink)
	case stateCsiEntry:
		p.stepCsiEntry(b, sink)
	case stateCsiParam:
		p.stepCsiParam(b, sink)
	case stateCsiIntermediate:
		p.stepCsiIntermediate(b, sink)
	case stateCsiIgnore:
		p.stepCsiIgnore(b)
	case stateOscString:
		p.stepOscString(b, sink)
	case stateDcsEntry:
		p.stepDcsEntry(b, sink)
	case stateDcsParam:
		p.stepDcsParam(b, sink)
	case stateDcsIntermediate:
		p.stepDcsIntermediate(b, sink)
	case stateDcsPassthrough:
		p.stepDcsPassthrough(b, sink)
	case stateDcsIgnore:
		p.stepDcsIgnore(b)
	case stateSosPmApcString:
		p.stepSosPmApcString(b)
	case stateOscEsc:
		p.stepStringEsc(b, sink, p.finishOsc)
	case stateDcsPtEsc:
		p.stepStringEsc(b, sink, p.finishDcs)
	case stateDcsIgnoreEsc:
		p.stepStringEsc(b, sink, func(sink Sink) { p.toGround() })
	case stateSosPmApcEsc:
		p.stepStringEsc(b, sink, func(sink Sink) { p.toGround() })
	}
}

// stepStringEsc handles the byte immediately after an ESC seen while
// accumulating an OSC/DCS/SOS/PM/APC string. A '\' confirms a proper ST and
// finish is invoked to emit/close the pending sequence; anything else means
// the ESC begins a new, unrelated sequence, so the pending string is
// discarded and the new byte is reprocessed from Escape.
func (p *Parser) stepStringEsc(b byte, sink Sink, finish func(Sink)) {
	if b == '\\' {
		finish(sink)
		return
	}
	p.toGround()
	p.state = stateEscape
	p.stepEscape(b, sink)
}

func (p *Parser) finishOsc(sink Sink) {
	sink.OSC(OscEvent{Data: p.oscData})
	p.toGround()
}

func (p *Parser) finishDcs(sink Sink) {
	sink.DCS(DcsEvent{
		Private:       p.dcsPrivate,
		Params:        p.dcsParams,
		Intermediates: p.dcsIntermediates,
		Final:         p.dcsFinal,
		Data:          p.dcsData,
	})
	p.toGround()
}

func (p *Parser) toGround() {
	p.state = stateGround
	p.params = nil
	p.paramStarted = false
	p.intermediates = nil
	p.private = 0
	p.oscData = nil
	p.dcsPrivate = 0
	p.dcsParams = nil
	p.dcsParamStarted = false
	p.dcsIntermediates = nil
	p.dcsData = nil
}

// --- Ground: UTF-8 reassembly, C0 execute, ESC entry ---

func (p *Parser) stepGround(b byte, sink Sink) {
	if p.utf8Need > 0 {
		if b&0xC0 == 0x80 {
			p.utf8Rune = p.utf8Rune<<6 | rune(b&0x3F)
			p.utf8Have++
			if p.utf8Have == p.utf8Need {
				sink.Print(p.utf8Rune)
				p.utf8Need = 0
			}
			return
		}
		// Invalid continuation: resync with replacement, reprocess b fresh.
		sink.Print('�')
		p.utf8Need = 0
	}

	switch {
	case b < 0x20 || b == 0x7F:
		if b == cESC {
			p.state = stateEscape
			return
		}
		sink.Execute(b)
	case b < 0x80:
		sink.Print(rune(b))
	case b&0xE0 == 0xC0:
		p.utf8Rune = rune(b & 0x1F)
		p.utf8Need, p.utf8Have = 1, 0
	case b&0xF0 == 0xE0:
		p.utf8Rune = rune(b & 0x0F)
		p.utf8Need, p.utf8Have = 2, 0
	case b&0xF8 == 0xF0:
		p.utf8Rune = rune(b & 0x07)
		p.utf8Need, p.utf8Have = 3, 0
	default:
		sink.Print('�')
	}
}

// --- Escape ---

func (p *Parser) stepEscape(b byte, sink Sink) {
	switch {
	case b == '[':
		p.private = 0
		p.params = nil
		p.paramStarted = false
		p.intermediates = nil
		p.state = stateCsiEntry
	case b == ']':
		p.oscData = nil
		p.state = stateOscString
	case b == 'P':
		p.dcsPrivate = 0
		p.dcsParams = nil
		p.dcsParamStarted = false
		p.dcsIntermediates = nil
		p.state = stateDcsEntry
	case b == 'X' || b == '^' || b == '_':
		p.state = stateSosPmApcString
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		p.state = stateEscapeIntermediate
	case b >= 0x30 && b <= 0x7E:
		sink.Esc(EscEvent{Intermediates: p.intermediates, Final: b})
		p.toGround()
	case b < 0x20:
		sink.Execute(b)
	default:
		p.toGround()
	}
}

func (p *Parser) stepEscapeIntermediate(b byte, sink Sink) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x30 && b <= 0x7E:
		sink.Esc(EscEvent{Intermediates: p.intermediates, Final: b})
		p.toGround()
	case b < 0x20:
		sink.Execute(b)
	default:
		p.toGround()
	}
}

// --- CSI ---

func (p *Parser) stepCsiEntry(b byte, sink Sink) {
	switch {
	case b >= '0' && b <= '9':
		p.startParamIfNeeded()
		p.accumulateDigit(b)
		p.state = stateCsiParam
	case b == ';' || b == ':':
		if !p.paramStarted && len(p.params) < maxCsiParams {
			p.params = append(p.params, 0)
		}
		p.paramStarted = false
		p.state = stateCsiParam
	case b == '<' || b == '=' || b == '>' || b == '?':
		p.private = b
		p.state = stateCsiParam
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.finishCsi(b, sink)
	case b < 0x20:
		sink.Execute(b)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) stepCsiParam(b byte, sink Sink) {
	switch {
	case b >= '0' && b <= '9':
		p.startParamIfNeeded()
		p.accumulateDigit(b)
	case b == ';' || b == ':':
		if !p.paramStarted && len(p.params) < maxCsiParams {
			p.params = append(p.params, 0)
		}
		p.paramStarted = false
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.finishCsi(b, sink)
	case b < 0x20:
		sink.Execute(b)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) stepCsiIntermediate(b byte, sink Sink) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x40 && b <= 0x7E:
		p.finishCsi(b, sink)
	case b < 0x20:
		sink.Execute(b)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) stepCsiIgnore(b byte) {
	if b >= 0x40 && b <= 0x7E {
		p.toGround()
	}
}

// startParamIfNeeded ensures p.params has a slot being accumulated into;
// called before the first digit of each parameter.
func (p *Parser) startParamIfNeeded() {
	if !p.paramStarted {
		if len(p.params) < maxCsiParams {
			p.params = append(p.params, 0)
		}
		p.paramStarted = true
	}
}

func (p *Parser) accumulateDigit(b byte) {
	if len(p.params) == 0 || len(p.params) > maxCsiParams {
		return
	}
	i := len(p.params) - 1
	p.params[i] = p.params[i]*10 + int64(b-'0')
}

func (p *Parser) finishCsi(final byte, sink Sink) {
	sink.CSI(CsiEvent{
		Private:       p.private,
		Params:        p.params,
		Intermediates: p.intermediates,
		Final:         final,
	})
	p.toGround()
}

// --- OSC ---

func (p *Parser) stepOscString(b byte, sink Sink) {
	switch b {
	case cBEL:
		p.finishOsc(sink)
	case cESC:
		p.state = stateOscEsc
	default:
		if b >= 0x20 || b == '\t' {
			p.oscData = append(p.oscData, b)
		}
	}
}

func (p *Parser) stepDcsEntry(b byte, sink Sink) {
	switch {
	case b >= '0' && b <= '9':
		p.dcsStartParamIfNeeded()
		p.dcsAccumulateDigit(b)
		p.state = stateDcsParam
	case b == ';' || b == ':':
		p.dcsStartParamIfNeeded()
		p.dcsParams = append(p.dcsParams, 0)
		p.dcsParamStarted = false
		p.state = stateDcsParam
	case b == '<' || b == '=' || b == '>' || b == '?':
		p.dcsPrivate = b
		p.state = stateDcsParam
	case b >= 0x20 && b <= 0x2F:
		p.dcsIntermediates = append(p.dcsIntermediates, b)
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.dcsData = nil
		p.dcsFinal = b
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) stepDcsParam(b byte, sink Sink) {
	switch {
	case b >= '0' && b <= '9':
		p.dcsStartParamIfNeeded()
		p.dcsAccumulateDigit(b)
	case b == ';' || b == ':':
		p.dcsStartParamIfNeeded()
		p.dcsParams = append(p.dcsParams, 0)
		p.dcsParamStarted = false
	case b >= 0x20 && b <= 0x2F:
		p.dcsIntermediates = append(p.dcsIntermediates, b)
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.dcsData = nil
		p.dcsFinal = b
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) stepDcsIntermediate(b byte, sink Sink) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.dcsIntermediates = append(p.dcsIntermediates, b)
	case b >= 0x40 && b <= 0x7E:
		p.dcsData = nil
		p.dcsFinal = b
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) stepDcsPassthrough(b byte, sink Sink) {
	if b == cESC {
		p.state = stateDcsPtEsc
		return
	}
	p.dcsData = append(p.dcsData, b)
}

func (p *Parser) stepDcsIgnore(b byte) {
	if b == cESC {
		p.state = stateDcsIgnoreEsc
	}
}

func (p *Parser) stepSosPmApcString(b byte) {
	if b == cESC {
		p.state = stateSosPmApcEsc
	}
}

func (p *Parser) dcsStartParamIfNeeded() {
	if !p.dcsParamStarted {
		p.dcsParams = append(p.dcsParams, 0)
		p.dcsParamStarted = true
	}
}

func (p *Parser) dcsAccumulateDigit(b byte) {
	if len(p.dcsParams) == 0 {
		return
	}
	i := len(p.dcsParams) - 1
	p.dcsParams[i] = p.dcsParams[i]*10 + int64(b-'0')
}
