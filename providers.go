package termcore

import "io"

// ResponseProvider writes terminal responses (DSR/DA replies, OSC 52
// answers) back to the PTY. Typically the write side of a PTYSession.
type ResponseProvider = io.Writer

// NoopResponse discards all response data.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (int, error) { return len(p), nil }

// BellProvider handles BEL (0x07) events. The core only toggles a
// monotonic counter (State.BellCount); a BellProvider is an optional
// extra notification hook for hosts that want a push signal instead of
// polling the counter.
type BellProvider interface {
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// TitleProvider handles window title changes (OSC 0/2) and the
// title stack (OSC 22/23 in some terminals; exposed here as
// Push/Pop for hosts that support it).
type TitleProvider interface {
	SetTitle(title string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// ClipboardProvider handles clipboard read/write (OSC 52). termcore
// never touches the OS clipboard itself -- that is the host's concern.
type ClipboardProvider interface {
	// Read returns content for the given selection ('c' clipboard, 'p'
	// primary selection).
	Read(selection byte) string
	// Write stores data for the given selection.
	Write(selection byte, data []byte)
}

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(selection byte) string         { return "" }
func (NoopClipboard) Write(selection byte, data []byte) {}

// ScrollbackProvider stores rows scrolled off the top of the primary
// buffer. The built-in MemoryScrollback is a bounded ring buffer; a
// host may substitute disk- or database-backed storage.
type ScrollbackProvider interface {
	// Push appends a row to the tail, dropping the oldest row if the
	// provider is at capacity.
	Push(row []Cell)
	// Len returns the current number of stored rows.
	Len() int
	// Line returns the row at index (0 = oldest). Returns nil if out
	// of range.
	Line(index int) []Cell
	// Clear empties the provider.
	Clear()
	// SetMaxLines sets the maximum capacity, trimming from the head if
	// the new limit is smaller than the current length.
	SetMaxLines(max int)
	// MaxLines returns the current capacity.
	MaxLines() int
}

// NoopScrollback discards everything pushed to it; installing it as
// the ScrollbackProvider turns scrollback retention off. (The alternate
// screen never reaches the provider at all: State skips the push there.)
type NoopScrollback struct{}

func (NoopScrollback) Push(row []Cell)        {}
func (NoopScrollback) Len() int                { return 0 }
func (NoopScrollback) Line(index int) []Cell   { return nil }
func (NoopScrollback) Clear()                  {}
func (NoopScrollback) SetMaxLines(max int)     {}
func (NoopScrollback) MaxLines() int           { return 0 }

// RecordingProvider captures raw PTY bytes before parsing, for replay
// or debugging.
type RecordingProvider interface {
	Record(data []byte)
	Data() []byte
	Clear()
}

// NoopRecording discards all input recordings.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

var (
	_ BellProvider       = NoopBell{}
	_ TitleProvider      = NoopTitle{}
	_ ClipboardProvider  = NoopClipboard{}
	_ ScrollbackProvider = NoopScrollback{}
	_ RecordingProvider  = NoopRecording{}
	_ ResponseProvider   = NoopResponse{}
)
