// Package termcore implements the terminal core of a VT220/xterm-class
// terminal emulator: a PTY session, a byte-driven ANSI/VT parser, and a
// stateful screen/cursor/attribute emulator whose grid a renderer reads.
//
// termcore owns no display and no window. It is consumed by wrapping a
// shell in a PTYSession, feeding the bytes it produces through a
// Parser into an Emulator, and having a renderer read State through
// its Snapshot or read-capability surface.
//
// # Quick Start
//
//	state := termcore.NewState(termcore.WithSize(24, 80))
//	emu := termcore.NewEmulator(state)
//	parser := termcore.NewParser()
//
//	sess, err := termcore.Create(ctx, termcore.PTYSessionConfig{
//	    Shell: "/bin/zsh",
//	    Rows:  24,
//	    Cols:  80,
//	    OnOutput: func(chunk []byte) {
//	        parser.Feed(chunk, emu)
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Architecture
//
// Five components, matching the data flow PTYSession -> Parser ->
// Emulator -> State -> renderer:
//
//   - [Grid]: fixed-capacity 2-D array of [Cell], with region scroll,
//     insert/delete, resize and text extraction.
//   - [State]: owns the primary and alternate Grid, cursor, saved
//     cursor, modes, scroll region, tab stops, SGR cursor, scrollback.
//   - [Parser]: byte-driven VT500-series state machine that emits
//     Print/Execute/CSI/OSC/DCS/Esc events to a [Sink].
//   - [Emulator]: binds Parser events to State mutations.
//   - [PTYSession]: owns the PTY master file descriptor and child
//     process; runs the non-blocking read loop and serialized writer.
//
// # Dual Buffers
//
// State maintains two Grids: the primary buffer (with scrollback) and
// the alternate buffer (full-screen apps such as vim or htop, no
// scrollback). DEC private mode 1049 switches between them.
//
// # Colors and Attributes
//
// Each [Cell] stores a base Unicode scalar plus foreground/background
// [Color] (a closed tagged variant: default, ANSI 0-15, 256-color
// palette, or 24-bit true color) and an [Attrs] bitset (bold, dim,
// italic, five underline styles, blink, inverse, hidden, strikethrough).
// Resolving a Color to RGB is the renderer's job; see [ResolveColor]
// for the reference palette this module ships for that purpose.
//
// # Scrollback
//
// Lines scrolled off the top of the primary buffer are captured via a
// [ScrollbackProvider]; the built-in [MemoryScrollback] is a bounded
// ring buffer. The alternate screen never writes to scrollback.
//
// # Shell Integration
//
// OSC 7 (current working directory) and OSC 133 (semantic prompt
// marks) update a [ShellIntegrationState] sidecar, read back through
// [State.ShellIntegration], with [State.NextPromptRow] and
// [State.PrevPromptRow] for prompt-based scrollback navigation.
//
// # Snapshots
//
// [State.Snapshot] captures a read-only view of the active grid at
// three levels of detail (text only, styled runs, or every cell) for
// rendering or serialization. It takes no reference back into State.
//
// # Thread Safety
//
// State is mutated by exactly one logical owner (the Emulator task);
// all read access, including Snapshot, goes through a sync.RWMutex so
// a concurrent renderer can observe state without blocking the
// emulator for longer than a lock acquisition.
//
// # Key Encoding
//
// [EncodeKey], [EncodeRune] and [EncodePaste] turn an already-decoded
// key event plus the current
// terminal modes into the exact byte sequence xterm would send for
// arrow keys, function keys, modifier combinations, and bracketed
// paste -- the inverse direction of the Parser/Emulator pipeline.
//
// # Non-goals
//
// No layout engine, no input-method composition beyond UTF-8 decoding
// and wide-character width classification, no network transport, no
// session serialization beyond [State.Snapshot], no inline image
// protocols (Sixel/Kitty) -- those are rendering concerns that live
// outside this module.
package termcore
