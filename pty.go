package termcore

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// SessionStatus is a PTYSession's lifecycle state. Uninitialized -> Running
// -> Exited(code); there is no transition back out of Exited.
type SessionStatus int

const (
	SessionUninitialized SessionStatus = iota
	SessionRunning
	SessionExited
)

func (s SessionStatus) String() string {
	switch s {
	case SessionUninitialized:
		return "uninitialized"
	case SessionRunning:
		return "running"
	case SessionExited:
		return "exited"
	default:
		return "unknown"
	}
}

const ptyReadChunk = 4096

// PTYSessionConfig configures Create.
type PTYSessionConfig struct {
	Shell string
	Args  []string
	Env   []string // merged over os.Environ(); TERM defaults to xterm-256color if unset
	Dir   string
	Rows  int
	Cols  int
	// OnOutput receives each chunk read from the PTY, in order, on the
	// reader goroutine. Implementations must not block significantly --
	// typically this is Parser.Feed wrapped to forward to an Emulator
	// channel.
	OnOutput func([]byte)
	// OnExit is called exactly once when the child process exits or the
	// read or write loop hits a non-recoverable error, with the resolved
	// exit code.
	OnExit func(code int)
	Logger zerolog.Logger
}

// PTYSession owns a PTY master file descriptor and the child shell process:
// a non-blocking read loop, a serialized write queue, resize, signal
// delivery, and termination. All operations are safe for concurrent use.
type PTYSession struct {
	mu     sync.Mutex
	status SessionStatus
	code   int

	cmd *exec.Cmd
	pty *os.File

	cfg PTYSessionConfig

	writeCh   chan []byte
	writeDone chan struct{}

	cancel context.CancelFunc
}

// Create opens a PTY, forks the configured shell attached to it, and starts
// the reader and writer goroutines. TERM defaults to xterm-256color when
// cfg.Env does not set it.
func Create(ctx context.Context, cfg PTYSessionConfig) (*PTYSession, error) {
	if cfg.Rows <= 0 {
		cfg.Rows = DefaultRows
	}
	if cfg.Cols <= 0 {
		cfg.Cols = DefaultCols
	}
	if cfg.Shell == "" {
		cfg.Shell = defaultShell()
	}

	cmd := exec.Command(cfg.Shell, cfg.Args...)
	cmd.Dir = cfg.Dir
	cmd.Env = mergeEnviron(cfg.Env)
	cmd.SysProcAttr = sessionProcAttr()

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(cfg.Rows), Cols: uint16(cfg.Cols)})
	if err != nil {
		return nil, &PtyCreateError{Reason: "openpty/fork/exec", Err: err}
	}

	runCtx, cancel := context.WithCancel(ctx)
	s := &PTYSession{
		status:    SessionRunning,
		cmd:       cmd,
		pty:       ptmx,
		cfg:       cfg,
		writeCh:   make(chan []byte, 64),
		writeDone: make(chan struct{}),
		cancel:    cancel,
	}

	go s.readLoop(runCtx)
	go s.writeLoop(runCtx)
	go s.waitLoop()

	return s, nil
}

// sessionProcAttr starts the child in a new session so its PID is also its
// process group leader, letting Signal/Terminate target the whole group via
// kill(-pid, sig).
func sessionProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

func mergeEnviron(extra []string) []string {
	env := os.Environ()
	hasTerm := false
	for _, kv := range env {
		if len(kv) >= 5 && kv[:5] == "TERM=" {
			hasTerm = true
			break
		}
	}
	for _, kv := range extra {
		if len(kv) >= 5 && kv[:5] == "TERM=" {
			hasTerm = true
		}
	}
	if !hasTerm {
		extra = append(extra, "TERM=xterm-256color")
	}
	return append(env, extra...)
}

// readLoop reads up to ptyReadChunk bytes at a time and forwards them to
// cfg.OnOutput, until EOF, a non-recoverable read error, or ctx
// cancellation.
func (s *PTYSession) readLoop(ctx context.Context) {
	buf := make([]byte, ptyReadChunk)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n, err := s.pty.Read(buf)
		if n > 0 && s.cfg.OnOutput != nil {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.cfg.OnOutput(chunk)
		}
		if err != nil {
			if err != io.EOF {
				s.cfg.Logger.Debug().Err(err).Msg("pty read error")
			}
			// EOF/EIO usually means the child exited; give waitLoop a
			// moment to record the real exit status before falling back
			// to -1.
			deadline := time.Now().Add(100 * time.Millisecond)
			for s.Status() == SessionRunning && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			s.finish(-1)
			return
		}
	}
}

// writeLoop serializes writes to the PTY master, retrying partial writes.
func (s *PTYSession) writeLoop(ctx context.Context) {
	defer close(s.writeDone)
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-s.writeCh:
			if !ok {
				return
			}
			if err := s.writeAll(data); err != nil {
				s.cfg.Logger.Debug().Err(err).Msg("pty write error")
				s.finish(-1)
				return
			}
		}
	}
}

func (s *PTYSession) writeAll(data []byte) error {
	for len(data) > 0 {
		n, err := s.pty.Write(data)
		if n > 0 {
			data = data[n:]
		}
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return &WriteError{Reason: "write", Err: err}
		}
	}
	return nil
}

// waitLoop reaps the child and resolves its exit code once it exits on its
// own, without the caller tearing it down via Terminate first.
func (s *PTYSession) waitLoop() {
	err := s.cmd.Wait()
	code := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				code = 128 + int(ws.Signal())
			}
		} else {
			code = 128
		}
	}
	s.finish(code)
}

// finish transitions the session to Exited exactly once and notifies
// cfg.OnExit.
func (s *PTYSession) finish(code int) {
	s.mu.Lock()
	if s.status == SessionExited {
		s.mu.Unlock()
		return
	}
	s.status = SessionExited
	s.code = code
	onExit := s.cfg.OnExit
	s.mu.Unlock()

	if onExit != nil {
		onExit(code)
	}
}

// Status returns the session's current lifecycle state.
func (s *PTYSession) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// ExitCode returns the cached exit code; only meaningful once Status is
// SessionExited. WIFEXITED processes report their own code; a process
// killed by signal N reports 128+N.
func (s *PTYSession) ExitCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Write enqueues data for the write goroutine. Returns ErrNotRunning if the
// session has already exited.
func (s *PTYSession) Write(data []byte) error {
	s.mu.Lock()
	running := s.status == SessionRunning
	s.mu.Unlock()
	if !running {
		return ErrNotRunning
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.writeCh <- cp
	return nil
}

// Resize sets the PTY window size and, if notify is non-nil, invokes it
// synchronously (the caller typically passes a closure calling
// State.Resize).
func (s *PTYSession) Resize(rows, cols int, notify func(rows, cols int)) error {
	s.mu.Lock()
	running := s.status == SessionRunning
	s.mu.Unlock()
	if !running {
		return ErrNotRunning
	}
	if err := pty.Setsize(s.pty, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		return &ResizeError{Reason: "TIOCSWINSZ", Err: err}
	}
	if notify != nil {
		notify(rows, cols)
	}
	return nil
}

// Signal delivers sig to the child's process group.
func (s *PTYSession) Signal(sig unix.Signal) error {
	s.mu.Lock()
	running := s.status == SessionRunning
	pid := 0
	if s.cmd.Process != nil {
		pid = s.cmd.Process.Pid
	}
	s.mu.Unlock()
	if !running {
		return ErrNotRunning
	}
	if err := unix.Kill(-pid, sig); err != nil {
		return &SignalError{Reason: fmt.Sprintf("kill(-%d, %v)", pid, sig), Err: err}
	}
	return nil
}

// Interrupt sends SIGINT to the child's process group.
func (s *PTYSession) Interrupt() error { return s.Signal(unix.SIGINT) }

// Suspend sends SIGTSTP to the child's process group.
func (s *PTYSession) Suspend() error { return s.Signal(unix.SIGTSTP) }

// Quit sends SIGQUIT to the child's process group.
func (s *PTYSession) Quit() error { return s.Signal(unix.SIGQUIT) }

// EOF writes the EOF byte (0x04) to the PTY.
func (s *PTYSession) EOF() error { return s.Write([]byte{0x04}) }

// Terminate sends SIGHUP, waits up to ~100ms for the child to exit, then
// sends SIGKILL, closes the master FD, and cancels the reader/writer
// goroutines. Idempotent -- a no-op once already Exited.
func (s *PTYSession) Terminate() {
	s.mu.Lock()
	if s.status == SessionExited {
		s.mu.Unlock()
		return
	}
	pid := 0
	if s.cmd.Process != nil {
		pid = s.cmd.Process.Pid
	}
	s.mu.Unlock()

	if pid != 0 {
		_ = unix.Kill(-pid, unix.SIGHUP)
	}

	exited := make(chan struct{})
	go func() {
		s.cmd.Wait()
		close(exited)
	}()

	select {
	case <-exited:
	case <-time.After(100 * time.Millisecond):
		if pid != 0 {
			_ = unix.Kill(-pid, unix.SIGKILL)
		}
	}

	s.cancel()
	_ = s.pty.Close()
	s.finish(-1)
}

// Environ returns the environment the child process was started with.
func (s *PTYSession) Environ() []string {
	return s.cmd.Env
}

// WorkingDirectory returns the directory the child process was started in.
func (s *PTYSession) WorkingDirectory() string {
	return s.cmd.Dir
}
