package termcore

import "fmt"

// PtyCreateError wraps an openpty/fork/exec failure during session creation.
type PtyCreateError struct {
	Reason string
	Err    error
}

func (e *PtyCreateError) Error() string {
	return fmt.Sprintf("pty create failed: %s: %v", e.Reason, e.Err)
}

func (e *PtyCreateError) Unwrap() error { return e.Err }

// WriteError wraps an unrecoverable write to the PTY master.
type WriteError struct {
	Reason string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("pty write failed: %s: %v", e.Reason, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ErrNotRunning is returned by PTYSession operations attempted while the
// session is Uninitialized or Exited.
var ErrNotRunning = fmt.Errorf("pty session is not running")

// ResizeError wraps a window-size ioctl failure. Non-fatal: the session
// keeps running with its prior dimensions.
type ResizeError struct {
	Reason string
	Err    error
}

func (e *ResizeError) Error() string {
	return fmt.Sprintf("pty resize failed: %s: %v", e.Reason, e.Err)
}

func (e *ResizeError) Unwrap() error { return e.Err }

// SignalError wraps a kill(2) failure. Non-fatal.
type SignalError struct {
	Reason string
	Err    error
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("pty signal failed: %s: %v", e.Reason, e.Err)
}

func (e *SignalError) Unwrap() error { return e.Err }
