package termcore

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestPTYSessionEchoRoundTrip(t *testing.T) {
	var mu sync.Mutex
	var out strings.Builder
	gotOutput := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := Create(ctx, PTYSessionConfig{
		Shell: "/bin/sh",
		Args:  []string{"-c", "cat"},
		Rows:  24,
		Cols:  80,
		OnOutput: func(chunk []byte) {
			mu.Lock()
			out.Write(chunk)
			text := out.String()
			mu.Unlock()
			if strings.Contains(text, "hello-pty") {
				select {
				case gotOutput <- struct{}{}:
				default:
				}
			}
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer s.Terminate()

	if s.Status() != SessionRunning {
		t.Fatalf("got status %v, want SessionRunning", s.Status())
	}

	if err := s.Write([]byte("hello-pty\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	select {
	case <-gotOutput:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for echoed output")
	}
}

func TestPTYSessionExitCodeAfterProcessExits(t *testing.T) {
	exited := make(chan int, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := Create(ctx, PTYSessionConfig{
		Shell: "/bin/sh",
		Args:  []string{"-c", "exit 7"},
		Rows:  24,
		Cols:  80,
		OnExit: func(code int) {
			exited <- code
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer s.Terminate()

	select {
	case code := <-exited:
		if code != 7 {
			t.Fatalf("got exit code %d, want 7", code)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for process exit")
	}

	if s.Status() != SessionExited {
		t.Fatalf("got status %v, want SessionExited", s.Status())
	}
	if s.ExitCode() != 7 {
		t.Fatalf("got ExitCode() %d, want 7", s.ExitCode())
	}
}

func TestPTYSessionWriteAfterExitReturnsErrNotRunning(t *testing.T) {
	exited := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := Create(ctx, PTYSessionConfig{
		Shell: "/bin/sh",
		Args:  []string{"-c", "exit 0"},
		Rows:  24,
		Cols:  80,
		OnExit: func(int) {
			close(exited)
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer s.Terminate()

	select {
	case <-exited:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for process exit")
	}

	if err := s.Write([]byte("too late")); err != ErrNotRunning {
		t.Fatalf("got %v, want ErrNotRunning", err)
	}
}

func TestPTYSessionTerminateIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := Create(ctx, PTYSessionConfig{
		Shell: "/bin/sh",
		Args:  []string{"-c", "sleep 30"},
		Rows:  24,
		Cols:  80,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s.Terminate()
	s.Terminate()

	if s.Status() != SessionExited {
		t.Fatalf("got status %v, want SessionExited after Terminate", s.Status())
	}
}
