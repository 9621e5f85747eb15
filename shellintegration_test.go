package termcore

import "testing"

func TestShellIntegrationWorkingDirectoryPathStripsFileURI(t *testing.T) {
	s := NewState()
	s.SetWorkingDirectory("file://localhost/Users/alice/project")
	if got, want := s.WorkingDirectory(), "file://localhost/Users/alice/project"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := s.WorkingDirectoryPath(), "/Users/alice/project"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestShellIntegrationWorkingDirectoryPathMalformedReturnsEmpty(t *testing.T) {
	s := NewState()
	s.SetWorkingDirectory("not-a-uri")
	if got := s.WorkingDirectoryPath(); got != "" {
		t.Fatalf("got %q, want empty for malformed URI", got)
	}
}

func TestShellIntegrationPromptMarksNextPrevRoundTrip(t *testing.T) {
	s := NewState(WithSize(5, 10))
	s.MoveCursor(1, 0)
	s.ShellIntegrationMark(MarkPromptStart, -1)
	s.MoveCursor(3, 0)
	s.ShellIntegrationMark(MarkCommandStart, -1)

	if got := s.NextPromptRow(0, AnyMark); got != 1 {
		t.Fatalf("got NextPromptRow(0, AnyMark) = %d, want 1", got)
	}
	if got := s.NextPromptRow(1, AnyMark); got != 3 {
		t.Fatalf("got NextPromptRow(1, AnyMark) = %d, want 3", got)
	}
	if got := s.NextPromptRow(3, AnyMark); got != -1 {
		t.Fatalf("got NextPromptRow(3, AnyMark) = %d, want -1", got)
	}
	if got := s.PrevPromptRow(3, AnyMark); got != 1 {
		t.Fatalf("got PrevPromptRow(3, AnyMark) = %d, want 1", got)
	}
	if got := s.NextPromptRow(0, MarkCommandStart); got != 3 {
		t.Fatalf("got NextPromptRow(0, MarkCommandStart) = %d, want 3", got)
	}
}

func TestShellIntegrationClearPromptMarks(t *testing.T) {
	s := NewState()
	s.ShellIntegrationMark(MarkPromptStart, -1)
	s.ClearPromptMarks()
	if got := len(s.PromptMarks()); got != 0 {
		t.Fatalf("got %d marks after ClearPromptMarks, want 0", got)
	}
}

func TestShellIntegrationGetLastCommandOutput(t *testing.T) {
	s := NewState(WithSize(5, 10))

	s.MoveCursor(0, 0)
	s.ShellIntegrationMark(MarkCommandExecuted, -1)
	for c, r := range "output" {
		s.WriteCell(0, c, r, false, false)
	}

	s.MoveCursor(1, 0)
	s.ShellIntegrationMark(MarkCommandFinished, 0)

	got := s.GetLastCommandOutput()
	if got != "output" {
		t.Fatalf("got %q, want %q", got, "output")
	}
}

func TestShellIntegrationGetLastCommandOutputEmptyWithoutCompletePair(t *testing.T) {
	s := NewState()
	s.ShellIntegrationMark(MarkCommandExecuted, -1)
	if got := s.GetLastCommandOutput(); got != "" {
		t.Fatalf("got %q, want empty without a matching MarkCommandFinished", got)
	}
}

func TestShellIntegrationUserVarsSetGetClear(t *testing.T) {
	s := NewState()
	s.SetUserVar("CurrentDir", "/tmp")
	if got := s.GetUserVar("CurrentDir"); got != "/tmp" {
		t.Fatalf("got %q, want %q", got, "/tmp")
	}
	if got := s.GetUserVar("Missing"); got != "" {
		t.Fatalf("got %q, want empty for unset var", got)
	}

	vars := s.GetUserVars()
	if vars["CurrentDir"] != "/tmp" {
		t.Fatalf("got %+v, want CurrentDir=/tmp", vars)
	}

	s.ClearUserVars()
	if got := len(s.GetUserVars()); got != 0 {
		t.Fatalf("got %d vars after ClearUserVars, want 0", got)
	}
}
