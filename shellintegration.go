package termcore

import "strings"

// ShellIntegrationMark identifies one OSC 133 semantic-prompt mark.
type ShellIntegrationMark int

const (
	// MarkPromptStart is OSC 133;A: the shell is about to print a prompt.
	MarkPromptStart ShellIntegrationMark = iota
	// MarkCommandStart is OSC 133;B: the prompt ended, user input begins.
	MarkCommandStart
	// MarkCommandExecuted is OSC 133;C: the command line was submitted.
	MarkCommandExecuted
	// MarkCommandFinished is OSC 133;D[;exit]: the command finished,
	// optionally carrying its exit code.
	MarkCommandFinished
)

// AnyMark matches any ShellIntegrationMark in NextPromptRow/PrevPromptRow.
const AnyMark ShellIntegrationMark = -1

// PromptMark records one semantic-prompt mark at an absolute row
// (cursor row plus the scrollback length at the time it was
// recorded, so the position survives later scrolling).
type PromptMark struct {
	Type     ShellIntegrationMark
	Row      int
	ExitCode int // valid only for MarkCommandFinished; -1 otherwise
}

// ShellIntegrationState is State's shell-integration sidecar: OSC 7
// working directory, OSC 133 prompt marks, and OSC 1337 user
// variables. Copied out by State.ShellIntegration for read access.
type ShellIntegrationState struct {
	WorkingDirectory string
	PromptMarks      []PromptMark
	UserVars         map[string]string
}

// ShellIntegrationMark records a semantic-prompt mark (OSC 133) at the
// cursor's current absolute row.
func (s *State) ShellIntegrationMark(mark ShellIntegrationMark, exitCode int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	absRow := s.cursor.Row + s.scrollback.Len()
	s.shellIntegration.PromptMarks = append(s.shellIntegration.PromptMarks, PromptMark{
		Type:     mark,
		Row:      absRow,
		ExitCode: exitCode,
	})
}

// PromptMarks returns a copy of all recorded prompt marks.
func (s *State) PromptMarks() []PromptMark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	marks := make([]PromptMark, len(s.shellIntegration.PromptMarks))
	copy(marks, s.shellIntegration.PromptMarks)
	return marks
}

// ClearPromptMarks discards all recorded prompt marks.
func (s *State) ClearPromptMarks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shellIntegration.PromptMarks = nil
}

// NextPromptRow returns the absolute row of the first mark after
// currentAbsRow matching markType (or AnyMark), or -1 if none.
func (s *State) NextPromptRow(currentAbsRow int, markType ShellIntegrationMark) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.shellIntegration.PromptMarks {
		if m.Row > currentAbsRow && (markType == AnyMark || m.Type == markType) {
			return m.Row
		}
	}
	return -1
}

// PrevPromptRow returns the absolute row of the last mark before
// currentAbsRow matching markType (or AnyMark), or -1 if none.
func (s *State) PrevPromptRow(currentAbsRow int, markType ShellIntegrationMark) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	marks := s.shellIntegration.PromptMarks
	for i := len(marks) - 1; i >= 0; i-- {
		if marks[i].Row < currentAbsRow && (markType == AnyMark || marks[i].Type == markType) {
			return marks[i].Row
		}
	}
	return -1
}

// GetLastCommandOutput returns the text between the last
// MarkCommandExecuted and the next MarkCommandFinished after it, or
// "" if no such complete pair exists.
func (s *State) GetLastCommandOutput() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	marks := s.shellIntegration.PromptMarks
	var executed, finished *PromptMark
	for i := len(marks) - 1; i >= 0; i-- {
		m := &marks[i]
		if finished == nil && m.Type == MarkCommandFinished {
			finished = m
		}
		if executed == nil && m.Type == MarkCommandExecuted {
			executed = m
		}
		if executed != nil && finished != nil {
			if executed.Row < finished.Row {
				break
			}
			executed, finished = nil, nil
		}
	}
	if executed == nil || finished == nil {
		return ""
	}
	return s.extractTextBetweenRowsLocked(executed.Row, finished.Row)
}

// extractTextBetweenRowsLocked returns the text of absolute rows
// [startRow,endRow), trimming trailing blank rows. Callers must hold
// mu for reading.
func (s *State) extractTextBetweenRowsLocked(startRow, endRow int) string {
	scrollbackLen := s.scrollback.Len()
	g := s.activeGrid()

	var lines []string
	for absRow := startRow; absRow < endRow; absRow++ {
		var line []Cell
		if absRow < scrollbackLen {
			line = s.scrollback.Line(absRow)
		} else if r := absRow - scrollbackLen; r >= 0 && r < s.rows {
			line = make([]Cell, g.Cols())
			for c := 0; c < g.Cols(); c++ {
				line[c] = g.Get(r, c)
			}
		}
		lines = append(lines, rowText(line))
	}

	lastNonEmpty := -1
	for i, l := range lines {
		if l != "" {
			lastNonEmpty = i
		}
	}
	if lastNonEmpty < 0 {
		return ""
	}
	return strings.Join(lines[:lastNonEmpty+1], "\n")
}

func rowText(cells []Cell) string {
	lastNonSpace := -1
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i].Char != ' ' && cells[i].Char != 0 && !cells[i].IsWideContinuation {
			lastNonSpace = i
			break
		}
	}
	if lastNonSpace < 0 {
		return ""
	}
	runes := make([]rune, 0, lastNonSpace+1)
	for i := 0; i <= lastNonSpace; i++ {
		if cells[i].IsWideContinuation {
			continue
		}
		if cells[i].Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, cells[i].Char)
		}
	}
	return string(runes)
}

// SetWorkingDirectory records the shell's current directory (OSC 7,
// a file:// URI per the de-facto convention).
func (s *State) SetWorkingDirectory(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shellIntegration.WorkingDirectory = uri
}

// WorkingDirectory returns the last OSC 7 URI.
func (s *State) WorkingDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shellIntegration.WorkingDirectory
}

// WorkingDirectoryPath extracts the filesystem path from the OSC 7
// URI, stripping a "file://host" prefix. Returns "" if unset or
// malformed.
func (s *State) WorkingDirectoryPath() string {
	s.mu.RLock()
	uri := s.shellIntegration.WorkingDirectory
	s.mu.RUnlock()

	const prefix = "file://"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	rest := uri[len(prefix):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i:]
	}
	return ""
}

// SetUserVar sets an iTerm2-style user variable (OSC 1337;SetUserVar).
func (s *State) SetUserVar(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shellIntegration.UserVars == nil {
		s.shellIntegration.UserVars = make(map[string]string)
	}
	s.shellIntegration.UserVars[name] = value
}

// GetUserVar returns the value of a user variable, or "" if unset.
func (s *State) GetUserVar(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shellIntegration.UserVars[name]
}

// GetUserVars returns a copy of all user variables.
func (s *State) GetUserVars() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.shellIntegration.UserVars))
	for k, v := range s.shellIntegration.UserVars {
		out[k] = v
	}
	return out
}

// ClearUserVars discards all user variables.
func (s *State) ClearUserVars() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shellIntegration.UserVars = nil
}
