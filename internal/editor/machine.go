package editor

import (
	"github.com/verte-zerg/vimdrill/internal/command"
)

// InsertMessage is shown while insert mode is active.
const InsertMessage = "-- INSERT --"

// State is everything the mode state machine reads and writes.
type State struct {
	Buffer Buffer
	Mode   Mode
	// KeyBuffer holds a pending operator in normal mode ("c") and the command
	// text, including its leading ":", in command-line mode.
	KeyBuffer string
	Message   string
}

// NewState returns a normal-mode state editing text.
func NewState(text string) State {
	return State{Buffer: NewBuffer(text), Mode: ModeNormal}
}

// HandleKey applies one key press to s and returns the resulting state.
func HandleKey(s State, k Key) State {
	if k == KeyEscape {
		s.Mode = ModeNormal
		s.KeyBuffer = ""
		s.Message = ""
		return s
	}
	switch s.Mode {
	case ModeInsert:
		return handleInsert(s, k)
	case ModeCommandLine:
		return handleCommandLine(s, k)
	default:
		return handleNormal(s, k)
	}
}

func handleNormal(s State, k Key) State {
	switch k {
	case "h":
		s.Buffer = s.Buffer.MoveLeft()
	case "l":
		s.Buffer = s.Buffer.MoveRight()
	case "j":
		s.Buffer = s.Buffer.MoveDown()
	case "k":
		s.Buffer = s.Buffer.MoveUp()
	case "i":
		s.Mode = ModeInsert
		s.Message = InsertMessage
	case ":":
		s.Mode = ModeCommandLine
		s.KeyBuffer = ":"
		s.Message = ""
	case "c":
		s.KeyBuffer = "c"
	case "w":
		if s.KeyBuffer == "c" {
			return changeWord(s)
		}
		s.KeyBuffer = ""
	case KeyShift:
	default:
		s.KeyBuffer = ""
	}
	return s
}

// changeWord completes "cw". Without a word under the cursor it only clears
// the pending operator.
func changeWord(s State) State {
	s.KeyBuffer = ""
	buf, ok := s.Buffer.DeleteWordForward()
	if !ok {
		return s
	}
	s.Buffer = buf
	s.Mode = ModeInsert
	s.Message = InsertMessage
	return s
}

func handleInsert(s State, k Key) State {
	switch {
	case k == KeyBackspace:
		s.Buffer = s.Buffer.DeleteCharBefore()
	case k.IsPrintable():
		r, _ := k.Rune()
		s.Buffer = s.Buffer.InsertChar(r)
	}
	return s
}

func handleCommandLine(s State, k Key) State {
	switch {
	case k == KeyEnter:
		return executeCommandLine(s)
	case k == KeyBackspace:
		runes := []rune(s.KeyBuffer)
		if len(runes) > 0 {
			runes = runes[:len(runes)-1]
		}
		s.KeyBuffer = string(runes)
		if s.KeyBuffer == "" {
			s.Mode = ModeNormal
		}
	case k.IsChar():
		s.KeyBuffer += string(k)
	}
	return s
}

func executeCommandLine(s State) State {
	res := command.Parse(s.KeyBuffer)
	if sub := res.Substitution; sub != nil {
		s.Buffer, _ = s.Buffer.ReplaceAll(sub.From, sub.To)
	}
	s.Message = res.Message
	s.Mode = ModeNormal
	s.KeyBuffer = ""
	return s
}
