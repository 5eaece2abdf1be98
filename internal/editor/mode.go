package editor

// Mode is the current interpretation context for key input.
type Mode int

const (
	// ModeNormal interprets keys as motions and commands.
	ModeNormal Mode = iota
	// ModeInsert inserts typed characters into the buffer.
	ModeInsert
	// ModeCommandLine collects a ":" command until Enter.
	ModeCommandLine
)

// String returns the status-line name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommandLine:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= ModeNormal && m <= ModeCommandLine
}
