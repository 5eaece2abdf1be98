package editor

import (
	"unicode"
	"unicode/utf8"
)

// Key identifies a single key press: either one character or a named key.
type Key string

// Named keys understood by the editor.
const (
	KeyEscape    Key = "Escape"
	KeyEnter     Key = "Enter"
	KeyBackspace Key = "Backspace"
	KeyShift     Key = "Shift"
)

// Rune returns the character carried by a single-character key.
func (k Key) Rune() (rune, bool) {
	r, size := utf8.DecodeRuneInString(string(k))
	if r == utf8.RuneError || size != len(k) {
		return 0, false
	}
	return r, true
}

// IsChar reports whether k carries exactly one character.
func (k Key) IsChar() bool {
	_, ok := k.Rune()
	return ok
}

// IsPrintable reports whether k is a single printable character (space included).
func (k Key) IsPrintable() bool {
	r, ok := k.Rune()
	return ok && unicode.IsPrint(r)
}
