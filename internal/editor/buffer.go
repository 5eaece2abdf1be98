// Package editor implements the modal text editing core: a line buffer with a
// cursor and the key-driven mode state machine that edits it.
package editor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var wordPrefix = regexp.MustCompile(`^\w+\s*`)

// Cursor is a position in the buffer. Col counts runes and may equal the line
// length, which is the append position used while inserting.
type Cursor struct {
	Line int
	Col  int
}

// Buffer holds the edited lines and the cursor. Buffer is a value: every edit
// returns a new Buffer and leaves the receiver untouched.
type Buffer struct {
	lines  []string
	cursor Cursor
}

// NewBuffer splits text into lines and places the cursor at the origin.
func NewBuffer(text string) Buffer {
	return Buffer{lines: strings.Split(text, "\n")}
}

// Text joins the lines back into a single string.
func (b Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns a copy of the buffer lines.
func (b Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// LineCount returns the number of lines, always at least one.
func (b Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line i, or "" when i is out of range.
func (b Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// Cursor returns the cursor position.
func (b Buffer) Cursor() Cursor {
	return b.cursor
}

// WithCursor moves the cursor to c, clamped into the buffer.
func (b Buffer) WithCursor(c Cursor) Buffer {
	c.Line = clamp(c.Line, 0, len(b.lines)-1)
	c.Col = clamp(c.Col, 0, b.lineLen(c.Line))
	b.cursor = c
	return b
}

// InsertChar inserts r at the cursor and advances the cursor past it.
func (b Buffer) InsertChar(r rune) Buffer {
	runes := []rune(b.lines[b.cursor.Line])
	col := b.cursor.Col
	updated := make([]rune, 0, len(runes)+1)
	updated = append(updated, runes[:col]...)
	updated = append(updated, r)
	updated = append(updated, runes[col:]...)
	b = b.withLine(b.cursor.Line, string(updated))
	b.cursor.Col++
	return b
}

// DeleteCharBefore removes the character left of the cursor. At column zero it
// does nothing; lines are never joined.
func (b Buffer) DeleteCharBefore() Buffer {
	col := b.cursor.Col
	if col == 0 {
		return b
	}
	runes := []rune(b.lines[b.cursor.Line])
	updated := make([]rune, 0, len(runes)-1)
	updated = append(updated, runes[:col-1]...)
	updated = append(updated, runes[col:]...)
	b = b.withLine(b.cursor.Line, string(updated))
	b.cursor.Col--
	return b
}

// DeleteWordForward removes the word under the cursor together with the
// whitespace following it. It reports false, leaving the buffer unchanged, when
// the text at the cursor does not start with a word character.
func (b Buffer) DeleteWordForward() (Buffer, bool) {
	runes := []rune(b.lines[b.cursor.Line])
	col := b.cursor.Col
	if col >= len(runes) {
		return b, false
	}
	match := wordPrefix.FindString(string(runes[col:]))
	if match == "" {
		return b, false
	}
	end := col + utf8.RuneCountInString(match)
	updated := make([]rune, 0, len(runes)-(end-col))
	updated = append(updated, runes[:col]...)
	updated = append(updated, runes[end:]...)
	return b.withLine(b.cursor.Line, string(updated)), true
}

// ReplaceAll replaces every literal, non-overlapping occurrence of from with to
// on every line and returns the number of replacements. An empty from is a
// no-op.
func (b Buffer) ReplaceAll(from, to string) (Buffer, int) {
	if from == "" {
		return b, 0
	}
	count := 0
	lines := make([]string, len(b.lines))
	for i, line := range b.lines {
		count += strings.Count(line, from)
		lines[i] = strings.ReplaceAll(line, from, to)
	}
	if count == 0 {
		return b, 0
	}
	b.lines = lines
	b.cursor.Col = clamp(b.cursor.Col, 0, b.lineLen(b.cursor.Line))
	return b, count
}

// MoveLeft moves the cursor one column left.
func (b Buffer) MoveLeft() Buffer {
	b.cursor.Col = clamp(b.cursor.Col-1, 0, b.maxNormalCol(b.cursor.Line))
	return b
}

// MoveRight moves the cursor one column right, stopping on the last character.
func (b Buffer) MoveRight() Buffer {
	b.cursor.Col = clamp(b.cursor.Col+1, 0, b.maxNormalCol(b.cursor.Line))
	return b
}

// MoveDown moves the cursor one line down.
func (b Buffer) MoveDown() Buffer {
	return b.moveLine(1)
}

// MoveUp moves the cursor one line up.
func (b Buffer) MoveUp() Buffer {
	return b.moveLine(-1)
}

func (b Buffer) moveLine(delta int) Buffer {
	line := clamp(b.cursor.Line+delta, 0, len(b.lines)-1)
	if line == b.cursor.Line {
		return b
	}
	b.cursor.Line = line
	b.cursor.Col = clamp(b.cursor.Col, 0, b.maxNormalCol(line))
	return b
}

// withLine returns a buffer whose line i is replaced. The line slice is copied
// so earlier values stay valid.
func (b Buffer) withLine(i int, s string) Buffer {
	lines := make([]string, len(b.lines))
	copy(lines, b.lines)
	lines[i] = s
	b.lines = lines
	return b
}

func (b Buffer) lineLen(i int) int {
	return utf8.RuneCountInString(b.lines[i])
}

func (b Buffer) maxNormalCol(i int) int {
	n := b.lineLen(i) - 1
	if n < 0 {
		return 0
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
