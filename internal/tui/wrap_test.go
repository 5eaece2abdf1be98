package tui

import (
	"strings"
	"testing"
)

func TestBuildLineRunesCursor(t *testing.T) {
	runes := buildLineRunes("ab", "ab", 1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != textStyle.Render("a") {
		t.Fatalf("expected text style for first rune")
	}
	if runes[1].s != cursorStyle.Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildLineRunesCursorPastEnd(t *testing.T) {
	runes := buildLineRunes("ab", "ab", 2)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[2].s != cursorStyle.Render(" ") {
		t.Fatalf("expected highlighted space for cursor past end")
	}
}

func TestBuildLineRunesNoCursor(t *testing.T) {
	runes := buildLineRunes("ab", "ab", -1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
}

func TestBuildLineRunesMarksDifferences(t *testing.T) {
	runes := buildLineRunes("test", "best!", -1)
	if runes[0].s != diffStyle.Render("t") {
		t.Fatalf("expected diff style for changed rune")
	}
	if runes[1].s != textStyle.Render("e") {
		t.Fatalf("expected text style for matching rune")
	}

	runes = buildLineRunes("abc", "a", -1)
	if runes[2].s != diffStyle.Render("c") {
		t.Fatalf("expected diff style past the end of target")
	}
}

func TestWrapStyledRunesBreaksAtSpace(t *testing.T) {
	runes := buildLineRunes("one two three", "one two three", -1)
	out := wrapStyledRunes(runes, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if lineWidthOf(runes) != 13 {
		t.Fatalf("unexpected width %d", lineWidthOf(runes))
	}
}

func TestWrapStyledRunesZeroWidth(t *testing.T) {
	runes := buildLineRunes("abc", "abc", -1)
	if wrapStyledRunes(runes, 0) != renderStyledRunes(runes) {
		t.Fatalf("expected unwrapped output")
	}
}
