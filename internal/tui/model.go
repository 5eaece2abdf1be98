// Package tui provides the Bubble Tea game interface.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/vimdrill/internal/editor"
	"github.com/verte-zerg/vimdrill/internal/game"
	"github.com/verte-zerg/vimdrill/internal/log"
)

// Model renders game snapshots and forwards key presses to the game loop.
type Model struct {
	feed *Feed
	send func(editor.Key) bool

	snap  game.Snapshot
	ready bool

	width  int
	height int

	debug bool
	keys  keyMap
	help  help.Model
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	modeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Italic(true)
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	diffStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	targetStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6E6E6E")).Padding(0, 1)
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs the game UI. send forwards a key to the game loop and
// reports false once the loop has stopped.
func NewModel(feed *Feed, send func(editor.Key) bool, debug bool) *Model {
	return &Model{
		feed:  feed,
		send:  send,
		debug: debug,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.feed.wait()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case snapshotMsg:
		m.snap = game.Snapshot(msg)
		m.ready = true
		m.keys.Leave.SetEnabled(m.snap.Phase == game.PhaseFinished)
		return m, m.feed.wait()
	case feedClosedMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Leave):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Debug):
		m.debug = !m.debug
		log.Debug(log.CatUI, "debug panel toggled", "visible", m.debug)
		return m, nil
	}
	for _, k := range keysFromMsg(msg) {
		if !m.send(k) {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	var content string
	if m.snap.Phase == game.PhaseFinished {
		content = m.renderFinished()
	} else {
		content = m.renderGame()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderGame() string {
	s := m.snap
	sections := []string{m.renderHeader()}
	if s.Message != "" {
		sections = append(sections, messageStyle.Render(s.Message))
	}
	sections = append(sections, m.renderChallenge())
	sections = append(sections,
		labelStyle.Render("Your Text:"),
		panelStyle.Render(m.renderBuffer()),
		labelStyle.Render("Target Text:"),
		panelStyle.Render(targetStyle.Render(s.Challenge.Target)),
	)
	if s.Mode == editor.ModeCommandLine {
		sections = append(sections, s.KeyBuffer+cursorStyle.Render(" "))
	}
	if m.debug {
		sections = append(sections, m.renderDebug())
	}
	sections = append(sections, m.help.View(m.keys))
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderHeader() string {
	s := m.snap
	mode := fmt.Sprintf("%s MODE", s.Mode)
	if s.Mode == editor.ModeNormal && s.KeyBuffer != "" {
		mode += fmt.Sprintf(" (Buffer: %s)", s.KeyBuffer)
	}
	return strings.Join([]string{
		titleStyle.Render("vimdrill"),
		fmt.Sprintf("Score: %d", s.Score),
		modeStyle.Render(mode),
	}, "  ")
}

func (m *Model) renderChallenge() string {
	s := m.snap
	lines := []string{
		labelStyle.Render(fmt.Sprintf("Challenge %d/%d", s.Index+1, s.Count)) +
			hintStyle.Render(fmt.Sprintf(" (%s, par %d)", s.Challenge.Difficulty, s.Challenge.ParKeystrokes)),
	}
	if s.Challenge.Instruction != "" {
		lines = append(lines, s.Challenge.Instruction)
	}
	if s.Challenge.Hint != "" {
		lines = append(lines, hintStyle.Render("Hint: "+s.Challenge.Hint))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBuffer() string {
	s := m.snap
	targetLines := strings.Split(s.Challenge.Target, "\n")
	width := m.contentWidth()
	out := make([]string, len(s.Lines))
	for i, line := range s.Lines {
		target := ""
		if i < len(targetLines) {
			target = targetLines[i]
		}
		col := -1
		if i == s.Cursor.Line {
			col = s.Cursor.Col
		}
		out[i] = wrapStyledRunes(buildLineRunes(line, target, col), width)
	}
	return strings.Join(out, "\n")
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderDebug() string {
	s := m.snap
	codes := make([]string, 0, len(s.KeyBuffer))
	for _, r := range s.KeyBuffer {
		codes = append(codes, strconv.Itoa(int(r)))
	}
	keys := make([]string, 0, len(s.History))
	for _, k := range s.History {
		keys = append(keys, keyLabel(k))
	}
	lines := []string{
		"Debug",
		fmt.Sprintf("game: %s", s.GameID),
		fmt.Sprintf("mode: %s  phase: %s", s.Mode, s.Phase),
		fmt.Sprintf("command buffer: %q [%s]", s.KeyBuffer, strings.Join(codes, " ")),
		fmt.Sprintf("buffer length: %d", len(s.Text)),
		fmt.Sprintf("cursor: %d:%d", s.Cursor.Line, s.Cursor.Col),
		fmt.Sprintf("last keys: %s", strings.Join(keys, " ")),
		fmt.Sprintf("current: %q", s.Text),
		fmt.Sprintf("target:  %q", s.Challenge.Target),
	}
	if w := m.contentWidth(); w > 0 {
		for i, line := range lines {
			lines[i] = runewidth.Truncate(line, w, "…")
		}
	}
	return debugStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFinished() string {
	s := m.snap
	return strings.Join([]string{
		titleStyle.Render("Game Complete!"),
		fmt.Sprintf("Final Score: %d", s.Score),
		fmt.Sprintf("Challenges: %d", s.Count),
		m.help.View(m.keys),
	}, "\n\n")
}

func keyLabel(k editor.Key) string {
	switch {
	case k == " ":
		return "<Space>"
	case k.IsChar():
		return string(k)
	default:
		return "<" + string(k) + ">"
	}
}
