package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/vimdrill/internal/editor"
)

// keyMap holds the bindings handled by the UI itself. Everything else is
// forwarded to the game.
type keyMap struct {
	Quit  key.Binding
	Debug key.Binding
	Leave key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Debug: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "debug panel"),
		),
		Leave: key.NewBinding(
			key.WithKeys("q", "enter"),
			key.WithHelp("q/enter", "exit"),
			key.WithDisabled(),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Debug, k.Leave}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// keysFromMsg maps a terminal key event to editor keys. Keys the editor has
// no use for map to nothing.
func keysFromMsg(msg tea.KeyMsg) []editor.Key {
	if msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		return []editor.Key{editor.KeyEscape}
	case tea.KeyEnter:
		return []editor.Key{editor.KeyEnter}
	case tea.KeyBackspace, tea.KeyDelete:
		return []editor.Key{editor.KeyBackspace}
	case tea.KeySpace:
		return []editor.Key{" "}
	case tea.KeyRunes:
		out := make([]editor.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, editor.Key(string(r)))
		}
		return out
	default:
		return nil
	}
}
