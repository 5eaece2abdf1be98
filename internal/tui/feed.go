package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/vimdrill/internal/game"
)

type snapshotMsg game.Snapshot

type feedClosedMsg struct{}

// Feed hands snapshots from the game loop to the UI. Only the newest
// unread snapshot is kept, so Publish never blocks the game loop.
type Feed struct {
	ch        chan game.Snapshot
	done      chan struct{}
	closeOnce sync.Once
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{
		ch:   make(chan game.Snapshot, 1),
		done: make(chan struct{}),
	}
}

// Publish replaces any unread snapshot with s.
func (f *Feed) Publish(s game.Snapshot) {
	for {
		select {
		case f.ch <- s:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// Close releases a UI waiting for the next snapshot.
func (f *Feed) Close() {
	f.closeOnce.Do(func() { close(f.done) })
}

func (f *Feed) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-f.ch:
			return snapshotMsg(s)
		case <-f.done:
			return feedClosedMsg{}
		}
	}
}
