// Package game runs scored challenges on top of the editor core: it checks
// completion, awards points and advances through the challenge list.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/vimdrill/internal/editor"
	"github.com/verte-zerg/vimdrill/internal/model"
)

// Phase is the lifecycle position of the current challenge.
type Phase int

const (
	PhaseInProgress Phase = iota
	PhaseCompleted
	PhaseTransitioning
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// TimerKind says what a deferred transition does when it fires.
type TimerKind int

const (
	// TimerAdvance ends the completion banner.
	TimerAdvance TimerKind = iota
	// TimerNext loads the next challenge.
	TimerNext
)

func (k TimerKind) String() string {
	if k == TimerAdvance {
		return "advance"
	}
	return "next"
}

// Timer is a deferred transition requested by the session. Epoch ties it to
// the challenge that scheduled it; a timer from an earlier epoch is ignored.
type Timer struct {
	Epoch int
	Kind  TimerKind
	Delay time.Duration
}

const (
	DefaultCompletionDelay = 3 * time.Second
	DefaultTransitionDelay = 1500 * time.Millisecond

	NextChallengeMessage = "Get ready for next challenge..."
)

// ErrNoChallenges is returned when a session is started without challenges.
var ErrNoChallenges = errors.New("no challenges")

// Options tunes a session.
type Options struct {
	GameID          string
	CompletionDelay time.Duration
	TransitionDelay time.Duration
}

// Session is the state of one game. It is a value: HandleKey and Fire return
// the next state and never modify the receiver.
type Session struct {
	opts       Options
	challenges []model.Challenge

	index     int
	epoch     int
	phase     Phase
	score     int
	startedAt time.Time
	history   []editor.Key
	editor    editor.State
	lastAward Score
}

// New starts a session at the first challenge.
func New(challenges []model.Challenge, opts Options, now time.Time) (Session, error) {
	if len(challenges) == 0 {
		return Session{}, ErrNoChallenges
	}
	if opts.CompletionDelay <= 0 {
		opts.CompletionDelay = DefaultCompletionDelay
	}
	if opts.TransitionDelay <= 0 {
		opts.TransitionDelay = DefaultTransitionDelay
	}
	s := Session{
		opts:       opts,
		challenges: append([]model.Challenge(nil), challenges...),
	}
	return s.start(0, now), nil
}

func (s Session) start(index int, now time.Time) Session {
	s.index = index
	s.epoch++
	s.phase = PhaseInProgress
	s.startedAt = now
	s.history = nil
	s.editor = editor.NewState(s.challenges[index].Initial)
	return s
}

// Challenge returns the active challenge.
func (s Session) Challenge() model.Challenge {
	return s.challenges[s.index]
}

// Index returns the position of the active challenge.
func (s Session) Index() int { return s.index }

// Epoch returns the identifier of the current challenge attempt.
func (s Session) Epoch() int { return s.epoch }

// Phase returns the lifecycle phase.
func (s Session) Phase() Phase { return s.phase }

// Score returns the cumulative score.
func (s Session) Score() int { return s.score }

// Editor returns the editor state of the active challenge.
func (s Session) Editor() editor.State { return s.editor }

// HandleKey feeds one key press to the active challenge. Keys are ignored
// unless a challenge is in progress.
func (s Session) HandleKey(k editor.Key, now time.Time) (Session, []Timer) {
	if s.phase != PhaseInProgress {
		return s, nil
	}
	s.history = appendKey(s.history, k)
	before := s.editor.Buffer.Text()
	s.editor = editor.HandleKey(s.editor, k)
	text := s.editor.Buffer.Text()
	if text == before || text != s.Challenge().Target {
		return s, nil
	}
	return s.complete(now)
}

func (s Session) complete(now time.Time) (Session, []Timer) {
	award := ScoreRun(s.Challenge(), now.Sub(s.startedAt), s.history)
	s.score += award.Total()
	s.lastAward = award
	s.phase = PhaseCompleted
	s.editor.Message = award.Message()
	return s, []Timer{{Epoch: s.epoch, Kind: TimerAdvance, Delay: s.opts.CompletionDelay}}
}

// Fire applies a timer previously returned by HandleKey or Fire.
func (s Session) Fire(t Timer, now time.Time) (Session, []Timer) {
	if t.Epoch != s.epoch {
		return s, nil
	}
	switch t.Kind {
	case TimerAdvance:
		if s.phase != PhaseCompleted {
			return s, nil
		}
		if s.index+1 < len(s.challenges) {
			s.phase = PhaseTransitioning
			s.editor.Message = NextChallengeMessage
			return s, []Timer{{Epoch: s.epoch, Kind: TimerNext, Delay: s.opts.TransitionDelay}}
		}
		s.phase = PhaseFinished
		s.editor.Message = fmt.Sprintf("Game Complete! Final Score: %d", s.score)
		return s, nil
	case TimerNext:
		if s.phase != PhaseTransitioning {
			return s, nil
		}
		return s.start(s.index+1, now), nil
	}
	return s, nil
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	GameID    string
	Text      string
	Lines     []string
	Cursor    editor.Cursor
	Mode      editor.Mode
	KeyBuffer string
	Message   string
	Score     int
	Index     int
	Count     int
	History   []editor.Key
	Phase     Phase
	Challenge model.Challenge
	LastAward Score
}

// Snapshot captures the current state for rendering.
func (s Session) Snapshot() Snapshot {
	return Snapshot{
		GameID:    s.opts.GameID,
		Text:      s.editor.Buffer.Text(),
		Lines:     s.editor.Buffer.Lines(),
		Cursor:    s.editor.Buffer.Cursor(),
		Mode:      s.editor.Mode,
		KeyBuffer: s.editor.KeyBuffer,
		Message:   s.editor.Message,
		Score:     s.score,
		Index:     s.index,
		Count:     len(s.challenges),
		History:   append([]editor.Key(nil), s.history...),
		Phase:     s.phase,
		Challenge: s.Challenge(),
		LastAward: s.lastAward,
	}
}
