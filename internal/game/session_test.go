package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/verte-zerg/vimdrill/internal/editor"
	"github.com/verte-zerg/vimdrill/internal/model"
)

var start = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func testChallenges() []model.Challenge {
	return []model.Challenge{
		{
			ID:              "change-word",
			Initial:         "Hello world\nThis is the test\nFix me please",
			Target:          "Hello world\nThis is the best\nFix me please",
			ParKeystrokes:   12,
			ExpectedCommand: "cw",
		},
		{
			ID:              "substitute",
			Initial:         "One\nOne\nOne\nOne",
			Target:          "Two\nTwo\nTwo\nTwo",
			ParKeystrokes:   13,
			ExpectedCommand: ":s/",
		},
	}
}

func newSession(t *testing.T) Session {
	t.Helper()
	s, err := New(testChallenges(), Options{GameID: "test"}, start)
	require.NoError(t, err)
	return s
}

func feed(s Session, now time.Time, ks ...editor.Key) (Session, []Timer) {
	var timers []Timer
	for _, k := range ks {
		var out []Timer
		s, out = s.HandleKey(k, now)
		timers = append(timers, out...)
	}
	return s, timers
}

func solveFirst(s Session, now time.Time) (Session, []Timer) {
	ks := []editor.Key{"j"}
	ks = append(ks, repeatKey("l", 12)...)
	ks = append(ks, "c", "w", "b", "e", "s", "t")
	return feed(s, now, ks...)
}

func solveSecond(s Session, now time.Time) (Session, []Timer) {
	ks := []editor.Key{":", "s", "/", "O", "n", "e", "/", "T", "w", "o", "/", editor.KeyEnter}
	return feed(s, now, ks...)
}

func TestNewRequiresChallenges(t *testing.T) {
	_, err := New(nil, Options{}, start)

	assert.ErrorIs(t, err, ErrNoChallenges)
}

func TestNewStartsFirstChallenge(t *testing.T) {
	s := newSession(t)
	snap := s.Snapshot()

	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, 2, snap.Count)
	assert.Equal(t, PhaseInProgress, snap.Phase)
	assert.Equal(t, editor.ModeNormal, snap.Mode)
	assert.Equal(t, "Hello world\nThis is the test\nFix me please", snap.Text)
	assert.Equal(t, editor.Cursor{}, snap.Cursor)
	assert.Equal(t, "test", snap.GameID)
	assert.Zero(t, snap.Score)
}

func TestChallengeCompletion(t *testing.T) {
	s := newSession(t)

	s, timers := solveFirst(s, start.Add(2*time.Second))

	require.Equal(t, PhaseCompleted, s.Phase())
	assert.Equal(t, "Hello world\nThis is the best\nFix me please", s.Editor().Buffer.Text())
	assert.Equal(t, Score{Base: 96, Efficiency: 50, Command: 25}, s.lastAward)
	assert.Equal(t, 171, s.Score())
	assert.Equal(t, "Challenge completed!\nBase Score: 96\nEfficiency Bonus: +50\nCommand Bonus: +25\nTotal: +171 points", s.Snapshot().Message)
	require.Len(t, timers, 1)
	assert.Equal(t, Timer{Epoch: s.Epoch(), Kind: TimerAdvance, Delay: DefaultCompletionDelay}, timers[0])
}

func TestKeysIgnoredAfterCompletion(t *testing.T) {
	s, _ := solveFirst(newSession(t), start)
	before := s.Snapshot()

	s, timers := feed(s, start, editor.KeyEscape, "x", "i", "z")

	assert.Empty(t, timers)
	assert.Equal(t, before, s.Snapshot())
}

func TestAdvanceToNextChallenge(t *testing.T) {
	s, timers := solveFirst(newSession(t), start)
	epoch := s.Epoch()

	s, timers = s.Fire(timers[0], start.Add(3*time.Second))
	require.Equal(t, PhaseTransitioning, s.Phase())
	assert.Equal(t, NextChallengeMessage, s.Snapshot().Message)
	require.Len(t, timers, 1)
	assert.Equal(t, TimerNext, timers[0].Kind)
	assert.Equal(t, DefaultTransitionDelay, timers[0].Delay)

	next := start.Add(5 * time.Second)
	s, timers = s.Fire(timers[0], next)
	assert.Empty(t, timers)

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Index)
	assert.Equal(t, epoch+1, s.Epoch())
	assert.Equal(t, PhaseInProgress, snap.Phase)
	assert.Equal(t, "One\nOne\nOne\nOne", snap.Text)
	assert.Equal(t, editor.ModeNormal, snap.Mode)
	assert.Empty(t, snap.KeyBuffer)
	assert.Empty(t, snap.History)
	assert.Empty(t, snap.Message)
	assert.Equal(t, editor.Cursor{}, snap.Cursor)
	assert.Equal(t, 175, snap.Score)
}

func TestFinalChallengeFinishesGame(t *testing.T) {
	s, timers := solveFirst(newSession(t), start)
	s, timers = s.Fire(timers[0], start)
	s, _ = s.Fire(timers[0], start)

	s, timers = solveSecond(s, start.Add(4*time.Second))
	require.Equal(t, PhaseCompleted, s.Phase())
	// Twelve keys were pressed; ":s" fell out of the ten-key history.
	assert.Equal(t, Score{Base: 92, Efficiency: 50, Command: 0}, s.lastAward)

	s, timers = s.Fire(timers[0], start.Add(7*time.Second))
	assert.Empty(t, timers)
	assert.Equal(t, PhaseFinished, s.Phase())
	assert.Equal(t, "Game Complete! Final Score: 317", s.Snapshot().Message)

	finished := s.Snapshot()
	s, timers = feed(s, start, ":", "s", "/", "T", "/", "x", "/", editor.KeyEnter)
	assert.Empty(t, timers)
	assert.Equal(t, finished, s.Snapshot())
}

func TestStaleTimerIgnored(t *testing.T) {
	s, timers := solveFirst(newSession(t), start)
	advance := timers[0]
	s, timers = s.Fire(advance, start)
	s, _ = s.Fire(timers[0], start)
	before := s.Snapshot()

	s, out := s.Fire(advance, start)

	assert.Empty(t, out)
	assert.Equal(t, before, s.Snapshot())
}

func TestTimerOutOfPhaseIgnored(t *testing.T) {
	s := newSession(t)

	got, out := s.Fire(Timer{Epoch: s.Epoch(), Kind: TimerNext}, start)
	assert.Empty(t, out)
	assert.Equal(t, s.Snapshot(), got.Snapshot())

	got, out = s.Fire(Timer{Epoch: s.Epoch(), Kind: TimerAdvance}, start)
	assert.Empty(t, out)
	assert.Equal(t, PhaseInProgress, got.Phase())
}

func TestHandleKeyDoesNotMutateReceiver(t *testing.T) {
	s := newSession(t)
	before := s.Snapshot()

	_, _ = solveFirst(s, start)

	assert.Equal(t, before, s.Snapshot())
}

func TestCustomDelays(t *testing.T) {
	s, err := New(testChallenges(), Options{CompletionDelay: time.Millisecond, TransitionDelay: 2 * time.Millisecond}, start)
	require.NoError(t, err)

	s, timers := solveFirst(s, start)
	assert.Equal(t, time.Millisecond, timers[0].Delay)
	_, timers = s.Fire(timers[0], start)
	assert.Equal(t, 2*time.Millisecond, timers[0].Delay)
}

func TestEscapeAndHistoryDuringPlay(t *testing.T) {
	s, _ := feed(newSession(t), start, "i", "x", editor.KeyEscape)

	snap := s.Snapshot()
	assert.Equal(t, editor.ModeNormal, snap.Mode)
	assert.Empty(t, snap.KeyBuffer)
	assert.Equal(t, []editor.Key{"i", "x", editor.KeyEscape}, snap.History)
}

var sessionKeys = []editor.Key{
	"h", "j", "k", "l", "i", "c", "w", ":", "s", "/", "O", "T", "o", "n", "e",
	editor.KeyEscape, editor.KeyEnter, editor.KeyBackspace, editor.KeyShift,
}

func TestSessionInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, err := New(testChallenges(), Options{}, start)
		require.NoError(t, err)
		steps := rapid.SliceOf(rapid.IntRange(0, len(sessionKeys))).Draw(t, "steps")
		var pending []Timer
		lastIndex := 0
		lastScore := 0
		for _, step := range steps {
			var out []Timer
			if step == len(sessionKeys) {
				if len(pending) == 0 {
					continue
				}
				s, out = s.Fire(pending[0], start)
				pending = pending[1:]
			} else {
				s, out = s.HandleKey(sessionKeys[step], start)
			}
			pending = append(pending, out...)

			snap := s.Snapshot()
			require.LessOrEqual(t, len(snap.History), HistoryLimit)
			require.GreaterOrEqual(t, snap.Index, lastIndex)
			require.GreaterOrEqual(t, snap.Score, lastScore)
			require.True(t, snap.Mode.Valid())
			lastIndex = snap.Index
			lastScore = snap.Score
		}
	})
}
