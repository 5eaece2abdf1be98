package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/vimdrill/internal/editor"
	"github.com/verte-zerg/vimdrill/internal/model"
)

const (
	// HistoryLimit bounds the keystroke history used for scoring.
	HistoryLimit = 10
	// DefaultPar is used when a challenge has no par keystroke count.
	DefaultPar = 10

	maxBase         = 100
	minBase         = 10
	pointsPerSecond = 2
	efficiencyPar   = 50
	efficiencyNear  = 25
	commandBonus    = 25
)

// Score is the breakdown of points awarded for one completed challenge.
type Score struct {
	Base       int
	Efficiency int
	Command    int
}

// Total returns the sum of all components.
func (s Score) Total() int {
	return s.Base + s.Efficiency + s.Command
}

// Message renders the multi-line completion banner.
func (s Score) Message() string {
	return fmt.Sprintf("Challenge completed!\nBase Score: %d\nEfficiency Bonus: +%d\nCommand Bonus: +%d\nTotal: +%d points",
		s.Base, s.Efficiency, s.Command, s.Total())
}

// ScoreRun scores a challenge solved after elapsed with the given recent keys.
// Only the bounded history is counted, so the efficiency bonus reflects the
// last HistoryLimit keys rather than every key pressed for the challenge.
func ScoreRun(c model.Challenge, elapsed time.Duration, history []editor.Key) Score {
	seconds := int(elapsed / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	base := maxBase - seconds*pointsPerSecond
	if base < minBase {
		base = minBase
	}

	par := c.ParKeystrokes
	if par <= 0 {
		par = DefaultPar
	}
	efficiency := 0
	switch k := len(history); {
	case k <= par:
		efficiency = efficiencyPar
	case float64(k) <= float64(par)*1.5:
		efficiency = efficiencyNear
	}

	bonus := 0
	if c.ExpectedCommand != "" && strings.Contains(joinKeys(history), c.ExpectedCommand) {
		bonus = commandBonus
	}
	return Score{Base: base, Efficiency: efficiency, Command: bonus}
}

func joinKeys(keys []editor.Key) string {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(string(k))
	}
	return b.String()
}

// appendKey returns a new history with k appended, dropping the oldest
// entries beyond HistoryLimit.
func appendKey(history []editor.Key, k editor.Key) []editor.Key {
	start := len(history) + 1 - HistoryLimit
	if start < 0 {
		start = 0
	}
	out := make([]editor.Key, 0, HistoryLimit)
	out = append(out, history[start:]...)
	return append(out, k)
}
