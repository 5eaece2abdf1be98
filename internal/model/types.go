// Package model defines shared data structures.
package model

import "time"

// Config defines game settings after flags and the config file are merged.
type Config struct {
	ChallengesPath  string
	Shuffle         bool
	Seed            int64
	CompletionDelay time.Duration
	TransitionDelay time.Duration
	Debug           bool
	LogFile         string
}

// Difficulty grades a challenge.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Challenge is one scored exercise. Challenges are read-only once loaded.
type Challenge struct {
	ID              string
	Initial         string
	Target          string
	Instruction     string
	Hint            string
	ParKeystrokes   int
	ExpectedCommand string
	Difficulty      Difficulty
}
