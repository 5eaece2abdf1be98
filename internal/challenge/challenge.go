// Package challenge loads and validates challenge packs.
package challenge

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/vimdrill/internal/model"
)

//go:embed packs/default.yaml
var defaultPack []byte

// PackFile is the root of a challenge pack YAML file.
type PackFile struct {
	Challenges []Def `yaml:"challenges"`
}

// Def defines a single challenge in YAML.
type Def struct {
	ID          string `yaml:"id"`
	Initial     string `yaml:"initial"`
	Target      string `yaml:"target"`
	Instruction string `yaml:"instruction"`
	Hint        string `yaml:"hint"`
	Par         int    `yaml:"par"`      // reference keystroke count, defaults to 10
	Expected    string `yaml:"expected"` // key sequence earning the command bonus
	Difficulty  string `yaml:"difficulty"`
}

const defaultPar = 10

// Default returns the built-in challenge pack.
func Default() ([]model.Challenge, error) {
	return Parse(defaultPack)
}

// LoadFile reads a challenge pack from path.
func LoadFile(path string) ([]model.Challenge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	challenges, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return challenges, nil
}

// Parse decodes and validates a YAML challenge pack.
func Parse(data []byte) ([]model.Challenge, error) {
	var file PackFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode challenge pack: %w", err)
	}
	challenges := make([]model.Challenge, 0, len(file.Challenges))
	for i, def := range file.Challenges {
		challenges = append(challenges, buildChallenge(def, i))
	}
	if err := Validate(challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

func buildChallenge(def Def, i int) model.Challenge {
	id := strings.TrimSpace(def.ID)
	if id == "" {
		id = fmt.Sprintf("c%d", i+1)
	}
	par := def.Par
	if par == 0 {
		par = defaultPar
	}
	difficulty := model.Difficulty(strings.ToLower(strings.TrimSpace(def.Difficulty)))
	if difficulty == "" {
		difficulty = model.DifficultyEasy
	}
	return model.Challenge{
		ID:              id,
		Initial:         def.Initial,
		Target:          def.Target,
		Instruction:     def.Instruction,
		Hint:            def.Hint,
		ParKeystrokes:   par,
		ExpectedCommand: def.Expected,
		Difficulty:      difficulty,
	}
}

// Validate checks a challenge list before play.
func Validate(challenges []model.Challenge) error {
	if len(challenges) == 0 {
		return fmt.Errorf("challenge pack is empty")
	}
	seen := make(map[string]struct{}, len(challenges))
	for i, c := range challenges {
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("challenge %d: duplicate id %q", i+1, c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.Target == "" {
			return fmt.Errorf("challenge %q: target must not be empty", c.ID)
		}
		if c.Initial == c.Target {
			return fmt.Errorf("challenge %q: initial text already equals target", c.ID)
		}
		if c.ParKeystrokes <= 0 {
			return fmt.Errorf("challenge %q: par must be > 0", c.ID)
		}
		switch c.Difficulty {
		case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		default:
			return fmt.Errorf("challenge %q: unknown difficulty %q", c.ID, c.Difficulty)
		}
	}
	return nil
}

// Shuffle returns a copy of challenges in an order derived from seed.
func Shuffle(challenges []model.Challenge, seed int64) []model.Challenge {
	out := append([]model.Challenge(nil), challenges...)
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
