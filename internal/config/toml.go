// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game GameConfig `toml:"game"`
}

// GameConfig maps game-related settings.
type GameConfig struct {
	Challenges      *string `toml:"challenges"`
	Shuffle         *bool   `toml:"shuffle"`
	Seed            *int64  `toml:"seed"`
	CompletionDelay *string `toml:"completion-delay"`
	TransitionDelay *string `toml:"transition-delay"`
	Debug           *bool   `toml:"debug"`
	LogFile         *string `toml:"log-file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Game.validateDurations(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

func (g GameConfig) validateDurations() error {
	for name, v := range map[string]*string{
		"completion-delay": g.CompletionDelay,
		"transition-delay": g.TransitionDelay,
	} {
		if v == nil {
			continue
		}
		if _, err := time.ParseDuration(*v); err != nil {
			return fmt.Errorf("invalid %s in config: %w", name, err)
		}
	}
	return nil
}

// Duration parses an optional duration string. Nil yields ok == false.
func Duration(v *string) (time.Duration, bool, error) {
	if v == nil {
		return 0, false, nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return 0, false, err
	}
	return d, true, nil
}
