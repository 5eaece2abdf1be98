// Package main provides the CLI entrypoint for vimdrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/vimdrill/internal/challenge"
	"github.com/verte-zerg/vimdrill/internal/config"
	"github.com/verte-zerg/vimdrill/internal/game"
	"github.com/verte-zerg/vimdrill/internal/log"
	"github.com/verte-zerg/vimdrill/internal/model"
	"github.com/verte-zerg/vimdrill/internal/report"
	"github.com/verte-zerg/vimdrill/internal/tui"
)

const terminalWidthBackup = 80

var (
	playChallenges      string
	playShuffle         bool
	playSeed            int64
	playCompletionDelay time.Duration
	playTransitionDelay time.Duration
	playDebug           bool
	playLogFile         string

	listChallenges string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vimdrill",
		Short:         "Practice modal editing through scored challenges",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playChallenges, "challenges", "", "challenge pack YAML file (default: built-in pack)")
	rootCmd.Flags().BoolVar(&playShuffle, "shuffle", false, "play challenges in random order")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "shuffle seed (0 picks one)")
	rootCmd.Flags().DurationVar(&playCompletionDelay, "completion-delay", game.DefaultCompletionDelay, "how long the score banner stays up")
	rootCmd.Flags().DurationVar(&playTransitionDelay, "transition-delay", game.DefaultTransitionDelay, "pause before the next challenge")
	rootCmd.Flags().BoolVar(&playDebug, "debug", false, "write a debug log")
	rootCmd.Flags().StringVar(&playLogFile, "log-file", config.DefaultLogPath(), "debug log path")

	rootCmd.AddCommand(newChallengesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolvePlayConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("vimdrill needs an interactive terminal")
	}

	if cfg.Debug {
		closeLog, err := openLog(cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()
	}

	challenges, err := loadChallenges(cfg.ChallengesPath)
	if err != nil {
		return err
	}
	if cfg.Shuffle {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		log.Info(log.CatConfig, "shuffling challenges", "seed", seed)
		challenges = challenge.Shuffle(challenges, seed)
	}

	session, err := game.New(challenges, game.Options{
		GameID:          uuid.NewString(),
		CompletionDelay: cfg.CompletionDelay,
		TransitionDelay: cfg.TransitionDelay,
	}, time.Now())
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	feed := tui.NewFeed()
	runner := game.NewRunner(session, feed.Publish)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runErr := make(chan error, 1)
	go func() {
		err := runner.Run(ctx)
		feed.Close()
		runErr <- err
	}()

	program := tea.NewProgram(tui.NewModel(feed, runner.Send, cfg.Debug), tea.WithAltScreen())
	_, uiErr := program.Run()
	cancel()
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		log.ErrorErr(log.CatGame, "game loop failed", err)
		logErrf("game loop failed: %v\n", err)
	}
	if uiErr != nil {
		return fmt.Errorf("failed to run TUI: %w", uiErr)
	}
	return nil
}

func resolvePlayConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	g := fileCfg.Game
	applyStringConfig(cmd, "challenges", &playChallenges, g.Challenges)
	applyBoolConfig(cmd, "shuffle", &playShuffle, g.Shuffle)
	applyInt64Config(cmd, "seed", &playSeed, g.Seed)
	applyBoolConfig(cmd, "debug", &playDebug, g.Debug)
	applyStringConfig(cmd, "log-file", &playLogFile, g.LogFile)
	if err := applyDurationConfig(cmd, "completion-delay", &playCompletionDelay, g.CompletionDelay); err != nil {
		return model.Config{}, err
	}
	if err := applyDurationConfig(cmd, "transition-delay", &playTransitionDelay, g.TransitionDelay); err != nil {
		return model.Config{}, err
	}

	return model.Config{
		ChallengesPath:  playChallenges,
		Shuffle:         playShuffle,
		Seed:            playSeed,
		CompletionDelay: playCompletionDelay,
		TransitionDelay: playTransitionDelay,
		Debug:           playDebug,
		LogFile:         playLogFile,
	}, nil
}

func openLog(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	closeLog, err := log.Init(path)
	if err != nil {
		return nil, err
	}
	log.Info(log.CatConfig, "debug log opened", "path", path)
	return closeLog, nil
}

func loadChallenges(path string) ([]model.Challenge, error) {
	if path == "" {
		challenges, err := challenge.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in challenges: %w", err)
		}
		return challenges, nil
	}
	challenges, err := challenge.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenges: %w", err)
	}
	log.Info(log.CatConfig, "challenge pack loaded", "path", path, "count", len(challenges))
	return challenges, nil
}

func newChallengesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "List the challenges in a pack",
		Args:  cobra.NoArgs,
		RunE:  runChallengesCmd,
	}
	cmd.Flags().StringVar(&listChallenges, "challenges", "", "challenge pack YAML file (default: built-in pack)")
	return cmd
}

func runChallengesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "challenges", &listChallenges, fileCfg.Game.Challenges)

	challenges, err := loadChallenges(listChallenges)
	if err != nil {
		return err
	}
	return report.RenderChallenges(cmd.OutOrStdout(), challenges, terminalWidth())
}

func terminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, _, err := config.Duration(value)
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = d
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# vimdrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# challenges = "~/packs/mine.yaml"  # Challenge pack (default: built-in pack)
# shuffle = false                   # Play challenges in random order
# seed = 0                          # Shuffle seed, 0 picks one per game
# completion-delay = %q           # How long the score banner stays up
# transition-delay = %q           # Pause before the next challenge
# debug = false                     # Write a debug log
# log-file = %q
`,
		game.DefaultCompletionDelay.String(),
		game.DefaultTransitionDelay.String(),
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.CompletionDelay < 0 {
		return fmt.Errorf("--completion-delay must be >= 0")
	}
	if cfg.TransitionDelay < 0 {
		return fmt.Errorf("--transition-delay must be >= 0")
	}
	if cfg.Debug && strings.TrimSpace(cfg.LogFile) == "" {
		return fmt.Errorf("--log-file must not be empty when --debug is set")
	}
	if cfg.Seed != 0 && !cfg.Shuffle {
		logErrln("--seed has no effect without --shuffle")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
