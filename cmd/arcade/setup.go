package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/games/bomber"
	"github.com/vovakirdan/blastpong/internal/games/pong"
	"github.com/vovakirdan/blastpong/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

// addGameFlags registers the per-game config flags on cmd.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// configureGame applies --config and --difficulty to the game package
// before the game is created.
func configureGame(gameID string) {
	switch gameID {
	case "bomber":
		bomber.SetConfigPath(flagConfig)
		bomber.SetDifficultyPreset(flagDifficulty)
	case "pong":
		pong.SetConfigPath(flagConfig)
		pong.SetDifficultyPreset(flagDifficulty)
	}
}

// mustGame checks that gameID is registered, exiting otherwise.
func mustGame(gameID string) {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
}

// terminalConfig builds the runtime config from the terminal size and
// the global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// newLogger returns a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// sessionLogger returns the logger for interactive sessions. The screen
// belongs to the game, so logs only go to --log-file. The returned close
// func is never nil.
func sessionLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return nil, func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return nil, func() {}
	}
	return newLogger(f, "arcade"), func() { f.Close() }
}
