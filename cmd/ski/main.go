// ski is a terminal skiing arcade: carve down an endless slope, dodge the
// trees and clear slalom sections for bonus points.
//
// Usage:
//
//	ski play                 - Ski in the terminal (menu, shop, high scores)
//	ski sim                  - Run a headless simulation and print the result
//	ski scores               - Show the run history
//	ski shop list|buy|equip  - Browse and buy skins
//	ski progress             - Show or reset saved progress
//	ski serve                - Start SSH server for remote play
//	ski config               - Print the resolved config as YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.ski-arcade/runs.db)
//	--log <path>          - Write logs to a file
//	--config <path>       - Custom ski config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ski-arcade/internal/config"
	"github.com/vovakirdan/ski-arcade/internal/games/ski"
	"github.com/vovakirdan/ski-arcade/internal/progress"
	"github.com/vovakirdan/ski-arcade/internal/storage"
)

// appName names the per-user save-data directory.
const appName = "ski_arcade"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogPath    string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ski",
	Short: "Ski Arcade - carve an endless slope in your terminal",
	Long: `Ski Arcade is a terminal skiing game. Steer down an endless,
procedurally populated slope, avoid trees and huts, and pass slalom gates
to fill a bonus pot that is banked when you cross the finish.

Scores feed a wallet you can spend on skins in the shop.

Examples:
  ski play
  ski play --difficulty hard
  ski sim --duration 30s --steer weave
  ski shop buy gold
  ski serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		ski.SetConfigPath(flagConfig)
		ski.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ski-arcade/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom ski config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. With --log it writes to that file and
// the returned closer must be called; otherwise it writes to fallback.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closer := func() {}
	if flagLogPath != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "ski",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// openProgress opens the local save data, falling back to an in-memory store
// so the game stays playable without a data directory.
func openProgress(logger *log.Logger) progress.Store {
	store, err := progress.OpenGdata(appName)
	if err != nil {
		logger.Warn("Save data unavailable, progress will not persist", "err", err)
		return progress.NewMemoryStore()
	}
	return store
}

// openHistory opens the run history database. A failure is logged and
// returns nil; callers run without a history.
func openHistory(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("Could not open run history", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
