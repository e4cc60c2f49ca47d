package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ski-arcade/internal/core"
	"github.com/vovakirdan/ski-arcade/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Ski in the terminal",
	Long: `Start the terminal game with its menu, shop and high scores.

Controls:
  A/D, Left/Right  - Carve left/right
  Enter/Space      - Start a run
  C                - Toggle first/third person camera
  F1               - Toggle debug overlay
  P                - Pause
  R                - Restart the run
  Esc/B            - Abort the run, then back to menu
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Fewer trees, speed ramps up slowly
  normal - Config defaults
  hard   - More trees, starts faster and ramps up quickly
  fixed  - No speed progression

Examples:
  ski play
  ski play --difficulty easy
  ski play --config ./my-ski.yaml --log ./ski.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	// The alt screen owns the terminal, so logs only go to --log.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	deps := tui.Deps{
		Progress: openProgress(logger),
		History:  openHistory(logger),
		Logger:   logger,
	}
	if deps.History != nil {
		defer deps.History.Close()
	}

	logger.Info("Starting terminal session", "fps", flagFPS, "seed", flagSeed, "difficulty", flagDifficulty)
	if err := tui.Run(deps, cfg); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
