package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/grid-snake/internal/config"
	"github.com/vovakirdan/grid-snake/internal/games/snake"
	"github.com/vovakirdan/grid-snake/internal/platform/tui"
	"github.com/vovakirdan/grid-snake/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Snake",
	Long: `Start the game. Without --difficulty a menu lets you pick one;
after a run you can go back to the menu and play again.

Controls:
  Arrows/WASD/HJKL - Steer (the first key starts the run)
  P/Space          - Pause
  R                - Restart (after game over)
  B/Esc            - Back to menu (when paused or over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at the base speed, speed up as you eat
  normal - Start at 30% of the speed-up
  hard   - Start at 70% of the speed-up
  fixed  - Constant speed

Examples:
  snake play
  snake play --difficulty hard
  snake play --config ./big-board.yaml --fps 30`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	base, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns stdout, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard, "snake")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := runtimeConfig(width, height)
	factory := newFactory(base)

	// A preset on the command line skips the menu for the first run.
	if preset != "" {
		logger.Info("game started", "difficulty", preset)
		back, runErr := tui.Run(factory(preset), store, logger, cfg)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			os.Exit(1)
		}
		if !back {
			return
		}
	}

	for {
		result, menuErr := tui.RunMenu(store, snake.GameID, cfg)
		if menuErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
			return
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, snake.GameID, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("game started", "difficulty", result.Preset)
		back, runErr := tui.Run(factory(result.Preset), store, logger, cfg)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			return
		}
		if !back {
			return
		}
	}
}
