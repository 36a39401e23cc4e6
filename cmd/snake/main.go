// snake is a grid Snake game for the terminal.
//
// Usage:
//
//	snake play               - Pick a difficulty and play
//	snake serve              - Start SSH server for remote play
//	snake scores             - Show the best runs
//	snake sim --moves RRDD   - Run the engine headless on a scripted move list
//	snake config             - Print the effective configuration
//	snake list               - List registered games
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.snake/scores.db)
//	--config <path>   - Load a custom config YAML
//	--log-file <path> - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-snake/internal/config"
	"github.com/vovakirdan/grid-snake/internal/core"
	"github.com/vovakirdan/grid-snake/internal/games/snake"
	"github.com/vovakirdan/grid-snake/internal/platform/tui"
	"github.com/vovakirdan/grid-snake/internal/registry"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Grid Snake in your terminal",
	Long: `Snake on a rectangular grid. Steer the head, eat food to grow,
and avoid the walls and your own body.

Available commands:
  play     - Pick a difficulty and play
  serve    - Start SSH server for remote play
  scores   - View the best runs
  sim      - Run the engine headless on a move script
  config   - Print the effective configuration
  list     - List registered games

Examples:
  snake play
  snake play --difficulty hard
  snake serve --ssh :2222
  snake sim --grid 10x10 --moves RRRDDL`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
}

// newLogger builds the command logger. Logs go to --log-file when set,
// otherwise to fallback. The returned func closes the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	out, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// loadConfig loads the YAML config named by --config, or the defaults.
func loadConfig() (config.SnakeConfig, error) {
	snake.SetConfigPath(flagConfig)
	return config.LoadSnake(flagConfig)
}

// newFactory builds games from base with a difficulty preset applied.
func newFactory(base config.SnakeConfig) tui.GameFactory {
	return func(preset config.DifficultyPreset) registry.Game {
		cfg := base
		config.ApplySnakePreset(&cfg, preset)
		return snake.NewWithConfig(cfg)
	}
}

func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
