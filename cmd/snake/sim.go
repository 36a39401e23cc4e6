package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/grid-snake/internal/games/snake"
)

var (
	flagSimGrid   string
	flagSimStart  string
	flagSimFood   string
	flagSimMoves  string
	flagSimRender string
	flagSimFormat string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the engine headless on a move script",
	Long: `Apply a list of moves to a fresh engine and report the result.
No terminal UI is started, so this is handy for checking rules and
reproducing a board with --seed.

Moves are either letters (RRDDLU) or names separated by commas or
spaces (right,right,down). The run stops at the first fatal move.

Examples:
  snake sim --moves RRRR
  snake sim --grid 5x5 --start 0,2 --moves U
  snake sim --grid 10x10 --food 5,5 --start 5,5 --moves RDLU --render each
  snake sim --seed 42 --moves RRDD --format yaml`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimGrid, "grid", "", "Board size as HxW (default: config grid_size)")
	simCmd.Flags().StringVar(&flagSimStart, "start", "", "Head start as row,col (default: center)")
	simCmd.Flags().StringVar(&flagSimFood, "food", "", "Place food at row,col before the first move")
	simCmd.Flags().StringVar(&flagSimMoves, "moves", "", "Move script, e.g. RRDDL or right,down")
	simCmd.Flags().StringVar(&flagSimRender, "render", "final", "Board output: each, final, none")
	simCmd.Flags().StringVar(&flagSimFormat, "format", "text", "Summary format: text, yaml")
}

// simReport is the summary printed after a simulation.
type simReport struct {
	Seed      int64  `yaml:"seed"`
	Grid      string `yaml:"grid"`
	Requested int    `yaml:"moves_requested"`
	Applied   uint64 `yaml:"moves_applied"`
	Score     int    `yaml:"score"`
	Length    int    `yaml:"length"`
	Head      []int  `yaml:"head,flow"`
	Food      []int  `yaml:"food,flow,omitempty"`
	GameOver  bool   `yaml:"game_over"`
	Reason    string `yaml:"reason,omitempty"`
	CellsHash string `yaml:"cells_hash"`
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr, "snake-sim")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	moves, err := snake.ParseMoves(flagSimMoves)
	if err != nil {
		logger.Fatal("bad move script", "error", err)
	}

	ecfg, err := simEngineConfig()
	if err != nil {
		logger.Fatal("bad board settings", "error", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine, err := snake.NewEngine(ecfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		logger.Fatal("cannot build engine", "error", err)
	}
	logger.Debug("engine ready", "seed", seed, "height", ecfg.Height, "width", ecfg.Width, "start", ecfg.Start)

	if flagSimFood != "" {
		row, col, err := parsePair(flagSimFood, ",")
		if err != nil {
			logger.Fatal("bad --food", "error", err)
		}
		if err := engine.PlaceFood(snake.Position{Row: row, Col: col}); err != nil {
			logger.Fatal("bad --food", "error", err)
		}
	}

	for i, dir := range moves {
		err := engine.Tick(dir)
		logger.Debug("tick", "n", i+1, "dir", dir, "head", engine.Head(), "score", engine.Score(), "error", err)
		if err != nil {
			break
		}
		if flagSimRender == "each" {
			fmt.Printf("move %d: %s\n%s\n\n", i+1, dir, snake.RenderText(engine))
		}
	}

	if flagSimRender == "final" {
		fmt.Println(snake.RenderText(engine))
		fmt.Println()
	}

	report := newSimReport(engine, seed, len(moves))
	switch flagSimFormat {
	case "yaml":
		out, err := yaml.Marshal(report)
		if err != nil {
			logger.Fatal("cannot encode report", "error", err)
		}
		fmt.Print(string(out))
	default:
		printSimReport(report)
	}

	if report.GameOver {
		os.Exit(2)
	}
}

// simEngineConfig resolves the board from flags and the loaded config.
func simEngineConfig() (snake.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return snake.Config{}, err
	}

	height, width := cfg.Grid.GridSize.Height, cfg.Grid.GridSize.Width
	if flagSimGrid != "" {
		if height, width, err = parsePair(strings.ToLower(flagSimGrid), "x"); err != nil {
			return snake.Config{}, fmt.Errorf("--grid: %w", err)
		}
	}

	start := snake.Position{Row: height / 2, Col: width / 2}
	if s := cfg.Grid.Start; s != nil && flagSimGrid == "" {
		start = snake.Position{Row: s.Row, Col: s.Col}
	}
	if flagSimStart != "" {
		row, col, err := parsePair(flagSimStart, ",")
		if err != nil {
			return snake.Config{}, fmt.Errorf("--start: %w", err)
		}
		start = snake.Position{Row: row, Col: col}
	}

	return snake.Config{Height: height, Width: width, Start: start}, nil
}

func newSimReport(e *snake.Engine, seed int64, requested int) simReport {
	snap := snake.EngineSnapshot(e)
	r := simReport{
		Seed:      seed,
		Grid:      fmt.Sprintf("%dx%d", snap.GridH, snap.GridW),
		Requested: requested,
		Applied:   snap.Moves,
		Score:     snap.Score,
		Length:    snap.SnakeLen,
		Head:      []int{snap.Head.Row, snap.Head.Col},
		GameOver:  e.GameOver(),
		CellsHash: fmt.Sprintf("%016x", snap.CellsHash),
	}
	if snap.HasFood {
		r.Food = []int{snap.Food.Row, snap.Food.Col}
	}
	if err := e.Reason(); err != nil {
		r.Reason = err.Error()
	}
	return r
}

func printSimReport(r simReport) {
	fmt.Printf("Board:  %s (seed %d)\n", r.Grid, r.Seed)
	fmt.Printf("Moves:  %d of %d applied\n", r.Applied, r.Requested)
	fmt.Printf("Score:  %d  Length: %d\n", r.Score, r.Length)
	fmt.Printf("Head:   (%d,%d)\n", r.Head[0], r.Head[1])
	if r.Food != nil {
		fmt.Printf("Food:   (%d,%d)\n", r.Food[0], r.Food[1])
	}
	if r.GameOver {
		fmt.Printf("Game over: %s\n", r.Reason)
	}
}

// parsePair parses "a<sep>b" into two integers.
func parsePair(s, sep string) (int, int, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), sep)
	if !ok {
		return 0, 0, fmt.Errorf("expected two numbers separated by %q, got %q", sep, s)
	}
	x, errA := strconv.Atoi(strings.TrimSpace(a))
	y, errB := strconv.Atoi(strings.TrimSpace(b))
	if err := errors.Join(errA, errB); err != nil {
		return 0, 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return x, y, nil
}
