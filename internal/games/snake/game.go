// Package snake implements the grid Snake game: a pure state-transition
// engine and the Game adapter that drives it from platform input.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/grid-snake/internal/config"
	"github.com/vovakirdan/grid-snake/internal/core"
	"github.com/vovakirdan/grid-snake/internal/registry"
)

// GameID is the registry and score-table identifier.
const GameID = "snake"

// hudHeight is the number of screen rows above the board.
const hudHeight = 2

// Package-level settings applied on the next Reset, set by the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the YAML config file used by new games.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by new games.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game adapts the Engine to the platform's fixed-rate input loop.
type Game struct {
	cfg        config.SnakeConfig
	cfgLoaded  bool
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	engine     *Engine

	tick       uint64
	moveEvery  int
	moveTicker int

	started   bool
	direction Direction // Heading applied on the last move
	nextDir   Direction // Buffered heading for the next move

	paused   bool
	tooSmall bool

	screenW int
	screenH int
	board   core.Rect // Board interior in screen cells
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.SnakeConfig) *Game {
	return &Game{cfg: cfg, cfgLoaded: true}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.cfgLoaded {
		loaded, err := config.LoadSnake(configPath)
		if err != nil {
			loaded = config.DefaultSnakeConfig()
		}
		config.ApplySnakePreset(&loaded, difficultyPreset)
		g.cfg = loaded
		g.cfgLoaded = true
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.tick = 0
	g.moveTicker = 0
	g.moveEvery = g.cfg.Movement.MoveEveryTicks
	g.started = false
	g.direction = Right
	g.nextDir = Right
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.layout()
}

// layout sizes the board for the screen and builds a fresh engine.
func (g *Game) layout() {
	size := g.cfg.Grid.GridSize
	height, width := size.Height, size.Width

	availW := g.screenW - 2
	availH := g.screenH - hudHeight - 2
	if g.cfg.Grid.FitToScreen {
		width = core.Min(width, availW)
		height = core.Min(height, availH)
	}

	if width < 2 || height < 2 || width > availW || height > availH {
		g.tooSmall = true
		g.engine = nil
		return
	}
	g.tooSmall = false

	start := Position{Row: height / 2, Col: width / 2}
	if s := g.cfg.Grid.Start; s != nil && s.Row < height && s.Col < width {
		start = Position{Row: s.Row, Col: s.Col}
	}

	engine, err := NewEngine(Config{Height: height, Width: width, Start: start}, g.rng)
	if err != nil {
		g.tooSmall = true
		g.engine = nil
		return
	}
	g.engine = engine

	outer := core.CenteredRect(g.screenW, g.screenH-hudHeight, width+2, height+2)
	outer.Y += hudHeight
	g.board = outer.Inset(1)
}

// Engine returns the underlying engine, or nil when the screen is too small.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step advances the game by one platform tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.isOver() {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && g.started && !g.isOver() {
		g.paused = !g.paused
	}

	if g.tooSmall || g.isOver() || g.paused {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)
	if !g.started {
		return core.StepResult{State: g.State()}
	}

	g.moveTicker++
	if g.moveTicker < g.moveEvery {
		return core.StepResult{State: g.State()}
	}
	g.moveTicker = 0

	if err := g.engine.Tick(g.nextDir); err != nil {
		return core.StepResult{State: g.State(), Ended: true, Reason: err}
	}
	g.direction = g.nextDir
	g.moveEvery = g.difficulty.MoveInterval(
		g.cfg.Movement.MoveEveryTicks,
		g.cfg.Movement.MinMoveEveryTicks,
		g.engine.Score(),
		int(g.tick),
	)

	return core.StepResult{State: g.State()}
}

// processInput buffers the requested heading. The first heading starts the
// game; reversing straight into the neck is ignored.
func (g *Game) processInput(input core.InputFrame) {
	dir, ok := inputDirection(input)
	if !ok {
		return
	}

	if !g.started {
		g.started = true
		g.direction = dir
		g.nextDir = dir
		g.moveTicker = g.moveEvery - 1 // move on this tick
		return
	}

	if dir != g.direction.Opposite() {
		g.nextDir = dir
	}
}

func inputDirection(input core.InputFrame) (Direction, bool) {
	switch {
	case input.Has(core.ActionUp):
		return Up, true
	case input.Has(core.ActionDown):
		return Down, true
	case input.Has(core.ActionLeft):
		return Left, true
	case input.Has(core.ActionRight):
		return Right, true
	}
	return 0, false
}

func (g *Game) isOver() bool {
	return g.engine != nil && g.engine.GameOver()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.engine != nil {
		score = g.engine.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.isOver(),
		Paused:   g.paused,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(g.board.Inset(-1), core.ColorGray)
	RenderBoard(dst, g.engine, g.board.X, g.board.Y)

	switch {
	case g.isOver():
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  -  press R to restart", g.engine.Score()))
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	case !g.started:
		renderOverlay(dst, "Snake", "Press an arrow key to start")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := " SNAKE"
	if g.engine != nil {
		hud = fmt.Sprintf(" SNAKE  Score: %d  Length: %d  Speed: %d  Board: %dx%d",
			g.engine.Score(), g.engine.Len(), g.cfg.Movement.MoveEveryTicks-g.moveEvery+1,
			g.engine.Height(), g.engine.Width())
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}
