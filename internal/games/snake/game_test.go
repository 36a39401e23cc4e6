package snake

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/grid-snake/internal/config"
	"github.com/vovakirdan/grid-snake/internal/core"
	"github.com/vovakirdan/grid-snake/internal/registry"
)

func testConfig(h, w, moveEvery int) config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.GridSize = config.GridSize{Height: h, Width: w}
	cfg.Movement.MoveEveryTicks = moveEvery
	cfg.Movement.MinMoveEveryTicks = 1
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestGame(cfg config.SnakeConfig, seed int64) *Game {
	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("game %q should be registered", GameID)
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != GameID || g.Title() != "Snake" {
		t.Errorf("ID/Title = %q/%q, expected %q/%q", g.ID(), g.Title(), GameID, "Snake")
	}
}

func TestGameWaitsForFirstDirection(t *testing.T) {
	g := newTestGame(testConfig(10, 10, 3), 1)
	start := g.Engine().Head()

	for i := 0; i < 30; i++ {
		g.Step(frame())
	}
	if g.Engine().Ticks() != 0 || g.Engine().Head() != start {
		t.Fatal("snake moved before any direction was pressed")
	}
	if s := g.Snapshot(); s.State != StateWaiting {
		t.Errorf("state = %s, expected %s", s.State, StateWaiting)
	}

	g.Step(frame(core.ActionRight))
	if g.Engine().Ticks() != 1 {
		t.Fatalf("first direction should move at once, engine ticks = %d", g.Engine().Ticks())
	}
	if want := start.Step(Right); g.Engine().Head() != want {
		t.Errorf("head = %s, expected %s", g.Engine().Head(), want)
	}
}

func TestGameMovesEveryNTicks(t *testing.T) {
	g := newTestGame(testConfig(10, 10, 4), 1)
	g.Step(frame(core.ActionDown))

	for i := 0; i < 3; i++ {
		g.Step(frame())
	}
	if g.Engine().Ticks() != 1 {
		t.Errorf("engine ticks = %d after 3 idle steps, expected 1", g.Engine().Ticks())
	}
	g.Step(frame())
	if g.Engine().Ticks() != 2 {
		t.Errorf("engine ticks = %d after 4 idle steps, expected 2", g.Engine().Ticks())
	}
}

func TestGameIgnoresReversal(t *testing.T) {
	g := newTestGame(testConfig(10, 10, 1), 1)
	g.Step(frame(core.ActionRight))
	head := g.Engine().Head()

	g.Step(frame(core.ActionLeft))
	if want := head.Step(Right); g.Engine().Head() != want {
		t.Errorf("head = %s, expected reversal ignored and head at %s", g.Engine().Head(), want)
	}
	if g.isOver() {
		t.Error("a reversal request must not end the game")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(testConfig(5, 5, 1), 1)

	var ended core.StepResult
	for i := 0; i < 10 && !ended.Ended; i++ {
		ended = g.Step(frame(core.ActionUp))
	}

	if !ended.Ended {
		t.Fatal("running into the top wall should end the game")
	}
	if !errors.Is(ended.Reason, ErrOutOfBounds) {
		t.Errorf("Reason = %v, expected ErrOutOfBounds", ended.Reason)
	}
	if !g.State().GameOver {
		t.Error("State().GameOver should be true")
	}

	// Further steps stay over and never report Ended again
	if r := g.Step(frame(core.ActionLeft)); r.Ended || !r.State.GameOver {
		t.Errorf("step after game over = %+v, expected over without Ended", r)
	}

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver || g.Engine().Ticks() != 0 {
		t.Error("restart should start a fresh engine")
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(testConfig(10, 10, 1), 1)

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("pause should be ignored before the game starts")
	}

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionPause))
	ticks := g.Engine().Ticks()
	for i := 0; i < 5; i++ {
		g.Step(frame())
	}
	if !g.State().Paused || g.Engine().Ticks() != ticks {
		t.Error("paused game should not move")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameFitsBoardToScreen(t *testing.T) {
	g := newTestGame(testConfig(50, 50, 6), 1)
	e := g.Engine()
	if e == nil {
		t.Fatal("fit_to_screen should shrink the board instead of failing")
	}
	if e.Height() != 20 || e.Width() != 50 {
		t.Errorf("board = %dx%d, expected 20x50 on an 80x24 screen", e.Height(), e.Width())
	}

	cfg := testConfig(50, 50, 6)
	cfg.Grid.FitToScreen = false
	g = newTestGame(cfg, 1)
	if g.Engine() != nil {
		t.Error("an oversized board without fit_to_screen should not build an engine")
	}
	if s := g.Snapshot(); s.State != StatePausedSmall {
		t.Errorf("state = %s, expected %s", s.State, StatePausedSmall)
	}
}

func TestGameDeterminism(t *testing.T) {
	script := []core.Action{
		core.ActionRight, core.ActionNone, core.ActionDown, core.ActionNone,
		core.ActionLeft, core.ActionNone, core.ActionNone, core.ActionUp,
	}

	run := func() []Snapshot {
		g := newTestGame(testConfig(12, 12, 2), 42)
		var snaps []Snapshot
		for i := 0; i < 200; i++ {
			g.Step(frame(script[i%len(script)]))
			snaps = append(snaps, g.Snapshot())
		}
		return snaps
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("snapshot %d differs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(testConfig(10, 10, 6), 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"SNAKE", "Score: 0", "Press an arrow key to start"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

func TestRenderText(t *testing.T) {
	e := newTestEngine(t, 3, 4, Position{Row: 1, Col: 1})
	if err := e.PlaceFood(Position{Row: 2, Col: 3}); err != nil {
		t.Fatalf("PlaceFood() failed: %v", err)
	}

	want := "····\n·O··\n···*"
	if got := strings.TrimRight(RenderText(e), "\n"); got != want {
		t.Errorf("RenderText() =\n%s\nexpected\n%s", got, want)
	}
}

func TestEngineSnapshot(t *testing.T) {
	e := newTestEngine(t, 6, 6, Position{Row: 3, Col: 3})
	before := EngineSnapshot(e)
	if err := e.Tick(Up); err != nil {
		t.Fatalf("Tick(Up) failed: %v", err)
	}
	after := EngineSnapshot(e)

	if before.CellsHash == after.CellsHash {
		t.Error("cells hash should change when the snake moves")
	}
	if after.Moves != 1 || after.Dir != Up || after.Head != (Position{Row: 2, Col: 3}) {
		t.Errorf("snapshot = %+v, expected one move up to (2,3)", after)
	}
}
