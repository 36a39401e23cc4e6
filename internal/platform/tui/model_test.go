package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/grid-snake/internal/config"
	"github.com/vovakirdan/grid-snake/internal/core"
	"github.com/vovakirdan/grid-snake/internal/games/snake"
	"github.com/vovakirdan/grid-snake/internal/registry"
	"github.com/vovakirdan/grid-snake/internal/storage"
)

func testFactory(preset config.DifficultyPreset) registry.Game {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.GridSize = config.GridSize{Height: 5, Width: 5}
	cfg.Movement.MoveEveryTicks = 1
	cfg.Movement.MinMoveEveryTicks = 1
	config.ApplySnakePreset(&cfg, preset)
	return snake.NewWithConfig(cfg)
}

func step(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestGameModelRecordsFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 1}
	game := testFactory(config.DifficultyFixed)
	game.Reset(cfg)

	var m tea.Model = NewGameModel(game, store, nil, "tester", cfg)
	for i := 0; i < 10; i++ {
		m = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
		m = step(t, m, TickMsg{})
	}

	gm := m.(GameModel)
	if !gm.gameState.GameOver {
		t.Fatal("heading straight up on a 5x5 board should end the game")
	}

	runs, err := store.TopRuns(snake.GameID, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, expected exactly one saved run", len(runs))
	}
	r := runs[0]
	if r.Player != "tester" || r.GridH != 5 || r.GridW != 5 || r.Moves != 2 {
		t.Errorf("run = %+v, expected tester on 5x5 after 2 moves", r)
	}
	if !strings.Contains(r.EndReason, "out of bounds") {
		t.Errorf("EndReason = %q, expected an out-of-bounds reason", r.EndReason)
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 1}
	var m tea.Model = NewSessionModel(nil, snake.GameID, testFactory, nil, "tester", cfg)

	// Menu starts on Normal; Enter starts a game
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if s := m.(SessionModel); s.view != viewGame {
		t.Fatalf("view = %v after selecting a preset, expected game", s.view)
	}

	// Pause, then back out to the menu
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = step(t, m, TickMsg{})
	m = step(t, m, runeKey('p'))
	m = step(t, m, TickMsg{})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if s := m.(SessionModel); s.view != viewMenu {
		t.Fatalf("view = %v after backing out of a paused game, expected menu", s.view)
	}

	// Tab opens the scoreboard, Esc returns
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if s := m.(SessionModel); s.view != viewScores {
		t.Fatalf("view = %v after Tab, expected scores", s.view)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view should show its title")
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if s := m.(SessionModel); s.view != viewMenu {
		t.Fatalf("view = %v after leaving the scoreboard, expected menu", s.view)
	}
}
