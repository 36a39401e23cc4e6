package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-snake/internal/core"
	"github.com/vovakirdan/grid-snake/internal/games/snake"
	"github.com/vovakirdan/grid-snake/internal/registry"
	"github.com/vovakirdan/grid-snake/internal/storage"
)

// GameModel drives one game at a fixed tick rate and records every
// finished run in the store.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. store and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, logger *log.Logger, player string, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if player == "" {
		player = "local"
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		player:     player,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize rebuilds the board for the new size unless the run is over,
// in which case the final board stays on screen.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Ended {
		m.recordRun(result.Reason)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun logs a finished run and saves it, best-effort.
func (m *GameModel) recordRun(reason error) {
	run := storage.Run{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
	}
	if reason != nil {
		run.EndReason = reason.Error()
	}
	if g, ok := m.game.(*snake.Game); ok {
		snap := g.Snapshot()
		run.Length = snap.SnakeLen
		run.Moves = snap.Moves
		run.GridH = snap.GridH
		run.GridW = snap.GridW
	}

	m.logger.Info("run ended",
		"player", run.Player,
		"score", run.Score,
		"length", run.Length,
		"moves", run.Moves,
		"reason", run.EndReason,
	)

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the player quits or backs out.
// It reports whether the player asked to return to the menu.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	p := tea.NewProgram(NewGameModel(game, store, logger, "local", cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	return ok && m.BackToMenu(), nil
}
