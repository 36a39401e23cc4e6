package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/grid-snake/internal/config"
	"github.com/vovakirdan/grid-snake/internal/core"
	"github.com/vovakirdan/grid-snake/internal/storage"
)

// MenuItem is one selectable line of the start menu.
type MenuItem struct {
	Label  string
	Hint   string
	Preset config.DifficultyPreset
	Scores bool // Opens the scoreboard instead of starting a game
}

// defaultMenuItems lists the difficulty presets followed by the scoreboard.
func defaultMenuItems() []MenuItem {
	return []MenuItem{
		{Label: "Easy", Hint: "starts slow, speeds up as you eat", Preset: config.DifficultyEasy},
		{Label: "Normal", Hint: "starts at 30% speed-up", Preset: config.DifficultyNormal},
		{Label: "Hard", Hint: "starts at 70% speed-up", Preset: config.DifficultyHard},
		{Label: "Fixed", Hint: "constant speed", Preset: config.DifficultyFixed},
		{Label: "High Scores", Scores: true},
	}
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	gameID         string
	highScore      int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a start menu. The best score for gameID is shown
// when a store is available.
func NewMenuModel(store *storage.Store, gameID string, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		items:     defaultMenuItems(),
		cursor:    1,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		gameID:    gameID,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if high, err := store.HighScore(gameID); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		item := m.items[m.cursor]
		if item.Scores {
			m.openScoreboard = true
			return m, tea.Quit
		}
		m.selected = &item
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E"), "S N A K E", m.width))
	b.WriteString("\n\n")

	best := fmt.Sprintf("Best score: %d", m.highScore)
	b.WriteString(centerText(hintStyle.Render(best), best, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Label
		style := lipgloss.NewStyle()
		if i == m.cursor {
			line = "> " + item.Label
			style = activeStyle
		}
		if item.Hint != "" && i == m.cursor {
			line += "  (" + item.Hint + ")"
		}
		b.WriteString(centerText(style.Render(line), line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(hintStyle.Render(controls), controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen difficulty item, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads rendered so that plain, its unstyled text, is centered.
func centerText(rendered, plain string, width int) string {
	n := len([]rune(plain))
	if n >= width {
		return rendered
	}
	return strings.Repeat(" ", (width-n)/2) + rendered
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the start menu as its own program.
func RunMenu(store *storage.Store, gameID string, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, gameID, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Preset = m.Selected().Preset
	default:
		result.Quit = true
	}
	return result, nil
}
