// Package config provides YAML-based game configuration loading and
// difficulty management for the snake game.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid       SnakeGrid        `yaml:"grid"`
	Movement   SnakeMovement    `yaml:"movement"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeGrid defines the playing field.
type SnakeGrid struct {
	GridSize GridSize `yaml:"grid_size"`

	// Start is the initial head cell. Nil places the head in the middle.
	Start *Cell `yaml:"start,omitempty"`

	// FitToScreen shrinks the grid to the terminal when it does not fit.
	FitToScreen bool `yaml:"fit_to_screen"`
}

// SnakeMovement defines how often the snake moves, in simulation ticks.
type SnakeMovement struct {
	MoveEveryTicks    int `yaml:"move_every_ticks"`
	MinMoveEveryTicks int `yaml:"min_move_every_ticks"`
}

// GridSize is the board size. In YAML it is either a [height, width]
// sequence or a {height, width} mapping.
type GridSize struct {
	Height int
	Width  int
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *GridSize) UnmarshalYAML(value *yaml.Node) error {
	return decodePair(value, "height", "width", &g.Height, &g.Width)
}

// MarshalYAML implements yaml.Marshaler.
func (g GridSize) MarshalYAML() (any, error) {
	return []int{g.Height, g.Width}, nil
}

// Cell is a grid coordinate, written as [row, col] or {row, col}.
type Cell struct {
	Row int
	Col int
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Cell) UnmarshalYAML(value *yaml.Node) error {
	return decodePair(value, "row", "col", &c.Row, &c.Col)
}

// MarshalYAML implements yaml.Marshaler.
func (c Cell) MarshalYAML() (any, error) {
	return []int{c.Row, c.Col}, nil
}

func decodePair(value *yaml.Node, first, second string, a, b *int) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var pair []int
		if err := value.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: expected [%s, %s], got %d values", value.Line, first, second, len(pair))
		}
		*a, *b = pair[0], pair[1]
		return nil
	case yaml.MappingNode:
		var m map[string]int
		if err := value.Decode(&m); err != nil {
			return err
		}
		av, okA := m[first]
		bv, okB := m[second]
		if !okA || !okB {
			return fmt.Errorf("line %d: expected keys %q and %q", value.Line, first, second)
		}
		*a, *b = av, bv
		return nil
	default:
		return fmt.Errorf("line %d: expected [%s, %s]", value.Line, first, second)
	}
}

// Validate checks the configuration for values the game cannot run with.
func (c SnakeConfig) Validate() error {
	size := c.Grid.GridSize
	if size.Height <= 0 || size.Width <= 0 {
		return fmt.Errorf("config: grid_size must be positive, got [%d, %d]", size.Height, size.Width)
	}
	if s := c.Grid.Start; s != nil {
		if s.Row < 0 || s.Row >= size.Height || s.Col < 0 || s.Col >= size.Width {
			return fmt.Errorf("config: start [%d, %d] is outside the %dx%d grid", s.Row, s.Col, size.Height, size.Width)
		}
	}
	if c.Movement.MoveEveryTicks <= 0 {
		return fmt.Errorf("config: move_every_ticks must be positive, got %d", c.Movement.MoveEveryTicks)
	}
	if c.Movement.MinMoveEveryTicks <= 0 || c.Movement.MinMoveEveryTicks > c.Movement.MoveEveryTicks {
		return fmt.Errorf("config: min_move_every_ticks must be in [1, %d], got %d",
			c.Movement.MoveEveryTicks, c.Movement.MinMoveEveryTicks)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	// SpeedMultiplier is the share of the gap between move_every_ticks and
	// min_move_every_ticks that is closed at max difficulty.
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
