// Package registry maps game IDs to factories. Games register themselves
// from init(), so the CLI and the SSH server can build a game by name
// without importing its package directly.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/grid-snake/internal/core"
)

// Game is what the platform loop drives. Implementations keep all state
// themselves and never touch the terminal; the platform owns input mapping,
// timing and output.
type Game interface {
	// ID is the stable identifier used on the command line and in the
	// score table.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new round for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed platform tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the caller owns.
	Render(dst *core.Screen)

	// State reports score and lifecycle flags.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
