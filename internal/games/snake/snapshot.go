package snake

import "hash/fnv"

// GameStateType represents the current game state.
type GameStateType string

const (
	StateWaiting     GameStateType = "waiting"
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick           uint64 // Platform ticks
	Moves          uint64 // Successful engine ticks
	Score          int
	SnakeLen       int
	Head           Position
	Dir            Direction
	Food           Position
	HasFood        bool
	GridH          int
	GridW          int
	CellsHash      uint64 // FNV-1a over the occupancy grid
	MoveEveryTicks int
	State          GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.isOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case !g.started:
		state = StateWaiting
	}

	snap := Snapshot{
		Tick:           g.tick,
		Dir:            g.direction,
		MoveEveryTicks: g.moveEvery,
		State:          state,
	}
	if g.engine != nil {
		snap.fill(g.engine)
	}
	return snap
}

// EngineSnapshot captures an engine on its own, without platform state.
func EngineSnapshot(e *Engine) Snapshot {
	snap := Snapshot{State: StatePlaying}
	if e.GameOver() {
		snap.State = StateGameOver
	}
	if d := e.snake[0].Direction; d != nil {
		snap.Dir = *d
	}
	snap.fill(e)
	return snap
}

func (s *Snapshot) fill(e *Engine) {
	s.Moves = e.Ticks()
	s.Score = e.Score()
	s.SnakeLen = e.Len()
	s.Head = e.Head()
	s.Food, s.HasFood = e.Food()
	s.GridH = e.Height()
	s.GridW = e.Width()
	s.CellsHash = hashCells(e.cells)
}

func hashCells(cells []uint32) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, len(cells))
	for _, v := range cells {
		buf = append(buf, byte(v))
	}
	h.Write(buf) //nolint:errcheck // hash.Hash never returns an error
	return h.Sum64()
}
