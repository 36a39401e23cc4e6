package snake

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrSelfCollision is returned when a segment would move onto another
	// segment that is still occupying its cell.
	ErrSelfCollision = errors.New("snake: self collision")

	// ErrGameOver is returned by Tick once the engine has terminated.
	ErrGameOver = errors.New("snake: game over")
)

// maxFoodRolls bounds rejection sampling before falling back to a scan of
// the free cells.
const maxFoodRolls = 64

// RandomSource yields uniformly distributed integers in [0, bound).
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(bound int) int
}

// Config describes the board an Engine is built for.
type Config struct {
	Height int
	Width  int
	Start  Position // Initial head position
}

// DefaultConfig returns the 50×50 reference board with the head in the middle.
func DefaultConfig() Config {
	return Config{
		Height: 50,
		Width:  50,
		Start:  Position{Row: 25, Col: 25},
	}
}

// Segment is one cell of the snake body.
type Segment struct {
	Position Position

	// Direction is the heading the segment moved in on the last tick.
	// Nil only for the head of a freshly built engine.
	Direction *Direction

	// Turn is the heading the segment behind this one must take on the next
	// tick. Set only when the two headings differ.
	Turn *Direction
}

func (s Segment) clone() Segment {
	c := Segment{Position: s.Position}
	if s.Direction != nil {
		c.Direction = dirPtr(*s.Direction)
	}
	if s.Turn != nil {
		c.Turn = dirPtr(*s.Turn)
	}
	return c
}

// Engine owns the board, the snake, the food and the score, and advances
// them one step per Tick. It is not safe for concurrent use.
type Engine struct {
	grid     Grid
	cells    []uint32
	snake    []Segment
	food     *Position
	score    int
	ticks    uint64
	gameOver bool
	reason   error
	rnd      RandomSource
}

// NewEngine builds an engine in its initial state: a single unmoved head at
// cfg.Start, its cell marked, no food, score zero.
func NewEngine(cfg Config, rnd RandomSource) (*Engine, error) {
	grid, err := NewGrid(cfg.Height, cfg.Width)
	if err != nil {
		return nil, err
	}
	if rnd == nil {
		return nil, errors.New("snake: nil random source")
	}

	start, err := grid.Index(cfg.Start)
	if err != nil {
		return nil, fmt.Errorf("snake: start position: %w", err)
	}

	cells := make([]uint32, grid.Len())
	cells[start] = 1

	return &Engine{
		grid:  grid,
		cells: cells,
		snake: []Segment{{Position: cfg.Start}},
		rnd:   rnd,
	}, nil
}

// Height returns the number of grid rows.
func (e *Engine) Height() int { return e.grid.Height() }

// Width returns the number of grid columns.
func (e *Engine) Width() int { return e.grid.Width() }

// Grid returns the engine's indexer.
func (e *Engine) Grid() Grid { return e.grid }

// Cells returns a row-major copy of the occupancy grid (1 = snake).
func (e *Engine) Cells() []uint32 {
	return slices.Clone(e.cells)
}

// Occupied reports whether a snake segment sits at p.
func (e *Engine) Occupied(p Position) bool {
	idx, err := e.grid.Index(p)
	if err != nil {
		return false
	}
	return e.cells[idx] == 1
}

// Snake returns a head-first copy of the body.
func (e *Engine) Snake() []Segment {
	out := make([]Segment, len(e.snake))
	for i, s := range e.snake {
		out[i] = s.clone()
	}
	return out
}

// Head returns the head segment's position.
func (e *Engine) Head() Position {
	return e.snake[0].Position
}

// Len returns the number of segments.
func (e *Engine) Len() int { return len(e.snake) }

// Food returns the food position and whether food is on the board.
func (e *Engine) Food() (Position, bool) {
	if e.food == nil {
		return Position{}, false
	}
	return *e.food, true
}

// MeatPosition returns the food coordinate, or (0, 0) when there is none.
func (e *Engine) MeatPosition() (row, col int) {
	if e.food == nil {
		return 0, 0
	}
	return e.food.Row, e.food.Col
}

// Score returns the number of food items eaten.
func (e *Engine) Score() int { return e.score }

// Ticks returns the number of successful ticks.
func (e *Engine) Ticks() uint64 { return e.ticks }

// GameOver reports whether the engine has terminated.
func (e *Engine) GameOver() bool { return e.gameOver }

// Reason returns the error that ended the game, or nil while running.
func (e *Engine) Reason() error { return e.reason }

// PlaceFood puts food at p, replacing any existing food. It is meant for
// hosts that script the board; random placement never lands on the snake.
func (e *Engine) PlaceFood(p Position) error {
	if _, err := e.grid.Index(p); err != nil {
		return err
	}
	e.food = &p
	return nil
}

// Tick advances the game one step with dir as the head's heading.
//
// Every other segment follows the segment ahead of it: it takes the turn
// queued on that segment if there is one, otherwise keeps its own heading.
// A move off the board or into the body ends the game. A failed tick leaves
// the previous state untouched, and every later call returns ErrGameOver.
func (e *Engine) Tick(dir Direction) error {
	if e.gameOver {
		return fmt.Errorf("%w: %w", ErrGameOver, e.reason)
	}
	if !dir.Valid() {
		return fmt.Errorf("snake: invalid direction %d", dir)
	}

	prev := e.snake
	tail := len(prev) - 1
	growing := e.food != nil && *e.food == prev[0].Position

	next := slices.Clone(e.cells)
	claimed := make(map[int]bool, len(prev)+1)
	moved := make([]Segment, 0, len(prev)+1)
	headings := make([]Direction, len(prev))

	for i, seg := range prev {
		cur, err := e.grid.Index(seg.Position)
		if err != nil {
			return e.fail(err)
		}
		if !claimed[cur] {
			next[cur] = 0
		}

		heading := e.heading(i, dir)
		headings[i] = heading

		target := seg.Position.Step(heading)
		idx, err := e.grid.Index(target)
		if err != nil {
			return e.fail(err)
		}

		if next[idx] == 1 {
			// Only the head can reach a cell that is still occupied. The
			// tail's cell is free to take when the tail leaves it this tick
			// and is not merely swapping places with the head.
			tailCell, _ := e.grid.Index(prev[tail].Position)
			vacated := i == 0 && tail > 1 && !growing && idx == tailCell
			if claimed[idx] || !vacated {
				return e.fail(fmt.Errorf("%w: segment %d at %s", ErrSelfCollision, i, target))
			}
		}

		next[idx] = 1
		claimed[idx] = true
		moved = append(moved, Segment{Position: target, Direction: dirPtr(heading)})
	}

	// Queue a turn on every segment whose follower is heading elsewhere.
	for i := 0; i < tail; i++ {
		if headings[i] != headings[i+1] {
			moved[i].Turn = dirPtr(headings[i])
		}
	}

	if growing {
		last := prev[tail].Position
		idx, err := e.grid.Index(last)
		if err != nil {
			return e.fail(err)
		}
		next[idx] = 1
		moved = append(moved, Segment{Position: last, Direction: dirPtr(headings[tail])})
	}

	e.cells = next
	e.snake = moved
	e.ticks++

	switch {
	case growing:
		e.score++
		e.food = e.spawnFood()
	case e.food == nil:
		e.food = e.spawnFood()
	}

	return nil
}

// heading resolves the direction segment i moves in this tick.
func (e *Engine) heading(i int, requested Direction) Direction {
	if i == 0 {
		return requested
	}
	if turn := e.snake[i-1].Turn; turn != nil {
		return *turn
	}
	if d := e.snake[i].Direction; d != nil {
		return *d
	}
	return requested
}

// fail records the terminal error without touching the board.
func (e *Engine) fail(err error) error {
	e.gameOver = true
	e.reason = err
	return err
}

// spawnFood picks a uniformly random free cell, or nil when the snake
// covers the whole board.
func (e *Engine) spawnFood() *Position {
	if len(e.snake) >= e.grid.Len() {
		return nil
	}

	for range maxFoodRolls {
		p := Position{Row: e.rnd.Intn(e.grid.Height()), Col: e.rnd.Intn(e.grid.Width())}
		if !e.Occupied(p) {
			return &p
		}
	}

	free := make([]int, 0, e.grid.Len()-len(e.snake))
	for idx, v := range e.cells {
		if v == 0 {
			free = append(free, idx)
		}
	}
	if len(free) == 0 {
		return nil
	}
	p := e.grid.Position(free[e.rnd.Intn(len(free))])
	return &p
}
