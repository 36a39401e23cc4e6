package snake

import (
	"fmt"
	"strings"
)

// Direction is one of the four grid headings.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Delta returns the (row, column) offset of one step in this direction.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection accepts a direction name or its first letter, case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	case "u", "up":
		return Up, nil
	case "d", "down":
		return Down, nil
	}
	return 0, fmt.Errorf("snake: unknown direction %q", s)
}

// ParseMoves turns a script such as "RRDDL" or "right,down" into directions.
// Commas and whitespace separate named moves; otherwise each letter is a move.
func ParseMoves(script string) ([]Direction, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	var moves []Direction
	for _, f := range fields {
		if d, err := ParseDirection(f); err == nil {
			moves = append(moves, d)
			continue
		}
		for _, ch := range f {
			d, err := ParseDirection(string(ch))
			if err != nil {
				return nil, err
			}
			moves = append(moves, d)
		}
	}
	return moves, nil
}

// dirPtr returns a pointer to a copy of d, for optional segment fields.
func dirPtr(d Direction) *Direction {
	return &d
}
