package main

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/grid-snake/internal/games/snake"
)

func TestParsePair(t *testing.T) {
	tests := []struct {
		in      string
		sep     string
		a, b    int
		wantErr bool
	}{
		{"20x30", "x", 20, 30, false},
		{" 3 , 4 ", ",", 3, 4, false},
		{"5", "x", 0, 0, true},
		{"ax3", "x", 0, 0, true},
	}

	for _, tc := range tests {
		a, b, err := parsePair(tc.in, tc.sep)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parsePair(%q) should fail", tc.in)
			}
			continue
		}
		if err != nil || a != tc.a || b != tc.b {
			t.Errorf("parsePair(%q) = (%d, %d, %v), expected (%d, %d)", tc.in, a, b, err, tc.a, tc.b)
		}
	}
}

func TestSimEngineConfigFromFlags(t *testing.T) {
	flagSimGrid, flagSimStart = "6x8", ""
	defer func() { flagSimGrid, flagSimStart = "", "" }()

	cfg, err := simEngineConfig()
	if err != nil {
		t.Fatalf("simEngineConfig() failed: %v", err)
	}
	if cfg.Height != 6 || cfg.Width != 8 || cfg.Start != (snake.Position{Row: 3, Col: 4}) {
		t.Errorf("config = %+v, expected 6x8 centered at (3,4)", cfg)
	}

	flagSimStart = "0,1"
	cfg, err = simEngineConfig()
	if err != nil {
		t.Fatalf("simEngineConfig() failed: %v", err)
	}
	if cfg.Start != (snake.Position{Row: 0, Col: 1}) {
		t.Errorf("start = %s, expected (0,1)", cfg.Start)
	}
}

func TestNewSimReport(t *testing.T) {
	e, err := snake.NewEngine(snake.Config{Height: 3, Width: 3, Start: snake.Position{Row: 0, Col: 1}}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	e.Tick(snake.Up) //nolint:errcheck // fatal move under test

	r := newSimReport(e, 1, 1)
	if !r.GameOver || r.Reason == "" || r.Applied != 0 {
		t.Errorf("report = %+v, expected a game over with no applied moves", r)
	}
	if r.Grid != "3x3" || r.Head[0] != 0 || r.Head[1] != 1 {
		t.Errorf("report = %+v, expected 3x3 board with head at (0,1)", r)
	}
}
