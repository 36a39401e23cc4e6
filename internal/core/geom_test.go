package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(2, 3, 10, 6).Inset(1)
	if r != NewRect(3, 4, 8, 4) {
		t.Errorf("Inset(1) = %+v, expected {3 4 8 4}", r)
	}

	tiny := NewRect(0, 0, 1, 1).Inset(2)
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset on tiny rect = %+v, expected zero size", tiny)
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(80, 24, 20, 10)
	if r.X != 30 || r.Y != 7 {
		t.Errorf("CenteredRect origin = (%d, %d), expected (30, 7)", r.X, r.Y)
	}
	if r.Right() != 50 || r.Bottom() != 17 {
		t.Errorf("CenteredRect edges = (%d, %d), expected (50, 17)", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
}
