package core

import "testing"

func TestRectContains(t *testing.T) {
	// An 8x8 board of 4-wide tiles drawn at (8, 4).
	board := NewRect(8, 4, 32, 8)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"first tile", 8, 4, true},
		{"last tile", 39, 11, true},
		{"right of board", 40, 11, false},
		{"below board", 8, 12, false},
		{"frame column", 7, 4, false},
		{"hud row", 20, 3, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := board.Contains(tc.x, tc.y); got != tc.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestRectGrow(t *testing.T) {
	r := NewRect(8, 4, 32, 8)

	framed := r.Grow(1)
	if framed != NewRect(7, 3, 34, 10) {
		t.Errorf("Grow(1) = %+v", framed)
	}
	if framed.Right() != 41 || framed.Bottom() != 13 {
		t.Errorf("Right/Bottom = %d/%d, want 41/13", framed.Right(), framed.Bottom())
	}
	if back := framed.Grow(-1); back != r {
		t.Errorf("Grow(-1) = %+v, want %+v", back, r)
	}
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	if inner := outer.Centered(36, 10); inner != NewRect(22, 7, 36, 10) {
		t.Errorf("Centered = %+v, want {22 7 36 10}", inner)
	}

	// An overlay wider than a small board spills past its frame.
	big := NewRect(0, 0, 10, 10).Centered(20, 10)
	if big.X != -5 {
		t.Errorf("oversized Centered X = %d, want -5", big.X)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{2, 0, 3, 2},
		{-1, 0, 3, 0},
		{7, 0, 3, 3},
		{1, 1, 1, 1},
	}

	for _, tc := range tests {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}
