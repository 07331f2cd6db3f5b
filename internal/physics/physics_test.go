package physics

import (
	"slices"
	"testing"
)

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 100, Y: 100, W: 40, H: 40}
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", Rect{X: 110, Y: 110, W: 5, H: 10}, true},
		{"partial", Rect{X: 130, Y: 130, W: 20, H: 20}, true},
		{"touching right", Rect{X: 140, Y: 110, W: 5, H: 10}, false},
		{"touching bottom", Rect{X: 110, Y: 140, W: 5, H: 10}, false},
		{"touching left", Rect{X: 95, Y: 110, W: 5, H: 10}, false},
		{"far", Rect{X: 400, Y: 400, W: 5, H: 10}, false},
	}
	for _, tt := range tests {
		if got := base.Overlaps(tt.r); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.r.Overlaps(base); got != tt.want {
			t.Errorf("%s (reversed): Overlaps = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(-3) = %v, want 0", got)
	}
	if got := Clamp(13, 0, 10); got != 10 {
		t.Errorf("Clamp(13) = %v, want 10", got)
	}
	if got := Clamp(4, 0, 10); got != 4 {
		t.Errorf("Clamp(4) = %v, want 4", got)
	}
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(800, 650, -50, 50)
	g.Insert(10, -45, 0)   // Above the screen, top-left cell
	g.Insert(120, 120, 1)  // Near the query
	g.Insert(700, 500, 2)  // Far away
	g.Insert(900, 1000, 3) // Outside the grid, clamped to the last cell

	var got []int
	g.QueryAround(130, 110, func(i int) { got = append(got, i) })
	if !slices.Equal(got, []int{1}) {
		t.Fatalf("query near (130,110) = %v, want [1]", got)
	}

	got = got[:0]
	g.QueryAround(0, -50, func(i int) { got = append(got, i) })
	if !slices.Equal(got, []int{0}) {
		t.Fatalf("query at top-left = %v, want [0]", got)
	}

	got = got[:0]
	g.QueryAround(790, 590, func(i int) { got = append(got, i) })
	if !slices.Equal(got, []int{2, 3}) {
		t.Fatalf("query at bottom-right = %v, want [2 3]", got)
	}

	g.Clear()
	got = got[:0]
	g.QueryAround(130, 110, func(i int) { got = append(got, i) })
	if len(got) != 0 {
		t.Fatalf("query after Clear = %v, want none", got)
	}
}
