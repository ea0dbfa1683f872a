package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"bird inside pipe", NewRect(40, 100, 12, 12), NewRect(36, 0, 26, 120), true},
		{"bird left of pipe", NewRect(10, 100, 12, 12), NewRect(36, 0, 26, 120), false},
		{"bird below top pipe", NewRect(40, 130, 12, 12), NewRect(36, 0, 26, 120), false},
		{"touching edge", NewRect(24, 100, 12, 12), NewRect(36, 0, 26, 120), false},
		{"one pixel overlap", NewRect(25, 108, 12, 12), NewRect(36, 0, 26, 120), true},
		{"empty never hits", NewRect(40, 40, 0, 0), NewRect(0, 0, 240, 280), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.want {
				t.Errorf("Intersects() = %v, want %v", got, tc.want)
			}
			if got := tc.b.Intersects(tc.a); got != tc.want {
				t.Errorf("Intersects() reversed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"partial overlap", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), NewRect(5, 5, 5, 5)},
		{"disjoint", NewRect(0, 0, 10, 10), NewRect(20, 20, 5, 5), Rect{}},
		{"clip to screen", NewRect(-4, 230, 32, 80), NewRect(0, 0, 240, 280), NewRect(0, 230, 28, 50)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersect(tc.b); got != tc.want {
				t.Errorf("Intersect() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("Right(), Bottom() = %d, %d, want 25, 25", r.Right(), r.Bottom())
	}
	if r.Empty() {
		t.Error("Empty() = true for a 20x15 rect")
	}
	if !NewRect(3, 3, 0, 5).Empty() {
		t.Error("Empty() = false for a zero-width rect")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ val, lo, hi, want int }{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tc.val, tc.lo, tc.hi, got, tc.want)
		}
	}
	if Abs(-7) != 7 || Abs(7) != 7 {
		t.Error("Abs() is wrong")
	}
}
