package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewRect(0, 0, 1, 1),
			b:        NewRect(0.9, 0.9, 1, 1),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContainsStrict(t *testing.T) {
	r := NewRect(5, 1, 1, 3).Inflate(0.4)

	tests := []struct {
		name     string
		p        Vec
		expected bool
	}{
		{"inside body", V(5.5, 2), true},
		{"inside inflated margin", V(4.7, 2), true},
		{"on inflated left edge", V(4.6, 2), false},
		{"on inflated bottom edge", V(5.5, 4.4), false},
		{"outside", V(3, 2), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.ContainsStrict(tc.p); got != tc.expected {
				t.Errorf("ContainsStrict(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestRectInflate(t *testing.T) {
	r := NewRect(2, 3, 4, 5).Inflate(1)

	if r.X != 1 || r.Y != 2 || r.W != 6 || r.H != 7 {
		t.Errorf("Inflate(1) = %+v, expected {1 2 6 7}", r)
	}
	if r.Right() != 7 || r.Bottom() != 9 {
		t.Errorf("edges = (%v, %v), expected (7, 9)", r.Right(), r.Bottom())
	}
}

func TestDist(t *testing.T) {
	if d := Dist(V(0, 0), V(3, 4)); d != 5 {
		t.Errorf("Dist = %v, expected 5", d)
	}
	if d := Dist(V(2, 2), V(2, 2)); d != 0 {
		t.Errorf("Dist to self = %v, expected 0", d)
	}
	if d := Dist(V(1, 1), V(2, 2)); math.Abs(d-math.Sqrt2) > 1e-12 {
		t.Errorf("Dist = %v, expected sqrt(2)", d)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
