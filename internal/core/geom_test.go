package core

import "testing"

func TestPointAdd(t *testing.T) {
	tests := []struct {
		name     string
		p, d     Point
		expected Point
	}{
		{"right", Pt(1, 1), DirRight, Pt(2, 1)},
		{"left", Pt(1, 1), DirLeft, Pt(0, 1)},
		{"up", Pt(1, 1), DirUp, Pt(1, 0)},
		{"down", Pt(1, 1), DirDown, Pt(1, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.Add(tc.d); got != tc.expected {
				t.Errorf("Add() = %v, expected %v", got, tc.expected)
			}
			if got := tc.p.Add(tc.d).Sub(tc.d); got != tc.p {
				t.Errorf("Add().Sub() = %v, expected %v", got, tc.p)
			}
		})
	}

	if DirUp.Neg() != DirDown {
		t.Errorf("DirUp.Neg() = %v, expected %v", DirUp.Neg(), DirDown)
	}
}

func TestLerp(t *testing.T) {
	a := V3(0, 0, 0)
	b := V3(2, 1, -4)

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(t=0) = %v, expected %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(t=1) = %v, expected %v", got, b)
	}
	if got := Lerp(a, b, 0.5); got != V3(1, 0.5, -2) {
		t.Errorf("Lerp(t=0.5) = %v, expected (1, 0.5, -2)", got)
	}
}

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
		{"outside below", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectCentered(t *testing.T) {
	r := NewRect(0, 0, 80, 24)
	c := r.Centered(20, 6)

	if c.X != 30 || c.Y != 9 || c.W != 20 || c.H != 6 {
		t.Errorf("Centered() = %+v, expected {30 9 20 6}", c)
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
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %v, expected 1", got)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in       float64
		expected int
	}{
		{0.4, 0},
		{0.5, 1},
		{-0.5, -1},
		{2.49, 2},
		{3.0, 3},
	}

	for _, tc := range tests {
		if got := Round(tc.in); got != tc.expected {
			t.Errorf("Round(%v) = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}
