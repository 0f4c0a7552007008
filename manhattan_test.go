package manhattan

import "testing"

func TestCanvasPoint(t *testing.T) {
	r := Rect{X: 100, Y: 50, Width: 80, Height: 40}
	tests := []struct {
		x, y float64
		want Point
	}{
		{100, 50, Point{0, 0}},
		{104, 58, Point{1, 2}},
		{103.9, 53.9, Point{0, 0}},
		{140, 70, Point{10, 5}},
		{0, 0, Point{0, 0}},
		{300, 300, Point{20, 10}},
		{180, 90, Point{20, 10}},
	}
	for _, tt := range tests {
		if got := canvasPoint(r, 20, 10, tt.x, tt.y); got != tt.want {
			t.Errorf("canvasPoint(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCanvasPointEmptyRect(t *testing.T) {
	if got := canvasPoint(Rect{}, 20, 10, 5, 5); got != (Point{}) {
		t.Errorf("canvasPoint over an empty rect = %v, want origin", got)
	}
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		w, h           int
		outerW, outerH float64
		want           Rect
	}{
		{20, 10, 100, 100, Rect{X: 0, Y: 25, Width: 100, Height: 50}},
		{20, 10, 200, 50, Rect{X: 50, Y: 0, Width: 100, Height: 50}},
		{20, 10, 20, 10, Rect{Width: 20, Height: 10}},
		{20, 10, 0, 0, Rect{Width: 20, Height: 10}},
	}
	for _, tt := range tests {
		if got := fitRect(tt.w, tt.h, tt.outerW, tt.outerH); got != tt.want {
			t.Errorf("fitRect(%d, %d, %v, %v) = %+v, want %+v", tt.w, tt.h, tt.outerW, tt.outerH, got, tt.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{15, 15, true},
		{12, 13, true},
		{9.9, 12, false},
		{12, 15.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMediumString(t *testing.T) {
	tests := []struct {
		m    Medium
		want string
	}{
		{MediumNone, "none"},
		{MediumMouse, "mouse"},
		{MediumTouch, "touch"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}
