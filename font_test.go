package manhattan

import (
	"image"
	"testing"
)

func TestTextOrigin(t *testing.T) {
	tests := []struct {
		anchor Anchor
		wantX  int
		wantY  int
	}{
		{AnchorTopLeft, 50, 40},
		{AnchorBottomRight, 20, 32},
		{AnchorCenter, 35, 36},
	}
	for _, tt := range tests {
		x, y := textOrigin(tt.anchor, 50, 40, 30, 8)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("textOrigin(%d) = (%d, %d), want (%d, %d)", tt.anchor, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestBitmapFontGlyphs(t *testing.T) {
	f := NewBitmapFont(nil, FontOptions)
	if got := f.TextWidth("abc"); got != 18 {
		t.Errorf("TextWidth = %d, want 18", got)
	}
	if got := f.CharHeight(); got != 8 {
		t.Errorf("CharHeight = %d, want 8", got)
	}
	tests := []struct {
		c    byte
		want image.Rectangle
		ok   bool
	}{
		{' ', image.Rect(0, 0, 6, 8), true},
		{'A', image.Rect(6, 16, 12, 24), true},
		{'/', image.Rect(90, 0, 96, 8), true},
		{'\n', image.Rectangle{}, false},
	}
	for _, tt := range tests {
		r, ok := f.glyphRect(tt.c)
		if r != tt.want || ok != tt.ok {
			t.Errorf("glyphRect(%q) = %v, %v; want %v, %v", tt.c, r, ok, tt.want, tt.ok)
		}
	}
}
