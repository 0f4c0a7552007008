package manhattan

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Font draws single lines of text onto an image.
type Font interface {
	// DrawText draws text so that the anchor point of the run is at (x, y).
	DrawText(dst *ebiten.Image, s string, x, y int, anchor Anchor, alpha float32)
	// CharHeight returns the line height in pixels.
	CharHeight() int
	// TextWidth returns the width of s in pixels.
	TextWidth(s string) int
}

// charCodeOffset is the ASCII code of the first glyph in a bitmap font sheet.
const charCodeOffset = 32

// BitmapFontOptions describes the glyph grid of a bitmap font sheet.
type BitmapFontOptions struct {
	CharWidth    int
	CharHeight   int
	CharsPerLine int
}

// Standard glyph grids.
var (
	FontOptions     = BitmapFontOptions{CharWidth: 6, CharHeight: 8, CharsPerLine: 16}
	TinyFontOptions = BitmapFontOptions{CharWidth: 4, CharHeight: 6, CharsPerLine: 16}
)

// BitmapFont renders fixed-width ASCII text from a glyph sheet laid out in
// rows of CharsPerLine glyphs, starting with the space character.
type BitmapFont struct {
	image *ebiten.Image
	opts  BitmapFontOptions
}

// NewBitmapFont wraps a glyph sheet.
func NewBitmapFont(img *ebiten.Image, opts BitmapFontOptions) *BitmapFont {
	return &BitmapFont{image: img, opts: opts}
}

// Options returns the glyph grid.
func (f *BitmapFont) Options() BitmapFontOptions {
	return f.opts
}

// CharHeight returns the glyph height.
func (f *BitmapFont) CharHeight() int {
	return f.opts.CharHeight
}

// TextWidth returns the width of s in pixels.
func (f *BitmapFont) TextWidth(s string) int {
	return f.opts.CharWidth * len(s)
}

// glyphRect returns the sheet rectangle of character c, or false if c is
// outside the sheet.
func (f *BitmapFont) glyphRect(c byte) (image.Rectangle, bool) {
	code := int(c) - charCodeOffset
	if code < 0 || f.opts.CharsPerLine <= 0 {
		return image.Rectangle{}, false
	}
	sx := (code % f.opts.CharsPerLine) * f.opts.CharWidth
	sy := (code / f.opts.CharsPerLine) * f.opts.CharHeight
	r := image.Rect(sx, sy, sx+f.opts.CharWidth, sy+f.opts.CharHeight)
	if f.image != nil && !r.In(f.image.Bounds()) {
		return image.Rectangle{}, false
	}
	return r, true
}

// DrawText draws s anchored at (x, y).
func (f *BitmapFont) DrawText(dst *ebiten.Image, s string, x, y int, anchor Anchor, alpha float32) {
	ox, oy := textOrigin(anchor, x, y, f.TextWidth(s), f.opts.CharHeight)
	for i := 0; i < len(s); i++ {
		r, ok := f.glyphRect(s[i])
		if ok && s[i] != ' ' {
			var op ebiten.DrawImageOptions
			op.GeoM.Translate(float64(ox+i*f.opts.CharWidth), float64(oy))
			if alpha < 1 {
				op.ColorScale.ScaleAlpha(alpha)
			}
			dst.DrawImage(f.image.SubImage(r).(*ebiten.Image), &op)
		}
	}
}

// textOrigin converts an anchored position into the top-left corner of a
// w×h text run.
func textOrigin(anchor Anchor, x, y, w, h int) (int, int) {
	switch anchor {
	case AnchorBottomRight:
		return x - w, y - h
	case AnchorCenter:
		return x - w/2, y - h/2
	default:
		return x, y
	}
}

// FaceFont draws text with an ebiten text/v2 face. It stands in for the bitmap
// fonts when their glyph sheets are not available.
type FaceFont struct {
	face text.Face
}

// NewFaceFont returns a FaceFont using the basicfont 7×13 face.
func NewFaceFont() *FaceFont {
	return &FaceFont{face: text.NewGoXFace(basicfont.Face7x13)}
}

// CharHeight returns the face line height.
func (f *FaceFont) CharHeight() int {
	return int(f.face.Metrics().HAscent + f.face.Metrics().HDescent)
}

// TextWidth returns the advance of s.
func (f *FaceFont) TextWidth(s string) int {
	return int(text.Advance(s, f.face))
}

// DrawText draws s anchored at (x, y).
func (f *FaceFont) DrawText(dst *ebiten.Image, s string, x, y int, anchor Anchor, alpha float32) {
	ox, oy := textOrigin(anchor, x, y, f.TextWidth(s), f.CharHeight())
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(ox), float64(oy))
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(dst, s, f.face, op)
}
