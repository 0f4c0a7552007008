package manhattan

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay is the persistent paint layer drawn on top of the map. Pixels live in
// CPU memory so strokes can be read back without a GPU round trip; the GPU copy
// is refreshed lazily by Sync.
type Overlay struct {
	pix   *image.RGBA
	image *ebiten.Image
	dirty bool
}

// NewOverlay creates a fully transparent w×h overlay.
func NewOverlay(w, h int) *Overlay {
	return &Overlay{
		pix:   image.NewRGBA(image.Rect(0, 0, w, h)),
		dirty: true,
	}
}

// Width returns the overlay width in pixels.
func (o *Overlay) Width() int {
	return o.pix.Rect.Dx()
}

// Height returns the overlay height in pixels.
func (o *Overlay) Height() int {
	return o.pix.Rect.Dy()
}

func (o *Overlay) offset(x, y int) int {
	return y*o.pix.Stride + x*4
}

func (o *Overlay) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < o.pix.Rect.Dx() && y < o.pix.Rect.Dy()
}

// Empty reports whether the pixel at (x, y) is unpainted. Pixels outside the
// overlay are empty.
func (o *Overlay) Empty(x, y int) bool {
	if !o.inBounds(x, y) {
		return true
	}
	return o.pix.Pix[o.offset(x, y)+3] <= emptyAlpha
}

// At returns the color at (x, y).
func (o *Overlay) At(x, y int) color.RGBA {
	if !o.inBounds(x, y) {
		return color.RGBA{}
	}
	i := o.offset(x, y)
	p := o.pix.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set paints the pixel at (x, y). Out-of-range writes are ignored.
func (o *Overlay) Set(x, y int, c color.RGBA) {
	if !o.inBounds(x, y) {
		return
	}
	i := o.offset(x, y)
	p := o.pix.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	o.dirty = true
}

// Recolor sets every painted pixel to c and returns how many pixels changed.
func (o *Overlay) Recolor(c color.RGBA) int {
	changed := 0
	pix := o.pix.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i+3] <= emptyAlpha {
			continue
		}
		if pix[i] == c.R && pix[i+1] == c.G && pix[i+2] == c.B && pix[i+3] == c.A {
			continue
		}
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		changed++
	}
	if changed > 0 {
		o.dirty = true
	}
	return changed
}

// Painted returns the number of non-empty pixels.
func (o *Overlay) Painted() int {
	n := 0
	pix := o.pix.Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] > emptyAlpha {
			n++
		}
	}
	return n
}

// Clear erases every pixel.
func (o *Overlay) Clear() {
	clear(o.pix.Pix)
	o.dirty = true
}

// Pixels returns the CPU-side pixel buffer. Callers must not modify it.
func (o *Overlay) Pixels() *image.RGBA {
	return o.pix
}

// Image returns the GPU image of the overlay, uploading pending changes first.
func (o *Overlay) Image() *ebiten.Image {
	if o.image == nil {
		o.image = ebiten.NewImage(o.Width(), o.Height())
		o.dirty = true
	}
	o.Sync()
	return o.image
}

// Sync uploads pending changes to the GPU image if one exists.
func (o *Overlay) Sync() {
	if o.image == nil || !o.dirty {
		return
	}
	o.image.WritePixels(o.pix.Pix)
	o.dirty = false
}

func overlayBounds(o *Overlay) image.Rectangle {
	return image.Rect(0, 0, o.Width(), o.Height())
}
