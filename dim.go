package manhattan

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// darkenAlpha is how dark the map gets behind the splash and story screens.
const darkenAlpha = 0.75

// Fade eases a value between two levels over a fixed duration. It has no
// clock of its own: callers advance it with Update.
type Fade struct {
	tween *gween.Tween
	value float32
	done  bool
}

// NewFade creates a fade from one level to another.
func NewFade(from, to float32, d time.Duration, fn ease.TweenFunc) *Fade {
	return &Fade{
		tween: gween.New(from, to, float32(d.Seconds()), fn),
		value: from,
	}
}

// newDarkenFade fades the map from fully lit to the standard darkness.
func newDarkenFade() *Fade {
	return NewFade(0, darkenAlpha, 320*time.Millisecond, ease.OutQuad)
}

// Update advances the fade by dt.
func (f *Fade) Update(dt time.Duration) {
	if f.done {
		return
	}
	f.value, f.done = f.tween.Update(float32(dt.Seconds()))
}

// Reset rewinds the fade to its start.
func (f *Fade) Reset() {
	f.tween.Reset()
	f.value, f.done = f.tween.Set(0)
}

// Value returns the current level.
func (f *Fade) Value() float32 {
	return f.value
}

// Done reports whether the fade reached its end level.
func (f *Fade) Done() bool {
	return f.done
}

// darken covers dst with black at the given opacity.
func darken(dst *ebiten.Image, alpha float32) {
	if alpha <= 0 {
		return
	}
	b := dst.Bounds()
	a := uint8(min(alpha, 1) * 255)
	vector.DrawFilledRect(dst, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()),
		color.RGBA{A: a}, false)
}
