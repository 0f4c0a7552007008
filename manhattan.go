package manhattan

import (
	"image/color"
	"math"
)

// Point is an integer pixel position in canvas space.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle in screen (client) space. The origin is at
// the top-left with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Medium identifies the kind of device that produced the latest pointer event.
type Medium uint8

const (
	MediumNone  Medium = iota // no pointer event seen yet
	MediumMouse               // mouse or trackpad
	MediumTouch               // finger on a touch screen
)

func (m Medium) String() string {
	switch m {
	case MediumMouse:
		return "mouse"
	case MediumTouch:
		return "touch"
	default:
		return "none"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// Anchor selects which point of a text run is placed at the given coordinates.
type Anchor uint8

const (
	AnchorTopLeft     Anchor = iota // (x, y) is the top-left corner
	AnchorBottomRight               // (x, y) is the bottom-right corner
	AnchorCenter                    // (x, y) is the center
)

// Palette holds the two paint colors of the overlay.
type Palette struct {
	Active   color.RGBA // pixels of the street being painted
	Inactive color.RGBA // pixels of streets already finished
}

// DefaultPalette paints the active street green and finished ones sand.
var DefaultPalette = Palette{
	Active:   color.RGBA{R: 153, G: 229, B: 80, A: 255},
	Inactive: color.RGBA{R: 238, G: 195, B: 154, A: 255},
}

// emptyAlpha is the highest alpha value still treated as a transparent pixel.
// Some decoders perturb fully transparent pixels to alpha 1.
const emptyAlpha = 1

// canvasPoint maps a client coordinate inside the displayed rectangle r onto
// a canvas of w×h logical pixels. Coordinates outside r are clamped to its edges.
func canvasPoint(r Rect, w, h int, clientX, clientY float64) Point {
	fx, fy := fraction(r, clientX, clientY)
	return Point{
		X: int(math.Floor(fx * float64(w))),
		Y: int(math.Floor(fy * float64(h))),
	}
}

// fraction converts a client coordinate into the [0,1]×[0,1] fraction of r.
func fraction(r Rect, clientX, clientY float64) (float64, float64) {
	var fx, fy float64
	if r.Width > 0 {
		ox := math.Max(clientX-r.X, 0)
		fx = math.Min(ox, r.Width) / r.Width
	}
	if r.Height > 0 {
		oy := math.Max(clientY-r.Y, 0)
		fy = math.Min(oy, r.Height) / r.Height
	}
	return fx, fy
}

// fitRect returns the largest rectangle with the aspect ratio of a w×h canvas
// that fits centered inside an outerW×outerH screen.
func fitRect(w, h int, outerW, outerH float64) Rect {
	if w <= 0 || h <= 0 || outerW <= 0 || outerH <= 0 {
		return Rect{Width: float64(w), Height: float64(h)}
	}
	scale := math.Min(outerW/float64(w), outerH/float64(h))
	dw := float64(w) * scale
	dh := float64(h) * scale
	return Rect{
		X:      (outerW - dw) / 2,
		Y:      (outerH - dh) / 2,
		Width:  dw,
		Height: dh,
	}
}
