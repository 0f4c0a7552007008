package manhattan

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Hotspot is an on-canvas button. Pointer events that start inside it are
// flagged Interactive, so the Pen ignores them, and a release inside it
// fires OnClick.
type Hotspot struct {
	// Rect is the button area in canvas pixels.
	Rect    image.Rectangle
	OnClick func()
}

// Input is the EventSource backed by ebiten. Poll is called once per tick
// and turns the polled mouse and touch state into raw events.
type Input struct {
	canvasW, canvasH int
	screenW, screenH int
	bounds           func() Rect

	handlers []*inputHandler
	hotspots []*Hotspot
	captured *Hotspot

	mouseInside  bool
	lastX, lastY int
	touching     bool
	touchID      ebiten.TouchID
	touchX       int
	touchY       int
	touchBuf     []ebiten.TouchID

	injectQueue []syntheticPointerEvent
}

type inputHandler struct {
	h EventHandler
}

// NewInput creates an input source for a w×h canvas. bounds reports where
// the canvas is displayed on screen.
func NewInput(w, h int, bounds func() Rect) *Input {
	return &Input{canvasW: w, canvasH: h, bounds: bounds}
}

// SetScreenSize records the screen size reported by Layout. The cursor is
// considered to have left when it is outside the screen.
func (in *Input) SetScreenSize(w, h int) {
	in.screenW, in.screenH = w, h
}

// Subscribe registers h for raw events.
func (in *Input) Subscribe(h EventHandler) Subscription {
	ih := &inputHandler{h: h}
	in.handlers = append(in.handlers, ih)
	return newSubscription(func() {
		for i, x := range in.handlers {
			if x == ih {
				in.handlers = append(in.handlers[:i:i], in.handlers[i+1:]...)
				return
			}
		}
	})
}

// AddHotspot registers a button.
func (in *Input) AddHotspot(h *Hotspot) Subscription {
	in.hotspots = append(in.hotspots, h)
	return newSubscription(func() {
		if in.captured == h {
			in.captured = nil
		}
		for i, x := range in.hotspots {
			if x == h {
				in.hotspots = append(in.hotspots[:i:i], in.hotspots[i+1:]...)
				return
			}
		}
	})
}

// Hotspots returns the registered buttons.
func (in *Input) Hotspots() []*Hotspot {
	return in.hotspots
}

func (in *Input) rect() Rect {
	if in.bounds != nil {
		return in.bounds()
	}
	return Rect{Width: float64(in.canvasW), Height: float64(in.canvasH)}
}

func (in *Input) hotspotAt(clientX, clientY float64) *Hotspot {
	r := in.rect()
	if !r.Contains(clientX, clientY) {
		return nil
	}
	p := canvasPoint(r, in.canvasW, in.canvasH, clientX, clientY)
	for i := len(in.hotspots) - 1; i >= 0; i-- {
		h := in.hotspots[i]
		if image.Pt(p.X, p.Y).In(h.Rect) {
			return h
		}
	}
	return nil
}

// pressHotspot marks events of a press that began on a button. It returns
// whether the event is interactive.
func (in *Input) pressHotspot(clientX, clientY float64) bool {
	in.captured = in.hotspotAt(clientX, clientY)
	return in.captured != nil
}

// releaseHotspot ends a captured press, clicking the button when the
// release is still inside it.
func (in *Input) releaseHotspot(clientX, clientY float64) bool {
	h := in.captured
	if h == nil {
		return false
	}
	in.captured = nil
	if in.hotspotAt(clientX, clientY) == h && h.OnClick != nil {
		h.OnClick()
	}
	return true
}

func (in *Input) dispatchMouse(e MouseEvent) {
	switch {
	case e.Type == MouseDown && e.Button == MouseButtonLeft:
		e.Interactive = in.pressHotspot(e.ClientX, e.ClientY)
	case e.Type == MouseUp && e.Button == MouseButtonLeft:
		e.Interactive = in.releaseHotspot(e.ClientX, e.ClientY)
	default:
		e.Interactive = in.captured != nil
	}
	for _, ih := range append([]*inputHandler(nil), in.handlers...) {
		ih.h.HandleMouse(e)
	}
}

func (in *Input) dispatchTouch(e TouchEvent) {
	switch e.Type {
	case TouchStart:
		if len(e.Touches) > 0 {
			e.Interactive = in.pressHotspot(e.Touches[0].ClientX, e.Touches[0].ClientY)
		}
	case TouchEnd, TouchCancel:
		e.Interactive = in.releaseHotspot(float64(in.touchX), float64(in.touchY))
	default:
		e.Interactive = in.captured != nil
	}
	for _, ih := range append([]*inputHandler(nil), in.handlers...) {
		ih.h.HandleTouch(e)
	}
}

// Poll reads ebiten input and dispatches raw events. A queued synthetic
// event replaces real input for the tick.
func (in *Input) Poll() {
	if in.processInjectedInput() {
		return
	}
	in.pollMouse()
	in.pollTouch()
}

var polledButtons = [...]struct {
	eb ebiten.MouseButton
	mb MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

func (in *Input) pollMouse() {
	x, y := ebiten.CursorPosition()
	cx, cy := float64(x), float64(y)
	inside := in.screenW == 0 || (x >= 0 && y >= 0 && x < in.screenW && y < in.screenH)

	if !inside {
		if in.mouseInside {
			in.mouseInside = false
			in.dispatchMouse(MouseEvent{Type: MouseLeave, ClientX: cx, ClientY: cy})
		}
	} else if !in.mouseInside || x != in.lastX || y != in.lastY {
		in.mouseInside = true
		in.dispatchMouse(MouseEvent{Type: MouseMove, ClientX: cx, ClientY: cy})
	}
	in.lastX, in.lastY = x, y

	for _, b := range polledButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			in.dispatchMouse(MouseEvent{Type: MouseDown, Button: b.mb, ClientX: cx, ClientY: cy})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			in.dispatchMouse(MouseEvent{Type: MouseUp, Button: b.mb, ClientX: cx, ClientY: cy})
		}
	}
}

// pollTouch follows the first finger down until it lifts.
func (in *Input) pollTouch() {
	in.touchBuf = ebiten.AppendTouchIDs(in.touchBuf[:0])
	ids := in.touchBuf

	if in.touching && !containsTouch(ids, in.touchID) {
		in.touching = false
		in.dispatchTouch(TouchEvent{Type: TouchEnd})
		return
	}
	if len(ids) == 0 {
		return
	}
	if !in.touching {
		in.touching = true
		in.touchID = ids[0]
		in.touchX, in.touchY = ebiten.TouchPosition(in.touchID)
		in.dispatchTouch(TouchEvent{Type: TouchStart, Touches: in.touchPoints(ids)})
		return
	}
	x, y := ebiten.TouchPosition(in.touchID)
	if x != in.touchX || y != in.touchY {
		in.touchX, in.touchY = x, y
		in.dispatchTouch(TouchEvent{Type: TouchMove, Touches: in.touchPoints(ids)})
	}
}

// touchPoints lists the tracked finger first.
func (in *Input) touchPoints(ids []ebiten.TouchID) []TouchPoint {
	pts := []TouchPoint{{ClientX: float64(in.touchX), ClientY: float64(in.touchY)}}
	for _, id := range ids {
		if id == in.touchID {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		pts = append(pts, TouchPoint{ClientX: float64(x), ClientY: float64(y)})
	}
	return pts
}

func containsTouch(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
