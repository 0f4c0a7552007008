package manhattan

type injectKind uint8

const (
	injectPress injectKind = iota
	injectMove
	injectRelease
)

// syntheticPointerEvent is a queued fake pointer event. Coordinates are
// canvas pixels; they are mapped to client coordinates through the current
// canvas bounds, so the event takes the same path as real input.
type syntheticPointerEvent struct {
	x, y  float64
	kind  injectKind
	touch bool
}

// InjectPress queues a left mouse press at canvas pixel (x, y). Queued
// events are consumed one per Poll.
func (in *Input) InjectPress(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{x: x, y: y, kind: injectPress})
}

// InjectMove queues a mouse move.
func (in *Input) InjectMove(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{x: x, y: y, kind: injectMove})
}

// InjectRelease queues a left mouse release.
func (in *Input) InjectRelease(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{x: x, y: y, kind: injectRelease})
}

// InjectClick queues a press and a release at the same spot. Consumes two
// polls.
func (in *Input) InjectClick(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), evenly spaced moves and a
// release at (toX, toY), spread over frames polls. frames is at least 2.
func (in *Input) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	in.injectDrag(fromX, fromY, toX, toY, frames, false)
}

// InjectSwipe is InjectDrag with a finger instead of the mouse.
func (in *Input) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	in.injectDrag(fromX, fromY, toX, toY, frames, true)
}

func (in *Input) injectDrag(fromX, fromY, toX, toY float64, frames int, touch bool) {
	in.injectPath([][2]float64{{fromX, fromY}, {toX, toY}}, frames, touch)
}

// injectPath queues a press on the first point, moves along the polyline and
// a release on the last point, spread over frames polls.
func (in *Input) injectPath(path [][2]float64, frames int, touch bool) {
	if len(path) == 0 {
		return
	}
	if len(path) == 1 {
		path = [][2]float64{path[0], path[0]}
	}
	frames = max(frames, 2)
	last := len(path) - 1
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{x: path[0][0], y: path[0][1], kind: injectPress, touch: touch})
	moves := frames - 2
	for i := 1; i <= moves; i++ {
		t := float64(i) / float64(moves+1) * float64(last)
		seg := min(int(t), last-1)
		f := t - float64(seg)
		a, b := path[seg], path[seg+1]
		in.injectQueue = append(in.injectQueue, syntheticPointerEvent{
			x:     a[0] + (b[0]-a[0])*f,
			y:     a[1] + (b[1]-a[1])*f,
			kind:  injectMove,
			touch: touch,
		})
	}
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{x: path[last][0], y: path[last][1], kind: injectRelease, touch: touch})
}

// Pending returns the number of queued synthetic events.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}

// clientPoint maps the center of canvas pixel (x, y) to client coordinates.
func (in *Input) clientPoint(x, y float64) (float64, float64) {
	r := in.rect()
	return r.X + (x+0.5)*r.Width/float64(in.canvasW),
		r.Y + (y+0.5)*r.Height/float64(in.canvasH)
}

// processInjectedInput pops one synthetic event and dispatches it. It
// returns true if an event was consumed, in which case real input is
// skipped for the tick.
func (in *Input) processInjectedInput() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	cx, cy := in.clientPoint(evt.x, evt.y)
	if evt.touch {
		in.touchX, in.touchY = int(cx), int(cy)
		switch evt.kind {
		case injectPress:
			in.dispatchTouch(TouchEvent{Type: TouchStart, Touches: []TouchPoint{{ClientX: cx, ClientY: cy}}})
		case injectMove:
			in.dispatchTouch(TouchEvent{Type: TouchMove, Touches: []TouchPoint{{ClientX: cx, ClientY: cy}}})
		case injectRelease:
			in.dispatchTouch(TouchEvent{Type: TouchEnd})
		}
		return true
	}
	switch evt.kind {
	case injectPress:
		in.dispatchMouse(MouseEvent{Type: MouseMove, ClientX: cx, ClientY: cy})
		in.dispatchMouse(MouseEvent{Type: MouseDown, Button: MouseButtonLeft, ClientX: cx, ClientY: cy})
	case injectMove:
		in.dispatchMouse(MouseEvent{Type: MouseMove, ClientX: cx, ClientY: cy})
	case injectRelease:
		in.dispatchMouse(MouseEvent{Type: MouseMove, ClientX: cx, ClientY: cy})
		in.dispatchMouse(MouseEvent{Type: MouseUp, Button: MouseButtonLeft, ClientX: cx, ClientY: cy})
	}
	return true
}
