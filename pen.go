package manhattan

// MouseEventType identifies a raw mouse event.
type MouseEventType uint8

const (
	MouseDown MouseEventType = iota
	MouseUp
	MouseMove
	MouseLeave
)

// MouseEvent is a raw mouse event in client (screen) coordinates.
type MouseEvent struct {
	Type             MouseEventType
	Button           MouseButton
	ClientX, ClientY float64

	// Interactive is set when the event targets an on-canvas button.
	Interactive bool
}

// TouchEventType identifies a raw touch event.
type TouchEventType uint8

const (
	TouchStart TouchEventType = iota
	TouchMove
	TouchEnd
	TouchCancel
)

// TouchPoint is one finger position in client coordinates.
type TouchPoint struct {
	ClientX, ClientY float64
}

// TouchEvent is a raw touch event. Touches lists the fingers still on the
// surface; only the first one is used.
type TouchEvent struct {
	Type        TouchEventType
	Touches     []TouchPoint
	Interactive bool
}

// EventHandler receives raw pointer events.
type EventHandler interface {
	HandleMouse(MouseEvent)
	HandleTouch(TouchEvent)
}

// EventSource delivers raw pointer events to subscribed handlers.
type EventSource interface {
	Subscribe(EventHandler) Subscription
}

// Pen normalizes mouse and touch input into a single pressed flag and
// canvas-space position.
type Pen struct {
	// IsDown reports whether the pointer is pressed right now.
	IsDown bool
	// WasDown is IsDown as of the last UpdateHistory call.
	WasDown bool
	// Pos is the canvas position, or nil when the pointer left the canvas
	// or the finger lifted.
	Pos    *Point
	Medium Medium

	// OnChange is invoked after any change of position, pressed state or
	// medium.
	OnChange func()

	width, height int
	bounds        func() Rect
	source        EventSource
	sub           Subscription
	isMouseDown   bool
}

// NewPen creates a pen for a width×height canvas. bounds reports where the
// canvas is displayed on screen, in client coordinates.
func NewPen(source EventSource, width, height int, bounds func() Rect) *Pen {
	return &Pen{
		source: source,
		width:  width,
		height: height,
		bounds: bounds,
	}
}

// JustWentUp reports whether the pointer was released since the last
// UpdateHistory call.
func (p *Pen) JustWentUp() bool {
	return p.WasDown && !p.IsDown
}

// UpdateHistory records the current pressed state as WasDown. It is called
// once per drawn frame and once per state change.
func (p *Pen) UpdateHistory() {
	p.WasDown = p.IsDown
}

// Start subscribes the pen to its event source. Calling Start on a running
// pen is a no-op.
func (p *Pen) Start() {
	if p.sub != nil || p.source == nil {
		return
	}
	p.sub = p.source.Subscribe(p)
}

// Stop unsubscribes the pen from its event source.
func (p *Pen) Stop() {
	if p.sub == nil {
		return
	}
	p.sub.Cancel()
	p.sub = nil
}

// HandleMouse applies a raw mouse event.
func (p *Pen) HandleMouse(e MouseEvent) {
	if e.Interactive {
		return
	}
	switch e.Type {
	case MouseDown:
		if e.Button == MouseButtonLeft {
			p.isMouseDown = true
		}
	case MouseUp:
		if e.Button == MouseButtonLeft {
			p.isMouseDown = false
		}
	case MouseLeave:
		p.update(MediumMouse, p.isMouseDown, nil)
		return
	}
	p.update(MediumMouse, p.isMouseDown, p.point(e.ClientX, e.ClientY))
}

// HandleTouch applies a raw touch event.
func (p *Pen) HandleTouch(e TouchEvent) {
	if e.Interactive {
		return
	}
	switch e.Type {
	case TouchStart, TouchMove:
		if len(e.Touches) == 0 {
			p.update(MediumTouch, false, nil)
			return
		}
		t := e.Touches[0]
		p.update(MediumTouch, true, p.point(t.ClientX, t.ClientY))
	case TouchEnd, TouchCancel:
		p.update(MediumTouch, false, nil)
	}
}

func (p *Pen) point(clientX, clientY float64) *Point {
	r := Rect{Width: float64(p.width), Height: float64(p.height)}
	if p.bounds != nil {
		r = p.bounds()
	}
	pt := canvasPoint(r, p.width, p.height, clientX, clientY)
	return &pt
}

func (p *Pen) update(medium Medium, down bool, pos *Point) {
	changed := false
	if medium != p.Medium {
		p.Medium = medium
		changed = true
	}
	if down != p.IsDown {
		p.WasDown = p.IsDown
		p.IsDown = down
		changed = true
	}
	if !samePoint(pos, p.Pos) {
		p.Pos = pos
		changed = true
	}
	if changed && p.OnChange != nil {
		p.OnChange()
	}
}

func samePoint(a, b *Point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
