package manhattan

import (
	"image"
	"slices"
	"testing"
)

// eventLog records raw events delivered to a handler.
type eventLog struct {
	mouse []MouseEvent
	touch []TouchEvent
}

func (l *eventLog) HandleMouse(e MouseEvent) { l.mouse = append(l.mouse, e) }
func (l *eventLog) HandleTouch(e TouchEvent) { l.touch = append(l.touch, e) }

// pump consumes every queued synthetic event. Poll never reaches real
// input while the queue is non-empty.
func pump(in *Input) {
	for in.Pending() > 0 {
		in.Poll()
	}
}

func TestClientPoint(t *testing.T) {
	tests := []struct {
		name   string
		bounds func() Rect
		x, y   float64
		wantX  float64
		wantY  float64
	}{
		{"identity", nil, 3, 4, 3.5, 4.5},
		{"scaled", func() Rect { return Rect{X: 100, Y: 50, Width: 80, Height: 40} }, 1, 2, 106, 60},
	}
	for _, tt := range tests {
		in := NewInput(20, 10, tt.bounds)
		x, y := in.clientPoint(tt.x, tt.y)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%s: clientPoint = (%v, %v), want (%v, %v)", tt.name, x, y, tt.wantX, tt.wantY)
		}
		r := in.rect()
		if p := canvasPoint(r, 20, 10, x, y); p != (Point{X: int(tt.x), Y: int(tt.y)}) {
			t.Errorf("%s: round trip = %v", tt.name, p)
		}
	}
}

func TestInjectClick(t *testing.T) {
	in := NewInput(20, 10, nil)
	var l eventLog
	in.Subscribe(&l)

	in.InjectClick(3, 4)
	if in.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", in.Pending())
	}
	in.Poll()
	if in.Pending() != 1 {
		t.Errorf("Pending = %d after one poll, want 1", in.Pending())
	}
	pump(in)

	var types []MouseEventType
	for _, e := range l.mouse {
		types = append(types, e.Type)
		if e.Interactive {
			t.Errorf("event %v is interactive without a hotspot", e.Type)
		}
	}
	if want := []MouseEventType{MouseMove, MouseDown, MouseMove, MouseUp}; !slices.Equal(types, want) {
		t.Errorf("events = %v, want %v", types, want)
	}
}

func TestInjectDragFrames(t *testing.T) {
	tests := []struct {
		frames, want int
	}{
		{0, 2},
		{2, 2},
		{5, 5},
	}
	for _, tt := range tests {
		in := NewInput(20, 10, nil)
		in.InjectDrag(0, 0, 10, 0, tt.frames)
		if in.Pending() != tt.want {
			t.Errorf("InjectDrag(frames %d): Pending = %d, want %d", tt.frames, in.Pending(), tt.want)
		}
	}
}

func TestInjectSwipe(t *testing.T) {
	in := NewInput(20, 10, nil)
	p := NewPen(in, 20, 10, in.rect)
	p.Start()
	var l eventLog
	in.Subscribe(&l)

	in.InjectSwipe(0, 5, 9, 5, 4)
	in.Poll()
	if !p.IsDown || p.Medium != MediumTouch {
		t.Errorf("after touchstart: down %v, medium %v", p.IsDown, p.Medium)
	}
	in.Poll()
	if p.Pos == nil || *p.Pos != (Point{X: 3, Y: 5}) {
		t.Errorf("Pos = %v, want (3,5)", p.Pos)
	}
	pump(in)
	if p.IsDown {
		t.Error("pen still down after the swipe")
	}

	var types []TouchEventType
	for _, e := range l.touch {
		types = append(types, e.Type)
	}
	if want := []TouchEventType{TouchStart, TouchMove, TouchMove, TouchEnd}; !slices.Equal(types, want) {
		t.Errorf("events = %v, want %v", types, want)
	}
	if len(l.mouse) != 0 {
		t.Errorf("swipe produced %d mouse events", len(l.mouse))
	}
}

func TestHotspotClick(t *testing.T) {
	in := NewInput(20, 10, nil)
	var l eventLog
	in.Subscribe(&l)
	clicks := 0
	sub := in.AddHotspot(&Hotspot{Rect: image.Rect(0, 0, 5, 5), OnClick: func() { clicks++ }})

	in.InjectClick(2, 2)
	pump(in)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	var flags []bool
	for _, e := range l.mouse {
		flags = append(flags, e.Interactive)
	}
	if want := []bool{false, true, true, true}; !slices.Equal(flags, want) {
		t.Errorf("interactive = %v, want %v", flags, want)
	}

	l.mouse = nil
	in.InjectPress(2, 2)
	in.InjectRelease(15, 8)
	pump(in)
	if clicks != 1 {
		t.Errorf("release outside clicked: clicks = %d", clicks)
	}
	if last := l.mouse[len(l.mouse)-1]; last.Type != MouseUp || !last.Interactive {
		t.Errorf("release of a captured press = %+v, want interactive MouseUp", last)
	}

	l.mouse = nil
	in.InjectClick(15, 8)
	pump(in)
	for _, e := range l.mouse {
		if e.Interactive {
			t.Errorf("press outside the hotspot is interactive: %+v", e)
		}
	}

	sub.Cancel()
	if len(in.Hotspots()) != 0 {
		t.Errorf("Hotspots = %d after cancel, want 0", len(in.Hotspots()))
	}
	in.InjectClick(2, 2)
	pump(in)
	if clicks != 1 {
		t.Errorf("removed hotspot clicked: clicks = %d", clicks)
	}
}

func TestHotspotTouch(t *testing.T) {
	in := NewInput(20, 10, nil)
	p := NewPen(in, 20, 10, in.rect)
	p.Start()
	clicks := 0
	in.AddHotspot(&Hotspot{Rect: image.Rect(0, 0, 5, 5), OnClick: func() { clicks++ }})

	in.InjectSwipe(1, 1, 2, 2, 2)
	pump(in)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if p.IsDown || p.Pos != nil {
		t.Errorf("tap on a hotspot reached the pen: down %v, pos %v", p.IsDown, p.Pos)
	}
}

func TestInputUnsubscribe(t *testing.T) {
	in := NewInput(20, 10, nil)
	var a, b eventLog
	sub := in.Subscribe(&a)
	in.Subscribe(&b)
	sub.Cancel()

	in.InjectMove(1, 1)
	pump(in)
	if len(a.mouse) != 0 || len(b.mouse) != 1 {
		t.Errorf("events: cancelled %d, active %d; want 0, 1", len(a.mouse), len(b.mouse))
	}
}
