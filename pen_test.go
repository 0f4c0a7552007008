package manhattan

import "testing"

// fakeSource records the subscribed handler.
type fakeSource struct {
	h EventHandler
}

func (s *fakeSource) Subscribe(h EventHandler) Subscription {
	s.h = h
	return newSubscription(func() { s.h = nil })
}

func newTestPen() (*Pen, *fakeSource) {
	src := &fakeSource{}
	p := NewPen(src, 20, 10, func() Rect { return Rect{X: 100, Y: 50, Width: 80, Height: 40} })
	p.Start()
	return p, src
}

func TestPenMouse(t *testing.T) {
	p, src := newTestPen()
	changes := 0
	p.OnChange = func() { changes++ }

	src.h.HandleMouse(MouseEvent{Type: MouseMove, ClientX: 104, ClientY: 58})
	if p.Pos == nil || *p.Pos != (Point{X: 1, Y: 2}) {
		t.Fatalf("Pos = %v, want (1,2)", p.Pos)
	}
	if p.Medium != MediumMouse {
		t.Errorf("Medium = %v, want mouse", p.Medium)
	}
	if p.IsDown {
		t.Error("IsDown = true before any press")
	}

	src.h.HandleMouse(MouseEvent{Type: MouseDown, Button: MouseButtonLeft, ClientX: 104, ClientY: 58})
	if !p.IsDown {
		t.Error("IsDown = false after left press")
	}
	src.h.HandleMouse(MouseEvent{Type: MouseMove, ClientX: 104, ClientY: 58})
	if changes != 2 {
		t.Errorf("changes = %d, want 2 (move, press; repeated move is not a change)", changes)
	}

	src.h.HandleMouse(MouseEvent{Type: MouseLeave})
	if p.Pos != nil {
		t.Errorf("Pos = %v after leave, want nil", p.Pos)
	}
	if !p.IsDown {
		t.Error("leaving the canvas released the button")
	}
	src.h.HandleMouse(MouseEvent{Type: MouseUp, Button: MouseButtonLeft, ClientX: 300, ClientY: 300})
	if p.IsDown {
		t.Error("IsDown = true after release")
	}
	if p.Pos == nil || *p.Pos != (Point{X: 20, Y: 10}) {
		t.Errorf("Pos = %v, want clamped (20,10)", p.Pos)
	}
}

func TestPenIgnoresOtherButtons(t *testing.T) {
	p, src := newTestPen()
	src.h.HandleMouse(MouseEvent{Type: MouseDown, Button: MouseButtonRight, ClientX: 110, ClientY: 60})
	if p.IsDown {
		t.Error("right button pressed the pen")
	}
	src.h.HandleMouse(MouseEvent{Type: MouseDown, Button: MouseButtonLeft, ClientX: 110, ClientY: 60})
	src.h.HandleMouse(MouseEvent{Type: MouseUp, Button: MouseButtonMiddle, ClientX: 110, ClientY: 60})
	if !p.IsDown {
		t.Error("middle button released the pen")
	}
}

func TestPenIgnoresInteractive(t *testing.T) {
	p, src := newTestPen()
	src.h.HandleMouse(MouseEvent{Type: MouseDown, Button: MouseButtonLeft, ClientX: 110, ClientY: 60, Interactive: true})
	if p.IsDown || p.Pos != nil {
		t.Errorf("interactive event changed the pen: down %v, pos %v", p.IsDown, p.Pos)
	}
	src.h.HandleTouch(TouchEvent{Type: TouchStart, Touches: []TouchPoint{{110, 60}}, Interactive: true})
	if p.IsDown {
		t.Error("interactive touch pressed the pen")
	}
}

func TestPenTouch(t *testing.T) {
	p, src := newTestPen()
	src.h.HandleTouch(TouchEvent{Type: TouchStart, Touches: []TouchPoint{{140, 70}, {100, 50}}})
	if !p.IsDown || p.Medium != MediumTouch {
		t.Fatalf("after touchstart: down %v, medium %v; want true, touch", p.IsDown, p.Medium)
	}
	if p.Pos == nil || *p.Pos != (Point{X: 10, Y: 5}) {
		t.Errorf("Pos = %v, want first finger at (10,5)", p.Pos)
	}
	src.h.HandleTouch(TouchEvent{Type: TouchMove, Touches: []TouchPoint{{148, 70}}})
	if p.Pos == nil || *p.Pos != (Point{X: 12, Y: 5}) {
		t.Errorf("Pos = %v after move, want (12,5)", p.Pos)
	}
	src.h.HandleTouch(TouchEvent{Type: TouchEnd})
	if p.IsDown || p.Pos != nil {
		t.Errorf("after touchend: down %v, pos %v; want false, nil", p.IsDown, p.Pos)
	}

	src.h.HandleTouch(TouchEvent{Type: TouchStart, Touches: []TouchPoint{{140, 70}}})
	src.h.HandleTouch(TouchEvent{Type: TouchCancel})
	if p.IsDown || p.Pos != nil {
		t.Errorf("after touchcancel: down %v, pos %v; want false, nil", p.IsDown, p.Pos)
	}
}

func TestPenJustWentUpOncePerPress(t *testing.T) {
	p, src := newTestPen()
	seen := 0
	p.OnChange = func() {
		if p.JustWentUp() {
			seen++
		}
		p.UpdateHistory()
	}

	for i := 0; i < 3; i++ {
		src.h.HandleMouse(MouseEvent{Type: MouseDown, Button: MouseButtonLeft, ClientX: 110, ClientY: 60})
		src.h.HandleMouse(MouseEvent{Type: MouseMove, ClientX: 120, ClientY: 60})
		src.h.HandleMouse(MouseEvent{Type: MouseUp, Button: MouseButtonLeft, ClientX: 120, ClientY: 60})
		src.h.HandleMouse(MouseEvent{Type: MouseMove, ClientX: 130, ClientY: 60})
	}
	if seen != 3 {
		t.Errorf("JustWentUp seen %d times, want 3", seen)
	}
	if p.JustWentUp() {
		t.Error("JustWentUp still true after history update")
	}
}

func TestPenStop(t *testing.T) {
	p, src := newTestPen()
	p.Stop()
	if src.h != nil {
		t.Error("Stop did not unsubscribe")
	}
	p.Stop()
	p.Start()
	p.Start()
	if src.h == nil {
		t.Error("Start did not subscribe")
	}
}
