package manhattan

import (
	"slices"
	"testing"
	"time"
)

func TestLoopFiresInRegistrationOrder(t *testing.T) {
	l := NewLoop()
	var got []string
	l.Every(10*time.Millisecond, func() { got = append(got, "a") })
	l.Every(5*time.Millisecond, func() { got = append(got, "b") })
	l.Every(20*time.Millisecond, func() { got = append(got, "c") })

	l.Advance(10 * time.Millisecond)
	if want := []string{"a", "b"}; !slices.Equal(got, want) {
		t.Errorf("fired = %v, want %v", got, want)
	}
}

func TestLoopNoCatchUp(t *testing.T) {
	l := NewLoop()
	n := 0
	l.Every(10*time.Millisecond, func() { n++ })
	l.Advance(time.Second)
	if n != 1 {
		t.Errorf("fired %d times after a long advance, want 1", n)
	}
	l.Advance(9 * time.Millisecond)
	if n != 1 {
		t.Errorf("fired %d times before the next interval, want 1", n)
	}
	l.Advance(time.Millisecond)
	if n != 2 {
		t.Errorf("fired %d times, want 2", n)
	}
}

func TestLoopCancelDuringAdvance(t *testing.T) {
	l := NewLoop()
	var second Subscription
	fired := false
	l.Every(time.Millisecond, func() { second.Cancel() })
	second = l.Every(time.Millisecond, func() { fired = true })

	l.Advance(time.Millisecond)
	if fired {
		t.Error("cancelled callback fired")
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
	second.Cancel()
	if l.Len() != 1 {
		t.Errorf("Len = %d after a second Cancel, want 1", l.Len())
	}
}

func TestTimer(t *testing.T) {
	l := NewLoop()
	ticks := 0
	tm := NewTimer(l, 40*time.Millisecond, func() { ticks++ })

	tm.Start()
	tm.Start()
	if l.Len() != 1 {
		t.Fatalf("Len = %d after starting twice, want 1", l.Len())
	}
	for i := 0; i < 3; i++ {
		l.Advance(40 * time.Millisecond)
	}
	if tm.Tick != 3 || ticks != 3 {
		t.Errorf("Tick = %d, callbacks = %d; want 3, 3", tm.Tick, ticks)
	}

	tm.Stop()
	if tm.Tick != 0 || tm.Running() {
		t.Errorf("after Stop: Tick %d, running %v; want 0, false", tm.Tick, tm.Running())
	}
	l.Advance(40 * time.Millisecond)
	if ticks != 3 {
		t.Errorf("stopped timer fired: callbacks = %d", ticks)
	}
	if l.Len() != 0 {
		t.Errorf("Len = %d after Stop, want 0", l.Len())
	}
}
