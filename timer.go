package manhattan

import "time"

// Subscription is a handle to a registered callback. Cancel unregisters it so
// it no longer fires. Cancel is safe to call more than once.
type Subscription interface {
	Cancel()
}

type subscription struct {
	cancel func()
	done   bool
}

func newSubscription(cancel func()) Subscription {
	return &subscription{cancel: cancel}
}

func (s *subscription) Cancel() {
	if s.done {
		return
	}
	s.done = true
	s.cancel()
}

// Scheduler runs callbacks at a fixed interval.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Subscription
}

type loopEntry struct {
	interval  time.Duration
	next      time.Duration
	fn        func()
	cancelled bool
}

// Loop is a cooperative interval scheduler. It has no goroutines: time only
// moves when Advance is called, which the game does once per ebiten tick.
// Callbacks therefore run on the same goroutine as pointer handling.
type Loop struct {
	now     time.Duration
	entries []*loopEntry
	dueBuf  []*loopEntry
}

// NewLoop creates a loop whose clock starts at zero.
func NewLoop() *Loop {
	return &Loop{}
}

// Now returns the total time advanced so far.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Len returns the number of registered callbacks.
func (l *Loop) Len() int {
	return len(l.entries)
}

// Every registers fn to run each time interval elapses.
func (l *Loop) Every(interval time.Duration, fn func()) Subscription {
	if interval <= 0 {
		interval = time.Millisecond
	}
	e := &loopEntry{interval: interval, next: l.now + interval, fn: fn}
	l.entries = append(l.entries, e)
	return newSubscription(func() {
		e.cancelled = true
		l.remove(e)
	})
}

func (l *Loop) remove(e *loopEntry) {
	for i := range l.entries {
		if l.entries[i] == e {
			copy(l.entries[i:], l.entries[i+1:])
			l.entries[len(l.entries)-1] = nil
			l.entries = l.entries[:len(l.entries)-1]
			return
		}
	}
}

// Advance moves the clock forward by dt and fires every due callback once, in
// registration order. Missed intervals are not caught up. A callback cancelled
// by an earlier callback in the same Advance does not fire.
func (l *Loop) Advance(dt time.Duration) {
	l.now += dt
	due := l.dueBuf[:0]
	for _, e := range l.entries {
		if e.next <= l.now {
			due = append(due, e)
		}
	}
	l.dueBuf = due
	for _, e := range due {
		if e.cancelled {
			continue
		}
		e.next = l.now + e.interval
		e.fn()
	}
	clear(l.dueBuf)
}

// Timer counts fixed-interval ticks while running and calls OnTick after each.
type Timer struct {
	Interval time.Duration
	OnTick   func()

	// Tick is the number of intervals elapsed since Start. Stop resets it.
	Tick int

	sched Scheduler
	sub   Subscription
}

// NewTimer creates a stopped timer on the given scheduler.
func NewTimer(sched Scheduler, interval time.Duration, onTick func()) *Timer {
	return &Timer{Interval: interval, OnTick: onTick, sched: sched}
}

// Start begins ticking. Any previous run is stopped first, so calling Start
// twice never registers two callbacks.
func (t *Timer) Start() {
	t.Stop()
	t.sub = t.sched.Every(t.Interval, func() {
		t.Tick++
		if t.OnTick != nil {
			t.OnTick()
		}
	})
}

// Stop cancels the timer and resets Tick to zero.
func (t *Timer) Stop() {
	if t.sub != nil {
		t.sub.Cancel()
		t.sub = nil
	}
	t.Tick = 0
}

// Running reports whether the timer is registered with its scheduler.
func (t *Timer) Running() bool {
	return t.sub != nil
}
