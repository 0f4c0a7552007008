package manhattan

import "github.com/hajimehoshi/ebiten/v2"

// State is one screen of the game. Exactly one state is active at a time.
type State interface {
	// Enter is called when the state becomes active.
	Enter()
	// Exit is called when the state stops being active.
	Exit()
	// Update advances the state in response to input or a timer tick.
	Update()
	// Draw renders the state into the frame buffer.
	Draw(dst *ebiten.Image)
}

// Startable is anything whose activity can be started and stopped, such as a
// Timer, a Pen or a hotspot.
type Startable interface {
	Start()
	Stop()
}

// Lifetime ties startables to a state's enter/exit cycle. Embed it in a state
// and Bind the startables from the constructor.
type Lifetime struct {
	bound   []Startable
	entered bool
}

// Bind registers startables that run while the owning state is active.
func (l *Lifetime) Bind(s ...Startable) {
	l.bound = append(l.bound, s...)
}

// Enter starts all bound startables in registration order. Entering an
// already entered lifetime does nothing.
func (l *Lifetime) Enter() {
	if l.entered {
		return
	}
	l.entered = true
	for _, s := range l.bound {
		s.Start()
	}
}

// Exit stops all bound startables in registration order.
func (l *Lifetime) Exit() {
	if !l.entered {
		return
	}
	l.entered = false
	for _, s := range l.bound {
		s.Stop()
	}
}

// Entered reports whether the lifetime is between Enter and Exit.
func (l *Lifetime) Entered() bool {
	return l.entered
}

// Update does nothing.
func (l *Lifetime) Update() {}

// Draw does nothing.
func (l *Lifetime) Draw(*ebiten.Image) {}

// historyUpdater is the part of the Pen the machine drives.
type historyUpdater interface {
	UpdateHistory()
}

// Machine runs the active State. All transitions happen synchronously on the
// caller's goroutine.
type Machine struct {
	// OnFrameDrawn, when set, is called after every Draw with the frame.
	OnFrameDrawn func(frame *ebiten.Image)

	current State
	history historyUpdater
	frame   *ebiten.Image
}

// NewMachine creates a machine drawing into frame. A nil frame runs the
// machine headless: states are updated but never drawn.
func NewMachine(history historyUpdater, frame *ebiten.Image) *Machine {
	return &Machine{history: history, frame: frame}
}

// Current returns the active state.
func (m *Machine) Current() State {
	return m.current
}

// Frame returns the frame buffer, or nil when headless.
func (m *Machine) Frame() *ebiten.Image {
	return m.frame
}

// ChangeState exits the active state, enters next and runs one update of it.
// Pen history is advanced in between so the release that caused the change is
// not seen again by next.
func (m *Machine) ChangeState(next State) {
	debugLogState(m.current, next)
	if m.current != nil {
		m.current.Exit()
	}
	m.current = next
	next.Enter()
	if m.history != nil {
		m.history.UpdateHistory()
	}
	next.Update()
}

// UpdateAndDraw runs one full frame: update, draw, frame hook, pen history.
func (m *Machine) UpdateAndDraw() {
	if m.current == nil {
		return
	}
	m.current.Update()
	// Update may have changed the state; draw whatever is active now.
	if m.frame != nil {
		m.frame.Clear()
		m.current.Draw(m.frame)
		if m.OnFrameDrawn != nil {
			m.OnFrameDrawn(m.frame)
		}
	}
	if m.history != nil {
		m.history.UpdateHistory()
	}
}

// Start enters initial and draws the first frame.
func (m *Machine) Start(initial State) {
	m.current = initial
	initial.Enter()
	m.UpdateAndDraw()
}

// Stop exits the active state.
func (m *Machine) Stop() {
	if m.current != nil {
		m.current.Exit()
	}
}
