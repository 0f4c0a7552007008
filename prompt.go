package manhattan

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// promptBlinkInterval is how long the prompt stays visible or hidden.
const promptBlinkInterval = 1500 * time.Millisecond

// ActionPrompt is the blinking "Click or tap ..." line at the bottom of the
// screen. Bind it to a state's Lifetime so it only blinks while the state
// is active.
type ActionPrompt struct {
	Text string

	font  Font
	w, h  int
	blink *Timer
}

// NewActionPrompt creates a prompt reading "Click or tap <consequence>".
// redraw is called on every blink.
func NewActionPrompt(sched Scheduler, font Font, w, h int, consequence string, redraw func()) *ActionPrompt {
	return &ActionPrompt{
		Text:  "Click or tap " + consequence,
		font:  font,
		w:     w,
		h:     h,
		blink: NewTimer(sched, promptBlinkInterval, redraw),
	}
}

// Start begins blinking.
func (p *ActionPrompt) Start() {
	p.blink.Start()
}

// Stop stops blinking.
func (p *ActionPrompt) Stop() {
	p.blink.Stop()
}

// Visible reports whether the prompt is in the shown half of its blink.
func (p *ActionPrompt) Visible() bool {
	return p.blink.Tick%2 == 0
}

// Timer returns the blink timer.
func (p *ActionPrompt) Timer() *Timer {
	return p.blink
}

// Draw draws the prompt when it is visible.
func (p *ActionPrompt) Draw(dst *ebiten.Image) {
	if !p.Visible() || p.font == nil {
		return
	}
	p.font.DrawText(dst, p.Text, p.w/2, p.h-p.font.CharHeight(), AnchorCenter, 0.75)
}
