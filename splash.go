package manhattan

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	splashImageY      = 40
	versionAlpha      = 0.2
	resetButtonExpiry = 10 * time.Second
	resetButtonText   = "Reset game"
)

// Splash is the title screen shown over the darkened map.
type Splash struct {
	Lifetime

	game     *Game
	gameplay *Gameplay
	prompt   *ActionPrompt
	reset    *ResetButton
	fade     *Fade
	fadeTick *Timer
}

// NewSplash creates the title screen leading into gameplay. withReset adds
// the reset button offered when a saved game was found.
func NewSplash(game *Game, gp *Gameplay, withReset bool) *Splash {
	s := &Splash{
		game:     game,
		gameplay: gp,
		prompt:   NewActionPrompt(game.loop, game.tinyFont, game.width, game.height, "to start", game.UpdateAndDraw),
		fade:     newDarkenFade(),
	}
	s.fadeTick = NewTimer(game.loop, time.Second/30, s.stepFade)
	s.Bind(s.prompt, s.fadeTick)
	if withReset {
		s.reset = newResetButton(game)
		s.Bind(s.reset)
	}
	return s
}

func (s *Splash) stepFade() {
	s.fade.Update(s.fadeTick.Interval)
	if s.fade.Done() {
		s.fadeTick.Stop()
	}
	s.game.UpdateAndDraw()
}

// ResetButton returns the reset button, or nil when none is offered.
func (s *Splash) ResetButton() *ResetButton {
	return s.reset
}

func (s *Splash) Update() {
	if s.game.pen.JustWentUp() {
		s.game.unlockAudio()
		s.game.ChangeState(s.gameplay)
	}
}

func (s *Splash) Draw(dst *ebiten.Image) {
	s.gameplay.DrawDarkenedMap(dst, s.fade.Value())
	if img := s.game.splashImage; img != nil {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(0, splashImageY)
		dst.DrawImage(img, &op)
	}
	s.drawVersion(dst)
	if s.reset != nil {
		s.reset.Draw(dst)
	}
	s.prompt.Draw(dst)
}

func (s *Splash) drawVersion(dst *ebiten.Image) {
	v := s.game.version
	if len(v) > 4 {
		v = v[:4]
	}
	small := s.game.tinyFont
	if v == "" || small == nil {
		return
	}
	small.DrawText(dst, "V"+v, s.game.width-1, small.CharHeight()+1, AnchorBottomRight, versionAlpha)
}

// ResetButton is the "Reset game" hotspot in the top-left corner. It
// disappears after a while so it is not hit by accident later.
type ResetButton struct {
	game    *Game
	hotspot *Hotspot
	sub     Subscription
	expiry  *Timer
	expired bool
}

func newResetButton(game *Game) *ResetButton {
	b := &ResetButton{game: game}
	b.hotspot = &Hotspot{Rect: b.rect(), OnClick: game.Reset}
	b.expiry = NewTimer(game.loop, resetButtonExpiry, b.expire)
	return b
}

func (b *ResetButton) rect() image.Rectangle {
	const pad = 2
	f := b.game.tinyFont
	if f == nil {
		return image.Rect(0, 0, 12, 6)
	}
	return image.Rect(0, 0, f.TextWidth(resetButtonText)+pad*2, f.CharHeight()+pad*2)
}

// Visible reports whether the button can still be clicked.
func (b *ResetButton) Visible() bool {
	return b.sub != nil
}

// Hotspot returns the clickable area.
func (b *ResetButton) Hotspot() *Hotspot {
	return b.hotspot
}

// Start shows the button unless it already expired.
func (b *ResetButton) Start() {
	if b.expired || b.sub != nil {
		return
	}
	b.sub = b.game.input.AddHotspot(b.hotspot)
	b.expiry.Start()
}

// Stop hides the button.
func (b *ResetButton) Stop() {
	b.expiry.Stop()
	if b.sub != nil {
		b.sub.Cancel()
		b.sub = nil
	}
}

func (b *ResetButton) expire() {
	b.expired = true
	b.Stop()
	b.game.UpdateAndDraw()
}

// Draw draws the button while it is visible.
func (b *ResetButton) Draw(dst *ebiten.Image) {
	if !b.Visible() {
		return
	}
	r := b.hotspot.Rect
	vector.StrokeRect(dst, float32(r.Min.X)+0.5, float32(r.Min.Y)+0.5,
		float32(r.Dx()-1), float32(r.Dy()-1), 1, color.RGBA{R: 255, G: 255, B: 255, A: 160}, false)
	if f := b.game.tinyFont; f != nil {
		f.DrawText(dst, resetButtonText, r.Min.X+2, r.Min.Y+2, AnchorTopLeft, 0.75)
	}
}
