package manhattan

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	storyCharsPerLine = 35
	storyNameY        = 15
	storyTextY        = 30
	storyCharInterval = 40 * time.Millisecond
)

// storyView draws a street story over the darkened map.
type storyView struct {
	game     *Game
	gameplay *Gameplay
	story    *Story
	lines    []string
	fade     *Fade
}

func newStoryView(game *Game, gp *Gameplay, story *Story) *storyView {
	return &storyView{
		game:     game,
		gameplay: gp,
		story:    story,
		lines:    ParagraphsToLines(story.Paragraphs, storyCharsPerLine),
		fade:     newDarkenFade(),
	}
}

// totalChars is the number of characters revealed by the animation.
func (v *storyView) totalChars() int {
	n := 0
	for _, l := range v.lines {
		n += utf8.RuneCountInString(l)
	}
	return n
}

func (v *storyView) draw(dst *ebiten.Image, lines []string) {
	v.gameplay.DrawDarkenedMap(dst, v.fade.Value())

	centerX := v.game.width / 2
	if big := v.game.font; big != nil {
		name := strings.ToUpper(ShortenStreetName(v.story.Name))
		big.DrawText(dst, name, centerX, storyNameY, AnchorCenter, 1)
	}
	small := v.game.tinyFont
	if small == nil {
		return
	}
	y := storyTextY
	for _, l := range lines {
		small.DrawText(dst, l, centerX, y, AnchorCenter, 1)
		y += small.CharHeight()
	}
}

// revealLines returns the story cut off after maxChars characters. The cut
// line is padded with spaces so centred text does not shift while it types.
func revealLines(lines []string, maxChars int) []string {
	var out []string
	chars := 0
	for _, l := range lines {
		r := []rune(l)
		if chars+len(r) < maxChars {
			chars += len(r)
			out = append(out, l)
			continue
		}
		n := max(maxChars-chars, 0)
		out = append(out, string(r[:n])+strings.Repeat(" ", len(r)-n))
		break
	}
	return out
}

// StoryAnimating types a street story out one character per tick.
type StoryAnimating struct {
	Lifetime
	*storyView

	timer *Timer
}

// NewStoryState returns the state that presents story before gameplay
// resumes.
func NewStoryState(game *Game, gp *Gameplay, story *Story) *StoryAnimating {
	s := &StoryAnimating{storyView: newStoryView(game, gp, story)}
	s.timer = NewTimer(game.loop, storyCharInterval, s.tick)
	s.Bind(s.timer)
	return s
}

func (s *StoryAnimating) tick() {
	s.fade.Update(storyCharInterval)
	s.game.UpdateAndDraw()
}

// Chars returns how many characters are revealed.
func (s *StoryAnimating) Chars() int {
	return s.timer.Tick
}

func (s *StoryAnimating) Update() {
	if s.timer.Tick >= s.totalChars() || s.game.pen.JustWentUp() {
		s.game.ChangeState(newStoryWaiting(s.storyView))
	}
}

func (s *StoryAnimating) Draw(dst *ebiten.Image) {
	s.draw(dst, revealLines(s.lines, s.timer.Tick))
}

// StoryWaiting shows the whole story until the player taps.
type StoryWaiting struct {
	Lifetime
	*storyView

	prompt *ActionPrompt
}

func newStoryWaiting(v *storyView) *StoryWaiting {
	s := &StoryWaiting{storyView: v}
	s.prompt = NewActionPrompt(v.game.loop, v.game.tinyFont, v.game.width, v.game.height,
		"to continue", v.game.UpdateAndDraw)
	s.Bind(s.prompt)
	return s
}

// Enter finishes the background fade in case the animation was skipped.
func (s *StoryWaiting) Enter() {
	s.Lifetime.Enter()
	s.fade.Update(time.Hour)
}

func (s *StoryWaiting) Update() {
	if s.game.pen.JustWentUp() {
		s.game.ChangeState(s.gameplay)
	}
}

func (s *StoryWaiting) Draw(dst *ebiten.Image) {
	s.draw(dst, s.lines)
	s.prompt.Draw(dst)
}
