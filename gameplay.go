package manhattan

import (
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/toolness/paint-manhattan/analytics"
)

// skeletonAlpha is the opacity of the street skeleton hint.
const skeletonAlpha = 0.33

var penCursorColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// GameplayOptions restore a game in progress.
type GameplayOptions struct {
	NextStreetIndex int
	// NextStreetHasMissedOnce, when set, is the miss flag of the street at
	// NextStreetIndex.
	NextStreetHasMissedOnce *bool
	Score                   int
}

// Gameplay is the painting state. It owns the street queue, the paint
// overlay and the score.
type Gameplay struct {
	Lifetime

	game    *Game
	streets []string
	overlay *Overlay
	painter *Painter

	nextIndex         int
	nextHasMissedOnce *bool
	score             int
	current           *RegionProgress
	hasEnteredOnce    bool
}

// NewGameplay creates a gameplay state over streets. Streets before
// opts.NextStreetIndex are painted in the inactive colour right away.
func NewGameplay(game *Game, streets []string, opts GameplayOptions) (*Gameplay, error) {
	if !game.sheet.AreStreetNamesValid(streets) {
		return nil, fmt.Errorf("manhattan: street list names frames missing from the sheet: %w", ErrFrameNotFound)
	}
	if opts.NextStreetIndex < 0 || opts.NextStreetIndex > len(streets) {
		return nil, fmt.Errorf("manhattan: next street index %d out of range [0, %d]", opts.NextStreetIndex, len(streets))
	}
	overlay := NewOverlay(game.width, game.height)
	gp := &Gameplay{
		game:              game,
		streets:           streets,
		overlay:           overlay,
		painter:           NewPainter(game.sheet, overlay, DefaultPalette),
		nextIndex:         opts.NextStreetIndex,
		nextHasMissedOnce: opts.NextStreetHasMissedOnce,
		score:             opts.Score,
	}
	if err := gp.painter.Autopaint(streets[:gp.nextIndex]); err != nil {
		return nil, err
	}
	return gp, nil
}

// GameplayFromSavegame restores a saved game. It returns nil when the
// record no longer matches the sheet.
func GameplayFromSavegame(game *Game, sg *Savegame) *Gameplay {
	if sg == nil {
		return nil
	}
	gp, err := NewGameplay(game, sg.StreetList, GameplayOptions{
		NextStreetIndex:         sg.NextStreetIndex,
		NextStreetHasMissedOnce: sg.NextStreetHasMissedOnce,
		Score:                   sg.Score,
	})
	if err != nil {
		log.Printf("manhattan: discarding savegame: %v", err)
		return nil
	}
	return gp
}

// Streets returns the street queue.
func (gp *Gameplay) Streets() []string {
	return gp.streets
}

// Score returns the current score.
func (gp *Gameplay) Score() int {
	return gp.score
}

// NextStreetIndex returns the index of the street that becomes active next.
func (gp *Gameplay) NextStreetIndex() int {
	return gp.nextIndex
}

// Current returns the active street, or nil before the first update and
// after the game is won.
func (gp *Gameplay) Current() *RegionProgress {
	return gp.current
}

// Overlay returns the paint layer.
func (gp *Gameplay) Overlay() *Overlay {
	return gp.overlay
}

// Won reports whether every street has been painted.
func (gp *Gameplay) Won() bool {
	return gp.current == nil && !gp.hasStreetsLeft()
}

func (gp *Gameplay) baseSavegame() *Savegame {
	missed := false
	return &Savegame{
		StreetList:              gp.streets,
		NextStreetIndex:         gp.nextIndex,
		Score:                   gp.score,
		NextStreetHasMissedOnce: &missed,
	}
}

// missSavegame records a miss on the active street, so reloading resumes
// that street with the flag set.
func (gp *Gameplay) missSavegame() *Savegame {
	sg := gp.baseSavegame()
	sg.NextStreetIndex--
	missed := true
	sg.NextStreetHasMissedOnce = &missed
	return sg
}

func (gp *Gameplay) hasStreetsLeft() bool {
	return gp.nextIndex < len(gp.streets)
}

func (gp *Gameplay) shiftToNextStreet() *RegionProgress {
	if !gp.hasStreetsLeft() {
		return nil
	}
	name := gp.streets[gp.nextIndex]
	gp.nextIndex++
	missed := false
	if gp.nextHasMissedOnce != nil {
		missed = *gp.nextHasMissedOnce
		gp.nextHasMissedOnce = nil
	}
	rp, err := gp.painter.Begin(name, missed)
	if err != nil {
		log.Printf("manhattan: skipping street: %v", err)
		return gp.shiftToNextStreet()
	}
	return rp
}

// Enter hides the system cursor and reports the start of the game the
// first time.
func (gp *Gameplay) Enter() {
	gp.Lifetime.Enter()
	gp.game.SetCursorVisible(false)
	if gp.hasEnteredOnce {
		return
	}
	gp.hasEnteredOnce = true
	diff := analytics.Difficulty{
		ShowStreetSkeleton: gp.game.opts.Game.ShowSkeleton,
		NarrativeOrder:     gp.game.opts.Game.Narrative,
	}
	if gp.nextIndex == 0 {
		gp.game.emit(analytics.Event{Name: analytics.GameStarted, Difficulty: diff})
	} else {
		gp.game.emit(analytics.Event{Name: analytics.GameContinued, Difficulty: diff, NextStreetIndex: gp.nextIndex})
	}
}

// Exit restores the system cursor.
func (gp *Gameplay) Exit() {
	gp.Lifetime.Exit()
	gp.game.SetCursorVisible(true)
}

func (gp *Gameplay) Update() {
	game := gp.game
	pen := game.pen
	maybeShowStory := false

	if gp.current == nil {
		gp.current = gp.shiftToNextStreet()
		maybeShowStory = gp.current != nil
	}
	cur := gp.current
	if cur == nil {
		return
	}

	if !pen.IsDown && cur.Done() {
		gp.painter.Unhighlight()
		gp.current = gp.shiftToNextStreet()
		cur = gp.current
		maybeShowStory = cur != nil
	}

	if maybeShowStory && game.opts.Game.ShowStories {
		if story := game.stories.Story(cur.Name); story != nil {
			game.ChangeState(NewStoryState(game, gp, story))
			return
		}
	}

	if cur == nil || pen.Pos == nil || !pen.IsDown {
		return
	}

	radius := game.opts.Paint.Radius(pen.Medium)
	res := gp.painter.Stroke(cur, *pen.Pos, radius)
	debugLogStroke(cur, *pen.Pos, radius, res)

	switch res.Outcome {
	case StrokeCompleted:
		gp.completeStreet(cur)
	case StrokeMiss:
		if res.FirstMiss {
			gp.score = game.opts.Score.ApplyMiss(gp.score)
			game.autosave(gp.missSavegame())
			game.sounds.Miss.Play()
		}
	}
}

func (gp *Gameplay) completeStreet(cur *RegionProgress) {
	game := gp.game
	game.sounds.Success.Play()
	gp.score += game.opts.Score.CompletionBonus(cur.HasMissedOnce)
	game.emit(analytics.Event{
		Name:              analytics.StreetPainted,
		StreetName:        cur.Name,
		MissedAtLeastOnce: cur.HasMissedOnce,
	})
	if gp.hasStreetsLeft() {
		game.autosave(gp.baseSavegame())
		return
	}
	game.autosave(nil)
	game.emit(analytics.Event{
		Name:           analytics.GameWon,
		StreetsPainted: len(gp.streets),
		FinalScore:     gp.score,
	})
	game.RequestSnapshot("won")
	game.StopRecording()
}

func (gp *Gameplay) Draw(dst *ebiten.Image) {
	gp.drawMap(dst)
	gp.drawPenCursor(dst)
	gp.drawStatusText(dst)
	gp.drawScore(dst)
}

func (gp *Gameplay) drawMap(dst *ebiten.Image) {
	sheet := gp.game.sheet
	if err := sheet.DrawFrame(dst, TerrainFrame, 0, 0, 1); err != nil {
		log.Printf("manhattan: %v", err)
	}
	if gp.game.opts.Game.ShowSkeleton && sheet.Has(StreetsFrame) {
		_ = sheet.DrawFrame(dst, StreetsFrame, 0, 0, skeletonAlpha)
	}
	dst.DrawImage(gp.overlay.Image(), nil)
}

// DrawDarkenedMap draws the map under a black veil of the given opacity.
// The splash and story screens use it as their background.
func (gp *Gameplay) DrawDarkenedMap(dst *ebiten.Image, alpha float32) {
	gp.drawMap(dst)
	darken(dst, alpha)
}

func (gp *Gameplay) drawPenCursor(dst *ebiten.Image) {
	pen := gp.game.pen
	if pen.Pos == nil {
		return
	}
	r := gp.game.opts.Paint.Radius(pen.Medium)
	size := float32(r * 2)
	x := float32(pen.Pos.X-r) + 0.5
	y := float32(pen.Pos.Y-r) + 0.5
	vector.StrokeRect(dst, x, y, size, size, 1, penCursorColor, false)
}

type statusLine struct {
	text         string
	font         Font
	rightPadding int
}

func pixelsLeftText(n int) string {
	if n == 1 {
		return "1 pixel left"
	}
	return strconv.Itoa(n) + " pixels left"
}

// statusLines returns the bottom-right status text, top line first.
func (gp *Gameplay) statusLines() []statusLine {
	big, small := gp.game.font, gp.game.tinyFont
	cur := gp.current
	if cur == nil {
		return []statusLine{
			{text: "HOORAY!", font: big},
			{text: "You painted Manhattan", font: small, rightPadding: 2},
		}
	}
	done := cur.Done()
	lead, detail := "Paint", pixelsLeftText(cur.PixelsLeft)
	if done {
		lead, detail = "You painted", "Lift finger to continue"
	}
	return []statusLine{
		{text: lead, font: small, rightPadding: 2},
		{text: strings.ToUpper(ShortenStreetName(cur.Name)), font: big, rightPadding: 2},
		{text: "", font: small, rightPadding: 2},
		{text: detail, font: small, rightPadding: 2},
	}
}

func (gp *Gameplay) drawStatusText(dst *ebiten.Image) {
	lines := gp.statusLines()
	y := gp.game.height - 1
	for i := len(lines) - 1; i >= 0; i-- {
		l := lines[i]
		if l.font == nil {
			continue
		}
		l.font.DrawText(dst, l.text, gp.game.width-l.rightPadding, y, AnchorBottomRight, 1)
		y -= l.font.CharHeight()
	}
}

func (gp *Gameplay) drawScore(dst *ebiten.Image) {
	small := gp.game.tinyFont
	if !gp.game.opts.Game.ShowScore || small == nil {
		return
	}
	y := gp.game.height - small.CharHeight() - 1
	small.DrawText(dst, "Score: "+strconv.Itoa(gp.score), 1, y, AnchorTopLeft, 1)
}
