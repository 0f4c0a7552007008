package manhattan

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/toolness/paint-manhattan/analytics"
	"github.com/toolness/paint-manhattan/audio"
)

// tickDuration is the simulated time that passes per ebiten tick.
const tickDuration = time.Second / ebiten.DefaultTPS

// Sounds are the game's sound cues.
type Sounds struct {
	Success audio.SoundEffect
	Miss    audio.SoundEffect
}

// AudioUnlocker enables audio after the first user gesture.
type AudioUnlocker interface {
	Unlock()
}

// Deps are the collaborators of a Game. Nil fields get silent or in-memory
// stand-ins.
type Deps struct {
	Font        Font
	TinyFont    Font
	SplashImage *ebiten.Image
	Sounds      Sounds
	Audio       AudioUnlocker
	Storage     SavegameStore
	Analytics   analytics.Emitter
	Stories     *StoryCatalog
	Rand        *rand.Rand
	// Version is shown faintly on the splash screen.
	Version string
}

// Game is the top-level ebiten.Game. It owns the input source, the pen, the
// timer loop and the state machine, and wires them so that every pointer
// change and timer tick results in one update and redraw.
type Game struct {
	opts   Options
	sheet  *Sheet
	width  int
	height int

	font        Font
	tinyFont    Font
	splashImage *ebiten.Image
	sounds      Sounds
	audio       AudioUnlocker
	storage     SavegameStore
	analytics   analytics.Emitter
	stories     *StoryCatalog
	rng         *rand.Rand
	version     string

	input    *Input
	pen      *Pen
	loop     *Loop
	machine  *Machine
	gameplay *Gameplay
	script   *ScriptPlayer
	recorder *Recorder

	screenW, screenH int
	cursorVisible    bool
	cursorHidden     bool
	snapshotQueue    []string
	recordStop       bool
}

// NewGame creates a game over sheet. The sheet must contain the terrain
// frame, whose size becomes the canvas size.
func NewGame(sheet *Sheet, opts Options, deps Deps) (*Game, error) {
	terrain, err := sheet.Frame(TerrainFrame)
	if err != nil {
		return nil, fmt.Errorf("manhattan: new game: %w", err)
	}
	g := &Game{
		opts:          opts,
		sheet:         sheet,
		width:         terrain.Source.X,
		height:        terrain.Source.Y,
		font:          deps.Font,
		tinyFont:      deps.TinyFont,
		splashImage:   deps.SplashImage,
		sounds:        deps.Sounds,
		audio:         deps.Audio,
		storage:       deps.Storage,
		analytics:     deps.Analytics,
		stories:       deps.Stories,
		rng:           deps.Rand,
		version:       deps.Version,
		loop:          NewLoop(),
		cursorVisible: true,
	}
	if g.width <= 0 || g.height <= 0 {
		return nil, fmt.Errorf("manhattan: terrain frame is %dx%d: %w", g.width, g.height, ErrSheetSize)
	}
	if g.sounds.Success == nil {
		g.sounds.Success = audio.Silent{}
	}
	if g.sounds.Miss == nil {
		g.sounds.Miss = audio.Silent{}
	}
	if g.storage == nil {
		g.storage = &MemoryStorage{}
	}
	if g.analytics == nil {
		g.analytics = analytics.Discard{}
	}
	if g.stories == nil {
		g.stories = NewStoryCatalog(DefaultStories)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	g.input = NewInput(g.width, g.height, g.canvasRect)
	g.pen = NewPen(g.input, g.width, g.height, g.canvasRect)
	g.pen.OnChange = g.UpdateAndDraw

	var frame *ebiten.Image
	if !opts.Headless {
		frame = ebiten.NewImage(g.width, g.height)
	}
	g.machine = NewMachine(g.pen, frame)
	g.machine.OnFrameDrawn = g.onFrameDrawn
	if opts.Game.Record {
		g.recorder = NewRecorder(DefaultMaxRecordedFrames, g.loop.Now)
	}
	return g, nil
}

// Width returns the canvas width.
func (g *Game) Width() int { return g.width }

// Height returns the canvas height.
func (g *Game) Height() int { return g.height }

// Options returns the game's settings.
func (g *Game) Options() Options { return g.opts }

// Input returns the pointer event source.
func (g *Game) Input() *Input { return g.input }

// Pen returns the normalized pointer.
func (g *Game) Pen() *Pen { return g.pen }

// Loop returns the timer loop.
func (g *Game) Loop() *Loop { return g.loop }

// Machine returns the state machine.
func (g *Game) Machine() *Machine { return g.machine }

// Gameplay returns the gameplay state of the current game.
func (g *Game) Gameplay() *Gameplay { return g.gameplay }

// CurrentState returns the active state.
func (g *Game) CurrentState() State { return g.machine.Current() }

// Start restores the saved game, or builds a new street queue, and enters
// the first state.
func (g *Game) Start() error {
	sg := g.storage.Load()
	gp := GameplayFromSavegame(g, sg)
	restored := gp != nil
	if !restored {
		var err error
		if gp, err = g.newGameplay(); err != nil {
			return err
		}
	}
	g.gameplay = gp
	g.pen.Start()

	var initial State = gp
	if !g.opts.Game.SkipSplash {
		initial = NewSplash(g, gp, restored)
	}
	g.machine.Start(initial)
	if g.opts.Headless {
		g.recordMap()
	}
	return nil
}

// Stop exits the active state, detaches the pen and writes out any
// recording in progress.
func (g *Game) Stop() {
	g.machine.Stop()
	g.pen.Stop()
	g.saveRecording()
}

func (g *Game) newGameplay() (*Gameplay, error) {
	size := func(name string) int {
		m, err := g.sheet.Mask(name)
		if err != nil {
			return 0
		}
		return m.Count()
	}
	queue := BuildStreetQueue(g.sheet.StreetNames(), g.stories, g.opts.QueueOptions(), g.rng, size)
	return NewGameplay(g, queue, GameplayOptions{})
}

// Reset discards the saved game and returns to the splash screen with a
// fresh street queue.
func (g *Game) Reset() {
	g.autosave(nil)
	g.emit(analytics.Event{Name: analytics.GameReset})
	gp, err := g.newGameplay()
	if err != nil {
		log.Printf("manhattan: reset: %v", err)
		return
	}
	g.gameplay = gp
	g.ChangeState(NewSplash(g, gp, false))
}

// ChangeState switches to next.
func (g *Game) ChangeState(next State) {
	g.machine.ChangeState(next)
}

// UpdateAndDraw runs one update and redraw of the active state.
func (g *Game) UpdateAndDraw() {
	g.machine.UpdateAndDraw()
	if g.opts.Headless {
		g.recordMap()
	}
}

// SetCursorVisible shows or hides the system cursor from the next tick.
func (g *Game) SetCursorVisible(visible bool) {
	g.cursorVisible = visible
}

// CursorVisible reports whether the system cursor should be shown.
func (g *Game) CursorVisible() bool {
	return g.cursorVisible
}

// PlayScript attaches a scripted input sequence. One step is taken at the
// start of every Update.
func (g *Game) PlayScript(p *ScriptPlayer) {
	g.script = p
}

func (g *Game) autosave(sg *Savegame) {
	g.storage.Save(sg)
}

func (g *Game) emit(e analytics.Event) {
	g.analytics.Emit(e)
}

func (g *Game) unlockAudio() {
	if g.audio != nil {
		g.audio.Unlock()
	}
}

// canvasRect is where the canvas is shown on screen.
func (g *Game) canvasRect() Rect {
	if g.screenW == 0 || g.screenH == 0 {
		return Rect{Width: float64(g.width), Height: float64(g.height)}
	}
	return fitRect(g.width, g.height, float64(g.screenW), float64(g.screenH))
}

type flusher interface {
	Flush()
}

// Update implements ebiten.Game. It feeds input and timer ticks into the
// state machine.
func (g *Game) Update() error {
	if g.script != nil {
		g.script.tick(g)
	}
	if g.opts.Headless {
		g.input.processInjectedInput()
	} else {
		g.input.Poll()
	}
	g.loop.Advance(tickDuration)

	if !g.opts.Headless {
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.RequestSnapshot("manual")
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.saveRecording()
		}
		g.applyCursor()
	} else {
		g.flushSnapshots()
	}
	if f, ok := g.analytics.(flusher); ok {
		f.Flush()
	}
	return nil
}

func (g *Game) applyCursor() {
	if g.cursorHidden == !g.cursorVisible {
		return
	}
	g.cursorHidden = !g.cursorVisible
	if g.cursorVisible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
}

// Draw implements ebiten.Game. It letterboxes the last drawn frame into the
// screen.
func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.machine.Frame()
	if frame == nil {
		return
	}
	r := g.canvasRect()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width/float64(g.width), r.Height/float64(g.height))
	op.GeoM.Translate(r.X, r.Y)
	screen.DrawImage(frame, &op)
}

// Layout implements ebiten.Game. The screen matches the window and the
// canvas is scaled into it by Draw.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	g.input.SetScreenSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) onFrameDrawn(frame *ebiten.Image) {
	g.recordScreen(frame)
	g.flushSnapshots()
}
