package manhattan

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/toolness/paint-manhattan/analytics"
)

// The test map is 20×10 with three streets:
//
//	A Street  row 2, x 0..9   (10 pixels)
//	B Street  row 5, x 10..19 (10 pixels)
//	C Place   row 8, x 0..4   (5 pixels)
const (
	testW = 20
	testH = 10

	streetA = "A Street"
	streetB = "B Street"
	streetC = "C Place"
)

var testStreets = map[string][]image.Point{
	streetA: rowPixels(2, 0, 10),
	streetB: rowPixels(5, 10, 20),
	streetC: rowPixels(8, 0, 5),
}

// testFrameOrder places each frame side by side in the sheet image.
var testFrameOrder = []string{TerrainFrame, StreetsFrame, streetA, streetB, streetC}

func rowPixels(y, x1, x2 int) []image.Point {
	var pts []image.Point
	for x := x1; x < x2; x++ {
		pts = append(pts, image.Pt(x, y))
	}
	return pts
}

func testSheetImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, testW*len(testFrameOrder), testH))
	opaque := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	for i, name := range testFrameOrder {
		ox := i * testW
		switch name {
		case TerrainFrame:
			for y := 0; y < testH; y++ {
				for x := 0; x < testW; x++ {
					img.SetNRGBA(ox+x, y, color.NRGBA{R: 40, G: 90, B: 160, A: 255})
				}
			}
		case StreetsFrame:
			for _, pts := range testStreets {
				for _, p := range pts {
					img.SetNRGBA(ox+p.X, p.Y, opaque)
				}
			}
		default:
			for _, p := range testStreets[name] {
				img.SetNRGBA(ox+p.X, p.Y, opaque)
			}
		}
	}
	return img
}

func testSheetJSON() string {
	var frames []string
	for i, name := range testFrameOrder {
		frames = append(frames, fmt.Sprintf(`%q: {
      "frame": {"x": %d, "y": 0, "w": %d, "h": %d},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": %d, "h": %d},
      "sourceSize": {"w": %d, "h": %d}
    }`, name, i*testW, testW, testH, testW, testH, testW, testH))
	}
	return fmt.Sprintf(`{
  "frames": {
    %s
  },
  "meta": {"image": "manhattan.png", "size": {"w": %d, "h": %d}}
}`, strings.Join(frames, ",\n    "), testW*len(testFrameOrder), testH)
}

func testSheet(t *testing.T) *Sheet {
	t.Helper()
	s, err := LoadSheet([]byte(testSheetJSON()), testSheetImage())
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	return s
}

// countingSound counts plays.
type countingSound struct {
	plays int
}

func (s *countingSound) Play() { s.plays++ }

type testGame struct {
	*Game
	storage *MemoryStorage
	tally   *analytics.Tally
	success *countingSound
	miss    *countingSound
}

func testOptions(t *testing.T) Options {
	t.Helper()
	opts := DefaultOptions()
	opts.Headless = true
	opts.Game.SkipSplash = true
	opts.Game.ShowStories = false
	opts.Assets.SnapshotDir = t.TempDir()
	return opts
}

// newTestGame creates a headless game. A non-nil sg is stored as the saved
// game before the game starts.
func newTestGame(t *testing.T, opts Options, sg *Savegame, stories *StoryCatalog) *testGame {
	t.Helper()
	tg := &testGame{
		storage: &MemoryStorage{Savegame: sg},
		tally:   analytics.NewTally(),
		success: &countingSound{},
		miss:    &countingSound{},
	}
	if stories == nil {
		stories = NewStoryCatalog(nil)
	}
	g, err := NewGame(testSheet(t), opts, Deps{
		Sounds:    Sounds{Success: tg.success, Miss: tg.miss},
		Storage:   tg.storage,
		Analytics: tg.tally,
		Stories:   stories,
		Rand:      rand.New(rand.NewPCG(1, 2)),
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	tg.Game = g
	return tg
}

// drain runs game ticks until all injected input has been consumed.
func (tg *testGame) drain() {
	for tg.input.Pending() > 0 {
		_ = tg.Update()
	}
}

// click presses and releases the mouse at canvas pixel (x, y).
func (tg *testGame) click(x, y int) {
	tg.input.InjectClick(float64(x), float64(y))
	tg.drain()
}

func orderedSavegame(streets ...string) *Savegame {
	return &Savegame{StreetList: streets}
}
