package manhattan

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

// DefaultMaxRecordedFrames caps the length of a recording.
const DefaultMaxRecordedFrames = 20000

// recordingHold is how long the last frame of a recording stays up before
// the animation loops.
const recordingHold = time.Second

// ErrEmptyRecording is returned when encoding a recording with no frames.
var ErrEmptyRecording = errors.New("manhattan: recording has no frames")

// Recorder collects drawn frames for an animated GIF. A frame identical to
// the previous one is dropped, so the earlier frame simply stays up longer.
type Recorder struct {
	maxFrames int
	now       func() time.Duration
	frames    []*image.Paletted
	shownAt   []time.Duration
	stopped   bool
}

// NewRecorder returns a recorder that keeps at most maxFrames frames and
// stamps each with now.
func NewRecorder(maxFrames int, now func() time.Duration) *Recorder {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxRecordedFrames
	}
	return &Recorder{maxFrames: maxFrames, now: now}
}

// Recording reports whether the recorder still accepts frames.
func (r *Recorder) Recording() bool {
	return !r.stopped && len(r.frames) < r.maxFrames
}

// FrameCount returns the number of frames kept.
func (r *Recorder) FrameCount() int {
	return len(r.frames)
}

// Stop ends the recording. Later frames are ignored.
func (r *Recorder) Stop() {
	r.stopped = true
}

// AddFrame records img and reports whether it was kept.
func (r *Recorder) AddFrame(img image.Image) bool {
	if !r.Recording() {
		return false
	}
	p := toPaletted(img)
	if n := len(r.frames); n > 0 && samePaletted(r.frames[n-1], p) {
		return false
	}
	r.frames = append(r.frames, p)
	r.shownAt = append(r.shownAt, r.now())
	return true
}

// Delays returns how long each frame is shown.
func (r *Recorder) Delays() []time.Duration {
	d := make([]time.Duration, len(r.shownAt))
	for i := range r.shownAt {
		if i+1 < len(r.shownAt) {
			d[i] = r.shownAt[i+1] - r.shownAt[i]
		} else {
			d[i] = recordingHold
		}
	}
	return d
}

// Encode writes the recording to w as a looping animated GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrEmptyRecording
	}
	anim := &gif.GIF{Image: r.frames, Delay: make([]int, len(r.frames))}
	for i, d := range r.Delays() {
		// GIF delays are in hundredths of a second.
		anim.Delay[i] = max(int((d+5*time.Millisecond)/(10*time.Millisecond)), 1)
	}
	return gif.EncodeAll(w, anim)
}

// ExportRecording writes r as a timestamped GIF in dir and returns its path.
func ExportRecording(dir string, r *Recorder) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("manhattan: mkdir %s: %w", dir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, stamp+"_recording.gif")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("manhattan: write %s: %w", path, err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return "", fmt.Errorf("manhattan: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("manhattan: write %s: %w", path, err)
	}
	return path, nil
}

// toPaletted converts img with an exact palette of its colours. Images with
// more than 256 colours fall back to the Plan 9 palette.
func toPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(b, nil)
	pal := make(color.Palette, 0, 256)
	index := make(map[color.RGBA]uint8)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			i, ok := index[c]
			if !ok {
				if len(pal) == 256 {
					dst = image.NewPaletted(b, palette.Plan9)
					xdraw.Draw(dst, b, img, b.Min, xdraw.Src)
					return dst
				}
				i = uint8(len(pal))
				index[c] = i
				pal = append(pal, c)
			}
			dst.Pix[dst.PixOffset(x, y)] = i
		}
	}
	dst.Palette = pal
	return dst
}

func samePaletted(a, b *image.Paletted) bool {
	if a.Rect != b.Rect || len(a.Palette) != len(b.Palette) {
		return false
	}
	for i := range a.Palette {
		if a.Palette[i] != b.Palette[i] {
			return false
		}
	}
	return bytes.Equal(a.Pix, b.Pix)
}

// Recorder returns the active recorder, or nil when the game is not being
// recorded.
func (g *Game) Recorder() *Recorder {
	return g.recorder
}

// StopRecording ends the recording after the next drawn frame and writes
// it to the snapshot directory.
func (g *Game) StopRecording() {
	if g.recorder != nil && g.recorder.Recording() {
		g.recordStop = true
	}
}

// recordScreen reads back a drawn frame.
func (g *Game) recordScreen(frame *ebiten.Image) {
	if g.recorder == nil || !g.recorder.Recording() {
		return
	}
	img := image.NewRGBA(frame.Bounds())
	frame.ReadPixels(img.Pix)
	g.recordFrame(img)
}

// recordMap records the painted map when there is no frame buffer.
func (g *Game) recordMap() {
	if g.recorder == nil || !g.recorder.Recording() {
		return
	}
	img, err := g.paintedMap()
	if err != nil {
		return
	}
	g.recordFrame(img)
}

func (g *Game) recordFrame(img image.Image) {
	g.recorder.AddFrame(img)
	if g.recordStop || !g.recorder.Recording() {
		g.saveRecording()
	}
}

func (g *Game) saveRecording() {
	r := g.recorder
	g.recordStop = false
	if r == nil || r.stopped {
		return
	}
	r.Stop()
	dir := g.opts.Assets.SnapshotDir
	if dir == "" || r.FrameCount() == 0 {
		return
	}
	path, err := ExportRecording(dir, r)
	if err != nil {
		log.Printf("manhattan: recording: %v", err)
		return
	}
	log.Printf("manhattan: wrote %s (%d frames)", path, r.FrameCount())
}
