package manhattan

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	snapshotScale   = 4
	snapshotCaption = 20
)

// RequestSnapshot queues a PNG export of the painted map. Snapshots are
// written after the next drawn frame, or on the next Update when headless.
func (g *Game) RequestSnapshot(label string) {
	g.snapshotQueue = append(g.snapshotQueue, label)
}

// flushSnapshots writes every queued snapshot to the snapshot directory.
func (g *Game) flushSnapshots() {
	if len(g.snapshotQueue) == 0 {
		return
	}
	labels := g.snapshotQueue
	g.snapshotQueue = nil

	dir := g.opts.Assets.SnapshotDir
	if dir == "" || g.gameplay == nil {
		return
	}
	img, err := g.Snapshot()
	if err != nil {
		log.Printf("manhattan: snapshot: %v", err)
		return
	}
	for _, label := range labels {
		path, err := ExportSnapshot(dir, label, img)
		if err != nil {
			log.Printf("manhattan: snapshot: %v", err)
			continue
		}
		if globalDebug {
			log.Printf("manhattan: wrote %s", path)
		}
	}
}

// Snapshot renders the terrain and the paint overlay, enlarged with hard
// pixel edges, above a caption with the game's progress.
func (g *Game) Snapshot() (image.Image, error) {
	gp := g.gameplay
	base, err := g.paintedMap()
	if err != nil {
		return nil, fmt.Errorf("manhattan: snapshot: %w", err)
	}

	w, h := g.width*snapshotScale, g.height*snapshotScale
	scaled := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Rect, base, base.Rect, xdraw.Src, nil)

	dc := gg.NewContext(w, h+snapshotCaption)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.DrawImage(scaled, 0, 0)
	face, err := captionFace()
	if err != nil {
		return nil, fmt.Errorf("manhattan: snapshot: %w", err)
	}
	dc.SetFontFace(face)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(snapshotCaptionText(gp), float64(w)/2, float64(h)+snapshotCaption/2, 0.5, 0.5)
	return dc.Image(), nil
}

// paintedMap composes the terrain and the paint overlay at canvas size.
func (g *Game) paintedMap() (*image.NRGBA, error) {
	gp := g.gameplay
	if gp == nil {
		return nil, errors.New("no game in progress")
	}
	terrain, err := g.sheet.Frame(TerrainFrame)
	if err != nil {
		return nil, err
	}
	terrainPix, err := g.sheet.FramePixels(TerrainFrame)
	if err != nil {
		return nil, err
	}
	base := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	xdraw.Draw(base, terrain.Bounds(), terrainPix, terrainPix.Rect.Min, xdraw.Over)
	xdraw.Draw(base, base.Rect, gp.overlay.Pixels(), image.Point{}, xdraw.Over)
	return base, nil
}

func captionFace() (font.Face, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: 12, DPI: 72, Hinting: font.HintingFull}), nil
}

func snapshotCaptionText(gp *Gameplay) string {
	painted := gp.NextStreetIndex()
	if cur := gp.Current(); cur != nil && !cur.Done() {
		painted--
	}
	return fmt.Sprintf("%d of %d streets painted, score %d", painted, len(gp.Streets()), gp.Score())
}

// ExportSnapshot writes img as a timestamped PNG in dir and returns its
// path.
func ExportSnapshot(dir, label string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("manhattan: mkdir %s: %w", dir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	if err := gg.SavePNG(path, img); err != nil {
		return "", fmt.Errorf("manhattan: write %s: %w", path, err)
	}
	return path, nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
