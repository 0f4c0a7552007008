package manhattan

import "fmt"

// MaskSource looks up the alpha mask of a region by name.
type MaskSource interface {
	Mask(name string) (*Mask, error)
}

// RegionProgress tracks painting of the active region.
type RegionProgress struct {
	Name string
	// PixelsLeft is the number of mask pixels still unpainted. It only
	// decreases.
	PixelsLeft int
	// HasMissedOnce is set by the first stroke that touches no mask pixel.
	HasMissedOnce bool

	mask *Mask
}

// Done reports whether every pixel of the region is painted.
func (rp *RegionProgress) Done() bool {
	return rp.PixelsLeft == 0
}

// StrokeOutcome classifies the effect of one stroke.
type StrokeOutcome uint8

const (
	StrokeIdle      StrokeOutcome = iota // region was already complete
	StrokeProgress                       // new pixels were painted
	StrokeCompleted                      // new pixels were painted and none are left
	StrokeMiss                           // brush touched no pixel of the region
	StrokeRetrace                        // brush only touched painted pixels
)

func (o StrokeOutcome) String() string {
	switch o {
	case StrokeIdle:
		return "idle"
	case StrokeProgress:
		return "progress"
	case StrokeCompleted:
		return "completed"
	case StrokeMiss:
		return "miss"
	case StrokeRetrace:
		return "retrace"
	default:
		return fmt.Sprintf("StrokeOutcome(%d)", o)
	}
}

// StrokeResult is what Painter.Stroke reports back.
type StrokeResult struct {
	Outcome     StrokeOutcome
	PixelsAdded int
	// FirstMiss is set when this stroke was the region's first miss.
	FirstMiss bool
}

// Painter applies brush strokes for the active region onto the overlay.
type Painter struct {
	masks   MaskSource
	overlay *Overlay
	palette Palette
}

// NewPainter creates a painter writing into overlay.
func NewPainter(masks MaskSource, overlay *Overlay, palette Palette) *Painter {
	return &Painter{masks: masks, overlay: overlay, palette: palette}
}

// Overlay returns the overlay the painter writes into.
func (p *Painter) Overlay() *Overlay {
	return p.overlay
}

// CountPixelsLeft returns the number of mask pixels that are still empty in
// the overlay.
func CountPixelsLeft(mask *Mask, overlay *Overlay) int {
	b := mask.Bounds().Intersect(overlayBounds(overlay))
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.Opaque(x, y) && overlay.Empty(x, y) {
				n++
			}
		}
	}
	return n
}

// Begin makes name the active region. missed carries a miss that happened
// before the game was saved and resumed.
func (p *Painter) Begin(name string, missed bool) (*RegionProgress, error) {
	mask, err := p.masks.Mask(name)
	if err != nil {
		return nil, fmt.Errorf("manhattan: begin region: %w", err)
	}
	return &RegionProgress{
		Name:          name,
		PixelsLeft:    CountPixelsLeft(mask, p.overlay),
		HasMissedOnce: missed,
		mask:          mask,
	}, nil
}

// Stroke paints a (2*radius+1)-pixel square brush centred on at, clamped to
// the canvas, and updates rp.
func (p *Painter) Stroke(rp *RegionProgress, at Point, radius int) StrokeResult {
	if rp.PixelsLeft == 0 {
		return StrokeResult{Outcome: StrokeIdle}
	}
	w, h := p.overlay.Width(), p.overlay.Height()
	x1 := max(at.X-radius, 0)
	y1 := max(at.Y-radius, 0)
	x2 := min(at.X+radius+1, w)
	y2 := min(at.Y+radius+1, h)

	added := 0
	touched := false
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			if !rp.mask.Opaque(x, y) {
				continue
			}
			touched = true
			if p.overlay.Empty(x, y) {
				p.overlay.Set(x, y, p.palette.Active)
				added++
			}
		}
	}

	switch {
	case added > 0:
		rp.PixelsLeft = max(rp.PixelsLeft-added, 0)
		if rp.PixelsLeft == 0 {
			return StrokeResult{Outcome: StrokeCompleted, PixelsAdded: added}
		}
		return StrokeResult{Outcome: StrokeProgress, PixelsAdded: added}
	case touched:
		return StrokeResult{Outcome: StrokeRetrace}
	default:
		first := !rp.HasMissedOnce
		rp.HasMissedOnce = true
		return StrokeResult{Outcome: StrokeMiss, FirstMiss: first}
	}
}

// Unhighlight recolours every painted pixel with the inactive colour and
// returns how many pixels changed. A second call changes nothing.
func (p *Painter) Unhighlight() int {
	return p.overlay.Recolor(p.palette.Inactive)
}

// Autopaint paints the named regions in the inactive colour, as when
// resuming a saved game.
func (p *Painter) Autopaint(names []string) error {
	ob := overlayBounds(p.overlay)
	for _, name := range names {
		mask, err := p.masks.Mask(name)
		if err != nil {
			return fmt.Errorf("manhattan: autopaint: %w", err)
		}
		b := mask.Bounds().Intersect(ob)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if mask.Opaque(x, y) {
					p.overlay.Set(x, y, p.palette.Inactive)
				}
			}
		}
	}
	return nil
}

// ScoreConfig holds the score rules.
type ScoreConfig struct {
	// FlawlessBonus is awarded for finishing a region without a miss.
	FlawlessBonus int `ini:"FlawlessBonus"`
	// FinishedBonus is awarded for finishing a region after a miss.
	FinishedBonus int `ini:"FinishedBonus"`
	// MissPenalty is subtracted on a region's first miss.
	MissPenalty int `ini:"MissPenalty"`
}

// DefaultScoreConfig returns the standard scoring rules.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{FlawlessBonus: 100, FinishedBonus: 10}
}

// CompletionBonus returns the bonus for finishing a region.
func (c ScoreConfig) CompletionBonus(missed bool) int {
	if missed {
		return c.FinishedBonus
	}
	return c.FlawlessBonus
}

// ApplyMiss returns score after the miss penalty, never below zero.
func (c ScoreConfig) ApplyMiss(score int) int {
	return max(score-c.MissPenalty, 0)
}
