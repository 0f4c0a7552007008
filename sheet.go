package manhattan

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

// Frame names with a fixed role in the sprite sheet. Every other frame is a
// street mask.
const (
	TerrainFrame = "Land and water"
	StreetsFrame = "Streets"
)

// ignoredFrames are authoring aids that are neither terrain nor streets.
var ignoredFrames = []string{"Reference image"}

var (
	// ErrFrameNotFound is returned when a named frame is absent from a sheet.
	ErrFrameNotFound = errors.New("frame not found")
	// ErrSheetSize is returned when the sheet image does not match its metadata.
	ErrSheetSize = errors.New("sheet image size mismatch")
)

// Frame is the placement of one named image within the sheet.
type Frame struct {
	// Rect is the frame's rectangle inside the sheet image.
	Rect image.Rectangle
	// Offset is where the frame's top-left lands on the canvas when the
	// exporter trimmed transparent borders. Untrimmed frames have a zero offset.
	Offset image.Point
	// Source is the untrimmed canvas size of the frame.
	Source image.Point
}

// Bounds returns the frame's rectangle in canvas coordinates.
func (f Frame) Bounds() image.Rectangle {
	return image.Rectangle{Min: f.Offset, Max: f.Offset.Add(f.Rect.Size())}
}

// Sheet is an Aseprite/TexturePacker sprite sheet holding the terrain, the
// street skeleton and one alpha mask per street.
type Sheet struct {
	pixels *image.NRGBA
	image  *ebiten.Image
	frames map[string]Frame
	images map[string]*ebiten.Image
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Filename         string   `json:"filename"`
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonMeta struct {
	Image string    `json:"image"`
	Size  *jsonSize `json:"size"`
}

// LoadSheet parses sheet metadata exported by Aseprite (hash or array
// "frames" form) and pairs it with the decoded sheet image. The image size
// must match meta.size and every frame must lie inside the image.
func LoadSheet(jsonData []byte, img image.Image) (*Sheet, error) {
	var probe struct {
		Frames json.RawMessage `json:"frames"`
		Meta   jsonMeta        `json:"meta"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("manhattan: failed to parse sheet JSON: %w", err)
	}
	if probe.Frames == nil {
		return nil, fmt.Errorf("manhattan: sheet JSON has no \"frames\" key")
	}

	frames, err := parseSheetFrames(probe.Frames)
	if err != nil {
		return nil, err
	}

	size := img.Bounds().Size()
	if m := probe.Meta.Size; m != nil && (m.W != size.X || m.H != size.Y) {
		return nil, fmt.Errorf("manhattan: image is %dx%d, metadata says %dx%d: %w",
			size.X, size.Y, m.W, m.H, ErrSheetSize)
	}

	s := &Sheet{
		pixels: toNRGBA(img),
		frames: make(map[string]Frame, len(frames)),
		images: make(map[string]*ebiten.Image),
	}
	sheetRect := s.pixels.Rect
	for _, f := range frames {
		if f.Rotated {
			return nil, fmt.Errorf("manhattan: frame %q is rotated, which is unsupported", f.Filename)
		}
		fr := Frame{
			Rect:   image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H),
			Offset: image.Pt(f.SpriteSourceSize.X, f.SpriteSourceSize.Y),
			Source: image.Pt(f.SourceSize.W, f.SourceSize.H),
		}
		if fr.Source == (image.Point{}) {
			fr.Source = fr.Rect.Size()
		}
		if !fr.Rect.In(sheetRect) {
			return nil, fmt.Errorf("manhattan: frame %q %v lies outside the %dx%d sheet: %w",
				f.Filename, fr.Rect, size.X, size.Y, ErrSheetSize)
		}
		if _, dup := s.frames[f.Filename]; dup && globalDebug {
			log.Printf("manhattan: duplicate sheet frame %q", f.Filename)
		}
		s.frames[f.Filename] = fr
	}
	return s, nil
}

// parseSheetFrames accepts both {"name": {...}} and [{"filename": ...}].
func parseSheetFrames(raw json.RawMessage) ([]jsonFrame, error) {
	var hash map[string]jsonFrame
	if err := json.Unmarshal(raw, &hash); err == nil {
		out := make([]jsonFrame, 0, len(hash))
		for name, f := range hash {
			f.Filename = name
			out = append(out, f)
		}
		return out, nil
	}
	var arr []jsonFrame
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("manhattan: failed to parse sheet frames: %w", err)
	}
	return arr, nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Rect, img, b.Min, xdraw.Src)
	return dst
}

// Frame returns the named frame.
func (s *Sheet) Frame(name string) (Frame, error) {
	f, ok := s.frames[name]
	if !ok {
		return Frame{}, fmt.Errorf("manhattan: frame %q: %w", name, ErrFrameNotFound)
	}
	return f, nil
}

// Has reports whether the sheet contains the named frame.
func (s *Sheet) Has(name string) bool {
	_, ok := s.frames[name]
	return ok
}

// FrameNames returns all frame names in sorted order.
func (s *Sheet) FrameNames() []string {
	names := make([]string, 0, len(s.frames))
	for name := range s.frames {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// StreetNames returns the names of all street frames in sorted order.
func (s *Sheet) StreetNames() []string {
	var names []string
	for _, name := range s.FrameNames() {
		if name == TerrainFrame || name == StreetsFrame || slices.Contains(ignoredFrames, name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// AreStreetNamesValid reports whether every name is a frame of the sheet.
func (s *Sheet) AreStreetNamesValid(names []string) bool {
	for _, name := range names {
		if !s.Has(name) {
			return false
		}
	}
	return true
}

// Mask returns the alpha mask of the named frame.
func (s *Sheet) Mask(name string) (*Mask, error) {
	f, err := s.Frame(name)
	if err != nil {
		return nil, err
	}
	return &Mask{pix: s.pixels, frame: f}, nil
}

// FrameImage returns the named frame as an ebiten sub-image.
func (s *Sheet) FrameImage(name string) (*ebiten.Image, error) {
	if img, ok := s.images[name]; ok {
		return img, nil
	}
	f, err := s.Frame(name)
	if err != nil {
		return nil, err
	}
	if s.image == nil {
		s.image = ebiten.NewImageFromImage(s.pixels)
	}
	img := s.image.SubImage(f.Rect).(*ebiten.Image)
	s.images[name] = img
	return img, nil
}

// FramePixels returns the named frame as a CPU-side image in sheet
// coordinates.
func (s *Sheet) FramePixels(name string) (*image.NRGBA, error) {
	f, err := s.Frame(name)
	if err != nil {
		return nil, err
	}
	return s.pixels.SubImage(f.Rect).(*image.NRGBA), nil
}

// DrawFrame draws the named frame onto dst with its canvas origin at (x, y).
func (s *Sheet) DrawFrame(dst *ebiten.Image, name string, x, y int, alpha float32) error {
	img, err := s.FrameImage(name)
	if err != nil {
		return err
	}
	f := s.frames[name]
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(x+f.Offset.X), float64(y+f.Offset.Y))
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(alpha)
	}
	dst.DrawImage(img, &op)
	return nil
}

// Mask reads one frame of the sheet as an alpha mask in canvas coordinates.
type Mask struct {
	pix   *image.NRGBA
	frame Frame
}

// Bounds returns the canvas rectangle that may contain opaque pixels.
func (m *Mask) Bounds() image.Rectangle {
	return m.frame.Bounds()
}

// Opaque reports whether the canvas pixel (x, y) belongs to the mask.
func (m *Mask) Opaque(x, y int) bool {
	sx := x - m.frame.Offset.X
	sy := y - m.frame.Offset.Y
	if sx < 0 || sy < 0 || sx >= m.frame.Rect.Dx() || sy >= m.frame.Rect.Dy() {
		return false
	}
	i := m.pix.PixOffset(m.frame.Rect.Min.X+sx, m.frame.Rect.Min.Y+sy)
	return m.pix.Pix[i+3] > emptyAlpha
}

// Count returns the number of opaque pixels in the mask.
func (m *Mask) Count() int {
	b := m.Bounds()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.Opaque(x, y) {
				n++
			}
		}
	}
	return n
}
