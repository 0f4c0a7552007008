package manhattan

import (
	"fmt"
	"image"
	_ "image/png" // sheet, fonts and splash are PNG
	"io"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tidwall/gjson"

	"github.com/toolness/paint-manhattan/audio"
)

// Assets are the files a Game is built from.
type Assets struct {
	Sheet       *Sheet
	Font        Font
	TinyFont    Font
	SplashImage *ebiten.Image
	Sounds      Sounds
}

// LoadAssets reads the assets named in opts from fsys. Only the sheet is
// required: missing fonts fall back to a built-in face, a missing splash
// image is skipped and missing sounds are synthesized.
func LoadAssets(fsys fs.FS, opts AssetOptions, ctx *audio.Context) (*Assets, error) {
	sheetJSON, err := fs.ReadFile(fsys, opts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("manhattan: read sheet: %w", err)
	}
	sheetImg, err := decodeImage(fsys, sheetImageName(sheetJSON, opts.Sheet))
	if err != nil {
		return nil, err
	}
	sheet, err := LoadSheet(sheetJSON, sheetImg)
	if err != nil {
		return nil, err
	}

	a := &Assets{
		Sheet:    sheet,
		Font:     loadFont(fsys, opts.Font, FontOptions),
		TinyFont: loadFont(fsys, opts.TinyFont, TinyFontOptions),
	}
	if opts.Splash != "" {
		if img, err := decodeImage(fsys, opts.Splash); err != nil {
			log.Printf("manhattan: no splash image: %v", err)
		} else {
			a.SplashImage = ebiten.NewImageFromImage(img)
		}
	}
	a.Sounds = Sounds{
		Success: audio.LoadOrSynthesize(ctx, "success", opener(fsys, opts.SuccessSound), audio.SuccessTones),
		Miss:    audio.LoadOrSynthesize(ctx, "miss", opener(fsys, opts.MissSound), audio.MissTones),
	}
	return a, nil
}

// sheetImageName returns meta.image from the sheet JSON, or the JSON file
// name with a .png extension.
func sheetImageName(sheetJSON []byte, jsonName string) string {
	if name := gjson.GetBytes(sheetJSON, "meta.image").String(); name != "" {
		return path.Join(path.Dir(jsonName), name)
	}
	return strings.TrimSuffix(jsonName, path.Ext(jsonName)) + ".png"
}

func decodeImage(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("manhattan: open %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("manhattan: decode %s: %w", name, err)
	}
	return img, nil
}

func loadFont(fsys fs.FS, name string, opts BitmapFontOptions) Font {
	if name == "" {
		return NewFaceFont()
	}
	img, err := decodeImage(fsys, name)
	if err != nil {
		log.Printf("manhattan: using built-in font: %v", err)
		return NewFaceFont()
	}
	return NewBitmapFont(ebiten.NewImageFromImage(img), opts)
}

func opener(fsys fs.FS, name string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		if name == "" {
			return nil, fs.ErrNotExist
		}
		return fsys.Open(name)
	}
}
