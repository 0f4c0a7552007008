package manhattan

import (
	_ "embed" // default.ini
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/ini.v1"
)

//go:embed default.ini
var defaultConfig []byte

// GameOptions are the [Game] settings.
type GameOptions struct {
	SkipSplash    bool   `ini:"SkipSplash"`
	ShowSkeleton  bool   `ini:"ShowSkeleton"`
	ShowStories   bool   `ini:"ShowStories"`
	StoriesOnly   bool   `ini:"StoriesOnly"`
	Narrative     bool   `ini:"Narrative"`
	ShowScore     bool   `ini:"ShowScore"`
	StartWith     string `ini:"StartWith"`
	MinStreetSize int    `ini:"MinStreetSize"`
	SavegameID    string `ini:"SavegameID"`
	SavePath      string `ini:"SavePath"`
	WindowScale   int    `ini:"WindowScale"`
	Record        bool   `ini:"Record"`
}

// PaintOptions are the [Paint] settings.
type PaintOptions struct {
	MouseRadius int `ini:"MouseRadius"`
	TouchRadius int `ini:"TouchRadius"`
}

// Radius returns the brush radius for a pointer medium.
func (p PaintOptions) Radius(m Medium) int {
	if m == MediumTouch {
		return p.TouchRadius
	}
	return p.MouseRadius
}

// AssetOptions are the [Assets] settings. File names are relative to Dir.
type AssetOptions struct {
	Dir          string `ini:"Dir"`
	Sheet        string `ini:"Sheet"`
	Font         string `ini:"Font"`
	TinyFont     string `ini:"TinyFont"`
	Splash       string `ini:"Splash"`
	SuccessSound string `ini:"SuccessSound"`
	MissSound    string `ini:"MissSound"`
	SnapshotDir  string `ini:"SnapshotDir"`
}

// Options configures a Game.
type Options struct {
	Game   GameOptions  `ini:"Game"`
	Paint  PaintOptions `ini:"Paint"`
	Score  ScoreConfig  `ini:"Score"`
	Assets AssetOptions `ini:"Assets"`

	// Headless runs the game without a frame buffer. States update but never
	// draw, which lets tests run without a graphics device.
	Headless bool `ini:"-"`
}

var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     false,
	SkipUnrecognizableLines: true,
}

// DefaultOptions returns the built-in settings.
func DefaultOptions() Options {
	opts, err := ParseOptions(nil)
	if err != nil {
		// default.ini is embedded and covered by tests.
		panic(err)
	}
	return opts
}

// ParseOptions applies INI data over the built-in settings. Nil data yields
// the defaults.
func ParseOptions(data []byte) (Options, error) {
	sources := []any{defaultConfig}
	if data != nil {
		sources = append(sources, data)
	}
	return mapOptions(sources...)
}

// LoadOptions reads the INI file at path over the built-in settings. A
// missing file yields the defaults.
func LoadOptions(path string) (Options, error) {
	if path == "" {
		return ParseOptions(nil)
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ParseOptions(nil)
	}
	return mapOptions(defaultConfig, path)
}

func mapOptions(sources ...any) (Options, error) {
	f, err := ini.LoadSources(loadOptions, sources[0], sources[1:]...)
	if err != nil {
		return Options{}, fmt.Errorf("manhattan: failed to read config: %w", err)
	}
	var opts Options
	if err := f.MapTo(&opts); err != nil {
		return Options{}, fmt.Errorf("manhattan: failed to map config: %w", err)
	}
	return opts, nil
}

// QueueOptions returns the street-queue settings.
func (o Options) QueueOptions() QueueOptions {
	return QueueOptions{
		Narrative:   o.Game.Narrative,
		StartWith:   o.Game.StartWith,
		MinSize:     o.Game.MinStreetSize,
		StoriesOnly: o.Game.StoriesOnly,
	}
}
