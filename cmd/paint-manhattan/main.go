// Paint Manhattan is a coloring-book game: paint each named street of a
// pixel-art map of Manhattan by dragging over it.
//
// Usage:
//
//	paint-manhattan [-config manhattan.ini] [-debug] [-fps]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/toolness/paint-manhattan"
	"github.com/toolness/paint-manhattan/analytics"
	"github.com/toolness/paint-manhattan/audio"
)

const (
	windowTitle = "Paint Manhattan"
	version     = "0.9.0"
)

func main() {
	configPath := flag.String("config", "manhattan.ini", "path to an INI file overriding the built-in settings")
	debug := flag.Bool("debug", false, "log strokes and state changes")
	showFPS := flag.Bool("fps", false, "show frame and tick rates")
	record := flag.Bool("record", false, "record the session as an animated GIF in the snapshot directory")
	flag.Parse()

	manhattan.SetDebug(*debug)

	opts, err := manhattan.LoadOptions(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *record {
		opts.Game.Record = true
	}

	audioCtx := audio.NewContext()
	assets, err := manhattan.LoadAssets(os.DirFS(opts.Assets.Dir), opts.Assets, audioCtx)
	if err != nil {
		log.Fatal(err)
	}

	stories := manhattan.NewStoryCatalog(manhattan.DefaultStories)
	stories.Validate(assets.Sheet.StreetNames())

	savePath := opts.Game.SavePath
	if savePath == "" {
		savePath = manhattan.DefaultSavePath()
	}

	bus := analytics.NewBus()
	bus.Subscribe(analytics.LogSink)

	game, err := manhattan.NewGame(assets.Sheet, opts, manhattan.Deps{
		Font:        assets.Font,
		TinyFont:    assets.TinyFont,
		SplashImage: assets.SplashImage,
		Sounds:      assets.Sounds,
		Audio:       audioCtx,
		Storage:     manhattan.NewFileStorage(savePath, opts.Game.SavegameID),
		Analytics:   bus,
		Stories:     stories,
		Version:     version,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := manhattan.Run(game, manhattan.RunConfig{
		Title:   windowTitle,
		Scale:   opts.Game.WindowScale,
		ShowFPS: *showFPS,
	}); err != nil {
		log.Fatal(err)
	}
}
