// Package manhattan is a coloring-book game for [Ebitengine]: the player
// paints each named street of a pixel-art map of Manhattan by dragging the
// mouse or a finger over it.
//
// # Quick start
//
// Load the sprite sheet and the other assets, create a [Game] and hand it
// to [Run]:
//
//	opts, _ := manhattan.LoadOptions("manhattan.ini")
//	assets, err := manhattan.LoadAssets(os.DirFS(opts.Assets.Dir), opts.Assets, audio.NewContext())
//	if err != nil {
//		log.Fatal(err)
//	}
//	game, err := manhattan.NewGame(assets.Sheet, opts, manhattan.Deps{
//		Font:     assets.Font,
//		TinyFont: assets.TinyFont,
//		Sounds:   assets.Sounds,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(manhattan.Run(game, manhattan.RunConfig{Title: "Paint Manhattan", Scale: 4}))
//
// # Sprite sheet
//
// A [Sheet] is an Aseprite export with one frame per street plus the
// "Land and water" terrain and the "Streets" skeleton. Every other frame
// is a street whose opaque pixels form its paint mask.
//
// # Frames
//
// Nothing is redrawn on a fixed schedule. The [Pen] reports every change of
// pointer position or pressed state, and each [Timer] tick calls back into
// the game; both run one update and redraw of the active [State]. ebiten's
// Draw only scales the last frame into the window.
//
// # States
//
// [Machine] runs exactly one [State] at a time: the [Splash] title screen,
// [Gameplay], and the two story states that type out a street's history
// before it is painted. States embed a [Lifetime] so timers and buttons
// only run while the state is active.
//
// # Painting
//
// [Painter] applies square brush strokes to the paint [Overlay]. A stroke
// over pixels of the active street paints them, a stroke that touches none
// of them is a miss, and a street is finished when none of its pixels are
// left. Finished streets turn from the active to the inactive colour once
// the pointer is lifted.
//
// # Persistence and analytics
//
// Progress is saved after every finished street and after the first miss on
// a street through a [SavegameStore]. Game events go to an
// [analytics.Emitter].
//
// [Ebitengine]: https://ebitengine.org
package manhattan
