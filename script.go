package manhattan

import (
	"encoding/json"
	"fmt"
)

// scriptFile is the JSON form of a script. Positions are canvas pixels.
//
//	{"steps": [
//	  {"do": "tap", "at": [20, 30]},
//	  {"do": "stroke", "medium": "touch", "path": [[0, 5], [20, 5], [40, 9]], "ticks": 10},
//	  {"do": "pause", "ticks": 30},
//	  {"do": "snapshot", "label": "after-stroke"}
//	]}
type scriptFile struct {
	Steps []struct {
		Do     string       `json:"do"`
		Medium string       `json:"medium,omitempty"`
		At     [2]float64   `json:"at"`
		Path   [][2]float64 `json:"path,omitempty"`
		Ticks  int          `json:"ticks,omitempty"`
		Label  string       `json:"label,omitempty"`
	} `json:"steps"`
}

// cue is one tick's worth of script: it may queue pointer events, request a
// snapshot, or do nothing.
type cue func(g *Game)

// ScriptPlayer feeds a recorded sequence of taps, strokes, pauses and
// snapshots into a game, one cue per tick. A cue is only played once the
// pointer events of the previous one have been consumed.
type ScriptPlayer struct {
	cues     []cue
	finished bool
}

// LoadScript compiles a JSON script into a player.
func LoadScript(data []byte) (*ScriptPlayer, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("manhattan: load script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("manhattan: load script: no steps")
	}
	p := &ScriptPlayer{}
	for i, st := range f.Steps {
		touch := false
		switch st.Medium {
		case "", "mouse":
		case "touch":
			touch = true
		default:
			return nil, fmt.Errorf("manhattan: load script: step %d: unknown medium %q", i, st.Medium)
		}

		switch st.Do {
		case "tap":
			at := st.At
			if touch {
				p.cues = append(p.cues, func(g *Game) { g.input.injectPath([][2]float64{at}, 2, true) })
			} else {
				p.cues = append(p.cues, func(g *Game) { g.input.InjectClick(at[0], at[1]) })
			}
		case "stroke":
			if len(st.Path) < 2 {
				return nil, fmt.Errorf("manhattan: load script: step %d: stroke needs at least two points", i)
			}
			path, ticks := st.Path, max(st.Ticks, len(st.Path))
			p.cues = append(p.cues, func(g *Game) { g.input.injectPath(path, ticks, touch) })
		case "pause":
			for range max(st.Ticks, 1) {
				p.cues = append(p.cues, func(*Game) {})
			}
		case "snapshot":
			label := st.Label
			p.cues = append(p.cues, func(g *Game) { g.RequestSnapshot(label) })
		default:
			return nil, fmt.Errorf("manhattan: load script: step %d: unknown step %q", i, st.Do)
		}
	}
	return p, nil
}

// Finished reports whether every cue has played and its input has been
// consumed.
func (p *ScriptPlayer) Finished() bool {
	return p.finished
}

func (p *ScriptPlayer) tick(g *Game) {
	if p.finished || g.input.Pending() > 0 {
		return
	}
	if len(p.cues) == 0 {
		p.finished = true
		return
	}
	next := p.cues[0]
	p.cues = p.cues[1:]
	next(g)
}
