package manhattan

import (
	"strings"
	"testing"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name, data, substr string
	}{
		{"invalid json", `{"steps": [`, "load script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown step", `{"steps": [{"do": "tap"}, {"do": "hover"}]}`, `step 1: unknown step "hover"`},
		{"unknown medium", `{"steps": [{"do": "tap", "medium": "pen"}]}`, `step 0: unknown medium "pen"`},
		{"short stroke", `{"steps": [{"do": "stroke", "path": [[1, 1]]}]}`, "at least two points"},
	}
	for _, tt := range tests {
		_, err := LoadScript([]byte(tt.data))
		if err == nil || !strings.Contains(err.Error(), tt.substr) {
			t.Errorf("%s: err = %v, want it to mention %q", tt.name, err, tt.substr)
		}
	}
}

func TestScriptPause(t *testing.T) {
	p, err := LoadScript([]byte(`{"steps": [
		{"do": "pause", "ticks": 3},
		{"do": "tap", "medium": "touch", "at": [1, 1]}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	tg := newTestGame(t, testOptions(t), nil, nil)

	ticks := 0
	for !p.Finished() && ticks < 20 {
		p.tick(tg.Game)
		tg.input.processInjectedInput()
		ticks++
	}
	if !p.Finished() {
		t.Fatal("script did not finish")
	}
	// Three paused ticks, one to queue the tap, one more while it drains,
	// and a last one that finds nothing left to play.
	if ticks != 6 {
		t.Errorf("ticks = %d, want 6", ticks)
	}
}

func TestInjectPath(t *testing.T) {
	in := NewInput(testW, testH, func() Rect { return Rect{Width: testW, Height: testH} })
	in.injectPath([][2]float64{{0, 0}, {4, 0}, {4, 4}}, 4, true)
	want := []syntheticPointerEvent{
		{x: 0, y: 0, kind: injectPress, touch: true},
		{x: 4 * 2.0 / 3, y: 0, kind: injectMove, touch: true},
		{x: 4, y: 4 * 1.0 / 3, kind: injectMove, touch: true},
		{x: 4, y: 4, kind: injectRelease, touch: true},
	}
	if len(in.injectQueue) != len(want) {
		t.Fatalf("queued %d events, want %d", len(in.injectQueue), len(want))
	}
	for i, e := range in.injectQueue {
		w := want[i]
		if e.kind != w.kind || e.touch != w.touch || !near(e.x, w.x) || !near(e.y, w.y) {
			t.Errorf("event %d = %+v, want %+v", i, e, w)
		}
	}
}

func near(a, b float64) bool {
	d := a - b
	return d > -1e-9 && d < 1e-9
}
