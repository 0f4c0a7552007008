package manhattan

import (
	"fmt"
	"os"
)

// globalDebug enables verbose logging across the package.
var globalDebug bool

// SetDebug turns verbose logging on or off.
func SetDebug(on bool) {
	globalDebug = on
}

// debugLogStroke prints one line per non-idle stroke to stderr.
func debugLogStroke(rp *RegionProgress, at Point, radius int, res StrokeResult) {
	if !globalDebug || res.Outcome == StrokeIdle {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[manhattan] stroke %q at (%d,%d) r=%d: %s +%d | %d left | missed: %v\n",
		rp.Name, at.X, at.Y, radius, res.Outcome, res.PixelsAdded, rp.PixelsLeft, rp.HasMissedOnce)
}

// debugLogState prints state transitions to stderr.
func debugLogState(from, to State) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[manhattan] state: %T -> %T\n", from, to)
}
