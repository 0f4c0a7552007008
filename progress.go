package manhattan

import (
	"log"
	"math/rand/v2"
	"slices"
)

// Savegame is the persisted progress of a game in progress.
type Savegame struct {
	StreetList      []string `json:"streetList"`
	NextStreetIndex int      `json:"nextStreetIndex"`
	Score           int      `json:"score"`
	// NextStreetHasMissedOnce carries a miss on the street at
	// NextStreetIndex across a reload.
	NextStreetHasMissedOnce *bool `json:"nextStreetHasMissedOnce,omitempty"`
}

// QueueOptions controls how the street queue of a new game is built.
type QueueOptions struct {
	// Narrative puts storied streets first, in narrative order.
	Narrative bool
	// StartWith names the first street. When empty, the first storied
	// street is moved to the front instead.
	StartWith string
	// MinSize drops streets with fewer paintable pixels.
	MinSize int
	// StoriesOnly drops streets without a story.
	StoriesOnly bool
}

// BuildStreetQueue orders names for a new game: shuffled, then reordered
// and filtered by opts. size reports a street's paintable pixel count and is
// only called when MinSize is positive.
func BuildStreetQueue(names []string, stories *StoryCatalog, opts QueueOptions, rng *rand.Rand, size func(string) int) []string {
	queue := slices.Clone(names)
	shuffle(queue, rng)

	if opts.Narrative {
		// Stories for streets missing from the sheet are skipped.
		narrative := slices.DeleteFunc(stories.NarrativeOrder(), func(name string) bool {
			return !slices.Contains(names, name)
		})
		queue = uniqueStrings(append(narrative, queue...))
	}
	if opts.StartWith != "" {
		queue = moveToStart(queue, opts.StartWith)
	} else {
		for _, name := range queue {
			if stories.Has(name) {
				queue = moveToStart(queue, name)
				break
			}
		}
	}
	if opts.MinSize > 0 && size != nil {
		queue = slices.DeleteFunc(queue, func(name string) bool {
			return size(name) < opts.MinSize
		})
	}
	if opts.StoriesOnly {
		queue = slices.DeleteFunc(queue, func(name string) bool {
			return !stories.Has(name)
		})
	}
	return queue
}

func shuffle(s []string, rng *rand.Rand) {
	swap := func(i, j int) { s[i], s[j] = s[j], s[i] }
	if rng == nil {
		rand.Shuffle(len(s), swap)
		return
	}
	rng.Shuffle(len(s), swap)
}

// moveToStart moves item to the front of s. A missing item is logged and s
// is returned unchanged.
func moveToStart(s []string, item string) []string {
	i := slices.Index(s, item)
	if i < 0 {
		log.Printf("manhattan: %q is not in the street list", item)
		return s
	}
	copy(s[1:i+1], s[:i])
	s[0] = item
	return s
}

// uniqueStrings drops every repeat after an item's first occurrence.
func uniqueStrings(s []string) []string {
	seen := make(map[string]struct{}, len(s))
	out := s[:0]
	for _, item := range s {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
