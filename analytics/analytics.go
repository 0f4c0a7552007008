package analytics

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Name is one of the fixed analytics event names.
type Name string

const (
	GameStarted   Name = "Game started"
	GameContinued Name = "Game continued"
	StreetPainted Name = "Street painted"
	GameWon       Name = "Game won"
	GameReset     Name = "Game reset"
)

// Difficulty describes the options that make a game easier or harder.
type Difficulty struct {
	ShowStreetSkeleton bool
	NarrativeOrder     bool
}

// Event is a single analytics event. Only the fields relevant to Name are
// meaningful.
type Event struct {
	Name Name

	// Game started, Game continued.
	Difficulty Difficulty
	// Game continued.
	NextStreetIndex int

	// Street painted.
	StreetName        string
	MissedAtLeastOnce bool

	// Game won.
	StreetsPainted int
	FinalScore     int
}

// Fields returns the event's properties keyed the way the hosted analytics
// service expects them.
func (e Event) Fields() map[string]any {
	f := map[string]any{}
	switch e.Name {
	case GameStarted, GameContinued:
		f["showStreetSkeleton"] = e.Difficulty.ShowStreetSkeleton
		f["showStreetsInNarrativeOrder"] = e.Difficulty.NarrativeOrder
		if e.Name == GameContinued {
			f["nextStreetIndex"] = e.NextStreetIndex
		}
	case StreetPainted:
		f["streetName"] = e.StreetName
		f["missedAtLeastOnce"] = e.MissedAtLeastOnce
	case GameWon:
		f["streetsPainted"] = e.StreetsPainted
		f["finalScore"] = e.FinalScore
	}
	return f
}

// String formats the event as its name followed by sorted key=value pairs.
func (e Event) String() string {
	f := e.Fields()
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(string(e.Name))
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, f[k])
	}
	return b.String()
}

// Emitter accepts analytics events.
type Emitter interface {
	Emit(Event)
}

// Discard is an Emitter that drops every event.
type Discard struct{}

// Emit does nothing.
func (Discard) Emit(Event) {}

// EventType is the Donburi event type analytics events travel on.
var EventType = events.NewEventType[Event]()

// Bus queues events on a Donburi world until Flush delivers them.
type Bus struct {
	world donburi.World
}

// NewBus creates a bus with its own world.
func NewBus() *Bus {
	return NewBusForWorld(donburi.NewWorld())
}

// NewBusForWorld creates a bus publishing into an existing world.
func NewBusForWorld(world donburi.World) *Bus {
	return &Bus{world: world}
}

// World returns the bus's world.
func (b *Bus) World() donburi.World {
	return b.world
}

// Emit queues e.
func (b *Bus) Emit(e Event) {
	EventType.Publish(b.world, e)
}

// Subscribe registers fn to receive every flushed event.
func (b *Bus) Subscribe(fn func(Event)) {
	EventType.Subscribe(b.world, func(_ donburi.World, e Event) {
		fn(e)
	})
}

// Flush delivers all queued events to subscribers.
func (b *Bus) Flush() {
	EventType.ProcessEvents(b.world)
}

// LogSink logs each event.
func LogSink(e Event) {
	log.Printf("analytics: %s", e)
}

// Tally counts events by name and keeps the most recent ones for inspection.
type Tally struct {
	Counts map[Name]int
	Events []Event
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{Counts: make(map[Name]int)}
}

// Record adds e to the tally. Its signature matches Bus.Subscribe.
func (t *Tally) Record(e Event) {
	t.Counts[e.Name]++
	t.Events = append(t.Events, e)
}

// Emit records e immediately, so a Tally can also stand in for a Bus.
func (t *Tally) Emit(e Event) {
	t.Record(e)
}
