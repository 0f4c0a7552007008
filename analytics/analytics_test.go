package analytics

import (
	"testing"

	"github.com/yohamta/donburi"
)

func TestBusDeliversOnFlush(t *testing.T) {
	bus := NewBus()
	tally := NewTally()
	bus.Subscribe(tally.Record)

	bus.Emit(Event{Name: GameStarted})
	bus.Emit(Event{Name: StreetPainted, StreetName: "Pearl Street"})

	if len(tally.Events) != 0 {
		t.Fatalf("events delivered before Flush: %d", len(tally.Events))
	}
	bus.Flush()

	if len(tally.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(tally.Events))
	}
	if tally.Events[1].StreetName != "Pearl Street" {
		t.Errorf("event 1: %+v", tally.Events[1])
	}
	if tally.Counts[GameStarted] != 1 || tally.Counts[StreetPainted] != 1 {
		t.Errorf("counts = %v", tally.Counts)
	}

	bus.Flush()
	if len(tally.Events) != 2 {
		t.Errorf("second Flush redelivered events: %d", len(tally.Events))
	}
}

func TestBusMultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	bus := NewBusForWorld(world)

	var count1, count2 int
	bus.Subscribe(func(Event) { count1++ })
	bus.Subscribe(func(Event) { count2++ })

	bus.Emit(Event{Name: GameReset})
	bus.Flush()

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
	if bus.World() != world {
		t.Error("World() should return the world the bus was created with")
	}
}

func TestEventFields(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  map[string]any
	}{
		{
			name:  "started",
			event: Event{Name: GameStarted, Difficulty: Difficulty{ShowStreetSkeleton: true}},
			want: map[string]any{
				"showStreetSkeleton":          true,
				"showStreetsInNarrativeOrder": false,
			},
		},
		{
			name:  "continued",
			event: Event{Name: GameContinued, NextStreetIndex: 3},
			want: map[string]any{
				"showStreetSkeleton":          false,
				"showStreetsInNarrativeOrder": false,
				"nextStreetIndex":             3,
			},
		},
		{
			name:  "painted",
			event: Event{Name: StreetPainted, StreetName: "Wall Street", MissedAtLeastOnce: true},
			want:  map[string]any{"streetName": "Wall Street", "missedAtLeastOnce": true},
		},
		{
			name:  "won",
			event: Event{Name: GameWon, StreetsPainted: 3, FinalScore: 210},
			want:  map[string]any{"streetsPainted": 3, "finalScore": 210},
		},
		{
			name:  "reset",
			event: Event{Name: GameReset, StreetName: "ignored"},
			want:  map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.event.Fields()
			if len(got) != len(tt.want) {
				t.Fatalf("Fields() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Fields()[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestEventString(t *testing.T) {
	e := Event{Name: GameWon, StreetsPainted: 2, FinalScore: 110}
	want := "Game won finalScore=110 streetsPainted=2"
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTallyEmit(t *testing.T) {
	var e Emitter = NewTally()
	e.Emit(Event{Name: GameWon})
	if got := e.(*Tally).Counts[GameWon]; got != 1 {
		t.Errorf("Counts[GameWon] = %d, want 1", got)
	}
	Discard{}.Emit(Event{Name: GameWon})
}
