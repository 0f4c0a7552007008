package manhattan

import (
	"math/rand/v2"
	"slices"
	"testing"
)

var queueNames = []string{"A", "B", "C", "D", "E"}

func isPermutation(got, want []string) bool {
	a, b := slices.Clone(got), slices.Clone(want)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(3, 4))
}

func TestBuildStreetQueueShuffles(t *testing.T) {
	q := BuildStreetQueue(queueNames, nil, QueueOptions{}, testRand(), nil)
	if !isPermutation(q, queueNames) {
		t.Errorf("queue %v is not a permutation of %v", q, queueNames)
	}
	if again := BuildStreetQueue(queueNames, nil, QueueOptions{}, testRand(), nil); !slices.Equal(q, again) {
		t.Errorf("same seed gave %v and %v", q, again)
	}
	if !slices.Equal(queueNames, []string{"A", "B", "C", "D", "E"}) {
		t.Errorf("input was modified: %v", queueNames)
	}
}

func TestBuildStreetQueue(t *testing.T) {
	stories := NewStoryCatalog([]Story{{Name: "D"}, {Name: "Missing"}, {Name: "B"}})
	sizes := map[string]int{"A": 3, "B": 10, "C": 1, "D": 8, "E": 5}
	size := func(name string) int { return sizes[name] }

	tests := []struct {
		name   string
		opts   QueueOptions
		prefix []string
		all    []string
	}{
		{"storied street first", QueueOptions{}, nil, queueNames},
		{"start with", QueueOptions{StartWith: "C"}, []string{"C"}, queueNames},
		{"start with unknown", QueueOptions{StartWith: "Q"}, nil, queueNames},
		{"narrative", QueueOptions{Narrative: true}, []string{"D", "B"}, queueNames},
		{"narrative start with", QueueOptions{Narrative: true, StartWith: "E"}, []string{"E", "D", "B"}, queueNames},
		{"min size", QueueOptions{MinSize: 5}, nil, []string{"B", "D", "E"}},
		{"stories only", QueueOptions{StoriesOnly: true}, nil, []string{"B", "D"}},
	}
	for _, tt := range tests {
		q := BuildStreetQueue(queueNames, stories, tt.opts, testRand(), size)
		if !isPermutation(q, tt.all) {
			t.Errorf("%s: queue %v is not a permutation of %v", tt.name, q, tt.all)
			continue
		}
		if tt.prefix != nil && !slices.Equal(q[:len(tt.prefix)], tt.prefix) {
			t.Errorf("%s: queue %v does not start with %v", tt.name, q, tt.prefix)
		}
		if tt.opts.StartWith == "" && !stories.Has(q[0]) {
			t.Errorf("%s: first street %q has no story", tt.name, q[0])
		}
	}
}

func TestMoveToStart(t *testing.T) {
	tests := []struct {
		in   []string
		item string
		want []string
	}{
		{[]string{"a", "b", "c", "d"}, "c", []string{"c", "a", "b", "d"}},
		{[]string{"a", "b"}, "a", []string{"a", "b"}},
		{[]string{"a", "b"}, "z", []string{"a", "b"}},
	}
	for _, tt := range tests {
		if got := moveToStart(slices.Clone(tt.in), tt.item); !slices.Equal(got, tt.want) {
			t.Errorf("moveToStart(%v, %q) = %v, want %v", tt.in, tt.item, got, tt.want)
		}
	}
}

func TestUniqueStrings(t *testing.T) {
	got := uniqueStrings([]string{"a", "b", "a", "c", "b"})
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("uniqueStrings = %v, want %v", got, want)
	}
}
