package engine

import (
	"testing"

	"ringrecovery/internal/simtime"
)

type counter struct {
	n int
}

func TestRunOrdersByTimeThenInsertion(t *testing.T) {
	nodes := []*counter{{}}
	sim := New(nodes)

	var order []string
	sim.Schedule(simtime.Seconds(2), func(s *Simulator[counter]) {
		order = append(order, "b@2-first")
	})
	sim.Schedule(simtime.Seconds(1), func(s *Simulator[counter]) {
		order = append(order, "a@1")
	})
	sim.Schedule(simtime.Seconds(2), func(s *Simulator[counter]) {
		order = append(order, "b@2-second")
	})

	sim.Run()

	want := []string{"a@1", "b@2-first", "b@2-second"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestNowAdvancesMonotonically(t *testing.T) {
	nodes := []*counter{{}}
	sim := New(nodes)

	var lastSeen []simtime.Time
	for i := int64(5); i >= 0; i-- {
		delay := simtime.Seconds(i)
		sim.Schedule(delay, func(s *Simulator[counter]) {
			lastSeen = append(lastSeen, s.Now())
		})
	}
	sim.Run()

	for i := 1; i < len(lastSeen); i++ {
		if lastSeen[i].Less(lastSeen[i-1]) {
			t.Fatalf("now went backwards: %v then %v", lastSeen[i-1], lastSeen[i])
		}
	}
}

func TestCallbackCanScheduleMore(t *testing.T) {
	nodes := []*counter{{}}
	sim := New(nodes)

	depth := 0
	var step Callback[counter]
	step = func(s *Simulator[counter]) {
		depth++
		s.Node(0).n++
		if depth < 5 {
			s.Schedule(simtime.Zero(), step)
		}
	}
	sim.Schedule(simtime.Zero(), step)
	sim.Run()

	if nodes[0].n != 5 {
		t.Fatalf("expected 5 chained increments, got %d", nodes[0].n)
	}
	if sim.EventsFired() != 5 {
		t.Fatalf("expected 5 fired events, got %d", sim.EventsFired())
	}
}

func TestEmptyQueueTerminatesImmediately(t *testing.T) {
	nodes := []*counter{{}}
	sim := New(nodes)
	sim.Run()
	if sim.EventsFired() != 0 {
		t.Fatalf("expected no events fired on an empty queue")
	}
	if sim.Now().Cmp(simtime.Zero()) != 0 {
		t.Fatalf("expected time to remain zero")
	}
}
