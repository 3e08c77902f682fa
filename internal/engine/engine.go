// Package engine implements a generic discrete-event core: a binary
// min-heap of time-stamped callbacks, advanced in non-decreasing `when`
// order, with ties broken by insertion order (FIFO) so replay stays
// deterministic regardless of how many events land on the same instant.
//
// The heap itself follows the idiomatic container/heap "timer heap"
// pattern: a slice implementing heap.Interface, ordered by a `when` field.
package engine

import (
	"container/heap"
	"log/slog"

	"ringrecovery/internal/simtime"
)

// Callback is invoked when its scheduled event fires. It receives the
// Simulator so it can read Now(), borrow Node(i), and Schedule further
// events — the single mutator of simulation state at any virtual instant.
type Callback[T any] func(*Simulator[T])

type event[T any] struct {
	when simtime.Time
	seq  uint64
	cb   Callback[T]
}

// eventHeap implements heap.Interface, min-ordered by (when, seq) so that
// two events scheduled for the identical virtual instant run in the order
// they were scheduled.
type eventHeap[T any] []*event[T]

func (h eventHeap[T]) Len() int { return len(h) }

func (h eventHeap[T]) Less(i, j int) bool {
	if c := h[i].when.Cmp(h[j].when); c != 0 {
		return c < 0
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap[T]) Push(x any) {
	*h = append(*h, x.(*event[T]))
}

func (h *eventHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Simulator owns the event queue, the virtual clock, and exclusive access to
// every node for the duration of Run. It is single-threaded and
// single-owner: exactly one callback executes at any instant, and that
// callback has exclusive mutable access to every node.
type Simulator[T any] struct {
	nodes   []*T
	queue   eventHeap[T]
	now     simtime.Time
	nextSeq uint64
	fired   int
}

// New builds a Simulator over the given nodes. The node slice's ownership
// effectively transfers to the simulator for the run's lifetime: callbacks
// reach nodes only via Node(i).
func New[T any](nodes []*T) *Simulator[T] {
	s := &Simulator[T]{nodes: nodes}
	heap.Init(&s.queue)
	return s
}

// Now returns the current virtual time.
func (s *Simulator[T]) Now() simtime.Time {
	return s.now
}

// Node borrows node i for mutation during a callback.
func (s *Simulator[T]) Node(i int) *T {
	return s.nodes[i]
}

// NodeCount returns how many nodes the simulator holds.
func (s *Simulator[T]) NodeCount() int {
	return len(s.nodes)
}

// Schedule enqueues cb to fire at Now()+delay. delay must be >= Zero(); the
// caller, not the engine, is responsible for that invariant (the recovery
// protocol never schedules a negative delay).
func (s *Simulator[T]) Schedule(delay simtime.Time, cb Callback[T]) {
	when := s.now.Add(delay)
	heap.Push(&s.queue, &event[T]{
		when: when,
		seq:  s.nextSeq,
		cb:   cb,
	})
	slog.Debug("event scheduled", "when", when.String(), "seq", s.nextSeq)
	s.nextSeq++
}

// Run dequeues events in non-decreasing `when` order, advancing Now() to
// each event's timestamp before invoking its callback, until the queue is
// empty. An empty queue is the simulator's normal, successful termination
// condition, not an error: a run that drains its queue has nothing left to
// do.
func (s *Simulator[T]) Run() {
	for s.queue.Len() > 0 {
		e := heap.Pop(&s.queue).(*event[T])
		s.now = e.when
		s.fired++
		slog.Debug("event fired", "now", s.now.String(), "fired", s.fired)
		e.cb(s)
	}
}

// EventsFired reports how many callbacks have executed so far, including
// any seeding events the caller scheduled before Run.
func (s *Simulator[T]) EventsFired() int {
	return s.fired
}
