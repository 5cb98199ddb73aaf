// Package touch turns per-finger touch events into the whole-hand samples a
// viewport consumes, and provides an in-memory element to dispatch them on.
package touch

import (
	"golang.org/x/mobile/event/touch"

	"github.com/example/pinchcrop/internal/viewport"
)

// Dispatcher receives the samples a Tracker produces.
type Dispatcher interface {
	Dispatch(e *viewport.Event) bool
}

// Tracker follows the fingers currently on the surface. Every begin, move
// and end of a single finger becomes a sample carrying all active points,
// ordered by when each finger went down.
type Tracker struct {
	d      Dispatcher
	order  []touch.Sequence
	points map[touch.Sequence]viewport.Point
}

// NewTracker returns a Tracker dispatching to d.
func NewTracker(d Dispatcher) *Tracker {
	return &Tracker{d: d, points: make(map[touch.Sequence]viewport.Point)}
}

// Handle records e and dispatches the resulting sample. It returns the
// sample, or nil when e was ignored (a move or end for an unknown finger,
// or a duplicate begin).
func (t *Tracker) Handle(e touch.Event) *viewport.Event {
	p := viewport.Point{X: float64(e.X), Y: float64(e.Y)}
	var kind viewport.EventKind
	switch e.Type {
	case touch.TypeBegin:
		if _, ok := t.points[e.Sequence]; ok {
			return nil
		}
		t.order = append(t.order, e.Sequence)
		t.points[e.Sequence] = p
		kind = viewport.EventStart
	case touch.TypeMove:
		if _, ok := t.points[e.Sequence]; !ok {
			return nil
		}
		t.points[e.Sequence] = p
		kind = viewport.EventMove
	case touch.TypeEnd:
		if _, ok := t.points[e.Sequence]; !ok {
			return nil
		}
		t.remove(e.Sequence)
		kind = viewport.EventEnd
	default:
		return nil
	}
	ev := &viewport.Event{Kind: kind, Touches: t.Active()}
	if t.d != nil {
		t.d.Dispatch(ev)
	}
	return ev
}

// Active returns the current points in finger-down order.
func (t *Tracker) Active() []viewport.Point {
	if len(t.order) == 0 {
		return nil
	}
	out := make([]viewport.Point, 0, len(t.order))
	for _, seq := range t.order {
		out = append(out, t.points[seq])
	}
	return out
}

// Reset forgets every finger without dispatching anything.
func (t *Tracker) Reset() {
	t.order = t.order[:0]
	for seq := range t.points {
		delete(t.points, seq)
	}
}

func (t *Tracker) remove(seq touch.Sequence) {
	delete(t.points, seq)
	for i, s := range t.order {
		if s == seq {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}
