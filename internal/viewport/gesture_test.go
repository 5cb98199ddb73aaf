package viewport

import "testing"

func TestStartSelectsMode(t *testing.T) {
	host := newFakeHost(300, 300)
	c := newController(t, host, 100, 100, Options{})
	if c.Mode() != ModeNone {
		t.Fatalf("initial mode = %v", c.Mode())
	}

	host.fire(EventStart, Point{1, 1})
	if c.Mode() != ModePan {
		t.Fatalf("one finger: mode = %v, want pan", c.Mode())
	}
	host.fire(EventStart, Point{1, 1}, Point{5, 5})
	if c.Mode() != ModeZoom {
		t.Fatalf("two fingers: mode = %v, want zoom", c.Mode())
	}
	host.fire(EventStart, Point{1, 1}, Point{5, 5}, Point{9, 9})
	if c.Mode() != ModeZoom {
		t.Fatalf("three fingers: mode = %v, want zoom", c.Mode())
	}
	host.fire(EventStart)
	if c.Mode() != ModeZoom {
		t.Fatalf("empty start changed mode to %v", c.Mode())
	}
}

func TestMoveKeepsSessionMode(t *testing.T) {
	host := newFakeHost(300, 300)
	c := newController(t, host, 100, 100, Options{})

	host.fire(EventStart, Point{10, 10})
	host.fire(EventMove, Point{20, 20}, Point{40, 50})
	if c.Mode() != ModePan {
		t.Fatalf("move changed mode to %v", c.Mode())
	}
	if got := c.State().Origin; got != (Point{160, 160}) {
		t.Fatalf("pan with extra finger: origin = %v, want (160,160)", got)
	}

	host.fire(EventStart, Point{0, 0}, Point{100, 100})
	before := c.State()
	host.fire(EventMove, Point{30, 30})
	if c.Mode() != ModeZoom {
		t.Fatalf("single-finger move changed mode to %v", c.Mode())
	}
	if got := c.State(); got != before {
		t.Fatalf("single-finger move in zoom mode changed state to %+v", got)
	}
	// The stale session has one point now, so nothing jumps on later moves.
	host.fire(EventMove, Point{90, 10})
	if got := c.State(); got != before {
		t.Fatalf("follow-up move changed state to %+v", got)
	}
}

func TestMovePreventsDefault(t *testing.T) {
	host := newFakeHost(100, 100)
	newController(t, host, 10, 10, Options{})
	host.fire(EventStart, Point{1, 1})
	if e := host.fire(EventMove, Point{2, 2}); !e.DefaultPrevented() {
		t.Fatalf("move did not prevent default")
	}
	if e := host.fire(EventEnd); e.DefaultPrevented() {
		t.Fatalf("end should not prevent default")
	}
}

func TestPanRebasesEverySample(t *testing.T) {
	host := newFakeHost(300, 400)
	c := newController(t, host, 600, 400, Options{})
	host.fire(EventStart, Point{100, 100})
	host.fire(EventMove, Point{110, 100})
	host.fire(EventMove, Point{120, 105})
	host.fire(EventMove, Point{115, 105})
	if got := c.State().Origin; got != (Point{165, 205}) {
		t.Fatalf("origin = %v, want (165,205)", got)
	}
}

func TestPinchZoom(t *testing.T) {
	host := newFakeHost(300, 400)
	c := newController(t, host, 600, 400, Options{})
	before := c.State()

	host.fire(EventStart, Point{100, 100}, Point{200, 150})
	host.fire(EventMove, Point{50, 100}, Point{200, 150})
	st := c.State()
	// Horizontal spread 100 -> 150, vertical 50 -> 50: the larger ratio wins.
	if st.RenderedWidth != before.RenderedWidth*1.5 || st.RenderedHeight != before.RenderedHeight*1.5 {
		t.Fatalf("after pinch out: %+v", st)
	}
	if st.Origin != before.Origin {
		t.Fatalf("pinch moved origin to %v", st.Origin)
	}

	host.fire(EventMove, Point{125, 125}, Point{200, 150})
	st2 := c.State()
	// Spread 150 -> 75 and 50 -> 25, both halve.
	if st2.RenderedWidth != st.RenderedWidth*0.5 {
		t.Fatalf("after pinch in: %+v", st2)
	}
}

func TestPinchSkipsZeroPriorDistance(t *testing.T) {
	host := newFakeHost(300, 400)
	c := newController(t, host, 600, 400, Options{})
	before := c.State()

	// Fingers on one horizontal line: no vertical distance to divide by.
	host.fire(EventStart, Point{100, 100}, Point{200, 100})
	host.fire(EventMove, Point{50, 120}, Point{250, 80})
	if got := c.State(); got != before {
		t.Fatalf("degenerate prior distance changed state to %+v", got)
	}
	// The session was rebased, so the next move compares against (50,120)-(250,80).
	host.fire(EventMove, Point{0, 140}, Point{300, 60})
	if got := c.State(); got.RenderedWidth != before.RenderedWidth*2 {
		t.Fatalf("rebased zoom: %+v", got)
	}
}

func TestPinchCollapsingAxisIsRejected(t *testing.T) {
	host := newFakeHost(300, 400)
	c := newController(t, host, 600, 400, Options{})
	before := c.State()
	host.fire(EventStart, Point{100, 100}, Point{200, 200})
	host.fire(EventMove, Point{100, 100}, Point{100, 300})
	if got := c.State(); got != before {
		t.Fatalf("zero horizontal spread applied: %+v", got)
	}
}

func TestMoveBeforeStartIsIgnored(t *testing.T) {
	host := newFakeHost(300, 400)
	c := newController(t, host, 600, 400, Options{})
	before := c.State()
	host.fire(EventMove, Point{5, 5})
	host.fire(EventMove, Point{50, 50}, Point{70, 90})
	if got := c.State(); got != before {
		t.Fatalf("move without start changed state to %+v", got)
	}
}

func TestResyncOnTouchCountChange(t *testing.T) {
	host := newFakeHost(300, 400)
	c := newController(t, host, 600, 400, Options{Resync: true})

	host.fire(EventStart, Point{0, 0}, Point{100, 100})
	host.fire(EventMove, Point{0, 0}, Point{200, 200})
	zoomed := c.State()

	// Second finger lifts without a new start: re-derive and rebase only.
	host.fire(EventMove, Point{200, 200})
	if c.Mode() != ModePan {
		t.Fatalf("mode = %v, want pan after resync", c.Mode())
	}
	if got := c.State(); got != zoomed {
		t.Fatalf("resync step rendered: %+v", got)
	}
	host.fire(EventMove, Point{210, 195})
	if got := c.State().Origin; got != (Point{zoomed.Origin.X + 10, zoomed.Origin.Y - 5}) {
		t.Fatalf("origin after resynced pan = %v", got)
	}
}

func TestHandleEventIgnoresUnknownKinds(t *testing.T) {
	c := newController(t, newFakeHost(100, 100), 10, 10, Options{})
	before := c.State()
	c.HandleEvent(nil)
	c.HandleEvent(&Event{Kind: EventKind(42), Touches: []Point{{1, 1}}})
	if got := c.State(); got != before || c.Mode() != ModeNone {
		t.Fatalf("unknown event changed controller")
	}
}

func TestStartCopiesTouches(t *testing.T) {
	host := newFakeHost(300, 400)
	c := newController(t, host, 600, 400, Options{})
	pts := []Point{{10, 10}}
	host.fire(EventStart, pts...)
	pts[0] = Point{500, 500}
	host.fire(EventMove, Point{12, 10})
	if got := c.State().Origin; got != (Point{152, 200}) {
		t.Fatalf("origin = %v; session aliased the caller's slice", got)
	}
}
