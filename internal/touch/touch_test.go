package touch

import (
	"image"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/mobile/event/touch"

	"github.com/example/pinchcrop/internal/viewport"
)

type recorder struct {
	events []*viewport.Event
}

func (r *recorder) Dispatch(e *viewport.Event) bool {
	r.events = append(r.events, e)
	return true
}

func TestTrackerBuildsTouchLists(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec)

	tr.Handle(touch.Event{X: 1, Y: 2, Sequence: 7, Type: touch.TypeBegin})
	tr.Handle(touch.Event{X: 10, Y: 20, Sequence: 3, Type: touch.TypeBegin})
	tr.Handle(touch.Event{X: 11, Y: 21, Sequence: 3, Type: touch.TypeMove})
	tr.Handle(touch.Event{X: 1, Y: 2, Sequence: 7, Type: touch.TypeEnd})
	tr.Handle(touch.Event{X: 11, Y: 21, Sequence: 3, Type: touch.TypeEnd})

	want := []struct {
		kind viewport.EventKind
		pts  []viewport.Point
	}{
		{viewport.EventStart, []viewport.Point{{X: 1, Y: 2}}},
		{viewport.EventStart, []viewport.Point{{X: 1, Y: 2}, {X: 10, Y: 20}}},
		{viewport.EventMove, []viewport.Point{{X: 1, Y: 2}, {X: 11, Y: 21}}},
		{viewport.EventEnd, []viewport.Point{{X: 11, Y: 21}}},
		{viewport.EventEnd, nil},
	}
	if len(rec.events) != len(want) {
		t.Fatalf("got %d events, want %d", len(rec.events), len(want))
	}
	for i, w := range want {
		got := rec.events[i]
		if got.Kind != w.kind || !reflect.DeepEqual(got.Touches, w.pts) {
			t.Errorf("event %d = %v %v, want %v %v", i, got.Kind, got.Touches, w.kind, w.pts)
		}
	}
}

func TestTrackerIgnoresUnknownFingers(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec)
	if ev := tr.Handle(touch.Event{Sequence: 1, Type: touch.TypeMove}); ev != nil {
		t.Fatalf("move for unknown finger dispatched %v", ev)
	}
	if ev := tr.Handle(touch.Event{Sequence: 1, Type: touch.TypeEnd}); ev != nil {
		t.Fatalf("end for unknown finger dispatched %v", ev)
	}
	tr.Handle(touch.Event{Sequence: 1, Type: touch.TypeBegin})
	if ev := tr.Handle(touch.Event{Sequence: 1, Type: touch.TypeBegin}); ev != nil {
		t.Fatalf("duplicate begin dispatched %v", ev)
	}
	if len(rec.events) != 1 {
		t.Fatalf("dispatched %d events, want 1", len(rec.events))
	}
	tr.Reset()
	if pts := tr.Active(); pts != nil {
		t.Fatalf("active after reset = %v", pts)
	}
}

func TestElementDispatch(t *testing.T) {
	el := NewElement(320, 240)
	if w, h := el.BoundingBox(); w != 320 || h != 240 {
		t.Fatalf("bounding box = %vx%v", w, h)
	}
	if el.Dispatch(&viewport.Event{Kind: viewport.EventStart}) {
		t.Fatalf("dispatch without listener reported delivery")
	}
	el.Resize(640, 480)
	if w, h := el.BoundingBox(); w != 640 || h != 480 {
		t.Fatalf("resized box = %vx%v", w, h)
	}
	var got []viewport.EventKind
	el.Listen(viewport.EventStart, func(e *viewport.Event) { got = append(got, e.Kind) })
	el.Listen(viewport.EventMove, func(e *viewport.Event) { got = append(got, e.Kind) })
	el.Listen(viewport.EventMove, func(e *viewport.Event) { got = append(got, viewport.EventEnd) })
	el.Dispatch(&viewport.Event{Kind: viewport.EventStart})
	el.Dispatch(&viewport.Event{Kind: viewport.EventMove})
	if want := []viewport.EventKind{viewport.EventStart, viewport.EventEnd}; !reflect.DeepEqual(got, want) {
		t.Fatalf("delivered %v, want %v", got, want)
	}
	el.Listen(viewport.EventStart, nil)
	if el.Dispatch(&viewport.Event{Kind: viewport.EventStart}) {
		t.Fatalf("removed listener still ran")
	}
	if el.Dispatch(nil) {
		t.Fatalf("nil event reported delivery")
	}
}

func TestParseScript(t *testing.T) {
	src := `
# pan right then pinch
start 10,10
move 20,10
touchstart 20,10 60.5,40
move 0,0 100,80
end
`
	events, err := ParseScript(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if len(events) != 5 {
		t.Fatalf("got %d events", len(events))
	}
	if events[2].Kind != viewport.EventStart || !reflect.DeepEqual(events[2].Touches, []viewport.Point{{X: 20, Y: 10}, {X: 60.5, Y: 40}}) {
		t.Fatalf("event 2 = %+v", events[2])
	}
	if events[4].Kind != viewport.EventEnd || events[4].Touches != nil {
		t.Fatalf("event 4 = %+v", events[4])
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := map[string]string{
		"tap 1,1":       "line 1: unknown step",
		"start\nmove 1": "line 2: point \"1\"",
		"start 1,x":     "line 1: point \"1,x\"",
		"\n\nmove a,1 ": "line 3",
	}
	for src, want := range tests {
		_, err := ParseScript(strings.NewReader(src))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("ParseScript(%q) err = %v, want %q", src, err, want)
		}
	}
}

func TestTrackerDrivesViewport(t *testing.T) {
	el := NewElement(300, 400)
	src := image.NewRGBA(image.Rect(0, 0, 600, 400))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	vp, err := viewport.New(viewport.Options{Surface: el, Image: src})
	if err != nil {
		t.Fatalf("viewport.New: %v", err)
	}
	tr := NewTracker(el)

	tr.Handle(touch.Event{X: 50, Y: 50, Sequence: 1, Type: touch.TypeBegin})
	ev := tr.Handle(touch.Event{X: 60, Y: 45, Sequence: 1, Type: touch.TypeMove})
	if !ev.DefaultPrevented() {
		t.Fatalf("move was not marked default-prevented")
	}
	tr.Handle(touch.Event{X: 60, Y: 45, Sequence: 1, Type: touch.TypeEnd})
	if got := vp.State().Origin; got != (viewport.Point{X: 160, Y: 195}) {
		t.Fatalf("origin after pan = %v", got)
	}

	// Two fingers spreading horizontally from 100 to 200 pixels apart.
	tr.Handle(touch.Event{X: 100, Y: 100, Sequence: 2, Type: touch.TypeBegin})
	tr.Handle(touch.Event{X: 200, Y: 150, Sequence: 3, Type: touch.TypeBegin})
	if vp.Mode() != viewport.ModeZoom {
		t.Fatalf("mode = %v, want zoom", vp.Mode())
	}
	tr.Handle(touch.Event{X: 250, Y: 150, Sequence: 3, Type: touch.TypeMove})
	tr.Handle(touch.Event{X: 50, Y: 100, Sequence: 2, Type: touch.TypeMove})
	st := vp.State()
	if st.RenderedWidth != 600 || st.RenderedHeight != 400 {
		t.Fatalf("rendered %vx%v after pinch, want 600x400", st.RenderedWidth, st.RenderedHeight)
	}
	if c := vp.Surface().RGBAAt(0, 150); c.A < 250 || c.R < 250 {
		t.Fatalf("zoomed image should cover the left edge, got %v", c)
	}
}

func TestReplay(t *testing.T) {
	el := NewElement(10, 10)
	n := 0
	el.Listen(viewport.EventMove, func(*viewport.Event) { n++ })
	events, err := ParseScript(strings.NewReader("start 1,1\nmove 2,2\nmove 3,3\nend"))
	if err != nil {
		t.Fatal(err)
	}
	if got := Replay(el, events); got != 2 || n != 2 {
		t.Fatalf("Replay delivered %d (listener saw %d), want 2", got, n)
	}
}
