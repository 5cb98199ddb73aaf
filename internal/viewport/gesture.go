package viewport

import "math"

// Mode is how move samples are interpreted.
type Mode int

const (
	ModeNone Mode = iota
	ModePan
	ModeZoom
)

func (m Mode) String() string {
	switch m {
	case ModePan:
		return "pan"
	case ModeZoom:
		return "zoom"
	}
	return "none"
}

// session is the state of the touch sequence in progress.
type session struct {
	mode Mode
	last []Point
}

// modeFor picks the mode for n touching fingers. Zero fingers picks none.
func modeFor(n int) (Mode, bool) {
	switch {
	case n == 1:
		return ModePan, true
	case n > 1:
		return ModeZoom, true
	}
	return ModeNone, false
}

// Mode reports the mode chosen by the last start sample.
func (c *Controller) Mode() Mode { return c.gesture.mode }

func (c *Controller) touchStart(e *Event) {
	c.gesture.last = clonePoints(e.Touches)
	if m, ok := modeFor(len(e.Touches)); ok {
		c.gesture.mode = m
	}
}

func (c *Controller) touchMove(e *Event) {
	e.PreventDefault()
	current := clonePoints(e.Touches)

	if c.opts.Resync && len(current) != len(c.gesture.last) {
		if m, ok := modeFor(len(current)); ok {
			c.gesture.mode = m
		}
		c.gesture.last = current
		return
	}

	switch c.gesture.mode {
	case ModePan:
		c.panStep(c.gesture.last, current)
	case ModeZoom:
		c.zoomStep(c.gesture.last, current)
	}
	// Deltas are always measured from the previous sample.
	c.gesture.last = current
}

func (c *Controller) touchEnd(*Event) {}

func (c *Controller) panStep(last, current []Point) {
	if len(last) < 1 || len(current) < 1 {
		return
	}
	c.Pan(current[0].X-last[0].X, current[0].Y-last[0].Y)
}

func (c *Controller) zoomStep(last, current []Point) {
	// A zoom session can outlive its second finger; without two points on
	// both sides there is no distance to compare.
	if len(last) < 2 || len(current) < 2 {
		return
	}
	priorDx := math.Abs(last[0].X - last[1].X)
	priorDy := math.Abs(last[0].Y - last[1].Y)
	if priorDx == 0 || priorDy == 0 {
		return
	}
	c.Zoom(
		math.Abs(current[0].X-current[1].X)/priorDx,
		math.Abs(current[0].Y-current[1].Y)/priorDy,
	)
}

func clonePoints(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}
