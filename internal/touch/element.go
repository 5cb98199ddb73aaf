package touch

import "github.com/example/pinchcrop/internal/viewport"

// Element is an in-memory viewport.Host with a fixed bounding box. Each
// event kind has at most one listener; a later Listen replaces it.
type Element struct {
	width, height float64
	listeners     map[viewport.EventKind]func(*viewport.Event)
}

// NewElement returns an element measuring width×height.
func NewElement(width, height float64) *Element {
	return &Element{
		width:     width,
		height:    height,
		listeners: make(map[viewport.EventKind]func(*viewport.Event)),
	}
}

// BoundingBox implements viewport.Host.
func (e *Element) BoundingBox() (float64, float64) { return e.width, e.height }

// Resize changes the bounding box reported to hosts created afterwards.
func (e *Element) Resize(width, height float64) {
	e.width, e.height = width, height
}

// Listen implements viewport.Host.
func (e *Element) Listen(kind viewport.EventKind, fn func(*viewport.Event)) {
	if fn == nil {
		delete(e.listeners, kind)
		return
	}
	e.listeners[kind] = fn
}

// Dispatch delivers ev to its listener and reports whether one ran.
func (e *Element) Dispatch(ev *viewport.Event) bool {
	if ev == nil {
		return false
	}
	fn, ok := e.listeners[ev.Kind]
	if !ok {
		return false
	}
	fn(ev)
	return true
}
