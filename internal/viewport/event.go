package viewport

// EventKind identifies one of the three gesture channels.
type EventKind int

const (
	EventStart EventKind = iota
	EventMove
	EventEnd
)

var eventKinds = []EventKind{EventStart, EventMove, EventEnd}

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventMove:
		return "move"
	case EventEnd:
		return "end"
	}
	return "unknown"
}

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// Event is one touch sample. Touches lists every point still in contact
// with the surface, in the order the fingers went down.
type Event struct {
	Kind    EventKind
	Touches []Point

	defaultPrevented bool
}

// PreventDefault asks the host to skip its own handling (scrolling,
// navigation) of this event.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Host is the element a Controller draws for and listens on.
type Host interface {
	// BoundingBox reports the on-screen size of the element.
	BoundingBox() (width, height float64)
	// Listen installs fn as the handler for one event channel.
	Listen(kind EventKind, fn func(*Event))
}
