//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// x11Clipboard owns the CLIPBOARD selection through a hidden window and
// answers conversion requests for whatever was last written. Reads use a
// separate connection so they never race the owner's event loop.
type x11Clipboard struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atomSet

	mu     sync.RWMutex
	offers map[xproto.Atom][]byte
}

type atomSet struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

// openBackend talks to the X server directly when cgo is unavailable.
func openBackend() (backend, error) {
	if !hasDisplay() {
		return nil, errNoDisplay
	}
	conn, window, err := hiddenWindow(xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify)
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	atoms, err := internAtoms(conn, "CLIPBOARD", "TARGETS", "UTF8_STRING", "image/png", "PINCHCROP_CLIPBOARD")
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, fmt.Errorf("intern atoms: %w", err)
	}
	c := &x11Clipboard{
		conn:   conn,
		window: window,
		atoms: atomSet{
			clipboard: atoms[0],
			targets:   atoms[1],
			utf8:      atoms[2],
			png:       atoms[3],
			property:  atoms[4],
		},
	}
	go c.serve()
	return c, nil
}

// hiddenWindow opens a connection and an unmapped 1×1 window listening
// for mask.
func hiddenWindow(mask uint32) (*xgb.Conn, xproto.Window, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, 0, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, 0, err
	}
	err = xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{mask}).Check()
	if err != nil {
		conn.Close()
		return nil, 0, err
	}
	return conn, window, nil
}

func internAtoms(conn *xgb.Conn, names ...string) ([]xproto.Atom, error) {
	atoms := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		atoms[i] = reply.Atom
	}
	return atoms, nil
}

func (c *x11Clipboard) writeText(data []byte) error {
	text := append([]byte(nil), data...)
	return c.offer(map[xproto.Atom][]byte{c.atoms.utf8: text, xproto.AtomString: text})
}

func (c *x11Clipboard) writeImage(png []byte) error {
	return c.offer(map[xproto.Atom][]byte{c.atoms.png: append([]byte(nil), png...)})
}

// offer replaces what the selection serves and claims ownership.
func (c *x11Clipboard) offer(offers map[xproto.Atom][]byte) error {
	c.mu.Lock()
	c.offers = offers
	c.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(c.conn, c.window, c.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (c *x11Clipboard) readImage() ([]byte, error) {
	return c.convert(c.atoms.png)
}

func (c *x11Clipboard) readText() ([]byte, error) {
	data, err := c.convert(c.atoms.utf8)
	if err != nil {
		if data, err = c.convert(xproto.AtomString); err != nil {
			return nil, err
		}
	}
	// Some owners append a NUL to STRING replies.
	if n := len(data); n > 0 && data[n-1] == 0 {
		data = data[:n-1]
	}
	return data, nil
}

func (c *x11Clipboard) serve() {
	for {
		ev, err := c.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			c.answer(e)
		case xproto.SelectionClearEvent:
			c.mu.Lock()
			c.offers = nil
			c.mu.Unlock()
		}
	}
}

// answer stores the requested conversion on the requestor's window and
// notifies it. Unknown targets are refused with property None.
func (c *x11Clipboard) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	c.mu.RLock()
	offers := c.offers
	c.mu.RUnlock()

	if e.Target == c.atoms.targets {
		buf := c.targetList(offers)
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(buf)/4), buf)
	} else if data, ok := offers[e.Target]; ok && len(data) > 0 {
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property, e.Target, 8, uint32(len(data)), data)
	} else {
		property = xproto.AtomNone
	}

	reply := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(c.conn, false, e.Requestor, 0, string(reply.Bytes()))
}

// targetList encodes TARGETS followed by every offered target that has
// data, as 32-bit atoms.
func (c *x11Clipboard) targetList(offers map[xproto.Atom][]byte) []byte {
	targets := []xproto.Atom{c.atoms.targets}
	for atom, data := range offers {
		if len(data) > 0 {
			targets = append(targets, atom)
		}
	}
	buf := make([]byte, 4*len(targets))
	for i, atom := range targets {
		xgb.Put32(buf[4*i:], uint32(atom))
	}
	return buf
}

// convert asks the current owner for target and waits for the reply.
func (c *x11Clipboard) convert(target xproto.Atom) ([]byte, error) {
	conn, window, err := hiddenWindow(xproto.EventMaskPropertyChange)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.DeletePropertyChecked(conn, window, c.atoms.property).Check(); err != nil {
		return nil, err
	}
	err = xproto.ConvertSelectionChecked(conn, window, c.atoms.clipboard, target, c.atoms.property, xproto.TimeCurrentTime).Check()
	if err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard owner cannot provide target %d", target)
		}
		if e.Property != c.atoms.property {
			continue
		}
		reply, perr := xproto.GetProperty(conn, false, window, c.atoms.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
