package preview

import (
	"fmt"
	"image"
	"math"

	mtouch "golang.org/x/mobile/event/touch"

	"github.com/example/pinchcrop/internal/imgcodec"
	"github.com/example/pinchcrop/internal/touch"
	"github.com/example/pinchcrop/internal/viewport"
)

// Finger sequences used by the mouse emulation.
const (
	seqPrimary mtouch.Sequence = iota
	seqMirror
)

// session owns the viewport shown in the window and feeds it touches
// synthesised from the mouse.
type session struct {
	opts    viewport.Options
	el      *touch.Element
	ctrl    *viewport.Controller
	tracker *touch.Tracker
	region  viewport.Region
	// regionSet is false until a region is configured; the crop then
	// covers the whole surface.
	regionSet bool

	fingers []mtouch.Sequence
}

func newSession(opts viewport.Options, width, height int, region *viewport.Region) (*session, error) {
	s := &session{opts: opts, el: touch.NewElement(float64(width), float64(height))}
	if region != nil {
		s.region = *region
		s.regionSet = true
	}
	if err := s.rebuild(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild discards the current view and fits the image to a fresh
// width×height surface.
func (s *session) rebuild(width, height int) error {
	s.el.Resize(float64(width), float64(height))
	opts := s.opts
	opts.Surface = s.el
	ctrl, err := viewport.New(opts)
	if err != nil {
		return fmt.Errorf("build viewport: %w", err)
	}
	s.ctrl = ctrl
	s.tracker = touch.NewTracker(s.el)
	s.fingers = nil
	return nil
}

func (s *session) surface() *image.RGBA { return s.ctrl.Surface() }

func (s *session) center() viewport.Point {
	b := s.surface().Bounds()
	return viewport.Point{X: float64(b.Dx()) / 2, Y: float64(b.Dy()) / 2}
}

// mirror reflects p through the surface centre.
func (s *session) mirror(p viewport.Point) viewport.Point {
	c := s.center()
	return viewport.Point{X: 2*c.X - p.X, Y: 2*c.Y - p.Y}
}

func (s *session) send(seq mtouch.Sequence, p viewport.Point, typ mtouch.Type) {
	s.tracker.Handle(mtouch.Event{X: float32(p.X), Y: float32(p.Y), Sequence: seq, Type: typ})
}

// press puts one finger down at p, or two mirrored fingers when pinch is
// set. A press while fingers are already down is ignored.
func (s *session) press(p viewport.Point, pinch bool) {
	if s.active() {
		return
	}
	s.fingers = []mtouch.Sequence{seqPrimary}
	if pinch {
		s.fingers = append(s.fingers, seqMirror)
	}
	s.placeFingers(p, mtouch.TypeBegin)
}

// drag moves the fingers so the primary one is at p.
func (s *session) drag(p viewport.Point) bool {
	if !s.active() {
		return false
	}
	s.placeFingers(p, mtouch.TypeMove)
	return true
}

// release lifts every finger.
func (s *session) release(p viewport.Point) {
	if !s.active() {
		return
	}
	s.placeFingers(p, mtouch.TypeEnd)
	s.fingers = nil
}

func (s *session) active() bool { return len(s.fingers) > 0 }

func (s *session) placeFingers(p viewport.Point, typ mtouch.Type) {
	for _, seq := range s.fingers {
		pt := p
		if seq == seqMirror {
			pt = s.mirror(p)
		}
		s.send(seq, pt, typ)
	}
}

// wheelSpread is the distance each synthetic wheel finger starts from the
// surface centre along both axes.
const wheelSpread = 50

// wheel plays a two-finger pinch about the surface centre whose spread
// changes by factor. It is skipped while fingers are down.
func (s *session) wheel(factor float64) bool {
	if s.active() || !(factor > 0) || math.IsInf(factor, 0) {
		return false
	}
	before := s.ctrl.State()
	c := s.center()
	at := func(d float64) viewport.Point { return viewport.Point{X: c.X - d, Y: c.Y - d} }
	s.fingers = []mtouch.Sequence{seqPrimary, seqMirror}
	s.placeFingers(at(wheelSpread), mtouch.TypeBegin)
	s.placeFingers(at(wheelSpread*factor), mtouch.TypeMove)
	s.placeFingers(at(wheelSpread*factor), mtouch.TypeEnd)
	s.fingers = nil
	return s.ctrl.State() != before
}

func (s *session) cropRegion() viewport.Region {
	if !s.regionSet {
		return s.ctrl.FullRegion()
	}
	return s.region
}

func (s *session) guide() image.Rectangle {
	return s.ctrl.RegionPixels(s.cropRegion())
}

func (s *session) cropImage() *image.RGBA {
	r := s.cropRegion()
	return s.ctrl.CropImage(r.Width, r.Height, r.X, r.Y)
}

func (s *session) cropDataURL() (string, error) {
	return s.ctrl.CropRegion(s.cropRegion())
}

func (s *session) save(path string) error {
	o := s.ctrl.Options()
	return imgcodec.Save(path, s.cropImage(), imgcodec.FormatForPath(path, o.Format), o.Quality)
}

// status summarises the view for the status bar.
func (s *session) status() string {
	st := s.ctrl.State()
	zoom := 0.0
	if b := s.opts.Image.Bounds(); b.Dx() > 0 {
		zoom = st.RenderedWidth / float64(b.Dx())
	}
	return fmt.Sprintf("%s  origin %d,%d  zoom %.0f%%  crop %s",
		s.ctrl.Mode(), int(math.Round(st.Origin.X)), int(math.Round(st.Origin.Y)), zoom*100, s.cropRegion())
}

// snapshot copies the surface so a paint can read it while gestures keep
// redrawing the original.
func (s *session) snapshot() *image.RGBA {
	src := s.surface()
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
