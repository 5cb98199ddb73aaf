// Package viewport pans, pinch-zooms and crops one image inside a fixed-size
// surface in response to touch samples.
//
// A Controller keeps the image centre (origin) and the drawn size of the
// image as persistent state. Every gesture step re-renders the surface from
// that state; the per-frame translation lives in a saved and restored draw
// context so it never accumulates. Crop reads the rendered pixels, so
// whatever the user panned or zoomed to is what gets cropped.
package viewport

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/example/pinchcrop/internal/imgcodec"
	"github.com/example/pinchcrop/internal/render"
)

// State is a snapshot of the transform.
type State struct {
	// Origin is where the image centre is drawn, in surface pixels.
	Origin Point
	// RenderedWidth and RenderedHeight are the drawn size of the image.
	RenderedWidth, RenderedHeight float64
}

// Controller owns the transform of one image on one surface. It is not
// safe for concurrent use; events must be dispatched from one goroutine.
type Controller struct {
	opts    Options
	image   image.Image
	surface *image.RGBA
	ctx     *render.Context

	origin         Point
	renderedWidth  float64
	renderedHeight float64

	gesture  session
	handlers map[EventKind]func(*Event)
}

// New fits the image inside the surface, draws it and subscribes to the
// surface's start, move and end channels.
func New(opts Options) (*Controller, error) {
	if opts.Surface == nil {
		return nil, fmt.Errorf("%w: surface is required", ErrInvalidConfiguration)
	}
	if opts.Image == nil {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidConfiguration)
	}
	opts = opts.WithDefaults()
	if !(opts.RelativeWidth > 0) || math.IsInf(opts.RelativeWidth, 0) {
		return nil, fmt.Errorf("%w: relative width %v", ErrInvalidConfiguration, opts.RelativeWidth)
	}
	ib := opts.Image.Bounds()
	if ib.Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidConfiguration)
	}

	bw, bh := opts.Surface.BoundingBox()
	if bw > maxCropSide || bh > maxCropSide || bw*bh > maxCropArea {
		return nil, fmt.Errorf("%w: surface %vx%v is too large", ErrInvalidConfiguration, bw, bh)
	}
	sw, sh := wholePixels(bw), wholePixels(bh)
	if sw == 0 || sh == 0 {
		return nil, fmt.Errorf("%w: surface measures %vx%v", ErrInvalidConfiguration, bw, bh)
	}
	surface := image.NewRGBA(image.Rect(0, 0, sw, sh))

	iw, ih := float64(ib.Dx()), float64(ib.Dy())
	rate := math.Min(float64(sw)/iw, float64(sh)/ih)

	c := &Controller{
		opts:           opts,
		image:          opts.Image,
		surface:        surface,
		ctx:            render.NewContext(surface, opts.Interpolation, opts.Background),
		origin:         Point{X: math.Floor(float64(sw) / 2), Y: math.Floor(float64(sh) / 2)},
		renderedWidth:  iw * rate,
		renderedHeight: ih * rate,
	}
	c.render(0, 0, 1, 1)

	c.handlers = map[EventKind]func(*Event){
		EventStart: c.touchStart,
		EventMove:  c.touchMove,
		EventEnd:   c.touchEnd,
	}
	for _, kind := range eventKinds {
		opts.Surface.Listen(kind, c.HandleEvent)
	}
	return c, nil
}

// wholePixels converts a measured length to whole pixels the way a
// canvas size assignment does.
func wholePixels(v float64) int {
	if !(v >= 1) || math.IsInf(v, 0) {
		return 0
	}
	return int(v)
}

const (
	pixelEpsilon = 1e-9

	// Crops larger than this come back empty, as an oversized canvas
	// does.
	maxCropSide = 32767
	maxCropArea = 1 << 26
)

// snapPixels scales a relative-width length to surface pixels, rounding
// down. Products within pixelEpsilon below an integer count as that
// integer.
func snapPixels(v, scale float64) float64 {
	return math.Floor(v*scale + pixelEpsilon)
}

// cropBounds returns the size of the crop for a region and the surface
// point its top-left corner copies from. The size is zero when the region
// is degenerate or too large to allocate.
func (c *Controller) cropBounds(width, height, x, y float64) (size, from image.Point) {
	scale := c.CropScale()
	w, h := snapPixels(width, scale), snapPixels(height, scale)
	if !(w >= 1) || !(h >= 1) || w > maxCropSide || h > maxCropSide || w*h > maxCropArea {
		return image.Point{}, image.Point{}
	}
	b := c.surface.Bounds()
	// Offsets past the surface only add transparency, so clamp them
	// before converting.
	clamp := func(v, lo, hi float64) int {
		if math.IsNaN(v) {
			return int(hi)
		}
		return int(math.Max(lo, math.Min(v, hi)))
	}
	from = image.Pt(
		clamp(snapPixels(x, scale), -w, float64(b.Dx())),
		clamp(snapPixels(y, scale), -h, float64(b.Dy())),
	)
	return image.Pt(int(w), int(h)), from
}

// HandleEvent routes a touch sample to the handler for its kind.
func (c *Controller) HandleEvent(e *Event) {
	if e == nil {
		return
	}
	if fn, ok := c.handlers[e.Kind]; ok {
		fn(e)
	}
}

// Pan moves the image by (dx, dy) surface pixels and redraws.
func (c *Controller) Pan(dx, dy float64) bool {
	return c.render(dx, dy, 1, 1)
}

// Zoom scales the image about its centre and redraws. Both axes are scaled
// by the larger of the two factors. A factor that is zero, negative or not
// finite leaves the state untouched and reports false.
func (c *Controller) Zoom(zoomW, zoomH float64) bool {
	return c.render(0, 0, zoomW, zoomH)
}

// Redraw repaints the surface from the current state.
func (c *Controller) Redraw() {
	c.render(0, 0, 1, 1)
}

func validFactor(z float64) bool {
	return z > 0 && !math.IsInf(z, 0)
}

func (c *Controller) render(dx, dy, zoomW, zoomH float64) bool {
	if !validFactor(zoomW) || !validFactor(zoomH) {
		return false
	}
	c.ctx.Clear()

	c.origin.X += dx
	c.origin.Y += dy

	c.ctx.Save()
	defer c.ctx.Restore()
	c.ctx.Translate(c.origin.X, c.origin.Y)

	zoom := math.Max(zoomW, zoomH)
	c.renderedWidth *= zoom
	c.renderedHeight *= zoom

	c.ctx.DrawImage(c.image, -c.renderedWidth/2, -c.renderedHeight/2, c.renderedWidth, c.renderedHeight)
	return true
}

// State returns the current transform.
func (c *Controller) State() State {
	return State{Origin: c.origin, RenderedWidth: c.renderedWidth, RenderedHeight: c.renderedHeight}
}

// Surface returns the rendered raster. It is redrawn in place on every
// gesture step.
func (c *Controller) Surface() *image.RGBA { return c.surface }

// Options returns the configuration after defaults were applied.
func (c *Controller) Options() Options { return c.opts }

// CropScale is the factor from relative-width units to surface pixels.
func (c *Controller) CropScale() float64 {
	return float64(c.surface.Bounds().Dx()) / c.opts.RelativeWidth
}

// CropImage copies a region of the rendered surface. The arguments are in
// relative-width units. Parts of the region outside the surface come back
// transparent; a non-positive or oversized region yields an empty image.
func (c *Controller) CropImage(width, height, x, y float64) *image.RGBA {
	size, from := c.cropBounds(width, height, x, y)
	out := image.NewRGBA(image.Rectangle{Max: size})
	if out.Bounds().Empty() {
		return out
	}
	draw.Draw(out, out.Bounds(), c.surface, c.surface.Bounds().Min.Add(from), draw.Src)
	return out
}

// Crop is CropImage encoded as a data URL in the configured format.
func (c *Controller) Crop(width, height, x, y float64) (string, error) {
	return imgcodec.DataURL(c.CropImage(width, height, x, y), c.opts.Format, c.opts.Quality)
}
