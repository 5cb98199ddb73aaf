// Package render provides a small 2D drawing context over an RGBA raster.
//
// The context keeps a current affine transform that can be saved and
// restored, and draws images through golang.org/x/image/draw so a scaled
// and translated draw is a single resampling pass.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// identity is the transform a fresh Context starts with.
var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Context draws onto a fixed RGBA destination.
type Context struct {
	dst        *image.RGBA
	matrix     f64.Aff3
	stack      []f64.Aff3
	interp     xdraw.Interpolator
	background color.Color
}

// NewContext returns a context drawing into dst. A nil background clears to
// transparent.
func NewContext(dst *image.RGBA, interp Interpolation, background color.Color) *Context {
	if background == nil {
		background = color.Transparent
	}
	return &Context{
		dst:        dst,
		matrix:     identity,
		stack:      make([]f64.Aff3, 0, 4),
		interp:     interp.interpolator(),
		background: background,
	}
}

// Target returns the destination raster.
func (c *Context) Target() *image.RGBA { return c.dst }

// Clear fills the whole destination with the background colour. The
// current transform is ignored.
func (c *Context) Clear() {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

// Save pushes the current transform.
func (c *Context) Save() {
	c.stack = append(c.stack, c.matrix)
}

// Restore pops the last saved transform. Restore without a matching Save
// is a no-op.
func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.matrix = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Depth reports how many transforms are currently saved.
func (c *Context) Depth() int { return len(c.stack) }

// Translate moves the coordinate origin by (x, y) in the current space.
func (c *Context) Translate(x, y float64) {
	c.matrix = mul(c.matrix, f64.Aff3{1, 0, x, 0, 1, y})
}

// Matrix returns the current transform.
func (c *Context) Matrix() f64.Aff3 { return c.matrix }

// DrawImage draws the whole of src scaled into the w×h box whose top-left
// corner is (x, y) in the current coordinate space.
func (c *Context) DrawImage(src image.Image, x, y, w, h float64) {
	sr := src.Bounds()
	if sr.Empty() || w <= 0 || h <= 0 {
		return
	}
	sx := w / float64(sr.Dx())
	sy := h / float64(sr.Dy())
	// Source pixel (u, v) lands at (x + sx*(u-min.X), y + sy*(v-min.Y)).
	local := f64.Aff3{
		sx, 0, x - sx*float64(sr.Min.X),
		0, sy, y - sy*float64(sr.Min.Y),
	}
	c.interp.Transform(c.dst, mul(c.matrix, local), src, sr, xdraw.Over, nil)
}

// mul returns a∘b, the transform applying b first and then a.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}
